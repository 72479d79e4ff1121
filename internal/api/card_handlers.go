package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/blossomapp/blossom-server/internal/color"
	"github.com/blossomapp/blossom-server/internal/domain"
	"github.com/blossomapp/blossom-server/internal/service"
)

func (s *Server) registerCardRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listCards",
		Method:      http.MethodGet,
		Path:        "/api/v1/cards",
		Summary:     "List cards",
		Description: "Returns well-wishes cards, newest first",
		Tags:        []string{"Cards"},
	}, s.handleListCards)

	huma.Register(s.api, huma.Operation{
		OperationID: "sendCard",
		Method:      http.MethodPost,
		Path:        "/api/v1/cards",
		Summary:     "Send card",
		Description: "Adds a new well-wishes card to the wall",
		Tags:        []string{"Cards"},
	}, s.handleSendCard)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteCard",
		Method:      http.MethodDelete,
		Path:        "/api/v1/cards/{id}",
		Summary:     "Delete card",
		Description: "Removes a card from the wall",
		Tags:        []string{"Cards"},
	}, s.handleDeleteCard)
}

// === DTOs ===

type CardResponse struct {
	ID         string    `json:"id" doc:"Card ID"`
	SenderName string    `json:"sender_name" doc:"Sender's name"`
	Message    string    `json:"message" doc:"Card message"`
	TemplateID int       `json:"template_id" doc:"Card style template (1-6)"`
	Decoration string    `json:"decoration" doc:"Accent glyph"`
	Date       string    `json:"date" doc:"Display date (YYYY-MM-DD)"`
	Color      string    `json:"color" doc:"Avatar accent color derived from the sender's name"`
	CreatedAt  time.Time `json:"created_at" doc:"Creation time"`
}

type ListCardsResponse struct {
	Cards []CardResponse `json:"cards" doc:"Cards, newest first"`
}

type ListCardsOutput struct {
	Body ListCardsResponse
}

type SendCardRequest struct {
	SenderName string `json:"sender_name" validate:"required,max=100" doc:"Sender's name"`
	Message    string `json:"message" validate:"required,max=500" doc:"Card message"`
	TemplateID int    `json:"template_id" validate:"required" doc:"Card style template (1-6)"`
	Decoration string `json:"decoration,omitempty" doc:"Accent glyph"`
}

type SendCardInput struct {
	Body SendCardRequest
}

type CardOutput struct {
	Body CardResponse
}

type DeleteCardInput struct {
	ID string `path:"id" doc:"Card ID"`
}

// === Handlers ===

func (s *Server) handleListCards(ctx context.Context, _ *struct{}) (*ListCardsOutput, error) {
	cards, err := s.services.Card.ListCards(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]CardResponse, len(cards))
	for i, card := range cards {
		resp[i] = mapCardResponse(card)
	}

	return &ListCardsOutput{Body: ListCardsResponse{Cards: resp}}, nil
}

func (s *Server) handleSendCard(ctx context.Context, input *SendCardInput) (*CardOutput, error) {
	if err := s.validate.Validate(input.Body); err != nil {
		return nil, err
	}

	card, err := s.services.Card.SendCard(ctx, service.SendCardParams{
		SenderName: input.Body.SenderName,
		Message:    input.Body.Message,
		TemplateID: input.Body.TemplateID,
		Decoration: input.Body.Decoration,
	})
	if err != nil {
		return nil, err
	}

	return &CardOutput{Body: mapCardResponse(card)}, nil
}

func (s *Server) handleDeleteCard(ctx context.Context, input *DeleteCardInput) (*MessageOutput, error) {
	if err := s.services.Card.DeleteCard(ctx, input.ID); err != nil {
		return nil, err
	}

	return &MessageOutput{Body: MessageResponse{Message: "Card deleted"}}, nil
}

// === Mappers ===

func mapCardResponse(card *domain.Card) CardResponse {
	return CardResponse{
		ID:         card.ID,
		SenderName: card.SenderName,
		Message:    card.Message,
		TemplateID: card.TemplateID,
		Decoration: card.Decoration,
		Date:       card.Date,
		Color:      color.ForName(card.SenderName),
		CreatedAt:  card.CreatedAt,
	}
}
