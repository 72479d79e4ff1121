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

func (s *Server) registerAdviceRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listTips",
		Method:      http.MethodGet,
		Path:        "/api/v1/tips",
		Summary:     "List tips",
		Description: "Returns advice tips, newest first, optionally filtered by category",
		Tags:        []string{"Advice"},
	}, s.handleListTips)

	huma.Register(s.api, huma.Operation{
		OperationID: "getTipReactions",
		Method:      http.MethodGet,
		Path:        "/api/v1/tips/reactions",
		Summary:     "Get tip reactions",
		Description: "Returns which tips this viewer has liked or disliked",
		Tags:        []string{"Advice"},
	}, s.handleGetTipReactions)

	huma.Register(s.api, huma.Operation{
		OperationID: "addTip",
		Method:      http.MethodPost,
		Path:        "/api/v1/tips",
		Summary:     "Add tip",
		Description: "Posts a new advice tip",
		Tags:        []string{"Advice"},
	}, s.handleAddTip)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteTip",
		Method:      http.MethodDelete,
		Path:        "/api/v1/tips/{id}",
		Summary:     "Delete tip",
		Description: "Removes a tip, its comments, and all recorded reactions to it",
		Tags:        []string{"Advice"},
	}, s.handleDeleteTip)

	huma.Register(s.api, huma.Operation{
		OperationID: "toggleTipLike",
		Method:      http.MethodPost,
		Path:        "/api/v1/tips/{id}/like",
		Summary:     "Toggle tip like",
		Description: "Cycles this viewer's like on a tip; a prior dislike switches to a like",
		Tags:        []string{"Advice"},
	}, s.handleToggleTipLike)

	huma.Register(s.api, huma.Operation{
		OperationID: "toggleTipDislike",
		Method:      http.MethodPost,
		Path:        "/api/v1/tips/{id}/dislike",
		Summary:     "Toggle tip dislike",
		Description: "Cycles this viewer's dislike on a tip; a prior like switches to a dislike",
		Tags:        []string{"Advice"},
	}, s.handleToggleTipDislike)

	huma.Register(s.api, huma.Operation{
		OperationID: "addTipComment",
		Method:      http.MethodPost,
		Path:        "/api/v1/tips/{id}/comments",
		Summary:     "Add tip comment",
		Description: "Appends a comment to a tip",
		Tags:        []string{"Advice"},
	}, s.handleAddTipComment)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteTipComment",
		Method:      http.MethodDelete,
		Path:        "/api/v1/tips/{id}/comments/{commentID}",
		Summary:     "Delete tip comment",
		Description: "Removes a comment from a tip",
		Tags:        []string{"Advice"},
	}, s.handleDeleteTipComment)
}

// === DTOs ===

type CommentResponse struct {
	ID    string `json:"id" doc:"Comment ID"`
	Name  string `json:"name" doc:"Commenter's name"`
	Text  string `json:"text" doc:"Comment text"`
	Date  string `json:"date" doc:"Display date (YYYY-MM-DD)"`
	Color string `json:"color" doc:"Avatar accent color derived from the commenter's name"`
}

type TipResponse struct {
	ID          string            `json:"id" doc:"Tip ID"`
	Name        string            `json:"name" doc:"Author's name"`
	Category    string            `json:"category" doc:"Category (twins, registry, parenting, recommendations)"`
	RelatedItem string            `json:"related_item,omitempty" doc:"Registry item the tip refers to"`
	Message     string            `json:"message" doc:"Tip text"`
	Likes       int               `json:"likes" doc:"Like count"`
	Dislikes    int               `json:"dislikes" doc:"Dislike count"`
	Date        string            `json:"date" doc:"Display date (YYYY-MM-DD)"`
	Color       string            `json:"color" doc:"Avatar accent color derived from the author's name"`
	Comments    []CommentResponse `json:"comments" doc:"Comment thread, oldest first"`
	CreatedAt   time.Time         `json:"created_at" doc:"Creation time"`
}

type ListTipsInput struct {
	Category string `query:"category" doc:"Filter by category"`
}

type ListTipsResponse struct {
	Tips []TipResponse `json:"tips" doc:"Tips, newest first"`
}

type ListTipsOutput struct {
	Body ListTipsResponse
}

type ReactionsResponse struct {
	Liked    []string `json:"liked" doc:"Tip IDs this viewer has liked"`
	Disliked []string `json:"disliked" doc:"Tip IDs this viewer has disliked"`
}

type ReactionsOutput struct {
	Body ReactionsResponse
}

type AddTipRequest struct {
	Name        string `json:"name" validate:"required,max=100" doc:"Author's name"`
	Category    string `json:"category" validate:"required" doc:"Category"`
	RelatedItem string `json:"related_item,omitempty" doc:"Registry item the tip refers to"`
	Message     string `json:"message" validate:"required,max=500" doc:"Tip text"`
}

type AddTipInput struct {
	Body AddTipRequest
}

type TipOutput struct {
	Body TipResponse
}

type TipIDInput struct {
	ID string `path:"id" doc:"Tip ID"`
}

type AddCommentRequest struct {
	Name string `json:"name" validate:"required,max=100" doc:"Commenter's name"`
	Text string `json:"text" validate:"required,max=500" doc:"Comment text"`
}

type AddTipCommentInput struct {
	ID   string `path:"id" doc:"Tip ID"`
	Body AddCommentRequest
}

type CommentOutput struct {
	Body CommentResponse
}

type DeleteTipCommentInput struct {
	ID        string `path:"id" doc:"Tip ID"`
	CommentID string `path:"commentID" doc:"Comment ID"`
}

// === Handlers ===

func (s *Server) handleListTips(ctx context.Context, input *ListTipsInput) (*ListTipsOutput, error) {
	tips, err := s.services.Advice.ListTips(ctx, domain.TipCategory(input.Category))
	if err != nil {
		return nil, err
	}

	resp := make([]TipResponse, len(tips))
	for i, tip := range tips {
		resp[i] = mapTipResponse(tip)
	}

	return &ListTipsOutput{Body: ListTipsResponse{Tips: resp}}, nil
}

func (s *Server) handleGetTipReactions(ctx context.Context, _ *struct{}) (*ReactionsOutput, error) {
	reactions, err := s.services.Advice.TipReactions(ctx, getViewerID(ctx))
	if err != nil {
		return nil, err
	}

	return &ReactionsOutput{Body: ReactionsResponse{
		Liked:    emptyIfNil(reactions.Liked),
		Disliked: emptyIfNil(reactions.Disliked),
	}}, nil
}

func (s *Server) handleAddTip(ctx context.Context, input *AddTipInput) (*TipOutput, error) {
	if err := s.validate.Validate(input.Body); err != nil {
		return nil, err
	}

	tip, err := s.services.Advice.AddTip(ctx, service.AddTipParams{
		Name:        input.Body.Name,
		Category:    domain.TipCategory(input.Body.Category),
		RelatedItem: input.Body.RelatedItem,
		Message:     input.Body.Message,
	})
	if err != nil {
		return nil, err
	}

	return &TipOutput{Body: mapTipResponse(tip)}, nil
}

func (s *Server) handleDeleteTip(ctx context.Context, input *TipIDInput) (*MessageOutput, error) {
	if err := s.services.Advice.DeleteTip(ctx, input.ID); err != nil {
		return nil, err
	}

	return &MessageOutput{Body: MessageResponse{Message: "Tip deleted"}}, nil
}

func (s *Server) handleToggleTipLike(ctx context.Context, input *TipIDInput) (*MessageOutput, error) {
	if _, err := s.services.Advice.ToggleTipLike(ctx, getViewerID(ctx), input.ID); err != nil {
		return nil, err
	}

	return &MessageOutput{Body: MessageResponse{Message: "Reaction recorded"}}, nil
}

func (s *Server) handleToggleTipDislike(ctx context.Context, input *TipIDInput) (*MessageOutput, error) {
	if _, err := s.services.Advice.ToggleTipDislike(ctx, getViewerID(ctx), input.ID); err != nil {
		return nil, err
	}

	return &MessageOutput{Body: MessageResponse{Message: "Reaction recorded"}}, nil
}

func (s *Server) handleAddTipComment(ctx context.Context, input *AddTipCommentInput) (*CommentOutput, error) {
	if err := s.validate.Validate(input.Body); err != nil {
		return nil, err
	}

	comment, err := s.services.Advice.AddTipComment(ctx, input.ID, input.Body.Name, input.Body.Text)
	if err != nil {
		return nil, err
	}
	if comment == nil {
		// The tip vanished under the commenter; nothing was stored.
		return &CommentOutput{Body: CommentResponse{}}, nil
	}

	return &CommentOutput{Body: mapCommentResponse(*comment)}, nil
}

func (s *Server) handleDeleteTipComment(ctx context.Context, input *DeleteTipCommentInput) (*MessageOutput, error) {
	if err := s.services.Advice.DeleteTipComment(ctx, input.ID, input.CommentID); err != nil {
		return nil, err
	}

	return &MessageOutput{Body: MessageResponse{Message: "Comment deleted"}}, nil
}

// === Mappers ===

func mapTipResponse(tip *domain.Tip) TipResponse {
	comments := make([]CommentResponse, len(tip.Comments))
	for i, c := range tip.Comments {
		comments[i] = mapCommentResponse(c)
	}

	return TipResponse{
		ID:          tip.ID,
		Name:        tip.Name,
		Category:    string(tip.Category),
		RelatedItem: tip.RelatedItem,
		Message:     tip.Message,
		Likes:       tip.Likes,
		Dislikes:    tip.Dislikes,
		Date:        tip.Date,
		Color:       color.ForName(tip.Name),
		Comments:    comments,
		CreatedAt:   tip.CreatedAt,
	}
}

func mapCommentResponse(c domain.Comment) CommentResponse {
	return CommentResponse{
		ID:    c.ID,
		Name:  c.Name,
		Text:  c.Text,
		Date:  c.Date,
		Color: color.ForName(c.Name),
	}
}

func emptyIfNil(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}
