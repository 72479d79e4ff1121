package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/blossomapp/blossom-server/internal/domain"
)

func (s *Server) registerJourneyRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listUpdates",
		Method:      http.MethodGet,
		Path:        "/api/v1/updates",
		Summary:     "List journey updates",
		Description: "Returns pregnancy-journey updates with comments, newest first",
		Tags:        []string{"Journey"},
	}, s.handleListUpdates)

	huma.Register(s.api, huma.Operation{
		OperationID: "getUpdateReactions",
		Method:      http.MethodGet,
		Path:        "/api/v1/updates/reactions",
		Summary:     "Get update reactions",
		Description: "Returns which updates this viewer has liked",
		Tags:        []string{"Journey"},
	}, s.handleGetUpdateReactions)

	huma.Register(s.api, huma.Operation{
		OperationID: "toggleUpdateLike",
		Method:      http.MethodPost,
		Path:        "/api/v1/updates/{id}/like",
		Summary:     "Toggle update like",
		Description: "Flips this viewer's like on a journey update",
		Tags:        []string{"Journey"},
	}, s.handleToggleUpdateLike)

	huma.Register(s.api, huma.Operation{
		OperationID: "addUpdateComment",
		Method:      http.MethodPost,
		Path:        "/api/v1/updates/{id}/comments",
		Summary:     "Add update comment",
		Description: "Appends a comment to a journey update",
		Tags:        []string{"Journey"},
	}, s.handleAddUpdateComment)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteUpdateComment",
		Method:      http.MethodDelete,
		Path:        "/api/v1/updates/{id}/comments/{commentID}",
		Summary:     "Delete update comment",
		Description: "Removes a comment from a journey update",
		Tags:        []string{"Journey"},
	}, s.handleDeleteUpdateComment)
}

// === DTOs ===

type UpdateResponse struct {
	ID        string            `json:"id" doc:"Update ID"`
	Date      string            `json:"date" doc:"Display date (YYYY-MM-DD)"`
	Title     string            `json:"title" doc:"Update title"`
	Content   string            `json:"content" doc:"Update text"`
	Image     string            `json:"image" doc:"Display glyph"`
	Likes     int               `json:"likes" doc:"Like count"`
	Comments  []CommentResponse `json:"comments" doc:"Comment thread, oldest first"`
	CreatedAt time.Time         `json:"created_at" doc:"Creation time"`
}

type ListUpdatesResponse struct {
	Updates []UpdateResponse `json:"updates" doc:"Updates, newest first"`
}

type ListUpdatesOutput struct {
	Body ListUpdatesResponse
}

type UpdateReactionsResponse struct {
	Liked []string `json:"liked" doc:"Update IDs this viewer has liked"`
}

type UpdateReactionsOutput struct {
	Body UpdateReactionsResponse
}

type UpdateIDInput struct {
	ID string `path:"id" doc:"Update ID"`
}

type AddUpdateCommentInput struct {
	ID   string `path:"id" doc:"Update ID"`
	Body AddCommentRequest
}

type DeleteUpdateCommentInput struct {
	ID        string `path:"id" doc:"Update ID"`
	CommentID string `path:"commentID" doc:"Comment ID"`
}

// === Handlers ===

func (s *Server) handleListUpdates(ctx context.Context, _ *struct{}) (*ListUpdatesOutput, error) {
	updates, err := s.services.Journey.ListUpdates(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]UpdateResponse, len(updates))
	for i, update := range updates {
		resp[i] = mapUpdateResponse(update)
	}

	return &ListUpdatesOutput{Body: ListUpdatesResponse{Updates: resp}}, nil
}

func (s *Server) handleGetUpdateReactions(ctx context.Context, _ *struct{}) (*UpdateReactionsOutput, error) {
	reactions, err := s.services.Journey.UpdateReactions(ctx, getViewerID(ctx))
	if err != nil {
		return nil, err
	}

	return &UpdateReactionsOutput{Body: UpdateReactionsResponse{
		Liked: emptyIfNil(reactions.Liked),
	}}, nil
}

func (s *Server) handleToggleUpdateLike(ctx context.Context, input *UpdateIDInput) (*MessageOutput, error) {
	if _, err := s.services.Journey.ToggleUpdateLike(ctx, getViewerID(ctx), input.ID); err != nil {
		return nil, err
	}

	return &MessageOutput{Body: MessageResponse{Message: "Reaction recorded"}}, nil
}

func (s *Server) handleAddUpdateComment(ctx context.Context, input *AddUpdateCommentInput) (*CommentOutput, error) {
	if err := s.validate.Validate(input.Body); err != nil {
		return nil, err
	}

	comment, err := s.services.Journey.AddUpdateComment(ctx, input.ID, input.Body.Name, input.Body.Text)
	if err != nil {
		return nil, err
	}
	if comment == nil {
		return &CommentOutput{Body: CommentResponse{}}, nil
	}

	return &CommentOutput{Body: mapCommentResponse(*comment)}, nil
}

func (s *Server) handleDeleteUpdateComment(ctx context.Context, input *DeleteUpdateCommentInput) (*MessageOutput, error) {
	if err := s.services.Journey.DeleteUpdateComment(ctx, input.ID, input.CommentID); err != nil {
		return nil, err
	}

	return &MessageOutput{Body: MessageResponse{Message: "Comment deleted"}}, nil
}

// === Mappers ===

func mapUpdateResponse(u *domain.Update) UpdateResponse {
	comments := make([]CommentResponse, len(u.Comments))
	for i, c := range u.Comments {
		comments[i] = mapCommentResponse(c)
	}

	return UpdateResponse{
		ID:        u.ID,
		Date:      u.Date,
		Title:     u.Title,
		Content:   u.Content,
		Image:     u.Image,
		Likes:     u.Likes,
		Comments:  comments,
		CreatedAt: u.CreatedAt,
	}
}
