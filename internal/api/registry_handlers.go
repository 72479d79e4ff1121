package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/blossomapp/blossom-server/internal/domain"
	"github.com/blossomapp/blossom-server/internal/service"
)

func (s *Server) registerRegistryRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listRegistryItems",
		Method:      http.MethodGet,
		Path:        "/api/v1/registry",
		Summary:     "List registry items",
		Description: "Returns registry items, newest first, with optional filters",
		Tags:        []string{"Registry"},
	}, s.handleListRegistryItems)

	huma.Register(s.api, huma.Operation{
		OperationID: "getRegistryStats",
		Method:      http.MethodGet,
		Path:        "/api/v1/registry/stats",
		Summary:     "Registry stats",
		Description: "Returns claimed/remaining/total counts",
		Tags:        []string{"Registry"},
	}, s.handleGetRegistryStats)

	huma.Register(s.api, huma.Operation{
		OperationID: "getRegistryItem",
		Method:      http.MethodGet,
		Path:        "/api/v1/registry/{id}",
		Summary:     "Get registry item",
		Description: "Returns a registry item by ID",
		Tags:        []string{"Registry"},
	}, s.handleGetRegistryItem)

	huma.Register(s.api, huma.Operation{
		OperationID: "addRegistryItem",
		Method:      http.MethodPost,
		Path:        "/api/v1/registry",
		Summary:     "Add registry item",
		Description: "Adds a new item to the registry",
		Tags:        []string{"Registry"},
	}, s.handleAddRegistryItem)

	huma.Register(s.api, huma.Operation{
		OperationID: "claimRegistryItem",
		Method:      http.MethodPost,
		Path:        "/api/v1/registry/{id}/claim",
		Summary:     "Claim registry item",
		Description: "Marks an item as claimed by the named guest; a later claim overwrites an earlier one",
		Tags:        []string{"Registry"},
	}, s.handleClaimRegistryItem)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteRegistryItem",
		Method:      http.MethodDelete,
		Path:        "/api/v1/registry/{id}",
		Summary:     "Delete registry item",
		Description: "Removes an item from the registry",
		Tags:        []string{"Registry"},
	}, s.handleDeleteRegistryItem)
}

// === DTOs ===

type ItemResponse struct {
	ID        string    `json:"id" doc:"Item ID"`
	Name      string    `json:"name" doc:"Item name"`
	Category  string    `json:"category" doc:"Category (gear, nursery, feeding, ...)"`
	Price     float64   `json:"price" doc:"Price in whole currency units"`
	Claimed   bool      `json:"claimed" doc:"Whether a guest has claimed the item"`
	ClaimedBy string    `json:"claimed_by,omitempty" doc:"Name of the claiming guest"`
	Image     string    `json:"image" doc:"Display glyph"`
	Priority  string    `json:"priority" doc:"Priority (high, medium, low)"`
	CreatedAt time.Time `json:"created_at" doc:"Creation time"`
	UpdatedAt time.Time `json:"updated_at" doc:"Last update time"`
}

type ListItemsInput struct {
	Category  string  `query:"category" doc:"Filter by category"`
	MaxPrice  float64 `query:"max_price" doc:"Only items at or below this price"`
	Available bool    `query:"available" doc:"Only unclaimed items"`
}

type ListItemsResponse struct {
	Items []ItemResponse `json:"items" doc:"Registry items, newest first"`
}

type ListItemsOutput struct {
	Body ListItemsResponse
}

type StatsResponse struct {
	Total     int `json:"total" doc:"Total items"`
	Claimed   int `json:"claimed" doc:"Claimed items"`
	Remaining int `json:"remaining" doc:"Unclaimed items"`
}

type StatsOutput struct {
	Body StatsResponse
}

type GetItemInput struct {
	ID string `path:"id" doc:"Item ID"`
}

type ItemOutput struct {
	Body ItemResponse
}

type AddItemRequest struct {
	Name     string  `json:"name" validate:"required,max=100" doc:"Item name"`
	Category string  `json:"category" validate:"required" doc:"Category"`
	Price    float64 `json:"price" validate:"gte=0" doc:"Price"`
	Image    string  `json:"image,omitempty" doc:"Display glyph"`
	Priority string  `json:"priority" validate:"required" doc:"Priority"`
}

type AddItemInput struct {
	Body AddItemRequest
}

type ClaimItemRequest struct {
	Name string `json:"name" validate:"required,max=100" doc:"Name of the claiming guest"`
}

type ClaimItemInput struct {
	ID   string `path:"id" doc:"Item ID"`
	Body ClaimItemRequest
}

type DeleteItemInput struct {
	ID string `path:"id" doc:"Item ID"`
}

// === Handlers ===

func (s *Server) handleListRegistryItems(ctx context.Context, input *ListItemsInput) (*ListItemsOutput, error) {
	items, err := s.services.Registry.ListItems(ctx, service.ItemFilter{
		Category:  domain.ItemCategory(input.Category),
		MaxPrice:  input.MaxPrice,
		Available: input.Available,
	})
	if err != nil {
		return nil, err
	}

	resp := make([]ItemResponse, len(items))
	for i, item := range items {
		resp[i] = mapItemResponse(item)
	}

	return &ListItemsOutput{Body: ListItemsResponse{Items: resp}}, nil
}

func (s *Server) handleGetRegistryStats(ctx context.Context, _ *struct{}) (*StatsOutput, error) {
	stats, err := s.services.Registry.Stats(ctx)
	if err != nil {
		return nil, err
	}

	return &StatsOutput{Body: StatsResponse{
		Total:     stats.Total,
		Claimed:   stats.Claimed,
		Remaining: stats.Remaining,
	}}, nil
}

func (s *Server) handleGetRegistryItem(ctx context.Context, input *GetItemInput) (*ItemOutput, error) {
	item, err := s.services.Registry.GetItem(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	return &ItemOutput{Body: mapItemResponse(item)}, nil
}

func (s *Server) handleAddRegistryItem(ctx context.Context, input *AddItemInput) (*ItemOutput, error) {
	if err := s.validate.Validate(input.Body); err != nil {
		return nil, err
	}

	item, err := s.services.Registry.AddItem(ctx, service.AddItemParams{
		Name:     input.Body.Name,
		Category: domain.ItemCategory(input.Body.Category),
		Price:    input.Body.Price,
		Image:    input.Body.Image,
		Priority: domain.Priority(input.Body.Priority),
	})
	if err != nil {
		return nil, err
	}

	return &ItemOutput{Body: mapItemResponse(item)}, nil
}

func (s *Server) handleClaimRegistryItem(ctx context.Context, input *ClaimItemInput) (*MessageOutput, error) {
	if err := s.validate.Validate(input.Body); err != nil {
		return nil, err
	}

	// A claim on a deleted item is deliberately not an error: another
	// guest's browser may simply be showing a stale list.
	if _, err := s.services.Registry.ClaimItem(ctx, input.ID, input.Body.Name); err != nil {
		return nil, err
	}

	return &MessageOutput{Body: MessageResponse{Message: "Item claimed"}}, nil
}

func (s *Server) handleDeleteRegistryItem(ctx context.Context, input *DeleteItemInput) (*MessageOutput, error) {
	if err := s.services.Registry.DeleteItem(ctx, input.ID); err != nil {
		return nil, err
	}

	return &MessageOutput{Body: MessageResponse{Message: "Item deleted"}}, nil
}

// === Mappers ===

func mapItemResponse(item *domain.RegistryItem) ItemResponse {
	return ItemResponse{
		ID:        item.ID,
		Name:      item.Name,
		Category:  string(item.Category),
		Price:     item.Price,
		Claimed:   item.Claimed,
		ClaimedBy: item.ClaimedBy,
		Image:     item.Image,
		Priority:  string(item.Priority),
		CreatedAt: item.CreatedAt,
		UpdatedAt: item.UpdatedAt,
	}
}
