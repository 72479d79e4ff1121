package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/blossomapp/blossom-server/internal/search"
)

func (s *Server) registerSearchRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "search",
		Method:      http.MethodGet,
		Path:        "/api/v1/search",
		Summary:     "Search",
		Description: "Full-text search over advice tips and journey updates",
		Tags:        []string{"Search"},
	}, s.handleSearch)
}

// === DTOs ===

type SearchInput struct {
	Query    string `query:"q" doc:"Search query"`
	Type     string `query:"type" doc:"Restrict to a document type (tip, update)"`
	Category string `query:"category" doc:"Filter tips by category"`
	Limit    int    `query:"limit" doc:"Maximum hits to return (default 20)"`
	Offset   int    `query:"offset" doc:"Hits to skip for pagination"`
	Sort     string `query:"sort" doc:"Sort order: relevance, name, or recent"`
}

type SearchOutput struct {
	Body search.SearchResult
}

// === Handlers ===

func (s *Server) handleSearch(ctx context.Context, input *SearchInput) (*SearchOutput, error) {
	params := search.DefaultSearchParams()
	params.Query = input.Query
	params.Category = input.Category
	if input.Type != "" {
		params.Types = []string{input.Type}
	}
	if input.Limit > 0 {
		params.Limit = input.Limit
	}
	if input.Offset > 0 {
		params.Offset = input.Offset
	}
	if input.Sort != "" {
		params.SortBy = input.Sort
	}

	result, err := s.services.Advice.Search(ctx, params)
	if err != nil {
		return nil, err
	}

	return &SearchOutput{Body: *result}, nil
}
