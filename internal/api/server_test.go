package api

import (
	"encoding/json/v2"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blossomapp/blossom-server/internal/ratelimit"
	"github.com/blossomapp/blossom-server/internal/search"
	"github.com/blossomapp/blossom-server/internal/service"
	"github.com/blossomapp/blossom-server/internal/sse"
	"github.com/blossomapp/blossom-server/internal/store"
	"github.com/blossomapp/blossom-server/internal/validation"
)

// testServer wraps the API server for handler testing.
type testServer struct {
	*Server
	api   humatest.TestAPI
	store *store.Store
}

func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "blossom-api-test-*")
	require.NoError(t, err)

	st, err := store.New(filepath.Join(tmpDir, "db"), nil, store.NewNoopEmitter())
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	searchIndex, err := search.NewSearchIndex(search.Options{
		DataPath: tmpDir,
		Logger:   logger,
	})
	require.NoError(t, err)

	sseManager := sse.NewManager(logger)
	sseHandler := sse.NewHandler(sseManager, logger)

	services := &Services{
		Registry: service.NewRegistryService(st, logger),
		Card:     service.NewCardService(st, logger),
		Advice:   service.NewAdviceService(st, st, searchIndex, logger),
		Journey:  service.NewJourneyService(st, st, logger),
	}

	router := chi.NewRouter()

	s := &Server{
		store:       st,
		services:    services,
		searchIndex: searchIndex,
		sseManager:  sseManager,
		sseHandler:  sseHandler,
		router:      router,
		validate:    validation.New(),
		// High enough that tests never trip it.
		writeLimiter: ratelimit.New(1000, 1000),
		logger:       logger,
	}

	// chi requires all middleware before any route; humachi.New registers
	// the openapi/docs routes, so it must come after Use.
	router.Use(s.viewerCookie)
	router.Use(s.rateLimitWrites)

	humaConfig := huma.DefaultConfig("Blossom API Test", "1.0.0")
	api := humachi.New(router, humaConfig)
	s.api = api
	RegisterErrorHandler()

	s.registerHealthRoutes()
	s.registerRegistryRoutes()
	s.registerCardRoutes()
	s.registerAdviceRoutes()
	s.registerJourneyRoutes()
	s.registerSearchRoutes()

	t.Cleanup(func() {
		_ = searchIndex.Close()
		_ = st.Close()
		_ = os.RemoveAll(tmpDir)
	})

	return &testServer{
		Server: s,
		api:    humatest.Wrap(t, api),
		store:  st,
	}
}

func decodeBody[T any](t *testing.T, data []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(data, &v))
	return v
}

func TestHealthCheck(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/health")
	require.Equal(t, http.StatusOK, resp.Code)

	health := decodeBody[HealthResponse](t, resp.Body.Bytes())
	assert.Equal(t, "healthy", health.Status)
	assert.Contains(t, health.Components, "database")
	assert.Contains(t, health.Components, "search")
	assert.Contains(t, health.Components, "sse")
}

func TestRegistryEndpoints(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Post("/api/v1/registry", map[string]any{
		"name":     "Night Light",
		"category": "nursery",
		"price":    25.0,
		"image":    "💡",
		"priority": "low",
	})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	item := decodeBody[ItemResponse](t, resp.Body.Bytes())
	assert.NotEmpty(t, item.ID)
	assert.False(t, item.Claimed)

	resp = ts.api.Post("/api/v1/registry/"+item.ID+"/claim", map[string]any{
		"name": "Aunt Maria",
	})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	resp = ts.api.Get("/api/v1/registry/" + item.ID)
	require.Equal(t, http.StatusOK, resp.Code)
	claimed := decodeBody[ItemResponse](t, resp.Body.Bytes())
	assert.True(t, claimed.Claimed)
	assert.Equal(t, "Aunt Maria", claimed.ClaimedBy)

	resp = ts.api.Get("/api/v1/registry/stats")
	require.Equal(t, http.StatusOK, resp.Code)
	stats := decodeBody[StatsResponse](t, resp.Body.Bytes())
	assert.Equal(t, 1, stats.Total)
	assert.Equal(t, 1, stats.Claimed)
	assert.Equal(t, 0, stats.Remaining)

	resp = ts.api.Get("/api/v1/registry?available=true")
	require.Equal(t, http.StatusOK, resp.Code)
	available := decodeBody[ListItemsResponse](t, resp.Body.Bytes())
	assert.Empty(t, available.Items)
}

func TestRegistryGetMissingReturns404(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/api/v1/registry/item-missing")
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestRegistryClaimMissingIsNoop(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Post("/api/v1/registry/item-missing/claim", map[string]any{
		"name": "Maria",
	})
	assert.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
}

func TestRegistryAddRejectsUnknownCategory(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Post("/api/v1/registry", map[string]any{
		"name":     "Mystery Box",
		"category": "gadgets",
		"price":    10.0,
		"priority": "low",
	})
	assert.Equal(t, http.StatusBadRequest, resp.Code, resp.Body.String())
}

func TestCardEndpoints(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Post("/api/v1/cards", map[string]any{
		"sender_name": "Emma",
		"message":     "So happy for you!",
		"template_id": 3,
		"decoration":  "🦋",
	})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	card := decodeBody[CardResponse](t, resp.Body.Bytes())
	assert.NotEmpty(t, card.ID)
	assert.NotEmpty(t, card.Date)

	resp = ts.api.Get("/api/v1/cards")
	require.Equal(t, http.StatusOK, resp.Code)
	list := decodeBody[ListCardsResponse](t, resp.Body.Bytes())
	require.Len(t, list.Cards, 1)
	assert.Equal(t, "Emma", list.Cards[0].SenderName)

	resp = ts.api.Delete("/api/v1/cards/" + card.ID)
	require.Equal(t, http.StatusOK, resp.Code)

	// Deleting an already-deleted card is a silent no-op.
	resp = ts.api.Delete("/api/v1/cards/" + card.ID)
	assert.Equal(t, http.StatusOK, resp.Code)

	resp = ts.api.Get("/api/v1/cards")
	require.Equal(t, http.StatusOK, resp.Code)
	list = decodeBody[ListCardsResponse](t, resp.Body.Bytes())
	assert.Empty(t, list.Cards)
}

func TestCardSendRejectsBadTemplate(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Post("/api/v1/cards", map[string]any{
		"sender_name": "Emma",
		"message":     "hi",
		"template_id": 7,
	})
	assert.Equal(t, http.StatusBadRequest, resp.Code, resp.Body.String())
}

func TestTipEndpoints(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Post("/api/v1/tips", map[string]any{
		"name":     "Sarah",
		"category": "twins",
		"message":  "Sleep when they sleep. Both of them.",
	})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	tip := decodeBody[TipResponse](t, resp.Body.Bytes())
	assert.NotEmpty(t, tip.ID)
	assert.Zero(t, tip.Likes)

	viewer := "Cookie: blossom_viewer=viewer-1"

	resp = ts.api.Post("/api/v1/tips/"+tip.ID+"/like", viewer)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	resp = ts.api.Get("/api/v1/tips")
	require.Equal(t, http.StatusOK, resp.Code)
	list := decodeBody[ListTipsResponse](t, resp.Body.Bytes())
	require.Len(t, list.Tips, 1)
	assert.Equal(t, 1, list.Tips[0].Likes)

	resp = ts.api.Get("/api/v1/tips/reactions", viewer)
	require.Equal(t, http.StatusOK, resp.Code)
	reactions := decodeBody[ReactionsResponse](t, resp.Body.Bytes())
	assert.Contains(t, reactions.Liked, tip.ID)

	// Switching to dislike moves both counters.
	resp = ts.api.Post("/api/v1/tips/"+tip.ID+"/dislike", viewer)
	require.Equal(t, http.StatusOK, resp.Code)

	resp = ts.api.Get("/api/v1/tips")
	require.Equal(t, http.StatusOK, resp.Code)
	list = decodeBody[ListTipsResponse](t, resp.Body.Bytes())
	assert.Equal(t, 0, list.Tips[0].Likes)
	assert.Equal(t, 1, list.Tips[0].Dislikes)

	resp = ts.api.Post("/api/v1/tips/"+tip.ID+"/comments", map[string]any{
		"name": "Maria",
		"text": "Great advice!",
	})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	comment := decodeBody[CommentResponse](t, resp.Body.Bytes())
	assert.NotEmpty(t, comment.ID)

	resp = ts.api.Delete("/api/v1/tips/" + tip.ID + "/comments/" + comment.ID)
	require.Equal(t, http.StatusOK, resp.Code)

	resp = ts.api.Delete("/api/v1/tips/" + tip.ID)
	require.Equal(t, http.StatusOK, resp.Code)

	resp = ts.api.Get("/api/v1/tips/reactions", viewer)
	require.Equal(t, http.StatusOK, resp.Code)
	reactions = decodeBody[ReactionsResponse](t, resp.Body.Bytes())
	assert.NotContains(t, reactions.Disliked, tip.ID)
}

func TestTipListFiltersByCategory(t *testing.T) {
	ts := setupTestServer(t)

	for _, body := range []map[string]any{
		{"name": "Sarah", "category": "twins", "message": "a"},
		{"name": "Emma", "category": "registry", "message": "b"},
	} {
		resp := ts.api.Post("/api/v1/tips", body)
		require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	}

	resp := ts.api.Get("/api/v1/tips?category=twins")
	require.Equal(t, http.StatusOK, resp.Code)
	list := decodeBody[ListTipsResponse](t, resp.Body.Bytes())
	require.Len(t, list.Tips, 1)
	assert.Equal(t, "Sarah", list.Tips[0].Name)
}

func TestJourneyEndpoints(t *testing.T) {
	ts := setupTestServer(t)
	require.NoError(t, ts.store.SeedDefaults(t.Context()))

	resp := ts.api.Get("/api/v1/updates")
	require.Equal(t, http.StatusOK, resp.Code)
	list := decodeBody[ListUpdatesResponse](t, resp.Body.Bytes())
	require.Len(t, list.Updates, 2)

	update := list.Updates[0]
	viewer := "Cookie: blossom_viewer=viewer-1"

	resp = ts.api.Post("/api/v1/updates/"+update.ID+"/like", viewer)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	resp = ts.api.Get("/api/v1/updates/reactions", viewer)
	require.Equal(t, http.StatusOK, resp.Code)
	reactions := decodeBody[UpdateReactionsResponse](t, resp.Body.Bytes())
	assert.Contains(t, reactions.Liked, update.ID)

	resp = ts.api.Post("/api/v1/updates/"+update.ID+"/comments", map[string]any{
		"name": "Grandpa Joe",
		"text": "Wonderful news!",
	})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	comment := decodeBody[CommentResponse](t, resp.Body.Bytes())

	resp = ts.api.Delete("/api/v1/updates/" + update.ID + "/comments/" + comment.ID)
	require.Equal(t, http.StatusOK, resp.Code)
}

func TestSearchEndpoint(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Post("/api/v1/tips", map[string]any{
		"name":     "Sarah",
		"category": "registry",
		"message":  "The stroller with the one-hand fold is worth every penny.",
	})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	resp = ts.api.Get("/api/v1/search?q=stroller")
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	result := decodeBody[search.SearchResult](t, resp.Body.Bytes())
	require.NotZero(t, result.Total)
	assert.Equal(t, "Sarah", result.Hits[0].Name)
}

func TestViewerCookieAssigned(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/api/v1/tips")
	require.Equal(t, http.StatusOK, resp.Code)

	cookies := resp.Result().Cookies()
	found := false
	for _, c := range cookies {
		if c.Name == viewerCookieName && c.Value != "" {
			found = true
		}
	}
	assert.True(t, found, "expected a viewer cookie to be set")
}
