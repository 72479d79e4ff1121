package api

import (
	"context"
	"encoding/json/v2"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const contextKeyViewerID contextKey = "viewer_id"

const viewerCookieName = "blossom_viewer"

// viewerCookie assigns each browser a stable random viewer ID via a
// cookie. Reactions are keyed by this ID, so it is device-scoped
// session state rather than an identity: clearing cookies resets the
// viewer's recorded reactions but never the shared counters.
func (s *Server) viewerCookie(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		viewerID := ""
		if c, err := r.Cookie(viewerCookieName); err == nil && c.Value != "" {
			viewerID = c.Value
		}

		if viewerID == "" {
			viewerID = uuid.NewString()
			http.SetCookie(w, &http.Cookie{
				Name:     viewerCookieName,
				Value:    viewerID,
				Path:     "/",
				MaxAge:   int((365 * 24 * time.Hour).Seconds()),
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}

		ctx := context.WithValue(r.Context(), contextKeyViewerID, viewerID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// getViewerID extracts the viewer ID from request context.
// Returns empty string if the middleware did not run.
func getViewerID(ctx context.Context) string {
	if viewerID, ok := ctx.Value(contextKeyViewerID).(string); ok {
		return viewerID
	}
	return ""
}

// rateLimitWrites applies per-IP rate limiting to mutating requests.
// Reads are unlimited; the whole site is a handful of small lists.
func (s *Server) rateLimitWrites(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet || r.Method == http.MethodHead || r.Method == http.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}

		key := getClientIP(r)
		if !s.writeLimiter.Allow(key) {
			s.logger.Warn("rate limit exceeded", "ip", key, "path", r.URL.Path)
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			_ = json.MarshalWrite(w, &APIError{
				Code:    "RATE_LIMITED",
				Message: "Too many requests. Please try again later.",
			})
			return
		}

		next.ServeHTTP(w, r)
	})
}

// getClientIP extracts the client IP from the request.
// Checks X-Forwarded-For and X-Real-IP headers before falling back to RemoteAddr.
func getClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		// First IP in the chain is the client.
		for i := 0; i < len(xff); i++ {
			if xff[i] == ',' {
				return xff[:i]
			}
		}
		return xff
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}

	// Strip the port from RemoteAddr.
	ip := r.RemoteAddr
	for i := len(ip) - 1; i >= 0; i-- {
		if ip[i] == ':' {
			return ip[:i]
		}
	}
	return ip
}
