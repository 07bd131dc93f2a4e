package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"foodops-assistant/internal/models"
)

type contextKey string

const (
	userContextKey      contextKey = "user"
	requestIDContextKey contextKey = "requestID"
)

const requestIDHeader = "X-Request-ID"

// RequestID tags every request with a UUID, echoed back in the response
// header and carried in the context for log correlation.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}
		w.Header().Set(requestIDHeader, id)

		ctx := context.WithValue(r.Context(), requestIDContextKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAuth resolves the bearer token to a user before the chat pipeline
// runs. Anything short of a live session is a 401; the pipeline never sees
// an unauthenticated request.
func (h *Handler) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			h.unauthorized(w, r, "missing token")
			return
		}

		user, err := h.sessions.ResolveToken(r.Context(), token)
		if err != nil {
			h.unauthorized(w, r, "token rejected")
			return
		}

		ctx := context.WithValue(r.Context(), userContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (h *Handler) unauthorized(w http.ResponseWriter, r *http.Request, reason string) {
	h.logger.Warn("unauthorized request", map[string]interface{}{
		"requestId": RequestIDFromContext(r.Context()),
		"path":      r.URL.Path,
		"reason":    reason,
	})
	JSON(w, http.StatusUnauthorized, map[string]interface{}{
		"success": false,
		"message": "Unauthorized",
	})
}

func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
	}
	return ""
}

// UserFromContext returns the authenticated user, or nil outside of
// RequireAuth-guarded routes.
func UserFromContext(ctx context.Context) *models.UserInfo {
	user, _ := ctx.Value(userContextKey).(*models.UserInfo)
	return user
}

// RequestIDFromContext returns the request id set by RequestID, or "".
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDContextKey).(string)
	return id
}
