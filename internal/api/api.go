// Package api is the HTTP edge of the assistant: auth resolution, the chat
// endpoint, and liveness.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"foodops-assistant/internal/common/logger"
	"foodops-assistant/internal/dispatch"
	"foodops-assistant/internal/session"
	"foodops-assistant/internal/transcript"
)

// Pinger is the dependency-health slice of a database client.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler carries the collaborators every endpoint shares.
type Handler struct {
	sessions    *session.Store
	dispatcher  *dispatch.Dispatcher
	transcripts *transcript.Indexer
	postgres    Pinger
	redis       Pinger
	logger      logger.Logger
}

func NewHandler(sessions *session.Store, dispatcher *dispatch.Dispatcher, transcripts *transcript.Indexer, postgres, redis Pinger, log logger.Logger) *Handler {
	return &Handler{
		sessions:    sessions,
		dispatcher:  dispatcher,
		transcripts: transcripts,
		postgres:    postgres,
		redis:       redis,
		logger:      log.WithFields(map[string]interface{}{"component": "api"}),
	}
}

// JSON writes a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, `{"success": false, "message": "failed to encode response"}`, http.StatusInternalServerError)
	}
}
