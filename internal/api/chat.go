package api

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"foodops-assistant/internal/intent"
	"foodops-assistant/internal/models"
	"foodops-assistant/internal/replies"
	"foodops-assistant/internal/transcript"
)

type chatRequest struct {
	Message string `json:"message"`
}

type chatResponse struct {
	Success bool            `json:"success"`
	Reply   string          `json:"reply"`
	Actions []models.Action `json:"actions"`
}

// Chat runs one message through the pipeline: load context, classify,
// dispatch, persist context, respond. Every authenticated path answers
// success true; faults inside the pipeline degrade the reply, not the
// status.
func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := UserFromContext(ctx)
	requestID := RequestIDFromContext(ctx)

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondEmptyPrompt(w)
		return
	}

	message := strings.TrimSpace(req.Message)
	if message == "" {
		h.respondEmptyPrompt(w)
		return
	}

	convCtx := h.sessions.Load(ctx, user.ID)
	convCtx.User = user

	result := intent.Detect(message, convCtx)

	h.logger.Info("message classified", map[string]interface{}{
		"requestId": requestID,
		"userId":    user.ID,
		"intent":    string(result.Intent),
		"section":   sectionLogField(result.Section),
	})

	resp := h.dispatcher.Dispatch(ctx, result, user, message)

	convCtx.LastIntent = string(result.Intent)
	convCtx.LastSection = result.Section
	if err := h.sessions.Save(ctx, user.ID, convCtx); err != nil {
		h.logger.Warn("failed to persist conversation context", map[string]interface{}{
			"requestId": requestID,
			"userId":    user.ID,
			"error":     err.Error(),
		})
	}

	if h.transcripts.Enabled() {
		go h.transcripts.Record(&transcript.Entry{
			RequestID: requestID,
			UserID:    user.ID,
			Message:   message,
			Intent:    string(result.Intent),
			Section:   transcript.SectionValue(result.Section),
			Reply:     resp.Reply,
			Timestamp: time.Now().UTC(),
		})
	}

	JSON(w, http.StatusOK, chatResponse{
		Success: true,
		Reply:   resp.Reply,
		Actions: actionsOrEmpty(resp.Actions),
	})
}

func (h *Handler) respondEmptyPrompt(w http.ResponseWriter) {
	JSON(w, http.StatusOK, chatResponse{
		Success: true,
		Reply:   replies.MustRender(replies.TemplateEmptyPrompt, nil),
		Actions: []models.Action{},
	})
}

// actionsOrEmpty keeps the wire shape stable: actions is always an array,
// never null.
func actionsOrEmpty(actions []models.Action) []models.Action {
	if actions == nil {
		return []models.Action{}
	}
	return actions
}

func sectionLogField(section models.SectionRef) interface{} {
	if !section.Valid {
		return nil
	}
	return section.Number
}
