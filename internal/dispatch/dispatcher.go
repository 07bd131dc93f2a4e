// Package dispatch maps a classified intent to its side-effecting handler:
// a read-only inventory aggregate or a canned navigation reply. A handler
// fault never fails the request; it degrades to a fixed reply.
package dispatch

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"foodops-assistant/internal/access"
	apperrors "foodops-assistant/internal/common/errors"
	"foodops-assistant/internal/common/logger"
	"foodops-assistant/internal/common/metrics"
	"foodops-assistant/internal/intent"
	"foodops-assistant/internal/models"
	"foodops-assistant/internal/replies"
)

var (
	ErrQueryExecutionFailed = errors.New("QUERY_EXECUTION_FAILED")
	ErrQueryTimeout         = errors.New("QUERY_TIMEOUT")
)

// Request is the per-message input a handler sees.
type Request struct {
	User       *models.UserInfo
	Section    models.SectionRef
	RawMessage string
}

// HandlerFunc executes one intent. Returning an error means the handler
// could not produce its reply; the dispatcher converts that to the
// degraded response for the intent.
type HandlerFunc func(ctx context.Context, req *Request) (*models.HandlerResponse, error)

type Dispatcher struct {
	config   *Config
	db       *sql.DB
	checker  access.Checker
	logger   logger.Logger
	registry map[intent.Intent]HandlerFunc
}

func NewDispatcher(config *Config, db *sql.DB, checker access.Checker, log logger.Logger) *Dispatcher {
	d := &Dispatcher{
		config:  config,
		db:      db,
		checker: checker,
		logger:  log.WithFields(map[string]interface{}{"component": "dispatch"}),
	}

	d.registry = map[intent.Intent]HandlerFunc{
		intent.ViewExpirySummary:     d.handleExpirySummary,
		intent.ViewStockAlerts:       d.handleStockAlerts,
		intent.ViewInventorySummary:  d.handleInventorySummary,
		intent.GoAddInventoryItem:    d.handleAddItem,
		intent.GoSection1Receiving:   d.handleReceiving,
		intent.GoSection1Storage:     d.handleStorage,
		intent.GoSection1Temperature: d.handleTemperature,
		intent.ViewProcessingLogs:    d.handleProcessingLogs,
		intent.ViewProcessingReport:  d.handleProcessingReport,
		intent.ViewFinancialReport:   d.handleFinancialReport,
		intent.ViewQualityReport:     d.handleQualityReport,
		intent.ViewNotifications:     d.handleNotifications,
		intent.GoProfile:             d.handleProfile,
		intent.ShowHelp:              d.handleHelp,
		intent.SmallTalk:             d.handleSmallTalk,
	}

	return d
}

// Registered reports whether an intent has a handler. Exists for coverage
// checks; normal dispatch goes through Dispatch.
func (d *Dispatcher) Registered(tag intent.Intent) bool {
	_, ok := d.registry[tag]
	return ok
}

// Dispatch runs the handler for a classification result. All faults are
// absorbed here: an unknown tag falls back to small talk and a handler
// error becomes the degraded reply for that intent.
func (d *Dispatcher) Dispatch(ctx context.Context, result intent.Result, user *models.UserInfo, rawMessage string) *models.HandlerResponse {
	tag := result.Intent
	metrics.ChatMessagesTotal.WithLabelValues(string(tag)).Inc()

	handler, ok := d.registry[tag]
	if !ok {
		d.logger.Warn("no handler registered for intent, using fallback", map[string]interface{}{
			"intent": string(tag),
		})
		handler = d.handleSmallTalk
	}

	req := &Request{
		User:       user,
		Section:    result.Section,
		RawMessage: rawMessage,
	}

	start := time.Now()
	resp, err := handler(ctx, req)
	metrics.ChatHandlerDuration.WithLabelValues(string(tag)).Observe(time.Since(start).Seconds())

	if err != nil {
		code := errorCode(err)
		d.logger.Error("handler failed, returning degraded reply", map[string]interface{}{
			"intent":    string(tag),
			"section":   sectionField(result.Section),
			"errorCode": code,
			"error":     err.Error(),
		})
		metrics.ChatHandlerFailures.WithLabelValues(string(tag), code).Inc()
		return d.degradedResponse(tag)
	}

	return resp
}

// requireAccess performs the authorization step shared by every handler.
// It returns a non-nil response only on denial; that response must be sent
// as-is, before any database work happens.
func (d *Dispatcher) requireAccess(req *Request, section models.SectionRef, tag intent.Intent) *models.HandlerResponse {
	if !section.Valid {
		return nil
	}
	if d.checker.CanAccessSection(req.User, section.Number) {
		return nil
	}

	metrics.ChatAccessDenials.WithLabelValues(string(tag)).Inc()

	return &models.HandlerResponse{
		Reply: replies.MustRender(replies.TemplateNoAccess, map[string]interface{}{
			"section": section.Number,
		}),
		Actions: []models.Action{},
	}
}

// degradedResponse maps an intent to the "could not load X" reply for the
// data summaries; anything else gets the generic fallback.
func (d *Dispatcher) degradedResponse(tag intent.Intent) *models.HandlerResponse {
	var what, page string
	switch tag {
	case intent.ViewExpirySummary:
		what, page = "expiry summary", "Expiry Report"
	case intent.ViewStockAlerts:
		what, page = "stock alerts", "Stock Alerts"
	case intent.ViewInventorySummary:
		what, page = "inventory summary", "Inventory"
	default:
		return fallbackResponse()
	}

	return &models.HandlerResponse{
		Reply: replies.MustRender(replies.TemplateDegraded, map[string]interface{}{
			"what": what,
			"page": page,
		}),
		Actions: []models.Action{},
	}
}

func fallbackResponse() *models.HandlerResponse {
	return &models.HandlerResponse{
		Reply: replies.MustRender(replies.TemplateFallback, nil),
		Actions: []models.Action{
			models.SuggestAction("Help", "help"),
		},
	}
}

func errorCode(err error) string {
	switch {
	case errors.Is(err, ErrQueryTimeout):
		return string(apperrors.ErrCodeQueryTimeout)
	case errors.Is(err, ErrQueryExecutionFailed):
		return string(apperrors.ErrCodeQueryExecutionFailed)
	case errors.Is(err, replies.ErrTemplateNotFound):
		return string(apperrors.ErrCodeReplyTemplateNotFound)
	case errors.Is(err, replies.ErrDataInvalid):
		return string(apperrors.ErrCodeReplyRenderFailed)
	default:
		return "UNKNOWN_ERROR"
	}
}

func sectionField(section models.SectionRef) interface{} {
	if !section.Valid {
		return nil
	}
	return section.Number
}
