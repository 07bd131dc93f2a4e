package dispatch

import (
	"context"

	"foodops-assistant/internal/intent"
	"foodops-assistant/internal/models"
	"foodops-assistant/internal/replies"
)

// Frontend page paths the navigation replies point at.
const (
	pageExpiryReport     = "/inventory/expiry-report"
	pageStockAlerts      = "/inventory/stock-alerts"
	pageInventory        = "/inventory"
	pageAddItem          = "/inventory/add-item"
	pageReceiving        = "/section1/receiving"
	pageStorage          = "/section1/storage"
	pageTemperature      = "/section1/temperature"
	pageProcessingLogs   = "/processing/logs"
	pageProcessingReport = "/reports/processing"
	pageFinancialReport  = "/reports/financial"
	pageQualityReport    = "/reports/quality"
	pageNotifications    = "/notifications"
	pageProfile          = "/profile"
)

func (d *Dispatcher) handleAddItem(_ context.Context, req *Request) (*models.HandlerResponse, error) {
	if denied := d.requireAccess(req, req.Section, intent.GoAddInventoryItem); denied != nil {
		return denied, nil
	}
	return navResponse(replies.TemplateNavAddItem, "Add Inventory Item", withSection(pageAddItem, req.Section))
}

// The three Section 1 workflows imply their section regardless of what the
// message said, so the access check always runs against section 1.

func (d *Dispatcher) handleReceiving(_ context.Context, req *Request) (*models.HandlerResponse, error) {
	if denied := d.requireAccess(req, models.Section(1), intent.GoSection1Receiving); denied != nil {
		return denied, nil
	}
	return navResponse(replies.TemplateNavReceiving, "Open Receiving", pageReceiving)
}

func (d *Dispatcher) handleStorage(_ context.Context, req *Request) (*models.HandlerResponse, error) {
	if denied := d.requireAccess(req, models.Section(1), intent.GoSection1Storage); denied != nil {
		return denied, nil
	}
	return navResponse(replies.TemplateNavStorage, "Open Storage", pageStorage)
}

func (d *Dispatcher) handleTemperature(_ context.Context, req *Request) (*models.HandlerResponse, error) {
	if denied := d.requireAccess(req, models.Section(1), intent.GoSection1Temperature); denied != nil {
		return denied, nil
	}
	return navResponse(replies.TemplateNavTemperature, "Open Temperature Log", pageTemperature)
}

func (d *Dispatcher) handleProcessingLogs(_ context.Context, req *Request) (*models.HandlerResponse, error) {
	if denied := d.requireAccess(req, req.Section, intent.ViewProcessingLogs); denied != nil {
		return denied, nil
	}
	return navResponse(replies.TemplateNavProcessingLogs, "Open Processing Logs", pageProcessingLogs)
}

func (d *Dispatcher) handleProcessingReport(_ context.Context, req *Request) (*models.HandlerResponse, error) {
	if denied := d.requireAccess(req, req.Section, intent.ViewProcessingReport); denied != nil {
		return denied, nil
	}
	return navResponse(replies.TemplateNavProcessingRpt, "Open Processing Report", pageProcessingReport)
}

func (d *Dispatcher) handleFinancialReport(_ context.Context, req *Request) (*models.HandlerResponse, error) {
	if denied := d.requireAccess(req, req.Section, intent.ViewFinancialReport); denied != nil {
		return denied, nil
	}
	return navResponse(replies.TemplateNavFinancialRpt, "Open Financial Report", pageFinancialReport)
}

func (d *Dispatcher) handleQualityReport(_ context.Context, req *Request) (*models.HandlerResponse, error) {
	if denied := d.requireAccess(req, req.Section, intent.ViewQualityReport); denied != nil {
		return denied, nil
	}
	return navResponse(replies.TemplateNavQualityRpt, "Open Quality Report", pageQualityReport)
}

func (d *Dispatcher) handleNotifications(_ context.Context, req *Request) (*models.HandlerResponse, error) {
	if denied := d.requireAccess(req, req.Section, intent.ViewNotifications); denied != nil {
		return denied, nil
	}
	return navResponse(replies.TemplateNavNotifications, "Open Notifications", pageNotifications)
}

func (d *Dispatcher) handleProfile(_ context.Context, req *Request) (*models.HandlerResponse, error) {
	if denied := d.requireAccess(req, req.Section, intent.GoProfile); denied != nil {
		return denied, nil
	}
	return navResponse(replies.TemplateNavProfile, "Open Profile", pageProfile)
}

func (d *Dispatcher) handleHelp(_ context.Context, _ *Request) (*models.HandlerResponse, error) {
	reply, err := replies.Render(replies.TemplateHelp, nil)
	if err != nil {
		return nil, err
	}
	return &models.HandlerResponse{
		Reply: reply,
		Actions: []models.Action{
			models.SuggestAction("Expiry summary Section 1", "Show expiry summary for Section 1"),
			models.SuggestAction("Financial report", "Open financial report"),
		},
	}, nil
}

func (d *Dispatcher) handleSmallTalk(_ context.Context, _ *Request) (*models.HandlerResponse, error) {
	return fallbackResponse(), nil
}

func navResponse(templateID, label, url string) (*models.HandlerResponse, error) {
	reply, err := replies.Render(templateID, nil)
	if err != nil {
		return nil, err
	}
	return &models.HandlerResponse{
		Reply: reply,
		Actions: []models.Action{
			models.OpenURLAction(label, url),
		},
	}, nil
}
