package dispatch

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"

	"foodops-assistant/internal/intent"
	"foodops-assistant/internal/models"
	"foodops-assistant/internal/replies"
)

// Aggregate queries over active inventory rows. Each has a sectionless and
// a section-scoped variant; the scoped one is always $1-parameterized.
const (
	expiryQuery = `SELECT COUNT(*) AS total_items,
		COUNT(*) FILTER (WHERE expiry_date < CURRENT_DATE) AS expired,
		COUNT(*) FILTER (WHERE expiry_date >= CURRENT_DATE AND expiry_date <= CURRENT_DATE + 7) AS critical,
		COUNT(*) FILTER (WHERE expiry_date > CURRENT_DATE + 7 AND expiry_date <= CURRENT_DATE + 30) AS warning
		FROM inventory WHERE status = 'active'`

	stockAlertsQuery = `SELECT COUNT(*) AS total_items,
		COUNT(*) FILTER (WHERE alert_status = 'critical') AS critical,
		COUNT(*) FILTER (WHERE alert_status = 'low_stock') AS low_stock
		FROM inventory WHERE status = 'active'`

	inventoryQuery = `SELECT COUNT(*) AS total_items,
		SUM(quantity) AS total_quantity,
		SUM(quantity * unit_cost) AS total_value
		FROM inventory WHERE status = 'active'`

	sectionFilter = ` AND section = $1`
)

func (d *Dispatcher) handleExpirySummary(ctx context.Context, req *Request) (*models.HandlerResponse, error) {
	if denied := d.requireAccess(req, req.Section, intent.ViewExpirySummary); denied != nil {
		return denied, nil
	}

	summary, err := d.queryExpirySummary(ctx, req.Section)
	if err != nil {
		return nil, err
	}

	reply, err := replies.Render(replies.TemplateExpirySummary, map[string]interface{}{
		"scope":    scopeSuffix(req.Section),
		"total":    summary.TotalItems,
		"expired":  summary.Expired,
		"critical": summary.Critical,
		"warning":  summary.Warning,
	})
	if err != nil {
		return nil, err
	}

	return &models.HandlerResponse{
		Reply: reply,
		Actions: []models.Action{
			models.OpenURLAction("Open Expiry Report", withSection(pageExpiryReport, req.Section)),
		},
	}, nil
}

func (d *Dispatcher) handleStockAlerts(ctx context.Context, req *Request) (*models.HandlerResponse, error) {
	if denied := d.requireAccess(req, req.Section, intent.ViewStockAlerts); denied != nil {
		return denied, nil
	}

	summary, err := d.queryStockAlerts(ctx, req.Section)
	if err != nil {
		return nil, err
	}

	reply, err := replies.Render(replies.TemplateStockAlerts, map[string]interface{}{
		"scope":     scopeSuffix(req.Section),
		"total":     summary.TotalItems,
		"critical":  summary.Critical,
		"low_stock": summary.LowStock,
	})
	if err != nil {
		return nil, err
	}

	return &models.HandlerResponse{
		Reply: reply,
		Actions: []models.Action{
			models.OpenURLAction("Open Stock Alerts", withSection(pageStockAlerts, req.Section)),
		},
	}, nil
}

func (d *Dispatcher) handleInventorySummary(ctx context.Context, req *Request) (*models.HandlerResponse, error) {
	if denied := d.requireAccess(req, req.Section, intent.ViewInventorySummary); denied != nil {
		return denied, nil
	}

	summary, err := d.queryInventorySummary(ctx, req.Section)
	if err != nil {
		return nil, err
	}

	reply, err := replies.Render(replies.TemplateInventorySummary, map[string]interface{}{
		"scope":    scopeSuffix(req.Section),
		"total":    summary.TotalItems,
		"quantity": strconv.FormatFloat(summary.TotalQuantity, 'f', -1, 64),
		"value":    fmt.Sprintf("₱%.2f", summary.TotalValue),
	})
	if err != nil {
		return nil, err
	}

	return &models.HandlerResponse{
		Reply: reply,
		Actions: []models.Action{
			models.OpenURLAction("Open Inventory", withSection(pageInventory, req.Section)),
		},
	}, nil
}

// ==========================
// Query Execution
// ==========================

func (d *Dispatcher) queryExpirySummary(ctx context.Context, section models.SectionRef) (*models.ExpirySummary, error) {
	queryCtx, cancel := context.WithTimeout(ctx, d.config.QueryTimeout)
	defer cancel()

	query, args := scoped(expiryQuery, section)

	var total, expired, critical, warning sql.NullInt64
	if err := d.db.QueryRowContext(queryCtx, query, args...).Scan(&total, &expired, &critical, &warning); err != nil {
		return nil, queryFault(queryCtx, "expiry", err)
	}

	return &models.ExpirySummary{
		TotalItems: int(total.Int64),
		Expired:    int(expired.Int64),
		Critical:   int(critical.Int64),
		Warning:    int(warning.Int64),
	}, nil
}

func (d *Dispatcher) queryStockAlerts(ctx context.Context, section models.SectionRef) (*models.StockAlertSummary, error) {
	queryCtx, cancel := context.WithTimeout(ctx, d.config.QueryTimeout)
	defer cancel()

	query, args := scoped(stockAlertsQuery, section)

	var total, critical, lowStock sql.NullInt64
	if err := d.db.QueryRowContext(queryCtx, query, args...).Scan(&total, &critical, &lowStock); err != nil {
		return nil, queryFault(queryCtx, "stock alerts", err)
	}

	return &models.StockAlertSummary{
		TotalItems: int(total.Int64),
		Critical:   int(critical.Int64),
		LowStock:   int(lowStock.Int64),
	}, nil
}

func (d *Dispatcher) queryInventorySummary(ctx context.Context, section models.SectionRef) (*models.InventorySummary, error) {
	queryCtx, cancel := context.WithTimeout(ctx, d.config.QueryTimeout)
	defer cancel()

	query, args := scoped(inventoryQuery, section)

	// SUM over zero rows is NULL; the null types coerce that to zero so the
	// reply never shows "null" or "NaN".
	var total sql.NullInt64
	var quantity, value sql.NullFloat64
	if err := d.db.QueryRowContext(queryCtx, query, args...).Scan(&total, &quantity, &value); err != nil {
		return nil, queryFault(queryCtx, "inventory", err)
	}

	return &models.InventorySummary{
		TotalItems:    int(total.Int64),
		TotalQuantity: quantity.Float64,
		TotalValue:    value.Float64,
	}, nil
}

func scoped(query string, section models.SectionRef) (string, []interface{}) {
	if section.Valid {
		return query + sectionFilter, []interface{}{section.Number}
	}
	return query, nil
}

func queryFault(ctx context.Context, summary string, err error) error {
	if ctx.Err() == context.DeadlineExceeded {
		return fmt.Errorf("%w: %s", ErrQueryTimeout, summary)
	}
	return fmt.Errorf("%w: %s: %v", ErrQueryExecutionFailed, summary, err)
}

func scopeSuffix(section models.SectionRef) string {
	if !section.Valid {
		return ""
	}
	return fmt.Sprintf(" for Section %d", section.Number)
}

func withSection(path string, section models.SectionRef) string {
	if !section.Valid {
		return path
	}
	return fmt.Sprintf("%s?section=%d", path, section.Number)
}
