package models

// ExpirySummary aggregates active inventory rows by expiry window.
type ExpirySummary struct {
	TotalItems int `json:"totalItems"`
	Expired    int `json:"expired"`
	Critical   int `json:"critical"` // expires within 7 days
	Warning    int `json:"warning"`  // expires in 8-30 days
}

// StockAlertSummary aggregates active inventory rows by alert_status.
type StockAlertSummary struct {
	TotalItems int `json:"totalItems"`
	Critical   int `json:"critical"`
	LowStock   int `json:"lowStock"`
}

// InventorySummary aggregates active inventory rows by quantity and value.
type InventorySummary struct {
	TotalItems    int     `json:"totalItems"`
	TotalQuantity float64 `json:"totalQuantity"`
	TotalValue    float64 `json:"totalValue"` // quantity * unit_cost, approximate
}
