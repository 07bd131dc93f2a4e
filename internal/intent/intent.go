// Package intent classifies chat messages into a closed set of intents and
// extracts the optional section entity. Classification is pure: no I/O, no
// shared state, identical inputs always produce identical results.
package intent

// Intent is a tag from the closed set of recognized message purposes.
// Unknown input always resolves to SmallTalk, never to an error.
type Intent string

const (
	ViewExpirySummary     Intent = "view_expiry_summary"
	ViewStockAlerts       Intent = "view_stock_alerts"
	GoAddInventoryItem    Intent = "go_add_inventory_item"
	ViewInventorySummary  Intent = "view_inventory_summary"
	GoSection1Receiving   Intent = "go_section1_receiving"
	GoSection1Storage     Intent = "go_section1_storage"
	GoSection1Temperature Intent = "go_section1_temperature"
	ViewProcessingLogs    Intent = "view_processing_logs"
	ViewProcessingReport  Intent = "view_processing_report"
	ViewFinancialReport   Intent = "view_financial_report"
	ViewQualityReport     Intent = "view_quality_report"
	ViewNotifications     Intent = "view_notifications"
	GoProfile             Intent = "go_profile"
	ShowHelp              Intent = "show_help"
	SmallTalk             Intent = "small_talk"
)

// All returns every recognized intent, fallback included. Dispatch uses it
// to verify handler coverage.
func All() []Intent {
	return []Intent{
		ViewExpirySummary,
		ViewStockAlerts,
		GoAddInventoryItem,
		ViewInventorySummary,
		GoSection1Receiving,
		GoSection1Storage,
		GoSection1Temperature,
		ViewProcessingLogs,
		ViewProcessingReport,
		ViewFinancialReport,
		ViewQualityReport,
		ViewNotifications,
		GoProfile,
		ShowHelp,
		SmallTalk,
	}
}
