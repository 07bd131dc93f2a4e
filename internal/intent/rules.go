package intent

import "strings"

// rule maps a set of trigger phrases to one intent. Rules are evaluated in
// table order and the first match wins, so earlier rules shadow later ones
// on shared vocabulary.
type rule struct {
	intent   Intent
	triggers []string
	// negative phrases veto the match even when a trigger is present
	// ("inventory report" must not resolve to the inventory summary).
	negative []string
	// requires is an extra substring that must appear alongside a trigger.
	// Only the processing-logs rule uses it: a bare "log" must also be
	// present, which keeps "show me batches" from matching.
	requires string
}

func (r *rule) matches(normalized string) bool {
	triggered := false
	for _, t := range r.triggers {
		if strings.Contains(normalized, t) {
			triggered = true
			break
		}
	}
	if !triggered {
		return false
	}

	for _, n := range r.negative {
		if strings.Contains(normalized, n) {
			return false
		}
	}

	if r.requires != "" && !strings.Contains(normalized, r.requires) {
		return false
	}

	return true
}

// rules is the fixed priority-ordered matcher table.
var rules = []rule{
	{
		intent:   ViewExpirySummary,
		triggers: []string{"expiry", "expiring", "expired"},
	},
	{
		intent:   ViewStockAlerts,
		triggers: []string{"stock alert", "low stock", "critical stock"},
	},
	{
		intent:   GoAddInventoryItem,
		triggers: []string{"add item", "new item", "create item"},
	},
	{
		intent:   ViewInventorySummary,
		triggers: []string{"inventory", "stock"},
		negative: []string{"report", "expiry", "expiring"},
	},
	{
		intent:   GoSection1Receiving,
		triggers: []string{"receiving", "receive materials"},
	},
	{
		intent:   GoSection1Storage,
		triggers: []string{"storage", "capacity"},
	},
	{
		intent:   GoSection1Temperature,
		triggers: []string{"temperature", "humidity"},
	},
	{
		intent:   ViewProcessingLogs,
		triggers: []string{"processing log", "process log", "batches"},
		requires: "log",
	},
	{
		intent:   ViewProcessingReport,
		triggers: []string{"processing report", "yield report", "process report"},
	},
	{
		intent:   ViewFinancialReport,
		triggers: []string{"financial report", "inventory value", "stock value"},
	},
	{
		intent:   ViewQualityReport,
		triggers: []string{"quality report", "inspection report", "pass rate"},
	},
	{
		intent:   ViewNotifications,
		triggers: []string{"notification", "alerts", "messages"},
		negative: []string{"stock"},
	},
	{
		intent:   GoProfile,
		triggers: []string{"profile", "my account", "change password"},
	},
	{
		intent:   ShowHelp,
		triggers: []string{"help", "what can you do", "how to use", "guide"},
	},
}
