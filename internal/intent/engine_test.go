package intent

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"foodops-assistant/internal/models"
)

// ==========================
// Test Helper Functions
// ==========================

func emptyContext() *models.ConversationContext {
	return &models.ConversationContext{}
}

func contextWithSection(n int) *models.ConversationContext {
	return &models.ConversationContext{LastSection: models.Section(n)}
}

// ==========================
// Classification Tests
// ==========================

func TestDetect_Classification(t *testing.T) {
	tests := []struct {
		name            string
		message         string
		convCtx         *models.ConversationContext
		expectedIntent  Intent
		expectedSection models.SectionRef
	}{
		{
			name:            "empty message falls back to small talk",
			message:         "",
			convCtx:         emptyContext(),
			expectedIntent:  SmallTalk,
			expectedSection: models.NoSection(),
		},
		{
			name:            "expiry question with explicit section",
			message:         "What is the expiry status for section 2?",
			convCtx:         emptyContext(),
			expectedIntent:  ViewExpirySummary,
			expectedSection: models.Section(2),
		},
		{
			name:            "low stock falls back to context section",
			message:         "low stock",
			convCtx:         contextWithSection(1),
			expectedIntent:  ViewStockAlerts,
			expectedSection: models.Section(1),
		},
		{
			name:            "expiry beats inventory on shared stock vocabulary",
			message:         "expired stock",
			convCtx:         emptyContext(),
			expectedIntent:  ViewExpirySummary,
			expectedSection: models.NoSection(),
		},
		{
			name:            "inventory report is vetoed by the negative set",
			message:         "show inventory report",
			convCtx:         emptyContext(),
			expectedIntent:  SmallTalk,
			expectedSection: models.Section(4), // "inventory" keyword still guesses a topic
		},
		{
			name:            "plain inventory matches summary",
			message:         "how is our inventory doing",
			convCtx:         emptyContext(),
			expectedIntent:  ViewInventorySummary,
			expectedSection: models.Section(4),
		},
		{
			name:            "add item navigation",
			message:         "I want to add item to section 3",
			convCtx:         emptyContext(),
			expectedIntent:  GoAddInventoryItem,
			expectedSection: models.Section(3),
		},
		{
			name:            "receiving navigation",
			message:         "open receiving",
			convCtx:         emptyContext(),
			expectedIntent:  GoSection1Receiving,
			expectedSection: models.NoSection(),
		},
		{
			name:            "storage capacity",
			message:         "what is the storage capacity",
			convCtx:         emptyContext(),
			expectedIntent:  GoSection1Storage,
			expectedSection: models.NoSection(),
		},
		{
			name:            "temperature and humidity",
			message:         "show humidity readings",
			convCtx:         emptyContext(),
			expectedIntent:  GoSection1Temperature,
			expectedSection: models.NoSection(),
		},
		{
			name:            "processing logs with bare log present",
			message:         "show the processing log",
			convCtx:         emptyContext(),
			expectedIntent:  ViewProcessingLogs,
			expectedSection: models.Section(5),
		},
		{
			name:            "batches alone does not trigger processing logs",
			message:         "show me batches",
			convCtx:         emptyContext(),
			expectedIntent:  SmallTalk,
			expectedSection: models.NoSection(),
		},
		{
			name:            "batches with log triggers processing logs",
			message:         "show me the batches log",
			convCtx:         emptyContext(),
			expectedIntent:  ViewProcessingLogs,
			expectedSection: models.NoSection(),
		},
		{
			name:            "processing report",
			message:         "I need the yield report",
			convCtx:         emptyContext(),
			expectedIntent:  ViewProcessingReport,
			expectedSection: models.Section(7),
		},
		{
			name:            "financial report",
			message:         "financial report please",
			convCtx:         emptyContext(),
			expectedIntent:  ViewFinancialReport,
			expectedSection: models.Section(7),
		},
		{
			name:            "inventory value report slips past the inventory veto",
			message:         "inventory value report",
			convCtx:         emptyContext(),
			expectedIntent:  ViewFinancialReport,
			expectedSection: models.Section(4),
		},
		{
			name:            "quality report",
			message:         "pass rate this week",
			convCtx:         emptyContext(),
			expectedIntent:  ViewQualityReport,
			expectedSection: models.NoSection(),
		},
		{
			name:            "notifications",
			message:         "any new messages?",
			convCtx:         emptyContext(),
			expectedIntent:  ViewNotifications,
			expectedSection: models.NoSection(),
		},
		{
			name:            "stock alerts shadow notifications on alerts vocabulary",
			message:         "stock alerts",
			convCtx:         emptyContext(),
			expectedIntent:  ViewStockAlerts,
			expectedSection: models.NoSection(),
		},
		{
			name:            "profile",
			message:         "change password please",
			convCtx:         emptyContext(),
			expectedIntent:  GoProfile,
			expectedSection: models.NoSection(),
		},
		{
			name:            "help",
			message:         "what can you do",
			convCtx:         emptyContext(),
			expectedIntent:  ShowHelp,
			expectedSection: models.NoSection(),
		},
		{
			name:            "unrecognized input",
			message:         "good morning!",
			convCtx:         emptyContext(),
			expectedIntent:  SmallTalk,
			expectedSection: models.NoSection(),
		},
		{
			name:            "nil context is tolerated",
			message:         "expiring items",
			convCtx:         nil,
			expectedIntent:  ViewExpirySummary,
			expectedSection: models.NoSection(),
		},
		{
			name:            "mixed case is normalized",
			message:         "EXPIRY Status For SECTION 2",
			convCtx:         emptyContext(),
			expectedIntent:  ViewExpirySummary,
			expectedSection: models.Section(2),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Detect(tt.message, tt.convCtx)

			assert.Equal(t, tt.expectedIntent, result.Intent)
			assert.Equal(t, tt.expectedSection, result.Section)
		})
	}
}

// ==========================
// Section Extraction Tests
// ==========================

func TestDetect_SectionExtraction(t *testing.T) {
	tests := []struct {
		name            string
		message         string
		convCtx         *models.ConversationContext
		expectedSection models.SectionRef
	}{
		{
			name:            "explicit section overrides keyword guess",
			message:         "inventory for section 3",
			convCtx:         emptyContext(),
			expectedSection: models.Section(3),
		},
		{
			name:            "explicit section without space",
			message:         "section3 status",
			convCtx:         emptyContext(),
			expectedSection: models.Section(3),
		},
		{
			name:            "explicit section overrides context",
			message:         "expiry in section 6",
			convCtx:         contextWithSection(2),
			expectedSection: models.Section(6),
		},
		{
			name:            "keyword guess overrides context",
			message:         "dehydration status",
			convCtx:         contextWithSection(5),
			expectedSection: models.Section(2),
		},
		{
			name:            "packaging keyword",
			message:         "packaging area",
			convCtx:         emptyContext(),
			expectedSection: models.Section(3),
		},
		{
			name:            "orders keyword",
			message:         "pending orders",
			convCtx:         emptyContext(),
			expectedSection: models.Section(6),
		},
		{
			name:            "raw material wins over later keywords",
			message:         "raw material inventory",
			convCtx:         emptyContext(),
			expectedSection: models.Section(1),
		},
		{
			name:            "section 8 is out of range and ignored",
			message:         "section 8 please",
			convCtx:         emptyContext(),
			expectedSection: models.NoSection(),
		},
		{
			name:            "no signal and no context means absent",
			message:         "hello there",
			convCtx:         emptyContext(),
			expectedSection: models.NoSection(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Detect(tt.message, tt.convCtx)

			assert.Equal(t, tt.expectedSection, result.Section)
		})
	}
}

// "section 3" anywhere in the text, any case, always extracts 3.
func TestDetect_SectionThreeAlwaysWins(t *testing.T) {
	variants := []string{
		"section 3",
		"Section 3 expiry",
		"give me the totals for SECTION 3 right now",
		"is seCtIoN 3 ok?",
		"inventory report section 3",
	}

	for _, msg := range variants {
		t.Run(msg, func(t *testing.T) {
			result := Detect(msg, contextWithSection(5))

			assert.Equal(t, models.Section(3), result.Section)
		})
	}
}

// ==========================
// Purity Tests
// ==========================

func TestDetect_Idempotent(t *testing.T) {
	convCtx := contextWithSection(2)
	messages := []string{
		"",
		"low stock",
		"What is the expiry status for section 2?",
		"show me batches",
		"Покажи срок годности", // non-ASCII input must not panic
	}

	for _, msg := range messages {
		t.Run(fmt.Sprintf("message %q", msg), func(t *testing.T) {
			first := Detect(msg, convCtx)
			second := Detect(msg, convCtx)

			assert.Equal(t, first, second)
			// the context must not have been touched
			assert.Equal(t, models.Section(2), convCtx.LastSection)
			assert.Empty(t, convCtx.LastIntent)
		})
	}
}
