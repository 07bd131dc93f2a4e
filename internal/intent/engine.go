package intent

import (
	"strings"

	"foodops-assistant/internal/models"
)

// Result is the outcome of classifying one message. Intent is always set;
// Section is the only entity currently extracted.
type Result struct {
	Intent  Intent
	Section models.SectionRef
}

// Detect classifies a raw chat message against the rule table. The
// conversation context only feeds the section fallback; it is never
// written. Empty or unrecognizable input resolves to SmallTalk.
func Detect(message string, convCtx *models.ConversationContext) Result {
	// strings.ToLower folds the full Unicode range, not just ASCII.
	normalized := strings.ToLower(message)

	section := extractSection(normalized, convCtx)

	for i := range rules {
		if rules[i].matches(normalized) {
			return Result{Intent: rules[i].intent, Section: section}
		}
	}

	return Result{Intent: SmallTalk, Section: section}
}
