package intent

import (
	"regexp"
	"strconv"
	"strings"

	"foodops-assistant/internal/models"
)

// sectionPattern matches an explicit section mention; input is already
// lower-cased when it gets here.
var sectionPattern = regexp.MustCompile(`section\s*([1-7])`)

// sectionKeywords maps topic vocabulary to the chatbot's topic-section
// numbering (1-7). This numbering is only a query-filter guess; it is NOT
// the physical production section list used for access assignment, even
// though both are called "section". Tested in order, first match wins.
var sectionKeywords = []struct {
	keyword string
	section int
}{
	{"raw material", 1},
	{"dehydration", 2},
	{"packaging", 3},
	{"inventory", 4},
	{"processing", 5},
	{"orders", 6},
	{"report", 7},
}

// extractSection resolves the section entity from a normalized message:
// an explicit "section N" mention beats topic keywords, which beat the
// last section remembered in the conversation context. Absence is a valid
// outcome meaning "no section filter".
func extractSection(normalized string, convCtx *models.ConversationContext) models.SectionRef {
	if m := sectionPattern.FindStringSubmatch(normalized); m != nil {
		n, err := strconv.Atoi(m[1])
		if err == nil {
			return models.Section(n)
		}
	}

	for _, sk := range sectionKeywords {
		if strings.Contains(normalized, sk.keyword) {
			return models.Section(sk.section)
		}
	}

	if convCtx != nil && convCtx.LastSection.Valid {
		return models.Section(convCtx.LastSection.Number)
	}

	return models.NoSection()
}
