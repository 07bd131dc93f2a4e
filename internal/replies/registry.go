// Package replies holds every fixed user-facing reply string in one template
// registry. Each entry pairs a {{placeholder}} template with a JSON Schema
// for its substitution data, so a handler can never render a reply with
// missing or mistyped values.
package replies

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"sync"

	_ "embed"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed registry.json
var registryBytes []byte

var (
	ErrTemplateNotFound = errors.New("REPLY_TEMPLATE_NOT_FOUND")
	ErrDataInvalid      = errors.New("REPLY_DATA_INVALID")
)

// Template ids used by the dispatcher.
const (
	TemplateEmptyPrompt       = "empty_prompt"
	TemplateNoAccess          = "no_access"
	TemplateHelp              = "help"
	TemplateFallback          = "fallback"
	TemplateDegraded          = "degraded"
	TemplateExpirySummary     = "expiry_summary"
	TemplateStockAlerts       = "stock_alerts_summary"
	TemplateInventorySummary  = "inventory_summary"
	TemplateNavAddItem        = "nav_add_item"
	TemplateNavReceiving      = "nav_receiving"
	TemplateNavStorage        = "nav_storage"
	TemplateNavTemperature    = "nav_temperature"
	TemplateNavProcessingLogs = "nav_processing_logs"
	TemplateNavProcessingRpt  = "nav_processing_report"
	TemplateNavFinancialRpt   = "nav_financial_report"
	TemplateNavQualityRpt     = "nav_quality_report"
	TemplateNavNotifications  = "nav_notifications"
	TemplateNavProfile        = "nav_profile"
)

// TemplateDefinition is one canned-reply entry in the embedded registry.
type TemplateDefinition struct {
	ID       string                 `json:"id"`
	Template string                 `json:"template"`
	Schema   map[string]interface{} `json:"schema"`
}

var (
	loadOnce  sync.Once
	loadErr   error
	templates map[string]*TemplateDefinition
)

var placeholderPattern = regexp.MustCompile(`\{\{(\w+)\}\}`)

func load() {
	var registry struct {
		Templates []TemplateDefinition `json:"templates"`
	}
	if err := json.Unmarshal(registryBytes, &registry); err != nil {
		loadErr = fmt.Errorf("parse reply registry: %w", err)
		return
	}

	templates = make(map[string]*TemplateDefinition, len(registry.Templates))
	for i := range registry.Templates {
		t := &registry.Templates[i]
		templates[t.ID] = t
	}
}

func lookup(id string) (*TemplateDefinition, error) {
	loadOnce.Do(load)
	if loadErr != nil {
		return nil, loadErr
	}

	t, ok := templates[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrTemplateNotFound, id)
	}
	return t, nil
}

// Render produces the reply text for a template id, validating the
// substitution data against the template's schema first. Templates with an
// empty schema take no data.
func Render(id string, data map[string]interface{}) (string, error) {
	t, err := lookup(id)
	if err != nil {
		return "", err
	}

	if err := validateData(t.Schema, data); err != nil {
		return "", fmt.Errorf("%w: template %s: %v", ErrDataInvalid, id, err)
	}

	var missing []string
	result := placeholderPattern.ReplaceAllStringFunc(t.Template, func(match string) string {
		key := placeholderPattern.FindStringSubmatch(match)[1]
		value, exists := data[key]
		if !exists {
			missing = append(missing, key)
			return match
		}
		return formatValue(value)
	})

	if len(missing) > 0 {
		return "", fmt.Errorf("%w: template %s: unresolved placeholders %v", ErrDataInvalid, id, missing)
	}

	return result, nil
}

// MustRender is Render for registry-constant callers where a failure is a
// programming error in this package, not a runtime condition.
func MustRender(id string, data map[string]interface{}) string {
	text, err := Render(id, data)
	if err != nil {
		panic(err)
	}
	return text
}

func validateData(schemaMap map[string]interface{}, data map[string]interface{}) error {
	if len(schemaMap) == 0 {
		return nil
	}

	if data == nil {
		data = map[string]interface{}{}
	}

	schemaLoader := gojsonschema.NewGoLoader(schemaMap)
	documentLoader := gojsonschema.NewGoLoader(data)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	if !result.Valid() {
		errs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			errs[i] = desc.String()
		}
		return fmt.Errorf("data validation failed: %v", errs)
	}

	return nil
}

func formatValue(value interface{}) string {
	switch v := value.(type) {
	case string:
		return v
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}
