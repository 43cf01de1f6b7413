package builder

import (
	"strconv"
	"strings"

	pkgopenapi "github.com/goliatone/go-formlist/pkg/openapi"
)

const (
	namespaceKey    = "x-formlist"
	currentValueKey = "x-current-value"
	endpointKey     = "x-endpoint"
)

// hints are the x-formlist keys a schema or operation may carry:
//
//	x-formlist:
//	  label: Display name
//	  placeholder: Jane Doe
//	  widget: textarea | segment | hidden | toggle
//	  order: 2
//	  decimals: 1
//	  collapsed: true
//	  submitLabel: Save
//	  title: Edit account
type hints map[string]any

func hintsOf(extensions map[string]any) hints {
	out := hints{}
	if ns, ok := extensions[namespaceKey].(map[string]any); ok {
		for k, v := range ns {
			out[k] = v
		}
	}
	for k, v := range extensions {
		if name, ok := strings.CutPrefix(k, namespaceKey+"-"); ok && name != "" {
			out[name] = v
		}
	}
	return out
}

func (h hints) str(key string) string {
	switch typed := h[key].(type) {
	case string:
		return strings.TrimSpace(typed)
	default:
		return ""
	}
}

func (h hints) flag(key string) bool {
	switch typed := h[key].(type) {
	case bool:
		return typed
	case string:
		parsed, _ := strconv.ParseBool(typed)
		return parsed
	default:
		return false
	}
}

func (h hints) number(key string) (float64, bool) {
	return toFloat(h[key])
}

// currentValue prefers x-current-value over the schema default.
func currentValue(schema pkgopenapi.Schema) (any, bool) {
	if v, ok := schema.Extensions[currentValueKey]; ok && v != nil {
		return v, true
	}
	if schema.Default != nil {
		return schema.Default, true
	}
	return nil, false
}

func toFloat(v any) (float64, bool) {
	switch typed := v.(type) {
	case float64:
		return typed, true
	case float32:
		return float64(typed), true
	case int:
		return float64(typed), true
	case int64:
		return float64(typed), true
	case uint64:
		return float64(typed), true
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(typed), 64)
		return parsed, err == nil
	default:
		return 0, false
	}
}

func toString(v any) string {
	switch typed := v.(type) {
	case nil:
		return ""
	case string:
		return typed
	case bool:
		return strconv.FormatBool(typed)
	case float64:
		return strconv.FormatFloat(typed, 'f', -1, 64)
	case int:
		return strconv.Itoa(typed)
	case int64:
		return strconv.FormatInt(typed, 10)
	default:
		if f, ok := toFloat(v); ok {
			return strconv.FormatFloat(f, 'f', -1, 64)
		}
		return ""
	}
}
