package render

import (
	"fmt"
	"slices"
	"strings"

	"github.com/goliatone/go-formlist/pkg/form"
	"github.com/goliatone/go-formlist/pkg/value"
)

// HiddenField is an auxiliary submission parameter that is never displayed.
type HiddenField struct {
	Name  string
	Value string
}

// Hidden formats v with fmt.Sprint. The name is trimmed.
func Hidden(name string, v any) HiddenField {
	return HiddenField{Name: strings.TrimSpace(name), Value: fmt.Sprint(v)}
}

// CSRFToken names the token after the backend's parameter ("_csrf",
// "csrf_token", ...).
func CSRFToken(name, token string) HiddenField { return Hidden(name, token) }

// VersionField carries a record version for optimistic locking.
func VersionField(name string, version any) HiddenField { return Hidden(name, version) }

// ApplyHiddenFields stores fields as auxiliary params on ds, where they win
// over encoded row values on submit. Fields without a name are skipped.
func ApplyHiddenFields(ds *form.DataSource, fields ...HiddenField) {
	if ds == nil {
		return
	}
	for _, field := range fields {
		if name := strings.TrimSpace(field.Name); name != "" {
			ds.SetParam(name, field.Value)
		}
	}
}

// HiddenFieldsOf lists the auxiliary params of ds sorted by name.
func HiddenFieldsOf(ds *form.DataSource) []HiddenField {
	if ds == nil {
		return nil
	}
	params := ds.Params()
	out := make([]HiddenField, 0, len(params))
	for name, val := range params {
		out = append(out, HiddenField{Name: name, Value: val})
	}
	slices.SortFunc(out, func(a, b HiddenField) int { return strings.Compare(a.Name, b.Name) })
	return out
}

// HiddenValues turns fields into value.Hidden rows, for forms that carry
// their auxiliary params in a section instead. A repeated name keeps the
// last value; the result is sorted by name.
func HiddenValues(fields ...HiddenField) []value.Value {
	last := make(map[string]string, len(fields))
	for _, field := range fields {
		if name := strings.TrimSpace(field.Name); name != "" {
			last[name] = field.Value
		}
	}
	names := make([]string, 0, len(last))
	for name := range last {
		names = append(names, name)
	}
	slices.Sort(names)

	out := make([]value.Value, 0, len(names))
	for _, name := range names {
		out = append(out, value.Hidden{Name: name, Value: last[name]})
	}
	return out
}
