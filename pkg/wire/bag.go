package wire

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/goliatone/go-formlist/pkg/value"
)

// bag reads typed properties out of a Field's data map. The first failure
// is kept; later reads still return zero values so decoding can finish the
// value before reporting.
type bag struct {
	path string
	typ  Type
	data map[string]any
	err  error
}

func (b *bag) fail(field, format string, args ...any) {
	if b.err != nil {
		return
	}
	b.err = &DecodeError{
		Path: b.path + ".data." + field,
		Type: b.typ,
		Err:  fmt.Errorf("%w: %s", ErrInvalidField, fmt.Sprintf(format, args...)),
	}
}

func (b *bag) str(field string) string {
	raw, ok := b.data[field]
	if !ok || raw == nil {
		return ""
	}
	switch typed := raw.(type) {
	case string:
		return typed
	case json.Number:
		return typed.String()
	case bool, int, int64, uint64, float64:
		return fmt.Sprint(typed)
	default:
		b.fail(field, "expected a string, got %T", raw)
		return ""
	}
}

func (b *bag) flag(field string, fallback bool) bool {
	raw, ok := b.data[field]
	if !ok || raw == nil {
		return fallback
	}
	switch typed := raw.(type) {
	case bool:
		return typed
	case string:
		parsed, err := strconv.ParseBool(strings.TrimSpace(typed))
		if err != nil {
			b.fail(field, "expected a boolean, got %q", typed)
			return fallback
		}
		return parsed
	default:
		b.fail(field, "expected a boolean, got %T", raw)
		return fallback
	}
}

func (b *bag) integer(field string) (int64, bool) {
	raw, ok := b.data[field]
	if !ok || raw == nil {
		return 0, false
	}
	switch typed := raw.(type) {
	case int:
		return int64(typed), true
	case int64:
		return typed, true
	case uint64:
		if typed > math.MaxInt64 {
			b.fail(field, "%d overflows", typed)
			return 0, false
		}
		return int64(typed), true
	case float64:
		if typed != math.Trunc(typed) {
			b.fail(field, "expected a whole number, got %v", typed)
			return 0, false
		}
		return int64(typed), true
	case json.Number:
		return b.parseInt(field, typed.String())
	case string:
		if strings.TrimSpace(typed) == "" {
			return 0, false
		}
		return b.parseInt(field, typed)
	default:
		b.fail(field, "expected a whole number, got %T", raw)
		return 0, false
	}
}

func (b *bag) parseInt(field, raw string) (int64, bool) {
	n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		b.fail(field, "expected a whole number, got %q", raw)
		return 0, false
	}
	return n, true
}

func (b *bag) number(field string) (float64, bool) {
	raw, ok := b.data[field]
	if !ok || raw == nil {
		return 0, false
	}
	switch typed := raw.(type) {
	case float64:
		return typed, true
	case int:
		return float64(typed), true
	case int64:
		return float64(typed), true
	case uint64:
		return float64(typed), true
	case json.Number:
		return b.parseFloat(field, typed.String())
	case string:
		if strings.TrimSpace(typed) == "" {
			return 0, false
		}
		return b.parseFloat(field, typed)
	default:
		b.fail(field, "expected a number, got %T", raw)
		return 0, false
	}
}

func (b *bag) parseFloat(field, raw string) (float64, bool) {
	n, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		b.fail(field, "expected a number, got %q", raw)
		return 0, false
	}
	return n, true
}

// strs accepts a single scalar or a list of scalars.
func (b *bag) strs(field string) []string {
	raw, ok := b.data[field]
	if !ok || raw == nil {
		return nil
	}
	list, ok := raw.([]any)
	if !ok {
		if s := b.str(field); s != "" {
			return []string{s}
		}
		return nil
	}
	out := make([]string, 0, len(list))
	for idx, entry := range list {
		s, ok := scalar(entry)
		if !ok {
			b.fail(fmt.Sprintf("%s[%d]", field, idx), "expected a string, got %T", entry)
			return nil
		}
		out = append(out, s)
	}
	return out
}

func (b *bag) options(field string) []value.Option {
	raw, ok := b.data[field]
	if !ok || raw == nil {
		return nil
	}
	list, ok := raw.([]any)
	if !ok {
		b.fail(field, "expected a list, got %T", raw)
		return nil
	}
	out := make([]value.Option, 0, len(list))
	for idx, entry := range list {
		at := fmt.Sprintf("%s[%d]", field, idx)
		switch typed := entry.(type) {
		case map[string]any:
			title, titleOK := scalar(typed["title"])
			val, valOK := scalar(typed["value"])
			if !valOK && !titleOK {
				b.fail(at, "option needs a title or a value")
				return nil
			}
			if !valOK {
				val = title
			}
			if !titleOK {
				title = val
			}
			out = append(out, value.Option{Title: title, Value: val})
		default:
			s, ok := scalar(entry)
			if !ok {
				b.fail(at, "expected a string or an option map, got %T", entry)
				return nil
			}
			out = append(out, value.Option{Title: s, Value: s})
		}
	}
	return out
}

func scalar(v any) (string, bool) {
	switch typed := v.(type) {
	case string:
		return typed, true
	case json.Number:
		return typed.String(), true
	case bool, int, int64, uint64, float64:
		return fmt.Sprint(typed), true
	default:
		return "", false
	}
}
