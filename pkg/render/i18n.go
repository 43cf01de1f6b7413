package render

import (
	"errors"
	"strconv"
	"strings"

	"github.com/goliatone/go-formlist/pkg/form"
	"github.com/goliatone/go-formlist/pkg/value"
)

// ErrMissingTranslator is passed to the missing handler when no translator
// is configured.
var ErrMissingTranslator = errors.New("render: translator not configured")

// Translator resolves a message key for a locale.
type Translator interface {
	Translate(locale, key string, args ...any) (string, error)
}

// MissingTranslationHandler decides the string used when a key cannot be
// translated.
type MissingTranslationHandler func(locale, key string, args []any, err error) string

// LocalizeOptions configures LocalizeSections.
type LocalizeOptions struct {
	Locale     string
	Translator Translator
	OnMissing  MissingTranslationHandler
	// KeyPrefix namespaces lookups: a row keyed "name" is translated through
	// "<prefix>.name.label".
	KeyPrefix string
}

// LocalizeSections returns translated copies of sections. Section titles and
// footers are looked up as "<prefix>.sections.<index>.title|footer"; row
// titles as "<prefix>.<key>.label". Untranslated strings keep their current
// text. The input sections are not modified.
func LocalizeSections(sections []*form.Section, opts LocalizeOptions) []*form.Section {
	onMissing := opts.OnMissing
	if onMissing == nil {
		onMissing = missingTranslationDefault
	}

	out := make([]*form.Section, 0, len(sections))
	for idx, section := range sections {
		if section == nil {
			continue
		}
		clone := section.Clone()
		base := joinKey(opts.KeyPrefix, "sections", strconv.Itoa(idx))
		clone.Title = translate(opts.Locale, joinKey(base, "title"), clone.Title, opts.Translator, onMissing)
		clone.Footer = translate(opts.Locale, joinKey(base, "footer"), clone.Footer, opts.Translator, onMissing)

		rows := clone.Rows()
		for i, item := range rows {
			key := strings.TrimSpace(item.Key())
			if key == "" || item.Value().Title() == "" {
				continue
			}
			fallback := item.Value().Title()
			translated := translate(opts.Locale, joinKey(opts.KeyPrefix, key, "label"), fallback, opts.Translator, onMissing)
			if translated != fallback {
				rows[i] = form.NewItem(value.WithTitle(item.Value(), translated))
			}
		}
		clone.SetRows(rows)
		out = append(out, clone)
	}
	return out
}

func missingTranslationDefault(_ string, _ string, args []any, _ error) string {
	for _, arg := range args {
		if hints, ok := arg.(map[string]any); ok {
			if fallback, ok := hints["default"].(string); ok {
				return fallback
			}
		}
	}
	return ""
}

func translate(locale, key, fallback string, t Translator, onMissing MissingTranslationHandler) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return fallback
	}

	if t == nil {
		if onMissing != nil {
			return onMissing(locale, key, []any{map[string]any{"default": fallback}}, ErrMissingTranslator)
		}
		return fallback
	}

	result, err := t.Translate(locale, key)
	if err == nil && strings.TrimSpace(result) != "" {
		return result
	}

	if onMissing != nil {
		return onMissing(locale, key, []any{map[string]any{"default": fallback}}, err)
	}
	return fallback
}

func joinKey(parts ...string) string {
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.Trim(strings.TrimSpace(part), "."); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return strings.Join(out, ".")
}
