package render

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/goliatone/go-formlist/pkg/form"
)

// FieldSubset narrows what a surface shows. Sections match section titles
// case-insensitively; Keys match encoded row keys exactly or as a dotted
// prefix ("owner" matches "owner.email"). Rows without a key (spacers,
// actions without a name) survive when their section survives.
type FieldSubset struct {
	Sections []string
	Keys     []string
}

// ApplySubset returns copies of the sections that match subset. Whole
// sections are kept when their title matches; otherwise only matching rows
// are kept and sections left without keyed rows are dropped. An empty
// subset returns the input unchanged.
func ApplySubset(sections []*form.Section, subset FieldSubset) []*form.Section {
	matcher := newSubsetMatcher(subset)
	if matcher.empty() {
		return sections
	}

	out := make([]*form.Section, 0, len(sections))
	for _, section := range sections {
		if section == nil {
			continue
		}
		if matcher.matchesSection(section.Title) {
			out = append(out, section.Clone())
			continue
		}
		if len(matcher.keys) == 0 {
			continue
		}

		var kept []form.Item
		matched := false
		for _, item := range section.Rows() {
			key := normaliseToken(item.Key())
			if key == "" {
				kept = append(kept, item)
				continue
			}
			if matcher.matchesKey(key) {
				kept = append(kept, item)
				matched = true
			}
		}
		if !matched {
			continue
		}
		clone := section.Clone()
		clone.SetRows(kept)
		out = append(out, clone)
	}
	return out
}

type subsetMatcher struct {
	sections map[string]struct{}
	keys     map[string]struct{}
}

func newSubsetMatcher(subset FieldSubset) subsetMatcher {
	return subsetMatcher{
		sections: normaliseTokens(subset.Sections),
		keys:     normaliseTokens(subset.Keys),
	}
}

func (m subsetMatcher) empty() bool {
	return len(m.sections) == 0 && len(m.keys) == 0
}

func (m subsetMatcher) matchesSection(title string) bool {
	if len(m.sections) == 0 {
		return false
	}
	_, ok := m.sections[normaliseToken(title)]
	return ok
}

func (m subsetMatcher) matchesKey(key string) bool {
	if _, ok := m.keys[key]; ok {
		return true
	}
	for candidate := range m.keys {
		if strings.HasPrefix(key, candidate+".") {
			return true
		}
	}
	return false
}

// ParseTokens splits a comma separated list or a JSON array into
// normalised, de-duplicated tokens.
func ParseTokens(raw string) []string {
	return parseTokenList(raw)
}

func normaliseTokens(values []string) map[string]struct{} {
	if len(values) == 0 {
		return nil
	}
	result := make(map[string]struct{}, len(values))
	for _, v := range values {
		token := normaliseToken(v)
		if token == "" {
			continue
		}
		result[token] = struct{}{}
	}
	if len(result) == 0 {
		return nil
	}
	return result
}

func normaliseToken(v string) string {
	return strings.ToLower(strings.TrimSpace(v))
}

func dedupe(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, exists := seen[v]; exists {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

func parseTokenList(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	if strings.HasPrefix(raw, "[") {
		var parsed []any
		if err := json.Unmarshal([]byte(raw), &parsed); err == nil {
			tokens := make([]string, 0, len(parsed))
			for _, entry := range parsed {
				token := normaliseToken(anyToString(entry))
				if token != "" {
					tokens = append(tokens, token)
				}
			}
			return dedupe(tokens)
		}
	}

	parts := strings.FieldsFunc(raw, func(r rune) bool { return r == ',' })
	tokens := make([]string, 0, len(parts))
	for _, part := range parts {
		if token := normaliseToken(part); token != "" {
			tokens = append(tokens, token)
		}
	}
	return dedupe(tokens)
}

func anyToString(v any) string {
	switch typed := v.(type) {
	case string:
		return typed
	default:
		return fmt.Sprint(typed)
	}
}
