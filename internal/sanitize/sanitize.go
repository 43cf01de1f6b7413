// Package sanitize cleans strings that arrive from outside the process
// (wire payloads, OpenAPI documents) before they become labels or icons.
package sanitize

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	textPolicyOnce sync.Once
	textPolicy     *bluemonday.Policy

	iconPolicyOnce sync.Once
	iconPolicy     *bluemonday.Policy
)

// Text strips every tag from raw and returns plain text. Entities are
// decoded so "Terms &amp; conditions" reads as typed.
func Text(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || !strings.ContainsAny(trimmed, "<>&") {
		return trimmed
	}
	cleaned := textSanitizer().Sanitize(trimmed)
	return strings.TrimSpace(html.UnescapeString(cleaned))
}

// Icon keeps inline SVG markup restricted to drawing elements. Anything
// that is not an SVG icon collapses to the empty string. Plain identifiers
// ("user", "calendar") pass through unchanged.
func Icon(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	if !strings.Contains(trimmed, "<") {
		return Text(trimmed)
	}
	return strings.TrimSpace(iconSanitizer().Sanitize(trimmed))
}

func textSanitizer() *bluemonday.Policy {
	textPolicyOnce.Do(func() {
		textPolicy = bluemonday.StrictPolicy()
	})
	return textPolicy
}

func iconSanitizer() *bluemonday.Policy {
	iconPolicyOnce.Do(func() {
		policy := bluemonday.StrictPolicy()
		policy.AllowElements(
			"svg", "g", "path", "circle", "rect", "line", "polyline", "polygon",
			"ellipse", "title", "defs", "use",
		)

		policy.AllowAttrs(
			"xmlns", "viewBox", "width", "height", "fill", "stroke",
			"stroke-width", "stroke-linecap", "stroke-linejoin", "aria-hidden",
		).OnElements("svg")
		policy.AllowAttrs("href").OnElements("use")

		for _, el := range []string{"path", "circle", "rect", "line", "polyline", "polygon", "ellipse"} {
			policy.AllowAttrs(
				"d", "cx", "cy", "r", "x", "y", "x1", "y1", "x2", "y2",
				"points", "rx", "ry", "fill", "stroke", "stroke-width",
			).OnElements(el)
		}
		policy.AllowAttrs("id").OnElements("g", "defs")

		iconPolicy = policy
	})
	return iconPolicy
}
