package render

import (
	"strconv"
	"strings"

	"github.com/goliatone/go-formlist/pkg/form"
)

// ErrorMapping splits a server error payload into field-level messages keyed
// by encoded key and form-level messages.
type ErrorMapping struct {
	Fields map[string][]string
	Form   []string
}

// formLevelKeys are payload keys that never name a row.
var formLevelKeys = map[string]bool{
	"": true, ".": true, "/": true, "#": true, "$": true,
	"form": true, "base": true, "__all__": true,
	"non_field_errors": true, "non-field-errors": true,
}

// envelopes are leading path segments servers wrap request fields in.
var envelopes = map[string]bool{
	"body": true, "request": true, "payload": true, "data": true, "attributes": true,
}

// MergeFormErrors appends extras to existing, trimming messages and dropping
// blanks and repeats. Order is kept.
func MergeFormErrors(existing []string, extras ...string) []string {
	return dedupeMessages(append(append([]string(nil), existing...), extras...))
}

// MapErrorPayload resolves server error paths onto the encoded keys of ds.
// Paths may be dotted ("body.owner.email"), JSON pointers ("/owner/email")
// or JSONPath-like ("$.tags[0]"); the longest key prefix of the path wins.
// Paths that match no row become form-level messages.
func MapErrorPayload(ds *form.DataSource, payload map[string][]string) ErrorMapping {
	var mapping ErrorMapping
	if len(payload) == 0 {
		return mapping
	}

	keys := keyIndexOf(ds)
	for path, messages := range payload {
		messages = dedupeMessages(messages)
		if len(messages) == 0 {
			continue
		}
		key, ok := keys.resolve(path)
		if !ok {
			mapping.Form = append(mapping.Form, messages...)
			continue
		}
		if mapping.Fields == nil {
			mapping.Fields = make(map[string][]string)
		}
		mapping.Fields[key] = append(mapping.Fields[key], messages...)
	}
	mapping.Form = dedupeMessages(mapping.Form)
	return mapping
}

// ApplyErrorPayload maps payload onto ds and flags every matched row as
// invalid with its messages. The returned mapping still carries the
// form-level messages for the caller to display.
func ApplyErrorPayload(ds *form.DataSource, payload map[string][]string) ErrorMapping {
	mapping := MapErrorPayload(ds, payload)
	if ds == nil {
		return mapping
	}
	for key, messages := range mapping.Fields {
		ds.MarkInvalid(key, messages...)
	}
	return mapping
}

// keyIndex is the set of encoded row keys of a data source.
type keyIndex map[string]bool

func keyIndexOf(ds *form.DataSource) keyIndex {
	keys := keyIndex{}
	if ds == nil {
		return keys
	}
	for _, section := range ds.Sections() {
		for _, item := range section.Rows() {
			if key := strings.TrimSpace(item.Key()); key != "" {
				keys[key] = true
			}
		}
	}
	return keys
}

// resolve tries the path as given, without envelope segments and without
// array indices, and keeps the longest key any of them reaches.
func (k keyIndex) resolve(path string) (string, bool) {
	path = strings.TrimSpace(path)
	if formLevelKeys[strings.ToLower(path)] {
		return "", false
	}
	segments := splitPath(path)
	if len(segments) == 0 {
		return "", false
	}

	unwrapped := segments
	for len(unwrapped) > 0 && envelopes[strings.ToLower(unwrapped[0])] {
		unwrapped = unwrapped[1:]
	}

	best, depth := "", 0
	for _, candidate := range [][]string{segments, unwrapped, withoutIndices(segments), withoutIndices(unwrapped)} {
		if key, n := k.longestPrefix(candidate); n > depth {
			best, depth = key, n
		}
	}
	return best, depth > 0
}

// longestPrefix returns the longest dotted prefix of segments that is a key
// and how many segments it spans.
func (k keyIndex) longestPrefix(segments []string) (string, int) {
	for n := len(segments); n > 0; n-- {
		if key := strings.Join(segments[:n], "."); k[key] {
			return key, n
		}
	}
	return "", 0
}

// splitPath breaks a path on dots and slashes after dropping pointer and
// JSONPath roots. Brackets become segments and JSON pointer escapes are
// decoded per segment.
func splitPath(path string) []string {
	path = strings.TrimLeft(path, "#$/.")
	path = strings.NewReplacer("[", ".", "]", "").Replace(path)

	var out []string
	for _, part := range strings.FieldsFunc(path, func(r rune) bool { return r == '.' || r == '/' }) {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		part = strings.ReplaceAll(part, "~1", "/")
		out = append(out, strings.ReplaceAll(part, "~0", "~"))
	}
	return out
}

func withoutIndices(segments []string) []string {
	out := make([]string, 0, len(segments))
	for _, segment := range segments {
		if _, err := strconv.Atoi(segment); err != nil {
			out = append(out, segment)
		}
	}
	return out
}

// dedupeMessages trims messages and drops blanks and repeats. It returns nil
// when nothing is left.
func dedupeMessages(messages []string) []string {
	var out []string
	seen := make(map[string]bool, len(messages))
	for _, message := range messages {
		message = strings.TrimSpace(message)
		if message == "" || seen[message] {
			continue
		}
		seen[message] = true
		out = append(out, message)
	}
	return out
}
