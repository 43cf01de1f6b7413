package value

import (
	"fmt"
	"net/mail"
	"net/url"
	"strings"
	"unicode/utf8"
)

// TextStyle hints the keyboard/input mode for a Text value.
type TextStyle string

const (
	TextStylePlain    TextStyle = ""
	TextStyleEmail    TextStyle = "email"
	TextStylePhone    TextStyle = "phone"
	TextStyleURL      TextStyle = "url"
	TextStylePassword TextStyle = "password"
	TextStyleNumeric  TextStyle = "numeric"
)

// Text is a single-line text input.
type Text struct {
	Name        string
	Label       string
	Placeholder string
	Value       string
	Style       TextStyle
	MaxLength   int
	State       State
}

func (Text) sealed()         {}
func (Text) Kind() Kind      { return KindText }
func (t Text) Key() string   { return keyOf(t.Name) }
func (t Text) Title() string { return t.Label }
func (t Text) Display() string {
	if t.Style == TextStylePassword && t.Value != "" {
		return strings.Repeat("•", utf8.RuneCountInString(t.Value))
	}
	return t.Value
}

func (t Text) Encode() (Pair, bool) {
	return encodeKey(t.Name, t.Value)
}

func (t Text) Validate() []string {
	trimmed := strings.TrimSpace(t.Value)
	var failures []string
	if t.MaxLength > 0 && utf8.RuneCountInString(t.Value) > t.MaxLength {
		failures = append(failures, fmt.Sprintf("%s must be at most %d characters", describe(t.Label), t.MaxLength))
	}
	if trimmed != "" {
		switch t.Style {
		case TextStyleEmail:
			if _, err := mail.ParseAddress(trimmed); err != nil {
				failures = append(failures, describe(t.Label)+" must be a valid email address")
			}
		case TextStyleURL:
			if parsed, err := url.ParseRequestURI(trimmed); err != nil || parsed.Host == "" {
				failures = append(failures, describe(t.Label)+" must be a valid URL")
			}
		}
	}
	return t.State.messages(t.Label, trimmed == "", failures...)
}

func (t Text) equal(v Value) bool {
	o, ok := v.(Text)
	return ok &&
		t.Name == o.Name &&
		t.Label == o.Label &&
		t.Placeholder == o.Placeholder &&
		t.Value == o.Value &&
		t.Style == o.Style &&
		t.MaxLength == o.MaxLength &&
		t.State.equal(o.State)
}

// Note is a multi-line text input.
type Note struct {
	Name        string
	Label       string
	Placeholder string
	Value       string
	State       State
}

func (Note) sealed()           {}
func (Note) Kind() Kind        { return KindNote }
func (n Note) Key() string     { return keyOf(n.Name) }
func (n Note) Title() string   { return n.Label }
func (n Note) Display() string { return n.Value }

func (n Note) Encode() (Pair, bool) {
	return encodeKey(n.Name, n.Value)
}

func (n Note) Validate() []string {
	return n.State.messages(n.Label, strings.TrimSpace(n.Value) == "")
}

func (n Note) equal(v Value) bool {
	o, ok := v.(Note)
	return ok &&
		n.Name == o.Name &&
		n.Label == o.Label &&
		n.Placeholder == o.Placeholder &&
		n.Value == o.Value &&
		n.State.equal(o.State)
}

// Hidden is submitted with the form but never displayed.
type Hidden struct {
	Name  string
	Value string
}

func (Hidden) sealed()            {}
func (Hidden) Kind() Kind         { return KindHidden }
func (h Hidden) Key() string      { return keyOf(h.Name) }
func (Hidden) Title() string      { return "" }
func (Hidden) Display() string    { return "" }
func (Hidden) Validate() []string { return nil }

func (h Hidden) Encode() (Pair, bool) {
	return encodeKey(h.Name, h.Value)
}
