package value

import (
	"slices"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// Kind enumerates the closed set of field value variants.
type Kind string

const (
	KindText          Kind = "text"
	KindNote          Kind = "note"
	KindHidden        Kind = "hidden"
	KindInteger       Kind = "integer"
	KindFloat         Kind = "float"
	KindStepper       Kind = "stepper"
	KindSlider        Kind = "slider"
	KindRating        Kind = "rating"
	KindToggle        Kind = "toggle"
	KindDate          Kind = "date"
	KindDuration      Kind = "duration"
	KindPicker        Kind = "picker"
	KindSegment       Kind = "segment"
	KindListSelection Kind = "list-selection"
	KindAction        Kind = "action"
	KindReadOnly      Kind = "read-only"
	KindLink          Kind = "link"
	KindSpacer        Kind = "spacer"
	KindCustom        Kind = "custom"
	KindColor         Kind = "color"
	KindLocation      Kind = "location"
	KindAttachment    Kind = "attachment"
	KindImage         Kind = "image"
)

// Encoded values that are never submitted.
const (
	NoSelection  = "-1"
	PleaseSelect = "-- Please Select --"
)

// Value is the payload of one form field. The interface is sealed: only the
// variants declared in this package implement it, so consumers can switch
// exhaustively over them.
type Value interface {
	// Kind reports the variant.
	Kind() Kind
	// Key returns the encoded key used for submission and keyed lookup. It
	// may be empty.
	Key() string
	// Title returns the display title.
	Title() string
	// Encode projects the value onto a flat key/value pair. Values that do
	// not represent submittable input return false.
	Encode() (Pair, bool)
	// Validate returns human-readable error messages. An empty result means
	// the value is valid.
	Validate() []string
	// Display renders the value for clipboard and debug use.
	Display() string

	sealed()
}

// Pair is the flat submission projection of a value.
type Pair struct {
	Key   string
	Value string
}

// Submittable reports whether the pair should be part of a submission.
func (p Pair) Submittable() bool {
	return strings.TrimSpace(p.Key) != "" && !IsSentinel(p.Value)
}

// IsSentinel reports whether an encoded value marks "no input".
func IsSentinel(encoded string) bool {
	switch encoded {
	case "", NoSelection, PleaseSelect:
		return true
	default:
		return false
	}
}

// Valid reports whether v carries no validation messages. A nil value is
// never valid.
func Valid(v Value) bool {
	if v == nil {
		return false
	}
	return len(v.Validate()) == 0
}

// Hash derives a hash consistent with Equal: structurally equal values hash
// to the same number.
func Hash(v Value) uint64 {
	if v == nil {
		return 0
	}
	var b strings.Builder
	b.WriteString(string(v.Kind()))
	b.WriteByte(0)
	b.WriteString(v.Key())
	b.WriteByte(0)
	b.WriteString(v.Title())
	b.WriteByte(0)
	b.WriteString(v.Display())
	return xxhash.Sum64String(b.String())
}

// State carries the validation flags shared by editable values. Invalid
// input is represented here instead of as a construction failure.
type State struct {
	Required bool
	Invalid  bool
	Errors   []string
}

func (s State) equal(o State) bool {
	return s.Required == o.Required && s.Invalid == o.Invalid && slices.Equal(s.Errors, o.Errors)
}

// messages combines the explicit invalid flag with the required rule and any
// variant specific failures.
func (s State) messages(label string, empty bool, failures ...string) []string {
	var out []string
	if s.Invalid {
		if len(s.Errors) > 0 {
			out = append(out, s.Errors...)
		} else {
			out = append(out, describe(label)+" is invalid")
		}
	}
	if s.Required && empty {
		out = append(out, describe(label)+" is required")
	}
	for _, failure := range failures {
		if failure != "" {
			out = append(out, failure)
		}
	}
	return out
}

func describe(label string) string {
	if trimmed := strings.TrimSpace(label); trimmed != "" {
		return trimmed
	}
	return "value"
}

// WithState returns a copy of v with its validation state replaced by fn.
// Values that carry no state are returned unchanged.
func WithState(v Value, fn func(State) State) Value {
	if v == nil || fn == nil {
		return v
	}
	switch typed := v.(type) {
	case Text:
		typed.State = fn(typed.State)
		return typed
	case Note:
		typed.State = fn(typed.State)
		return typed
	case Integer:
		typed.State = fn(typed.State)
		return typed
	case Float:
		typed.State = fn(typed.State)
		return typed
	case Stepper:
		typed.State = fn(typed.State)
		return typed
	case Slider:
		typed.State = fn(typed.State)
		return typed
	case Rating:
		typed.State = fn(typed.State)
		return typed
	case Toggle:
		typed.State = fn(typed.State)
		return typed
	case Date:
		typed.State = fn(typed.State)
		return typed
	case Duration:
		typed.State = fn(typed.State)
		return typed
	case Picker:
		typed.State = fn(typed.State)
		return typed
	case Segment:
		typed.State = fn(typed.State)
		return typed
	case ListSelection:
		typed.State = fn(typed.State)
		return typed
	case Custom:
		typed.State = fn(typed.State)
		return typed
	case Color:
		typed.State = fn(typed.State)
		return typed
	case Location:
		typed.State = fn(typed.State)
		return typed
	case Attachment:
		typed.State = fn(typed.State)
		return typed
	case Image:
		typed.State = fn(typed.State)
		return typed
	case Hidden, Action, ReadOnly, Link, Spacer:
		return v
	default:
		return v
	}
}

// StateOf returns the validation state carried by v, if any.
func StateOf(v Value) (State, bool) {
	switch typed := v.(type) {
	case Text:
		return typed.State, true
	case Note:
		return typed.State, true
	case Integer:
		return typed.State, true
	case Float:
		return typed.State, true
	case Stepper:
		return typed.State, true
	case Slider:
		return typed.State, true
	case Rating:
		return typed.State, true
	case Toggle:
		return typed.State, true
	case Date:
		return typed.State, true
	case Duration:
		return typed.State, true
	case Picker:
		return typed.State, true
	case Segment:
		return typed.State, true
	case ListSelection:
		return typed.State, true
	case Custom:
		return typed.State, true
	case Color:
		return typed.State, true
	case Location:
		return typed.State, true
	case Attachment:
		return typed.State, true
	case Image:
		return typed.State, true
	default:
		return State{}, false
	}
}

// Equal reports structural equality: both values are the same variant and
// every attribute matches.
func Equal(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Kind() != b.Kind() {
		return false
	}
	switch typed := a.(type) {
	case Text:
		return typed.equal(b)
	case Note:
		return typed.equal(b)
	case Hidden:
		other, ok := b.(Hidden)
		return ok && typed == other
	case Integer:
		return typed.equal(b)
	case Float:
		return typed.equal(b)
	case Stepper:
		return typed.equal(b)
	case Slider:
		return typed.equal(b)
	case Rating:
		return typed.equal(b)
	case Toggle:
		return typed.equal(b)
	case Date:
		return typed.equal(b)
	case Duration:
		return typed.equal(b)
	case Picker:
		return typed.equal(b)
	case Segment:
		return typed.equal(b)
	case ListSelection:
		return typed.equal(b)
	case Action:
		other, ok := b.(Action)
		return ok && typed == other
	case ReadOnly:
		other, ok := b.(ReadOnly)
		return ok && typed == other
	case Link:
		other, ok := b.(Link)
		return ok && typed == other
	case Spacer:
		other, ok := b.(Spacer)
		return ok && sameFloat(typed.Height, other.Height)
	case Custom:
		return typed.equal(b)
	case Color:
		return typed.equal(b)
	case Location:
		return typed.equal(b)
	case Attachment:
		return typed.equal(b)
	case Image:
		return typed.equal(b)
	default:
		return false
	}
}

// keyOf is the encoded key for a value name. Key and Encode both use it so
// lookups and submissions agree.
func keyOf(name string) string { return strings.TrimSpace(name) }

func encodeKey(name, encoded string) (Pair, bool) {
	key := keyOf(name)
	if key == "" {
		return Pair{}, false
	}
	return Pair{Key: key, Value: encoded}, true
}

// WithTitle returns a copy of v displaying title. Values without a title
// (Hidden, Spacer) are returned unchanged.
func WithTitle(v Value, title string) Value {
	switch typed := v.(type) {
	case Text:
		typed.Label = title
		return typed
	case Note:
		typed.Label = title
		return typed
	case Integer:
		typed.Label = title
		return typed
	case Float:
		typed.Label = title
		return typed
	case Stepper:
		typed.Label = title
		return typed
	case Slider:
		typed.Label = title
		return typed
	case Rating:
		typed.Label = title
		return typed
	case Toggle:
		typed.Label = title
		return typed
	case Date:
		typed.Label = title
		return typed
	case Duration:
		typed.Label = title
		return typed
	case Picker:
		typed.Label = title
		return typed
	case Segment:
		typed.Label = title
		return typed
	case ListSelection:
		typed.Label = title
		return typed
	case Action:
		typed.Label = title
		return typed
	case ReadOnly:
		typed.Label = title
		return typed
	case Link:
		typed.Label = title
		return typed
	case Custom:
		typed.Label = title
		return typed
	case Color:
		typed.Label = title
		return typed
	case Location:
		typed.Label = title
		return typed
	case Attachment:
		typed.Label = title
		return typed
	case Image:
		typed.Label = title
		return typed
	default:
		return v
	}
}
