package form

import (
	"github.com/goliatone/go-formlist/pkg/value"
	"github.com/goliatone/go-formlist/pkg/widgets"
)

// Item wraps exactly one field value. Identity is the structural equality of
// the wrapped value; Items own no other state.
type Item struct {
	value value.Value
}

// NewItem wraps v. A nil value violates the one-variant invariant and
// panics.
func NewItem(v value.Value) Item {
	if v == nil {
		panic("form: item requires a value")
	}
	return Item{value: v}
}

// Items wraps each value in order.
func Items(values ...value.Value) []Item {
	out := make([]Item, 0, len(values))
	for _, v := range values {
		out = append(out, NewItem(v))
	}
	return out
}

// Value returns the wrapped field value.
func (i Item) Value() value.Value {
	return i.value
}

// IsZero reports whether the item wraps nothing, which only happens for the
// zero Item returned alongside a failed lookup.
func (i Item) IsZero() bool {
	return i.value == nil
}

// Kind reports the wrapped variant.
func (i Item) Kind() value.Kind {
	if i.value == nil {
		return ""
	}
	return i.value.Kind()
}

// Key returns the encoded key of the wrapped value.
func (i Item) Key() string {
	if i.value == nil {
		return ""
	}
	return i.value.Key()
}

// Equal reports structural equality of the wrapped values.
func (i Item) Equal(other Item) bool {
	return value.Equal(i.value, other.value)
}

// Hash is consistent with Equal.
func (i Item) Hash() uint64 {
	return value.Hash(i.value)
}

// Encode projects the item for submission.
func (i Item) Encode() (value.Pair, bool) {
	if i.value == nil {
		return value.Pair{}, false
	}
	return i.value.Encode()
}

// Errors returns the validation messages of the wrapped value.
func (i Item) Errors() []string {
	if i.value == nil {
		return nil
	}
	return i.value.Validate()
}

// Valid reports whether the wrapped value validates.
func (i Item) Valid() bool {
	return value.Valid(i.value)
}

// Descriptor tells a rendering surface how to present an item.
type Descriptor struct {
	Kind        value.Kind
	Widget      string
	Interactive bool
	Submittable bool
}

// Descriptor resolves the widget through the default widget registry.
func (i Item) Descriptor() Descriptor {
	return i.DescriptorFrom(widgets.Default())
}

// DescriptorFrom resolves the widget through reg.
func (i Item) DescriptorFrom(reg *widgets.Registry) Descriptor {
	if i.value == nil {
		return Descriptor{}
	}
	widget, _ := reg.Resolve(i.value)
	_, submittable := i.value.Encode()
	return Descriptor{
		Kind:        i.value.Kind(),
		Widget:      widget,
		Interactive: interactive(i.value),
		Submittable: submittable,
	}
}

func interactive(v value.Value) bool {
	switch typed := v.(type) {
	case value.ReadOnly, value.Spacer, value.Hidden:
		return false
	case value.Action:
		return typed.Enabled
	default:
		return true
	}
}

func equalRows(a, b []Item) bool {
	if len(a) != len(b) {
		return false
	}
	for idx := range a {
		if !a[idx].Equal(b[idx]) {
			return false
		}
	}
	return true
}
