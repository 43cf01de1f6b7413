package value

import (
	"slices"
	"strings"
)

// Option is one selectable entry of a choice value.
type Option struct {
	Title string
	Value string
}

// Options builds options whose title and value are the same string.
func Options(values ...string) []Option {
	out := make([]Option, 0, len(values))
	for _, v := range values {
		out = append(out, Option{Title: v, Value: v})
	}
	return out
}

// Toggle is a boolean switch. A required toggle must be on.
type Toggle struct {
	Name  string
	Label string
	Value bool
	State State
}

func (Toggle) sealed()         {}
func (Toggle) Kind() Kind      { return KindToggle }
func (t Toggle) Key() string   { return keyOf(t.Name) }
func (t Toggle) Title() string { return t.Label }

func (t Toggle) Display() string {
	if t.Value {
		return "On"
	}
	return "Off"
}

func (t Toggle) Encode() (Pair, bool) {
	if t.Value {
		return encodeKey(t.Name, "true")
	}
	return encodeKey(t.Name, "false")
}

func (t Toggle) Validate() []string {
	return t.State.messages(t.Label, !t.Value)
}

func (t Toggle) equal(v Value) bool {
	o, ok := v.(Toggle)
	return ok && t.Name == o.Name && t.Label == o.Label && t.Value == o.Value && t.State.equal(o.State)
}

// Picker selects one option. Selected is -1 when nothing is chosen, in which
// case the encoded value is the PleaseSelect sentinel.
type Picker struct {
	Name        string
	Label       string
	Options     []Option
	Selected    int
	Placeholder string
	State       State
}

func (Picker) sealed()         {}
func (Picker) Kind() Kind      { return KindPicker }
func (p Picker) Key() string   { return keyOf(p.Name) }
func (p Picker) Title() string { return p.Label }

// Choice returns the selected option.
func (p Picker) Choice() (Option, bool) {
	return optionAt(p.Options, p.Selected)
}

// Select returns a copy with the option whose value matches selected.
func (p Picker) Select(selected string) Picker {
	p.Selected = indexOfValue(p.Options, selected)
	return p
}

func (p Picker) Display() string {
	if opt, ok := p.Choice(); ok {
		return opt.Title
	}
	if p.Placeholder != "" {
		return p.Placeholder
	}
	return PleaseSelect
}

func (p Picker) Encode() (Pair, bool) {
	if opt, ok := p.Choice(); ok {
		return encodeKey(p.Name, opt.Value)
	}
	return encodeKey(p.Name, PleaseSelect)
}

func (p Picker) Validate() []string {
	_, chosen := p.Choice()
	return p.State.messages(p.Label, !chosen)
}

func (p Picker) equal(v Value) bool {
	o, ok := v.(Picker)
	return ok &&
		p.Name == o.Name &&
		p.Label == o.Label &&
		slices.Equal(p.Options, o.Options) &&
		p.Selected == o.Selected &&
		p.Placeholder == o.Placeholder &&
		p.State.equal(o.State)
}

// Segment is a segmented control over a handful of options. Unlike Picker
// an unselected segment encodes as NoSelection.
type Segment struct {
	Name     string
	Label    string
	Options  []Option
	Selected int
	State    State
}

func (Segment) sealed()         {}
func (Segment) Kind() Kind      { return KindSegment }
func (s Segment) Key() string   { return keyOf(s.Name) }
func (s Segment) Title() string { return s.Label }

func (s Segment) Display() string {
	if opt, ok := optionAt(s.Options, s.Selected); ok {
		return opt.Title
	}
	return ""
}

func (s Segment) Encode() (Pair, bool) {
	if opt, ok := optionAt(s.Options, s.Selected); ok {
		return encodeKey(s.Name, opt.Value)
	}
	return encodeKey(s.Name, NoSelection)
}

func (s Segment) Validate() []string {
	_, chosen := optionAt(s.Options, s.Selected)
	return s.State.messages(s.Label, !chosen)
}

func (s Segment) equal(v Value) bool {
	o, ok := v.(Segment)
	return ok &&
		s.Name == o.Name &&
		s.Label == o.Label &&
		slices.Equal(s.Options, o.Options) &&
		s.Selected == o.Selected &&
		s.State.equal(o.State)
}

// ListSelection selects a set of options. Selected holds option indices in
// ascending order; single-choice lists keep at most one.
type ListSelection struct {
	Name     string
	Label    string
	Options  []Option
	Selected []int
	Multiple bool
	State    State
}

func (ListSelection) sealed()         {}
func (ListSelection) Kind() Kind      { return KindListSelection }
func (l ListSelection) Key() string   { return keyOf(l.Name) }
func (l ListSelection) Title() string { return l.Label }

// Toggle returns a copy with the option at index flipped. Single-choice
// lists replace the current selection.
func (l ListSelection) Toggle(index int) ListSelection {
	if index < 0 || index >= len(l.Options) {
		return l
	}
	current := slices.Clone(l.Selected)
	if pos := slices.Index(current, index); pos >= 0 {
		l.Selected = slices.Delete(current, pos, pos+1)
		return l
	}
	if !l.Multiple {
		l.Selected = []int{index}
		return l
	}
	current = append(current, index)
	slices.Sort(current)
	l.Selected = current
	return l
}

// Chosen returns the selected options in index order.
func (l ListSelection) Chosen() []Option {
	var out []Option
	for _, idx := range l.Selected {
		if opt, ok := optionAt(l.Options, idx); ok {
			out = append(out, opt)
		}
	}
	return out
}

func (l ListSelection) Display() string {
	chosen := l.Chosen()
	titles := make([]string, 0, len(chosen))
	for _, opt := range chosen {
		titles = append(titles, opt.Title)
	}
	return strings.Join(titles, ", ")
}

func (l ListSelection) Encode() (Pair, bool) {
	chosen := l.Chosen()
	values := make([]string, 0, len(chosen))
	for _, opt := range chosen {
		values = append(values, opt.Value)
	}
	return encodeKey(l.Name, strings.Join(values, ","))
}

func (l ListSelection) Validate() []string {
	var failure string
	if !l.Multiple && len(l.Chosen()) > 1 {
		failure = describe(l.Label) + " accepts a single choice"
	}
	return l.State.messages(l.Label, len(l.Chosen()) == 0, failure)
}

func (l ListSelection) equal(v Value) bool {
	o, ok := v.(ListSelection)
	return ok &&
		l.Name == o.Name &&
		l.Label == o.Label &&
		slices.Equal(l.Options, o.Options) &&
		slices.Equal(l.Selected, o.Selected) &&
		l.Multiple == o.Multiple &&
		l.State.equal(o.State)
}

func optionAt(options []Option, index int) (Option, bool) {
	if index < 0 || index >= len(options) {
		return Option{}, false
	}
	return options[index], true
}

func indexOfValue(options []Option, selected string) int {
	for i, opt := range options {
		if opt.Value == selected {
			return i
		}
	}
	return -1
}
