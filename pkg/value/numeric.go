package value

import (
	"fmt"
	"math"
	"strconv"
)

// Integer is a whole-number input. Bounds apply only when Min < Max.
type Integer struct {
	Name     string
	Label    string
	Value    int64
	HasValue bool
	Min      int64
	Max      int64
	State    State
}

func (Integer) sealed()         {}
func (Integer) Kind() Kind      { return KindInteger }
func (i Integer) Key() string   { return keyOf(i.Name) }
func (i Integer) Title() string { return i.Label }

func (i Integer) Display() string {
	if !i.HasValue {
		return ""
	}
	return strconv.FormatInt(i.Value, 10)
}

func (i Integer) Encode() (Pair, bool) {
	return encodeKey(i.Name, i.Display())
}

func (i Integer) Validate() []string {
	var failure string
	if i.HasValue && i.Min < i.Max && (i.Value < i.Min || i.Value > i.Max) {
		failure = fmt.Sprintf("%s must be between %d and %d", describe(i.Label), i.Min, i.Max)
	}
	return i.State.messages(i.Label, !i.HasValue, failure)
}

func (i Integer) equal(v Value) bool {
	o, ok := v.(Integer)
	return ok &&
		i.Name == o.Name &&
		i.Label == o.Label &&
		i.Value == o.Value &&
		i.HasValue == o.HasValue &&
		i.Min == o.Min &&
		i.Max == o.Max &&
		i.State.equal(o.State)
}

// Float is a decimal input. Decimals controls the display precision; the
// encoded form always uses the shortest representation.
type Float struct {
	Name     string
	Label    string
	Value    float64
	HasValue bool
	Decimals int
	Min      float64
	Max      float64
	State    State
}

func (Float) sealed()         {}
func (Float) Kind() Kind      { return KindFloat }
func (f Float) Key() string   { return keyOf(f.Name) }
func (f Float) Title() string { return f.Label }

func (f Float) Display() string {
	if !f.HasValue {
		return ""
	}
	if f.Decimals > 0 {
		return strconv.FormatFloat(f.Value, 'f', f.Decimals, 64)
	}
	return formatFloat(f.Value)
}

func (f Float) Encode() (Pair, bool) {
	if !f.HasValue {
		return encodeKey(f.Name, "")
	}
	return encodeKey(f.Name, formatFloat(f.Value))
}

func (f Float) Validate() []string {
	var failure string
	if f.HasValue && f.Min < f.Max && (f.Value < f.Min || f.Value > f.Max) {
		failure = fmt.Sprintf("%s must be between %s and %s", describe(f.Label), formatFloat(f.Min), formatFloat(f.Max))
	}
	return f.State.messages(f.Label, !f.HasValue, failure)
}

func (f Float) equal(v Value) bool {
	o, ok := v.(Float)
	return ok &&
		f.Name == o.Name &&
		f.Label == o.Label &&
		sameFloat(f.Value, o.Value) &&
		f.HasValue == o.HasValue &&
		f.Decimals == o.Decimals &&
		sameFloat(f.Min, o.Min) &&
		sameFloat(f.Max, o.Max) &&
		f.State.equal(o.State)
}

// Stepper increments a number in fixed steps between Min and Max.
type Stepper struct {
	Name  string
	Label string
	Value float64
	Min   float64
	Max   float64
	Step  float64
	State State
}

func (Stepper) sealed()           {}
func (Stepper) Kind() Kind        { return KindStepper }
func (s Stepper) Key() string     { return keyOf(s.Name) }
func (s Stepper) Title() string   { return s.Label }
func (s Stepper) Display() string { return formatFloat(s.Value) }

func (s Stepper) Encode() (Pair, bool) {
	return encodeKey(s.Name, formatFloat(s.Value))
}

func (s Stepper) Validate() []string {
	return s.State.messages(s.Label, false, rangeFailure(s.Label, s.Value, s.Min, s.Max))
}

// Increment returns a copy stepped once up, clamped to Max.
func (s Stepper) Increment() Stepper {
	s.Value = clamp(s.Value+stepOrOne(s.Step), s.Min, s.Max)
	return s
}

// Decrement returns a copy stepped once down, clamped to Min.
func (s Stepper) Decrement() Stepper {
	s.Value = clamp(s.Value-stepOrOne(s.Step), s.Min, s.Max)
	return s
}

func (s Stepper) equal(v Value) bool {
	o, ok := v.(Stepper)
	return ok &&
		s.Name == o.Name &&
		s.Label == o.Label &&
		sameFloat(s.Value, o.Value) &&
		sameFloat(s.Min, o.Min) &&
		sameFloat(s.Max, o.Max) &&
		sameFloat(s.Step, o.Step) &&
		s.State.equal(o.State)
}

// Slider selects a number from a continuous or stepped range.
type Slider struct {
	Name       string
	Label      string
	Value      float64
	Min        float64
	Max        float64
	Step       float64
	ShowsValue bool
	State      State
}

func (Slider) sealed()           {}
func (Slider) Kind() Kind        { return KindSlider }
func (s Slider) Key() string     { return keyOf(s.Name) }
func (s Slider) Title() string   { return s.Label }
func (s Slider) Display() string { return formatFloat(s.Value) }

func (s Slider) Encode() (Pair, bool) {
	return encodeKey(s.Name, formatFloat(s.Value))
}

func (s Slider) Validate() []string {
	return s.State.messages(s.Label, false, rangeFailure(s.Label, s.Value, s.Min, s.Max))
}

func (s Slider) equal(v Value) bool {
	o, ok := v.(Slider)
	return ok &&
		s.Name == o.Name &&
		s.Label == o.Label &&
		sameFloat(s.Value, o.Value) &&
		sameFloat(s.Min, o.Min) &&
		sameFloat(s.Max, o.Max) &&
		sameFloat(s.Step, o.Step) &&
		s.ShowsValue == o.ShowsValue &&
		s.State.equal(o.State)
}

// Rating is a star rating from 0 (unrated) to Max.
type Rating struct {
	Name  string
	Label string
	Value int
	Max   int
	State State
}

func (Rating) sealed()         {}
func (Rating) Kind() Kind      { return KindRating }
func (r Rating) Key() string   { return keyOf(r.Name) }
func (r Rating) Title() string { return r.Label }

func (r Rating) Display() string {
	return fmt.Sprintf("%d/%d", r.Value, r.Max)
}

func (r Rating) Encode() (Pair, bool) {
	if r.Value <= 0 {
		return encodeKey(r.Name, "")
	}
	return encodeKey(r.Name, strconv.Itoa(r.Value))
}

func (r Rating) Validate() []string {
	var failure string
	if r.Max > 0 && (r.Value < 0 || r.Value > r.Max) {
		failure = fmt.Sprintf("%s must be between 0 and %d", describe(r.Label), r.Max)
	}
	return r.State.messages(r.Label, r.Value <= 0, failure)
}

func (r Rating) equal(v Value) bool {
	o, ok := v.(Rating)
	return ok &&
		r.Name == o.Name &&
		r.Label == o.Label &&
		r.Value == o.Value &&
		r.Max == o.Max &&
		r.State.equal(o.State)
}

// sameFloat is == except that NaN equals NaN, so a value holding NaN is
// still structurally equal to itself.
func sameFloat(a, b float64) bool {
	return a == b || (math.IsNaN(a) && math.IsNaN(b))
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func rangeFailure(label string, value, minimum, maximum float64) string {
	if minimum >= maximum {
		return ""
	}
	if value < minimum || value > maximum {
		return fmt.Sprintf("%s must be between %s and %s", describe(label), formatFloat(minimum), formatFloat(maximum))
	}
	return ""
}

func stepOrOne(step float64) float64 {
	if step <= 0 {
		return 1
	}
	return step
}

func clamp(value, minimum, maximum float64) float64 {
	if minimum >= maximum {
		return value
	}
	if value < minimum {
		return minimum
	}
	if value > maximum {
		return maximum
	}
	return value
}
