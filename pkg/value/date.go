package value

import (
	"strconv"
	"time"
)

// DateMode selects which components of a Date are edited.
type DateMode string

const (
	DateModeDate     DateMode = "date"
	DateModeTime     DateMode = "time"
	DateModeDateTime DateMode = "dateTime"
)

// Layout returns the encoding layout for the mode.
func (m DateMode) Layout() string {
	switch m {
	case DateModeTime:
		return "15:04"
	case DateModeDateTime:
		return time.RFC3339
	default:
		return time.DateOnly
	}
}

// Date is a date, time or date-time input. The zero time means unset.
// Expanded tracks whether the inline picker is open; Invalidated marks a
// value rejected by the picker (for example outside Min/Max).
type Date struct {
	Name        string
	Label       string
	Value       time.Time
	Mode        DateMode
	Min         time.Time
	Max         time.Time
	Expanded    bool
	Invalidated bool
	State       State
}

func (Date) sealed()         {}
func (Date) Kind() Kind      { return KindDate }
func (d Date) Key() string   { return keyOf(d.Name) }
func (d Date) Title() string { return d.Label }

func (d Date) Display() string {
	if d.Value.IsZero() {
		return ""
	}
	return d.Value.Format(d.Mode.Layout())
}

func (d Date) Encode() (Pair, bool) {
	return encodeKey(d.Name, d.Display())
}

func (d Date) Validate() []string {
	var failures []string
	if d.Invalidated {
		failures = append(failures, describe(d.Label)+" is not a valid date")
	}
	if !d.Value.IsZero() {
		if !d.Min.IsZero() && d.Value.Before(d.Min) {
			failures = append(failures, describe(d.Label)+" must not be before "+d.Min.Format(d.Mode.Layout()))
		}
		if !d.Max.IsZero() && d.Value.After(d.Max) {
			failures = append(failures, describe(d.Label)+" must not be after "+d.Max.Format(d.Mode.Layout()))
		}
	}
	return d.State.messages(d.Label, d.Value.IsZero(), failures...)
}

// ToggleExpanded returns a copy with the inline picker opened or closed.
func (d Date) ToggleExpanded() Date {
	d.Expanded = !d.Expanded
	return d
}

func (d Date) equal(v Value) bool {
	o, ok := v.(Date)
	return ok &&
		d.Name == o.Name &&
		d.Label == o.Label &&
		sameTime(d.Value, o.Value) &&
		d.Mode == o.Mode &&
		sameTime(d.Min, o.Min) &&
		sameTime(d.Max, o.Max) &&
		d.Expanded == o.Expanded &&
		d.Invalidated == o.Invalidated &&
		d.State.equal(o.State)
}

// Duration is a countdown/interval input, encoded in whole seconds.
type Duration struct {
	Name  string
	Label string
	Value time.Duration
	State State
}

func (Duration) sealed()           {}
func (Duration) Kind() Kind        { return KindDuration }
func (d Duration) Key() string     { return keyOf(d.Name) }
func (d Duration) Title() string   { return d.Label }
func (d Duration) Display() string { return d.Value.String() }

func (d Duration) Encode() (Pair, bool) {
	if d.Value <= 0 {
		return encodeKey(d.Name, "")
	}
	return encodeKey(d.Name, strconv.FormatInt(int64(d.Value/time.Second), 10))
}

func (d Duration) Validate() []string {
	var failure string
	if d.Value < 0 {
		failure = describe(d.Label) + " must not be negative"
	}
	return d.State.messages(d.Label, d.Value <= 0, failure)
}

func (d Duration) equal(v Value) bool {
	o, ok := v.(Duration)
	return ok && d.Name == o.Name && d.Label == o.Label && d.Value == o.Value && d.State.equal(o.State)
}

func sameTime(a, b time.Time) bool {
	if a.IsZero() || b.IsZero() {
		return a.IsZero() && b.IsZero()
	}
	return a.Equal(b) && a.Location().String() == b.Location().String()
}
