package widgets

import (
	"slices"
	"strings"
	"sync"

	"github.com/goliatone/go-formlist/pkg/value"
)

// Widget names the built-in rules resolve to.
const (
	WidgetTextField     = "text-field"
	WidgetSecureField   = "secure-field"
	WidgetTextArea      = "text-area"
	WidgetNumberField   = "number-field"
	WidgetStepper       = "stepper"
	WidgetSlider        = "slider"
	WidgetRating        = "rating"
	WidgetToggle        = "toggle"
	WidgetDatePicker    = "date-picker"
	WidgetInlineDate    = "inline-date-picker"
	WidgetCountdown     = "countdown-picker"
	WidgetSelect        = "select"
	WidgetSegmented     = "segmented"
	WidgetChecklist     = "checklist"
	WidgetButton        = "button"
	WidgetLabel         = "label"
	WidgetDisclosure    = "disclosure"
	WidgetSpacer        = "spacer"
	WidgetColorWell     = "color-well"
	WidgetMap           = "map"
	WidgetDocumentField = "document-field"
	WidgetImageField    = "image-field"
	WidgetCustom        = "custom"
)

// Matcher reports whether a rule applies to v.
type Matcher func(v value.Value) bool

type rule struct {
	name     string
	priority int
	match    Matcher
}

// Registry picks a widget per value. Rules are kept ordered by descending
// priority, registration order within a priority, and the first matching
// rule wins.
type Registry struct {
	mu    sync.RWMutex
	rules []rule
}

// NewRegistry returns a registry holding the built-in rules.
func NewRegistry() *Registry {
	reg := &Registry{}
	reg.registerBuiltins()
	return reg
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// Default is the process-wide registry form items describe themselves with.
func Default() *Registry {
	defaultOnce.Do(func() { defaultRegistry = NewRegistry() })
	return defaultRegistry
}

// Register adds a rule. It is placed after every rule of the same or higher
// priority, so earlier registrations win ties. Blank names and nil matchers
// are ignored.
func (r *Registry) Register(name string, priority int, matcher Matcher) {
	name = strings.TrimSpace(name)
	if r == nil || matcher == nil || name == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	at := slices.IndexFunc(r.rules, func(existing rule) bool { return existing.priority < priority })
	if at < 0 {
		at = len(r.rules)
	}
	r.rules = slices.Insert(r.rules, at, rule{name: name, priority: priority, match: matcher})
}

// Resolve names the widget for v. A Custom value's Identifier is used as is.
func (r *Registry) Resolve(v value.Value) (string, bool) {
	if v == nil {
		return "", false
	}
	if explicit := explicitWidget(v); explicit != "" {
		return explicit, true
	}
	if r == nil {
		return "", false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, entry := range r.rules {
		if entry.match(v) {
			return entry.name, true
		}
	}
	return "", false
}

func explicitWidget(v value.Value) string {
	if custom, ok := v.(value.Custom); ok {
		return strings.TrimSpace(custom.Identifier)
	}
	return ""
}

func kindIs(kinds ...value.Kind) Matcher {
	return func(v value.Value) bool { return slices.Contains(kinds, v.Kind()) }
}

func (r *Registry) registerBuiltins() {
	r.Register(WidgetSecureField, 90, func(v value.Value) bool {
		text, ok := v.(value.Text)
		return ok && text.Style == value.TextStylePassword
	})
	r.Register(WidgetInlineDate, 90, func(v value.Value) bool {
		date, ok := v.(value.Date)
		return ok && date.Expanded
	})

	r.Register(WidgetTextField, 50, kindIs(value.KindText))
	r.Register(WidgetTextArea, 50, kindIs(value.KindNote))
	r.Register(WidgetNumberField, 50, kindIs(value.KindInteger, value.KindFloat))
	r.Register(WidgetStepper, 50, kindIs(value.KindStepper))
	r.Register(WidgetSlider, 50, kindIs(value.KindSlider))
	r.Register(WidgetRating, 50, kindIs(value.KindRating))
	r.Register(WidgetToggle, 50, kindIs(value.KindToggle))
	r.Register(WidgetDatePicker, 50, kindIs(value.KindDate))
	r.Register(WidgetCountdown, 50, kindIs(value.KindDuration))
	r.Register(WidgetSelect, 50, kindIs(value.KindPicker))
	r.Register(WidgetSegmented, 50, kindIs(value.KindSegment))
	r.Register(WidgetChecklist, 50, kindIs(value.KindListSelection))
	r.Register(WidgetButton, 50, kindIs(value.KindAction))
	r.Register(WidgetLabel, 50, kindIs(value.KindReadOnly, value.KindHidden))
	r.Register(WidgetDisclosure, 50, kindIs(value.KindLink))
	r.Register(WidgetSpacer, 50, kindIs(value.KindSpacer))
	r.Register(WidgetColorWell, 50, kindIs(value.KindColor))
	r.Register(WidgetMap, 50, kindIs(value.KindLocation))
	r.Register(WidgetDocumentField, 50, kindIs(value.KindAttachment))
	r.Register(WidgetImageField, 50, kindIs(value.KindImage))
	r.Register(WidgetCustom, 10, kindIs(value.KindCustom))
}
