// Package builder turns the request body of an OpenAPI operation into a form
// data source.
package builder

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/goliatone/go-formlist/internal/sanitize"
	"github.com/goliatone/go-formlist/pkg/form"
	pkgopenapi "github.com/goliatone/go-formlist/pkg/openapi"
	"github.com/goliatone/go-formlist/pkg/options"
	"github.com/goliatone/go-formlist/pkg/value"
)

// ErrNotObject is returned when the request body is not an object schema.
var ErrNotObject = errors.New("builder: request body is not an object")

const (
	defaultSectionTitle = "General"
	defaultSubmitLabel  = "Submit"
	submitKey           = "submit"
	defaultDecimals     = 2
)

// Builder converts operations into data sources.
type Builder struct {
	logger      *zap.Logger
	timezones   options.Provider
	labeler     func(string) string
	sanitize    bool
	submitLabel string
}

// New returns a Builder. Timezone options come from the embedded IANA list
// unless WithTimezones is given.
func New(opts ...Option) *Builder {
	b := &Builder{
		logger:   defaultLogger(),
		labeler:  Label,
		sanitize: true,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(b)
		}
	}
	return b
}

// Build lays the request body out as sections. Top-level scalar properties
// share the first section; every nested object gets its own section whose
// row keys are dotted paths. A submit action tracking form validity is
// appended to the last section.
func (b *Builder) Build(ctx context.Context, op pkgopenapi.Operation) (*form.DataSource, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	body := op.RequestBody
	if body.IsZero() {
		return nil, fmt.Errorf("builder: %s: %w", op.ID, pkgopenapi.ErrNoRequestBody)
	}
	if body.Type != "object" && len(body.Properties) == 0 {
		return nil, fmt.Errorf("builder: %s: %w", op.ID, ErrNotObject)
	}

	state := &buildState{ctx: ctx}
	root := b.text(body.Title)
	if root == "" {
		root = defaultSectionTitle
	}
	if err := b.object(state, root, "", body, hintsOf(body.Extensions)); err != nil {
		return nil, err
	}

	sections := state.sections
	if len(sections) == 0 {
		sections = []*form.Section{form.NewSection(root)}
	}
	last := sections[len(sections)-1]
	last.AppendRow(form.NewItem(b.submit(op)))

	opHints := hintsOf(op.Extensions)
	title := b.text(opHints.str("title"))
	if title == "" {
		title = b.text(op.Summary)
	}
	if title == "" {
		title = b.labeler(op.ID)
	}

	b.logger.Debug("builder: form built",
		zap.String("operation", op.ID),
		zap.Int("sections", len(sections)),
		zap.String("schema", body.DebugString()),
	)
	return form.New(sections, form.WithTitle(title), form.WithLogger(b.logger)), nil
}

type buildState struct {
	ctx      context.Context
	sections []*form.Section
}

// object emits one section for the scalar properties of schema, followed by
// the sections of its nested objects in property order.
func (b *Builder) object(state *buildState, title, prefix string, schema pkgopenapi.Schema, h hints) error {
	section := form.NewSectionBuilder(title).
		Footer(b.text(schema.Description)).
		Collapsible(h.flag("collapsed")).
		Collapsed(h.flag("collapsed")).
		Build()
	at := len(state.sections)
	state.sections = append(state.sections, section)

	required := make(map[string]bool, len(schema.Required))
	for _, name := range schema.Required {
		required[name] = true
	}

	var nested []string
	for _, name := range orderedProperties(schema.Properties) {
		property := schema.Properties[name]
		key := joinKey(prefix, name)
		if isObject(property) {
			nested = append(nested, name)
			continue
		}
		v, err := b.field(state.ctx, key, name, property, required[name])
		if err != nil {
			return err
		}
		if v == nil {
			b.logger.Debug("builder: property skipped", zap.String("key", key), zap.String("type", property.Type))
			continue
		}
		section.AppendRow(form.NewItem(v))
	}

	for _, name := range nested {
		property := schema.Properties[name]
		ph := hintsOf(property.Extensions)
		childTitle := b.text(ph.str("label"))
		if childTitle == "" {
			childTitle = b.text(property.Title)
		}
		if childTitle == "" {
			childTitle = b.labeler(name)
		}
		if err := b.object(state, childTitle, joinKey(prefix, name), property, ph); err != nil {
			return err
		}
	}

	if section.Len() == 0 {
		state.sections = append(state.sections[:at], state.sections[at+1:]...)
	}
	return nil
}

// field maps one property onto a value variant. Unsupported shapes return
// nil.
func (b *Builder) field(ctx context.Context, key, name string, schema pkgopenapi.Schema, required bool) (value.Value, error) {
	h := hintsOf(schema.Extensions)
	label := b.text(h.str("label"))
	if label == "" {
		label = b.text(schema.Title)
	}
	if label == "" {
		label = b.labeler(name)
	}
	state := value.State{Required: required}
	current, hasCurrent := currentValue(schema)

	if schema.ReadOnly {
		return value.ReadOnly{Name: key, Label: label, Value: b.text(toString(current))}, nil
	}

	switch h.str("widget") {
	case "hidden":
		return value.Hidden{Name: key, Value: toString(current)}, nil
	case "toggle":
		on, _ := current.(bool)
		return value.Toggle{Name: key, Label: label, Value: on, State: state}, nil
	}

	if len(schema.Enum) > 0 {
		opts := enumOptions(schema.Enum)
		if h.str("widget") == "segment" {
			segment := value.Segment{Name: key, Label: label, Options: opts, Selected: -1, State: state}
			if hasCurrent {
				segment.Selected = indexOf(opts, toString(current))
			}
			return segment, nil
		}
		picker := value.Picker{Name: key, Label: label, Options: opts, Selected: -1, Placeholder: h.str("placeholder"), State: state}
		if hasCurrent {
			picker = picker.Select(toString(current))
		}
		return picker, nil
	}

	switch schema.Type {
	case "string":
		return b.stringField(ctx, key, label, schema, h, state, current)
	case "integer":
		field := value.Integer{Name: key, Label: label, State: state}
		if f, ok := toFloat(current); ok {
			field.Value, field.HasValue = int64(f), true
		}
		if schema.Minimum != nil && schema.Maximum != nil {
			field.Min, field.Max = int64(*schema.Minimum), int64(*schema.Maximum)
		}
		return field, nil
	case "number":
		field := value.Float{Name: key, Label: label, Decimals: defaultDecimals, State: state}
		if decimals, ok := h.number("decimals"); ok {
			field.Decimals = int(decimals)
		}
		if f, ok := toFloat(current); ok {
			field.Value, field.HasValue = f, true
		}
		if schema.Minimum != nil && schema.Maximum != nil {
			field.Min, field.Max = *schema.Minimum, *schema.Maximum
		}
		return field, nil
	case "boolean":
		on, _ := current.(bool)
		return value.Toggle{Name: key, Label: label, Value: on, State: state}, nil
	case "array":
		if schema.Items == nil || len(schema.Items.Enum) == 0 {
			return nil, nil
		}
		list := value.ListSelection{Name: key, Label: label, Options: enumOptions(schema.Items.Enum), Multiple: true, State: state}
		if chosen, ok := current.([]any); ok {
			for _, entry := range chosen {
				if idx := indexOf(list.Options, toString(entry)); idx >= 0 && !containsInt(list.Selected, idx) {
					list = list.Toggle(idx)
				}
			}
		}
		return list, nil
	default:
		return nil, nil
	}
}

func (b *Builder) stringField(ctx context.Context, key, label string, schema pkgopenapi.Schema, h hints, state value.State, current any) (value.Value, error) {
	raw := toString(current)
	switch strings.ToLower(schema.Format) {
	case "date":
		return dateField(key, label, value.DateModeDate, raw, state), nil
	case "date-time":
		return dateField(key, label, value.DateModeDateTime, raw, state), nil
	case "time":
		return dateField(key, label, value.DateModeTime, raw, state), nil
	case "timezone":
		provider, err := b.timezoneProvider()
		if err != nil {
			return nil, err
		}
		picker, err := options.Fill(ctx, value.Picker{Name: key, Label: label, Selected: -1, State: state}, provider, "")
		if err != nil {
			return nil, fmt.Errorf("builder: timezone options for %s: %w", key, err)
		}
		if raw != "" {
			picker = picker.Select(raw)
		}
		return picker, nil
	}

	placeholder := b.text(h.str("placeholder"))
	if h.str("widget") == "textarea" {
		return value.Note{Name: key, Label: label, Placeholder: placeholder, Value: raw, State: state}, nil
	}
	field := value.Text{Name: key, Label: label, Placeholder: placeholder, Value: raw, State: state}
	switch strings.ToLower(schema.Format) {
	case "email":
		field.Style = value.TextStyleEmail
	case "uri", "url":
		field.Style = value.TextStyleURL
	case "password":
		field.Style = value.TextStylePassword
	case "tel", "phone":
		field.Style = value.TextStylePhone
	}
	if schema.MaxLength != nil {
		field.MaxLength = *schema.MaxLength
	}
	return field, nil
}

func (b *Builder) timezoneProvider() (options.Provider, error) {
	if b.timezones != nil {
		return b.timezones, nil
	}
	zones, err := options.DefaultZones()
	if err != nil {
		return nil, fmt.Errorf("builder: %w", err)
	}
	provider, err := options.NewTimezones(options.WithZones(zones), options.WithLimits(len(zones), len(zones)))
	if err != nil {
		return nil, fmt.Errorf("builder: %w", err)
	}
	b.timezones = provider
	return provider, nil
}

// submit builds the trailing action. x-endpoint overrides the operation's
// own endpoint.
func (b *Builder) submit(op pkgopenapi.Operation) value.Action {
	label := b.text(hintsOf(op.Extensions).str("submitLabel"))
	if label == "" {
		label = b.submitLabel
	}
	if label == "" {
		label = defaultSubmitLabel
	}
	endpoint := value.Endpoint{URL: op.Endpoint(), Method: op.Method}
	if override, ok := op.Extensions[endpointKey].(map[string]any); ok {
		if url := toString(override["url"]); url != "" {
			endpoint.URL = url
		}
		if method := toString(override["method"]); method != "" {
			endpoint.Method = strings.ToUpper(method)
		}
	}
	return value.Action{Name: submitKey, Label: label, TracksValidity: true, Endpoint: endpoint}
}

func (b *Builder) text(raw string) string {
	raw = strings.TrimSpace(raw)
	if !b.sanitize {
		return raw
	}
	return sanitize.Text(raw)
}

func dateField(key, label string, mode value.DateMode, raw string, state value.State) value.Date {
	field := value.Date{Name: key, Label: label, Mode: mode, State: state}
	if raw == "" {
		return field
	}
	if parsed, err := time.Parse(mode.Layout(), raw); err == nil {
		field.Value = parsed
	}
	return field
}

// orderedProperties sorts by the x-formlist order hint, then by name.
func orderedProperties(properties map[string]pkgopenapi.Schema) []string {
	names := make([]string, 0, len(properties))
	for name := range properties {
		names = append(names, name)
	}
	order := func(name string) float64 {
		if n, ok := hintsOf(properties[name].Extensions).number("order"); ok {
			return n
		}
		return 1 << 30
	}
	sort.SliceStable(names, func(i, j int) bool {
		oi, oj := order(names[i]), order(names[j])
		if oi != oj {
			return oi < oj
		}
		return names[i] < names[j]
	})
	return names
}

func isObject(schema pkgopenapi.Schema) bool {
	return len(schema.Properties) > 0 && (schema.Type == "" || schema.Type == "object")
}

func enumOptions(enum []any) []value.Option {
	out := make([]value.Option, 0, len(enum))
	for _, entry := range enum {
		v := toString(entry)
		out = append(out, value.Option{Title: Label(v), Value: v})
	}
	return out
}

func indexOf(opts []value.Option, v string) int {
	for i, opt := range opts {
		if opt.Value == v {
			return i
		}
	}
	return -1
}

func containsInt(values []int, needle int) bool {
	for _, v := range values {
		if v == needle {
			return true
		}
	}
	return false
}

func joinKey(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "." + name
}
