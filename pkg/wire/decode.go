package wire

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formlist/internal/sanitize"
	"github.com/goliatone/go-formlist/pkg/form"
	"github.com/goliatone/go-formlist/pkg/value"
)

// Unmarshal decodes a JSON or YAML document. Input whose first non-blank
// byte is '{' is read as JSON.
func Unmarshal(data []byte, opts ...Option) (*form.DataSource, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		return DecodeJSON(bytes.NewReader(trimmed), opts...)
	}
	return DecodeYAML(bytes.NewReader(trimmed), opts...)
}

// DecodeJSON reads a JSON document from r.
func DecodeJSON(r io.Reader, opts ...Option) (*form.DataSource, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	var doc Form
	if err := dec.Decode(&doc); err != nil {
		return nil, &DecodeError{Err: fmt.Errorf("json: %w", err)}
	}
	return Decode(doc, opts...)
}

// DecodeYAML reads a YAML document from r.
func DecodeYAML(r io.Reader, opts ...Option) (*form.DataSource, error) {
	var doc Form
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, &DecodeError{Err: fmt.Errorf("yaml: %w", err)}
	}
	return Decode(doc, opts...)
}

// Decode builds a data source from doc. The first malformed value aborts
// decoding with a *DecodeError.
func Decode(doc Form, opts ...Option) (*form.DataSource, error) {
	cfg := newConfig(opts)
	d := decoder{cfg: cfg}

	sections := make([]*form.Section, 0, len(doc.Sections))
	for si, ws := range doc.Sections {
		builder := form.NewSectionBuilder(d.clean(ws.Title)).Footer(d.clean(ws.Footer))
		for vi, field := range ws.Values {
			v, err := d.field(field, fmt.Sprintf("sections[%d].values[%d]", si, vi))
			if err != nil {
				return nil, err
			}
			builder.Add(v)
		}
		sections = append(sections, builder.Build())
	}

	formOpts := append([]form.Option{form.WithTitle(d.clean(doc.Title))}, cfg.formOptions...)
	ds := form.New(sections, formOpts...)
	cfg.logger.Debug("wire: decoded form",
		zap.String("title", ds.Title()),
		zap.Int("sections", ds.SectionCount()),
	)
	return ds, nil
}

type decoder struct {
	cfg config
}

func (d decoder) clean(s string) string {
	if !d.cfg.sanitize {
		return strings.TrimSpace(s)
	}
	return sanitize.Text(s)
}

func (d decoder) field(f Field, path string) (value.Value, error) {
	if !f.Type.Known() {
		return nil, &DecodeError{Path: path + ".type", Type: f.Type, Err: ErrUnknownType}
	}
	b := &bag{path: path, typ: f.Type, data: f.Data}
	name := b.str("key")
	label := d.clean(b.str("title"))
	state := value.State{Required: b.flag("required", false)}

	var v value.Value
	switch f.Type {
	case TypeText:
		if b.flag("multiline", false) {
			v = value.Note{
				Name:        name,
				Label:       label,
				Placeholder: d.clean(b.str("placeholder")),
				Value:       b.str("value"),
				State:       state,
			}
			break
		}
		style := value.TextStyle(strings.ToLower(b.str("style")))
		if !knownTextStyle(style) {
			b.fail("style", "unknown text style %q", style)
		}
		maxLength, _ := b.integer("maxLength")
		v = value.Text{
			Name:        name,
			Label:       label,
			Placeholder: d.clean(b.str("placeholder")),
			Value:       b.str("value"),
			Style:       style,
			MaxLength:   int(maxLength),
			State:       state,
		}
	case TypeDisplay:
		v = value.ReadOnly{Name: name, Label: label, Value: d.clean(b.str("value"))}
	case TypeInt:
		n, has := b.integer("value")
		lo, _ := b.integer("min")
		hi, _ := b.integer("max")
		v = value.Integer{Name: name, Label: label, Value: n, HasValue: has, Min: lo, Max: hi, State: state}
	case TypeDouble:
		n, has := b.number("value")
		lo, _ := b.number("min")
		hi, _ := b.number("max")
		decimals, _ := b.integer("decimals")
		v = value.Float{
			Name:     name,
			Label:    label,
			Value:    n,
			HasValue: has,
			Decimals: int(decimals),
			Min:      lo,
			Max:      hi,
			State:    state,
		}
	case TypeList:
		v = d.list(b, name, label, state)
	case TypeSubmit:
		endpoint := value.Endpoint{
			URL:    strings.TrimSpace(b.str("url")),
			Method: strings.ToUpper(strings.TrimSpace(b.str("method"))),
		}
		if endpoint.URL != "" {
			if _, err := url.Parse(endpoint.URL); err != nil {
				b.fail("url", "%v", err)
			}
			if endpoint.Method == "" {
				endpoint.Method = "POST"
			}
		}
		style := value.ActionStyle(strings.ToLower(b.str("style")))
		if !knownActionStyle(style) {
			b.fail("style", "unknown action style %q", style)
		}
		v = value.Action{
			Name:           name,
			Label:          label,
			Style:          style,
			Enabled:        b.flag("enabled", true),
			TracksValidity: b.flag("tracksValidity", false),
			Endpoint:       endpoint,
		}
	case TypePush:
		v = value.Link{
			Name:        name,
			Label:       label,
			Detail:      d.clean(b.str("detail")),
			Destination: strings.TrimSpace(b.str("destination")),
		}
	}
	if b.err != nil {
		return nil, b.err
	}
	return v, nil
}

func (d decoder) list(b *bag, name, label string, state value.State) value.Value {
	options := b.options("options")
	for i := range options {
		options[i].Title = d.clean(options[i].Title)
	}
	if b.flag("multiple", false) {
		chosen := map[string]bool{}
		for _, v := range b.strs("value") {
			chosen[v] = true
		}
		var selected []int
		for idx, opt := range options {
			if chosen[opt.Value] {
				selected = append(selected, idx)
			}
		}
		return value.ListSelection{
			Name:     name,
			Label:    label,
			Options:  options,
			Selected: selected,
			Multiple: true,
			State:    state,
		}
	}
	picker := value.Picker{
		Name:        name,
		Label:       label,
		Options:     options,
		Placeholder: d.clean(b.str("placeholder")),
		State:       state,
	}
	return picker.Select(b.str("value"))
}

func knownTextStyle(style value.TextStyle) bool {
	switch style {
	case value.TextStylePlain, value.TextStyleEmail, value.TextStylePhone,
		value.TextStyleURL, value.TextStylePassword, value.TextStyleNumeric:
		return true
	default:
		return false
	}
}

func knownActionStyle(style value.ActionStyle) bool {
	switch style {
	case value.ActionStyleDefault, value.ActionStyleDestructive, value.ActionStyleCancel:
		return true
	default:
		return false
	}
}
