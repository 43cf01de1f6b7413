package wire

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formlist/pkg/form"
	"github.com/goliatone/go-formlist/pkg/value"
)

// Encode projects ds onto the wire format. Hidden values and spacers are
// skipped; any other kind without a wire type fails with
// ErrUnsupportedKind.
func Encode(ds *form.DataSource) (Form, error) {
	if ds == nil {
		return Form{}, nil
	}
	doc := Form{Title: ds.Title(), Sections: make([]Section, 0, ds.SectionCount())}
	for si, section := range ds.Sections() {
		ws := Section{Title: section.Title, Footer: section.Footer, Values: []Field{}}
		for ri, item := range section.Rows() {
			field, ok, err := encodeValue(item.Value())
			if err != nil {
				return Form{}, fmt.Errorf("wire: encode section %d row %d: %w", si, ri, err)
			}
			if ok {
				ws.Values = append(ws.Values, field)
			}
		}
		doc.Sections = append(doc.Sections, ws)
	}
	return doc, nil
}

// EncodeJSON writes ds as indented JSON.
func EncodeJSON(w io.Writer, ds *form.DataSource) error {
	doc, err := Encode(ds)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// EncodeYAML writes ds as YAML.
func EncodeYAML(w io.Writer, ds *form.DataSource) error {
	doc, err := Encode(ds)
	if err != nil {
		return err
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("wire: encode yaml: %w", err)
	}
	return enc.Close()
}

type props map[string]any

func (p props) put(key string, v any) props {
	switch typed := v.(type) {
	case string:
		if typed == "" {
			return p
		}
	case bool:
		if !typed {
			return p
		}
	case int64:
		if typed == 0 {
			return p
		}
	case float64:
		if typed == 0 {
			return p
		}
	}
	p[key] = v
	return p
}

func encodeValue(v value.Value) (Field, bool, error) {
	switch typed := v.(type) {
	case value.Text:
		data := props{}.
			put("key", typed.Name).
			put("title", typed.Label).
			put("value", typed.Value).
			put("placeholder", typed.Placeholder).
			put("style", string(typed.Style)).
			put("required", typed.State.Required).
			put("maxLength", int64(typed.MaxLength))
		return Field{Type: TypeText, Data: data}, true, nil
	case value.Note:
		data := props{}.
			put("key", typed.Name).
			put("title", typed.Label).
			put("value", typed.Value).
			put("placeholder", typed.Placeholder).
			put("required", typed.State.Required).
			put("multiline", true)
		return Field{Type: TypeText, Data: data}, true, nil
	case value.ReadOnly:
		data := props{}.put("key", typed.Name).put("title", typed.Label).put("value", typed.Value)
		return Field{Type: TypeDisplay, Data: data}, true, nil
	case value.Integer:
		data := props{}.
			put("key", typed.Name).
			put("title", typed.Label).
			put("min", typed.Min).
			put("max", typed.Max).
			put("required", typed.State.Required)
		if typed.HasValue {
			data["value"] = typed.Value
		}
		return Field{Type: TypeInt, Data: data}, true, nil
	case value.Float:
		data := props{}.
			put("key", typed.Name).
			put("title", typed.Label).
			put("min", typed.Min).
			put("max", typed.Max).
			put("decimals", int64(typed.Decimals)).
			put("required", typed.State.Required)
		if typed.HasValue {
			data["value"] = typed.Value
		}
		return Field{Type: TypeDouble, Data: data}, true, nil
	case value.Picker:
		data := props{}.
			put("key", typed.Name).
			put("title", typed.Label).
			put("placeholder", typed.Placeholder).
			put("required", typed.State.Required)
		data["options"] = encodeOptions(typed.Options)
		if opt, ok := typed.Choice(); ok {
			data["value"] = opt.Value
		}
		return Field{Type: TypeList, Data: data}, true, nil
	case value.ListSelection:
		data := props{}.
			put("key", typed.Name).
			put("title", typed.Label).
			put("required", typed.State.Required).
			put("multiple", true)
		data["options"] = encodeOptions(typed.Options)
		chosen := make([]any, 0, len(typed.Selected))
		for _, opt := range typed.Chosen() {
			chosen = append(chosen, opt.Value)
		}
		data["value"] = chosen
		return Field{Type: TypeList, Data: data}, true, nil
	case value.Action:
		data := props{}.
			put("key", typed.Name).
			put("title", typed.Label).
			put("url", typed.Endpoint.URL).
			put("method", typed.Endpoint.Method).
			put("style", string(typed.Style)).
			put("tracksValidity", typed.TracksValidity)
		data["enabled"] = typed.Enabled
		return Field{Type: TypeSubmit, Data: data}, true, nil
	case value.Link:
		data := props{}.
			put("key", typed.Name).
			put("title", typed.Label).
			put("detail", typed.Detail).
			put("destination", typed.Destination)
		return Field{Type: TypePush, Data: data}, true, nil
	case value.Hidden, value.Spacer:
		return Field{}, false, nil
	default:
		return Field{}, false, fmt.Errorf("%w: %s", ErrUnsupportedKind, v.Kind())
	}
}

func encodeOptions(options []value.Option) []any {
	out := make([]any, 0, len(options))
	for _, opt := range options {
		out = append(out, map[string]any{"title": opt.Title, "value": opt.Value})
	}
	return out
}
