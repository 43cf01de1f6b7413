package builder

import (
	"fmt"
	"sort"
	"strings"

	pkgopenapi "github.com/goliatone/go-formlist/pkg/openapi"
)

var (
	schemaHints = map[string]bool{
		"label":       true,
		"placeholder": true,
		"widget":      true,
		"order":       true,
		"decimals":    true,
		"collapsed":   true,
	}
	operationHints = map[string]bool{
		"title":       true,
		"submitLabel": true,
	}
	widgets = map[string]bool{
		"textarea": true,
		"segment":  true,
		"hidden":   true,
		"toggle":   true,
	}
)

// Violation is a hint the builder would ignore or reject.
type Violation struct {
	// Location is a slash separated path such as "createPet/requestBody/name".
	Location string
	Message  string
}

func (v Violation) String() string {
	return v.Location + ": " + v.Message
}

// Lint reports x-formlist hints on op that Build does not understand. The
// result is sorted by location.
func Lint(op pkgopenapi.Operation) []Violation {
	var out []Violation
	out = append(out, lintHints(op.ID, op.Extensions, operationHints)...)
	if ep, ok := op.Extensions[endpointKey]; ok {
		if _, isMap := ep.(map[string]any); !isMap {
			out = append(out, Violation{Location: op.ID, Message: endpointKey + " must be an object"})
		}
	}
	out = append(out, lintSchema(op.ID+"/requestBody", op.RequestBody)...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Location == out[j].Location {
			return out[i].Message < out[j].Message
		}
		return out[i].Location < out[j].Location
	})
	return out
}

func lintSchema(location string, schema pkgopenapi.Schema) []Violation {
	out := lintHints(location, schema.Extensions, schemaHints)
	if raw, ok := schema.Extensions[namespaceKey]; ok {
		if _, isMap := raw.(map[string]any); !isMap {
			out = append(out, Violation{Location: location, Message: namespaceKey + " must be an object"})
		}
	}
	for name, property := range schema.Properties {
		out = append(out, lintSchema(location+"/"+name, property)...)
	}
	if schema.Items != nil {
		out = append(out, lintSchema(location+"/items", *schema.Items)...)
	}
	return out
}

func lintHints(location string, extensions map[string]any, allowed map[string]bool) []Violation {
	var out []Violation
	h := hintsOf(extensions)
	for key, raw := range h {
		if !allowed[key] {
			out = append(out, Violation{Location: location, Message: fmt.Sprintf("unknown hint %q", key)})
			continue
		}
		switch key {
		case "widget":
			if name := h.str(key); !widgets[name] {
				out = append(out, Violation{Location: location, Message: fmt.Sprintf("unknown widget %q", name)})
			}
		case "order", "decimals":
			if _, ok := toFloat(raw); !ok {
				out = append(out, Violation{Location: location, Message: fmt.Sprintf("hint %q must be a number", key)})
			}
		case "label", "placeholder", "title", "submitLabel":
			if _, ok := raw.(string); !ok {
				out = append(out, Violation{Location: location, Message: fmt.Sprintf("hint %q must be a string", key)})
			} else if strings.TrimSpace(raw.(string)) == "" {
				out = append(out, Violation{Location: location, Message: fmt.Sprintf("hint %q is empty", key)})
			}
		}
	}
	return out
}
