package builder

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	pkgopenapi "github.com/goliatone/go-formlist/pkg/openapi"
)

func TestLint_ReportsUnknownHints(t *testing.T) {
	op := pkgopenapi.Operation{
		ID:     "createPet",
		Method: "POST",
		Path:   "/pets",
		Extensions: map[string]any{
			"x-formlist":  map[string]any{"title": "New pet", "theme": "dark"},
			"x-endpoint":  "https://elsewhere",
			"x-unrelated": true,
		},
		RequestBody: pkgopenapi.Schema{
			Type: "object",
			Properties: map[string]pkgopenapi.Schema{
				"name": {
					Type:       "string",
					Extensions: map[string]any{"x-formlist": map[string]any{"label": "Name", "widget": "slider"}},
				},
				"age": {
					Type:       "integer",
					Extensions: map[string]any{"x-formlist-order": "first"},
				},
				"tags": {
					Type:  "array",
					Items: &pkgopenapi.Schema{Type: "string", Extensions: map[string]any{"x-formlist-label": "  "}},
				},
			},
		},
	}

	got := Lint(op)
	want := []Violation{
		{Location: "createPet", Message: "unknown hint \"theme\""},
		{Location: "createPet", Message: "x-endpoint must be an object"},
		{Location: "createPet/requestBody/age", Message: "hint \"order\" must be a number"},
		{Location: "createPet/requestBody/name", Message: "unknown widget \"slider\""},
		{Location: "createPet/requestBody/tags/items", Message: "hint \"label\" is empty"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("violations mismatch (-want +got):\n%s", diff)
	}
}

func TestLint_CleanOperation(t *testing.T) {
	op := accountOperation(t)
	if got := Lint(op); len(got) != 0 {
		t.Fatalf("expected no violations, got %v", got)
	}
	if s := (Violation{Location: "a/b", Message: "bad"}).String(); s != "a/b: bad" {
		t.Fatalf("unexpected string %q", s)
	}
}
