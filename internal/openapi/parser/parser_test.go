package parser

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/google/go-cmp/cmp"

	pkgopenapi "github.com/goliatone/go-formlist/pkg/openapi"
)

func TestConvertSchema_StopsAtRecursiveReferences(t *testing.T) {
	const document = `
openapi: 3.0.0
info: { title: Org chart, version: "1.0.0" }
paths: {}
components:
  schemas:
    Employee:
      type: object
      properties:
        name: { type: string }
        manager: { $ref: "#/components/schemas/Employee" }
`
	doc, err := openapi3.NewLoader().LoadFromData([]byte(document))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	schema := convertSchema(doc.Components.Schemas["Employee"])
	if _, ok := schema.Properties["name"]; !ok {
		t.Fatalf("expected name property, got %s", schema.DebugString())
	}

	// Each level keeps its $ref and the chain ends once the cycle is seen.
	levels := 0
	for node, ok := schema.Properties["manager"]; ok; node, ok = node.Properties["manager"] {
		levels++
		if node.Ref != "#/components/schemas/Employee" {
			t.Fatalf("level %d lost its reference: %+v", levels, node)
		}
		if levels > maxSchemaDepth {
			t.Fatalf("recursion was not cut off")
		}
	}
	if levels == 0 {
		t.Fatalf("expected a manager property")
	}
}

func TestOperations_MergesAllOfMembers(t *testing.T) {
	t.Parallel()

	const document = `
openapi: 3.0.0
info: { title: Accounts, version: "1.0.0" }
paths:
  /accounts:
    post:
      operationId: createAccount
      requestBody:
        content:
          application/json:
            schema:
              allOf:
                - $ref: "#/components/schemas/Profile"
                - type: object
                  required: [email]
                  properties:
                    email: { type: string, format: email }
      responses:
        "201": { description: created }
components:
  schemas:
    Profile:
      type: object
      required: [name]
      properties:
        name: { type: string }
        age: { type: integer, minimum: 18 }
`
	doc := pkgopenapi.MustNewDocument(pkgopenapi.SourceFromFile("accounts.yaml"), []byte(document))
	operations, err := New(pkgopenapi.NewParserOptions()).Operations(context.Background(), doc)
	if err != nil {
		t.Fatalf("operations: %v", err)
	}
	body := operations["createAccount"].RequestBody

	if body.Type != "object" {
		t.Fatalf("type = %q, want object from the first member", body.Type)
	}
	names := make([]string, 0, len(body.Properties))
	for name := range body.Properties {
		names = append(names, name)
	}
	sort.Strings(names)
	if diff := cmp.Diff([]string{"age", "email", "name"}, names); diff != "" {
		t.Fatalf("properties mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"name", "email"}, body.Required); diff != "" {
		t.Fatalf("required mismatch (-want +got):\n%s", diff)
	}
	if got := body.Properties["email"].Format; got != "email" {
		t.Fatalf("email format = %q", got)
	}
	if min := body.Properties["age"].Minimum; min == nil || *min != 18 {
		t.Fatalf("age minimum = %v", min)
	}
}

func TestOperations_CollectsFormMetadata(t *testing.T) {
	t.Parallel()

	const document = `
openapi: 3.0.0
info: { title: Accounts, version: "1.0.0" }
servers:
  - url: https://api.example.com/v1
paths:
  /accounts/{id}:
    put:
      operationId: updateAccount
      summary: Update account
      x-formlist:
        submitLabel: Save
      requestBody:
        content:
          application/x-www-form-urlencoded:
            schema:
              type: object
              required: [name]
              properties:
                name:
                  type: string
                  title: Display name
                  maxLength: 40
                  x-current-value: Ada
                id:
                  type: string
                  readOnly: true
      responses:
        "200": { description: ok }
  /ping:
    get:
      responses:
        "204": { description: pong }
`

	doc := pkgopenapi.MustNewDocument(pkgopenapi.SourceFromFile("accounts.yaml"), []byte(document))
	operations, err := New(pkgopenapi.NewParserOptions()).Operations(context.Background(), doc)
	if err != nil {
		t.Fatalf("parse operations: %v", err)
	}

	if _, ok := operations["get:/ping"]; !ok {
		t.Fatalf("expected operation without id to be keyed by method and path, got %v", keysOf(operations))
	}

	op, ok := operations["updateAccount"]
	if !ok {
		t.Fatalf("operation updateAccount not found")
	}
	if op.Method != "PUT" || op.Summary != "Update account" {
		t.Fatalf("unexpected operation header: %+v", op)
	}
	if got := op.Endpoint(); got != "https://api.example.com/v1/accounts/{id}" {
		t.Fatalf("endpoint = %q", got)
	}
	if ns, ok := op.Extensions["x-formlist"].(map[string]any); !ok || ns["submitLabel"] != "Save" {
		t.Fatalf("expected x-formlist extension, got %+v", op.Extensions)
	}

	name := op.RequestBody.Properties["name"]
	if name.Title != "Display name" || name.MaxLength == nil || *name.MaxLength != 40 {
		t.Fatalf("unexpected name schema: %+v", name)
	}
	if name.Extensions["x-current-value"] != "Ada" {
		t.Fatalf("expected current value extension, got %+v", name.Extensions)
	}
	if !op.RequestBody.Properties["id"].ReadOnly {
		t.Fatalf("expected id to be read only")
	}
}

func TestOperations_RejectsEmptyDocuments(t *testing.T) {
	t.Parallel()

	const document = `{"openapi": "3.0.0", "info": {"title": "Empty", "version": "1"}, "paths": {}}`
	doc := pkgopenapi.MustNewDocument(pkgopenapi.SourceFromFile("empty.json"), []byte(document))

	if _, err := New(pkgopenapi.NewParserOptions()).Operations(context.Background(), doc); !errors.Is(err, ErrNoOperations) {
		t.Fatalf("expected ErrNoOperations, got %v", err)
	}

	partial := New(pkgopenapi.NewParserOptions(pkgopenapi.WithPartialDocuments(true)))
	operations, err := partial.Operations(context.Background(), doc)
	if err != nil {
		t.Fatalf("partial parse: %v", err)
	}
	if len(operations) != 0 {
		t.Fatalf("expected no operations, got %d", len(operations))
	}
}

func keysOf(operations map[string]pkgopenapi.Operation) []string {
	out := make([]string, 0, len(operations))
	for id := range operations {
		out = append(out, id)
	}
	return out
}
