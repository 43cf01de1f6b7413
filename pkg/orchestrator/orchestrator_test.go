package orchestrator_test

import (
	"context"
	"errors"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formlist/pkg/form"
	pkgopenapi "github.com/goliatone/go-formlist/pkg/openapi"
	"github.com/goliatone/go-formlist/pkg/orchestrator"
	"github.com/goliatone/go-formlist/pkg/render"
	"github.com/goliatone/go-formlist/pkg/value"
)

const petstore = `
openapi: 3.0.0
info: { title: Pets, version: "1.0.0" }
servers:
  - url: https://pets.example.com
paths:
  /pets:
    post:
      operationId: createPet
      summary: New pet
      requestBody:
        content:
          application/json:
            schema:
              type: object
              required: [name]
              properties:
                name: { type: string }
                species: { type: string, enum: [cat, dog] }
                owner:
                  type: object
                  properties:
                    email: { type: string, format: email }
      responses:
        "201": { description: created }
    get:
      operationId: listPets
      responses:
        "200": { description: ok }
`

func petstoreRequest(t *testing.T, operationID string) orchestrator.Request {
	t.Helper()
	doc := pkgopenapi.MustNewDocument(pkgopenapi.SourceFromFile("petstore.yaml"), []byte(petstore))
	return orchestrator.Request{Document: &doc, OperationID: operationID}
}

func sectionTitles(ds *form.DataSource) []string {
	var out []string
	for _, section := range ds.Sections() {
		out = append(out, section.Title)
	}
	return out
}

func TestGenerate_BuildsDataSource(t *testing.T) {
	ds, err := orchestrator.New().Generate(context.Background(), petstoreRequest(t, "createPet"))
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if ds.Title() != "New pet" {
		t.Fatalf("title = %q", ds.Title())
	}
	if diff := cmp.Diff([]string{"General", "Owner"}, sectionTitles(ds)); diff != "" {
		t.Fatalf("sections mismatch (-want +got):\n%s", diff)
	}
	item, ok := ds.ItemForKey("submit")
	if !ok {
		t.Fatalf("expected submit action")
	}
	want := value.Endpoint{URL: "https://pets.example.com/pets", Method: "POST"}
	if diff := cmp.Diff(want, item.Value().(value.Action).Endpoint); diff != "" {
		t.Fatalf("endpoint mismatch (-want +got):\n%s", diff)
	}
}

func TestGenerate_Errors(t *testing.T) {
	orch := orchestrator.New()
	ctx := context.Background()

	if _, err := orch.Generate(ctx, petstoreRequest(t, "missing")); !errors.Is(err, pkgopenapi.ErrOperationNotFound) {
		t.Fatalf("expected ErrOperationNotFound, got %v", err)
	}
	if _, err := orch.Generate(ctx, petstoreRequest(t, "listPets")); !errors.Is(err, pkgopenapi.ErrNoRequestBody) {
		t.Fatalf("expected ErrNoRequestBody, got %v", err)
	}
	if _, err := orch.Generate(ctx, orchestrator.Request{OperationID: "createPet"}); err == nil {
		t.Fatalf("expected missing source to fail")
	}
	if _, err := orch.Generate(ctx, orchestrator.Request{}); err == nil {
		t.Fatalf("expected missing operation id to fail")
	}
}

func TestGenerate_LoadsFromFileSystem(t *testing.T) {
	files := fstest.MapFS{"specs/petstore.yaml": {Data: []byte(petstore)}}
	loader := orchestrator.New(orchestrator.WithLoader(newFSLoader(files)))

	ids, err := loader.OperationIDs(context.Background(), orchestrator.Request{Source: pkgopenapi.SourceFromFS("specs/petstore.yaml")})
	if err != nil {
		t.Fatalf("operation ids: %v", err)
	}
	if diff := cmp.Diff([]string{"createPet", "listPets"}, ids); diff != "" {
		t.Fatalf("ids mismatch (-want +got):\n%s", diff)
	}
}

func TestGenerate_SubsetKeepsSubmit(t *testing.T) {
	req := petstoreRequest(t, "createPet")
	req.Subset = render.FieldSubset{Keys: []string{"name"}}

	ds, err := orchestrator.New().Generate(context.Background(), req)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	section, _ := ds.Section(0)
	var keys []string
	for _, item := range section.Rows() {
		keys = append(keys, item.Key())
	}
	if diff := cmp.Diff([]string{"name", "submit"}, keys); diff != "" {
		t.Fatalf("rows mismatch (-want +got):\n%s", diff)
	}
	if ds.SectionCount() != 1 {
		t.Fatalf("expected owner section to be dropped, got %v", sectionTitles(ds))
	}
}

func TestGenerate_EndpointOverrideAndTransformers(t *testing.T) {
	var order []string
	orch := orchestrator.New(
		orchestrator.WithEndpointOverride("createPet", value.Endpoint{URL: "/local/pets", Method: "PUT"}),
		orchestrator.WithTransformer(orchestrator.TransformerFunc(func(_ context.Context, ds *form.DataSource) error {
			order = append(order, "first")
			ds.SetTitle("Adopt")
			return nil
		})),
		orchestrator.WithTransformer(orchestrator.TransformerFunc(func(context.Context, *form.DataSource) error {
			order = append(order, "second")
			return nil
		})),
	)

	ds, err := orch.Generate(context.Background(), petstoreRequest(t, "createPet"))
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if diff := cmp.Diff([]string{"first", "second"}, order); diff != "" {
		t.Fatalf("transformer order mismatch (-want +got):\n%s", diff)
	}
	if ds.Title() != "Adopt" {
		t.Fatalf("title = %q", ds.Title())
	}
	item, _ := ds.ItemForKey("submit")
	if got := item.Value().(value.Action).Endpoint; got != (value.Endpoint{URL: "/local/pets", Method: "PUT"}) {
		t.Fatalf("unexpected endpoint %+v", got)
	}

	failing := orchestrator.New(orchestrator.WithTransformer(orchestrator.TransformerFunc(func(context.Context, *form.DataSource) error {
		return errors.New("boom")
	})))
	if _, err := failing.Generate(context.Background(), petstoreRequest(t, "createPet")); err == nil {
		t.Fatalf("expected transformer error to surface")
	}
}

type fsLoader struct {
	files fstest.MapFS
}

func newFSLoader(files fstest.MapFS) pkgopenapi.Loader {
	return fsLoader{files: files}
}

func (l fsLoader) Load(_ context.Context, src pkgopenapi.Source) (pkgopenapi.Document, error) {
	data, err := l.files.ReadFile(src.Location())
	if err != nil {
		return pkgopenapi.Document{}, err
	}
	return pkgopenapi.NewDocument(src, data)
}
