package formlist_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/goliatone/go-formlist"
	pkgopenapi "github.com/goliatone/go-formlist/pkg/openapi"
	"github.com/goliatone/go-formlist/pkg/orchestrator"
	"github.com/goliatone/go-formlist/pkg/value"
)

const signup = `{
  "openapi": "3.0.0",
  "info": {"title": "Signup", "version": "1.0.0"},
  "paths": {
    "/signup": {
      "post": {
        "operationId": "signup",
        "summary": "Create your account",
        "requestBody": {
          "content": {
            "application/json": {
              "schema": {
                "type": "object",
                "required": ["email"],
                "properties": {
                  "email": {"type": "string", "format": "email"},
                  "timezone": {"type": "string", "format": "timezone", "default": "UTC"}
                }
              }
            }
          }
        },
        "responses": {"201": {"description": "created"}}
      }
    }
  }
}`

func TestFromOpenAPI_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "signup.json")
	if err := os.WriteFile(path, []byte(signup), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	ds, err := formlist.FromOpenAPI(context.Background(), pkgopenapi.SourceFromFile(path), "signup")
	if err != nil {
		t.Fatalf("from openapi: %v", err)
	}
	if ds.Title() != "Create your account" {
		t.Fatalf("title = %q", ds.Title())
	}
	if ds.IsValid() {
		t.Fatalf("expected required email to make the form invalid")
	}
	tz, ok := ds.ItemForKey("timezone")
	if !ok {
		t.Fatalf("missing timezone row")
	}
	if choice, ok := tz.Value().(value.Picker).Choice(); !ok || choice.Value != "UTC" {
		t.Fatalf("unexpected timezone choice %+v", choice)
	}
}

func TestFromOpenAPI_URL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(signup))
	}))
	defer server.Close()

	loader := formlist.NewLoader(pkgopenapi.WithHTTPClient(server.Client()))
	ds, err := formlist.FromOpenAPI(context.Background(), pkgopenapi.SourceFromURL(server.URL+"/openapi.json"), "signup",
		orchestrator.WithLoader(loader),
	)
	if err != nil {
		t.Fatalf("from openapi: %v", err)
	}
	submit, ok := ds.ItemForKey("submit")
	if !ok {
		t.Fatalf("missing submit row")
	}
	if got := submit.Value().(value.Action).Endpoint; got != (value.Endpoint{URL: "/signup", Method: "POST"}) {
		t.Fatalf("unexpected endpoint %+v", got)
	}
}

func TestFromDocument(t *testing.T) {
	doc := pkgopenapi.MustNewDocument(pkgopenapi.SourceFromFile("signup.json"), []byte(signup))
	if _, err := formlist.FromDocument(context.Background(), doc, "signup"); err != nil {
		t.Fatalf("from document: %v", err)
	}

	ops, err := formlist.NewParser().Operations(context.Background(), doc)
	if err != nil {
		t.Fatalf("operations: %v", err)
	}
	if _, ok := ops["signup"]; !ok {
		t.Fatalf("expected signup operation")
	}
}
