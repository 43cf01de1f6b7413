package loader

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	pkgopenapi "github.com/goliatone/go-formlist/pkg/openapi"
)

const stub = `{"openapi": "3.0.0"}`

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "api.json")
	if err := os.WriteFile(path, []byte(stub), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	doc, err := New(pkgopenapi.NewLoaderOptions()).Load(context.Background(), pkgopenapi.SourceFromFile(path))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(doc.Raw()) != stub || doc.Location() != path {
		t.Fatalf("unexpected document from %q: %s", doc.Location(), doc.Raw())
	}
}

func TestLoad_FS(t *testing.T) {
	files := fstest.MapFS{"specs/api.json": {Data: []byte(stub)}}
	l := New(pkgopenapi.NewLoaderOptions(pkgopenapi.WithFileSystem(files)))

	if _, err := l.Load(context.Background(), pkgopenapi.SourceFromFS("specs/api.json")); err != nil {
		t.Fatalf("load: %v", err)
	}
	if _, err := l.Load(context.Background(), pkgopenapi.SourceFromFS("missing.json")); err == nil {
		t.Fatalf("expected missing file to fail")
	}
	if _, err := New(pkgopenapi.NewLoaderOptions()).Load(context.Background(), pkgopenapi.SourceFromFS("specs/api.json")); !errors.Is(err, ErrNoFileSystem) {
		t.Fatalf("expected ErrNoFileSystem, got %v", err)
	}
}

func TestLoad_HTTP(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/openapi.json" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(stub))
	}))
	defer server.Close()

	disabled := New(pkgopenapi.NewLoaderOptions())
	if _, err := disabled.Load(context.Background(), pkgopenapi.SourceFromURL(server.URL+"/openapi.json")); !errors.Is(err, ErrHTTPDisabled) {
		t.Fatalf("expected ErrHTTPDisabled, got %v", err)
	}

	l := New(pkgopenapi.NewLoaderOptions(pkgopenapi.WithHTTPClient(server.Client())))
	doc, err := l.Load(context.Background(), pkgopenapi.SourceFromURL(server.URL+"/openapi.json"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(doc.Raw()) != stub {
		t.Fatalf("unexpected payload %s", doc.Raw())
	}

	if _, err := l.Load(context.Background(), pkgopenapi.SourceFromURL(server.URL+"/missing")); err == nil {
		t.Fatalf("expected 404 to fail")
	}
}

func TestLoad_NilSource(t *testing.T) {
	if _, err := New(pkgopenapi.NewLoaderOptions()).Load(context.Background(), nil); err == nil {
		t.Fatalf("expected nil source to fail")
	}
}

func TestLoad_SizeLimit(t *testing.T) {
	files := fstest.MapFS{"api.json": {Data: []byte(stub)}}

	small := New(pkgopenapi.NewLoaderOptions(pkgopenapi.WithFileSystem(files), pkgopenapi.WithMaxDocumentSize(4)))
	if _, err := small.Load(context.Background(), pkgopenapi.SourceFromFS("api.json")); !errors.Is(err, ErrTooLarge) {
		t.Fatalf("expected ErrTooLarge, got %v", err)
	}

	exact := New(pkgopenapi.NewLoaderOptions(pkgopenapi.WithFileSystem(files), pkgopenapi.WithMaxDocumentSize(int64(len(stub)))))
	if _, err := exact.Load(context.Background(), pkgopenapi.SourceFromFS("api.json")); err != nil {
		t.Fatalf("expected document at the limit to load: %v", err)
	}
}

func TestLoad_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := New(pkgopenapi.NewLoaderOptions()).Load(ctx, pkgopenapi.SourceFromFile("api.json")); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
