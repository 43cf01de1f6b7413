// Package formlist builds declarative, list-shaped forms. The form model
// lives in pkg/form and pkg/value; this package offers shortcuts for the
// common OpenAPI entry point.
package formlist

import (
	"context"

	internalLoader "github.com/goliatone/go-formlist/internal/openapi/loader"
	internalParser "github.com/goliatone/go-formlist/internal/openapi/parser"
	"github.com/goliatone/go-formlist/pkg/form"
	pkgopenapi "github.com/goliatone/go-formlist/pkg/openapi"
	"github.com/goliatone/go-formlist/pkg/orchestrator"
	"github.com/goliatone/go-formlist/pkg/render"
)

// FieldSubset aliases render.FieldSubset for callers narrowing a form.
type FieldSubset = render.FieldSubset

// NewLoader constructs a loader while keeping the concrete type hidden.
func NewLoader(options ...pkgopenapi.LoaderOption) pkgopenapi.Loader {
	return internalLoader.New(pkgopenapi.NewLoaderOptions(options...))
}

// NewParser constructs the kin-openapi backed parser.
func NewParser(options ...pkgopenapi.ParserOption) pkgopenapi.Parser {
	return internalParser.New(pkgopenapi.NewParserOptions(options...))
}

// NewOrchestrator exposes the orchestrator constructor from the module root.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// FromOpenAPI loads src, finds operationID and returns a data source built
// from its request body.
func FromOpenAPI(ctx context.Context, src pkgopenapi.Source, operationID string, options ...orchestrator.Option) (*form.DataSource, error) {
	return orchestrator.New(options...).Generate(ctx, orchestrator.Request{
		Source:      src,
		OperationID: operationID,
	})
}

// FromDocument is FromOpenAPI for an already loaded document.
func FromDocument(ctx context.Context, doc pkgopenapi.Document, operationID string, options ...orchestrator.Option) (*form.DataSource, error) {
	return orchestrator.New(options...).Generate(ctx, orchestrator.Request{
		Document:    &doc,
		OperationID: operationID,
	})
}
