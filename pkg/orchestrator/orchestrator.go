package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/goliatone/go-formlist/internal/builder"
	"github.com/goliatone/go-formlist/internal/logging"
	internalLoader "github.com/goliatone/go-formlist/internal/openapi/loader"
	internalParser "github.com/goliatone/go-formlist/internal/openapi/parser"
	"github.com/goliatone/go-formlist/pkg/form"
	pkgopenapi "github.com/goliatone/go-formlist/pkg/openapi"
	"github.com/goliatone/go-formlist/pkg/render"
	"github.com/goliatone/go-formlist/pkg/value"
)

// Builder turns a parsed operation into a data source.
type Builder interface {
	Build(ctx context.Context, op pkgopenapi.Operation) (*form.DataSource, error)
}

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithLoader injects a custom OpenAPI loader.
func WithLoader(loader pkgopenapi.Loader) Option {
	return func(o *Orchestrator) {
		o.loader = loader
	}
}

// WithParser injects a custom OpenAPI parser.
func WithParser(parser pkgopenapi.Parser) Option {
	return func(o *Orchestrator) {
		o.parser = parser
	}
}

// WithBuilder injects a custom form builder.
func WithBuilder(b Builder) Option {
	return func(o *Orchestrator) {
		o.builder = b
	}
}

// WithTransformer appends a Transformer run after building, in registration
// order.
func WithTransformer(t Transformer) Option {
	return func(o *Orchestrator) {
		if t != nil {
			o.transformers = append(o.transformers, t)
		}
	}
}

// WithEndpointOverride replaces the endpoint of every action in the form
// generated for operationID.
func WithEndpointOverride(operationID string, endpoint value.Endpoint) Option {
	return func(o *Orchestrator) {
		if o.endpoints == nil {
			o.endpoints = make(map[string]value.Endpoint)
		}
		o.endpoints[operationID] = endpoint
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(o *Orchestrator) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// Orchestrator coordinates the pipeline from OpenAPI document to data source.
// Missing dependencies fall back to the built-in implementations.
type Orchestrator struct {
	loader       pkgopenapi.Loader
	parser       pkgopenapi.Parser
	builder      Builder
	transformers []Transformer
	endpoints    map[string]value.Endpoint
	logger       *zap.Logger
}

// New constructs an Orchestrator applying options.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{logger: logging.Named("orchestrator")}
	for _, opt := range options {
		if opt != nil {
			opt(o)
		}
	}
	if o.loader == nil {
		o.loader = internalLoader.New(pkgopenapi.NewLoaderOptions())
	}
	if o.parser == nil {
		o.parser = internalParser.New(pkgopenapi.NewParserOptions())
	}
	if o.builder == nil {
		o.builder = builder.New(builder.WithLogger(o.logger))
	}
	return o
}

// Request describes the inputs required to build a form.
type Request struct {
	// Source identifies where the OpenAPI document lives. Optional when
	// Document is supplied.
	Source pkgopenapi.Source

	// Document bypasses the loader.
	Document *pkgopenapi.Document

	// OperationID selects the operation whose request body becomes the form.
	OperationID string

	// Subset narrows the generated sections; see render.ApplySubset.
	Subset render.FieldSubset
}

// Generate runs load → parse → build → transform and returns the data source.
func (o *Orchestrator) Generate(ctx context.Context, req Request) (*form.DataSource, error) {
	if ctx == nil {
		return nil, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if req.OperationID == "" {
		return nil, errors.New("orchestrator: operation id is required")
	}

	operations, err := o.operations(ctx, req)
	if err != nil {
		return nil, err
	}

	op, ok := operations[req.OperationID]
	if !ok {
		return nil, fmt.Errorf("orchestrator: %q: %w", req.OperationID, pkgopenapi.ErrOperationNotFound)
	}

	ds, err := o.builder.Build(ctx, op)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: build form: %w", err)
	}

	if endpoint, ok := o.endpoints[req.OperationID]; ok {
		overrideEndpoints(ds, endpoint)
	}
	if len(req.Subset.Sections) > 0 || len(req.Subset.Keys) > 0 {
		applySubset(ds, req.Subset)
	}
	for _, t := range o.transformers {
		if err := t.Transform(ctx, ds); err != nil {
			return nil, fmt.Errorf("orchestrator: transform form: %w", err)
		}
	}

	o.logger.Debug("orchestrator: form generated",
		zap.String("operation", req.OperationID),
		zap.Int("sections", ds.SectionCount()),
	)
	return ds, nil
}

// OperationIDs lists the operations of the requested document, sorted.
func (o *Orchestrator) OperationIDs(ctx context.Context, req Request) ([]string, error) {
	operations, err := o.operations(ctx, req)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(operations))
	for id := range operations {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

func (o *Orchestrator) operations(ctx context.Context, req Request) (map[string]pkgopenapi.Operation, error) {
	doc, err := o.resolveDocument(ctx, req)
	if err != nil {
		return nil, err
	}
	operations, err := o.parser.Operations(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: parse operations: %w", err)
	}
	return operations, nil
}

func (o *Orchestrator) resolveDocument(ctx context.Context, req Request) (pkgopenapi.Document, error) {
	if req.Document != nil {
		return *req.Document, nil
	}
	if req.Source == nil {
		return pkgopenapi.Document{}, errors.New("orchestrator: source or document is required")
	}
	doc, err := o.loader.Load(ctx, req.Source)
	if err != nil {
		return pkgopenapi.Document{}, fmt.Errorf("orchestrator: load document: %w", err)
	}
	return doc, nil
}

// applySubset narrows the sections and keeps the form submittable: actions
// filtered out with their rows are re-appended to the last kept section.
func applySubset(ds *form.DataSource, subset render.FieldSubset) {
	actions := collectActions(ds.Sections())
	sections := render.ApplySubset(ds.Sections(), subset)
	if len(collectActions(sections)) == 0 && len(actions) > 0 {
		if len(sections) == 0 {
			sections = []*form.Section{form.NewSection("")}
		}
		last := sections[len(sections)-1]
		for _, action := range actions {
			last.AppendRow(action)
		}
	}
	ds.SetSections(sections)
}

func collectActions(sections []*form.Section) []form.Item {
	var out []form.Item
	for _, section := range sections {
		for _, item := range section.Rows() {
			if item.Kind() == value.KindAction {
				out = append(out, item)
			}
		}
	}
	return out
}

// overrideEndpoints rewrites the endpoint of every action row.
func overrideEndpoints(ds *form.DataSource, endpoint value.Endpoint) {
	for sIdx, section := range ds.Sections() {
		for rIdx, item := range section.Rows() {
			action, ok := item.Value().(value.Action)
			if !ok {
				continue
			}
			action.Endpoint = endpoint
			ds.UpdateWith(form.NewItem(action), form.At(sIdx, rIdx))
		}
	}
}
