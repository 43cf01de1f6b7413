package parser

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	pkgopenapi "github.com/goliatone/go-formlist/pkg/openapi"
)

// ErrNoOperations is returned for documents without any operation unless
// partial documents are allowed.
var ErrNoOperations = errors.New("no operations found")

// Parser reads operations and their request bodies with kin-openapi.
type Parser struct {
	options pkgopenapi.ParserOptions
}

var _ pkgopenapi.Parser = (*Parser)(nil)

func New(options pkgopenapi.ParserOptions) pkgopenapi.Parser {
	return &Parser{options: options}
}

// Operations converts a Document into a map keyed by operationId. Operations
// without an explicit id are keyed "<method>:<path>". Every operation carries
// the first server URL so Endpoint can be resolved.
func (p *Parser) Operations(ctx context.Context, doc pkgopenapi.Document) (map[string]pkgopenapi.Operation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	api, err := p.load(ctx, doc.Raw())
	if err != nil {
		return nil, err
	}

	var server string
	if len(api.Servers) > 0 && api.Servers[0] != nil {
		server = api.Servers[0].URL
	}

	operations := make(map[string]pkgopenapi.Operation)
	for path, item := range api.Paths.Map() {
		if item == nil {
			continue
		}
		for method, operation := range item.Operations() {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			if op, ok := convertOperation(method, path, operation); ok {
				op.Server = server
				operations[op.ID] = op
			}
		}
	}
	if len(operations) == 0 && !p.options.AllowPartialDocuments {
		return nil, fmt.Errorf("openapi parser: %s: %w", doc.Location(), ErrNoOperations)
	}
	return operations, nil
}

// load parses raw and, when references are resolved, validates it.
func (p *Parser) load(ctx context.Context, raw []byte) (*openapi3.T, error) {
	if len(raw) == 0 {
		return nil, errors.New("openapi parser: document payload is empty")
	}
	loader := openapi3.NewLoader()
	loader.Context = ctx
	loader.IsExternalRefsAllowed = p.options.ResolveReferences

	api, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("openapi parser: load document: %w", err)
	}
	if p.options.ResolveReferences {
		if err := api.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
			return nil, fmt.Errorf("openapi parser: validate: %w", err)
		}
	}
	if api.Paths == nil {
		api.Paths = openapi3.NewPaths()
	}
	return api, nil
}

func convertOperation(method, path string, operation *openapi3.Operation) (pkgopenapi.Operation, bool) {
	if operation == nil {
		return pkgopenapi.Operation{}, false
	}
	id := operation.OperationID
	if id == "" {
		id = strings.ToLower(method) + ":" + path
	}
	op, err := pkgopenapi.NewOperation(id, method, path, requestSchema(operation.RequestBody))
	if err != nil {
		return pkgopenapi.Operation{}, false
	}
	op.Summary = operation.Summary
	op.Description = operation.Description
	op.Extensions = extractExtensions(operation.Extensions)
	return op, true
}

var preferredMediaTypes = []string{
	"application/json",
	"application/x-www-form-urlencoded",
	"multipart/form-data",
}

func requestSchema(body *openapi3.RequestBodyRef) pkgopenapi.Schema {
	if body == nil {
		return pkgopenapi.Schema{}
	}
	if body.Value == nil {
		return pkgopenapi.Schema{Ref: body.Ref}
	}
	content := body.Value.Content
	for _, mediaType := range preferredMediaTypes {
		if mt, ok := content[mediaType]; ok && mt != nil {
			return convertSchema(mt.Schema)
		}
	}
	names := make([]string, 0, len(content))
	for name := range content {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if mt := content[name]; mt != nil {
			return convertSchema(mt.Schema)
		}
	}
	return pkgopenapi.Schema{}
}

func convertSchema(ref *openapi3.SchemaRef) pkgopenapi.Schema {
	return newConverter().convert(ref)
}

// converter tracks the schemas on the current path so recursive references
// terminate as bare $ref nodes.
type converter struct {
	visiting map[*openapi3.Schema]bool
	depth    int
}

const maxSchemaDepth = 32

func newConverter() *converter {
	return &converter{visiting: make(map[*openapi3.Schema]bool)}
}

func (c *converter) convert(ref *openapi3.SchemaRef) pkgopenapi.Schema {
	if ref == nil {
		return pkgopenapi.Schema{}
	}
	if ref.Value == nil {
		return pkgopenapi.Schema{Ref: ref.Ref}
	}
	src := ref.Value
	if c.visiting[src] || c.depth >= maxSchemaDepth {
		return pkgopenapi.Schema{Ref: ref.Ref, Type: firstSchemaType(src.Type), Title: src.Title}
	}
	c.visiting[src] = true
	c.depth++
	defer func() {
		delete(c.visiting, src)
		c.depth--
	}()

	schema := pkgopenapi.Schema{
		Ref:         ref.Ref,
		Type:        firstSchemaType(src.Type),
		Format:      src.Format,
		Title:       src.Title,
		Description: src.Description,
		Default:     src.Default,
		ReadOnly:    src.ReadOnly,
		Pattern:     src.Pattern,
	}
	if len(src.Required) > 0 {
		schema.Required = append([]string(nil), src.Required...)
	}
	if len(src.Enum) > 0 {
		schema.Enum = append([]any(nil), src.Enum...)
	}
	if len(src.Properties) > 0 {
		schema.Properties = make(map[string]pkgopenapi.Schema, len(src.Properties))
		for name, property := range src.Properties {
			schema.Properties[name] = c.convert(property)
		}
	}
	if src.Items != nil {
		items := c.convert(src.Items)
		schema.Items = &items
	}
	if src.Min != nil {
		v := *src.Min
		schema.Minimum = &v
	}
	if src.Max != nil {
		v := *src.Max
		schema.Maximum = &v
	}
	if src.MinLength != 0 {
		v := int(src.MinLength)
		schema.MinLength = &v
	}
	if src.MaxLength != nil {
		v := int(*src.MaxLength)
		schema.MaxLength = &v
	}
	schema.Extensions = extractExtensions(src.Extensions)

	for _, part := range src.AllOf {
		c.merge(&schema, part)
	}
	return schema
}

// merge folds an allOf member into target. Fields already set on target win;
// properties and required names are unioned.
func (c *converter) merge(target *pkgopenapi.Schema, ref *openapi3.SchemaRef) {
	part := c.convert(ref)
	if target.Type == "" {
		target.Type = part.Type
	}
	if target.Format == "" {
		target.Format = part.Format
	}
	if target.Title == "" {
		target.Title = part.Title
	}
	if target.Description == "" {
		target.Description = part.Description
	}
	if len(part.Properties) > 0 {
		if target.Properties == nil {
			target.Properties = make(map[string]pkgopenapi.Schema, len(part.Properties))
		}
		for name, property := range part.Properties {
			if _, exists := target.Properties[name]; !exists {
				target.Properties[name] = property
			}
		}
	}
	for _, name := range part.Required {
		if !slices.Contains(target.Required, name) {
			target.Required = append(target.Required, name)
		}
	}
	for key, v := range part.Extensions {
		if target.Extensions == nil {
			target.Extensions = make(map[string]any, len(part.Extensions))
		}
		if _, exists := target.Extensions[key]; !exists {
			target.Extensions[key] = v
		}
	}
}

func firstSchemaType(types *openapi3.Types) string {
	if types == nil {
		return ""
	}
	return strings.Join(types.Slice(), ",")
}

const (
	extensionNamespace       = "x-formlist"
	endpointExtensionKey     = "x-endpoint"
	currentValueExtensionKey = "x-current-value"
)

// extractExtensions keeps the vendor extensions form building understands.
func extractExtensions(raw map[string]any) map[string]any {
	if len(raw) == 0 {
		return nil
	}

	result := make(map[string]any)
	for key, v := range raw {
		switch {
		case key == extensionNamespace, key == endpointExtensionKey:
			if mapped, ok := cloneMap(v); ok && len(mapped) > 0 {
				result[key] = mapped
			}
		case strings.HasPrefix(key, extensionNamespace+"-"):
			result[key] = v
		case key == currentValueExtensionKey:
			if v != nil {
				result[key] = v
			}
		}
	}
	if len(result) == 0 {
		return nil
	}
	return result
}

func cloneMap(v any) (map[string]any, bool) {
	mapped, ok := v.(map[string]any)
	if !ok {
		return nil, false
	}
	cloned := make(map[string]any, len(mapped))
	for k, item := range mapped {
		cloned[k] = item
	}
	return cloned, true
}
