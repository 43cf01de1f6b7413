package openapi

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// Source identifies where an OpenAPI document came from.
type Source interface {
	Kind() SourceKind
	Location() string
}

// SourceKind says which loader reads a Source.
type SourceKind string

const (
	SourceKindFile SourceKind = "file"
	SourceKindFS   SourceKind = "fs"
	SourceKindURL  SourceKind = "url"
)

var (
	ErrOperationNotFound = errors.New("openapi: operation not found")
	ErrNoRequestBody     = errors.New("openapi: operation has no request body")
)

// Document is a raw OpenAPI payload together with where it was read from.
type Document struct {
	source Source
	raw    []byte
}

// NewDocument keeps a private copy of raw.
func NewDocument(src Source, raw []byte) (Document, error) {
	switch {
	case src == nil:
		return Document{}, errors.New("openapi: document needs a source")
	case len(raw) == 0:
		return Document{}, fmt.Errorf("openapi: %s %q is empty", src.Kind(), src.Location())
	}
	return Document{source: src, raw: slices.Clone(raw)}, nil
}

// MustNewDocument is NewDocument for fixtures; it panics on error.
func MustNewDocument(src Source, raw []byte) Document {
	d, err := NewDocument(src, raw)
	if err != nil {
		panic(err)
	}
	return d
}

func (d Document) Source() Source { return d.source }

// Raw returns a copy of the payload.
func (d Document) Raw() []byte { return slices.Clone(d.raw) }

// Location is the source location, or "" for a zero Document.
func (d Document) Location() string {
	if d.source != nil {
		return d.source.Location()
	}
	return ""
}

// Operation is the subset of an OpenAPI operation a form is built from.
// Server is the first server URL of the document, if any.
type Operation struct {
	ID          string
	Method      string
	Path        string
	Server      string
	Summary     string
	Description string
	RequestBody Schema
	Extensions  map[string]any
}

// NewOperation checks that id, method and path are all set. The method is
// upper-cased.
func NewOperation(id, method, path string, request Schema) (Operation, error) {
	var missing []string
	for _, f := range [...]struct{ name, val string }{{"id", id}, {"method", method}, {"path", path}} {
		if strings.TrimSpace(f.val) == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return Operation{}, fmt.Errorf("openapi: operation is missing %s", strings.Join(missing, ", "))
	}
	return Operation{ID: id, Method: strings.ToUpper(method), Path: path, RequestBody: request}, nil
}

// Endpoint joins Server and Path.
func (op Operation) Endpoint() string {
	if op.Server == "" {
		return op.Path
	}
	return strings.TrimRight(op.Server, "/") + "/" + strings.TrimLeft(op.Path, "/")
}

// Schema is a simplified JSON schema node.
type Schema struct {
	Ref         string
	Type        string
	Format      string
	Title       string
	Description string
	Required    []string
	Properties  map[string]Schema
	Items       *Schema
	Enum        []any
	Default     any
	ReadOnly    bool
	Minimum     *float64
	Maximum     *float64
	MinLength   *int
	MaxLength   *int
	Pattern     string
	Extensions  map[string]any
}

// IsZero reports whether the schema carries nothing to build from.
func (s Schema) IsZero() bool {
	return s.Ref == "" && s.Type == "" && s.Items == nil && len(s.Properties) == 0
}

// DebugString is a one-line shape summary used in debug logs, for example
// "object{3 props, 1 required}" or "array[string]".
func (s Schema) DebugString() string {
	var b strings.Builder
	switch {
	case s.Ref != "":
		b.WriteString("$ref:" + s.Ref)
	case s.Type == "":
		b.WriteString("any")
	default:
		b.WriteString(s.Type)
	}
	if s.Format != "" {
		b.WriteString("<" + s.Format + ">")
	}
	if s.Items != nil {
		b.WriteString("[" + s.Items.DebugString() + "]")
	}
	if len(s.Properties) > 0 {
		fmt.Fprintf(&b, "{%d props, %d required}", len(s.Properties), len(s.Required))
	}
	if len(s.Enum) > 0 {
		fmt.Fprintf(&b, " enum(%d)", len(s.Enum))
	}
	return b.String()
}
