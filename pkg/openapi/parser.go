package openapi

import "context"

// Parser extracts operations from a document, keyed by operation ID.
type Parser interface {
	Operations(ctx context.Context, doc Document) (map[string]Operation, error)
}

// ParserOptions configures a Parser.
type ParserOptions struct {
	// ResolveReferences validates the document and allows external $refs.
	ResolveReferences bool
	// AllowPartialDocuments accepts documents without paths.
	AllowPartialDocuments bool
}

// ParserOption mutates ParserOptions.
type ParserOption func(*ParserOptions)

func WithReferenceResolution(enabled bool) ParserOption {
	return func(opts *ParserOptions) {
		opts.ResolveReferences = enabled
	}
}

func WithPartialDocuments(enabled bool) ParserOption {
	return func(opts *ParserOptions) {
		opts.AllowPartialDocuments = enabled
	}
}

// NewParserOptions applies options over the defaults: references resolved,
// partial documents rejected.
func NewParserOptions(options ...ParserOption) ParserOptions {
	cfg := ParserOptions{ResolveReferences: true}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
