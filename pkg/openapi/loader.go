package openapi

import (
	"context"
	"io/fs"
	"net/http"
	"time"
)

// Loader fetches OpenAPI documents from files, an fs.FS or HTTP.
type Loader interface {
	Load(ctx context.Context, src Source) (Document, error)
}

// LoaderOptions configures how a Loader resolves sources. HTTP sources are
// refused unless a client is supplied or AllowHTTPFallback is set.
type LoaderOptions struct {
	FileSystem        fs.FS
	HTTPClient        *http.Client
	AllowHTTPFallback bool
	RequestTimeout    time.Duration
	// MaxDocumentBytes caps how much of a document is read. Zero means
	// DefaultMaxDocumentBytes.
	MaxDocumentBytes int64
}

// DefaultMaxDocumentBytes bounds documents read by a Loader.
const DefaultMaxDocumentBytes = 16 << 20

// LoaderOption mutates LoaderOptions.
type LoaderOption func(*LoaderOptions)

// WithFileSystem serves SourceKindFS sources from files.
func WithFileSystem(files fs.FS) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.FileSystem = files
	}
}

// WithHTTPClient injects the client used for URL sources.
func WithHTTPClient(client *http.Client) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.HTTPClient = client
	}
}

// WithHTTPFallback enables URL sources with a default client and timeout.
func WithHTTPFallback(timeout time.Duration) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.AllowHTTPFallback = true
		opts.RequestTimeout = timeout
	}
}

// WithMaxDocumentSize caps the size of loaded documents.
func WithMaxDocumentSize(n int64) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.MaxDocumentBytes = n
	}
}

// NewLoaderOptions applies options in order.
func NewLoaderOptions(options ...LoaderOption) LoaderOptions {
	cfg := LoaderOptions{}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.MaxDocumentBytes <= 0 {
		cfg.MaxDocumentBytes = DefaultMaxDocumentBytes
	}
	return cfg
}
