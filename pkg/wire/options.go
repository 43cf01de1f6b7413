package wire

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/goliatone/go-formlist/internal/logging"
	"github.com/goliatone/go-formlist/pkg/form"
)

type config struct {
	logger      *zap.Logger
	sanitize    bool
	formOptions []form.Option
	client      *http.Client
	timeout     time.Duration
	headers     http.Header
}

func newConfig(opts []Option) config {
	cfg := config{
		logger:   logging.Named("wire"),
		sanitize: true,
		headers:  http.Header{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// Option configures decoding and submission.
type Option func(*config)

// WithLogger overrides the package logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithSanitize toggles stripping markup from titles, footers and display
// text. Enabled by default.
func WithSanitize(enabled bool) Option {
	return func(c *config) {
		c.sanitize = enabled
	}
}

// WithFormOptions forwards options to form.New when decoding.
func WithFormOptions(opts ...form.Option) Option {
	return func(c *config) {
		c.formOptions = append(c.formOptions, opts...)
	}
}

// WithHTTPClient injects the client used by Submitter.
func WithHTTPClient(client *http.Client) Option {
	return func(c *config) {
		c.client = client
	}
}

// WithTimeout caps each submission when the client has no timeout of its
// own.
func WithTimeout(timeout time.Duration) Option {
	return func(c *config) {
		c.timeout = timeout
	}
}

// WithHeader adds a header to every submission.
func WithHeader(key, val string) Option {
	return func(c *config) {
		c.headers.Add(key, val)
	}
}
