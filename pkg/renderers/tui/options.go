package tui

import (
	"io"

	"go.uber.org/zap"

	"github.com/goliatone/go-formlist/internal/logging"
	"github.com/goliatone/go-formlist/pkg/present"
)

// OutputFormat controls how submitted params are serialized.
type OutputFormat string

const (
	// OutputFormatJSON emits application/json payloads.
	OutputFormatJSON OutputFormat = "json"
	// OutputFormatFormURLEncoded emits application/x-www-form-urlencoded payloads.
	OutputFormatFormURLEncoded OutputFormat = "form"
	// OutputFormatPrettyText emits a human-friendly text summary.
	OutputFormatPrettyText OutputFormat = "pretty"
)

// Theme captures the prefixes used when printing rows and messages.
type Theme struct {
	SectionPrefix string
	RowPrefix     string
	ErrorPrefix   string
}

// DefaultTheme is used when WithTheme is not given.
var DefaultTheme = Theme{
	SectionPrefix: "== ",
	RowPrefix:     "  ",
	ErrorPrefix:   "  ! ",
}

type config struct {
	driver    PromptDriver
	out       io.Writer
	theme     Theme
	logger    *zap.Logger
	maxPasses int
	confirm   bool
	presenter []present.Option
}

// Option configures a Surface and the Session built on it.
type Option func(*config)

// WithPromptDriver overrides the prompt driver.
func WithPromptDriver(driver PromptDriver) Option {
	return func(c *config) {
		if driver != nil {
			c.driver = driver
		}
	}
}

// WithOutput sets where the surface prints the form.
func WithOutput(out io.Writer) Option {
	return func(c *config) {
		if out != nil {
			c.out = out
		}
	}
}

// WithTheme applies message prefixes.
func WithTheme(theme Theme) Option {
	return func(c *config) {
		c.theme = theme
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithMaxPasses bounds how many times invalid rows are prompted again.
func WithMaxPasses(passes int) Option {
	return func(c *config) {
		if passes > 0 {
			c.maxPasses = passes
		}
	}
}

// WithSubmitConfirmation asks before submitting. Enabled by default.
func WithSubmitConfirmation(enabled bool) Option {
	return func(c *config) {
		c.confirm = enabled
	}
}

// WithPresenterOptions forwards options to the presenter a Session builds,
// e.g. present.WithPolicy.
func WithPresenterOptions(opts ...present.Option) Option {
	return func(c *config) {
		c.presenter = append(c.presenter, opts...)
	}
}

func newConfig(opts []Option) config {
	cfg := config{
		out:       io.Discard,
		theme:     DefaultTheme,
		logger:    logging.Named("tui"),
		maxPasses: 3,
		confirm:   true,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.driver == nil {
		cfg.driver = NewSurveyDriver(cfg.out)
	}
	return cfg
}
