package builder

import (
	"go.uber.org/zap"

	"github.com/goliatone/go-formlist/internal/logging"
	"github.com/goliatone/go-formlist/pkg/options"
)

// Option customises a Builder.
type Option func(*Builder)

func WithLogger(logger *zap.Logger) Option {
	return func(b *Builder) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// WithTimezones replaces the provider used for `format: timezone` fields.
func WithTimezones(provider options.Provider) Option {
	return func(b *Builder) {
		b.timezones = provider
	}
}

// WithLabeler replaces Label for properties without a title.
func WithLabeler(labeler func(string) string) Option {
	return func(b *Builder) {
		if labeler != nil {
			b.labeler = labeler
		}
	}
}

// WithSanitize toggles HTML stripping of titles and descriptions.
func WithSanitize(enabled bool) Option {
	return func(b *Builder) {
		b.sanitize = enabled
	}
}

// WithSubmitLabel sets the label of the trailing submit action.
func WithSubmitLabel(label string) Option {
	return func(b *Builder) {
		b.submitLabel = label
	}
}

func defaultLogger() *zap.Logger {
	return logging.Named("builder")
}
