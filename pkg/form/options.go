package form

import (
	"maps"

	"go.uber.org/zap"

	"github.com/goliatone/go-formlist/internal/logging"
)

// Option configures a DataSource.
type Option func(*DataSource)

// WithTitle sets the form title.
func WithTitle(title string) Option {
	return func(ds *DataSource) {
		ds.title = title
	}
}

// WithListener installs the change listener. A data source notifies at most
// one listener.
func WithListener(listener Listener) Option {
	return func(ds *DataSource) {
		ds.listener = listener
	}
}

// WithLogger overrides the logger used for coordinate misses and other
// recoverable faults.
func WithLogger(logger *zap.Logger) Option {
	return func(ds *DataSource) {
		if logger != nil {
			ds.logger = logger
		}
	}
}

// WithParams seeds the auxiliary submission parameters.
func WithParams(params map[string]string) Option {
	return func(ds *DataSource) {
		ds.params = maps.Clone(params)
	}
}

// WithStorage seeds the per-form storage map.
func WithStorage(storage map[string]any) Option {
	return func(ds *DataSource) {
		ds.storage = maps.Clone(storage)
	}
}

func defaultLogger() *zap.Logger {
	return logging.Named("form")
}
