package present

import (
	"go.uber.org/zap"

	"github.com/goliatone/go-formlist/internal/logging"
	"github.com/goliatone/go-formlist/pkg/form"
	"github.com/goliatone/go-formlist/pkg/render"
	"github.com/goliatone/go-formlist/pkg/widgets"
)

// Option customises a Presenter.
type Option func(*Presenter)

// WithPolicy selects how overlapping replacements are handled.
func WithPolicy(policy Policy) Option {
	return func(p *Presenter) {
		p.policy = policy
	}
}

// WithAnimation sets the animation hint passed to the surface.
func WithAnimation(anim render.Animation) Option {
	return func(p *Presenter) {
		if anim != "" {
			p.anim = anim
		}
	}
}

// WithListener registers a caller listener. It receives every change of the
// live data source, including the ChangeSections notification of Replace.
func WithListener(listener form.Listener) Option {
	return func(p *Presenter) {
		p.listener = listener
	}
}

// WithLogger overrides the presenter logger.
func WithLogger(logger *zap.Logger) Option {
	return func(p *Presenter) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithWidgets resolves row descriptors through reg instead of the default
// widget registry.
func WithWidgets(reg *widgets.Registry) Option {
	return func(p *Presenter) {
		if reg != nil {
			p.widgets = reg
		}
	}
}

func defaultLogger() *zap.Logger {
	return logging.Named("present")
}
