package options

import (
	"context"
	"strings"

	"github.com/goliatone/go-formlist/pkg/value"
)

// Provider returns the options matching query. An empty query asks for the
// provider's default listing.
type Provider interface {
	Options(ctx context.Context, query string) ([]value.Option, error)
}

// ProviderFunc adapts a function to Provider.
type ProviderFunc func(ctx context.Context, query string) ([]value.Option, error)

func (f ProviderFunc) Options(ctx context.Context, query string) ([]value.Option, error) {
	return f(ctx, query)
}

// Static filters a fixed list by case-insensitive substring on title or
// value.
type Static []value.Option

func (s Static) Options(_ context.Context, query string) ([]value.Option, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return append([]value.Option(nil), s...), nil
	}
	var out []value.Option
	for _, opt := range s {
		if strings.Contains(strings.ToLower(opt.Title), q) || strings.Contains(strings.ToLower(opt.Value), q) {
			out = append(out, opt)
		}
	}
	return out, nil
}

// Fill returns picker with its options replaced by what p returns for
// query. The current choice is kept when its value is still offered.
func Fill(ctx context.Context, picker value.Picker, p Provider, query string) (value.Picker, error) {
	current, hasCurrent := picker.Choice()
	opts, err := p.Options(ctx, query)
	if err != nil {
		return picker, err
	}
	picker.Options = opts
	picker.Selected = -1
	if hasCurrent {
		picker = picker.Select(current.Value)
	}
	return picker, nil
}
