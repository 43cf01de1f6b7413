package options

import (
	"bufio"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
	"sync"

	"github.com/goliatone/go-formlist/pkg/value"
)

//go:embed data/iana_timezones.txt
var zoneList string

var embeddedZones = sync.OnceValues(func() ([]string, error) {
	return LoadZones(strings.NewReader(zoneList))
})

// DefaultZones returns a copy of the embedded IANA zone names, sorted.
func DefaultZones() ([]string, error) {
	zones, err := embeddedZones()
	if err != nil {
		return nil, err
	}
	return slices.Clone(zones), nil
}

// LoadZones reads one zone per line. Blank lines and "#" comments are
// skipped; the result is sorted and free of duplicates.
func LoadZones(r io.Reader) ([]string, error) {
	if r == nil {
		return nil, errors.New("options: nil zone reader")
	}
	var zones []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" && line[0] != '#' {
			zones = append(zones, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("options: read zones: %w", err)
	}
	slices.Sort(zones)
	return slices.Compact(zones), nil
}

// EmptySearchMode decides what an empty query returns.
type EmptySearchMode string

const (
	EmptySearchNone EmptySearchMode = "none"
	EmptySearchTop  EmptySearchMode = "top"
)

// Timezones searches IANA zone names.
type Timezones struct {
	Zones        []string
	DefaultLimit int
	MaxLimit     int
	EmptySearch  EmptySearchMode
}

// TimezoneOption customises NewTimezones.
type TimezoneOption func(*Timezones)

// WithZones replaces the embedded zone list.
func WithZones(zones []string) TimezoneOption {
	return func(t *Timezones) {
		t.Zones = append([]string{}, zones...)
	}
}

// WithLimits sets the default and maximum result counts.
func WithLimits(defaultLimit, maxLimit int) TimezoneOption {
	return func(t *Timezones) {
		t.DefaultLimit = defaultLimit
		t.MaxLimit = maxLimit
	}
}

// WithEmptySearch sets the empty query behaviour.
func WithEmptySearch(mode EmptySearchMode) TimezoneOption {
	return func(t *Timezones) {
		t.EmptySearch = mode
	}
}

// NewTimezones builds a timezone provider over the embedded list. Defaults:
// 50 results, at most 200, and the first zones on an empty query.
func NewTimezones(opts ...TimezoneOption) (*Timezones, error) {
	t := &Timezones{
		DefaultLimit: 50,
		MaxLimit:     200,
		EmptySearch:  EmptySearchTop,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(t)
		}
	}
	if t.Zones == nil {
		zones, err := DefaultZones()
		if err != nil {
			return nil, err
		}
		t.Zones = zones
	}
	if t.DefaultLimit <= 0 {
		t.DefaultLimit = 50
	}
	if t.MaxLimit <= 0 {
		t.MaxLimit = 200
	}
	if t.EmptySearch == "" {
		t.EmptySearch = EmptySearchNone
	}
	return t, nil
}

// Options implements Provider with the default limit.
func (t *Timezones) Options(_ context.Context, query string) ([]value.Option, error) {
	return value.Options(t.Search(query, 0)...), nil
}

// Search returns zones containing query, case-insensitively. Zones that
// start with the query come first, then zones where a path segment starts
// with it ("Europe/Lon"), then the rest; ties sort by name. A zero limit
// uses DefaultLimit and a negative one returns nothing.
func (t *Timezones) Search(query string, limit int) []string {
	limit = t.clamp(limit)
	if limit == 0 {
		return nil
	}

	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		if t.EmptySearch != EmptySearchTop {
			return nil
		}
		return slices.Clone(t.Zones[:min(limit, len(t.Zones))])
	}

	type hit struct {
		zone string
		rank int
	}
	var hits []hit
	for _, zone := range t.Zones {
		if rank, ok := matchRank(strings.ToLower(zone), q); ok {
			hits = append(hits, hit{zone, rank})
		}
	}
	slices.SortFunc(hits, func(a, b hit) int {
		if a.rank != b.rank {
			return a.rank - b.rank
		}
		return strings.Compare(a.zone, b.zone)
	})

	out := make([]string, 0, min(limit, len(hits)))
	for _, h := range hits[:min(limit, len(hits))] {
		out = append(out, h.zone)
	}
	return out
}

func matchRank(zone, q string) (int, bool) {
	at := strings.Index(zone, q)
	switch {
	case at < 0:
		return 0, false
	case at == 0:
		return 0, true
	case strings.Contains(zone, "/"+q):
		return 1, true
	default:
		return 2, true
	}
}

func (t *Timezones) clamp(limit int) int {
	switch {
	case limit < 0:
		return 0
	case limit == 0:
		limit = t.DefaultLimit
	}
	if t.MaxLimit > 0 {
		return min(limit, t.MaxLimit)
	}
	return limit
}
