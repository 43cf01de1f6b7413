package present

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/goliatone/go-formlist/pkg/evaluate"
	"github.com/goliatone/go-formlist/pkg/form"
	"github.com/goliatone/go-formlist/pkg/render"
	"github.com/goliatone/go-formlist/pkg/value"
	"github.com/goliatone/go-formlist/pkg/widgets"
)

var (
	// ErrReplaceInProgress is returned by Replace under RejectOverlapping
	// while the surface is still applying the previous replacement.
	ErrReplaceInProgress = errors.New("present: replacement in progress")
	ErrNilDataSource     = errors.New("present: data source is required")
	ErrNilSurface        = errors.New("present: surface is required")
)

// Policy decides what happens to a replacement that arrives while the
// surface is still applying the previous one.
type Policy int

const (
	// DropOverlapping ignores the overlapping replacement.
	DropOverlapping Policy = iota
	// CoalesceOverlapping keeps the latest overlapping replacement and
	// applies it once the surface reports completion. Earlier pending
	// replacements are discarded.
	CoalesceOverlapping
	// RejectOverlapping returns ErrReplaceInProgress.
	RejectOverlapping
)

func (p Policy) String() string {
	switch p {
	case CoalesceOverlapping:
		return "coalesce"
	case RejectOverlapping:
		return "reject"
	default:
		return "drop"
	}
}

// ParsePolicy maps "drop", "coalesce" or "reject" to a Policy.
func ParsePolicy(name string) (Policy, error) {
	switch name {
	case "", "drop":
		return DropOverlapping, nil
	case "coalesce":
		return CoalesceOverlapping, nil
	case "reject":
		return RejectOverlapping, nil
	default:
		return DropOverlapping, fmt.Errorf("present: unknown overlap policy %q", name)
	}
}

// Presenter keeps one live data source attached to a surface. It forwards
// row mutations to the surface as change scripts and evaluates whole-form
// replacements against what the surface currently shows.
//
// Presenter takes over the data source listener; register caller listeners
// with WithListener. It is not safe for concurrent use.
type Presenter struct {
	ds      *form.DataSource
	shown   *form.DataSource
	surface render.Surface

	policy   Policy
	anim     render.Animation
	listener form.Listener
	logger   *zap.Logger
	widgets  *widgets.Registry

	evaluating bool
	generation uint64
	pending    []*form.Section
	hasPending bool
}

// New attaches ds to surface. Nothing is drawn until Start.
func New(ds *form.DataSource, surface render.Surface, opts ...Option) (*Presenter, error) {
	if ds == nil {
		return nil, ErrNilDataSource
	}
	if surface == nil {
		return nil, ErrNilSurface
	}
	p := &Presenter{
		ds:      ds,
		surface: surface,
		anim:    render.AnimationAutomatic,
		logger:  defaultLogger(),
		widgets: widgets.Default(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}
	ds.SetListener(p.handle)
	return p, nil
}

// DataSource returns the live data source.
func (p *Presenter) DataSource() *form.DataSource {
	return p.ds
}

// Evaluating reports whether the surface is still applying a replacement.
func (p *Presenter) Evaluating() bool {
	return p.evaluating
}

// View returns the projection of the live data source.
func (p *Presenter) View() render.View {
	return render.ProjectWith(p.ds, p.widgets)
}

// Start renders the live data source.
func (p *Presenter) Start() error {
	p.shown = snapshot(p.ds)
	if err := p.surface.Render(p.View()); err != nil {
		return fmt.Errorf("present: render %s: %w", p.surface.Name(), err)
	}
	return nil
}

// Replace installs sections as a new data source derived from the live one
// and hands the surface the change script between what it shows and the
// new state. Overlapping calls follow the configured Policy.
func (p *Presenter) Replace(sections []*form.Section) error {
	if p.evaluating {
		switch p.policy {
		case CoalesceOverlapping:
			p.pending = sections
			p.hasPending = true
			p.logger.Debug("present: replacement coalesced", zap.Int("sections", len(sections)))
			return nil
		case RejectOverlapping:
			return ErrReplaceInProgress
		default:
			p.logger.Info("present: overlapping replacement dropped", zap.Int("sections", len(sections)))
			return nil
		}
	}

	next := p.ds.NewWith(sections)
	p.ds = next
	script := evaluate.Evaluate(p.shown, next)
	p.shown = snapshot(next)

	p.evaluating = true
	p.generation++
	gen := p.generation
	if err := p.surface.Apply(script, p.View(), p.anim, func() { p.finish(gen) }); err != nil {
		if gen == p.generation {
			p.evaluating = false
		}
		return fmt.Errorf("present: apply replacement: %w", err)
	}
	return nil
}

// ApplyEdit writes v at c through the data source update path.
func (p *Presenter) ApplyEdit(v value.Value, c form.Coordinate) bool {
	return p.ds.ApplyEdit(v, c)
}

// ToggleSection flips the header of the section at index.
func (p *Presenter) ToggleSection(index int, measuredHeight float64) bool {
	return p.ds.ToggleSection(index, measuredHeight)
}

// OnRowSelected returns the item at c and records c as last touched.
func (p *Presenter) OnRowSelected(c form.Coordinate) (form.Item, bool) {
	item, ok := p.ds.ItemAt(c)
	if !ok {
		p.logger.Debug("present: selection out of range",
			zap.Int("section", c.Section),
			zap.Int("row", c.Row),
		)
		return form.Item{}, false
	}
	p.ds.Touch(c)
	return item, true
}

// OnRowSwiped reports whether the row at c may be deleted. Only interactive
// field rows are removable; actions are not.
func (p *Presenter) OnRowSwiped(c form.Coordinate) render.DeletionIntent {
	item, ok := p.ds.ItemAt(c)
	if !ok {
		return render.DeletionIntent{Coordinate: c}
	}
	allowed := item.DescriptorFrom(p.widgets).Interactive && item.Kind() != value.KindAction
	return render.DeletionIntent{Coordinate: c, Item: item, Allowed: allowed}
}

// ConfirmDeletion removes the row described by intent. The row must still
// hold the swiped item; stale intents are ignored.
func (p *Presenter) ConfirmDeletion(intent render.DeletionIntent) (form.Item, bool) {
	if !intent.Allowed {
		return form.Item{}, false
	}
	current, ok := p.ds.ItemAt(intent.Coordinate)
	if !ok || !current.Equal(intent.Item) {
		p.logger.Warn("present: stale deletion ignored",
			zap.Int("section", intent.Coordinate.Section),
			zap.Int("row", intent.Coordinate.Row),
		)
		return form.Item{}, false
	}
	return p.ds.RemoveRow(intent.Coordinate)
}

// Submit returns the flat submission projection of the live data source.
func (p *Presenter) Submit() map[string]string {
	return p.ds.ActiveParams()
}

func (p *Presenter) handle(change form.Change) {
	if p.listener != nil {
		p.listener(change)
	}
	if change.Source != p.ds {
		return
	}
	if change.Kind == form.ChangeSections {
		p.shown = snapshot(p.ds)
		if err := p.surface.Render(p.View()); err != nil {
			p.logger.Warn("present: render failed", zap.Error(err))
		}
		return
	}

	script := evaluate.Evaluate(p.shown, p.ds)
	if change.Kind == form.ChangeToggle {
		script.SectionReloads = append(script.SectionReloads, change.Coordinate.Section)
	}
	p.shown = snapshot(p.ds)
	if script.IsEmpty() {
		return
	}
	if err := p.surface.Apply(script, p.View(), p.anim, func() {}); err != nil {
		p.logger.Warn("present: apply failed",
			zap.String("change", string(change.Kind)),
			zap.Error(err),
		)
	}
}

func (p *Presenter) finish(gen uint64) {
	if gen != p.generation || !p.evaluating {
		return
	}
	p.evaluating = false
	if !p.hasPending {
		return
	}
	sections := p.pending
	p.pending = nil
	p.hasPending = false
	if err := p.Replace(sections); err != nil {
		p.logger.Warn("present: pending replacement failed", zap.Error(err))
	}
}

// snapshot detaches a copy of the sections of ds so later in-place edits do
// not leak into the copy.
func snapshot(ds *form.DataSource) *form.DataSource {
	if ds == nil {
		return nil
	}
	sections := ds.Sections()
	clones := make([]*form.Section, len(sections))
	for i, section := range sections {
		clones[i] = section.Clone()
	}
	return form.New(clones, form.WithLogger(zap.NewNop()))
}
