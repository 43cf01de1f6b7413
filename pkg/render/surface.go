package render

import (
	"github.com/goliatone/go-formlist/pkg/evaluate"
	"github.com/goliatone/go-formlist/pkg/form"
	"github.com/goliatone/go-formlist/pkg/widgets"
)

// Animation hints how a surface should animate a change script.
type Animation string

const (
	AnimationAutomatic Animation = "automatic"
	AnimationNone      Animation = "none"
	AnimationFade      Animation = "fade"
	AnimationTop       Animation = "top"
	AnimationBottom    Animation = "bottom"
)

// Surface displays a form. Implementations own widgets, layout and input;
// the form packages only hand them projections and change scripts.
type Surface interface {
	// Name identifies the surface in a Registry.
	Name() string
	// Render replaces whatever is displayed with view.
	Render(view View) error
	// Apply animates script against the currently displayed view. done must
	// be called once the surface has finished applying the script, possibly
	// after Apply returns.
	Apply(script evaluate.Script, view View, anim Animation, done func()) error
}

// Row is one visible row.
type Row struct {
	Coordinate form.Coordinate
	Item       form.Item
	Descriptor form.Descriptor
	Errors     []string
}

// SectionView is the visible projection of one section. Collapsed sections
// keep their header and footer but carry no rows.
type SectionView struct {
	Index  int
	Title  string
	Footer string
	Header form.Header
	Rows   []Row
	// Total is the row count regardless of collapse state.
	Total int
}

// View is the visible projection of a data source.
type View struct {
	Title    string
	Valid    bool
	Sections []SectionView
}

// Rows flattens the visible rows in section order.
func (v View) Rows() []Row {
	var out []Row
	for _, section := range v.Sections {
		out = append(out, section.Rows...)
	}
	return out
}

// Project builds the visible projection of ds using the default widget
// registry.
func Project(ds *form.DataSource) View {
	return ProjectWith(ds, widgets.Default())
}

// ProjectWith builds the visible projection of ds resolving widgets through
// reg.
func ProjectWith(ds *form.DataSource, reg *widgets.Registry) View {
	if ds == nil {
		return View{Valid: true}
	}
	view := View{
		Title: ds.Title(),
		Valid: ds.IsValid(),
	}
	for idx, section := range ds.Sections() {
		sv := SectionView{
			Index:  idx,
			Title:  section.Title,
			Footer: section.Footer,
			Header: section.Header,
			Total:  section.Len(),
		}
		if section.VisibleRowCount() > 0 {
			for row, item := range section.Rows() {
				sv.Rows = append(sv.Rows, Row{
					Coordinate: form.At(idx, row),
					Item:       item,
					Descriptor: item.DescriptorFrom(reg),
					Errors:     item.Errors(),
				})
			}
		}
		view.Sections = append(view.Sections, sv)
	}
	return view
}

// DeletionIntent describes a swipe on a row. Allowed is false for rows that
// do not exist or cannot be removed.
type DeletionIntent struct {
	Coordinate form.Coordinate
	Item       form.Item
	Allowed    bool
}
