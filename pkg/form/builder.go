package form

import (
	"github.com/goliatone/go-formlist/pkg/value"
)

// SectionBuilder composes a section fluently:
//
//	section := form.NewSectionBuilder("Profile").
//		Footer("Visible to your team").
//		Collapsible(true).
//		Add(value.Text{Name: "name", Label: "Name"}).
//		Build()
type SectionBuilder struct {
	section *Section
}

// NewSectionBuilder starts a section with title.
func NewSectionBuilder(title string) *SectionBuilder {
	return &SectionBuilder{section: NewSection(title)}
}

// Footer sets the footer text.
func (b *SectionBuilder) Footer(footer string) *SectionBuilder {
	b.section.Footer = footer
	return b
}

// Collapsible marks the header as interactable so it can toggle expansion.
func (b *SectionBuilder) Collapsible(interactable bool) *SectionBuilder {
	b.section.Header.Interactable = interactable
	return b
}

// Collapsed starts the section collapsed.
func (b *SectionBuilder) Collapsed(collapsed bool) *SectionBuilder {
	b.section.Header.Collapsed = collapsed
	return b
}

// Icon sets the header icon.
func (b *SectionBuilder) Icon(icon string) *SectionBuilder {
	b.section.Header.Icon = icon
	return b
}

// Style sets the header style name.
func (b *SectionBuilder) Style(style string) *SectionBuilder {
	b.section.Header.Style = style
	return b
}

// Add appends values as rows. Nil values are skipped.
func (b *SectionBuilder) Add(values ...value.Value) *SectionBuilder {
	for _, v := range values {
		if v == nil {
			continue
		}
		b.section.rows = append(b.section.rows, NewItem(v))
	}
	return b
}

// AddItems appends already wrapped items.
func (b *SectionBuilder) AddItems(items ...Item) *SectionBuilder {
	for _, item := range items {
		if item.IsZero() {
			continue
		}
		b.section.rows = append(b.section.rows, item)
	}
	return b
}

// Build returns the section. The builder must not be reused afterwards.
func (b *SectionBuilder) Build() *Section {
	section := b.section
	b.section = NewSection(section.Title)
	return section
}
