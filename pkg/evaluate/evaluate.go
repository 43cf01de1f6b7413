package evaluate

import (
	"slices"

	"github.com/google/uuid"

	"github.com/goliatone/go-formlist/pkg/diff"
	"github.com/goliatone/go-formlist/pkg/form"
)

// SectionMove reports a section whose stable ID sits at a different index in
// the new snapshot. It is informational: positional inserts, deletes and
// row edits are computed regardless.
type SectionMove struct {
	ID   uuid.UUID
	From int
	To   int
}

// Script is the change script between two data source snapshots.
type Script struct {
	// SectionInserts lists new section indices beyond the old section count.
	SectionInserts []int
	// SectionDeletes lists indices whose section lost all rows or vanished.
	SectionDeletes []int
	// SectionReloads lists indices whose slot existed in the old snapshot but
	// was empty and now has rows.
	SectionReloads []int
	// RowEdits holds a row script for every index where both snapshots have
	// rows. An empty script means the rows are unchanged.
	RowEdits map[int][]diff.Edit[form.Item]
	// SectionMoves lists sections carried across indices by stable ID.
	SectionMoves []SectionMove
}

// IsEmpty reports whether applying the script changes nothing.
func (s Script) IsEmpty() bool {
	if len(s.SectionInserts) > 0 || len(s.SectionDeletes) > 0 || len(s.SectionReloads) > 0 {
		return false
	}
	for _, edits := range s.RowEdits {
		if len(edits) > 0 {
			return false
		}
	}
	return true
}

// RowEditIndices returns the section indices carrying row edits, ascending.
func (s Script) RowEditIndices() []int {
	out := make([]int, 0, len(s.RowEdits))
	for idx := range s.RowEdits {
		out = append(out, idx)
	}
	slices.Sort(out)
	return out
}

// Evaluate compares two snapshots positionally. Either snapshot may be nil,
// which is treated as a data source without sections.
func Evaluate(old, next *form.DataSource) Script {
	oldSections := sectionsOf(old)
	newSections := sectionsOf(next)

	script := Script{RowEdits: map[int][]diff.Edit[form.Item]{}}
	var adds []int

	for i := 0; i < max(len(oldSections), len(newSections)); i++ {
		oldSection := at(oldSections, i)
		newSection := at(newSections, i)
		oldEmpty := oldSection.Len() == 0
		newEmpty := newSection.Len() == 0

		switch {
		case !oldEmpty && !newEmpty:
			script.RowEdits[i] = Rows(oldSection.Rows(), newSection.Rows())
		case oldEmpty && !newEmpty:
			adds = append(adds, i)
		case !oldEmpty && newEmpty:
			script.SectionDeletes = append(script.SectionDeletes, i)
		}
	}

	for _, i := range adds {
		if i < len(oldSections) {
			script.SectionReloads = append(script.SectionReloads, i)
			continue
		}
		script.SectionInserts = append(script.SectionInserts, i)
	}

	script.SectionMoves = sectionMoves(oldSections, newSections)
	return script
}

// Rows diffs two row sequences by structural equality.
func Rows(old, next []form.Item) []diff.Edit[form.Item] {
	return diff.ComputeHashed(old, next, form.Item.Equal, form.Item.Hash)
}

func sectionsOf(ds *form.DataSource) []*form.Section {
	if ds == nil {
		return nil
	}
	return ds.Sections()
}

func at(sections []*form.Section, i int) *form.Section {
	if i < 0 || i >= len(sections) {
		return nil
	}
	return sections[i]
}

func sectionMoves(old, next []*form.Section) []SectionMove {
	positions := make(map[uuid.UUID]int, len(old))
	for idx, section := range old {
		if section.ID == uuid.Nil {
			continue
		}
		if _, seen := positions[section.ID]; !seen {
			positions[section.ID] = idx
		}
	}
	var moves []SectionMove
	for idx, section := range next {
		from, ok := positions[section.ID]
		if !ok || section.ID == uuid.Nil || from == idx {
			continue
		}
		moves = append(moves, SectionMove{ID: section.ID, From: from, To: idx})
	}
	return moves
}
