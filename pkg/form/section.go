package form

import (
	"slices"

	"github.com/google/uuid"
)

// Header holds the section header state. The zero value is an expanded,
// non-interactable header.
type Header struct {
	Collapsed    bool
	Interactable bool
	Icon         string
	Style        string
	Height       float64
}

// SectionOp names the mutation a SectionChange describes.
type SectionOp string

const (
	SectionOpReplace SectionOp = "replace"
	SectionOpInsert  SectionOp = "insert"
	SectionOpRemove  SectionOp = "remove"
	SectionOpSetRows SectionOp = "set-rows"
	SectionOpToggle  SectionOp = "toggle"
)

// SectionChange is the message a section mutation returns. The owner of the
// section forwards it upward; Changed is false for no-ops and for
// out-of-range coordinates.
type SectionChange struct {
	Section    *Section
	Op         SectionOp
	Row        int
	Changed    bool
	OutOfRange bool
}

// Section is an ordered, mutable sequence of items with header and footer
// state. Row identity is positional.
type Section struct {
	// ID is a stable identifier carried across replacements. It does not
	// participate in diffing rows.
	ID     uuid.UUID
	Title  string
	Footer string
	Header Header

	rows     []Item
	observer func(SectionChange)
}

// NewSection creates a section with a fresh ID.
func NewSection(title string, items ...Item) *Section {
	return &Section{
		ID:    uuid.New(),
		Title: title,
		rows:  slices.Clone(items),
	}
}

// Observe installs the upward notification hook. The data source installs
// itself when the section is attached; a section has at most one observer.
func (s *Section) Observe(fn func(SectionChange)) {
	s.observer = fn
}

// Len returns the number of rows, regardless of collapse state.
func (s *Section) Len() int {
	if s == nil {
		return 0
	}
	return len(s.rows)
}

// Rows returns a copy of the rows.
func (s *Section) Rows() []Item {
	if s == nil {
		return nil
	}
	return slices.Clone(s.rows)
}

// ItemAt returns the item at row; out-of-range rows report false.
func (s *Section) ItemAt(row int) (Item, bool) {
	if s == nil || row < 0 || row >= len(s.rows) {
		return Item{}, false
	}
	return s.rows[row], true
}

// VisibleRowCount is the row count a rendering surface should display:
// zero for collapsed sections.
func (s *Section) VisibleRowCount() int {
	if s == nil || s.Header.Collapsed {
		return 0
	}
	return len(s.rows)
}

// Expanded reports the header state.
func (s *Section) Expanded() bool {
	return s != nil && !s.Header.Collapsed
}

// IsValid is the logical AND of every row's validity.
func (s *Section) IsValid() bool {
	if s == nil {
		return true
	}
	for _, item := range s.rows {
		if !item.Valid() {
			return false
		}
	}
	return true
}

// ReplaceRow swaps the item at row.
func (s *Section) ReplaceRow(row int, item Item) SectionChange {
	change := SectionChange{Section: s, Op: SectionOpReplace, Row: row}
	if row < 0 || row >= len(s.rows) {
		change.OutOfRange = true
		return change
	}
	if s.rows[row].Equal(item) {
		return change
	}
	s.rows[row] = item
	change.Changed = true
	return s.emit(change)
}

// InsertRow inserts item so that it ends up at index at. at may equal Len.
func (s *Section) InsertRow(at int, item Item) SectionChange {
	change := SectionChange{Section: s, Op: SectionOpInsert, Row: at}
	if at < 0 || at > len(s.rows) {
		change.OutOfRange = true
		return change
	}
	s.rows = slices.Insert(s.rows, at, item)
	change.Changed = true
	return s.emit(change)
}

// AppendRow adds item after the last row.
func (s *Section) AppendRow(item Item) SectionChange {
	return s.InsertRow(len(s.rows), item)
}

// RemoveRow deletes the row at index at.
func (s *Section) RemoveRow(at int) SectionChange {
	change := SectionChange{Section: s, Op: SectionOpRemove, Row: at}
	if at < 0 || at >= len(s.rows) {
		change.OutOfRange = true
		return change
	}
	s.rows = slices.Delete(s.rows, at, at+1)
	change.Changed = true
	return s.emit(change)
}

// SetRows replaces every row. Structurally equal rows are a no-op.
func (s *Section) SetRows(items []Item) SectionChange {
	change := SectionChange{Section: s, Op: SectionOpSetRows, Row: -1}
	if equalRows(s.rows, items) {
		return change
	}
	s.rows = slices.Clone(items)
	change.Changed = true
	return s.emit(change)
}

// ToggleExpansion flips between expanded and collapsed and records the
// measured header height. Non-interactable headers ignore the call. Row data
// is untouched; only the visible row count changes.
func (s *Section) ToggleExpansion(measuredHeight float64) SectionChange {
	change := SectionChange{Section: s, Op: SectionOpToggle, Row: -1}
	if !s.Header.Interactable {
		return change
	}
	s.Header.Collapsed = !s.Header.Collapsed
	s.Header.Height = measuredHeight
	change.Changed = true
	return s.emit(change)
}

// Clone copies the section including its rows. The observer is not copied.
func (s *Section) Clone() *Section {
	if s == nil {
		return nil
	}
	return &Section{
		ID:     s.ID,
		Title:  s.Title,
		Footer: s.Footer,
		Header: s.Header,
		rows:   slices.Clone(s.rows),
	}
}

// replaceSilently swaps a row without notifying; used while the owner is
// already assembling a notification.
func (s *Section) replaceSilently(row int, item Item) {
	if row >= 0 && row < len(s.rows) {
		s.rows[row] = item
	}
}

func (s *Section) emit(change SectionChange) SectionChange {
	if s.observer != nil {
		s.observer(change)
	}
	return change
}
