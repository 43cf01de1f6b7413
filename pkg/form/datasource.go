package form

import (
	"slices"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-formlist/pkg/value"
)

// Coordinate addresses a row by section and row index.
type Coordinate struct {
	Section int
	Row     int
}

// At is shorthand for Coordinate{Section: section, Row: row}.
func At(section, row int) Coordinate {
	return Coordinate{Section: section, Row: row}
}

// ChangeKind names what a Change notification describes.
type ChangeKind string

const (
	ChangeEdit     ChangeKind = "edit"
	ChangeInsert   ChangeKind = "insert"
	ChangeRemove   ChangeKind = "remove"
	ChangeRows     ChangeKind = "rows"
	ChangeToggle   ChangeKind = "toggle"
	ChangeSections ChangeKind = "sections"
)

// Change is delivered to the listener once per mutation. Source is the data
// source whose state changed; for NewWith it is the new instance.
type Change struct {
	Kind       ChangeKind
	Coordinate Coordinate
	Source     *DataSource
	Valid      bool
}

// Listener receives change notifications.
type Listener func(Change)

// DataSource is the root of a form: an ordered list of sections plus the
// cross-cutting state (storage, auxiliary params, scroll position and the
// last touched coordinate) that survives section replacement.
//
// A DataSource is not safe for concurrent use; mutate it from one goroutine.
type DataSource struct {
	title    string
	sections []*Section

	storage map[string]any
	params  map[string]string

	offset     float64
	touched    Coordinate
	hasTouched bool

	listener Listener
	logger   *zap.Logger
}

// New builds a data source over sections. Construction does not notify.
func New(sections []*Section, opts ...Option) *DataSource {
	ds := &DataSource{
		storage: map[string]any{},
		params:  map[string]string{},
		logger:  defaultLogger(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(ds)
		}
	}
	if ds.storage == nil {
		ds.storage = map[string]any{}
	}
	if ds.params == nil {
		ds.params = map[string]string{}
	}
	ds.attach(sections)
	ds.syncValidity()
	return ds
}

// Title returns the form title.
func (ds *DataSource) Title() string {
	return ds.title
}

// SetTitle updates the form title without notifying.
func (ds *DataSource) SetTitle(title string) {
	ds.title = title
}

// SetListener replaces the listener.
func (ds *DataSource) SetListener(listener Listener) {
	ds.listener = listener
}

// Logger returns the logger used by the data source.
func (ds *DataSource) Logger() *zap.Logger {
	return ds.logger
}

// Sections returns the sections in order. The slice is a copy; the sections
// are shared.
func (ds *DataSource) Sections() []*Section {
	return slices.Clone(ds.sections)
}

// SectionCount returns the number of sections.
func (ds *DataSource) SectionCount() int {
	return len(ds.sections)
}

// Section returns the section at index.
func (ds *DataSource) Section(index int) (*Section, bool) {
	if index < 0 || index >= len(ds.sections) {
		return nil, false
	}
	return ds.sections[index], true
}

// ItemAt returns the item at c; a miss reports false.
func (ds *DataSource) ItemAt(c Coordinate) (Item, bool) {
	section, ok := ds.Section(c.Section)
	if !ok {
		return Item{}, false
	}
	return section.ItemAt(c.Row)
}

// PathFor returns the coordinate of the first row structurally equal to
// item, scanning sections then rows in order.
func (ds *DataSource) PathFor(item Item) (Coordinate, bool) {
	for sectionIdx, section := range ds.sections {
		for rowIdx, candidate := range section.rows {
			if candidate.Equal(item) {
				return At(sectionIdx, rowIdx), true
			}
		}
	}
	return Coordinate{}, false
}

// PathForKey returns the coordinate of the first row whose encoded key
// equals key. Surrounding spaces in key are ignored.
func (ds *DataSource) PathForKey(key string) (Coordinate, bool) {
	key = strings.TrimSpace(key)
	if key == "" {
		return Coordinate{}, false
	}
	for sectionIdx, section := range ds.sections {
		for rowIdx, candidate := range section.rows {
			if candidate.Key() == key {
				return At(sectionIdx, rowIdx), true
			}
		}
	}
	return Coordinate{}, false
}

// ItemForKey returns the first row whose encoded key equals key.
func (ds *DataSource) ItemForKey(key string) (Item, bool) {
	c, ok := ds.PathForKey(key)
	if !ok {
		return Item{}, false
	}
	return ds.ItemAt(c)
}

// IsValid is the logical AND of every section's validity. An empty data
// source is valid.
func (ds *DataSource) IsValid() bool {
	for _, section := range ds.sections {
		if !section.IsValid() {
			return false
		}
	}
	return true
}

// Errors returns the validation messages of every invalid row.
func (ds *DataSource) Errors() map[Coordinate][]string {
	out := map[Coordinate][]string{}
	for sectionIdx, section := range ds.sections {
		for rowIdx, item := range section.rows {
			if messages := item.Errors(); len(messages) > 0 {
				out[At(sectionIdx, rowIdx)] = messages
			}
		}
	}
	return out
}

// UpdateWith replaces the item at c and notifies once. Out-of-range
// coordinates are logged and ignored.
func (ds *DataSource) UpdateWith(item Item, c Coordinate) bool {
	if item.IsZero() {
		ds.logger.Warn("form: update with empty item ignored",
			zap.Int("section", c.Section),
			zap.Int("row", c.Row),
		)
		return false
	}
	section, ok := ds.Section(c.Section)
	if !ok {
		ds.missed("update", c)
		return false
	}
	change := section.ReplaceRow(c.Row, item)
	if change.OutOfRange {
		ds.missed("update", c)
	}
	return change.Changed
}

// InsertRow inserts item so that it ends up at c.
func (ds *DataSource) InsertRow(item Item, c Coordinate) bool {
	section, ok := ds.Section(c.Section)
	if !ok || item.IsZero() {
		ds.missed("insert", c)
		return false
	}
	change := section.InsertRow(c.Row, item)
	if change.OutOfRange {
		ds.missed("insert", c)
	}
	return change.Changed
}

// AppendRow appends item to the section at index.
func (ds *DataSource) AppendRow(sectionIdx int, item Item) bool {
	section, ok := ds.Section(sectionIdx)
	if !ok || item.IsZero() {
		ds.missed("append", At(sectionIdx, -1))
		return false
	}
	return section.AppendRow(item).Changed
}

// RemoveRow deletes the row at c and returns the removed item.
func (ds *DataSource) RemoveRow(c Coordinate) (Item, bool) {
	item, ok := ds.ItemAt(c)
	if !ok {
		ds.missed("remove", c)
		return Item{}, false
	}
	ds.sections[c.Section].RemoveRow(c.Row)
	return item, true
}

// SetRows replaces every row of the section at index.
func (ds *DataSource) SetRows(sectionIdx int, items []Item) bool {
	section, ok := ds.Section(sectionIdx)
	if !ok {
		ds.missed("set rows", At(sectionIdx, -1))
		return false
	}
	return section.SetRows(items).Changed
}

// ToggleSection flips the expansion state of the section at index.
func (ds *DataSource) ToggleSection(sectionIdx int, measuredHeight float64) bool {
	section, ok := ds.Section(sectionIdx)
	if !ok {
		ds.missed("toggle", At(sectionIdx, -1))
		return false
	}
	return section.ToggleExpansion(measuredHeight).Changed
}

// SetSections replaces the section list and always notifies with the full
// snapshot.
func (ds *DataSource) SetSections(sections []*Section) {
	ds.attach(sections)
	ds.syncValidity()
	ds.notify(Change{Kind: ChangeSections, Source: ds})
}

// NewWith returns a data source over sections that copies this instance's
// cross-cutting state: title, storage, params, scroll offset, last touched
// coordinate, listener and logger. The listener is notified with the new
// instance.
func (ds *DataSource) NewWith(sections []*Section) *DataSource {
	next := &DataSource{
		title:      ds.title,
		storage:    cloneStorage(ds.storage),
		params:     cloneParams(ds.params),
		offset:     ds.offset,
		touched:    ds.touched,
		hasTouched: ds.hasTouched,
		listener:   ds.listener,
		logger:     ds.logger,
	}
	next.attach(sections)
	next.syncValidity()
	next.notify(Change{Kind: ChangeSections, Source: next})
	return next
}

// ScrollOffset returns the last recorded scroll offset.
func (ds *DataSource) ScrollOffset() float64 {
	return ds.offset
}

// SetScrollOffset records the scroll offset.
func (ds *DataSource) SetScrollOffset(offset float64) {
	ds.offset = offset
}

// LastTouched returns the last coordinate the user interacted with.
func (ds *DataSource) LastTouched() (Coordinate, bool) {
	return ds.touched, ds.hasTouched
}

// Touch records c as the last touched coordinate.
func (ds *DataSource) Touch(c Coordinate) {
	ds.touched = c
	ds.hasTouched = true
}

// Store saves an arbitrary value in the per-form storage.
func (ds *DataSource) Store(key string, v any) {
	ds.storage[key] = v
}

// Load reads from the per-form storage.
func (ds *DataSource) Load(key string) (any, bool) {
	v, ok := ds.storage[key]
	return v, ok
}

// SetParam records an auxiliary submission parameter. Auxiliary params
// override encoded item values on submit.
func (ds *DataSource) SetParam(key, val string) {
	ds.params[key] = val
}

// DeleteParam removes an auxiliary parameter.
func (ds *DataSource) DeleteParam(key string) {
	delete(ds.params, key)
}

// Params returns a copy of the auxiliary parameters.
func (ds *DataSource) Params() map[string]string {
	return cloneParams(ds.params)
}

func (ds *DataSource) attach(sections []*Section) {
	ds.sections = make([]*Section, 0, len(sections))
	for _, section := range sections {
		if section == nil {
			continue
		}
		section.Observe(ds.sectionChanged)
		ds.sections = append(ds.sections, section)
	}
}

func (ds *DataSource) indexOf(section *Section) int {
	for idx, candidate := range ds.sections {
		if candidate == section {
			return idx
		}
	}
	return -1
}

func (ds *DataSource) sectionChanged(change SectionChange) {
	idx := ds.indexOf(change.Section)
	if idx < 0 {
		return
	}
	valid := ds.syncValidity()
	ds.notify(Change{
		Kind:       changeKind(change.Op),
		Coordinate: At(idx, change.Row),
		Source:     ds,
		Valid:      valid,
	})
}

func changeKind(op SectionOp) ChangeKind {
	switch op {
	case SectionOpReplace:
		return ChangeEdit
	case SectionOpInsert:
		return ChangeInsert
	case SectionOpRemove:
		return ChangeRemove
	case SectionOpToggle:
		return ChangeToggle
	default:
		return ChangeRows
	}
}

// syncValidity re-runs the validity check and aligns every validity
// tracking action with the result without emitting notifications.
func (ds *DataSource) syncValidity() bool {
	valid := ds.IsValid()
	for _, section := range ds.sections {
		for rowIdx, item := range section.rows {
			action, ok := item.Value().(value.Action)
			if !ok || !action.TracksValidity || action.Enabled == valid {
				continue
			}
			action.Enabled = valid
			section.replaceSilently(rowIdx, NewItem(action))
		}
	}
	return valid
}

func (ds *DataSource) notify(change Change) {
	if change.Kind == ChangeSections {
		change.Valid = ds.IsValid()
	}
	if ds.listener != nil {
		ds.listener(change)
	}
}

func (ds *DataSource) missed(op string, c Coordinate) {
	ds.logger.Warn("form: coordinate out of range",
		zap.String("op", op),
		zap.Int("section", c.Section),
		zap.Int("row", c.Row),
		zap.Int("sections", len(ds.sections)),
	)
}

func cloneStorage(in map[string]any) map[string]any {
	out := make(map[string]any, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func cloneParams(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
