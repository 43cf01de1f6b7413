package form

import (
	"go.uber.org/zap"

	"github.com/goliatone/go-formlist/pkg/value"
)

// ApplyEdit routes a value produced by a rendering surface back into the
// form. A miss is logged and ignored; a structurally equal value is a
// no-op. Otherwise the row is replaced, validity is re-evaluated, validity
// tracking actions are synchronised and the listener is notified once.
func (ds *DataSource) ApplyEdit(v value.Value, c Coordinate) bool {
	current, ok := ds.ItemAt(c)
	if !ok {
		ds.missed("edit", c)
		return false
	}
	if v == nil {
		ds.logger.Warn("form: nil edit ignored",
			zap.Int("section", c.Section),
			zap.Int("row", c.Row),
		)
		return false
	}
	if value.Equal(current.Value(), v) {
		ds.logger.Debug("form: edit unchanged",
			zap.Int("section", c.Section),
			zap.Int("row", c.Row),
		)
		return false
	}
	return ds.sections[c.Section].ReplaceRow(c.Row, NewItem(v)).Changed
}

// MarkInvalid flags every row keyed by key as invalid with messages and
// reports how many rows were flagged. Each flagged row notifies once.
func (ds *DataSource) MarkInvalid(key string, messages ...string) int {
	return ds.updateState(key, func(state value.State) value.State {
		state.Invalid = true
		state.Errors = append([]string(nil), messages...)
		return state
	})
}

// ClearInvalid removes server-side invalid flags from rows keyed by key.
func (ds *DataSource) ClearInvalid(key string) int {
	return ds.updateState(key, func(state value.State) value.State {
		state.Invalid = false
		state.Errors = nil
		return state
	})
}

// ApplyServerErrors attaches messages keyed by encoded key to matching rows.
// Messages whose key matches no row are returned so the caller can show them
// at form level.
func (ds *DataSource) ApplyServerErrors(errs map[string][]string) map[string][]string {
	unmatched := map[string][]string{}
	for key, messages := range errs {
		if len(messages) == 0 {
			continue
		}
		if ds.MarkInvalid(key, messages...) == 0 {
			unmatched[key] = append([]string(nil), messages...)
		}
	}
	return unmatched
}

func (ds *DataSource) updateState(key string, fn func(value.State) value.State) int {
	if key == "" {
		return 0
	}
	var updated int
	for sectionIdx, section := range ds.sections {
		for rowIdx := 0; rowIdx < section.Len(); rowIdx++ {
			item := section.rows[rowIdx]
			if item.Key() != key {
				continue
			}
			if _, ok := value.StateOf(item.Value()); !ok {
				continue
			}
			ds.ApplyEdit(value.WithState(item.Value(), fn), At(sectionIdx, rowIdx))
			updated++
		}
	}
	return updated
}
