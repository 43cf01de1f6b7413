// Package form holds the live form state: items wrapping field values,
// sections of items and the DataSource that owns the sections together with
// the cross-cutting state surviving replacement.
//
// Mutations flow through explicit messages. A section mutation returns a
// SectionChange and forwards it to its owning DataSource, which re-runs
// validation, keeps validity tracking actions in sync and notifies its
// Listener exactly once.
//
//	ds := form.New([]*form.Section{
//		form.NewSectionBuilder("Account").
//			Add(value.Text{Name: "name", Label: "Name", State: value.State{Required: true}}).
//			Add(value.Action{Name: "save", Label: "Save", TracksValidity: true}).
//			Build(),
//	}, form.WithListener(func(c form.Change) { ... }))
//
//	ds.ApplyEdit(value.Text{Name: "name", Label: "Name", Value: "Ada", State: value.State{Required: true}}, form.At(0, 0))
//	ds.ActiveParams() // map[name:Ada]
package form
