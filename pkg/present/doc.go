// Package present binds a live form.DataSource to a render.Surface.
//
// Row edits, inserts and removals on the live data source reach the surface
// as single change scripts. Replace swaps the whole form and hands the
// surface the evaluated script between what it shows and the new state.
// While the surface is applying a replacement, further replacements follow
// the configured Policy:
//
//	p, err := present.New(ds, surface, present.WithPolicy(present.CoalesceOverlapping))
//	if err != nil {
//		return err
//	}
//	if err := p.Start(); err != nil {
//		return err
//	}
//	p.ApplyEdit(value.Text{Name: "name", Value: "Ada"}, form.At(0, 0))
package present
