// Package tui is a terminal surface for forms. Surface prints views and
// change scripts; Session drives a present.Presenter with survey prompts so
// every answer flows through the same edit path as any other surface:
//
//	session, err := tui.NewSession(ds, tui.WithOutput(os.Stdout))
//	if err != nil {
//		return err
//	}
//	params, err := session.Fill(ctx)
package tui
