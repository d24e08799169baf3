// Package theme resolves and owns the session's light/dark visual state.
//
// The subsystem reconciles three signals: the reader's persisted explicit
// choice, a persisted previously-resolved cache, and the terminal's live
// light/dark preference. Bootstrap applies a marker synchronously before the
// first frame; the Runtime then takes over as the single writer.
//
// Integration example:
//
//	state := theme.Bootstrap(store, oracle, root)
//	rt := theme.NewRuntime(state, store, oracle, root)
//	rt.Attach()
//	defer rt.Close()
//	styles := theme.NewStyles(renderer, rt.Effective())
package theme
