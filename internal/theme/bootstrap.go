package theme

// State is the theme state a Bootstrap run left behind. The Runtime adopts it
// verbatim instead of re-deriving from scratch, so the marker applied before
// first paint is never recomputed into a visible change at hand-off.
type State struct {
	Choice      Choice
	Effective   Effective
	System      SystemPreference
	SystemKnown bool
}

// Bootstrap synchronously puts the visual root into its correct theme before
// the first frame renders. It performs no asynchronous work, never fails, and
// is idempotent: re-running it against unchanged store and oracle state
// applies the same marker.
//
// The persisted resolved-theme value is only a flash-avoidance cache; when
// the choice is system and the oracle answers, the live preference wins and a
// mismatched cache is corrected immediately.
func Bootstrap(store Store, oracle Oracle, surface Surface) State {
	candidate := EffectiveLight
	if raw, ok := safeGet(store, KeyResolved); ok {
		if eff, ok := ParseEffective(raw); ok {
			candidate = eff
		}
	}
	surface.Apply(candidate)

	choice := ChoiceSystem
	if raw, ok := safeGet(store, KeyChoice); ok {
		if c, ok := ParseChoice(raw); ok {
			choice = c
		}
	}

	state := State{Choice: choice, Effective: candidate}

	switch choice {
	case ChoiceLight, ChoiceDark:
		// Explicit intent needs no oracle. A stale cache is corrected here
		// rather than left for the runtime.
		if resolved := Resolve(choice, SystemLight); resolved != candidate {
			surface.Apply(resolved)
			state.Effective = resolved
		}
	default:
		if oracle == nil {
			break
		}
		pref, ok := queryOracle(oracle)
		if !ok {
			break
		}
		state.System = pref
		state.SystemKnown = true
		if resolved := Resolve(choice, pref); resolved != candidate {
			surface.Apply(resolved)
			state.Effective = resolved
		}
	}

	return state
}

// queryOracle guards against oracle implementations that panic; detection
// failure degrades to "signal unknown".
func queryOracle(oracle Oracle) (pref SystemPreference, ok bool) {
	defer func() {
		if recover() != nil {
			pref, ok = "", false
		}
	}()
	return oracle.Current()
}
