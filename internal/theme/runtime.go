package theme

import (
	"fmt"
	"sync"
)

// Phase tracks the Runtime's lifecycle.
type Phase int

const (
	PhaseInitializing Phase = iota
	PhaseReady
)

// Runtime owns theme state for a mounted session. It mirrors whatever
// Bootstrap already applied, then becomes the sole writer of the visual root:
// every recomputation applies the marker and persists the cache before
// control returns, so no observer can see choice and effective theme
// disagree.
type Runtime struct {
	mu      sync.Mutex
	store   Store
	oracle  Oracle
	surface Surface

	phase       Phase
	choice      Choice
	effective   Effective
	system      SystemPreference
	systemKnown bool
	cancel      func()
}

// NewRuntime builds a Runtime that adopts the state a Bootstrap run applied.
func NewRuntime(state State, store Store, oracle Oracle, surface Surface) *Runtime {
	return &Runtime{
		store:       store,
		oracle:      oracle,
		surface:     surface,
		choice:      state.Choice,
		effective:   state.Effective,
		system:      state.System,
		systemKnown: state.SystemKnown,
	}
}

// Attach transitions the Runtime to ready: it snapshots the oracle, installs
// the change subscription, and reconciles the marker if store and oracle
// disagreed at bootstrap. Subscription failure degrades silently; the
// Runtime stays usable with explicit choices.
func (r *Runtime) Attach() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.phase == PhaseReady {
		return
	}

	if r.oracle != nil {
		if pref, ok := queryOracle(r.oracle); ok {
			r.system = pref
			r.systemKnown = true
		}
		r.cancel = subscribeOracle(r.oracle, r.onSystemChange)
	}

	if expected := r.resolveLocked(r.choice); expected != r.effective {
		r.applyLocked(expected)
	}
	r.phase = PhaseReady
}

// Phase returns the current lifecycle phase.
func (r *Runtime) Phase() Phase {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.phase
}

// Effective returns the currently applied theme. Always defined.
func (r *Runtime) Effective() Effective {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.effective
}

// Choice returns the current explicit preference.
func (r *Runtime) Choice() Choice {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.choice
}

// SetChoice is the only entry point by which user intent changes. Invalid
// values are rejected with ErrInvalidChoice and leave all state untouched.
// Persistence failures are swallowed; the visual update always happens, in
// the same tick as the recomputation.
func (r *Runtime) SetChoice(choice Choice) error {
	if !ValidChoice(choice) {
		return fmt.Errorf("%w: %q", ErrInvalidChoice, choice)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.choice = choice
	safeSet(r.store, KeyChoice, string(choice))

	if resolved := r.resolveLocked(choice); resolved != r.effective {
		r.applyLocked(resolved)
	} else {
		// Keep the cache fresh even when the marker is already correct.
		safeSet(r.store, KeyResolved, string(r.effective))
	}
	return nil
}

// Close releases the oracle subscription. Idempotent; safe after session
// teardown.
func (r *Runtime) Close() {
	r.mu.Lock()
	cancel := r.cancel
	r.cancel = nil
	r.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

// onSystemChange handles an oracle notification. The last known system
// preference is always tracked so a later switch to the system choice
// resolves without re-querying; the marker only moves when the choice is
// system.
func (r *Runtime) onSystemChange(pref SystemPreference) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.system = pref
	r.systemKnown = true
	if r.choice != ChoiceSystem {
		return
	}
	if resolved := Resolve(r.choice, pref); resolved != r.effective {
		r.applyLocked(resolved)
	}
}

// resolveLocked computes the effective theme from the tracked snapshot. With
// the system choice and no oracle signal ever observed, the currently applied
// theme is kept rather than forcing a fallback repaint.
func (r *Runtime) resolveLocked(choice Choice) Effective {
	if choice == ChoiceSystem && !r.systemKnown {
		return r.effective
	}
	return Resolve(choice, r.system)
}

// applyLocked writes the marker to the surface and persists the cache in the
// same critical section. Callers hold r.mu.
func (r *Runtime) applyLocked(e Effective) {
	r.effective = e
	if r.surface != nil {
		r.surface.Apply(e)
	}
	safeSet(r.store, KeyResolved, string(e))
}

// subscribeOracle guards against subscription mechanisms that panic at mount
// time. The returned cancel is never nil.
func subscribeOracle(oracle Oracle, fn func(SystemPreference)) (cancel func()) {
	defer func() {
		if recover() != nil {
			cancel = func() {}
		}
	}()
	cancel = oracle.Subscribe(fn)
	if cancel == nil {
		cancel = func() {}
	}
	return cancel
}
