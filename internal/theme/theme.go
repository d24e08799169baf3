package theme

import (
	"errors"
	"strings"
)

// Choice is the reader's persisted explicit theme intent.
type Choice string

const (
	ChoiceLight  Choice = "light"
	ChoiceDark   Choice = "dark"
	ChoiceSystem Choice = "system"
)

// Effective is the theme actually applied to the visual root. It is always
// derived, never set directly.
type Effective string

const (
	EffectiveLight Effective = "light"
	EffectiveDark  Effective = "dark"
)

// SystemPreference is the terminal's live light/dark signal. It is owned by
// the host environment; this package only reads it.
type SystemPreference string

const (
	SystemLight SystemPreference = "light"
	SystemDark  SystemPreference = "dark"
)

// Preference store keys.
const (
	KeyChoice   = "theme"
	KeyResolved = "resolvedTheme"
)

// ErrInvalidChoice is returned when a caller passes a value outside the
// light/dark/system set to SetChoice.
var ErrInvalidChoice = errors.New("invalid theme choice")

// Store is durable key-value persistence for theme state. Implementations may
// be unavailable: Get reports absent and Set may fail; callers in this
// package treat both as optional.
type Store interface {
	Get(key string) (string, bool)
	Set(key, value string) error
}

// Oracle exposes the terminal's current light/dark preference. Current is a
// synchronous point-in-time query; ok is false when the signal cannot be
// detected. Subscribe registers a change callback and returns a cancel
// function that releases the subscription.
type Oracle interface {
	Current() (SystemPreference, bool)
	Subscribe(fn func(SystemPreference)) (cancel func())
}

// Surface is the single owned visual root. Apply sets the theme marker and
// the base background immediately; only Bootstrap and the Runtime write it.
type Surface interface {
	Apply(Effective)
}

// Resolve maps an explicit choice and the current system preference to the
// effective theme. Pure and total; the single definition shared by Bootstrap
// and the Runtime.
func Resolve(choice Choice, system SystemPreference) Effective {
	switch choice {
	case ChoiceLight:
		return EffectiveLight
	case ChoiceDark:
		return EffectiveDark
	default:
		if system == SystemDark {
			return EffectiveDark
		}
		return EffectiveLight
	}
}

// ValidChoice reports whether c is one of the three enumerated choices.
func ValidChoice(c Choice) bool {
	switch c {
	case ChoiceLight, ChoiceDark, ChoiceSystem:
		return true
	default:
		return false
	}
}

// ParseChoice interprets a persisted choice value. Malformed values are
// reported as absent, never as an error.
func ParseChoice(raw string) (Choice, bool) {
	c := Choice(strings.ToLower(strings.TrimSpace(raw)))
	if !ValidChoice(c) {
		return "", false
	}
	return c, true
}

// ParseEffective interprets a persisted resolved-theme value. Malformed
// values are reported as absent.
func ParseEffective(raw string) (Effective, bool) {
	switch Effective(strings.ToLower(strings.TrimSpace(raw))) {
	case EffectiveLight:
		return EffectiveLight, true
	case EffectiveDark:
		return EffectiveDark, true
	default:
		return "", false
	}
}

// safeGet shields callers from misbehaving store implementations. A store
// that panics is treated as unavailable.
func safeGet(store Store, key string) (value string, ok bool) {
	if store == nil {
		return "", false
	}
	defer func() {
		if recover() != nil {
			value, ok = "", false
		}
	}()
	return store.Get(key)
}

// safeSet writes through to the store, swallowing failures and panics.
// Persistence is best effort; visual correctness never depends on it.
func safeSet(store Store, key, value string) {
	if store == nil {
		return
	}
	defer func() {
		_ = recover()
	}()
	_ = store.Set(key, value)
}
