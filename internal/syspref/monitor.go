// Package syspref observes the terminal's light/dark preference. Terminals
// report their background color on query but push no change events, so the
// subscription side of the oracle is a polling re-query that notifies only
// when the answer changes.
package syspref

import (
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"mosaic-reader/internal/theme"
)

// DefaultPollInterval is used when a monitor is built with a non-positive
// interval.
const DefaultPollInterval = 2 * time.Second

// QueryFunc answers a point-in-time system preference query. ok is false
// when the signal cannot be detected.
type QueryFunc func() (theme.SystemPreference, bool)

// RendererQuery builds a QueryFunc from a session renderer. A renderer whose
// terminal reports no color capability has no usable background signal.
func RendererQuery(r *lipgloss.Renderer) QueryFunc {
	return func() (theme.SystemPreference, bool) {
		if r == nil || r.ColorProfile() == termenv.Ascii {
			return "", false
		}
		if r.HasDarkBackground() {
			return theme.SystemDark, true
		}
		return theme.SystemLight, true
	}
}

// Monitor implements the theme.Oracle contract over a QueryFunc. The polling
// goroutine starts with the first subscription and stops when the last
// subscription is cancelled.
type Monitor struct {
	query    QueryFunc
	interval time.Duration

	mu        sync.Mutex
	subs      map[int]func(theme.SystemPreference)
	nextID    int
	stop      chan struct{}
	last      theme.SystemPreference
	lastKnown bool
}

// NewMonitor builds a monitor over query, polling at the given interval.
func NewMonitor(query QueryFunc, interval time.Duration) *Monitor {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Monitor{
		query:    query,
		interval: interval,
		subs:     map[int]func(theme.SystemPreference){},
	}
}

// Current answers a synchronous point-in-time query.
func (m *Monitor) Current() (theme.SystemPreference, bool) {
	if m.query == nil {
		return "", false
	}
	return m.query()
}

// Subscribe registers fn for change notifications and returns a cancel
// function. Cancel is idempotent; releasing the last subscription stops the
// polling goroutine.
func (m *Monitor) Subscribe(fn func(theme.SystemPreference)) (cancel func()) {
	if fn == nil || m.query == nil {
		return func() {}
	}

	m.mu.Lock()
	id := m.nextID
	m.nextID++
	m.subs[id] = fn
	if m.stop == nil {
		if pref, ok := m.query(); ok {
			m.last = pref
			m.lastKnown = true
		}
		m.stop = make(chan struct{})
		go m.poll(m.stop)
	}
	m.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			m.mu.Lock()
			delete(m.subs, id)
			if len(m.subs) == 0 && m.stop != nil {
				close(m.stop)
				m.stop = nil
			}
			m.mu.Unlock()
		})
	}
}

func (m *Monitor) poll(stop <-chan struct{}) {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			pref, ok := m.query()
			if !ok {
				continue
			}

			m.mu.Lock()
			changed := !m.lastKnown || pref != m.last
			m.last = pref
			m.lastKnown = true
			var fns []func(theme.SystemPreference)
			if changed {
				fns = make([]func(theme.SystemPreference), 0, len(m.subs))
				for _, fn := range m.subs {
					fns = append(fns, fn)
				}
			}
			m.mu.Unlock()

			for _, fn := range fns {
				fn(pref)
			}
		}
	}
}
