// Package screen owns the session's visual root: the single theme marker and
// the terminal's base background color. All writes go through Root.Apply;
// no other component mutates the terminal's theme state directly.
package screen

import (
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"mosaic-reader/internal/theme"
)

// Root is the per-session visual root. Exactly one marker value is active at
// any instant after the first Apply. Oracle notifications arrive from a
// polling goroutine, so the marker is mutex-guarded.
type Root struct {
	mu       sync.Mutex
	renderer *lipgloss.Renderer
	output   *termenv.Output

	marker  theme.Effective
	applied bool
}

// New builds the visual root for a session renderer.
func New(renderer *lipgloss.Renderer) *Root {
	r := &Root{renderer: renderer}
	if renderer != nil {
		r.output = renderer.Output()
	}
	return r
}

// Apply sets the theme marker, flips the renderer's background assumption,
// and emits the base background color to the terminal immediately. The
// background write is a direct escape sequence, independent of any style
// re-render that may follow.
func (r *Root) Apply(e theme.Effective) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.marker = e
	r.applied = true

	if r.renderer != nil {
		r.renderer.SetHasDarkBackground(e == theme.EffectiveDark)
	}
	if r.output != nil {
		r.output.SetBackgroundColor(r.output.Color(theme.BackgroundColor(e)))
	}
}

// Marker returns the currently applied theme marker. ok is false before the
// first Apply.
func (r *Root) Marker() (theme.Effective, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.marker, r.applied
}
