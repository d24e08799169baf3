package server

import (
	"path/filepath"
	"regexp"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	bt "github.com/charmbracelet/wish/bubbletea"

	"mosaic-reader/internal/config"
	"mosaic-reader/internal/library"
	"mosaic-reader/internal/prefs"
	"mosaic-reader/internal/screen"
	"mosaic-reader/internal/syspref"
	"mosaic-reader/internal/theme"
	"mosaic-reader/internal/tui"
)

var validUserPattern = regexp.MustCompile(`^[a-z0-9_][a-z0-9_.-]{0,31}$`)

const (
	fallbackUser   = "guest"
	fallbackWidth  = 80
	fallbackHeight = 24
)

// AppMiddleware builds the per-session reader application. The theme
// bootstrap runs inside the handler, synchronously, before the bubbletea
// program exists — nothing has been painted yet when the marker and base
// background are applied.
func AppMiddleware(cfg config.Config, catalog *library.Catalog) wish.Middleware {
	return bt.Middleware(sessionHandler(cfg, catalog))
}

func sessionHandler(cfg config.Config, catalog *library.Catalog) bt.Handler {
	return func(s ssh.Session) (tea.Model, []tea.ProgramOption) {
		renderer := bt.MakeRenderer(s)
		store := prefs.NewFileStore(prefsPath(cfg.DataDir, s.User()))
		root := screen.New(renderer)
		oracle := syspref.NewMonitor(syspref.RendererQuery(renderer), cfg.ThemePollInterval)

		state := theme.Bootstrap(store, oracle, root)
		runtime := theme.NewRuntime(state, store, oracle, root)
		runtime.Attach()

		// The oracle subscription must not outlive the session.
		go func() {
			<-s.Context().Done()
			runtime.Close()
		}()

		width, height := fallbackWidth, fallbackHeight
		if pty, _, ok := s.Pty(); ok {
			if pty.Window.Width > 0 {
				width = pty.Window.Width
			}
			if pty.Window.Height > 0 {
				height = pty.Window.Height
			}
		}

		model := tui.New(runtime, catalog, store, renderer, width, height)
		return model, []tea.ProgramOption{tea.WithAltScreen()}
	}
}

// prefsPath maps an SSH username to that user's preference file. Usernames
// outside the allowed pattern share the guest file rather than influencing
// the path.
func prefsPath(dataDir, user string) string {
	if !validUserPattern.MatchString(user) {
		user = fallbackUser
	}
	return filepath.Join(dataDir, "prefs", user+".json")
}
