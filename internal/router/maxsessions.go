package router

import (
	"sync"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
)

// MaxSessionsMiddleware caps concurrent sessions across the whole server.
// Sessions over the cap get a short notice and are closed before the app
// handler runs.
func MaxSessionsMiddleware(limit int) wish.Middleware {
	if limit <= 0 {
		limit = 32
	}

	var mu sync.Mutex
	active := 0

	return func(next ssh.Handler) ssh.Handler {
		return func(s ssh.Session) {
			mu.Lock()
			if active >= limit {
				mu.Unlock()
				log.Warn("session cap reached", "remote_ip", remoteIP(s), "limit", limit)
				_, _ = s.Write([]byte("server is full, try again later\n"))
				return
			}
			active++
			mu.Unlock()

			defer func() {
				mu.Lock()
				active--
				mu.Unlock()
			}()
			next(s)
		}
	}
}
