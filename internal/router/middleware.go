// Package router assembles the SSH middleware chain for the reader server.
package router

import (
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/logging"
)

// Descriptor names one middleware so the assembled chain stays inspectable
// in logs and tests.
type Descriptor struct {
	Name       string
	Middleware wish.Middleware
}

// DefaultChain wires the startup middleware chain around the reader app
// handler. Wish wraps middleware so the last descriptor runs first on a new
// connection: logging, then rate limiting, then the session cap, then the
// active-terminal requirement, then the app itself.
func DefaultChain(app wish.Middleware, limitPerSecond, maxSessions int) []Descriptor {
	return []Descriptor{
		{Name: "reader", Middleware: app},
		{Name: "active-terminal", Middleware: activeterm.Middleware()},
		{Name: "max-sessions", Middleware: MaxSessionsMiddleware(maxSessions)},
		{Name: "rate-limit", Middleware: RateLimitMiddleware(limitPerSecond*60, limitPerSecond)},
		{Name: "logging", Middleware: logging.Middleware()},
	}
}

// MiddlewareFromDescriptors strips descriptor names for wish registration.
func MiddlewareFromDescriptors(chain []Descriptor) []wish.Middleware {
	middleware := make([]wish.Middleware, 0, len(chain))
	for _, descriptor := range chain {
		middleware = append(middleware, descriptor.Middleware)
	}
	return middleware
}
