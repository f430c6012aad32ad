// package server contains middleware & handlers for the media conversion web service
package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/desertthunder/castaway/internal/shared"
)

// Middleware wraps an http.Handler and returns a new http.Handler with additional behavior.
// Common middleware includes logging, rate limiting, CORS, etc.
type Middleware func(http.Handler) http.Handler

// Handler defines the interface for HTTP request handlers in the conversion service.
// Implementations handle specific endpoints (search, convert, summarize, health).
type Handler interface {
	http.Handler      // ServeHTTP handles the HTTP request and writes the response
	Routes() []string // Routes returns the path patterns this handler serves
}

// Router defines the interface for HTTP routing and middleware management.
// Implementations register handlers, apply middleware, and configure the HTTP server.
type Router interface {
	Use(middleware ...Middleware)                     // Use adds middleware to the router's middleware stack
	Handle(method, path string, handler http.Handler) // Handle registers a handler for the specified method and path
	Handler(handler Handler)                          // Handler registers a custom Handler implementation
	ServeHTTP(w http.ResponseWriter, r *http.Request) // ServeHTTP implements http.Handler for the entire router
}

// New builds the process HTTP server for the given config and router.
//
// Write timeout stays generous: /convert holds the connection for the whole
// retrieval and upload, which can run for minutes on long episodes.
func New(config shared.ServerConfig, router Router) *http.Server {
	addr := fmt.Sprintf("%s:%d", config.Host, config.Port)
	return &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      30 * time.Minute,
		IdleTimeout:       120 * time.Second,
	}
}
