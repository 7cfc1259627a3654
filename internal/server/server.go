// package server contains routing, middleware & handlers for the music review service
package server

import (
	"net/http"
)

// Middleware wraps an http.Handler and returns a new http.Handler with additional behavior.
// Common middleware includes request IDs, logging, panic recovery, and timeouts.
type Middleware func(http.Handler) http.Handler

// HandlerFunc is an HTTP handler that returns an error instead of writing
// error responses itself. Returned errors flow through the shared error
// mapper, which classifies them into {status, msg} bodies.
type HandlerFunc func(w http.ResponseWriter, r *http.Request) error

// Route binds one method and path pattern to a [HandlerFunc].
type Route struct {
	Method  string
	Pattern string
	Func    HandlerFunc
}

// Handler defines the interface for HTTP request handler groups in the
// review service. Implementations cover specific endpoint families
// (music, reviews, users, privacy, search).
type Handler interface {
	Routes() []Route // Routes returns the method/pattern pairs this handler serves
}

// Router defines the interface for HTTP routing and middleware management.
type Router interface {
	Use(middleware ...Middleware)                     // Use adds middleware to the router's middleware stack
	Handle(handler Handler)                           // Handle registers all of a Handler's routes
	ServeHTTP(w http.ResponseWriter, r *http.Request) // ServeHTTP implements http.Handler for the entire router
}
