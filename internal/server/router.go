package server

import (
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
)

// Mux is the [Router] implementation backed by chi. Registered handlers
// return errors, which the mux converts into JSON error bodies before
// anything reaches the client.
type Mux struct {
	router chi.Router
	logger *log.Logger
}

// NewMux creates a router with the service's not-found behavior wired in:
// unknown paths and unsupported methods both return the fixed 404 body.
func NewMux(logger *log.Logger) *Mux {
	r := chi.NewRouter()
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		_ = respondMsg(w, http.StatusNotFound, notFoundMsg)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		_ = respondMsg(w, http.StatusNotFound, notFoundMsg)
	})
	return &Mux{router: r, logger: logger}
}

// Use adds middleware to the stack. Must be called before Handle.
func (m *Mux) Use(middleware ...Middleware) {
	for _, mw := range middleware {
		m.router.Use((func(http.Handler) http.Handler)(mw))
	}
}

// Handle registers every route the handler exposes.
func (m *Mux) Handle(handler Handler) {
	for _, route := range handler.Routes() {
		m.router.Method(route.Method, route.Pattern, m.wrap(route.Func))
	}
}

func (m *Mux) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	m.router.ServeHTTP(w, r)
}

// wrap adapts a [HandlerFunc] to http.Handler, mapping returned errors to
// status codes. Server faults are logged with the original error; the
// client only ever sees the mapped message.
func (m *Mux) wrap(fn HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		err := fn(w, r)
		if err == nil {
			return
		}
		status, msg := mapError(err)
		if status >= http.StatusInternalServerError {
			logger := LoggerFromContext(r.Context())
			if logger == nil {
				logger = m.logger
			}
			logger.Error("handler failed", "method", r.Method, "path", r.URL.Path, "error", err)
		}
		_ = respondMsg(w, status, msg)
	})
}
