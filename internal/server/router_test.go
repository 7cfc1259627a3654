package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/resonate/internal/shared"
	"github.com/jackc/pgx/v5/pgconn"
)

func newTestMux(t *testing.T, handlers ...Handler) *Mux {
	t.Helper()
	mux := NewMux(log.New(io.Discard))
	for _, handler := range handlers {
		mux.Handle(handler)
	}
	return mux
}

func decodeBody(t *testing.T, res *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response body: %v", err)
	}
	return body
}

func TestNotFoundRoutes(t *testing.T) {
	mux := newTestMux(t, NewHealthHandler())

	t.Run("UnknownPath", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/nope", nil)
		res := httptest.NewRecorder()
		mux.ServeHTTP(res, req)

		if res.Code != http.StatusNotFound {
			t.Errorf("expected 404, got %d", res.Code)
		}
		body := decodeBody(t, res)
		if body["msg"] != notFoundMsg {
			t.Errorf("expected %q, got %q", notFoundMsg, body["msg"])
		}
	})

	t.Run("WrongMethod", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodDelete, "/api", nil)
		res := httptest.NewRecorder()
		mux.ServeHTTP(res, req)

		if res.Code != http.StatusNotFound {
			t.Errorf("expected 404, got %d", res.Code)
		}
		if body := decodeBody(t, res); body["msg"] != notFoundMsg {
			t.Errorf("expected %q, got %q", notFoundMsg, body["msg"])
		}
	})

	t.Run("KnownPath", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api", nil)
		res := httptest.NewRecorder()
		mux.ServeHTTP(res, req)

		if res.Code != http.StatusOK {
			t.Errorf("expected 200, got %d", res.Code)
		}
		if body := decodeBody(t, res); body["msg"] != "ok" {
			t.Errorf("expected ok, got %q", body["msg"])
		}
	})
}

func TestMapError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		msg    string
	}{
		{"APIError", shared.NewAPIError(http.StatusTeapot, "teapot"), http.StatusTeapot, "teapot"},
		{"NotFound", shared.ErrNotFound, http.StatusNotFound, "not found"},
		{"AlreadyFollowed", shared.ErrAlreadyFollowed, http.StatusConflict, "already following"},
		{"InvalidInput", shared.ErrInvalidInput, http.StatusBadRequest, "bad request"},
		{"ProviderDown", shared.ErrProviderUnavailable, http.StatusBadGateway, "catalog provider unavailable"},
		{"WrappedProviderDown", errors.Join(errors.New("spotify search failed"), shared.ErrProviderRequest), http.StatusBadGateway, "catalog provider unavailable"},
		{"InvalidTextRepresentation", &pgconn.PgError{Code: "22P02"}, http.StatusBadRequest, "bad request"},
		{"NotNullViolation", &pgconn.PgError{Code: "23502"}, http.StatusBadRequest, "bad request"},
		{"CheckViolation", &pgconn.PgError{Code: "23514"}, http.StatusBadRequest, "bad request"},
		{"ForeignKeyViolation", &pgconn.PgError{Code: "23503"}, http.StatusNotFound, "not found"},
		{"Unknown", errors.New("boom"), http.StatusInternalServerError, "internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, msg := mapError(tt.err)
			if status != tt.status {
				t.Errorf("expected status %d, got %d", tt.status, status)
			}
			if msg != tt.msg {
				t.Errorf("expected msg %q, got %q", tt.msg, msg)
			}
		})
	}
}
