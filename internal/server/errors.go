package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/desertthunder/resonate/internal/shared"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const notFoundMsg = "incorrect path - path not found"

// mapError classifies a handler error into an HTTP status and a client-safe
// message. Database constraint violations surface as client errors rather
// than opaque 500s: malformed values and missing required columns are the
// caller's fault, and a broken foreign key means the referenced row does
// not exist.
func mapError(err error) (int, string) {
	var apiErr *shared.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status, apiErr.Msg
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "22P02", "23502", "23514": // invalid text representation, not-null, check
			return http.StatusBadRequest, "bad request"
		case "23503": // foreign key
			return http.StatusNotFound, "not found"
		}
	}

	switch {
	case errors.Is(err, shared.ErrNotFound), errors.Is(err, pgx.ErrNoRows):
		return http.StatusNotFound, "not found"
	case errors.Is(err, shared.ErrAlreadyFollowed):
		return http.StatusConflict, "already following"
	case errors.Is(err, shared.ErrInvalidInput):
		return http.StatusBadRequest, "bad request"
	case errors.Is(err, shared.ErrProviderUnavailable), errors.Is(err, shared.ErrProviderRequest):
		return http.StatusBadGateway, "catalog provider unavailable"
	case errors.Is(err, shared.ErrNotAuthenticated), errors.Is(err, shared.ErrRefreshFailed):
		return http.StatusBadGateway, "catalog provider unavailable"
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "request timed out"
	}

	return http.StatusInternalServerError, "internal server error"
}
