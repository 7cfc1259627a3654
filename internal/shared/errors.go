package shared

import "fmt"

var (
	// Configuration errors
	ErrMissingConfig      = fmt.Errorf("configuration not found")
	ErrInvalidConfig      = fmt.Errorf("invalid configuration")
	ErrMissingCredentials = fmt.Errorf("missing credentials")

	// Authentication errors
	ErrNotAuthenticated = fmt.Errorf("not authenticated")
	ErrRefreshFailed    = fmt.Errorf("token refresh failed")
	ErrNoRefreshToken   = fmt.Errorf("no refresh token available")

	// Provider errors
	ErrProviderRequest     = fmt.Errorf("catalog provider request failed")
	ErrProviderUnavailable = fmt.Errorf("catalog provider unavailable")

	// Domain errors
	ErrNotFound        = fmt.Errorf("not found")
	ErrAlreadyFollowed = fmt.Errorf("user already followed")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
)

// APIError is a pre-classified error carrying the HTTP status and the
// client-visible message. Handlers return these for conditions they detect
// themselves; everything else is classified by the server error mapper.
type APIError struct {
	Status int
	Msg    string
}

func (e *APIError) Error() string {
	return e.Msg
}

// NewAPIError builds an [APIError] with the given status and message.
func NewAPIError(status int, msg string) *APIError {
	return &APIError{Status: status, Msg: msg}
}
