package authsdk

import (
	"fmt"
	"net/http"

	"github.com/wirraway/authgate/pkg/httpx"
)

// OAuth2 error codes per RFC 6749.
const (
	ErrorCodeInvalidRequest   = "invalid_request"
	ErrorCodeNotFound         = "not_found"
	ErrorCodeInvalidGrant     = "invalid_grant"
	ErrorCodeInvalidToken     = "invalid_token"
	ErrorCodeServerError      = "server_error"
	ErrorCodeTempUnavailable  = "temporarily_unavailable"
	ErrorCodeRateLimitReached = "rate_limit_exceeded"
)

// OAuth2Error is a wire-level error. The server writes it as an HTTP
// response; the SDK client returns it when a call fails.
type OAuth2Error struct {
	// StatusCode is the HTTP status, not serialized.
	StatusCode int `json:"-"`

	Code        string `json:"error"`
	Description string `json:"error_description"`
}

func (e *OAuth2Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

// WriteError writes this error to an HTTP response writer.
func (e *OAuth2Error) WriteError(w http.ResponseWriter) {
	httpx.WriteJSON(w, e.StatusCode, ErrorResponse{
		Error:            e.Code,
		ErrorDescription: e.Description,
	})
}

var (
	// ErrInvalidRequest is returned for malformed bodies or missing
	// required parameters.
	ErrInvalidRequest = &OAuth2Error{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeInvalidRequest,
		Description: "the request is malformed or missing required parameters",
	}

	// ErrNotFound is returned by admin endpoints when the addressed
	// resource does not exist. Login endpoints never use it.
	ErrNotFound = &OAuth2Error{
		StatusCode:  http.StatusNotFound,
		Code:        ErrorCodeNotFound,
		Description: "the requested resource does not exist",
	}

	// ErrInvalidGrant is the single deliberately vague answer for every
	// failed login. It never distinguishes a bad code from an unknown
	// account.
	ErrInvalidGrant = &OAuth2Error{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeInvalidGrant,
		Description: "the authorization grant is invalid or expired",
	}

	// ErrInvalidToken is returned when a bearer token fails verification.
	ErrInvalidToken = &OAuth2Error{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeInvalidToken,
		Description: "the access token is invalid or expired",
	}

	// ErrServerError covers unexpected internal failures.
	ErrServerError = &OAuth2Error{
		StatusCode:  http.StatusInternalServerError,
		Code:        ErrorCodeServerError,
		Description: "an unexpected error occurred",
	}

	// ErrTemporarilyUnavailable is returned when a dependency (the user
	// directory) is down. Clients should retry; this is not a credential
	// problem.
	ErrTemporarilyUnavailable = &OAuth2Error{
		StatusCode:  http.StatusServiceUnavailable,
		Code:        ErrorCodeTempUnavailable,
		Description: "the service is temporarily unable to process the request",
	}
)
