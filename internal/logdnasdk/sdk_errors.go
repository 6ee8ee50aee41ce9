package logdnasdk

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	// ErrUnauthenticated means no token is stored; the user has to log in.
	ErrUnauthenticated = errors.New("sdk: not logged in")
	// ErrCredentialRejected means the service refused the stored token (401/403).
	ErrCredentialRejected = errors.New("sdk: credential rejected")
	// ErrMalformedMessage is reported for streamed frames that are not JSON objects.
	ErrMalformedMessage = errors.New("sdk: malformed message")
	// ErrUnexpectedResponse is returned when a structured body was expected.
	ErrUnexpectedResponse = errors.New("sdk: unexpected response")

	ErrNoAPIURL = errors.New("sdk: api url missing")
)

// APIError is a non-2xx response from the REST API.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("Error %d: %s", e.StatusCode, strings.TrimSpace(e.Body))
}

// Is lets errors.Is(err, ErrCredentialRejected) match 401 and 403 responses.
func (e *APIError) Is(target error) bool {
	return target == ErrCredentialRejected && IsCredentialRejectedStatus(e.StatusCode)
}

// IsCredentialRejectedStatus reports whether a status code means the token was refused.
func IsCredentialRejectedStatus(code int) bool {
	return code == http.StatusUnauthorized || code == http.StatusForbidden
}

func credentialRejectedMessage(s string) bool {
	return strings.Contains(s, "401") || strings.Contains(s, "403")
}
