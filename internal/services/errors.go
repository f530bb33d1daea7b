package services

import (
	"errors"
	"fmt"

	"google.golang.org/api/googleapi"
)

// ErrMissingCredential is returned before any upstream call when no API key
// is configured.
var ErrMissingCredential = errors.New("GEMINI_API_KEY is not set in environment variables")

// UpstreamError wraps anything that went wrong talking to Gemini.
type UpstreamError struct {
	Mode string
	Err  error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("gemini %s call failed: %v", e.Mode, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// UpstreamStatus returns the HTTP status reported by the Gemini REST API, or 0
// when the failure happened before a response was received.
func UpstreamStatus(err error) int {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return gerr.Code
	}
	return 0
}
