package llm

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrNotConfigured = errors.New("llm is not configured")
	ErrMissingAPIKey = errors.New("llm api key is required")
	ErrEmptyReply    = errors.New("llm returned empty reply")
	ErrUnauthorized  = errors.New("llm unauthorized")
	ErrRateLimited   = errors.New("llm rate limited")
)

type APIError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *APIError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("llm api error: %s", e.Status)
	}
	return fmt.Sprintf("llm api error: %s: %s", e.Status, e.Body)
}

func classifyAPIError(apiErr *APIError) error {
	switch apiErr.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%w: %w", ErrUnauthorized, apiErr)
	case http.StatusTooManyRequests:
		return fmt.Errorf("%w: %w", ErrRateLimited, apiErr)
	default:
		return apiErr
	}
}
