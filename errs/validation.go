package errs

import (
	"net/http"
	"strings"
)

// ValidationError aggregates every rule violation found in a submission so a
// client can fix all of them in one round trip. It is never fail-fast: the
// validator keeps checking after the first violation.
type ValidationError struct {
	Messages []string
}

func NewValidationError(messages ...string) *ValidationError {
	return &ValidationError{Messages: messages}
}

func (e *ValidationError) Error() string {
	return "validation error: " + strings.Join(e.Messages, "; ")
}

// StatusCode satisfies the same contract handlers rely on for *ApiErr.
func (e *ValidationError) StatusCode() int {
	return http.StatusBadRequest
}
