package domain

import "errors"

// Domain errors represent pipeline failures.
// These are distinct from infrastructure errors.
var (
	// ErrTransport indicates the generation backend was unreachable,
	// rejected the request, or returned empty content. Retryable.
	ErrTransport = errors.New("generation transport failure")

	// ErrParse indicates no JSON object could be located in the backend
	// output, or the located span was not valid JSON. Retryable.
	ErrParse = errors.New("response parse failure")

	// ErrValidation indicates a structurally valid JSON document that
	// does not conform to the section schema. Carries the violation list
	// via ValidationError. Retryable.
	ErrValidation = errors.New("document validation failure")

	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrLLMUnavailable indicates no generation backend is configured.
	ErrLLMUnavailable = errors.New("LLM service unavailable")
)

// ValidationError carries the specific violations found by the schema
// validator. It unwraps to ErrValidation so callers can errors.Is it.
type ValidationError struct {
	Violations []string
}

// Error joins the violations into one informative string.
func (e *ValidationError) Error() string {
	if len(e.Violations) == 0 {
		return ErrValidation.Error()
	}
	msg := "document validation failed: "
	for i, v := range e.Violations {
		if i > 0 {
			msg += "; "
		}
		msg += v
	}
	return msg
}

// Unwrap lets errors.Is(err, ErrValidation) work.
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}
