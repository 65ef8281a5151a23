package ddns

import "net/http"

// Kind classifies a client-facing failure.
type Kind int

const (
	KindAuth Kind = iota + 1
	KindValidation
	KindServer
	KindOrchestration
)

func (k Kind) String() string {
	switch k {
	case KindAuth:
		return "auth"
	case KindValidation:
		return "validation"
	case KindServer:
		return "server"
	case KindOrchestration:
		return "orchestration"
	default:
		return "unknown"
	}
}

// Error is a deliberate failure whose status and message are returned to the
// caller verbatim. Any other error reaching the handler is reported as a
// generic 500.
type Error struct {
	Kind    Kind
	Status  int
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// AuthError reports missing, malformed or inactive credentials (401).
func AuthError(message string) *Error {
	return &Error{Kind: KindAuth, Status: http.StatusUnauthorized, Message: message}
}

// ValidationError reports missing or unusable request parameters (422).
func ValidationError(message string) *Error {
	return &Error{Kind: KindValidation, Status: http.StatusUnprocessableEntity, Message: message}
}

// ServerError reports a failure caused by the execution environment rather
// than by the caller's input (500), with a message safe to expose.
func ServerError(message string) *Error {
	return &Error{Kind: KindServer, Status: http.StatusInternalServerError, Message: message}
}

// OrchestrationError reports provider state that prevents a deterministic
// update, such as a missing or ambiguous record (400).
func OrchestrationError(message string) *Error {
	return &Error{Kind: KindOrchestration, Status: http.StatusBadRequest, Message: message}
}
