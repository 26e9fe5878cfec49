package extract

import "fmt"

// ErrorKind classifies extraction failures so callers can map them to
// the right status code and user message.
type ErrorKind string

const (
	// ErrKindTransport covers provider call failures (network, auth, quota).
	ErrKindTransport ErrorKind = "transport"
	// ErrKindParse covers replies that are not valid JSON objects.
	ErrKindParse ErrorKind = "parse"
	// ErrKindValidate covers invalid requests (no image, no fields,
	// unknown provider) rejected before any model call.
	ErrKindValidate ErrorKind = "validate"
	// ErrKindReply covers parseable replies rejected by strict key
	// validation. The request was fine; the model broke the contract.
	ErrKindReply ErrorKind = "reply"
	// ErrKindEmpty covers empty or whitespace-only replies.
	ErrKindEmpty ErrorKind = "empty"
)

// Error is an extraction failure with a classified kind.
type Error struct {
	Kind   ErrorKind
	Reason string
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("extract: %s: %v", e.Reason, e.Err)
	}
	return "extract: " + e.Reason
}

func (e *Error) Unwrap() error { return e.Err }
