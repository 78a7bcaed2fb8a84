package pipeline

import (
	"errors"
	"net/http"
)

// Failure kinds. Every error leaving the pipeline matches exactly one of
// these with errors.Is.
var (
	ErrInvalidRequest        = errors.New("invalid request")
	ErrTopicRejected         = errors.New("topic rejected")
	ErrGenerationUnavailable = errors.New("generation unavailable")
	ErrRender                = errors.New("render failed")
	ErrFileNotFound          = errors.New("file not found")
	ErrInternal              = errors.New("internal error")
)

// Error is a classified pipeline failure with a message fit for the client.
type Error struct {
	Kind    error
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Is(target error) bool { return target == e.Kind }

func (e *Error) Unwrap() error { return e.Err }

func invalidRequest(msg string) error {
	return &Error{Kind: ErrInvalidRequest, Message: msg}
}

func topicRejected() error {
	return &Error{Kind: ErrTopicRejected, Message: "This topic is not related to academic studies. Please enter a valid educational topic."}
}

func generationUnavailable(err error) error {
	return &Error{Kind: ErrGenerationUnavailable, Message: "No response from the language model", Err: err}
}

func renderFailed(err error) error {
	return &Error{Kind: ErrRender, Message: "An error occurred: " + err.Error(), Err: err}
}

func fileNotFound() error {
	return &Error{Kind: ErrFileNotFound, Message: "File not found"}
}

func internal(err error) error {
	return &Error{Kind: ErrInternal, Message: "An error occurred: " + err.Error(), Err: err}
}

// StatusCode maps an error to its HTTP status. Unclassified errors are 500.
func StatusCode(err error) int {
	switch {
	case errors.Is(err, ErrInvalidRequest), errors.Is(err, ErrTopicRejected):
		return http.StatusBadRequest
	case errors.Is(err, ErrFileNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Message is the client-facing text for err.
func Message(err error) string {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Message
	}
	return "An error occurred: " + err.Error()
}
