package capture

import "errors"

var (
	ErrEmailRequired      = errors.New("Email is required")
	ErrEmailInvalidFormat = errors.New("Please enter a valid email address")
	ErrEmailAlreadyExists = errors.New("This email is already on the waitlist!")
	ErrSubmitDisabled     = errors.New("capture: submission already in progress")
	ErrClosed             = errors.New("capture: form closed")
)

const genericSubmitMessage = "Failed to submit email. Please try again."

// SubmissionError is any failed submission other than a conflict. Message is
// the server-provided error string when there was one.
type SubmissionError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *SubmissionError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return genericSubmitMessage
}

func (e *SubmissionError) Unwrap() error {
	return e.Err
}

// userMessage is the inline text shown under the input for err.
func userMessage(err error) string {
	var submissionErr *SubmissionError
	if errors.As(err, &submissionErr) {
		return submissionErr.Error()
	}
	switch {
	case errors.Is(err, ErrEmailRequired),
		errors.Is(err, ErrEmailInvalidFormat),
		errors.Is(err, ErrEmailAlreadyExists):
		return err.Error()
	default:
		return genericSubmitMessage
	}
}
