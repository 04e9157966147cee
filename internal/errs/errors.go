package errs

import (
	"errors"
	"fmt"
)

// Base errors for the session engine. Callers classify failures with
// errors.Is against these sentinels; the concrete messages wrap them.
var (
	// ErrValidation marks a bad configuration, surfaced before any
	// transition runs. No side effects have happened.
	ErrValidation = errors.New("validation error")

	// ErrNotFound marks an unknown session id.
	ErrNotFound = errors.New("not found")

	// ErrConflict marks a resume on a session that is not awaiting an
	// answer, or a lost concurrency race on the checkpoint version.
	ErrConflict = errors.New("conflict")

	// ErrCollaborator marks a failed or timed-out generation, evaluation
	// or summarization call after retries are exhausted. The checkpoint
	// is unchanged and the call may be retried.
	ErrCollaborator = errors.New("collaborator error")
)

func Validationf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrValidation}, args...)...)
}

func NotFoundf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrNotFound}, args...)...)
}

func Conflictf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrConflict}, args...)...)
}

func Collaboratorf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrCollaborator}, args...)...)
}
