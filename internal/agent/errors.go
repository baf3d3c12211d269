package agent

// notReadyError signals that the backend has not finished initializing, so
// the HTTP layer can return 503 instead of 500.
type notReadyError struct{}

func (notReadyError) Error() string { return "agent backend is not ready yet" }

// ErrNotReady constructs a notReadyError.
func ErrNotReady() error { return notReadyError{} }

// IsNotReady reports whether err indicates the backend is still initializing.
func IsNotReady(err error) bool {
	_, ok := err.(notReadyError)
	return ok
}
