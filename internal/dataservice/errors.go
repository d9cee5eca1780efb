package dataservice

import "errors"

// ErrNotFound is returned when a transport definitively reports that the
// requested item does not exist. It is not a transport failure: lookup
// misses do not trigger fallback to the next transport.
var ErrNotFound = errors.New("not found")

// NetworkError wraps connectivity and availability failures. These are the
// errors that move the service on to the next transport.
type NetworkError struct {
	Transport string
	Err       error
}

func (e *NetworkError) Error() string {
	return "network error on " + e.Transport + ": " + e.Err.Error()
}

func (e *NetworkError) Unwrap() error { return e.Err }

// AuthorizationError reports that the caller is not allowed to perform the
// operation. It propagates immediately: retrying another transport would
// not change the answer.
type AuthorizationError struct {
	Transport string
	Message   string
}

func (e *AuthorizationError) Error() string {
	return "authorization failed on " + e.Transport + ": " + e.Message
}

// ValidationError reports that the request itself is malformed. Like
// authorization failures it propagates immediately.
type ValidationError struct {
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	if e.Err != nil {
		return "validation failed: " + e.Err.Error()
	}
	return "validation failed: " + e.Message
}

func (e *ValidationError) Unwrap() error { return e.Err }

// fatal reports whether an error should stop the fallback chain instead of
// advancing it.
func fatal(err error) bool {
	var authErr *AuthorizationError
	var valErr *ValidationError
	return errors.As(err, &authErr) || errors.As(err, &valErr) || errors.Is(err, ErrNotFound)
}
