package device

import (
	"errors"
	"fmt"
)

var (
	// ErrBadStatus matches any *StatusError.
	ErrBadStatus = errors.New("device responded with non-OK status")
	// ErrDecode is returned when the body is not a JSON object.
	ErrDecode = errors.New("device payload is not a JSON object")
)

// StatusError carries the HTTP status of a non-2xx device response.
type StatusError struct {
	StatusCode int
	Status     string
	URL        string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("device %s: %s", e.URL, e.Status)
}

// Is lets errors.Is(err, ErrBadStatus) match.
func (e *StatusError) Is(target error) bool {
	return target == ErrBadStatus
}
