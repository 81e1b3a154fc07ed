package upstream

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidConfig   = errors.New("upstream: invalid configuration")
	ErrInvalidResponse = errors.New("upstream: response body is not valid JSON")
)

// StatusError is returned when the upstream answers with a non-2xx status
type StatusError struct {
	Path       string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("upstream %s returned status %d: %s", e.Path, e.StatusCode, e.Body)
}

// IsStatusError reports whether err carries an upstream status error
func IsStatusError(err error) bool {
	var se *StatusError
	return errors.As(err, &se)
}
