package order

import (
	"errors"
	"fmt"
)

// ErrNetwork marks transport-level failures talking to the storefront
// API. Wrap it so callers can classify with errors.Is.
var ErrNetwork = errors.New("storefront api unreachable")

// FetchError is returned when the storefront API answers with a
// non-2xx status.
type FetchError struct {
	Status int
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("storefront api status %d", e.Status)
}

// IsNotFound reports whether err is a 404 from the storefront API.
func IsNotFound(err error) bool {
	var fe *FetchError
	return errors.As(err, &fe) && fe.Status == 404
}
