package device

import (
	"errors"
	"fmt"
)

var (
	// ErrTransport wraps failures where no response arrived.
	ErrTransport = errors.New("device unreachable")
	// ErrDecode is returned when the device answered with something that is not valid JSON.
	ErrDecode = errors.New("invalid response from device")
)

// APIError is an explicit {success:false} answer. Reason may be empty.
type APIError struct {
	Reason string
}

func (e *APIError) Error() string {
	if e.Reason == "" {
		return "device rejected the request"
	}
	return fmt.Sprintf("device rejected the request: %s", e.Reason)
}

// Reason extracts the device-supplied failure reason from err, if any.
func Reason(err error) (string, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Reason, true
	}
	return "", false
}
