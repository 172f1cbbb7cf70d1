package weather

import (
	"errors"
	"fmt"
)

// ErrAPIKeyMissing indicates the upstream API key is not configured. No
// network call is attempted when this is returned.
var ErrAPIKeyMissing = errors.New("weather api key is not configured")

// APIRequestError wraps a transport-level or unexpected-status failure from
// the upstream weather API. An HTTP 400 from upstream is not an error; it
// signals "location not found" and is reported as an absent result instead.
type APIRequestError struct {
	Endpoint string
	Status   int
	Err      error
}

func (e *APIRequestError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("weather api request to %s failed with status %d", e.Endpoint, e.Status)
	}
	return fmt.Sprintf("weather api request to %s failed: %v", e.Endpoint, e.Err)
}

func (e *APIRequestError) Unwrap() error {
	return e.Err
}
