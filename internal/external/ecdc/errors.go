package ecdc

import (
	"errors"
	"fmt"
)

// ErrUnknownCategory is returned for a category the endpoint does not serve
var ErrUnknownCategory = errors.New("unknown ECDC category")

// ConnectivityError means the endpoint could not be reached at all
type ConnectivityError struct {
	URL    string
	Reason string
	Err    error
}

func (e *ConnectivityError) Error() string {
	return fmt.Sprintf("connection error: %s", e.Reason)
}

func (e *ConnectivityError) Unwrap() error {
	return e.Err
}

// StatusError is a non-200 answer from the endpoint
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status code %d from %s", e.StatusCode, e.URL)
}
