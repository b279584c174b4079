package recordstore

import (
	"fmt"
	"net/http"

	"github.com/namuve/frontdesk/internal/domain/record"
)

// StoreError is returned for every failed store call. StatusCode is zero when
// the request never produced a response.
type StoreError struct {
	Op         string
	StatusCode int
	Body       string
	Err        error
}

func (e *StoreError) Error() string {
	msg := "store " + e.Op
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(": status %d", e.StatusCode)
	}
	switch {
	case e.Body != "":
		msg += ": " + e.Body
	case e.Err != nil:
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// NotFound lets record.IsNotFound detect 404s without importing this package.
func (e *StoreError) NotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// Detail is the text surfaced to API clients: the upstream body when there is
// one, else the transport error.
func (e *StoreError) Detail() string {
	if e.Body != "" {
		return e.Body
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return http.StatusText(e.StatusCode)
}

// IsNotFound reports whether err is a store 404.
func IsNotFound(err error) bool {
	return record.IsNotFound(err)
}
