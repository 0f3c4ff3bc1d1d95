package httputil

import (
	"net/http"
	"time"
)

const DefaultTimeout = 20 * time.Second

// NewClient returns an HTTP client with the given timeout, falling back to
// DefaultTimeout when zero.
func NewClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &http.Client{
		Timeout: timeout,
	}
}
