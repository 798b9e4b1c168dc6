package xhttp

import (
	"net/http"
	"time"
)

type ClientOption func(*http.Client)

// WithTimeout bounds the total time for a request, zero means no limit.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *http.Client) { c.Timeout = d }
}

// NewHTTPClient returns a client whose transport identifies this library.
func NewHTTPClient(opts ...ClientOption) *http.Client {
	c := &http.Client{Transport: NewTransport()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}
