package xhttp

import (
	"fmt"
	"net/http"

	"github.com/memberwise/memberful-go/internal/version"
)

type userAgentTransport struct {
	base http.RoundTripper
}

var _ http.RoundTripper = (*userAgentTransport)(nil)

func (t *userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req.Header.Set("User-Agent", "memberful-go/"+version.Get())
	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return nil, fmt.Errorf("failed to perform round trip: %w", err)
	}
	return resp, nil
}

// NewTransport returns an http.RoundTripper that identifies the client.
func NewTransport() http.RoundTripper {
	return &userAgentTransport{base: http.DefaultTransport}
}
