package api

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	go_json "github.com/goccy/go-json"
)

// APIError is an HTTP status failure from the platform. RetryAfter is set
// from rate-limit headers on 429 responses.
type APIError struct {
	StatusCode int
	Message    string
	RetryAfter time.Duration
}

func (e *APIError) Error() string {
	return fmt.Sprintf("memberful api: %d %s", e.StatusCode, e.Message)
}

// TransportError is a network-layer failure: no usable HTTP response was
// obtained. Distinguished from validation errors so retry logic never
// retries the latter.
type TransportError struct {
	Cause error
}

func (e *TransportError) Error() string {
	return "transport: " + e.Cause.Error()
}

func (e *TransportError) Unwrap() error { return e.Cause }

// RetryExhaustedError reports that the retry budget ran out on a transient
// failure. Cause is the last attempt's error.
type RetryExhaustedError struct {
	Attempts int
	Cause    error
}

func (e *RetryExhaustedError) Error() string {
	return fmt.Sprintf("retry budget exhausted after %d attempts: %v", e.Attempts, e.Cause)
}

func (e *RetryExhaustedError) Unwrap() error { return e.Cause }

// GraphQLError aggregates a response's errors array into one failure.
type GraphQLError struct {
	Messages []string
}

func (e *GraphQLError) Error() string {
	return "graphql: " + strings.Join(e.Messages, "; ")
}

func parseAPIError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	if resp.StatusCode == http.StatusTooManyRequests {
		apiErr.RetryAfter = retryAfter(resp.Header)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		apiErr.Message = resp.Status
		return apiErr
	}

	var errResp struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}

	if err := go_json.Unmarshal(body, &errResp); err != nil {
		apiErr.Message = strings.TrimSpace(string(body))
		if apiErr.Message == "" {
			apiErr.Message = resp.Status
		}
		return apiErr
	}

	msg := errResp.Message
	if msg == "" {
		msg = errResp.Error
	}
	if msg == "" {
		msg = resp.Status
	}

	apiErr.Message = msg
	return apiErr
}
