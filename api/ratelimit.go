package api

import (
	"net/http"
	"strconv"
	"time"
)

// RateLimitInfo holds the platform's rate-limit headers from one response.
type RateLimitInfo struct {
	Limit     int           // requests allowed in the current window
	Remaining int           // requests left in the current window
	Reset     time.Duration // time until the window resets
}

const (
	limitHeaderKey     = "X-Ratelimit-Limit"
	remainingHeaderKey = "X-Ratelimit-Remaining"
	resetHeaderKey     = "X-Ratelimit-Reset"
	retryAfterKey      = "Retry-After"
)

// ParseRateLimitHeaders extracts rate-limit information from response
// headers. Returns nil when the headers are absent or incomplete.
func ParseRateLimitHeaders(headers http.Header) (*RateLimitInfo, error) {
	var (
		limitStr     = headers.Get(limitHeaderKey)
		remainingStr = headers.Get(remainingHeaderKey)
		resetStr     = headers.Get(resetHeaderKey)
	)

	if limitStr == "" || remainingStr == "" || resetStr == "" {
		return nil, nil
	}

	limit, err := strconv.Atoi(limitStr)
	if err != nil {
		return nil, err
	}

	remaining, err := strconv.Atoi(remainingStr)
	if err != nil {
		return nil, err
	}

	resetSeconds, err := strconv.ParseInt(resetStr, 10, 64)
	if err != nil {
		return nil, err
	}

	return &RateLimitInfo{
		Limit:     limit,
		Remaining: remaining,
		Reset:     time.Duration(resetSeconds) * time.Second,
	}, nil
}

// retryAfter picks a wait hint out of a 429 response: Retry-After when
// present, otherwise the rate-limit reset.
func retryAfter(headers http.Header) time.Duration {
	if s := headers.Get(retryAfterKey); s != "" {
		if seconds, err := strconv.ParseInt(s, 10, 64); err == nil && seconds > 0 {
			return time.Duration(seconds) * time.Second
		}
	}
	if info, err := ParseRateLimitHeaders(headers); err == nil && info != nil {
		return info.Reset
	}
	return 0
}
