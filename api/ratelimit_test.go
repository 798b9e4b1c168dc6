package api

import (
	"net/http"
	"testing"
	"time"
)

func TestParseRateLimitHeaders(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		headers http.Header
		want    *RateLimitInfo
		wantErr bool
	}{
		{
			name: "complete headers",
			headers: http.Header{
				limitHeaderKey:     []string{"60"},
				remainingHeaderKey: []string{"59"},
				resetHeaderKey:     []string{"30"},
			},
			want: &RateLimitInfo{Limit: 60, Remaining: 59, Reset: 30 * time.Second},
		},
		{
			name:    "absent headers",
			headers: http.Header{},
			want:    nil,
		},
		{
			name: "partial headers",
			headers: http.Header{
				limitHeaderKey: []string{"60"},
			},
			want: nil,
		},
		{
			name: "malformed limit",
			headers: http.Header{
				limitHeaderKey:     []string{"sixty"},
				remainingHeaderKey: []string{"59"},
				resetHeaderKey:     []string{"30"},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := ParseRateLimitHeaders(tt.headers)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseRateLimitHeaders() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if tt.want == nil {
				if got != nil {
					t.Errorf("ParseRateLimitHeaders() = %+v, want nil", got)
				}
				return
			}
			if got == nil || *got != *tt.want {
				t.Errorf("ParseRateLimitHeaders() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestRetryAfter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		headers http.Header
		want    time.Duration
	}{
		{
			name:    "retry-after header",
			headers: http.Header{retryAfterKey: []string{"12"}},
			want:    12 * time.Second,
		},
		{
			name: "falls back to reset",
			headers: http.Header{
				limitHeaderKey:     []string{"60"},
				remainingHeaderKey: []string{"0"},
				resetHeaderKey:     []string{"45"},
			},
			want: 45 * time.Second,
		},
		{
			name:    "no hints",
			headers: http.Header{},
			want:    0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := retryAfter(tt.headers); got != tt.want {
				t.Errorf("retryAfter() = %v, want %v", got, tt.want)
			}
		})
	}
}
