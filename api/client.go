package api

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	go_json "github.com/goccy/go-json"
	"golang.org/x/oauth2"

	"github.com/memberwise/memberful-go/internal/xhttp"
	"github.com/memberwise/memberful-go/internal/xslog"
)

const DefaultBaseURL = "https://api.memberful.com"

const (
	defaultMaxAttempts = 3
	defaultBackoff     = time.Second
	defaultPageDelay   = 500 * time.Millisecond
)

// Client is a read client for the platform's member and subscription data.
// Requests authenticate with a bearer token; transient failures (transport
// errors, 429, 5xx) are retried within a bounded budget, validation and
// other client errors never are.
type Client struct {
	Members       MemberService
	Subscriptions SubscriptionService

	baseURL     string
	httpClient  *http.Client
	logger      *slog.Logger
	maxAttempts int
	backoff     time.Duration
	pageDelay   time.Duration
}

func New(tokenSource oauth2.TokenSource, opts ...Option) *Client {
	cfg := &clientConfig{
		baseURL:     DefaultBaseURL,
		tokenSource: tokenSource,
		logger:      slog.Default(),
		maxAttempts: defaultMaxAttempts,
		backoff:     defaultBackoff,
		pageDelay:   defaultPageDelay,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	var httpClient *http.Client
	if cfg.httpClient != nil {
		// copy so the caller's client is left untouched, and keep its
		// transport underneath the auth layer
		clone := *cfg.httpClient
		base := clone.Transport
		if base == nil {
			base = xhttp.NewTransport()
		}
		clone.Transport = &memberfulTransport{base: base, tokenSource: cfg.tokenSource}
		httpClient = &clone
	} else {
		httpClient = xhttp.NewHTTPClient(xhttp.WithTimeout(cfg.timeout))
		httpClient.Transport = &memberfulTransport{
			base:        httpClient.Transport,
			tokenSource: cfg.tokenSource,
		}
	}

	c := &Client{
		baseURL:     cfg.baseURL,
		httpClient:  httpClient,
		logger:      cfg.logger,
		maxAttempts: cfg.maxAttempts,
		backoff:     cfg.backoff,
		pageDelay:   cfg.pageDelay,
	}

	c.Members = &memberService{client: c}
	c.Subscriptions = &subscriptionService{client: c}

	return c
}

// NewWithAPIKey wraps a static API key in a token source. Memberful API
// keys are plain bearer tokens that never expire on their own.
func NewWithAPIKey(apiKey string, opts ...Option) *Client {
	return New(oauth2.StaticTokenSource(&oauth2.Token{AccessToken: apiKey}), opts...)
}

type clientConfig struct {
	baseURL     string
	tokenSource oauth2.TokenSource
	httpClient  *http.Client
	logger      *slog.Logger
	timeout     time.Duration
	maxAttempts int
	backoff     time.Duration
	pageDelay   time.Duration
}

type Option func(*clientConfig)

func WithBaseURL(baseURL string) Option {
	return func(cfg *clientConfig) { cfg.baseURL = baseURL }
}

func WithHTTPClient(httpClient *http.Client) Option {
	return func(cfg *clientConfig) { cfg.httpClient = httpClient }
}

func WithLogger(logger *slog.Logger) Option {
	return func(cfg *clientConfig) { cfg.logger = logger }
}

func WithTimeout(d time.Duration) Option {
	return func(cfg *clientConfig) { cfg.timeout = d }
}

// WithRetry bounds the retry budget: at most maxAttempts total attempts,
// waiting backoff (doubling per attempt) between them.
func WithRetry(maxAttempts int, backoff time.Duration) Option {
	return func(cfg *clientConfig) {
		cfg.maxAttempts = maxAttempts
		cfg.backoff = backoff
	}
}

// WithPageDelay sets the pause between pages in ListAll calls, a courtesy
// to the platform's rate limits.
func WithPageDelay(d time.Duration) Option {
	return func(cfg *clientConfig) { cfg.pageDelay = d }
}

// do runs one logical request with the retry budget applied. body may be
// nil; it is replayed from the same bytes on each attempt.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body []byte, result any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	for attempt := 1; ; attempt++ {
		err := c.doOnce(ctx, method, u, body, result)
		if err == nil {
			return nil
		}
		if !retryable(err) {
			return err
		}
		if attempt >= c.maxAttempts {
			return &RetryExhaustedError{Attempts: attempt, Cause: err}
		}

		wait := retryWait(err, c.backoff<<(attempt-1))
		c.logger.WarnContext(ctx, "retrying request",
			xslog.Error(err),
			slog.String("method", method),
			slog.String("path", path),
			slog.Int("attempt", attempt),
			slog.Duration("wait", wait),
		)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}
}

func (c *Client) doOnce(ctx context.Context, method, u string, body []byte, result any) error {
	var reqBody io.Reader
	if body != nil {
		reqBody = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	if body != nil {
		req.Header.Set(xhttp.ContentType, "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &TransportError{Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return parseAPIError(resp)
	}

	if result != nil && resp.StatusCode != http.StatusNoContent {
		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return &TransportError{Cause: fmt.Errorf("reading response: %w", err)}
		}
		if err := go_json.Unmarshal(data, result); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}

	return nil
}

// retryable reports whether an error is transient. Decode and 4xx failures
// are never retried.
func retryable(err error) bool {
	var terr *TransportError
	if errors.As(err, &terr) {
		return true
	}
	var aerr *APIError
	if errors.As(err, &aerr) {
		return aerr.StatusCode == http.StatusTooManyRequests || aerr.StatusCode >= 500
	}
	return false
}

// retryWait honors a server-provided Retry-After over the local backoff.
func retryWait(err error, backoff time.Duration) time.Duration {
	var aerr *APIError
	if errors.As(err, &aerr) && aerr.RetryAfter > 0 {
		return aerr.RetryAfter
	}
	return backoff
}

type memberfulTransport struct {
	base        http.RoundTripper
	tokenSource oauth2.TokenSource
}

var _ http.RoundTripper = (*memberfulTransport)(nil)

func (t *memberfulTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	token, err := t.tokenSource.Token()
	if err != nil {
		return nil, fmt.Errorf("getting token: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+token.AccessToken)
	req.Header.Set("Accept", "application/json")

	return t.base.RoundTrip(req)
}
