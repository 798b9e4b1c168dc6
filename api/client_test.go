package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

const testMemberJSON = `{"id":1,"email":"john@example.com","created_at":1410000000,"full_name":"John Doe"}`

func memberListBody(count, totalCount, totalPages, currentPage int) string {
	members := make([]string, count)
	for i := range members {
		members[i] = fmt.Sprintf(`{"id":%d,"email":"m%d@example.com","created_at":1410000000}`, currentPage*100+i, i)
	}
	return fmt.Sprintf(`{"members":[%s],"total_count":%d,"total_pages":%d,"current_page":%d,"per_page":100}`,
		strings.Join(members, ","), totalCount, totalPages, currentPage)
}

func newTestClient(t *testing.T, handler http.HandlerFunc, opts ...Option) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	opts = append([]Option{
		WithBaseURL(server.URL),
		WithRetry(3, time.Millisecond),
		WithPageDelay(time.Millisecond),
	}, opts...)
	return NewWithAPIKey("test-key", opts...)
}

func TestClientSendsBearerToken(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("Authorization = %q, want %q", got, "Bearer test-key")
		}
		if got := r.Header.Get("Accept"); got != "application/json" {
			t.Errorf("Accept = %q, want %q", got, "application/json")
		}
		if got := r.Header.Get("User-Agent"); !strings.HasPrefix(got, "memberful-go/") {
			t.Errorf("User-Agent = %q, want memberful-go/ prefix", got)
		}
		fmt.Fprint(w, testMemberJSON)
	})

	member, err := client.Members.Get(context.Background(), 1)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if member.ID != 1 || member.Email != "john@example.com" {
		t.Errorf("unexpected member: %+v", member)
	}
}

type markingTransport struct {
	base http.RoundTripper
	hits atomic.Int32
}

func (t *markingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	t.hits.Add(1)
	return t.base.RoundTrip(req)
}

func TestClientKeepsCallerTransport(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("Authorization = %q, want %q", got, "Bearer test-key")
		}
		fmt.Fprint(w, testMemberJSON)
	}))
	t.Cleanup(server.Close)

	marking := &markingTransport{base: http.DefaultTransport}
	supplied := &http.Client{Transport: marking}

	client := NewWithAPIKey("test-key",
		WithBaseURL(server.URL),
		WithHTTPClient(supplied),
	)

	if _, err := client.Members.Get(context.Background(), 1); err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got := marking.hits.Load(); got != 1 {
		t.Errorf("caller transport hits = %d, want 1", got)
	}
	// the caller's client must not be rewired
	if supplied.Transport != http.RoundTripper(marking) {
		t.Error("supplied client transport was replaced")
	}
}

func TestMembersList(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/members" {
			t.Errorf("path = %q, want /v1/members", r.URL.Path)
		}
		if got := r.URL.Query().Get("page"); got != "2" {
			t.Errorf("page = %q, want 2", got)
		}
		if got := r.URL.Query().Get("per_page"); got != "50" {
			t.Errorf("per_page = %q, want 50", got)
		}
		fmt.Fprint(w, memberListBody(2, 102, 3, 2))
	})

	page, err := client.Members.List(context.Background(), &ListParams{Page: 2, PerPage: 50})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(page.Records) != 2 {
		t.Errorf("len(Records) = %d, want 2", len(page.Records))
	}
	if page.TotalCount != 102 || page.TotalPages != 3 || page.CurrentPage != 2 {
		t.Errorf("unexpected pagination: %+v", page)
	}
	if !page.HasMore() {
		t.Error("HasMore() = false, want true")
	}
}

func TestMembersListAllPagesUntilDone(t *testing.T) {
	t.Parallel()

	var pagesServed atomic.Int32

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		pagesServed.Add(1)
		switch r.URL.Query().Get("page") {
		case "1":
			fmt.Fprint(w, memberListBody(2, 3, 2, 1))
		case "2":
			fmt.Fprint(w, memberListBody(1, 3, 2, 2))
		default:
			t.Errorf("unexpected page %q", r.URL.Query().Get("page"))
		}
	})

	members, err := client.Members.ListAll(context.Background())
	if err != nil {
		t.Fatalf("ListAll() error = %v", err)
	}
	if len(members) != 3 {
		t.Errorf("len(members) = %d, want 3", len(members))
	}
	if got := pagesServed.Load(); got != 2 {
		t.Errorf("pages served = %d, want 2", got)
	}
}

func TestClientRetriesServerErrors(t *testing.T) {
	t.Parallel()

	var attempts atomic.Int32

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if attempts.Add(1) < 3 {
			http.Error(w, `{"error":"try later"}`, http.StatusBadGateway)
			return
		}
		fmt.Fprint(w, testMemberJSON)
	})

	if _, err := client.Members.Get(context.Background(), 1); err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got := attempts.Load(); got != 3 {
		t.Errorf("attempts = %d, want 3", got)
	}
}

func TestClientRetryBudgetExhausted(t *testing.T) {
	t.Parallel()

	var attempts atomic.Int32

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		http.Error(w, `{"error":"down"}`, http.StatusInternalServerError)
	})

	_, err := client.Members.Get(context.Background(), 1)
	var rerr *RetryExhaustedError
	if !errors.As(err, &rerr) {
		t.Fatalf("Get() error = %v, want *RetryExhaustedError", err)
	}
	if rerr.Attempts != 3 {
		t.Errorf("Attempts = %d, want 3", rerr.Attempts)
	}
	var aerr *APIError
	if !errors.As(err, &aerr) || aerr.StatusCode != http.StatusInternalServerError {
		t.Errorf("cause = %v, want wrapped 500 APIError", rerr.Cause)
	}
	if got := attempts.Load(); got != 3 {
		t.Errorf("attempts = %d, want 3", got)
	}
}

func TestClientDoesNotRetryClientErrors(t *testing.T) {
	t.Parallel()

	var attempts atomic.Int32

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		http.Error(w, `{"message":"no such member"}`, http.StatusNotFound)
	})

	_, err := client.Members.Get(context.Background(), 404)
	var aerr *APIError
	if !errors.As(err, &aerr) {
		t.Fatalf("Get() error = %v, want *APIError", err)
	}
	if aerr.StatusCode != http.StatusNotFound {
		t.Errorf("StatusCode = %d, want 404", aerr.StatusCode)
	}
	if aerr.Message != "no such member" {
		t.Errorf("Message = %q, want %q", aerr.Message, "no such member")
	}
	if got := attempts.Load(); got != 1 {
		t.Errorf("attempts = %d, want 1", got)
	}
}

func TestClientHonorsRetryAfterOn429(t *testing.T) {
	t.Parallel()

	var attempts atomic.Int32
	start := time.Now()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if attempts.Add(1) == 1 {
			w.Header().Set("Retry-After", "1")
			http.Error(w, `{"error":"rate limited"}`, http.StatusTooManyRequests)
			return
		}
		fmt.Fprint(w, testMemberJSON)
	})

	if _, err := client.Members.Get(context.Background(), 1); err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if elapsed := time.Since(start); elapsed < time.Second {
		t.Errorf("elapsed = %v, want at least the Retry-After second", elapsed)
	}
}

func TestSubscriptionsListMemberFilter(t *testing.T) {
	t.Parallel()

	subBody := `{"id":9,"active":true,"autorenew":false,"created_at":"2022-01-01T00:00:00Z","expires_at":"2023-01-01T00:00:00Z","member":` + testMemberJSON + `,"subscription_plan":{"id":2,"name":"Pro","slug":"pro"}}`

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/subscriptions" {
			t.Errorf("path = %q, want /v1/subscriptions", r.URL.Path)
		}
		if got := r.URL.Query().Get("member_id"); got != "1" {
			t.Errorf("member_id = %q, want 1", got)
		}
		fmt.Fprintf(w, `{"subscriptions":[%s],"total_count":1,"total_pages":1,"current_page":1,"per_page":100}`, subBody)
	})

	memberID := int64(1)
	page, err := client.Subscriptions.List(context.Background(), &SubscriptionListParams{MemberID: &memberID})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(page.Records) != 1 {
		t.Fatalf("len(Records) = %d, want 1", len(page.Records))
	}
	if page.Records[0].Plan.Name != "Pro" || page.Records[0].Member.ID != 1 {
		t.Errorf("unexpected subscription: %+v", page.Records[0])
	}
	if page.HasMore() {
		t.Error("HasMore() = true, want false")
	}
}

func TestGraphQL(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/graphql" {
			t.Errorf("path = %q, want /api/graphql", r.URL.Path)
		}
		if r.Method != http.MethodPost {
			t.Errorf("method = %q, want POST", r.Method)
		}
		fmt.Fprint(w, `{"data":{"member":{"id":"1","email":"john@example.com"}}}`)
	})

	var out struct {
		Member struct {
			ID    string `json:"id"`
			Email string `json:"email"`
		} `json:"member"`
	}
	err := client.GraphQL(context.Background(), `query { member(id: 1) { id email } }`, nil, &out)
	if err != nil {
		t.Fatalf("GraphQL() error = %v", err)
	}
	if out.Member.Email != "john@example.com" {
		t.Errorf("email = %q", out.Member.Email)
	}
}

func TestGraphQLErrors(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data":null,"errors":[{"message":"field does not exist"},{"message":"syntax error"}]}`)
	})

	err := client.GraphQL(context.Background(), `query { nope }`, nil, nil)
	var gerr *GraphQLError
	if !errors.As(err, &gerr) {
		t.Fatalf("GraphQL() error = %v, want *GraphQLError", err)
	}
	if len(gerr.Messages) != 2 {
		t.Errorf("Messages = %v, want 2 entries", gerr.Messages)
	}
}

func TestClientRetriesTransportErrors(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // connection refused from here on

	client := NewWithAPIKey("test-key",
		WithBaseURL(server.URL),
		WithRetry(2, time.Millisecond),
	)

	_, err := client.Members.Get(context.Background(), 1)
	var rerr *RetryExhaustedError
	if !errors.As(err, &rerr) {
		t.Fatalf("Get() error = %v, want *RetryExhaustedError", err)
	}
	var terr *TransportError
	if !errors.As(err, &terr) {
		t.Errorf("cause = %v, want wrapped *TransportError", rerr.Cause)
	}
}
