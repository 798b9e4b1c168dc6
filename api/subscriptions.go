package api

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/memberwise/memberful-go/internal/xslog"
	"github.com/memberwise/memberful-go/webhooks"
)

// SubscriptionListParams selects a page of subscriptions, optionally
// scoped to one member.
type SubscriptionListParams struct {
	MemberID *int64
	Page     int
	PerPage  int
}

type SubscriptionService interface {
	List(ctx context.Context, params *SubscriptionListParams) (*Page[webhooks.Subscription], error)
	ListAll(ctx context.Context, memberID *int64) ([]webhooks.Subscription, error)
}

type subscriptionService struct {
	client *Client
}

func (s *subscriptionService) List(ctx context.Context, params *SubscriptionListParams) (*Page[webhooks.Subscription], error) {
	const route = "/v1/subscriptions"

	lp := &ListParams{}
	if params != nil {
		lp.Page = params.Page
		lp.PerPage = params.PerPage
	}
	query := lp.values()
	if params != nil && params.MemberID != nil {
		query.Set("member_id", strconv.FormatInt(*params.MemberID, 10))
	}

	var resp struct {
		Subscriptions []webhooks.Subscription `json:"subscriptions"`
		pageMeta
	}
	if err := s.client.do(ctx, http.MethodGet, route, query, nil, &resp); err != nil {
		return nil, err
	}

	return &Page[webhooks.Subscription]{
		Records:     resp.Subscriptions,
		TotalCount:  resp.TotalCount,
		TotalPages:  resp.TotalPages,
		CurrentPage: resp.CurrentPage,
		PerPage:     resp.PerPage,
	}, nil
}

func (s *subscriptionService) ListAll(ctx context.Context, memberID *int64) ([]webhooks.Subscription, error) {
	var all []webhooks.Subscription

	for page := 1; ; page++ {
		resp, err := s.List(ctx, &SubscriptionListParams{MemberID: memberID, Page: page})
		if err != nil {
			return nil, err
		}
		all = append(all, resp.Records...)

		s.client.logger.DebugContext(ctx, "fetched subscriptions page",
			xslog.Page(page), xslog.Count(len(resp.Records)))

		if !resp.HasMore() || len(resp.Records) == 0 {
			return all, nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(s.client.pageDelay):
		}
	}
}
