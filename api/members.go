package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/memberwise/memberful-go/internal/xslog"
	"github.com/memberwise/memberful-go/webhooks"
)

type MemberService interface {
	Get(ctx context.Context, id int64) (*webhooks.Member, error)
	List(ctx context.Context, params *ListParams) (*Page[webhooks.Member], error)

	// ListAll pages through the full collection, pausing between pages.
	ListAll(ctx context.Context) ([]webhooks.Member, error)
}

type memberService struct {
	client *Client
}

func (s *memberService) Get(ctx context.Context, id int64) (*webhooks.Member, error) {
	const route = "/v1/members"
	path := fmt.Sprintf("%s/%d", route, id)

	var member webhooks.Member
	if err := s.client.do(ctx, http.MethodGet, path, nil, nil, &member); err != nil {
		return nil, err
	}
	return &member, nil
}

func (s *memberService) List(ctx context.Context, params *ListParams) (*Page[webhooks.Member], error) {
	const route = "/v1/members"

	var resp struct {
		Members []webhooks.Member `json:"members"`
		pageMeta
	}
	if err := s.client.do(ctx, http.MethodGet, route, params.values(), nil, &resp); err != nil {
		return nil, err
	}

	return &Page[webhooks.Member]{
		Records:     resp.Members,
		TotalCount:  resp.TotalCount,
		TotalPages:  resp.TotalPages,
		CurrentPage: resp.CurrentPage,
		PerPage:     resp.PerPage,
	}, nil
}

func (s *memberService) ListAll(ctx context.Context) ([]webhooks.Member, error) {
	var all []webhooks.Member

	for page := 1; ; page++ {
		resp, err := s.List(ctx, &ListParams{Page: page})
		if err != nil {
			return nil, err
		}
		all = append(all, resp.Records...)

		s.client.logger.DebugContext(ctx, "fetched members page",
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
