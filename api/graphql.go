package api

import (
	"context"
	"fmt"
	"net/http"

	go_json "github.com/goccy/go-json"
)

const graphQLRoute = "/api/graphql"

type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type graphQLResponse struct {
	Data   go_json.RawMessage `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// GraphQL posts a query to the platform's GraphQL endpoint and decodes the
// data payload into out (which may be nil). A non-empty errors array is
// translated into a single *GraphQLError.
func (c *Client) GraphQL(ctx context.Context, query string, variables map[string]any, out any) error {
	body, err := go_json.Marshal(graphQLRequest{Query: query, Variables: variables})
	if err != nil {
		return fmt.Errorf("encoding query: %w", err)
	}

	var resp graphQLResponse
	if err := c.do(ctx, http.MethodPost, graphQLRoute, nil, body, &resp); err != nil {
		return err
	}

	if len(resp.Errors) > 0 {
		messages := make([]string, len(resp.Errors))
		for i, e := range resp.Errors {
			messages[i] = e.Message
		}
		return &GraphQLError{Messages: messages}
	}

	if out != nil && len(resp.Data) > 0 {
		if err := go_json.Unmarshal(resp.Data, out); err != nil {
			return fmt.Errorf("decoding data: %w", err)
		}
	}

	return nil
}
