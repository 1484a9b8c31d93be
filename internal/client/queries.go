package client

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/redmine-client/internal/http"
	"github.com/fivetwenty-io/redmine-client/pkg/redmine"
)

// QueriesClient implements redmine.QueriesClient.
type QueriesClient struct {
	httpClient *http.Client
}

// NewQueriesClient creates a new queries client.
func NewQueriesClient(httpClient *http.Client) *QueriesClient {
	return &QueriesClient{
		httpClient: httpClient,
	}
}

// List implements redmine.QueriesClient.List.
func (c *QueriesClient) List(ctx context.Context, filters *redmine.Group) (redmine.JSON, error) {
	resp, err := c.httpClient.Get(ctx, "/queries.json", redmine.BuildQueryParameters(filters))
	if err != nil {
		return nil, fmt.Errorf("listing queries: %w", err)
	}

	return resp, nil
}
