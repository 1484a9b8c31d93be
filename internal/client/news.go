package client

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/redmine-client/internal/http"
	"github.com/fivetwenty-io/redmine-client/pkg/redmine"
)

// NewsClient implements redmine.NewsClient.
type NewsClient struct {
	httpClient *http.Client
}

// NewNewsClient creates a new news client.
func NewNewsClient(httpClient *http.Client) *NewsClient {
	return &NewsClient{
		httpClient: httpClient,
	}
}

// List implements redmine.NewsClient.List.
func (c *NewsClient) List(ctx context.Context) (redmine.JSON, error) {
	resp, err := c.httpClient.Get(ctx, "/news.json", nil)
	if err != nil {
		return nil, fmt.Errorf("listing news: %w", err)
	}

	return resp, nil
}

// ProjectList implements redmine.NewsClient.ProjectList.
func (c *NewsClient) ProjectList(ctx context.Context, projectID string) (redmine.JSON, error) {
	resp, err := c.httpClient.Get(ctx, projectScoped(projectID, "news.json"), nil)
	if err != nil {
		return nil, fmt.Errorf("listing project news: %w", err)
	}

	return resp, nil
}
