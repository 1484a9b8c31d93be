package client

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/redmine-client/internal/http"
	"github.com/fivetwenty-io/redmine-client/pkg/redmine"
)

// IssueStatusesClient implements redmine.IssueStatusesClient.
type IssueStatusesClient struct {
	httpClient *http.Client
}

// NewIssueStatusesClient creates a new issue statuses client.
func NewIssueStatusesClient(httpClient *http.Client) *IssueStatusesClient {
	return &IssueStatusesClient{
		httpClient: httpClient,
	}
}

// List implements redmine.IssueStatusesClient.List.
func (c *IssueStatusesClient) List(ctx context.Context) (redmine.JSON, error) {
	resp, err := c.httpClient.Get(ctx, "/issue_statuses.json", nil)
	if err != nil {
		return nil, fmt.Errorf("listing issue statuses: %w", err)
	}

	return resp, nil
}
