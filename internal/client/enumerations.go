package client

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/redmine-client/internal/http"
	"github.com/fivetwenty-io/redmine-client/pkg/redmine"
)

// EnumerationsClient implements redmine.EnumerationsClient.
type EnumerationsClient struct {
	httpClient *http.Client
}

// NewEnumerationsClient creates a new enumerations client.
func NewEnumerationsClient(httpClient *http.Client) *EnumerationsClient {
	return &EnumerationsClient{
		httpClient: httpClient,
	}
}

// IssuePriorities implements redmine.EnumerationsClient.IssuePriorities.
func (c *EnumerationsClient) IssuePriorities(ctx context.Context) (redmine.JSON, error) {
	return c.get(ctx, "issue_priorities")
}

// TimeEntryActivities implements redmine.EnumerationsClient.TimeEntryActivities.
func (c *EnumerationsClient) TimeEntryActivities(ctx context.Context) (redmine.JSON, error) {
	return c.get(ctx, "time_entry_activities")
}

// DocumentCategories implements redmine.EnumerationsClient.DocumentCategories.
func (c *EnumerationsClient) DocumentCategories(ctx context.Context) (redmine.JSON, error) {
	return c.get(ctx, "document_categories")
}

func (c *EnumerationsClient) get(ctx context.Context, name string) (redmine.JSON, error) {
	resp, err := c.httpClient.Get(ctx, "/enumerations/"+name+".json", nil)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", name, err)
	}

	return resp, nil
}
