package client

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/redmine-client/internal/http"
	"github.com/fivetwenty-io/redmine-client/pkg/redmine"
)

var wikiPageFields = redmine.Permit(
	"text",
	"version",
	"comments",
	"parent.title",
	"uploads",
)

// WikiClient implements redmine.WikiClient.
type WikiClient struct {
	httpClient *http.Client
}

// NewWikiClient creates a new wiki client.
func NewWikiClient(httpClient *http.Client) *WikiClient {
	return &WikiClient{
		httpClient: httpClient,
	}
}

// List implements redmine.WikiClient.List.
func (c *WikiClient) List(ctx context.Context, projectID string) (redmine.JSON, error) {
	resp, err := c.httpClient.Get(ctx, projectScoped(projectID, "wiki/index.json"), nil)
	if err != nil {
		return nil, fmt.Errorf("listing wiki pages: %w", err)
	}

	return resp, nil
}

// Get implements redmine.WikiClient.Get.
func (c *WikiClient) Get(ctx context.Context, projectID string, title string, include ...string) (redmine.JSON, error) {
	resp, err := c.httpClient.Get(ctx, wikiPagePath(projectID, title), includeQuery(include))
	if err != nil {
		return nil, fmt.Errorf("getting wiki page: %w", err)
	}

	return resp, nil
}

// GetByVersion implements redmine.WikiClient.GetByVersion.
func (c *WikiClient) GetByVersion(ctx context.Context, projectID string, title string, version int, include ...string) (redmine.JSON, error) {
	path := projectScoped(projectID, "wiki/"+escape(title)+"/"+itoa(version)+".json")

	resp, err := c.httpClient.Get(ctx, path, includeQuery(include))
	if err != nil {
		return nil, fmt.Errorf("getting wiki page version: %w", err)
	}

	return resp, nil
}

// UpdateOrCreate implements redmine.WikiClient.UpdateOrCreate.
func (c *WikiClient) UpdateOrCreate(ctx context.Context, projectID string, title string, data redmine.JSON) (redmine.JSON, error) {
	payload := wrap("wiki_page", redmine.SanitizeData(data, wikiPageFields))

	resp, err := c.httpClient.Put(ctx, wikiPagePath(projectID, title), payload)
	if err != nil {
		return nil, fmt.Errorf("saving wiki page: %w", err)
	}

	return resp, nil
}

// Delete implements redmine.WikiClient.Delete.
func (c *WikiClient) Delete(ctx context.Context, projectID string, title string) (int, error) {
	status, err := c.httpClient.Delete(ctx, wikiPagePath(projectID, title), nil)
	if err != nil {
		return status, fmt.Errorf("deleting wiki page: %w", err)
	}

	return status, nil
}

func wikiPagePath(projectID, title string) string {
	return projectScoped(projectID, "wiki/"+escape(title)+".json")
}
