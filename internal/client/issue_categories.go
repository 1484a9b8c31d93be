package client

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/redmine-client/internal/http"
	"github.com/fivetwenty-io/redmine-client/pkg/redmine"
)

var issueCategoryFields = redmine.Permit("name", "assigned_to_id")

// IssueCategoriesClient implements redmine.IssueCategoriesClient.
type IssueCategoriesClient struct {
	httpClient *http.Client
}

// NewIssueCategoriesClient creates a new issue categories client.
func NewIssueCategoriesClient(httpClient *http.Client) *IssueCategoriesClient {
	return &IssueCategoriesClient{
		httpClient: httpClient,
	}
}

// List implements redmine.IssueCategoriesClient.List.
func (c *IssueCategoriesClient) List(ctx context.Context, projectID string, page *redmine.Page) (redmine.JSON, error) {
	resp, err := c.httpClient.Get(ctx, projectScoped(projectID, "issue_categories.json"), pageQuery(page))
	if err != nil {
		return nil, fmt.Errorf("listing issue categories: %w", err)
	}

	return resp, nil
}

// Get implements redmine.IssueCategoriesClient.Get.
func (c *IssueCategoriesClient) Get(ctx context.Context, id int) (redmine.JSON, error) {
	resp, err := c.httpClient.Get(ctx, issueCategoryPath(id), nil)
	if err != nil {
		return nil, fmt.Errorf("getting issue category: %w", err)
	}

	return resp, nil
}

// Create implements redmine.IssueCategoriesClient.Create. An assignedToID of
// zero leaves the category unassigned.
func (c *IssueCategoriesClient) Create(ctx context.Context, projectID string, name string, assignedToID int) (redmine.JSON, error) {
	if name == "" {
		return nil, redmine.NewValidationError(redmine.ErrNameRequired, "issue category name is required")
	}

	category := redmine.JSON{"name": name}
	if assignedToID > 0 {
		category["assigned_to_id"] = assignedToID
	}

	resp, err := c.httpClient.Post(ctx, projectScoped(projectID, "issue_categories.json"), wrap("issue_category", category))
	if err != nil {
		return nil, fmt.Errorf("creating issue category: %w", err)
	}

	return resp, nil
}

// Update implements redmine.IssueCategoriesClient.Update.
func (c *IssueCategoriesClient) Update(ctx context.Context, id int, data redmine.JSON) (redmine.JSON, error) {
	payload := wrap("issue_category", redmine.SanitizeData(data, issueCategoryFields))

	resp, err := c.httpClient.Put(ctx, issueCategoryPath(id), payload)
	if err != nil {
		return nil, fmt.Errorf("updating issue category: %w", err)
	}

	return resp, nil
}

// Delete implements redmine.IssueCategoriesClient.Delete. Issues of the
// deleted category move to reassignToID when it is non-zero.
func (c *IssueCategoriesClient) Delete(ctx context.Context, id int, reassignToID int) (int, error) {
	query := redmine.NewGroup()
	if reassignToID > 0 {
		query.Set("reassign_to_id", reassignToID)
	}

	status, err := c.httpClient.Delete(ctx, issueCategoryPath(id), redmine.BuildQueryParameters(query))
	if err != nil {
		return status, fmt.Errorf("deleting issue category: %w", err)
	}

	return status, nil
}

func issueCategoryPath(id int) string {
	return "/issue_categories/" + itoa(id) + ".json"
}
