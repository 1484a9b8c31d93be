package client

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/redmine-client/internal/http"
	"github.com/fivetwenty-io/redmine-client/pkg/redmine"
)

const projectsPath = "/projects.json"

var projectFields = redmine.Permit(
	"name",
	"identifier",
	"description",
	"homepage",
	"is_public",
	"parent_id",
	"inherit_members",
	"tracker_ids",
	"enabled_module_names",
)

// ProjectsClient implements redmine.ProjectsClient.
type ProjectsClient struct {
	httpClient *http.Client
}

// NewProjectsClient creates a new projects client.
func NewProjectsClient(httpClient *http.Client) *ProjectsClient {
	return &ProjectsClient{
		httpClient: httpClient,
	}
}

// List implements redmine.ProjectsClient.List.
func (c *ProjectsClient) List(ctx context.Context, opts *redmine.ListOptions) (redmine.JSON, error) {
	resp, err := c.httpClient.Get(ctx, projectsPath, listQuery(opts, true))
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}

	return resp, nil
}

// ListAll implements redmine.ProjectsClient.ListAll.
func (c *ProjectsClient) ListAll(ctx context.Context, filters *redmine.Group) ([]any, error) {
	items, err := redmine.All(ctx, pagedList(c.httpClient, projectsPath), "projects", filters, 0)
	if err != nil {
		return nil, fmt.Errorf("listing all projects: %w", err)
	}

	return items, nil
}

// Get implements redmine.ProjectsClient.Get.
func (c *ProjectsClient) Get(ctx context.Context, id string, include ...string) (redmine.JSON, error) {
	resp, err := c.httpClient.Get(ctx, projectPath(id), includeQuery(include))
	if err != nil {
		return nil, fmt.Errorf("getting project: %w", err)
	}

	return resp, nil
}

// Create implements redmine.ProjectsClient.Create. name and identifier take
// precedence over the same keys in data.
func (c *ProjectsClient) Create(ctx context.Context, name string, identifier string, data redmine.JSON) (redmine.JSON, error) {
	if name == "" {
		return nil, redmine.NewValidationError(redmine.ErrNameRequired, "")
	}

	fields := redmine.JSON{}
	for key, value := range data {
		fields[key] = value
	}

	fields["name"] = name
	fields["identifier"] = identifier

	resp, err := c.httpClient.Post(ctx, projectsPath, wrap("project", redmine.SanitizeData(fields, projectFields)))
	if err != nil {
		return nil, fmt.Errorf("creating project: %w", err)
	}

	return resp, nil
}

// Update implements redmine.ProjectsClient.Update.
func (c *ProjectsClient) Update(ctx context.Context, id string, data redmine.JSON) (redmine.JSON, error) {
	resp, err := c.httpClient.Put(ctx, projectPath(id), wrap("project", redmine.SanitizeData(data, projectFields)))
	if err != nil {
		return nil, fmt.Errorf("updating project: %w", err)
	}

	return resp, nil
}

// Delete implements redmine.ProjectsClient.Delete.
func (c *ProjectsClient) Delete(ctx context.Context, id string) (int, error) {
	status, err := c.httpClient.Delete(ctx, projectPath(id), nil)
	if err != nil {
		return status, fmt.Errorf("deleting project: %w", err)
	}

	return status, nil
}

func projectPath(id string) string {
	return "/projects/" + escape(id) + ".json"
}

// projectScoped builds /projects/{id}/{rest}.
func projectScoped(id string, rest string) string {
	return "/projects/" + escape(id) + "/" + rest
}
