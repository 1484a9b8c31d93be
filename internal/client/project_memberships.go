package client

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/redmine-client/internal/http"
	"github.com/fivetwenty-io/redmine-client/pkg/redmine"
)

// ProjectMembershipsClient implements redmine.ProjectMembershipsClient.
type ProjectMembershipsClient struct {
	httpClient *http.Client
}

// NewProjectMembershipsClient creates a new project memberships client.
func NewProjectMembershipsClient(httpClient *http.Client) *ProjectMembershipsClient {
	return &ProjectMembershipsClient{
		httpClient: httpClient,
	}
}

// List implements redmine.ProjectMembershipsClient.List.
func (c *ProjectMembershipsClient) List(ctx context.Context, projectID string, page *redmine.Page) (redmine.JSON, error) {
	resp, err := c.httpClient.Get(ctx, projectScoped(projectID, "memberships.json"), pageQuery(page))
	if err != nil {
		return nil, fmt.Errorf("listing memberships: %w", err)
	}

	return resp, nil
}

// Get implements redmine.ProjectMembershipsClient.Get.
func (c *ProjectMembershipsClient) Get(ctx context.Context, id int) (redmine.JSON, error) {
	resp, err := c.httpClient.Get(ctx, membershipPath(id), nil)
	if err != nil {
		return nil, fmt.Errorf("getting membership: %w", err)
	}

	return resp, nil
}

// Create implements redmine.ProjectMembershipsClient.Create.
func (c *ProjectMembershipsClient) Create(ctx context.Context, projectID string, userID int, roleIDs []int) (redmine.JSON, error) {
	membership := redmine.JSON{
		"user_id":  userID,
		"role_ids": nonNilIDs(roleIDs),
	}

	resp, err := c.httpClient.Post(ctx, projectScoped(projectID, "memberships.json"), wrap("membership", membership))
	if err != nil {
		return nil, fmt.Errorf("creating membership: %w", err)
	}

	return resp, nil
}

// Update implements redmine.ProjectMembershipsClient.Update.
func (c *ProjectMembershipsClient) Update(ctx context.Context, id int, roleIDs []int) (redmine.JSON, error) {
	payload := wrap("membership", redmine.JSON{"role_ids": nonNilIDs(roleIDs)})

	resp, err := c.httpClient.Put(ctx, membershipPath(id), payload)
	if err != nil {
		return nil, fmt.Errorf("updating membership: %w", err)
	}

	return resp, nil
}

// Delete implements redmine.ProjectMembershipsClient.Delete.
func (c *ProjectMembershipsClient) Delete(ctx context.Context, id int) (int, error) {
	status, err := c.httpClient.Delete(ctx, membershipPath(id), nil)
	if err != nil {
		return status, fmt.Errorf("deleting membership: %w", err)
	}

	return status, nil
}

func membershipPath(id int) string {
	return "/memberships/" + itoa(id) + ".json"
}

// nonNilIDs makes a nil slice encode as [] rather than null.
func nonNilIDs(ids []int) []int {
	if ids == nil {
		return []int{}
	}

	return ids
}
