package client

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/redmine-client/internal/http"
	"github.com/fivetwenty-io/redmine-client/pkg/redmine"
)

var groupFields = redmine.Permit("name", "user_ids")

// GroupsClient implements redmine.GroupsClient.
type GroupsClient struct {
	httpClient *http.Client
}

// NewGroupsClient creates a new groups client.
func NewGroupsClient(httpClient *http.Client) *GroupsClient {
	return &GroupsClient{
		httpClient: httpClient,
	}
}

// List implements redmine.GroupsClient.List.
func (c *GroupsClient) List(ctx context.Context) (redmine.JSON, error) {
	resp, err := c.httpClient.Get(ctx, "/groups.json", nil)
	if err != nil {
		return nil, fmt.Errorf("listing groups: %w", err)
	}

	return resp, nil
}

// Get implements redmine.GroupsClient.Get and returns the unwrapped group.
func (c *GroupsClient) Get(ctx context.Context, id int, include ...string) (redmine.JSON, error) {
	resp, err := c.httpClient.Get(ctx, groupPath(id), includeQuery(include))
	if err != nil {
		return nil, fmt.Errorf("getting group: %w", err)
	}

	return unwrap(resp, "group")
}

// Create implements redmine.GroupsClient.Create and returns the unwrapped group.
func (c *GroupsClient) Create(ctx context.Context, name string, userIDs []int) (redmine.JSON, error) {
	if name == "" {
		return nil, redmine.NewValidationError(redmine.ErrNameRequired, "group name is required")
	}

	group := redmine.JSON{"name": name}
	if len(userIDs) > 0 {
		group["user_ids"] = userIDs
	}

	resp, err := c.httpClient.Post(ctx, "/groups.json", wrap("group", group))
	if err != nil {
		return nil, fmt.Errorf("creating group: %w", err)
	}

	return unwrap(resp, "group")
}

// Update implements redmine.GroupsClient.Update.
func (c *GroupsClient) Update(ctx context.Context, id int, data redmine.JSON) (redmine.JSON, error) {
	resp, err := c.httpClient.Put(ctx, groupPath(id), wrap("group", redmine.SanitizeData(data, groupFields)))
	if err != nil {
		return nil, fmt.Errorf("updating group: %w", err)
	}

	return resp, nil
}

// Delete implements redmine.GroupsClient.Delete.
func (c *GroupsClient) Delete(ctx context.Context, id int) (int, error) {
	status, err := c.httpClient.Delete(ctx, groupPath(id), nil)
	if err != nil {
		return status, fmt.Errorf("deleting group: %w", err)
	}

	return status, nil
}

// AddUser implements redmine.GroupsClient.AddUser.
func (c *GroupsClient) AddUser(ctx context.Context, id int, userID int) (redmine.JSON, error) {
	resp, err := c.httpClient.Post(ctx, "/groups/"+itoa(id)+"/users.json", redmine.JSON{"user_id": userID})
	if err != nil {
		return nil, fmt.Errorf("adding user to group: %w", err)
	}

	return resp, nil
}

// DeleteUser implements redmine.GroupsClient.DeleteUser.
func (c *GroupsClient) DeleteUser(ctx context.Context, id int, userID int) (int, error) {
	status, err := c.httpClient.Delete(ctx, "/groups/"+itoa(id)+"/users/"+itoa(userID)+".json", nil)
	if err != nil {
		return status, fmt.Errorf("removing user from group: %w", err)
	}

	return status, nil
}

func groupPath(id int) string {
	return "/groups/" + itoa(id) + ".json"
}
