package client

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/redmine-client/internal/http"
	"github.com/fivetwenty-io/redmine-client/pkg/redmine"
)

// RolesClient implements redmine.RolesClient.
type RolesClient struct {
	httpClient *http.Client
}

// NewRolesClient creates a new roles client.
func NewRolesClient(httpClient *http.Client) *RolesClient {
	return &RolesClient{
		httpClient: httpClient,
	}
}

// List implements redmine.RolesClient.List.
func (c *RolesClient) List(ctx context.Context) (redmine.JSON, error) {
	resp, err := c.httpClient.Get(ctx, "/roles.json", nil)
	if err != nil {
		return nil, fmt.Errorf("listing roles: %w", err)
	}

	return resp, nil
}

// Get implements redmine.RolesClient.Get.
func (c *RolesClient) Get(ctx context.Context, id int) (redmine.JSON, error) {
	resp, err := c.httpClient.Get(ctx, "/roles/"+itoa(id)+".json", nil)
	if err != nil {
		return nil, fmt.Errorf("getting role: %w", err)
	}

	return resp, nil
}
