package client

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/redmine-client/internal/http"
	"github.com/fivetwenty-io/redmine-client/pkg/redmine"
)

// CustomFieldsClient implements redmine.CustomFieldsClient.
type CustomFieldsClient struct {
	httpClient *http.Client
}

// NewCustomFieldsClient creates a new custom fields client.
func NewCustomFieldsClient(httpClient *http.Client) *CustomFieldsClient {
	return &CustomFieldsClient{
		httpClient: httpClient,
	}
}

// List implements redmine.CustomFieldsClient.List. Requires admin rights.
func (c *CustomFieldsClient) List(ctx context.Context) (redmine.JSON, error) {
	resp, err := c.httpClient.Get(ctx, "/custom_fields.json", nil)
	if err != nil {
		return nil, fmt.Errorf("listing custom fields: %w", err)
	}

	return resp, nil
}
