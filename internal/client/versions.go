package client

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/redmine-client/internal/http"
	"github.com/fivetwenty-io/redmine-client/pkg/redmine"
)

// Version defaults applied when the options leave them empty.
const (
	defaultVersionStatus  = "open"
	defaultVersionSharing = "none"
)

// VersionsClient implements redmine.VersionsClient.
type VersionsClient struct {
	httpClient *http.Client
}

// NewVersionsClient creates a new versions client.
func NewVersionsClient(httpClient *http.Client) *VersionsClient {
	return &VersionsClient{
		httpClient: httpClient,
	}
}

// List implements redmine.VersionsClient.List.
func (c *VersionsClient) List(ctx context.Context, projectID string) (redmine.JSON, error) {
	resp, err := c.httpClient.Get(ctx, projectScoped(projectID, "versions.json"), nil)
	if err != nil {
		return nil, fmt.Errorf("listing versions: %w", err)
	}

	return resp, nil
}

// Get implements redmine.VersionsClient.Get.
func (c *VersionsClient) Get(ctx context.Context, id int) (redmine.JSON, error) {
	resp, err := c.httpClient.Get(ctx, versionPath(id), nil)
	if err != nil {
		return nil, fmt.Errorf("getting version: %w", err)
	}

	return resp, nil
}

// Create implements redmine.VersionsClient.Create.
func (c *VersionsClient) Create(ctx context.Context, projectID string, opts *redmine.VersionOptions) (redmine.JSON, error) {
	payload, err := versionPayload(opts)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Post(ctx, projectScoped(projectID, "versions.json"), payload)
	if err != nil {
		return nil, fmt.Errorf("creating version: %w", err)
	}

	return resp, nil
}

// Update implements redmine.VersionsClient.Update.
func (c *VersionsClient) Update(ctx context.Context, id int, opts *redmine.VersionOptions) (redmine.JSON, error) {
	payload, err := versionPayload(opts)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Put(ctx, versionPath(id), payload)
	if err != nil {
		return nil, fmt.Errorf("updating version: %w", err)
	}

	return resp, nil
}

// Delete implements redmine.VersionsClient.Delete.
func (c *VersionsClient) Delete(ctx context.Context, id int) (int, error) {
	status, err := c.httpClient.Delete(ctx, versionPath(id), nil)
	if err != nil {
		return status, fmt.Errorf("deleting version: %w", err)
	}

	return status, nil
}

// versionPayload builds the version envelope, leaving out empty fields.
func versionPayload(opts *redmine.VersionOptions) (redmine.JSON, error) {
	if opts == nil || opts.Name == "" {
		return nil, redmine.NewValidationError(redmine.ErrNameRequired, "version name is required")
	}

	status := opts.Status
	if status == "" {
		status = defaultVersionStatus
	}

	sharing := opts.Sharing
	if sharing == "" {
		sharing = defaultVersionSharing
	}

	version := redmine.JSON{
		"name":    opts.Name,
		"status":  status,
		"sharing": sharing,
	}

	if opts.DueDate != "" {
		version["due_date"] = opts.DueDate
	}

	if opts.Description != "" {
		version["description"] = opts.Description
	}

	return wrap("version", version), nil
}

func versionPath(id int) string {
	return "/versions/" + itoa(id) + ".json"
}
