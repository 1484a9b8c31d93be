package client

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/redmine-client/internal/http"
	"github.com/fivetwenty-io/redmine-client/pkg/redmine"
)

var attachmentFields = redmine.Permit("filename", "description")

// AttachmentsClient implements redmine.AttachmentsClient.
type AttachmentsClient struct {
	httpClient *http.Client
}

// NewAttachmentsClient creates a new attachments client.
func NewAttachmentsClient(httpClient *http.Client) *AttachmentsClient {
	return &AttachmentsClient{
		httpClient: httpClient,
	}
}

// Get implements redmine.AttachmentsClient.Get and returns the unwrapped attachment.
func (c *AttachmentsClient) Get(ctx context.Context, id int) (redmine.JSON, error) {
	resp, err := c.httpClient.Get(ctx, attachmentPath(id), nil)
	if err != nil {
		return nil, fmt.Errorf("getting attachment: %w", err)
	}

	return unwrap(resp, "attachment")
}

// Update implements redmine.AttachmentsClient.Update.
func (c *AttachmentsClient) Update(ctx context.Context, id int, data redmine.JSON) (redmine.JSON, error) {
	payload := wrap("attachment", redmine.SanitizeData(data, attachmentFields))

	resp, err := c.httpClient.Put(ctx, attachmentPath(id), payload)
	if err != nil {
		return nil, fmt.Errorf("updating attachment: %w", err)
	}

	return resp, nil
}

// Delete implements redmine.AttachmentsClient.Delete.
func (c *AttachmentsClient) Delete(ctx context.Context, id int) (int, error) {
	status, err := c.httpClient.Delete(ctx, attachmentPath(id), nil)
	if err != nil {
		return status, fmt.Errorf("deleting attachment: %w", err)
	}

	return status, nil
}

func attachmentPath(id int) string {
	return "/attachments/" + itoa(id) + ".json"
}
