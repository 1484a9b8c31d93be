package client

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/redmine-client/internal/constants"
	"github.com/fivetwenty-io/redmine-client/internal/http"
	"github.com/fivetwenty-io/redmine-client/pkg/redmine"
)

var fileFields = redmine.Permit("filename", "description", "version_id")

// FilesClient implements redmine.FilesClient.
type FilesClient struct {
	httpClient *http.Client
}

// NewFilesClient creates a new files client.
func NewFilesClient(httpClient *http.Client) *FilesClient {
	return &FilesClient{
		httpClient: httpClient,
	}
}

// CreateUploadToken implements redmine.FilesClient.CreateUploadToken. The
// token can be attached to issues, wiki pages or project files.
func (c *FilesClient) CreateUploadToken(ctx context.Context, content []byte) (string, error) {
	resp, err := c.httpClient.Upload(ctx, constants.UploadsPath, content, nil)
	if err != nil {
		return "", fmt.Errorf("uploading content: %w", err)
	}

	upload, err := unwrap(resp, "upload")
	if err != nil {
		return "", err
	}

	token, err := redmine.GetDataByKey(upload, "token")
	if err != nil {
		return "", fmt.Errorf("reading upload token: %w", err)
	}

	value, ok := token.(string)
	if !ok {
		return "", redmine.NewValidationError(redmine.ErrUnexpectedType, "'token' is not a string")
	}

	return value, nil
}

// List implements redmine.FilesClient.List.
func (c *FilesClient) List(ctx context.Context, projectID string) (redmine.JSON, error) {
	resp, err := c.httpClient.Get(ctx, projectScoped(projectID, "files.json"), nil)
	if err != nil {
		return nil, fmt.Errorf("listing files: %w", err)
	}

	return resp, nil
}

// Create implements redmine.FilesClient.Create. Redmine answers with an empty
// body on success, so the decoded response is returned as is.
func (c *FilesClient) Create(ctx context.Context, projectID string, token string, data redmine.JSON) (redmine.JSON, error) {
	file := redmine.SanitizeData(data, fileFields)
	file["token"] = token

	resp, err := c.httpClient.Post(ctx, projectScoped(projectID, "files.json"), wrap("file", file))
	if err != nil {
		return nil, fmt.Errorf("creating file: %w", err)
	}

	return resp, nil
}
