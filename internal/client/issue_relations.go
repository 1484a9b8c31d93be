package client

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/redmine-client/internal/http"
	"github.com/fivetwenty-io/redmine-client/pkg/redmine"
)

const defaultRelationType = "relates"

// IssueRelationsClient implements redmine.IssueRelationsClient.
type IssueRelationsClient struct {
	httpClient *http.Client
}

// NewIssueRelationsClient creates a new issue relations client.
func NewIssueRelationsClient(httpClient *http.Client) *IssueRelationsClient {
	return &IssueRelationsClient{
		httpClient: httpClient,
	}
}

// List implements redmine.IssueRelationsClient.List.
func (c *IssueRelationsClient) List(ctx context.Context, issueID int) (redmine.JSON, error) {
	resp, err := c.httpClient.Get(ctx, issueRelationsPath(issueID), nil)
	if err != nil {
		return nil, fmt.Errorf("listing issue relations: %w", err)
	}

	return resp, nil
}

// Get implements redmine.IssueRelationsClient.Get.
func (c *IssueRelationsClient) Get(ctx context.Context, id int, include ...string) (redmine.JSON, error) {
	resp, err := c.httpClient.Get(ctx, "/relations/"+itoa(id)+".json", includeQuery(include))
	if err != nil {
		return nil, fmt.Errorf("getting issue relation: %w", err)
	}

	return resp, nil
}

// Create implements redmine.IssueRelationsClient.Create. An empty
// relationType means "relates"; delay only applies to precedes/follows.
func (c *IssueRelationsClient) Create(ctx context.Context, issueID int, issueToID int, relationType string, delay *int) (redmine.JSON, error) {
	if relationType == "" {
		relationType = defaultRelationType
	}

	relation := redmine.JSON{
		"issue_to_id":   issueToID,
		"relation_type": relationType,
	}

	if delay != nil {
		relation["delay"] = *delay
	}

	resp, err := c.httpClient.Post(ctx, issueRelationsPath(issueID), wrap("relation", relation))
	if err != nil {
		return nil, fmt.Errorf("creating issue relation: %w", err)
	}

	return resp, nil
}

// Delete implements redmine.IssueRelationsClient.Delete.
func (c *IssueRelationsClient) Delete(ctx context.Context, id int) (int, error) {
	status, err := c.httpClient.Delete(ctx, "/relations/"+itoa(id)+".json", nil)
	if err != nil {
		return status, fmt.Errorf("deleting issue relation: %w", err)
	}

	return status, nil
}

func issueRelationsPath(issueID int) string {
	return "/issues/" + itoa(issueID) + "/relations.json"
}
