package client

import (
	"context"
	"fmt"
	"strings"

	"github.com/fivetwenty-io/redmine-client/internal/http"
	"github.com/fivetwenty-io/redmine-client/pkg/redmine"
)

const issuesPath = "/issues.json"

var (
	issueFields = redmine.Permit(
		"project_id",
		"tracker_id",
		"status_id",
		"priority_id",
		"subject",
		"description",
		"category_id",
		"fixed_version_id",
		"assigned_to_id",
		"parent_issue_id",
		"custom_fields",
		"watcher_user_ids",
		"is_private",
		"estimated_hours",
		"uploads",
	)
	issueUpdateFields = issueFields.With("notes", "private_notes")
)

// IssuesClient implements redmine.IssuesClient.
type IssuesClient struct {
	httpClient *http.Client
}

// NewIssuesClient creates a new issues client.
func NewIssuesClient(httpClient *http.Client) *IssuesClient {
	return &IssuesClient{
		httpClient: httpClient,
	}
}

// List implements redmine.IssuesClient.List.
func (c *IssuesClient) List(ctx context.Context, opts *redmine.ListOptions) (redmine.JSON, error) {
	resp, err := c.httpClient.Get(ctx, issuesPath, listQuery(opts, true))
	if err != nil {
		return nil, fmt.Errorf("listing issues: %w", err)
	}

	return resp, nil
}

// ListAll implements redmine.IssuesClient.ListAll.
func (c *IssuesClient) ListAll(ctx context.Context, filters *redmine.Group) ([]any, error) {
	items, err := redmine.All(ctx, pagedList(c.httpClient, issuesPath), "issues", filters, 0)
	if err != nil {
		return nil, fmt.Errorf("listing all issues: %w", err)
	}

	return items, nil
}

// Get implements redmine.IssuesClient.Get.
func (c *IssuesClient) Get(ctx context.Context, id int, include ...string) (redmine.JSON, error) {
	resp, err := c.httpClient.Get(ctx, issuePath(id), includeQuery(include))
	if err != nil {
		return nil, fmt.Errorf("getting issue: %w", err)
	}

	return resp, nil
}

// Create implements redmine.IssuesClient.Create.
func (c *IssuesClient) Create(ctx context.Context, data redmine.JSON) (redmine.JSON, error) {
	payload := wrap("issue", redmine.SanitizeData(data, issueFields))

	resp, err := c.httpClient.Post(ctx, issuesPath, payload)
	if err != nil {
		return nil, fmt.Errorf("creating issue: %w", err)
	}

	return resp, nil
}

// Update implements redmine.IssuesClient.Update.
func (c *IssuesClient) Update(ctx context.Context, id int, data redmine.JSON) (redmine.JSON, error) {
	payload := wrap("issue", redmine.SanitizeData(data, issueUpdateFields))

	resp, err := c.httpClient.Put(ctx, issuePath(id), payload)
	if err != nil {
		return nil, fmt.Errorf("updating issue: %w", err)
	}

	return resp, nil
}

// Delete implements redmine.IssuesClient.Delete.
func (c *IssuesClient) Delete(ctx context.Context, id int) (int, error) {
	status, err := c.httpClient.Delete(ctx, issuePath(id), nil)
	if err != nil {
		return status, fmt.Errorf("deleting issue: %w", err)
	}

	return status, nil
}

// GetNotes implements redmine.IssuesClient.GetNotes. With skipSystem set,
// journals without note text (pure attribute changes) are dropped.
func (c *IssuesClient) GetNotes(ctx context.Context, id int, skipSystem bool) ([]any, error) {
	resp, err := c.Get(ctx, id, "journals")
	if err != nil {
		return nil, err
	}

	issue, err := unwrap(resp, "issue")
	if err != nil {
		return nil, err
	}

	journals, _ := issue["journals"].([]any)
	if !skipSystem {
		return journals, nil
	}

	notes := make([]any, 0, len(journals))

	for _, journal := range journals {
		entry, ok := journal.(redmine.JSON)
		if !ok {
			continue
		}

		text, _ := entry["notes"].(string)
		if strings.TrimSpace(text) == "" {
			continue
		}

		notes = append(notes, journal)
	}

	return notes, nil
}

// AddNote implements redmine.IssuesClient.AddNote.
func (c *IssuesClient) AddNote(ctx context.Context, id int, note string) (redmine.JSON, error) {
	return c.Update(ctx, id, redmine.JSON{"notes": note})
}

// UpdateStatus implements redmine.IssuesClient.UpdateStatus.
func (c *IssuesClient) UpdateStatus(ctx context.Context, id int, statusID int) (redmine.JSON, error) {
	return c.Update(ctx, id, redmine.JSON{"status_id": statusID})
}

// AddWatcher implements redmine.IssuesClient.AddWatcher.
func (c *IssuesClient) AddWatcher(ctx context.Context, id int, userID int) (redmine.JSON, error) {
	path := "/issues/" + itoa(id) + "/watchers.json"

	resp, err := c.httpClient.Post(ctx, path, redmine.JSON{"user_id": userID})
	if err != nil {
		return nil, fmt.Errorf("adding watcher: %w", err)
	}

	return resp, nil
}

// RemoveWatcher implements redmine.IssuesClient.RemoveWatcher.
func (c *IssuesClient) RemoveWatcher(ctx context.Context, id int, userID int) (int, error) {
	path := "/issues/" + itoa(id) + "/watchers/" + itoa(userID) + ".json"

	status, err := c.httpClient.Delete(ctx, path, nil)
	if err != nil {
		return status, fmt.Errorf("removing watcher: %w", err)
	}

	return status, nil
}

func issuePath(id int) string {
	return "/issues/" + itoa(id) + ".json"
}
