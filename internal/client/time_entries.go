package client

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/redmine-client/internal/http"
	"github.com/fivetwenty-io/redmine-client/pkg/redmine"
)

const timeEntriesPath = "/time_entries.json"

var timeEntryFields = redmine.Permit(
	"issue_id",
	"project_id",
	"spent_on",
	"hours",
	"activity_id",
	"comments",
)

// TimeEntriesClient implements redmine.TimeEntriesClient.
type TimeEntriesClient struct {
	httpClient *http.Client
}

// NewTimeEntriesClient creates a new time entries client.
func NewTimeEntriesClient(httpClient *http.Client) *TimeEntriesClient {
	return &TimeEntriesClient{
		httpClient: httpClient,
	}
}

// List implements redmine.TimeEntriesClient.List.
func (c *TimeEntriesClient) List(ctx context.Context, opts *redmine.ListOptions) (redmine.JSON, error) {
	if opts != nil {
		opts = &redmine.ListOptions{Filters: opts.Filters, Page: opts.Page, Sort: opts.Sort}
	}

	resp, err := c.httpClient.Get(ctx, timeEntriesPath, listQuery(opts, true))
	if err != nil {
		return nil, fmt.Errorf("listing time entries: %w", err)
	}

	return resp, nil
}

// ListAll implements redmine.TimeEntriesClient.ListAll.
func (c *TimeEntriesClient) ListAll(ctx context.Context, filters *redmine.Group) ([]any, error) {
	items, err := redmine.All(ctx, pagedList(c.httpClient, timeEntriesPath), "time_entries", filters, 0)
	if err != nil {
		return nil, fmt.Errorf("listing all time entries: %w", err)
	}

	return items, nil
}

// Get implements redmine.TimeEntriesClient.Get.
func (c *TimeEntriesClient) Get(ctx context.Context, id int) (redmine.JSON, error) {
	resp, err := c.httpClient.Get(ctx, timeEntryPath(id), nil)
	if err != nil {
		return nil, fmt.Errorf("getting time entry: %w", err)
	}

	return resp, nil
}

// Create implements redmine.TimeEntriesClient.Create. reference is
// redmine.TimeEntryOnIssue or redmine.TimeEntryOnProject and id the issue or
// project it is logged on.
func (c *TimeEntriesClient) Create(ctx context.Context, reference string, id int, hours float64, data redmine.JSON) (redmine.JSON, error) {
	if reference != redmine.TimeEntryOnIssue && reference != redmine.TimeEntryOnProject {
		return nil, redmine.NewValidationError(redmine.ErrInvalidReference, "")
	}

	entry := redmine.SanitizeData(data, timeEntryFields)
	delete(entry, redmine.TimeEntryOnIssue+"_id")
	delete(entry, redmine.TimeEntryOnProject+"_id")
	entry[reference+"_id"] = id
	entry["hours"] = hours

	resp, err := c.httpClient.Post(ctx, timeEntriesPath, wrap("time_entry", entry))
	if err != nil {
		return nil, fmt.Errorf("creating time entry: %w", err)
	}

	return resp, nil
}

// Update implements redmine.TimeEntriesClient.Update.
func (c *TimeEntriesClient) Update(ctx context.Context, id int, data redmine.JSON) (redmine.JSON, error) {
	resp, err := c.httpClient.Put(ctx, timeEntryPath(id), wrap("time_entry", redmine.SanitizeData(data, timeEntryFields)))
	if err != nil {
		return nil, fmt.Errorf("updating time entry: %w", err)
	}

	return resp, nil
}

// Delete implements redmine.TimeEntriesClient.Delete.
func (c *TimeEntriesClient) Delete(ctx context.Context, id int) (int, error) {
	status, err := c.httpClient.Delete(ctx, timeEntryPath(id), nil)
	if err != nil {
		return status, fmt.Errorf("deleting time entry: %w", err)
	}

	return status, nil
}

func timeEntryPath(id int) string {
	return "/time_entries/" + itoa(id) + ".json"
}
