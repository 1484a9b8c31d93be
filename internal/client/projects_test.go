package client

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/redmine-client/pkg/redmine"
)

func TestProjectsClient_Create(t *testing.T) {
	t.Parallel()

	t.Run("merges name and identifier", func(t *testing.T) {
		t.Parallel()

		server, rec := newRecordingServer(t, http.StatusCreated, map[string]any{"project": map[string]any{"id": 2}})
		client := NewTestClient(server.URL)

		_, err := client.Projects().Create(context.Background(), "Website", "website", redmine.JSON{
			"name":      "overridden",
			"is_public": false,
			"status":    5,
		})
		require.NoError(t, err)

		req := rec.last(t)
		assert.Equal(t, http.MethodPost, req.Method)
		assert.Equal(t, "/projects.json", req.Path)
		assert.Equal(t, redmine.JSON{
			"project": map[string]any{"name": "Website", "identifier": "website", "is_public": false},
		}, req.Body)
	})

	t.Run("requires a name", func(t *testing.T) {
		t.Parallel()

		client := NewTestClient("http://localhost")

		_, err := client.Projects().Create(context.Background(), "", "website", nil)
		require.ErrorIs(t, err, redmine.ErrNameRequired)
	})
}

func TestProjectsClient_Get(t *testing.T) {
	t.Parallel()

	server, rec := newRecordingServer(t, http.StatusOK, map[string]any{"project": map[string]any{"id": 2}})
	client := NewTestClient(server.URL)

	_, err := client.Projects().Get(context.Background(), "website", "trackers", "enabled_modules")
	require.NoError(t, err)

	req := rec.last(t)
	assert.Equal(t, "/projects/website.json", req.Path)
	assert.Equal(t, "include=trackers%2Cenabled_modules", req.RawQuery)
}

func TestProjectsClient_Delete(t *testing.T) {
	t.Parallel()

	RunDeleteTests(t, []TestDeleteOperation{
		{
			Name:         "deletes project",
			ExpectedPath: "/projects/website.json",
			StatusCode:   http.StatusNoContent,
			Call: func(c *Client) (int, error) {
				return c.Projects().Delete(context.Background(), "website")
			},
		},
		{
			Name:         "unknown project",
			ExpectedPath: "/projects/nope.json",
			StatusCode:   http.StatusNotFound,
			Call: func(c *Client) (int, error) {
				return c.Projects().Delete(context.Background(), "nope")
			},
			WantErr: true,
		},
	})
}

func TestIssueCategoriesClient(t *testing.T) {
	t.Parallel()

	t.Run("create omits unset assignee", func(t *testing.T) {
		t.Parallel()

		server, rec := newRecordingServer(t, http.StatusCreated, map[string]any{"issue_category": map[string]any{"id": 1}})
		client := NewTestClient(server.URL)

		_, err := client.IssueCategories().Create(context.Background(), "web", "UI", 0)
		require.NoError(t, err)

		req := rec.last(t)
		assert.Equal(t, "/projects/web/issue_categories.json", req.Path)
		assert.Equal(t, redmine.JSON{"issue_category": map[string]any{"name": "UI"}}, req.Body)

		_, err = client.IssueCategories().Create(context.Background(), "web", "API", 3)
		require.NoError(t, err)
		assert.Equal(t,
			redmine.JSON{"issue_category": map[string]any{"name": "API", "assigned_to_id": float64(3)}},
			rec.last(t).Body)
	})

	t.Run("list uses the default page", func(t *testing.T) {
		t.Parallel()

		server, rec := newRecordingServer(t, http.StatusOK, map[string]any{"issue_categories": []any{}})
		client := NewTestClient(server.URL)

		_, err := client.IssueCategories().List(context.Background(), "web", nil)
		require.NoError(t, err)
		assert.Equal(t, "offset=0&limit=25", rec.last(t).RawQuery)
	})

	t.Run("delete reassigns issues", func(t *testing.T) {
		t.Parallel()

		server, rec := newRecordingServer(t, http.StatusNoContent, nil)
		client := NewTestClient(server.URL)

		_, err := client.IssueCategories().Delete(context.Background(), 4, 9)
		require.NoError(t, err)

		req := rec.last(t)
		assert.Equal(t, "/issue_categories/4.json", req.Path)
		assert.Equal(t, "reassign_to_id=9", req.RawQuery)

		_, err = client.IssueCategories().Delete(context.Background(), 4, 0)
		require.NoError(t, err)
		assert.Empty(t, rec.last(t).RawQuery)
	})
}

func TestIssueRelationsClient_Create(t *testing.T) {
	t.Parallel()

	server, rec := newRecordingServer(t, http.StatusCreated, map[string]any{"relation": map[string]any{"id": 1}})
	client := NewTestClient(server.URL)

	_, err := client.IssueRelations().Create(context.Background(), 10, 11, "", nil)
	require.NoError(t, err)

	req := rec.last(t)
	assert.Equal(t, "/issues/10/relations.json", req.Path)
	assert.Equal(t, redmine.JSON{
		"relation": map[string]any{"issue_to_id": float64(11), "relation_type": "relates"},
	}, req.Body)

	delay := 2

	_, err = client.IssueRelations().Create(context.Background(), 10, 12, "precedes", &delay)
	require.NoError(t, err)
	assert.Equal(t, redmine.JSON{
		"relation": map[string]any{"issue_to_id": float64(12), "relation_type": "precedes", "delay": float64(2)},
	}, rec.last(t).Body)
}

func TestProjectMembershipsClient(t *testing.T) {
	t.Parallel()

	server, rec := newRecordingServer(t, http.StatusCreated, map[string]any{"membership": map[string]any{"id": 1}})
	client := NewTestClient(server.URL)

	_, err := client.ProjectMemberships().Create(context.Background(), "web", 5, []int{3})
	require.NoError(t, err)

	req := rec.last(t)
	assert.Equal(t, http.MethodPost, req.Method)
	assert.Equal(t, "/projects/web/memberships.json", req.Path)
	assert.Equal(t, redmine.JSON{
		"membership": map[string]any{"user_id": float64(5), "role_ids": []any{float64(3)}},
	}, req.Body)

	_, err = client.ProjectMemberships().Update(context.Background(), 8, nil)
	require.NoError(t, err)
	assert.Equal(t, "/memberships/8.json", rec.last(t).Path)
	assert.Equal(t, redmine.JSON{"membership": map[string]any{"role_ids": []any{}}}, rec.last(t).Body)
}

func TestReadOnlyResources(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		expectedPath string
		expectedRaw  string
		call         func(*Client) (redmine.JSON, error)
	}{
		{
			name:         "issue priorities",
			expectedPath: "/enumerations/issue_priorities.json",
			call: func(c *Client) (redmine.JSON, error) {
				return c.Enumerations().IssuePriorities(context.Background())
			},
		},
		{
			name:         "time entry activities",
			expectedPath: "/enumerations/time_entry_activities.json",
			call: func(c *Client) (redmine.JSON, error) {
				return c.Enumerations().TimeEntryActivities(context.Background())
			},
		},
		{
			name:         "document categories",
			expectedPath: "/enumerations/document_categories.json",
			call: func(c *Client) (redmine.JSON, error) {
				return c.Enumerations().DocumentCategories(context.Background())
			},
		},
		{
			name:         "queries",
			expectedPath: "/queries.json",
			expectedRaw:  "project_id=web",
			call: func(c *Client) (redmine.JSON, error) {
				return c.Queries().List(context.Background(), redmine.NewGroup().Set("project_id", "web"))
			},
		},
		{
			name:         "project news",
			expectedPath: "/projects/web/news.json",
			call: func(c *Client) (redmine.JSON, error) {
				return c.News().ProjectList(context.Background(), "web")
			},
		},
		{
			name:         "trackers",
			expectedPath: "/trackers.json",
			call: func(c *Client) (redmine.JSON, error) {
				return c.Trackers().List(context.Background())
			},
		},
		{
			name:         "issue statuses",
			expectedPath: "/issue_statuses.json",
			call: func(c *Client) (redmine.JSON, error) {
				return c.IssueStatuses().List(context.Background())
			},
		},
		{
			name:         "custom fields",
			expectedPath: "/custom_fields.json",
			call: func(c *Client) (redmine.JSON, error) {
				return c.CustomFields().List(context.Background())
			},
		},
		{
			name:         "role",
			expectedPath: "/roles/3.json",
			call: func(c *Client) (redmine.JSON, error) {
				return c.Roles().Get(context.Background(), 3)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			server, rec := newRecordingServer(t, http.StatusOK, map[string]any{"ok": true})
			client := NewTestClient(server.URL)

			resp, err := tt.call(client)
			require.NoError(t, err)
			assert.NotNil(t, resp)

			req := rec.last(t)
			assert.Equal(t, http.MethodGet, req.Method)
			assert.Equal(t, tt.expectedPath, req.Path)
			assert.Equal(t, tt.expectedRaw, req.RawQuery)
		})
	}
}

func TestAttachmentsClient(t *testing.T) {
	t.Parallel()

	server, rec := newRecordingServer(t, http.StatusOK, map[string]any{
		"attachment": map[string]any{"id": 17, "filename": "log.txt", "filesize": 120},
	})
	client := NewTestClient(server.URL)

	attachment, err := client.Attachments().Get(context.Background(), 17)
	require.NoError(t, err)
	assert.Equal(t, "log.txt", attachment["filename"])
	assert.Equal(t, "/attachments/17.json", rec.last(t).Path)

	_, err = client.Attachments().Update(context.Background(), 17, redmine.JSON{
		"filename":    "server.log",
		"content_url": "http://elsewhere",
	})
	require.NoError(t, err)

	req := rec.last(t)
	assert.Equal(t, http.MethodPut, req.Method)
	assert.Equal(t, redmine.JSON{"attachment": map[string]any{"filename": "server.log"}}, req.Body)
}
