package client

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/redmine-client/pkg/redmine"
)

func TestUsersClient_Get(t *testing.T) {
	t.Parallel()

	t.Run("rejects non numeric ids without a request", func(t *testing.T) {
		t.Parallel()

		server, rec := newRecordingServer(t, http.StatusOK, map[string]any{})
		client := NewTestClient(server.URL)

		for _, id := range []string{"abc", "+5", "-3", "0", "007", " 5", ""} {
			_, err := client.Users().Get(context.Background(), id)
			require.ErrorIs(t, err, redmine.ErrInvalidID, "id %q", id)
			assert.Equal(t, redmine.KindValidation, redmine.KindOf(err))
		}

		assert.Empty(t, rec.all())
	})

	t.Run("current user", func(t *testing.T) {
		t.Parallel()

		server, rec := newRecordingServer(t, http.StatusOK, map[string]any{
			"user": map[string]any{"id": 1, "login": "admin"},
		})
		client := NewTestClient(server.URL)

		resp, err := client.Users().GetCurrent(context.Background(), "memberships")
		require.NoError(t, err)

		req := rec.last(t)
		assert.Equal(t, "/users/current.json", req.Path)
		assert.Equal(t, "include=memberships", req.RawQuery)

		var user redmine.User
		require.NoError(t, redmine.Decode(resp["user"], &user))
		assert.Equal(t, 1, user.ID)
		assert.Equal(t, "admin", user.Login)
	})

	t.Run("numeric id", func(t *testing.T) {
		t.Parallel()

		server, rec := newRecordingServer(t, http.StatusOK, map[string]any{"user": map[string]any{"id": 5}})
		client := NewTestClient(server.URL)

		_, err := client.Users().Get(context.Background(), "5")
		require.NoError(t, err)
		assert.Equal(t, "/users/5.json", rec.last(t).Path)
		assert.Empty(t, rec.last(t).RawQuery)
	})
}

func TestUsersClient_List(t *testing.T) {
	t.Parallel()

	server, rec := newRecordingServer(t, http.StatusOK, map[string]any{"users": []any{}})
	client := NewTestClient(server.URL)

	_, err := client.Users().List(context.Background(), &redmine.ListOptions{
		Filters: redmine.NewGroup().Set("status", 1).Set("name", "jo"),
	})
	require.NoError(t, err)
	assert.Equal(t, "status=1&name=jo", rec.last(t).RawQuery)
}

func TestUsersClient_Create(t *testing.T) {
	t.Parallel()

	t.Run("required fields win over data", func(t *testing.T) {
		t.Parallel()

		server, rec := newRecordingServer(t, http.StatusCreated, map[string]any{"user": map[string]any{"id": 20}})
		client := NewTestClient(server.URL)

		_, err := client.Users().Create(context.Background(), &redmine.UserCreateRequest{
			Login:     "jsmith",
			Firstname: "Jo",
			Lastname:  "Smith",
			Mail:      "jo@example.com",
			Data: redmine.JSON{
				"login":             "ignored",
				"password":          "secret123",
				"admin":             true,
				"mail_notification": "only_my_events",
			},
			SendInformation: true,
		})
		require.NoError(t, err)

		req := rec.last(t)
		assert.Equal(t, http.MethodPost, req.Method)
		assert.Equal(t, "/users.json", req.Path)
		assert.Equal(t, redmine.JSON{
			"user": map[string]any{
				"login":             "jsmith",
				"firstname":         "Jo",
				"lastname":          "Smith",
				"mail":              "jo@example.com",
				"password":          "secret123",
				"mail_notification": "only_my_events",
			},
			"send_information": true,
		}, req.Body)
	})

	t.Run("nil request", func(t *testing.T) {
		t.Parallel()

		client := NewTestClient("http://localhost")

		_, err := client.Users().Create(context.Background(), nil)
		require.Error(t, err)
		assert.Equal(t, redmine.KindValidation, redmine.KindOf(err))
	})
}

func TestUsersClient_Update(t *testing.T) {
	t.Parallel()

	server, rec := newRecordingServer(t, http.StatusNoContent, nil)
	client := NewTestClient(server.URL)

	_, err := client.Users().Update(context.Background(), 8, redmine.JSON{"firstname": "Ann", "status": 3})
	require.NoError(t, err)

	req := rec.last(t)
	assert.Equal(t, http.MethodPut, req.Method)
	assert.Equal(t, "/users/8.json", req.Path)
	assert.Equal(t, redmine.JSON{"user": map[string]any{"firstname": "Ann"}}, req.Body)
}

func TestUsersClient_Delete(t *testing.T) {
	t.Parallel()

	RunDeleteTests(t, []TestDeleteOperation{
		{
			Name:         "deletes user",
			ExpectedPath: "/users/8.json",
			StatusCode:   http.StatusOK,
			Call: func(c *Client) (int, error) {
				return c.Users().Delete(context.Background(), 8)
			},
		},
		{
			Name:         "forbidden",
			ExpectedPath: "/users/1.json",
			StatusCode:   http.StatusForbidden,
			Call: func(c *Client) (int, error) {
				return c.Users().Delete(context.Background(), 1)
			},
			WantErr: true,
		},
	})
}
