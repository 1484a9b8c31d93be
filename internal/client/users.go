package client

import (
	"context"
	"fmt"
	"strconv"

	"github.com/fivetwenty-io/redmine-client/internal/http"
	"github.com/fivetwenty-io/redmine-client/pkg/redmine"
)

const (
	usersPath     = "/users.json"
	currentUserID = "current"
)

var userFields = redmine.Permit(
	"login",
	"password",
	"firstname",
	"lastname",
	"mail",
	"auth_source_id",
	"mail_notification",
	"must_change_passwd",
	"generate_password",
)

// UsersClient implements redmine.UsersClient.
type UsersClient struct {
	httpClient *http.Client
}

// NewUsersClient creates a new users client.
func NewUsersClient(httpClient *http.Client) *UsersClient {
	return &UsersClient{
		httpClient: httpClient,
	}
}

// List implements redmine.UsersClient.List.
func (c *UsersClient) List(ctx context.Context, opts *redmine.ListOptions) (redmine.JSON, error) {
	resp, err := c.httpClient.Get(ctx, usersPath, listQuery(opts, false))
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}

	return resp, nil
}

// ListAll implements redmine.UsersClient.ListAll.
func (c *UsersClient) ListAll(ctx context.Context, filters *redmine.Group) ([]any, error) {
	items, err := redmine.All(ctx, pagedList(c.httpClient, usersPath), "users", filters, 0)
	if err != nil {
		return nil, fmt.Errorf("listing all users: %w", err)
	}

	return items, nil
}

// Get implements redmine.UsersClient.Get.
func (c *UsersClient) Get(ctx context.Context, id string, include ...string) (redmine.JSON, error) {
	err := checkUserID(id)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Get(ctx, "/users/"+id+".json", includeQuery(include))
	if err != nil {
		return nil, fmt.Errorf("getting user: %w", err)
	}

	return resp, nil
}

// GetCurrent implements redmine.UsersClient.GetCurrent.
func (c *UsersClient) GetCurrent(ctx context.Context, include ...string) (redmine.JSON, error) {
	return c.Get(ctx, currentUserID, include...)
}

// Create implements redmine.UsersClient.Create. The required fields override
// the same keys in req.Data.
func (c *UsersClient) Create(ctx context.Context, req *redmine.UserCreateRequest) (redmine.JSON, error) {
	if req == nil {
		return nil, redmine.NewValidationError(redmine.ErrNameRequired, "user create request is required")
	}

	user := redmine.SanitizeData(req.Data, userFields)

	user["login"] = req.Login
	user["firstname"] = req.Firstname
	user["lastname"] = req.Lastname
	user["mail"] = req.Mail

	payload := wrap("user", user)
	payload["send_information"] = req.SendInformation

	resp, err := c.httpClient.Post(ctx, usersPath, payload)
	if err != nil {
		return nil, fmt.Errorf("creating user: %w", err)
	}

	return resp, nil
}

// Update implements redmine.UsersClient.Update.
func (c *UsersClient) Update(ctx context.Context, id int, data redmine.JSON) (redmine.JSON, error) {
	resp, err := c.httpClient.Put(ctx, "/users/"+itoa(id)+".json", wrap("user", redmine.SanitizeData(data, userFields)))
	if err != nil {
		return nil, fmt.Errorf("updating user: %w", err)
	}

	return resp, nil
}

// Delete implements redmine.UsersClient.Delete.
func (c *UsersClient) Delete(ctx context.Context, id int) (int, error) {
	status, err := c.httpClient.Delete(ctx, "/users/"+itoa(id)+".json", nil)
	if err != nil {
		return status, fmt.Errorf("deleting user: %w", err)
	}

	return status, nil
}

// checkUserID accepts a positive decimal id in canonical form or "current".
func checkUserID(id string) error {
	if id == currentUserID {
		return nil
	}

	n, err := strconv.Atoi(id)
	if err != nil || n <= 0 || strconv.Itoa(n) != id {
		return redmine.NewValidationError(redmine.ErrInvalidID, "")
	}

	return nil
}
