package client

import (
	"fmt"
	"sync"

	"github.com/fivetwenty-io/redmine-client/internal/http"
	"github.com/fivetwenty-io/redmine-client/pkg/redmine"
)

// constructors maps every resource type to the function that builds its client.
var constructors = map[redmine.ResourceType]func(*http.Client) any{
	redmine.ResourceAttachment:        func(h *http.Client) any { return NewAttachmentsClient(h) },
	redmine.ResourceCustomField:       func(h *http.Client) any { return NewCustomFieldsClient(h) },
	redmine.ResourceEnumeration:       func(h *http.Client) any { return NewEnumerationsClient(h) },
	redmine.ResourceFile:              func(h *http.Client) any { return NewFilesClient(h) },
	redmine.ResourceGroup:             func(h *http.Client) any { return NewGroupsClient(h) },
	redmine.ResourceIssue:             func(h *http.Client) any { return NewIssuesClient(h) },
	redmine.ResourceIssueCategory:     func(h *http.Client) any { return NewIssueCategoriesClient(h) },
	redmine.ResourceIssueRelation:     func(h *http.Client) any { return NewIssueRelationsClient(h) },
	redmine.ResourceIssueStatus:       func(h *http.Client) any { return NewIssueStatusesClient(h) },
	redmine.ResourceNews:              func(h *http.Client) any { return NewNewsClient(h) },
	redmine.ResourceProject:           func(h *http.Client) any { return NewProjectsClient(h) },
	redmine.ResourceProjectMembership: func(h *http.Client) any { return NewProjectMembershipsClient(h) },
	redmine.ResourceQuery:             func(h *http.Client) any { return NewQueriesClient(h) },
	redmine.ResourceRole:              func(h *http.Client) any { return NewRolesClient(h) },
	redmine.ResourceTimeEntry:         func(h *http.Client) any { return NewTimeEntriesClient(h) },
	redmine.ResourceTracker:           func(h *http.Client) any { return NewTrackersClient(h) },
	redmine.ResourceUser:              func(h *http.Client) any { return NewUsersClient(h) },
	redmine.ResourceVersion:           func(h *http.Client) any { return NewVersionsClient(h) },
	redmine.ResourceWiki:              func(h *http.Client) any { return NewWikiClient(h) },
}

// Client implements the redmine.Client interface.
type Client struct {
	httpClient *http.Client
	logger     redmine.Logger

	mu        sync.Mutex
	resources map[redmine.ResourceType]any
}

var _ redmine.Client = (*Client)(nil)

// createHTTPClientOptions builds HTTP client options from config.
func createHTTPClientOptions(config *redmine.Config) []http.Option {
	var httpOpts []http.Option

	if config.Logger != nil {
		httpOpts = append(httpOpts, http.WithLogger(&loggerAdapter{logger: config.Logger}))
	}

	if config.Debug {
		httpOpts = append(httpOpts, http.WithDebug(true))
	}

	if config.UserAgent != "" {
		httpOpts = append(httpOpts, http.WithUserAgent(config.UserAgent))
	}

	if config.HTTPClient != nil {
		httpOpts = append(httpOpts, http.WithHTTPClient(config.HTTPClient))
	} else if config.Timeout > 0 {
		httpOpts = append(httpOpts, http.WithTimeout(config.Timeout))
	}

	if config.Interceptors != nil {
		httpOpts = append(httpOpts, http.WithInterceptors(config.Interceptors.Clone()))
	}

	return httpOpts
}

// New creates a new Redmine API client. config is not retained.
func New(config *redmine.Config) (*Client, error) {
	if config == nil {
		return nil, redmine.ErrConfigRequired
	}

	if config.BaseURL == "" {
		return nil, redmine.ErrBaseURLRequired
	}

	httpClient := http.NewClient(config.BaseURL, config.APIKey, createHTTPClientOptions(config)...)

	return NewWithHTTPClient(httpClient, config.Logger), nil
}

// NewWithHTTPClient creates a client around an existing transport.
func NewWithHTTPClient(httpClient *http.Client, logger redmine.Logger) *Client {
	return &Client{
		httpClient: httpClient,
		logger:     logger,
		resources:  make(map[redmine.ResourceType]any),
	}
}

// HTTPClient returns the shared transport.
func (c *Client) HTTPClient() *http.Client {
	return c.httpClient
}

// Resource implements redmine.Client.Resource.
func (c *Client) Resource(t redmine.ResourceType) (any, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if resource, ok := c.resources[t]; ok {
		return resource, nil
	}

	constructor, ok := constructors[t]
	if !ok {
		return nil, redmine.NewValidationError(redmine.ErrBadResource, "")
	}

	resource := constructor(c.httpClient)
	c.resources[t] = resource

	if c.logger != nil {
		c.logger.Debug("resource client created", map[string]interface{}{"resource": t.String()})
	}

	return resource, nil
}

// ResourceByName implements redmine.Client.ResourceByName.
func (c *Client) ResourceByName(name string) (any, error) {
	t, err := redmine.ParseResourceType(name)
	if err != nil {
		return nil, fmt.Errorf("resolving resource %q: %w", name, err)
	}

	return c.Resource(t)
}

// mustResource returns the client for a known resource type.
func (c *Client) mustResource(t redmine.ResourceType) any {
	resource, err := c.Resource(t)
	if err != nil {
		panic(err)
	}

	return resource
}

// Resource client accessors

// Attachments implements redmine.Client.Attachments.
func (c *Client) Attachments() redmine.AttachmentsClient {
	return c.mustResource(redmine.ResourceAttachment).(redmine.AttachmentsClient)
}

// CustomFields implements redmine.Client.CustomFields.
func (c *Client) CustomFields() redmine.CustomFieldsClient {
	return c.mustResource(redmine.ResourceCustomField).(redmine.CustomFieldsClient)
}

// Enumerations implements redmine.Client.Enumerations.
func (c *Client) Enumerations() redmine.EnumerationsClient {
	return c.mustResource(redmine.ResourceEnumeration).(redmine.EnumerationsClient)
}

// Files implements redmine.Client.Files.
func (c *Client) Files() redmine.FilesClient {
	return c.mustResource(redmine.ResourceFile).(redmine.FilesClient)
}

// Groups implements redmine.Client.Groups.
func (c *Client) Groups() redmine.GroupsClient {
	return c.mustResource(redmine.ResourceGroup).(redmine.GroupsClient)
}

// Issues implements redmine.Client.Issues.
func (c *Client) Issues() redmine.IssuesClient {
	return c.mustResource(redmine.ResourceIssue).(redmine.IssuesClient)
}

// IssueCategories implements redmine.Client.IssueCategories.
func (c *Client) IssueCategories() redmine.IssueCategoriesClient {
	return c.mustResource(redmine.ResourceIssueCategory).(redmine.IssueCategoriesClient)
}

// IssueRelations implements redmine.Client.IssueRelations.
func (c *Client) IssueRelations() redmine.IssueRelationsClient {
	return c.mustResource(redmine.ResourceIssueRelation).(redmine.IssueRelationsClient)
}

// IssueStatuses implements redmine.Client.IssueStatuses.
func (c *Client) IssueStatuses() redmine.IssueStatusesClient {
	return c.mustResource(redmine.ResourceIssueStatus).(redmine.IssueStatusesClient)
}

// News implements redmine.Client.News.
func (c *Client) News() redmine.NewsClient {
	return c.mustResource(redmine.ResourceNews).(redmine.NewsClient)
}

// Projects implements redmine.Client.Projects.
func (c *Client) Projects() redmine.ProjectsClient {
	return c.mustResource(redmine.ResourceProject).(redmine.ProjectsClient)
}

// ProjectMemberships implements redmine.Client.ProjectMemberships.
func (c *Client) ProjectMemberships() redmine.ProjectMembershipsClient {
	return c.mustResource(redmine.ResourceProjectMembership).(redmine.ProjectMembershipsClient)
}

// Queries implements redmine.Client.Queries.
func (c *Client) Queries() redmine.QueriesClient {
	return c.mustResource(redmine.ResourceQuery).(redmine.QueriesClient)
}

// Roles implements redmine.Client.Roles.
func (c *Client) Roles() redmine.RolesClient {
	return c.mustResource(redmine.ResourceRole).(redmine.RolesClient)
}

// TimeEntries implements redmine.Client.TimeEntries.
func (c *Client) TimeEntries() redmine.TimeEntriesClient {
	return c.mustResource(redmine.ResourceTimeEntry).(redmine.TimeEntriesClient)
}

// Trackers implements redmine.Client.Trackers.
func (c *Client) Trackers() redmine.TrackersClient {
	return c.mustResource(redmine.ResourceTracker).(redmine.TrackersClient)
}

// Users implements redmine.Client.Users.
func (c *Client) Users() redmine.UsersClient {
	return c.mustResource(redmine.ResourceUser).(redmine.UsersClient)
}

// Versions implements redmine.Client.Versions.
func (c *Client) Versions() redmine.VersionsClient {
	return c.mustResource(redmine.ResourceVersion).(redmine.VersionsClient)
}

// Wiki implements redmine.Client.Wiki.
func (c *Client) Wiki() redmine.WikiClient {
	return c.mustResource(redmine.ResourceWiki).(redmine.WikiClient)
}

// loggerAdapter adapts a caller supplied redmine.Logger for the transport.
type loggerAdapter struct {
	logger redmine.Logger
}

func (l *loggerAdapter) Debug(msg string, fields map[string]interface{}) {
	l.logger.Debug(msg, fields)
}

func (l *loggerAdapter) Info(msg string, fields map[string]interface{}) {
	l.logger.Info(msg, fields)
}

func (l *loggerAdapter) Warn(msg string, fields map[string]interface{}) {
	l.logger.Warn(msg, fields)
}

func (l *loggerAdapter) Error(msg string, fields map[string]interface{}) {
	l.logger.Error(msg, fields)
}
