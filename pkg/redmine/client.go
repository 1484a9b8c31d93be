package redmine

import (
	"net/http"
	"time"
)

// TrackingClients provides access to the issue tracking resource clients.
type TrackingClients interface {
	Issues() IssuesClient
	IssueCategories() IssueCategoriesClient
	IssueRelations() IssueRelationsClient
	IssueStatuses() IssueStatusesClient
	Trackers() TrackersClient
	TimeEntries() TimeEntriesClient
	Queries() QueriesClient
}

// ProjectClients provides access to project scoped resource clients.
type ProjectClients interface {
	Projects() ProjectsClient
	ProjectMemberships() ProjectMembershipsClient
	Versions() VersionsClient
	Wiki() WikiClient
	News() NewsClient
	Files() FilesClient
	Attachments() AttachmentsClient
}

// AccountClients provides access to user and permission resource clients.
type AccountClients interface {
	Users() UsersClient
	Groups() GroupsClient
	Roles() RolesClient
}

// AdministrationClients provides access to instance-wide definitions.
type AdministrationClients interface {
	CustomFields() CustomFieldsClient
	Enumerations() EnumerationsClient
}

// Client is the entry point to every resource. Resource clients are built on
// first access and reused for the lifetime of the Client.
type Client interface {
	TrackingClients
	ProjectClients
	AccountClients
	AdministrationClients

	// Resource returns the client for t, building it on first use.
	Resource(t ResourceType) (any, error)
	// ResourceByName resolves name with ParseResourceType and calls Resource.
	ResourceByName(name string) (any, error)
}

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Config represents client configuration for building a redmine.Client.
//
// The config is copied when the client is built. Changing it afterwards has no
// effect on existing clients.
type Config struct {
	// BaseURL of the Redmine instance (e.g., "https://redmine.example.com").
	// redmineclient.New trims a trailing slash and adds "https://" if no
	// scheme is present. Sub-path installs such as "https://host/redmine" work.
	BaseURL string
	// APIKey is sent as X-Redmine-API-Key on every request.
	APIKey string

	// UserAgent overrides the default User-Agent header.
	UserAgent string
	// Timeout for a single HTTP exchange. Ignored when HTTPClient is set.
	Timeout time.Duration
	// HTTPClient replaces the underlying *http.Client.
	HTTPClient *http.Client
	// Logger receives transport log lines. Nil disables logging.
	Logger Logger
	// Debug enables request/response logging at debug level.
	Debug bool
	// Interceptors run around every request. The chain is cloned when the
	// client is built; interceptors added to it later are not seen.
	Interceptors *InterceptorChain
}
