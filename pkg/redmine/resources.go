package redmine

import (
	"context"
	"strings"
)

// ResourceType identifies one REST sub-API.
type ResourceType int

// Resource types served by the registry.
const (
	ResourceAttachment ResourceType = iota + 1
	ResourceCustomField
	ResourceEnumeration
	ResourceFile
	ResourceGroup
	ResourceIssue
	ResourceIssueCategory
	ResourceIssueRelation
	ResourceIssueStatus
	ResourceNews
	ResourceProject
	ResourceProjectMembership
	ResourceQuery
	ResourceRole
	ResourceTimeEntry
	ResourceTracker
	ResourceUser
	ResourceVersion
	ResourceWiki
)

var resourceNames = map[ResourceType]string{
	ResourceAttachment:        "attachment",
	ResourceCustomField:       "custom_field",
	ResourceEnumeration:       "enumeration",
	ResourceFile:              "file",
	ResourceGroup:             "group",
	ResourceIssue:             "issue",
	ResourceIssueCategory:     "issue_category",
	ResourceIssueRelation:     "issue_relation",
	ResourceIssueStatus:       "issue_status",
	ResourceNews:              "news",
	ResourceProject:           "project",
	ResourceProjectMembership: "project_membership",
	ResourceQuery:             "query",
	ResourceRole:              "role",
	ResourceTimeEntry:         "time_entry",
	ResourceTracker:           "tracker",
	ResourceUser:              "user",
	ResourceVersion:           "version",
	ResourceWiki:              "wiki",
}

// String implements fmt.Stringer.
func (t ResourceType) String() string {
	if name, ok := resourceNames[t]; ok {
		return name
	}

	return "unknown"
}

// Valid reports whether t is one of the known resource types.
func (t ResourceType) Valid() bool {
	_, ok := resourceNames[t]

	return ok
}

// AllResourceTypes returns every known resource type in declaration order.
func AllResourceTypes() []ResourceType {
	types := make([]ResourceType, 0, len(resourceNames))
	for t := ResourceAttachment; t <= ResourceWiki; t++ {
		types = append(types, t)
	}

	return types
}

// ParseResourceType resolves a resource name case-insensitively. "TimeEntry",
// "time_entry" and "time-entry" all name the same type.
func ParseResourceType(name string) (ResourceType, error) {
	normalized := normalizeResourceName(name)

	for t, known := range resourceNames {
		if normalizeResourceName(known) == normalized {
			return t, nil
		}
	}

	return 0, NewValidationError(ErrBadResource, "")
}

func normalizeResourceName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))

	return strings.NewReplacer("_", "", "-", "", " ", "").Replace(name)
}

// ListOptions controls a collection request. Resources ignore the fields
// their endpoint does not support.
type ListOptions struct {
	// Filters are endpoint-specific query parameters such as project_id.
	Filters *Group
	// Page selects the window. When nil, list operations that page by default
	// use offset 0 and limit 25 unless Filters already carries them.
	Page *Page
	// Sort is joined with "," into the sort parameter.
	Sort []string
	// Include is joined with "," into the include parameter.
	Include []string
}

// UserCreateRequest holds the fields required to create a user.
type UserCreateRequest struct {
	Login     string
	Firstname string
	Lastname  string
	Mail      string
	// Data carries optional fields, filtered through the user whitelist.
	Data JSON
	// SendInformation asks the server to email the account details.
	SendInformation bool
}

// VersionOptions describes a version. Empty fields are left out of the payload.
type VersionOptions struct {
	Name        string
	Status      string
	Sharing     string
	DueDate     string
	Description string
}

// Time entry reference types.
const (
	TimeEntryOnIssue   = "issue"
	TimeEntryOnProject = "project"
)

// AttachmentsClient defines operations for attachments.
type AttachmentsClient interface {
	Get(ctx context.Context, id int) (JSON, error)
	Update(ctx context.Context, id int, data JSON) (JSON, error)
	Delete(ctx context.Context, id int) (int, error)
}

// CustomFieldsClient defines operations for custom field definitions.
type CustomFieldsClient interface {
	List(ctx context.Context) (JSON, error)
}

// EnumerationsClient defines operations for enumerations.
type EnumerationsClient interface {
	IssuePriorities(ctx context.Context) (JSON, error)
	TimeEntryActivities(ctx context.Context) (JSON, error)
	DocumentCategories(ctx context.Context) (JSON, error)
}

// FilesClient defines operations for uploads and project files.
type FilesClient interface {
	CreateUploadToken(ctx context.Context, content []byte) (string, error)
	List(ctx context.Context, projectID string) (JSON, error)
	Create(ctx context.Context, projectID string, token string, data JSON) (JSON, error)
}

// GroupsClient defines operations for groups.
type GroupsClient interface {
	List(ctx context.Context) (JSON, error)
	Get(ctx context.Context, id int, include ...string) (JSON, error)
	Create(ctx context.Context, name string, userIDs []int) (JSON, error)
	Update(ctx context.Context, id int, data JSON) (JSON, error)
	Delete(ctx context.Context, id int) (int, error)
	AddUser(ctx context.Context, id int, userID int) (JSON, error)
	DeleteUser(ctx context.Context, id int, userID int) (int, error)
}

// IssuesClient defines operations for issues.
type IssuesClient interface {
	List(ctx context.Context, opts *ListOptions) (JSON, error)
	ListAll(ctx context.Context, filters *Group) ([]any, error)
	Get(ctx context.Context, id int, include ...string) (JSON, error)
	Create(ctx context.Context, data JSON) (JSON, error)
	Update(ctx context.Context, id int, data JSON) (JSON, error)
	Delete(ctx context.Context, id int) (int, error)
	GetNotes(ctx context.Context, id int, skipSystem bool) ([]any, error)
	AddNote(ctx context.Context, id int, note string) (JSON, error)
	UpdateStatus(ctx context.Context, id int, statusID int) (JSON, error)
	AddWatcher(ctx context.Context, id int, userID int) (JSON, error)
	RemoveWatcher(ctx context.Context, id int, userID int) (int, error)
}

// IssueCategoriesClient defines operations for issue categories.
type IssueCategoriesClient interface {
	List(ctx context.Context, projectID string, page *Page) (JSON, error)
	Get(ctx context.Context, id int) (JSON, error)
	Create(ctx context.Context, projectID string, name string, assignedToID int) (JSON, error)
	Update(ctx context.Context, id int, data JSON) (JSON, error)
	Delete(ctx context.Context, id int, reassignToID int) (int, error)
}

// IssueRelationsClient defines operations for issue relations.
type IssueRelationsClient interface {
	List(ctx context.Context, issueID int) (JSON, error)
	Get(ctx context.Context, id int, include ...string) (JSON, error)
	Create(ctx context.Context, issueID int, issueToID int, relationType string, delay *int) (JSON, error)
	Delete(ctx context.Context, id int) (int, error)
}

// IssueStatusesClient defines operations for issue statuses.
type IssueStatusesClient interface {
	List(ctx context.Context) (JSON, error)
}

// NewsClient defines operations for news.
type NewsClient interface {
	List(ctx context.Context) (JSON, error)
	ProjectList(ctx context.Context, projectID string) (JSON, error)
}

// ProjectsClient defines operations for projects. Project ids may be numeric
// or the project identifier.
type ProjectsClient interface {
	List(ctx context.Context, opts *ListOptions) (JSON, error)
	ListAll(ctx context.Context, filters *Group) ([]any, error)
	Get(ctx context.Context, id string, include ...string) (JSON, error)
	Create(ctx context.Context, name string, identifier string, data JSON) (JSON, error)
	Update(ctx context.Context, id string, data JSON) (JSON, error)
	Delete(ctx context.Context, id string) (int, error)
}

// ProjectMembershipsClient defines operations for project memberships.
type ProjectMembershipsClient interface {
	List(ctx context.Context, projectID string, page *Page) (JSON, error)
	Get(ctx context.Context, id int) (JSON, error)
	Create(ctx context.Context, projectID string, userID int, roleIDs []int) (JSON, error)
	Update(ctx context.Context, id int, roleIDs []int) (JSON, error)
	Delete(ctx context.Context, id int) (int, error)
}

// QueriesClient defines operations for saved queries.
type QueriesClient interface {
	List(ctx context.Context, filters *Group) (JSON, error)
}

// RolesClient defines operations for roles.
type RolesClient interface {
	List(ctx context.Context) (JSON, error)
	Get(ctx context.Context, id int) (JSON, error)
}

// TimeEntriesClient defines operations for time entries.
type TimeEntriesClient interface {
	List(ctx context.Context, opts *ListOptions) (JSON, error)
	ListAll(ctx context.Context, filters *Group) ([]any, error)
	Get(ctx context.Context, id int) (JSON, error)
	Create(ctx context.Context, reference string, id int, hours float64, data JSON) (JSON, error)
	Update(ctx context.Context, id int, data JSON) (JSON, error)
	Delete(ctx context.Context, id int) (int, error)
}

// TrackersClient defines operations for trackers.
type TrackersClient interface {
	List(ctx context.Context) (JSON, error)
}

// UsersClient defines operations for users. Get accepts a numeric id or
// "current".
type UsersClient interface {
	List(ctx context.Context, opts *ListOptions) (JSON, error)
	ListAll(ctx context.Context, filters *Group) ([]any, error)
	Get(ctx context.Context, id string, include ...string) (JSON, error)
	GetCurrent(ctx context.Context, include ...string) (JSON, error)
	Create(ctx context.Context, req *UserCreateRequest) (JSON, error)
	Update(ctx context.Context, id int, data JSON) (JSON, error)
	Delete(ctx context.Context, id int) (int, error)
}

// VersionsClient defines operations for versions.
type VersionsClient interface {
	List(ctx context.Context, projectID string) (JSON, error)
	Get(ctx context.Context, id int) (JSON, error)
	Create(ctx context.Context, projectID string, opts *VersionOptions) (JSON, error)
	Update(ctx context.Context, id int, opts *VersionOptions) (JSON, error)
	Delete(ctx context.Context, id int) (int, error)
}

// WikiClient defines operations for wiki pages.
type WikiClient interface {
	List(ctx context.Context, projectID string) (JSON, error)
	Get(ctx context.Context, projectID string, title string, include ...string) (JSON, error)
	GetByVersion(ctx context.Context, projectID string, title string, version int, include ...string) (JSON, error)
	UpdateOrCreate(ctx context.Context, projectID string, title string, data JSON) (JSON, error)
	Delete(ctx context.Context, projectID string, title string) (int, error)
}
