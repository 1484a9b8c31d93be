package redmine

import (
	"time"
)

// IDName is the {id, name} reference Redmine embeds for related objects.
type IDName struct {
	ID   int    `json:"id"   yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

// CustomFieldValue is a custom field as attached to an issue, project or user.
type CustomFieldValue struct {
	ID       int    `json:"id"                 yaml:"id"`
	Name     string `json:"name"               yaml:"name"`
	Multiple bool   `json:"multiple,omitempty" yaml:"multiple,omitempty"`
	Value    any    `json:"value"              yaml:"value"`
}

// Issue represents an issue.
type Issue struct {
	ID             int                `json:"id"                        yaml:"id"`
	Project        *IDName            `json:"project,omitempty"         yaml:"project,omitempty"`
	Tracker        *IDName            `json:"tracker,omitempty"         yaml:"tracker,omitempty"`
	Status         *IDName            `json:"status,omitempty"          yaml:"status,omitempty"`
	Priority       *IDName            `json:"priority,omitempty"        yaml:"priority,omitempty"`
	Author         *IDName            `json:"author,omitempty"          yaml:"author,omitempty"`
	AssignedTo     *IDName            `json:"assigned_to,omitempty"     yaml:"assigned_to,omitempty"`
	Category       *IDName            `json:"category,omitempty"        yaml:"category,omitempty"`
	FixedVersion   *IDName            `json:"fixed_version,omitempty"   yaml:"fixed_version,omitempty"`
	Parent         *IssueRef          `json:"parent,omitempty"          yaml:"parent,omitempty"`
	Subject        string             `json:"subject"                   yaml:"subject"`
	Description    string             `json:"description"               yaml:"description"`
	StartDate      string             `json:"start_date,omitempty"      yaml:"start_date,omitempty"`
	DueDate        string             `json:"due_date,omitempty"        yaml:"due_date,omitempty"`
	DoneRatio      int                `json:"done_ratio"                yaml:"done_ratio"`
	IsPrivate      bool               `json:"is_private"                yaml:"is_private"`
	EstimatedHours float64            `json:"estimated_hours,omitempty" yaml:"estimated_hours,omitempty"`
	SpentHours     float64            `json:"spent_hours,omitempty"     yaml:"spent_hours,omitempty"`
	CustomFields   []CustomFieldValue `json:"custom_fields,omitempty"   yaml:"custom_fields,omitempty"`
	Journals       []Journal          `json:"journals,omitempty"        yaml:"journals,omitempty"`
	Watchers       []IDName           `json:"watchers,omitempty"        yaml:"watchers,omitempty"`
	CreatedOn      time.Time          `json:"created_on"                yaml:"created_on"`
	UpdatedOn      time.Time          `json:"updated_on"                yaml:"updated_on"`
	ClosedOn       time.Time          `json:"closed_on,omitempty"       yaml:"closed_on,omitempty"`
}

// IssueRef is the bare {id} reference used for parent issues.
type IssueRef struct {
	ID int `json:"id" yaml:"id"`
}

// Journal is one entry of an issue's history.
type Journal struct {
	ID           int             `json:"id"            yaml:"id"`
	User         *IDName         `json:"user,omitempty" yaml:"user,omitempty"`
	Notes        string          `json:"notes"         yaml:"notes"`
	PrivateNotes bool            `json:"private_notes" yaml:"private_notes"`
	CreatedOn    time.Time       `json:"created_on"    yaml:"created_on"`
	Details      []JournalDetail `json:"details"       yaml:"details"`
}

// JournalDetail is a single attribute change recorded in a journal.
type JournalDetail struct {
	Property string `json:"property"  yaml:"property"`
	Name     string `json:"name"      yaml:"name"`
	OldValue string `json:"old_value" yaml:"old_value"`
	NewValue string `json:"new_value" yaml:"new_value"`
}

// Project represents a project.
type Project struct {
	ID             int                `json:"id"                      yaml:"id"`
	Name           string             `json:"name"                    yaml:"name"`
	Identifier     string             `json:"identifier"              yaml:"identifier"`
	Description    string             `json:"description"             yaml:"description"`
	Homepage       string             `json:"homepage,omitempty"      yaml:"homepage,omitempty"`
	Status         int                `json:"status"                  yaml:"status"`
	IsPublic       bool               `json:"is_public"               yaml:"is_public"`
	InheritMembers bool               `json:"inherit_members"         yaml:"inherit_members"`
	Parent         *IDName            `json:"parent,omitempty"        yaml:"parent,omitempty"`
	CustomFields   []CustomFieldValue `json:"custom_fields,omitempty" yaml:"custom_fields,omitempty"`
	CreatedOn      time.Time          `json:"created_on"              yaml:"created_on"`
	UpdatedOn      time.Time          `json:"updated_on"              yaml:"updated_on"`
}

// User represents a user account.
type User struct {
	ID           int                `json:"id"                      yaml:"id"`
	Login        string             `json:"login"                   yaml:"login"`
	Admin        bool               `json:"admin"                   yaml:"admin"`
	Firstname    string             `json:"firstname"               yaml:"firstname"`
	Lastname     string             `json:"lastname"                yaml:"lastname"`
	Mail         string             `json:"mail"                    yaml:"mail"`
	Status       int                `json:"status,omitempty"        yaml:"status,omitempty"`
	APIKey       string             `json:"api_key,omitempty"       yaml:"api_key,omitempty"`
	CustomFields []CustomFieldValue `json:"custom_fields,omitempty" yaml:"custom_fields,omitempty"`
	CreatedOn    time.Time          `json:"created_on"              yaml:"created_on"`
	LastLoginOn  time.Time          `json:"last_login_on"           yaml:"last_login_on"`
}

// TimeEntry represents logged time.
type TimeEntry struct {
	ID        int       `json:"id"                 yaml:"id"`
	Project   *IDName   `json:"project,omitempty"  yaml:"project,omitempty"`
	Issue     *IssueRef `json:"issue,omitempty"    yaml:"issue,omitempty"`
	User      *IDName   `json:"user,omitempty"     yaml:"user,omitempty"`
	Activity  *IDName   `json:"activity,omitempty" yaml:"activity,omitempty"`
	Hours     float64   `json:"hours"              yaml:"hours"`
	Comments  string    `json:"comments"           yaml:"comments"`
	SpentOn   string    `json:"spent_on"           yaml:"spent_on"`
	CreatedOn time.Time `json:"created_on"         yaml:"created_on"`
	UpdatedOn time.Time `json:"updated_on"         yaml:"updated_on"`
}

// Upload is the token returned for raw bytes posted to the uploads endpoint.
type Upload struct {
	ID    int    `json:"id,omitempty" yaml:"id,omitempty"`
	Token string `json:"token"        yaml:"token"`
}
