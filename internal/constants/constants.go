package constants

import "time"

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750

	// ConfigFilePerm is the permission for configuration files.
	ConfigFilePerm = 0600
)

// HTTP and network timeouts.
const (
	// DefaultHTTPTimeout is the default timeout for HTTP requests.
	DefaultHTTPTimeout = 30 * time.Second
)

// Request headers.
const (
	// APIKeyHeader carries the Redmine API key on every request.
	APIKeyHeader = "X-Redmine-API-Key"

	// ContentTypeJSON is the content type of JSON request bodies.
	ContentTypeJSON = "application/json"

	// ContentTypeOctetStream is the content type of file uploads.
	ContentTypeOctetStream = "application/octet-stream"

	// DefaultUserAgent is sent when the config does not override it.
	DefaultUserAgent = "redmine-client-go/1.0"
)

// Pagination limits.
const (
	// DefaultListLimit is the page size of a single list call.
	DefaultListLimit = 25

	// DefaultAggregatePageSize is the page size used when walking a whole collection.
	DefaultAggregatePageSize = 100

	// MaxPageSize is the largest page size Redmine honours.
	MaxPageSize = 100
)

// Upload paths.
const (
	// UploadsPath is the endpoint that turns raw bytes into an upload token.
	UploadsPath = "/uploads.json"
)

// Log rotation defaults used by the CLI.
const (
	// LogMaxSizeMB is the size of a log file before it is rotated.
	LogMaxSizeMB = 10

	// LogMaxBackups is the number of rotated files kept.
	LogMaxBackups = 3

	// LogMaxAgeDays is how long rotated files are kept.
	LogMaxAgeDays = 28
)
