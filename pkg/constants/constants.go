// Package constants provides shared constants used throughout the labelsync codebase.
// This includes timeouts, limits, file permissions, and remote API defaults
// that should be consistent across the application.
package constants

import "time"

// Remote API constants
const (
	// DefaultEndpoint is the base URL of the public GitHub REST API
	DefaultEndpoint = "https://api.github.com"

	// AcceptHeader is the media type requested from the GitHub API
	AcceptHeader = "application/vnd.github+json"

	// APIVersion pins the GitHub REST API version
	APIVersion = "2022-11-28"

	// UserAgent identifies labelsync to the remote API
	UserAgent = "labelsync"

	// DefaultPageSize is the number of items requested per page for paginated reads
	DefaultPageSize = 100

	// MaxPageSize is the largest page size the GitHub API honours
	MaxPageSize = 100
)

// Timeout constants define various timeout durations used in the application
const (
	// DefaultHTTPTimeout is the standard timeout for a single HTTP request
	DefaultHTTPTimeout = 30 * time.Second

	// ShutdownTimeout bounds graceful shutdown after a failed command
	ShutdownTimeout = 5 * time.Second

	// RetryWaitMin is the minimum backoff between retries of a transient failure
	RetryWaitMin = 1 * time.Second

	// RetryWaitMax is the maximum backoff between retries of a transient failure
	RetryWaitMax = 30 * time.Second
)

// Limit constants define various limits and capacities
const (
	// MaxRetries is the maximum number of retry attempts for transient failures
	MaxRetries = 3

	// DefaultConcurrency is the default number of remote mutations in flight
	DefaultConcurrency = 10

	// MaxLabelNameLength is the maximum length of a label name or alias
	MaxLabelNameLength = 50

	// MaxDescriptionLength is the maximum length of a label description
	MaxDescriptionLength = 100
)

// Cache constants
const (
	// CacheTTL is how long a downloaded label document is reused
	CacheTTL = 15 * time.Minute

	// CacheCleanupInterval is how often to clean expired cache entries
	CacheCleanupInterval = 5 * time.Minute
)

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// Default file names
const (
	// DefaultLabelsFile is read when no label document is given
	DefaultLabelsFile = "labels.json"

	// ConfigFileName is the base name of the optional configuration file
	ConfigFileName = ".labelsync"
)
