// Package redmineclient provides the main entry point for creating Redmine API clients
package redmineclient

import (
	"fmt"
	"strings"

	"github.com/fivetwenty-io/redmine-client/internal/client"
	"github.com/fivetwenty-io/redmine-client/pkg/redmine"
)

// New creates a new Redmine API client. The config is copied, so later
// changes to it do not affect the returned client.
func New(config *redmine.Config) (redmine.Client, error) {
	if config == nil {
		return nil, redmine.ErrConfigRequired
	}

	if config.BaseURL == "" {
		return nil, redmine.ErrBaseURLRequired
	}

	normalized := *config
	normalized.BaseURL = normalizeBaseURL(config.BaseURL)

	c, err := client.New(&normalized)
	if err != nil {
		return nil, fmt.Errorf("failed to create new client: %w", err)
	}

	return c, nil
}

// NewWithAPIKey creates a new client for baseURL authenticated with apiKey.
func NewWithAPIKey(baseURL, apiKey string) (redmine.Client, error) {
	if apiKey == "" {
		return nil, redmine.ErrAPIKeyRequired
	}

	return New(&redmine.Config{
		BaseURL: baseURL,
		APIKey:  apiKey,
	})
}

// normalizeBaseURL trims trailing slashes and defaults the scheme to https.
func normalizeBaseURL(baseURL string) string {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
		baseURL = "https://" + baseURL
	}

	return baseURL
}
