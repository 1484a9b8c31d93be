package client

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/redmine-client/internal/http"
	"github.com/fivetwenty-io/redmine-client/pkg/redmine"
)

// TrackersClient implements redmine.TrackersClient.
type TrackersClient struct {
	httpClient *http.Client
}

// NewTrackersClient creates a new trackers client.
func NewTrackersClient(httpClient *http.Client) *TrackersClient {
	return &TrackersClient{
		httpClient: httpClient,
	}
}

// List implements redmine.TrackersClient.List.
func (c *TrackersClient) List(ctx context.Context) (redmine.JSON, error) {
	resp, err := c.httpClient.Get(ctx, "/trackers.json", nil)
	if err != nil {
		return nil, fmt.Errorf("listing trackers: %w", err)
	}

	return resp, nil
}
