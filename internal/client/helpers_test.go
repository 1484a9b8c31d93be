package client

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	internalhttp "github.com/fivetwenty-io/redmine-client/internal/http"
	"github.com/fivetwenty-io/redmine-client/pkg/redmine"
)

const testAPIKey = "test-api-key"

// capturedRequest is what the test server saw for one call.
type capturedRequest struct {
	Method      string
	Path        string
	RawQuery    string
	ContentType string
	APIKey      string
	RawBody     []byte
	Body        redmine.JSON
}

// recorder collects the requests received by a test server.
type recorder struct {
	mu       sync.Mutex
	requests []capturedRequest
}

func (r *recorder) add(req capturedRequest) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.requests = append(r.requests, req)
}

func (r *recorder) all() []capturedRequest {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]capturedRequest(nil), r.requests...)
}

func (r *recorder) last(t *testing.T) capturedRequest {
	t.Helper()

	requests := r.all()
	require.NotEmpty(t, requests, "no request reached the server")

	return requests[len(requests)-1]
}

// NewTestClient creates a registry client bound to baseURL.
func NewTestClient(baseURL string) *Client {
	return NewWithHTTPClient(internalhttp.NewClient(baseURL, testAPIKey), nil)
}

// newRecordingServer answers every request with status and response, and
// records what it received.
func newRecordingServer(t *testing.T, status int, response any) (*httptest.Server, *recorder) {
	t.Helper()

	return newHandlerServer(t, func(w http.ResponseWriter, _ capturedRequest) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)

		if response != nil {
			_ = json.NewEncoder(w).Encode(response)
		}
	})
}

// newHandlerServer records every request and delegates the answer to handle.
func newHandlerServer(t *testing.T, handle func(w http.ResponseWriter, req capturedRequest)) (*httptest.Server, *recorder) {
	t.Helper()

	rec := &recorder{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, err := io.ReadAll(r.Body)
		assert.NoError(t, err)

		captured := capturedRequest{
			Method:      r.Method,
			Path:        r.URL.EscapedPath(),
			RawQuery:    r.URL.RawQuery,
			ContentType: r.Header.Get("Content-Type"),
			APIKey:      r.Header.Get("X-Redmine-API-Key"),
			RawBody:     raw,
		}

		if len(raw) > 0 && captured.ContentType == "application/json" {
			assert.NoError(t, json.Unmarshal(raw, &captured.Body))
		}

		rec.add(captured)
		handle(w, captured)
	}))
	t.Cleanup(server.Close)

	return server, rec
}

// writeJSON answers with a 200 JSON body.
func writeJSON(t *testing.T, w http.ResponseWriter, response any) {
	t.Helper()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	assert.NoError(t, json.NewEncoder(w).Encode(response))
}

// parseQuery flattens a raw query into its first values.
func parseQuery(raw string) (map[string]string, error) {
	values, err := url.ParseQuery(raw)
	if err != nil {
		return nil, err
	}

	flat := make(map[string]string, len(values))
	for key := range values {
		flat[key] = values.Get(key)
	}

	return flat, nil
}

// TestDeleteOperation represents a delete test case.
type TestDeleteOperation struct {
	Name         string
	ExpectedPath string
	StatusCode   int
	Call         func(*Client) (int, error)
	WantErr      bool
}

// RunDeleteTests runs delete test cases against a recording server.
func RunDeleteTests(t *testing.T, tests []TestDeleteOperation) {
	t.Helper()

	for _, tt := range tests {
		t.Run(tt.Name, func(t *testing.T) {
			t.Parallel()

			server, rec := newRecordingServer(t, tt.StatusCode, nil)
			client := NewTestClient(server.URL)

			status, err := tt.Call(client)
			if tt.WantErr {
				require.Error(t, err)
				assert.Equal(t, redmine.KindRequest, redmine.KindOf(err))
			} else {
				require.NoError(t, err)
				assert.True(t, redmine.IsSuccess(status))
			}

			assert.Equal(t, tt.StatusCode, status)

			req := rec.last(t)
			assert.Equal(t, http.MethodDelete, req.Method)
			assert.Equal(t, tt.ExpectedPath, req.Path)
		})
	}
}
