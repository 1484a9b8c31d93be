package http_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	redminehttp "github.com/fivetwenty-io/redmine-client/internal/http"
	"github.com/fivetwenty-io/redmine-client/pkg/redmine"
)

// MockLogger for testing.
type MockLogger struct {
	mu   sync.Mutex
	logs []map[string]interface{}
}

func (l *MockLogger) Debug(msg string, fields map[string]interface{}) {
	l.add("debug", msg, fields)
}

func (l *MockLogger) Info(msg string, fields map[string]interface{}) {
	l.add("info", msg, fields)
}

func (l *MockLogger) Warn(msg string, fields map[string]interface{}) {
	l.add("warn", msg, fields)
}

func (l *MockLogger) Error(msg string, fields map[string]interface{}) {
	l.add("error", msg, fields)
}

func (l *MockLogger) add(level, msg string, fields map[string]interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.logs = append(l.logs, map[string]interface{}{"level": level, "msg": msg, "fields": fields})
}

func (l *MockLogger) messages() []string {
	l.mu.Lock()
	defer l.mu.Unlock()

	messages := make([]string, 0, len(l.logs))
	for _, entry := range l.logs {
		messages = append(messages, entry["msg"].(string))
	}

	return messages
}

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestClient_Do(t *testing.T) {
	t.Parallel()

	t.Run("sends authentication and content headers", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "/issues.json", request.URL.Path)
			assert.Equal(t, http.MethodGet, request.Method)
			assert.Equal(t, "secret", request.Header.Get("X-Redmine-API-Key"))
			assert.Equal(t, "application/json", request.Header.Get("Content-Type"))
			assert.Equal(t, "application/json", request.Header.Get("Accept"))
			assert.Equal(t, "redmine-test/1.0", request.Header.Get("User-Agent"))

			_, _ = writer.Write([]byte(`{"issues":[]}`))
		}))
		defer server.Close()

		client := redminehttp.NewClient(server.URL, "secret", redminehttp.WithUserAgent("redmine-test/1.0"))

		resp, err := client.Do(context.Background(), &redminehttp.Request{Method: http.MethodGet, Path: "/issues.json"})
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.JSONEq(t, `{"issues":[]}`, string(resp.Body))
	})

	t.Run("encodes query in insertion order", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "status_id=open&sort=updated_on%3Adesc&offset=0", request.URL.RawQuery)
			writer.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		client := redminehttp.NewClient(server.URL, "secret")

		query := redmine.BuildQueryParameters(redmine.NewGroup().
			Set("status_id", "open").
			Set("sort", "updated_on:desc").
			Set("offset", 0))

		_, err := client.Get(context.Background(), "/issues.json", query)
		require.NoError(t, err)
	})

	t.Run("joins paths onto a sub-path base URL", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "/redmine/projects.json", request.URL.Path)
			writer.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		client := redminehttp.NewClient(server.URL+"/redmine/", "secret")
		assert.Equal(t, server.URL+"/redmine", client.BaseURL())

		_, err := client.Get(context.Background(), "/projects.json", nil)
		require.NoError(t, err)
	})

	t.Run("not found", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
			writer.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()

		client := redminehttp.NewClient(server.URL, "secret")

		resp, err := client.Do(context.Background(), &redminehttp.Request{Method: http.MethodGet, Path: "/issues/1.json"})
		require.Error(t, err)
		require.NotNil(t, resp)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)

		reqErr := &redmine.RequestError{}
		require.ErrorAs(t, err, &reqErr)
		assert.Equal(t, http.StatusNotFound, reqErr.Code)
		assert.Equal(t, "Not Found", reqErr.Message)
		assert.True(t, redmine.IsNotFound(err))
	})

	t.Run("validation errors", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
			writer.WriteHeader(http.StatusUnprocessableEntity)
			_, _ = writer.Write([]byte(`{"errors":["Name cannot be blank","Identifier is too short"]}`))
		}))
		defer server.Close()

		client := redminehttp.NewClient(server.URL, "secret")

		_, err := client.Post(context.Background(), "/projects.json", redmine.JSON{"project": redmine.JSON{}})
		require.Error(t, err)

		reqErr := &redmine.RequestError{}
		require.ErrorAs(t, err, &reqErr)
		assert.Equal(t, []string{"Name cannot be blank", "Identifier is too short"}, reqErr.Errors)
	})

	t.Run("connection failure", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
		baseURL := server.URL
		server.Close()

		client := redminehttp.NewClient(baseURL, "secret")

		_, err := client.Get(context.Background(), "/issues.json", nil)
		require.Error(t, err)
		assert.Equal(t, redmine.KindRequest, redmine.KindOf(err))
		assert.Equal(t, http.StatusInternalServerError, redmine.StatusCode(err))
	})

	t.Run("does not retry server errors", func(t *testing.T) {
		t.Parallel()

		var attempts atomic.Int32

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
			attempts.Add(1)
			writer.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		client := redminehttp.NewClient(server.URL, "secret")

		_, err := client.Get(context.Background(), "/issues.json", nil)
		require.Error(t, err)
		assert.Equal(t, int32(1), attempts.Load())
		assert.Equal(t, http.StatusInternalServerError, redmine.StatusCode(err))
	})

	t.Run("context cancellation", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
			writer.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		client := redminehttp.NewClient(server.URL, "secret")

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := client.Get(ctx, "/issues.json", nil)
		require.Error(t, err)
		assert.Equal(t, redmine.KindRequest, redmine.KindOf(err))
	})
}

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestClient_Methods(t *testing.T) {
	t.Parallel()

	t.Run("POST encodes JSON body", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, http.MethodPost, request.Method)

			var body map[string]interface{}
			assert.NoError(t, json.NewDecoder(request.Body).Decode(&body))
			assert.Equal(t, map[string]interface{}{"issue": map[string]interface{}{"subject": "New"}}, body)

			writer.WriteHeader(http.StatusCreated)
			_, _ = writer.Write([]byte(`{"issue":{"id":1}}`))
		}))
		defer server.Close()

		client := redminehttp.NewClient(server.URL, "secret")

		resp, err := client.Post(context.Background(), "/issues.json", redmine.JSON{"issue": redmine.JSON{"subject": "New"}})
		require.NoError(t, err)
		assert.Equal(t, redmine.JSON{"issue": map[string]any{"id": float64(1)}}, resp)
	})

	t.Run("PUT with empty response", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, http.MethodPut, request.Method)
			writer.WriteHeader(http.StatusNoContent)
		}))
		defer server.Close()

		client := redminehttp.NewClient(server.URL, "secret")

		resp, err := client.Put(context.Background(), "/issues/1.json", redmine.JSON{"issue": redmine.JSON{}})
		require.NoError(t, err)
		assert.NotNil(t, resp)
		assert.Empty(t, resp)
	})

	t.Run("DELETE returns the status", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, http.MethodDelete, request.Method)
			writer.WriteHeader(http.StatusNoContent)
		}))
		defer server.Close()

		client := redminehttp.NewClient(server.URL, "secret")

		status, err := client.Delete(context.Background(), "/issues/1.json", nil)
		require.NoError(t, err)
		assert.Equal(t, http.StatusNoContent, status)
	})

	t.Run("Upload sends octet-stream", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "application/octet-stream", request.Header.Get("Content-Type"))

			body, err := io.ReadAll(request.Body)
			assert.NoError(t, err)
			assert.Equal(t, []byte{0x00, 0x01, 0x02}, body)

			writer.WriteHeader(http.StatusCreated)
			_, _ = writer.Write([]byte(`{"upload":{"token":"1.abc"}}`))
		}))
		defer server.Close()

		client := redminehttp.NewClient(server.URL, "secret")

		resp, err := client.Upload(context.Background(), "/uploads.json", []byte{0x00, 0x01, 0x02}, nil)
		require.NoError(t, err)
		assert.Equal(t, "1.abc", resp["upload"].(redmine.JSON)["token"])
	})

	t.Run("invalid JSON", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
			_, _ = writer.Write([]byte(`<html>maintenance</html>`))
		}))
		defer server.Close()

		client := redminehttp.NewClient(server.URL, "secret")

		_, err := client.Get(context.Background(), "/issues.json", nil)
		require.Error(t, err)
		assert.Equal(t, redmine.KindResponse, redmine.KindOf(err))
	})
}

func TestDecodeJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		body    string
		want    redmine.JSON
		wantErr bool
	}{
		{name: "empty body", body: "", want: redmine.JSON{}},
		{name: "whitespace body", body: "  \n", want: redmine.JSON{}},
		{name: "object", body: `{"a":1}`, want: redmine.JSON{"a": float64(1)}},
		{name: "array", body: `[1,2]`, wantErr: true},
		{name: "garbage", body: `nope`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := redminehttp.DecodeJSON([]byte(tt.body))
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, redmine.KindResponse, redmine.KindOf(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClient_Logging(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
		_, _ = writer.Write([]byte(`{}`))
	}))
	defer server.Close()

	logger := &MockLogger{}
	client := redminehttp.NewClient(server.URL, "secret",
		redminehttp.WithLogger(logger),
		redminehttp.WithDebug(true),
	)

	_, err := client.Get(context.Background(), "/issues.json", nil)
	require.NoError(t, err)

	messages := logger.messages()
	assert.Contains(t, messages, "HTTP Request")
	assert.Contains(t, messages, "HTTP Response")
}

func TestClient_Interceptors(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "jsmith", request.Header.Get("X-Redmine-Switch-User"))
		assert.Equal(t, "trace-1", request.Header.Get("X-Trace"))
		writer.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	collector := redmine.NewMetricsCollector()

	var seen []int

	chain := redmine.NewInterceptorChain().
		AddRequestInterceptor(redmine.ImpersonateInterceptor("jsmith")).
		AddRequestInterceptor(redmine.HeaderInterceptor(map[string]string{"X-Trace": "trace-1"})).
		AddResponseInterceptor(func(_ context.Context, _ *redmine.Request, resp *redmine.Response) error {
			seen = append(seen, resp.StatusCode)

			return nil
		}).
		WithMetrics(collector)

	client := redminehttp.NewClient(server.URL, "secret", redminehttp.WithInterceptors(chain))

	_, err := client.Get(context.Background(), "/issues/3.json", nil)
	require.Error(t, err)
	assert.Equal(t, []int{http.StatusNotFound}, seen)

	metrics := collector.GetMetrics("GET /issues/3.json")
	require.NotNil(t, metrics)
	assert.Equal(t, int64(1), metrics.TotalRequests)
	assert.Equal(t, int64(1), metrics.TotalErrors)
}
