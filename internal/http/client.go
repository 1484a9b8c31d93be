// Package http implements the transport used by every resource client.
package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/fivetwenty-io/redmine-client/internal/constants"
	"github.com/fivetwenty-io/redmine-client/pkg/redmine"
)

// Client executes exactly one HTTP exchange per call against a Redmine instance.
type Client struct {
	baseURL      string
	apiKey       string
	userAgent    string
	httpClient   *retryablehttp.Client
	logger       redmine.Logger
	debug        bool
	interceptors *redmine.InterceptorChain
}

// Request describes one API call.
type Request struct {
	Method string
	Path   string
	Query  *redmine.Params
	// Body is encoded as JSON. Ignored when RawBody is set.
	Body any
	// RawBody is sent as is, with ContentType.
	RawBody     []byte
	ContentType string
	Headers     map[string]string
}

// Response is a fully read HTTP response.
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger.
func WithLogger(logger redmine.Logger) Option {
	return func(c *Client) {
		c.logger = logger
		if logger != nil {
			c.httpClient.Logger = &leveledLogger{logger: logger}
		}
	}
}

// WithDebug enables request/response logging.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		if userAgent != "" {
			c.userAgent = userAgent
		}
	}
}

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient.HTTPClient = httpClient
		}
	}
}

// WithTimeout sets the timeout of the underlying *http.Client.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.HTTPClient.Timeout = timeout
		}
	}
}

// WithInterceptors sets the interceptor chain run around every request.
func WithInterceptors(chain *redmine.InterceptorChain) Option {
	return func(c *Client) {
		c.interceptors = chain
	}
}

// NewClient creates a transport for baseURL authenticated with apiKey.
func NewClient(baseURL, apiKey string, opts ...Option) *Client {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = 0
	retryClient.CheckRetry = neverRetry
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler
	retryClient.Logger = nil
	retryClient.HTTPClient.Timeout = constants.DefaultHTTPTimeout

	client := &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		apiKey:     apiKey,
		userAgent:  constants.DefaultUserAgent,
		httpClient: retryClient,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// BaseURL returns the normalized base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

func neverRetry(_ context.Context, _ *http.Response, _ error) (bool, error) {
	return false, nil
}

// Do executes the request. For a non-2xx status the response is returned
// together with a *redmine.RequestError.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	body, err := c.encodeBody(req)
	if err != nil {
		return nil, err
	}

	intercepted := &redmine.Request{
		Method:  req.Method,
		Path:    req.Path,
		Query:   req.Query.Encode(),
		Headers: c.headers(req),
		Body:    body,
	}

	err = c.interceptors.ExecuteRequestInterceptors(ctx, intercepted)
	if err != nil {
		return nil, err
	}

	httpReq, err := retryablehttp.NewRequestWithContext(ctx, intercepted.Method, c.url(intercepted), intercepted.Body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	httpReq.Header = intercepted.Headers

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Request", map[string]interface{}{
			"method": intercepted.Method,
			"path":   intercepted.Path,
			"query":  intercepted.Query,
		})
	}

	start := time.Now()

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		reqErr := redmine.NewRequestError(err, 0, nil)
		_ = c.afterResponse(ctx, intercepted, &redmine.Response{Error: reqErr})

		return nil, reqErr
	}

	defer func() {
		_ = httpResp.Body.Close()
	}()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		reqErr := redmine.NewRequestError(err, httpResp.StatusCode, nil)
		_ = c.afterResponse(ctx, intercepted, &redmine.Response{StatusCode: httpResp.StatusCode, Error: reqErr})

		return nil, reqErr
	}

	resp := &Response{
		StatusCode: httpResp.StatusCode,
		Headers:    httpResp.Header,
		Body:       respBody,
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Response", map[string]interface{}{
			"status":   resp.StatusCode,
			"duration": time.Since(start).String(),
			"bytes":    len(respBody),
		})
	}

	var statusErr error
	if !redmine.IsSuccess(resp.StatusCode) {
		statusErr = redmine.NewRequestError(nil, resp.StatusCode, respBody)
	}

	err = c.afterResponse(ctx, intercepted, &redmine.Response{
		StatusCode: resp.StatusCode,
		Headers:    resp.Headers,
		Body:       respBody,
		Error:      statusErr,
	})
	if err != nil {
		return resp, err
	}

	if statusErr != nil {
		return resp, statusErr
	}

	return resp, nil
}

func (c *Client) afterResponse(ctx context.Context, req *redmine.Request, resp *redmine.Response) error {
	return c.interceptors.ExecuteResponseInterceptors(ctx, req, resp)
}

func (c *Client) encodeBody(req *Request) ([]byte, error) {
	if req.RawBody != nil {
		return req.RawBody, nil
	}

	if req.Body == nil {
		return nil, nil
	}

	body, err := json.Marshal(req.Body)
	if err != nil {
		return nil, fmt.Errorf("marshaling request body: %w", err)
	}

	return body, nil
}

func (c *Client) headers(req *Request) http.Header {
	contentType := req.ContentType
	if contentType == "" {
		contentType = constants.ContentTypeJSON
	}

	headers := make(http.Header)
	headers.Set(constants.APIKeyHeader, c.apiKey)
	headers.Set("Content-Type", contentType)
	headers.Set("Accept", constants.ContentTypeJSON)
	headers.Set("User-Agent", c.userAgent)

	for key, value := range req.Headers {
		headers.Set(key, value)
	}

	return headers
}

func (c *Client) url(req *redmine.Request) string {
	target := c.baseURL + "/" + strings.TrimPrefix(req.Path, "/")
	if req.Query != "" {
		target += "?" + req.Query
	}

	return target
}

// Get performs a GET request and decodes the JSON object it returns.
func (c *Client) Get(ctx context.Context, path string, query *redmine.Params) (redmine.JSON, error) {
	return c.doJSON(ctx, &Request{Method: http.MethodGet, Path: path, Query: query})
}

// Post performs a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body any) (redmine.JSON, error) {
	return c.doJSON(ctx, &Request{Method: http.MethodPost, Path: path, Body: body})
}

// Put performs a PUT request with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body any) (redmine.JSON, error) {
	return c.doJSON(ctx, &Request{Method: http.MethodPut, Path: path, Body: body})
}

// Delete performs a DELETE request and returns the status code.
func (c *Client) Delete(ctx context.Context, path string, query *redmine.Params) (int, error) {
	resp, err := c.Do(ctx, &Request{Method: http.MethodDelete, Path: path, Query: query})
	if err != nil {
		if resp != nil {
			return resp.StatusCode, err
		}

		return 0, err
	}

	return resp.StatusCode, nil
}

// Upload posts raw bytes as application/octet-stream.
func (c *Client) Upload(ctx context.Context, path string, data []byte, query *redmine.Params) (redmine.JSON, error) {
	if data == nil {
		data = []byte{}
	}

	return c.doJSON(ctx, &Request{
		Method:      http.MethodPost,
		Path:        path,
		Query:       query,
		RawBody:     data,
		ContentType: constants.ContentTypeOctetStream,
	})
}

func (c *Client) doJSON(ctx context.Context, req *Request) (redmine.JSON, error) {
	resp, err := c.Do(ctx, req)
	if err != nil {
		return nil, err
	}

	return DecodeJSON(resp.Body)
}

// DecodeJSON decodes a response body. An empty body yields an empty object.
func DecodeJSON(body []byte) (redmine.JSON, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return redmine.JSON{}, nil
	}

	var decoded any

	err := json.Unmarshal(trimmed, &decoded)
	if err != nil {
		return nil, redmine.NewResponseError(err)
	}

	object, ok := decoded.(redmine.JSON)
	if !ok {
		return nil, redmine.NewResponseError(fmt.Errorf("%w: top-level value is %T", redmine.ErrUnexpectedType, decoded))
	}

	return object, nil
}
