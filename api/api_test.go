package api

import (
	"bytes"
	"context"
	stdErrors "errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/GravityKit/drip-mcp-server/errors"
	"github.com/GravityKit/drip-mcp-server/retry"
	"github.com/GravityKit/drip-mcp-server/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testApiKey    = "test-api-key"
	testAccountId = "9999999"
	testBaseUrl   = "https://api.getdrip.com/v2/9999999/"
)

func Test_getJson(t *testing.T) {
	testCases := []struct {
		name          string
		reqPath       string
		responses     []testResponse
		expectObj     types.Object
		expectErr     bool
		expectErrType string
		expectCalls   int
	}{
		{
			name:        "200 OK",
			reqPath:     "subscribers/1",
			responses:   []testResponse{{code: 200, body: `{"subscribers":[{"id":"1"}]}`}},
			expectObj:   types.Object{"subscribers": []any{map[string]any{"id": "1"}}},
			expectCalls: 1,
		},
		{
			name:          "failed to send the request",
			reqPath:       "subscribers/2",
			responses:     []testResponse{{err: fmt.Errorf("test error")}},
			expectErr:     true,
			expectErrType: errors.TYPE_IO,
			expectCalls:   3,
		},
		{
			name:          "malformed json in response",
			reqPath:       "subscribers/3",
			responses:     []testResponse{{code: 200, body: `{"subscribers":`}},
			expectErr:     true,
			expectErrType: errors.TYPE_JSON_PARSE,
			expectCalls:   1,
		},
		{
			name:          "422 is not retried",
			reqPath:       "subscribers/4",
			responses:     []testResponse{{code: 422, body: `{"errors":[{"message":"Email is required"}]}`}},
			expectErr:     true,
			expectErrType: errors.TYPE_HTTP_STATUS,
			expectCalls:   1,
		},
		{
			name:          "500 is retried until attempts run out",
			reqPath:       "subscribers?a=b",
			responses:     []testResponse{{code: 500, body: `{"message":"error"}`}},
			expectErr:     true,
			expectErrType: errors.TYPE_HTTP_STATUS,
			expectCalls:   3,
		},
		{
			name:    "429 then success",
			reqPath: "subscribers/5",
			responses: []testResponse{
				{code: 429, body: `{"message":"slow down"}`},
				{code: 200, body: `{"ok":true}`},
			},
			expectObj:   types.Object{"ok": true},
			expectCalls: 2,
		},
		{
			name:        "204 leaves the result untouched",
			reqPath:     "subscribers/6",
			responses:   []testResponse{{code: 204}},
			expectCalls: 1,
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c, tr := httpClient(tt.responses...)
			api := newApiClient(testConfig(c))

			var obj types.Object
			_, err := api.getJson(context.Background(), api.endpoint(tt.reqPath, nil), &obj)
			if tt.expectErr {
				require.NotNil(t, err)
				assert.Equal(t, tt.expectErrType, err.Type)
			} else {
				assert.Nil(t, err)
			}
			assert.EqualValues(t, tt.expectObj, obj)

			assert.Equal(t, tt.expectCalls, tr.Calls())
			assert.Equal(t, testBaseUrl+tt.reqPath, tr.Url())
			assert.Equal(t, http.MethodGet, tr.Method())
			assert.Equal(t, testApiKey, tr.ApiKey())
			assert.True(t, tr.AllBodiesClosed())
		})
	}
}

func Test_send_headers(t *testing.T) {
	c, tr := httpClient(testResponse{code: 200, body: `{}`})
	api := newApiClient(testConfig(c))

	_, err := api.postJson(context.Background(), api.endpoint("events", nil), map[string]any{"a": 1}, nil)
	require.Nil(t, err)

	req := tr.Request()
	user, pass, ok := req.BasicAuth()
	assert.True(t, ok)
	assert.Equal(t, testApiKey, user)
	assert.Equal(t, "", pass)
	assert.Equal(t, "application/json", req.Header.Get("Content-Type"))
	assert.Equal(t, "application/json", req.Header.Get("Accept"))
	assert.Equal(t, DefaultUserAgent, req.Header.Get("User-Agent"))
	assert.NotEmpty(t, req.Header.Get(headerRequestId))
	assert.JSONEq(t, `{"a":1}`, tr.Body())
}

func Test_send_retries_resend_the_body(t *testing.T) {
	c, tr := httpClient(
		testResponse{code: 503},
		testResponse{code: 200, body: `{}`},
	)
	api := newApiClient(testConfig(c))

	_, err := api.postJson(context.Background(), api.endpoint("subscribers", nil), map[string]any{"x": "y"}, nil)
	require.Nil(t, err)
	require.Equal(t, 2, tr.Calls())
	assert.JSONEq(t, `{"x":"y"}`, tr.bodies[0])
	assert.JSONEq(t, `{"x":"y"}`, tr.bodies[1])
}

func Test_send_transport_errors_by_method(t *testing.T) {
	testCases := []struct {
		name        string
		method      string
		expectCalls int
	}{
		{"GET is retried", http.MethodGet, 3},
		{"DELETE is retried", http.MethodDelete, 3},
		{"POST is sent once", http.MethodPost, 1},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			c, tr := httpClient(
				testResponse{err: fmt.Errorf("read tcp: connection reset by peer")},
				testResponse{code: 204},
			)
			api := newApiClient(testConfig(c))

			_, err := api.sendJson(context.Background(), tt.method, api.endpoint("events", nil), nil, nil)
			if tt.method == http.MethodPost {
				require.NotNil(t, err)
				assert.Equal(t, errors.TYPE_IO, err.Type)
			} else {
				require.Nil(t, err)
			}
			assert.Equal(t, tt.expectCalls, tr.Calls())
		})
	}
}

func Test_send_event_post_not_duplicated_after_reset(t *testing.T) {
	c, tr := httpClient(
		testResponse{err: fmt.Errorf("read tcp: connection reset by peer")},
		testResponse{code: 204},
	)
	events := NewEventsApi(testConfig(c))

	_, err := events.Track(context.Background(), types.EventRequest{Email: "a@b.com", Action: "Signed up"})
	require.Error(t, err)
	assert.Equal(t, 1, tr.Calls())
}

func Test_send_timeout_bounds_all_attempts(t *testing.T) {
	c, tr := httpClient(testResponse{code: 503})
	cfg := testConfig(c)
	cfg.Retry = retry.NewExponentialRetry(retry.WithInitialDuration(time.Second))
	cfg.MaxAttempts = 5
	cfg.Timeout = 50 * time.Millisecond
	api := newApiClient(cfg)

	start := time.Now()
	_, err := api.getJson(context.Background(), api.endpoint("subscribers", nil), nil)
	require.NotNil(t, err)
	assert.Less(t, time.Since(start), time.Second)
	assert.Equal(t, 1, tr.Calls())
}

func Test_retriable(t *testing.T) {
	reset := &errors.ApiError{Stage: errors.STAGE_REQUEST, Type: errors.TYPE_IO}
	unavailable := &errors.ApiError{Type: errors.TYPE_HTTP_STATUS, HttpStatusCode: 503}
	invalid := &errors.ApiError{Type: errors.TYPE_HTTP_STATUS, HttpStatusCode: 422}

	assert.True(t, retriable(http.MethodGet, reset))
	assert.True(t, retriable(http.MethodDelete, reset))
	assert.False(t, retriable(http.MethodPost, reset))
	assert.True(t, retriable(http.MethodPost, unavailable))
	assert.False(t, retriable(http.MethodGet, invalid))
}

func Test_send_error_message_from_body(t *testing.T) {
	c, _ := httpClient(testResponse{code: 422, body: `{"errors":[{"message":"Email is required"}]}`})
	api := newApiClient(testConfig(c))

	_, err := api.postJson(context.Background(), api.endpoint("subscribers", nil), map[string]any{}, nil)
	require.NotNil(t, err)
	assert.Equal(t, "Email is required", err.Error())
	assert.Equal(t, 422, err.HttpStatusCode)
	assert.True(t, stdErrors.Is(err, &errors.ApiError{}))
}

func Test_send_never_leaks_the_api_key(t *testing.T) {
	c, _ := httpClient(testResponse{err: fmt.Errorf("dial tcp: connection refused")})
	api := newApiClient(testConfig(c))

	_, err := api.getJson(context.Background(), api.endpoint("subscribers", nil), nil)
	require.NotNil(t, err)
	assert.NotContains(t, err.Error(), testApiKey)
}

func Test_send_cancelled_context(t *testing.T) {
	c, tr := httpClient(testResponse{code: 500})
	api := newApiClient(testConfig(c))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := api.getJson(ctx, api.endpoint("subscribers", nil), nil)
	require.NotNil(t, err)
	assert.LessOrEqual(t, tr.Calls(), 1)
}

func Test_rootEndpoint(t *testing.T) {
	api := newApiClient(Config{ApiKey: testApiKey, AccountId: testAccountId})
	assert.Equal(t, "https://api.getdrip.com/v2/accounts", api.rootEndpoint("accounts", nil))
	assert.Equal(t, testBaseUrl+"forms", api.endpoint("forms", nil))

	custom := newApiClient(Config{AccountId: "1", Host: "http://localhost:8080/"})
	assert.Equal(t, "http://localhost:8080/v2/1/forms", custom.endpoint("forms", nil))
}

func Test_listQuery(t *testing.T) {
	testCases := []struct {
		name   string
		query  types.ListQuery
		expect string
	}{
		{
			name:   "empty",
			query:  types.ListQuery{},
			expect: "",
		},
		{
			name:   "per page is capped",
			query:  types.ListQuery{Page: 2, PerPage: 5000},
			expect: "page=2&per_page=1000",
		},
		{
			name: "all filters",
			query: types.ListQuery{
				Page:      1,
				PerPage:   10,
				Sort:      "created_at",
				Direction: "desc",
				Status:    "active",
				Tags:      []string{"a", "b"},
			},
			expect: "direction=desc&page=1&per_page=10&sort=created_at&status=active&tags=a%2Cb",
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expect, listQuery(tt.query).Encode())
		})
	}
}

func Test_toNilErr(t *testing.T) {
	var err *errors.ApiError
	var err2 error = err
	if err2 == nil {
		assert.Fail(t, "An interface value is nil only if the V and T are both unset.")
	}

	var err3 error
	_, err3 = toNilErr("ignore", err)
	if err3 != nil {
		assert.Fail(t, "Must be nil")
	}
}

func Test_noContent(t *testing.T) {
	ok, err := noContent(204, nil)
	assert.True(t, ok)
	assert.NoError(t, err)

	ok, err = noContent(200, nil)
	assert.False(t, ok)
	assert.NoError(t, err)

	ok, err = noContent(0, &errors.ApiError{Type: errors.TYPE_IO})
	assert.False(t, ok)
	assert.Error(t, err)
}

func testConfig(c *http.Client) Config {
	return Config{
		ApiKey:      testApiKey,
		AccountId:   testAccountId,
		HttpClient:  c,
		Retry:       retry.NewExponentialRetry(retry.WithInitialDuration(time.Millisecond)),
		MaxAttempts: 3,
	}
}

type testResponse struct {
	body string
	code int
	err  error
}

// httpClient answers with responses in order; the last one repeats.
func httpClient(responses ...testResponse) (*http.Client, *testTransport) {
	tr := &testTransport{responses: responses}
	return &http.Client{Transport: tr}, tr
}

type testTransport struct {
	mu        sync.Mutex
	responses []testResponse
	reqs      []*http.Request
	bodies    []string
	readers   []*testReader
}

func (t *testTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	var body string
	if req.Body != nil {
		data, _ := io.ReadAll(req.Body)
		body = string(data)
	}
	t.reqs = append(t.reqs, req)
	t.bodies = append(t.bodies, body)

	idx := len(t.reqs) - 1
	if idx >= len(t.responses) {
		idx = len(t.responses) - 1
	}
	next := t.responses[idx]
	if next.err != nil {
		return nil, next.err
	}
	reader := &testReader{Reader: bytes.NewBufferString(next.body)}
	t.readers = append(t.readers, reader)
	return &http.Response{
		StatusCode: next.code,
		Header:     http.Header{},
		Body:       reader,
		Request:    req,
	}, nil
}

func (t *testTransport) Calls() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.reqs)
}

func (t *testTransport) Request() *http.Request {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.reqs[len(t.reqs)-1]
}

func (t *testTransport) Method() string {
	return t.Request().Method
}

func (t *testTransport) Url() string {
	return t.Request().URL.String()
}

func (t *testTransport) Body() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.bodies[len(t.bodies)-1]
}

func (t *testTransport) ApiKey() string {
	user, _, _ := t.Request().BasicAuth()
	return user
}

func (t *testTransport) AllBodiesClosed() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, r := range t.readers {
		if r.isRead != r.isClosed {
			return false
		}
	}
	return true
}

type testReader struct {
	isClosed bool
	isRead   bool
	io.Reader
}

func (c *testReader) Close() error {
	c.isClosed = true
	return nil
}

func (c *testReader) Read(p []byte) (n int, err error) {
	c.isRead = true
	return c.Reader.Read(p)
}
