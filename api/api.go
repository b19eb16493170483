package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/GravityKit/drip-mcp-server/errors"
	"github.com/GravityKit/drip-mcp-server/logger"
	"github.com/GravityKit/drip-mcp-server/parsers"
	"github.com/GravityKit/drip-mcp-server/rate"
	"github.com/GravityKit/drip-mcp-server/retry"
	"github.com/GravityKit/drip-mcp-server/types"
)

const (
	DefaultHost      = "api.getdrip.com"
	DefaultUserAgent = "drip-mcp-server/1.0.0"

	apiVersion      = "v2"
	maxPerPage      = 1000
	headerRequestId = "X-Request-Id"
)

// Config is shared by every API module. It is built once by the client
// and never modified afterwards.
type Config struct {
	ApiKey      string
	AccountId   string
	Host        string
	UserAgent   string
	HttpClient  *http.Client
	Logger      logger.Logger
	Limiter     rate.Limiter
	Retry       retry.Retry
	MaxAttempts int
	// Timeout bounds one call, retries and backoff included.
	Timeout time.Duration
}

type apiClient struct {
	apiKey      string
	accountUrl  string
	rootUrl     string
	userAgent   string
	httpClient  *http.Client
	logger      logger.Logger
	limiter     rate.Limiter
	retry       retry.Retry
	maxAttempts int
	timeout     time.Duration
}

func newApiClient(cfg Config) *apiClient {
	host := cfg.Host
	if host == "" {
		host = DefaultHost
	}
	if !strings.Contains(host, "://") {
		host = "https://" + host
	}
	root := strings.TrimSuffix(host, "/") + "/" + apiVersion

	c := &apiClient{
		apiKey:      cfg.ApiKey,
		rootUrl:     root,
		accountUrl:  root + "/" + url.PathEscape(cfg.AccountId),
		userAgent:   cfg.UserAgent,
		httpClient:  cfg.HttpClient,
		logger:      cfg.Logger,
		limiter:     cfg.Limiter,
		retry:       cfg.Retry,
		maxAttempts: cfg.MaxAttempts,
		timeout:     cfg.Timeout,
	}
	if c.userAgent == "" {
		c.userAgent = DefaultUserAgent
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{}
	}
	if c.logger == nil {
		c.logger = &logger.Noop{}
	}
	if c.limiter == nil {
		c.limiter = &rate.NoopLimiter{}
	}
	if c.retry == nil {
		c.retry = retry.NewExponentialRetry(retry.WithLogger(c.logger))
	}
	if c.maxAttempts < 1 {
		c.maxAttempts = 1
	}
	return c
}

// endpoint builds an account-scoped URL.
func (c *apiClient) endpoint(path string, query url.Values) string {
	return withQuery(c.accountUrl+"/"+path, query)
}

// rootEndpoint builds a URL outside of the account scope (e.g. /v2/accounts).
func (c *apiClient) rootEndpoint(path string, query url.Values) string {
	return withQuery(c.rootUrl+"/"+path, query)
}

func withQuery(endpoint string, query url.Values) string {
	if len(query) == 0 {
		return endpoint
	}
	return endpoint + "?" + query.Encode()
}

func (c *apiClient) getJson(ctx context.Context, endpoint string, resData any) (int, *errors.ApiError) {
	return c.sendJson(ctx, http.MethodGet, endpoint, nil, resData)
}

func (c *apiClient) postJson(ctx context.Context, endpoint string, reqData, resData any) (int, *errors.ApiError) {
	return c.sendJson(ctx, http.MethodPost, endpoint, reqData, resData)
}

func (c *apiClient) deleteJson(ctx context.Context, endpoint string, resData any) (int, *errors.ApiError) {
	return c.sendJson(ctx, http.MethodDelete, endpoint, nil, resData)
}

// sendJson sends reqData (when not nil) and decodes the response into resData.
// Empty bodies (e.g. 204 No Content) leave resData untouched.
func (c *apiClient) sendJson(
	ctx context.Context,
	httpMethod string,
	endpoint string,
	reqData any,
	resData any,
) (int, *errors.ApiError) {
	status, body, err := c.send(ctx, httpMethod, endpoint, reqData)
	if err != nil {
		return status, err
	}
	if status == http.StatusNoContent || len(bytes.TrimSpace(body)) == 0 || resData == nil {
		return status, nil
	}
	jsonErr := json.Unmarshal(body, resData)
	if jsonErr != nil {
		return status, &errors.ApiError{
			Stage:          errors.STAGE_AFTER_REQUEST,
			Type:           errors.TYPE_JSON_PARSE,
			SourceErr:      jsonErr,
			Body:           body,
			HttpStatusCode: status,
		}
	}
	return status, nil
}

// send performs the request under the configured retry policy.
func (c *apiClient) send(
	ctx context.Context,
	httpMethod string,
	endpoint string,
	reqData any,
) (int, []byte, *errors.ApiError) {
	var data []byte
	if reqData != nil {
		var jsonErr error
		data, jsonErr = json.Marshal(reqData)
		if jsonErr != nil {
			return 0, nil, &errors.ApiError{
				Stage:     errors.STAGE_BEFORE_REQUEST,
				Type:      errors.TYPE_JSON_PARSE,
				SourceErr: jsonErr,
			}
		}
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	var (
		status  int
		body    []byte
		lastErr *errors.ApiError
	)
	name := httpMethod + " " + endpoint
	_ = c.retry.Do(ctx, c.maxAttempts, name, func(attempt int) (error, retry.ExitStrategy) {
		status, body, lastErr = c.sendOnce(ctx, httpMethod, endpoint, data)
		if lastErr == nil {
			return nil, retry.StopNow
		}
		if retriable(httpMethod, lastErr) && ctx.Err() == nil {
			return lastErr, retry.Continue
		}
		return lastErr, retry.StopNow
	})
	return status, body, lastErr
}

func (c *apiClient) sendOnce(
	ctx context.Context,
	httpMethod string,
	endpoint string,
	data []byte,
) (int, []byte, *errors.ApiError) {
	var bodyReader io.Reader
	if data != nil {
		bodyReader = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, httpMethod, endpoint, bodyReader)
	if err != nil {
		return 0, nil, &errors.ApiError{
			Stage:     errors.STAGE_BEFORE_REQUEST,
			Type:      errors.TYPE_REQUEST_PREP,
			SourceErr: err,
		}
	}

	requestId := uuid.NewString()
	req.SetBasicAuth(c.apiKey, "")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set(headerRequestId, requestId)

	if err = c.limiter.Limit(req); err != nil {
		return 0, nil, &errors.ApiError{
			Stage:     errors.STAGE_BEFORE_REQUEST,
			Type:      errors.TYPE_RATE_LIMIT,
			SourceErr: err,
		}
	}

	c.logger.Debugf("drip: %s %s request_id=%s", httpMethod, req.URL.Path, requestId)

	res, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warnf("drip: %s %s request_id=%s failed: %v", httpMethod, req.URL.Path, requestId, err)
		return 0, nil, &errors.ApiError{
			Stage:     errors.STAGE_REQUEST,
			Type:      errors.TYPE_IO,
			SourceErr: err,
		}
	}

	var body []byte
	if res.Body != nil {
		body, err = io.ReadAll(res.Body)
		defer func() { _ = res.Body.Close() }()
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		c.logger.Warnf(
			"drip: %s %s request_id=%s status=%d", httpMethod, req.URL.Path, requestId, res.StatusCode,
		)
		return res.StatusCode, body, &errors.ApiError{
			Stage:          errors.STAGE_AFTER_REQUEST,
			Type:           errors.TYPE_HTTP_STATUS,
			Body:           body,
			HttpStatusCode: res.StatusCode,
			Message:        parsers.ErrorMessageFromBody(res.StatusCode, body),
		}
	}

	if err != nil {
		return res.StatusCode, body, &errors.ApiError{
			Stage:          errors.STAGE_AFTER_REQUEST,
			Type:           errors.TYPE_IO,
			Body:           body,
			HttpStatusCode: res.StatusCode,
			SourceErr:      err,
		}
	}

	return res.StatusCode, body, nil
}

// retriable keeps transport failures of non-idempotent requests out of
// the retry loop: Drip may already have stored the first attempt.
func retriable(httpMethod string, e *errors.ApiError) bool {
	if !e.Retriable() {
		return false
	}
	if e.Type == errors.TYPE_IO {
		return httpMethod == http.MethodGet || httpMethod == http.MethodDelete
	}
	return true
}

// listQuery assembles the query string shared by every list endpoint.
func listQuery(q types.ListQuery) url.Values {
	params := url.Values{}
	if q.Page > 0 {
		params.Set("page", strconv.Itoa(q.Page))
	}
	if q.PerPage > 0 {
		perPage := q.PerPage
		if perPage > maxPerPage {
			perPage = maxPerPage
		}
		params.Set("per_page", strconv.Itoa(perPage))
	}
	if q.Sort != "" {
		params.Set("sort", q.Sort)
	}
	if q.Direction != "" {
		params.Set("direction", q.Direction)
	}
	if q.Status != "" {
		params.Set("status", q.Status)
	}
	if len(q.Tags) > 0 {
		params.Set("tags", strings.Join(q.Tags, ","))
	}
	return params
}

// pathParam percent-encodes an identifier for use as one path segment.
func pathParam(id string) string {
	return url.PathEscape(id)
}

// toNilErr converts a *errors.ApiError type to be a true nil interface.
// Internally, a Go interface has a Type and Value.
// An interface value is nil only if the V and T are both unset.
// See: https://go.dev/doc/faq#nil_error
func toNilErr[T any](r T, e *errors.ApiError) (T, error) {
	if e != nil {
		return r, e
	}
	return r, nil
}

// noContent reports the outcome of endpoints whose only success signal
// is 204 No Content.
func noContent(status int, e *errors.ApiError) (bool, error) {
	if e != nil {
		return false, e
	}
	return status == http.StatusNoContent, nil
}

// succeeded reports true for any 2xx answer, with or without a body.
func succeeded(_ int, e *errors.ApiError) (bool, error) {
	if e != nil {
		return false, e
	}
	return true, nil
}
