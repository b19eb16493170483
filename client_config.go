package drip

import (
	"net/http"
	"time"

	"github.com/GravityKit/drip-mcp-server/logger"
	"github.com/GravityKit/drip-mcp-server/rate"
	"github.com/GravityKit/drip-mcp-server/retry"
)

type config struct {
	// transport specifies the HTTP transport mechanism
	// for making requests.
	// It's useful for mocking or if customers
	// want to add extra logging, headers, etc.
	// default: http.DefaultTransport
	transport http.RoundTripper

	// timeout bounds one API call, retries and backoff included
	// default: 30 seconds
	timeout time.Duration

	// logger provides logging functionality for all internal
	// drip client operations
	// default: logger.Noop
	logger logger.Logger

	// limiter is consulted before every request
	// default: rate.NoopLimiter
	limiter rate.Limiter

	// retry wraps every request; only IO errors, 429 and 5xx are retried
	// default: retry.NewExponentialRetry()
	retry retry.Retry

	// maxAttempts is the number of tries per request, including the first
	// default: 3
	maxAttempts int

	// host of the Drip API, with or without scheme
	// default: api.getdrip.com
	host string

	// userAgent is sent with every request
	// default: drip-mcp-server/<version>
	userAgent string
}

func defaultConfig() *config {
	return &config{
		transport:   http.DefaultTransport,
		timeout:     30 * time.Second,
		logger:      logger.Noop{},
		limiter:     &rate.NoopLimiter{},
		maxAttempts: 3,
	}
}

type ConfigOption func(c *config)

func WithTransport(transport http.RoundTripper) ConfigOption {
	return func(c *config) {
		c.transport = transport
	}
}

func WithTimeout(timeout time.Duration) ConfigOption {
	return func(c *config) {
		c.timeout = timeout
	}
}

func WithLogger(logger logger.Logger) ConfigOption {
	return func(c *config) {
		c.logger = logger
	}
}

func WithRateLimiter(limiter rate.Limiter) ConfigOption {
	return func(c *config) {
		c.limiter = limiter
	}
}

func WithRetry(retry retry.Retry) ConfigOption {
	return func(c *config) {
		c.retry = retry
	}
}

func WithMaxAttempts(attempts int) ConfigOption {
	return func(c *config) {
		c.maxAttempts = attempts
	}
}

func WithHost(host string) ConfigOption {
	return func(c *config) {
		c.host = host
	}
}

func WithUserAgent(userAgent string) ConfigOption {
	return func(c *config) {
		c.userAgent = userAgent
	}
}
