package drip

import (
	"net/http"
	"os"
	"strings"

	"github.com/GravityKit/drip-mcp-server/api"
	"github.com/GravityKit/drip-mcp-server/errors"
	"github.com/GravityKit/drip-mcp-server/retry"
)

const (
	EnvApiKey    = "DRIP_API_KEY"
	EnvAccountId = "DRIP_ACCOUNT_ID"
)

// Client gives access to every Drip API module for one account.
// It is immutable once built and safe for concurrent use.
type Client struct {
	httpClient *http.Client

	subscribers *api.Subscribers
	campaigns   *api.Campaigns
	workflows   *api.Workflows
	events      *api.Events
	forms       *api.Forms
	broadcasts  *api.Broadcasts
	accounts    *api.Accounts
	batch       *Batch
}

// NewClient fails with *errors.ConfigError when either credential is empty.
func NewClient(apiKey string, accountId string, opts ...ConfigOption) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	accountId = strings.TrimSpace(accountId)
	if apiKey == "" {
		return nil, &errors.ConfigError{Setting: EnvApiKey}
	}
	if accountId == "" {
		return nil, &errors.ConfigError{Setting: EnvAccountId}
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.retry == nil {
		cfg.retry = retry.NewExponentialRetry(retry.WithLogger(cfg.logger))
	}

	httpClient := &http.Client{}
	httpClient.Transport = cfg.transport
	httpClient.Timeout = cfg.timeout

	apiCfg := api.Config{
		ApiKey:      apiKey,
		AccountId:   accountId,
		Host:        cfg.host,
		UserAgent:   cfg.userAgent,
		HttpClient:  httpClient,
		Logger:      cfg.logger,
		Limiter:     cfg.limiter,
		Retry:       cfg.retry,
		MaxAttempts: cfg.maxAttempts,
		Timeout:     cfg.timeout,
	}

	c := &Client{
		httpClient:  httpClient,
		subscribers: api.NewSubscribersApi(apiCfg),
		campaigns:   api.NewCampaignsApi(apiCfg),
		workflows:   api.NewWorkflowsApi(apiCfg),
		events:      api.NewEventsApi(apiCfg),
		forms:       api.NewFormsApi(apiCfg),
		broadcasts:  api.NewBroadcastsApi(apiCfg),
		accounts:    api.NewAccountsApi(apiCfg),
	}
	c.batch = NewBatch(c, WithBatchLogger(cfg.logger))
	return c, nil
}

// NewClientFromEnv reads DRIP_API_KEY and DRIP_ACCOUNT_ID.
func NewClientFromEnv(opts ...ConfigOption) (*Client, error) {
	return NewClient(os.Getenv(EnvApiKey), os.Getenv(EnvAccountId), opts...)
}

func (c *Client) Subscribers() *api.Subscribers {
	return c.subscribers
}

func (c *Client) Campaigns() *api.Campaigns {
	return c.campaigns
}

func (c *Client) Workflows() *api.Workflows {
	return c.workflows
}

func (c *Client) Events() *api.Events {
	return c.events
}

func (c *Client) Forms() *api.Forms {
	return c.forms
}

func (c *Client) Broadcasts() *api.Broadcasts {
	return c.broadcasts
}

func (c *Client) Accounts() *api.Accounts {
	return c.accounts
}

// Batch uses the default chunking; build another one with NewBatch
// for different settings.
func (c *Client) Batch() *Batch {
	return c.batch
}
