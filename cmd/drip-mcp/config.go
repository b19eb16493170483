package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	drip "github.com/GravityKit/drip-mcp-server"
	"github.com/GravityKit/drip-mcp-server/rate"
)

const (
	envApiHost          = "DRIP_API_HOST"
	envLogLevel         = "DRIP_LOG_LEVEL"
	envRateLimitPerHour = "DRIP_RATE_LIMIT_PER_HOUR"

	defaultLogLevel = zerolog.InfoLevel
)

type runConfig struct {
	apiKey           string
	accountId        string
	host             string
	logLevel         zerolog.Level
	rateLimitPerHour int
}

// loadConfig reads the process environment through getenv.
// Credentials are checked later by drip.NewClient.
func loadConfig(getenv func(string) string) (runConfig, error) {
	cfg := runConfig{
		apiKey:    getenv(drip.EnvApiKey),
		accountId: getenv(drip.EnvAccountId),
		host:      strings.TrimSpace(getenv(envApiHost)),
		logLevel:  defaultLogLevel,
	}

	if v := strings.TrimSpace(getenv(envLogLevel)); v != "" {
		level, err := zerolog.ParseLevel(strings.ToLower(v))
		if err != nil {
			return cfg, fmt.Errorf("%s: %w", envLogLevel, err)
		}
		cfg.logLevel = level
	}

	if v := strings.TrimSpace(getenv(envRateLimitPerHour)); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return cfg, fmt.Errorf("%s must be a non-negative integer, got %q", envRateLimitPerHour, v)
		}
		cfg.rateLimitPerHour = n
	}
	return cfg, nil
}

func (c runConfig) clientOptions() []drip.ConfigOption {
	var opts []drip.ConfigOption
	if c.host != "" {
		opts = append(opts, drip.WithHost(c.host))
	}
	if c.rateLimitPerHour > 0 {
		opts = append(opts, drip.WithRateLimiter(rate.NewTokenBucket(c.rateLimitPerHour, time.Hour, 1)))
	}
	return opts
}
