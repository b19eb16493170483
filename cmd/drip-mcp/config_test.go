package main

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envOf(values map[string]string) func(string) string {
	return func(key string) string {
		return values[key]
	}
}

func Test_loadConfig(t *testing.T) {
	testCases := []struct {
		name        string
		env         map[string]string
		expect      runConfig
		errContains string
	}{
		{
			name: "defaults",
			env:  map[string]string{"DRIP_API_KEY": "k", "DRIP_ACCOUNT_ID": "1"},
			expect: runConfig{
				apiKey:    "k",
				accountId: "1",
				logLevel:  zerolog.InfoLevel,
			},
		},
		{
			name: "optional settings",
			env: map[string]string{
				"DRIP_API_KEY":             "k",
				"DRIP_ACCOUNT_ID":          "1",
				"DRIP_API_HOST":            " localhost:8080 ",
				"DRIP_LOG_LEVEL":           "DEBUG",
				"DRIP_RATE_LIMIT_PER_HOUR": "3600",
			},
			expect: runConfig{
				apiKey:           "k",
				accountId:        "1",
				host:             "localhost:8080",
				logLevel:         zerolog.DebugLevel,
				rateLimitPerHour: 3600,
			},
		},
		{
			name:        "bad log level",
			env:         map[string]string{"DRIP_LOG_LEVEL": "chatty"},
			errContains: "DRIP_LOG_LEVEL",
		},
		{
			name:        "bad rate limit",
			env:         map[string]string{"DRIP_RATE_LIMIT_PER_HOUR": "-5"},
			errContains: "DRIP_RATE_LIMIT_PER_HOUR",
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := loadConfig(envOf(tt.env))
			if tt.errContains != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expect, cfg)
		})
	}
}

func Test_runConfig_clientOptions(t *testing.T) {
	assert.Empty(t, runConfig{}.clientOptions())
	assert.Len(t, runConfig{host: "localhost"}.clientOptions(), 1)
	assert.Len(t, runConfig{host: "localhost", rateLimitPerHour: 10}.clientOptions(), 2)
}
