package drip

import (
	"github.com/GravityKit/drip-mcp-server/api"
	"github.com/GravityKit/drip-mcp-server/logger"
)

type batchConfig struct {
	// chunkSize is the number of subscribers sent per upstream call.
	// Values above api.MaxBatchSize are capped.
	// default: api.MaxBatchSize (1000)
	chunkSize int

	// chunkUnsubscribes splits batch unsubscribes the same way as
	// batch creates. When false, every target goes out in one call.
	// default: false
	chunkUnsubscribes bool

	// logger provides logging functionality for debugging
	// batch operations
	// default: logger.Noop
	logger logger.Logger
}

func defaultBatchConfig() batchConfig {
	return batchConfig{
		chunkSize:         api.MaxBatchSize,
		chunkUnsubscribes: false,
		logger:            logger.Noop{},
	}
}

type BatchConfigOption func(c *batchConfig)

func WithBatchChunkSize(size int) BatchConfigOption {
	return func(c *batchConfig) {
		c.chunkSize = size
	}
}

func WithBatchChunkUnsubscribes(chunk bool) BatchConfigOption {
	return func(c *batchConfig) {
		c.chunkUnsubscribes = chunk
	}
}

func WithBatchLogger(logger logger.Logger) BatchConfigOption {
	return func(c *batchConfig) {
		c.logger = logger
	}
}
