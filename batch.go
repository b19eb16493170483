package drip

import (
	"context"

	"github.com/GravityKit/drip-mcp-server/api"
	"github.com/GravityKit/drip-mcp-server/batch"
	"github.com/GravityKit/drip-mcp-server/types"
)

// Batch sends subscriber sets larger than one upstream call allows.
// Chunks go out sequentially; results come back in submission order.
type Batch struct {
	config      batchConfig
	subscribers *api.Subscribers
}

func NewBatch(client *Client, opts ...BatchConfigOption) *Batch {
	bConfig := defaultBatchConfig()
	for _, o := range opts {
		o(&bConfig)
	}
	if bConfig.chunkSize <= 0 || bConfig.chunkSize > api.MaxBatchSize {
		bConfig.chunkSize = api.MaxBatchSize
	}

	return &Batch{
		config:      bConfig,
		subscribers: client.Subscribers(),
	}
}

// CreateSubscribers returns one result per chunk.
func (b *Batch) CreateSubscribers(ctx context.Context, subscribers []types.Object) ([]types.Object, error) {
	if len(subscribers) == 0 {
		return nil, batch.ErrEmptyBatch
	}
	return batch.SendSequential(
		ctx,
		batch.Chunk(subscribers, b.config.chunkSize),
		b.subscribers.BatchCreate,
		b.config.logger,
	)
}

// Unsubscribe sends every target in a single call unless
// WithBatchChunkUnsubscribes is set.
func (b *Batch) Unsubscribe(ctx context.Context, targets []types.Object) ([]types.Object, error) {
	if len(targets) == 0 {
		return nil, batch.ErrEmptyBatch
	}
	size := len(targets)
	if b.config.chunkUnsubscribes {
		size = b.config.chunkSize
	}
	return batch.SendSequential(
		ctx,
		batch.Chunk(targets, size),
		b.subscribers.BatchUnsubscribe,
		b.config.logger,
	)
}
