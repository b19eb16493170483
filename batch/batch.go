// Package batch splits large requests into upstream-sized chunks and sends
// them one after another. Chunks are never sent concurrently: the next one
// starts only after the previous one has completed.
package batch

import (
	"context"

	"github.com/GravityKit/drip-mcp-server/logger"
)

// Sender sends one chunk and returns its upstream result.
type Sender[T any, R any] func(ctx context.Context, chunk []T) (R, error)

// Chunk splits items into consecutive slices of at most size elements,
// preserving order. A non-positive size yields a single chunk.
func Chunk[T any](items []T, size int) [][]T {
	if len(items) == 0 {
		return nil
	}
	if size <= 0 || size >= len(items) {
		return [][]T{items}
	}

	chunks := make([][]T, 0, (len(items)+size-1)/size)
	for start := 0; start < len(items); start += size {
		end := min(start+size, len(items))
		chunks = append(chunks, items[start:end])
	}
	return chunks
}

// SendSequential sends every chunk in order and collects the results in
// submission order. It stops at the first failing chunk and returns the
// results gathered so far together with a *ChunkError.
func SendSequential[T any, R any](
	ctx context.Context,
	chunks [][]T,
	send Sender[T, R],
	log logger.Logger,
) ([]R, error) {
	if log == nil {
		log = logger.Noop{}
	}

	results := make([]R, 0, len(chunks))
	for i, chunk := range chunks {
		if err := ctx.Err(); err != nil {
			return results, &ChunkError{Index: i, Count: len(chunks), Err: err}
		}

		log.Debugf("batch: sending chunk %d/%d size=%d", i+1, len(chunks), len(chunk))
		res, err := send(ctx, chunk)
		if err != nil {
			log.Warnf("batch: chunk %d/%d failed: %v", i+1, len(chunks), err)
			return results, &ChunkError{Index: i, Count: len(chunks), Err: err}
		}
		results = append(results, res)
	}
	return results, nil
}
