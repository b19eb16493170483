package batch

import (
	"errors"
	"fmt"
)

var ErrEmptyBatch = errors.New("batch is empty")

// ChunkError reports which chunk failed. Chunks before Index were sent
// successfully; chunks after it were not attempted.
type ChunkError struct {
	Index int
	Count int
	Err   error
}

var _ error = &ChunkError{}

func (e *ChunkError) Error() string {
	if e.Count <= 1 {
		return e.Err.Error()
	}
	return fmt.Sprintf("batch chunk %d of %d failed: %v", e.Index+1, e.Count, e.Err)
}

func (e *ChunkError) Unwrap() error {
	return e.Err
}
