// Package batch processes slices in bounded-size groups with partial-failure
// semantics: a failing chunk is recorded and the run continues.
package batch

import "fmt"

// DefaultSize is the default chunk size for batch writes. It trades write
// latency against transaction size and is not correctness-relevant.
const DefaultSize = 100

// ChunkError records the failure of one chunk.
type ChunkError struct {
	Chunk int
	Err   error
}

func (e ChunkError) Error() string {
	return fmt.Sprintf("chunk %d: %v", e.Chunk, e.Err)
}

func (e ChunkError) Unwrap() error {
	return e.Err
}

// InGroups invokes fn once per group of at most size items, sequentially and
// in order. Errors are collected per chunk; prior successful chunks are never
// rolled back. A size below 1 falls back to DefaultSize.
func InGroups[T any](items []T, size int, fn func(chunk int, group []T) error) []ChunkError {
	if size < 1 {
		size = DefaultSize
	}

	var failures []ChunkError
	for chunk, start := 0, 0; start < len(items); chunk, start = chunk+1, start+size {
		end := start + size
		if end > len(items) {
			end = len(items)
		}
		if err := fn(chunk, items[start:end]); err != nil {
			failures = append(failures, ChunkError{Chunk: chunk, Err: err})
		}
	}
	return failures
}
