// Package kv provides sorted key-value engines. Keys are compared
// byte-wise, which makes them suitable for order-preserving encoded keys.
package kv

import "github.com/cockroachdb/errors"

// An Engine stores values sorted by key.
// Implementations are safe for concurrent use.
type Engine interface {
	// Put stores v under k, replacing any previous value.
	Put(k, v []byte) error
	// Get returns the value stored under k, or ErrKeyNotFound.
	Get(k []byte) ([]byte, error)
	// Delete removes k. If not found, returns ErrKeyNotFound.
	Delete(k []byte) error
	// Iterate calls fn for every key in [lower, upper), in ascending
	// order or in descending order if reverse is true.
	// A nil bound means the range is unbounded on that side.
	// The key and value passed to fn are only valid until fn returns.
	// Iteration stops at the first error returned by fn.
	Iterate(lower, upper []byte, reverse bool, fn func(k, v []byte) error) error
	// NewBatch returns a batch of writes applied atomically on Commit.
	NewBatch() Batch
	Close() error
}

// A Batch accumulates writes until it is committed.
// A Batch must not be used concurrently.
type Batch interface {
	Put(k, v []byte) error
	Delete(k []byte) error
	// Len returns the number of buffered writes.
	Len() int
	Commit() error
	// Close discards the batch. It can be called after Commit.
	Close() error
}

// EngineKind selects an Engine implementation.
type EngineKind string

const (
	EnginePebble EngineKind = "pebble"
	EngineMemory EngineKind = "memory"
)

// Open returns an engine of the given kind.
// The memory engine ignores path and opts.
func Open(kind EngineKind, path string, opts PebbleOptions) (Engine, error) {
	switch kind {
	case EnginePebble, "":
		return NewPebbleEngine(path, opts)
	case EngineMemory:
		return NewMemoryEngine(), nil
	}

	return nil, errors.Errorf("unknown engine %q", kind)
}
