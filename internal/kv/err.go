package kv

import "github.com/cockroachdb/errors"

// Common errors returned by the engine implementations.
var (
	// ErrKeyNotFound is returned when the targeted key doesn't exist.
	ErrKeyNotFound = errors.New("key not found")

	// ErrEmptyKey is returned when writing a value under an empty key.
	ErrEmptyKey = errors.New("cannot store empty key")

	// ErrEngineClosed is returned when using an engine after Close.
	ErrEngineClosed = errors.New("engine closed")

	// ErrBatchCommitted is returned when reusing a committed batch.
	ErrBatchCommitted = errors.New("batch already committed")
)
