package kv

import (
	"bytes"
	"fmt"
	"io"
	"sync"
	"sync/atomic"

	"github.com/chaisql/orderedbytes/internal/encoding"
	"github.com/chaisql/orderedbytes/internal/types"
	"github.com/chaisql/orderedbytes/lib/pebbleutil"
	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/pebble"
	"github.com/cockroachdb/pebble/vfs"
	"go.uber.org/zap"
)

// DefaultComparer orders keys byte-wise and renders them
// as decoded values in Pebble's logs and tools.
var DefaultComparer = &pebble.Comparer{
	Compare:        encoding.Compare,
	Equal:          bytes.Equal,
	AbbreviatedKey: pebble.DefaultComparer.AbbreviatedKey,
	FormatKey:      FormatKey,
	Separator:      pebble.DefaultComparer.Separator,
	Successor:      pebble.DefaultComparer.Successor,
	// This name is part of the C++ Level-DB implementation's default file
	// format, and should not be changed.
	Name: "leveldb.BytewiseComparator",
}

// FormatKey renders an encoded key as the list of its values,
// or in hexadecimal if it can't be split into values.
// A value that can't be decoded is rendered in hexadecimal.
func FormatKey(k []byte) fmt.Formatter {
	return formattedKey(k)
}

type formattedKey []byte

func (k formattedKey) Format(s fmt.State, _ rune) {
	var fields [][]byte
	for b := []byte(k); len(b) > 0; {
		n, err := encoding.Skip(b)
		if err != nil {
			fmt.Fprintf(s, "%x", []byte(k))
			return
		}
		fields = append(fields, b[:n])
		b = b[n:]
	}

	_, _ = io.WriteString(s, "(")
	for i, f := range fields {
		if i > 0 {
			_, _ = io.WriteString(s, ", ")
		}

		v, _, err := types.DecodeValue(f)
		if err != nil {
			fmt.Fprintf(s, "%x", f)
			continue
		}
		_, _ = io.WriteString(s, v.String())
	}
	_, _ = io.WriteString(s, ")")
}

// PebbleOptions configures a PebbleEngine.
type PebbleOptions struct {
	// InMemory stores the database in a memory filesystem.
	// The path is ignored.
	InMemory bool
	// Logger receives Pebble's logs. If nil, logs are discarded.
	Logger *zap.Logger
}

// PebbleEngine is an Engine backed by a Pebble database.
type PebbleEngine struct {
	DB *pebble.DB

	closed atomic.Bool
	// serializes the existence check and the removal of Delete
	deleteMu sync.Mutex
}

var _ Engine = (*PebbleEngine)(nil)

// NewPebbleEngine opens or creates a Pebble database at path.
func NewPebbleEngine(path string, opts PebbleOptions) (*PebbleEngine, error) {
	logger := pebbleutil.NewZapLoggerAndTracer(opts.Logger)

	popts := pebble.Options{
		Comparer:        DefaultComparer,
		Logger:          logger,
		LoggerAndTracer: logger,
	}
	if opts.InMemory {
		popts.FS = vfs.NewMem()
		path = ""
	}

	db, err := pebble.Open(path, &popts)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open pebble database at %q", path)
	}

	return &PebbleEngine{DB: db}, nil
}

func (e *PebbleEngine) Put(k, v []byte) error {
	if e.closed.Load() {
		return errors.WithStack(ErrEngineClosed)
	}
	if len(k) == 0 {
		return errors.WithStack(ErrEmptyKey)
	}

	return e.DB.Set(k, v, pebble.NoSync)
}

func (e *PebbleEngine) Get(k []byte) ([]byte, error) {
	if e.closed.Load() {
		return nil, errors.WithStack(ErrEngineClosed)
	}

	value, closer, err := e.DB.Get(k)
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return nil, errors.WithStack(ErrKeyNotFound)
		}

		return nil, err
	}

	cp := make([]byte, len(value))
	copy(cp, value)

	err = closer.Close()
	if err != nil {
		return nil, err
	}

	return cp, nil
}

// Delete removes k. If k doesn't exist, it returns ErrKeyNotFound.
// Concurrent deletions of the same key succeed only once.
func (e *PebbleEngine) Delete(k []byte) error {
	if e.closed.Load() {
		return errors.WithStack(ErrEngineClosed)
	}

	e.deleteMu.Lock()
	defer e.deleteMu.Unlock()

	_, closer, err := e.DB.Get(k)
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return errors.WithStack(ErrKeyNotFound)
		}

		return err
	}
	err = closer.Close()
	if err != nil {
		return err
	}

	return e.DB.Delete(k, pebble.NoSync)
}

func (e *PebbleEngine) Iterate(lower, upper []byte, reverse bool, fn func(k, v []byte) error) (err error) {
	if e.closed.Load() {
		return errors.WithStack(ErrEngineClosed)
	}
	if lower != nil && upper != nil && bytes.Compare(lower, upper) >= 0 {
		return nil
	}

	it := e.DB.NewIter(&pebble.IterOptions{
		LowerBound: lower,
		UpperBound: upper,
	})
	defer func() {
		err = errors.CombineErrors(err, it.Close())
	}()

	if reverse {
		for it.Last(); it.Valid(); it.Prev() {
			if err := fn(it.Key(), it.Value()); err != nil {
				return err
			}
		}
	} else {
		for it.First(); it.Valid(); it.Next() {
			if err := fn(it.Key(), it.Value()); err != nil {
				return err
			}
		}
	}

	return it.Error()
}

func (e *PebbleEngine) NewBatch() Batch {
	return &pebbleBatch{b: e.DB.NewBatch()}
}

// Close the engine and underlying Pebble database.
func (e *PebbleEngine) Close() error {
	if !e.closed.CompareAndSwap(false, true) {
		return errors.WithStack(ErrEngineClosed)
	}

	return e.DB.Close()
}

type pebbleBatch struct {
	b         *pebble.Batch
	committed bool
	closed    bool
}

func (b *pebbleBatch) Put(k, v []byte) error {
	if b.committed {
		return errors.WithStack(ErrBatchCommitted)
	}
	if len(k) == 0 {
		return errors.WithStack(ErrEmptyKey)
	}

	return b.b.Set(k, v, nil)
}

func (b *pebbleBatch) Delete(k []byte) error {
	if b.committed {
		return errors.WithStack(ErrBatchCommitted)
	}

	return b.b.Delete(k, nil)
}

func (b *pebbleBatch) Len() int {
	return int(b.b.Count())
}

func (b *pebbleBatch) Commit() error {
	if b.committed {
		return errors.WithStack(ErrBatchCommitted)
	}
	b.committed = true

	return b.b.Commit(pebble.NoSync)
}

func (b *pebbleBatch) Close() error {
	if b.closed {
		return nil
	}
	b.closed = true

	return b.b.Close()
}
