package kv

import (
	"bytes"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/google/btree"
)

// The degree of btrees.
// This value is arbitrary and has been selected after
// a few benchmarks.
const btreeDegree = 12

type item struct {
	k, v []byte
}

func (i *item) Less(than btree.Item) bool {
	return bytes.Compare(i.k, than.(*item).k) < 0
}

// MemoryEngine is an Engine that stores data in an in-memory btree.
// It allows multiple readers and one single writer.
type MemoryEngine struct {
	mu     sync.RWMutex
	tr     *btree.BTree
	closed bool
}

var _ Engine = (*MemoryEngine)(nil)

// NewMemoryEngine creates an empty in-memory engine.
func NewMemoryEngine() *MemoryEngine {
	return &MemoryEngine{
		tr: btree.New(btreeDegree),
	}
}

func (ng *MemoryEngine) Put(k, v []byte) error {
	if len(k) == 0 {
		return errors.WithStack(ErrEmptyKey)
	}

	ng.mu.Lock()
	defer ng.mu.Unlock()

	if ng.closed {
		return errors.WithStack(ErrEngineClosed)
	}

	ng.put(k, v)
	return nil
}

// put stores copies of k and v, as callers are free to reuse their buffers.
func (ng *MemoryEngine) put(k, v []byte) {
	ng.tr.ReplaceOrInsert(&item{
		k: append([]byte(nil), k...),
		v: append([]byte(nil), v...),
	})
}

func (ng *MemoryEngine) Get(k []byte) ([]byte, error) {
	ng.mu.RLock()
	defer ng.mu.RUnlock()

	if ng.closed {
		return nil, errors.WithStack(ErrEngineClosed)
	}

	it := ng.tr.Get(&item{k: k})
	if it == nil {
		return nil, errors.WithStack(ErrKeyNotFound)
	}

	return append([]byte(nil), it.(*item).v...), nil
}

func (ng *MemoryEngine) Delete(k []byte) error {
	ng.mu.Lock()
	defer ng.mu.Unlock()

	if ng.closed {
		return errors.WithStack(ErrEngineClosed)
	}

	if ng.tr.Delete(&item{k: k}) == nil {
		return errors.WithStack(ErrKeyNotFound)
	}

	return nil
}

// Iterate works on a snapshot of the range taken when it is called,
// fn is free to modify the engine.
func (ng *MemoryEngine) Iterate(lower, upper []byte, reverse bool, fn func(k, v []byte) error) error {
	items, err := ng.collect(lower, upper, reverse)
	if err != nil {
		return err
	}

	for _, it := range items {
		if err := fn(it.k, it.v); err != nil {
			return err
		}
	}

	return nil
}

func (ng *MemoryEngine) collect(lower, upper []byte, reverse bool) ([]*item, error) {
	ng.mu.RLock()
	defer ng.mu.RUnlock()

	if ng.closed {
		return nil, errors.WithStack(ErrEngineClosed)
	}

	var items []*item

	if !reverse {
		iterator := btree.ItemIterator(func(i btree.Item) bool {
			items = append(items, i.(*item))
			return true
		})

		switch {
		case lower == nil && upper == nil:
			ng.tr.Ascend(iterator)
		case upper == nil:
			ng.tr.AscendGreaterOrEqual(&item{k: lower}, iterator)
		case lower == nil:
			ng.tr.AscendLessThan(&item{k: upper}, iterator)
		default:
			ng.tr.AscendRange(&item{k: lower}, &item{k: upper}, iterator)
		}

		return items, nil
	}

	iterator := btree.ItemIterator(func(i btree.Item) bool {
		it := i.(*item)
		if upper != nil && bytes.Compare(it.k, upper) >= 0 {
			return true
		}
		if lower != nil && bytes.Compare(it.k, lower) < 0 {
			return false
		}
		items = append(items, it)
		return true
	})

	if upper == nil {
		ng.tr.Descend(iterator)
	} else {
		ng.tr.DescendLessOrEqual(&item{k: upper}, iterator)
	}

	return items, nil
}

func (ng *MemoryEngine) NewBatch() Batch {
	return &memoryBatch{ng: ng}
}

// Close the engine. The data is lost.
func (ng *MemoryEngine) Close() error {
	ng.mu.Lock()
	defer ng.mu.Unlock()

	if ng.closed {
		return errors.WithStack(ErrEngineClosed)
	}

	ng.closed = true
	ng.tr = nil
	return nil
}

type memoryBatch struct {
	ng        *MemoryEngine
	ops       []batchOp
	committed bool
}

type batchOp struct {
	k, v    []byte
	deleted bool
}

func (b *memoryBatch) Put(k, v []byte) error {
	if b.committed {
		return errors.WithStack(ErrBatchCommitted)
	}
	if len(k) == 0 {
		return errors.WithStack(ErrEmptyKey)
	}

	b.ops = append(b.ops, batchOp{
		k: append([]byte(nil), k...),
		v: append([]byte(nil), v...),
	})
	return nil
}

// Delete of a missing key is a no-op once the batch is committed.
func (b *memoryBatch) Delete(k []byte) error {
	if b.committed {
		return errors.WithStack(ErrBatchCommitted)
	}

	b.ops = append(b.ops, batchOp{k: append([]byte(nil), k...), deleted: true})
	return nil
}

func (b *memoryBatch) Len() int {
	return len(b.ops)
}

func (b *memoryBatch) Commit() error {
	if b.committed {
		return errors.WithStack(ErrBatchCommitted)
	}
	b.committed = true

	b.ng.mu.Lock()
	defer b.ng.mu.Unlock()

	if b.ng.closed {
		return errors.WithStack(ErrEngineClosed)
	}

	for _, op := range b.ops {
		if op.deleted {
			b.ng.tr.Delete(&item{k: op.k})
			continue
		}
		b.ng.tr.ReplaceOrInsert(&item{k: op.k, v: op.v})
	}

	b.ops = nil
	return nil
}

func (b *memoryBatch) Close() error {
	b.ops = nil
	return nil
}
