package tree

import (
	"bytes"

	"github.com/chaisql/orderedbytes/internal/encoding"
	"github.com/chaisql/orderedbytes/internal/kv"
	"github.com/chaisql/orderedbytes/internal/types"
	"github.com/cockroachdb/errors"
)

// A Namespace is a number that prefixes all the keys of a tree.
// Trees sharing an engine must use distinct namespaces.
// Namespace 0 means keys are stored without prefix.
type Namespace int64

// AppendPrefix appends the prefix of the keys of the namespace to dst.
func (ns Namespace) AppendPrefix(dst []byte) []byte {
	if ns == 0 {
		return dst
	}

	return encoding.EncodeInt64(dst, int64(ns))
}

// TrimPrefix returns k without the prefix of the namespace.
// It fails if k belongs to another namespace.
func (ns Namespace) TrimPrefix(k []byte) ([]byte, error) {
	if ns == 0 {
		return k, nil
	}

	got, n, err := encoding.DecodeInt64(k)
	if err != nil {
		return nil, errors.Wrap(err, "invalid namespace")
	}
	if got != int64(ns) {
		return nil, errors.Errorf("key belongs to namespace %d, expected %d", got, ns)
	}

	return k[n:], nil
}

// A Tree is an abstraction over a k-v engine that allows
// manipulating data using composite keys and values of the
// types package.
// The key of a tree is a combination of several values, encoded
// following the tree schema. The tree ensures all keys are sort-ordered
// according to the rules of types.CompareTuples with the schema directions.
// A Tree doesn't support duplicate keys.
type Tree struct {
	Engine    kv.Engine
	Namespace Namespace
	Schema    Schema
}

func New(ng kv.Engine, ns Namespace, s Schema) *Tree {
	return &Tree{
		Engine:    ng,
		Namespace: ns,
		Schema:    s,
	}
}

// Put adds or replaces a key-value combination to the tree.
// If the key already exists, its value will be replaced by
// the given value. The key must have one value per column.
func (t *Tree) Put(key *Key, value types.Value) error {
	k, err := t.encodeFullKey(key)
	if err != nil {
		return err
	}

	if value == nil {
		value = types.NewNullValue()
	}

	enc, err := types.EncodeValueAsKey(nil, value, encoding.Ascending)
	if err != nil {
		return err
	}

	return t.Engine.Put(t.buildKey(k), enc)
}

// Get a key from the tree. If the key doesn't exist,
// it returns kv.ErrKeyNotFound.
func (t *Tree) Get(key *Key) (types.Value, error) {
	k, err := t.encodeFullKey(key)
	if err != nil {
		return nil, err
	}

	enc, err := t.Engine.Get(t.buildKey(k))
	if err != nil {
		return nil, err
	}

	return &Value{encoded: enc}, nil
}

// Delete a key from the tree. If the key doesn't exist,
// it returns kv.ErrKeyNotFound.
func (t *Tree) Delete(key *Key) error {
	k, err := t.encodeFullKey(key)
	if err != nil {
		return err
	}

	return t.Engine.Delete(t.buildKey(k))
}

// Truncate removes every key of the tree.
func (t *Tree) Truncate() error {
	b := t.Engine.NewBatch()
	defer b.Close()

	err := t.Engine.Iterate(t.buildFirstKey(), t.buildLastKey(), false, func(k, _ []byte) error {
		return b.Delete(bytes.Clone(k))
	})
	if err != nil {
		return err
	}

	return b.Commit()
}

// IterateOnRange iterates on all keys that are in the given range.
// Min and Max may be partial keys, in which case they match every key
// they are a prefix of.
// Depending on the direction, the range is translated to the following table:
// | SQL   | Range            | Direction | Seek    | End     |
// | ----- | ---------------- | --------- | ------- | ------- |
// | = 10  | Min: 10, Max: 10 | ASC       | 10      | 10+0xFF |
// | > 10  | Min: 10, Excl    | ASC       | 10+0xFF | nil     |
// | >= 10 | Min: 10          | ASC       | 10      | nil     |
// | < 10  | Max: 10, Excl    | ASC       | nil     | 10 excl |
// | <= 10 | Max: 10          | ASC       | nil     | 10+0xFF |
// | = 10  | Min: 10, Max: 10 | DESC      | 10+0xFF | 10      |
// | > 10  | Min: 10, Excl    | DESC      | nil     | 10+0xFF |
// | >= 10 | Min: 10          | DESC      | nil     | 10      |
// | < 10  | Max: 10, Excl    | DESC      | 10 excl | nil     |
// | <= 10 | Max: 10          | DESC      | 10+0xFF | nil     |
// Min and Max are compared in key order: for a descending column,
// Min holds the greatest value.
// The key passed to fn is only valid during the call.
func (t *Tree) IterateOnRange(rng *Range, reverse bool, fn func(*Key, types.Value) error) error {
	var start, end []byte

	if rng == nil {
		rng = &Range{}
	}

	if rng.Min == nil {
		start = t.buildFirstKey()
	} else {
		lo, err := rng.Min.Encode(t.Schema)
		if err != nil {
			return errors.Wrap(err, "invalid range min")
		}
		if rng.Exclusive {
			start = t.buildStartKeyExclusive(lo)
		} else {
			start = t.buildStartKeyInclusive(lo)
		}
	}

	if rng.Max == nil {
		end = t.buildLastKey()
	} else {
		hi, err := rng.Max.Encode(t.Schema)
		if err != nil {
			return errors.Wrap(err, "invalid range max")
		}
		if rng.Exclusive {
			end = t.buildEndKeyExclusive(hi)
		} else {
			end = t.buildEndKeyInclusive(hi)
		}
	}

	prefix := t.buildFirstKey()
	var key Key
	var value Value

	return t.Engine.Iterate(start, end, reverse, func(k, v []byte) error {
		key.Encoded = k[len(prefix):]
		key.values = nil
		value.encoded = v
		value.v = nil

		return fn(&key, &value)
	})
}

func (t *Tree) encodeFullKey(key *Key) ([]byte, error) {
	if key.Encoded == nil && key.Len() != len(t.Schema) {
		return nil, errors.Errorf("key %s has %d values, expected %d", key, key.Len(), len(t.Schema))
	}

	k, err := key.Encode(t.Schema)
	if err != nil {
		return nil, err
	}

	// keys built from bytes are checked against the schema
	if key.values == nil {
		if _, err := DecodeKey(t.Schema, k); err != nil {
			return nil, err
		}
	}

	return k, nil
}

func (t *Tree) buildKey(key []byte) []byte {
	return append(t.Namespace.AppendPrefix(nil), key...)
}

func (t *Tree) buildFirstKey() []byte {
	if t.Namespace == 0 {
		return nil
	}

	return t.buildKey(nil)
}

func (t *Tree) buildLastKey() []byte {
	if t.Namespace == 0 {
		return nil
	}

	return encoding.Successor(nil, t.buildKey(nil))
}

func (t *Tree) buildStartKeyInclusive(key []byte) []byte {
	return t.buildKey(key)
}

func (t *Tree) buildStartKeyExclusive(key []byte) []byte {
	return encoding.Successor(nil, t.buildKey(key))
}

func (t *Tree) buildEndKeyInclusive(key []byte) []byte {
	return encoding.Successor(nil, t.buildKey(key))
}

func (t *Tree) buildEndKeyExclusive(key []byte) []byte {
	return t.buildKey(key)
}

// Value is an implementation of the types.Value interface returned by Tree.
// It is used to lazily decode values from the underlying engine.
type Value struct {
	encoded []byte
	v       types.Value
}

func (v *Value) decode() {
	if v.v != nil {
		return
	}

	var err error
	v.v, _, err = types.DecodeValue(v.encoded)
	if err != nil {
		panic(err)
	}
}

func (v *Value) Type() types.Type {
	v.decode()

	return v.v.Type()
}

func (v *Value) V() any {
	v.decode()

	return v.v.V()
}

func (v *Value) String() string {
	v.decode()

	return v.v.String()
}

func (v *Value) EncodeAsKey(dst []byte) ([]byte, error) {
	return append(dst, v.encoded...), nil
}

// Unwrap returns the decoded value, which remains valid
// after the iteration moved on.
func (v *Value) Unwrap() (types.Value, error) {
	if v.v != nil {
		return v.v, nil
	}

	dv, _, err := types.DecodeValue(v.encoded)
	if err != nil {
		return nil, err
	}

	v.v = dv
	return dv, nil
}

// A Range of keys to iterate on.
// By default, Min and Max are inclusive.
// If Exclusive is true, Min and Max are excluded
// from the results.
type Range struct {
	Min, Max  *Key
	Exclusive bool
}
