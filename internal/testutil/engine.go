package testutil

import (
	"testing"

	"github.com/chaisql/orderedbytes/internal/kv"
	"github.com/stretchr/testify/require"
)

// An EngineBuilder creates an empty engine closed at the end of the test.
type EngineBuilder func(t testing.TB) kv.Engine

// Engines lists a builder for every engine implementation,
// so that tests can run against all of them.
var Engines = []struct {
	Name  string
	Build EngineBuilder
}{
	{"pebble", NewPebbleEngine},
	{"memory", NewMemoryEngine},
}

func NewPebbleEngine(t testing.TB) kv.Engine {
	t.Helper()

	ng, err := kv.NewPebbleEngine("", kv.PebbleOptions{InMemory: true})
	require.NoError(t, err)
	t.Cleanup(func() { _ = ng.Close() })
	return ng
}

func NewMemoryEngine(t testing.TB) kv.Engine {
	t.Helper()

	ng := kv.NewMemoryEngine()
	t.Cleanup(func() { _ = ng.Close() })
	return ng
}

// DumpEngine logs every key-value pair of the engine, in key order.
func DumpEngine(t testing.TB, ng kv.Engine) {
	t.Helper()

	err := ng.Iterate(nil, nil, false, func(k, v []byte) error {
		t.Logf("%s: %x", kv.FormatKey(k), v)
		return nil
	})
	require.NoError(t, err)
}

// Keys returns a copy of every key of the engine, in key order.
func Keys(t testing.TB, ng kv.Engine) [][]byte {
	t.Helper()

	var keys [][]byte
	err := ng.Iterate(nil, nil, false, func(k, _ []byte) error {
		keys = append(keys, append([]byte(nil), k...))
		return nil
	})
	require.NoError(t, err)
	return keys
}
