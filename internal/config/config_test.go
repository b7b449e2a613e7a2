package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/chaisql/orderedbytes"
	"github.com/chaisql/orderedbytes/internal/config"
	"github.com/chaisql/orderedbytes/internal/kv"
	"github.com/chaisql/orderedbytes/internal/tree"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
	"go.uber.org/zap/zaptest"
)

const sample = `
[store]
engine = "pebble"
path = "keys.db"

[schemas.events]
namespace = 1
fields = ["INT64_OB", "TEXT_OBD"]

[schemas.prices]
namespace = 2
fields = ["decimal_ob"]
`

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "obkey.toml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o600))

	cfg, err := config.Load(path)
	require.NoError(t, err)

	require.Equal(t, kv.EnginePebble, cfg.Store.Engine)
	require.Equal(t, "keys.db", cfg.Store.Path)
	require.False(t, cfg.Store.InMemory)
	require.Equal(t, []string{"events", "prices"}, cfg.SchemaNames())

	s, ns, err := cfg.Schema("events")
	require.NoError(t, err)
	require.Equal(t, tree.Namespace(1), ns)
	require.Equal(t, []orderedbytes.Kind{orderedbytes.Int64, orderedbytes.TextDesc}, s.Kinds())

	_, _, err = cfg.Schema("nope")
	require.Error(t, err)

	_, err = config.Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)
}

func TestParseDefaults(t *testing.T) {
	cfg, err := config.Parse(`
[schemas.k]
fields = ["INT32_OB"]
`)
	require.NoError(t, err)
	require.Equal(t, kv.EnginePebble, cfg.Store.Engine)
	require.True(t, cfg.Store.InMemory)

	ng, err := cfg.OpenEngine(zaptest.NewLogger(t))
	require.NoError(t, err)
	require.NoError(t, ng.Close())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		doc    string
		errors int
	}{
		{"memory engine", `
[store]
engine = "memory"
`, 0},
		{"unknown engine", `
[store]
engine = "bolt"
`, 1},
		{"pebble without path", `
[store]
in_memory = false
`, 1},
		{"unknown key", `
[store]
engin = "memory"
`, 1},
		{"every problem", `
[store]
engine = "bolt"

[schemas.a]
fields = ["INT32_OB", "NOPE", "ALSO_NOPE"]

[schemas.b]
fields = []

[schemas.c]
fields = ["TEXT_OB"]
`, 6},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := config.Parse(test.doc)
			if test.errors == 0 {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			require.Len(t, multierr.Errors(err), test.errors, err.Error())
		})
	}
}
