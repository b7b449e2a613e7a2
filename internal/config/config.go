// Package config loads the configuration of the obkey command from TOML files.
//
// A configuration file describes the store and a list of named key schemas:
//
//	[store]
//	engine = "pebble"
//	path = "keys.db"
//
//	[schemas.events]
//	namespace = 1
//	fields = ["INT64_OB", "TEXT_OBD"]
package config

import (
	"fmt"
	"sort"

	"github.com/BurntSushi/toml"
	"github.com/chaisql/orderedbytes"
	"github.com/chaisql/orderedbytes/internal/kv"
	"github.com/chaisql/orderedbytes/internal/tree"
	"github.com/cockroachdb/errors"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Config is the content of a configuration file.
type Config struct {
	Store   StoreConfig             `toml:"store"`
	Schemas map[string]SchemaConfig `toml:"schemas"`
}

// StoreConfig configures the engine where keys are stored.
type StoreConfig struct {
	Engine   kv.EngineKind `toml:"engine"`
	Path     string        `toml:"path"`
	InMemory bool          `toml:"in_memory"`
}

// SchemaConfig describes a named composite key.
type SchemaConfig struct {
	// Namespace prefixes every key of the schema in the store.
	// Schemas sharing a store must use distinct namespaces.
	Namespace int64    `toml:"namespace"`
	Fields    []string `toml:"fields"`
}

// Default returns a configuration storing keys in memory.
func Default() *Config {
	return &Config{
		Store: StoreConfig{
			Engine:   kv.EnginePebble,
			InMemory: true,
		},
		Schemas: make(map[string]SchemaConfig),
	}
}

// Load reads and validates the configuration file at path.
// Unknown keys are reported as errors.
func Load(path string) (*Config, error) {
	cfg := Default()

	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read configuration file %q", path)
	}

	return finish(cfg, md)
}

// Parse decodes and validates a configuration from a TOML document.
func Parse(data string) (*Config, error) {
	cfg := Default()

	md, err := toml.Decode(data, cfg)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse configuration")
	}

	return finish(cfg, md)
}

func finish(cfg *Config, md toml.MetaData) (*Config, error) {
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		var err error
		for _, k := range undecoded {
			err = multierr.Append(err, errors.Errorf("unknown key %q", k.String()))
		}
		return nil, err
	}

	if md.IsDefined("store", "path") && !md.IsDefined("store", "in_memory") {
		cfg.Store.InMemory = false
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate reports every problem of the configuration.
func (c *Config) Validate() error {
	var err error

	switch c.Store.Engine {
	case kv.EnginePebble:
		if c.Store.Path == "" && !c.Store.InMemory {
			err = multierr.Append(err, errors.New("store: path is required by the pebble engine unless in_memory is set"))
		}
	case kv.EngineMemory:
	default:
		err = multierr.Append(err, errors.Errorf("store: unknown engine %q", c.Store.Engine))
	}

	namespaces := make(map[int64]string)
	for _, name := range c.SchemaNames() {
		sc := c.Schemas[name]

		if len(sc.Fields) == 0 {
			err = multierr.Append(err, errors.Errorf("schemas.%s: fields are required", name))
		}
		for i, f := range sc.Fields {
			if _, perr := orderedbytes.ParseKind(f); perr != nil {
				err = multierr.Append(err, errors.Wrapf(perr, "schemas.%s: field %d", name, i))
			}
		}

		if other, ok := namespaces[sc.Namespace]; ok {
			err = multierr.Append(err, errors.Errorf("schemas.%s: namespace %d already used by schemas.%s", name, sc.Namespace, other))
		}
		namespaces[sc.Namespace] = name
	}

	return err
}

// SchemaNames returns the names of the schemas in alphabetical order.
func (c *Config) SchemaNames() []string {
	names := make([]string, 0, len(c.Schemas))
	for name := range c.Schemas {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Schema returns the schema with the given name and its namespace.
func (c *Config) Schema(name string) (*orderedbytes.Schema, tree.Namespace, error) {
	sc, ok := c.Schemas[name]
	if !ok {
		return nil, 0, errors.Errorf("unknown schema %q", name)
	}

	s, err := orderedbytes.ParseSchemaFields(sc.Fields)
	if err != nil {
		return nil, 0, errors.Wrapf(err, "schemas.%s", name)
	}

	return s, tree.Namespace(sc.Namespace), nil
}

// OpenEngine opens the engine described by the store section.
func (c *Config) OpenEngine(logger *zap.Logger) (kv.Engine, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	logger.Debug("opening store",
		zap.String("engine", string(c.Store.Engine)),
		zap.String("path", c.Store.Path),
		zap.Bool("in_memory", c.Store.InMemory),
	)

	return kv.Open(c.Store.Engine, c.Store.Path, kv.PebbleOptions{
		InMemory: c.Store.InMemory,
		Logger:   logger,
	})
}

func (s StoreConfig) String() string {
	if s.InMemory || s.Engine == kv.EngineMemory {
		return fmt.Sprintf("%s (in memory)", s.Engine)
	}

	return fmt.Sprintf("%s (%s)", s.Engine, s.Path)
}
