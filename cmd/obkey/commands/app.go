package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/chaisql/orderedbytes"
	"github.com/chaisql/orderedbytes/internal/config"
	"github.com/chaisql/orderedbytes/internal/tree"
	"github.com/cockroachdb/errors"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

// NewApp creates the obkey CLI app.
func NewApp() *cli.App {
	app := cli.NewApp()
	app.Name = "obkey"
	app.Usage = "Encode, decode and store order-preserving keys"
	app.EnableBashCompletion = true

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Path of the configuration file.",
			EnvVars: []string{"OBKEY_CONFIG"},
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "Log debug messages to the standard error.",
		},
	}

	app.Commands = []*cli.Command{
		NewToCommand(),
		NewFromCommand(),
		NewKeyCommand(),
		NewLoadCommand(),
		NewScanCommand(),
		NewVersionCommand(),
	}

	// inject cancelable context to all commands
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, os.Interrupt, syscall.SIGTERM)

	ctx, cancel := context.WithCancel(context.Background())

	go func() {
		defer cancel()
		<-ch
	}()

	for _, cmd := range app.Commands {
		injectContext(ctx, cmd)
	}

	app.After = func(c *cli.Context) error {
		cancel()
		return nil
	}

	return app
}

func injectContext(ctx context.Context, cmd *cli.Command) {
	for _, sub := range cmd.Subcommands {
		injectContext(ctx, sub)
	}

	action := cmd.Action
	if action == nil {
		return
	}
	cmd.Action = func(c *cli.Context) error {
		c.Context = ctx
		return action(c)
	}
}

// env holds what commands share: the configuration and the logger.
type env struct {
	cfg    *config.Config
	logger *zap.Logger
}

func newEnv(c *cli.Context) (*env, error) {
	var e env
	var err error

	if c.Bool("verbose") {
		e.logger, err = zap.NewDevelopment()
	} else {
		cfg := zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
		e.logger, err = cfg.Build()
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to build logger")
	}

	path := c.String("config")
	if path == "" {
		e.cfg = config.Default()
	} else {
		e.cfg, err = config.Load(path)
		if err != nil {
			return nil, err
		}
	}

	e.logger.Debug("configuration loaded",
		zap.String("path", path),
		zap.Stringer("store", e.cfg.Store),
		zap.Strings("schemas", e.cfg.SchemaNames()),
	)

	return &e, nil
}

func (e *env) close() {
	_ = e.logger.Sync()
}

func newSchemaFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "schema",
			Aliases: []string{"s"},
			Usage:   "Comma separated list of kinds, such as \"INT32_OB,TEXT_OBD\".",
		},
		&cli.StringFlag{
			Name:    "name",
			Aliases: []string{"n"},
			Usage:   "Name of a schema of the configuration file.",
		},
	}
}

// schemaFromFlags returns the schema selected by the --schema or --name flags,
// and its namespace.
func (e *env) schemaFromFlags(c *cli.Context) (*orderedbytes.Schema, tree.Namespace, error) {
	switch {
	case c.IsSet("schema") && c.IsSet("name"):
		return nil, 0, errors.New("--schema and --name are mutually exclusive")
	case c.IsSet("schema"):
		s, err := orderedbytes.ParseSchema(c.String("schema"))
		return s, 0, err
	case c.IsSet("name"):
		return e.cfg.Schema(c.String("name"))
	}

	return nil, 0, errors.New("a schema is required: use --schema or --name")
}
