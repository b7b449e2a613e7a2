package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/chaisql/orderedbytes/cmd/obkey/keyutil"
	"github.com/chaisql/orderedbytes/internal/tree"
	"github.com/cockroachdb/errors"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

// NewLoadCommand returns a cli.Command for "obkey load".
func NewLoadCommand() *cli.Command {
	cmd := cli.Command{
		Name:      "load",
		Usage:     "Store tuples in the store",
		UsageText: `obkey load (--schema KINDS | --name NAME) [FILE]`,
		Description: `The load command reads JSON arrays, one per line, from FILE or from the standard input,
and stores each line in the store of the configuration under the composite key
built from the array.

    $ echo '[1, "a"]' | obkey -c obkey.toml load --name events`,
		Flags: newSchemaFlags(),
	}

	cmd.Action = func(c *cli.Context) error {
		e, err := newEnv(c)
		if err != nil {
			return err
		}
		defer e.close()

		s, ns, err := e.schemaFromFlags(c)
		if err != nil {
			return err
		}

		var r io.Reader = c.App.Reader
		if c.NArg() > 0 {
			f, err := os.Open(c.Args().First())
			if err != nil {
				return errors.Wrap(err, "failed to open input")
			}
			defer f.Close()
			r = f
		}

		ng, err := e.cfg.OpenEngine(e.logger)
		if err != nil {
			return err
		}
		defer ng.Close()

		n, err := keyutil.Load(c.Context, tree.New(ng, ns, s.Tree()), s, r, e.logger)
		if err != nil {
			return err
		}

		e.logger.Info("tuples loaded", zap.Int("count", n), zap.Stringer("schema", s))
		_, err = fmt.Fprintf(c.App.Writer, "loaded %d keys\n", n)
		return err
	}

	return &cmd
}

// NewScanCommand returns a cli.Command for "obkey scan".
func NewScanCommand() *cli.Command {
	cmd := cli.Command{
		Name:      "scan",
		Usage:     "Output the keys of the store",
		UsageText: `obkey scan (--schema KINDS | --name NAME) [--min TUPLE] [--max TUPLE] [--exclusive] [--reverse] [--keys-only]`,
		Description: `The scan command outputs the keys stored with a schema, in key order.
Bounds are JSON arrays which can hold fewer values than the schema.

    $ obkey -c obkey.toml scan --name events --min '[1]' --max '[2]'`,
		Flags: append(newSchemaFlags(),
			&cli.StringFlag{
				Name:  "min",
				Usage: "Lower bound of the range.",
			},
			&cli.StringFlag{
				Name:  "max",
				Usage: "Upper bound of the range.",
			},
			&cli.BoolFlag{
				Name:    "exclusive",
				Aliases: []string{"e"},
				Usage:   "Exclude the bounds from the range.",
			},
			&cli.BoolFlag{
				Name:    "reverse",
				Aliases: []string{"r"},
				Usage:   "Output keys in reverse order.",
			},
			&cli.BoolFlag{
				Name:    "keys-only",
				Aliases: []string{"k"},
				Usage:   "Only output the keys.",
			},
		),
	}

	cmd.Action = func(c *cli.Context) error {
		e, err := newEnv(c)
		if err != nil {
			return err
		}
		defer e.close()

		s, ns, err := e.schemaFromFlags(c)
		if err != nil {
			return err
		}

		opts := keyutil.ScanOptions{
			Exclusive: c.Bool("exclusive"),
			Reverse:   c.Bool("reverse"),
			KeysOnly:  c.Bool("keys-only"),
		}
		if c.IsSet("min") {
			opts.Min, err = s.ParseJSONPrefix([]byte(c.String("min")))
			if err != nil {
				return errors.Wrap(err, "invalid min")
			}
		}
		if c.IsSet("max") {
			opts.Max, err = s.ParseJSONPrefix([]byte(c.String("max")))
			if err != nil {
				return errors.Wrap(err, "invalid max")
			}
		}

		ng, err := e.cfg.OpenEngine(e.logger)
		if err != nil {
			return err
		}
		defer ng.Close()

		n, err := keyutil.Scan(c.Context, tree.New(ng, ns, s.Tree()), s, opts, c.App.Writer)
		if err != nil {
			return err
		}

		e.logger.Debug("keys scanned", zap.Int("count", n))
		return nil
	}

	return &cmd
}
