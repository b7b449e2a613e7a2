package commands

import (
	"fmt"

	"github.com/chaisql/orderedbytes/cmd/obkey/keyutil"
	"github.com/cockroachdb/errors"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

// NewKeyCommand returns a cli.Command for "obkey key".
func NewKeyCommand() *cli.Command {
	return &cli.Command{
		Name:  "key",
		Usage: "Encode and decode composite keys",
		Subcommands: []*cli.Command{
			newKeyEncodeCommand(),
			newKeyDecodeCommand(),
		},
	}
}

func newKeyEncodeCommand() *cli.Command {
	cmd := cli.Command{
		Name:      "encode",
		Usage:     "Encode tuples into composite keys",
		UsageText: `obkey key encode (--schema KINDS | --name NAME) TUPLE...`,
		Description: `The encode command encodes each JSON array passed as argument into a composite key
and prints it in hexadecimal, one per line. If the schema is selected by name,
the key is prefixed by the namespace of the schema.

    $ obkey key encode --schema INT32_OB,TEXT_OB '[1, "a"]'
    2b8000000134610000`,
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

		for i, arg := range c.Args().Slice() {
			values, err := s.ParseJSON([]byte(arg))
			if err != nil {
				return errors.Wrapf(err, "argument %d", i)
			}

			k, err := s.Encode(values...)
			if err != nil {
				return errors.Wrapf(err, "argument %d", i)
			}
			key := append(ns.AppendPrefix(nil), k...)

			e.logger.Debug("key encoded", zap.Stringer("schema", s), zap.String("tuple", keyutil.FormatTuple(values)))

			_, err = fmt.Fprintln(c.App.Writer, keyutil.FormatBytes(key))
			if err != nil {
				return err
			}
		}

		return nil
	}

	return &cmd
}

func newKeyDecodeCommand() *cli.Command {
	cmd := cli.Command{
		Name:      "decode",
		Usage:     "Decode composite keys into tuples",
		UsageText: `obkey key decode (--schema KINDS | --name NAME) BYTES...`,
		Description: `The decode command splits each composite key passed as argument into its values
and prints them, one tuple per line. If the schema is selected by name,
the key must start with the namespace of the schema.

    $ obkey key decode --schema INT32_OB,TEXT_OB 2b8000000134610000
    (1, "a")`,
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

		for i, arg := range c.Args().Slice() {
			key, err := keyutil.ParseBytes(arg)
			if err != nil {
				return errors.Wrapf(err, "argument %d", i)
			}

			key, err = ns.TrimPrefix(key)
			if err != nil {
				return errors.Wrapf(err, "argument %d", i)
			}

			values, err := s.Decode(key)
			if err != nil {
				return errors.Wrapf(err, "argument %d", i)
			}

			_, err = fmt.Fprintln(c.App.Writer, keyutil.FormatTuple(values))
			if err != nil {
				return err
			}
		}

		return nil
	}

	return &cmd
}
