package commands

import (
	"fmt"

	"github.com/chaisql/orderedbytes"
	"github.com/chaisql/orderedbytes/cmd/obkey/keyutil"
	"github.com/cockroachdb/errors"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

func newKindFlag() cli.Flag {
	return &cli.StringFlag{
		Name:     "kind",
		Aliases:  []string{"k"},
		Usage:    "Encoding of the values, such as INT32_OB or TEXT_OBD.",
		Required: true,
	}
}

// NewToCommand returns a cli.Command for "obkey to".
func NewToCommand() *cli.Command {
	cmd := cli.Command{
		Name:      "to",
		Usage:     "Encode values",
		UsageText: `obkey to --kind KIND VALUE...`,
		Description: `The to command encodes each JSON value passed as argument with the given kind
and prints the result in hexadecimal, one per line.

    $ obkey to --kind DOUBLE_OB 4.9e-324
    318000000000000001
    $ obkey to --kind TEXT_OBD '"foo"' null
    cb999090ffff
    fa`,
		Flags: []cli.Flag{newKindFlag()},
	}

	cmd.Action = func(c *cli.Context) error {
		e, err := newEnv(c)
		if err != nil {
			return err
		}
		defer e.close()

		k, err := orderedbytes.ParseKind(c.String("kind"))
		if err != nil {
			return err
		}

		values := make([]any, c.NArg())
		for i, arg := range c.Args().Slice() {
			values[i], err = orderedbytes.ParseJSON([]byte(arg), k)
			if err != nil {
				return errors.Wrapf(err, "argument %d", i)
			}
		}

		encoded, err := orderedbytes.ConvertColumnTo(c.Context, values, k)
		if err != nil {
			return err
		}
		e.logger.Debug("values encoded", zap.Stringer("kind", k), zap.Int("count", len(encoded)))

		for _, b := range encoded {
			_, err = fmt.Fprintln(c.App.Writer, keyutil.FormatBytes(b))
			if err != nil {
				return err
			}
		}

		return nil
	}

	return &cmd
}

// NewFromCommand returns a cli.Command for "obkey from".
func NewFromCommand() *cli.Command {
	cmd := cli.Command{
		Name:      "from",
		Usage:     "Decode values",
		UsageText: `obkey from --kind KIND BYTES...`,
		Description: `The from command decodes each byte string passed as argument with the given kind
and prints the result, one per line. Byte strings are written in hexadecimal
or with \x escape sequences.

    $ obkey from --kind DOUBLE_OB '\x31\x80\x00\x00\x00\x00\x00\x00\x01'
    5e-324`,
		Flags: []cli.Flag{newKindFlag()},
	}

	cmd.Action = func(c *cli.Context) error {
		e, err := newEnv(c)
		if err != nil {
			return err
		}
		defer e.close()

		k, err := orderedbytes.ParseKind(c.String("kind"))
		if err != nil {
			return err
		}

		column := make([][]byte, c.NArg())
		for i, arg := range c.Args().Slice() {
			column[i], err = keyutil.ParseBytes(arg)
			if err != nil {
				return errors.Wrapf(err, "argument %d", i)
			}
		}

		values, err := orderedbytes.ConvertColumnFrom(c.Context, column, k)
		if err != nil {
			return err
		}
		e.logger.Debug("values decoded", zap.Stringer("kind", k), zap.Int("count", len(values)))

		for _, v := range values {
			_, err = fmt.Fprintln(c.App.Writer, keyutil.FormatValue(v))
			if err != nil {
				return err
			}
		}

		return nil
	}

	return &cmd
}
