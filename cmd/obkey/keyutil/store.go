package keyutil

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/chaisql/orderedbytes"
	"github.com/chaisql/orderedbytes/internal/tree"
	"github.com/chaisql/orderedbytes/internal/types"
	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
)

// maxLineSize is the size of the longest line Load accepts.
const maxLineSize = 1 << 20

// Load reads JSON arrays from r, one per line, and stores each of them in t
// under the key built with s. The value of each key is the line itself.
// Empty lines are ignored. It returns the number of stored keys.
func Load(ctx context.Context, t *tree.Tree, s *orderedbytes.Schema, r io.Reader, logger *zap.Logger) (int, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var n, line int
	for sc.Scan() {
		line++
		if err := ctx.Err(); err != nil {
			return n, err
		}

		data := bytes.TrimSpace(sc.Bytes())
		if len(data) == 0 {
			continue
		}

		values, err := s.ParseJSON(data)
		if err != nil {
			return n, errors.Wrapf(err, "line %d", line)
		}

		key, err := s.Key(values...)
		if err != nil {
			return n, errors.Wrapf(err, "line %d", line)
		}

		err = t.Put(key, types.NewTextValue(string(data)))
		if err != nil {
			return n, errors.Wrapf(err, "line %d", line)
		}
		n++

		logger.Debug("stored key", zap.Int("line", line), zap.Stringer("key", key))
	}

	return n, sc.Err()
}

// ScanOptions configures Scan.
type ScanOptions struct {
	// Min and Max are the bounds of the range, possibly partial.
	// Empty bounds are ignored.
	Min, Max  []any
	Exclusive bool
	Reverse   bool
	// KeysOnly skips the values.
	KeysOnly bool
}

// Scan writes the keys of t in the given range to w, one per line,
// decoded with s. It returns the number of keys written.
func Scan(ctx context.Context, t *tree.Tree, s *orderedbytes.Schema, opts ScanOptions, w io.Writer) (int, error) {
	rng := tree.Range{Exclusive: opts.Exclusive}

	var err error
	if len(opts.Min) > 0 {
		rng.Min, err = s.Key(opts.Min...)
		if err != nil {
			return 0, errors.Wrap(err, "invalid min")
		}
	}
	if len(opts.Max) > 0 {
		rng.Max, err = s.Key(opts.Max...)
		if err != nil {
			return 0, errors.Wrap(err, "invalid max")
		}
	}

	var n int
	err = t.IterateOnRange(&rng, opts.Reverse, func(k *tree.Key, v types.Value) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		values, err := s.Decode(k.Encoded)
		if err != nil {
			return err
		}
		n++

		if opts.KeysOnly {
			_, err = fmt.Fprintln(w, FormatTuple(values))
			return err
		}

		value, err := v.(*tree.Value).Unwrap()
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(w, "%s: %s\n", FormatTuple(values), FormatValue(value.V()))
		return err
	})

	return n, err
}
