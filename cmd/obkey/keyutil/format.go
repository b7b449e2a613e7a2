package keyutil

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"gopkg.in/inf.v0"
)

// ParseBytes reads a byte string written either in hexadecimal,
// such as "2b8000000a" or "0x2b 80 00 00 0a", or with escape sequences
// such as `\x2b\x80\x00\x00\x0a`. Escaped strings may contain
// printable characters, which stand for themselves.
func ParseBytes(s string) ([]byte, error) {
	if strings.Contains(s, `\x`) {
		return parseEscaped(s)
	}

	s = strings.TrimPrefix(strings.TrimSpace(s), "0x")
	s = strings.Join(strings.Fields(s), "")

	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid hexadecimal string %q", s)
	}

	return b, nil
}

func parseEscaped(s string) ([]byte, error) {
	b := make([]byte, 0, len(s)/4)

	for i := 0; i < len(s); {
		if !strings.HasPrefix(s[i:], `\x`) {
			b = append(b, s[i])
			i++
			continue
		}

		if i+4 > len(s) {
			return nil, errors.Errorf("truncated escape sequence at offset %d", i)
		}

		x, err := strconv.ParseUint(s[i+2:i+4], 16, 8)
		if err != nil {
			return nil, errors.Errorf("invalid escape sequence %q at offset %d", s[i:i+4], i)
		}
		b = append(b, byte(x))
		i += 4
	}

	return b, nil
}

// FormatBytes returns the lowercase hexadecimal representation of b.
func FormatBytes(b []byte) string {
	return hex.EncodeToString(b)
}

// FormatValue returns a readable representation of a decoded value.
func FormatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return "NULL"
	case string:
		return strconv.Quote(x)
	case []byte:
		return `'\x` + hex.EncodeToString(x) + `'`
	case float32:
		return strconv.FormatFloat(float64(x), 'g', -1, 32)
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	case *inf.Dec:
		return x.String()
	}

	return fmt.Sprint(v)
}

// FormatTuple returns a readable representation of a decoded tuple.
func FormatTuple(values []any) string {
	var sb strings.Builder

	sb.WriteByte('(')
	for i, v := range values {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(FormatValue(v))
	}
	sb.WriteByte(')')

	return sb.String()
}
