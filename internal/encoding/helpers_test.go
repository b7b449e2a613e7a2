package encoding_test

import (
	"bytes"
	"testing"

	"github.com/chaisql/orderedbytes/internal/encoding"
	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"
	"gopkg.in/inf.v0"
)

func TestSkip(t *testing.T) {
	var buf []byte
	var sizes []int

	add := func(b []byte) {
		sizes = append(sizes, len(b)-len(buf))
		buf = b
	}

	add(encoding.EncodeNull(buf))
	add(encoding.EncodeBoolean(buf, true))
	add(encoding.EncodeInt8(buf, 1))
	add(encoding.EncodeInt16(buf, 1))
	add(encoding.EncodeInt32(buf, 1))
	add(encoding.EncodeInt64(buf, 1))
	add(encoding.EncodeFloat32(buf, 1))
	add(encoding.EncodeFloat64(buf, 1))
	add(encoding.EncodeDecimal(buf, inf.NewDec(-12345, 2)))
	add(encoding.EncodeDecimal(buf, inf.NewDec(0, 0)))
	add(encoding.EncodeText(buf, "a\x00b"))
	add(encoding.EncodeBlob(buf, []byte{0x00, 0xFF}))
	add(encoding.EncodeWithDirection(buf, encoding.Descending, func(dst []byte) []byte {
		return encoding.EncodeText(dst, "desc\x00")
	}))
	add(encoding.EncodeWithDirection(buf, encoding.Descending, func(dst []byte) []byte {
		return encoding.EncodeDecimal(dst, inf.NewDec(42, 0))
	}))

	b := buf
	for i, size := range sizes {
		n, err := encoding.Skip(b)
		require.NoError(t, err, "value %d", i)
		require.Equal(t, size, n, "value %d", i)
		b = b[n:]
	}
	require.Empty(t, b)

	t.Run("errors", func(t *testing.T) {
		_, err := encoding.Skip(nil)
		var tke *encoding.TruncatedKeyError
		require.True(t, errors.As(err, &tke))

		_, err = encoding.Skip([]byte{encoding.Int64Value, 0x80})
		require.True(t, errors.As(err, &tke))
		require.Equal(t, 9, tke.Need)

		_, err = encoding.Skip([]byte{0x01})
		var ude *encoding.UnknownDescriptorError
		require.True(t, errors.As(err, &ude))
	})
}

func TestEncodeWithDirection(t *testing.T) {
	prefix := []byte{0xAA}
	asc := encoding.EncodeWithDirection(append([]byte(nil), prefix...), encoding.Ascending, func(dst []byte) []byte {
		return encoding.EncodeInt16(dst, 10)
	})
	require.Equal(t, []byte{0xAA, encoding.Int16Value, 0x80, 0x0A}, asc)

	desc := encoding.EncodeWithDirection(append([]byte(nil), prefix...), encoding.Descending, func(dst []byte) []byte {
		return encoding.EncodeInt16(dst, 10)
	})
	require.Equal(t, []byte{0xAA, encoding.DESC_Int16Value, 0x7F, 0xF5}, desc)
}

func TestSuccessor(t *testing.T) {
	prefix := encoding.EncodeInt32(nil, 10)
	succ := encoding.Successor(nil, prefix)

	for _, k := range [][]byte{
		encoding.EncodeText(encoding.EncodeInt32(nil, 10), ""),
		encoding.EncodeBlob(encoding.EncodeInt32(nil, 10), []byte{0xFF, 0xFF}),
		encoding.EncodeFloat64(encoding.EncodeInt32(nil, 10), 1e300),
		encoding.EncodeWithDirection(encoding.EncodeInt32(nil, 10), encoding.Descending, encoding.EncodeNull),
	} {
		require.Equal(t, -1, encoding.Compare(prefix, k))
		require.Equal(t, -1, encoding.Compare(k, succ))
	}

	require.Equal(t, 1, bytes.Compare(encoding.EncodeInt32(nil, 11), succ))
}

func TestShiftOffset(t *testing.T) {
	_, _, err := encoding.DecodeBlob([]byte{encoding.BlobValue, 'a'})
	err = encoding.ShiftOffset(err, 10)
	var mee *encoding.MalformedEncodingError
	require.True(t, errors.As(err, &mee))
	require.Equal(t, 12, mee.Offset)

	err = encoding.ShiftOffset(errors.Wrap(encoding.NewTypeMismatchError("a", "b", -1), "column 1"), 5)
	var tme *encoding.TypeMismatchError
	require.True(t, errors.As(err, &tme))
	require.Equal(t, -1, tme.Offset)

	require.NoError(t, encoding.ShiftOffset(nil, 3))
}
