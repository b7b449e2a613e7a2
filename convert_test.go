package orderedbytes_test

import (
	"bytes"
	"fmt"
	"math"
	"testing"

	"github.com/chaisql/orderedbytes"
	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"
	"gopkg.in/inf.v0"
)

// dec parses a plain decimal literal. Exponent notation is not accepted.
func dec(t testing.TB, s string) *inf.Dec {
	t.Helper()

	d, ok := new(inf.Dec).SetString(s)
	require.True(t, ok, "invalid decimal %q", s)
	return d
}

func requireSameValue(t *testing.T, want, got any) {
	t.Helper()

	if d, ok := want.(*inf.Dec); ok {
		gd, ok := got.(*inf.Dec)
		require.True(t, ok, "expected *inf.Dec, got %T", got)
		require.Zero(t, d.Cmp(gd), "expected %s, got %s", d, gd)
		return
	}

	require.Equal(t, want, got)
}

func TestConvertTo(t *testing.T) {
	tests := []struct {
		name  string
		value any
		kind  orderedbytes.Kind
		want  []byte
	}{
		{"null", nil, orderedbytes.Int32, []byte{0x05}},
		{"null desc", nil, orderedbytes.Int32Desc, []byte{0xfa}},
		{"int8", int8(-1), orderedbytes.Int8, []byte{0x29, 0x7f}},
		{"int16 desc", int16(1), orderedbytes.Int16Desc, []byte{0xd5, 0x7f, 0xfe}},
		{"int32", int32(10), orderedbytes.Int32, []byte{0x2b, 0x80, 0x00, 0x00, 0x0a}},
		{"int as int32", 10, orderedbytes.Int32, []byte{0x2b, 0x80, 0x00, 0x00, 0x0a}},
		{"int64", int64(-1), orderedbytes.Int64, []byte{0x2c, 0x7f, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff}},
		{"float", float32(1), orderedbytes.Float, []byte{0x30, 0xbf, 0x80, 0x00, 0x00}},
		{"float desc", float32(1), orderedbytes.FloatDesc, []byte{0xcf, 0x40, 0x7f, 0xff, 0xff}},
		{"min subnormal double", 4.9e-324, orderedbytes.Double, []byte{0x31, 0x80, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x01}},
		{"float32 as double", float32(1), orderedbytes.Double, []byte{0x31, 0xbf, 0xf0, 0, 0, 0, 0, 0, 0}},
		{"decimal", dec(t, "1.5"), orderedbytes.Decimal, []byte{0x17, 0x03, 0x64}},
		{"decimal value", *dec(t, "1"), orderedbytes.Decimal, []byte{0x17, 0x02}},
		{"int as decimal", 100, orderedbytes.Decimal, []byte{0x18, 0x02}},
		{"large decimal", inf.NewDec(1, -30), orderedbytes.Decimal, []byte{0x22, 0x98, 0x02}},
		{"negative large decimal", inf.NewDec(-1, -30), orderedbytes.Decimal, []byte{0x08, 0x67, 0xfd}},
		{"uint64 as decimal", uint64(math.MaxUint64), orderedbytes.Decimal, []byte{0x20, 0x25, 0x59, 0x87, 0x59, 0x0f, 0x4b, 0x13, 0x6f, 0x21, 0x1e}},
		{"boolean", true, orderedbytes.Boolean, []byte{0x27, 0x01}},
		{"text", "a", orderedbytes.Text, []byte{0x34, 0x61, 0x00, 0x00}},
		{"text desc", "a", orderedbytes.TextDesc, []byte{0xcb, 0x9e, 0xff, 0xff}},
		{"binary zero", []byte{0}, orderedbytes.Binary, []byte{0x37, 0x00, 0xff, 0x00, 0x00}},
		{"empty binary", []byte{}, orderedbytes.Binary, []byte{0x37, 0x00, 0x00}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := orderedbytes.ConvertTo(test.value, test.kind)
			require.NoError(t, err)
			require.Equal(t, test.want, got, "%x", got)
		})
	}
}

func TestConvertToTypeMismatch(t *testing.T) {
	tests := []struct {
		name  string
		value any
		kind  orderedbytes.Kind
	}{
		{"string as int", "10", orderedbytes.Int32},
		{"int overflow", 300, orderedbytes.Int8},
		{"int32 overflow", int64(math.MaxInt32) + 1, orderedbytes.Int32Desc},
		{"uint64 overflow", uint64(math.MaxUint64), orderedbytes.Int64},
		{"float64 as float", 1.5, orderedbytes.Float},
		{"int as double", 1, orderedbytes.Double},
		{"float as decimal", 1.5, orderedbytes.Decimal},
		{"bytes as text", []byte("a"), orderedbytes.Text},
		{"string as binary", "a", orderedbytes.Binary},
		{"int as boolean", 1, orderedbytes.Boolean},
		{"invalid utf8", "\xff", orderedbytes.Text},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := orderedbytes.ConvertTo(test.value, test.kind)
			var tm *orderedbytes.TypeMismatchError
			require.True(t, errors.As(err, &tm), "got %v", err)
			require.Equal(t, -1, tm.Offset)
		})
	}

	_, err := orderedbytes.ConvertTo(1, orderedbytes.Kind(0))
	require.Error(t, err)
}

func TestConvertFrom(t *testing.T) {
	tests := []struct {
		name string
		b    []byte
		kind orderedbytes.Kind
		want any
	}{
		{"null", []byte{0x05}, orderedbytes.Text, nil},
		{"null desc", []byte{0xfa}, orderedbytes.TextDesc, nil},
		{"int32", []byte{0x2b, 0x80, 0x00, 0x00, 0x0a}, orderedbytes.Int32, int32(10)},
		{"int16 desc", []byte{0xd5, 0x7f, 0xfe}, orderedbytes.Int16Desc, int16(1)},
		{"min subnormal double", []byte{0x31, 0x80, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x01}, orderedbytes.Double, 4.9e-324},
		{"decimal", []byte{0x16, 0x77, 0x19, 0x3c}, orderedbytes.Decimal, dec(t, "0.123")},
		{"boolean", []byte{0x27, 0x00}, orderedbytes.Boolean, false},
		{"text desc", []byte{0xcb, 0x9e, 0xff, 0xff}, orderedbytes.TextDesc, "a"},
		{"binary zero", []byte{0x37, 0x00, 0xff, 0x00, 0x00}, orderedbytes.Binary, []byte{0}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := orderedbytes.ConvertFrom(test.b, test.kind)
			require.NoError(t, err)
			requireSameValue(t, test.want, got)
		})
	}
}

func TestConvertFromErrors(t *testing.T) {
	int32Enc := []byte{0x2b, 0x80, 0x00, 0x00, 0x0a}

	t.Run("unknown descriptor", func(t *testing.T) {
		_, err := orderedbytes.ConvertFrom([]byte{0x01, 0x02}, orderedbytes.Int32)
		var ud *orderedbytes.UnknownDescriptorError
		require.True(t, errors.As(err, &ud))
		require.Equal(t, 0, ud.Offset)
	})

	t.Run("empty", func(t *testing.T) {
		_, err := orderedbytes.ConvertFrom(nil, orderedbytes.Int32)
		var tk *orderedbytes.TruncatedKeyError
		require.True(t, errors.As(err, &tk))
	})

	t.Run("truncated", func(t *testing.T) {
		_, err := orderedbytes.ConvertFrom(int32Enc[:3], orderedbytes.Int32)
		var tk *orderedbytes.TruncatedKeyError
		require.True(t, errors.As(err, &tk))
	})

	t.Run("trailing bytes", func(t *testing.T) {
		_, err := orderedbytes.ConvertFrom(append(append([]byte{}, int32Enc...), 0x05), orderedbytes.Int32)
		var me *orderedbytes.MalformedEncodingError
		require.True(t, errors.As(err, &me))
		require.Equal(t, 5, me.Offset)
	})

	t.Run("missing terminator", func(t *testing.T) {
		for _, b := range [][]byte{{0x34, 0x61}, {0x34, 0x61, 0x00}, {0xcb, 0x9e}} {
			k := orderedbytes.Text
			if b[0] == 0xcb {
				k = orderedbytes.TextDesc
			}
			_, err := orderedbytes.ConvertFrom(b, k)
			var me *orderedbytes.MalformedEncodingError
			require.True(t, errors.As(err, &me), "%x: %v", b, err)
		}
	})

	t.Run("wrong type", func(t *testing.T) {
		_, err := orderedbytes.ConvertFrom(int32Enc, orderedbytes.Int64)
		var tm *orderedbytes.TypeMismatchError
		require.True(t, errors.As(err, &tm))
		require.Equal(t, "INT64_OB", tm.Expected)
		require.Equal(t, 0, tm.Offset)
	})

	t.Run("wrong direction", func(t *testing.T) {
		_, err := orderedbytes.ConvertFrom(int32Enc, orderedbytes.Int32Desc)
		var tm *orderedbytes.TypeMismatchError
		require.True(t, errors.As(err, &tm))

		_, err = orderedbytes.ConvertFrom([]byte{0x05}, orderedbytes.Int32Desc)
		require.True(t, errors.As(err, &tm))
	})
}

// samples lists values of each ascending kind in increasing order.
func samples(t testing.TB) map[orderedbytes.Kind][]any {
	return map[orderedbytes.Kind][]any{
		orderedbytes.Int8:  {int8(math.MinInt8), int8(-1), int8(0), int8(1), int8(math.MaxInt8)},
		orderedbytes.Int16: {int16(math.MinInt16), int16(-300), int16(0), int16(300), int16(math.MaxInt16)},
		orderedbytes.Int32: {int32(math.MinInt32), int32(-1), int32(0), int32(1), int32(10), int32(math.MaxInt32)},
		orderedbytes.Int64: {int64(math.MinInt64), int64(-1 << 40), int64(0), int64(1 << 40), int64(math.MaxInt64)},
		orderedbytes.Float: {
			float32(math.Inf(-1)), float32(-math.MaxFloat32), float32(-1), float32(-math.SmallestNonzeroFloat32),
			float32(math.Copysign(0, -1)), float32(0), float32(math.SmallestNonzeroFloat32), float32(1),
			float32(math.MaxFloat32), float32(math.Inf(1)),
		},
		orderedbytes.Double: {
			math.Inf(-1), -math.MaxFloat64, -1.0, -4.9e-324, math.Copysign(0, -1), 0.0,
			4.9e-324, 2.2250738585072014e-308, 1.0, math.MaxFloat64, math.Inf(1),
		},
		orderedbytes.Decimal: {
			inf.NewDec(-1, -30), dec(t, "-1"), dec(t, "-0.123"), dec(t, "0"), dec(t, "0.00123"), dec(t, "0.123"),
			dec(t, "1"), dec(t, "1.5"), dec(t, "10"), inf.NewDec(1, -30),
		},
		orderedbytes.Boolean: {false, true},
		orderedbytes.Text:    {"", "\x00", "a", "a\x00", "ab", "b", "é"},
		orderedbytes.Binary:  {[]byte{}, []byte{0}, []byte{0, 0}, []byte{0, 1}, []byte{1}, []byte{0xff}},
	}
}

func TestRoundTrip(t *testing.T) {
	for asc, values := range samples(t) {
		for _, k := range []orderedbytes.Kind{asc, asc.Desc()} {
			t.Run(k.String(), func(t *testing.T) {
				for _, v := range append([]any{nil}, values...) {
					b, err := orderedbytes.ConvertTo(v, k)
					require.NoError(t, err)

					got, err := orderedbytes.ConvertFrom(b, k)
					require.NoError(t, err)
					requireSameValue(t, v, got)
				}
			})
		}
	}
}

func TestOrderPreservation(t *testing.T) {
	for k, values := range samples(t) {
		t.Run(k.String(), func(t *testing.T) {
			null, err := orderedbytes.ConvertTo(nil, k)
			require.NoError(t, err)
			nullDesc, err := orderedbytes.ConvertTo(nil, k.Desc())
			require.NoError(t, err)

			for i := range values {
				ai, err := orderedbytes.ConvertTo(values[i], k)
				require.NoError(t, err)
				di, err := orderedbytes.ConvertTo(values[i], k.Desc())
				require.NoError(t, err)

				require.Equal(t, -1, bytes.Compare(null, ai), "null < %v", values[i])
				require.Equal(t, 1, bytes.Compare(nullDesc, di), "null > %v desc", values[i])

				for j := i + 1; j < len(values); j++ {
					aj, err := orderedbytes.ConvertTo(values[j], k)
					require.NoError(t, err)
					dj, err := orderedbytes.ConvertTo(values[j], k.Desc())
					require.NoError(t, err)

					msg := fmt.Sprintf("%v < %v", values[i], values[j])
					require.Equal(t, -1, bytes.Compare(ai, aj), msg)
					require.Equal(t, 1, bytes.Compare(di, dj), msg)
				}
			}
		})
	}
}
