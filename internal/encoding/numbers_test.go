package encoding_test

import (
	"bytes"
	"math"
	"math/rand"
	"sort"
	"testing"

	"github.com/chaisql/orderedbytes/internal/encoding"
	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"
)

func TestEncodeInt(t *testing.T) {
	tests := []struct {
		name string
		enc  []byte
		want []byte
	}{
		{"int8 min", encoding.EncodeInt8(nil, math.MinInt8), []byte{0x29, 0x00}},
		{"int8 -1", encoding.EncodeInt8(nil, -1), []byte{0x29, 0x7F}},
		{"int8 0", encoding.EncodeInt8(nil, 0), []byte{0x29, 0x80}},
		{"int8 max", encoding.EncodeInt8(nil, math.MaxInt8), []byte{0x29, 0xFF}},
		{"int16 0", encoding.EncodeInt16(nil, 0), []byte{0x2a, 0x80, 0x00}},
		{"int16 -2", encoding.EncodeInt16(nil, -2), []byte{0x2a, 0x7F, 0xFE}},
		{"int32 min", encoding.EncodeInt32(nil, math.MinInt32), []byte{0x2b, 0x00, 0x00, 0x00, 0x00}},
		{"int32 1", encoding.EncodeInt32(nil, 1), []byte{0x2b, 0x80, 0x00, 0x00, 0x01}},
		{"int32 max", encoding.EncodeInt32(nil, math.MaxInt32), []byte{0x2b, 0xFF, 0xFF, 0xFF, 0xFF}},
		{"int64 -1", encoding.EncodeInt64(nil, -1), []byte{0x2c, 0x7F, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}},
		{"int64 max", encoding.EncodeInt64(nil, math.MaxInt64), []byte{0x2c, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			require.Equal(t, test.want, test.enc)
		})
	}
}

func TestIntRoundTrip(t *testing.T) {
	for _, x := range []int64{math.MinInt64, math.MinInt32 - 1, -1, 0, 1, math.MaxInt32 + 1, math.MaxInt64} {
		got, n, err := encoding.DecodeInt64(encoding.EncodeInt64(nil, x))
		require.NoError(t, err)
		require.Equal(t, 9, n)
		require.Equal(t, x, got)

		enc, _ := encoding.Desc(encoding.EncodeInt64(nil, x), 9)
		got, _, err = encoding.DecodeInt64(enc)
		require.NoError(t, err)
		require.Equal(t, x, got)
	}

	for _, x := range []int32{math.MinInt32, -1, 0, 1, math.MaxInt32} {
		got, n, err := encoding.DecodeInt32(encoding.EncodeInt32(nil, x))
		require.NoError(t, err)
		require.Equal(t, 5, n)
		require.Equal(t, x, got)
	}

	for _, x := range []int16{math.MinInt16, -300, 0, 300, math.MaxInt16} {
		enc, _ := encoding.Desc(encoding.EncodeInt16(nil, x), 3)
		got, n, err := encoding.DecodeInt16(enc)
		require.NoError(t, err)
		require.Equal(t, 3, n)
		require.Equal(t, x, got)
	}

	for _, x := range []int8{math.MinInt8, -1, 0, 1, math.MaxInt8} {
		got, n, err := encoding.DecodeInt8(encoding.EncodeInt8(nil, x))
		require.NoError(t, err)
		require.Equal(t, 2, n)
		require.Equal(t, x, got)
	}
}

func TestIntOrdering(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	values := []int64{math.MinInt64, math.MaxInt64, 0, -1, 1}
	for i := 0; i < 1000; i++ {
		values = append(values, rng.Int63()-rng.Int63())
	}
	sort.Slice(values, func(i, j int) bool { return values[i] < values[j] })

	for i := 1; i < len(values); i++ {
		if values[i-1] == values[i] {
			continue
		}
		a := encoding.EncodeInt64(nil, values[i-1])
		b := encoding.EncodeInt64(nil, values[i])
		require.Equal(t, -1, bytes.Compare(a, b), "%d < %d", values[i-1], values[i])

		a, _ = encoding.Desc(a, len(a))
		b, _ = encoding.Desc(b, len(b))
		require.Equal(t, 1, bytes.Compare(a, b), "desc %d > %d", values[i-1], values[i])
	}
}

func TestEncodeFloat64(t *testing.T) {
	tests := []struct {
		name string
		x    float64
		want []byte
	}{
		{"smallest subnormal", 4.9e-324, []byte{0x31, 0x80, 0, 0, 0, 0, 0, 0, 0x01}},
		{"+0", 0, []byte{0x31, 0x80, 0, 0, 0, 0, 0, 0, 0}},
		{"-0", math.Copysign(0, -1), []byte{0x31, 0x7F, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}},
		{"1", 1, []byte{0x31, 0xBF, 0xF0, 0, 0, 0, 0, 0, 0}},
		{"-1", -1, []byte{0x31, 0x40, 0x0F, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}},
		{"+inf", math.Inf(1), []byte{0x31, 0xFF, 0xF0, 0, 0, 0, 0, 0, 0}},
		{"-inf", math.Inf(-1), []byte{0x31, 0x00, 0x0F, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := encoding.EncodeFloat64(nil, test.x)
			require.Equal(t, test.want, got)

			x, n, err := encoding.DecodeFloat64(got)
			require.NoError(t, err)
			require.Equal(t, 9, n)
			require.Equal(t, math.Float64bits(test.x), math.Float64bits(x))

			got, _ = encoding.Desc(got, len(got))
			x, _, err = encoding.DecodeFloat64(got)
			require.NoError(t, err)
			require.Equal(t, math.Float64bits(test.x), math.Float64bits(x))
		})
	}
}

func TestDecodeFloat64Vector(t *testing.T) {
	x, n, err := encoding.DecodeFloat64([]byte{0x31, 0x80, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x01})
	require.NoError(t, err)
	require.Equal(t, 9, n)
	require.Equal(t, 4.9e-324, x)
	require.Equal(t, math.SmallestNonzeroFloat64, x)
}

func TestFloatOrdering(t *testing.T) {
	values := []float64{
		math.Inf(-1),
		-math.MaxFloat64,
		-1e10,
		-1,
		-math.SmallestNonzeroFloat64,
		math.Copysign(0, -1),
		0,
		math.SmallestNonzeroFloat64,
		2 * math.SmallestNonzeroFloat64,
		0x1p-1022, // smallest normal
		1,
		1.0000000000000002,
		1e10,
		math.MaxFloat64,
		math.Inf(1),
	}

	for i := 1; i < len(values); i++ {
		a := encoding.EncodeFloat64(nil, values[i-1])
		b := encoding.EncodeFloat64(nil, values[i])
		require.Equal(t, -1, bytes.Compare(a, b), "%v < %v", values[i-1], values[i])

		a, _ = encoding.Desc(a, len(a))
		b, _ = encoding.Desc(b, len(b))
		require.Equal(t, 1, bytes.Compare(a, b), "desc %v > %v", values[i-1], values[i])

		a32 := encoding.EncodeFloat32(nil, float32(values[i-1]))
		b32 := encoding.EncodeFloat32(nil, float32(values[i]))
		require.LessOrEqual(t, bytes.Compare(a32, b32), 0, "float32 %v <= %v", values[i-1], values[i])
	}
}

func TestFloat32RoundTrip(t *testing.T) {
	for _, x := range []float32{
		float32(math.Inf(-1)), -math.MaxFloat32, -1.5, float32(math.Copysign(0, -1)), 0,
		math.SmallestNonzeroFloat32, 1.5, math.MaxFloat32, float32(math.Inf(1)),
	} {
		enc := encoding.EncodeFloat32(nil, x)
		require.Len(t, enc, 5)
		require.Equal(t, encoding.Float32Value, enc[0])

		got, n, err := encoding.DecodeFloat32(enc)
		require.NoError(t, err)
		require.Equal(t, 5, n)
		require.Equal(t, math.Float32bits(x), math.Float32bits(got))
	}
}

func TestFloatNaNRoundTrip(t *testing.T) {
	// the ordering of NaNs is undefined but their bit pattern is preserved
	for _, bits := range []uint64{0x7FF8000000000001, 0xFFF8000000000000} {
		x := math.Float64frombits(bits)
		got, _, err := encoding.DecodeFloat64(encoding.EncodeFloat64(nil, x))
		require.NoError(t, err)
		require.Equal(t, bits, math.Float64bits(got))
	}
}

func TestDecodeFixedErrors(t *testing.T) {
	t.Run("truncated", func(t *testing.T) {
		_, _, err := encoding.DecodeFloat64([]byte{0x31, 0x80, 0x00})
		var tke *encoding.TruncatedKeyError
		require.True(t, errors.As(err, &tke))
		require.Equal(t, 9, tke.Need)
		require.Equal(t, 3, tke.Have)
	})

	t.Run("empty", func(t *testing.T) {
		_, _, err := encoding.DecodeInt32(nil)
		var tke *encoding.TruncatedKeyError
		require.True(t, errors.As(err, &tke))
	})

	t.Run("unknown descriptor", func(t *testing.T) {
		_, _, err := encoding.DecodeInt32([]byte{0x70, 0x00})
		var ude *encoding.UnknownDescriptorError
		require.True(t, errors.As(err, &ude))
		require.Equal(t, byte(0x70), ude.Descriptor)
	})

	t.Run("type mismatch", func(t *testing.T) {
		_, _, err := encoding.DecodeInt64(encoding.EncodeInt32(nil, 10))
		var tme *encoding.TypeMismatchError
		require.True(t, errors.As(err, &tme))
		require.Equal(t, "int64", tme.Expected)
		require.Equal(t, "int32", tme.Actual)
	})

	t.Run("invalid boolean", func(t *testing.T) {
		_, _, err := encoding.DecodeBoolean([]byte{encoding.BooleanValue, 0x02})
		var mee *encoding.MalformedEncodingError
		require.True(t, errors.As(err, &mee))
	})
}

func TestBoolean(t *testing.T) {
	f := encoding.EncodeBoolean(nil, false)
	tr := encoding.EncodeBoolean(nil, true)
	require.Equal(t, []byte{encoding.BooleanValue, 0x00}, f)
	require.Equal(t, []byte{encoding.BooleanValue, 0x01}, tr)
	require.Equal(t, -1, bytes.Compare(f, tr))

	x, n, err := encoding.DecodeBoolean(tr)
	require.NoError(t, err)
	require.True(t, x)
	require.Equal(t, 2, n)

	d, _ := encoding.Desc(encoding.EncodeBoolean(nil, false), 2)
	x, _, err = encoding.DecodeBoolean(d)
	require.NoError(t, err)
	require.False(t, x)
}
