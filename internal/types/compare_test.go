package types_test

import (
	"bytes"
	"math"
	"testing"

	"github.com/chaisql/orderedbytes/internal/encoding"
	"github.com/chaisql/orderedbytes/internal/types"
	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"
	"gopkg.in/inf.v0"
)

func TestCompare(t *testing.T) {
	tests := []struct {
		name string
		a, b types.Value
		want int
	}{
		{"null/null", types.NewNullValue(), types.NewNullValue(), 0},
		{"null/int", types.NewNullValue(), types.NewIntegerValue(math.MinInt32), -1},
		{"text/null", types.NewTextValue(""), types.NewNullValue(), 1},
		{"nil/null", nil, types.NewNullValue(), 0},
		{"false/true", types.NewBooleanValue(false), types.NewBooleanValue(true), -1},
		{"true/true", types.NewBooleanValue(true), types.NewBooleanValue(true), 0},
		{"tinyint/bigint", types.NewTinyintValue(10), types.NewBigintValue(9), 1},
		{"int/int", types.NewIntegerValue(-1), types.NewIntegerValue(1), -1},
		{"-0/+0", types.NewDoubleValue(math.Copysign(0, -1)), types.NewDoubleValue(0), -1},
		{"+0/+0", types.NewDoubleValue(0), types.NewDoubleValue(0), 0},
		{"real", types.NewRealValue(2), types.NewRealValue(1.5), 1},
		{"decimal", types.NewDecimalValue(inf.NewDec(10, 1)), types.NewDecimalValue(inf.NewDec(1, 0)), 0},
		{"text", types.NewTextValue("a"), types.NewTextValue("ab"), -1},
		{"blob", types.NewBlobValue([]byte{0xFF}), types.NewBlobValue([]byte{0x00, 0xFF}), 1},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := types.Compare(test.a, test.b)
			require.NoError(t, err)
			require.Equal(t, test.want, got)

			got, err = types.Compare(test.b, test.a)
			require.NoError(t, err)
			require.Equal(t, -test.want, got)

			if types.IsNull(test.a) || types.IsNull(test.b) {
				return
			}

			// the key encoding agrees with the comparison
			ea, err := test.a.EncodeAsKey(nil)
			require.NoError(t, err)
			eb, err := test.b.EncodeAsKey(nil)
			require.NoError(t, err)
			if test.a.Type() == test.b.Type() {
				require.Equal(t, test.want, bytes.Compare(ea, eb))
			}
		})
	}

	t.Run("type mismatch", func(t *testing.T) {
		_, err := types.Compare(types.NewIntegerValue(1), types.NewDoubleValue(1))
		var tme *encoding.TypeMismatchError
		require.True(t, errors.As(err, &tme))
		require.Equal(t, "integer", tme.Expected)
		require.Equal(t, "double", tme.Actual)
	})
}

func TestCompareTuples(t *testing.T) {
	a := []types.Value{types.NewIntegerValue(1), types.NewTextValue("a")}
	b := []types.Value{types.NewIntegerValue(1), types.NewTextValue("b")}

	c, err := types.CompareTuples(a, b, nil)
	require.NoError(t, err)
	require.Equal(t, -1, c)

	c, err = types.CompareTuples(a, b, []encoding.Direction{encoding.Ascending, encoding.Descending})
	require.NoError(t, err)
	require.Equal(t, 1, c)

	c, err = types.CompareTuples(a[:1], b, nil)
	require.NoError(t, err)
	require.Equal(t, -1, c)

	c, err = types.CompareTuples(a, a, nil)
	require.NoError(t, err)
	require.Equal(t, 0, c)
}
