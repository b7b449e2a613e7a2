package orderedbytes_test

import (
	"testing"

	"github.com/chaisql/orderedbytes"
	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"
)

func TestParseJSON(t *testing.T) {
	tests := []struct {
		data  string
		kind  orderedbytes.Kind
		want  any
		fails bool
	}{
		{`10`, orderedbytes.Int32, int32(10), false},
		{`-3`, orderedbytes.Int8Desc, int8(-3), false},
		{`null`, orderedbytes.Text, nil, false},
		{`"foo"`, orderedbytes.TextDesc, "foo", false},
		{`"\\x00ff"`, orderedbytes.Binary, []byte{0x00, 0xff}, false},
		{`1.5`, orderedbytes.Double, 1.5, false},
		{`1.5`, orderedbytes.Float, float32(1.5), false},
		{`"12345678901234567890.5"`, orderedbytes.Decimal, dec(t, "12345678901234567890.5"), false},
		{`true`, orderedbytes.Boolean, true, false},
		{`300`, orderedbytes.Int8, nil, true},
		{`"a"`, orderedbytes.Int32, nil, true},
		{`[1]`, orderedbytes.Int32, nil, true},
	}

	for _, test := range tests {
		t.Run(test.kind.String()+" "+test.data, func(t *testing.T) {
			got, err := orderedbytes.ParseJSON([]byte(test.data), test.kind)
			if test.fails {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			requireSameValue(t, test.want, got)
		})
	}
}

func TestSchemaParseJSON(t *testing.T) {
	s, err := orderedbytes.ParseSchema("INT64_OB, TEXT_OBD, DECIMAL_OB")
	require.NoError(t, err)

	values, err := s.ParseJSON([]byte(`[1, "a", 2.50]`))
	require.NoError(t, err)
	require.Len(t, values, 3)
	require.Equal(t, int64(1), values[0])
	require.Equal(t, "a", values[1])
	requireSameValue(t, dec(t, "2.5"), values[2])

	_, err = s.ParseJSON([]byte(`[1, "a"]`))
	require.Error(t, err)

	_, err = s.ParseJSON([]byte(`[1, 2, 3]`))
	var tm *orderedbytes.TypeMismatchError
	require.True(t, errors.As(err, &tm))

	values, err = s.ParseJSONPrefix([]byte(`[1, "a"]`))
	require.NoError(t, err)
	require.Equal(t, []any{int64(1), "a"}, values)

	values, err = s.ParseJSONPrefix([]byte(`[]`))
	require.NoError(t, err)
	require.Empty(t, values)

	_, err = s.ParseJSONPrefix([]byte(`[1, "a", 1, 2]`))
	require.Error(t, err)
}
