package orderedbytes

import (
	"github.com/buger/jsonparser"
	"github.com/chaisql/orderedbytes/internal/types"
	"github.com/cockroachdb/errors"
)

// ParseJSON parses a JSON scalar into a value that ConvertTo accepts for kind k.
// Binary values are read from hexadecimal strings, optionally prefixed with \x.
// Decimals are read from numbers or strings, without loss of precision.
func ParseJSON(data []byte, k Kind) (any, error) {
	if !k.IsValid() {
		return nil, errors.Errorf("invalid kind %d", uint8(k))
	}

	value, dataType, _, err := jsonparser.Get(data)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid JSON value %q", data)
	}

	v, err := types.ParseJSONValue(k.typ(), dataType, value)
	if err != nil {
		return nil, err
	}

	if types.IsNull(v) {
		return nil, nil
	}
	return v.V(), nil
}

// ParseJSON parses a JSON array into a tuple that Encode accepts.
// The array must have one element per field.
func (s *Schema) ParseJSON(data []byte) ([]any, error) {
	return s.parseJSON(data, false)
}

// ParseJSONPrefix is like ParseJSON but accepts arrays with fewer
// elements than the schema, to build range bounds.
func (s *Schema) ParseJSONPrefix(data []byte) ([]any, error) {
	return s.parseJSON(data, true)
}

func (s *Schema) parseJSON(data []byte, prefix bool) ([]any, error) {
	n := len(s.kinds)
	if prefix {
		var err error
		n, err = countElements(data)
		if err != nil {
			return nil, err
		}
		if n > len(s.kinds) {
			return nil, errors.Errorf("too many values: expected at most %d", len(s.kinds))
		}
		if n == 0 {
			return nil, nil
		}
	}

	columns := make([]types.Type, n)
	for i := range columns {
		columns[i] = s.kinds[i].typ()
	}

	tvs, err := types.ParseJSONTuple(columns, data)
	if err != nil {
		return nil, err
	}

	return nativeValues(tvs), nil
}

func countElements(data []byte) (int, error) {
	var n int
	_, err := jsonparser.ArrayEach(data, func([]byte, jsonparser.ValueType, int, error) {
		n++
	})
	if err != nil {
		return 0, errors.Wrap(err, "invalid JSON array")
	}

	return n, nil
}
