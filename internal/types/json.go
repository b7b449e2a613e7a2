package types

import (
	"encoding/hex"
	"math"
	"strings"

	"github.com/buger/jsonparser"
	"github.com/chaisql/orderedbytes/internal/encoding"
	"github.com/cockroachdb/errors"
	"gopkg.in/inf.v0"
)

// ParseJSONValue converts a JSON scalar to a value of type t.
// If t is TypeAny, the type is inferred from the JSON value.
// Blobs are read from hexadecimal strings, optionally prefixed with \x.
// Decimals can be read from numbers or strings.
func ParseJSONValue(t Type, dataType jsonparser.ValueType, data []byte) (Value, error) {
	switch dataType {
	case jsonparser.Null:
		return NewNullValue(), nil
	case jsonparser.Boolean:
		if t != TypeAny && t != TypeBoolean {
			return nil, jsonMismatch(t, dataType)
		}
		b, err := jsonparser.ParseBoolean(data)
		if err != nil {
			return nil, err
		}
		return NewBooleanValue(b), nil
	case jsonparser.Number:
		return parseJSONNumber(t, data)
	case jsonparser.String:
		s, err := jsonparser.ParseString(data)
		if err != nil {
			return nil, err
		}

		switch t {
		case TypeAny, TypeText:
			return NewTextValue(s), nil
		case TypeBlob:
			b, err := hex.DecodeString(strings.TrimPrefix(s, `\x`))
			if err != nil {
				return nil, errors.Wrapf(err, "invalid blob %q", s)
			}
			return NewBlobValue(b), nil
		case TypeDecimal:
			return parseDecimal(s)
		}

		return nil, jsonMismatch(t, dataType)
	}

	return nil, errors.Errorf("unsupported JSON type: %v", dataType)
}

func parseJSONNumber(t Type, data []byte) (Value, error) {
	switch t {
	case TypeAny:
		i, err := jsonparser.ParseInt(data)
		if err != nil {
			// if it's too big to fit in an int64, let's try parsing this as a floating point number
			f, err := jsonparser.ParseFloat(data)
			if err != nil {
				return nil, err
			}

			return NewDoubleValue(f), nil
		}

		if i < math.MinInt32 || i > math.MaxInt32 {
			return NewBigintValue(i), nil
		}

		return NewIntegerValue(int32(i)), nil
	case TypeTinyint, TypeSmallint, TypeInteger, TypeBigint:
		i, err := jsonparser.ParseInt(data)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid %s %s", t, data)
		}
		return NewIntegerOfType(t, i)
	case TypeReal:
		f, err := jsonparser.ParseFloat(data)
		if err != nil {
			return nil, err
		}
		if !math.IsInf(f, 0) && math.Abs(f) > math.MaxFloat32 {
			return nil, encoding.NewTypeMismatchError(t.String(), "out of range number "+string(data), -1)
		}
		return NewRealValue(float32(f)), nil
	case TypeDouble:
		f, err := jsonparser.ParseFloat(data)
		if err != nil {
			return nil, err
		}
		return NewDoubleValue(f), nil
	case TypeDecimal:
		return parseDecimal(string(data))
	}

	return nil, jsonMismatch(t, jsonparser.Number)
}

// NewIntegerOfType returns an integer value of type t, or a TypeMismatchError
// if i doesn't fit in t.
func NewIntegerOfType(t Type, i int64) (Value, error) {
	var lo, hi int64
	switch t {
	case TypeTinyint:
		lo, hi = math.MinInt8, math.MaxInt8
	case TypeSmallint:
		lo, hi = math.MinInt16, math.MaxInt16
	case TypeInteger:
		lo, hi = math.MinInt32, math.MaxInt32
	case TypeBigint:
		return NewBigintValue(i), nil
	default:
		return nil, errors.Errorf("%s is not an integer type", t)
	}

	if i < lo || i > hi {
		return nil, encoding.NewTypeMismatchError(t.String(), "out of range integer", -1)
	}

	switch t {
	case TypeTinyint:
		return NewTinyintValue(int8(i)), nil
	case TypeSmallint:
		return NewSmallintValue(int16(i)), nil
	}
	return NewIntegerValue(int32(i)), nil
}

func parseDecimal(s string) (Value, error) {
	d, ok := new(inf.Dec).SetString(s)
	if !ok {
		return nil, errors.Errorf("invalid decimal %q", s)
	}
	return NewDecimalValue(d), nil
}

func jsonMismatch(t Type, dataType jsonparser.ValueType) error {
	return encoding.NewTypeMismatchError(t.String(), "json "+dataType.String(), -1)
}

// ParseJSONTuple parses a JSON array of scalars into a tuple.
// If columns is not empty, the array must have one element per column
// and each element is converted to the type of its column.
func ParseJSONTuple(columns []Type, data []byte) ([]Value, error) {
	var values []Value
	var perr error

	_, err := jsonparser.ArrayEach(data, func(value []byte, dataType jsonparser.ValueType, _ int, err error) {
		if perr != nil {
			return
		}
		if err != nil {
			perr = err
			return
		}

		t := TypeAny
		if len(columns) > 0 {
			if len(values) >= len(columns) {
				perr = errors.Errorf("too many values: expected %d", len(columns))
				return
			}
			t = columns[len(values)]
		}

		v, err := ParseJSONValue(t, dataType, value)
		if err != nil {
			perr = errors.Wrapf(err, "value %d", len(values))
			return
		}
		values = append(values, v)
	})
	if err != nil {
		return nil, errors.Wrap(err, "invalid JSON array")
	}
	if perr != nil {
		return nil, perr
	}
	if len(columns) > 0 && len(values) != len(columns) {
		return nil, errors.Errorf("not enough values: expected %d, got %d", len(columns), len(values))
	}

	return values, nil
}
