package orderedbytes

import (
	"fmt"
	"math"
	"math/big"

	"github.com/chaisql/orderedbytes/internal/encoding"
	"github.com/chaisql/orderedbytes/internal/types"
	"github.com/cockroachdb/errors"
	"gopkg.in/inf.v0"
)

// ConvertTo encodes value with the given kind.
// Accepted values are nil for every kind, any Go integer for integer kinds
// and decimals, float32 for FLOAT_OB, float32 and float64 for DOUBLE_OB,
// *inf.Dec and inf.Dec for DECIMAL_OB, bool for BOOLEAN_OB, string
// for TEXT_OB and []byte for BINARY_OB.
// Integers that don't fit the kind and other values return a *TypeMismatchError.
func ConvertTo(value any, k Kind) ([]byte, error) {
	return AppendTo(nil, value, k)
}

// AppendTo appends the encoding of value to dst.
// See ConvertTo for the accepted values.
func AppendTo(dst []byte, value any, k Kind) ([]byte, error) {
	if !k.IsValid() {
		return nil, errors.Errorf("invalid kind %d", uint8(k))
	}

	v, err := toValue(value, k)
	if err != nil {
		return nil, err
	}

	return types.EncodeValueAsKey(dst, v, k.Direction())
}

// ConvertFrom decodes b, which must hold exactly one value encoded with the given kind.
// It returns nil for null and a value of the type ConvertTo prefers otherwise:
// int8, int16, int32, int64, float32, float64, *inf.Dec, bool, string or []byte.
func ConvertFrom(b []byte, k Kind) (any, error) {
	if !k.IsValid() {
		return nil, errors.Errorf("invalid kind %d", uint8(k))
	}

	v, n, err := decodeKind(b, k)
	if err != nil {
		return nil, err
	}
	if n != len(b) {
		return nil, encoding.NewMalformedEncodingError(n, "trailing bytes after value")
	}

	if types.IsNull(v) {
		return nil, nil
	}
	return v.V(), nil
}

// decodeKind decodes the value at the start of b, ensuring its descriptor
// belongs to the kind.
func decodeKind(b []byte, k Kind) (types.Value, int, error) {
	if len(b) == 0 {
		return nil, 0, encoding.NewTruncatedKeyError(0, 1, 0)
	}

	d, dir, err := encoding.Lookup(b[0])
	if err != nil {
		return nil, 0, err
	}

	if dir != k.Direction() || (!encoding.IsNull(b[0]) && d.Family != k.typ().Family()) {
		return nil, 0, encoding.NewTypeMismatchError(k.String(), d.Family.String()+" "+dir.String(), 0)
	}

	return types.DecodeValue(b)
}

func toValue(value any, k Kind) (types.Value, error) {
	if value == nil {
		return types.NewNullValue(), nil
	}

	t := k.typ()
	switch t {
	case types.TypeTinyint, types.TypeSmallint, types.TypeInteger, types.TypeBigint:
		if i, ok := toInt64(value); ok {
			v, err := types.NewIntegerOfType(t, i)
			if err != nil {
				return nil, encoding.NewTypeMismatchError(k.String(), fmt.Sprintf("%T(%d)", value, i), -1)
			}
			return v, nil
		}
	case types.TypeReal:
		if x, ok := value.(float32); ok {
			return types.NewRealValue(x), nil
		}
	case types.TypeDouble:
		switch x := value.(type) {
		case float32:
			return types.NewDoubleValue(float64(x)), nil
		case float64:
			return types.NewDoubleValue(x), nil
		}
	case types.TypeDecimal:
		switch x := value.(type) {
		case *inf.Dec:
			if x == nil {
				return types.NewNullValue(), nil
			}
			return types.NewDecimalValue(x), nil
		case inf.Dec:
			return types.NewDecimalValue(&x), nil
		case uint64:
			if x > math.MaxInt64 {
				d := new(inf.Dec).SetUnscaledBig(new(big.Int).SetUint64(x))
				return types.NewDecimalValue(d), nil
			}
		}
		if i, ok := toInt64(value); ok {
			return types.NewDecimalValue(inf.NewDec(i, 0)), nil
		}
	case types.TypeBoolean:
		if x, ok := value.(bool); ok {
			return types.NewBooleanValue(x), nil
		}
	case types.TypeText:
		if x, ok := value.(string); ok {
			return types.NewTextValue(x), nil
		}
	case types.TypeBlob:
		if x, ok := value.([]byte); ok {
			return types.NewBlobValue(x), nil
		}
	}

	return nil, encoding.NewTypeMismatchError(k.String(), fmt.Sprintf("%T", value), -1)
}

// toInt64 converts any Go integer to an int64.
// It returns false for other values and for unsigned integers above math.MaxInt64.
func toInt64(value any) (int64, bool) {
	switch x := value.(type) {
	case int:
		return int64(x), true
	case int8:
		return int64(x), true
	case int16:
		return int64(x), true
	case int32:
		return int64(x), true
	case int64:
		return x, true
	case uint:
		return int64(x), uint64(x) <= math.MaxInt64
	case uint8:
		return int64(x), true
	case uint16:
		return int64(x), true
	case uint32:
		return int64(x), true
	case uint64:
		return int64(x), x <= math.MaxInt64
	}

	return 0, false
}
