package types

import (
	"strconv"

	"github.com/chaisql/orderedbytes/internal/encoding"
)

var _ TypeDefinition = BooleanTypeDef{}

type BooleanTypeDef struct{}

func (BooleanTypeDef) Type() Type {
	return TypeBoolean
}

func (BooleanTypeDef) Decode(src []byte) (Value, int, error) {
	x, n, err := encoding.DecodeBoolean(src)
	if err != nil {
		return nil, 0, err
	}
	return NewBooleanValue(x), n, nil
}

var _ Value = NewBooleanValue(true)

type BooleanValue bool

// NewBooleanValue returns a BOOLEAN value.
func NewBooleanValue(x bool) BooleanValue {
	return BooleanValue(x)
}

func (v BooleanValue) V() any {
	return bool(v)
}

func (v BooleanValue) Type() Type {
	return TypeBoolean
}

func (v BooleanValue) String() string {
	return strconv.FormatBool(bool(v))
}

func (v BooleanValue) EncodeAsKey(dst []byte) ([]byte, error) {
	return encoding.EncodeBoolean(dst, bool(v)), nil
}
