package types

import (
	"github.com/chaisql/orderedbytes/internal/encoding"
	"gopkg.in/inf.v0"
)

var _ TypeDefinition = DecimalTypeDef{}

type DecimalTypeDef struct{}

func (DecimalTypeDef) Type() Type {
	return TypeDecimal
}

func (DecimalTypeDef) Decode(src []byte) (Value, int, error) {
	x, n, err := encoding.DecodeDecimal(src)
	if err != nil {
		return nil, 0, err
	}
	return NewDecimalValue(x), n, nil
}

var _ Value = NewDecimalValue(new(inf.Dec))

// DecimalValue is an arbitrary precision fixed point number.
// The wrapped decimal must not be modified once the value is created.
type DecimalValue struct {
	d *inf.Dec
}

// NewDecimalValue returns a DECIMAL value. A nil decimal is zero.
func NewDecimalValue(x *inf.Dec) DecimalValue {
	if x == nil {
		x = new(inf.Dec)
	}
	return DecimalValue{d: x}
}

func (v DecimalValue) V() any {
	return v.d
}

func (v DecimalValue) Type() Type {
	return TypeDecimal
}

func (v DecimalValue) String() string {
	return v.d.String()
}

func (v DecimalValue) EncodeAsKey(dst []byte) ([]byte, error) {
	return encoding.EncodeDecimal(dst, v.d), nil
}
