package types

import (
	"strconv"

	"github.com/chaisql/orderedbytes/internal/encoding"
)

var (
	_ TypeDefinition = TinyintTypeDef{}
	_ TypeDefinition = SmallintTypeDef{}
	_ TypeDefinition = IntegerTypeDef{}
	_ TypeDefinition = BigintTypeDef{}
)

type TinyintTypeDef struct{}

func (TinyintTypeDef) Type() Type {
	return TypeTinyint
}

func (TinyintTypeDef) Decode(src []byte) (Value, int, error) {
	x, n, err := encoding.DecodeInt8(src)
	if err != nil {
		return nil, 0, err
	}
	return NewTinyintValue(x), n, nil
}

type SmallintTypeDef struct{}

func (SmallintTypeDef) Type() Type {
	return TypeSmallint
}

func (SmallintTypeDef) Decode(src []byte) (Value, int, error) {
	x, n, err := encoding.DecodeInt16(src)
	if err != nil {
		return nil, 0, err
	}
	return NewSmallintValue(x), n, nil
}

type IntegerTypeDef struct{}

func (IntegerTypeDef) Type() Type {
	return TypeInteger
}

func (IntegerTypeDef) Decode(src []byte) (Value, int, error) {
	x, n, err := encoding.DecodeInt32(src)
	if err != nil {
		return nil, 0, err
	}
	return NewIntegerValue(x), n, nil
}

type BigintTypeDef struct{}

func (BigintTypeDef) Type() Type {
	return TypeBigint
}

func (BigintTypeDef) Decode(src []byte) (Value, int, error) {
	x, n, err := encoding.DecodeInt64(src)
	if err != nil {
		return nil, 0, err
	}
	return NewBigintValue(x), n, nil
}

type TinyintValue int8

// NewTinyintValue returns a TINYINT value.
func NewTinyintValue(x int8) TinyintValue {
	return TinyintValue(x)
}

func (v TinyintValue) V() any {
	return int8(v)
}

func (v TinyintValue) Type() Type {
	return TypeTinyint
}

func (v TinyintValue) String() string {
	return strconv.FormatInt(int64(v), 10)
}

func (v TinyintValue) EncodeAsKey(dst []byte) ([]byte, error) {
	return encoding.EncodeInt8(dst, int8(v)), nil
}

type SmallintValue int16

// NewSmallintValue returns a SMALLINT value.
func NewSmallintValue(x int16) SmallintValue {
	return SmallintValue(x)
}

func (v SmallintValue) V() any {
	return int16(v)
}

func (v SmallintValue) Type() Type {
	return TypeSmallint
}

func (v SmallintValue) String() string {
	return strconv.FormatInt(int64(v), 10)
}

func (v SmallintValue) EncodeAsKey(dst []byte) ([]byte, error) {
	return encoding.EncodeInt16(dst, int16(v)), nil
}

type IntegerValue int32

// NewIntegerValue returns an INTEGER value.
func NewIntegerValue(x int32) IntegerValue {
	return IntegerValue(x)
}

func (v IntegerValue) V() any {
	return int32(v)
}

func (v IntegerValue) Type() Type {
	return TypeInteger
}

func (v IntegerValue) String() string {
	return strconv.FormatInt(int64(v), 10)
}

func (v IntegerValue) EncodeAsKey(dst []byte) ([]byte, error) {
	return encoding.EncodeInt32(dst, int32(v)), nil
}

type BigintValue int64

// NewBigintValue returns a BIGINT value.
func NewBigintValue(x int64) BigintValue {
	return BigintValue(x)
}

func (v BigintValue) V() any {
	return int64(v)
}

func (v BigintValue) Type() Type {
	return TypeBigint
}

func (v BigintValue) String() string {
	return strconv.FormatInt(int64(v), 10)
}

func (v BigintValue) EncodeAsKey(dst []byte) ([]byte, error) {
	return encoding.EncodeInt64(dst, int64(v)), nil
}

// AsInt64 returns the value of an integer of any width.
// It panics if v is not an integer.
func AsInt64(v Value) int64 {
	switch x := v.(type) {
	case TinyintValue:
		return int64(x)
	case SmallintValue:
		return int64(x)
	case IntegerValue:
		return int64(x)
	case BigintValue:
		return int64(x)
	}

	panic("not an integer value: " + v.Type().String())
}
