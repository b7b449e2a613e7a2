package types

import (
	"fmt"

	"github.com/chaisql/orderedbytes/internal/encoding"
)

// Type represents a type of value that can be encoded in a key.
type Type uint8

// List of supported types.
const (
	// TypeAny denotes the absence of type
	TypeAny Type = iota
	TypeNull
	TypeBoolean
	TypeTinyint
	TypeSmallint
	TypeInteger
	TypeBigint
	TypeReal
	TypeDouble
	TypeDecimal
	TypeText
	TypeBlob
)

func (t Type) Def() TypeDefinition {
	switch t {
	case TypeNull:
		return NullTypeDef{}
	case TypeBoolean:
		return BooleanTypeDef{}
	case TypeTinyint:
		return TinyintTypeDef{}
	case TypeSmallint:
		return SmallintTypeDef{}
	case TypeInteger:
		return IntegerTypeDef{}
	case TypeBigint:
		return BigintTypeDef{}
	case TypeReal:
		return RealTypeDef{}
	case TypeDouble:
		return DoubleTypeDef{}
	case TypeDecimal:
		return DecimalTypeDef{}
	case TypeText:
		return TextTypeDef{}
	case TypeBlob:
		return BlobTypeDef{}
	}

	return nil
}

func (t Type) String() string {
	switch t {
	case TypeAny:
		return "any"
	case TypeNull:
		return "null"
	case TypeBoolean:
		return "boolean"
	case TypeTinyint:
		return "tinyint"
	case TypeSmallint:
		return "smallint"
	case TypeInteger:
		return "integer"
	case TypeBigint:
		return "bigint"
	case TypeReal:
		return "real"
	case TypeDouble:
		return "double"
	case TypeDecimal:
		return "decimal"
	case TypeText:
		return "text"
	case TypeBlob:
		return "blob"
	}

	panic(fmt.Sprintf("unsupported type %#v", t))
}

// Family returns the descriptor family values of type t are encoded with.
func (t Type) Family() encoding.Family {
	switch t {
	case TypeNull:
		return encoding.FamilyNull
	case TypeBoolean:
		return encoding.FamilyBoolean
	case TypeTinyint:
		return encoding.FamilyInt8
	case TypeSmallint:
		return encoding.FamilyInt16
	case TypeInteger:
		return encoding.FamilyInt32
	case TypeBigint:
		return encoding.FamilyInt64
	case TypeReal:
		return encoding.FamilyFloat32
	case TypeDouble:
		return encoding.FamilyFloat64
	case TypeDecimal:
		return encoding.FamilyNumeric
	case TypeText:
		return encoding.FamilyText
	case TypeBlob:
		return encoding.FamilyBlob
	}

	return encoding.FamilyUnknown
}

// TypeFromFamily returns the type decoded from values of the given family.
func TypeFromFamily(f encoding.Family) Type {
	switch f {
	case encoding.FamilyNull:
		return TypeNull
	case encoding.FamilyBoolean:
		return TypeBoolean
	case encoding.FamilyInt8:
		return TypeTinyint
	case encoding.FamilyInt16:
		return TypeSmallint
	case encoding.FamilyInt32:
		return TypeInteger
	case encoding.FamilyInt64:
		return TypeBigint
	case encoding.FamilyFloat32:
		return TypeReal
	case encoding.FamilyFloat64:
		return TypeDouble
	case encoding.FamilyNumeric:
		return TypeDecimal
	case encoding.FamilyText:
		return TypeText
	case encoding.FamilyBlob:
		return TypeBlob
	}

	return TypeAny
}

// IsNumber returns true if t is an integer, a float or a decimal.
func (t Type) IsNumber() bool {
	return t.IsInteger() || t == TypeReal || t == TypeDouble || t == TypeDecimal
}

func (t Type) IsInteger() bool {
	return t == TypeTinyint || t == TypeSmallint || t == TypeInteger || t == TypeBigint
}

// IsAny returns whether this is type is Any or a real type
func (t Type) IsAny() bool {
	return t == TypeAny
}

type TypeDefinition interface {
	Type() Type
	// Decode decodes a value of this type, encoded in any direction,
	// and returns the number of bytes read.
	Decode(src []byte) (Value, int, error)
}
