package types

import (
	"github.com/chaisql/orderedbytes/internal/encoding"
)

var _ TypeDefinition = NullTypeDef{}

type NullTypeDef struct{}

func (NullTypeDef) Type() Type {
	return TypeNull
}

func (NullTypeDef) Decode(src []byte) (Value, int, error) {
	if len(src) == 0 {
		return nil, 0, encoding.NewTruncatedKeyError(0, 1, 0)
	}
	if !encoding.IsNull(src[0]) {
		d, _, err := encoding.Lookup(src[0])
		if err != nil {
			return nil, 0, err
		}
		return nil, 0, encoding.NewTypeMismatchError(encoding.FamilyNull.String(), d.Family.String(), 0)
	}

	return NewNullValue(), 1, nil
}

var _ Value = NewNullValue()

type NullValue struct{}

// NewNullValue returns a NULL value.
func NewNullValue() NullValue {
	return NullValue{}
}

func (v NullValue) V() any {
	return nil
}

func (v NullValue) Type() Type {
	return TypeNull
}

func (v NullValue) String() string {
	return "NULL"
}

func (v NullValue) EncodeAsKey(dst []byte) ([]byte, error) {
	return encoding.EncodeNull(dst), nil
}
