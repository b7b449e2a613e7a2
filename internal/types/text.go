package types

import (
	"strconv"
	"unicode/utf8"

	"github.com/chaisql/orderedbytes/internal/encoding"
)

var _ TypeDefinition = TextTypeDef{}

type TextTypeDef struct{}

func (TextTypeDef) Type() Type {
	return TypeText
}

func (TextTypeDef) Decode(src []byte) (Value, int, error) {
	x, n, err := encoding.DecodeText(src)
	if err != nil {
		return nil, 0, err
	}
	return NewTextValue(x), n, nil
}

var _ Value = NewTextValue("")

type TextValue string

// NewTextValue returns a TEXT value.
func NewTextValue(x string) TextValue {
	return TextValue(x)
}

func (v TextValue) V() any {
	return string(v)
}

func (v TextValue) Type() Type {
	return TypeText
}

func (v TextValue) String() string {
	return strconv.Quote(string(v))
}

func (v TextValue) EncodeAsKey(dst []byte) ([]byte, error) {
	if !utf8.ValidString(string(v)) {
		return nil, encoding.NewTypeMismatchError(TypeText.String(), "invalid UTF-8 string", -1)
	}

	return encoding.EncodeText(dst, string(v)), nil
}
