package types

import (
	"encoding/hex"

	"github.com/chaisql/orderedbytes/internal/encoding"
)

var _ TypeDefinition = BlobTypeDef{}

type BlobTypeDef struct{}

func (BlobTypeDef) Type() Type {
	return TypeBlob
}

func (BlobTypeDef) Decode(src []byte) (Value, int, error) {
	x, n, err := encoding.DecodeBlob(src)
	if err != nil {
		return nil, 0, err
	}
	return NewBlobValue(x), n, nil
}

var _ Value = NewBlobValue(nil)

type BlobValue []byte

// NewBlobValue returns a BLOB value.
func NewBlobValue(x []byte) BlobValue {
	return BlobValue(x)
}

func (v BlobValue) V() any {
	return []byte(v)
}

func (v BlobValue) Type() Type {
	return TypeBlob
}

func (v BlobValue) String() string {
	return `'\x` + hex.EncodeToString(v) + `'`
}

func (v BlobValue) EncodeAsKey(dst []byte) ([]byte, error) {
	return encoding.EncodeBlob(dst, v), nil
}
