package types

import (
	"github.com/chaisql/orderedbytes/internal/encoding"
)

// DecodeValue decodes the value starting at b[0], whatever its type
// and direction, and returns the number of bytes read.
func DecodeValue(b []byte) (Value, int, error) {
	if len(b) == 0 {
		return nil, 0, encoding.NewTruncatedKeyError(0, 1, 0)
	}

	d, _, err := encoding.Lookup(b[0])
	if err != nil {
		return nil, 0, err
	}

	return TypeFromFamily(d.Family).Def().Decode(b)
}

// DecodeValues decodes every value of b.
func DecodeValues(b []byte) ([]Value, error) {
	var values []Value

	var off int
	for off < len(b) {
		v, n, err := DecodeValue(b[off:])
		if err != nil {
			return nil, encoding.ShiftOffset(err, off)
		}
		values = append(values, v)
		off += n
	}

	return values, nil
}

func EncodeValuesAsKey(dst []byte, values ...Value) ([]byte, error) {
	var err error

	for _, v := range values {
		dst, err = EncodeValueAsKey(dst, v, encoding.Ascending)
		if err != nil {
			return nil, err
		}
	}

	return dst, nil
}

// EncodeValueAsKey appends the key encoding of v in the given direction to dst.
func EncodeValueAsKey(dst []byte, v Value, dir encoding.Direction) ([]byte, error) {
	newDst, err := v.EncodeAsKey(dst)
	if err != nil {
		return nil, err
	}

	if dir.IsDesc() {
		newDst, _ = encoding.Desc(newDst, len(newDst)-len(dst))
	}

	return newDst, nil
}
