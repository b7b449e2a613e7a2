// Package encoding implements an order-preserving binary encoding of scalar values.
// Every value is encoded as a descriptor byte followed by a payload, and the
// unsigned lexicographic order of two encoded values is the same as the order
// of the values they represent. Encoded values can be concatenated to form
// composite keys without separators.
package encoding

func EncodeNull(dst []byte) []byte {
	return append(dst, NullValue)
}

func EncodeBoolean(dst []byte, x bool) []byte {
	if x {
		return write1(dst, BooleanValue, 1)
	}

	return write1(dst, BooleanValue, 0)
}

func DecodeBoolean(b []byte) (bool, int, error) {
	x, n, err := readFixed(b, BooleanValue)
	if err != nil {
		return false, 0, err
	}

	switch x {
	case 0:
		return false, n, nil
	case 1:
		return true, n, nil
	}

	return false, 0, newMalformedEncodingError(1, "invalid boolean payload")
}

// Desc complements the last n bytes of dst, turning an ascending encoded
// value into its descending counterpart and vice versa.
// It is meant to be used in combination with one of the Encode* functions.
//
//	var buf []byte
//	buf, n = encoding.Desc(encoding.EncodeInt32(buf, 10), 5)
func Desc(dst []byte, n int) ([]byte, int) {
	for i := len(dst) - n; i < len(dst); i++ {
		dst[i] = ^dst[i]
	}

	return dst, n
}

// EncodeWithDirection runs enc on dst and complements its output
// if dir is Descending.
func EncodeWithDirection(dst []byte, dir Direction, enc func([]byte) []byte) []byte {
	start := len(dst)
	dst = enc(dst)
	if dir == Descending {
		dst, _ = Desc(dst, len(dst)-start)
	}
	return dst
}
