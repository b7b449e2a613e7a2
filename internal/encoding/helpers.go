package encoding

import (
	"bytes"
)

func write1(dst []byte, code byte, n uint8) []byte {
	return append(dst, code, n)
}

func write2(dst []byte, code byte, n uint16) []byte {
	return append(dst, code, byte(n>>8), byte(n))
}

func write4(dst []byte, code byte, n uint32) []byte {
	return append(
		dst,
		code,
		byte(n>>24),
		byte(n>>16),
		byte(n>>8),
		byte(n),
	)
}

func write8(dst []byte, code byte, n uint64) []byte {
	return append(
		dst,
		code,
		byte(n>>56),
		byte(n>>48),
		byte(n>>40),
		byte(n>>32),
		byte(n>>24),
		byte(n>>16),
		byte(n>>8),
		byte(n),
	)
}

func writeN(dst []byte, code byte, width int, n uint64) []byte {
	switch width {
	case 1:
		return write1(dst, code, uint8(n))
	case 2:
		return write2(dst, code, uint16(n))
	case 4:
		return write4(dst, code, uint32(n))
	case 8:
		return write8(dst, code, n)
	}

	panic("unsupported width")
}

// readFixed reads the fixed width payload of a value of the given
// ascending descriptor, in any direction. It returns the payload
// as written by an ascending encoder and the total number of bytes read.
func readFixed(b []byte, code byte) (uint64, int, error) {
	if len(b) == 0 {
		return 0, 0, newTruncatedKeyError(0, 1, 0)
	}

	d, dir, err := Lookup(b[0])
	if err != nil {
		return 0, 0, err
	}
	if d.Code != code {
		return 0, 0, NewTypeMismatchError(descriptors[code].Family.String(), d.Family.String(), 0)
	}

	size := d.Size()
	if len(b) < size {
		return 0, 0, newTruncatedKeyError(0, size, len(b))
	}

	var x uint64
	for _, c := range b[1:size] {
		if dir == Descending {
			c = ^c
		}
		x = x<<8 | uint64(c)
	}

	return x, size, nil
}

// Skip returns the size of the value starting at b[0], descriptor included.
func Skip(b []byte) (int, error) {
	if len(b) == 0 {
		return 0, newTruncatedKeyError(0, 1, 0)
	}

	d, dir, err := Lookup(b[0])
	if err != nil {
		return 0, err
	}

	if d.Fixed() {
		if len(b) < d.Size() {
			return 0, newTruncatedKeyError(0, d.Size(), len(b))
		}
		return d.Size(), nil
	}

	switch d.Family {
	case FamilyText, FamilyBlob:
		return skipBytes(b, dir)
	case FamilyNumeric:
		_, n, err := DecodeDecimal(b)
		return n, err
	}

	panic("unreachable")
}

// Compare compares two encoded keys.
// Encoded keys are ordered byte-wise, whatever their content.
func Compare(a, b []byte) int {
	return bytes.Compare(a, b)
}

// Successor returns the shortest key that is greater than every key
// starting with a: no encoded value starts with 0xFF.
func Successor(dst, a []byte) []byte {
	dst = append(dst, a...)
	return append(dst, 0xFF)
}
