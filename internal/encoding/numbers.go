package encoding

import (
	"math"

	"golang.org/x/exp/constraints"
)

func signBit(width int) uint64 {
	return 1 << (uint(width)*8 - 1)
}

// appendSigned writes n as a fixed width big endian integer
// with the sign bit flipped, so that two's complement ordering
// becomes unsigned byte ordering.
func appendSigned[T constraints.Signed](dst []byte, code byte, n T) []byte {
	w := descriptors[code].Width
	return writeN(dst, code, w, uint64(int64(n))^signBit(w))
}

func decodeSigned[T constraints.Signed](b []byte, code byte) (T, int, error) {
	u, n, err := readFixed(b, code)
	if err != nil {
		return 0, 0, err
	}

	w := descriptors[code].Width
	shift := 64 - uint(w)*8
	return T(int64((u^signBit(w))<<shift) >> shift), n, nil
}

func EncodeInt8(dst []byte, n int8) []byte {
	return appendSigned(dst, Int8Value, n)
}

func EncodeInt16(dst []byte, n int16) []byte {
	return appendSigned(dst, Int16Value, n)
}

func EncodeInt32(dst []byte, n int32) []byte {
	return appendSigned(dst, Int32Value, n)
}

func EncodeInt64(dst []byte, n int64) []byte {
	return appendSigned(dst, Int64Value, n)
}

func DecodeInt8(b []byte) (int8, int, error) {
	return decodeSigned[int8](b, Int8Value)
}

func DecodeInt16(b []byte) (int16, int, error) {
	return decodeSigned[int16](b, Int16Value)
}

func DecodeInt32(b []byte) (int32, int, error) {
	return decodeSigned[int32](b, Int32Value)
}

func DecodeInt64(b []byte) (int64, int, error) {
	return decodeSigned[int64](b, Int64Value)
}

// EncodeFloat64 writes the IEEE 754 representation of x so that
// byte ordering matches numeric ordering:
// if the sign bit is clear, it is set, otherwise every bit is inverted.
// -0 is encoded right before +0. NaNs are encoded as is, their
// position in the ordering is undefined.
func EncodeFloat64(dst []byte, x float64) []byte {
	fb := math.Float64bits(x)
	if fb&(1<<63) == 0 {
		fb ^= 1 << 63
	} else {
		fb = ^fb
	}
	return write8(dst, Float64Value, fb)
}

func EncodeFloat32(dst []byte, x float32) []byte {
	fb := math.Float32bits(x)
	if fb&(1<<31) == 0 {
		fb ^= 1 << 31
	} else {
		fb = ^fb
	}
	return write4(dst, Float32Value, fb)
}

func DecodeFloat64(b []byte) (float64, int, error) {
	x, n, err := readFixed(b, Float64Value)
	if err != nil {
		return 0, 0, err
	}

	if x&(1<<63) != 0 {
		x ^= 1 << 63
	} else {
		x = ^x
	}
	return math.Float64frombits(x), n, nil
}

func DecodeFloat32(b []byte) (float32, int, error) {
	u, n, err := readFixed(b, Float32Value)
	if err != nil {
		return 0, 0, err
	}

	x := uint32(u)
	if x&(1<<31) != 0 {
		x ^= 1 << 31
	} else {
		x = ^x
	}
	return math.Float32frombits(x), n, nil
}
