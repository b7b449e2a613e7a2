package encoding

import (
	"math"
	"math/big"
	"strconv"
	"strings"

	"gopkg.in/inf.v0"
)

// Decimals are encoded as 0.M * 100^E, where M is a list of centimal
// digits whose first digit isn't zero. Each digit d of M is written
// as 2d+1, except the last one which is written as 2d. This makes M
// self delimiting and keeps shorter mantissas sorted before longer
// ones sharing the same prefix.
//
// The descriptor selects the sign and magnitude bucket:
//
//	negative large   E > 11         ^uvarint(E)  ^M
//	negative medium  1 <= E <= 11                ^M
//	negative small   E <= 0         uvarint(-E)  ^M
//	zero
//	positive small   E <= 0         ^uvarint(-E) M
//	positive medium  1 <= E <= 11                M
//	positive large   E > 11         uvarint(E)   M

// EncodeDecimal appends the sort-ordered representation of d to dst.
func EncodeDecimal(dst []byte, d *inf.Dec) []byte {
	if d.Sign() == 0 {
		return append(dst, NumericZero)
	}

	e, m := decimalEandM(d)

	if d.Sign() > 0 {
		switch {
		case e <= 0:
			dst = append(dst, NumericPosSmall)
			dst = appendUvarint(dst, uint64(-e), true)
		case e <= numericMediumExponent:
			dst = append(dst, NumericPosMediumMin+byte(e-1))
		default:
			dst = append(dst, NumericPosLarge)
			dst = appendUvarint(dst, uint64(e), false)
		}
		return append(dst, m...)
	}

	switch {
	case e <= 0:
		dst = append(dst, NumericNegSmall)
		dst = appendUvarint(dst, uint64(-e), false)
	case e <= numericMediumExponent:
		dst = append(dst, NumericNegMediumMax-byte(e-1))
	default:
		dst = append(dst, NumericNegLarge)
		dst = appendUvarint(dst, uint64(e), true)
	}
	for _, c := range m {
		dst = append(dst, ^c)
	}
	return dst
}

// decimalEandM computes the exponent and the encoded mantissa of
// a non zero decimal.
func decimalEandM(d *inf.Dec) (int, []byte) {
	digits := new(big.Int).Abs(d.UnscaledBig()).String()
	scale := int(d.Scale())

	trimmed := strings.TrimRight(digits, "0")
	scale -= len(digits) - len(trimmed)
	digits = trimmed

	// the value is 0.digits * 10^e10
	e10 := len(digits) - scale
	if e10%2 != 0 {
		digits = "0" + digits
		e10++
	}
	if len(digits)%2 != 0 {
		digits += "0"
	}

	m := make([]byte, len(digits)/2)
	for i := range m {
		m[i] = 2*((digits[2*i]-'0')*10+(digits[2*i+1]-'0')) + 1
	}
	m[len(m)-1]--

	return e10 / 2, m
}

// DecodeDecimal decodes a decimal encoded with EncodeDecimal, in any direction.
// The returned decimal compares equal to the encoded one, but trailing zeros
// are not preserved.
func DecodeDecimal(b []byte) (*inf.Dec, int, error) {
	if len(b) == 0 {
		return nil, 0, newTruncatedKeyError(0, 1, 0)
	}

	d, dir, err := Lookup(b[0])
	if err != nil {
		return nil, 0, err
	}
	if d.Family != FamilyNumeric {
		return nil, 0, NewTypeMismatchError(FamilyNumeric.String(), d.Family.String(), 0)
	}

	r := numericReader{b: b, i: 1, desc: dir == Descending}
	var e int
	var neg bool

	switch d.Bucket {
	case BucketZero:
		return new(inf.Dec), 1, nil
	case BucketNegInf, BucketPosInf, BucketNaN:
		return nil, 0, newMalformedEncodingError(0, "infinite and NaN numbers cannot be decoded as a decimal")
	case BucketPosSmall:
		v, err := r.uvarint(true)
		if err != nil {
			return nil, 0, err
		}
		e = -v
	case BucketPosMedium:
		e = int(d.Code-NumericPosMediumMin) + 1
	case BucketPosLarge:
		e, err = r.uvarint(false)
		if err != nil {
			return nil, 0, err
		}
	case BucketNegSmall:
		neg = true
		v, err := r.uvarint(false)
		if err != nil {
			return nil, 0, err
		}
		e = -v
	case BucketNegMedium:
		neg = true
		e = int(NumericNegMediumMax-d.Code) + 1
	case BucketNegLarge:
		neg = true
		e, err = r.uvarint(true)
		if err != nil {
			return nil, 0, err
		}
	}

	var digits strings.Builder
	var count int
	for {
		c, err := r.next(neg)
		if err != nil {
			return nil, 0, err
		}
		if c>>1 > 99 {
			return nil, 0, newMalformedEncodingError(r.i-1, "invalid mantissa digit")
		}
		if c>>1 < 10 {
			digits.WriteByte('0')
		}
		digits.WriteString(strconv.Itoa(int(c >> 1)))
		count++
		if c&1 == 0 {
			break
		}
	}

	unscaled, ok := new(big.Int).SetString(digits.String(), 10)
	if !ok {
		return nil, 0, newMalformedEncodingError(1, "invalid mantissa")
	}
	scale := 2*count - 2*e
	if scale > math.MaxInt32 || scale < math.MinInt32 {
		return nil, 0, newMalformedEncodingError(1, "exponent out of range")
	}

	x := inf.NewDecBig(unscaled, inf.Scale(scale))
	if neg {
		x.Neg(x)
	}
	return x, r.i, nil
}

type numericReader struct {
	b    []byte
	i    int
	desc bool
}

// next returns the next byte as written by an ascending encoder,
// inverted again if invert is true.
func (r *numericReader) next(invert bool) (byte, error) {
	if r.i >= len(r.b) {
		return 0, newMalformedEncodingError(r.i, "unterminated number")
	}
	c := r.b[r.i]
	r.i++
	if r.desc != invert {
		c = ^c
	}
	return c, nil
}

func (r *numericReader) uvarint(invert bool) (int, error) {
	start := r.i
	c, err := r.next(invert)
	if err != nil {
		return 0, err
	}

	v, length, ok := uvarintHeader(c)
	if !ok {
		return 0, newMalformedEncodingError(start, "invalid exponent")
	}
	for j := 0; j < length; j++ {
		c, err := r.next(invert)
		if err != nil {
			return 0, err
		}
		v = v<<8 | uint64(c)
	}
	if v > math.MaxInt32 {
		return 0, newMalformedEncodingError(start, "exponent out of range")
	}

	return int(v), nil
}

// Order preserving unsigned varints, as used by CockroachDB:
// values up to uvarintSmall are stored on a single byte,
// bigger values are stored as a length byte followed by
// the big endian representation of the value.
const (
	uvarintZero  = 136
	uvarintSmall = 109
	uvarintMax   = 253
)

func appendUvarint(dst []byte, v uint64, invert bool) []byte {
	start := len(dst)
	if v <= uvarintSmall {
		dst = append(dst, uvarintZero+byte(v))
	} else {
		var length int
		for x := v; x > 0; x >>= 8 {
			length++
		}
		dst = append(dst, byte(uvarintZero+uvarintSmall+length))
		for i := length - 1; i >= 0; i-- {
			dst = append(dst, byte(v>>(uint(i)*8)))
		}
	}

	if invert {
		Desc(dst, len(dst)-start)
	}
	return dst
}

// uvarintHeader decodes the first byte of a varint. It returns the value
// if it fits in the first byte, otherwise the number of bytes to follow.
func uvarintHeader(c byte) (uint64, int, bool) {
	if c < uvarintZero || c > uvarintMax {
		return 0, 0, false
	}
	if c-uvarintZero <= uvarintSmall {
		return uint64(c - uvarintZero), 0, true
	}
	return 0, int(c - uvarintZero - uvarintSmall), true
}
