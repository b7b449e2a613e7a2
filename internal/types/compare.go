package types

import (
	"bytes"
	"math"
	"strings"

	"github.com/chaisql/orderedbytes/internal/encoding"
	"gopkg.in/inf.v0"
)

// Compare returns -1, 0 or +1 depending on whether a is lesser than,
// equal to, or greater than b. NULL is lesser than every other value.
// Integers of different widths can be compared together, every other
// pair of types must match.
// -0 is lesser than +0. The position of NaNs is undefined.
func Compare(a, b Value) (int, error) {
	an, bn := IsNull(a), IsNull(b)
	switch {
	case an && bn:
		return 0, nil
	case an:
		return -1, nil
	case bn:
		return 1, nil
	}

	if a.Type().IsInteger() && b.Type().IsInteger() {
		return compareInts(AsInt64(a), AsInt64(b)), nil
	}

	if a.Type() != b.Type() {
		return 0, encoding.NewTypeMismatchError(a.Type().String(), b.Type().String(), -1)
	}

	switch a.Type() {
	case TypeBoolean:
		x, y := As[bool](a), As[bool](b)
		switch {
		case x == y:
			return 0, nil
		case !x:
			return -1, nil
		}
		return 1, nil
	case TypeReal:
		return compareFloats(float64(As[float32](a)), float64(As[float32](b))), nil
	case TypeDouble:
		return compareFloats(As[float64](a), As[float64](b)), nil
	case TypeDecimal:
		return As[*inf.Dec](a).Cmp(As[*inf.Dec](b)), nil
	case TypeText:
		return strings.Compare(As[string](a), As[string](b)), nil
	case TypeBlob:
		return bytes.Compare(As[[]byte](a), As[[]byte](b)), nil
	}

	panic("unsupported type " + a.Type().String())
}

func compareInts(x, y int64) int {
	switch {
	case x < y:
		return -1
	case x > y:
		return 1
	}
	return 0
}

func compareFloats(x, y float64) int {
	switch {
	case x < y:
		return -1
	case x > y:
		return 1
	}

	sx, sy := math.Signbit(x), math.Signbit(y)
	switch {
	case sx == sy:
		return 0
	case sx:
		return -1
	}
	return 1
}

// CompareTuples compares two tuples field by field, reversing the
// result of the fields whose direction is descending.
// Missing directions are ascending. A tuple that is a prefix of the
// other is lesser.
func CompareTuples(a, b []Value, dirs []encoding.Direction) (int, error) {
	for i := 0; i < len(a) && i < len(b); i++ {
		c, err := Compare(a[i], b[i])
		if err != nil {
			return 0, err
		}
		if c == 0 {
			continue
		}
		if i < len(dirs) && dirs[i].IsDesc() {
			c = -c
		}
		return c, nil
	}

	return compareInts(int64(len(a)), int64(len(b))), nil
}
