package types

import (
	"math"
	"strconv"
	"strings"

	"github.com/chaisql/orderedbytes/internal/encoding"
)

var (
	_ TypeDefinition = RealTypeDef{}
	_ TypeDefinition = DoubleTypeDef{}
)

type RealTypeDef struct{}

func (RealTypeDef) Type() Type {
	return TypeReal
}

func (RealTypeDef) Decode(src []byte) (Value, int, error) {
	x, n, err := encoding.DecodeFloat32(src)
	if err != nil {
		return nil, 0, err
	}
	return NewRealValue(x), n, nil
}

type DoubleTypeDef struct{}

func (DoubleTypeDef) Type() Type {
	return TypeDouble
}

func (DoubleTypeDef) Decode(src []byte) (Value, int, error) {
	x, n, err := encoding.DecodeFloat64(src)
	if err != nil {
		return nil, 0, err
	}
	return NewDoubleValue(x), n, nil
}

type RealValue float32

// NewRealValue returns a REAL value.
func NewRealValue(x float32) RealValue {
	return RealValue(x)
}

func (v RealValue) V() any {
	return float32(v)
}

func (v RealValue) Type() Type {
	return TypeReal
}

func (v RealValue) String() string {
	return formatFloat(float64(v), 32)
}

func (v RealValue) EncodeAsKey(dst []byte) ([]byte, error) {
	return encoding.EncodeFloat32(dst, float32(v)), nil
}

type DoubleValue float64

// NewDoubleValue returns a DOUBLE value.
func NewDoubleValue(x float64) DoubleValue {
	return DoubleValue(x)
}

func (v DoubleValue) V() any {
	return float64(v)
}

func (v DoubleValue) Type() Type {
	return TypeDouble
}

func (v DoubleValue) String() string {
	return formatFloat(float64(v), 64)
}

func (v DoubleValue) EncodeAsKey(dst []byte) ([]byte, error) {
	return encoding.EncodeFloat64(dst, float64(v)), nil
}

// formatFloat always renders a decimal point or an exponent
// so that floats can be told apart from integers.
func formatFloat(f float64, bitSize int) string {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return strconv.FormatFloat(f, 'g', -1, bitSize)
	}

	abs := math.Abs(f)
	format := byte('f')
	if abs != 0 && (abs < 1e-6 || abs >= 1e21) {
		format = 'e'
	}

	s := strconv.FormatFloat(f, format, -1, bitSize)
	if format == 'f' && !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
