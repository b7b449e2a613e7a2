package orderedbytes

import (
	"strconv"
	"strings"

	"github.com/chaisql/orderedbytes/internal/encoding"
	"github.com/chaisql/orderedbytes/internal/types"
	"github.com/cockroachdb/errors"
)

// A Kind is an order-preserving encoding of a scalar type in a given direction.
type Kind uint8

// List of kinds.
const (
	Int8 Kind = iota + 1
	Int16
	Int32
	Int64
	Float
	Double
	Decimal
	Boolean
	Text
	Binary
	Int8Desc
	Int16Desc
	Int32Desc
	Int64Desc
	FloatDesc
	DoubleDesc
	DecimalDesc
	BooleanDesc
	TextDesc
	BinaryDesc
)

type kindInfo struct {
	name string
	typ  types.Type
	dir  encoding.Direction
}

var kinds = [...]kindInfo{
	Int8:        {"INT8_OB", types.TypeTinyint, encoding.Ascending},
	Int16:       {"INT16_OB", types.TypeSmallint, encoding.Ascending},
	Int32:       {"INT32_OB", types.TypeInteger, encoding.Ascending},
	Int64:       {"INT64_OB", types.TypeBigint, encoding.Ascending},
	Float:       {"FLOAT_OB", types.TypeReal, encoding.Ascending},
	Double:      {"DOUBLE_OB", types.TypeDouble, encoding.Ascending},
	Decimal:     {"DECIMAL_OB", types.TypeDecimal, encoding.Ascending},
	Boolean:     {"BOOLEAN_OB", types.TypeBoolean, encoding.Ascending},
	Text:        {"TEXT_OB", types.TypeText, encoding.Ascending},
	Binary:      {"BINARY_OB", types.TypeBlob, encoding.Ascending},
	Int8Desc:    {"INT8_OBD", types.TypeTinyint, encoding.Descending},
	Int16Desc:   {"INT16_OBD", types.TypeSmallint, encoding.Descending},
	Int32Desc:   {"INT32_OBD", types.TypeInteger, encoding.Descending},
	Int64Desc:   {"INT64_OBD", types.TypeBigint, encoding.Descending},
	FloatDesc:   {"FLOAT_OBD", types.TypeReal, encoding.Descending},
	DoubleDesc:  {"DOUBLE_OBD", types.TypeDouble, encoding.Descending},
	DecimalDesc: {"DECIMAL_OBD", types.TypeDecimal, encoding.Descending},
	BooleanDesc: {"BOOLEAN_OBD", types.TypeBoolean, encoding.Descending},
	TextDesc:    {"TEXT_OBD", types.TypeText, encoding.Descending},
	BinaryDesc:  {"BINARY_OBD", types.TypeBlob, encoding.Descending},
}

// names maps every accepted name of a kind, in upper case, to the kind.
var names = func() map[string]Kind {
	m := make(map[string]Kind, 2*len(kinds))
	for k := Int8; k <= BinaryDesc; k++ {
		m[kinds[k].name] = k
	}

	aliases := map[string]Kind{
		"TINYINT":   Int8,
		"SMALLINT":  Int16,
		"INT":       Int32,
		"BIGINT":    Int64,
		"UTF8":      Text,
		"VARBINARY": Binary,
	}
	for alias, k := range aliases {
		m[alias+"_OB"] = k
		m[alias+"_OBD"] = k.Desc()
	}

	return m
}()

// Kinds returns every kind, ascending kinds first.
func Kinds() []Kind {
	l := make([]Kind, 0, len(kinds)-1)
	for k := Int8; k <= BinaryDesc; k++ {
		l = append(l, k)
	}
	return l
}

// ParseKind returns the kind with the given name.
// Names are case insensitive.
func ParseKind(name string) (Kind, error) {
	k, ok := names[strings.ToUpper(strings.TrimSpace(name))]
	if !ok {
		return 0, errors.Errorf("unknown kind %q", name)
	}

	return k, nil
}

// IsValid reports whether k is one of the listed kinds.
func (k Kind) IsValid() bool {
	return k >= Int8 && k <= BinaryDesc
}

// String returns the canonical name of the kind.
func (k Kind) String() string {
	if !k.IsValid() {
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}

	return kinds[k].name
}

// Direction returns the sort order of the kind.
func (k Kind) Direction() encoding.Direction {
	return kinds[k].dir
}

// IsDesc reports whether the kind sorts in descending order.
func (k Kind) IsDesc() bool {
	return k.Direction().IsDesc()
}

// Desc returns the descending twin of the kind.
func (k Kind) Desc() Kind {
	if k.IsDesc() {
		return k
	}

	return k + Int8Desc - Int8
}

// Asc returns the ascending twin of the kind.
func (k Kind) Asc() Kind {
	if !k.IsDesc() {
		return k
	}

	return k - Int8Desc + Int8
}

func (k Kind) typ() types.Type {
	return kinds[k].typ
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	kk, err := ParseKind(string(text))
	if err != nil {
		return err
	}

	*k = kk
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	if !k.IsValid() {
		return nil, errors.Errorf("invalid kind %d", uint8(k))
	}

	return []byte(k.String()), nil
}
