package tree

import (
	"strings"

	"github.com/chaisql/orderedbytes/internal/encoding"
	"github.com/chaisql/orderedbytes/internal/types"
	"github.com/cockroachdb/errors"
)

// A Column describes one field of a composite key.
type Column struct {
	Type  types.Type
	Order encoding.Direction
}

func (c Column) String() string {
	return c.Type.String() + " " + c.Order.String()
}

// A Schema is the ordered list of columns of a composite key.
type Schema []Column

// Directions returns the sort order of each column.
func (s Schema) Directions() []encoding.Direction {
	dirs := make([]encoding.Direction, len(s))
	for i, c := range s {
		dirs[i] = c.Order
	}
	return dirs
}

func (s Schema) String() string {
	cols := make([]string, len(s))
	for i, c := range s {
		cols[i] = c.String()
	}
	return "(" + strings.Join(cols, ", ") + ")"
}

// A Key is a composite key made of a list of values.
// It holds the values, the encoded key, or both.
type Key struct {
	values  []types.Value
	Encoded []byte
}

func NewKey(values ...types.Value) *Key {
	return &Key{
		values: values,
	}
}

func NewEncodedKey(enc []byte) *Key {
	return &Key{
		Encoded: enc,
	}
}

// Encode encodes the values of the key following the schema.
// Each value is encoded in the direction of its column and the results
// are concatenated. A key with fewer values than the schema is a partial key,
// which can be used as a range bound. A NULL is accepted in every column.
func (k *Key) Encode(s Schema) ([]byte, error) {
	if k.Encoded != nil {
		return k.Encoded, nil
	}

	if len(k.values) > len(s) {
		return nil, errors.Errorf("key has %d values but schema %s has %d columns", len(k.values), s, len(s))
	}

	var buf []byte
	var err error

	for i, v := range k.values {
		if v == nil {
			v = types.NewNullValue()
		}

		if v.Type() != types.TypeNull && v.Type() != s[i].Type {
			err = encoding.NewTypeMismatchError(s[i].Type.String(), v.Type().String(), -1)
			return nil, errors.Wrapf(err, "column %d", i)
		}

		buf, err = types.EncodeValueAsKey(buf, v, s[i].Order)
		if err != nil {
			return nil, errors.Wrapf(err, "column %d", i)
		}
	}

	k.Encoded = buf
	return buf, nil
}

// Decode returns the values of the key, decoding it with the schema if needed.
func (k *Key) Decode(s Schema) ([]types.Value, error) {
	if k.values != nil {
		return k.values, nil
	}

	values, err := DecodeKey(s, k.Encoded)
	if err != nil {
		return nil, err
	}

	k.values = values
	return values, nil
}

// Len returns the number of values of a key built from values.
func (k *Key) Len() int {
	return len(k.values)
}

func (k *Key) String() string {
	if k == nil {
		return ""
	}

	if k.values == nil {
		values, err := types.DecodeValues(k.Encoded)
		if err != nil {
			return "invalid key"
		}
		k = NewKey(values...)
	}

	var sb strings.Builder
	sb.WriteByte('(')
	for i, v := range k.values {
		if i > 0 {
			sb.WriteString(", ")
		}
		if v == nil {
			v = types.NewNullValue()
		}
		sb.WriteString(v.String())
	}
	sb.WriteByte(')')
	return sb.String()
}

// DecodeKey splits a composite key encoded with schema s into its values.
// Every column of the schema must be present and no bytes may follow
// the last one. Errors carry the offset of the failing byte in b
// and are annotated with the index of the failing column.
func DecodeKey(s Schema, b []byte) ([]types.Value, error) {
	values := make([]types.Value, 0, len(s))

	var off int
	for i, col := range s {
		v, n, err := decodeColumn(col, b, off)
		if err != nil {
			return nil, errors.Wrapf(err, "column %d", i)
		}

		values = append(values, v)
		off += n
	}

	if off != len(b) {
		return nil, encoding.NewMalformedEncodingError(off, "trailing bytes after last column")
	}

	return values, nil
}

func decodeColumn(col Column, b []byte, off int) (types.Value, int, error) {
	if off >= len(b) {
		return nil, 0, encoding.NewTruncatedKeyError(off, 1, 0)
	}

	code := b[off]
	d, dir, err := encoding.Lookup(code)
	if err != nil {
		return nil, 0, encoding.ShiftOffset(err, off)
	}

	if dir != col.Order || (!encoding.IsNull(code) && d.Family != col.Type.Family()) {
		return nil, 0, encoding.NewTypeMismatchError(col.String(), d.Family.String()+" "+dir.String(), off)
	}

	v, n, err := types.DecodeValue(b[off:])
	if err != nil {
		return nil, 0, encoding.ShiftOffset(err, off)
	}

	return v, n, nil
}
