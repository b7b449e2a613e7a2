package orderedbytes

import (
	"strings"

	"github.com/chaisql/orderedbytes/internal/tree"
	"github.com/chaisql/orderedbytes/internal/types"
	"github.com/cockroachdb/errors"
)

// A Schema describes the kind of each field of a composite key.
type Schema struct {
	kinds []Kind
	tree  tree.Schema
}

// NewSchema returns a schema made of the given kinds.
func NewSchema(kinds ...Kind) (*Schema, error) {
	if len(kinds) == 0 {
		return nil, errors.New("schema must have at least one field")
	}

	s := Schema{
		kinds: make([]Kind, len(kinds)),
		tree:  make(tree.Schema, len(kinds)),
	}
	for i, k := range kinds {
		if !k.IsValid() {
			return nil, errors.Errorf("field %d: invalid kind %d", i, uint8(k))
		}
		s.kinds[i] = k
		s.tree[i] = tree.Column{Type: k.typ(), Order: k.Direction()}
	}

	return &s, nil
}

// ParseSchema parses a comma separated list of kind names,
// such as "INT32_OB, TEXT_OBD".
func ParseSchema(s string) (*Schema, error) {
	return ParseSchemaFields(strings.Split(s, ","))
}

// ParseSchemaFields returns a schema made of the named kinds.
func ParseSchemaFields(fields []string) (*Schema, error) {
	kinds := make([]Kind, 0, len(fields))
	for i, f := range fields {
		k, err := ParseKind(f)
		if err != nil {
			return nil, errors.Wrapf(err, "field %d", i)
		}
		kinds = append(kinds, k)
	}

	return NewSchema(kinds...)
}

// Kinds returns the kind of each field.
func (s *Schema) Kinds() []Kind {
	return append([]Kind(nil), s.kinds...)
}

// Len returns the number of fields.
func (s *Schema) Len() int {
	return len(s.kinds)
}

// Tree returns the columns of the schema, used to store keys in a tree.
func (s *Schema) Tree() tree.Schema {
	return s.tree
}

func (s *Schema) String() string {
	names := make([]string, len(s.kinds))
	for i, k := range s.kinds {
		names[i] = k.String()
	}
	return strings.Join(names, ", ")
}

// Key converts a tuple to a composite key of the tree package.
// The tuple may have fewer values than the schema, in which case
// the key can only be used as a range bound.
func (s *Schema) Key(values ...any) (*tree.Key, error) {
	if len(values) > len(s.kinds) {
		return nil, errors.Errorf("got %d values, schema %s has %d fields", len(values), s, len(s.kinds))
	}

	tvs := make([]types.Value, len(values))
	for i, v := range values {
		tv, err := toValue(v, s.kinds[i])
		if err != nil {
			return nil, errors.Wrapf(err, "column %d", i)
		}
		tvs[i] = tv
	}

	return tree.NewKey(tvs...), nil
}

// Encode encodes a tuple into a composite key.
// Each value is encoded with the kind of its field and the results are concatenated.
// A tuple shorter than the schema produces a prefix of the keys starting with it.
func (s *Schema) Encode(values ...any) ([]byte, error) {
	k, err := s.Key(values...)
	if err != nil {
		return nil, err
	}

	return k.Encode(s.tree)
}

// Decode splits a composite key into its values.
// Values are returned as ConvertFrom would return them.
func (s *Schema) Decode(b []byte) ([]any, error) {
	tvs, err := tree.DecodeKey(s.tree, b)
	if err != nil {
		return nil, err
	}

	return nativeValues(tvs), nil
}

func nativeValues(tvs []types.Value) []any {
	values := make([]any, len(tvs))
	for i, v := range tvs {
		if !types.IsNull(v) {
			values[i] = v.V()
		}
	}
	return values
}
