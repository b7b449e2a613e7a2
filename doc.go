/*
Package orderedbytes implements an order-preserving encoding of typed scalar values.

Values are encoded into byte strings whose unsigned lexicographic order
matches the natural order of the values. Encoded values can be concatenated
into composite keys that sort like the tuples they represent, which makes them
suitable as keys of any sorted key-value store.

Kinds

Every encoding is described by a Kind, such as INT32_OB or TEXT_OBD.
The _OB kinds sort in ascending order, their _OBD twins in descending order.

	b, err := orderedbytes.ConvertTo(int32(10), orderedbytes.Int32)
	// b = 2b 80 00 00 0a
	v, err := orderedbytes.ConvertFrom(b, orderedbytes.Int32)
	// v = int32(10)

Each encoded value starts with a descriptor byte identifying its type and
direction, followed by its payload. Nulls are encoded as a single byte that
sorts before every ascending value and after every descending one.

Composite keys

A Schema is an ordered list of kinds. It encodes tuples into composite keys
and splits composite keys back into tuples.

	s, err := orderedbytes.ParseSchema("INT32_OB, TEXT_OBD")
	k, err := s.Encode(int32(1), "foo")
	values, err := s.Decode(k)

Errors

Decoding functions report failures with UnknownDescriptorError,
TruncatedKeyError, MalformedEncodingError and TypeMismatchError, which
carry the offset of the failing byte.
*/
package orderedbytes
