package orderedbytes

import (
	"github.com/chaisql/orderedbytes/internal/encoding"
)

type (
	// UnknownDescriptorError is returned when a descriptor byte is not part of the table.
	UnknownDescriptorError = encoding.UnknownDescriptorError

	// TruncatedKeyError is returned when the input ends before a value is complete.
	TruncatedKeyError = encoding.TruncatedKeyError

	// MalformedEncodingError is returned when a payload violates its encoding rules.
	MalformedEncodingError = encoding.MalformedEncodingError

	// TypeMismatchError is returned when a value or a descriptor doesn't match the expected kind.
	TypeMismatchError = encoding.TypeMismatchError
)
