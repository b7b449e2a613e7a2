package encoding

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// UnknownDescriptorError is returned when a leading byte is outside
// of every reserved descriptor range.
type UnknownDescriptorError struct {
	Descriptor byte
	Offset     int
}

func newUnknownDescriptorError(code byte, offset int) error {
	return errors.WithStack(&UnknownDescriptorError{Descriptor: code, Offset: offset})
}

func (e *UnknownDescriptorError) Error() string {
	return fmt.Sprintf("unknown descriptor 0x%02x at offset %d", e.Descriptor, e.Offset)
}

// TruncatedKeyError is returned when the input ends before a value,
// or a key schema, is fully consumed.
type TruncatedKeyError struct {
	Offset int
	// Need is the number of bytes that were expected from Offset.
	Need int
	// Have is the number of bytes remaining from Offset.
	Have int
}

func newTruncatedKeyError(offset, need, have int) error {
	return errors.WithStack(&TruncatedKeyError{Offset: offset, Need: need, Have: have})
}

// NewTruncatedKeyError returns a TruncatedKeyError.
func NewTruncatedKeyError(offset, need, have int) error {
	return newTruncatedKeyError(offset, need, have)
}

func (e *TruncatedKeyError) Error() string {
	return fmt.Sprintf("truncated key at offset %d: need %d bytes, have %d", e.Offset, e.Need, e.Have)
}

// MalformedEncodingError is returned when a payload breaks the encoding
// rules of its descriptor.
type MalformedEncodingError struct {
	Offset int
	Reason string
}

func newMalformedEncodingError(offset int, reason string) error {
	return errors.WithStack(&MalformedEncodingError{Offset: offset, Reason: reason})
}

// NewMalformedEncodingError returns a MalformedEncodingError.
func NewMalformedEncodingError(offset int, reason string) error {
	return newMalformedEncodingError(offset, reason)
}

func (e *MalformedEncodingError) Error() string {
	return fmt.Sprintf("malformed encoding at offset %d: %s", e.Offset, e.Reason)
}

// TypeMismatchError is returned when a value, or an encoded value,
// doesn't match the type that was requested.
type TypeMismatchError struct {
	Expected string
	Actual   string
	// Offset of the mismatching descriptor, or -1 when
	// the mismatch was detected before encoding.
	Offset int
}

// NewTypeMismatchError returns a TypeMismatchError detected on an encoded value.
func NewTypeMismatchError(expected, actual string, offset int) error {
	return errors.WithStack(&TypeMismatchError{Expected: expected, Actual: actual, Offset: offset})
}

func (e *TypeMismatchError) Error() string {
	if e.Offset < 0 {
		return fmt.Sprintf("type mismatch: expected %s, got %s", e.Expected, e.Actual)
	}
	return fmt.Sprintf("type mismatch at offset %d: expected %s, got %s", e.Offset, e.Expected, e.Actual)
}

// ShiftOffset moves the offset carried by a codec error by delta bytes.
// It is used by callers decoding values in the middle of a larger buffer.
func ShiftOffset(err error, delta int) error {
	if err == nil || delta == 0 {
		return err
	}

	var ude *UnknownDescriptorError
	var tke *TruncatedKeyError
	var mee *MalformedEncodingError
	var tme *TypeMismatchError
	switch {
	case errors.As(err, &ude):
		ude.Offset += delta
	case errors.As(err, &tke):
		tke.Offset += delta
	case errors.As(err, &mee):
		mee.Offset += delta
	case errors.As(err, &tme):
		if tme.Offset >= 0 {
			tme.Offset += delta
		}
	}

	return err
}
