package encoding

import (
	"bytes"
	"unicode/utf8"
)

// <term>  -> 0x00 0x00
// 0x00    -> 0x00 0xFF
// The escape byte is the smallest byte value so that a value
// sorts before every longer value it is a prefix of.
const (
	escape      byte = 0x00
	escapedTerm byte = 0x00
	escaped00   byte = 0xFF
)

// appendEscaped writes data to dst, escaping every 0x00 byte,
// followed by the terminator.
func appendEscaped(dst []byte, code byte, data []byte) []byte {
	dst = append(dst, code)
	for {
		i := bytes.IndexByte(data, escape)
		if i == -1 {
			break
		}
		dst = append(dst, data[:i]...)
		dst = append(dst, escape, escaped00)
		data = data[i+1:]
	}
	dst = append(dst, data...)
	return append(dst, escape, escapedTerm)
}

func EncodeBlob(dst []byte, x []byte) []byte {
	return appendEscaped(dst, BlobValue, x)
}

func EncodeText(dst []byte, x string) []byte {
	return appendEscaped(dst, TextValue, []byte(x))
}

// readEscaped reads the escaped payload of a text or blob value.
// It returns the unescaped payload and the total number of bytes read,
// descriptor and terminator included.
func readEscaped(b []byte, code byte) ([]byte, int, error) {
	if len(b) == 0 {
		return nil, 0, newTruncatedKeyError(0, 1, 0)
	}

	d, dir, err := Lookup(b[0])
	if err != nil {
		return nil, 0, err
	}
	if d.Code != code {
		return nil, 0, NewTypeMismatchError(descriptors[code].Family.String(), d.Family.String(), 0)
	}

	esc := escape
	if dir == Descending {
		esc = ^escape
	}

	out := make([]byte, 0, len(b))
	i := 1
	for {
		j := bytes.IndexByte(b[i:], esc)
		if j == -1 {
			return nil, 0, newMalformedEncodingError(len(b), "missing terminator")
		}
		out = appendDirected(out, b[i:i+j], dir)
		i += j

		if i+1 >= len(b) {
			return nil, 0, newMalformedEncodingError(i, "missing terminator")
		}

		next := b[i+1]
		if dir == Descending {
			next = ^next
		}

		switch next {
		case escapedTerm:
			return out, i + 2, nil
		case escaped00:
			out = append(out, 0x00)
			i += 2
		default:
			return nil, 0, newMalformedEncodingError(i+1, "invalid escape sequence")
		}
	}
}

// skipBytes returns the size of an escaped value without unescaping it.
func skipBytes(b []byte, dir Direction) (int, error) {
	esc := escape
	if dir == Descending {
		esc = ^escape
	}

	i := 1
	for {
		j := bytes.IndexByte(b[i:], esc)
		if j == -1 || i+j+1 >= len(b) {
			return 0, newMalformedEncodingError(len(b), "missing terminator")
		}
		i += j

		next := b[i+1]
		if dir == Descending {
			next = ^next
		}
		switch next {
		case escapedTerm:
			return i + 2, nil
		case escaped00:
			i += 2
		default:
			return 0, newMalformedEncodingError(i+1, "invalid escape sequence")
		}
	}
}

func appendDirected(dst, src []byte, dir Direction) []byte {
	if dir == Ascending {
		return append(dst, src...)
	}

	for _, c := range src {
		dst = append(dst, ^c)
	}
	return dst
}

func DecodeBlob(b []byte) ([]byte, int, error) {
	return readEscaped(b, BlobValue)
}

func DecodeText(b []byte) (string, int, error) {
	x, n, err := readEscaped(b, TextValue)
	if err != nil {
		return "", 0, err
	}

	if !utf8.Valid(x) {
		return "", 0, newMalformedEncodingError(1, "invalid UTF-8 text")
	}

	return string(x), n, nil
}
