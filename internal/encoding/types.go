package encoding

// TableVersion identifies the layout of the descriptor table below.
// Codes are never renumbered: stored keys depend on them.
const TableVersion = 1

// Descriptors used to encode values.
// They are sorted from the smallest to largest.
// Each descriptor is encoded on 1 byte and describes two things:
// - the type of the value, and for numbers, its magnitude bucket
// - the sort order of the value (ASC or DESC)
// Ascending descriptors all live in the lower half of the byte, descending
// descriptors are their bitwise complement and live in the upper half.
// The numbering is compatible with HBase OrderedBytes.
// Gaps are left between each type to allow adding new types in the future.
const (
	// Terminator of variable length payloads. Not a descriptor.
	Terminator byte = 0x00

	// 0x01 to 0x04: free

	NullValue byte = 0x05

	// 0x06: free

	// Arbitrary precision numbers, ordered by sign and magnitude.
	NumericNegInf         byte = 0x07
	NumericNegLarge       byte = 0x08
	NumericNegMediumMin   byte = 0x09
	NumericNegMediumMax   byte = 0x13
	NumericNegSmall       byte = 0x14
	NumericZero           byte = 0x15
	NumericPosSmall       byte = 0x16
	NumericPosMediumMin   byte = 0x17
	NumericPosMediumMax   byte = 0x21
	NumericPosLarge       byte = 0x22
	NumericPosInf         byte = 0x23
	NumericNaN            byte = 0x25
	numericMediumExponent      = int(NumericPosMediumMax-NumericPosMediumMin) + 1

	// 0x24, 0x26: free

	BooleanValue byte = 0x27

	// 0x28: free

	// Fixed width integers.
	Int8Value  byte = 0x29
	Int16Value byte = 0x2a
	Int32Value byte = 0x2b
	Int64Value byte = 0x2c

	// 0x2d to 0x2f: free

	// Fixed width floating point numbers.
	Float32Value byte = 0x30
	Float64Value byte = 0x31

	// 0x32, 0x33: free

	TextValue byte = 0x34

	// 0x35, 0x36: free

	BlobValue byte = 0x37

	// 0x38 to 0x7f: free

	// The second half of the byte is organized in reverse order, and it
	// is symmetrical to the first 128 values.
	// DESC_ prefix means that the value is encoded in reverse order.
	DESC_BlobValue     byte = ^BlobValue
	DESC_TextValue     byte = ^TextValue
	DESC_Float64Value  byte = ^Float64Value
	DESC_Float32Value  byte = ^Float32Value
	DESC_Int64Value    byte = ^Int64Value
	DESC_Int32Value    byte = ^Int32Value
	DESC_Int16Value    byte = ^Int16Value
	DESC_Int8Value     byte = ^Int8Value
	DESC_BooleanValue  byte = ^BooleanValue
	DESC_NumericZero   byte = ^NumericZero
	DESC_NullValue     byte = ^NullValue
	descendingBoundary byte = 0x80
)

// Direction is the sort order of an encoded value.
type Direction uint8

const (
	Ascending Direction = iota
	Descending
)

// IsDesc returns true if d is Descending.
func (d Direction) IsDesc() bool {
	return d == Descending
}

func (d Direction) String() string {
	if d == Descending {
		return "DESC"
	}
	return "ASC"
}

// Family groups descriptors that decode to the same kind of value.
type Family uint8

const (
	FamilyUnknown Family = iota
	FamilyNull
	FamilyNumeric
	FamilyBoolean
	FamilyInt8
	FamilyInt16
	FamilyInt32
	FamilyInt64
	FamilyFloat32
	FamilyFloat64
	FamilyText
	FamilyBlob
)

func (f Family) String() string {
	switch f {
	case FamilyNull:
		return "null"
	case FamilyNumeric:
		return "numeric"
	case FamilyBoolean:
		return "boolean"
	case FamilyInt8:
		return "int8"
	case FamilyInt16:
		return "int16"
	case FamilyInt32:
		return "int32"
	case FamilyInt64:
		return "int64"
	case FamilyFloat32:
		return "float32"
	case FamilyFloat64:
		return "float64"
	case FamilyText:
		return "text"
	case FamilyBlob:
		return "blob"
	}

	return "unknown"
}

// Bucket is the magnitude bucket of a numeric descriptor.
// Non numeric families only use BucketNone.
type Bucket uint8

const (
	BucketNone Bucket = iota
	BucketNegInf
	BucketNegLarge
	BucketNegMedium
	BucketNegSmall
	BucketZero
	BucketPosSmall
	BucketPosMedium
	BucketPosLarge
	BucketPosInf
	BucketNaN
)

// VariableWidth is the Width of descriptors whose payload
// is delimited by its own content.
const VariableWidth = -1

// Descriptor describes the value introduced by a descriptor byte,
// in ascending form.
type Descriptor struct {
	Code   byte
	Family Family
	Bucket Bucket
	// Width of the payload following the descriptor,
	// or VariableWidth.
	Width int
}

// Fixed returns true if the payload has a static size.
func (d Descriptor) Fixed() bool {
	return d.Width != VariableWidth
}

// Size returns the total size of the value, descriptor included,
// for fixed width descriptors.
func (d Descriptor) Size() int {
	return 1 + d.Width
}

var descriptors [descendingBoundary]Descriptor

func register(code byte, f Family, b Bucket, width int) {
	if code >= descendingBoundary || descriptors[code].Family != FamilyUnknown {
		panic("descriptor code registered twice or out of range")
	}
	descriptors[code] = Descriptor{Code: code, Family: f, Bucket: b, Width: width}
}

func init() {
	register(NullValue, FamilyNull, BucketNone, 0)

	register(NumericNegInf, FamilyNumeric, BucketNegInf, 0)
	register(NumericNegLarge, FamilyNumeric, BucketNegLarge, VariableWidth)
	for c := NumericNegMediumMin; c <= NumericNegMediumMax; c++ {
		register(c, FamilyNumeric, BucketNegMedium, VariableWidth)
	}
	register(NumericNegSmall, FamilyNumeric, BucketNegSmall, VariableWidth)
	register(NumericZero, FamilyNumeric, BucketZero, 0)
	register(NumericPosSmall, FamilyNumeric, BucketPosSmall, VariableWidth)
	for c := NumericPosMediumMin; c <= NumericPosMediumMax; c++ {
		register(c, FamilyNumeric, BucketPosMedium, VariableWidth)
	}
	register(NumericPosLarge, FamilyNumeric, BucketPosLarge, VariableWidth)
	register(NumericPosInf, FamilyNumeric, BucketPosInf, 0)
	register(NumericNaN, FamilyNumeric, BucketNaN, 0)

	register(BooleanValue, FamilyBoolean, BucketNone, 1)

	register(Int8Value, FamilyInt8, BucketNone, 1)
	register(Int16Value, FamilyInt16, BucketNone, 2)
	register(Int32Value, FamilyInt32, BucketNone, 4)
	register(Int64Value, FamilyInt64, BucketNone, 8)

	register(Float32Value, FamilyFloat32, BucketNone, 4)
	register(Float64Value, FamilyFloat64, BucketNone, 8)

	register(TextValue, FamilyText, BucketNone, VariableWidth)
	register(BlobValue, FamilyBlob, BucketNone, VariableWidth)
}

// DescriptorFor returns the ascending descriptor byte of the given family and bucket.
// For buckets spanning a range of codes, the smallest code is returned.
func DescriptorFor(f Family, b Bucket) (byte, bool) {
	for _, d := range descriptors {
		if d.Family == f && d.Bucket == b && d.Family != FamilyUnknown {
			return d.Code, true
		}
	}

	return 0, false
}

// Lookup returns the descriptor introduced by the code and the direction
// the value was encoded in.
func Lookup(code byte) (Descriptor, Direction, error) {
	dir := Ascending
	if code >= descendingBoundary {
		code = ^code
		dir = Descending
	}

	d := descriptors[code]
	if d.Family == FamilyUnknown {
		if dir == Descending {
			code = ^code
		}
		return Descriptor{}, dir, newUnknownDescriptorError(code, 0)
	}

	return d, dir, nil
}

// IsNull returns true if the code is the null descriptor, in any direction.
func IsNull(code byte) bool {
	return code == NullValue || code == DESC_NullValue
}
