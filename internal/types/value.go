package types

// A Value stores encoded data alongside its type.
type Value interface {
	Type() Type
	V() any
	String() string
	// EncodeAsKey appends the ascending key encoding of the value to dst.
	EncodeAsKey(dst []byte) ([]byte, error)
}

// As returns the native value held by v.
// It panics if T is not the type of v.V().
func As[T any](v Value) T {
	return v.V().(T)
}

func IsNull(v Value) bool {
	return v == nil || v.Type() == TypeNull
}
