package vecdb

// Numeric constrains the element types AsVector accepts.
type Numeric interface {
	~float32 | ~float64 | ~int | ~int32 | ~int64
}

// AsVector converts a numeric slice into the store's internal float32
// representation. It is the single conversion boundary for embeddings
// produced by numeric frameworks whose bindings hand back []float64 or
// integer slices; nothing downstream branches on the element type.
//
// The result is always a fresh slice, so callers may reuse their buffer.
func AsVector[T Numeric](v []T) []float32 {
	out := make([]float32, len(v))
	for i, x := range v {
		out[i] = float32(x)
	}
	return out
}
