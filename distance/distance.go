// Package distance provides the similarity kernels used by the store.
//
// All kernels are scalar and accumulate in float64 to keep results stable
// across platforms. Vectors passed to Dot and Cosine must be the same
// length (caller's responsibility).
package distance

import "math"

// Dot calculates the dot product of two vectors.
func Dot(a, b []float32) float32 {
	var sum float64
	for i := range a {
		sum += float64(a[i]) * float64(b[i])
	}
	return float32(sum)
}

// Norm calculates the L2 norm of a vector.
func Norm(v []float32) float32 {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	return float32(math.Sqrt(sum))
}

// Cosine calculates the cosine similarity of two vectors.
//
// When either vector has zero L2 norm the similarity is defined as 0:
// a zero vector has no direction, so it is treated as maximally dissimilar
// rather than producing NaN from the division.
func Cosine(a, b []float32) float32 {
	na := Norm(a)
	if na == 0 {
		return 0
	}
	nb := Norm(b)
	if nb == 0 {
		return 0
	}
	return Dot(a, b) / (na * nb)
}

// CosineWithNorms calculates cosine similarity using precomputed norms.
// It is the hot-path variant for scans where the query norm is computed once.
// The zero-norm rule of Cosine applies.
func CosineWithNorms(a, b []float32, na, nb float32) float32 {
	if na == 0 || nb == 0 {
		return 0
	}
	return Dot(a, b) / (na * nb)
}
