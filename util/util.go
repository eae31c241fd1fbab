// Package util provides helpers for tests and examples.
package util

import "math/rand"

// RNG struct encapsulates the random number generator and seed.
type RNG struct {
	rand *rand.Rand
	seed int64
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)), // nolint gosec
		seed: seed,
	}
}

// GenerateRandomVector generates a single random vector.
func (r *RNG) GenerateRandomVector(dimensions int) []float32 {
	v := make([]float32, dimensions)
	for i := range v {
		v[i] = r.rand.Float32()
	}
	return v
}

// GenerateRandomVectors generates random vectors using the given RNG.
func (r *RNG) GenerateRandomVectors(num int, dimensions int) [][]float32 {
	vectors := make([][]float32, num)
	for i := range vectors {
		vectors[i] = r.GenerateRandomVector(dimensions)
	}
	return vectors
}
