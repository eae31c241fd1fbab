package distance

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDot(t *testing.T) {
	assert.InDelta(t, 11.0, Dot([]float32{1, 2, 3}, []float32{3, 1, 2}), 1e-6)
	assert.InDelta(t, 0.0, Dot([]float32{1, 0}, []float32{0, 1}), 1e-6)
}

func TestNorm(t *testing.T) {
	assert.InDelta(t, 5.0, Norm([]float32{3, 4}), 1e-6)
	assert.InDelta(t, 0.0, Norm([]float32{0, 0, 0}), 1e-6)
	assert.InDelta(t, 0.0, Norm(nil), 1e-6)
}

func TestCosine(t *testing.T) {
	t.Run("Identical", func(t *testing.T) {
		assert.InDelta(t, 1.0, Cosine([]float32{1, 2, 3}, []float32{1, 2, 3}), 1e-6)
	})

	t.Run("Orthogonal", func(t *testing.T) {
		assert.InDelta(t, 0.0, Cosine([]float32{1, 0}, []float32{0, 1}), 1e-6)
	})

	t.Run("Opposite", func(t *testing.T) {
		assert.InDelta(t, -1.0, Cosine([]float32{1, 0}, []float32{-1, 0}), 1e-6)
	})

	t.Run("MagnitudeIndependent", func(t *testing.T) {
		assert.InDelta(t, 1.0, Cosine([]float32{1, 1}, []float32{10, 10}), 1e-6)
	})

	t.Run("ZeroNorm", func(t *testing.T) {
		assert.Equal(t, float32(0), Cosine([]float32{0, 0}, []float32{1, 0}))
		assert.Equal(t, float32(0), Cosine([]float32{1, 0}, []float32{0, 0}))
	})
}

func TestCosineWithNorms(t *testing.T) {
	a := []float32{1, 0}
	b := []float32{0.7071, 0.7071}

	got := CosineWithNorms(a, b, Norm(a), Norm(b))
	assert.InDelta(t, 0.7071, got, 1e-4)

	assert.Equal(t, float32(0), CosineWithNorms(a, b, 0, Norm(b)))
}
