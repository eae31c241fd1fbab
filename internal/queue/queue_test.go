package queue

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTopK(t *testing.T) {
	t.Run("RanksDescending", func(t *testing.T) {
		q := NewTopK(3)
		q.Offer(Item{Position: 0, Similarity: 0.2})
		q.Offer(Item{Position: 1, Similarity: 0.9})
		q.Offer(Item{Position: 2, Similarity: 0.5})

		got := q.Results()
		require.Len(t, got, 3)
		assert.Equal(t, []Item{
			{Position: 1, Similarity: 0.9},
			{Position: 2, Similarity: 0.5},
			{Position: 0, Similarity: 0.2},
		}, got)
	})

	t.Run("Bounded", func(t *testing.T) {
		q := NewTopK(2)
		for i, sim := range []float32{0.1, 0.7, 0.3, 0.9, 0.5} {
			q.Offer(Item{Position: i, Similarity: sim})
		}

		got := q.Results()
		require.Len(t, got, 2)
		assert.Equal(t, 3, got[0].Position)
		assert.Equal(t, 1, got[1].Position)
	})

	t.Run("TieBreakByPosition", func(t *testing.T) {
		q := NewTopK(3)
		q.Offer(Item{Position: 2, Similarity: 0.5})
		q.Offer(Item{Position: 0, Similarity: 0.5})
		q.Offer(Item{Position: 1, Similarity: 0.5})

		got := q.Results()
		require.Len(t, got, 3)
		assert.Equal(t, 0, got[0].Position)
		assert.Equal(t, 1, got[1].Position)
		assert.Equal(t, 2, got[2].Position)
	})

	t.Run("TieAtCapacityKeepsLowerPosition", func(t *testing.T) {
		q := NewTopK(1)
		q.Offer(Item{Position: 5, Similarity: 0.5})
		q.Offer(Item{Position: 1, Similarity: 0.5})

		got := q.Results()
		require.Len(t, got, 1)
		assert.Equal(t, 1, got[0].Position)
	})

	t.Run("FewerCandidatesThanK", func(t *testing.T) {
		q := NewTopK(10)
		q.Offer(Item{Position: 0, Similarity: 0.4})

		got := q.Results()
		require.Len(t, got, 1)
	})

	t.Run("Empty", func(t *testing.T) {
		q := NewTopK(4)
		assert.Empty(t, q.Results())
	})
}
