package ordinal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeneIndexOrphanRecord(t *testing.T) {
	b := NewGeneIndexBuilder(false)
	err := b.AddGene("g1", 10, 20)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrOrphanGeneRecord)
}

func TestGeneIndexBeginEndNormalized(t *testing.T) {
	b := NewGeneIndexBuilder(false)
	b.OpenContig("N1")
	require.NoError(t, b.AddGene("g1", 200, 100)) // reversed on purpose
	idx := b.Build()
	events := idx.coords["N1"]
	require.Len(t, events, 2)
	assert.Equal(t, uint64(100), events[0].pos())
	assert.Equal(t, uint64(200), events[1].pos())
}

func TestGeneIndexDuplicateDetection(t *testing.T) {
	b := NewGeneIndexBuilder(false)
	b.OpenContig("N1")
	require.NoError(t, b.AddGene("g1", 100, 200))
	b.OpenContig("N2")
	require.NoError(t, b.AddGene("g1", 100, 200)) // same id, different contig
	idx := b.Build()
	assert.True(t, idx.HasDuplicateGeneIDs())
}

func TestGeneIndexNoDuplicates(t *testing.T) {
	b := NewGeneIndexBuilder(false)
	b.OpenContig("N1")
	require.NoError(t, b.AddGene("g1", 100, 200))
	require.NoError(t, b.AddGene("g2", 300, 400))
	idx := b.Build()
	assert.False(t, idx.HasDuplicateGeneIDs())
}

func TestGeneIndexSortsUnsortedInput(t *testing.T) {
	b := NewGeneIndexBuilder(false)
	b.OpenContig("N1")
	require.NoError(t, b.AddGene("g2", 300, 400))
	require.NoError(t, b.AddGene("g1", 100, 200))
	idx := b.Build()
	events := idx.coords["N1"]
	for i := 1; i < len(events); i++ {
		assert.LessOrEqual(t, events[i-1], events[i])
	}
}

func TestGeneLengths(t *testing.T) {
	b := NewGeneIndexBuilder(false)
	b.OpenContig("N1")
	require.NoError(t, b.AddGene("g1", 100, 200))
	idx := b.Build()
	lens := idx.GeneLengths(false)
	assert.Equal(t, 100, lens["g1"])

	prefixed := idx.GeneLengths(true)
	assert.Equal(t, 100, prefixed["N1_g1"])
}
