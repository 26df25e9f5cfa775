package interval

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type span struct {
	iv Interval
}

func (s *span) Span() *Interval { return &s.iv }

func newSpan(chrom string, start, end int64) *span {
	return &span{iv: New(chrom, StrandForward, start, end)}
}

func TestForestStab(t *testing.T) {
	f := NewForest()
	a := newSpan("1", 100, 200)
	b := newSpan("1", 150, 300)
	c := newSpan("2", 100, 200)
	for _, e := range []*span{a, b, c} {
		require.NoError(t, f.Add(e))
	}
	f.Build()

	hits, err := f.Stab("1", 160)
	require.NoError(t, err)
	assert.Len(t, hits, 2)

	hits, err = f.Stab("1", 120)
	require.NoError(t, err)
	assert.Len(t, hits, 1)
	assert.Same(t, a, hits[0])

	// Inclusive at both ends.
	hits, err = f.Stab("1", 200)
	require.NoError(t, err)
	assert.Len(t, hits, 2)
	hits, err = f.Stab("1", 100)
	require.NoError(t, err)
	assert.Len(t, hits, 1)

	hits, err = f.Stab("1", 301)
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestForestStabRange(t *testing.T) {
	f := NewForest()
	a := newSpan("1", 100, 200)
	require.NoError(t, f.Add(a))
	f.Build()

	hits, err := f.StabRange("1", 190, 250)
	require.NoError(t, err)
	assert.Len(t, hits, 1)

	hits, err = f.StabRange("1", 201, 250)
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestForestChromosomeNormalization(t *testing.T) {
	f := NewForest()
	require.NoError(t, f.Add(newSpan("chr1", 100, 200)))
	f.Build()

	hits, err := f.Stab("1", 150)
	require.NoError(t, err)
	assert.Len(t, hits, 1)

	hits, err = f.Stab("Chr1", 150)
	require.NoError(t, err)
	assert.Len(t, hits, 1)
}

func TestForestQueryBeforeBuild(t *testing.T) {
	f := NewForest()
	require.NoError(t, f.Add(newSpan("1", 100, 200)))

	_, err := f.Stab("1", 150)
	assert.ErrorIs(t, err, ErrNotBuilt)
}

func TestForestUnknownChromosome(t *testing.T) {
	f := NewForest()
	require.NoError(t, f.Add(newSpan("1", 100, 200)))
	f.Build()

	hits, err := f.Stab("7", 150)
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestForestLen(t *testing.T) {
	f := NewForest()
	require.NoError(t, f.Add(newSpan("1", 1, 10)))
	require.NoError(t, f.Add(newSpan("2", 1, 10)))
	f.Build()
	assert.Equal(t, 2, f.Len())
	assert.ElementsMatch(t, []string{"1", "2"}, f.Chromosomes())
}
