package genome

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadFASTA(t *testing.T, content string) *Genome {
	t.Helper()
	g, err := (&FASTALoader{}).parseFASTA(strings.NewReader(content))
	require.NoError(t, err)
	return g
}

func TestParseFASTA(t *testing.T) {
	g := loadFASTA(t, `>chr1 Homo sapiens chromosome 1
ATGGGT
CGATAA
>chr2
ttttgggg
`)
	require.Equal(t, 2, g.Len())

	c1 := g.Chromosome("chr1")
	require.NotNil(t, c1)
	assert.Equal(t, "ATGGGTCGATAA", c1.Seq)
	assert.Equal(t, "Homo sapiens chromosome 1", c1.FriendlyName)
	assert.False(t, c1.Mitochondrial)

	// Sequences are upper-cased at load.
	c2 := g.Chromosome("2")
	require.NotNil(t, c2)
	assert.Equal(t, "TTTTGGGG", c2.Seq)
	assert.Equal(t, "chr2", c2.FriendlyName)
}

func TestChromosomeAliases(t *testing.T) {
	g := loadFASTA(t, ">chr1\nACGT\n")
	assert.NotNil(t, g.Chromosome("1"))
	assert.NotNil(t, g.Chromosome("Chr1"))
	assert.NotNil(t, g.Chromosome("CHR1"))
	assert.Nil(t, g.Chromosome("2"))
}

func TestMitochondrialDetection(t *testing.T) {
	tests := []struct {
		name   string
		header string
		mito   bool
	}{
		{"MT name", ">chrMT\n", true},
		{"M name", ">chrM\n", true},
		{"friendly name", ">NC_012920.1 Homo sapiens mitochondrion\n", true},
		{"autosome", ">chr12\n", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := loadFASTA(t, tt.header+"ACGT\n")
			names := g.Names()
			require.Len(t, names, 1)
			assert.Equal(t, tt.mito, g.Chromosome(names[0]).Mitochondrial)
		})
	}
}

func TestSubsequence(t *testing.T) {
	c := &Chromosome{Name: "1", Seq: "ATGGGTCGATAA"}

	tests := []struct {
		name       string
		start, end int64
		want       string
	}{
		{"full", 1, 12, "ATGGGTCGATAA"},
		{"middle", 4, 6, "GGT"},
		{"single base", 1, 1, "A"},
		{"clipped left", -5, 3, "ATG"},
		{"clipped right", 10, 100, "TAA"},
		{"empty range", 8, 4, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Subsequence(tt.start, tt.end))
		})
	}

	var missing *Chromosome
	assert.Equal(t, "", missing.Subsequence(1, 10))
}
