package duckdb

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acesnik/ProteoformDatabaseEngine-1/internal/genemodel"
	"github.com/acesnik/ProteoformDatabaseEngine-1/internal/haplotype"
)

func openInMemory(t *testing.T) *Store {
	t.Helper()
	s, err := Open("")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func testPairs() []haplotype.Pair {
	gene := &genemodel.Gene{ID: "ENSG00000133703"}
	tx := &genemodel.Transcript{ID: "ENST00000311936", Version: "8", Gene: gene}
	tx.VariantNotes = []string{"12:25245350 C>A missense_variant MISSENSE HETEROZYGOUS p.G12V"}

	ref := &genemodel.Transcript{ID: "ENST00000311936", Version: "8", Gene: gene}

	return []haplotype.Pair{
		{
			Transcript: tx,
			Protein: &haplotype.Protein{
				Accession:  "ENST00000311936.8",
				Organism:   "Homo sapiens",
				Sequence:   "MTEYKLVVVGAVGVGKSALTIQ",
				Annotation: tx.VariantNotes[0],
			},
		},
		{
			Transcript: ref,
			Protein: &haplotype.Protein{
				Accession: "ENST00000311936.8",
				Organism:  "Homo sapiens",
				Sequence:  "MTEYKLVVVGAGGVGKSALTIQ",
			},
		},
	}
}

func TestOpenClose(t *testing.T) {
	s := openInMemory(t)
	assert.NotNil(t, s.DB())
}

func TestOpenCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "proteoforms.duckdb")
	s, err := Open(path)
	require.NoError(t, err)
	defer s.Close()

	n, err := s.Count()
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestWriteAndSearchProteoforms(t *testing.T) {
	s := openInMemory(t)
	require.NoError(t, s.WriteProteoforms(testPairs()))

	n, err := s.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	proteins, err := s.SearchByGene("ENSG00000133703")
	require.NoError(t, err)
	require.Len(t, proteins, 2)
	assert.Equal(t, "ENST00000311936.8", proteins[0].Accession)

	var annotated int
	for _, p := range proteins {
		if p.Annotation != "" {
			annotated++
			assert.Contains(t, p.Annotation, "MISSENSE")
		}
	}
	assert.Equal(t, 1, annotated)
}

func TestWriteProteoformsDeduplicates(t *testing.T) {
	s := openInMemory(t)

	pairs := testPairs()
	pairs = append(pairs, pairs[0])
	require.NoError(t, s.WriteProteoforms(pairs))

	n, err := s.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}

func TestSearchUnknownGene(t *testing.T) {
	s := openInMemory(t)
	require.NoError(t, s.WriteProteoforms(testPairs()))

	proteins, err := s.SearchByGene("ENSG0000000000")
	require.NoError(t, err)
	assert.Empty(t, proteins)
}

func TestClear(t *testing.T) {
	s := openInMemory(t)
	require.NoError(t, s.WriteProteoforms(testPairs()))
	require.NoError(t, s.Clear())

	n, err := s.Count()
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestWriteEmpty(t *testing.T) {
	s := openInMemory(t)
	require.NoError(t, s.WriteProteoforms(nil))
}
