package effect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acesnik/ProteoformDatabaseEngine-1/internal/genemodel"
	"github.com/acesnik/ProteoformDatabaseEngine-1/internal/genome"
	"github.com/acesnik/ProteoformDatabaseEngine-1/internal/variant"
)

// Chromosome 1 carries a two-exon forward gene:
// 5'UTR 1-3, CDS 4-9 and 16-21 (ATG GGT / CGA TAA), intron 10-15, 3'UTR 22-27.
// Chromosome 2 carries a single-exon reverse gene whose coding sequence is
// ATGGGTCGATAA.
func testGenome() *genome.Genome {
	g := genome.New()
	g.Add(&genome.Chromosome{Name: "1", Seq: "GCCATGGGTGTAAGTCGATAAGCCGCC"})
	g.Add(&genome.Chromosome{Name: "2", Seq: "TTATCGACCCAT"})
	g.Add(&genome.Chromosome{Name: "MT", Seq: "ATGAGATGAGGG", Mitochondrial: true})
	return g
}

func buildTranscript(t *testing.T, lines []string, id string) *genemodel.Transcript {
	t.Helper()
	b := genemodel.NewBuilder(testGenome(), nil)
	for _, line := range lines {
		rec, err := genemodel.ParseGFFLine(line)
		require.NoError(t, err)
		require.NotNil(t, rec)
		require.NoError(t, b.Consume(rec))
	}
	m, err := b.Finish()
	require.NoError(t, err)
	tx := m.Transcript(id)
	require.NotNil(t, tx)
	return tx
}

var forwardLines = []string{
	"1\ttest\tgene\t1\t27\t.\t+\t.\t" + `gene_id "GENE1";`,
	"1\ttest\ttranscript\t1\t27\t.\t+\t.\t" + `gene_id "GENE1"; transcript_id "TX1";`,
	"1\ttest\texon\t1\t9\t.\t+\t.\t" + `gene_id "GENE1"; transcript_id "TX1";`,
	"1\ttest\texon\t16\t27\t.\t+\t.\t" + `gene_id "GENE1"; transcript_id "TX1";`,
	"1\ttest\tCDS\t4\t9\t.\t+\t.\t" + `gene_id "GENE1"; transcript_id "TX1";`,
	"1\ttest\tCDS\t16\t21\t.\t+\t.\t" + `gene_id "GENE1"; transcript_id "TX1";`,
}

var reverseLines = []string{
	"2\ttest\tgene\t1\t12\t.\t-\t.\t" + `gene_id "GENE2";`,
	"2\ttest\ttranscript\t1\t12\t.\t-\t.\t" + `gene_id "GENE2"; transcript_id "TX2";`,
	"2\ttest\texon\t1\t12\t.\t-\t.\t" + `gene_id "GENE2"; transcript_id "TX2";`,
	"2\ttest\tCDS\t1\t12\t.\t-\t.\t" + `gene_id "GENE2"; transcript_id "TX2";`,
}

func hom(chrom string, pos int64, ref, alt string) *variant.Variant {
	return &variant.Variant{
		Chrom: chrom, Pos: pos, Ref: ref,
		Allele1: alt, Allele2: alt,
		Genotype: variant.HomozygousAlt,
	}
}

func classify(t *testing.T, tx *genemodel.Transcript, v *variant.Variant) *VariantEffects {
	t.Helper()
	ve, err := NewClassifier(nil).Classify(tx, v)
	require.NoError(t, err)
	return ve
}

func TestClassifyCodonEffects(t *testing.T) {
	tx := buildTranscript(t, forwardLines, "TX1")

	tests := []struct {
		name       string
		v          *variant.Variant
		wantType   string
		wantClass  FunctionalClass
		refCodon   string
		altCodon   string
		proteinPos int64
	}{
		{"missense", hom("1", 7, "G", "T"), EffectMissense, ClassMissense, "GGT", "TGT", 2},
		{"synonymous", hom("1", 18, "A", "G"), EffectSynonymous, ClassSilent, "CGA", "CGG", 3},
		{"stop gained", hom("1", 16, "C", "T"), EffectStopGained, ClassNonsense, "CGA", "TGA", 3},
		{"stop lost", hom("1", 19, "T", "C"), EffectStopLost, ClassMissense, "TAA", "CAA", 4},
		{"start lost", hom("1", 4, "A", "C"), EffectStartLost, ClassMissense, "ATG", "CTG", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ve := classify(t, tx, tt.v)
			require.Len(t, ve.Effects, 1)
			e := ve.Effects[0]
			assert.Equal(t, tt.wantType, e.Type)
			assert.Equal(t, tt.wantClass, e.Class)
			assert.Equal(t, tt.refCodon, e.RefCodon)
			assert.Equal(t, tt.altCodon, e.AltCodon)
			assert.Equal(t, tt.proteinPos, e.ProteinPos)
			assert.Equal(t, tt.wantClass, ve.HighestClass())
		})
	}
}

func TestClassifyReverseStrandComplementsAllele(t *testing.T) {
	tx := buildTranscript(t, reverseLines, "TX2")

	// Coding base 5 sits at genomic position 8; the forward-strand C>G
	// reads as G>C on the transcript, turning GGT into GCT.
	ve := classify(t, tx, hom("2", 8, "C", "G"))
	require.Len(t, ve.Effects, 1)
	e := ve.Effects[0]
	assert.Equal(t, EffectMissense, e.Type)
	assert.Equal(t, "GGT", e.RefCodon)
	assert.Equal(t, "GCT", e.AltCodon)
	assert.Equal(t, byte('G'), e.RefAA)
	assert.Equal(t, byte('A'), e.AltAA)
	assert.Equal(t, int64(2), e.ProteinPos)
}

func TestClassifyNonCodingRegions(t *testing.T) {
	tx := buildTranscript(t, forwardLines, "TX1")

	tests := []struct {
		name      string
		v         *variant.Variant
		wantType  string
		wantClass FunctionalClass
	}{
		{"5' UTR", hom("1", 2, "C", "T"), Effect5PrimeUTR, ClassNone},
		{"3' UTR", hom("1", 25, "G", "T"), Effect3PrimeUTR, ClassNone},
		{"deep intron", hom("1", 13, "A", "T"), EffectIntron, ClassNone},
		{"splice site left", hom("1", 10, "G", "A"), EffectSpliceSite, ClassNone},
		{"splice site right", hom("1", 15, "T", "C"), EffectSpliceSite, ClassNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ve := classify(t, tx, tt.v)
			require.Len(t, ve.Effects, 1)
			assert.Equal(t, tt.wantType, ve.Effects[0].Type)
			assert.Equal(t, tt.wantClass, ve.Effects[0].Class)
		})
	}
}

func TestClassifyFlanks(t *testing.T) {
	lines := []string{
		"1\ttest\tgene\t10\t20\t.\t+\t.\t" + `gene_id "G";`,
		"1\ttest\ttranscript\t10\t20\t.\t+\t.\t" + `gene_id "G"; transcript_id "T";`,
		"1\ttest\texon\t10\t20\t.\t+\t.\t" + `gene_id "G"; transcript_id "T";`,
	}
	b := genemodel.NewBuilder(testGenome(), nil)
	b.SetFlankLength(5)
	for _, line := range lines {
		rec, err := genemodel.ParseGFFLine(line)
		require.NoError(t, err)
		require.NoError(t, b.Consume(rec))
	}
	m, err := b.Finish()
	require.NoError(t, err)
	tx := m.Transcript("T")

	ve := classify(t, tx, hom("1", 7, "G", "T"))
	require.Len(t, ve.Effects, 1)
	assert.Equal(t, EffectUpstream, ve.Effects[0].Type)

	ve = classify(t, tx, hom("1", 23, "C", "T"))
	require.Len(t, ve.Effects, 1)
	assert.Equal(t, EffectDownstream, ve.Effects[0].Type)
}

func TestClassifyIndels(t *testing.T) {
	tx := buildTranscript(t, forwardLines, "TX1")

	ve := classify(t, tx, hom("1", 7, "G", "GA"))
	require.Len(t, ve.Effects, 1)
	assert.Equal(t, EffectFrameshift, ve.Effects[0].Type)
	assert.Equal(t, ClassMissense, ve.Effects[0].Class)
	assert.Equal(t, ImpactHigh, ve.Effects[0].Impact)

	ve = classify(t, tx, hom("1", 7, "G", "GAAA"))
	require.Len(t, ve.Effects, 1)
	assert.Equal(t, EffectCodonChange, ve.Effects[0].Type)
}

func TestClassifyMultiExonSubstitution(t *testing.T) {
	tx := buildTranscript(t, forwardLines, "TX1")

	// Equal-length substitution from exon one across the intron into exon
	// two collapses to a single whole-codon-change effect.
	v := hom("1", 8, "GTGTAAGTC", "AAAAAAAAA")
	ve := classify(t, tx, v)
	require.NotEmpty(t, ve.Effects)
	assert.Equal(t, EffectCodonChange, ve.Effects[0].Type)
	assert.Equal(t, ClassMissense, ve.Effects[0].Class)
}

func TestClassifyTranscriptAblation(t *testing.T) {
	tx := buildTranscript(t, forwardLines, "TX1")

	v := hom("1", 1, "G", "<DEL>")
	v.Structural = true
	v.Ref = "GCCATGGGTGTAAGTCGATAAGCCGCCXX"

	ve := classify(t, tx, v)
	require.Len(t, ve.Effects, 1)
	assert.Equal(t, EffectTranscriptAblation, ve.Effects[0].Type)
	assert.Equal(t, ImpactHigh, ve.Effects[0].Impact)
}

func TestClassifyWarnings(t *testing.T) {
	// Single coding segment with no stop codon.
	lines := []string{
		"1\ttest\tgene\t4\t9\t.\t+\t.\t" + `gene_id "G";`,
		"1\ttest\ttranscript\t4\t9\t.\t+\t.\t" + `gene_id "G"; transcript_id "T";`,
		"1\ttest\texon\t4\t9\t.\t+\t.\t" + `gene_id "G"; transcript_id "T";`,
		"1\ttest\tCDS\t4\t9\t.\t+\t.\t" + `gene_id "G"; transcript_id "T";`,
	}
	tx := buildTranscript(t, lines, "T")

	ve := classify(t, tx, hom("1", 7, "G", "T"))
	require.Len(t, ve.Effects, 1)
	assert.Contains(t, ve.Effects[0].Warnings, WarningNoStopCodon)
}

func TestAnnotationString(t *testing.T) {
	tx := buildTranscript(t, forwardLines, "TX1")

	v := &variant.Variant{
		Chrom: "1", Pos: 7, Ref: "G",
		Allele1: "G", Allele2: "T",
		Genotype: variant.Heterozygous,
	}
	ve := classify(t, tx, v)

	ann := ve.Annotation()
	assert.Contains(t, ann, "1:7 G>T")
	assert.Contains(t, ann, "missense_variant")
	assert.Contains(t, ann, "MISSENSE")
	assert.Contains(t, ann, "HETEROZYGOUS")
	assert.Contains(t, ann, "p.G2C")
}

func TestHighestClassOrdering(t *testing.T) {
	assert.True(t, ClassNonsense > ClassMissense)
	assert.True(t, ClassMissense > ClassSilent)
	assert.True(t, ClassSilent > ClassNone)
}
