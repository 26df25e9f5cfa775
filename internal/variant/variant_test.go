package variant

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenotypeString(t *testing.T) {
	tests := []struct {
		g    Genotype
		want string
	}{
		{HomozygousRef, "HOMOZYGOUS_REF"},
		{Heterozygous, "HETEROZYGOUS"},
		{HomozygousAlt, "HOMOZYGOUS_ALT"},
		{HomozygousAlt2, "HOMOZYGOUS_ALT2"},
		{GenotypeUnknown, "UNKNOWN"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.g.String())
	}
}

func TestVariantEnd(t *testing.T) {
	tests := []struct {
		name string
		v    *Variant
		want int64
	}{
		{"SNV", &Variant{Pos: 100, Ref: "G", Allele2: "T"}, 100},
		{"deletion", &Variant{Pos: 100, Ref: "GAT", Allele2: "G"}, 102},
		{"insertion", &Variant{Pos: 100, Ref: "G", Allele2: "GAT"}, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.v.End())
		})
	}
}

func TestVariantShape(t *testing.T) {
	snv := &Variant{Pos: 100, Ref: "G", Allele2: "T"}
	assert.True(t, snv.IsSNV())
	assert.False(t, snv.IsMNV())
	assert.False(t, snv.IsIndel())

	mnv := &Variant{Pos: 100, Ref: "GA", Allele2: "TC"}
	assert.True(t, mnv.IsMNV())
	assert.False(t, mnv.IsIndel())

	del := &Variant{Pos: 100, Ref: "GA", Allele2: "G"}
	assert.True(t, del.IsIndel())
	ins := &Variant{Pos: 100, Ref: "G", Allele2: "GA"}
	assert.True(t, ins.IsIndel())
}

func TestSwapAlleles(t *testing.T) {
	v := &Variant{
		Chrom: "1", Pos: 100, Ref: "G",
		Allele1: "T", Allele2: "C",
		Depth1: 12, Depth2: 30,
		Genotype: Heterozygous,
	}
	sw := v.SwapAlleles()

	assert.Equal(t, "C", sw.Allele1)
	assert.Equal(t, "T", sw.Allele2)
	assert.Equal(t, 30, sw.Depth1)
	assert.Equal(t, 12, sw.Depth2)
	assert.Equal(t, Heterozygous, sw.Genotype)

	// The original is untouched.
	assert.Equal(t, "T", v.Allele1)
	assert.Equal(t, "C", v.Allele2)
}

func TestVariantID(t *testing.T) {
	v := &Variant{Chrom: "chr1", Pos: 100, Ref: "G", Allele2: "T"}
	assert.Equal(t, "chr1_100_G/T", v.ID())
}
