// Package variant models called sequence variants and parses VCF input.
package variant

import "strconv"

// Genotype classifies the two called alleles at a site.
type Genotype int

const (
	GenotypeUnknown Genotype = iota
	HomozygousRef
	Heterozygous
	HomozygousAlt
	HomozygousAlt2
)

// String returns the canonical genotype label used in annotation strings.
func (g Genotype) String() string {
	switch g {
	case HomozygousRef:
		return "HOMOZYGOUS_REF"
	case Heterozygous:
		return "HETEROZYGOUS"
	case HomozygousAlt:
		return "HOMOZYGOUS_ALT"
	case HomozygousAlt2:
		return "HOMOZYGOUS_ALT2"
	default:
		return "UNKNOWN"
	}
}

// Variant represents a single diploid variant call. It is immutable once
// parsed; SwapAlleles returns a modified clone rather than mutating.
type Variant struct {
	Chrom   string
	Pos     int64 // 1-based genomic position
	Ref     string
	Allele1 string
	Allele2 string
	Depth1  int
	Depth2  int

	Genotype   Genotype
	Structural bool
	Mixed      bool
}

// Alt returns the allele applied on the default (second-allele) path.
func (v *Variant) Alt() string {
	return v.Allele2
}

// End returns the last genomic position covered by the reference allele.
func (v *Variant) End() int64 {
	if len(v.Ref) == 0 {
		return v.Pos
	}
	return v.Pos + int64(len(v.Ref)) - 1
}

// IsSNV returns true for a single-base substitution.
func (v *Variant) IsSNV() bool {
	return len(v.Ref) == 1 && len(v.Allele2) == 1 && !v.Structural
}

// IsMNV returns true for a multi-base substitution of equal length.
func (v *Variant) IsMNV() bool {
	return len(v.Ref) > 1 && len(v.Allele2) == len(v.Ref) && !v.Structural
}

// IsIndel returns true when the alternate allele changes sequence length.
func (v *Variant) IsIndel() bool {
	return len(v.Ref) != len(v.Allele2) && !v.Structural
}

// IsHeterozygous returns true when the two called alleles differ.
func (v *Variant) IsHeterozygous() bool {
	return v.Genotype == Heterozygous
}

// SwapAlleles returns a clone with the two alleles (and their depths)
// exchanged. Used to apply the first allele of a heterozygous call through
// the same second-allele code path.
func (v *Variant) SwapAlleles() *Variant {
	w := *v
	w.Allele1, w.Allele2 = v.Allele2, v.Allele1
	w.Depth1, w.Depth2 = v.Depth2, v.Depth1
	return &w
}

// ID returns a compact identifier of the form chrom_pos_ref/alt.
func (v *Variant) ID() string {
	return v.Chrom + "_" + strconv.FormatInt(v.Pos, 10) + "_" + v.Ref + "/" + v.Allele2
}
