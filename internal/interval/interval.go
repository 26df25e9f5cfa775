// Package interval provides strand-aware genomic intervals and a
// build-once/read-many per-chromosome overlap index.
package interval

import (
	"strings"

	"github.com/acesnik/ProteoformDatabaseEngine-1/internal/variant"
)

// Strand is the orientation of a genomic interval.
type Strand int8

const (
	StrandUnknown Strand = 0
	StrandForward Strand = 1
	StrandReverse Strand = -1
)

// ParseStrand converts a strand column value to a Strand.
func ParseStrand(s string) Strand {
	switch s {
	case "+":
		return StrandForward
	case "-":
		return StrandReverse
	default:
		return StrandUnknown
	}
}

func (s Strand) String() string {
	switch s {
	case StrandForward:
		return "+"
	case StrandReverse:
		return "-"
	default:
		return "."
	}
}

// Interval is a strand-aware genomic span with 1-based inclusive
// coordinates. Coordinates are immutable once built except through derived
// copies; the variant bag is append-only.
type Interval struct {
	Chrom      string
	Strand     Strand
	Start, End int64

	variants []*variant.Variant
}

// New returns an interval spanning [start, end] on the given chromosome.
func New(chrom string, strand Strand, start, end int64) Interval {
	return Interval{Chrom: chrom, Strand: strand, Start: start, End: end}
}

// Span returns the interval itself; embedding types inherit this to satisfy
// the Entity interface.
func (iv *Interval) Span() *Interval {
	return iv
}

// Valid reports whether start <= end.
func (iv *Interval) Valid() bool {
	return iv.Start <= iv.End
}

// Length returns the number of bases covered.
func (iv *Interval) Length() int64 {
	return iv.End - iv.Start + 1
}

// Contains reports whether pos lies within the interval.
func (iv *Interval) Contains(pos int64) bool {
	return pos >= iv.Start && pos <= iv.End
}

// Intersects reports whether [start, end] overlaps the interval.
func (iv *Interval) Intersects(start, end int64) bool {
	return start <= iv.End && end >= iv.Start
}

// ContainsInterval reports whether o lies entirely within the interval.
func (iv *Interval) ContainsInterval(o *Interval) bool {
	return o.Start >= iv.Start && o.End <= iv.End
}

// IntersectsVariant reports whether the variant's reference span overlaps
// the interval.
func (iv *Interval) IntersectsVariant(v *variant.Variant) bool {
	return iv.Intersects(v.Pos, v.End())
}

// ContainsVariant reports whether the variant's reference span lies
// entirely within the interval.
func (iv *Interval) ContainsVariant(v *variant.Variant) bool {
	return v.Pos >= iv.Start && v.End() <= iv.End
}

// Copy returns an independent copy of the interval, including its variant
// bag. Used when deriving a new feature from variant application.
func (iv *Interval) Copy() Interval {
	c := *iv
	c.variants = append([]*variant.Variant(nil), iv.variants...)
	return c
}

// AddVariant appends a variant to the interval's bag.
func (iv *Interval) AddVariant(v *variant.Variant) {
	iv.variants = append(iv.variants, v)
}

// Variants returns the attached variants.
func (iv *Interval) Variants() []*variant.Variant {
	return iv.variants
}

// VariantCount returns the number of attached variants.
func (iv *Interval) VariantCount() int {
	return len(iv.variants)
}

// NormalizeChrom normalizes a chromosome name for index lookup: the "chr"
// prefix is stripped case-insensitively and the remainder upper-cased, so
// "chr1", "Chr1" and "1" key the same tree.
func NormalizeChrom(chrom string) string {
	if len(chrom) > 3 && strings.EqualFold(chrom[:3], "chr") {
		chrom = chrom[3:]
	}
	return strings.ToUpper(chrom)
}
