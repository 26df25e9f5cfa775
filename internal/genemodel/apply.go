package genemodel

import (
	"github.com/acesnik/ProteoformDatabaseEngine-1/internal/interval"
	"github.com/acesnik/ProteoformDatabaseEngine-1/internal/variant"
)

// Clone returns a deep copy of the transcript sharing only the gene
// back-pointer. Derived copies carry their own exon sequences, regions,
// and annotation notes; caches start empty.
func (t *Transcript) Clone() *Transcript {
	c := &Transcript{
		Interval: t.Interval.Copy(),
		ID:       t.ID,
		Version:  t.Version,
		Gene:     t.Gene,
	}

	c.Exons = make([]*Exon, len(t.Exons))
	for i, e := range t.Exons {
		c.Exons[i] = &Exon{Interval: e.Interval.Copy(), Seq: e.Seq}
	}
	c.CDS = make([]*CDSSegment, len(t.CDS))
	for i, s := range t.CDS {
		c.CDS[i] = &CDSSegment{Interval: s.Interval.Copy()}
	}
	c.UTRs = make([]*UTR, len(t.UTRs))
	for i, u := range t.UTRs {
		c.UTRs[i] = &UTR{Interval: u.Interval.Copy(), Kind: u.Kind}
	}
	c.Introns = make([]*Intron, len(t.Introns))
	for i, in := range t.Introns {
		c.Introns[i] = &Intron{Interval: in.Interval.Copy()}
	}
	if t.Upstream != nil {
		c.Upstream = &Flank{Interval: t.Upstream.Interval.Copy(), Kind: FlankUpstream, Transcript: c}
	}
	if t.Downstream != nil {
		c.Downstream = &Flank{Interval: t.Downstream.Interval.Copy(), Kind: FlankDownstream, Transcript: c}
	}

	c.VariantNotes = append([]string(nil), t.VariantNotes...)
	return c
}

// ApplyVariant returns a derived transcript with the given allele
// substituted at the variant's position. The receiver is never modified.
// The allele is given in forward-strand orientation, matching the exon
// sequences. Length differences shift every feature to the right of the
// edit. Variants landing outside every exon derive an unedited copy.
func (t *Transcript) ApplyVariant(v *variant.Variant, allele string) *Transcript {
	// Coding-span membership is judged against the pre-edit coordinates.
	cdsLo, cdsHi := t.CDSBoundsGenomic()
	inCoding := v.End() >= cdsLo && v.Pos <= cdsHi

	c := t.Clone()

	var edited *Exon
	for _, e := range c.Exons {
		if e.Contains(v.Pos) {
			edited = e
			break
		}
	}
	if edited == nil {
		return c
	}

	// An exon without sequence (chromosome missing from the genome) has
	// nothing to edit.
	off := v.Pos - edited.Start
	if off >= int64(len(edited.Seq)) {
		return c
	}
	refEnd := off + int64(len(v.Ref))
	if refEnd > int64(len(edited.Seq)) {
		refEnd = int64(len(edited.Seq))
	}
	edited.Seq = edited.Seq[:off] + allele + edited.Seq[refEnd:]

	diff := int64(len(allele)) - (refEnd - off)
	if diff != 0 {
		shiftAfter(&c.Interval, v.Pos, diff)
		for _, e := range c.Exons {
			shiftAfter(&e.Interval, v.Pos, diff)
		}
		for _, s := range c.CDS {
			shiftAfter(&s.Interval, v.Pos, diff)
		}
		if c.Upstream != nil {
			shiftAfter(&c.Upstream.Interval, v.Pos, diff)
		}
		if c.Downstream != nil {
			shiftAfter(&c.Downstream.Interval, v.Pos, diff)
		}
	}

	// Untranslated regions and introns follow from the shifted exon and
	// coding-segment structure.
	c.UTRs = deriveUTRs(c)
	c.Introns = deriveIntrons(c)

	if inCoding {
		edited.AddVariant(v)
	}

	c.clearCaches()
	return c
}

// shiftAfter moves an interval right by diff when it starts after pos, or
// stretches its end when it covers pos.
func shiftAfter(iv *interval.Interval, pos, diff int64) {
	switch {
	case iv.Start > pos:
		iv.Start += diff
		iv.End += diff
	case iv.End >= pos:
		iv.End += diff
	}
}

// CodingVariants returns the variants recorded against exon bags, in exon
// order. These are the variants that were applied inside the coding span.
func (t *Transcript) CodingVariants() []*variant.Variant {
	var vs []*variant.Variant
	for _, e := range t.Exons {
		vs = append(vs, e.Variants()...)
	}
	return vs
}
