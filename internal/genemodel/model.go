package genemodel

import (
	"fmt"

	"github.com/acesnik/ProteoformDatabaseEngine-1/internal/genome"
	"github.com/acesnik/ProteoformDatabaseEngine-1/internal/interval"
	"github.com/acesnik/ProteoformDatabaseEngine-1/internal/variant"
)

// Model is the finished feature model: genes with their derived structure,
// intergenic spans, and the overlap index over all of them.
type Model struct {
	Genome      *genome.Genome
	Genes       []*Gene
	Intergenics []*Intergenic
	Forest      *interval.Forest
}

// Transcripts returns every transcript in the model, in gene order.
func (m *Model) Transcripts() []*Transcript {
	var ts []*Transcript
	for _, g := range m.Genes {
		ts = append(ts, g.Transcripts...)
	}
	return ts
}

// Transcript looks up a transcript by identifier, or nil.
func (m *Model) Transcript(id string) *Transcript {
	for _, g := range m.Genes {
		for _, t := range g.Transcripts {
			if t.ID == id || t.Accession() == id {
				return t
			}
		}
	}
	return nil
}

// AttachVariants stabs the index with every variant's reference span and
// appends the variant to each overlapped feature's bag. Returns the number
// of variants that hit at least one feature.
func (m *Model) AttachVariants(vs []*variant.Variant) (int, error) {
	attached := 0
	for _, v := range vs {
		hits, err := m.Forest.StabRange(v.Chrom, v.Pos, v.End())
		if err != nil {
			return attached, fmt.Errorf("attach variant %s: %w", v.ID(), err)
		}
		for _, hit := range hits {
			hit.Span().AddVariant(v)
		}
		if len(hits) > 0 {
			attached++
		}
	}
	return attached, nil
}
