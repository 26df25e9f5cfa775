package genemodel

import (
	"github.com/acesnik/ProteoformDatabaseEngine-1/internal/genome"
	"github.com/acesnik/ProteoformDatabaseEngine-1/internal/interval"
)

// Gene is a top-level feature owning one or more transcripts.
type Gene struct {
	interval.Interval

	ID          string
	Chromosome  *genome.Chromosome
	Transcripts []*Transcript
	Attributes  map[string]string

	tindex *interval.Forest
}

// NewGene creates a gene from its defining record.
func NewGene(rec *FeatureRecord) *Gene {
	return &Gene{
		Interval:   interval.New(rec.Chrom, rec.Strand, rec.Start, rec.End),
		ID:         rec.GeneID(),
		Attributes: rec.Attributes,
	}
}

// AddTranscript attaches a transcript to the gene and widens the gene span
// to cover it.
func (g *Gene) AddTranscript(t *Transcript) {
	t.Gene = g
	g.Transcripts = append(g.Transcripts, t)
	if t.Start < g.Start {
		g.Start = t.Start
	}
	if t.End > g.End {
		g.End = t.End
	}
}

// TranscriptsAt returns the gene's transcripts covering a genomic
// position. The index is built lazily on first use.
func (g *Gene) TranscriptsAt(pos int64) ([]*Transcript, error) {
	if g.tindex == nil {
		f := interval.NewForest()
		for _, t := range g.Transcripts {
			if err := f.Add(t); err != nil {
				return nil, err
			}
		}
		f.Build()
		g.tindex = f
	}
	hits, err := g.tindex.Stab(g.Chrom, pos)
	if err != nil {
		return nil, err
	}
	ts := make([]*Transcript, 0, len(hits))
	for _, h := range hits {
		if t, ok := h.(*Transcript); ok {
			ts = append(ts, t)
		}
	}
	return ts, nil
}

// Mitochondrial reports whether the gene lies on a mitochondrial
// chromosome.
func (g *Gene) Mitochondrial() bool {
	return g.Chromosome != nil && g.Chromosome.Mitochondrial
}

// Intergenic is a span between two consecutive same-strand genes. It exists
// so variants landing between genes still have a feature to attach to.
type Intergenic struct {
	interval.Interval

	ID string
}
