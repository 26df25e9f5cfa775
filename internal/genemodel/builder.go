package genemodel

import (
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/acesnik/ProteoformDatabaseEngine-1/internal/genome"
	"github.com/acesnik/ProteoformDatabaseEngine-1/internal/interval"
)

// DefaultFlankLength is how far upstream and downstream of a transcript
// variants are still considered relevant.
const DefaultFlankLength = 5000

// Builder assembles the feature model from a stream of annotation records.
// Records arrive in file order; a gene or transcript identifier change
// opens a new feature, and exon and CDS records attach to the open
// transcript. GTF files without explicit gene or transcript lines get
// those features synthesized from the first child record.
type Builder struct {
	genome      *genome.Genome
	logger      *zap.Logger
	flankLength int64

	genes             []*Gene
	currentGene       *Gene
	currentTranscript *Transcript
}

// NewBuilder creates a builder over the given reference genome.
func NewBuilder(g *genome.Genome, logger *zap.Logger) *Builder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Builder{genome: g, logger: logger, flankLength: DefaultFlankLength}
}

// SetFlankLength overrides the upstream/downstream flank size.
func (b *Builder) SetFlankLength(n int64) {
	if n >= 0 {
		b.flankLength = n
	}
}

// Consume adds one feature record to the model under construction.
func (b *Builder) Consume(rec *FeatureRecord) error {
	switch rec.Kind {
	case KindGene:
		b.openGene(rec)
	case KindTranscript:
		b.ensureGene(rec)
		b.openTranscript(rec)
	case KindExon:
		t, err := b.ensureTranscript(rec)
		if err != nil {
			return err
		}
		t.Exons = append(t.Exons, &Exon{
			Interval: interval.New(rec.Chrom, rec.Strand, rec.Start, rec.End),
		})
	case KindCDS:
		t, err := b.ensureTranscript(rec)
		if err != nil {
			return err
		}
		t.CDS = append(t.CDS, &CDSSegment{
			Interval: interval.New(rec.Chrom, rec.Strand, rec.Start, rec.End),
		})
	}
	return nil
}

func (b *Builder) openGene(rec *FeatureRecord) {
	g := NewGene(rec)
	b.genes = append(b.genes, g)
	b.currentGene = g
	b.currentTranscript = nil
}

func (b *Builder) openTranscript(rec *FeatureRecord) {
	t := NewTranscript(rec)
	b.currentGene.AddTranscript(t)
	b.currentTranscript = t
}

// ensureGene opens a gene for the record when none is open or the gene
// identifier changed.
func (b *Builder) ensureGene(rec *FeatureRecord) {
	if b.currentGene != nil && b.currentGene.ID == rec.GeneID() {
		return
	}
	b.openGene(rec)
}

// ensureTranscript returns the open transcript for the record, opening one
// (and a gene) when the transcript identifier changed or none is open.
func (b *Builder) ensureTranscript(rec *FeatureRecord) (*Transcript, error) {
	id := rec.TranscriptID()
	if id == "" {
		return nil, fmt.Errorf("%s record has no transcript identifier", rec.Kind)
	}
	if b.currentTranscript != nil && b.currentTranscript.ID == id {
		return b.currentTranscript, nil
	}
	b.ensureGene(rec)
	b.openTranscript(rec)
	return b.currentTranscript, nil
}

// Finish derives the remaining model structure and builds the overlap
// index. After Finish the model is read-only apart from variant
// attachment.
func (b *Builder) Finish() (*Model, error) {
	forest := interval.NewForest()
	model := &Model{Genome: b.genome, Genes: b.genes, Forest: forest}

	for _, g := range b.genes {
		if b.genome != nil {
			g.Chromosome = b.genome.Chromosome(g.Chrom)
			if g.Chromosome == nil {
				b.logger.Warn("gene on chromosome absent from genome",
					zap.String("gene", g.ID),
					zap.String("chrom", g.Chrom))
			}
		}
		for _, t := range g.Transcripts {
			b.finishTranscript(t, g.Chromosome)
			if err := forest.Add(t); err != nil {
				return nil, fmt.Errorf("index transcript %s: %w", t.ID, err)
			}
			if t.Upstream != nil && t.Upstream.Valid() {
				if err := forest.Add(t.Upstream); err != nil {
					return nil, fmt.Errorf("index upstream of %s: %w", t.ID, err)
				}
			}
			if t.Downstream != nil && t.Downstream.Valid() {
				if err := forest.Add(t.Downstream); err != nil {
					return nil, fmt.Errorf("index downstream of %s: %w", t.ID, err)
				}
			}
		}
		if err := forest.Add(g); err != nil {
			return nil, fmt.Errorf("index gene %s: %w", g.ID, err)
		}
	}

	model.Intergenics = b.deriveIntergenics()
	for _, ig := range model.Intergenics {
		if err := forest.Add(ig); err != nil {
			return nil, fmt.Errorf("index intergenic %s: %w", ig.ID, err)
		}
	}

	forest.Build()
	return model, nil
}

// finishTranscript sorts exons and coding segments into transcription
// order, loads exon sequences, and derives UTRs, introns, and flanks.
func (b *Builder) finishTranscript(t *Transcript, chrom *genome.Chromosome) {
	t.sortExons()
	t.sortCDS()

	for _, e := range t.Exons {
		e.Seq = chrom.Subsequence(e.Start, e.End)
	}

	t.UTRs = deriveUTRs(t)
	t.Introns = deriveIntrons(t)

	var chromLen int64 = -1
	if chrom != nil {
		chromLen = chrom.Length()
	}
	t.Upstream, t.Downstream = deriveFlanks(t, b.flankLength, chromLen)
}

// deriveUTRs computes untranslated regions from the exons and the
// outermost coding segment bounds. Transcripts without annotated coding
// segments have no UTRs.
func deriveUTRs(t *Transcript) []*UTR {
	if len(t.CDS) == 0 {
		return nil
	}

	cdsMin, cdsMax := cdsGenomicBounds(t)

	leftKind, rightKind := UTR5, UTR3
	if t.IsReverse() {
		leftKind, rightKind = UTR3, UTR5
	}

	var utrs []*UTR
	for _, e := range t.Exons {
		if e.Start < cdsMin {
			end := e.End
			if end >= cdsMin {
				end = cdsMin - 1
			}
			utrs = append(utrs, &UTR{
				Interval: interval.New(t.Chrom, t.Strand, e.Start, end),
				Kind:     leftKind,
			})
		}
		if e.End > cdsMax {
			start := e.Start
			if start <= cdsMax {
				start = cdsMax + 1
			}
			utrs = append(utrs, &UTR{
				Interval: interval.New(t.Chrom, t.Strand, start, e.End),
				Kind:     rightKind,
			})
		}
	}
	return utrs
}

// cdsGenomicBounds returns the genomic min start and max end over the
// transcript's coding segments.
func cdsGenomicBounds(t *Transcript) (int64, int64) {
	min, max := t.CDS[0].Start, t.CDS[0].End
	for _, c := range t.CDS[1:] {
		if c.Start < min {
			min = c.Start
		}
		if c.End > max {
			max = c.End
		}
	}
	return min, max
}

// deriveIntrons computes the gaps between consecutive exons. Abutting
// exons produce no intron.
func deriveIntrons(t *Transcript) []*Intron {
	if len(t.Exons) < 2 {
		return nil
	}

	byStart := make([]*Exon, len(t.Exons))
	copy(byStart, t.Exons)
	sort.Slice(byStart, func(i, j int) bool {
		return byStart[i].Start < byStart[j].Start
	})

	var introns []*Intron
	for i := 1; i < len(byStart); i++ {
		start := byStart[i-1].End + 1
		end := byStart[i].Start - 1
		if start > end {
			continue
		}
		introns = append(introns, &Intron{
			Interval: interval.New(t.Chrom, t.Strand, start, end),
		})
	}
	return introns
}

// deriveFlanks computes the upstream and downstream regions of length n,
// clipped to chromosome bounds. chromLen < 0 means the length is unknown
// and only the lower bound is clipped.
func deriveFlanks(t *Transcript, n, chromLen int64) (*Flank, *Flank) {
	if n == 0 {
		return nil, nil
	}

	leftStart := t.Start - n
	if leftStart < 1 {
		leftStart = 1
	}
	rightEnd := t.End + n
	if chromLen >= 0 && rightEnd > chromLen {
		rightEnd = chromLen
	}

	left := interval.New(t.Chrom, t.Strand, leftStart, t.Start-1)
	right := interval.New(t.Chrom, t.Strand, t.End+1, rightEnd)

	up := &Flank{Interval: left, Kind: FlankUpstream, Transcript: t}
	down := &Flank{Interval: right, Kind: FlankDownstream, Transcript: t}
	if t.IsReverse() {
		up.Interval, down.Interval = right, left
	}
	return up, down
}

// deriveIntergenics computes spans between consecutive same-strand genes
// on each chromosome.
func (b *Builder) deriveIntergenics() []*Intergenic {
	type key struct {
		chrom  string
		strand interval.Strand
	}
	groups := make(map[key][]*Gene)
	for _, g := range b.genes {
		k := key{interval.NormalizeChrom(g.Chrom), g.Strand}
		groups[k] = append(groups[k], g)
	}

	var result []*Intergenic
	for k, genes := range groups {
		sort.Slice(genes, func(i, j int) bool {
			return genes[i].Start < genes[j].Start
		})
		for i := 1; i < len(genes); i++ {
			start := genes[i-1].End + 1
			end := genes[i].Start - 1
			if start > end {
				continue
			}
			result = append(result, &Intergenic{
				Interval: interval.New(genes[i].Chrom, k.strand, start, end),
				ID:       fmt.Sprintf("intergenic_%s_%s_%d", genes[i-1].ID, genes[i].ID, start),
			})
		}
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Chrom != result[j].Chrom {
			return result[i].Chrom < result[j].Chrom
		}
		return result[i].Start < result[j].Start
	})
	return result
}
