package genemodel

import (
	"sort"
	"strings"

	"github.com/acesnik/ProteoformDatabaseEngine-1/internal/dna"
	"github.com/acesnik/ProteoformDatabaseEngine-1/internal/interval"
)

// Exon is a transcribed segment carrying its reference (or edited)
// forward-strand sequence.
type Exon struct {
	interval.Interval

	Seq string
}

// CDSSegment is an annotated coding segment of a transcript.
type CDSSegment struct {
	interval.Interval
}

// UTRKind distinguishes the two untranslated ends of a transcript.
type UTRKind int

const (
	UTR5 UTRKind = iota
	UTR3
)

func (k UTRKind) String() string {
	if k == UTR5 {
		return "5'UTR"
	}
	return "3'UTR"
}

// UTR is an untranslated exonic region derived from exon and CDS bounds.
type UTR struct {
	interval.Interval

	Kind UTRKind
}

// Intron is a gap between two consecutive exons.
type Intron struct {
	interval.Interval
}

// FlankKind distinguishes the regions immediately outside a transcript.
type FlankKind int

const (
	FlankUpstream FlankKind = iota
	FlankDownstream
)

// Flank is the region upstream or downstream of a transcript, relative to
// its strand. It is indexed separately so variants outside the transcript
// span still reach it.
type Flank struct {
	interval.Interval

	Kind       FlankKind
	Transcript *Transcript
}

// Transcript is a spliced product of a gene. Exons are held in strand
// order after Finish: ascending start on the forward strand, descending
// end on the reverse strand. Derived regions and sequence caches are
// populated lazily or at Finish.
type Transcript struct {
	interval.Interval

	ID      string
	Version string
	Gene    *Gene

	Exons   []*Exon
	CDS     []*CDSSegment
	UTRs    []*UTR
	Introns []*Intron

	Upstream   *Flank
	Downstream *Flank

	// VariantNotes accumulates one human-readable annotation per variant
	// applied while deriving this transcript.
	VariantNotes []string

	codingSeq    string
	codingSeqOK  bool
	cdsLo, cdsHi int64 // genomic min/max of the coding span
	cdsBoundsOK  bool
	cdsToGenomic []int64
}

// NewTranscript creates a transcript from its defining record.
func NewTranscript(rec *FeatureRecord) *Transcript {
	return &Transcript{
		Interval: interval.New(rec.Chrom, rec.Strand, rec.Start, rec.End),
		ID:       rec.TranscriptID(),
		Version:  rec.TranscriptVersion(),
	}
}

// Accession returns the versioned transcript identifier.
func (t *Transcript) Accession() string {
	if t.Version == "" {
		return t.ID
	}
	return t.ID + "." + t.Version
}

// IsReverse reports whether the transcript lies on the reverse strand.
func (t *Transcript) IsReverse() bool {
	return t.Strand == interval.StrandReverse
}

// sortExons orders exons in transcription order.
func (t *Transcript) sortExons() {
	if t.IsReverse() {
		sort.Slice(t.Exons, func(i, j int) bool {
			return t.Exons[i].End > t.Exons[j].End
		})
	} else {
		sort.Slice(t.Exons, func(i, j int) bool {
			return t.Exons[i].Start < t.Exons[j].Start
		})
	}
}

// sortCDS orders coding segments in transcription order.
func (t *Transcript) sortCDS() {
	if t.IsReverse() {
		sort.Slice(t.CDS, func(i, j int) bool {
			return t.CDS[i].End > t.CDS[j].End
		})
	} else {
		sort.Slice(t.CDS, func(i, j int) bool {
			return t.CDS[i].Start < t.CDS[j].Start
		})
	}
}

// UTR5Length returns the summed length of 5' UTR regions.
func (t *Transcript) UTR5Length() int64 {
	var n int64
	for _, u := range t.UTRs {
		if u.Kind == UTR5 {
			n += u.Length()
		}
	}
	return n
}

// UTR3Length returns the summed length of 3' UTR regions.
func (t *Transcript) UTR3Length() int64 {
	var n int64
	for _, u := range t.UTRs {
		if u.Kind == UTR3 {
			n += u.Length()
		}
	}
	return n
}

// MRNALength returns the summed exon length.
func (t *Transcript) MRNALength() int64 {
	var n int64
	for _, e := range t.Exons {
		n += e.Length()
	}
	return n
}

// MRNASequence assembles the spliced transcript sequence in 5'-to-3'
// orientation. Reverse-strand exon sequences are reverse-complemented.
// Returns "" when any exon sequence is missing.
func (t *Transcript) MRNASequence() string {
	var b strings.Builder
	for _, e := range t.Exons {
		if e.Seq == "" {
			return ""
		}
		if t.IsReverse() {
			b.WriteString(dna.ReverseComplement(e.Seq))
		} else {
			b.WriteString(e.Seq)
		}
	}
	return b.String()
}

// CodingSequence returns the transcript's coding sequence: the spliced
// mRNA with the 5' and 3' UTR lengths trimmed. The result is cached on
// first use.
func (t *Transcript) CodingSequence() string {
	if t.codingSeqOK {
		return t.codingSeq
	}
	t.codingSeqOK = true

	mrna := t.MRNASequence()
	u5 := int(t.UTR5Length())
	u3 := int(t.UTR3Length())
	if mrna == "" || u5+u3 >= len(mrna) {
		t.codingSeq = ""
		return ""
	}
	t.codingSeq = mrna[u5 : len(mrna)-u3]
	return t.codingSeq
}

// clearCaches drops memoized sequence and coordinate state after the
// transcript's structure changes.
func (t *Transcript) clearCaches() {
	t.codingSeq = ""
	t.codingSeqOK = false
	t.cdsBoundsOK = false
	t.cdsToGenomic = nil
}
