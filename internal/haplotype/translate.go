package haplotype

import (
	"strings"

	"github.com/acesnik/ProteoformDatabaseEngine-1/internal/dna"
	"github.com/acesnik/ProteoformDatabaseEngine-1/internal/genemodel"
)

// Protein is one translated proteoform.
type Protein struct {
	Accession  string
	Organism   string
	Sequence   string
	Annotation string
}

// Translate translates a transcript's coding sequence. Mitochondrial
// genes use the vertebrate mitochondrial table. Internal stops that
// correspond to a selenocysteine in the curated sequence are recoded as
// 'U'; the sequence is then truncated at the first remaining stop.
// Returns nil when the transcript has no translatable coding sequence.
func (e *Expander) Translate(t *genemodel.Transcript) *Protein {
	cs := t.CodingSequence()
	if len(cs) < 3 {
		return nil
	}

	mito := t.Gene != nil && t.Gene.Mitochondrial()
	seq := dna.Translate(cs, mito)

	if curated, ok := e.seleno[t.Accession()]; ok {
		seq = recodeSelenocysteines(seq, curated)
	}
	if idx := strings.IndexByte(seq, '*'); idx >= 0 {
		seq = seq[:idx]
	}
	if seq == "" {
		return nil
	}

	return &Protein{
		Accession:  t.Accession(),
		Organism:   e.organism,
		Sequence:   seq,
		Annotation: strings.Join(t.VariantNotes, " "),
	}
}

// recodeSelenocysteines turns stops into 'U' at positions where the
// curated protein sequence carries a selenocysteine.
func recodeSelenocysteines(seq, curated string) string {
	out := []byte(seq)
	for i := 0; i < len(out) && i < len(curated); i++ {
		if out[i] == '*' && curated[i] == 'U' {
			out[i] = 'U'
		}
	}
	return string(out)
}
