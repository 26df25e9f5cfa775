package effect

import (
	"strings"

	"go.uber.org/zap"

	"github.com/acesnik/ProteoformDatabaseEngine-1/internal/dna"
	"github.com/acesnik/ProteoformDatabaseEngine-1/internal/genemodel"
	"github.com/acesnik/ProteoformDatabaseEngine-1/internal/variant"
)

// Classifier predicts the effects of variants on transcripts.
type Classifier struct {
	logger *zap.Logger
}

// NewClassifier creates a classifier.
func NewClassifier(logger *zap.Logger) *Classifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Classifier{logger: logger}
}

// Classify predicts the effects of a variant on a transcript. The variant
// is judged against its non-reference allele. Regions are checked from the
// inside out: coding first, then UTRs, introns, and flanks; a variant
// fully contained in a single non-coding region short-circuits there.
func (c *Classifier) Classify(t *genemodel.Transcript, v *variant.Variant) (*VariantEffects, error) {
	ve := &VariantEffects{TranscriptID: t.Accession(), Variant: v}

	if v.Structural && v.Pos <= t.Start && v.End() >= t.End {
		ve.Add(c.newEffect(t, v, EffectTranscriptAblation, ClassNonsense, nil))
		return ve, nil
	}

	mito := t.Gene != nil && t.Gene.Mitochondrial()
	warnings := transcriptWarnings(t, mito)

	lo, hi := t.CDSBoundsGenomic()
	overlapsCoding := v.End() >= lo && v.Pos <= hi

	if overlapsCoding {
		exonHits := countExonsOverlapped(t, v)
		switch {
		case exonHits == 0:
			// Inside the coding span but not on an exon; intron
			// handling below covers it.
		case v.Structural || v.Mixed || exonHits > 1:
			ve.Add(c.newEffect(t, v, EffectCodonChange, ClassMissense, warnings))
		case v.IsIndel():
			typ := EffectCodonChange
			if (int64(len(v.Alt()))-int64(len(v.Ref)))%3 != 0 {
				typ = EffectFrameshift
			}
			ve.Add(c.newEffect(t, v, typ, ClassMissense, warnings))
		default:
			if err := c.codonEffects(ve, t, v, mito, warnings); err != nil {
				return nil, err
			}
		}
	}

	for _, u := range t.UTRs {
		if !u.IntersectsVariant(v) {
			continue
		}
		typ := Effect5PrimeUTR
		if u.Kind == genemodel.UTR3 {
			typ = Effect3PrimeUTR
		}
		ve.Add(c.newEffect(t, v, typ, ClassNone, nil))
		if u.ContainsVariant(v) && !overlapsCoding {
			return ve, nil
		}
	}

	for _, in := range t.Introns {
		if !in.IntersectsVariant(v) {
			continue
		}
		typ := EffectIntron
		// The two intronic bases next to each exon edge are splice sites.
		if v.Pos <= in.Start+1 || v.End() >= in.End-1 {
			typ = EffectSpliceSite
		}
		ve.Add(c.newEffect(t, v, typ, ClassNone, nil))
		if in.ContainsVariant(v) && !overlapsCoding {
			return ve, nil
		}
	}

	if t.Upstream != nil && t.Upstream.IntersectsVariant(v) {
		ve.Add(c.newEffect(t, v, EffectUpstream, ClassNone, nil))
	}
	if t.Downstream != nil && t.Downstream.IntersectsVariant(v) {
		ve.Add(c.newEffect(t, v, EffectDownstream, ClassNone, nil))
	}

	if len(ve.Effects) == 0 {
		ve.Add(c.newEffect(t, v, EffectTranscript, ClassNone, nil))
	}
	return ve, nil
}

func (c *Classifier) newEffect(t *genemodel.Transcript, v *variant.Variant, typ string, class FunctionalClass, warnings []string) *VariantEffect {
	return &VariantEffect{
		Variant:      v,
		TranscriptID: t.Accession(),
		Type:         typ,
		Class:        class,
		Impact:       ImpactFor(typ),
		Warnings:     warnings,
	}
}

// codonEffects adds one codon-level effect per substituted coding base of
// a same-length substitution.
func (c *Classifier) codonEffects(ve *VariantEffects, t *genemodel.Transcript, v *variant.Variant, mito bool, warnings []string) error {
	cs := t.CodingSequence()
	if cs == "" {
		return nil
	}

	alt := v.Alt()
	for i := 0; i < len(v.Ref) && i < len(alt); i++ {
		pos := v.Pos + int64(i)

		// Skip bases that fall off the exons, e.g. an MNV tail in an
		// intron.
		mpos, err := t.MRNAPosition(pos)
		if err != nil {
			return err
		}
		if mpos < 0 {
			continue
		}

		cdsPos := t.CDSPosition(pos, true)
		if cdsPos <= 0 {
			continue
		}
		codonIdx := (cdsPos - 1) / 3
		frame := (cdsPos - 1) % 3
		if int(codonIdx*3+3) > len(cs) {
			continue
		}

		refCodon := cs[codonIdx*3 : codonIdx*3+3]
		altBase := alt[i]
		if t.IsReverse() {
			altBase = dna.Complement(altBase)
		}
		altCodon := refCodon[:frame] + string(altBase) + refCodon[frame+1:]

		refAA := dna.TranslateCodon(refCodon, mito)
		altAA := dna.TranslateCodon(altCodon, mito)

		var typ string
		var class FunctionalClass
		switch {
		case refAA == altAA:
			typ, class = EffectSynonymous, ClassSilent
		case dna.IsStopCodon(altCodon, mito):
			typ, class = EffectStopGained, ClassNonsense
		case dna.IsStopCodon(refCodon, mito):
			typ, class = EffectStopLost, ClassMissense
		case codonIdx == 0 && dna.IsStartCodon(refCodon):
			typ, class = EffectStartLost, ClassMissense
		default:
			typ, class = EffectMissense, ClassMissense
		}

		e := c.newEffect(t, v, typ, class, warnings)
		e.RefCodon = refCodon
		e.AltCodon = altCodon
		e.RefAA = refAA
		e.AltAA = altAA
		e.ProteinPos = codonIdx + 1
		ve.Add(e)
	}
	return nil
}

// transcriptWarnings inspects the coding sequence for structural problems
// worth surfacing on every coding effect.
func transcriptWarnings(t *genemodel.Transcript, mito bool) []string {
	cs := t.CodingSequence()
	if len(cs) < 3 {
		return nil
	}

	var warnings []string
	if len(cs)%3 != 0 {
		warnings = append(warnings, WarningIncompleteCDS)
	}
	if !dna.IsStartCodon(cs[:3]) {
		warnings = append(warnings, WarningNoStartCodon)
	}
	prot := dna.Translate(cs, mito)
	switch idx := strings.IndexByte(prot, '*'); {
	case idx == -1:
		warnings = append(warnings, WarningNoStopCodon)
	case idx != len(prot)-1:
		warnings = append(warnings, WarningMultipleStopCodons)
	}
	return warnings
}

func countExonsOverlapped(t *genemodel.Transcript, v *variant.Variant) int {
	n := 0
	for _, e := range t.Exons {
		if e.IntersectsVariant(v) {
			n++
		}
	}
	return n
}
