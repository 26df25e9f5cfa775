// Package effect classifies variants against transcripts into functional
// effect records.
package effect

import (
	"fmt"
	"strings"

	"github.com/acesnik/ProteoformDatabaseEngine-1/internal/variant"
)

// FunctionalClass ranks the protein-level severity of an effect. Higher
// values are more severe; the ordering drives haplotype branching.
type FunctionalClass int

const (
	ClassNone FunctionalClass = iota
	ClassSilent
	ClassMissense
	ClassNonsense
)

func (c FunctionalClass) String() string {
	switch c {
	case ClassSilent:
		return "SILENT"
	case ClassMissense:
		return "MISSENSE"
	case ClassNonsense:
		return "NONSENSE"
	default:
		return "NONE"
	}
}

// Impact levels for variant effects.
const (
	ImpactHigh     = "HIGH"
	ImpactModerate = "MODERATE"
	ImpactLow      = "LOW"
	ImpactModifier = "MODIFIER"
)

// Effect types (Sequence Ontology terms).
const (
	// HIGH impact
	EffectStopGained         = "stop_gained"
	EffectStopLost           = "stop_lost"
	EffectStartLost          = "start_lost"
	EffectFrameshift         = "frameshift_variant"
	EffectSpliceSite         = "splice_site_variant"
	EffectTranscriptAblation = "transcript_ablation"

	// MODERATE impact
	EffectMissense    = "missense_variant"
	EffectCodonChange = "coding_sequence_variant"

	// LOW impact
	EffectSynonymous = "synonymous_variant"

	// MODIFIER impact
	Effect5PrimeUTR  = "5_prime_UTR_variant"
	Effect3PrimeUTR  = "3_prime_UTR_variant"
	EffectIntron     = "intron_variant"
	EffectUpstream   = "upstream_gene_variant"
	EffectDownstream = "downstream_gene_variant"
	EffectTranscript = "transcript_variant"
)

// ImpactFor returns the impact level for an effect type.
func ImpactFor(effectType string) string {
	switch effectType {
	case EffectStopGained, EffectStopLost, EffectStartLost,
		EffectFrameshift, EffectSpliceSite, EffectTranscriptAblation:
		return ImpactHigh
	case EffectMissense, EffectCodonChange:
		return ImpactModerate
	case EffectSynonymous:
		return ImpactLow
	default:
		return ImpactModifier
	}
}

// Transcript sanity warnings attached to coding effects.
const (
	WarningMultipleStopCodons = "WARNING_TRANSCRIPT_MULTIPLE_STOP_CODONS"
	WarningIncompleteCDS      = "WARNING_TRANSCRIPT_INCOMPLETE"
	WarningNoStartCodon       = "WARNING_TRANSCRIPT_NO_START_CODON"
	WarningNoStopCodon        = "WARNING_TRANSCRIPT_NO_STOP_CODON"
)

// VariantEffect is one predicted effect of a variant on a transcript.
type VariantEffect struct {
	Variant      *variant.Variant
	TranscriptID string
	Type         string
	Class        FunctionalClass
	Impact       string
	RefCodon     string
	AltCodon     string
	RefAA        byte
	AltAA        byte
	ProteinPos   int64
	Warnings     []string
}

// AminoAcidChange renders the protein-level change, e.g. "G12C". Empty for
// non-coding effects.
func (e *VariantEffect) AminoAcidChange() string {
	if e.ProteinPos <= 0 {
		return ""
	}
	return fmt.Sprintf("%c%d%c", e.RefAA, e.ProteinPos, e.AltAA)
}

// CodonChange renders the codon-level change, e.g. "GGT/TGT". Empty for
// non-coding effects.
func (e *VariantEffect) CodonChange() string {
	if e.RefCodon == "" {
		return ""
	}
	return e.RefCodon + "/" + e.AltCodon
}

// VariantEffects collects the effects of one variant on one transcript.
type VariantEffects struct {
	TranscriptID string
	Variant      *variant.Variant
	Effects      []*VariantEffect
}

// Add appends an effect.
func (ve *VariantEffects) Add(e *VariantEffect) {
	ve.Effects = append(ve.Effects, e)
}

// HighestClass returns the most severe functional class among the effects.
func (ve *VariantEffects) HighestClass() FunctionalClass {
	best := ClassNone
	for _, e := range ve.Effects {
		if e.Class > best {
			best = e.Class
		}
	}
	return best
}

// Types returns the distinct effect types, in insertion order.
func (ve *VariantEffects) Types() []string {
	var types []string
	seen := make(map[string]bool)
	for _, e := range ve.Effects {
		if !seen[e.Type] {
			seen[e.Type] = true
			types = append(types, e.Type)
		}
	}
	return types
}

// Annotation renders the human-readable record carried on derived
// proteoforms: position, allele change, effect types, functional class,
// genotype, and protein position when coding.
func (ve *VariantEffects) Annotation() string {
	v := ve.Variant
	var b strings.Builder
	fmt.Fprintf(&b, "%s:%d %s>%s %s %s %s",
		v.Chrom, v.Pos, v.Ref, v.Alt(),
		strings.Join(ve.Types(), ","),
		ve.HighestClass(), v.Genotype)
	for _, e := range ve.Effects {
		if chg := e.AminoAcidChange(); chg != "" {
			fmt.Fprintf(&b, " p.%s", chg)
			break
		}
	}
	return b.String()
}
