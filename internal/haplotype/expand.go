// Package haplotype expands transcripts into the proteoforms implied by
// their attached variants and genotypes.
package haplotype

import (
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/acesnik/ProteoformDatabaseEngine-1/internal/effect"
	"github.com/acesnik/ProteoformDatabaseEngine-1/internal/genemodel"
	"github.com/acesnik/ProteoformDatabaseEngine-1/internal/variant"
)

// DefaultMaxHeterozygous caps combinatorial expansion. A transcript with
// more heterozygous variants than this is emitted unmodified.
const DefaultMaxHeterozygous = 5

// Expander derives variant-applied transcript copies. Heterozygous
// variants whose effect reaches MISSENSE fork the expansion into both
// haplotypes; silent or non-coding heterozygous variants ride the single
// alternate path.
type Expander struct {
	classifier *effect.Classifier
	logger     *zap.Logger

	maxHet   int
	organism string
	seleno   map[string]string

	mu       sync.Mutex
	overflow []string
}

// NewExpander creates an expander using the given classifier.
func NewExpander(classifier *effect.Classifier, logger *zap.Logger) *Expander {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Expander{
		classifier: classifier,
		logger:     logger,
		maxHet:     DefaultMaxHeterozygous,
	}
}

// SetMaxHeterozygous overrides the heterozygous expansion cap.
func (e *Expander) SetMaxHeterozygous(n int) {
	if n > 0 {
		e.maxHet = n
	}
}

// SetOrganism sets the organism recorded on translated proteoforms.
func (e *Expander) SetOrganism(organism string) {
	e.organism = organism
}

// SetSelenoproteins provides curated protein sequences, keyed by
// transcript accession, used to recode internal stops as selenocysteine.
func (e *Expander) SetSelenoproteins(seqs map[string]string) {
	e.seleno = seqs
}

// Overflows returns the accessions of transcripts skipped by the
// heterozygous expansion cap.
func (e *Expander) Overflows() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]string(nil), e.overflow...)
}

// frame is one branch of the expansion: a transcript state plus the
// variants still to apply.
type frame struct {
	t    *genemodel.Transcript
	vars []*variant.Variant
}

// ApplyVariants expands a transcript into every distinct variant-applied
// copy. Variants are applied in descending genomic position so earlier
// edits never shift the coordinates of later ones.
func (e *Expander) ApplyVariants(t *genemodel.Transcript) ([]*genemodel.Transcript, error) {
	vars := relevantVariants(t)
	if len(vars) == 0 {
		return []*genemodel.Transcript{t}, nil
	}

	hets := 0
	for _, v := range vars {
		if v.IsHeterozygous() {
			hets++
		}
	}
	if hets > e.maxHet {
		e.mu.Lock()
		e.overflow = append(e.overflow, t.Accession())
		e.mu.Unlock()
		e.logger.Warn("too many heterozygous variants, emitting reference transcript",
			zap.String("transcript", t.Accession()),
			zap.Int("heterozygous", hets),
			zap.Int("max", e.maxHet))
		return []*genemodel.Transcript{t}, nil
	}

	sort.Slice(vars, func(i, j int) bool { return vars[i].Pos > vars[j].Pos })

	var done []*genemodel.Transcript
	stack := []frame{{t: t, vars: vars}}

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if len(f.vars) == 0 {
			done = append(done, f.t)
			continue
		}
		v := f.vars[0]
		rest := f.vars[1:]

		ve, err := e.classifier.Classify(f.t, v)
		if err != nil {
			return nil, err
		}

		applied := e.applyAllele(f.t, v, ve)
		stack = append(stack, frame{t: applied, vars: rest})

		if v.IsHeterozygous() && ve.HighestClass() >= effect.ClassMissense {
			if v.Allele1 == v.Ref {
				// The other haplotype keeps the reference base.
				stack = append(stack, frame{t: f.t, vars: rest})
			} else {
				sw := v.SwapAlleles()
				swVE, err := e.classifier.Classify(f.t, sw)
				if err != nil {
					return nil, err
				}
				stack = append(stack, frame{t: e.applyAllele(f.t, sw, swVE), vars: rest})
			}
		}
	}

	return done, nil
}

// applyAllele derives a copy with the variant's non-reference allele
// applied and the effect annotation recorded. Structural variants are
// annotated without a sequence edit.
func (e *Expander) applyAllele(t *genemodel.Transcript, v *variant.Variant, ve *effect.VariantEffects) *genemodel.Transcript {
	var applied *genemodel.Transcript
	if v.Structural {
		applied = t.Clone()
	} else {
		applied = t.ApplyVariant(v, v.Allele2)
	}
	applied.VariantNotes = append(applied.VariantNotes, ve.Annotation())
	return applied
}

// relevantVariants gathers the variants worth applying to a transcript:
// its own bag plus the bags of its flanks, whose variants annotate the
// derived proteoforms without editing sequence. Homozygous-reference calls
// are identity edits and dropped.
func relevantVariants(t *genemodel.Transcript) []*variant.Variant {
	var out []*variant.Variant
	seen := make(map[string]bool)
	add := func(vs []*variant.Variant) {
		for _, v := range vs {
			if v.Genotype == variant.HomozygousRef || seen[v.ID()] {
				continue
			}
			seen[v.ID()] = true
			out = append(out, v)
		}
	}

	add(t.Span().Variants())
	if t.Upstream != nil {
		add(t.Upstream.Variants())
	}
	if t.Downstream != nil {
		add(t.Downstream.Variants())
	}
	return out
}
