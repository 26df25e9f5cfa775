// Package genome holds reference chromosome sequences.
package genome

import (
	"sort"

	"github.com/acesnik/ProteoformDatabaseEngine-1/internal/interval"
)

// Chromosome is a named reference sequence. Mitochondrial chromosomes use
// the vertebrate mitochondrial codon table during translation.
type Chromosome struct {
	Name          string
	FriendlyName  string
	Seq           string
	Mitochondrial bool
}

// Length returns the sequence length in bases.
func (c *Chromosome) Length() int64 {
	return int64(len(c.Seq))
}

// Subsequence returns the bases covering [start, end] (1-based inclusive),
// clipped to chromosome bounds. Returns "" when the range is empty or the
// sequence is missing.
func (c *Chromosome) Subsequence(start, end int64) string {
	if c == nil || c.Seq == "" {
		return ""
	}
	if start < 1 {
		start = 1
	}
	if end > int64(len(c.Seq)) {
		end = int64(len(c.Seq))
	}
	if start > end {
		return ""
	}
	return c.Seq[start-1 : end]
}

// Genome maps normalized chromosome names to sequences.
type Genome struct {
	chroms map[string]*Chromosome
}

// New creates an empty genome.
func New() *Genome {
	return &Genome{chroms: make(map[string]*Chromosome)}
}

// Add registers a chromosome, keyed by its normalized name.
func (g *Genome) Add(c *Chromosome) {
	g.chroms[interval.NormalizeChrom(c.Name)] = c
}

// Chromosome returns the chromosome for a (possibly aliased) name, or nil.
func (g *Genome) Chromosome(name string) *Chromosome {
	return g.chroms[interval.NormalizeChrom(name)]
}

// Names returns the normalized chromosome names, sorted.
func (g *Genome) Names() []string {
	names := make([]string, 0, len(g.chroms))
	for name := range g.chroms {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of chromosomes.
func (g *Genome) Len() int {
	return len(g.chroms)
}
