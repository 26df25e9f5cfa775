// Package output writes proteoform databases.
package output

import (
	"bufio"
	"fmt"
	"io"

	"github.com/acesnik/ProteoformDatabaseEngine-1/internal/haplotype"
)

// lineWidth is the FASTA sequence wrap column.
const lineWidth = 60

// FASTAWriter writes proteoforms as a protein FASTA database.
type FASTAWriter struct {
	w *bufio.Writer
}

// NewFASTAWriter creates a FASTA writer.
func NewFASTAWriter(w io.Writer) *FASTAWriter {
	return &FASTAWriter{w: bufio.NewWriter(w)}
}

// Write writes one proteoform entry. The header carries the accession,
// the organism when set, and the variant annotation when present.
func (fw *FASTAWriter) Write(p *haplotype.Protein) error {
	if _, err := fmt.Fprintf(fw.w, ">%s", p.Accession); err != nil {
		return err
	}
	if p.Organism != "" {
		if _, err := fmt.Fprintf(fw.w, " %s", p.Organism); err != nil {
			return err
		}
	}
	if p.Annotation != "" {
		if _, err := fmt.Fprintf(fw.w, " %s", p.Annotation); err != nil {
			return err
		}
	}
	if err := fw.w.WriteByte('\n'); err != nil {
		return err
	}

	seq := p.Sequence
	for len(seq) > 0 {
		n := lineWidth
		if n > len(seq) {
			n = len(seq)
		}
		if _, err := fw.w.WriteString(seq[:n]); err != nil {
			return err
		}
		if err := fw.w.WriteByte('\n'); err != nil {
			return err
		}
		seq = seq[n:]
	}
	return nil
}

// WriteAll writes every proteoform and flushes.
func (fw *FASTAWriter) WriteAll(proteins []*haplotype.Protein) error {
	for _, p := range proteins {
		if err := fw.Write(p); err != nil {
			return err
		}
	}
	return fw.Flush()
}

// Flush flushes buffered output.
func (fw *FASTAWriter) Flush() error {
	return fw.w.Flush()
}
