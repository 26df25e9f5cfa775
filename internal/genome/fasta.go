package genome

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/acesnik/ProteoformDatabaseEngine-1/internal/fileio"
	"github.com/acesnik/ProteoformDatabaseEngine-1/internal/interval"
)

// FASTALoader loads reference chromosome sequences from a FASTA file.
type FASTALoader struct {
	path string
}

// NewFASTALoader creates a new FASTA loader.
func NewFASTALoader(path string) *FASTALoader {
	return &FASTALoader{path: path}
}

// Load parses the FASTA file into a Genome.
func (l *FASTALoader) Load() (*Genome, error) {
	f, err := fileio.Open(l.path)
	if err != nil {
		return nil, fmt.Errorf("open FASTA file: %w", err)
	}
	defer f.Close()

	return l.parseFASTA(f)
}

// parseFASTA parses FASTA content. Headers look like:
// >chr12 Homo sapiens chromosome 12
// The first token is the chromosome name; the remainder is kept as the
// friendly name. Sequences are stored upper-cased.
func (l *FASTALoader) parseFASTA(reader io.Reader) (*Genome, error) {
	scanner := bufio.NewScanner(reader)
	// Increase buffer size for long sequence lines
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 64*1024*1024)

	g := New()

	var current *Chromosome
	var seq strings.Builder

	flush := func() {
		if current != nil {
			current.Seq = strings.ToUpper(seq.String())
			g.Add(current)
		}
		seq.Reset()
	}

	for scanner.Scan() {
		line := scanner.Text()

		if strings.HasPrefix(line, ">") {
			flush()
			current = parseHeader(line)
			continue
		}
		if current == nil {
			continue
		}
		seq.WriteString(strings.TrimSpace(line))
	}
	flush()

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan FASTA: %w", err)
	}

	return g, nil
}

// parseHeader extracts the chromosome name, friendly name, and
// mitochondrial flag from a FASTA header line.
func parseHeader(header string) *Chromosome {
	header = strings.TrimPrefix(header, ">")

	name := header
	friendly := ""
	if idx := strings.IndexByte(header, ' '); idx != -1 {
		name = header[:idx]
		friendly = strings.TrimSpace(header[idx+1:])
	}
	if friendly == "" {
		friendly = name
	}

	norm := interval.NormalizeChrom(name)
	mito := norm == "M" || norm == "MT" ||
		strings.Contains(strings.ToLower(friendly), "mitochondri")

	return &Chromosome{Name: name, FriendlyName: friendly, Mitochondrial: mito}
}
