package haplotype

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/acesnik/ProteoformDatabaseEngine-1/internal/fileio"
)

// LoadSelenoproteins reads a protein FASTA of curated selenoprotein
// sequences keyed by the first header token (transcript accession).
func LoadSelenoproteins(path string) (map[string]string, error) {
	f, err := fileio.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open selenoprotein file: %w", err)
	}
	defer f.Close()

	seqs := make(map[string]string)
	scanner := bufio.NewScanner(f)
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 16*1024*1024)

	var name string
	var seq strings.Builder
	flush := func() {
		if name != "" {
			seqs[name] = seq.String()
		}
		seq.Reset()
	}

	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, ">") {
			flush()
			name = ""
			if fields := strings.Fields(strings.TrimPrefix(line, ">")); len(fields) > 0 {
				name = fields[0]
			}
			continue
		}
		seq.WriteString(strings.TrimSpace(line))
	}
	flush()

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan selenoprotein file: %w", err)
	}
	return seqs, nil
}
