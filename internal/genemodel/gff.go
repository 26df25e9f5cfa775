// Package genemodel builds the hierarchical gene feature model: genes,
// transcripts, exons, coding segments, and the regions derived from them.
package genemodel

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/acesnik/ProteoformDatabaseEngine-1/internal/fileio"
	"github.com/acesnik/ProteoformDatabaseEngine-1/internal/interval"
)

// FeatureKind identifies the gene-model feature types the builder consumes.
type FeatureKind int

const (
	KindGene FeatureKind = iota
	KindTranscript
	KindExon
	KindCDS
)

func (k FeatureKind) String() string {
	switch k {
	case KindGene:
		return "gene"
	case KindTranscript:
		return "transcript"
	case KindExon:
		return "exon"
	case KindCDS:
		return "CDS"
	default:
		return "unknown"
	}
}

// FeatureRecord is one parsed annotation line.
type FeatureRecord struct {
	Kind       FeatureKind
	Chrom      string
	Source     string
	Strand     interval.Strand
	Start, End int64
	Attributes map[string]string
}

// GeneID returns the record's gene identifier, falling back to the GFF3
// ID attribute.
func (r *FeatureRecord) GeneID() string {
	if id, ok := r.Attributes["gene_id"]; ok {
		return id
	}
	return r.Attributes["ID"]
}

// TranscriptID returns the record's transcript identifier, falling back to
// the GFF3 ID attribute.
func (r *FeatureRecord) TranscriptID() string {
	if id, ok := r.Attributes["transcript_id"]; ok {
		return id
	}
	return r.Attributes["ID"]
}

// TranscriptVersion returns the transcript version attribute, if present.
func (r *FeatureRecord) TranscriptVersion() string {
	return r.Attributes["transcript_version"]
}

// ParseGFFLine parses one annotation line. Comment lines and feature types
// outside the gene/transcript/exon/CDS set return (nil, nil). Both GTF and
// GFF3 attribute syntaxes are accepted.
func ParseGFFLine(line string) (*FeatureRecord, error) {
	if line == "" || strings.HasPrefix(line, "#") {
		return nil, nil
	}

	fields := strings.Split(line, "\t")
	if len(fields) < 9 {
		return nil, fmt.Errorf("expected 9 columns, found %d", len(fields))
	}

	var kind FeatureKind
	switch fields[2] {
	case "gene":
		kind = KindGene
	case "transcript", "mRNA":
		kind = KindTranscript
	case "exon":
		kind = KindExon
	case "CDS":
		kind = KindCDS
	default:
		return nil, nil
	}

	start, err := strconv.ParseInt(fields[3], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid start: %s", fields[3])
	}
	end, err := strconv.ParseInt(fields[4], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid end: %s", fields[4])
	}
	if start > end {
		return nil, fmt.Errorf("start %d after end %d", start, end)
	}

	return &FeatureRecord{
		Kind:       kind,
		Chrom:      fields[0],
		Source:     fields[1],
		Strand:     interval.ParseStrand(fields[6]),
		Start:      start,
		End:        end,
		Attributes: parseAttributes(fields[8]),
	}, nil
}

// parseAttributes parses the attribute column. The dialect is detected per
// record: GFF3 uses key=value pairs, GTF uses key "value" pairs, both
// semicolon-separated. The first occurrence of a key wins.
func parseAttributes(col string) map[string]string {
	attrs := make(map[string]string)
	gff3 := strings.ContainsRune(col, '=')

	for _, part := range strings.Split(col, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		var key, value string
		if gff3 {
			var ok bool
			key, value, ok = strings.Cut(part, "=")
			if !ok {
				continue
			}
		} else {
			var ok bool
			key, value, ok = strings.Cut(part, " ")
			if !ok {
				continue
			}
			value = strings.Trim(value, `"`)
		}

		key = strings.TrimSpace(key)
		if _, seen := attrs[key]; !seen {
			attrs[key] = value
		}
	}

	return attrs
}

// Loader streams feature records from a GTF or GFF3 file into a Builder.
type Loader struct {
	path   string
	logger *zap.Logger
}

// NewLoader creates a gene model loader for the given annotation file.
func NewLoader(path string, logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{path: path, logger: logger}
}

// Load parses the annotation file and feeds every record to the builder.
// Malformed lines are logged and skipped.
func (l *Loader) Load(b *Builder) error {
	f, err := fileio.Open(l.path)
	if err != nil {
		return fmt.Errorf("open gene model file: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	// Increase buffer size for long attribute columns
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 16*1024*1024)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		rec, err := ParseGFFLine(scanner.Text())
		if err != nil {
			l.logger.Warn("skipping malformed annotation line",
				zap.Int("line", lineNum),
				zap.Error(err))
			continue
		}
		if rec == nil {
			continue
		}
		if err := b.Consume(rec); err != nil {
			return fmt.Errorf("line %d: %w", lineNum, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("scan gene model file: %w", err)
	}

	return nil
}
