package variant

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/biogo/hts/bgzf"
)

// Parser reads variants from a VCF file. Compressed input is expected to be
// bgzip (the conventional VCF block-gzip), read through biogo's bgzf reader.
type Parser struct {
	reader      *bufio.Reader
	file        *os.File
	bgzfReader  *bgzf.Reader
	lineNumber  int
	header      []string
	sampleNames []string
}

// NewParser creates a VCF parser for the given file. "-" reads stdin.
func NewParser(path string) (*Parser, error) {
	if path == "-" {
		return NewParserFromReader(os.Stdin)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open vcf file: %w", err)
	}

	p := &Parser{file: file}

	// Check for gzip magic bytes
	buf := make([]byte, 2)
	if _, err := file.Read(buf); err != nil {
		file.Close()
		return nil, fmt.Errorf("read vcf header: %w", err)
	}
	if _, err := file.Seek(0, 0); err != nil {
		file.Close()
		return nil, fmt.Errorf("seek vcf file: %w", err)
	}

	if buf[0] == 0x1f && buf[1] == 0x8b {
		p.bgzfReader, err = bgzf.NewReader(file, 1)
		if err != nil {
			file.Close()
			return nil, fmt.Errorf("create bgzf reader: %w", err)
		}
		p.reader = bufio.NewReader(p.bgzfReader)
	} else {
		p.reader = bufio.NewReader(file)
	}

	if err := p.parseHeader(); err != nil {
		p.Close()
		return nil, err
	}

	return p, nil
}

// NewParserFromReader creates a parser from an io.Reader (e.g. stdin).
func NewParserFromReader(r io.Reader) (*Parser, error) {
	p := &Parser{reader: bufio.NewReader(r)}
	if err := p.parseHeader(); err != nil {
		return nil, err
	}
	return p, nil
}

// parseHeader reads and stores VCF header lines up to #CHROM.
func (p *Parser) parseHeader() error {
	for {
		line, err := p.reader.ReadString('\n')
		if err != nil {
			if err == io.EOF {
				break
			}
			return fmt.Errorf("read header: %w", err)
		}
		p.lineNumber++

		line = strings.TrimRight(line, "\r\n")

		if strings.HasPrefix(line, "##") {
			p.header = append(p.header, line)
			continue
		}

		if strings.HasPrefix(line, "#CHROM") {
			p.header = append(p.header, line)
			fields := strings.Split(line, "\t")
			if len(fields) > 9 {
				p.sampleNames = fields[9:]
			}
			return nil
		}

		return &ParseError{Line: p.lineNumber, Message: "expected #CHROM header line"}
	}

	return &ParseError{Line: p.lineNumber, Message: "no #CHROM header line found"}
}

// Next reads the next variant. Returns nil, nil when input is exhausted.
func (p *Parser) Next() (*Variant, error) {
	line, err := p.reader.ReadString('\n')
	if err != nil {
		if err == io.EOF {
			if strings.TrimSpace(line) == "" {
				return nil, nil
			}
		} else {
			return nil, fmt.Errorf("read variant line: %w", err)
		}
	}
	p.lineNumber++

	line = strings.TrimRight(line, "\r\n")
	if line == "" {
		return p.Next()
	}

	return p.parseLine(line)
}

// All reads every remaining variant from the input.
func (p *Parser) All() ([]*Variant, error) {
	var variants []*Variant
	for {
		v, err := p.Next()
		if err != nil {
			return nil, err
		}
		if v == nil {
			return variants, nil
		}
		variants = append(variants, v)
	}
}

// parseLine parses a single VCF data line into a Variant.
func (p *Parser) parseLine(line string) (*Variant, error) {
	fields := strings.Split(line, "\t")
	if len(fields) < 8 {
		return nil, &ParseError{
			Line:    p.lineNumber,
			Message: fmt.Sprintf("expected at least 8 columns, found %d", len(fields)),
		}
	}

	pos, err := strconv.ParseInt(fields[1], 10, 64)
	if err != nil {
		return nil, &ParseError{
			Line:    p.lineNumber,
			Message: fmt.Sprintf("invalid position: %s", fields[1]),
		}
	}

	ref := fields[3]
	alts := strings.Split(fields[4], ",")
	info := parseInfo(fields[7])

	v := &Variant{
		Chrom:    fields[0],
		Pos:      pos,
		Ref:      ref,
		Allele1:  ref,
		Allele2:  alts[0],
		Genotype: GenotypeUnknown,
	}

	if _, ok := info["SVTYPE"]; ok || strings.HasPrefix(alts[0], "<") {
		v.Structural = true
	}
	if !v.Structural && len(ref) > 1 && len(alts[0]) > 1 && len(ref) != len(alts[0]) {
		v.Mixed = true
	}

	// Genotype and per-allele depth come from the first sample column.
	if len(fields) > 9 {
		p.applySample(v, ref, alts, fields[8], fields[9])
	}

	return v, nil
}

// applySample fills genotype classification and allele depths from a
// FORMAT/sample column pair.
func (p *Parser) applySample(v *Variant, ref string, alts []string, format, sample string) {
	keys := strings.Split(format, ":")
	vals := strings.Split(sample, ":")

	alleles := append([]string{ref}, alts...)

	for i, key := range keys {
		if i >= len(vals) {
			break
		}
		switch key {
		case "GT":
			i1, i2, ok := parseGT(vals[i])
			if !ok {
				break
			}
			if i1 < len(alleles) {
				v.Allele1 = alleles[i1]
			}
			if i2 < len(alleles) {
				v.Allele2 = alleles[i2]
			}
			switch {
			case i1 == 0 && i2 == 0:
				v.Genotype = HomozygousRef
			case i1 == i2 && i1 == 1:
				v.Genotype = HomozygousAlt
			case i1 == i2:
				v.Genotype = HomozygousAlt2
			default:
				v.Genotype = Heterozygous
				// Keep the reference allele first when present so the
				// non-reference allele rides the default path.
				if v.Allele2 == ref && v.Allele1 != ref {
					v.Allele1, v.Allele2 = v.Allele2, v.Allele1
				}
			}
		case "AD":
			depths := strings.Split(vals[i], ",")
			if len(depths) > 0 {
				v.Depth1, _ = strconv.Atoi(depths[0])
			}
			if len(depths) > 1 {
				v.Depth2, _ = strconv.Atoi(depths[1])
			}
		}
	}
}

// parseGT parses a genotype string like "0/1" or "1|1".
func parseGT(gt string) (int, int, bool) {
	sep := "/"
	if strings.Contains(gt, "|") {
		sep = "|"
	}
	parts := strings.SplitN(gt, sep, 2)
	if len(parts) != 2 {
		return 0, 0, false
	}
	i1, err1 := strconv.Atoi(parts[0])
	i2, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil {
		return 0, 0, false
	}
	return i1, i2, true
}

// parseInfo parses the INFO field into a map. Flag entries map to "true".
func parseInfo(info string) map[string]string {
	result := make(map[string]string)
	if info == "." {
		return result
	}
	for _, kv := range strings.Split(info, ";") {
		if k, v, ok := strings.Cut(kv, "="); ok {
			result[k] = v
		} else {
			result[kv] = "true"
		}
	}
	return result
}

// Header returns the VCF header lines.
func (p *Parser) Header() []string {
	return p.header
}

// SampleNames returns sample names from the #CHROM header line.
func (p *Parser) SampleNames() []string {
	return p.sampleNames
}

// LineNumber returns the current line number being processed.
func (p *Parser) LineNumber() int {
	return p.lineNumber
}

// Close closes the parser and underlying file.
func (p *Parser) Close() error {
	if p.bgzfReader != nil {
		p.bgzfReader.Close()
	}
	if p.file != nil {
		return p.file.Close()
	}
	return nil
}

// ParseError represents an error during VCF parsing with line context.
type ParseError struct {
	Line    int
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("vcf parse error at line %d: %s", e.Line, e.Message)
}
