// Package dna provides nucleotide-level helpers: codon translation under
// the standard and vertebrate mitochondrial tables, and strand complements.
package dna

import "strings"

// standardTable maps codons to amino acids under the standard genetic code.
var standardTable = map[string]byte{
	"TTT": 'F', "TTC": 'F', "TTA": 'L', "TTG": 'L',
	"CTT": 'L', "CTC": 'L', "CTA": 'L', "CTG": 'L',
	"ATT": 'I', "ATC": 'I', "ATA": 'I', "ATG": 'M',
	"GTT": 'V', "GTC": 'V', "GTA": 'V', "GTG": 'V',
	"TCT": 'S', "TCC": 'S', "TCA": 'S', "TCG": 'S',
	"CCT": 'P', "CCC": 'P', "CCA": 'P', "CCG": 'P',
	"ACT": 'T', "ACC": 'T', "ACA": 'T', "ACG": 'T',
	"GCT": 'A', "GCC": 'A', "GCA": 'A', "GCG": 'A',
	"TAT": 'Y', "TAC": 'Y', "TAA": '*', "TAG": '*',
	"CAT": 'H', "CAC": 'H', "CAA": 'Q', "CAG": 'Q',
	"AAT": 'N', "AAC": 'N', "AAA": 'K', "AAG": 'K',
	"GAT": 'D', "GAC": 'D', "GAA": 'E', "GAG": 'E',
	"TGT": 'C', "TGC": 'C', "TGA": '*', "TGG": 'W',
	"CGT": 'R', "CGC": 'R', "CGA": 'R', "CGG": 'R',
	"AGT": 'S', "AGC": 'S', "AGA": 'R', "AGG": 'R',
	"GGT": 'G', "GGC": 'G', "GGA": 'G', "GGG": 'G',
}

// mitoTable is the vertebrate mitochondrial code. It differs from the
// standard table at four codons: AGA and AGG become stops, ATA codes
// methionine, and TGA codes tryptophan.
var mitoTable map[string]byte

func init() {
	mitoTable = make(map[string]byte, len(standardTable))
	for codon, aa := range standardTable {
		mitoTable[codon] = aa
	}
	mitoTable["AGA"] = '*'
	mitoTable["AGG"] = '*'
	mitoTable["ATA"] = 'M'
	mitoTable["TGA"] = 'W'
}

// TranslateCodon translates a single upper-case codon. Unknown codons
// (ambiguity codes, short codons) translate to 'X'.
func TranslateCodon(codon string, mito bool) byte {
	table := standardTable
	if mito {
		table = mitoTable
	}
	if aa, ok := table[codon]; ok {
		return aa
	}
	return 'X'
}

// Translate translates a coding sequence frame by frame. A trailing
// partial codon is dropped. Stop codons are emitted as '*'; truncation at
// the first stop is the caller's decision.
func Translate(seq string, mito bool) string {
	var b strings.Builder
	b.Grow(len(seq) / 3)
	for i := 0; i+3 <= len(seq); i += 3 {
		b.WriteByte(TranslateCodon(seq[i:i+3], mito))
	}
	return b.String()
}

// IsStopCodon reports whether codon is a stop under the selected table.
func IsStopCodon(codon string, mito bool) bool {
	return TranslateCodon(codon, mito) == '*'
}

// IsStartCodon reports whether codon is ATG.
func IsStartCodon(codon string) bool {
	return codon == "ATG"
}

// Complement returns the complement of a single base. Non-ACGT bases are
// returned unchanged.
func Complement(base byte) byte {
	switch base {
	case 'A':
		return 'T'
	case 'T':
		return 'A'
	case 'G':
		return 'C'
	case 'C':
		return 'G'
	case 'a':
		return 't'
	case 't':
		return 'a'
	case 'g':
		return 'c'
	case 'c':
		return 'g'
	default:
		return base
	}
}

// ReverseComplement returns the reverse complement of seq.
func ReverseComplement(seq string) string {
	out := make([]byte, len(seq))
	for i := 0; i < len(seq); i++ {
		out[len(seq)-1-i] = Complement(seq[i])
	}
	return string(out)
}
