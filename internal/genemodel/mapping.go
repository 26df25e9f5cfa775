package genemodel

import "fmt"

// InvariantError reports a structural inconsistency in a transcript, such
// as unsortable exons or a position that cannot be mapped consistently.
type InvariantError struct {
	TranscriptID string
	Msg          string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("transcript %s: %s", e.TranscriptID, e.Msg)
}

// MRNAPosition maps a genomic position to its 1-based position on the
// spliced transcript. Returns -1 for positions outside every exon.
func (t *Transcript) MRNAPosition(pos int64) (int64, error) {
	var off int64
	for _, e := range t.Exons {
		if !e.Valid() {
			return -1, &InvariantError{
				TranscriptID: t.ID,
				Msg:          fmt.Sprintf("exon %d-%d has inverted bounds", e.Start, e.End),
			}
		}
		if e.Contains(pos) {
			if t.IsReverse() {
				return off + (e.End - pos) + 1, nil
			}
			return off + (pos - e.Start) + 1, nil
		}
		off += e.Length()
	}
	return -1, nil
}

// exonGenomicBounds returns the genomic min start and max end over exons.
func (t *Transcript) exonGenomicBounds() (int64, int64) {
	if len(t.Exons) == 0 {
		return t.Start, t.End
	}
	min, max := t.Exons[0].Start, t.Exons[0].End
	for _, e := range t.Exons[1:] {
		if e.Start < min {
			min = e.Start
		}
		if e.End > max {
			max = e.End
		}
	}
	return min, max
}

// CDSBoundsGenomic returns the genomic left and right edge of the coding
// span. Without UTRs the coding span defaults to the outermost exon
// bounds. With UTRs the raw bounds are narrowed past the UTRs and snapped
// onto exonic positions; when neither edge lands on an exon the span
// collapses to the raw left edge. The result is cached.
func (t *Transcript) CDSBoundsGenomic() (int64, int64) {
	if t.cdsBoundsOK {
		return t.cdsLo, t.cdsHi
	}
	t.cdsBoundsOK = true

	lo, hi := t.exonGenomicBounds()
	if len(t.UTRs) > 0 {
		rawLo, rawHi := lo, hi
		for _, u := range t.UTRs {
			leftSide := (u.Kind == UTR5) != t.IsReverse()
			if leftSide {
				if u.End+1 > rawLo {
					rawLo = u.End + 1
				}
			} else {
				if u.Start-1 < rawHi {
					rawHi = u.Start - 1
				}
			}
		}
		snapLo, okLo := t.snapToExonForward(rawLo)
		snapHi, okHi := t.snapToExonBackward(rawHi)
		switch {
		case okLo && okHi:
			lo, hi = snapLo, snapHi
		case okLo:
			lo, hi = snapLo, rawHi
		case okHi:
			lo, hi = rawLo, snapHi
		default:
			lo, hi = rawLo, rawLo
		}
	}

	t.cdsLo, t.cdsHi = lo, hi
	return lo, hi
}

// snapToExonForward returns the smallest exonic position >= pos.
func (t *Transcript) snapToExonForward(pos int64) (int64, bool) {
	best := int64(-1)
	for _, e := range t.Exons {
		switch {
		case e.Contains(pos):
			return pos, true
		case e.Start > pos && (best == -1 || e.Start < best):
			best = e.Start
		}
	}
	return best, best != -1
}

// snapToExonBackward returns the largest exonic position <= pos.
func (t *Transcript) snapToExonBackward(pos int64) (int64, bool) {
	best := int64(-1)
	for _, e := range t.Exons {
		switch {
		case e.Contains(pos):
			return pos, true
		case e.End < pos && e.End > best:
			best = e.End
		}
	}
	return best, best != -1
}

// cdsGenomicPositions returns the genomic position of every coding base in
// transcription order. Memoized.
func (t *Transcript) cdsGenomicPositions() []int64 {
	if t.cdsToGenomic != nil {
		return t.cdsToGenomic
	}

	lo, hi := t.CDSBoundsGenomic()
	arr := make([]int64, 0, hi-lo+1)
	for _, e := range t.Exons {
		s, en := e.Start, e.End
		if s < lo {
			s = lo
		}
		if en > hi {
			en = hi
		}
		if s > en {
			continue
		}
		if t.IsReverse() {
			for p := en; p >= s; p-- {
				arr = append(arr, p)
			}
		} else {
			for p := s; p <= en; p++ {
				arr = append(arr, p)
			}
		}
	}
	t.cdsToGenomic = arr
	return arr
}

// CDSLength returns the number of coding bases.
func (t *Transcript) CDSLength() int64 {
	return int64(len(t.cdsGenomicPositions()))
}

// CDSPosition maps a genomic position to its 1-based position on the
// coding sequence. Positions inside the coding span but between coding
// bases (intronic) map to the nearest coding base: the previous one in
// transcription order when usePrevious is set, the next one otherwise.
// Returns -1 outside the coding span.
func (t *Transcript) CDSPosition(pos int64, usePrevious bool) int64 {
	arr := t.cdsGenomicPositions()
	if len(arr) == 0 {
		return -1
	}

	for i, g := range arr {
		if g == pos {
			return int64(i + 1)
		}
	}

	for i := 0; i+1 < len(arr); i++ {
		lo, hi := arr[i], arr[i+1]
		if lo > hi {
			lo, hi = hi, lo
		}
		if pos > lo && pos < hi {
			if usePrevious {
				return int64(i + 1)
			}
			return int64(i + 2)
		}
	}
	return -1
}
