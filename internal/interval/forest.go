package interval

import (
	"errors"

	bstore "github.com/biogo/store/interval"
)

// Entity is anything indexable by the forest. The forest holds weak
// references only; entities stay owned by the feature model.
type Entity interface {
	Span() *Interval
}

// ErrNotBuilt is returned when a forest is queried before Build.
var ErrNotBuilt = errors.New("interval: forest queried before Build")

// Forest is a per-chromosome interval index. All Add calls must complete
// before Build, and Build before any Stab; the caller enforces the
// single-writer-then-many-readers discipline (no internal locking).
type Forest struct {
	trees  map[string]*bstore.IntTree
	nextID uintptr
	built  bool
}

// NewForest creates an empty forest.
func NewForest() *Forest {
	return &Forest{trees: make(map[string]*bstore.IntTree)}
}

// treeEntry adapts an Entity to biogo's interval tree. Coordinates are
// 1-based inclusive on both sides, so Overlap closes both ends.
type treeEntry struct {
	start, end int64
	id         uintptr
	entity     Entity
}

func (e treeEntry) Overlap(b bstore.IntRange) bool {
	return e.start <= int64(b.End) && e.end >= int64(b.Start)
}

func (e treeEntry) ID() uintptr {
	return e.id
}

func (e treeEntry) Range() bstore.IntRange {
	return bstore.IntRange{Start: int(e.start), End: int(e.end)}
}

// Add inserts an entity into the tree for its (normalized) chromosome.
// Range bookkeeping is deferred to Build.
func (f *Forest) Add(e Entity) error {
	span := e.Span()
	chrom := NormalizeChrom(span.Chrom)
	tree, ok := f.trees[chrom]
	if !ok {
		tree = &bstore.IntTree{}
		f.trees[chrom] = tree
	}
	f.nextID++
	return tree.Insert(treeEntry{start: span.Start, end: span.End, id: f.nextID, entity: e}, true)
}

// Build finalizes every per-chromosome tree for querying.
func (f *Forest) Build() {
	for _, tree := range f.trees {
		tree.AdjustRanges()
	}
	f.built = true
}

// Stab returns every entity on chrom whose interval contains pos.
// Order is unspecified.
func (f *Forest) Stab(chrom string, pos int64) ([]Entity, error) {
	return f.StabRange(chrom, pos, pos)
}

// StabRange returns every entity on chrom whose interval overlaps
// [start, end].
func (f *Forest) StabRange(chrom string, start, end int64) ([]Entity, error) {
	if !f.built {
		return nil, ErrNotBuilt
	}
	tree, ok := f.trees[NormalizeChrom(chrom)]
	if !ok {
		return nil, nil
	}

	var result []Entity
	for _, hit := range tree.Get(treeEntry{start: start, end: end}) {
		result = append(result, hit.(treeEntry).entity)
	}
	return result, nil
}

// Len returns the number of indexed entities.
func (f *Forest) Len() int {
	n := 0
	for _, tree := range f.trees {
		n += tree.Len()
	}
	return n
}

// Chromosomes returns the normalized chromosome keys present in the forest.
func (f *Forest) Chromosomes() []string {
	chroms := make([]string, 0, len(f.trees))
	for chrom := range f.trees {
		chroms = append(chroms, chrom)
	}
	return chroms
}
