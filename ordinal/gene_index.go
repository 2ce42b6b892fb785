package ordinal

import (
	"sort"

	"blainsmith.com/go/seahash"
	gunsafe "github.com/grailbio/base/unsafe"
)

// GeneIndex is the immutable, per-dataset structure built once from a gene
// coordinates file (spec.md §3.2) and shared read-only across every
// ChunkMapper that processes alignments against it.
type GeneIndex struct {
	coords map[string][]event
	ids    map[string][]string

	// hasDuplicateGeneIDs is set if any gene id appeared more than once,
	// either on one contig or across contigs. Not consulted by the sweep;
	// exposed purely for caller diagnostics (P7/Scenario D).
	hasDuplicateGeneIDs bool

	// disjointGenes, when true, lets ChunkMapper pick the single-scalar
	// fast-path sweep (§4.5's "optimized variant") for every contig in
	// this index. The caller sets this at construction time; the index
	// itself never verifies the precondition.
	disjointGenes bool
}

// HasDuplicateGeneIDs reports whether any gene id was seen more than once
// while building this index.
func (g *GeneIndex) HasDuplicateGeneIDs() bool { return g.hasDuplicateGeneIDs }

// ContigCount returns the number of distinct contigs opened while building
// the index, including any on which no gene was recorded.
func (g *GeneIndex) ContigCount() int { return len(g.coords) }

// GeneCount returns the number of genes annotated on contig, or 0 if the
// contig is unknown to this index.
func (g *GeneIndex) GeneCount(contig string) int { return len(g.ids[contig]) }

// GeneLengths computes the length (end - start) of every gene in the
// index, keyed by gene id (optionally contig-prefixed). This is the §4.6
// ancillary helper: it is a plain scan of the already-built coordinate
// events, not part of the ChunkMapper sweep hot path.
func (g *GeneIndex) GeneLengths(prefix bool) map[string]int {
	out := make(map[string]int)
	for contig, events := range g.coords {
		ids := g.ids[contig]
		pfx := ""
		if prefix {
			pfx = contig + "_"
		}
		for _, ev := range events {
			gid := pfx + ids[ev.idx()]
			if ev.isStart() {
				out[gid] -= int(ev.pos())
			} else {
				out[gid] += int(ev.pos())
			}
		}
	}
	return out
}

// dupSet is a fingerprint-bucketed set of strings, used only during
// GeneIndex construction to detect a repeated gene id without paying for a
// second full-string hash on every insert (construction routinely handles
// millions of gene records). It is not safe for concurrent use — building
// a GeneIndex is a single streaming pass, never parallelized.
type dupSet struct {
	buckets map[uint64][]string
}

func newDupSet() *dupSet {
	return &dupSet{buckets: make(map[uint64][]string)}
}

// addIfNew returns true and records id if it has not been seen before;
// returns false if id is already present.
func (s *dupSet) addIfNew(id string) bool {
	h := seahash.Sum64(gunsafe.StringToBytes(id))
	bucket := s.buckets[h]
	for _, existing := range bucket {
		if existing == id {
			return false
		}
	}
	s.buckets[h] = append(bucket, id)
	return true
}

// GeneIndexBuilder incrementally constructs a GeneIndex from a stream of
// contig headers and gene records (spec.md §4.1). The zero value is not
// usable; use NewGeneIndexBuilder.
type GeneIndexBuilder struct {
	presorted bool

	coords map[string][]event
	ids    map[string][]string

	contig     string
	haveContig bool
	lineNo     int

	seen                *dupSet
	hasDuplicateGeneIDs bool
}

// NewGeneIndexBuilder returns a builder. If presorted is true, Build skips
// sorting each contig's coordinate events (the caller guarantees the
// input already lists genes in ascending order per contig).
func NewGeneIndexBuilder(presorted bool) *GeneIndexBuilder {
	return &GeneIndexBuilder{
		presorted: presorted,
		coords:    make(map[string][]event),
		ids:       make(map[string][]string),
		seen:      newDupSet(),
	}
}

// OpenContig starts a new contig block; all subsequent AddGene calls are
// scoped to it until the next OpenContig.
func (b *GeneIndexBuilder) OpenContig(name string) {
	b.contig = name
	b.haveContig = true
	if _, ok := b.coords[name]; !ok {
		b.coords[name] = nil
		b.ids[name] = nil
	}
}

// AddGene records one gene on the currently open contig. begin and end are
// normalized so that begin <= end, per spec.md §4.1.
func (b *GeneIndexBuilder) AddGene(geneID string, begin, end uint64) error {
	if !b.haveContig || b.contig == "" {
		b.lineNo++
		return orphanGeneRecord(b.lineNo, geneID)
	}
	b.lineNo++
	if begin > end {
		begin, end = end, begin
	}

	ids := b.ids[b.contig]
	if len(ids) >= MaxIdx {
		return geneIdIndexOverflow("contig "+b.contig, len(ids)+1)
	}
	idx := uint32(len(ids))
	b.ids[b.contig] = append(ids, geneID)
	b.coords[b.contig] = append(b.coords[b.contig], newGeneStart(begin, idx), newGeneEnd(end, idx))

	if !b.seen.addIfNew(geneID) {
		b.hasDuplicateGeneIDs = true
	}
	return nil
}

// Build finalizes the index: sorts every contig's coordinate events
// (unless presorted was requested) and returns the immutable GeneIndex.
func (b *GeneIndexBuilder) Build() *GeneIndex {
	if !b.presorted {
		for _, events := range b.coords {
			sort.Slice(events, func(i, j int) bool { return events[i] < events[j] })
		}
	}
	return &GeneIndex{
		coords:              b.coords,
		ids:                 b.ids,
		hasDuplicateGeneIDs: b.hasDuplicateGeneIDs,
	}
}

// WithDisjointGenes marks idx as having only non-overlapping genes per
// contig, enabling the §4.5 single-scalar fast sweep. The caller is
// responsible for the precondition; it is not verified.
func (g *GeneIndex) WithDisjointGenes(disjoint bool) *GeneIndex {
	g.disjointGenes = disjoint
	return g
}
