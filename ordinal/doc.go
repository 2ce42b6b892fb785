// Package ordinal implements the ordinal read-to-gene mapping core: given
// a GeneIndex built once from a gene coordinates file, and a stream of
// already-parsed read alignments, it reports for every read the set of
// genes it overlaps by at least a configurable fraction of its alignment
// length.
//
// The algorithm flattens gene and read intervals into packed uint64
// coordinate events and sweeps them in one linear pass; see event.go for
// the bit layout and sweep.go for the sweep itself. GeneIndex is built
// once and immutable thereafter; ChunkMapper is stateful and chunk-scoped,
// buffering reads per contig until a chunk boundary, then merging and
// sweeping.
package ordinal
