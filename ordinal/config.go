package ordinal

import (
	"fmt"

	"github.com/grailbio/base/errors"
)

// Config holds the tunables from spec.md §6.4.
type Config struct {
	// ChunkSize is the target number of alignment records per chunk. The
	// actual boundary is deferred to the next query (read id) change, so a
	// chunk may hold somewhat more than ChunkSize records.
	ChunkSize int

	// OverlapThreshold is the minimum fraction of an alignment's length
	// that must overlap a gene for the pair to be reported.
	OverlapThreshold float64

	// PrefixGenes, when true, prefixes every emitted gene id with
	// "<contig>_".
	PrefixGenes bool

	// NaiveCutoff is the read-event count at or below which the naive
	// nested-scan algorithm is used for a contig, instead of the merged
	// sweep.
	NaiveCutoff int

	// PresortedCoords, when true, skips sorting gene coordinate events at
	// GeneIndex build time (the caller guarantees the input file already
	// lists genes in ascending coordinate order per contig).
	PresortedCoords bool

	// StrictMode turns an effective-length overflow (§7,
	// ErrEffectiveLengthOverflow) into a hard error instead of clamping
	// with a one-time warning.
	StrictMode bool

	// Parallelism bounds the number of worker goroutines flush may use to
	// sweep independent contigs concurrently. 1 disables the worker pool
	// entirely (the default, and the only mode that preserves strict
	// single-threaded-cooperative behavior from spec.md §5).
	Parallelism int

	// DisjointGenes declares that genes on each contig never overlap one
	// another, for use when building the GeneIndex (see
	// GeneIndex.WithDisjointGenes). ChunkMapper picks the optimized sweep
	// variant (§4.5) from the GeneIndex's own flag; NewChunkMapper does not
	// read this field. It is the caller's responsibility to guarantee the
	// precondition; the core does not check it.
	DisjointGenes bool
}

// DefaultConfig returns the configuration documented in spec.md §6.4.
func DefaultConfig() Config {
	return Config{
		ChunkSize:        1_000_000,
		OverlapThreshold: 0.8,
		PrefixGenes:      false,
		NaiveCutoff:      16,
		PresortedCoords:  false,
		StrictMode:       false,
		Parallelism:      1,
		DisjointGenes:    false,
	}
}

func (c Config) validate() error {
	if c.ChunkSize <= 0 {
		return errors.E(fmt.Sprintf("ordinal: ChunkSize must be > 0, got %d", c.ChunkSize))
	}
	if c.OverlapThreshold <= 0 || c.OverlapThreshold > 1 {
		return errors.E(fmt.Sprintf("ordinal: OverlapThreshold must be in (0, 1], got %v", c.OverlapThreshold))
	}
	if c.NaiveCutoff < 0 {
		return errors.E(fmt.Sprintf("ordinal: NaiveCutoff must be >= 0, got %d", c.NaiveCutoff))
	}
	if c.Parallelism < 1 {
		return errors.E(fmt.Sprintf("ordinal: Parallelism must be >= 1, got %d", c.Parallelism))
	}
	return nil
}
