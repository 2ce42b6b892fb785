// Package align defines the narrow contract ordinal.ChunkMapper consumes
// (spec.md §6.1). Alignment file parsing (SAM/BLAST/PAF-like formats) is
// explicitly out of scope for the mapping core; this package only
// specifies the already-parsed tuple shape and provides a couple of
// reference sources to drive it with.
package align

// Record is one already-parsed alignment: a read (Query) placed onto a
// contig (Subject) at [Begin, End] with a reported alignment Length. This
// is the (query, subject, length, begin, end) tuple from spec.md §1/§6.1;
// fields an upstream parser may carry beyond these (mapping quality,
// CIGAR, etc.) are not part of the contract and are dropped before
// reaching ordinal.
type Record struct {
	Query   string
	Subject string
	Length  uint32
	Begin   uint32
	End     uint32
}

// Source yields parsed alignment records one at a time. Next returns
// ok == false at end of stream, and a non-nil err only for an
// unrecoverable read error — a malformed or header line is not an error,
// it is simply skipped internally and Next proceeds to the next line.
type Source interface {
	Next() (rec Record, ok bool, err error)
}

// Parser parses one alignment line into a Record. It returns ok == false
// for header lines, blank lines, or lines it cannot parse; the caller
// (typically a Source implementation) silently skips those, matching
// spec.md §6.1's "parser returns a null/error sentinel ... the core
// silently drops those".
type Parser func(line []byte) (rec Record, ok bool)
