package ordinal

import (
	"fmt"

	"github.com/grailbio/base/errors"
)

// Sentinel errors identifying the error kinds from the ordinal mapping
// spec. Use errors.Is(err, ErrOrphanGeneRecord) etc. to test for a
// specific kind; callers typically just abort the pipeline on any of
// these.
var (
	// ErrInvalidCoordinateLine is returned when a gene coordinates line has
	// a missing or non-integer begin/end.
	ErrInvalidCoordinateLine = errors.New("ordinal: invalid coordinate line")

	// ErrOrphanGeneRecord is returned when a gene record appears before any
	// contig header in a gene coordinates file.
	ErrOrphanGeneRecord = errors.New("ordinal: gene record before contig header")

	// ErrGeneIdIndexOverflow is returned when a contig would need more than
	// MaxIdx genes, or a chunk more than MaxIdx read alignments.
	ErrGeneIdIndexOverflow = errors.New("ordinal: too many genes or reads for one 30-bit index")

	// ErrEffectiveLengthOverflow is returned in StrictMode when
	// ceil(length * threshold) exceeds MaxEffectiveLength.
	ErrEffectiveLengthOverflow = errors.New("ordinal: effective overlap length exceeds 17-bit field")
)

func invalidCoordinateLine(line string) error {
	return errors.E(ErrInvalidCoordinateLine, fmt.Sprintf("line: %q", line))
}

func orphanGeneRecord(lineNo int, line string) error {
	return errors.E(ErrOrphanGeneRecord, fmt.Sprintf("line %d: %q", lineNo, line))
}

func geneIdIndexOverflow(where string, n int) error {
	return errors.E(ErrGeneIdIndexOverflow, fmt.Sprintf("%s: %d entries exceeds MaxIdx=%d", where, n, MaxIdx))
}

func effectiveLengthOverflow(length uint32, threshold float64, effective uint64) error {
	return errors.E(ErrEffectiveLengthOverflow,
		fmt.Sprintf("length=%d threshold=%v effective=%d exceeds MaxEffectiveLength=%d",
			length, threshold, effective, MaxEffectiveLength))
}
