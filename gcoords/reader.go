// Package gcoords reads the gene coordinates file format from spec.md
// §6.2 and builds an ordinal.GeneIndex from it. Gene coordinate file
// *parsing* is explicitly an external-collaborator concern (spec.md §1);
// this package is that collaborator, kept separate from the ordinal core
// itself.
package gcoords

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"

	"github.com/grailbio/base/errors"

	"github.com/nucleonics/bio/ordinal"
)

// Options configures how a gene coordinates stream is read.
type Options struct {
	// Presorted, when true, tells the builder to skip sorting each
	// contig's coordinate events — the input file is guaranteed to list
	// genes in ascending coordinate order per contig.
	Presorted bool

	// DisjointGenes marks the resulting index as having only
	// non-overlapping genes per contig, enabling the §4.5 fast sweep. Not
	// verified; the caller vouches for it.
	DisjointGenes bool
}

// Read streams a gene coordinates file (spec.md §6.2) and builds the
// corresponding ordinal.GeneIndex in one pass.
//
// Lines starting with '>' or '#' (but not '>>'/'##', which are ignored
// super-group headers) open a new contig block. Every other non-blank
// line is a tab-separated "gene_id\tbegin\tend" record scoped to the most
// recently opened contig.
func Read(r *bufio.Reader, opts Options) (*ordinal.GeneIndex, error) {
	b := ordinal.NewGeneIndexBuilder(opts.Presorted)
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if line == "" {
			continue
		}
		c0 := line[0]
		if c0 == '>' || c0 == '#' {
			if len(line) >= 2 && line[1] == c0 {
				// ">>" or "##": super-group header, reserved, ignored.
				continue
			}
			b.OpenContig(strings.TrimSpace(line[1:]))
			continue
		}

		fields := strings.Split(line, "\t")
		if len(fields) < 3 {
			return nil, errors.E(ordinal.ErrInvalidCoordinateLine, fmt.Sprintf("line %d: %q", lineNo, line))
		}
		begin, err1 := strconv.ParseUint(strings.TrimSpace(fields[1]), 10, 64)
		end, err2 := strconv.ParseUint(strings.TrimSpace(fields[2]), 10, 64)
		if err1 != nil || err2 != nil {
			return nil, errors.E(ordinal.ErrInvalidCoordinateLine, fmt.Sprintf("line %d: %q", lineNo, line))
		}
		if err := b.AddGene(fields[0], begin, end); err != nil {
			return nil, err
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.E(err, "gcoords: read")
	}

	idx := b.Build()
	return idx.WithDisjointGenes(opts.DisjointGenes), nil
}
