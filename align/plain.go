package align

import (
	"bufio"
	"io"
	"strconv"
	"strings"
)

// plainParser parses a tab- or space-separated alignment line of the form
//
//	query  subject  <ignored>  length  begin  end  ...
//
// This is the minimal format named in ordinal_mapper's reference
// documentation ("See Also: align.plain_mapper") — the simplest case of
// the family of formats (SAM, BLAST, PAF) that are explicitly out of
// scope for the mapping core itself (spec.md §1). Fields beyond the sixth
// are ignored. Lines with fewer than six fields, or whose numeric fields
// don't parse, are skipped rather than erroring, per spec.md §6.1.
func plainParser(line []byte) (Record, bool) {
	fields := strings.Fields(string(line))
	if len(fields) < 6 {
		return Record{}, false
	}
	length, err := strconv.ParseUint(fields[3], 10, 32)
	if err != nil {
		return Record{}, false
	}
	begin, err := strconv.ParseUint(fields[4], 10, 32)
	if err != nil {
		return Record{}, false
	}
	end, err := strconv.ParseUint(fields[5], 10, 32)
	if err != nil {
		return Record{}, false
	}
	return Record{
		Query:   fields[0],
		Subject: fields[1],
		Length:  uint32(length),
		Begin:   uint32(begin),
		End:     uint32(end),
	}, true
}

// plainSource reads plain-format alignment lines from r.
type plainSource struct {
	scanner *bufio.Scanner
}

// NewPlainSource returns a Source that parses whitespace-separated
// alignment lines (see plainParser) from r.
func NewPlainSource(r io.Reader) Source {
	return &plainSource{scanner: bufio.NewScanner(r)}
}

func (s *plainSource) Next() (Record, bool, error) {
	for s.scanner.Scan() {
		line := s.scanner.Bytes()
		if len(line) == 0 || line[0] == '#' {
			continue
		}
		if rec, ok := plainParser(line); ok {
			return rec, true, nil
		}
	}
	if err := s.scanner.Err(); err != nil {
		return Record{}, false, err
	}
	return Record{}, false, nil
}
