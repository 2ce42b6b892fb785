package align

import (
	"io"

	"github.com/grailbio/hts/sam"
)

// samSource adapts a stream of github.com/grailbio/hts/sam records into
// the Source contract, so ordinal.ChunkMapper can be driven directly off
// a SAM/BAM stream without the core itself depending on an alignment file
// format (spec.md §1).
type samSource struct {
	r *sam.Reader
}

// NewSAMSource returns a Source backed by r. Unmapped records (Ref ==
// nil) are skipped, matching spec.md §6.1's "parser returns a null
// sentinel for ... malformed lines; the core silently drops those".
func NewSAMSource(r *sam.Reader) Source {
	return &samSource{r: r}
}

func (s *samSource) Next() (Record, bool, error) {
	for {
		rec, err := s.r.Read()
		if err == io.EOF {
			return Record{}, false, nil
		}
		if err != nil {
			return Record{}, false, err
		}
		if rec.Ref == nil {
			continue
		}
		start := rec.Start()
		end := rec.End()
		length := end - start
		if length <= 0 {
			continue
		}
		return Record{
			Query:   rec.Name,
			Subject: rec.Ref.Name(),
			Length:  uint32(length),
			Begin:   uint32(start),
			End:     uint32(end),
		}, true, nil
	}
}
