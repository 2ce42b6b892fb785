package ordinal

import (
	"context"
	"math"
	"sync"

	farm "github.com/dgryski/go-farm"
	"github.com/grailbio/base/log"
	gunsafe "github.com/grailbio/base/unsafe"

	"github.com/nucleonics/bio/align"
)

// Result is one chunk's output: the set of gene ids each read overlapped,
// keyed by read id (spec.md §6.3). A read id appearing on multiple
// alignments within the chunk accumulates the union of all its matches
// (P7).
type Result map[string]map[string]struct{}

// ChunkMapper buffers read coordinates per contig while scanning a
// bounded prefix of an alignment stream, and on a chunk boundary merges
// them into a contig's gene events and sweeps for overlaps (spec.md §3.3,
// §4.2, §4.3). It is chunk-scoped and stateful; the zero value is not
// usable, use NewChunkMapper.
type ChunkMapper struct {
	index *GeneIndex
	cfg   Config

	rids   []string
	locmap map[string][]event

	recordsSinceFlush int
	lastQuery         string
	haveLastQuery     bool

	warnOnce sync.Once

	// OnFlushStats, if non-nil, is called once per swept contig during flush
	// with the number of read and gene events swept. This replaces the
	// reference implementation's stats.txt append-mode side effect
	// (spec.md §9) with an opt-in hook that performs no I/O unless the
	// caller wires one. Contigs absent from the GeneIndex are skipped
	// before the hook and are not reported.
	OnFlushStats func(contig string, readEvents, geneEvents int)
}

// NewChunkMapper returns a ChunkMapper bound to the given immutable
// GeneIndex and configuration.
func NewChunkMapper(index *GeneIndex, cfg Config) (*ChunkMapper, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &ChunkMapper{
		index:  index,
		cfg:    cfg,
		locmap: make(map[string][]event),
	}, nil
}

// Ingest buffers one already-parsed alignment record (spec.md §4.2).
// Records with Length == 0 are silently dropped, per spec. If ingesting
// rec crosses a chunk boundary (the query changed and the chunk target
// has been reached), the completed chunk's Result is returned non-nil
// and this record starts the next chunk.
func (m *ChunkMapper) Ingest(rec align.Record) (*Result, error) {
	if rec.Length == 0 {
		return nil, nil
	}
	begin, end := uint64(rec.Begin), uint64(rec.End)
	if begin > end {
		begin, end = end, begin
	}

	var flushed *Result
	if m.haveLastQuery && rec.Query != m.lastQuery && m.recordsSinceFlush >= m.cfg.ChunkSize {
		r := m.flush()
		flushed = &r
		m.reset()
	}

	idx := len(m.rids)
	if idx >= MaxIdx {
		return flushed, geneIdIndexOverflow("chunk", idx+1)
	}

	effective := uint64(math.Ceil(float64(rec.Length) * m.cfg.OverlapThreshold))
	if effective > MaxEffectiveLength {
		if m.cfg.StrictMode {
			return flushed, effectiveLengthOverflow(rec.Length, m.cfg.OverlapThreshold, effective)
		}
		m.warnOnce.Do(func() {
			log.Error.Printf(
				"ordinal: effective overlap length %d exceeds the %d-bit field limit (%d); clamping. "+
					"length=%d threshold=%v. Further occurrences this chunk mapper are not logged.",
				effective, lenBits, MaxEffectiveLength, rec.Length, m.cfg.OverlapThreshold)
		})
		effective = MaxEffectiveLength
	}

	m.rids = append(m.rids, rec.Query)
	m.locmap[rec.Subject] = append(m.locmap[rec.Subject],
		newReadStart(begin, effective, uint32(idx)),
		newReadEnd(end, uint32(idx)))

	m.recordsSinceFlush++
	m.lastQuery = rec.Query
	m.haveLastQuery = true
	return flushed, nil
}

// Flush forces the current chunk's sweep and clears all chunk-local
// state. Call this after the alignment stream is exhausted to collect the
// final (possibly partial) chunk.
func (m *ChunkMapper) Flush() Result {
	r := m.flush()
	m.reset()
	return r
}

// Run drives Ingest over every record src produces, calling onChunk once
// per completed chunk (including the final flush at EOF). ctx is checked
// between chunks only, matching spec.md §5's chunk-boundary-only
// suspension/cancellation contract.
func (m *ChunkMapper) Run(ctx context.Context, src align.Source, onChunk func(Result) error) error {
	for {
		rec, ok, err := src.Next()
		if err != nil {
			return err
		}
		if !ok {
			break
		}
		flushed, err := m.Ingest(rec)
		if err != nil {
			return err
		}
		if flushed != nil {
			if err := onChunk(*flushed); err != nil {
				return err
			}
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
		}
	}
	return onChunk(m.Flush())
}

func (m *ChunkMapper) reset() {
	m.rids = nil
	m.locmap = make(map[string][]event)
	m.recordsSinceFlush = 0
}

// flush runs the sweep (spec.md §4.3) over every contig currently
// buffered in locmap, without resetting state (reset is the caller's
// responsibility, so Ingest can return the flushed chunk before starting
// the next one).
func (m *ChunkMapper) flush() Result {
	result := make(Result)
	if m.cfg.Parallelism <= 1 || len(m.locmap) <= 1 {
		for contig, reads := range m.locmap {
			m.flushContig(contig, reads, result)
		}
		return result
	}

	type job struct {
		contig string
		reads  []event
	}
	buckets := make([][]job, m.cfg.Parallelism)
	for contig, reads := range m.locmap {
		shard := farm.Hash64WithSeed(gunsafe.StringToBytes(contig), 0) % uint64(m.cfg.Parallelism)
		buckets[shard] = append(buckets[shard], job{contig, reads})
	}

	partials := make([]Result, m.cfg.Parallelism)
	var wg sync.WaitGroup
	for i := range buckets {
		if len(buckets[i]) == 0 {
			continue
		}
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			partial := make(Result)
			for _, j := range buckets[i] {
				m.flushContig(j.contig, j.reads, partial)
			}
			partials[i] = partial
		}(i)
	}
	wg.Wait()

	for _, p := range partials {
		mergeResultInto(result, p)
	}
	return result
}

// flushContig sweeps one contig's buffered read events against the
// GeneIndex's gene events for that contig, writing qualifying pairs into
// result. Contigs absent from the GeneIndex are silently skipped (spec.md
// §4.3 step 1, Scenario F).
func (m *ChunkMapper) flushContig(contig string, reads []event, result Result) {
	genes, ok := m.index.coords[contig]
	if !ok {
		if log.At(log.Debug) {
			log.Debug.Printf("ordinal: dropping %d read event(s) on unannotated contig %q", len(reads), contig)
		}
		return
	}
	ids := m.index.ids[contig]

	if m.OnFlushStats != nil {
		m.OnFlushStats(contig, len(reads), len(genes))
	}

	pfx := ""
	if m.cfg.PrefixGenes {
		pfx = contig + "_"
	}
	yield := func(readIdx, geneIdx uint32) {
		rid := m.rids[readIdx]
		set, ok := result[rid]
		if !ok {
			set = make(map[string]struct{})
			result[rid] = set
		}
		set[pfx+ids[geneIdx]] = struct{}{}
	}

	switch {
	case len(reads) <= m.cfg.NaiveCutoff:
		sweepNaive(genes, reads, yield)
	case m.index.disjointGenes:
		sweepDisjoint(genes, reads, yield)
	default:
		sweepMerged(genes, reads, yield)
	}
}

func mergeResultInto(dst, src Result) {
	for read, genes := range src {
		set, ok := dst[read]
		if !ok {
			dst[read] = genes
			continue
		}
		for g := range genes {
			set[g] = struct{}{}
		}
	}
}
