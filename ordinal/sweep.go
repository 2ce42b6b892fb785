package ordinal

import "sort"

// pairFn receives one qualifying (read index, gene index) pair. It is
// called synchronously from within the sweep/scan; implementations must
// not retain ev slices passed incidentally, though none currently are.
type pairFn func(readIdx, geneIdx uint32)

// sweepMerged is the merged sweep from spec.md §4.5 — the hot path. genes
// must already be sorted ascending (GeneIndex guarantees this); reads need
// not be. It merges both into one ascending queue and walks it once,
// maintaining small open-interval caches on each side.
func sweepMerged(genes, reads []event, yield pairFn) {
	queue := make([]event, 0, len(genes)+len(reads))
	queue = append(queue, genes...)
	queue = append(queue, reads...)
	sort.Slice(queue, func(i, j int) bool { return queue[i] < queue[j] })

	openGenes := make(map[uint32]uint64, 8)
	openReads := make(map[uint32]uint64, 8)

	for _, ev := range queue {
		pos := ev.pos()
		idx := ev.idx()
		if ev.isGene() {
			if ev.isStart() {
				openGenes[idx] = pos
				continue
			}
			gStart := openGenes[idx]
			delete(openGenes, idx)
			for rIdx, rPacked := range openReads {
				rStart := rPacked >> lenBits
				l := rPacked & lenMask
				if overlap(pos, gStart, rStart) >= l {
					yield(rIdx, idx)
				}
			}
		} else {
			if ev.isStart() {
				openReads[idx] = (pos << lenBits) | ev.lenOrFlag()
				continue
			}
			rPacked := openReads[idx]
			delete(openReads, idx)
			rStart := rPacked >> lenBits
			l := rPacked & lenMask
			for gIdx, gStart := range openGenes {
				if overlap(pos, gStart, rStart) >= l {
					yield(idx, gIdx)
				}
			}
		}
	}
}

// sweepDisjoint is the §4.5 "optimized variant": when a contig's genes
// are guaranteed pairwise disjoint, at most one gene is ever open at a
// time, so the small gene map collapses to a scalar. Semantically
// identical to sweepMerged under that precondition.
func sweepDisjoint(genes, reads []event, yield pairFn) {
	queue := make([]event, 0, len(genes)+len(reads))
	queue = append(queue, genes...)
	queue = append(queue, reads...)
	sort.Slice(queue, func(i, j int) bool { return queue[i] < queue[j] })

	var (
		haveGene bool
		geneIdx  uint32
		geneStart uint64
	)
	openReads := make(map[uint32]uint64, 8)

	for _, ev := range queue {
		pos := ev.pos()
		idx := ev.idx()
		if ev.isGene() {
			if ev.isStart() {
				haveGene, geneIdx, geneStart = true, idx, pos
				continue
			}
			haveGene = false
			for rIdx, rPacked := range openReads {
				rStart := rPacked >> lenBits
				l := rPacked & lenMask
				if overlap(pos, geneStart, rStart) >= l {
					yield(rIdx, idx)
				}
			}
		} else {
			if ev.isStart() {
				openReads[idx] = (pos << lenBits) | ev.lenOrFlag()
				continue
			}
			rPacked := openReads[idx]
			delete(openReads, idx)
			rStart := rPacked >> lenBits
			l := rPacked & lenMask
			if haveGene && overlap(pos, geneStart, rStart) >= l {
				yield(idx, geneIdx)
			}
		}
	}
}

// sweepNaive is the naive nested scan from spec.md §4.4, used when a
// contig has few enough read events that merging them into the gene list
// costs more than a plain nested loop. genes must already be sorted
// ascending; reads is the raw paired start/end event list as appended to
// locmap (unsorted, but start always immediately precedes its end).
func sweepNaive(genes, reads []event, yield pairFn) {
	type readTuple struct {
		idx        uint32
		begin, end uint64
		l          uint64
	}
	tuples := make([]readTuple, 0, len(reads)/2)
	for i := 0; i+1 < len(reads); i += 2 {
		s, e := reads[i], reads[i+1]
		tuples = append(tuples, readTuple{idx: s.idx(), begin: s.pos(), end: e.pos(), l: s.lenOrFlag()})
	}

	openGenes := make(map[uint32]uint64, 8)
	for _, ev := range genes {
		idx := ev.idx()
		if ev.isStart() {
			openGenes[idx] = ev.pos()
			continue
		}
		gStart := openGenes[idx]
		gEnd := ev.pos()
		delete(openGenes, idx)
		for _, rt := range tuples {
			lo := gStart
			if rt.begin > lo {
				lo = rt.begin
			}
			hi := gEnd
			if rt.end < hi {
				hi = rt.end
			}
			if hi < lo {
				continue
			}
			if hi-lo >= rt.l {
				yield(rt.idx, idx)
			}
		}
	}
}

// overlap implements the packed-sweep overlap formula from spec.md §4.5 /
// §9: pos - max(gStart, rStart). This is evaluated exactly at the moment
// one of the two intervals closes, so pos is always that interval's own
// end coordinate; min(otherEnd, pos) is implicit since whichever interval
// closes first supplies pos. Deliberately does not add the "+1" the
// spec's naive-illustration helper uses — the packed sweep is the
// production formula and this module matches it bit-for-bit.
func overlap(pos, a, b uint64) uint64 {
	m := a
	if b > m {
		m = b
	}
	if pos < m {
		return 0
	}
	return pos - m
}
