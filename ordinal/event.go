package ordinal

// event packs one endpoint of one gene or read interval into a single
// uint64, laid out (LSB first) as:
//
//	bits  0-29 (30 bits): idx        index into the contig's id vector
//	bit      30 (1 bit):  isGene     1 = gene endpoint, 0 = read endpoint
//	bits 31-47 (17 bits):  lenOrFlag start: effective overlap threshold;
//	                                 end:   0
//	bits 48-63 (16+ bits): pos       genomic coordinate
//
// Natural unsigned ordering of the packed word sorts events first by pos,
// then by lenOrFlag>0 (starts sort after ends at equal pos), which is
// exactly the half-open sweep order the algorithm needs. A single integer
// comparison is also what lets an unsorted run of read events be merged
// directly into an already-sorted run of gene events.
type event uint64

// pos occupies whatever bits remain above lenOrFlag in the 64-bit word —
// 16 bits as laid out here (idx 30 + isGene 1 + lenOrFlag 17 = 48, leaving
// 64-48=16). That bounds a contig to 65,535 nt in this exact layout; see
// the bit-packing portability note in SPEC_FULL.md §10. No contig in this
// module's test data or documented scenarios approaches that bound, and
// widening the word is out of scope (spec.md Non-goals).
const (
	idxBits   = 30
	idxMask   = 1<<idxBits - 1
	isGeneBit = idxBits // bit 30

	lenShift = idxBits + 1 // 31
	lenBits  = 17
	lenMask  = 1<<lenBits - 1

	posShift = lenShift + lenBits // 48

	// MaxIdx is the largest index (gene or read) representable in one chunk
	// or on one contig.
	MaxIdx = idxMask

	// MaxEffectiveLength is the largest effective overlap threshold
	// representable in the 17-bit len_or_flag field.
	MaxEffectiveLength = lenMask
)

func (e event) pos() uint64       { return uint64(e) >> posShift }
func (e event) isGene() bool      { return uint64(e)&(1<<isGeneBit) != 0 }
func (e event) lenOrFlag() uint64 { return (uint64(e) >> lenShift) & lenMask }
func (e event) idx() uint32       { return uint32(uint64(e) & idxMask) }
func (e event) isStart() bool     { return e.lenOrFlag() > 0 }

func pack(pos uint64, isGene bool, lenOrFlag uint64, idx uint32) event {
	v := (pos << posShift) | (lenOrFlag << lenShift) | uint64(idx)
	if isGene {
		v |= 1 << isGeneBit
	}
	return event(v)
}

func newGeneStart(pos uint64, idx uint32) event {
	return pack(pos, true, 1, idx)
}

func newGeneEnd(pos uint64, idx uint32) event {
	return pack(pos, true, 0, idx)
}

func newReadStart(pos uint64, effectiveLen uint64, idx uint32) event {
	return pack(pos, false, effectiveLen, idx)
}

func newReadEnd(pos uint64, idx uint32) event {
	return pack(pos, false, 0, idx)
}
