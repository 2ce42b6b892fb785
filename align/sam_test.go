package align

import (
	"strings"
	"testing"

	"github.com/grailbio/hts/sam"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// A minimal SAM stream: one header line declaring "chr1", one mapped
// 50M record at 1-based pos 101 (0-based 100), and one unmapped record
// (flag 4, RNAME "*"), which samSource must skip.
const testSAMText = "@HD\tVN:1.6\tSO:unsorted\n" +
	"@SQ\tSN:chr1\tLN:1000\n" +
	"read1\t0\tchr1\t101\t60\t50M\t*\t0\t0\t*\t*\n" +
	"read2\t4\t*\t0\t0\t*\t*\t0\t0\t*\t*\n"

func TestSAMSourceSkipsUnmappedAndComputesLength(t *testing.T) {
	r, err := sam.NewReader(strings.NewReader(testSAMText))
	require.NoError(t, err)
	src := NewSAMSource(r)

	rec, ok, err := src.Next()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, Record{Query: "read1", Subject: "chr1", Length: 50, Begin: 100, End: 150}, rec)

	_, ok, err = src.Next()
	require.NoError(t, err)
	assert.False(t, ok, "the unmapped record must be skipped, leaving the stream exhausted")
}
