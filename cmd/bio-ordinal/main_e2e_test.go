package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nucleonics/bio/ordinal"
)

func TestEndToEndSmall(t *testing.T) {
	dir := t.TempDir()

	coordsPath := filepath.Join(dir, "coords.tsv")
	require.NoError(t, os.WriteFile(coordsPath, []byte(strings.Join([]string{
		">N1",
		"g1\t100\t200",
		"g2\t300\t400",
	}, "\n")+"\n"), 0o644))

	alignPath := filepath.Join(dir, "align.txt")
	require.NoError(t, os.WriteFile(alignPath, []byte(strings.Join([]string{
		"read1\tN1\t99\t50\t150\t199",
		"read2\tN1\t99\t50\t310\t359",
		"read3\tN1\t99\t50\t500\t549", // outside any gene
	}, "\n")+"\n"), 0o644))

	outputPath := filepath.Join(dir, "out.tsv")

	cfg := ordinal.DefaultConfig()
	require.NoError(t, run(context.Background(), coordsPath, alignPath, outputPath, cfg))

	got, err := os.ReadFile(outputPath)
	require.NoError(t, err)
	assert.Equal(t, "read1\tg1:1\nread2\tg2:1\n", string(got))
}

func TestEndToEndMissingRequiredFlags(t *testing.T) {
	err := run(context.Background(), "", "/does/not/matter", "", ordinal.DefaultConfig())
	require.Error(t, err)
}
