package gcoords

import (
	"bytes"
	"compress/gzip"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenPlainFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "coords.tsv")
	require.NoError(t, os.WriteFile(path, []byte(">N1\ng1\t0\t10\n"), 0o644))

	r, closer, err := Open(context.Background(), path)
	require.NoError(t, err)
	defer closer.Close()

	idx, err := Read(r, Options{})
	require.NoError(t, err)
	assert.Equal(t, 1, idx.ContigCount())
}

func TestOpenGzipFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "coords.tsv.gz")

	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	_, err := gz.Write([]byte(">N1\ng1\t0\t10\n>N2\ng2\t5\t15\n"))
	require.NoError(t, err)
	require.NoError(t, gz.Close())
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

	r, closer, err := Open(context.Background(), path)
	require.NoError(t, err)
	defer closer.Close()

	idx, err := Read(r, Options{})
	require.NoError(t, err)
	assert.Equal(t, 2, idx.ContigCount())
}
