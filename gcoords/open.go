package gcoords

import (
	"bufio"
	"context"
	"io"
	"strings"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"github.com/klauspost/compress/gzip"
)

// reader wraps the underlying file.File (and, for .gz inputs, the gzip
// decompressor layered on top of it) so both get closed together. Mirrors
// encoding/fastq's fileHandle: one path-transparent open that works
// against any backend github.com/grailbio/base/file supports (local disk,
// S3, ...), with gzip decompression applied transparently when the path
// ends in ".gz".
type reader struct {
	ctx context.Context
	f   file.File
	gz  *gzip.Reader
	r   io.Reader
}

// Open opens path (any scheme github.com/grailbio/base/file supports) for
// reading a gene coordinates or plain-format alignment file, transparently
// gzip-decompressing it if the path ends in ".gz".
func Open(ctx context.Context, path string) (*bufio.Reader, io.Closer, error) {
	f, err := file.Open(ctx, path)
	if err != nil {
		return nil, nil, errors.E(err, "gcoords: open", path)
	}
	rd := &reader{ctx: ctx, f: f, r: f.Reader(ctx)}
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(rd.r)
		if err != nil {
			_ = f.Close(ctx)
			return nil, nil, errors.E(err, "gcoords: gzip open", path)
		}
		rd.gz = gz
		rd.r = gz
	}
	return bufio.NewReader(rd.r), rd, nil
}

func (r *reader) Close() error {
	var errp errors.Once
	if r.gz != nil {
		errp.Set(r.gz.Close())
	}
	errp.Set(r.f.Close(r.ctx))
	return errp.Err()
}
