package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"
	"golang.org/x/exp/mmap"
)

type zstdReadCloser struct {
	dec  *zstd.Decoder
	file *os.File
}

func (z zstdReadCloser) Read(p []byte) (int, error) { return z.dec.Read(p) }

func (z zstdReadCloser) Close() error {
	z.dec.Close()
	return z.file.Close()
}

type mmapReadCloser struct {
	*io.SectionReader
	r *mmap.ReaderAt
}

func (m mmapReadCloser) Close() error { return m.r.Close() }

// openInput memory maps plain files and streams .zst files through a zstd
// decoder.
func openInput(name string) (io.ReadCloser, int64, error) {
	if strings.HasSuffix(name, ".zst") {
		file, err := os.Open(name)
		if err != nil {
			return nil, 0, err
		}
		stat, err := file.Stat()
		if err != nil {
			file.Close()
			return nil, 0, err
		}
		dec, err := zstd.NewReader(file)
		if err != nil {
			file.Close()
			return nil, 0, fmt.Errorf("can`t create zstd reader: %w", err)
		}
		return zstdReadCloser{dec: dec, file: file}, stat.Size(), nil
	}

	r, err := mmap.Open(name)
	if err != nil {
		return nil, 0, err
	}
	size := int64(r.Len())
	return mmapReadCloser{SectionReader: io.NewSectionReader(r, 0, size), r: r}, size, nil
}
