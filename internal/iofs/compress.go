package iofs

import (
	"bufio"
	"bytes"
	"compress/bzip2"
	"compress/gzip"
	"io"
	"os"

	"github.com/krolaw/zipstream"
	"github.com/xi2/xz"
)

// Compression of an input stream.
type Compression byte

const (
	NoCompression Compression = iota
	Gzip
	Zip
	XZ
	BZip2
)

var magic = []struct {
	c   Compression
	sig []byte
}{
	{Gzip, []byte{0x1f, 0x8b, 0x08}},
	{Zip, []byte{0x50, 0x4b, 0x03, 0x04}},
	{XZ, []byte{0xfd, 0x37, 0x7a, 0x58, 0x5a, 0x00}},
	{BZip2, []byte{0x42, 0x5a, 0x68}},
}

// Detect returns the compression of a buffered stream without consuming it.
func Detect(br *bufio.Reader) Compression {
	head, _ := br.Peek(6)
	for _, v := range magic {
		if bytes.HasPrefix(head, v.sig) {
			return v.c
		}
	}
	return NoCompression
}

// Decompress wraps r with a decompressing reader if needed. A zip archive
// is read from its first file.
func Decompress(r io.Reader) (io.Reader, error) {
	br := bufio.NewReader(r)
	switch Detect(br) {
	case Gzip:
		return gzip.NewReader(br)
	case Zip:
		zr := zipstream.NewReader(br)
		if _, err := zr.Next(); err != nil {
			return nil, err
		}
		return zr, nil
	case BZip2:
		return bzip2.NewReader(br), nil
	case XZ:
		return xz.NewReader(br, 0)
	}
	return br, nil
}

// ReadCloser reads decompressed data and closes the underlying file.
type ReadCloser struct {
	io.Reader
	f *os.File
}

// Close closes the file.
func (rc *ReadCloser) Close() error {
	return rc.f.Close()
}

// Open opens a plain or compressed file for reading. Compression is
// detected from magic bytes, not from the file extension.
func Open(path string) (*ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, ReadFileError(path, err)
	}

	r, err := Decompress(f)
	if err != nil {
		f.Close()
		return nil, DecompressError(path, err)
	}
	return &ReadCloser{Reader: r, f: f}, nil
}
