package source

import (
	"io"

	"github.com/viant/afs"
)

// Option configures a Reader.
type Option func(*Reader)

// WithFS sets the file system used to read name files.
func WithFS(fs afs.Service) Option {
	return func(r *Reader) {
		r.fs = fs
	}
}

// WithDecodeText re-encodes file content as UTF-8 after decoding it as text.
func WithDecodeText(decode bool) Option {
	return func(r *Reader) {
		r.decodeText = decode
	}
}

// WithMaxSize caps the size of file and stdin input. Zero or negative
// disables the limit.
func WithMaxSize(n int64) Option {
	return func(r *Reader) {
		r.maxSize = n
	}
}

// WithStdin sets the reader used for stdin sources.
func WithStdin(in io.Reader) Option {
	return func(r *Reader) {
		r.stdin = in
	}
}
