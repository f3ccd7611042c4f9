// Package source turns a name source (file, literal text or stdin) into the
// name bytes hashed into an identifier.
package source

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/viant/afs"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// StdinPath as a file path reads the name from stdin.
const StdinPath = "-"

// Source selects where the name comes from. Path wins over Content;
// Stdin is used only when neither is set.
type Source struct {
	// Path is a local file path or an afs URL (file://, mem://, ...).
	Path string
	// Content is literal text. A non-nil pointer to "" is a valid empty name.
	Content *string
	// Stdin reads the name from the Reader's stdin.
	Stdin bool
}

// Text returns a Source for literal content.
func Text(s string) Source {
	return Source{Content: &s}
}

// File returns a Source for a file path or URL.
func File(path string) Source {
	return Source{Path: path}
}

// String describes the source for records and logs.
func (s Source) String() string {
	switch {
	case s.Path == StdinPath:
		return "stdin"
	case s.Path != "":
		return "file:" + s.Path
	case s.Content != nil:
		return "content"
	case s.Stdin:
		return "stdin"
	default:
		return "none"
	}
}

// Reader resolves Sources to name bytes.
type Reader struct {
	fs         afs.Service
	stdin      io.Reader
	decodeText bool
	maxSize    int64
}

// New creates a Reader. Files are read through afs.New() unless WithFS is given.
func New(opts ...Option) *Reader {
	r := &Reader{stdin: os.Stdin}
	for _, opt := range opts {
		opt(r)
	}
	if r.fs == nil {
		r.fs = afs.New()
	}
	return r
}

// Read returns the name bytes for src.
func (r *Reader) Read(ctx context.Context, src Source) ([]byte, error) {
	switch {
	case src.Path == StdinPath, src.Path == "" && src.Content == nil && src.Stdin:
		return r.readStdin()
	case src.Path != "":
		return r.readFile(ctx, src.Path)
	case src.Content != nil:
		return []byte(*src.Content), nil
	default:
		return nil, ErrMissingInput
	}
}

func (r *Reader) readFile(ctx context.Context, path string) ([]byte, error) {
	exists, err := r.fs.Exists(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrNotFound, path, err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	obj, err := r.fs.Object(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrNotFound, path, err)
	}
	if obj.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ErrNotFound, path)
	}
	if r.maxSize > 0 && obj.Size() > r.maxSize {
		return nil, fmt.Errorf("%w: %s is %d bytes, limit %d", ErrTooLarge, path, obj.Size(), r.maxSize)
	}
	data, err := r.fs.DownloadWithURL(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", ErrNotFound, path, err)
	}
	// The object may have grown since it was stat'ed.
	if r.maxSize > 0 && int64(len(data)) > r.maxSize {
		return nil, fmt.Errorf("%w: %s is %d bytes, limit %d", ErrTooLarge, path, len(data), r.maxSize)
	}
	if !r.decodeText {
		return data, nil
	}
	return DecodeText(data)
}

func (r *Reader) readStdin() ([]byte, error) {
	if r.stdin == nil {
		return nil, ErrMissingInput
	}
	in := r.stdin
	if r.maxSize > 0 {
		in = io.LimitReader(in, r.maxSize+1)
	}
	data, err := io.ReadAll(in)
	if err != nil {
		return nil, fmt.Errorf("read stdin: %w", err)
	}
	if r.maxSize > 0 && int64(len(data)) > r.maxSize {
		return nil, fmt.Errorf("%w: stdin exceeds %d bytes", ErrTooLarge, r.maxSize)
	}
	if !r.decodeText {
		return data, nil
	}
	return DecodeText(data)
}

// DecodeText decodes b as text and returns it re-encoded as UTF-8. A UTF-8,
// UTF-16LE or UTF-16BE byte order mark selects the encoding and is dropped;
// otherwise b is taken as UTF-8. Invalid sequences become U+FFFD.
func DecodeText(b []byte) ([]byte, error) {
	dec := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	out, _, err := transform.Bytes(dec, b)
	if err != nil {
		return nil, fmt.Errorf("decode text: %w", err)
	}
	if out == nil {
		out = []byte{}
	}
	return out, nil
}
