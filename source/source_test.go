package source

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/viant/afs"
	"github.com/viant/afs/storage"
)

func writeFile(t *testing.T, content []byte) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "name.txt")
	if err := os.WriteFile(p, content, 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	return p
}

// --- Read ---

func TestRead_Content(t *testing.T) {
	got, err := New().Read(context.Background(), Text("www.example.com"))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if string(got) != "www.example.com" {
		t.Errorf("got %q", got)
	}
}

func TestRead_EmptyContent(t *testing.T) {
	got, err := New().Read(context.Background(), Text(""))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected empty name, got %q", got)
	}
}

func TestRead_MissingInput(t *testing.T) {
	_, err := New().Read(context.Background(), Source{})
	if !errors.Is(err, ErrMissingInput) {
		t.Errorf("expected ErrMissingInput, got %v", err)
	}
}

func TestRead_File(t *testing.T) {
	p := writeFile(t, []byte("hello\nworld"))
	got, err := New().Read(context.Background(), File(p))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if string(got) != "hello\nworld" {
		t.Errorf("got %q", got)
	}
}

func TestRead_FileTakesPrecedence(t *testing.T) {
	p := writeFile(t, []byte("from-file"))
	content := "from-content"
	got, err := New().Read(context.Background(), Source{Path: p, Content: &content})
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if string(got) != "from-file" {
		t.Errorf("got %q, want file content", got)
	}
}

func TestRead_FileNotFound(t *testing.T) {
	_, err := New().Read(context.Background(), File("/does/not/exist"))
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestRead_Directory(t *testing.T) {
	_, err := New().Read(context.Background(), File(t.TempDir()))
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for directory, got %v", err)
	}
}

func TestRead_FileTooLarge(t *testing.T) {
	p := writeFile(t, bytes.Repeat([]byte("a"), 100))
	_, err := New(WithMaxSize(10)).Read(context.Background(), File(p))
	if !errors.Is(err, ErrTooLarge) {
		t.Errorf("expected ErrTooLarge, got %v", err)
	}
}

// grownFS reports a stale size for every object, as if the file grew
// between stat and download.
type grownFS struct{ afs.Service }

func (g grownFS) Object(ctx context.Context, URL string, options ...storage.Option) (storage.Object, error) {
	o, err := g.Service.Object(ctx, URL, options...)
	if err != nil {
		return nil, err
	}
	return staleObject{o}, nil
}

type staleObject struct{ storage.Object }

func (staleObject) Size() int64 { return 1 }

func TestRead_FileGrewAfterStat(t *testing.T) {
	p := writeFile(t, bytes.Repeat([]byte("x"), 100))
	_, err := New(WithFS(grownFS{afs.New()}), WithMaxSize(10)).Read(context.Background(), File(p))
	if !errors.Is(err, ErrTooLarge) {
		t.Errorf("expected ErrTooLarge, got %v", err)
	}
}

func TestRead_RawBytesByDefault(t *testing.T) {
	raw := []byte{0xef, 0xbb, 0xbf, 'h', 'i', 0xff}
	p := writeFile(t, raw)
	got, err := New().Read(context.Background(), File(p))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if !bytes.Equal(got, raw) {
		t.Errorf("got %x, want raw %x", got, raw)
	}
}

func TestRead_DecodeText(t *testing.T) {
	p := writeFile(t, []byte{0xef, 0xbb, 0xbf, 'h', 'i'})
	got, err := New(WithDecodeText(true)).Read(context.Background(), File(p))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if string(got) != "hi" {
		t.Errorf("got %q, want BOM stripped", got)
	}
}

func TestRead_Stdin(t *testing.T) {
	r := New(WithStdin(strings.NewReader("piped")))
	for _, src := range []Source{{Stdin: true}, File(StdinPath)} {
		got, err := r.Read(context.Background(), src)
		if err != nil {
			t.Fatalf("Read(%s): %v", src, err)
		}
		if string(got) != "piped" {
			t.Errorf("Read(%s) = %q", src, got)
		}
		r.stdin = strings.NewReader("piped")
	}
}

func TestRead_StdinTooLarge(t *testing.T) {
	r := New(WithStdin(strings.NewReader("0123456789")), WithMaxSize(4))
	_, err := r.Read(context.Background(), Source{Stdin: true})
	if !errors.Is(err, ErrTooLarge) {
		t.Errorf("expected ErrTooLarge, got %v", err)
	}
}

// --- DecodeText ---

func TestDecodeText(t *testing.T) {
	tests := []struct {
		name string
		in   []byte
		want string
	}{
		{"plain", []byte("abc"), "abc"},
		{"empty", nil, ""},
		{"utf8 bom", []byte("\xef\xbb\xbfabc"), "abc"},
		{"utf16le bom", []byte("\xff\xfea\x00b\x00"), "ab"},
		{"utf16be bom", []byte("\xfe\xff\x00a\x00b"), "ab"},
		{"invalid byte", []byte("a\xffb"), "a�b"},
		{"multibyte", []byte("世界"), "世界"},
	}
	for _, tt := range tests {
		got, err := DecodeText(tt.in)
		if err != nil {
			t.Fatalf("%s: %v", tt.name, err)
		}
		if string(got) != tt.want {
			t.Errorf("%s: got %q, want %q", tt.name, got, tt.want)
		}
	}
}

// --- String ---

func TestSource_String(t *testing.T) {
	tests := map[string]Source{
		"content":   Text("x"),
		"file:/a/b": File("/a/b"),
		"stdin":     {Stdin: true},
		"none":      {},
	}
	for want, src := range tests {
		if got := src.String(); got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	}
}
