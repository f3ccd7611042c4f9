package digest

import "testing"

func TestFromBytes(t *testing.T) {
	// sha256 of the empty string.
	const empty = "sha256:e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"
	d := FromBytes(nil)
	if d.String() != empty {
		t.Errorf("got %s, want %s", d, empty)
	}
	if d.Hex() != empty[len("sha256:"):] {
		t.Errorf("Hex() = %s", d.Hex())
	}
	if d.Short() != "e3b0c44298fc" {
		t.Errorf("Short() = %s", d.Short())
	}
}

func TestParse(t *testing.T) {
	d := FromBytes([]byte("hello"))
	got, err := Parse(d.String())
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got != d {
		t.Errorf("got %s, want %s", got, d)
	}
	if _, err := Parse("sha256:zz"); err == nil {
		t.Error("expected error for malformed digest")
	}
}
