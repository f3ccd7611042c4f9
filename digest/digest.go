package digest

import godigest "github.com/opencontainers/go-digest"

// Digest is a content digest in "algorithm:hex" form (e.g. "sha256:abcdef...").
// Backed by opencontainers/go-digest.
type Digest string

// FromBytes returns the sha256 digest of b.
func FromBytes(b []byte) Digest {
	return Digest(godigest.FromBytes(b))
}

// Parse validates s as a digest string.
func Parse(s string) (Digest, error) {
	d, err := godigest.Parse(s)
	if err != nil {
		return "", err
	}
	return Digest(d), nil
}

// Hex returns the hex portion of the digest, stripping the algorithm prefix.
func (d Digest) Hex() string {
	return godigest.Digest(d).Encoded()
}

// Short returns the first 12 hex characters, for display.
func (d Digest) Short() string {
	h := d.Hex()
	if len(h) > 12 { //nolint:mnd
		return h[:12]
	}
	return h
}

// String returns the full digest string including the algorithm prefix.
func (d Digest) String() string {
	return string(d)
}
