package uuidv5

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
)

// DefaultNamespace is ns:DNS, used when no namespace is given.
var DefaultNamespace = uuid.NameSpaceDNS

var wellKnown = map[string]uuid.UUID{
	"dns":  uuid.NameSpaceDNS,
	"url":  uuid.NameSpaceURL,
	"oid":  uuid.NameSpaceOID,
	"x500": uuid.NameSpaceX500,
}

// ParseNamespace resolves a well-known namespace name (dns, url, oid, x500)
// or any textual UUID form accepted by uuid.Parse. Empty means DefaultNamespace.
func ParseNamespace(s string) (uuid.UUID, error) {
	return ParseNamespaceLayout(s, LayoutRFC4122)
}

// ParseNamespaceLayout is ParseNamespace that also accepts the raw 16 bytes
// of a namespace as "hex:<32 hex digits>" or "base64:<std base64>", read in
// layout l. Textual UUID forms do not depend on l.
func ParseNamespaceLayout(s string, l Layout) (uuid.UUID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return DefaultNamespace, nil
	}
	if ns, ok := wellKnown[strings.ToLower(strings.TrimPrefix(s, "ns:"))]; ok {
		return ns, nil
	}
	if raw, ok, err := rawNamespace(s); ok {
		if err != nil {
			return uuid.Nil, fmt.Errorf("invalid namespace %q: %w", s, err)
		}
		return ToNetworkOrder(raw, l), nil
	}
	ns, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid namespace %q: %w", s, err)
	}
	return ns, nil
}

func rawNamespace(s string) (native [16]byte, ok bool, err error) {
	var b []byte
	switch {
	case strings.HasPrefix(s, "hex:"):
		b, err = hex.DecodeString(strings.TrimPrefix(s, "hex:"))
	case strings.HasPrefix(s, "base64:"):
		b, err = base64.StdEncoding.DecodeString(strings.TrimPrefix(s, "base64:"))
	default:
		return native, false, nil
	}
	if err != nil {
		return native, true, err
	}
	if len(b) != len(native) {
		return native, true, fmt.Errorf("got %d bytes, want %d", len(b), len(native))
	}
	copy(native[:], b)
	return native, true, nil
}

// WellKnownNamespaces returns the predefined namespaces sorted by name.
func WellKnownNamespaces() []string {
	names := make([]string, 0, len(wellKnown))
	for name := range wellKnown {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup returns the well-known namespace with the given name.
func Lookup(name string) (uuid.UUID, bool) {
	ns, ok := wellKnown[name]
	return ns, ok
}
