package ledger

import (
	"errors"
	"fmt"
	"strings"

	"github.com/projecteru2/nsuuid/types"
)

const minPrefixLen = 3

// ErrNotFound means no recorded identifier matches a ref.
var ErrNotFound = errors.New("identifier not found")

// Index is the on-disk ledger structure.
type Index struct {
	Records map[string]*types.Identifier `json:"records"` // canonical id → record
}

// Init implements storage.Initer.
func (idx *Index) Init() {
	if idx.Records == nil {
		idx.Records = make(map[string]*types.Identifier)
	}
}

// ResolveRef resolves a ref (exact id, urn:uuid form, or id prefix ≥3 chars)
// to a recorded id.
func ResolveRef(idx *Index, ref string) (string, error) {
	ref = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ref), "urn:uuid:"))
	if idx.Records[ref] != nil {
		return ref, nil
	}
	if len(ref) >= minPrefixLen {
		var match string
		for id := range idx.Records {
			if strings.HasPrefix(id, ref) {
				if match != "" {
					return "", fmt.Errorf("ambiguous ref %q: multiple matches", ref)
				}
				match = id
			}
		}
		if match != "" {
			return match, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrNotFound, ref)
}
