package types

import "time"

// Identifier is the result of one derivation, as printed by --format json
// and persisted by the ledger.
type Identifier struct {
	ID        string `json:"id"`        // canonical 8-4-4-4-12 lowercase form
	Namespace string `json:"namespace"` // canonical form of the context namespace
	Version   int    `json:"version"`
	Variant   string `json:"variant"`

	Source string `json:"source"` // "content", "stdin" or "file:<path>"
	Size   int64  `json:"size"`   // name bytes hashed after the namespace
	Digest string `json:"digest"` // sha256 of the name bytes

	// Native is the hex encoding of the 16 bytes in Layout.
	Native string `json:"native"`
	Layout string `json:"layout"`

	CreatedAt time.Time `json:"created_at"`
}
