// Package uuidv5 derives RFC 4122 name-based (SHA-1, version 5) UUIDs.
//
// All functions are pure and safe for concurrent use.
package uuidv5

import (
	"crypto/sha1" //nolint:gosec // RFC 4122 version 5 is defined over SHA-1
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

const (
	version     = 5
	versionMask = 0x0fff // low 12 bits of time_hi_and_version kept from the hash
	variantMask = 0x3f   // low 6 bits of clock_seq_hi_and_reserved kept from the hash
	variantBits = 0x80   // binary 10xxxxxx
)

// ErrInternalHash is returned when the hash primitive fails. It is not
// expected to happen for in-memory input.
var ErrInternalHash = errors.New("internal hash error")

// Derive returns the version 5 UUID of name within namespace ns.
func Derive(ns uuid.UUID, name []byte) (uuid.UUID, error) {
	buf := make([]byte, 0, len(ns)+len(name))
	buf = append(buf, ns[:]...)
	buf = append(buf, name...)

	h := sha1.New() //nolint:gosec
	if _, err := h.Write(buf); err != nil {
		return uuid.Nil, fmt.Errorf("%w: %v", ErrInternalHash, err)
	}
	sum := h.Sum(nil)

	var u uuid.UUID
	copy(u[:], sum[:len(u)])

	hiAndVersion := binary.BigEndian.Uint16(u[6:8])
	binary.BigEndian.PutUint16(u[6:8], hiAndVersion&versionMask|version<<12)
	u[8] = u[8]&variantMask | variantBits

	if err := Validate(u); err != nil {
		return uuid.Nil, fmt.Errorf("%w: %v", ErrInternalHash, err)
	}
	return u, nil
}

// DeriveNative is Derive for callers holding UUIDs in a non-network layout.
// The namespace is read in layout l and the result is returned in layout l.
func DeriveNative(ns [16]byte, l Layout, name []byte) ([16]byte, error) {
	u, err := Derive(ToNetworkOrder(ns, l), name)
	if err != nil {
		return [16]byte{}, err
	}
	return FromNetworkOrder(u, l), nil
}

// Validate checks the version and variant bits of a derived UUID.
func Validate(u uuid.UUID) error {
	if v := u.Version(); v != version {
		return fmt.Errorf("uuid %s: version %d, want %d", u, v, version)
	}
	if u.Variant() != uuid.RFC4122 {
		return fmt.Errorf("uuid %s: variant %s, want %s", u, u.Variant(), uuid.RFC4122)
	}
	return nil
}
