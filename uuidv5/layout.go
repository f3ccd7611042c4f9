package uuidv5

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Layout describes how a 16-byte UUID value is laid out in memory.
type Layout string

const (
	// LayoutRFC4122 stores every field big-endian (network order). This is
	// the layout of uuid.UUID.
	LayoutRFC4122 Layout = "rfc4122"
	// LayoutMicrosoft stores time_low, time_mid and time_hi_and_version
	// little-endian and the trailing 8 bytes as-is (Windows GUID, .NET Guid).
	LayoutMicrosoft Layout = "microsoft"
)

// ParseLayout accepts a layout name or one of its aliases.
func ParseLayout(s string) (Layout, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "rfc4122", "network", "big-endian":
		return LayoutRFC4122, nil
	case "microsoft", "guid", "mixed-endian":
		return LayoutMicrosoft, nil
	default:
		return "", fmt.Errorf("unknown layout %q", s)
	}
}

// ToNetworkOrder converts native bytes in layout l to RFC 4122 network order.
func ToNetworkOrder(native [16]byte, l Layout) uuid.UUID {
	if l == LayoutMicrosoft {
		return uuid.UUID(swapFields(native))
	}
	return uuid.UUID(native)
}

// FromNetworkOrder is the inverse of ToNetworkOrder.
func FromNetworkOrder(u uuid.UUID, l Layout) [16]byte {
	if l == LayoutMicrosoft {
		return swapFields(u)
	}
	return u
}

// swapFields reverses octets 0-3, 4-5 and 6-7. Octets 8-15 are byte arrays
// in both layouts and stay put.
func swapFields(b [16]byte) [16]byte {
	b[0], b[1], b[2], b[3] = b[3], b[2], b[1], b[0]
	b[4], b[5] = b[5], b[4]
	b[6], b[7] = b[7], b[6]
	return b
}
