package cmd

import (
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"

	units "github.com/docker/go-units"
	"github.com/moby/term"

	"github.com/projecteru2/nsuuid/deriver"
	"github.com/projecteru2/nsuuid/ledger"
	"github.com/projecteru2/nsuuid/types"
)

// Output formats for derived identifiers.
const (
	formatString = "string"
	formatURN    = "urn"
	formatHex    = "hex"
	formatBase64 = "base64"
	formatJSON   = "json"
)

func initDeriver() (*deriver.Deriver, error) {
	d, err := deriver.New(conf)
	if err != nil {
		return nil, fmt.Errorf("init deriver: %w", err)
	}
	return d, nil
}

func initLedger() (*ledger.Ledger, error) {
	l, err := ledger.New(conf)
	if err != nil {
		return nil, fmt.Errorf("init ledger: %w", err)
	}
	return l, nil
}

// formatIdentifier renders one identifier. hex and base64 encode the native
// bytes in the configured layout; the other formats are layout-independent.
func formatIdentifier(id *types.Identifier, format string) (string, error) {
	switch format {
	case "", formatString:
		return id.ID, nil
	case formatURN:
		return "urn:uuid:" + id.ID, nil
	case formatHex:
		return id.Native, nil
	case formatBase64:
		raw, err := hex.DecodeString(id.Native)
		if err != nil {
			return "", fmt.Errorf("decode native bytes of %s: %w", id.ID, err)
		}
		return base64.StdEncoding.EncodeToString(raw), nil
	case formatJSON:
		b, err := json.MarshalIndent(id, "", "  ")
		if err != nil {
			return "", err
		}
		return string(b), nil
	default:
		return "", fmt.Errorf("unknown format %q", format)
	}
}

func formatSize(bytes int64) string {
	return units.HumanSize(float64(bytes))
}

func stdinIsTerminal() bool {
	_, isTerminal := term.GetFdInfo(os.Stdin)
	return isTerminal
}
