package config

import (
	"fmt"
	"path/filepath"
	"runtime"

	units "github.com/docker/go-units"
	coretypes "github.com/projecteru2/core/types"
)

// Config holds global nsuuid configuration.
type Config struct {
	// Namespace is the default context namespace: a well-known name
	// (dns, url, oid, x500) or a UUID string.
	// Env: NSUUID_NAMESPACE. Default: dns.
	Namespace string `json:"namespace" mapstructure:"namespace"`
	// NamespaceLayout is the byte layout of a Namespace given as raw bytes
	// ("hex:..." or "base64:..."): rfc4122 or microsoft.
	// Env: NSUUID_NAMESPACE_LAYOUT. Default: rfc4122.
	NamespaceLayout string `json:"namespace_layout" mapstructure:"namespace_layout"`
	// Layout is the native byte layout for hex/base64 output and the
	// native field of JSON records: rfc4122 or microsoft.
	// Env: NSUUID_LAYOUT. Default: rfc4122.
	Layout string `json:"layout" mapstructure:"layout"`
	// Format is the default output format: string, urn, hex, base64 or json.
	Format string `json:"format" mapstructure:"format"`
	// DecodeText decodes file and stdin input as text and re-encodes it as
	// UTF-8 before hashing, instead of hashing the raw bytes.
	DecodeText bool `json:"decode_text" mapstructure:"decode_text"`
	// MaxNameSize caps file and stdin input, in go-units notation ("64MiB").
	// Empty or "0" disables the limit.
	MaxNameSize string `json:"max_name_size" mapstructure:"max_name_size"`
	// PoolSize bounds concurrent derivations for multi-file input.
	// Defaults to runtime.NumCPU() if zero.
	PoolSize int `json:"pool_size" mapstructure:"pool_size"`
	// RootDir holds the ledger of recorded identifiers.
	// Env: NSUUID_ROOT_DIR. Default: $HOME/.nsuuid.
	RootDir string `json:"root_dir" mapstructure:"root_dir"`
	// Log configuration, uses eru core's ServerLogConfig.
	Log *coretypes.ServerLogConfig `json:"log" mapstructure:"log"`
}

// DefaultConfig returns the built-in defaults, overridden later by config
// file, env and flags.
func DefaultConfig() *Config {
	return &Config{
		Namespace:       "dns",
		NamespaceLayout: "rfc4122",
		Layout:          "rfc4122",
		Format:          "string",
		MaxNameSize:     "64MiB",
		PoolSize:        runtime.NumCPU(),
		RootDir:         defaultRootDir(),
		Log: &coretypes.ServerLogConfig{
			Level: "info",
		},
	}
}

// MaxNameBytes parses MaxNameSize. Zero means unlimited.
func (c *Config) MaxNameBytes() (int64, error) {
	if c.MaxNameSize == "" || c.MaxNameSize == "0" {
		return 0, nil
	}
	n, err := units.RAMInBytes(c.MaxNameSize)
	if err != nil {
		return 0, fmt.Errorf("invalid max_name_size %q: %w", c.MaxNameSize, err)
	}
	if n < 0 {
		return 0, fmt.Errorf("invalid max_name_size %q: negative", c.MaxNameSize)
	}
	return n, nil
}

// Derived path helpers.

func (c *Config) LedgerFile() string {
	return filepath.Join(c.RootDir, "ledger.json")
}

func (c *Config) LedgerLock() string {
	return filepath.Join(c.RootDir, "ledger.lock")
}
