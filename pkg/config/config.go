// Package config holds the protocol parameters the SDK needs to build and
// sign transactions. They are explicit values passed around by callers, not
// process-wide mutable state.
package config

import (
	"fmt"
	"os"

	"github.com/R3E-Network/neo-sdk-go/pkg/config/netmode"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultAddressVersion is the address version used by N3 networks.
	DefaultAddressVersion = 0x35
	// DefaultMaxValidUntilBlockIncrement is the default upper bound for
	// the transaction lifetime measured in blocks.
	DefaultMaxValidUntilBlockIncrement = 5760
	// DefaultMaxTransactionSize is the protocol maximum of a serialized
	// transaction in bytes.
	DefaultMaxTransactionSize = 102400
)

// ProtocolConfiguration is the collection of network-specific protocol
// parameters relevant at the SDK boundary.
type ProtocolConfiguration struct {
	// Magic is the network identifier mixed into the signable hash.
	Magic netmode.Magic `yaml:"Magic"`
	// AddressVersion is the version byte of the address text format.
	AddressVersion byte `yaml:"AddressVersion"`
	// MaxValidUntilBlockIncrement is the upper bound of a transaction
	// lifetime measured in blocks.
	MaxValidUntilBlockIncrement uint32 `yaml:"MaxValidUntilBlockIncrement"`
	// MaxTransactionSize is the maximum size of a serialized transaction.
	MaxTransactionSize int `yaml:"MaxTransactionSize"`
}

// Default returns a ProtocolConfiguration with N3 defaults and the given
// network magic.
func Default(magic netmode.Magic) ProtocolConfiguration {
	return ProtocolConfiguration{
		Magic:                       magic,
		AddressVersion:              DefaultAddressVersion,
		MaxValidUntilBlockIncrement: DefaultMaxValidUntilBlockIncrement,
		MaxTransactionSize:          DefaultMaxTransactionSize,
	}
}

// Load reads a ProtocolConfiguration from the given YAML file, filling
// unset limits with defaults.
func Load(path string) (ProtocolConfiguration, error) {
	var cfg ProtocolConfiguration

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("unable to read config: %w", err)
	}
	return Unmarshal(data)
}

// Unmarshal parses a ProtocolConfiguration from YAML data.
func Unmarshal(data []byte) (ProtocolConfiguration, error) {
	var cfg ProtocolConfiguration

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("unable to parse config: %w", err)
	}
	if cfg.AddressVersion == 0 {
		cfg.AddressVersion = DefaultAddressVersion
	}
	if cfg.MaxValidUntilBlockIncrement == 0 {
		cfg.MaxValidUntilBlockIncrement = DefaultMaxValidUntilBlockIncrement
	}
	if cfg.MaxTransactionSize == 0 {
		cfg.MaxTransactionSize = DefaultMaxTransactionSize
	}
	return cfg, nil
}
