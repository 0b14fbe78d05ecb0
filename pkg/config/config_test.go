package config

import (
	"testing"

	"github.com/R3E-Network/neo-sdk-go/pkg/config/netmode"
	"github.com/stretchr/testify/require"
)

func TestUnmarshal(t *testing.T) {
	data := []byte(`
Magic: 860833102
AddressVersion: 53
MaxValidUntilBlockIncrement: 100
`)
	cfg, err := Unmarshal(data)
	require.NoError(t, err)
	require.Equal(t, netmode.MainNet, cfg.Magic)
	require.EqualValues(t, 0x35, cfg.AddressVersion)
	require.EqualValues(t, 100, cfg.MaxValidUntilBlockIncrement)
	require.Equal(t, DefaultMaxTransactionSize, cfg.MaxTransactionSize)
}

func TestUnmarshalDefaults(t *testing.T) {
	cfg, err := Unmarshal([]byte(`Magic: 42`))
	require.NoError(t, err)
	require.Equal(t, Default(netmode.UnitTestNet), cfg)
}

func TestUnmarshalBad(t *testing.T) {
	_, err := Unmarshal([]byte(`Magic: {`))
	require.Error(t, err)
}

func TestLoadMissing(t *testing.T) {
	_, err := Load("nonexistent.yml")
	require.Error(t, err)
}
