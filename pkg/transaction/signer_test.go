package transaction

import (
	"testing"

	"github.com/R3E-Network/neo-sdk-go/internal/testserdes"
	"github.com/R3E-Network/neo-sdk-go/pkg/crypto/keys"
	"github.com/R3E-Network/neo-sdk-go/pkg/io"
	"github.com/R3E-Network/neo-sdk-go/pkg/util"
	"github.com/stretchr/testify/require"
)

func TestSignerEncodeDecodeBinary(t *testing.T) {
	expected := &Signer{
		Account: util.Uint160{1, 2, 3, 4, 5},
		Scopes:  CustomContracts,
		AllowedContracts: []util.Uint160{
			{1, 2, 3, 4},
			{6, 7, 8, 9},
		},
	}
	testserdes.EncodeDecodeBinary(t, expected, new(Signer))

	expected = &Signer{
		Account: util.Uint160{1, 2, 3, 4, 5},
		Scopes:  Global,
	}
	testserdes.EncodeDecodeBinary(t, expected, new(Signer))

	priv, err := keys.NewPrivateKey()
	require.NoError(t, err)
	expected = &Signer{
		Account:       util.Uint160{1, 2, 3, 4, 5},
		Scopes:        CalledByEntry | CustomGroups,
		AllowedGroups: []*keys.PublicKey{priv.PublicKey()},
	}
	testserdes.EncodeDecodeBinary(t, expected, new(Signer))

	var b = true
	expected = &Signer{
		Account: util.Uint160{1, 2, 3, 4, 5},
		Scopes:  Rules,
		Rules: []WitnessRule{{
			Action:    WitnessAllow,
			Condition: (*ConditionBoolean)(&b),
		}},
	}
	testserdes.EncodeDecodeBinary(t, expected, new(Signer))
}

func TestSignerDecodeLimits(t *testing.T) {
	contracts := make([]util.Uint160, maxSubitems+1)
	c := &Signer{
		Account:          util.Uint160{1, 2, 3, 4, 5},
		Scopes:           CustomContracts,
		AllowedContracts: contracts,
	}
	data, err := testserdes.EncodeBinary(c)
	require.NoError(t, err)
	err = testserdes.DecodeBinary(data, new(Signer))
	require.Error(t, err)
	require.Contains(t, err.Error(), "allowed contracts")
	require.Contains(t, err.Error(), "17")
	require.Contains(t, err.Error(), "16")
}

func TestSignerDecodeBadScopes(t *testing.T) {
	u := util.Uint160{1, 2, 3, 4, 5}

	// Global combined with CalledByEntry.
	w := io.NewBufBinWriter()
	w.WriteBytes(u[:])
	w.WriteB(byte(Global | CalledByEntry))
	require.NoError(t, w.Err)
	require.Error(t, testserdes.DecodeBinary(w.Bytes(), new(Signer)))

	// Unknown scope bit.
	w = io.NewBufBinWriter()
	w.WriteBytes(u[:])
	w.WriteB(0x02)
	require.NoError(t, w.Err)
	require.Error(t, testserdes.DecodeBinary(w.Bytes(), new(Signer)))
}

func TestSignerCopy(t *testing.T) {
	var s *Signer
	require.Nil(t, s.Copy())

	var b = true
	priv, err := keys.NewPrivateKey()
	require.NoError(t, err)
	s = &Signer{
		Account:          util.Uint160{1, 2, 3, 4, 5},
		Scopes:           CustomContracts | CustomGroups | Rules,
		AllowedContracts: []util.Uint160{{1, 2, 3}},
		AllowedGroups:    []*keys.PublicKey{priv.PublicKey()},
		Rules: []WitnessRule{{
			Action:    WitnessAllow,
			Condition: (*ConditionBoolean)(&b),
		}},
	}
	cp := s.Copy()
	require.Equal(t, s, cp)

	cp.AllowedContracts[0] = util.Uint160{9}
	require.Equal(t, util.Uint160{1, 2, 3}, s.AllowedContracts[0])

	*cp.Rules[0].Condition.(*ConditionBoolean) = false
	require.True(t, bool(*s.Rules[0].Condition.(*ConditionBoolean)))
}
