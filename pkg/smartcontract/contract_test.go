package smartcontract

import (
	"testing"

	"github.com/R3E-Network/neo-sdk-go/pkg/crypto/keys"
	"github.com/R3E-Network/neo-sdk-go/pkg/vm/emit"
	"github.com/R3E-Network/neo-sdk-go/pkg/vm/opcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateSignatureRedeemScript(t *testing.T) {
	priv, err := keys.NewPrivateKey()
	require.NoError(t, err)
	script, err := CreateSignatureRedeemScript(priv.PublicKey())
	require.NoError(t, err)

	require.Equal(t, 40, len(script))
	assert.EqualValues(t, opcode.PUSHDATA1, script[0])
	assert.EqualValues(t, 33, script[1])
	assert.Equal(t, priv.PublicKey().Bytes(), script[2:35])
	assert.EqualValues(t, opcode.SYSCALL, script[35])
}

func TestCreateMultiSigRedeemScript(t *testing.T) {
	val1, _ := keys.NewPrivateKey()
	val2, _ := keys.NewPrivateKey()
	val3, _ := keys.NewPrivateKey()
	pubs := keys.PublicKeys{val1.PublicKey(), val2.PublicKey(), val3.PublicKey()}

	script, err := CreateMultiSigRedeemScript(3, pubs)
	require.NoError(t, err)

	assert.EqualValues(t, opcode.PUSH3, script[0])
	sorted := pubs.Copy()
	sorted.Sort()
	for i := 0; i < 3; i++ {
		start := 1 + i*35
		assert.EqualValues(t, opcode.PUSHDATA1, script[start])
		assert.EqualValues(t, 33, script[start+1])
		assert.Equal(t, sorted[i].Bytes(), script[start+2:start+35])
	}
	assert.EqualValues(t, opcode.PUSH3, script[106])
	assert.EqualValues(t, opcode.SYSCALL, script[107])

	t.Run("m too small", func(t *testing.T) {
		_, err := CreateMultiSigRedeemScript(0, pubs)
		require.Error(t, err)
	})
	t.Run("m bigger than the number of keys", func(t *testing.T) {
		_, err := CreateMultiSigRedeemScript(4, pubs)
		require.Error(t, err)
	})
	t.Run("input is not mutated", func(t *testing.T) {
		unsorted := keys.PublicKeys{pubs[2], pubs[0], pubs[1]}
		cp := unsorted.Copy()
		_, err := CreateMultiSigRedeemScript(2, unsorted)
		require.NoError(t, err)
		require.Equal(t, cp, unsorted)
	})
}

func TestCreateDefaultMultiSigRedeemScript(t *testing.T) {
	var pubs keys.PublicKeys
	for i := 0; i < 10; i++ {
		priv, err := keys.NewPrivateKey()
		require.NoError(t, err)
		pubs = append(pubs, priv.PublicKey())
	}

	// 7 out of 10
	script, err := CreateDefaultMultiSigRedeemScript(pubs)
	require.NoError(t, err)
	checkM(t, script, 7)

	// 6 out of 10
	script, err = CreateMajorityMultiSigRedeemScript(pubs)
	require.NoError(t, err)
	checkM(t, script, 6)
}

func checkM(t *testing.T, script []byte, m int) {
	require.EqualValues(t, byte(opcode.PUSH0)+byte(m), script[0])
	require.EqualValues(t, opcode.SYSCALL, script[len(script)-5])
	require.EqualValues(t, emit.InteropNameToID(emit.SystemCryptoCheckMultisig),
		uint32(script[len(script)-4])|uint32(script[len(script)-3])<<8|
			uint32(script[len(script)-2])<<16|uint32(script[len(script)-1])<<24)
}
