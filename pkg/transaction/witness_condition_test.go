package transaction

import (
	"testing"

	"github.com/R3E-Network/neo-sdk-go/internal/testserdes"
	"github.com/R3E-Network/neo-sdk-go/pkg/crypto/keys"
	"github.com/R3E-Network/neo-sdk-go/pkg/io"
	"github.com/R3E-Network/neo-sdk-go/pkg/util"
	"github.com/stretchr/testify/require"
)

func TestWitnessConditionSerDes(t *testing.T) {
	pk, err := keys.NewPrivateKey()
	require.NoError(t, err)
	var b = true
	var conds = []WitnessCondition{
		(*ConditionBoolean)(&b),
		&ConditionNot{Condition: (*ConditionBoolean)(&b)},
		&ConditionAnd{(*ConditionBoolean)(&b), (*ConditionBoolean)(&b)},
		&ConditionOr{(*ConditionBoolean)(&b), (*ConditionBoolean)(&b)},
		&ConditionScriptHash{1, 2, 3},
		(*ConditionGroup)(pk.PublicKey()),
		&ConditionCalledByEntry{},
		&ConditionCalledByContract{1, 2, 3},
		(*ConditionCalledByGroup)(pk.PublicKey()),
	}
	for _, c := range conds {
		w := io.NewBufBinWriter()
		c.EncodeBinary(w.BinWriter)
		require.NoError(t, w.Err)

		r := io.NewBinReaderFromBuf(w.Bytes())
		decoded := DecodeBinaryCondition(r)
		require.NoError(t, r.Err)
		require.Equal(t, c, decoded)
		require.Equal(t, 0, r.Len())
	}
}

func TestWitnessConditionJSON(t *testing.T) {
	pk, err := keys.NewPrivateKey()
	require.NoError(t, err)
	var b = true
	var conds = []WitnessCondition{
		(*ConditionBoolean)(&b),
		&ConditionNot{Condition: (*ConditionBoolean)(&b)},
		&ConditionAnd{(*ConditionBoolean)(&b), (*ConditionBoolean)(&b)},
		&ConditionOr{(*ConditionBoolean)(&b), (*ConditionBoolean)(&b)},
		&ConditionScriptHash{1, 2, 3},
		(*ConditionGroup)(pk.PublicKey()),
		&ConditionCalledByEntry{},
		&ConditionCalledByContract{1, 2, 3},
		(*ConditionCalledByGroup)(pk.PublicKey()),
	}
	for _, c := range conds {
		data, err := c.MarshalJSON()
		require.NoError(t, err)
		decoded, err := UnmarshalConditionJSON(data)
		require.NoError(t, err)
		require.Equal(t, c, decoded)
	}
}

func TestWitnessConditionNesting(t *testing.T) {
	var b = true
	var bc WitnessCondition = (*ConditionBoolean)(&b)

	// Depth 2 is still allowed.
	c := &ConditionAnd{&ConditionOr{bc}, bc}
	data, err := testserdes.EncodeBinary(c)
	require.NoError(t, err)
	r := io.NewBinReaderFromBuf(data)
	decoded := DecodeBinaryCondition(r)
	require.NoError(t, r.Err)
	require.Equal(t, WitnessCondition(c), decoded)

	// Depth 3 is not.
	deep := &ConditionAnd{&ConditionOr{&ConditionNot{Condition: bc}}}
	data, err = testserdes.EncodeBinary(deep)
	require.NoError(t, err)
	r = io.NewBinReaderFromBuf(data)
	require.Nil(t, DecodeBinaryCondition(r))
	require.Error(t, r.Err)

	jdeep, err := deep.MarshalJSON()
	require.NoError(t, err)
	_, err = UnmarshalConditionJSON(jdeep)
	require.Error(t, err)
}

func TestWitnessConditionLimits(t *testing.T) {
	var b = true
	var many = make(ConditionAnd, maxSubitems+1)
	for i := range many {
		many[i] = (*ConditionBoolean)(&b)
	}
	data, err := testserdes.EncodeBinary(&many)
	require.NoError(t, err)
	r := io.NewBinReaderFromBuf(data)
	require.Nil(t, DecodeBinaryCondition(r))
	require.Error(t, r.Err)

	// Empty And/Or are rejected too.
	var empty = ConditionOr{}
	data, err = testserdes.EncodeBinary(&empty)
	require.NoError(t, err)
	r = io.NewBinReaderFromBuf(data)
	require.Nil(t, DecodeBinaryCondition(r))
	require.Error(t, r.Err)
}

func TestWitnessConditionJSONErrors(t *testing.T) {
	var cases = []string{
		`[]`,
		`{}`,
		`{"type":"Qubit"}`,
		`{"type":"Boolean"}`,
		`{"type":"Not"}`,
		`{"type":"And","expressions":[]}`,
		`{"type":"Or"}`,
		`{"type":"ScriptHash"}`,
		`{"type":"Group"}`,
		`{"type":"CalledByContract"}`,
		`{"type":"CalledByGroup","group":"not a key"}`,
	}
	for _, c := range cases {
		_, err := UnmarshalConditionJSON([]byte(c))
		require.Errorf(t, err, "case %s", c)
	}
}

func TestWitnessConditionDecodeErrors(t *testing.T) {
	r := io.NewBinReaderFromBuf([]byte{0xff}) // No such condition type.
	require.Nil(t, DecodeBinaryCondition(r))
	require.Error(t, r.Err)

	r = io.NewBinReaderFromBuf([]byte{byte(WitnessScriptHash), 1, 2, 3}) // Truncated.
	require.Nil(t, DecodeBinaryCondition(r))
	require.Error(t, r.Err)
}

func TestWitnessConditionCopy(t *testing.T) {
	var b = true
	u := util.Uint160{1, 2, 3}
	c := &ConditionAnd{
		&ConditionNot{Condition: (*ConditionBoolean)(&b)},
		(*ConditionScriptHash)(&u),
	}
	cp := c.Copy().(*ConditionAnd)
	require.Equal(t, c, cp)

	// Mutating the copy must not touch the original.
	not := (*cp)[0].(*ConditionNot)
	*not.Condition.(*ConditionBoolean) = false
	require.True(t, bool(*(*c)[0].(*ConditionNot).Condition.(*ConditionBoolean)))
}
