package transaction

import (
	"encoding/json"
	"testing"

	"github.com/R3E-Network/neo-sdk-go/internal/testserdes"
	"github.com/R3E-Network/neo-sdk-go/pkg/io"
	"github.com/stretchr/testify/require"
)

func TestWitnessRuleSerDes(t *testing.T) {
	var b = true
	expected := &WitnessRule{
		Action:    WitnessAllow,
		Condition: (*ConditionBoolean)(&b),
	}
	testserdes.EncodeDecodeBinary(t, expected, new(WitnessRule))

	expected.Action = WitnessDeny
	expected.Condition = &ConditionNot{Condition: &ConditionCalledByEntry{}}
	testserdes.EncodeDecodeBinary(t, expected, new(WitnessRule))
}

func TestWitnessRuleDecodeErrors(t *testing.T) {
	var b = true
	bad := &WitnessRule{
		Action:    WitnessAction(0x42),
		Condition: (*ConditionBoolean)(&b),
	}
	w := io.NewBufBinWriter()
	bad.EncodeBinary(w.BinWriter)
	require.NoError(t, w.Err)
	require.Error(t, testserdes.DecodeBinary(w.Bytes(), new(WitnessRule)))
}

func TestWitnessRuleJSON(t *testing.T) {
	var b = true
	expected := &WitnessRule{
		Action:    WitnessAllow,
		Condition: (*ConditionBoolean)(&b),
	}
	testserdes.MarshalUnmarshalJSON(t, expected, new(WitnessRule))

	data, err := json.Marshal(expected)
	require.NoError(t, err)
	require.Equal(t, `{"action":"Allow","condition":{"type":"Boolean","expression":true}}`, string(data))

	require.Error(t, json.Unmarshal([]byte(`{"action":"Allow"}`), new(WitnessRule)))
	require.Error(t, json.Unmarshal([]byte(`{"action":"Whatever","condition":{"type":"CalledByEntry"}}`), new(WitnessRule)))
}

func TestWitnessRuleCopy(t *testing.T) {
	var b = true
	rule := &WitnessRule{
		Action:    WitnessDeny,
		Condition: (*ConditionBoolean)(&b),
	}
	cp := rule.Copy()
	require.Equal(t, rule, cp)

	*cp.Condition.(*ConditionBoolean) = false
	require.True(t, bool(*rule.Condition.(*ConditionBoolean)))
}
