package transaction

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/R3E-Network/neo-sdk-go/pkg/crypto/keys"
	"github.com/R3E-Network/neo-sdk-go/pkg/io"
	"github.com/R3E-Network/neo-sdk-go/pkg/util"
)

// WitnessConditionType encodes a type of witness condition.
type WitnessConditionType byte

const (
	// WitnessBoolean is a generic boolean condition.
	WitnessBoolean WitnessConditionType = 0x00
	// WitnessNot reverses another condition.
	WitnessNot WitnessConditionType = 0x01
	// WitnessAnd means that all conditions must be met.
	WitnessAnd WitnessConditionType = 0x02
	// WitnessOr means that any of conditions must be met.
	WitnessOr WitnessConditionType = 0x03
	// WitnessScriptHash matches executing contract's script hash.
	WitnessScriptHash WitnessConditionType = 0x18
	// WitnessGroup matches executing contract's group key.
	WitnessGroup WitnessConditionType = 0x19
	// WitnessCalledByEntry matches when the current script is an entry script
	// or is called by an entry script.
	WitnessCalledByEntry WitnessConditionType = 0x20
	// WitnessCalledByContract matches when the current script is called by
	// the specified contract.
	WitnessCalledByContract WitnessConditionType = 0x28
	// WitnessCalledByGroup matches when the current script is called by a
	// contract from the specified group.
	WitnessCalledByGroup WitnessConditionType = 0x29

	// MaxConditionNesting limits the maximum allowed level of condition
	// nesting.
	MaxConditionNesting = 2
)

// WitnessCondition is a condition of a WitnessRule.
type WitnessCondition interface {
	// Type returns a type of this condition.
	Type() WitnessConditionType
	// DecodeBinarySpecific decodes type-specific binary data from the given
	// reader (not including the type itself).
	DecodeBinarySpecific(*io.BinReader, int)
	io.Serializable
	json.Marshaler
	// Copy returns a deep copy of the condition.
	Copy() WitnessCondition
}

type (
	// ConditionBoolean is a boolean condition type.
	ConditionBoolean bool
	// ConditionNot inverses the meaning of the contained condition.
	ConditionNot struct {
		Condition WitnessCondition
	}
	// ConditionAnd is a set of conditions required to match.
	ConditionAnd []WitnessCondition
	// ConditionOr is a set of conditions one of which is required to match.
	ConditionOr []WitnessCondition
	// ConditionScriptHash is a condition matching executing script hash.
	ConditionScriptHash util.Uint160
	// ConditionGroup is a condition matching executing script group.
	ConditionGroup keys.PublicKey
	// ConditionCalledByEntry is a condition matching entry script or one
	// called by it.
	ConditionCalledByEntry struct{}
	// ConditionCalledByContract is a condition matching calling script hash.
	ConditionCalledByContract util.Uint160
	// ConditionCalledByGroup is a condition matching calling script group.
	ConditionCalledByGroup keys.PublicKey
)

// conditionAux is used for JSON marshaling/unmarshaling.
type conditionAux struct {
	Type        string            `json:"type"`
	Expression  json.RawMessage   `json:"expression,omitempty"`
	Expressions []json.RawMessage `json:"expressions,omitempty"`
	Hash        *util.Uint160     `json:"hash,omitempty"`
	Group       *keys.PublicKey   `json:"group,omitempty"`
}

var conditionNames = map[WitnessConditionType]string{
	WitnessBoolean:          "Boolean",
	WitnessNot:              "Not",
	WitnessAnd:              "And",
	WitnessOr:               "Or",
	WitnessScriptHash:       "ScriptHash",
	WitnessGroup:            "Group",
	WitnessCalledByEntry:    "CalledByEntry",
	WitnessCalledByContract: "CalledByContract",
	WitnessCalledByGroup:    "CalledByGroup",
}

// String implements the fmt.Stringer interface.
func (t WitnessConditionType) String() string {
	if name, ok := conditionNames[t]; ok {
		return name
	}
	return fmt.Sprintf("WitnessConditionType(%d)", int(t))
}

// witnessConditionTypeFromString is act to WitnessConditionType
// (case-sensitive) converter.
func witnessConditionTypeFromString(s string) (WitnessConditionType, error) {
	for t, name := range conditionNames {
		if s == name {
			return t, nil
		}
	}
	return 0, errors.New("invalid condition type")
}

// DecodeBinaryCondition decodes and returns the condition from the given
// binary stream.
func DecodeBinaryCondition(r *io.BinReader) WitnessCondition {
	return decodeBinaryCondition(r, MaxConditionNesting)
}

func decodeBinaryCondition(r *io.BinReader, maxDepth int) WitnessCondition {
	t := WitnessConditionType(r.ReadB())
	if r.Err != nil {
		return nil
	}
	var res WitnessCondition
	switch t {
	case WitnessBoolean:
		res = new(ConditionBoolean)
	case WitnessNot:
		res = new(ConditionNot)
	case WitnessAnd:
		res = new(ConditionAnd)
	case WitnessOr:
		res = new(ConditionOr)
	case WitnessScriptHash:
		res = new(ConditionScriptHash)
	case WitnessGroup:
		res = new(ConditionGroup)
	case WitnessCalledByEntry:
		res = new(ConditionCalledByEntry)
	case WitnessCalledByContract:
		res = new(ConditionCalledByContract)
	case WitnessCalledByGroup:
		res = new(ConditionCalledByGroup)
	default:
		r.Err = errors.New("invalid condition type")
		return nil
	}
	res.DecodeBinarySpecific(r, maxDepth)
	if r.Err != nil {
		return nil
	}
	return res
}

func decodeConditionArray(r *io.BinReader, maxDepth int) []WitnessCondition {
	if maxDepth <= 0 {
		r.Err = errors.New("too many nesting levels")
		return nil
	}
	l := r.ReadVarUint()
	if l > maxSubitems {
		r.Err = errors.New("too many conditions")
		return nil
	}
	conds := make([]WitnessCondition, l)
	for i := range conds {
		conds[i] = decodeBinaryCondition(r, maxDepth-1)
		if r.Err != nil {
			return nil
		}
	}
	return conds
}

// Type implements the WitnessCondition interface.
func (c *ConditionBoolean) Type() WitnessConditionType {
	return WitnessBoolean
}

// EncodeBinary implements the WitnessCondition interface.
func (c *ConditionBoolean) EncodeBinary(w *io.BinWriter) {
	w.WriteB(byte(c.Type()))
	w.WriteBool(bool(*c))
}

// DecodeBinary implements the io.Serializable interface.
func (c *ConditionBoolean) DecodeBinary(r *io.BinReader) {
	decodeBinaryConditionExpected(r, c)
}

// DecodeBinarySpecific implements the WitnessCondition interface.
func (c *ConditionBoolean) DecodeBinarySpecific(r *io.BinReader, _ int) {
	*c = ConditionBoolean(r.ReadBool())
}

// MarshalJSON implements the json.Marshaler interface.
func (c *ConditionBoolean) MarshalJSON() ([]byte, error) {
	expr, _ := json.Marshal(bool(*c))
	return json.Marshal(conditionAux{
		Type:       c.Type().String(),
		Expression: expr,
	})
}

// Copy returns a deep copy of the condition.
func (c *ConditionBoolean) Copy() WitnessCondition {
	cc := *c
	return &cc
}

// Type implements the WitnessCondition interface.
func (c *ConditionNot) Type() WitnessConditionType {
	return WitnessNot
}

// EncodeBinary implements the WitnessCondition interface.
func (c *ConditionNot) EncodeBinary(w *io.BinWriter) {
	w.WriteB(byte(c.Type()))
	c.Condition.EncodeBinary(w)
}

// DecodeBinary implements the io.Serializable interface.
func (c *ConditionNot) DecodeBinary(r *io.BinReader) {
	decodeBinaryConditionExpected(r, c)
}

// DecodeBinarySpecific implements the WitnessCondition interface.
func (c *ConditionNot) DecodeBinarySpecific(r *io.BinReader, maxDepth int) {
	if maxDepth <= 0 {
		r.Err = errors.New("too many nesting levels")
		return
	}
	c.Condition = decodeBinaryCondition(r, maxDepth-1)
}

// MarshalJSON implements the json.Marshaler interface.
func (c *ConditionNot) MarshalJSON() ([]byte, error) {
	expr, err := c.Condition.MarshalJSON()
	if err != nil {
		return nil, err
	}
	return json.Marshal(conditionAux{
		Type:       c.Type().String(),
		Expression: expr,
	})
}

// Copy returns a deep copy of the condition.
func (c *ConditionNot) Copy() WitnessCondition {
	return &ConditionNot{Condition: c.Condition.Copy()}
}

// Type implements the WitnessCondition interface.
func (c *ConditionAnd) Type() WitnessConditionType {
	return WitnessAnd
}

func encodeConditionArray(w *io.BinWriter, a []WitnessCondition) {
	w.WriteVarUint(uint64(len(a)))
	for _, c := range a {
		c.EncodeBinary(w)
	}
}

// EncodeBinary implements the WitnessCondition interface.
func (c *ConditionAnd) EncodeBinary(w *io.BinWriter) {
	w.WriteB(byte(c.Type()))
	encodeConditionArray(w, *c)
}

// DecodeBinary implements the io.Serializable interface.
func (c *ConditionAnd) DecodeBinary(r *io.BinReader) {
	decodeBinaryConditionExpected(r, c)
}

// DecodeBinarySpecific implements the WitnessCondition interface.
func (c *ConditionAnd) DecodeBinarySpecific(r *io.BinReader, maxDepth int) {
	a := decodeConditionArray(r, maxDepth)
	if r.Err == nil && len(a) == 0 {
		r.Err = errors.New("empty condition list")
		return
	}
	*c = a
}

func arrayToJSON(c WitnessCondition, a []WitnessCondition) ([]byte, error) {
	exprs := make([]json.RawMessage, len(a))
	for i, cond := range a {
		b, err := cond.MarshalJSON()
		if err != nil {
			return nil, err
		}
		exprs[i] = b
	}
	return json.Marshal(conditionAux{
		Type:        c.Type().String(),
		Expressions: exprs,
	})
}

// MarshalJSON implements the json.Marshaler interface.
func (c *ConditionAnd) MarshalJSON() ([]byte, error) {
	return arrayToJSON(c, *c)
}

func copyConditionArray(a []WitnessCondition) []WitnessCondition {
	res := make([]WitnessCondition, len(a))
	for i, cond := range a {
		res[i] = cond.Copy()
	}
	return res
}

// Copy returns a deep copy of the condition.
func (c *ConditionAnd) Copy() WitnessCondition {
	cp := ConditionAnd(copyConditionArray(*c))
	return &cp
}

// Type implements the WitnessCondition interface.
func (c *ConditionOr) Type() WitnessConditionType {
	return WitnessOr
}

// EncodeBinary implements the WitnessCondition interface.
func (c *ConditionOr) EncodeBinary(w *io.BinWriter) {
	w.WriteB(byte(c.Type()))
	encodeConditionArray(w, *c)
}

// DecodeBinary implements the io.Serializable interface.
func (c *ConditionOr) DecodeBinary(r *io.BinReader) {
	decodeBinaryConditionExpected(r, c)
}

// DecodeBinarySpecific implements the WitnessCondition interface.
func (c *ConditionOr) DecodeBinarySpecific(r *io.BinReader, maxDepth int) {
	a := decodeConditionArray(r, maxDepth)
	if r.Err == nil && len(a) == 0 {
		r.Err = errors.New("empty condition list")
		return
	}
	*c = a
}

// MarshalJSON implements the json.Marshaler interface.
func (c *ConditionOr) MarshalJSON() ([]byte, error) {
	return arrayToJSON(c, *c)
}

// Copy returns a deep copy of the condition.
func (c *ConditionOr) Copy() WitnessCondition {
	cp := ConditionOr(copyConditionArray(*c))
	return &cp
}

// Type implements the WitnessCondition interface.
func (c *ConditionScriptHash) Type() WitnessConditionType {
	return WitnessScriptHash
}

// EncodeBinary implements the WitnessCondition interface.
func (c *ConditionScriptHash) EncodeBinary(w *io.BinWriter) {
	w.WriteB(byte(c.Type()))
	w.WriteBytes(c[:])
}

// DecodeBinary implements the io.Serializable interface.
func (c *ConditionScriptHash) DecodeBinary(r *io.BinReader) {
	decodeBinaryConditionExpected(r, c)
}

// DecodeBinarySpecific implements the WitnessCondition interface.
func (c *ConditionScriptHash) DecodeBinarySpecific(r *io.BinReader, _ int) {
	r.ReadBytes(c[:])
}

// MarshalJSON implements the json.Marshaler interface.
func (c *ConditionScriptHash) MarshalJSON() ([]byte, error) {
	return json.Marshal(conditionAux{
		Type: c.Type().String(),
		Hash: (*util.Uint160)(c),
	})
}

// Copy returns a deep copy of the condition.
func (c *ConditionScriptHash) Copy() WitnessCondition {
	cc := *c
	return &cc
}

// Type implements the WitnessCondition interface.
func (c *ConditionGroup) Type() WitnessConditionType {
	return WitnessGroup
}

// EncodeBinary implements the WitnessCondition interface.
func (c *ConditionGroup) EncodeBinary(w *io.BinWriter) {
	w.WriteB(byte(c.Type()))
	(*keys.PublicKey)(c).EncodeBinary(w)
}

// DecodeBinary implements the io.Serializable interface.
func (c *ConditionGroup) DecodeBinary(r *io.BinReader) {
	decodeBinaryConditionExpected(r, c)
}

// DecodeBinarySpecific implements the WitnessCondition interface.
func (c *ConditionGroup) DecodeBinarySpecific(r *io.BinReader, _ int) {
	(*keys.PublicKey)(c).DecodeBinary(r)
}

// MarshalJSON implements the json.Marshaler interface.
func (c *ConditionGroup) MarshalJSON() ([]byte, error) {
	return json.Marshal(conditionAux{
		Type:  c.Type().String(),
		Group: (*keys.PublicKey)(c),
	})
}

// Copy returns a deep copy of the condition.
func (c *ConditionGroup) Copy() WitnessCondition {
	cc := *c
	return &cc
}

// Type implements the WitnessCondition interface.
func (c *ConditionCalledByEntry) Type() WitnessConditionType {
	return WitnessCalledByEntry
}

// EncodeBinary implements the WitnessCondition interface.
func (c *ConditionCalledByEntry) EncodeBinary(w *io.BinWriter) {
	w.WriteB(byte(c.Type()))
}

// DecodeBinary implements the io.Serializable interface.
func (c *ConditionCalledByEntry) DecodeBinary(r *io.BinReader) {
	decodeBinaryConditionExpected(r, c)
}

// DecodeBinarySpecific implements the WitnessCondition interface.
func (c *ConditionCalledByEntry) DecodeBinarySpecific(_ *io.BinReader, _ int) {
}

// MarshalJSON implements the json.Marshaler interface.
func (c *ConditionCalledByEntry) MarshalJSON() ([]byte, error) {
	return json.Marshal(conditionAux{
		Type: c.Type().String(),
	})
}

// Copy returns a deep copy of the condition.
func (c *ConditionCalledByEntry) Copy() WitnessCondition {
	return &ConditionCalledByEntry{}
}

// Type implements the WitnessCondition interface.
func (c *ConditionCalledByContract) Type() WitnessConditionType {
	return WitnessCalledByContract
}

// EncodeBinary implements the WitnessCondition interface.
func (c *ConditionCalledByContract) EncodeBinary(w *io.BinWriter) {
	w.WriteB(byte(c.Type()))
	w.WriteBytes(c[:])
}

// DecodeBinary implements the io.Serializable interface.
func (c *ConditionCalledByContract) DecodeBinary(r *io.BinReader) {
	decodeBinaryConditionExpected(r, c)
}

// DecodeBinarySpecific implements the WitnessCondition interface.
func (c *ConditionCalledByContract) DecodeBinarySpecific(r *io.BinReader, _ int) {
	r.ReadBytes(c[:])
}

// MarshalJSON implements the json.Marshaler interface.
func (c *ConditionCalledByContract) MarshalJSON() ([]byte, error) {
	return json.Marshal(conditionAux{
		Type: c.Type().String(),
		Hash: (*util.Uint160)(c),
	})
}

// Copy returns a deep copy of the condition.
func (c *ConditionCalledByContract) Copy() WitnessCondition {
	cc := *c
	return &cc
}

// Type implements the WitnessCondition interface.
func (c *ConditionCalledByGroup) Type() WitnessConditionType {
	return WitnessCalledByGroup
}

// EncodeBinary implements the WitnessCondition interface.
func (c *ConditionCalledByGroup) EncodeBinary(w *io.BinWriter) {
	w.WriteB(byte(c.Type()))
	(*keys.PublicKey)(c).EncodeBinary(w)
}

// DecodeBinary implements the io.Serializable interface.
func (c *ConditionCalledByGroup) DecodeBinary(r *io.BinReader) {
	decodeBinaryConditionExpected(r, c)
}

// DecodeBinarySpecific implements the WitnessCondition interface.
func (c *ConditionCalledByGroup) DecodeBinarySpecific(r *io.BinReader, _ int) {
	(*keys.PublicKey)(c).DecodeBinary(r)
}

// MarshalJSON implements the json.Marshaler interface.
func (c *ConditionCalledByGroup) MarshalJSON() ([]byte, error) {
	return json.Marshal(conditionAux{
		Type:  c.Type().String(),
		Group: (*keys.PublicKey)(c),
	})
}

// Copy returns a deep copy of the condition.
func (c *ConditionCalledByGroup) Copy() WitnessCondition {
	cc := *c
	return &cc
}

// decodeBinaryConditionExpected decodes a condition and checks that it is of
// the same type as the receiver, copying the decoded value into it.
func decodeBinaryConditionExpected(r *io.BinReader, c WitnessCondition) {
	cond := DecodeBinaryCondition(r)
	if r.Err != nil {
		return
	}
	if cond.Type() != c.Type() {
		r.Err = errors.New("unexpected condition type")
		return
	}
	switch val := c.(type) {
	case *ConditionBoolean:
		*val = *cond.(*ConditionBoolean)
	case *ConditionNot:
		*val = *cond.(*ConditionNot)
	case *ConditionAnd:
		*val = *cond.(*ConditionAnd)
	case *ConditionOr:
		*val = *cond.(*ConditionOr)
	case *ConditionScriptHash:
		*val = *cond.(*ConditionScriptHash)
	case *ConditionGroup:
		*val = *cond.(*ConditionGroup)
	case *ConditionCalledByEntry:
	case *ConditionCalledByContract:
		*val = *cond.(*ConditionCalledByContract)
	case *ConditionCalledByGroup:
		*val = *cond.(*ConditionCalledByGroup)
	}
}

// UnmarshalConditionJSON unmarshals the condition from the given JSON data.
func UnmarshalConditionJSON(data []byte) (WitnessCondition, error) {
	return unmarshalConditionJSON(data, MaxConditionNesting)
}

func unmarshalConditionJSON(data []byte, maxDepth int) (WitnessCondition, error) {
	aux := &conditionAux{}
	err := json.Unmarshal(data, aux)
	if err != nil {
		return nil, err
	}
	t, err := witnessConditionTypeFromString(aux.Type)
	if err != nil {
		return nil, err
	}
	var res WitnessCondition
	switch t {
	case WitnessBoolean:
		var v bool
		err = json.Unmarshal(aux.Expression, &v)
		if err != nil {
			return nil, err
		}
		res = (*ConditionBoolean)(&v)
	case WitnessNot:
		if maxDepth <= 0 {
			return nil, errors.New("too many nesting levels")
		}
		cond, err := unmarshalConditionJSON(aux.Expression, maxDepth-1)
		if err != nil {
			return nil, err
		}
		res = &ConditionNot{Condition: cond}
	case WitnessAnd, WitnessOr:
		if maxDepth <= 0 {
			return nil, errors.New("too many nesting levels")
		}
		if len(aux.Expressions) > maxSubitems {
			return nil, errors.New("too many conditions")
		}
		if len(aux.Expressions) == 0 {
			return nil, errors.New("empty condition list")
		}
		conds := make([]WitnessCondition, len(aux.Expressions))
		for i := range aux.Expressions {
			conds[i], err = unmarshalConditionJSON(aux.Expressions[i], maxDepth-1)
			if err != nil {
				return nil, err
			}
		}
		if t == WitnessAnd {
			res = (*ConditionAnd)(&conds)
		} else {
			res = (*ConditionOr)(&conds)
		}
	case WitnessScriptHash:
		if aux.Hash == nil {
			return nil, errors.New("no hash specified")
		}
		res = (*ConditionScriptHash)(aux.Hash)
	case WitnessGroup:
		if aux.Group == nil {
			return nil, errors.New("no group specified")
		}
		res = (*ConditionGroup)(aux.Group)
	case WitnessCalledByEntry:
		res = &ConditionCalledByEntry{}
	case WitnessCalledByContract:
		if aux.Hash == nil {
			return nil, errors.New("no hash specified")
		}
		res = (*ConditionCalledByContract)(aux.Hash)
	case WitnessCalledByGroup:
		if aux.Group == nil {
			return nil, errors.New("no group specified")
		}
		res = (*ConditionCalledByGroup)(aux.Group)
	}
	return res, nil
}
