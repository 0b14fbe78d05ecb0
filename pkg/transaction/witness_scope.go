package transaction

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// WitnessScope represents a set of witness flags for a Transaction signer.
type WitnessScope byte

const (
	// None specifies that no contract was witnessed. Only sign the transaction.
	None WitnessScope = 0
	// CalledByEntry means that this condition must hold: EntryScriptHash ==
	// CallingScriptHash. The witness/permission/signature given on first
	// invocation will automatically expire if entering deeper internal
	// invokes. This can be the default safe choice for native NEO/GAS.
	CalledByEntry WitnessScope = 0x01
	// CustomContracts define custom hash for contract-specific scope.
	CustomContracts WitnessScope = 0x10
	// CustomGroups define custom public key for group members.
	CustomGroups WitnessScope = 0x20
	// Rules is an extension of Global and CustomContracts/CustomGroups,
	// it allows to define a set of witness rules.
	Rules WitnessScope = 0x40
	// Global allows this witness in all contexts. This cannot be combined
	// with other flags.
	Global WitnessScope = 0x80
)

var scopeNames = map[WitnessScope]string{
	None:            "None",
	CalledByEntry:   "CalledByEntry",
	CustomContracts: "CustomContracts",
	CustomGroups:    "CustomGroups",
	Rules:           "WitnessRules",
	Global:          "Global",
}

// ScopesFromString converts a string of comma-separated scopes to a set of
// scopes (case-sensitive). The string can combine several scopes, e.g. be
// any of: 'Global', 'CalledByEntry,CustomGroups' etc. In case of an empty
// string, an error will be returned.
func ScopesFromString(s string) (WitnessScope, error) {
	var result WitnessScope
	scopes := strings.Split(s, ",")
	dict := make(map[string]WitnessScope, len(scopeNames))
	for scope, name := range scopeNames {
		dict[name] = scope
	}
	var isGlobal bool
	for _, scopeStr := range scopes {
		scope, ok := dict[strings.TrimSpace(scopeStr)]
		if !ok {
			return result, fmt.Errorf("invalid witness scope: %v", scopeStr)
		}
		if isGlobal && scope != Global {
			return result, errors.New("Global scope can not be combined with other scopes")
		}
		result |= scope
		if scope == Global {
			isGlobal = true
		}
	}
	return result, nil
}

// ScopesFromByte converts a byte to a set of scopes and performs validity
// check.
func ScopesFromByte(b byte) (WitnessScope, error) {
	var res = WitnessScope(b)
	if res&^(CalledByEntry|CustomContracts|CustomGroups|Rules|Global) != 0 {
		return 0, fmt.Errorf("invalid scope %d", b)
	}
	if res&Global != 0 && res != Global {
		return 0, errors.New("Global scope can not be combined with other scopes")
	}
	return res, nil
}

// CombineScopes merges two sets of scopes together returning the resulting
// set. Merging anything with Global results in Global.
func CombineScopes(a WitnessScope, b WitnessScope) WitnessScope {
	if a == Global || b == Global {
		return Global
	}
	return a | b
}

// Split splits the set of scopes into a slice of individual scopes. An empty
// set is represented by a single None element.
func (s WitnessScope) Split() []WitnessScope {
	if s == None {
		return []WitnessScope{None}
	}
	var res = make([]WitnessScope, 0, 5)
	for _, scope := range []WitnessScope{CalledByEntry, CustomContracts, CustomGroups, Rules, Global} {
		if s&scope != 0 {
			res = append(res, scope)
		}
	}
	return res
}

// String implements the fmt.Stringer interface.
func (s WitnessScope) String() string {
	parts := s.Split()
	names := make([]string, len(parts))
	for i, scope := range parts {
		names[i] = scopeNames[scope]
	}
	return strings.Join(names, ", ")
}

// MarshalJSON implements the json.Marshaler interface.
func (s WitnessScope) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (s *WitnessScope) UnmarshalJSON(data []byte) error {
	var js string
	if err := json.Unmarshal(data, &js); err != nil {
		return err
	}
	scopes, err := ScopesFromString(js)
	if err != nil {
		return err
	}
	*s = scopes
	return nil
}
