// Package callflag defines a type and constants for permissions used
// in contract calls.
package callflag

import (
	"errors"
	"strings"
)

// CallFlag represents a call flag.
type CallFlag byte

// Default flags.
const (
	ReadStates CallFlag = 1 << iota
	WriteStates
	AllowCall
	AllowNotify

	States            = ReadStates | WriteStates
	ReadOnly          = ReadStates | AllowCall
	All               = States | AllowCall | AllowNotify
	NoneFlag CallFlag = 0
)

var flagString = map[CallFlag]string{
	ReadStates:  "ReadStates",
	WriteStates: "WriteStates",
	AllowCall:   "AllowCall",
	AllowNotify: "AllowNotify",
	States:      "States",
	ReadOnly:    "ReadOnly",
	All:         "All",
	NoneFlag:    "None",
}

// Has returns true iff all bits set in cf are also set in f.
func (f CallFlag) Has(cf CallFlag) bool {
	return f&cf == cf
}

// String implements the fmt.Stringer interface, returning a comma
// separated list of flag names for combined flags.
func (f CallFlag) String() string {
	if s, ok := flagString[f]; ok {
		return s
	}
	var names []string
	for _, flag := range []CallFlag{States, ReadStates, WriteStates, AllowCall, AllowNotify} {
		if f.Has(flag) {
			names = append(names, flagString[flag])
			f &^= flag
		}
	}
	return strings.Join(names, ", ")
}

// FromString parses a CallFlag from the given comma separated list of
// flag names.
func FromString(s string) (CallFlag, error) {
	var res CallFlag
	if len(s) == 0 {
		return res, errors.New("empty flags")
	}
	for _, name := range strings.Split(s, ",") {
		name = strings.TrimSpace(name)
		var found bool
		for f, fs := range flagString {
			if name == fs {
				res |= f
				found = true
				break
			}
		}
		if !found {
			return NoneFlag, errors.New("unknown call flag: " + name)
		}
	}
	return res, nil
}
