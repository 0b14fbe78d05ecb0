package transaction

//go:generate stringer -type=AttrType -linecomment

// AttrType represents the purpose of the attribute.
type AttrType uint8

const (
	// ReservedLowerBound is the lower bound of reserved attribute types.
	ReservedLowerBound = 0xe0
	// ReservedUpperBound is the upper bound of reserved attribute types.
	ReservedUpperBound = 0xff
)

const (
	// HighPriority adds a priority to the transaction.
	HighPriority AttrType = 1
	// NotValidBeforeT makes the transaction invalid before a certain height.
	NotValidBeforeT AttrType = 0x20 // NotValidBefore
	// ConflictsT makes the transaction conflict with another one.
	ConflictsT AttrType = 0x21 // Conflicts
)

func (a AttrType) allowMultiple() bool {
	switch a {
	case ConflictsT:
		return true
	default:
		return false
	}
}
