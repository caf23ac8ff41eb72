package asr

// Flags is a bitset of boolean procedure/struct attributes, grounded on
// the teacher's symbol.Flags pattern (a uint64 with HasAny/HasAll/With
// helpers) but widened to the attribute set spec section 3 assigns to
// Function and Struct symbols.
type Flags uint64

const (
	FlagPure Flags = 1 << iota
	FlagElemental
	FlagModuleProcedure
	FlagInterface
	FlagImplementation
	FlagAbstract
	FlagDeferred
	FlagNoPass
	FlagHasSubmodules
	FlagRecursive
)

func (f Flags) HasAny(bits Flags) bool { return f&bits != 0 }
func (f Flags) HasAll(bits Flags) bool { return f&bits == bits }
func (f Flags) With(bits Flags, set bool) Flags {
	if set {
		return f | bits
	}
	return f &^ bits
}

// Access is the public/private visibility of a module-level symbol.
type Access int

const (
	AccessPublic Access = iota
	AccessPrivate
)

func (a Access) String() string {
	if a == AccessPrivate {
		return "private"
	}
	return "public"
}

// Intent is a Variable's dummy-argument passing direction, or its role
// when it is not a dummy argument at all.
type Intent int

const (
	IntentLocal Intent = iota
	IntentIn
	IntentOut
	IntentInOut
	IntentReturnVar
)

func (i Intent) String() string {
	switch i {
	case IntentIn:
		return "in"
	case IntentOut:
		return "out"
	case IntentInOut:
		return "inout"
	case IntentReturnVar:
		return "return"
	default:
		return "local"
	}
}

// Storage classifies how a Variable's value is held.
type Storage int

const (
	StorageDefault Storage = iota
	StorageParameter
	StorageSave
)

func (s Storage) String() string {
	switch s {
	case StorageParameter:
		return "parameter"
	case StorageSave:
		return "save"
	default:
		return "default"
	}
}

// Presence marks whether a dummy argument may be absent at the call site.
type Presence int

const (
	PresenceRequired Presence = iota
	PresenceOptional
)

func (p Presence) String() string {
	if p == PresenceOptional {
		return "optional"
	}
	return "required"
}

// ABI is the calling convention tag on a Function.
type ABI int

const (
	ABINative ABI = iota
	ABIBindC
)

func (a ABI) String() string {
	if a == ABIBindC {
		return "bind(c)"
	}
	return "native"
}

// EnumKind classifies the relationship between an Enum's declared member
// values and the integers 0..n-1, matching spec section 4.2's
// "Enum classifications must match the observed value distribution".
type EnumKind int

const (
	EnumConsecutiveFromZero EnumKind = iota
	EnumNotUnique
	EnumUnique
	EnumNonInteger
)

func (e EnumKind) String() string {
	switch e {
	case EnumConsecutiveFromZero:
		return "consecutive-from-zero"
	case EnumNotUnique:
		return "not-unique"
	case EnumUnique:
		return "unique"
	case EnumNonInteger:
		return "non-integer"
	default:
		return "unknown"
	}
}

// ClassifyEnumKind derives the EnumKind classification an Enum's declared
// member values imply: EnumNonInteger if any value could not be reduced
// to a compile-time integer constant, EnumNotUnique if two members share
// a value, EnumConsecutiveFromZero if the value set is exactly
// {0, 1, ..., n-1}, and EnumUnique otherwise. known must be the same
// length as values; known[i] false marks values[i] as not a resolved
// integer constant.
func ClassifyEnumKind(values []int64, known []bool) EnumKind {
	for _, ok := range known {
		if !ok {
			return EnumNonInteger
		}
	}
	seen := make(map[int64]bool, len(values))
	for _, v := range values {
		if seen[v] {
			return EnumNotUnique
		}
		seen[v] = true
	}
	for i := range values {
		if !seen[int64(i)] {
			return EnumUnique
		}
	}
	return EnumConsecutiveFromZero
}
