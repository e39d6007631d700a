package typetable

import "math"

// Type is the identifier of a type in a Table. Identifiers are small,
// stable, and never renumbered; compound identifiers may be recycled by
// the garbage collector once unreachable.
type Type int32

// NullType is the "no type" sentinel: returned by lattice operations on
// incompatible types and by name lookups that find nothing.
const NullType Type = -1

// unknownType marks "must recurse" on the lattice cheap path. It never
// escapes this package.
const unknownType Type = -2

// The three primitive types live at fixed identifiers, installed by
// NewTable and never reclaimed.
const (
	BoolType Type = 0
	IntType  Type = 1
	RealType Type = 2
)

// Kind is the tag of a type descriptor.
type Kind uint8

const (
	// KindUnused marks a free table slot.
	KindUnused Kind = iota
	KindBool
	KindInt
	KindReal
	KindBitvector
	KindScalar
	KindUninterpreted
	KindTuple
	KindFunction
)

var kindNames = [...]string{
	KindUnused:        "unused",
	KindBool:          "bool",
	KindInt:           "int",
	KindReal:          "real",
	KindBitvector:     "bitvector",
	KindScalar:        "scalar",
	KindUninterpreted: "uninterpreted",
	KindTuple:         "tuple",
	KindFunction:      "function",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "invalid"
}

// Flags is the per-type flag byte. The five bits are independent;
// constructors always store one of the canonical combinations below,
// possibly with FlagMaximal or FlagMinimal cleared.
type Flags uint8

const (
	// FlagFinite: cardinality is exact and finite.
	FlagFinite Flags = 1 << iota
	// FlagUnit: cardinality is exactly 1.
	FlagUnit
	// FlagSmall: cardinality is exact and fits in 32 bits.
	FlagSmall
	// FlagMaximal: no strict supertype at this position in the lattice.
	FlagMaximal
	// FlagMinimal: no strict subtype at this position in the lattice.
	FlagMinimal
)

const (
	UnitTypeFlags     = FlagFinite | FlagUnit | FlagSmall | FlagMaximal | FlagMinimal
	SmallTypeFlags    = FlagFinite | FlagSmall | FlagMaximal | FlagMinimal
	LargeTypeFlags    = FlagFinite | FlagMaximal | FlagMinimal
	InfiniteTypeFlags = FlagMaximal | FlagMinimal
)

// Construction limits. Arguments outside these bounds are precondition
// violations and panic.
const (
	// MaxBitvectorWidth bounds the width of a bitvector type.
	MaxBitvectorWidth = 1 << 24
	// MaxArity bounds tuple arity and function domain arity.
	MaxArity = 1024
	// MaxTypes is the hard ceiling on table size. Allocation past it is
	// fatal.
	MaxTypes = 1 << 28
)

// CardInfinite is the saturated cardinality: stored for every type whose
// exact cardinality is infinite or does not fit in 32 bits.
const CardInfinite uint32 = math.MaxUint32
