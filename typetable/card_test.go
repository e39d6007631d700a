package typetable

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTupleCardinalityProduct(t *testing.T) {
	tbl := NewTable(0)
	defer tbl.Close()

	bv4 := tbl.BitvectorType(4)
	bv8 := tbl.BitvectorType(8)
	pair := tbl.TupleType(bv4, bv8)
	require.Equal(t, uint32(16*256), tbl.CardOf(pair))
	require.Equal(t, SmallTypeFlags, tbl.FlagsOf(pair))

	// card(tuple) = min(card(a)*card(b), 2^32-1)
	require.Equal(t, tbl.CardOf(pair), tbl.CardOfProduct([]Type{bv4, bv8}))
}

func TestTupleCardinalitySaturates(t *testing.T) {
	tbl := NewTable(0)
	defer tbl.Close()

	bv20 := tbl.BitvectorType(20)
	big := tbl.TupleType(bv20, bv20)
	require.Equal(t, CardInfinite, tbl.CardOf(big))
	// Saturation clears SMALL but the tuple is still finite.
	require.True(t, tbl.IsFinite(big))
	require.False(t, tbl.IsSmall(big))
	require.Equal(t, LargeTypeFlags, tbl.FlagsOf(big))
}

func TestTupleOfUnitsIsUnit(t *testing.T) {
	tbl := NewTable(0)
	defer tbl.Close()

	u1 := tbl.NewScalarType(1)
	u2 := tbl.NewScalarType(1)
	tup := tbl.TupleType(u1, u2, u1)
	require.Equal(t, uint32(1), tbl.CardOf(tup))
	require.True(t, tbl.IsUnit(tup))
	require.Equal(t, UnitTypeFlags, tbl.FlagsOf(tup))
}

func TestTupleWithInfiniteElement(t *testing.T) {
	tbl := NewTable(0)
	defer tbl.Close()

	tup := tbl.TupleType(IntType, RealType)
	require.Equal(t, CardInfinite, tbl.CardOf(tup))
	require.False(t, tbl.IsFinite(tup))
	require.False(t, tbl.IsUnit(tup))
	// int is non-maximal and real is non-minimal, so neither bit
	// survives the conjunction.
	require.False(t, tbl.IsMaximal(tup))
	require.False(t, tbl.IsMinimal(tup))
}

func TestFunctionUnitRange(t *testing.T) {
	tbl := NewTable(0)
	defer tbl.Close()

	unit := tbl.NewScalarType(1)
	fn := tbl.FunctionType([]Type{IntType, RealType}, unit)
	// Exactly one total function into a unit type, infinite domain
	// notwithstanding.
	require.Equal(t, uint32(1), tbl.CardOf(fn))
	require.True(t, tbl.IsUnit(fn))
	require.True(t, tbl.IsFinite(fn))
	require.True(t, tbl.IsSmall(fn))
}

func TestFunctionCardinalityExponent(t *testing.T) {
	tbl := NewTable(0)
	defer tbl.Close()

	bv2 := tbl.BitvectorType(2)
	// bool^4 = 16 on a 4-element domain.
	fn := tbl.FunctionType([]Type{bv2}, BoolType)
	require.Equal(t, uint32(16), tbl.CardOf(fn))
	require.True(t, tbl.IsSmall(fn))

	// Domain product >= 32 saturates outright.
	bv5 := tbl.BitvectorType(5)
	big := tbl.FunctionType([]Type{bv5}, BoolType)
	require.Equal(t, CardInfinite, tbl.CardOf(big))
	require.True(t, tbl.IsFinite(big))
	require.False(t, tbl.IsSmall(big))

	// 3^27 overflows 32 bits: saturated but still finite.
	s3 := tbl.NewScalarType(3)
	s27 := tbl.NewScalarType(27)
	deep := tbl.FunctionType([]Type{s27}, s3)
	require.Equal(t, CardInfinite, tbl.CardOf(deep))
	require.True(t, tbl.IsFinite(deep))
	require.False(t, tbl.IsSmall(deep))

	// 3^3 = 27 stays exact.
	small := tbl.FunctionType([]Type{s3}, s3)
	require.Equal(t, uint32(27), tbl.CardOf(small))
	require.True(t, tbl.IsSmall(small))
}

func TestFunctionInfiniteCases(t *testing.T) {
	tbl := NewTable(0)
	defer tbl.Close()

	// Infinite domain, non-unit finite range: infinitely many
	// functions.
	fn := tbl.FunctionType([]Type{IntType}, BoolType)
	require.Equal(t, CardInfinite, tbl.CardOf(fn))
	require.False(t, tbl.IsFinite(fn))

	// Finite domain, infinite range.
	fn2 := tbl.FunctionType([]Type{BoolType}, IntType)
	require.Equal(t, CardInfinite, tbl.CardOf(fn2))
	require.False(t, tbl.IsFinite(fn2))

	// Min/max track the range.
	require.False(t, tbl.IsMaximal(fn2)) // int range is non-maximal
	require.True(t, tbl.IsMinimal(fn2))
}

func TestDomainRangeQueries(t *testing.T) {
	tbl := NewTable(0)
	defer tbl.Close()

	bv3 := tbl.BitvectorType(3)
	fn := tbl.FunctionType([]Type{BoolType, bv3}, IntType)

	require.Equal(t, uint32(16), tbl.CardOfDomain(fn))
	require.Equal(t, CardInfinite, tbl.CardOfRange(fn))
	require.True(t, tbl.HasFiniteDomain(fn))
	require.False(t, tbl.HasFiniteRange(fn))

	inf := tbl.FunctionType([]Type{IntType}, BoolType)
	require.False(t, tbl.HasFiniteDomain(inf))
	require.True(t, tbl.HasFiniteRange(inf))
}

// Recomputing flags and cardinality from the children must reproduce
// the stored values for every live compound type.
func TestFlagAndCardPurity(t *testing.T) {
	tbl := NewTable(0)
	defer tbl.Close()

	bv7 := tbl.BitvectorType(7)
	s1 := tbl.NewScalarType(1)
	s9 := tbl.NewScalarType(9)
	u := tbl.NewUninterpretedType()
	tup := tbl.TupleType(bv7, s9, BoolType)
	tbl.TupleType(IntType, u)
	fn := tbl.FunctionType([]Type{s9, bv7}, BoolType)
	tbl.FunctionType([]Type{IntType}, s1)
	tbl.TupleType(tup, fn)

	for i := range tbl.kind {
		tau := Type(i)
		var card uint32
		var flags Flags
		switch tbl.kind[tau] {
		case KindBitvector:
			card, flags = bitvectorCardFlags(tbl.bits[tau])
		case KindTuple:
			card, flags = tbl.tupleCardFlags(tbl.elem[tau])
		case KindFunction:
			sig := tbl.elem[tau]
			card, flags = tbl.functionCardFlags(sig[:len(sig)-1], sig[len(sig)-1])
		default:
			continue
		}
		require.Equal(t, tbl.card[tau], card, "card of %d", tau)
		require.Equal(t, tbl.flags[tau], flags, "flags of %d", tau)
	}
}

func TestSatPow(t *testing.T) {
	require.Equal(t, uint32(1), satPow(7, 0))
	require.Equal(t, uint32(128), satPow(2, 7))
	require.Equal(t, uint32(2147483648), satPow(2, 31))
	require.Equal(t, CardInfinite, satPow(2, 32))
	require.Equal(t, CardInfinite, satPow(3, 27))
	require.Equal(t, uint32(3486784401), satPow(3, 20))
	require.Equal(t, CardInfinite, satPow(3, 21))
}
