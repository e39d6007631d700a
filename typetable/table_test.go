package typetable

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPrimitives(t *testing.T) {
	tbl := NewTable(0)
	defer tbl.Close()

	require.Equal(t, KindBool, tbl.KindOf(BoolType))
	require.Equal(t, KindInt, tbl.KindOf(IntType))
	require.Equal(t, KindReal, tbl.KindOf(RealType))

	require.Equal(t, uint32(2), tbl.CardOf(BoolType))
	require.Equal(t, SmallTypeFlags, tbl.FlagsOf(BoolType))

	// int is infinite and non-maximal (real sits above it).
	require.Equal(t, CardInfinite, tbl.CardOf(IntType))
	require.False(t, tbl.IsFinite(IntType))
	require.False(t, tbl.IsMaximal(IntType))
	require.True(t, tbl.IsMinimal(IntType))

	// real is infinite and non-minimal.
	require.True(t, tbl.IsMaximal(RealType))
	require.False(t, tbl.IsMinimal(RealType))

	require.Equal(t, 3, tbl.Live())
}

func TestBitvectorHashConsing(t *testing.T) {
	tbl := NewTable(0)
	defer tbl.Close()

	bv8 := tbl.BitvectorType(8)
	require.Equal(t, bv8, tbl.BitvectorType(8))
	require.Equal(t, uint32(256), tbl.CardOf(bv8))
	require.Equal(t, SmallTypeFlags, tbl.FlagsOf(bv8))
	require.Equal(t, uint32(8), tbl.BitvectorSize(bv8))

	bv64 := tbl.BitvectorType(64)
	require.NotEqual(t, bv8, bv64)
	require.Equal(t, CardInfinite, tbl.CardOf(bv64))
	require.True(t, tbl.IsFinite(bv64))
	require.False(t, tbl.IsSmall(bv64))
	require.Equal(t, LargeTypeFlags, tbl.FlagsOf(bv64))
}

func TestTupleHashConsing(t *testing.T) {
	tbl := NewTable(0)
	defer tbl.Close()

	a := tbl.TupleType(IntType, RealType)
	b := tbl.TupleType(IntType, RealType)
	require.Equal(t, a, b)
	require.Equal(t, uint32(2), tbl.TupleArity(a))
	require.Equal(t, IntType, tbl.TupleElem(a, 0))
	require.Equal(t, RealType, tbl.TupleElem(a, 1))

	// Order matters structurally.
	c := tbl.TupleType(RealType, IntType)
	require.NotEqual(t, a, c)
}

func TestFunctionHashConsing(t *testing.T) {
	tbl := NewTable(0)
	defer tbl.Close()

	f := tbl.FunctionType([]Type{BoolType, BoolType}, BoolType)
	require.Equal(t, f, tbl.FunctionType([]Type{BoolType, BoolType}, BoolType))
	require.Equal(t, uint32(2), tbl.FunctionArity(f))
	require.Equal(t, BoolType, tbl.FunctionDomain(f, 0))
	require.Equal(t, BoolType, tbl.FunctionRange(f))

	// (bool, bool) -> bool has 2^(2*2) = 16 values.
	require.Equal(t, uint32(16), tbl.CardOf(f))
	require.True(t, tbl.IsSmall(f))
	require.True(t, tbl.IsFinite(f))
}

// A bitvector of width w and a tuple holding id w must not collide in
// the cons index.
func TestShapeSaltsKeepKindsApart(t *testing.T) {
	tbl := NewTable(0)
	defer tbl.Close()

	// Tuple (int) hashes over element id 1; bv 1 hashes over width 1.
	bv := tbl.BitvectorType(1)
	tup := tbl.TupleType(IntType)
	require.NotEqual(t, bv, tup)
	require.Equal(t, KindBitvector, tbl.KindOf(bv))
	require.Equal(t, KindTuple, tbl.KindOf(tup))
}

func TestScalarTypesAreNominal(t *testing.T) {
	tbl := NewTable(0)
	defer tbl.Close()

	s := tbl.NewScalarType(1)
	u := tbl.NewScalarType(1)
	require.NotEqual(t, s, u)
	require.Equal(t, uint32(1), tbl.CardOf(s))
	require.Equal(t, uint32(1), tbl.CardOf(u))
	require.Equal(t, UnitTypeFlags, tbl.FlagsOf(s))
	require.Equal(t, UnitTypeFlags, tbl.FlagsOf(u))

	k := tbl.NewScalarType(5)
	require.Equal(t, uint32(5), tbl.ScalarSize(k))
	require.Equal(t, SmallTypeFlags, tbl.FlagsOf(k))
}

func TestUninterpretedTypesAreNominal(t *testing.T) {
	tbl := NewTable(0)
	defer tbl.Close()

	a := tbl.NewUninterpretedType()
	b := tbl.NewUninterpretedType()
	require.NotEqual(t, a, b)
	require.Equal(t, CardInfinite, tbl.CardOf(a))
	require.Equal(t, InfiniteTypeFlags, tbl.FlagsOf(a))
}

func TestIdsStableAcrossGrowth(t *testing.T) {
	tbl := NewTable(4)
	defer tbl.Close()

	bv8 := tbl.BitvectorType(8)
	for w := uint32(1); w <= 500; w++ {
		tbl.BitvectorType(w)
	}
	require.Equal(t, bv8, tbl.BitvectorType(8))
	require.Equal(t, uint32(256), tbl.CardOf(bv8))
}

func TestConstructorPreconditions(t *testing.T) {
	tbl := NewTable(0)
	defer tbl.Close()

	require.Panics(t, func() { tbl.BitvectorType(0) })
	require.Panics(t, func() { tbl.BitvectorType(MaxBitvectorWidth + 1) })
	require.Panics(t, func() { tbl.NewScalarType(0) })
	require.Panics(t, func() { tbl.TupleType() })
	require.Panics(t, func() { tbl.FunctionType(nil, BoolType) })
	require.Panics(t, func() { tbl.TupleType(Type(9999)) })
	require.Panics(t, func() { tbl.KindOf(NullType) })
}

func TestConsIndexTracksLiveCompounds(t *testing.T) {
	tbl := NewTable(0)
	defer tbl.Close()

	tbl.BitvectorType(8)
	tbl.TupleType(IntType, IntType)
	tbl.FunctionType([]Type{IntType}, RealType)
	tbl.NewScalarType(3)
	tbl.NewUninterpretedType()

	// Exactly one cons entry per live compound id, none for primitives
	// or nominal types.
	count := 0
	tbl.cons.Scan(func(_ uint64, bucket []Type) bool {
		for _, id := range bucket {
			require.True(t, tbl.isLive(id))
			count++
		}
		return true
	})
	require.Equal(t, 3, count)
}
