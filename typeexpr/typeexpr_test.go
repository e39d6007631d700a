package typeexpr

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/TheTesla/yices2/typetable"
)

func TestParsePrimitives(t *testing.T) {
	tbl := typetable.NewTable(0)
	defer tbl.Close()

	for src, want := range map[string]typetable.Type{
		"bool": typetable.BoolType,
		"int":  typetable.IntType,
		"real": typetable.RealType,
	} {
		tau, err := Parse(tbl, src)
		require.NoError(t, err)
		require.Equal(t, want, tau)
	}
}

func TestParseCompounds(t *testing.T) {
	tbl := typetable.NewTable(0)
	defer tbl.Close()

	bv, err := Parse(tbl, "(bv 8)")
	require.NoError(t, err)
	require.Equal(t, typetable.KindBitvector, tbl.KindOf(bv))
	require.Equal(t, uint32(8), tbl.BitvectorSize(bv))

	tup, err := Parse(tbl, "(tuple int real)")
	require.NoError(t, err)
	require.Equal(t, tbl.TupleType(typetable.IntType, typetable.RealType), tup)

	fn, err := Parse(tbl, "(-> bool bool bool)")
	require.NoError(t, err)
	require.Equal(t, typetable.KindFunction, tbl.KindOf(fn))
	require.Equal(t, uint32(2), tbl.FunctionArity(fn))
	require.Equal(t, typetable.BoolType, tbl.FunctionRange(fn))

	sc, err := Parse(tbl, "(scalar 3)")
	require.NoError(t, err)
	require.Equal(t, uint32(3), tbl.ScalarSize(sc))
}

func TestParseNesting(t *testing.T) {
	tbl := typetable.NewTable(0)
	defer tbl.Close()

	tau, err := Parse(tbl, "(-> (tuple int (bv 4)) (tuple real real))")
	require.NoError(t, err)
	require.Equal(t, uint32(1), tbl.FunctionArity(tau))
	dom := tbl.FunctionDomain(tau, 0)
	require.Equal(t, typetable.KindTuple, tbl.KindOf(dom))
}

func TestNamedAtomsShareOneType(t *testing.T) {
	tbl := typetable.NewTable(0)
	defer tbl.Close()

	tau, err := Parse(tbl, "(tuple U U)")
	require.NoError(t, err)
	require.Equal(t, tbl.TupleElem(tau, 0), tbl.TupleElem(tau, 1))
	require.Equal(t, typetable.KindUninterpreted, tbl.KindOf(tbl.TupleElem(tau, 0)))
	require.Equal(t, tbl.TupleElem(tau, 0), tbl.TypeByName("U"))
}

func TestParseAllReadsEveryTerm(t *testing.T) {
	tbl := typetable.NewTable(0)
	defer tbl.Close()

	terms, err := ParseAll(tbl, "int (bv 2) (tuple bool bool)")
	require.NoError(t, err)
	require.Len(t, terms, 3)
	require.Equal(t, typetable.IntType, terms[0])
}

func TestParseErrors(t *testing.T) {
	tbl := typetable.NewTable(0)
	defer tbl.Close()

	for _, src := range []string{
		"",
		"(",
		")",
		"(bv)",
		"(bv 0)",
		"(bv x)",
		"(scalar 0)",
		"(tuple)",
		"(-> int)",
		"(frob int)",
		"int real", // trailing input for Parse
	} {
		_, err := Parse(tbl, src)
		require.Error(t, err, "src=%q", src)
	}
}

func TestPrintRoundTrip(t *testing.T) {
	tbl := typetable.NewTable(0)
	defer tbl.Close()

	for _, src := range []string{
		"bool",
		"(bv 8)",
		"(tuple int real)",
		"(-> bool bool bool)",
		"(-> (tuple int (bv 4)) real)",
	} {
		tau, err := Parse(tbl, src)
		require.NoError(t, err)
		printed := Print(tbl, tau)
		again, err := Parse(tbl, printed)
		require.NoError(t, err)
		require.Equal(t, tau, again, "src=%q printed=%q", src, printed)
	}
}

func TestPrintUsesDisplayName(t *testing.T) {
	tbl := typetable.NewTable(0)
	defer tbl.Close()

	tau := tbl.BitvectorType(8)
	tbl.SetName(tau, "byte")
	require.Equal(t, "byte", Print(tbl, tau))
}
