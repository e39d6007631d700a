package typetable

import (
	"fmt"

	"github.com/tidwall/hashmap"

	"github.com/TheTesla/yices2/bitmap"
	"github.com/TheTesla/yices2/refstr"
)

// Table holds every type of one solver context. It is a mutable owned
// resource of that context: all operations are synchronous and
// single-threaded, with no internal locking.
type Table struct {
	kind  []Kind
	card  []uint32
	flags []Flags
	name  []*refstr.String
	bits  []uint32
	elem  [][]Type

	freeHead uint32
	live     uint32

	// cons maps structural hashes to buckets of live compound ids.
	cons hashmap.Map[uint64, []Type]

	// symbols maps a name to its binding stack; the top is the binding
	// in effect, older entries are shadowed.
	symbols hashmap.Map[string, []Type]
	names   *refstr.Pool

	joinCache hashmap.Map[typePair, Type]
	meetCache hashmap.Map[typePair, Type]

	// marks carries root pins between Mark calls and the next GC.
	marks *bitmap.Bitmap
}

// typePair is an ordered cache key: k0 < k1 always holds.
type typePair struct {
	k0, k1 Type
}

type cacheMap = hashmap.Map[typePair, Type]

// DefaultInitialCapacity is used when NewTable is given zero.
const DefaultInitialCapacity = 64

// NewTable creates a type table with the three primitive types
// installed at their fixed identifiers.
func NewTable(initialCapacity uint32) *Table {
	if initialCapacity == 0 {
		initialCapacity = DefaultInitialCapacity
	}
	if initialCapacity > MaxTypes {
		initialCapacity = MaxTypes
	}
	n := int(initialCapacity)
	t := &Table{
		kind:     make([]Kind, 0, n),
		card:     make([]uint32, 0, n),
		flags:    make([]Flags, 0, n),
		name:     make([]*refstr.String, 0, n),
		bits:     make([]uint32, 0, n),
		elem:     make([][]Type, 0, n),
		freeHead: noFreeSlot,
		names:    refstr.NewPool(),
		marks:    bitmap.New(n),
	}

	bool_ := t.alloc()
	t.kind[bool_] = KindBool
	t.card[bool_] = 2
	t.flags[bool_] = SmallTypeFlags

	int_ := t.alloc()
	t.kind[int_] = KindInt
	t.card[int_] = CardInfinite
	t.flags[int_] = InfiniteTypeFlags &^ FlagMaximal

	real_ := t.alloc()
	t.kind[real_] = KindReal
	t.card[real_] = CardInfinite
	t.flags[real_] = InfiniteTypeFlags &^ FlagMinimal

	if bool_ != BoolType || int_ != IntType || real_ != RealType {
		panic("type table: primitive ids out of place")
	}
	return t
}

// Close releases every name reference held by the table and its symbol
// bindings. The table must not be used afterwards.
func (t *Table) Close() {
	t.symbols.Scan(func(nm string, stack []Type) bool {
		if s, ok := t.names.Lookup(nm); ok {
			for range stack {
				s.Release()
			}
		}
		return true
	})
	for i, s := range t.name {
		if s != nil {
			s.Release()
			t.name[i] = nil
		}
	}
}

// BitvectorType returns the type of bitvectors of the given width,
// creating it on first use. Same width, same id.
func (t *Table) BitvectorType(width uint32) Type {
	if width < 1 || width > MaxBitvectorWidth {
		panic(fmt.Errorf("bitvector width out of range: %d", width))
	}
	h := bitvectorHash(width)
	if id := t.consLookup(h, t.sameBitvector(width)); id != NullType {
		return id
	}
	id := t.alloc()
	t.kind[id] = KindBitvector
	t.bits[id] = width
	t.card[id], t.flags[id] = bitvectorCardFlags(width)
	t.consInsert(h, id)
	return id
}

// TupleType returns the tuple type over elems, creating it on first
// use. Structurally equal element lists always map to the same id.
func (t *Table) TupleType(elems ...Type) Type {
	if len(elems) < 1 || len(elems) > MaxArity {
		panic(fmt.Errorf("tuple arity out of range: %d", len(elems)))
	}
	for _, e := range elems {
		t.checkLive(e)
	}
	h := tupleHash(elems)
	if id := t.consLookup(h, t.sameTuple(elems)); id != NullType {
		return id
	}
	own := make([]Type, len(elems))
	copy(own, elems)
	id := t.alloc()
	t.kind[id] = KindTuple
	t.elem[id] = own
	t.card[id], t.flags[id] = t.tupleCardFlags(own)
	t.consInsert(h, id)
	return id
}

// FunctionType returns the type of total functions from domain to rng,
// creating it on first use.
func (t *Table) FunctionType(domain []Type, rng Type) Type {
	if len(domain) < 1 || len(domain) > MaxArity {
		panic(fmt.Errorf("function arity out of range: %d", len(domain)))
	}
	for _, d := range domain {
		t.checkLive(d)
	}
	t.checkLive(rng)
	sig := make([]Type, 0, len(domain)+1)
	sig = append(sig, domain...)
	sig = append(sig, rng)
	h := functionHash(sig)
	if id := t.consLookup(h, t.sameFunction(sig)); id != NullType {
		return id
	}
	id := t.alloc()
	t.kind[id] = KindFunction
	t.elem[id] = sig
	t.card[id], t.flags[id] = t.functionCardFlags(sig[:len(domain)], rng)
	t.consInsert(h, id)
	return id
}

// NewScalarType creates a fresh finite enumerated type with the given
// number of elements. Scalar types are nominal: every call returns a
// new id, equal sizes notwithstanding.
func (t *Table) NewScalarType(size uint32) Type {
	if size < 1 {
		panic(fmt.Errorf("scalar size out of range: %d", size))
	}
	id := t.alloc()
	t.kind[id] = KindScalar
	t.bits[id] = size
	t.card[id], t.flags[id] = scalarCardFlags(size)
	return id
}

// NewUninterpretedType creates a fresh opaque infinite type. Like
// scalars, uninterpreted types are nominal.
func (t *Table) NewUninterpretedType() Type {
	id := t.alloc()
	t.kind[id] = KindUninterpreted
	t.card[id] = CardInfinite
	t.flags[id] = InfiniteTypeFlags
	return id
}

// KindOf returns the kind tag of tau.
func (t *Table) KindOf(tau Type) Kind {
	t.checkLive(tau)
	return t.kind[tau]
}

// BitvectorSize returns the width of a bitvector type.
func (t *Table) BitvectorSize(tau Type) uint32 {
	t.checkKind(tau, KindBitvector)
	return t.bits[tau]
}

// ScalarSize returns the number of elements of a scalar type.
func (t *Table) ScalarSize(tau Type) uint32 {
	t.checkKind(tau, KindScalar)
	return t.bits[tau]
}

// TupleArity returns the number of components of a tuple type.
func (t *Table) TupleArity(tau Type) uint32 {
	t.checkKind(tau, KindTuple)
	return uint32(len(t.elem[tau]))
}

// TupleElem returns component i of a tuple type.
func (t *Table) TupleElem(tau Type, i uint32) Type {
	t.checkKind(tau, KindTuple)
	if int(i) >= len(t.elem[tau]) {
		panic(fmt.Errorf("tuple index out of range: %d", i))
	}
	return t.elem[tau][i]
}

// FunctionArity returns the number of domain types of a function type.
func (t *Table) FunctionArity(tau Type) uint32 {
	t.checkKind(tau, KindFunction)
	return uint32(len(t.elem[tau]) - 1)
}

// FunctionDomain returns domain type i of a function type.
func (t *Table) FunctionDomain(tau Type, i uint32) Type {
	t.checkKind(tau, KindFunction)
	if int(i) >= len(t.elem[tau])-1 {
		panic(fmt.Errorf("domain index out of range: %d", i))
	}
	return t.elem[tau][i]
}

// FunctionRange returns the range type of a function type.
func (t *Table) FunctionRange(tau Type) Type {
	t.checkKind(tau, KindFunction)
	sig := t.elem[tau]
	return sig[len(sig)-1]
}

// functionSig returns the raw signature slice: domain plus range.
func (t *Table) functionSig(fn Type) []Type {
	t.checkKind(fn, KindFunction)
	return t.elem[fn]
}

func (t *Table) checkKind(tau Type, k Kind) {
	t.checkLive(tau)
	if t.kind[tau] != k {
		panic(fmt.Errorf("type %d is %s, not %s", tau, t.kind[tau], k))
	}
}

// NumTypes returns the number of slots in use or ever used.
func (t *Table) NumTypes() int {
	return len(t.kind)
}

// Live returns the number of live types.
func (t *Table) Live() int {
	return int(t.live)
}

// Capacity returns the current slot capacity of the table.
func (t *Table) Capacity() int {
	return cap(t.kind)
}
