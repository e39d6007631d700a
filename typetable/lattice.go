package typetable

// The subtype lattice: int <= real; tuples lift componentwise; function
// types are invariant in the domain and covariant in the range; every
// other constructor is comparable only to itself.
//
// Join and meet run the same skeleton: a cheap path that settles all
// non-recursive cases, pair normalization, a memo cache (negative
// results included), then structural recursion. Both may create the
// result type as a side effect; that is part of the contract.

// Join returns the smallest common supertype of tau1 and tau2, or
// NullType if they are incompatible.
func (t *Table) Join(tau1, tau2 Type) Type {
	t.checkLive(tau1)
	t.checkLive(tau2)
	r := t.cheapJoin(tau1, tau2)
	if r != unknownType {
		return r
	}
	if tau2 < tau1 {
		tau1, tau2 = tau2, tau1
	}
	key := typePair{tau1, tau2}
	if v, ok := t.joinCache.Get(key); ok {
		return v
	}
	var result Type
	switch t.kind[tau1] {
	case KindTuple:
		result = t.joinTuples(tau1, tau2)
	case KindFunction:
		result = t.joinFunctions(tau1, tau2)
	}
	t.joinCache.Set(key, result)
	return result
}

// Meet returns the largest common subtype of tau1 and tau2, or
// NullType if they are incompatible.
func (t *Table) Meet(tau1, tau2 Type) Type {
	t.checkLive(tau1)
	t.checkLive(tau2)
	r := t.cheapMeet(tau1, tau2)
	if r != unknownType {
		return r
	}
	if tau2 < tau1 {
		tau1, tau2 = tau2, tau1
	}
	key := typePair{tau1, tau2}
	if v, ok := t.meetCache.Get(key); ok {
		return v
	}
	var result Type
	switch t.kind[tau1] {
	case KindTuple:
		result = t.meetTuples(tau1, tau2)
	case KindFunction:
		result = t.meetFunctions(tau1, tau2)
	}
	t.meetCache.Set(key, result)
	return result
}

// IsSubtype reports tau1 <= tau2. May create intermediate types.
func (t *Table) IsSubtype(tau1, tau2 Type) bool {
	return t.Join(tau1, tau2) == tau2
}

// Compatible reports whether tau1 and tau2 have a common supertype.
func (t *Table) Compatible(tau1, tau2 Type) bool {
	return t.Join(tau1, tau2) != NullType
}

// cheapJoin settles every case that needs no recursion. It returns
// unknownType exactly when both types are tuples of equal arity or
// functions of equal arity, and not identical.
func (t *Table) cheapJoin(a, b Type) Type {
	if a == b {
		return a
	}
	if (a == IntType && b == RealType) || (a == RealType && b == IntType) {
		return RealType
	}
	return t.cheapLattice(a, b)
}

func (t *Table) cheapMeet(a, b Type) Type {
	if a == b {
		return a
	}
	if (a == IntType && b == RealType) || (a == RealType && b == IntType) {
		return IntType
	}
	return t.cheapLattice(a, b)
}

func (t *Table) cheapLattice(a, b Type) Type {
	ka, kb := t.kind[a], t.kind[b]
	if ka != kb {
		return NullType
	}
	switch ka {
	case KindTuple, KindFunction:
		if len(t.elem[a]) != len(t.elem[b]) {
			return NullType
		}
		return unknownType
	}
	return NullType
}

func (t *Table) joinTuples(a, b Type) Type {
	ea, eb := t.elem[a], t.elem[b]
	joined := make([]Type, len(ea))
	for i := range ea {
		j := t.Join(ea[i], eb[i])
		if j == NullType {
			return NullType
		}
		joined[i] = j
	}
	return t.TupleType(joined...)
}

func (t *Table) meetTuples(a, b Type) Type {
	ea, eb := t.elem[a], t.elem[b]
	met := make([]Type, len(ea))
	for i := range ea {
		m := t.Meet(ea[i], eb[i])
		if m == NullType {
			return NullType
		}
		met[i] = m
	}
	return t.TupleType(met...)
}

// joinFunctions requires identical domains; only the ranges join.
func (t *Table) joinFunctions(a, b Type) Type {
	sa, sb := t.elem[a], t.elem[b]
	n := len(sa) - 1
	if !sameTypes(sa[:n], sb[:n]) {
		return NullType
	}
	r := t.Join(sa[n], sb[n])
	if r == NullType {
		return NullType
	}
	return t.FunctionType(sa[:n], r)
}

func (t *Table) meetFunctions(a, b Type) Type {
	sa, sb := t.elem[a], t.elem[b]
	n := len(sa) - 1
	if !sameTypes(sa[:n], sb[:n]) {
		return NullType
	}
	r := t.Meet(sa[n], sb[n])
	if r == NullType {
		return NullType
	}
	return t.FunctionType(sa[:n], r)
}
