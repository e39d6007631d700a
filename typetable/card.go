package typetable

// Cardinality and flag derivation. A compound type's cardinality and
// flag byte are a pure function of its children's descriptors; all
// arithmetic saturates at CardInfinite.

// bitvectorCardFlags: 2^w values; exact below width 32, saturated from
// width 32 up.
func bitvectorCardFlags(width uint32) (uint32, Flags) {
	if width < 32 {
		return uint32(1) << width, SmallTypeFlags
	}
	return CardInfinite, LargeTypeFlags
}

func scalarCardFlags(size uint32) (uint32, Flags) {
	if size == 1 {
		return 1, UnitTypeFlags
	}
	return size, SmallTypeFlags
}

// satProduct multiplies the cardinalities of elems, saturating at
// CardInfinite.
func (t *Table) satProduct(elems []Type) uint32 {
	prod := uint64(1)
	for _, e := range elems {
		prod *= uint64(t.card[e])
		if prod >= uint64(CardInfinite) {
			return CardInfinite
		}
	}
	return uint32(prod)
}

// tupleCardFlags: every flag bit propagates by conjunction over the
// elements; the cardinality is the saturating product. Saturation
// downgrades the exactness bits while conjunction has already settled
// FlagFinite.
func (t *Table) tupleCardFlags(elems []Type) (uint32, Flags) {
	flags := UnitTypeFlags
	for _, e := range elems {
		flags &= t.flags[e]
	}
	card := t.satProduct(elems)
	if card == CardInfinite {
		flags &^= FlagUnit | FlagSmall
	}
	return card, flags
}

// functionCardFlags computes the descriptor of domain -> rng.
//
// Unit, maximal and minimal come from the range alone: a function type
// always has at least one value, and the domain is fixed under
// hash-consing so contravariance cannot disturb min/max at this
// position. Finiteness needs a unit range or a finite range over finite
// domains. The cardinality |rng|^(|d1|*...*|dn|) is computed exactly
// only while it provably fits: a domain product of 32 or more saturates
// outright since |rng| >= 2 forces at least 2^32 functions.
func (t *Table) functionCardFlags(domain []Type, rng Type) (uint32, Flags) {
	rf := t.flags[rng]
	flags := rf & (FlagUnit | FlagMaximal | FlagMinimal)

	domainFinite := true
	domainSmall := true
	for _, d := range domain {
		domainFinite = domainFinite && t.flags[d]&FlagFinite != 0
		domainSmall = domainSmall && t.flags[d]&FlagSmall != 0
	}

	var card uint32
	switch {
	case rf&FlagUnit != 0:
		card = 1
		flags |= FlagFinite | FlagSmall
	case rf&FlagSmall != 0 && domainSmall:
		card = satPow(t.card[rng], t.satProduct(domain))
		if card != CardInfinite {
			flags |= FlagSmall
		}
	default:
		card = CardInfinite
	}

	if rf&FlagUnit != 0 || (rf&FlagFinite != 0 && domainFinite) {
		flags |= FlagFinite
	}
	return card, flags
}

// satPow computes base^exp saturating at CardInfinite. Exponents of 32
// or more saturate without iterating: base is at least 2 here (a unit
// range never reaches this path).
func satPow(base uint32, exp uint32) uint32 {
	if exp >= 32 {
		return CardInfinite
	}
	result := uint64(1)
	for ; exp > 0; exp-- {
		result *= uint64(base)
		if result >= uint64(CardInfinite) {
			return CardInfinite
		}
	}
	return uint32(result)
}

// CardOf returns the cardinality of tau, saturated at CardInfinite.
func (t *Table) CardOf(tau Type) uint32 {
	t.checkLive(tau)
	return t.card[tau]
}

// FlagsOf returns the flag byte of tau.
func (t *Table) FlagsOf(tau Type) Flags {
	t.checkLive(tau)
	return t.flags[tau]
}

// IsFinite reports whether tau's cardinality is exact and finite.
func (t *Table) IsFinite(tau Type) bool {
	return t.FlagsOf(tau)&FlagFinite != 0
}

// IsUnit reports whether tau has exactly one value.
func (t *Table) IsUnit(tau Type) bool {
	return t.FlagsOf(tau)&FlagUnit != 0
}

// IsSmall reports whether tau's cardinality is exact and fits in 32
// bits.
func (t *Table) IsSmall(tau Type) bool {
	return t.FlagsOf(tau)&FlagSmall != 0
}

// IsMaximal reports whether tau has no strict supertype.
func (t *Table) IsMaximal(tau Type) bool {
	return t.FlagsOf(tau)&FlagMaximal != 0
}

// IsMinimal reports whether tau has no strict subtype.
func (t *Table) IsMinimal(tau Type) bool {
	return t.FlagsOf(tau)&FlagMinimal != 0
}

// CardOfProduct returns the saturating product of the cardinalities of
// elems without building a tuple type.
func (t *Table) CardOfProduct(elems []Type) uint32 {
	for _, e := range elems {
		t.checkLive(e)
	}
	return t.satProduct(elems)
}

// CardOfDomain returns the saturating cardinality of fn's domain.
func (t *Table) CardOfDomain(fn Type) uint32 {
	return t.satProduct(t.functionSig(fn)[:t.FunctionArity(fn)])
}

// CardOfRange returns the cardinality of fn's range.
func (t *Table) CardOfRange(fn Type) uint32 {
	return t.card[t.FunctionRange(fn)]
}

// HasFiniteDomain reports whether every domain type of fn is finite.
func (t *Table) HasFiniteDomain(fn Type) bool {
	sig := t.functionSig(fn)
	for _, d := range sig[:len(sig)-1] {
		if t.flags[d]&FlagFinite == 0 {
			return false
		}
	}
	return true
}

// HasFiniteRange reports whether fn's range is finite.
func (t *Table) HasFiniteRange(fn Type) bool {
	return t.flags[t.FunctionRange(fn)]&FlagFinite != 0
}
