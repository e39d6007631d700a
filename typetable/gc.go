package typetable

import (
	logging "github.com/ipfs/go-log/v2"
)

var log = logging.Logger("yices/types")

// Mark pins tau as a garbage-collection root. External owners of type
// ids (terms, assertions, models) mark everything they hold before
// calling GC; the table itself roots the symbol table and the
// primitives.
func (t *Table) Mark(tau Type) {
	t.checkLive(tau)
	t.marks.Set(int(tau), true)
}

// GC reclaims every type unreachable from the roots: the primitives,
// all symbol-table bindings, and ids pinned with Mark since the last
// collection. Reclaimed slots leave the hash-cons index, release their
// name and payload, and join the free list. Join/meet cache entries
// touching a reclaimed id are evicted.
func (t *Table) GC() {
	// Mark roots.
	t.marks.Set(int(BoolType), true)
	t.marks.Set(int(IntType), true)
	t.marks.Set(int(RealType), true)
	t.symbols.Scan(func(_ string, stack []Type) bool {
		for _, id := range stack {
			t.marks.Set(int(id), true)
		}
		return true
	})

	// Propagate: every type reachable from a marked id gets marked.
	// An explicit work stack keeps the pass robust against deep nests
	// and against child ids larger than their parent after slot reuse.
	var work []Type
	for i := range t.kind {
		if t.marks.Get(i) {
			work = t.markReachable(Type(i), work)
		}
	}

	// Sweep in id order, then drop all marks.
	freed := 0
	for i := RealType + 1; int(i) < len(t.kind); i++ {
		if t.kind[i] == KindUnused {
			continue
		}
		if !t.marks.Get(int(i)) {
			t.erase(i)
			freed++
		}
	}
	t.marks.Reset()

	// Evict cache entries referring to reclaimed ids.
	evicted := t.purgeCache(&t.joinCache) + t.purgeCache(&t.meetCache)

	log.Debugw("type table GC finished",
		"freed", freed, "evicted", evicted, "live", t.live)
}

// markReachable marks the descendants of root using the given work
// stack, returning it for reuse.
func (t *Table) markReachable(root Type, work []Type) []Type {
	work = append(work[:0], root)
	for len(work) > 0 {
		id := work[len(work)-1]
		work = work[:len(work)-1]
		for _, child := range t.elem[id] {
			if !t.marks.Get(int(child)) {
				t.marks.Set(int(child), true)
				work = append(work, child)
			}
		}
	}
	return work
}

// erase reclaims one dead slot. The descriptor is still valid on entry,
// which the hash-cons removal depends on.
func (t *Table) erase(i Type) {
	switch t.kind[i] {
	case KindBitvector, KindTuple, KindFunction:
		t.consRemove(t.descriptorHash(i), i)
	}
	if t.name[i] != nil {
		t.name[i].Release()
		t.name[i] = nil
	}
	t.elem[i] = nil
	t.card[i] = 0
	t.flags[i] = 0
	t.freeSlot(i)
}

// purgeCache drops every entry whose key or value refers to a dead id.
// Negative results (NullType values) survive as long as both keys do.
func (t *Table) purgeCache(cache *cacheMap) int {
	var dead []typePair
	cache.Scan(func(k typePair, v Type) bool {
		if !t.isLive(k.k0) || !t.isLive(k.k1) || (v != NullType && !t.isLive(v)) {
			dead = append(dead, k)
		}
		return true
	})
	for _, k := range dead {
		cache.Delete(k)
	}
	return len(dead)
}
