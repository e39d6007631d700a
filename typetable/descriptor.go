package typetable

import (
	"fmt"

	"github.com/TheTesla/yices2/refstr"
)

// The descriptor store is a set of parallel slices indexed by Type. The
// slot layout keeps the kind tag in its own slice so the common
// KindOf dispatch stays on one cache line per stretch of ids.
//
//	kind[i]  — tag; KindUnused marks a free slot
//	card[i]  — cardinality, saturated at CardInfinite
//	flags[i] — flag byte
//	name[i]  — stored display name, nil if none
//	bits[i]  — bitvector width or scalar size; doubles as the intrusive
//	           free-list next pointer while the slot is unused
//	elem[i]  — tuple elements, or function domain with the range last

// noFreeSlot terminates the free-slot chain threaded through bits.
const noFreeSlot = ^uint32(0)

// alloc returns an unused slot id: the free-list head if any, otherwise a
// fresh slot at the end of the table.
func (t *Table) alloc() Type {
	if t.freeHead != noFreeSlot {
		i := Type(t.freeHead)
		t.freeHead = t.bits[i]
		t.bits[i] = 0
		t.live++
		return i
	}
	if len(t.kind) >= MaxTypes {
		panic(ErrTableFull)
	}
	if len(t.kind) == cap(t.kind) {
		t.growStorage()
	}
	t.kind = append(t.kind, KindUnused)
	t.card = append(t.card, 0)
	t.flags = append(t.flags, 0)
	t.name = append(t.name, nil)
	t.bits = append(t.bits, 0)
	t.elem = append(t.elem, nil)
	t.live++
	return Type(len(t.kind) - 1)
}

// freeSlot pushes a slot onto the free-list head. The caller has already
// erased the descriptor.
func (t *Table) freeSlot(i Type) {
	t.kind[i] = KindUnused
	t.bits[i] = t.freeHead
	t.freeHead = uint32(i)
	t.live--
}

// growStorage extends every parallel slice by half, capped at MaxTypes.
// Ids are offsets into these slices, so growth never renumbers.
func (t *Table) growStorage() {
	n := cap(t.kind)
	grown := n + n/2
	if grown == n {
		grown = n + 1
	}
	if grown > MaxTypes {
		grown = MaxTypes
	}
	if grown <= n {
		panic(ErrTableFull)
	}
	t.kind = append(make([]Kind, 0, grown), t.kind...)
	t.card = append(make([]uint32, 0, grown), t.card...)
	t.flags = append(make([]Flags, 0, grown), t.flags...)
	t.name = append(make([]*refstr.String, 0, grown), t.name...)
	t.bits = append(make([]uint32, 0, grown), t.bits...)
	t.elem = append(make([][]Type, 0, grown), t.elem...)
}

// isLive reports whether tau names a live slot.
func (t *Table) isLive(tau Type) bool {
	return tau >= 0 && int(tau) < len(t.kind) && t.kind[tau] != KindUnused
}

// checkLive panics if tau does not name a live slot. Operations on freed
// or out-of-range ids are programming errors.
func (t *Table) checkLive(tau Type) {
	if !t.isLive(tau) {
		panic(fmt.Errorf("invalid type id: %d", tau))
	}
}
