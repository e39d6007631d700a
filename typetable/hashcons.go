package typetable

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// Hash-consing covers the three structural kinds: bitvector, tuple and
// function. The index maps a structural hash to the bucket of live ids
// whose descriptors hash to it; equality within a bucket is structural.
//
// Each shape hashes under its own salt so that, e.g., a bitvector of
// width w and a singleton tuple holding id w land in different buckets.

const (
	saltBitvector uint32 = 0x7a6cbb11
	saltTuple     uint32 = 0x3c9e1b47
	saltFunction  uint32 = 0x85ebca6b
)

// shapeHash hashes a salted word sequence. The salt is expanded to a
// full hash block before the payload words.
func shapeHash(salt uint32, words ...uint32) uint64 {
	const saltBlockSize = 32
	var saltBlock [saltBlockSize]byte
	binary.LittleEndian.PutUint32(saltBlock[:4], salt)

	var digest xxhash.Digest
	digest.Reset()
	digest.Write(saltBlock[:])
	var w [4]byte
	for _, x := range words {
		binary.LittleEndian.PutUint32(w[:], x)
		digest.Write(w[:])
	}
	return digest.Sum64()
}

func bitvectorHash(width uint32) uint64 {
	return shapeHash(saltBitvector, width)
}

func tupleHash(elems []Type) uint64 {
	words := make([]uint32, 0, len(elems)+1)
	words = append(words, uint32(len(elems)))
	for _, e := range elems {
		words = append(words, uint32(e))
	}
	return shapeHash(saltTuple, words...)
}

// functionHash hashes a function signature: sig is the domain with the
// range appended.
func functionHash(sig []Type) uint64 {
	words := make([]uint32, 0, len(sig)+1)
	words = append(words, uint32(len(sig)-1))
	for _, e := range sig {
		words = append(words, uint32(e))
	}
	return shapeHash(saltFunction, words...)
}

// descriptorHash recomputes the structural hash of a live compound
// descriptor. Used by the sweep phase to locate the cons entry of a dead
// type while its descriptor is still valid.
func (t *Table) descriptorHash(i Type) uint64 {
	switch t.kind[i] {
	case KindBitvector:
		return bitvectorHash(t.bits[i])
	case KindTuple:
		return tupleHash(t.elem[i])
	case KindFunction:
		return functionHash(t.elem[i])
	}
	panic("descriptorHash: not a hash-consed kind")
}

// consLookup scans the bucket for h and returns the first id whose
// descriptor satisfies eq, or NullType.
func (t *Table) consLookup(h uint64, eq func(Type) bool) Type {
	bucket, ok := t.cons.Get(h)
	if !ok {
		return NullType
	}
	for _, id := range bucket {
		if eq(id) {
			return id
		}
	}
	return NullType
}

func (t *Table) consInsert(h uint64, id Type) {
	bucket, _ := t.cons.Get(h)
	t.cons.Set(h, append(bucket, id))
}

// consRemove drops id from its bucket; empty buckets leave the index.
func (t *Table) consRemove(h uint64, id Type) {
	bucket, ok := t.cons.Get(h)
	if !ok {
		return
	}
	for i, other := range bucket {
		if other == id {
			bucket = append(bucket[:i], bucket[i+1:]...)
			break
		}
	}
	if len(bucket) == 0 {
		t.cons.Delete(h)
	} else {
		t.cons.Set(h, bucket)
	}
}

func (t *Table) sameBitvector(width uint32) func(Type) bool {
	return func(id Type) bool {
		return t.kind[id] == KindBitvector && t.bits[id] == width
	}
}

func (t *Table) sameTuple(elems []Type) func(Type) bool {
	return func(id Type) bool {
		return t.kind[id] == KindTuple && sameTypes(t.elem[id], elems)
	}
}

func (t *Table) sameFunction(sig []Type) func(Type) bool {
	return func(id Type) bool {
		return t.kind[id] == KindFunction && sameTypes(t.elem[id], sig)
	}
}

func sameTypes(a, b []Type) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
