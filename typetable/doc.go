// Package typetable implements the hash-consed, garbage-collected type
// table of an SMT solver: Booleans, integers, reals, fixed-width
// bitvectors, finite scalar types, uninterpreted atoms, tuples and
// total functions, with the algebraic operations the rest of a solver
// depends on.
//
// # Identifiers
//
// Types are small signed integers into a Table. The three primitives
// sit at fixed ids (BoolType, IntType, RealType) and are never
// reclaimed. NullType is the "no type" sentinel returned by lattice
// operations on incompatible arguments and by failed name lookups.
//
// # Hash consing
//
// Bitvector, tuple and function types are structural: constructing the
// same shape twice returns the same id, which makes id equality the
// sole equality on types. Scalar and uninterpreted types are nominal;
// every construction yields a fresh id even for equal sizes.
//
// # Cardinality
//
// Each descriptor carries a 32-bit cardinality, saturated at
// CardInfinite, and a flag byte classifying the type as unit, small
// (exact, fits in 32 bits), large (finite past 32-bit arithmetic) or
// infinite, plus lattice maximality/minimality bits. Compound types
// derive flags and cardinality from their children with saturating
// arithmetic; recomputing them from the children always reproduces the
// stored values.
//
// # Lattice
//
// The subtype order is int <= real, lifted componentwise over tuples
// (covariant) and functions (invariant domain, covariant range). Join
// and Meet memoize results, negative ones included, in caches that the
// garbage collector keeps consistent.
//
// # Naming
//
// SetName pushes name bindings with shadowing; RemoveName pops them.
// A type's display name is the first name ever attached to it and
// never changes afterwards, even when later bindings shadow the lookup.
// Names are reference-counted strings shared with the symbol table.
//
// # Garbage collection
//
// GC is mark-and-sweep: roots are the primitives, every symbol-table
// binding, and ids pinned with Mark; marking walks tuple elements and
// function signatures with an explicit stack; the sweep removes
// hash-cons entries, releases names and payloads, and threads freed
// slots onto an intrusive free list for reuse.
//
// A Table belongs to one solver context and is single-threaded by
// design; there is no internal locking.
package typetable
