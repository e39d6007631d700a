// Package refstr provides interned strings with manual reference counting.
//
// Strings are shared: interning the same value twice returns the same
// *String. Holders pair every Retain with exactly one Release; when the
// count returns to zero the string is dropped from its pool.
package refstr

import (
	"fmt"

	"github.com/tidwall/hashmap"
)

// Pool interns strings and owns their lifetime.
type Pool struct {
	strings hashmap.Map[string, *String]
}

// String is a pooled, reference-counted string.
type String struct {
	value string
	refs  uint32
	pool  *Pool
}

func NewPool() *Pool {
	return &Pool{}
}

// Get returns the interned String for value, creating it with a zero
// reference count if it is not pooled yet.
func (p *Pool) Get(value string) *String {
	if s, ok := p.strings.Get(value); ok {
		return s
	}
	s := &String{value: value, pool: p}
	p.strings.Set(value, s)
	return s
}

// Lookup returns the pooled String for value, if any.
func (p *Pool) Lookup(value string) (*String, bool) {
	return p.strings.Get(value)
}

// Len returns the number of pooled strings.
func (p *Pool) Len() int {
	return p.strings.Len()
}

func (s *String) String() string {
	return s.value
}

// Refs returns the current reference count.
func (s *String) Refs() uint32 {
	return s.refs
}

// Retain adds one reference.
func (s *String) Retain() {
	s.refs++
}

// Release drops one reference. When the count reaches zero the string is
// removed from its pool; releasing an unreferenced string is a bug.
func (s *String) Release() {
	if s.refs == 0 {
		panic(fmt.Errorf("refstr: release of unreferenced string %q", s.value))
	}
	s.refs--
	if s.refs == 0 {
		s.pool.strings.Delete(s.value)
	}
}
