package typetable

// The symbol table maps names to stacks of bindings. SetName pushes;
// RemoveName pops, revealing the shadowed binding if any. Separately
// from lookup, a type keeps the first name ever attached to it as its
// display name; later bindings shadow lookups but never change the
// display name.
//
// Reference counts: the descriptor's display name holds one, and every
// live binding holds one. RemoveName releases exactly one through the
// string finalizer.

// SetName binds name to tau. If tau has no display name yet, name also
// becomes its display name.
func (t *Table) SetName(tau Type, name string) {
	t.checkLive(tau)
	s := t.names.Get(name)
	if t.name[tau] == nil {
		t.name[tau] = s
		s.Retain()
	}
	stack, _ := t.symbols.Get(name)
	t.symbols.Set(name, append(stack, tau))
	s.Retain()
}

// TypeByName returns the type currently bound to name, or NullType.
func (t *Table) TypeByName(name string) Type {
	stack, ok := t.symbols.Get(name)
	if !ok || len(stack) == 0 {
		return NullType
	}
	return stack[len(stack)-1]
}

// RemoveName pops the topmost binding of name, if any. The previously
// shadowed binding, if any, becomes visible again.
func (t *Table) RemoveName(name string) {
	stack, ok := t.symbols.Get(name)
	if !ok || len(stack) == 0 {
		return
	}
	if len(stack) == 1 {
		t.symbols.Delete(name)
	} else {
		t.symbols.Set(name, stack[:len(stack)-1])
	}
	if s, ok := t.names.Lookup(name); ok {
		s.Release()
	}
}

// NameOf returns tau's display name: the first name ever attached to
// it, or the empty string.
func (t *Table) NameOf(tau Type) string {
	t.checkLive(tau)
	if t.name[tau] == nil {
		return ""
	}
	return t.name[tau].String()
}
