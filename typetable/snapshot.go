package typetable

// TypeInfo is the exported view of one live descriptor, used by
// tooling dumps.
type TypeInfo struct {
	ID       Type   `json:"id"`
	Kind     string `json:"kind"`
	Card     uint32 `json:"card"`
	Finite   bool   `json:"finite"`
	Unit     bool   `json:"unit,omitempty"`
	Small    bool   `json:"small,omitempty"`
	Name     string `json:"name,omitempty"`
	Width    uint32 `json:"width,omitempty"`
	Size     uint32 `json:"size,omitempty"`
	Elems    []Type `json:"elems,omitempty"`
	Domain   []Type `json:"domain,omitempty"`
	RangeTyp Type   `json:"range,omitempty"`
}

// Snapshot returns the live descriptors in id order.
func (t *Table) Snapshot() []TypeInfo {
	out := make([]TypeInfo, 0, t.live)
	for i := range t.kind {
		tau := Type(i)
		if !t.isLive(tau) {
			continue
		}
		info := TypeInfo{
			ID:     tau,
			Kind:   t.kind[tau].String(),
			Card:   t.card[tau],
			Finite: t.flags[tau]&FlagFinite != 0,
			Unit:   t.flags[tau]&FlagUnit != 0,
			Small:  t.flags[tau]&FlagSmall != 0,
			Name:   t.NameOf(tau),
		}
		switch t.kind[tau] {
		case KindBitvector:
			info.Width = t.bits[tau]
		case KindScalar:
			info.Size = t.bits[tau]
		case KindTuple:
			info.Elems = append([]Type(nil), t.elem[tau]...)
		case KindFunction:
			sig := t.elem[tau]
			info.Domain = append([]Type(nil), sig[:len(sig)-1]...)
			info.RangeTyp = sig[len(sig)-1]
		}
		out = append(out, info)
	}
	return out
}
