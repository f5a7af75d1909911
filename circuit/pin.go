package circuit

import "github.com/circuitkit/mna/namespace"

// Pin is a bipole terminal: either ground (no Name) or a node carrying a
// Name from the owning circuit's node namespace.
type Pin struct {
	name *namespace.Name
}

// IsGround reports whether the pin is the ground terminal.
func (p *Pin) IsGround() bool {
	return p.name == nil
}

// Ground forces the pin to ground unconditionally.
func (p *Pin) Ground() {
	p.name = nil
}

// ID returns the pin's current node id and true, or (0, false) if it is
// ground.
func (p *Pin) ID() (int, bool) {
	if p.name == nil {
		return 0, false
	}
	return p.name.ID(), true
}

// Connect joins p to other: if both are real nodes their Names are unified
// (both thereafter report the same id); if either is ground, the non-ground
// side becomes ground too (ground absorbs). This is the raw namespace-level
// primitive — it has no notion of an owning circuit and does not mark
// anything dirty. Prefer Circuit.ConnectPins when either pin belongs to a
// bipole already stamped into a circuit.
func (p *Pin) Connect(other *Pin) {
	switch {
	case p.name != nil && other.name != nil:
		p.name.Unify(other.name)
	case p.name != nil && other.name == nil:
		p.name = nil
	case p.name == nil && other.name != nil:
		other.name = nil
	}
}
