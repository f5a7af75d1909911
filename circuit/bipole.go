package circuit

import (
	"weak"

	"github.com/circuitkit/mna/namespace"
	"github.com/circuitkit/mna/scalar"
)

// Bipole is a two-terminal circuit element: pos and neg Pins, a kind, and
// (for voltage sources) a Name identifying its MNA constraint row. It holds
// only a weak back-reference to its owning Circuit, so a Circuit going out
// of scope never leaks through a live Bipole handle.
type Bipole[S scalar.Numeric] struct {
	pos, neg Pin
	kind     BipoleKind[S]
	vsid     *namespace.Name
	circuit  weak.Pointer[Circuit[S]]
}

// Pos returns a mutable reference to the positive-terminal pin.
func (b *Bipole[S]) Pos() *Pin { return &b.pos }

// Neg returns a mutable reference to the negative-terminal pin.
func (b *Bipole[S]) Neg() *Pin { return &b.neg }

// Kind returns the bipole's current kind and parameter.
func (b *Bipole[S]) Kind() BipoleKind[S] { return b.kind }

// VSID returns the bipole's voltage-source row id and true, if it currently
// has one (i.e. its kind is VoltageSource).
func (b *Bipole[S]) VSID() (int, bool) {
	if b.vsid == nil {
		return 0, false
	}
	return b.vsid.ID(), true
}

// Circuit returns the owning Circuit, or nil if it has been dropped.
func (b *Bipole[S]) Circuit() *Circuit[S] {
	return b.circuit.Value()
}

// SetKind changes the bipole's kind, unstamping its old effect and stamping
// the new one. Returns ErrCircuitDead if the owning circuit is gone. A
// voltage-source row is allocated or released as needed when the kind
// crosses the VoltageSource boundary; that case always forces a full
// relinearize (see Circuit.Update) so it is applied via a plain Update call
// rather than the cheaper incremental apply/repeal path used when the
// voltage-source-ness of the bipole does not change. Matrix failures come
// back as the MatrixError Update produced, wrapped once.
func (b *Bipole[S]) SetKind(newKind BipoleKind[S]) error {
	c := b.circuit.Value()
	if c == nil {
		return ErrCircuitDead
	}

	wasVS := b.kind.Kind == VoltageSource
	willBeVS := newKind.Kind == VoltageSource

	if wasVS == willBeVS {
		// Flush once, before either half of the repeal/apply pair: b may be
		// a bipole Add left with a pending needLinearize (Add never stamps
		// or rebuilds synchronously), and the Resistor case of
		// repealEffect/applyEffect writes straight into c.builder, which
		// must already be sized for b's ids. Flushing here, rather than
		// inside repealEffect/applyEffect themselves, also keeps a
		// needRebuild that repealEffect sets from being flushed by
		// applyEffect before applyEffect's own restamp — which would
		// factor a transiently zeroed, singular matrix.
		if err := c.Update(); err != nil {
			return err
		}
		if err := c.repealEffect(b); err != nil {
			return err
		}
		b.kind = newKind
		if err := c.applyEffect(b); err != nil {
			return err
		}
		return nil
	}

	if wasVS && !willBeVS {
		b.vsid = nil
	}
	b.kind = newKind
	if willBeVS && b.vsid == nil {
		b.vsid = c.vsns.Next()
	}
	c.needLinearize = true
	c.needRebuild = true
	if err := c.Update(); err != nil {
		return err
	}
	return nil
}
