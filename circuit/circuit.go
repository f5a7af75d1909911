// Package circuit assembles a netlist of two-terminal bipoles (resistors,
// ideal voltage sources, ideal current sources) on top of the mna package's
// matrix engine, keeping the MNA system consistent as the netlist is edited:
// changing a bipole's kind incrementally unstamps and restamps the system
// matrix or its right-hand side, while adding a bipole or connecting pins
// marks the circuit for a full restamp at the next Update.
package circuit

import (
	"weak"

	"github.com/circuitkit/mna"
	"github.com/circuitkit/mna/namespace"
	"github.com/circuitkit/mna/scalar"
)

// Circuit owns a bipole list, the node and voltage-source namespaces, and
// the matrix builder/evaluator pair that together form its MNA system. When
// both needLinearize and needRebuild are clear, the evaluator's matrix is
// exactly the LU factorization of the MNA system implied by the current
// bipole list.
type Circuit[S scalar.Numeric] struct {
	bipoles []*Bipole[S]
	ndns    *namespace.LinearNamespace
	vsns    *namespace.LinearNamespace

	builder *mna.MatrixBuilder[S]
	eval    *mna.MatrixEvaluator[S]

	needLinearize bool
	needRebuild   bool
}

// NewCircuit returns an empty circuit: no bipoles, empty namespaces, and a
// trivially-factored 0x0 evaluator.
func NewCircuit[S scalar.Numeric]() *Circuit[S] {
	c := &Circuit[S]{
		ndns: namespace.New(),
		vsns: namespace.New(),
	}
	b, err := mna.NewMatrixBuilder[S](0, 0)
	if err != nil {
		panic(err) // a 0x0 builder can never overflow
	}
	ev, err := b.Build()
	if err != nil {
		panic(err) // factoring a 0x0 matrix can never fail
	}
	c.builder = b
	c.eval = ev
	return c
}

// Add allocates a new bipole of the given kind, with two fresh pins (and, if
// kind is a VoltageSource, a fresh voltage-source row), and marks the
// circuit for a deferred relinearize-and-rebuild. It never stamps the new
// bipole into the current builder/evaluator directly: a bipole's two fresh
// pins are floating (no ground, no connection yet), so the system as it
// stands the instant after Add would be exactly singular. Stamping happens
// lazily, along with every other bipole's, the next time Update flushes a
// pending relinearize — matching the rest of the package's lazy-solve
// contract (solves, and now stamps, happen on next read, not on mutation).
func (c *Circuit[S]) Add(kind BipoleKind[S]) *Bipole[S] {
	bp := &Bipole[S]{
		pos:  Pin{name: c.ndns.Next()},
		neg:  Pin{name: c.ndns.Next()},
		kind: kind,
	}
	if kind.Kind == VoltageSource {
		bp.vsid = c.vsns.Next()
	}
	bp.circuit = weak.Make(c)

	c.bipoles = append(c.bipoles, bp)
	c.needLinearize = true
	c.needRebuild = true

	return bp
}

// ConnectPins joins a and b (see Pin.Connect) and marks the circuit for a
// full relinearize-and-rebuild. This is the circuit-aware way to wire two
// bipoles' pins together; calling Pin.Connect directly leaves the caller
// responsible for invoking Update afterward.
func (c *Circuit[S]) ConnectPins(a, b *Pin) {
	a.Connect(b)
	c.needLinearize = true
	c.needRebuild = true
}

// Update flushes deferred work. If the node/source namespaces have grown or
// shrunk since the last Update, both are linearized, a fresh builder of the
// compacted size is created, and every bipole's full effect (matrix stamps
// and known-vector contributions alike) is restamped from scratch. Otherwise,
// if only the matrix values changed, the existing builder is cloned and
// refactored, with the previously-known right-hand side carried forward.
// Circuit.Evaluator calls Update implicitly; the Bipole accessors do not.
// Update may replace the evaluator, so callers should fetch it again through
// Evaluator after a mutation before reading a solution.
func (c *Circuit[S]) Update() error {
	if c.needLinearize {
		c.vsns.Linearize()
		c.ndns.Linearize()

		nb, err := mna.NewMatrixBuilder[S](c.ndns.Size(), c.vsns.Size())
		if err != nil {
			return MatrixError{Err: err}
		}
		for _, bp := range c.bipoles {
			fullStampMatrix(nb, bp)
		}
		ev, err := nb.Build()
		if err != nil {
			return MatrixError{Err: err}
		}
		for _, bp := range c.bipoles {
			fullStampKnown(ev, bp)
		}

		c.builder = nb
		c.eval = ev
		c.needLinearize = false
		c.needRebuild = false
		return nil
	}

	if c.needRebuild {
		oldCurrents := append([]S(nil), c.eval.NodeCurrents()...)
		oldPotentials := append([]S(nil), c.eval.SrcPotentials()...)

		ev, err := c.builder.Clone().Build()
		if err != nil {
			return MatrixError{Err: err}
		}
		copy(ev.NodeCurrents(), oldCurrents)
		copy(ev.SrcPotentials(), oldPotentials)
		ev.MarkDirty()

		c.eval = ev
		c.needRebuild = false
	}
	return nil
}

// Evaluator returns the circuit's current MatrixEvaluator, flushing pending
// work first.
func (c *Circuit[S]) Evaluator() (*mna.MatrixEvaluator[S], error) {
	if err := c.Update(); err != nil {
		return nil, err
	}
	return c.eval, nil
}

// Bipoles returns the circuit's bipoles in insertion order.
func (c *Circuit[S]) Bipoles() []*Bipole[S] {
	return c.bipoles
}

// applyEffect incrementally stamps bp's current kind into the circuit's
// builder (resistors) or evaluator known vector (voltage/current sources).
// Used by SetKind's fast path, where bp's voltage-source-ness does not
// change so no new row is needed. Requires the caller to have already
// flushed any pending needLinearize (see SetKind): the Resistor case writes
// straight into c.builder, which must already be sized for bp's ids, and
// must not trigger a Build in between repealEffect's unstamp and
// applyEffect's restamp or it would factor a transiently zeroed, singular
// matrix.
func (c *Circuit[S]) applyEffect(bp *Bipole[S]) error {
	switch bp.kind.Kind {
	case Resistor:
		stampResistor(c.builder, bp, scalar.Recip(bp.kind.Value))
		c.needRebuild = true
		return nil
	case VoltageSource:
		if err := c.Update(); err != nil {
			return err
		}
		if bp.vsid != nil {
			c.eval.AddPotential(bp.vsid.ID(), bp.kind.Value)
		}
		return nil
	case CurrentSource:
		if err := c.Update(); err != nil {
			return err
		}
		stampCurrentKnown(c.eval, bp, bp.kind.Value)
		return nil
	}
	return nil
}

// repealEffect is applyEffect's inverse, called with bp's old kind before it
// is overwritten. See applyEffect for the same up-to-date precondition.
func (c *Circuit[S]) repealEffect(bp *Bipole[S]) error {
	switch bp.kind.Kind {
	case Resistor:
		stampResistor(c.builder, bp, -scalar.Recip(bp.kind.Value))
		c.needRebuild = true
		return nil
	case VoltageSource:
		if err := c.Update(); err != nil {
			return err
		}
		if bp.vsid != nil {
			c.eval.AddPotential(bp.vsid.ID(), -bp.kind.Value)
		}
		return nil
	case CurrentSource:
		if err := c.Update(); err != nil {
			return err
		}
		stampCurrentKnown(c.eval, bp, -bp.kind.Value)
		return nil
	}
	return nil
}

func stampResistor[S scalar.Numeric](b *mna.MatrixBuilder[S], bp *Bipole[S], g S) {
	posID, posOK := bp.pos.ID()
	negID, negOK := bp.neg.ID()
	switch {
	case posOK && negOK:
		n := negID
		b.AddConductance(posID, &n, g)
	case posOK && !negOK:
		b.AddConductance(posID, nil, g)
	case !posOK && negOK:
		b.AddConductance(negID, nil, g)
	default:
		// both pins grounded: no-op, per §9's resolution of the
		// asymmetric-stamp open question.
	}
}

func stampCurrentKnown[S scalar.Numeric](ev *mna.MatrixEvaluator[S], bp *Bipole[S], i S) {
	if id, ok := bp.pos.ID(); ok {
		ev.AddCurrent(id, i)
	}
	if id, ok := bp.neg.ID(); ok {
		ev.AddCurrent(id, -i)
	}
}

// fullStampMatrix writes bp's matrix contribution (resistor conductance, or
// a voltage source's +-1 constraint row) into a freshly-sized builder, used
// when rebuilding the whole system from the bipole list after a linearize.
func fullStampMatrix[S scalar.Numeric](b *mna.MatrixBuilder[S], bp *Bipole[S]) {
	switch bp.kind.Kind {
	case Resistor:
		stampResistor(b, bp, scalar.Recip(bp.kind.Value))
	case VoltageSource:
		if bp.vsid == nil {
			return
		}
		var posP, negP *int
		if id, ok := bp.pos.ID(); ok {
			posP = &id
		}
		if id, ok := bp.neg.ID(); ok {
			negP = &id
		}
		b.AddVSCon(bp.vsid.ID(), posP, negP)
	case CurrentSource:
		// no matrix contribution
	}
}

// fullStampKnown writes bp's known-vector contribution into a freshly-built
// evaluator, used for the same from-scratch rebuild as fullStampMatrix.
func fullStampKnown[S scalar.Numeric](ev *mna.MatrixEvaluator[S], bp *Bipole[S]) {
	switch bp.kind.Kind {
	case VoltageSource:
		if bp.vsid != nil {
			ev.AddPotential(bp.vsid.ID(), bp.kind.Value)
		}
	case CurrentSource:
		stampCurrentKnown(ev, bp, bp.kind.Value)
	case Resistor:
		// no known contribution
	}
}
