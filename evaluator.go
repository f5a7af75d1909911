package mna

import "github.com/circuitkit/mna/scalar"

// MatrixEvaluator owns a factored MNA matrix plus the right-hand-side
// ("known") and solution ("out") buffers. known's first Nodes entries are
// node current injections and its last Sources entries are source-imposed
// potentials; out has the same shape, holding node potentials then source
// currents once solved.
type MatrixEvaluator[S scalar.Numeric] struct {
	nodes, sources, stride int
	a                      []S
	piv                    []int
	known, out             []S
	dirty                  bool
}

// Nodes returns the number of node unknowns.
func (e *MatrixEvaluator[S]) Nodes() int { return e.nodes }

// Sources returns the number of voltage-source row unknowns.
func (e *MatrixEvaluator[S]) Sources() int { return e.sources }

// AddCurrent adds i to the current injection known at node, marking the
// evaluator dirty so the next read resolves.
func (e *MatrixEvaluator[S]) AddCurrent(node int, i S) {
	e.known[node] += i
	e.dirty = true
}

// AddPotential adds v to the potential known imposed by source src.
func (e *MatrixEvaluator[S]) AddPotential(src int, v S) {
	e.known[e.nodes+src] += v
	e.dirty = true
}

// NodeCurrents returns a mutable view over the node-current half of known.
// Callers that write through it are responsible for calling MarkDirty.
func (e *MatrixEvaluator[S]) NodeCurrents() []S {
	return e.known[:e.nodes]
}

// SrcPotentials returns a mutable view over the source-potential half of
// known. Callers that write through it are responsible for calling
// MarkDirty.
func (e *MatrixEvaluator[S]) SrcPotentials() []S {
	return e.known[e.nodes:]
}

// MarkDirty forces the next read to re-solve, for callers that wrote
// directly through NodeCurrents/SrcPotentials.
func (e *MatrixEvaluator[S]) MarkDirty() {
	e.dirty = true
}

// GetPotential returns the solved potential at the given node, solving first
// if dirty.
func (e *MatrixEvaluator[S]) GetPotential(node int) (S, error) {
	if err := e.ensureSolved(); err != nil {
		var zero S
		return zero, err
	}
	return e.out[node], nil
}

// GetCurrent returns the solved current through voltage source src, solving
// first if dirty.
func (e *MatrixEvaluator[S]) GetCurrent(src int) (S, error) {
	if err := e.ensureSolved(); err != nil {
		var zero S
		return zero, err
	}
	return e.out[e.nodes+src], nil
}

// NodePotentials returns the solved node-potential half of out, solving
// first if dirty.
func (e *MatrixEvaluator[S]) NodePotentials() ([]S, error) {
	if err := e.ensureSolved(); err != nil {
		return nil, err
	}
	return e.out[:e.nodes], nil
}

// SrcCurrents returns the solved source-current half of out, solving first
// if dirty.
func (e *MatrixEvaluator[S]) SrcCurrents() ([]S, error) {
	if err := e.ensureSolved(); err != nil {
		return nil, err
	}
	return e.out[e.nodes:], nil
}

func (e *MatrixEvaluator[S]) ensureSolved() error {
	if !e.dirty {
		return nil
	}
	return e.Solve()
}

// Solve copies known into out and solves A·out = known against the stored LU
// factorization, clearing dirty on success.
func (e *MatrixEvaluator[S]) Solve() error {
	copy(e.out, e.known)
	if err := scalar.Solve(e.a, e.stride, e.piv, e.out); err != nil {
		return err
	}
	e.dirty = false
	return nil
}
