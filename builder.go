// Package mna implements the Modified Nodal Analysis matrix engine: a dense
// stamp-based builder that accumulates conductance and voltage-source
// contributions into a system matrix A, and an evaluator that factors A once
// by LU with partial pivoting and reuses the factorization across repeated
// solves of A·x = b.
package mna

import (
	"errors"
	"math"

	"github.com/circuitkit/mna/scalar"
)

// ErrOverflow is returned by NewMatrixBuilder when (nodes+sources)^2 would
// overflow an int or exceed math.MaxInt32 entries, on every platform.
var ErrOverflow = errors.New("mna: matrix size overflows")

// SingularError and BadArgError wrap scalar.SingularError/scalar.BadArgError,
// surfaced unchanged so callers can errors.As through either name.
type (
	SingularError = scalar.SingularError
	BadArgError   = scalar.BadArgError
)

// MatrixBuilder accumulates per-element stamps into a dense row-major MNA
// matrix of size (nodes+sources)^2, prior to factorization.
type MatrixBuilder[S scalar.Numeric] struct {
	nodes   int
	sources int
	stride  int
	a       []S
}

// NewMatrixBuilder allocates a zeroed builder for the given number of nodes
// and voltage-source rows.
func NewMatrixBuilder[S scalar.Numeric](nodes, sources int) (*MatrixBuilder[S], error) {
	stride := nodes + sources
	size := stride * stride
	if stride < 0 || (stride != 0 && size/stride != stride) || size > math.MaxInt32 {
		return nil, ErrOverflow
	}
	return &MatrixBuilder[S]{
		nodes:   nodes,
		sources: sources,
		stride:  stride,
		a:       make([]S, size),
	}, nil
}

// Nodes returns the number of node unknowns the builder was sized for.
func (b *MatrixBuilder[S]) Nodes() int { return b.nodes }

// Sources returns the number of voltage-source row unknowns.
func (b *MatrixBuilder[S]) Sources() int { return b.sources }

// Size returns nodes+sources, the order of the square matrix.
func (b *MatrixBuilder[S]) Size() int { return b.stride }

// Matrix returns a copy of the current dense row-major matrix, of length
// Size()*Size().
func (b *MatrixBuilder[S]) Matrix() []S {
	out := make([]S, len(b.a))
	copy(out, b.a)
	return out
}

func (b *MatrixBuilder[S]) at(i, j int) *S {
	return &b.a[i*b.stride+j]
}

// AddConductance stamps a resistor of conductance c between node a and
// optional node b (nil means ground). Both diagonal entries accumulate +c;
// if both endpoints are real nodes the off-diagonals accumulate -c.
func (mb *MatrixBuilder[S]) AddConductance(a int, b *int, c S) {
	*mb.at(a, a) += c
	if b != nil {
		n := *b
		*mb.at(n, n) += c
		*mb.at(n, a) -= c
		*mb.at(a, n) -= c
	}
}

// AddVSCon writes the +1/-1 symmetric stamp for voltage-source row s
// (absolute row index nodes+s) against optional pos/neg node indices. This
// overwrites whatever was previously stored at these positions; callers must
// not call it twice for the same source without an intervening RemoveVSCon.
func (mb *MatrixBuilder[S]) AddVSCon(s int, pos, neg *int) {
	row := mb.nodes + s
	if pos != nil {
		p := *pos
		*mb.at(row, p) = 1
		*mb.at(p, row) = 1
	}
	if neg != nil {
		n := *neg
		*mb.at(row, n) = -1
		*mb.at(n, row) = -1
	}
}

// RemoveVSCon zeroes the stamp AddVSCon wrote for source s at pos/neg.
func (mb *MatrixBuilder[S]) RemoveVSCon(s int, pos, neg *int) {
	row := mb.nodes + s
	if pos != nil {
		p := *pos
		*mb.at(row, p) = 0
		*mb.at(p, row) = 0
	}
	if neg != nil {
		n := *neg
		*mb.at(row, n) = 0
		*mb.at(n, row) = 0
	}
}

// Clone returns an independent copy of the builder, used by Circuit.Update
// to factor a snapshot while keeping the unfactored accumulator around for
// further stamping.
func (mb *MatrixBuilder[S]) Clone() *MatrixBuilder[S] {
	out := &MatrixBuilder[S]{
		nodes:   mb.nodes,
		sources: mb.sources,
		stride:  mb.stride,
		a:       make([]S, len(mb.a)),
	}
	copy(out.a, mb.a)
	return out
}

// Build consumes the builder, factoring A in place by LU with partial
// pivoting via the scalar package's precision-specific backend, and returns
// an Evaluator owning the factored matrix plus zeroed right-hand-side and
// solution buffers.
func (mb *MatrixBuilder[S]) Build() (*MatrixEvaluator[S], error) {
	piv, err := scalar.Factor(mb.a, mb.stride)
	if err != nil {
		return nil, err
	}
	return &MatrixEvaluator[S]{
		nodes:   mb.nodes,
		sources: mb.sources,
		stride:  mb.stride,
		a:       mb.a,
		piv:     piv,
		known:   make([]S, mb.stride),
		out:     make([]S, mb.stride),
		dirty:   true,
	}, nil
}
