package mna

import (
	"errors"
	"testing"

	"github.com/circuitkit/mna/scalar"
)

func TestNewMatrixBuilderOverflow(t *testing.T) {
	_, err := NewMatrixBuilder[float64](1<<30, 1<<30)
	if err != ErrOverflow {
		t.Fatalf("got %v, want ErrOverflow", err)
	}
}

func TestAddConductanceGroundedPin(t *testing.T) {
	b, err := NewMatrixBuilder[float64](1, 0)
	if err != nil {
		t.Fatalf("NewMatrixBuilder: %v", err)
	}
	b.AddConductance(0, nil, 2.0)
	m := b.Matrix()
	if m[0] != 2.0 {
		t.Fatalf("m[0,0] = %v, want 2.0", m[0])
	}
}

func TestAddConductanceBetweenTwoNodes(t *testing.T) {
	b, err := NewMatrixBuilder[float64](2, 0)
	if err != nil {
		t.Fatalf("NewMatrixBuilder: %v", err)
	}
	n := 1
	b.AddConductance(0, &n, 2.0)
	m := b.Matrix()
	want := []float64{2, -2, -2, 2}
	for i := range want {
		if m[i] != want[i] {
			t.Fatalf("m = %v, want %v", m, want)
		}
	}
}

func TestCloneIsIndependent(t *testing.T) {
	b, _ := NewMatrixBuilder[float64](1, 0)
	b.AddConductance(0, nil, 1.0)
	clone := b.Clone()
	b.AddConductance(0, nil, 1.0)
	if clone.Matrix()[0] != 1.0 {
		t.Fatalf("clone was mutated: got %v, want 1.0", clone.Matrix()[0])
	}
	if b.Matrix()[0] != 2.0 {
		t.Fatalf("original not mutated as expected: got %v", b.Matrix()[0])
	}
}

func TestBuildSingularMatrixError(t *testing.T) {
	b, _ := NewMatrixBuilder[float64](2, 0)
	_, err := b.Build()
	if err == nil {
		t.Fatal("expected singular error building a zero matrix")
	}
	var se scalar.SingularError
	if !errors.As(err, &se) {
		t.Fatalf("got %T: %v, want SingularError", err, err)
	}
}
