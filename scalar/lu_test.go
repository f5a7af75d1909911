package scalar

import (
	"errors"
	"math"
	"testing"
)

func TestFactorSolveIdentity(t *testing.T) {
	a := []float64{1, 0, 0, 1}
	piv, err := Factor(a, 2)
	if err != nil {
		t.Fatalf("Factor: %v", err)
	}
	b := []float64{3, 4}
	if err := Solve(a, 2, piv, b); err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if b[0] != 3 || b[1] != 4 {
		t.Fatalf("got %v, want [3 4]", b)
	}
}

func TestFactorSolveSystem(t *testing.T) {
	// 2x + y = 5, x + 3y = 10 -> x=1, y=3
	a := []float64{2, 1, 1, 3}
	piv, err := Factor(a, 2)
	if err != nil {
		t.Fatalf("Factor: %v", err)
	}
	b := []float64{5, 10}
	if err := Solve(a, 2, piv, b); err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if math.Abs(b[0]-1) > 1e-9 || math.Abs(b[1]-3) > 1e-9 {
		t.Fatalf("got %v, want [1 3]", b)
	}
}

func TestFactorSolveFloat32(t *testing.T) {
	a := []float32{2, 1, 1, 3}
	piv, err := Factor(a, 2)
	if err != nil {
		t.Fatalf("Factor: %v", err)
	}
	b := []float32{5, 10}
	if err := Solve(a, 2, piv, b); err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if math.Abs(float64(b[0])-1) > 1e-4 || math.Abs(float64(b[1])-3) > 1e-4 {
		t.Fatalf("got %v, want [1 3]", b)
	}
}

func TestFactorSingular(t *testing.T) {
	a := []float64{0, 0, 0, 0}
	_, err := Factor(a, 2)
	if err == nil {
		t.Fatal("expected SingularError, got nil")
	}
	var se SingularError
	if !errors.As(err, &se) {
		t.Fatalf("expected SingularError, got %T: %v", err, err)
	}
}

func TestPrecisionOf(t *testing.T) {
	if PrecisionOf[float64]() != Double {
		t.Errorf("PrecisionOf[float64]() = %v, want Double", PrecisionOf[float64]())
	}
	if PrecisionOf[float32]() != Single {
		t.Errorf("PrecisionOf[float32]() = %v, want Single", PrecisionOf[float32]())
	}
}

func TestRecip(t *testing.T) {
	if got := Recip(2.0); got != 0.5 {
		t.Errorf("Recip(2.0) = %v, want 0.5", got)
	}
}
