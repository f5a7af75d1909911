// Package asserttol provides small tolerance-based comparison helpers for
// tests, in the spirit of the wider ecosystem's chk.Scalar/chk.Vector
// idiom: report a clear failure message naming both values and the
// tolerance that was exceeded, rather than a bare boolean.
package asserttol

import (
	"math"
	"testing"
)

// Float fails the test unless |got-want| <= tol.
func Float(t *testing.T, label string, got, want, tol float64) {
	t.Helper()
	if math.Abs(got-want) > tol {
		t.Errorf("%s: got %v, want %v (tol %v)", label, got, want, tol)
	}
}

// Float32 fails the test unless |got-want| <= tol, for float32 values.
func Float32(t *testing.T, label string, got, want, tol float32) {
	t.Helper()
	if math.Abs(float64(got-want)) > float64(tol) {
		t.Errorf("%s: got %v, want %v (tol %v)", label, got, want, tol)
	}
}

// Slice fails the test unless every element of got is within tol of the
// corresponding element of want.
func Slice(t *testing.T, label string, got, want []float64, tol float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Errorf("%s: length mismatch: got %d, want %d", label, len(got), len(want))
		return
	}
	for i := range got {
		if math.Abs(got[i]-want[i]) > tol {
			t.Errorf("%s[%d]: got %v, want %v (tol %v)", label, i, got[i], want[i], tol)
		}
	}
}
