package scalar

import (
	"fmt"

	"gonum.org/v1/gonum/blas"
	lapackgonum "gonum.org/v1/gonum/lapack/gonum"
)

// BadArgError reports that the LAPACK-equivalent backend rejected an
// argument, mirroring an `info < 0` return from a classical getrf/getrs call.
// Idx is always 0: gonum's pure-Go backend panics on invalid arguments rather
// than returning the 1-based argument position LAPACK would, and this package
// recovers that panic without identifying which argument was bad.
type BadArgError struct {
	Idx int
}

func (e BadArgError) Error() string {
	return fmt.Sprintf("scalar: bad argument at position %d", e.Idx)
}

// SingularError reports a zero pivot encountered during factorization, at the
// given 0-based row/column of U.
type SingularError struct {
	Idx int
}

func (e SingularError) Error() string {
	return fmt.Sprintf("scalar: singular matrix, zero pivot at %d", e.Idx)
}

var impl = lapackgonum.Implementation{}

// Factor performs an in-place LU factorization with partial pivoting of the
// n-by-n row-major matrix a, dispatching to the precision-specific backend
// routine for S. It returns the pivot indices gonum's Dgetrf/Sgetrs pair
// expects at Solve time.
func Factor[S Numeric](a []S, n int) (piv []int, err error) {
	switch PrecisionOf[S]() {
	case Double:
		return factor(impl.Dgetrf, any(a).([]float64), n)
	case Single:
		return factor(impl.Sgetrf, any(a).([]float32), n)
	default:
		panic("scalar: unsupported precision")
	}
}

// Solve solves A*x = b in place (b is overwritten with x) against a matrix
// already factored by Factor, using the "no transpose" option and a single
// right-hand side column, matching the getrs(N, nrhs=1) contract.
func Solve[S Numeric](a []S, n int, piv []int, b []S) (err error) {
	switch PrecisionOf[S]() {
	case Double:
		return solve(impl.Dgetrs, any(a).([]float64), n, piv, any(b).([]float64))
	case Single:
		return solve(impl.Sgetrs, any(a).([]float32), n, piv, any(b).([]float32))
	default:
		panic("scalar: unsupported precision")
	}
}

func factor[T float32 | float64](dgetrf func(m, n int, a []T, lda int, ipiv []int) bool, a []T, n int) (piv []int, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = BadArgError{Idx: 0}
		}
	}()
	piv = make([]int, n)
	ok := dgetrf(n, n, a, n, piv)
	if !ok {
		return piv, SingularError{Idx: firstZeroPivot(a, n)}
	}
	return piv, nil
}

func solve[T float32 | float64](dgetrs func(trans blas.Transpose, n, nrhs int, a []T, lda int, ipiv []int, b []T, ldb int), a []T, n int, piv []int, b []T) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = BadArgError{Idx: 0}
		}
	}()
	dgetrs(blas.NoTrans, n, 1, a, n, piv, b, 1)
	return nil
}

// firstZeroPivot scans the factored (row-major, stride n) matrix for the
// first exact-zero diagonal entry of U, recovering the pivot index a bare
// `ok == false` from Dgetrf/Sgetrf does not carry.
func firstZeroPivot[T float32 | float64](a []T, n int) int {
	for i := 0; i < n; i++ {
		if a[i*n+i] == 0 {
			return i
		}
	}
	return n - 1
}
