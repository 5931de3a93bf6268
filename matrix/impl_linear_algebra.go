package matrix

import (
	"fmt"
	"math"
)

// EigenSym performs Jacobi eigen-decomposition on a symmetric matrix m. It
// returns eigenvalues and eigenvectors Q (columns of Q).
//
// Contract: m non-nil and square; symmetric within tol
// (|m[i,j]-m[j,i]| <= tol).
//
// Determinism: pivot selection scans the upper triangle in fixed i->j order;
// rotations apply in that same order, so repeated calls on the same input
// converge to the same result.
//
// Complexity: Time O(maxIter * n^2), Space O(n^2).
func EigenSym(m Matrix, tol float64, maxIter int) ([]float64, Matrix, error) {
	if err := ValidateSymmetric(m, tol); err != nil {
		return nil, nil, fmt.Errorf("EigenSym: %w", err)
	}

	n := m.Rows()
	a := m.Clone()
	q, err := NewDense(n, n)
	if err != nil {
		return nil, nil, fmt.Errorf("EigenSym: %w", err)
	}
	for i := 0; i < n; i++ {
		_ = q.Set(i, i, 1.0)
	}

	for iter := 0; iter < maxIter; iter++ {
		// Find the off-diagonal pivot (p,q) of largest magnitude.
		var p, r int
		maxOff := 0.0
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				off, _ := a.At(i, j)
				if abs := math.Abs(off); abs > maxOff {
					maxOff, p, r = abs, i, j
				}
			}
		}
		if maxOff < tol {
			break
		}

		app, _ := a.At(p, p)
		arr, _ := a.At(r, r)
		apr, _ := a.At(p, r)

		theta := (arr - app) / (2 * apr)
		t := math.Copysign(1.0/(math.Abs(theta)+math.Sqrt(theta*theta+1)), theta)
		c := 1.0 / math.Sqrt(t*t+1)
		s := t * c

		for i := 0; i < n; i++ {
			if i == p || i == r {
				continue
			}
			aip, _ := a.At(i, p)
			air, _ := a.At(i, r)
			newIP := c*aip - s*air
			newIR := s*aip + c*air
			_ = a.Set(i, p, newIP)
			_ = a.Set(p, i, newIP)
			_ = a.Set(i, r, newIR)
			_ = a.Set(r, i, newIR)
		}
		_ = a.Set(p, p, c*c*app-2*c*s*apr+s*s*arr)
		_ = a.Set(r, r, s*s*app+2*c*s*apr+c*c*arr)
		_ = a.Set(p, r, 0.0)
		_ = a.Set(r, p, 0.0)

		for i := 0; i < n; i++ {
			qip, _ := q.At(i, p)
			qir, _ := q.At(i, r)
			_ = q.Set(i, p, c*qip-s*qir)
			_ = q.Set(i, r, s*qip+c*qir)
		}
	}

	maxOff := 0.0
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			off, _ := a.At(i, j)
			if abs := math.Abs(off); abs > maxOff {
				maxOff = abs
			}
		}
	}
	if maxOff >= tol {
		return nil, nil, fmt.Errorf("EigenSym: %w", ErrMatrixEigenFailed)
	}

	eigs := make([]float64, n)
	for i := 0; i < n; i++ {
		eigs[i], _ = a.At(i, i)
	}
	return eigs, q, nil
}
