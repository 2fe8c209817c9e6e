package rabin

import (
	"errors"
	"fmt"

	"github.com/fractis/fractis/internal/gf256"
)

// ErrSingularMatrix is returned when the decoder matrix cannot be inverted.
// With pairwise-distinct non-zero points the Vandermonde matrix is always
// nonsingular, so this surfacing indicates corrupt share coordinates.
var ErrSingularMatrix = errors.New("decoder matrix is singular")

// invertVandermonde builds the k x k Vandermonde matrix V[i][j] = x_i^j for
// the given points and returns its inverse, computed by Gauss-Jordan
// elimination in GF(2^8).
func invertVandermonde(points []gf256.Element) ([][]gf256.Element, error) {
	size := len(points)

	m := make([][]gf256.Element, size)
	inv := make([][]gf256.Element, size)
	for i := range m {
		m[i] = make([]gf256.Element, size)
		inv[i] = make([]gf256.Element, size)
		for j := range m[i] {
			m[i][j] = gf256.Exp(points[i], j)
		}
		inv[i][i] = 1
	}

	for col := 0; col < size; col++ {
		// Zero pivots cannot occur for distinct non-zero points, but a swap
		// keeps the elimination total rather than trusting that invariant.
		if m[col][col] == 0 {
			swapped := false
			for row := col + 1; row < size; row++ {
				if m[row][col] != 0 {
					m[col], m[row] = m[row], m[col]
					inv[col], inv[row] = inv[row], inv[col]
					swapped = true
					break
				}
			}
			if !swapped {
				return nil, ErrSingularMatrix
			}
		}

		pivotInv, err := gf256.Inv(m[col][col])
		if err != nil {
			return nil, fmt.Errorf("normalizing pivot row %d: %w", col, err)
		}
		scaleRow(m[col], pivotInv)
		scaleRow(inv[col], pivotInv)

		for row := 0; row < size; row++ {
			if row == col {
				continue
			}
			coeff := m[row][col]
			if coeff == 0 {
				continue
			}
			subtractScaled(m[row], m[col], coeff)
			subtractScaled(inv[row], inv[col], coeff)
		}
	}

	return inv, nil
}

// scaleRow multiplies every element of the row by factor.
func scaleRow(row []gf256.Element, factor gf256.Element) {
	for i := range row {
		row[i] = gf256.Mul(row[i], factor)
	}
}

// subtractScaled subtracts coeff times the pivot row from row.
func subtractScaled(row, pivot []gf256.Element, coeff gf256.Element) {
	for i := range row {
		row[i] = gf256.Sub(row[i], gf256.Mul(pivot[i], coeff))
	}
}
