// Package gf256 implements arithmetic over the finite field GF(2^8).
//
// The field is constructed over the Rijndael polynomial x^8 + x^4 + x^3 + x + 1
// (0x11b), the same field AES and most secret-sharing implementations use.
// Multiplication and inversion are table lookups; the log/exp tables are built
// once on first use.
package gf256

import (
	"errors"
	"sync"
)

const (
	// primitivePolynomial is x^8 + x^4 + x^3 + x + 1 (0x11b), the Rijndael
	// reduction polynomial. Any irreducible degree-8 polynomial would do; this
	// one is the de facto standard.
	primitivePolynomial = 0x11b

	// Size is the number of elements in the field.
	Size = 256

	// MaxNonzero is the number of distinct non-zero elements, and therefore
	// the maximum number of distinct evaluation points available to a sharer.
	MaxNonzero = Size - 1
)

// ErrDivisionByZero is returned by Inv and Div when the divisor is the zero
// element. Upstream validation (duplicate x-coordinate checks) should make
// this unreachable; seeing it indicates a validation gap in the caller.
var ErrDivisionByZero = errors.New("gf256: division by zero")

// Element is a single field element. It is a distinct type so that field
// values, plain bytes, and integer indices cannot be mixed by accident.
type Element byte

var (
	// expTable holds generator^i for i in [0, 255).
	//nolint:gochecknoglobals // precomputed table
	expTable [Size]Element

	// logTable holds log_generator(x) for non-zero x. logTable[0] is unused.
	//nolint:gochecknoglobals // precomputed table
	logTable [Size]byte

	//nolint:gochecknoglobals // sync.Once guards the one-time table build
	tablesInit sync.Once
)

// initTables builds the exp and log tables using generator g = 3, the
// standard generator for the 0x11b field.
func initTables() {
	tablesInit.Do(func() {
		var x uint16 = 1
		for i := 0; i < Size-1; i++ {
			expTable[i] = Element(x)
			logTable[x] = byte(i)

			// Multiply by 3: x*(x+1) = (x << 1) ^ x, reduced mod 0x11b.
			x = (x << 1) ^ x
			if x >= Size {
				x ^= primitivePolynomial
			}
		}
	})
}

// Add returns a + b. Addition in GF(2^n) is XOR.
func Add(a, b Element) Element {
	return a ^ b
}

// Sub returns a - b. In characteristic 2, subtraction equals addition.
func Sub(a, b Element) Element {
	return a ^ b
}

// Mul returns a * b via the log/exp tables.
func Mul(a, b Element) Element {
	initTables()
	if a == 0 || b == 0 {
		return 0
	}
	logA := int(logTable[a])
	logB := int(logTable[b])
	return expTable[(logA+logB)%(Size-1)]
}

// Exp returns a raised to the n-th power. Exp(a, 0) is 1 for every a,
// including zero, matching the polynomial-evaluation convention x^0 = 1.
func Exp(a Element, n int) Element {
	initTables()
	if n == 0 {
		return 1
	}
	if a == 0 {
		return 0
	}
	logA := int(logTable[a])
	return expTable[(logA*n)%(Size-1)]
}

// Inv returns the multiplicative inverse of a. The zero element has no
// inverse and yields ErrDivisionByZero.
func Inv(a Element) (Element, error) {
	initTables()
	if a == 0 {
		return 0, ErrDivisionByZero
	}
	logA := int(logTable[a])
	return expTable[(Size-1-logA)%(Size-1)], nil
}

// Div returns a / b, or ErrDivisionByZero when b is zero.
func Div(a, b Element) (Element, error) {
	initTables()
	if b == 0 {
		return 0, ErrDivisionByZero
	}
	if a == 0 {
		return 0, nil
	}
	diff := (int(logTable[a]) - int(logTable[b])) % (Size - 1)
	if diff < 0 {
		diff += Size - 1
	}
	return expTable[diff], nil
}
