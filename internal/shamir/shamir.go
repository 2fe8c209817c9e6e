// Package shamir implements Shamir's threshold secret sharing over GF(2^8).
//
// A secret is split into n shares such that any k of them reconstruct it
// exactly, while any k-1 or fewer reveal nothing (information-theoretic
// security). One random polynomial of degree k-1 is built per secret byte,
// with the byte as its constant term; shares are evaluations of those
// polynomials at the points x = 1..n.
//
// The quality of the randomness source is the caller's obligation: a
// predictable source voids the security guarantee entirely, and the sharer
// has no way to verify it.
package shamir

import (
	"fmt"
	"io"

	"github.com/fractis/fractis/internal/gf256"
)

// Sharer splits secrets into n shares with reconstruction threshold k.
// The parameters are fixed at construction and reused across Share calls.
// A Sharer is stateless apart from the randomness source advancing on each
// draw; concurrent use is safe if the source's own contract permits it.
type Sharer struct {
	n    int
	k    int
	rand io.Reader
}

// New creates a Sharer producing n shares with threshold k, drawing
// polynomial coefficients from rand. It fails when k < 1, k > n, or n
// exceeds the 255 distinct non-zero evaluation points of GF(2^8).
func New(n, k int, rand io.Reader) (*Sharer, error) {
	if k < 1 {
		return nil, ErrInvalidThreshold
	}
	if k > n {
		return nil, ErrThresholdExceedsShares
	}
	if n > gf256.MaxNonzero {
		return nil, ErrTooManyShares
	}
	if rand == nil {
		return nil, ErrNilRandomSource
	}
	return &Sharer{n: n, k: k, rand: rand}, nil
}

// Shares returns the total share count n.
func (s *Sharer) Shares() int { return s.n }

// Threshold returns the reconstruction threshold k.
func (s *Sharer) Threshold() int { return s.k }

// Share splits the secret into exactly n shares. The secret is read but
// never retained; the random polynomial coefficients are zeroed before
// returning. Consumes len(secret) * (k-1) bytes of entropy.
func (s *Sharer) Share(secret []byte) ([]Share, error) {
	if len(secret) == 0 {
		return nil, ErrEmptySecret
	}

	// One degree-(k-1) polynomial per secret byte. Coefficient 0 is the
	// byte itself; coefficients 1..k-1 are drawn uniformly at random.
	coeffs := make([]byte, len(secret)*(s.k-1))
	if _, err := io.ReadFull(s.rand, coeffs); err != nil {
		return nil, fmt.Errorf("reading random coefficients: %w", err)
	}
	defer zero(coeffs)

	shares := make([]Share, s.n)
	for i := range shares {
		shares[i] = Share{
			X: byte(i + 1),
			Y: make([]byte, len(secret)),
		}
	}

	for i, secretByte := range secret {
		c := coeffs[i*(s.k-1) : (i+1)*(s.k-1)]
		for j := range shares {
			shares[j].Y[i] = byte(evaluate(gf256.Element(secretByte), c, gf256.Element(shares[j].X)))
		}
	}

	return shares, nil
}

// Reconstruct recovers the secret from at least k shares produced by one
// Share call. Fewer than k shares is a hard error: a sub-threshold
// interpolation would yield a deterministic value with no relationship to
// the secret, and silently returning it would be a security footgun.
func (s *Sharer) Reconstruct(shares []Share) ([]byte, error) {
	if len(shares) < s.k {
		return nil, fmt.Errorf("%w: have %d, need %d", ErrInsufficientShares, len(shares), s.k)
	}
	if err := validateShares(shares); err != nil {
		return nil, err
	}
	return interpolate(shares)
}

// Reconstruct recovers a secret from shares when the threshold is not known
// to the caller. At least two shares are required and the usual shape checks
// apply, but the threshold itself cannot be verified: supplying fewer shares
// than the secret was split under yields a value with no correctness or
// secrecy guarantee. Prefer (*Sharer).Reconstruct whenever k is known.
func Reconstruct(shares []Share) ([]byte, error) {
	if len(shares) == 0 {
		return nil, ErrNoShares
	}
	if len(shares) < 2 {
		return nil, fmt.Errorf("%w: have %d, need at least 2", ErrInsufficientShares, len(shares))
	}
	if err := validateShares(shares); err != nil {
		return nil, err
	}
	return interpolate(shares)
}

// ReconstructWithThreshold recovers a secret when the threshold travels with
// the shares, for example embedded in a share encoding. Unlike the two-share
// floor of Reconstruct, a threshold of one recovers from a single share.
func ReconstructWithThreshold(shares []Share, k int) ([]byte, error) {
	if k < 1 {
		return nil, ErrInvalidThreshold
	}
	if len(shares) == 0 {
		return nil, ErrNoShares
	}
	if len(shares) < k {
		return nil, fmt.Errorf("%w: have %d, need %d", ErrInsufficientShares, len(shares), k)
	}
	if err := validateShares(shares); err != nil {
		return nil, err
	}
	return interpolate(shares)
}

// evaluate computes c0 + c1*x + ... + c(k-1)*x^(k-1) by Horner's method,
// entirely within the field.
func evaluate(c0 gf256.Element, rest []byte, x gf256.Element) gf256.Element {
	acc := gf256.Element(0)
	for j := len(rest) - 1; j >= 0; j-- {
		acc = gf256.Add(gf256.Mul(acc, x), gf256.Element(rest[j]))
	}
	return gf256.Add(gf256.Mul(acc, x), c0)
}

// validateShares rejects malformed reconstruction input before any field
// arithmetic runs: zero x-coordinates, duplicate x-coordinates (which would
// make an interpolation denominator zero), and mismatched y-lengths.
func validateShares(shares []Share) error {
	width := len(shares[0].Y)
	if width == 0 {
		return ErrShareTooShort
	}

	var seen [256]bool
	for _, sh := range shares {
		if sh.X == 0 {
			return ErrInvalidShareIndex
		}
		if seen[sh.X] {
			return fmt.Errorf("%w: x=%d", ErrDuplicateShare, sh.X)
		}
		seen[sh.X] = true
		if len(sh.Y) != width {
			return ErrShareLengthMismatch
		}
	}
	return nil
}

// interpolate performs Lagrange interpolation at x=0 for every byte
// position. The weights depend only on the x-coordinates, so they are
// computed once and reused across positions.
func interpolate(shares []Share) ([]byte, error) {
	weights := make([]gf256.Element, len(shares))
	for i, si := range shares {
		weight := gf256.Element(1)
		for j, sj := range shares {
			if i == j {
				continue
			}
			// At x=0 the Lagrange basis term is x_j / (x_j - x_i).
			num := gf256.Element(sj.X)
			den := gf256.Sub(gf256.Element(sj.X), gf256.Element(si.X))
			factor, err := gf256.Div(num, den)
			if err != nil {
				// Unreachable after validateShares; a zero denominator here
				// is a defect, not a runtime condition.
				return nil, fmt.Errorf("interpolation weight for x=%d: %w", si.X, err)
			}
			weight = gf256.Mul(weight, factor)
		}
		weights[i] = weight
	}

	secret := make([]byte, len(shares[0].Y))
	for pos := range secret {
		var acc gf256.Element
		for i, sh := range shares {
			acc = gf256.Add(acc, gf256.Mul(gf256.Element(sh.Y[pos]), weights[i]))
		}
		secret[pos] = byte(acc)
	}
	return secret, nil
}

func zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
