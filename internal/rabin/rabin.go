// Package rabin implements Rabin's information dispersal algorithm over
// GF(2^8).
//
// Dispersal trades secrecy for space: each of the n shares is roughly 1/k
// the size of the input, and any k of them reconstruct it, but individual
// shares leak their portion of the data. It is the storage-efficiency
// counterpart to Shamir sharing and the transport layer of the Krawczyk
// hybrid scheme, which encrypts first and disperses the ciphertext.
package rabin

import (
	"errors"
	"fmt"

	"github.com/fractis/fractis/internal/gf256"
)

var (
	// ErrInvalidThreshold is returned when k < 1.
	ErrInvalidThreshold = errors.New("threshold k must be at least 1")

	// ErrThresholdExceedsShares is returned when k > n.
	ErrThresholdExceedsShares = errors.New("threshold k cannot exceed total shares n")

	// ErrTooManyShares is returned when n exceeds 255.
	ErrTooManyShares = errors.New("total shares n cannot exceed 255")

	// ErrEmptyData is returned when there is nothing to disperse.
	ErrEmptyData = errors.New("data cannot be empty")

	// ErrInsufficientShares is returned when fewer than k shares are given.
	ErrInsufficientShares = errors.New("insufficient shares")

	// ErrShareLengthMismatch is returned when shares disagree on body or
	// original length.
	ErrShareLengthMismatch = errors.New("shares have conflicting lengths")

	// ErrDuplicateShare is returned when two shares carry the same
	// x-coordinate.
	ErrDuplicateShare = errors.New("duplicate share x-coordinate")

	// ErrInvalidShareIndex is returned when a share carries x = 0.
	ErrInvalidShareIndex = errors.New("share x-coordinate must be non-zero")
)

// Share is one dispersed fragment. Length records the original data size so
// reconstruction can strip chunk padding.
type Share struct {
	// X is the evaluation point, distinct and non-zero across one dispersal.
	X byte

	// Length is the byte length of the original data.
	Length int

	// Body holds ceil(Length/k) evaluations, one per k-byte chunk.
	Body []byte
}

// Dispersal splits data into n fragments of which any k reconstruct it.
type Dispersal struct {
	n int
	k int
}

// New creates a Dispersal producing n fragments with reconstruction
// threshold k.
func New(n, k int) (*Dispersal, error) {
	if k < 1 {
		return nil, ErrInvalidThreshold
	}
	if k > n {
		return nil, ErrThresholdExceedsShares
	}
	if n > gf256.MaxNonzero {
		return nil, ErrTooManyShares
	}
	return &Dispersal{n: n, k: k}, nil
}

// Shares returns the total fragment count n.
func (d *Dispersal) Shares() int { return d.n }

// Threshold returns the reconstruction threshold k.
func (d *Dispersal) Threshold() int { return d.k }

// Share disperses data into n fragments. Each k-byte chunk of the input is
// treated as the coefficients of a degree-(k-1) polynomial, which every
// fragment evaluates at its own point x = 1..n.
func (d *Dispersal) Share(data []byte) ([]Share, error) {
	if len(data) == 0 {
		return nil, ErrEmptyData
	}

	chunks := (len(data) + d.k - 1) / d.k

	shares := make([]Share, d.n)
	for i := range shares {
		x := gf256.Element(i + 1)
		body := make([]byte, chunks)
		for c := 0; c < chunks; c++ {
			chunk := data[c*d.k : min((c+1)*d.k, len(data))]
			// Horner over the chunk, highest coefficient first.
			var acc gf256.Element
			for j := len(chunk) - 1; j >= 0; j-- {
				acc = gf256.Add(gf256.Mul(acc, x), gf256.Element(chunk[j]))
			}
			body[c] = byte(acc)
		}
		shares[i] = Share{X: byte(i + 1), Length: len(data), Body: body}
	}

	return shares, nil
}

// Reconstruct recovers the original data from at least k fragments by
// inverting the Vandermonde matrix of their x-coordinates and applying the
// decoder to each chunk column.
func (d *Dispersal) Reconstruct(shares []Share) ([]byte, error) {
	if len(shares) < d.k {
		return nil, fmt.Errorf("%w: have %d, need %d", ErrInsufficientShares, len(shares), d.k)
	}
	if err := validateShares(shares); err != nil {
		return nil, err
	}

	// Only k fragments are needed; extras are ignored.
	subset := shares[:d.k]

	points := make([]gf256.Element, d.k)
	for i, sh := range subset {
		points[i] = gf256.Element(sh.X)
	}

	decoder, err := invertVandermonde(points)
	if err != nil {
		return nil, err
	}

	length := subset[0].Length
	chunks := len(subset[0].Body)
	data := make([]byte, chunks*d.k)
	for c := 0; c < chunks; c++ {
		for j := 0; j < d.k; j++ {
			var acc gf256.Element
			for m := 0; m < d.k; m++ {
				acc = gf256.Add(acc, gf256.Mul(decoder[j][m], gf256.Element(subset[m].Body[c])))
			}
			data[c*d.k+j] = byte(acc)
		}
	}

	if length > len(data) {
		return nil, ErrShareLengthMismatch
	}
	return data[:length], nil
}

func validateShares(shares []Share) error {
	length := shares[0].Length
	width := len(shares[0].Body)

	var seen [256]bool
	for _, sh := range shares {
		if sh.X == 0 {
			return ErrInvalidShareIndex
		}
		if seen[sh.X] {
			return fmt.Errorf("%w: x=%d", ErrDuplicateShare, sh.X)
		}
		seen[sh.X] = true
		if sh.Length != length || len(sh.Body) != width {
			return ErrShareLengthMismatch
		}
	}
	return nil
}
