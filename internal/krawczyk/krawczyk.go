// Package krawczyk implements Krawczyk's computational secret sharing.
//
// The hybrid scheme gets Shamir's access structure at Rabin's storage cost:
// the payload is encrypted with a one-time ChaCha20 key, the short key
// material is Shamir-shared (information-theoretically secure), and the
// ciphertext is Rabin-dispersed (space-efficient). Each share carries its
// slice of both. Security is computational, resting on the cipher rather
// than on the field.
package krawczyk

import (
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/chacha20"

	"github.com/fractis/fractis/internal/crypto"
	"github.com/fractis/fractis/internal/rabin"
	"github.com/fractis/fractis/internal/shamir"
)

// KeyMaterialSize is the byte length of the Shamir-shared key material:
// a 32-byte ChaCha20 key followed by a 12-byte nonce.
const KeyMaterialSize = chacha20.KeySize + chacha20.NonceSize

var (
	// ErrEmptySecret is returned when there is nothing to share.
	ErrEmptySecret = errors.New("secret cannot be empty")

	// ErrNilRandomSource is returned when no randomness source is supplied.
	ErrNilRandomSource = errors.New("randomness source cannot be nil")

	// ErrInvalidKeyShare is returned when a share's key fragment has the
	// wrong length.
	ErrInvalidKeyShare = errors.New("share key fragment has invalid length")

	// ErrInsufficientShares is returned when fewer than threshold shares are
	// provided.
	ErrInsufficientShares = errors.New("insufficient shares")
)

// Share is one fragment of a Krawczyk-shared secret: the Shamir fragment of
// the key material plus the Rabin fragment of the ciphertext, both at the
// same x-coordinate.
type Share struct {
	// X is the evaluation point shared by both halves.
	X byte

	// Length is the byte length of the original secret.
	Length int

	// Key is the Shamir y-sequence for the 44-byte key material.
	Key []byte

	// Body is the Rabin fragment of the ciphertext.
	Body []byte
}

// Sharer splits secrets under the hybrid scheme with parameters (n, k).
type Sharer struct {
	shamir *shamir.Sharer
	rabin  *rabin.Dispersal
	rand   io.Reader
}

// New creates a Sharer producing n shares with threshold k, drawing key
// material and polynomial coefficients from rand. Parameter validation is
// delegated to the underlying schemes.
func New(n, k int, rand io.Reader) (*Sharer, error) {
	if rand == nil {
		return nil, ErrNilRandomSource
	}

	sh, err := shamir.New(n, k, rand)
	if err != nil {
		return nil, err
	}
	rb, err := rabin.New(n, k)
	if err != nil {
		return nil, err
	}

	return &Sharer{shamir: sh, rabin: rb, rand: rand}, nil
}

// Shares returns the total share count n.
func (s *Sharer) Shares() int { return s.rabin.Shares() }

// Threshold returns the reconstruction threshold k.
func (s *Sharer) Threshold() int { return s.rabin.Threshold() }

// Share encrypts the secret under a fresh one-time key, disperses the
// ciphertext, shares the key material, and zips the two fragment sets.
// The key material is zeroed before returning.
func (s *Sharer) Share(secret []byte) ([]Share, error) {
	if len(secret) == 0 {
		return nil, ErrEmptySecret
	}

	keyMaterial := make([]byte, KeyMaterialSize)
	if _, err := io.ReadFull(s.rand, keyMaterial); err != nil {
		return nil, fmt.Errorf("drawing key material: %w", err)
	}
	defer crypto.ZeroBytes(keyMaterial)

	ciphertext := make([]byte, len(secret))
	if err := applyStream(keyMaterial, secret, ciphertext); err != nil {
		return nil, err
	}

	bodyShares, err := s.rabin.Share(ciphertext)
	if err != nil {
		return nil, fmt.Errorf("dispersing ciphertext: %w", err)
	}

	keyShares, err := s.shamir.Share(keyMaterial)
	if err != nil {
		return nil, fmt.Errorf("sharing key material: %w", err)
	}

	shares := make([]Share, len(bodyShares))
	for i := range bodyShares {
		shares[i] = Share{
			X:      bodyShares[i].X,
			Length: len(secret),
			Key:    keyShares[i].Y,
			Body:   bodyShares[i].Body,
		}
	}

	return shares, nil
}

// Reconstruct splits each share back into its Shamir and Rabin halves,
// recovers the key material and ciphertext, and decrypts. The recovered
// key material is zeroed before returning.
func (s *Sharer) Reconstruct(shares []Share) ([]byte, error) {
	if len(shares) < s.Threshold() {
		return nil, fmt.Errorf("%w: have %d, need %d", ErrInsufficientShares, len(shares), s.Threshold())
	}

	keyShares := make([]shamir.Share, len(shares))
	bodyShares := make([]rabin.Share, len(shares))
	for i, sh := range shares {
		if len(sh.Key) != KeyMaterialSize {
			return nil, fmt.Errorf("%w: x=%d has %d bytes", ErrInvalidKeyShare, sh.X, len(sh.Key))
		}
		keyShares[i] = shamir.Share{X: sh.X, Y: sh.Key}
		bodyShares[i] = rabin.Share{X: sh.X, Length: sh.Length, Body: sh.Body}
	}

	keyMaterial, err := s.shamir.Reconstruct(keyShares)
	if err != nil {
		return nil, fmt.Errorf("recovering key material: %w", err)
	}
	defer crypto.ZeroBytes(keyMaterial)

	ciphertext, err := s.rabin.Reconstruct(bodyShares)
	if err != nil {
		return nil, fmt.Errorf("recovering ciphertext: %w", err)
	}

	secret := make([]byte, len(ciphertext))
	if err := applyStream(keyMaterial, ciphertext, secret); err != nil {
		return nil, err
	}

	return secret, nil
}

// applyStream XORs src into dst under the ChaCha20 keystream derived from
// keyMaterial (key then nonce). Encryption and decryption are the same
// operation.
func applyStream(keyMaterial, src, dst []byte) error {
	cipher, err := chacha20.NewUnauthenticatedCipher(
		keyMaterial[:chacha20.KeySize],
		keyMaterial[chacha20.KeySize:],
	)
	if err != nil {
		return fmt.Errorf("initializing cipher: %w", err)
	}
	cipher.XORKeyStream(dst, src)
	return nil
}
