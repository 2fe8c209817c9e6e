// Package bundle writes and reads share bundles: a directory holding the
// share files produced by one split together with a manifest describing
// the scheme parameters and a checksum for every share file. The manifest
// is written last, so a directory without one is an interrupted split.
package bundle

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"
)

var (
	// ErrBundleNotFound indicates the bundle directory or manifest was not found.
	ErrBundleNotFound = errors.New("bundle not found")

	// ErrBundleCorrupted indicates a share file failed its checksum.
	ErrBundleCorrupted = errors.New("bundle corrupted - checksum mismatch")

	// ErrShareFileNotFound indicates a share file listed in the manifest is missing.
	ErrShareFileNotFound = errors.New("share file not found")

	// ErrInvalidManifest indicates the manifest format is invalid.
	ErrInvalidManifest = errors.New("invalid bundle manifest")
)

// ManifestVersion is the current manifest format version.
const ManifestVersion = 1

// Scheme names accepted in a manifest.
const (
	SchemeShamir   = "shamir"
	SchemeRabin    = "rabin"
	SchemeKrawczyk = "krawczyk"
)

// Manifest describes the contents of a share bundle.
type Manifest struct {
	// Version is the manifest format version.
	Version int `yaml:"version"`

	// Scheme is the sharing scheme used for the split.
	Scheme string `yaml:"scheme"`

	// Shares is the total number of shares produced.
	Shares int `yaml:"shares"`

	// Threshold is the number of shares required to reconstruct.
	Threshold int `yaml:"threshold"`

	// CreatedAt is when the bundle was written.
	CreatedAt time.Time `yaml:"created_at"`

	// Checksums maps each share filename to the SHA256 hex of its contents.
	Checksums map[string]string `yaml:"checksums"`
}

// NewManifest creates a manifest for a split with the given parameters.
func NewManifest(scheme string, shares, threshold int) *Manifest {
	return &Manifest{
		Version:   ManifestVersion,
		Scheme:    scheme,
		Shares:    shares,
		Threshold: threshold,
		CreatedAt: time.Now().UTC(),
		Checksums: make(map[string]string),
	}
}

// CalculateChecksum computes the SHA256 checksum of data.
func CalculateChecksum(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// VerifyChecksum verifies that data matches the expected checksum.
func VerifyChecksum(data []byte, expected string) error {
	actual := CalculateChecksum(data)
	if actual != expected {
		return fmt.Errorf("%w: expected %s, got %s", ErrBundleCorrupted, expected, actual)
	}
	return nil
}

// Validate checks the manifest for consistency.
func (m *Manifest) Validate() error {
	if m.Version != ManifestVersion {
		return fmt.Errorf("%w: unsupported version %d", ErrInvalidManifest, m.Version)
	}

	if m.Scheme != SchemeShamir && m.Scheme != SchemeRabin && m.Scheme != SchemeKrawczyk {
		return fmt.Errorf("%w: unknown scheme %q", ErrInvalidManifest, m.Scheme)
	}

	if m.Threshold < 1 || m.Threshold > m.Shares {
		return fmt.Errorf("%w: threshold %d of %d shares", ErrInvalidManifest, m.Threshold, m.Shares)
	}

	if len(m.Checksums) == 0 {
		return fmt.Errorf("%w: no share checksums", ErrInvalidManifest)
	}

	return nil
}
