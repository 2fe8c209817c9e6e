package krawczyk

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// sharePrefix and shareVersion identify the share-string format:
// fractis-c1-<threshold>-<x>-<secret length>-<hex key fragment>-<hex body>.
// The c marks the computational scheme, keeping the namespace disjoint
// from plain Shamir share strings.
const (
	sharePrefix  = "fractis"
	shareVersion = "c1"
)

var (
	// ErrInvalidShareFormat is returned when a share string does not have
	// the expected shape.
	ErrInvalidShareFormat = errors.New("invalid share format")

	// ErrUnsupportedVersion is returned for an unknown prefix or version.
	ErrUnsupportedVersion = errors.New("unsupported share version")

	// ErrThresholdMismatch is returned when decoded shares embed
	// conflicting thresholds.
	ErrThresholdMismatch = errors.New("shares embed conflicting thresholds")

	// ErrLengthMismatch is returned when decoded shares embed conflicting
	// secret lengths.
	ErrLengthMismatch = errors.New("shares embed conflicting secret lengths")

	// ErrNoShares is returned when an empty share set is decoded.
	ErrNoShares = errors.New("no shares provided")
)

// Encode renders a share as a transportable string, embedding the threshold
// it was produced under.
func Encode(s Share, k int) string {
	return fmt.Sprintf("%s-%s-%d-%d-%d-%x-%x",
		sharePrefix, shareVersion, k, s.X, s.Length, s.Key, s.Body)
}

// Decode parses a share string, returning the share and its embedded
// threshold.
func Decode(encoded string) (Share, int, error) {
	parts := strings.Split(encoded, "-")
	if len(parts) != 7 {
		return Share{}, 0, fmt.Errorf("%w: %s", ErrInvalidShareFormat, encoded)
	}

	if parts[0] != sharePrefix || parts[1] != shareVersion {
		return Share{}, 0, fmt.Errorf("%w: %s", ErrUnsupportedVersion, encoded)
	}

	k, err := strconv.Atoi(parts[2])
	if err != nil || k < 1 {
		return Share{}, 0, fmt.Errorf("%w: bad threshold: %s", ErrInvalidShareFormat, encoded)
	}

	x, err := strconv.Atoi(parts[3])
	if err != nil || x < 1 || x > 255 {
		return Share{}, 0, fmt.Errorf("%w: bad index: %s", ErrInvalidShareFormat, encoded)
	}

	length, err := strconv.Atoi(parts[4])
	if err != nil || length < 1 {
		return Share{}, 0, fmt.Errorf("%w: bad length: %s", ErrInvalidShareFormat, encoded)
	}

	key, err := hex.DecodeString(parts[5])
	if err != nil || len(key) != KeyMaterialSize {
		return Share{}, 0, fmt.Errorf("%w: bad key fragment: %s", ErrInvalidShareFormat, encoded)
	}

	body, err := hex.DecodeString(parts[6])
	if err != nil || len(body) == 0 {
		return Share{}, 0, fmt.Errorf("%w: bad body: %s", ErrInvalidShareFormat, encoded)
	}

	return Share{X: byte(x), Length: length, Key: key, Body: body}, k, nil
}

// DecodeAll parses a set of share strings, requiring consistent embedded
// parameters across the set and at least threshold many unique shares.
// Duplicate x-coordinates are tolerated but do not count twice.
func DecodeAll(encoded []string) ([]Share, int, error) {
	if len(encoded) == 0 {
		return nil, 0, ErrNoShares
	}

	var (
		shares []Share
		k      int
		length int
		seen   [256]bool
	)
	for _, e := range encoded {
		sh, threshold, err := Decode(e)
		if err != nil {
			return nil, 0, err
		}

		if len(shares) == 0 {
			k = threshold
			length = sh.Length
		}
		if threshold != k {
			return nil, 0, ErrThresholdMismatch
		}
		if sh.Length != length {
			return nil, 0, ErrLengthMismatch
		}

		if seen[sh.X] {
			continue
		}
		seen[sh.X] = true
		shares = append(shares, sh)
	}

	if len(shares) < k {
		return nil, 0, fmt.Errorf("%w: have %d unique, need %d", ErrInsufficientShares, len(shares), k)
	}

	return shares, k, nil
}
