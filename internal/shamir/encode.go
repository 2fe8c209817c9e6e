package shamir

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
)

// sharePrefix and shareVersion identify the share-string format:
// fractis-v1-<threshold>-<x>-<hex y-sequence>.
const (
	sharePrefix  = "fractis"
	shareVersion = "v1"
)

// Encode renders a share as a transportable string, embedding the threshold
// it was produced under so that Decode-side callers can enforce it.
func Encode(s Share, k int) string {
	return fmt.Sprintf("%s-%s-%d-%d-%x", sharePrefix, shareVersion, k, s.X, s.Y)
}

// Decode parses a share string, returning the share and its embedded
// threshold.
func Decode(encoded string) (Share, int, error) {
	parts := strings.Split(encoded, "-")
	if len(parts) != 5 {
		return Share{}, 0, fmt.Errorf("%w: %s", ErrInvalidShareFormat, encoded)
	}

	if parts[0] != sharePrefix || parts[1] != shareVersion {
		return Share{}, 0, fmt.Errorf("%w: %s", ErrUnsupportedVersion, encoded)
	}

	k, err := strconv.Atoi(parts[2])
	if err != nil || k < 1 {
		return Share{}, 0, fmt.Errorf("%w: %s", ErrInvalidShareThreshold, encoded)
	}

	x, err := strconv.Atoi(parts[3])
	if err != nil || x < 1 || x > 255 {
		return Share{}, 0, fmt.Errorf("%w: %s", ErrInvalidShareIndex, encoded)
	}

	y, err := hex.DecodeString(parts[4])
	if err != nil {
		return Share{}, 0, fmt.Errorf("%w: %s", ErrInvalidShareHex, encoded)
	}
	if len(y) == 0 {
		return Share{}, 0, fmt.Errorf("%w: %s", ErrShareTooShort, encoded)
	}

	return Share{X: byte(x), Y: y}, k, nil
}

// DecodeAll parses a set of share strings, requiring a consistent embedded
// threshold across the set, and verifying it is met before returning. The
// set is deduplicated by x-coordinate: passing the same share twice is not
// an error, it simply does not count twice.
func DecodeAll(encoded []string) ([]Share, int, error) {
	if len(encoded) == 0 {
		return nil, 0, ErrNoShares
	}

	var (
		shares []Share
		k      int
		width  int
		seen   [256]bool
	)
	for _, e := range encoded {
		sh, threshold, err := Decode(e)
		if err != nil {
			return nil, 0, err
		}

		if len(shares) == 0 {
			k = threshold
			width = len(sh.Y)
		}
		if threshold != k {
			return nil, 0, ErrThresholdMismatch
		}
		if len(sh.Y) != width {
			return nil, 0, ErrShareLengthMismatch
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
