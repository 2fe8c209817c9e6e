package shamir

import "errors"

var (
	// ErrInvalidThreshold is returned when the threshold k < 1.
	ErrInvalidThreshold = errors.New("threshold k must be at least 1")

	// ErrThresholdExceedsShares is returned when k > n.
	ErrThresholdExceedsShares = errors.New("threshold k cannot exceed total shares n")

	// ErrTooManyShares is returned when n exceeds the number of distinct
	// non-zero evaluation points in GF(2^8).
	ErrTooManyShares = errors.New("total shares n cannot exceed 255")

	// ErrNilRandomSource is returned when no randomness source is supplied.
	ErrNilRandomSource = errors.New("randomness source cannot be nil")

	// ErrEmptySecret is returned when the secret is empty.
	ErrEmptySecret = errors.New("secret cannot be empty")

	// ErrNoShares is returned when no shares are provided.
	ErrNoShares = errors.New("no shares provided")

	// ErrInsufficientShares is returned when fewer shares are provided than
	// the reconstruction requires.
	ErrInsufficientShares = errors.New("insufficient shares")

	// ErrShareLengthMismatch is returned when shares carry y-sequences of
	// differing lengths.
	ErrShareLengthMismatch = errors.New("shares have conflicting lengths")

	// ErrDuplicateShare is returned when two shares carry the same
	// x-coordinate. Interpolating them would divide by zero.
	ErrDuplicateShare = errors.New("duplicate share x-coordinate")

	// ErrInvalidShareIndex is returned when a share carries the x-coordinate
	// zero. A share at x=0 would be the secret itself.
	ErrInvalidShareIndex = errors.New("share x-coordinate must be non-zero")

	// ErrShareTooShort is returned when a binary share encoding is shorter
	// than the minimum of one coordinate byte and one value byte.
	ErrShareTooShort = errors.New("share encoding too short")

	// ErrInvalidShareFormat is returned when a share string is malformed.
	ErrInvalidShareFormat = errors.New("invalid share format")

	// ErrUnsupportedVersion is returned when a share string has an unknown
	// prefix or version.
	ErrUnsupportedVersion = errors.New("unsupported share version")

	// ErrInvalidShareThreshold is returned when a share string carries an
	// unparsable threshold.
	ErrInvalidShareThreshold = errors.New("invalid threshold in share")

	// ErrInvalidShareHex is returned when a share string carries invalid hex.
	ErrInvalidShareHex = errors.New("invalid hex data in share")

	// ErrThresholdMismatch is returned when encoded shares disagree on the
	// threshold they were produced under.
	ErrThresholdMismatch = errors.New("shares have conflicting thresholds")
)
