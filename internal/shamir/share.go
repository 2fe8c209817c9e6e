package shamir

import "bytes"

// Share is a single fragment of a split secret. X is the non-zero field
// element the per-byte polynomials were evaluated at; Y holds one evaluation
// per secret byte. A share carries no reference to the polynomial that
// produced it or to its sibling shares.
type Share struct {
	// X is the evaluation point, distinct and non-zero across one split.
	X byte

	// Y is the y-sequence, one field element per secret byte position.
	Y []byte
}

// Equal reports whether two shares have identical content.
func (s Share) Equal(other Share) bool {
	return s.X == other.X && bytes.Equal(s.Y, other.Y)
}

// Clone returns a deep copy of the share.
func (s Share) Clone() Share {
	y := make([]byte, len(s.Y))
	copy(y, s.Y)
	return Share{X: s.X, Y: y}
}

// MarshalBinary encodes the share as the x-coordinate followed by the
// y-sequence. The y-sequence length is implicit: total length minus one.
func (s Share) MarshalBinary() ([]byte, error) {
	if s.X == 0 {
		return nil, ErrInvalidShareIndex
	}
	if len(s.Y) == 0 {
		return nil, ErrShareTooShort
	}
	out := make([]byte, 1+len(s.Y))
	out[0] = s.X
	copy(out[1:], s.Y)
	return out, nil
}

// UnmarshalBinary decodes a share produced by MarshalBinary.
func (s *Share) UnmarshalBinary(data []byte) error {
	if len(data) < 2 {
		return ErrShareTooShort
	}
	if data[0] == 0 {
		return ErrInvalidShareIndex
	}
	s.X = data[0]
	s.Y = make([]byte, len(data)-1)
	copy(s.Y, data[1:])
	return nil
}
