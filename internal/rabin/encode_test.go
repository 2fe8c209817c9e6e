package rabin

import (
	"bytes"
	"crypto/rand"
	"errors"
	"testing"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	data := []byte("dispersal is about storage, not secrecy")

	d := mustDispersal(t, 5, 3)
	shares, err := d.Share(data)
	if err != nil {
		t.Fatalf("Share failed: %v", err)
	}

	for _, sh := range shares {
		encoded := Encode(sh, 3)

		decoded, k, err := Decode(encoded)
		if err != nil {
			t.Fatalf("Decode(%q) failed: %v", encoded, err)
		}
		if k != 3 {
			t.Errorf("threshold = %d, want 3", k)
		}
		if decoded.X != sh.X || decoded.Length != sh.Length {
			t.Errorf("decoded header (%d, %d), want (%d, %d)", decoded.X, decoded.Length, sh.X, sh.Length)
		}
		if !bytes.Equal(decoded.Body, sh.Body) {
			t.Errorf("decoded body mismatch for x=%d", sh.X)
		}
	}
}

func TestDecodeInvalid(t *testing.T) {
	tests := []struct {
		name    string
		encoded string
		wantErr error
	}{
		{"Empty", "", ErrInvalidShareFormat},
		{"WrongPartCount", "fractis-r1-3-1-aabb", ErrInvalidShareFormat},
		{"WrongPrefix", "other-r1-3-1-10-aabb", ErrUnsupportedVersion},
		{"ShamirVersion", "fractis-v1-3-1-10-aabb", ErrUnsupportedVersion},
		{"ZeroThreshold", "fractis-r1-0-1-10-aabb", ErrInvalidShareFormat},
		{"ZeroIndex", "fractis-r1-3-0-10-aabb", ErrInvalidShareFormat},
		{"IndexTooLarge", "fractis-r1-3-256-10-aabb", ErrInvalidShareFormat},
		{"ZeroLength", "fractis-r1-3-1-0-aabb", ErrInvalidShareFormat},
		{"BadHex", "fractis-r1-3-1-10-zz", ErrInvalidShareFormat},
		{"EmptyBody", "fractis-r1-3-1-10-", ErrInvalidShareFormat},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := Decode(tc.encoded)
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("Decode(%q) error = %v, want %v", tc.encoded, err, tc.wantErr)
			}
		})
	}
}

func TestDecodeAll(t *testing.T) {
	data := make([]byte, 100)
	if _, err := rand.Read(data); err != nil {
		t.Fatalf("rand.Read failed: %v", err)
	}

	d := mustDispersal(t, 5, 3)
	shares, err := d.Share(data)
	if err != nil {
		t.Fatalf("Share failed: %v", err)
	}

	t.Run("ExactThresholdReconstructs", func(t *testing.T) {
		encoded := []string{Encode(shares[4], 3), Encode(shares[1], 3), Encode(shares[2], 3)}

		decoded, k, err := DecodeAll(encoded)
		if err != nil {
			t.Fatalf("DecodeAll failed: %v", err)
		}
		got, err := mustDispersal(t, k, k).Reconstruct(decoded[:k])
		if err != nil {
			t.Fatalf("Reconstruct failed: %v", err)
		}
		if !bytes.Equal(got, data) {
			t.Error("reconstructed data does not match original")
		}
	})

	t.Run("DuplicatesDoNotCount", func(t *testing.T) {
		e := Encode(shares[0], 3)
		_, _, err := DecodeAll([]string{e, e, e})
		if !errors.Is(err, ErrInsufficientShares) {
			t.Errorf("error = %v, want ErrInsufficientShares", err)
		}
	})

	t.Run("Empty", func(t *testing.T) {
		_, _, err := DecodeAll(nil)
		if !errors.Is(err, ErrNoShares) {
			t.Errorf("error = %v, want ErrNoShares", err)
		}
	})

	t.Run("MixedThresholds", func(t *testing.T) {
		_, _, err := DecodeAll([]string{Encode(shares[0], 3), Encode(shares[1], 2)})
		if !errors.Is(err, ErrThresholdMismatch) {
			t.Errorf("error = %v, want ErrThresholdMismatch", err)
		}
	})
}
