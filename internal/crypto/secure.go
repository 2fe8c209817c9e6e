// Package crypto provides cryptographic support for fractis: the entropy
// source handed to sharers, secure memory for reconstructed secrets, and
// passphrase protection of share files.
//
//nolint:revive // Internal package name intentionally shadows stdlib
package crypto

import (
	"runtime"
	"sync"
)

// SecureBytes wraps a sensitive byte slice with best-effort memory locking
// and explicit zeroing. Reconstructed secrets and Krawczyk key material live
// in one of these until the caller is done with them.
type SecureBytes struct {
	data   []byte
	locked bool
	mu     sync.Mutex
}

// NewSecureBytes allocates a SecureBytes of the given size. The memory is
// locked if the platform supports it; failure to lock is not an error.
func NewSecureBytes(size int) (*SecureBytes, error) {
	data := make([]byte, size)

	sb := &SecureBytes{
		data:   data,
		locked: mlock(data),
	}

	// Fallback cleanup if the caller never reaches Destroy.
	runtime.SetFinalizer(sb, func(s *SecureBytes) {
		s.Destroy()
	})

	return sb, nil
}

// SecureBytesFromSlice copies data into a fresh SecureBytes. The caller
// remains responsible for zeroing the source slice.
func SecureBytesFromSlice(data []byte) (*SecureBytes, error) {
	sb, err := NewSecureBytes(len(data))
	if err != nil {
		return nil, err
	}
	copy(sb.data, data)
	return sb, nil
}

// Bytes returns the underlying slice, or nil after Destroy.
func (s *SecureBytes) Bytes() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data
}

// IsLocked reports whether the memory is mlocked.
func (s *SecureBytes) IsLocked() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.locked
}

// Len returns the data length, or 0 after Destroy.
func (s *SecureBytes) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.data)
}

// Destroy zeros the memory, unlocks it, and drops the reference.
// Safe to call multiple times.
func (s *SecureBytes) Destroy() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.data == nil {
		return
	}

	for i := range s.data {
		s.data[i] = 0
	}

	if s.locked {
		munlock(s.data)
		s.locked = false
	}

	s.data = nil
	runtime.SetFinalizer(s, nil)
}

// ZeroBytes overwrites a byte slice in place. It is the companion for
// sensitive data that never made it into a SecureBytes.
func ZeroBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
