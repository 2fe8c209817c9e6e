package crypto

import (
	"bytes"
	"io"

	"filippo.io/age"
)

// Protect encrypts a share file's contents using age with a passphrase-based
// scrypt recipient. A protected share at rest requires both the passphrase
// and, eventually, threshold-many siblings.
func Protect(plaintext []byte, passphrase string) ([]byte, error) {
	recipient, err := age.NewScryptRecipient(passphrase)
	if err != nil {
		return nil, err
	}

	buf := &bytes.Buffer{}
	w, err := age.Encrypt(buf, recipient)
	if err != nil {
		return nil, err
	}

	if _, err := w.Write(plaintext); err != nil {
		return nil, err
	}

	if err := w.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// Unprotect decrypts an age-protected share file with the passphrase.
func Unprotect(ciphertext []byte, passphrase string) ([]byte, error) {
	identity, err := age.NewScryptIdentity(passphrase)
	if err != nil {
		return nil, err
	}

	r, err := age.Decrypt(bytes.NewReader(ciphertext), identity)
	if err != nil {
		return nil, err
	}

	return io.ReadAll(r)
}

// UnprotectSecure decrypts a protected share directly into SecureBytes,
// zeroing the intermediate plaintext.
func UnprotectSecure(ciphertext []byte, passphrase string) (*SecureBytes, error) {
	plaintext, err := Unprotect(ciphertext, passphrase)
	if err != nil {
		return nil, err
	}

	sb, err := SecureBytesFromSlice(plaintext)
	if err != nil {
		return nil, err
	}

	ZeroBytes(plaintext)
	return sb, nil
}
