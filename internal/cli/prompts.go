package cli

import (
	"fmt"
	"os"
	"syscall"

	"golang.org/x/term"

	"github.com/fractis/fractis/internal/crypto"
	ferrors "github.com/fractis/fractis/pkg/errors"
)

// Prompt function variables, swappable in tests.
//
//nolint:gochecknoglobals // Swapped out by test helpers
var (
	promptPasswordFn    = promptPassword
	promptNewPasswordFn = promptNewPassword
	promptSecretFn      = promptSecret
)

// isTerminal reports whether the file is an interactive terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd())) //nolint:gosec // G115: Fd() returns uintptr, safe conversion for term.IsTerminal
}

// promptPassword prompts for a passphrase with hidden input.
// The caller is responsible for zeroing the returned bytes after use.
func promptPassword(prompt string) ([]byte, error) {
	out(os.Stderr, "%s", prompt)

	password, err := term.ReadPassword(syscall.Stdin)
	outln(os.Stderr) // Add newline after hidden input

	if err != nil {
		return nil, fmt.Errorf("reading passphrase: %w", err)
	}

	return password, nil
}

// promptNewPassword prompts for a new passphrase with confirmation.
// The caller is responsible for zeroing the returned bytes after use.
func promptNewPassword() ([]byte, error) {
	password, err := promptPassword("Enter protection passphrase: ")
	if err != nil {
		return nil, err
	}

	if len(password) < 8 {
		crypto.ZeroBytes(password)
		return nil, ferrors.WithSuggestion(
			ferrors.ErrInvalidInput,
			"passphrase must be at least 8 characters",
		)
	}

	confirm, err := promptPassword("Confirm passphrase: ")
	if err != nil {
		crypto.ZeroBytes(password)
		return nil, err
	}
	defer crypto.ZeroBytes(confirm)

	if string(password) != string(confirm) {
		crypto.ZeroBytes(password)
		return nil, ferrors.WithSuggestion(
			ferrors.ErrInvalidInput,
			"passphrases do not match",
		)
	}

	return password, nil
}

// promptSecret prompts for the secret with hidden input.
// The caller is responsible for zeroing the returned bytes after use.
func promptSecret() ([]byte, error) {
	secret, err := promptPassword("Enter secret to split: ")
	if err != nil {
		return nil, err
	}
	if len(secret) == 0 {
		return nil, ferrors.ErrEmptySecret
	}
	return secret, nil
}
