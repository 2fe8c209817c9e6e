package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/fractis/fractis/internal/crypto"
	"github.com/fractis/fractis/internal/fileutil"
	ferrors "github.com/fractis/fractis/pkg/errors"
)

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level flag variables
var (
	protectInput  string
	protectOutput string
)

// protectCmd encrypts a file under a passphrase.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var protectCmd = &cobra.Command{
	Use:   "protect",
	Short: "Encrypt a file under a passphrase",
	Long: `Encrypt a file with age passphrase encryption (scrypt + ChaCha20-Poly1305).

A share at rest gains a second factor this way: reconstructing the
secret then needs both threshold shares and the passphrase. The
passphrase is prompted for with confirmation and never echoed.

Examples:
  fractis protect --in share-1.fract --out share-1.fract.age
  fractis protect --in secret.key`,
	RunE: runProtect,
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for command registration
func init() {
	rootCmd.AddCommand(protectCmd)

	protectCmd.Flags().StringVar(&protectInput, "in", "", "file to encrypt (required)")
	protectCmd.Flags().StringVar(&protectOutput, "out", "", "encrypted output file (default: <in>.age)")
	_ = protectCmd.MarkFlagRequired("in")
}

func runProtect(cmd *cobra.Command, _ []string) error {
	plaintext, err := os.ReadFile(protectInput) //nolint:gosec // Path is user-supplied by design
	if err != nil {
		return ferrors.WithDetails(
			ferrors.ErrNotFound,
			map[string]string{"path": protectInput},
		)
	}
	defer crypto.ZeroBytes(plaintext)

	passphrase, err := promptNewPasswordFn()
	if err != nil {
		return err
	}
	defer crypto.ZeroBytes(passphrase)

	ciphertext, err := crypto.Protect(plaintext, string(passphrase))
	if err != nil {
		return ferrors.Wrap(err, "encrypting file")
	}

	outPath := protectOutput
	if outPath == "" {
		outPath = protectInput + ".age"
	}

	if err := fileutil.WriteAtomic(outPath, ciphertext, 0o600); err != nil {
		return ferrors.Wrap(err, "writing encrypted file")
	}

	logger.Debug("protect: %s -> %s (%d bytes)", protectInput, outPath, len(ciphertext))

	w := cmd.OutOrStdout()
	out(w, "Encrypted %s to %s\n", protectInput, outPath)

	return nil
}
