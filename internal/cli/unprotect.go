package cli

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fractis/fractis/internal/crypto"
	"github.com/fractis/fractis/internal/fileutil"
	ferrors "github.com/fractis/fractis/pkg/errors"
)

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level flag variables
var (
	unprotectInput  string
	unprotectOutput string
)

// unprotectCmd decrypts a passphrase-protected file.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var unprotectCmd = &cobra.Command{
	Use:   "unprotect",
	Short: "Decrypt a passphrase-protected file",
	Long: `Decrypt a file that was encrypted with 'fractis protect'.

The passphrase is prompted for and never echoed. A wrong passphrase
fails cleanly without writing anything.

Examples:
  fractis unprotect --in share-1.fract.age
  fractis unprotect --in share-1.fract.age --out share-1.fract`,
	RunE: runUnprotect,
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for command registration
func init() {
	rootCmd.AddCommand(unprotectCmd)

	unprotectCmd.Flags().StringVar(&unprotectInput, "in", "", "file to decrypt (required)")
	unprotectCmd.Flags().StringVar(&unprotectOutput, "out", "", "decrypted output file (default: <in> without .age)")
	_ = unprotectCmd.MarkFlagRequired("in")
}

func runUnprotect(cmd *cobra.Command, _ []string) error {
	ciphertext, err := os.ReadFile(unprotectInput) //nolint:gosec // Path is user-supplied by design
	if err != nil {
		return ferrors.WithDetails(
			ferrors.ErrNotFound,
			map[string]string{"path": unprotectInput},
		)
	}

	passphrase, err := promptPasswordFn("Passphrase: ")
	if err != nil {
		return err
	}
	defer crypto.ZeroBytes(passphrase)

	plaintext, err := crypto.Unprotect(ciphertext, string(passphrase))
	if err != nil {
		return ferrors.WithSuggestion(
			ferrors.ErrUnprotectFailed,
			"check the passphrase and that the file was produced by 'fractis protect'",
		)
	}
	defer crypto.ZeroBytes(plaintext)

	outPath := unprotectOutput
	if outPath == "" {
		outPath = strings.TrimSuffix(unprotectInput, ".age")
		if outPath == unprotectInput {
			outPath = unprotectInput + ".out"
		}
	}

	if err := fileutil.WriteAtomic(outPath, plaintext, 0o600); err != nil {
		return ferrors.Wrap(err, "writing decrypted file")
	}

	logger.Debug("unprotect: %s -> %s", unprotectInput, outPath)

	w := cmd.OutOrStdout()
	out(w, "Decrypted %s to %s\n", unprotectInput, outPath)

	return nil
}
