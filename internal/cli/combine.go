package cli

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fractis/fractis/internal/crypto"
	"github.com/fractis/fractis/internal/krawczyk"
	"github.com/fractis/fractis/internal/mnemonic"
	"github.com/fractis/fractis/internal/rabin"
	"github.com/fractis/fractis/internal/shamir"
	ferrors "github.com/fractis/fractis/pkg/errors"
)

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level flag variables
var (
	combineDir    string
	combineOutput string
)

// combineCmd reconstructs a secret from threshold shares.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var combineCmd = &cobra.Command{
	Use:   "combine [shares or share files...]",
	Short: "Reconstruct a secret from threshold shares",
	Long: `Reconstruct a secret from at least threshold shares.

Shares can be passed as literal strings, as files holding one share per
line, or as a bundle directory via --dir. The scheme is inferred from
the share encoding, so shamir, rabin, krawczyk, and word-phrase shares
all combine with the same command. A bundle needs only threshold files
present; missing shares are skipped.

Examples:
  fractis combine --dir ./shares
  fractis combine share-1.fract share-3.fract share-5.fract
  fractis combine "fractis-v1-2-1-a3f1" "fractis-v1-2-4-09cc" --out secret.key`,
	RunE: runCombine,
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for command registration
func init() {
	rootCmd.AddCommand(combineCmd)

	combineCmd.Flags().StringVar(&combineDir, "dir", "", "bundle directory holding share files")
	combineCmd.Flags().StringVar(&combineOutput, "out", "", "file to write the secret into (default: stdout)")
}

func runCombine(cmd *cobra.Command, args []string) error {
	encoded, err := collectShareStrings(args, combineDir)
	if err != nil {
		return err
	}

	logger.Debug("combine: collected %d share strings", len(encoded))

	secret, err := reconstructSecret(encoded)
	if err != nil {
		return err
	}
	defer crypto.ZeroBytes(secret)

	return writeSecretOutput(cmd.OutOrStdout(), combineOutput, secret)
}

// reconstructSecret infers the scheme from the share encoding and runs the
// matching reconstruction. All shares in one invocation must share a scheme.
func reconstructSecret(encoded []string) ([]byte, error) {
	switch {
	case strings.HasPrefix(encoded[0], "fractis-v1-"):
		return reconstructShamir(encoded)
	case strings.HasPrefix(encoded[0], "fractis-r1-"):
		return reconstructRabin(encoded)
	case strings.HasPrefix(encoded[0], "fractis-c1-"):
		return reconstructKrawczyk(encoded)
	default:
		return reconstructPhrases(encoded)
	}
}

func reconstructShamir(encoded []string) ([]byte, error) {
	shares, k, err := shamir.DecodeAll(encoded)
	if err != nil {
		return nil, ferrors.Wrap(err, "decoding shares")
	}

	secret, err := shamir.ReconstructWithThreshold(shares, k)
	if err != nil {
		return nil, ferrors.Wrap(err, "reconstructing secret")
	}
	return secret, nil
}

func reconstructRabin(encoded []string) ([]byte, error) {
	shares, k, err := rabin.DecodeAll(encoded)
	if err != nil {
		return nil, ferrors.Wrap(err, "decoding shares")
	}

	// Reconstruction only needs the threshold, so n is set to k.
	dispersal, err := rabin.New(k, k)
	if err != nil {
		return nil, ferrors.Wrap(err, "creating dispersal")
	}

	secret, err := dispersal.Reconstruct(shares[:k])
	if err != nil {
		return nil, ferrors.Wrap(err, "reconstructing data")
	}
	return secret, nil
}

func reconstructKrawczyk(encoded []string) ([]byte, error) {
	shares, k, err := krawczyk.DecodeAll(encoded)
	if err != nil {
		return nil, ferrors.Wrap(err, "decoding shares")
	}

	// Reconstruction only needs the threshold, so n is set to k.
	sharer, err := krawczyk.New(k, k, crypto.Reader)
	if err != nil {
		return nil, ferrors.Wrap(err, "creating sharer")
	}

	secret, err := sharer.Reconstruct(shares[:k])
	if err != nil {
		return nil, ferrors.Wrap(err, "reconstructing secret")
	}
	return secret, nil
}

func reconstructPhrases(encoded []string) ([]byte, error) {
	shares := make([]shamir.Share, 0, len(encoded))
	threshold := 0
	seen := [256]bool{}

	for _, phrase := range encoded {
		sh, k, err := mnemonic.DecodeShare(phrase)
		if err != nil {
			return nil, ferrors.WithSuggestion(
				ferrors.Wrap(err, "decoding share phrase"),
				"shares must all be fractis share strings or all word phrases",
			)
		}
		if threshold == 0 {
			threshold = k
		} else if k != threshold {
			return nil, ferrors.WithDetails(
				ferrors.ErrInvalidShare,
				map[string]string{"reason": "share phrases carry different thresholds"},
			)
		}
		if seen[sh.X] {
			continue
		}
		seen[sh.X] = true
		shares = append(shares, sh)
	}

	if len(shares) < threshold {
		return nil, ferrors.WithDetails(
			ferrors.ErrInsufficientShares,
			map[string]string{
				"have": strconv.Itoa(len(shares)),
				"need": strconv.Itoa(threshold),
			},
		)
	}

	secret, err := shamir.ReconstructWithThreshold(shares, threshold)
	if err != nil {
		return nil, ferrors.Wrap(err, "reconstructing secret")
	}
	return secret, nil
}
