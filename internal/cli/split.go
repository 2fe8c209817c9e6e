package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fractis/fractis/internal/bundle"
	"github.com/fractis/fractis/internal/crypto"
	"github.com/fractis/fractis/internal/krawczyk"
	"github.com/fractis/fractis/internal/mnemonic"
	"github.com/fractis/fractis/internal/output"
	"github.com/fractis/fractis/internal/rabin"
	"github.com/fractis/fractis/internal/shamir"
	ferrors "github.com/fractis/fractis/pkg/errors"
)

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level flag variables
var (
	splitShares    int
	splitThreshold int
	splitScheme    string
	splitInput     string
	splitOutDir    string
	splitWords     bool
	splitQR        bool
)

// splitCmd splits a secret into threshold shares.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var splitCmd = &cobra.Command{
	Use:   "split",
	Short: "Split a secret into threshold shares",
	Long: `Split a secret into n shares such that any k of them reconstruct it
and any fewer reveal nothing about it.

The shamir scheme gives information-theoretic secrecy; each share is as
long as the secret. The krawczyk scheme encrypts the payload first so
each share carries only a 1/k fraction of it, at the cost of resting on
the cipher. The rabin scheme is bare dispersal: same space savings, no
secrecy at all, for redundancy rather than confidentiality.

The secret is read from --in, from stdin, or from a hidden prompt when
stdin is a terminal. With --out the shares are written into a bundle
directory with a checksummed manifest; otherwise they print to stdout.

Examples:
  fractis split --in secret.key --out ./shares
  fractis split --shares 7 --threshold 4 --scheme krawczyk --in disk.img --out ./shares
  echo -n "hunter2" | fractis split -n 3 -k 2
  fractis split -n 3 -k 2 --words --in secret.key`,
	RunE: runSplit,
}

// SplitResponse is the JSON shape of a split result.
type SplitResponse struct {
	Scheme    string   `json:"scheme"`
	Shares    int      `json:"shares"`
	Threshold int      `json:"threshold"`
	Bundle    string   `json:"bundle,omitempty"`
	Encoded   []string `json:"encoded,omitempty"`
	Phrases   []string `json:"phrases,omitempty"`
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for command registration
func init() {
	rootCmd.AddCommand(splitCmd)

	splitCmd.Flags().IntVarP(&splitShares, "shares", "n", 0, "total number of shares (default from config)")
	splitCmd.Flags().IntVarP(&splitThreshold, "threshold", "k", 0, "shares required to reconstruct (default from config)")
	splitCmd.Flags().StringVar(&splitScheme, "scheme", "", "sharing scheme: shamir, rabin, or krawczyk (default from config)")
	splitCmd.Flags().StringVar(&splitInput, "in", "", "file holding the secret (default: stdin)")
	splitCmd.Flags().StringVar(&splitOutDir, "out", "", "directory to write the share bundle into")
	splitCmd.Flags().BoolVar(&splitWords, "words", false, "emit shares as word phrases (shamir only)")
	splitCmd.Flags().BoolVar(&splitQR, "qr", false, "render each share as a QR code (terminal only)")
}

func runSplit(cmd *cobra.Command, _ []string) error {
	n, k, scheme, err := splitParameters()
	if err != nil {
		return err
	}

	secret, err := readSecretInput(splitInput)
	if err != nil {
		return err
	}
	defer crypto.ZeroBytes(secret)

	if len(secret) == 0 {
		return ferrors.ErrEmptySecret
	}

	logger.Debug("split: scheme=%s n=%d k=%d len=%d", scheme, n, k, len(secret))

	var encoded []string
	switch scheme {
	case bundle.SchemeShamir:
		encoded, err = splitShamir(secret, n, k)
	case bundle.SchemeRabin:
		if splitWords {
			return ferrors.WithSuggestion(
				ferrors.ErrInvalidInput,
				"--words only applies to the shamir scheme",
			)
		}
		output.Warn("The rabin scheme saves space but provides no secrecy. Individual shares leak their slice of the data.")
		encoded, err = splitRabin(secret, n, k)
	case bundle.SchemeKrawczyk:
		if splitWords {
			return ferrors.WithSuggestion(
				ferrors.ErrInvalidInput,
				"--words only applies to the shamir scheme",
			)
		}
		encoded, err = splitKrawczyk(secret, n, k)
	default:
		return ferrors.WithDetails(
			ferrors.ErrUnknownScheme,
			map[string]string{"scheme": scheme},
		)
	}
	if err != nil {
		return err
	}

	response := SplitResponse{
		Scheme:    scheme,
		Shares:    n,
		Threshold: k,
		Encoded:   encoded,
	}

	if splitOutDir != "" {
		if err := writeShareBundle(splitOutDir, scheme, n, k, encoded); err != nil {
			return err
		}
		response.Bundle = splitOutDir
		response.Encoded = nil
	}

	return outputSplitResponse(cmd, response)
}

// splitParameters resolves n, k, and scheme from flags over config defaults.
func splitParameters() (n, k int, scheme string, err error) {
	n = splitShares
	if n == 0 {
		n = cfg.Split.Shares
	}
	k = splitThreshold
	if k == 0 {
		k = cfg.Split.Threshold
	}
	scheme = splitScheme
	if scheme == "" {
		scheme = cfg.Split.Scheme
	}

	if k < 1 || k > n || n > 255 {
		return 0, 0, "", ferrors.WithDetails(
			ferrors.ErrInvalidParameters,
			map[string]string{
				"shares":    fmt.Sprintf("%d", n),
				"threshold": fmt.Sprintf("%d", k),
			},
		)
	}

	return n, k, scheme, nil
}

func splitShamir(secret []byte, n, k int) ([]string, error) {
	sharer, err := shamir.New(n, k, crypto.Reader)
	if err != nil {
		return nil, ferrors.Wrap(err, "creating sharer")
	}

	shares, err := sharer.Share(secret)
	if err != nil {
		return nil, ferrors.Wrap(err, "splitting secret")
	}

	encoded := make([]string, len(shares))
	for i, sh := range shares {
		if splitWords {
			phrase, err := mnemonic.EncodeShare(sh, k)
			if err != nil {
				return nil, ferrors.Wrap(err, "encoding share words")
			}
			encoded[i] = phrase
		} else {
			encoded[i] = shamir.Encode(sh, k)
		}
	}
	return encoded, nil
}

func splitRabin(secret []byte, n, k int) ([]string, error) {
	dispersal, err := rabin.New(n, k)
	if err != nil {
		return nil, ferrors.Wrap(err, "creating dispersal")
	}

	shares, err := dispersal.Share(secret)
	if err != nil {
		return nil, ferrors.Wrap(err, "dispersing data")
	}

	encoded := make([]string, len(shares))
	for i, sh := range shares {
		encoded[i] = rabin.Encode(sh, k)
	}
	return encoded, nil
}

func splitKrawczyk(secret []byte, n, k int) ([]string, error) {
	sharer, err := krawczyk.New(n, k, crypto.Reader)
	if err != nil {
		return nil, ferrors.Wrap(err, "creating sharer")
	}

	shares, err := sharer.Share(secret)
	if err != nil {
		return nil, ferrors.Wrap(err, "splitting secret")
	}

	encoded := make([]string, len(shares))
	for i, sh := range shares {
		encoded[i] = krawczyk.Encode(sh, k)
	}
	return encoded, nil
}

// writeShareBundle writes one file per share plus the manifest.
func writeShareBundle(dir, scheme string, n, k int, encoded []string) error {
	manifest := bundle.NewManifest(scheme, n, k)
	files := make(map[string][]byte, len(encoded))
	for i, e := range encoded {
		files[bundle.ShareFileName(byte(i+1))] = []byte(e + "\n")
	}
	if err := bundle.Write(dir, manifest, files); err != nil {
		return ferrors.Wrap(err, "writing bundle")
	}
	return nil
}

func outputSplitResponse(cmd *cobra.Command, response SplitResponse) error {
	w := cmd.OutOrStdout()

	if formatter.IsJSON() {
		return writeJSON(w, response)
	}

	if response.Bundle != "" {
		out(w, "Wrote %d shares to %s (threshold %d, scheme %s)\n",
			response.Shares, response.Bundle, response.Threshold, response.Scheme)
		outln(w)
		outln(w, "Distribute the share files to independent holders.")
		out(w, "Any %d of them reconstruct the secret; fewer reveal nothing.\n", response.Threshold)
		return nil
	}

	for i, e := range response.Encoded {
		out(w, "Share %d:\n  %s\n", i+1, e)
		if splitQR {
			if err := output.RenderQR(w, e, output.DefaultQRConfig()); err != nil {
				return err
			}
		}
	}
	outln(w)
	out(w, "Any %d of %d shares reconstruct the secret.\n", response.Threshold, response.Shares)

	if isTerminal(os.Stdout) {
		output.Warn("Shares were printed to the terminal. Clear your scrollback after distributing them.")
	}

	return nil
}
