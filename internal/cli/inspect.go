package cli

import (
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/fractis/fractis/internal/bundle"
	"github.com/fractis/fractis/internal/krawczyk"
	"github.com/fractis/fractis/internal/mnemonic"
	"github.com/fractis/fractis/internal/output"
	"github.com/fractis/fractis/internal/rabin"
	"github.com/fractis/fractis/internal/shamir"
	ferrors "github.com/fractis/fractis/pkg/errors"
)

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level flag variables
var inspectDir string

// inspectCmd describes shares without reconstructing anything.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var inspectCmd = &cobra.Command{
	Use:   "inspect [shares or share files...]",
	Short: "Describe shares without reconstructing the secret",
	Long: `Describe shares: scheme, embedded threshold, index, and payload size.

No reconstruction happens; a single share is safe to inspect anywhere.
With --dir the bundle manifest is read and every present share file is
verified against its checksum.

Examples:
  fractis inspect "fractis-v1-3-1-a3f1c2"
  fractis inspect share-1.fract share-2.fract
  fractis inspect --dir ./shares`,
	RunE: runInspect,
}

// ShareInfo is the JSON shape of one inspected share.
type ShareInfo struct {
	Scheme    string `json:"scheme"`
	Threshold int    `json:"threshold"`
	Index     int    `json:"index"`
	Bytes     int    `json:"bytes"`
	Words     bool   `json:"words,omitempty"`
}

// InspectResponse is the JSON shape of an inspect result.
type InspectResponse struct {
	Bundle    *BundleInfo `json:"bundle,omitempty"`
	ShareInfo []ShareInfo `json:"shares"`
}

// BundleInfo is the JSON shape of an inspected bundle manifest.
type BundleInfo struct {
	Scheme    string    `json:"scheme"`
	Shares    int       `json:"shares"`
	Threshold int       `json:"threshold"`
	Present   int       `json:"present"`
	CreatedAt time.Time `json:"created_at"`
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for command registration
func init() {
	rootCmd.AddCommand(inspectCmd)

	inspectCmd.Flags().StringVar(&inspectDir, "dir", "", "bundle directory to inspect")
}

func runInspect(cmd *cobra.Command, args []string) error {
	response := InspectResponse{}

	if inspectDir != "" {
		manifest, files, err := bundle.ReadPartial(inspectDir)
		if err != nil {
			return ferrors.Wrap(err, "reading bundle")
		}
		response.Bundle = &BundleInfo{
			Scheme:    manifest.Scheme,
			Shares:    manifest.Shares,
			Threshold: manifest.Threshold,
			Present:   len(files),
			CreatedAt: manifest.CreatedAt,
		}
	}

	encoded, err := collectShareStrings(args, inspectDir)
	if err != nil {
		return err
	}

	for _, e := range encoded {
		info, err := inspectShare(e)
		if err != nil {
			return err
		}
		response.ShareInfo = append(response.ShareInfo, info)
	}

	return outputInspectResponse(cmd, response)
}

// inspectShare decodes one share string just far enough to describe it.
func inspectShare(encoded string) (ShareInfo, error) {
	switch {
	case strings.HasPrefix(encoded, "fractis-v1-"):
		sh, k, err := shamir.Decode(encoded)
		if err != nil {
			return ShareInfo{}, ferrors.Wrap(err, "decoding share")
		}
		return ShareInfo{
			Scheme:    bundle.SchemeShamir,
			Threshold: k,
			Index:     int(sh.X),
			Bytes:     len(sh.Y),
		}, nil
	case strings.HasPrefix(encoded, "fractis-r1-"):
		sh, k, err := rabin.Decode(encoded)
		if err != nil {
			return ShareInfo{}, ferrors.Wrap(err, "decoding share")
		}
		return ShareInfo{
			Scheme:    bundle.SchemeRabin,
			Threshold: k,
			Index:     int(sh.X),
			Bytes:     len(sh.Body),
		}, nil
	case strings.HasPrefix(encoded, "fractis-c1-"):
		sh, k, err := krawczyk.Decode(encoded)
		if err != nil {
			return ShareInfo{}, ferrors.Wrap(err, "decoding share")
		}
		return ShareInfo{
			Scheme:    bundle.SchemeKrawczyk,
			Threshold: k,
			Index:     int(sh.X),
			Bytes:     len(sh.Body),
		}, nil
	default:
		sh, k, err := mnemonic.DecodeShare(encoded)
		if err != nil {
			return ShareInfo{}, ferrors.WithSuggestion(
				ferrors.Wrap(err, "decoding share"),
				"expected a fractis share string or a word phrase",
			)
		}
		return ShareInfo{
			Scheme:    bundle.SchemeShamir,
			Threshold: k,
			Index:     int(sh.X),
			Bytes:     len(sh.Y),
			Words:     true,
		}, nil
	}
}

func outputInspectResponse(cmd *cobra.Command, response InspectResponse) error {
	w := cmd.OutOrStdout()

	if formatter.IsJSON() {
		return writeJSON(w, response)
	}

	if b := response.Bundle; b != nil {
		out(w, "Bundle: scheme=%s shares=%d threshold=%d created=%s\n",
			b.Scheme, b.Shares, b.Threshold, b.CreatedAt.Format(time.RFC3339))
		out(w, "Share files present and verified: %d\n", b.Present)
		outln(w)
	}

	table := output.NewTable("INDEX", "SCHEME", "THRESHOLD", "BYTES", "ENCODING")
	for _, info := range response.ShareInfo {
		enc := "string"
		if info.Words {
			enc = "words"
		}
		table.AddRow(
			strconv.Itoa(info.Index),
			info.Scheme,
			strconv.Itoa(info.Threshold),
			strconv.Itoa(info.Bytes),
			enc,
		)
	}

	return table.Render(w)
}
