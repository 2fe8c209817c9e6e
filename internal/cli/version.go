package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	versionpkg "github.com/fractis/fractis/internal/version"
)

const (
	// devVersionString is the string used for development builds.
	devVersionString = "dev"
	// releaseOwner and releaseRepo identify the GitHub repository queried
	// for release checks.
	releaseOwner = "fractis"
	releaseRepo  = "fractis"
)

// BuildInfo carries version metadata injected at link time.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

//nolint:gochecknoglobals // Build metadata is set once from main before Execute
var buildInfo BuildInfo

// SetBuildInfo records the build metadata stamped into the binary.
func SetBuildInfo(info BuildInfo) {
	buildInfo = info
	rootCmd.Version = formatVersion(info)
}

// formatVersion renders build metadata for cobra's --version output.
func formatVersion(info BuildInfo) string {
	v := info.Version
	if v == "" {
		v = devVersionString
	}
	commit := info.Commit
	if commit == "" {
		commit = "unknown"
	}
	date := info.Date
	if date == "" {
		date = "unknown"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", v, commit, date)
}

// GetCurrentVersion returns the current version of fractis.
func GetCurrentVersion() string {
	v := buildInfo.Version
	if v == "" {
		return devVersionString
	}
	return v
}

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level flag variables
var versionCheck bool

// versionCmd prints build information.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Long: `Show the fractis version, commit, and build date.

With --check the latest release on GitHub is fetched and compared
against the running binary.

Examples:
  fractis version
  fractis version --check
  fractis version -o json`,
	RunE: runVersion,
}

// VersionResponse is the JSON shape of version output.
type VersionResponse struct {
	Version  string `json:"version"`
	Commit   string `json:"commit,omitempty"`
	Date     string `json:"date,omitempty"`
	Go       string `json:"go"`
	Platform string `json:"platform"`
	Latest   string `json:"latest,omitempty"`
	Outdated bool   `json:"outdated,omitempty"`
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for command registration
func init() {
	rootCmd.AddCommand(versionCmd)

	versionCmd.Flags().BoolVar(&versionCheck, "check", false, "check GitHub for a newer release")
}

func runVersion(cmd *cobra.Command, _ []string) error {
	response := VersionResponse{
		Version:  GetCurrentVersion(),
		Commit:   buildInfo.Commit,
		Date:     buildInfo.Date,
		Go:       runtime.Version(),
		Platform: runtime.GOOS + "/" + runtime.GOARCH,
	}

	if versionCheck {
		release, err := versionpkg.GetLatestRelease(cmd.Context(), releaseOwner, releaseRepo)
		if err != nil {
			return err
		}
		response.Latest = versionpkg.NormalizeVersion(release.TagName)
		response.Outdated = versionpkg.IsNewerVersion(response.Version, response.Latest)
	}

	w := cmd.OutOrStdout()

	if formatter.IsJSON() {
		return writeJSON(w, response)
	}

	out(w, "fractis %s\n", response.Version)
	if response.Commit != "" {
		out(w, "  commit: %s\n", response.Commit)
	}
	if response.Date != "" {
		out(w, "  built:  %s\n", response.Date)
	}
	out(w, "  go:     %s (%s)\n", response.Go, response.Platform)

	if versionCheck {
		if response.Outdated {
			out(w, "\nA newer release is available: %s\n", response.Latest)
		} else {
			out(w, "\nUp to date (latest release: %s)\n", response.Latest)
		}
	}

	return nil
}
