package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"

	ferrors "github.com/fractis/fractis/pkg/errors"
)

// errTestRandom is used for testing non-fractis error handling.
var errTestRandom = ferrors.New("TEST_ERROR", "some random error")

func TestFormatVersion(t *testing.T) {
	tests := []struct {
		name string
		info BuildInfo
		want string
	}{
		{
			name: "all fields populated",
			info: BuildInfo{
				Version: "v1.2.3",
				Commit:  "abc1234",
				Date:    "2024-01-15",
			},
			want: "v1.2.3 (commit: abc1234, built: 2024-01-15)",
		},
		{
			name: "all fields empty",
			info: BuildInfo{},
			want: "dev (commit: unknown, built: unknown)",
		},
		{
			name: "only version empty",
			info: BuildInfo{
				Version: "",
				Commit:  "def5678",
				Date:    "2024-02-20",
			},
			want: "dev (commit: def5678, built: 2024-02-20)",
		},
		{
			name: "only commit empty",
			info: BuildInfo{
				Version: "v2.0.0",
				Commit:  "",
				Date:    "2024-03-25",
			},
			want: "v2.0.0 (commit: unknown, built: 2024-03-25)",
		},
		{
			name: "only date empty",
			info: BuildInfo{
				Version: "v3.0.0",
				Commit:  "ghi9012",
				Date:    "",
			},
			want: "v3.0.0 (commit: ghi9012, built: unknown)",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := formatVersion(tc.info)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestGetCurrentVersion(t *testing.T) {
	origBuildInfo := buildInfo
	defer func() { buildInfo = origBuildInfo }()

	buildInfo = BuildInfo{Version: "1.2.3"}
	assert.Equal(t, "1.2.3", GetCurrentVersion())

	buildInfo = BuildInfo{}
	assert.Equal(t, "dev", GetCurrentVersion())
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{
			name: "nil error returns success",
			err:  nil,
			want: ferrors.ExitSuccess,
		},
		{
			name: "general error",
			err:  ferrors.ErrGeneral,
			want: ferrors.ExitGeneral,
		},
		{
			name: "invalid input error",
			err:  ferrors.ErrInvalidInput,
			want: ferrors.ExitInput,
		},
		{
			name: "empty secret error",
			err:  ferrors.ErrEmptySecret,
			want: ferrors.ExitInput,
		},
		{
			name: "insufficient shares error",
			err:  ferrors.ErrInsufficientShares,
			want: ferrors.ExitInput,
		},
		{
			name: "not found error",
			err:  ferrors.ErrNotFound,
			want: ferrors.ExitNotFound,
		},
		{
			name: "bundle not found error",
			err:  ferrors.ErrBundleNotFound,
			want: ferrors.ExitNotFound,
		},
		{
			name: "unprotect failed error",
			err:  ferrors.ErrUnprotectFailed,
			want: ferrors.ExitAuth,
		},
		{
			name: "config not found error",
			err:  ferrors.ErrConfigNotFound,
			want: ferrors.ExitNotFound,
		},
		{
			name: "non-fractis error returns general",
			err:  errTestRandom,
			want: ferrors.ExitGeneral,
		},
		{
			name: "wrapped error preserves exit code",
			err:  ferrors.Wrap(ferrors.ErrInsufficientShares, "reconstructing secret"),
			want: ferrors.ExitInput,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ExitCode(tc.err)
			assert.Equal(t, tc.want, got)
		})
	}
}

// TestGlobalGetters tests Config(), Logger(), Formatter() getters.
// NOT parallel: mutates package-level globals.
func TestGlobalGetters(t *testing.T) {
	withTestGlobals(t)

	assert.Same(t, cfg, Config())
	assert.Same(t, logger, Logger())
	assert.Same(t, formatter, Formatter())
}
