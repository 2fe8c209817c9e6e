package cli

import (
	"io"
	"testing"

	"github.com/fractis/fractis/internal/config"
	"github.com/fractis/fractis/internal/output"
)

// withTestGlobals installs fresh package-level state for a test and restores
// the originals on cleanup. NOT safe for parallel tests.
func withTestGlobals(t *testing.T) {
	t.Helper()
	origCfg := cfg
	origLogger := logger
	origFormatter := formatter
	t.Cleanup(func() {
		cfg = origCfg
		logger = origLogger
		formatter = origFormatter
	})

	cfg = config.Defaults()
	cfg.Home = t.TempDir()
	logger = config.NullLogger()
	formatter = output.NewFormatter(output.FormatText, io.Discard)
}

// withMockPrompts replaces prompt functions for testing and restores on cleanup.
func withMockPrompts(t *testing.T, password []byte) {
	t.Helper()
	origPW := promptPasswordFn
	origNewPW := promptNewPasswordFn
	origSecret := promptSecretFn
	t.Cleanup(func() {
		promptPasswordFn = origPW
		promptNewPasswordFn = origNewPW
		promptSecretFn = origSecret
	})
	promptPasswordFn = func(_ string) ([]byte, error) {
		cp := make([]byte, len(password))
		copy(cp, password)
		return cp, nil
	}
	promptNewPasswordFn = func() ([]byte, error) {
		cp := make([]byte, len(password))
		copy(cp, password)
		return cp, nil
	}
	promptSecretFn = func() ([]byte, error) {
		cp := make([]byte, len(password))
		copy(cp, password)
		return cp, nil
	}
}
