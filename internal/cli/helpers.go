package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fractis/fractis/internal/bundle"
	ferrors "github.com/fractis/fractis/pkg/errors"
)

// out writes formatted output, ignoring write errors (best-effort display).
func out(w io.Writer, format string, args ...interface{}) {
	_, _ = fmt.Fprintf(w, format, args...)
}

// outln writes a line of output, ignoring write errors.
func outln(w io.Writer, args ...interface{}) {
	_, _ = fmt.Fprintln(w, args...)
}

// readSecretInput reads the secret to split: from the named file, or from
// stdin when path is empty or "-". Interactive stdin goes through a hidden
// prompt so the secret never echoes.
func readSecretInput(path string) ([]byte, error) {
	if path != "" && path != "-" {
		// #nosec G304 -- input path is from user input
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, ferrors.WithDetails(
					ferrors.ErrNotFound,
					map[string]string{"file": path},
				)
			}
			return nil, fmt.Errorf("reading input: %w", err)
		}
		return data, nil
	}

	if isTerminal(os.Stdin) {
		return promptSecretFn()
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return nil, fmt.Errorf("reading stdin: %w", err)
	}
	return data, nil
}

// collectShareStrings gathers encoded shares from positional args, share
// files, or a bundle directory. Args that name readable files are read as
// share files; anything else is treated as a literal share string.
func collectShareStrings(args []string, dir string) ([]string, error) {
	var encoded []string

	if dir != "" {
		_, files, err := bundle.ReadPartial(dir)
		if err != nil {
			return nil, err
		}
		for _, data := range files {
			encoded = append(encoded, strings.TrimSpace(string(data)))
		}
	}

	for _, arg := range args {
		if info, err := os.Stat(arg); err == nil && !info.IsDir() {
			// #nosec G304 -- share file path is from user input
			data, err := os.ReadFile(arg)
			if err != nil {
				return nil, fmt.Errorf("reading share file %s: %w", arg, err)
			}
			for _, line := range strings.Split(string(data), "\n") {
				line = strings.TrimSpace(line)
				if line != "" {
					encoded = append(encoded, line)
				}
			}
			continue
		}
		encoded = append(encoded, strings.TrimSpace(arg))
	}

	if len(encoded) == 0 {
		return nil, ferrors.WithSuggestion(
			ferrors.ErrInvalidInput,
			"provide share strings, share files, or --dir with a bundle",
		)
	}

	return encoded, nil
}

// writeSecretOutput writes the reconstructed secret to the named file, or
// to the writer when path is empty or "-".
func writeSecretOutput(w io.Writer, path string, secret []byte) error {
	if path == "" || path == "-" {
		_, err := w.Write(secret)
		return err
	}
	if err := os.WriteFile(path, secret, 0o600); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}
