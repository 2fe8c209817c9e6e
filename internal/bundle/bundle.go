package bundle

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/fractis/fractis/internal/fileutil"
)

const (
	// ManifestName is the filename of the bundle manifest.
	ManifestName = "manifest.yaml"

	// ShareExtension is the file extension for share files.
	ShareExtension = ".fract"

	// DirPermissions is the permission mode for the bundle directory.
	DirPermissions = 0o700

	// FilePermissions is the permission mode for files in the bundle.
	FilePermissions = 0o600
)

// ShareFileName returns the canonical filename for the share at index x.
func ShareFileName(x byte) string {
	return fmt.Sprintf("share-%d%s", x, ShareExtension)
}

// Write writes share files and a manifest into dir. Each key of shares is
// used as the filename and each value is written verbatim. The manifest is
// written last so readers never see a complete manifest over partial shares.
func Write(dir string, manifest *Manifest, shares map[string][]byte) error {
	if err := fileutil.EnsureDir(dir, DirPermissions); err != nil {
		return fmt.Errorf("creating bundle directory: %w", err)
	}

	for name, data := range shares {
		path := filepath.Join(dir, name)
		if err := fileutil.WriteAtomic(path, data, FilePermissions); err != nil {
			return fmt.Errorf("writing share file %s: %w", name, err)
		}
		manifest.Checksums[name] = CalculateChecksum(data)
	}

	manifestData, err := yaml.Marshal(manifest)
	if err != nil {
		return fmt.Errorf("serializing manifest: %w", err)
	}

	manifestPath := filepath.Join(dir, ManifestName)
	if err := fileutil.WriteAtomic(manifestPath, manifestData, FilePermissions); err != nil {
		return fmt.Errorf("writing manifest: %w", err)
	}

	return nil
}

// ReadManifest reads and validates the manifest of the bundle at dir.
func ReadManifest(dir string) (*Manifest, error) {
	manifestPath := filepath.Join(dir, ManifestName)

	// #nosec G304 -- path is from user input
	data, err := os.ReadFile(manifestPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrBundleNotFound
		}
		return nil, fmt.Errorf("reading manifest: %w", err)
	}

	var manifest Manifest
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidManifest, err)
	}

	if err := manifest.Validate(); err != nil {
		return nil, err
	}

	return &manifest, nil
}

// Read reads the bundle at dir, verifying every share file against the
// manifest checksums. It returns the manifest and the share file contents
// keyed by filename.
func Read(dir string) (*Manifest, map[string][]byte, error) {
	manifest, err := ReadManifest(dir)
	if err != nil {
		return nil, nil, err
	}

	shares := make(map[string][]byte, len(manifest.Checksums))
	for name, checksum := range manifest.Checksums {
		data, err := readShareFile(dir, name)
		if err != nil {
			return nil, nil, err
		}
		if err := VerifyChecksum(data, checksum); err != nil {
			return nil, nil, fmt.Errorf("share file %s: %w", name, err)
		}
		shares[name] = data
	}

	return manifest, shares, nil
}

// ReadPartial reads the bundle at dir but tolerates missing share files,
// returning whichever verified shares are present. Reconstruction only
// needs threshold many shares, so a thinned bundle is still usable.
// Present share files that fail their checksum are still an error.
func ReadPartial(dir string) (*Manifest, map[string][]byte, error) {
	manifest, err := ReadManifest(dir)
	if err != nil {
		return nil, nil, err
	}

	shares := make(map[string][]byte)
	for name, checksum := range manifest.Checksums {
		data, err := readShareFile(dir, name)
		if err != nil {
			if errors.Is(err, ErrShareFileNotFound) {
				continue
			}
			return nil, nil, err
		}
		if err := VerifyChecksum(data, checksum); err != nil {
			return nil, nil, fmt.Errorf("share file %s: %w", name, err)
		}
		shares[name] = data
	}

	return manifest, shares, nil
}

func readShareFile(dir, name string) ([]byte, error) {
	// Manifest keys name files inside the bundle, never paths.
	if filepath.Base(name) != name {
		return nil, fmt.Errorf("%w: bad share filename %q", ErrInvalidManifest, name)
	}

	data, err := os.ReadFile(filepath.Join(dir, name)) // #nosec G304
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrShareFileNotFound, name)
		}
		return nil, fmt.Errorf("reading share file %s: %w", name, err)
	}

	return data, nil
}
