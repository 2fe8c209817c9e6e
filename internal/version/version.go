// Package version backs the version command's release check. It fetches the
// latest fractis release tag from the GitHub API and orders version strings,
// treating dev builds and bare commit hashes as older than any tagged
// release.
package version

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"runtime"
	"strconv"
	"strings"
	"time"
)

const (
	defaultBaseURL = "https://api.github.com"
	requestTimeout = 30 * time.Second

	// Response bodies are read through LimitReader; a misbehaving endpoint
	// must not be able to balloon memory.
	maxErrorBody   = 1024
	maxReleaseBody = 64 * 1024
)

var (
	ErrGitHubAPIFailed  = errors.New("GitHub API request failed")
	ErrInvalidOwner     = errors.New("owner cannot be empty")
	ErrInvalidRepo      = errors.New("repo cannot be empty")
	ErrInvalidOwnerRepo = errors.New("owner/repo contains invalid characters")
)

// ownerRepoPattern admits the names GitHub itself allows: alphanumerics,
// hyphens, underscores, and dots, never starting with punctuation. Anything
// else would let a caller splice path segments into the request URL.
var ownerRepoPattern = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9._-]*$`)

// Release is the slice of the GitHub release payload the tool reads.
type Release struct {
	TagName     string    `json:"tag_name"`
	Name        string    `json:"name"`
	PublishedAt time.Time `json:"published_at"`
}

// Client fetches release metadata from the GitHub API. Fields may be
// overridden after NewClient, before first use; a Client in use is safe for
// concurrent calls.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	UserAgent  string
}

// NewClient returns a client pointed at the public GitHub API.
func NewClient() *Client {
	return &Client{
		BaseURL:    defaultBaseURL,
		HTTPClient: &http.Client{Timeout: requestTimeout},
		UserAgent:  fmt.Sprintf("fractis/dev (%s/%s)", runtime.GOOS, runtime.GOARCH),
	}
}

//nolint:gochecknoglobals // Package-level convenience client for one-shot lookups
var defaultClient = NewClient()

// GetLatestRelease fetches the latest release of owner/repo using the
// package-level default client.
func GetLatestRelease(ctx context.Context, owner, repo string) (*Release, error) {
	return defaultClient.GetLatestRelease(ctx, owner, repo)
}

func validateOwnerRepo(owner, repo string) error {
	if owner == "" {
		return ErrInvalidOwner
	}
	if repo == "" {
		return ErrInvalidRepo
	}
	if !ownerRepoPattern.MatchString(owner) || !ownerRepoPattern.MatchString(repo) {
		return ErrInvalidOwnerRepo
	}
	return nil
}

// GetLatestRelease fetches the latest published release of owner/repo.
func (c *Client) GetLatestRelease(ctx context.Context, owner, repo string) (*Release, error) {
	if err := validateOwnerRepo(owner, repo); err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/repos/%s/%s/releases/latest", strings.TrimSuffix(c.BaseURL, "/"), owner, repo)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.UserAgent)
	req.Header.Set("Accept", "application/vnd.github.v3+json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching release: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, fmt.Errorf("%w: status %d: %s", ErrGitHubAPIFailed, resp.StatusCode, string(body))
	}

	var release Release
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxReleaseBody)).Decode(&release); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}
	return &release, nil
}

// CompareVersions orders two version strings: 1 when v1 is newer, -1 when v2
// is newer, 0 when they rank the same. Dev builds, empty strings, and commit
// hashes all sort below any tagged release and equal to each other.
func CompareVersions(v1, v2 string) int {
	v1 = strings.TrimPrefix(v1, "v")
	v2 = strings.TrimPrefix(v2, "v")

	dev1 := v1 == "dev" || v1 == "" || isCommitHash(v1)
	dev2 := v2 == "dev" || v2 == "" || isCommitHash(v2)
	switch {
	case dev1 && dev2:
		return 0
	case dev1:
		return -1
	case dev2:
		return 1
	}

	parts1 := parseVersion(v1)
	parts2 := parseVersion(v2)
	for i := 0; i < 3; i++ {
		val1, val2 := 0, 0
		if i < len(parts1) {
			val1 = parts1[i]
		}
		if i < len(parts2) {
			val2 = parts2[i]
		}
		if val1 != val2 {
			if val1 > val2 {
				return 1
			}
			return -1
		}
	}
	return 0
}

// parseVersion extracts the numeric dotted components of a version string.
// Pre-release and build suffixes are cut first; non-numeric components are
// skipped, so missing parts compare as zero.
func parseVersion(version string) []int {
	if idx := strings.IndexAny(version, "-+"); idx != -1 {
		version = version[:idx]
	}

	parts := strings.Split(version, ".")
	result := make([]int, 0, len(parts))
	for _, part := range parts {
		if num, err := strconv.Atoi(part); err == nil {
			result = append(result, num)
		}
	}
	return result
}

// IsNewerVersion reports whether latestVersion supersedes currentVersion.
func IsNewerVersion(currentVersion, latestVersion string) bool {
	return CompareVersions(latestVersion, currentVersion) > 0
}

// NormalizeVersion strips the v prefix, surrounding whitespace, and any
// pre-release or build suffix (-rc1, -dirty, +build) from a version string.
func NormalizeVersion(version string) string {
	if idx := strings.IndexAny(version, "-+"); idx != -1 {
		version = version[:idx]
	}

	for {
		trimmed := strings.TrimLeft(strings.TrimSpace(version), "v")
		if trimmed == version {
			return version
		}
		version = trimmed
	}
}

// isCommitHash reports whether s reads as a git commit hash: 7 to 40 hex
// characters with at least one letter. The letter requirement keeps pure
// numeric strings like 1234567 or date stamps classified as versions.
func isCommitHash(s string) bool {
	s = strings.TrimSuffix(s, "-dirty")
	if len(s) < 7 || len(s) > 40 {
		return false
	}

	hasLetter := false
	for _, c := range s {
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'f', c >= 'A' && c <= 'F':
			hasLetter = true
		default:
			return false
		}
	}
	return hasLetter
}
