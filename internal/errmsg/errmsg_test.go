package errmsg

import (
	"errors"
	"strings"
	"testing"

	"github.com/dex-dev/dex/internal/archive"
	"github.com/dex-dev/dex/internal/github"
	"github.com/dex-dev/dex/internal/platform"
)

func TestFormat_NilError(t *testing.T) {
	if result := Format(nil); result != "" {
		t.Errorf("expected empty string for nil error, got %q", result)
	}
}

func TestFormat_GenericError(t *testing.T) {
	err := errors.New("something went wrong")
	if result := Format(err); result != "something went wrong" {
		t.Errorf("expected original error message, got %q", result)
	}
}

func requireContains(t *testing.T, result string, checks []string) {
	t.Helper()
	for _, check := range checks {
		if !strings.Contains(result, check) {
			t.Errorf("expected result to contain %q, got:\n%s", check, result)
		}
	}
}

func TestFormat_RateLimited(t *testing.T) {
	err := &github.APIError{Kind: github.APIRateLimited, StatusCode: 403}
	requireContains(t, Format(err), []string{
		"rate limit",
		"Possible causes:",
		"Suggestions:",
		"GITHUB_TOKEN",
	})
}

func TestFormat_NotFound(t *testing.T) {
	err := &github.APIError{
		Kind:       github.APINotFound,
		StatusCode: 404,
		Err:        errors.New("no such repo"),
	}
	requireContains(t, Format(err), []string{
		"not found",
		"Check the URL for typos",
	})
}

func TestFormat_CorruptArchive(t *testing.T) {
	err := &archive.Error{Kind: archive.ErrCorrupt, Err: errors.New("unexpected EOF")}
	requireContains(t, Format(err), []string{
		"unexpected EOF",
		"truncated or corrupted",
		"Retry the download",
	})
}

func TestFormat_PathTraversal(t *testing.T) {
	err := &archive.Error{Kind: archive.ErrPathTraversal, Entry: "../evil"}
	requireContains(t, Format(err), []string{
		"../evil",
		"escapes the destination",
		"--no-extract",
	})
}

func TestFormat_NoMatch(t *testing.T) {
	err := &platform.NoMatchError{
		Platform: platform.Platform{OS: "linux", Arch: "arm64"},
		Assets:   []string{"tool-darwin-amd64.tar.gz"},
	}
	requireContains(t, Format(err), []string{
		"no release asset matches linux/arm64",
		"tool-darwin-amd64.tar.gz",
		"--platform",
	})
}

type fakeNetError struct{ timeout bool }

func (e fakeNetError) Error() string   { return "connection failed" }
func (e fakeNetError) Timeout() bool   { return e.timeout }
func (e fakeNetError) Temporary() bool { return false }

func TestFormat_NetworkTimeout(t *testing.T) {
	requireContains(t, Format(fakeNetError{timeout: true}), []string{
		"connection failed",
		"Request timed out",
		"DEX_DOWNLOAD_TIMEOUT",
	})
}

func TestFormat_NetworkNonTimeout(t *testing.T) {
	result := Format(fakeNetError{timeout: false})
	requireContains(t, result, []string{
		"connection failed",
		"Network connectivity issue",
	})
	if strings.Contains(result, "DEX_DOWNLOAD_TIMEOUT") {
		t.Error("non-timeout error should not suggest raising the timeout")
	}
}
