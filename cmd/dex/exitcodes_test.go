package main

import (
	"errors"
	"fmt"
	"testing"

	"github.com/dex-dev/dex/internal/archive"
	"github.com/dex-dev/dex/internal/github"
	"github.com/dex-dev/dex/internal/platform"
)

func TestExitCodeFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"generic", errors.New("boom"), ExitGeneral},
		{"usage", &usageError{err: errors.New("accepts 1 arg(s)")}, ExitUsage},
		{
			"no match",
			&platform.NoMatchError{Platform: platform.Platform{OS: "linux", Arch: "amd64"}},
			ExitNoMatch,
		},
		{
			"api error",
			&github.APIError{Kind: github.APIRateLimited},
			ExitResolve,
		},
		{
			"download",
			&downloadError{err: errors.New("connection reset")},
			ExitDownload,
		},
		{
			"extraction",
			&archive.Error{Kind: archive.ErrCorrupt, Err: errors.New("bad stream")},
			ExitExtract,
		},
		{
			"wrapped no match",
			fmt.Errorf("resolving: %w", &platform.NoMatchError{}),
			ExitNoMatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := exitCodeFor(tt.err); got != tt.want {
				t.Errorf("exitCodeFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

// Exit codes are a scripting contract: each failure class must stay
// distinguishable from the others.
func TestExitCodes_Distinct(t *testing.T) {
	codes := []int{ExitSuccess, ExitGeneral, ExitUsage, ExitNoMatch, ExitResolve, ExitDownload, ExitExtract}
	seen := make(map[int]bool)
	for _, c := range codes {
		if seen[c] {
			t.Errorf("exit code %d assigned twice", c)
		}
		seen[c] = true
	}
}
