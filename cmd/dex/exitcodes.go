package main

import (
	"errors"

	"github.com/dex-dev/dex/internal/archive"
	"github.com/dex-dev/dex/internal/github"
	"github.com/dex-dev/dex/internal/platform"
)

// Exit codes for different error types.
// These enable scripts to distinguish between failure modes.
const (
	// ExitSuccess indicates successful execution
	ExitSuccess = 0

	// ExitGeneral indicates a general error
	ExitGeneral = 1

	// ExitUsage indicates invalid arguments or usage error
	ExitUsage = 2

	// ExitNoMatch indicates no release asset matched the target platform
	ExitNoMatch = 3

	// ExitResolve indicates the GitHub release could not be resolved
	ExitResolve = 4

	// ExitDownload indicates the download failed
	ExitDownload = 5

	// ExitExtract indicates extraction failed
	ExitExtract = 6
)

// usageError tags invalid arguments or flags.
type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

// exitCodeFor maps an error onto the exit code taxonomy. Download errors
// are tagged by the orchestrator with downloadError because plain
// transport failures carry no type of their own.
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var usageErr *usageError
	if errors.As(err, &usageErr) {
		return ExitUsage
	}

	var noMatch *platform.NoMatchError
	if errors.As(err, &noMatch) {
		return ExitNoMatch
	}

	var apiErr *github.APIError
	if errors.As(err, &apiErr) {
		return ExitResolve
	}

	var extractErr *archive.Error
	if errors.As(err, &extractErr) {
		return ExitExtract
	}

	var dlErr *downloadError
	if errors.As(err, &dlErr) {
		return ExitDownload
	}

	return ExitGeneral
}
