// Package errmsg provides enhanced error message formatting with actionable suggestions.
package errmsg

import (
	"errors"
	"net"
	"strings"

	"github.com/dex-dev/dex/internal/archive"
	"github.com/dex-dev/dex/internal/github"
	"github.com/dex-dev/dex/internal/platform"
)

// Format returns a formatted error message with possible causes and
// suggestions where the error type supports them. Unrecognized errors
// pass through unchanged.
func Format(err error) string {
	if err == nil {
		return ""
	}

	var apiErr *github.APIError
	if errors.As(err, &apiErr) {
		return formatAPIError(apiErr)
	}

	var extractErr *archive.Error
	if errors.As(err, &extractErr) {
		return formatExtractError(extractErr)
	}

	var noMatch *platform.NoMatchError
	if errors.As(err, &noMatch) {
		return formatNoMatchError(noMatch)
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return formatNetworkError(netErr)
	}

	return err.Error()
}

func formatAPIError(err *github.APIError) string {
	var sb strings.Builder
	sb.WriteString(err.Error())
	sb.WriteString("\n")

	switch err.Kind {
	case github.APIRateLimited:
		sb.WriteString("\nPossible causes:\n")
		sb.WriteString("  - Too many requests to the GitHub API\n")
		sb.WriteString("  - Unauthenticated requests have lower limits\n")

		sb.WriteString("\nSuggestions:\n")
		sb.WriteString("  - Set GITHUB_TOKEN environment variable to increase rate limit\n")
		sb.WriteString("  - Wait a few minutes before retrying\n")

	case github.APINotFound:
		sb.WriteString("\nPossible causes:\n")
		sb.WriteString("  - The repository or release does not exist\n")
		sb.WriteString("  - The release is a draft or the repository is private\n")

		sb.WriteString("\nSuggestions:\n")
		sb.WriteString("  - Check the URL for typos\n")
		sb.WriteString("  - Set GITHUB_TOKEN if the repository is private\n")

	default:
		sb.WriteString("\nPossible causes:\n")
		sb.WriteString("  - Network connectivity issue\n")
		sb.WriteString("  - GitHub temporarily unavailable\n")

		sb.WriteString("\nSuggestions:\n")
		sb.WriteString("  - Check your internet connection\n")
		sb.WriteString("  - Try again in a few minutes\n")
	}

	return sb.String()
}

func formatExtractError(err *archive.Error) string {
	var sb strings.Builder
	sb.WriteString(err.Error())
	sb.WriteString("\n")

	switch err.Kind {
	case archive.ErrCorrupt:
		sb.WriteString("\nPossible causes:\n")
		sb.WriteString("  - The download was truncated or corrupted in transit\n")
		sb.WriteString("  - The file is not actually the archive format its name suggests\n")

		sb.WriteString("\nSuggestions:\n")
		sb.WriteString("  - Retry the download\n")
		sb.WriteString("  - Use --no-extract to keep the file as-is and inspect it\n")

	case archive.ErrPathTraversal:
		sb.WriteString("\nPossible causes:\n")
		sb.WriteString("  - The archive contains entries that escape the destination directory\n")

		sb.WriteString("\nSuggestions:\n")
		sb.WriteString("  - Do not extract this archive; report it to the publisher\n")
		sb.WriteString("  - Use --no-extract to keep the file without extracting\n")

	case archive.ErrIO:
		sb.WriteString("\nPossible causes:\n")
		sb.WriteString("  - Insufficient disk space\n")
		sb.WriteString("  - Missing write permission on the output directory\n")

		sb.WriteString("\nSuggestions:\n")
		sb.WriteString("  - Check free space and permissions on the output directory\n")
		sb.WriteString("  - Pick a different output directory with -o\n")
	}

	return sb.String()
}

func formatNoMatchError(err *platform.NoMatchError) string {
	var sb strings.Builder
	sb.WriteString(err.Error())
	sb.WriteString("\n")

	sb.WriteString("\nSuggestions:\n")
	sb.WriteString("  - Override the target with --platform and --arch\n")
	sb.WriteString("  - Download a specific asset URL directly\n")

	return sb.String()
}

func formatNetworkError(err net.Error) string {
	var sb strings.Builder
	sb.WriteString(err.Error())
	sb.WriteString("\n")

	sb.WriteString("\nPossible causes:\n")
	if err.Timeout() {
		sb.WriteString("  - Request timed out\n")
		sb.WriteString("  - Server is slow or unresponsive\n")
	} else {
		sb.WriteString("  - Network connectivity issue\n")
		sb.WriteString("  - DNS resolution failure\n")
	}

	sb.WriteString("\nSuggestions:\n")
	sb.WriteString("  - Check your internet connection\n")
	if err.Timeout() {
		sb.WriteString("  - Increase the timeout with DEX_DOWNLOAD_TIMEOUT\n")
	}
	sb.WriteString("  - Try again in a few minutes\n")

	return sb.String()
}
