package github

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	gogithub "github.com/google/go-github/v57/github"
)

// APIErrorKind classifies GitHub API failures.
type APIErrorKind int

const (
	// APINetwork covers transport failures and unexpected statuses.
	APINetwork APIErrorKind = iota

	// APINotFound means the repository, release, or tag does not exist
	// (or is a draft the caller cannot see).
	APINotFound

	// APIRateLimited means the API quota is exhausted. Setting
	// GITHUB_TOKEN raises the limit.
	APIRateLimited
)

// APIError is a classified GitHub API failure. The status code is kept so
// the orchestrator can report it verbatim.
type APIError struct {
	Kind       APIErrorKind
	StatusCode int
	Reset      time.Time
	Err        error
}

func (e *APIError) Error() string {
	switch e.Kind {
	case APIRateLimited:
		msg := fmt.Sprintf("GitHub API rate limit exceeded (HTTP %d)", e.StatusCode)
		if !e.Reset.IsZero() {
			msg += fmt.Sprintf(", resets at %s", e.Reset.Format(time.RFC3339))
		}
		return msg + "; set GITHUB_TOKEN to increase limits"
	case APINotFound:
		return fmt.Sprintf("not found on GitHub (HTTP %d): %v", e.StatusCode, e.Err)
	default:
		if e.StatusCode != 0 {
			return fmt.Sprintf("GitHub API request failed (HTTP %d): %v", e.StatusCode, e.Err)
		}
		return fmt.Sprintf("GitHub API request failed: %v", e.Err)
	}
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// classifyAPIError maps go-github errors onto the APIError taxonomy.
func classifyAPIError(err error) *APIError {
	var rateErr *gogithub.RateLimitError
	if errors.As(err, &rateErr) {
		return &APIError{
			Kind:       APIRateLimited,
			StatusCode: http.StatusForbidden,
			Reset:      rateErr.Rate.Reset.Time,
			Err:        err,
		}
	}

	var abuseErr *gogithub.AbuseRateLimitError
	if errors.As(err, &abuseErr) {
		return &APIError{Kind: APIRateLimited, StatusCode: http.StatusForbidden, Err: err}
	}

	var respErr *gogithub.ErrorResponse
	if errors.As(err, &respErr) && respErr.Response != nil {
		code := respErr.Response.StatusCode
		switch code {
		case http.StatusNotFound:
			return &APIError{Kind: APINotFound, StatusCode: code, Err: err}
		case http.StatusForbidden, http.StatusTooManyRequests:
			return &APIError{Kind: APIRateLimited, StatusCode: code, Err: err}
		}
		return &APIError{Kind: APINetwork, StatusCode: code, Err: err}
	}

	return &APIError{Kind: APINetwork, Err: err}
}

// isNotFound reports whether err is a classified 404.
func isNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Kind == APINotFound
}
