// Package download streams a remote file to disk with progress reporting.
package download

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/dex-dev/dex/internal/buildinfo"
	"github.com/dex-dev/dex/internal/config"
	"github.com/dex-dev/dex/internal/httputil"
	"github.com/dex-dev/dex/internal/log"
	"github.com/dex-dev/dex/internal/progress"
)

// Result describes a completed download.
type Result struct {
	// Path is the full path of the saved file.
	Path string

	// Name is the file name the download was saved under, as suggested by
	// the server (Content-Disposition) or derived from the URL.
	Name string
}

// Fetcher downloads files over HTTP.
type Fetcher struct {
	client *http.Client
	logger log.Logger
}

// NewFetcher creates a Fetcher with the hardened shared HTTP client.
func NewFetcher() *Fetcher {
	return &Fetcher{
		client: httputil.NewClient(httputil.Options{
			Timeout: config.DownloadTimeout(),
		}),
		logger: log.Default(),
	}
}

// NewFetcherWithClient creates a Fetcher with a custom client. For tests.
func NewFetcherWithClient(client *http.Client) *Fetcher {
	return &Fetcher{client: client, logger: log.Default()}
}

// Fetch downloads rawURL into destDir, creating the directory as needed,
// and returns where the file was saved. The transfer streams to disk; no
// retries are attempted here.
func (f *Fetcher) Fetch(ctx context.Context, rawURL, destDir string) (*Result, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("invalid URL %q: %w", rawURL, err)
	}
	req.Header.Set("User-Agent", "dex/"+buildinfo.Version())

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download failed: server returned %s", resp.Status)
	}

	name := suggestedFilename(resp, rawURL)
	f.logger.Debug("downloading", "url", rawURL, "name", name,
		"contentLength", resp.ContentLength)

	if err := os.MkdirAll(destDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	destPath := filepath.Join(destDir, name)
	out, err := os.Create(destPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}

	var w io.Writer = out
	var pw *progress.Writer
	if progress.ShouldShowProgress() {
		pw = progress.NewWriter(out, resp.ContentLength, os.Stdout)
		w = pw
	}

	if _, err := io.Copy(w, resp.Body); err != nil {
		out.Close()
		os.Remove(destPath)
		return nil, fmt.Errorf("download failed: %w", err)
	}
	if pw != nil {
		pw.Finish()
	}
	if err := out.Close(); err != nil {
		return nil, fmt.Errorf("failed to write file: %w", err)
	}

	return &Result{Path: destPath, Name: name}, nil
}

// suggestedFilename picks the name to save under: the server's
// Content-Disposition filename when present (redirect-served downloads
// often carry one), otherwise the last URL path segment with any query
// stripped, with "download" as the final fallback.
func suggestedFilename(resp *http.Response, rawURL string) string {
	if cd := resp.Header.Get("Content-Disposition"); cd != "" {
		if _, params, err := mime.ParseMediaType(cd); err == nil {
			if name := sanitizeFilename(params["filename"]); name != "" {
				return name
			}
		}
	}

	if u, err := url.Parse(rawURL); err == nil {
		if name := sanitizeFilename(path.Base(u.Path)); name != "" {
			return name
		}
	}
	return "download"
}

// sanitizeFilename strips directory components and rejects names that
// cannot be a plain file name.
func sanitizeFilename(name string) string {
	name = filepath.Base(strings.TrimSpace(name))
	if name == "" || name == "." || name == ".." || name == "/" {
		return ""
	}
	return name
}
