package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dex-dev/dex/internal/archive"
	"github.com/dex-dev/dex/internal/download"
	"github.com/dex-dev/dex/internal/github"
	"github.com/dex-dev/dex/internal/log"
	"github.com/dex-dev/dex/internal/platform"
)

// downloadError tags transfer failures so exitCodeFor can distinguish
// them from resolution and extraction failures.
type downloadError struct {
	err error
}

func (e *downloadError) Error() string { return e.err.Error() }
func (e *downloadError) Unwrap() error { return e.err }

// run is the single-shot pipeline: resolve, download, extract.
func run(ctx context.Context, rawURL string) error {
	logger := log.Default()
	target := platform.Normalize(flagPlatform, flagArch)

	url := rawURL
	if ref, ok := github.ParseURL(rawURL); ok {
		logger.Info("resolving GitHub release", "ref", ref.String(), "platform", target.String())

		res, err := github.NewClient().ResolveAsset(ctx, ref, target)
		if err != nil {
			return err
		}
		url = res.Asset.URL
		if !flagQuiet {
			fmt.Fprintf(os.Stderr, "Found: %s/%s %s -> %s\n",
				ref.Owner, ref.Repo, res.Tag, res.Asset.Name)
		}
	}

	result, err := download.NewFetcher().Fetch(ctx, url, flagOutput)
	if err != nil {
		return &downloadError{err: err}
	}
	logger.Info("downloaded", "path", result.Path)

	kind, isArchive := archive.Classify(result.Name)
	if flagNoExtract || !isArchive {
		if !flagQuiet {
			fmt.Printf("Saved: %s\n", result.Path)
		}
		return nil
	}

	manifest, err := archive.Extract(archive.Plan{
		Path: result.Path,
		Kind: kind,
		Dest: flagOutput,
	})
	if err != nil {
		return err
	}

	// The archive is deleted only once extraction has fully succeeded, so
	// a failed run always leaves the downloaded file behind for retry.
	if !flagKeep {
		if err := os.Remove(result.Path); err != nil {
			logger.Warn("could not remove archive", "path", result.Path, "error", err)
		}
	}

	if !flagQuiet {
		printSummary(result.Name, kind, manifest)
	}
	return nil
}

// printSummary reports what extraction produced, grouped by top-level
// entry so a thousand-file tarball prints one line.
func printSummary(name string, kind archive.Kind, manifest *archive.Manifest) {
	fmt.Printf("Extracted %s (%s), %d entries:\n", name, kind, len(manifest.Paths()))
	for _, top := range manifest.TopLevel() {
		fmt.Printf("  %s\n", filepath.Join(flagOutput, top))
	}
}
