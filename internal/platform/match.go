package platform

import (
	"fmt"
	"strings"

	"github.com/dex-dev/dex/internal/archive"
)

// Asset is one downloadable release file. Read-only: sourced from the API
// layer and never mutated here.
type Asset struct {
	Name string
	URL  string
	Size int64
}

// skipSuffixes mark metadata files (checksums, signatures, manifests) that
// are never the binary we want.
var skipSuffixes = []string{
	".sha256", ".sha512", ".sig", ".asc", ".sbom", ".json", ".txt", ".md",
}

// skipKeywords mark source archives rather than prebuilt binaries.
var skipKeywords = []string{"source", "src"}

// NoMatchError is returned when no candidate asset matches the target
// platform. Surfaced to the user rather than guessed: silently grabbing a
// wrong-platform binary is worse than failing.
type NoMatchError struct {
	Platform Platform
	Assets   []string
}

func (e *NoMatchError) Error() string {
	msg := fmt.Sprintf("no release asset matches %s", e.Platform)
	if len(e.Assets) == 0 {
		return msg
	}
	const maxDisplay = 10
	shown := e.Assets
	if len(shown) > maxDisplay {
		shown = shown[:maxDisplay]
	}
	msg += "\nAvailable assets:"
	for _, a := range shown {
		msg += "\n  - " + a
	}
	if len(e.Assets) > maxDisplay {
		msg += fmt.Sprintf("\n  ... and %d more", len(e.Assets)-maxDisplay)
	}
	return msg
}

// score ranks an asset name against a platform. Weights encode the policy
// ordering explicitly: an OS hit (+10) outranks an arch hit (+5), which
// outranks format preference (+2 for the platform's conventional archive
// format, +1 for any other extractable format). Assets missing either the
// OS or the arch token, and skip-listed metadata or source files, are
// excluded (ok=false).
func score(name string, p Platform) (int, bool) {
	lower := strings.ToLower(name)

	for _, suffix := range skipSuffixes {
		if strings.HasSuffix(lower, suffix) {
			return 0, false
		}
	}
	for _, kw := range skipKeywords {
		if strings.Contains(lower, kw) {
			return 0, false
		}
	}

	osMatch := matchesGroup(lower, p.OS, osGroups)
	archMatch := matchesGroup(lower, p.Arch, archGroups)
	if !osMatch || !archMatch {
		return 0, false
	}

	s := 10 + 5
	switch {
	case preferredFormat(lower, p.OS):
		s += 2
	default:
		if _, ok := archive.Classify(lower); ok {
			s++
		}
	}
	return s, true
}

// preferredFormat reports whether the asset uses the conventional archive
// format for the OS: zip on windows, tar.gz elsewhere.
func preferredFormat(nameLower, os string) bool {
	if isInGroup(os, "windows", osGroups) {
		return strings.HasSuffix(nameLower, ".zip")
	}
	return strings.HasSuffix(nameLower, ".tar.gz") || strings.HasSuffix(nameLower, ".tgz")
}

// matchesGroup reports whether the name contains any alias from the group
// the value belongs to. A value outside every known group falls back to a
// direct substring match, so unknown platforms degrade instead of failing.
func matchesGroup(nameLower, value string, groups []aliasGroup) bool {
	if g := groupFor(value, groups); g != nil {
		for _, alias := range g.aliases {
			if strings.Contains(nameLower, alias) {
				return true
			}
		}
		return false
	}
	return strings.Contains(nameLower, strings.ToLower(value))
}

// isInGroup reports whether value belongs to the group with the given
// canonical name.
func isInGroup(value, canonicalName string, groups []aliasGroup) bool {
	g := groupFor(value, groups)
	return g != nil && g.canonical == canonicalName
}

// Select picks the single best-matching asset for the platform. Duplicates
// are scored independently. Among tied top scores the lexically smallest
// name wins, so selection is reproducible across runs.
func Select(p Platform, assets []Asset) (Asset, error) {
	var best Asset
	bestScore := -1
	found := false

	for _, asset := range assets {
		s, ok := score(asset.Name, p)
		if !ok {
			continue
		}
		if s > bestScore || (s == bestScore && asset.Name < best.Name) {
			best = asset
			bestScore = s
			found = true
		}
	}

	if !found {
		names := make([]string, 0, len(assets))
		for _, a := range assets {
			names = append(names, a.Name)
		}
		return Asset{}, &NoMatchError{Platform: p, Assets: names}
	}
	return best, nil
}
