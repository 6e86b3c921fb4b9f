// Package platform maps raw OS/architecture spellings onto a canonical
// vocabulary and selects the best-matching release asset for a target.
package platform

import (
	"runtime"
	"strings"
)

// Platform is the canonical operating system and architecture pair used
// for asset matching, independent of how the raw values were spelled.
type Platform struct {
	OS   string
	Arch string
}

func (p Platform) String() string {
	return p.OS + "/" + p.Arch
}

// aliasGroup ties a canonical name to the spellings seen in release asset
// names. Groups are ordered slices rather than maps so matching walks them
// in a fixed order.
type aliasGroup struct {
	canonical string
	aliases   []string
}

var osGroups = []aliasGroup{
	{"linux", []string{"linux"}},
	{"macos", []string{"macos", "darwin", "osx", "apple"}},
	{"windows", []string{"windows", "win64", "win32", "win", "msvc", "pc-windows"}},
}

var archGroups = []aliasGroup{
	{"amd64", []string{"amd64", "x86_64", "x86-64", "x64"}},
	{"arm64", []string{"arm64", "aarch64"}},
}

// Detect returns the canonical platform of the running host.
func Detect() Platform {
	return Platform{
		OS:   canonical(runtime.GOOS, osGroups),
		Arch: canonical(runtime.GOARCH, archGroups),
	}
}

// Normalize maps raw os/arch spellings to canonical names. An empty input
// falls back to host introspection, each field independently, so
// overriding the architecture never disturbs OS detection. Unknown tokens
// pass through verbatim and matching degrades to substring comparison.
func Normalize(rawOS, rawArch string) Platform {
	p := Platform{}
	if rawOS == "" {
		p.OS = canonical(runtime.GOOS, osGroups)
	} else {
		p.OS = canonical(rawOS, osGroups)
	}
	if rawArch == "" {
		p.Arch = canonical(runtime.GOARCH, archGroups)
	} else {
		p.Arch = canonical(rawArch, archGroups)
	}
	return p
}

// canonical returns the canonical name for a raw token, or the lowercased
// token itself when it belongs to no known group.
func canonical(raw string, groups []aliasGroup) string {
	lower := strings.ToLower(strings.TrimSpace(raw))
	for _, g := range groups {
		if g.canonical == lower {
			return g.canonical
		}
		for _, a := range g.aliases {
			if a == lower {
				return g.canonical
			}
		}
	}
	return lower
}

// groupFor returns the alias group a value belongs to, or nil.
func groupFor(value string, groups []aliasGroup) *aliasGroup {
	lower := strings.ToLower(value)
	for i, g := range groups {
		if g.canonical == lower {
			return &groups[i]
		}
		for _, a := range g.aliases {
			if a == lower {
				return &groups[i]
			}
		}
	}
	return nil
}
