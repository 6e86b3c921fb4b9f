// Package buildinfo derives the dex version string from Go build metadata.
package buildinfo

import "runtime/debug"

// Version returns the version for the current build: the module version for
// tagged releases installed via go install, "dev-<hash>" (optionally with a
// "-dirty" suffix) for builds from a checkout, or "dev" when no VCS
// information is embedded.
func Version() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "unknown"
	}

	if info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}

	var revision string
	var modified bool
	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			revision = setting.Value
		case "vcs.modified":
			modified = setting.Value == "true"
		}
	}

	if revision == "" {
		return "dev"
	}
	if len(revision) > 12 {
		revision = revision[:12]
	}
	v := "dev-" + revision
	if modified {
		v += "-dirty"
	}
	return v
}
