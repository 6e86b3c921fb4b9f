package platform

import (
	"runtime"
	"testing"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		rawOS    string
		rawArch  string
		wantOS   string
		wantArch string
	}{
		{"linux", "amd64", "linux", "amd64"},
		{"darwin", "x86_64", "macos", "amd64"},
		{"osx", "aarch64", "macos", "arm64"},
		{"apple", "arm64", "macos", "arm64"},
		{"win64", "x64", "windows", "amd64"},
		{"msvc", "x86-64", "windows", "amd64"},
		{"Windows", "AMD64", "windows", "amd64"},
		{" macos ", "arm64", "macos", "arm64"},
		// Unknown tokens pass through lowercased.
		{"freebsd", "riscv64", "freebsd", "riscv64"},
	}

	for _, tt := range tests {
		got := Normalize(tt.rawOS, tt.rawArch)
		if got.OS != tt.wantOS || got.Arch != tt.wantArch {
			t.Errorf("Normalize(%q, %q) = %v, want %s/%s",
				tt.rawOS, tt.rawArch, got, tt.wantOS, tt.wantArch)
		}
	}
}

// Each override is independent: setting only the arch must not disturb
// OS detection, and the other way round.
func TestNormalize_IndependentFallback(t *testing.T) {
	t.Parallel()

	host := Detect()

	got := Normalize("", "arm64")
	if got.OS != host.OS {
		t.Errorf("OS = %q, want host OS %q", got.OS, host.OS)
	}
	if got.Arch != "arm64" {
		t.Errorf("Arch = %q, want arm64", got.Arch)
	}

	got = Normalize("windows", "")
	if got.OS != "windows" {
		t.Errorf("OS = %q, want windows", got.OS)
	}
	if got.Arch != host.Arch {
		t.Errorf("Arch = %q, want host arch %q", got.Arch, host.Arch)
	}
}

func TestDetect(t *testing.T) {
	t.Parallel()

	p := Detect()
	if p.OS == "" || p.Arch == "" {
		t.Fatalf("Detect() = %v, want non-empty fields", p)
	}
	if runtime.GOOS == "darwin" && p.OS != "macos" {
		t.Errorf("OS = %q on darwin host, want macos", p.OS)
	}
	if runtime.GOARCH == "amd64" && p.Arch != "amd64" {
		t.Errorf("Arch = %q on amd64 host, want amd64", p.Arch)
	}
}

func TestPlatformString(t *testing.T) {
	t.Parallel()

	p := Platform{OS: "linux", Arch: "arm64"}
	if got := p.String(); got != "linux/arm64" {
		t.Errorf("String() = %q, want linux/arm64", got)
	}
}
