package archive

import "testing"

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		want string
		ok   bool
	}{
		{"tool-1.0-linux-amd64.tar.gz", "tar.gz", true},
		{"tool.tar.bz2", "tar.bz2", true},
		{"tool.tar.xz", "tar.xz", true},
		{"tool.tar.zst", "tar.zst", true},
		{"tool.tar.lz", "tar.lz", true},
		{"tool.tgz", "tar.gz", true},
		{"tool.tbz2", "tar.bz2", true},
		{"tool.txz", "tar.xz", true},
		{"tool.tzst", "tar.zst", true},
		{"tool.tlz", "tar.lz", true},
		{"tool.tar", "tar", true},
		{"tool.zip", "zip", true},
		{"data.csv.gz", "gz", true},
		{"data.bz2", "bz2", true},
		{"data.xz", "xz", true},
		{"data.zst", "zst", true},
		{"data.lz", "lz", true},
		{"binary", "", false},
		{"README.md", "", false},
		{"archive.rar", "", false},
		{"tool.tar.gz.sha256", "", false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			kind, ok := Classify(tt.name)
			if ok != tt.ok {
				t.Fatalf("Classify(%q) ok = %v, want %v", tt.name, ok, tt.ok)
			}
			if ok && kind.String() != tt.want {
				t.Errorf("Classify(%q) = %q, want %q", tt.name, kind.String(), tt.want)
			}
		})
	}
}

// Compound suffixes must win over their trailing single suffix.
func TestClassify_CompoundBeforeSimple(t *testing.T) {
	t.Parallel()

	kind, ok := Classify("app.tar.gz")
	if !ok {
		t.Fatal("expected app.tar.gz to classify")
	}
	if kind.Container != ContainerTar || kind.Compression != CompressionGzip {
		t.Errorf("app.tar.gz classified as %+v, want tar+gzip", kind)
	}

	kind, ok = Classify("app.gz")
	if !ok {
		t.Fatal("expected app.gz to classify")
	}
	if kind.Container != ContainerNone || kind.Compression != CompressionGzip {
		t.Errorf("app.gz classified as %+v, want bare gzip", kind)
	}
}

func TestClassify_CaseInsensitive(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"Tool.TAR.GZ", "TOOL.ZIP", "tool.TgZ"} {
		if _, ok := Classify(name); !ok {
			t.Errorf("Classify(%q) = not recognized, want recognized", name)
		}
	}
}

func TestClassify_URLQueryAndFragment(t *testing.T) {
	t.Parallel()

	kind, ok := Classify("tool.tar.gz?token=abc123")
	if !ok || kind.String() != "tar.gz" {
		t.Errorf("query string broke classification: kind=%v ok=%v", kind, ok)
	}

	kind, ok = Classify("tool.zip#section")
	if !ok || kind.String() != "zip" {
		t.Errorf("fragment broke classification: kind=%v ok=%v", kind, ok)
	}

	if _, ok := Classify("download?format=tar.gz"); ok {
		t.Error("suffix inside the query string should not classify")
	}
}

func TestStripSuffix(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		want string
	}{
		{"data.csv.gz", "data.csv"},
		{"tool.tar.gz", "tool"},
		{"tool.tgz", "tool"},
		{"data.xz?sig=x", "data"},
		{"plain.txt", "plain.txt"},
	}
	for _, tt := range tests {
		if got := StripSuffix(tt.name); got != tt.want {
			t.Errorf("StripSuffix(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}
