// Package archive classifies downloaded files into archive formats and
// unpacks them.
//
// Classification is purely name-based: a file the user renamed away from
// its real format is treated as named, never second-guessed by content
// sniffing.
package archive

import "strings"

// Container identifies the outer archive framing.
type Container int

const (
	// ContainerNone means a bare compressed stream with no framing.
	ContainerNone Container = iota
	// ContainerTar is a tar stream, possibly compressed.
	ContainerTar
	// ContainerZip is a zip file. Zip frames and compresses entries
	// individually, so it carries no separate Compression.
	ContainerZip
)

// Compression identifies the stream compression applied to the container.
type Compression int

const (
	CompressionNone Compression = iota
	CompressionGzip
	CompressionBzip2
	CompressionXz
	CompressionZstd
	CompressionLzip
)

// Kind is a classified archive format: container plus compression.
type Kind struct {
	Container   Container
	Compression Compression
}

// String returns the conventional suffix spelling, e.g. "tar.gz" or "zip".
func (k Kind) String() string {
	switch k.Container {
	case ContainerZip:
		return "zip"
	case ContainerTar:
		if c := k.Compression.String(); c != "" {
			return "tar." + c
		}
		return "tar"
	default:
		return k.Compression.String()
	}
}

func (c Compression) String() string {
	switch c {
	case CompressionGzip:
		return "gz"
	case CompressionBzip2:
		return "bz2"
	case CompressionXz:
		return "xz"
	case CompressionZstd:
		return "zst"
	case CompressionLzip:
		return "lz"
	default:
		return ""
	}
}

// suffixTable maps filename suffixes to kinds. The order is a contract:
// compound suffixes must precede their trailing single suffix, or
// ".tar.gz" would classify as bare ".gz".
var suffixTable = []struct {
	suffix string
	kind   Kind
}{
	{".tar.gz", Kind{ContainerTar, CompressionGzip}},
	{".tar.bz2", Kind{ContainerTar, CompressionBzip2}},
	{".tar.xz", Kind{ContainerTar, CompressionXz}},
	{".tar.zst", Kind{ContainerTar, CompressionZstd}},
	{".tar.lz", Kind{ContainerTar, CompressionLzip}},
	{".tgz", Kind{ContainerTar, CompressionGzip}},
	{".tbz2", Kind{ContainerTar, CompressionBzip2}},
	{".txz", Kind{ContainerTar, CompressionXz}},
	{".tzst", Kind{ContainerTar, CompressionZstd}},
	{".tlz", Kind{ContainerTar, CompressionLzip}},
	{".tar", Kind{ContainerTar, CompressionNone}},
	{".zip", Kind{ContainerZip, CompressionNone}},
	{".gz", Kind{ContainerNone, CompressionGzip}},
	{".bz2", Kind{ContainerNone, CompressionBzip2}},
	{".xz", Kind{ContainerNone, CompressionXz}},
	{".zst", Kind{ContainerNone, CompressionZstd}},
	{".lz", Kind{ContainerNone, CompressionLzip}},
}

// Classify reports the archive kind for a file name or URL path component.
// Matching is case-insensitive; query strings and fragments are ignored.
// ok is false when the name has no recognized archive suffix.
func Classify(name string) (kind Kind, ok bool) {
	lower := strings.ToLower(cleanName(name))
	for _, entry := range suffixTable {
		if strings.HasSuffix(lower, entry.suffix) {
			return entry.kind, true
		}
	}
	return Kind{}, false
}

// StripSuffix returns name without its recognized archive suffix, e.g.
// "data.csv.gz" -> "data.csv". Returns name unchanged when it is not a
// recognized archive.
func StripSuffix(name string) string {
	cleaned := cleanName(name)
	lower := strings.ToLower(cleaned)
	for _, entry := range suffixTable {
		if strings.HasSuffix(lower, entry.suffix) {
			return cleaned[:len(cleaned)-len(entry.suffix)]
		}
	}
	return cleaned
}

// cleanName drops any query string or fragment left over from a URL.
func cleanName(name string) string {
	if idx := strings.IndexAny(name, "?#"); idx != -1 {
		return name[:idx]
	}
	return name
}
