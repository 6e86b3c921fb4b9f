package archive

import (
	"archive/tar"
	"archive/zip"
	"compress/bzip2"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/klauspost/compress/zstd"
	lzip "github.com/sorairolake/lzip-go"
	"github.com/ulikunitz/xz"
)

// Plan describes a single extraction: the archive on disk, its classified
// kind, and the destination directory. Consumed once per invocation.
type Plan struct {
	Path string
	Kind Kind
	Dest string
}

// Manifest records the relative paths written by one extraction. It feeds
// the user-facing summary only; it is not a durable index.
type Manifest struct {
	paths []string
}

func (m *Manifest) add(rel string) {
	m.paths = append(m.paths, rel)
}

// Paths returns all written paths, sorted.
func (m *Manifest) Paths() []string {
	out := make([]string, len(m.paths))
	copy(out, m.paths)
	sort.Strings(out)
	return out
}

// TopLevel returns the sorted unique first path components of everything
// written.
func (m *Manifest) TopLevel() []string {
	seen := make(map[string]bool)
	var out []string
	for _, p := range m.paths {
		top := p
		if idx := strings.IndexByte(p, filepath.Separator); idx != -1 {
			top = p[:idx]
		}
		if !seen[top] {
			seen[top] = true
			out = append(out, top)
		}
	}
	sort.Strings(out)
	return out
}

// Extract unpacks the archive described by plan into plan.Dest, creating
// the destination as needed. Entries are written in archive order.
// The caller decides what happens to the original archive afterwards.
func Extract(plan Plan) (*Manifest, error) {
	if err := os.MkdirAll(plan.Dest, 0755); err != nil {
		return nil, ioErr("", err)
	}

	m := &Manifest{}
	switch plan.Kind.Container {
	case ContainerZip:
		if err := extractZip(plan.Path, plan.Dest, m); err != nil {
			return nil, err
		}
	case ContainerTar:
		if err := extractTarFile(plan.Path, plan.Kind.Compression, plan.Dest, m); err != nil {
			return nil, err
		}
	default:
		if err := extractRaw(plan.Path, plan.Kind.Compression, plan.Dest, m); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// newDecompressor wraps r in the decoder for c. The returned closer is
// non-nil only when the decoder holds resources.
func newDecompressor(r io.Reader, c Compression) (io.Reader, func(), error) {
	switch c {
	case CompressionNone:
		return r, nil, nil
	case CompressionGzip:
		gzr, err := gzip.NewReader(r)
		if err != nil {
			return nil, nil, corruptErr(err)
		}
		return gzr, func() { gzr.Close() }, nil
	case CompressionBzip2:
		return bzip2.NewReader(r), nil, nil
	case CompressionXz:
		xzr, err := xz.NewReader(r)
		if err != nil {
			return nil, nil, corruptErr(err)
		}
		return xzr, nil, nil
	case CompressionZstd:
		zr, err := zstd.NewReader(r)
		if err != nil {
			return nil, nil, corruptErr(err)
		}
		return zr, zr.Close, nil
	case CompressionLzip:
		lr, err := lzip.NewReader(r)
		if err != nil {
			return nil, nil, corruptErr(err)
		}
		return lr, nil, nil
	default:
		return nil, nil, corruptErr(fmt.Errorf("unsupported compression %d", c))
	}
}

func extractTarFile(path string, c Compression, dest string, m *Manifest) error {
	file, err := os.Open(path)
	if err != nil {
		return ioErr("", err)
	}
	defer file.Close()

	r, closer, err := newDecompressor(file, c)
	if err != nil {
		return err
	}
	if closer != nil {
		defer closer()
	}

	return extractTar(tar.NewReader(r), dest, m)
}

func extractTar(tr *tar.Reader, dest string, m *Manifest) error {
	for {
		header, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return corruptErr(err)
		}

		rel := filepath.FromSlash(strings.TrimPrefix(header.Name, "./"))
		if rel == "" || rel == "." {
			continue
		}
		target := filepath.Join(dest, rel)

		// SECURITY: reject absolute entry names and anything that would
		// land outside dest.
		if filepath.IsAbs(rel) || !withinDir(target, dest) {
			return traversalErr(header.Name)
		}

		switch header.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, 0755); err != nil {
				return ioErr(header.Name, err)
			}
			m.add(rel)

		case tar.TypeReg:
			if err := writeEntry(target, tr, os.FileMode(header.Mode)); err != nil {
				return wrapEntryErr(header.Name, err)
			}
			m.add(rel)

		case tar.TypeSymlink:
			// SECURITY: a symlink target outside dest is rejected like a
			// traversing entry path.
			if !symlinkWithinDir(header.Linkname, target, dest) {
				return traversalErr(header.Name)
			}
			if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
				return ioErr(header.Name, err)
			}
			if err := replaceSymlink(header.Linkname, target); err != nil {
				return ioErr(header.Name, err)
			}
			m.add(rel)
		}
	}
	return nil
}

func extractZip(path, dest string, m *Manifest) error {
	r, err := zip.OpenReader(path)
	if err != nil {
		if errors.Is(err, zip.ErrFormat) {
			return corruptErr(err)
		}
		return ioErr("", err)
	}
	defer r.Close()

	for _, f := range r.File {
		rel := filepath.FromSlash(strings.TrimPrefix(f.Name, "./"))
		if rel == "" || rel == "." {
			continue
		}
		target := filepath.Join(dest, rel)

		// SECURITY: same traversal guard as tar. filepath.IsAbs catches
		// absolute entry names before Join can mangle them.
		if filepath.IsAbs(f.Name) || !withinDir(target, dest) {
			return traversalErr(f.Name)
		}

		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0755); err != nil {
				return ioErr(f.Name, err)
			}
			m.add(rel)
			continue
		}

		rc, err := f.Open()
		if err != nil {
			return corruptErr(err)
		}
		err = writeEntry(target, rc, f.Mode())
		rc.Close()
		if err != nil {
			return wrapEntryErr(f.Name, err)
		}
		m.add(rel)
	}
	return nil
}

// extractRaw decodes a single compressed stream into one output file whose
// name is the input name minus the compression suffix.
func extractRaw(path string, c Compression, dest string, m *Manifest) error {
	name := StripSuffix(filepath.Base(path))
	if name == "" || name == filepath.Base(path) {
		name = "decompressed"
	}

	file, err := os.Open(path)
	if err != nil {
		return ioErr("", err)
	}
	defer file.Close()

	r, closer, err := newDecompressor(file, c)
	if err != nil {
		return err
	}
	if closer != nil {
		defer closer()
	}

	if err := writeEntry(filepath.Join(dest, name), r, 0644); err != nil {
		return wrapEntryErr(name, err)
	}
	m.add(name)
	return nil
}

// writeEntry streams src into a newly created file at target, creating
// parent directories as needed.
func writeEntry(target string, src io.Reader, mode os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return err
	}
	f, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode.Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, src); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// wrapEntryErr classifies an error from writeEntry: filesystem errors
// surface as *fs.PathError, anything else came from the decode stream.
func wrapEntryErr(entry string, err error) error {
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		return ioErr(entry, err)
	}
	return corruptErr(err)
}

// withinDir reports whether target is contained in base. The trailing
// separator check prevents /tmp/foo from matching /tmp/foobar.
func withinDir(target, base string) bool {
	absTarget, err := filepath.Abs(target)
	if err != nil {
		return false
	}
	absBase, err := filepath.Abs(base)
	if err != nil {
		return false
	}
	return absTarget == absBase || strings.HasPrefix(absTarget, absBase+string(os.PathSeparator))
}

// symlinkWithinDir reports whether a symlink at location pointing at target
// stays inside dest. Absolute targets are always rejected.
func symlinkWithinDir(target, location, dest string) bool {
	if filepath.IsAbs(target) {
		return false
	}
	resolved := filepath.Join(filepath.Dir(location), target)
	return withinDir(resolved, dest)
}

// replaceSymlink creates a symlink via rename so an existing path is
// replaced atomically.
func replaceSymlink(target, linkPath string) error {
	tmp := linkPath + ".tmp"
	os.Remove(tmp)
	if err := os.Symlink(target, tmp); err != nil {
		return err
	}
	if err := os.Rename(tmp, linkPath); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}
