package archive

import "fmt"

// ErrorKind classifies extraction failures.
type ErrorKind int

const (
	// ErrCorrupt means a decoder rejected the stream as malformed.
	ErrCorrupt ErrorKind = iota

	// ErrPathTraversal means an archive entry tried to write outside the
	// destination directory. The archive is rejected, never partially
	// honored past the offending entry.
	ErrPathTraversal

	// ErrIO means a filesystem failure (disk full, permission denied).
	ErrIO
)

// Error is a classified extraction failure. None of these are retried:
// a corrupt stream stays corrupt, and transient I/O is the download
// layer's concern.
type Error struct {
	Kind  ErrorKind
	Entry string // offending archive entry, when known
	Err   error
}

func (e *Error) Error() string {
	switch e.Kind {
	case ErrPathTraversal:
		// Security-relevant: make clear the archive was rejected, not
		// that extraction merely hit an I/O problem.
		if e.Err != nil {
			return fmt.Sprintf("security: archive entry %q escapes the destination directory, refusing to extract: %v", e.Entry, e.Err)
		}
		return fmt.Sprintf("security: archive entry %q escapes the destination directory, refusing to extract", e.Entry)
	case ErrCorrupt:
		return fmt.Sprintf("archive is corrupt or not in the expected format: %v", e.Err)
	default:
		if e.Entry != "" {
			return fmt.Sprintf("extraction failed at %q: %v", e.Entry, e.Err)
		}
		return fmt.Sprintf("extraction failed: %v", e.Err)
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

func corruptErr(err error) error {
	return &Error{Kind: ErrCorrupt, Err: err}
}

func traversalErr(entry string) error {
	return &Error{Kind: ErrPathTraversal, Entry: entry}
}

func ioErr(entry string, err error) error {
	return &Error{Kind: ErrIO, Entry: entry, Err: err}
}
