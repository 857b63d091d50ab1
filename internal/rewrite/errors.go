package rewrite

import "fmt"

// ErrorKind distinguishes the failure classes a file rewrite can produce.
type ErrorKind int

const (
	// ErrorKindIO covers filesystem failures: unreadable, unwritable, or
	// missing paths.
	ErrorKindIO ErrorKind = iota
	// ErrorKindEncoding covers file content that is not valid UTF-8.
	ErrorKindEncoding
)

// String returns the human-readable name of the error kind.
func (kind ErrorKind) String() string {
	switch kind {
	case ErrorKindEncoding:
		return "encoding error"
	default:
		return "io error"
	}
}

// FileError reports a failure while rewriting a single file. It carries the
// affected path and the failure kind so that callers can report partial runs
// programmatically.
type FileError struct {
	Path string
	Kind ErrorKind
	Err  error
}

// Error formats the failure with its kind and path.
func (fileError *FileError) Error() string {
	return fmt.Sprintf("%s: %s: %v", fileError.Kind, fileError.Path, fileError.Err)
}

// Unwrap exposes the underlying cause.
func (fileError *FileError) Unwrap() error {
	return fileError.Err
}

// newIOError wraps a filesystem failure for the given path.
func newIOError(path string, cause error) *FileError {
	return &FileError{Path: path, Kind: ErrorKindIO, Err: cause}
}

// newEncodingError wraps an encoding failure for the given path.
func newEncodingError(path string, cause error) *FileError {
	return &FileError{Path: path, Kind: ErrorKindEncoding, Err: cause}
}
