package fs

import (
	"errors"
	iofs "io/fs"
	"os"
	"syscall"
)

// PartialSuffix is appended to the target path when [Flaky] simulates a
// crash: the serialized content lands in a stray temp file and the rename
// onto the target never happens.
const PartialSuffix = ".partial"

// Flaky wraps an [FS] and fails selected operations deterministically.
//
// All injected errors are real OS errors (a syscall.Errno inside an
// *io/fs.PathError) wrapped in [InjectedError], so code using errors.Is
// behaves exactly as it would against the real filesystem.
// The zero value with a non-nil FS passes everything through.
type Flaky struct {
	FS

	// FailWrites makes WriteFileAtomic write the full content to
	// path+PartialSuffix and fail with EIO before any rename, simulating a
	// crash between temp-file write and atomic replace.
	FailWrites bool

	// FailReads makes ReadFile fail with EACCES, simulating permission
	// denial while reading.
	FailReads bool

	// WriteFails counts injected write failures.
	WriteFails int
}

func (f *Flaky) ReadFile(path string) ([]byte, error) {
	if f.FailReads {
		return nil, inject(&iofs.PathError{Op: "open", Path: path, Err: syscall.EACCES})
	}

	return f.FS.ReadFile(path)
}

func (f *Flaky) WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	if f.FailWrites {
		f.WriteFails++

		// The temp file makes it to disk; the rename never happens.
		_ = f.FS.WriteFileAtomic(path+PartialSuffix, data, perm)

		return inject(&iofs.PathError{Op: "rename", Path: path, Err: syscall.EIO})
	}

	return f.FS.WriteFileAtomic(path, data, perm)
}

// InjectedError marks an error as intentionally injected by [Flaky].
// It wraps the underlying error so errors.Is/As continue to work.
type InjectedError struct {
	Err error
}

// Error returns the underlying error's message.
func (e *InjectedError) Error() string {
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *InjectedError) Unwrap() error {
	return e.Err
}

// IsInjected reports whether err (or any wrapped error) was injected.
// Returns false if err is nil.
func IsInjected(err error) bool {
	if err == nil {
		return false
	}

	var injected *InjectedError

	return errors.As(err, &injected)
}

func inject(err error) error {
	return &InjectedError{Err: err}
}

// Compile-time interface check.
var _ FS = (*Flaky)(nil)
