// Package fs provides the filesystem abstraction behind the task store.
//
// Two implementations are provided:
//   - [Real]: production implementation using the [os] package and atomic
//     file replacement
//   - [Flaky]: testing implementation that fails selected operations, used to
//     simulate crashes between temp-file write and rename
package fs

import "os"

// FS defines the filesystem operations the task store needs.
type FS interface {
	// ReadFile reads an entire file into memory. See [os.ReadFile].
	ReadFile(path string) ([]byte, error)

	// WriteFileAtomic writes data to a file atomically: the full content goes
	// to a temporary file in the same directory, which is then renamed onto
	// path. A crash between write and rename leaves the previous content of
	// path intact; no partial file is ever visible at path.
	WriteFileAtomic(path string, data []byte, perm os.FileMode) error

	// Exists reports whether a file or directory exists.
	// Returns (false, nil) if not found, (false, err) on other errors.
	Exists(path string) (bool, error)
}
