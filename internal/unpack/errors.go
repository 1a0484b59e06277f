// SPDX-License-Identifier: MPL-2.0

package unpack

import (
	"errors"
	"fmt"
)

var (
	// ErrCorruptArchive is the sentinel wrapped by CorruptArchiveError.
	ErrCorruptArchive = errors.New("corrupt archive")

	// ErrPathEscape is the sentinel wrapped by PathEscapeError.
	ErrPathEscape = errors.New("archive entry escapes target directory")

	// ErrFilesystem is the sentinel wrapped by FilesystemError.
	ErrFilesystem = errors.New("filesystem error")
)

type (
	// CorruptArchiveError is returned when the file cannot be opened or parsed
	// as a zip container, or an entry's data cannot be decompressed.
	CorruptArchiveError struct {
		Path  string
		Entry string // empty when the container itself is unreadable
		Err   error
	}

	// PathEscapeError is returned when an entry name would resolve outside the
	// target directory (zip-slip).
	PathEscapeError struct {
		Entry string
	}

	// FilesystemError is returned when creating a directory or writing a file
	// fails. Op names the failed step ("mkdir", "create", "write", "chmod").
	FilesystemError struct {
		Entry string
		Op    string
		Err   error
	}
)

func (e *CorruptArchiveError) Error() string {
	if e.Entry != "" {
		return fmt.Sprintf("corrupt archive %s: entry %q: %v", e.Path, e.Entry, e.Err)
	}
	return fmt.Sprintf("corrupt archive %s: %v", e.Path, e.Err)
}

// Unwrap returns ErrCorruptArchive and the underlying zip error.
func (e *CorruptArchiveError) Unwrap() []error { return []error{ErrCorruptArchive, e.Err} }

func (e *PathEscapeError) Error() string {
	return fmt.Sprintf("archive entry %q resolves outside the target directory", e.Entry)
}

// Unwrap returns ErrPathEscape for errors.Is() compatibility.
func (e *PathEscapeError) Unwrap() error { return ErrPathEscape }

func (e *FilesystemError) Error() string {
	return fmt.Sprintf("%s %q: %v", e.Op, e.Entry, e.Err)
}

// Unwrap returns ErrFilesystem and the underlying error, so both
// errors.Is(err, ErrFilesystem) and errors.Is(err, fs.ErrPermission) work.
func (e *FilesystemError) Unwrap() []error { return []error{ErrFilesystem, e.Err} }
