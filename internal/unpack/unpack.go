// SPDX-License-Identifier: MPL-2.0

package unpack

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"
)

const (
	dirPerm  fs.FileMode = 0o755
	filePerm fs.FileMode = 0o644
)

type (
	// plannedEntry is an archive entry that passed the path check, together
	// with its absolute output path.
	plannedEntry struct {
		file  *zip.File
		name  string
		dest  string
		isDir bool
	}

	// sourceReader remembers the first non-EOF read error so a failed copy can
	// be attributed to the archive rather than the destination file.
	sourceReader struct {
		r   io.Reader
		err error
	}
)

func (s *sourceReader) Read(p []byte) (int, error) {
	n, err := s.r.Read(p)
	if err != nil && !errors.Is(err, io.EOF) && s.err == nil {
		s.err = err
	}
	return n, err
}

// Extract materializes every entry of the zip archive at archivePath under
// targetRoot and returns the number of entries written (directories and
// files). targetRoot must already exist.
//
// If any entry would resolve outside targetRoot, Extract returns a
// *PathEscapeError and writes nothing. Existing files are overwritten; files
// not present in the archive are left untouched.
func Extract(archivePath, targetRoot string) (n int, err error) {
	root, err := filepath.Abs(targetRoot)
	if err != nil {
		return 0, &FilesystemError{Entry: targetRoot, Op: "resolve", Err: err}
	}

	zr, err := zip.OpenReader(archivePath)
	// ErrInsecurePath still yields a usable reader; the plan below applies a
	// stricter check of its own.
	if err != nil && !errors.Is(err, zip.ErrInsecurePath) {
		return 0, &CorruptArchiveError{Path: archivePath, Err: err}
	}
	defer func() {
		if closeErr := zr.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("closing %s: %w", archivePath, closeErr)
		}
	}()

	plan, err := planEntries(zr.File, root)
	if err != nil {
		return 0, err
	}

	// Directory modes are applied last so a read-only directory does not
	// block writing its children.
	var dirModes []plannedEntry
	for _, e := range plan {
		if e.isDir {
			if err := os.MkdirAll(e.dest, dirPerm); err != nil {
				return n, &FilesystemError{Entry: e.name, Op: "mkdir", Err: err}
			}
			dirModes = append(dirModes, e)
		} else {
			if err := writeFile(archivePath, e); err != nil {
				return n, err
			}
		}
		n++
	}

	for _, e := range slices.Backward(dirModes) {
		if err := applyMode(e); err != nil {
			return n, err
		}
	}
	return n, nil
}

// planEntries maps every entry to its output path without touching the
// filesystem. Entries whose name is empty or resolves to the root itself
// ("./", "a/..") are skipped so they can never change the root's mode.
func planEntries(files []*zip.File, root string) ([]plannedEntry, error) {
	plan := make([]plannedEntry, 0, len(files))
	for _, f := range files {
		name := strings.ReplaceAll(f.Name, `\`, "/")
		if name == "" || path.Clean(name) == "." {
			continue
		}
		dest, ok := resolveInside(root, name)
		if !ok {
			return nil, &PathEscapeError{Entry: f.Name}
		}
		plan = append(plan, plannedEntry{
			file:  f,
			name:  f.Name,
			dest:  dest,
			isDir: strings.HasSuffix(name, "/") || f.FileInfo().IsDir(),
		})
	}
	return plan, nil
}

// resolveInside joins the slash-separated entry name onto root. It rejects
// absolute names, names carrying a volume, and any name whose ".." segments
// climb above root at some point, even if later segments come back down.
func resolveInside(root, name string) (string, bool) {
	if strings.HasPrefix(name, "/") || filepath.IsAbs(name) || filepath.VolumeName(filepath.FromSlash(name)) != "" {
		return "", false
	}
	depth := 0
	for _, seg := range strings.Split(name, "/") {
		switch seg {
		case "", ".":
		case "..":
			if depth == 0 {
				return "", false
			}
			depth--
		default:
			depth++
		}
	}
	return filepath.Join(root, filepath.FromSlash(name)), true
}

func writeFile(archivePath string, e plannedEntry) (err error) {
	if err := os.MkdirAll(filepath.Dir(e.dest), dirPerm); err != nil {
		return &FilesystemError{Entry: e.name, Op: "mkdir", Err: err}
	}

	rc, err := e.file.Open()
	if err != nil {
		return &CorruptArchiveError{Path: archivePath, Entry: e.name, Err: err}
	}
	defer func() { _ = rc.Close() }() // read-only entry stream

	out, err := os.OpenFile(e.dest, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, filePerm)
	if err != nil {
		return &FilesystemError{Entry: e.name, Op: "create", Err: err}
	}
	defer func() {
		if closeErr := out.Close(); closeErr != nil && err == nil {
			err = &FilesystemError{Entry: e.name, Op: "close", Err: closeErr}
		}
	}()

	if e.file.UncompressedSize64 >= math.MaxInt64 {
		return &CorruptArchiveError{Path: archivePath, Entry: e.name, Err: zip.ErrFormat}
	}
	declared := int64(e.file.UncompressedSize64)

	// Reading one byte past the declared size lets the zip reader hit EOF and
	// verify the checksum while still bounding what a lying header can write.
	src := &sourceReader{r: io.LimitReader(rc, declared+1)}
	written, err := io.Copy(out, src)
	if err != nil {
		if src.err != nil {
			return &CorruptArchiveError{Path: archivePath, Entry: e.name, Err: src.err}
		}
		return &FilesystemError{Entry: e.name, Op: "write", Err: err}
	}
	if written > declared {
		return &CorruptArchiveError{Path: archivePath, Entry: e.name, Err: zip.ErrFormat}
	}

	return applyMode(e)
}

func applyMode(e plannedEntry) error {
	mode, ok := posixMode(e.file)
	if !ok {
		return nil
	}
	if err := os.Chmod(e.dest, mode); err != nil {
		return &FilesystemError{Entry: e.name, Op: "chmod", Err: err}
	}
	return nil
}
