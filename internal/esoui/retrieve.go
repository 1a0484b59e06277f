// SPDX-License-Identifier: MPL-2.0

package esoui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ErrDownload is the sentinel wrapped by DownloadError.
var ErrDownload = errors.New("download failed")

type (
	// DownloadError is returned when the archive URL answers with a non-2xx
	// status. Unlike the metadata pages, this is fatal for the addon.
	DownloadError struct {
		URL        string
		StatusCode int
	}

	// Download is an archive streamed to a private temp directory. Call Remove
	// once the archive has been extracted (or extraction failed).
	Download struct {
		// Filename is the name taken from Content-Disposition or the file<id>.zip fallback.
		Filename string
		// Path is the absolute path of the archive on disk.
		Path string
		// Size is the number of bytes written.
		Size int64

		dir string
	}

	// recordingReader remembers the first non-EOF read error so a failed copy
	// can be attributed to the network rather than the disk.
	recordingReader struct {
		r   io.Reader
		err error
	}
)

func (e *DownloadError) Error() string {
	return fmt.Sprintf("downloading %s: unexpected status %d", e.URL, e.StatusCode)
}

// Unwrap returns ErrDownload for errors.Is() compatibility.
func (e *DownloadError) Unwrap() error { return ErrDownload }

// Remove deletes the archive and its private directory. It is safe to call on
// a nil Download and more than once.
func (d *Download) Remove() error {
	if d == nil || d.dir == "" {
		return nil
	}
	if err := os.RemoveAll(d.dir); err != nil {
		return fmt.Errorf("removing temp download %s: %w", d.dir, err)
	}
	d.dir = ""
	return nil
}

func (r *recordingReader) Read(p []byte) (int, error) {
	n, err := r.r.Read(p)
	if err != nil && !errors.Is(err, io.EOF) && r.err == nil {
		r.err = err
	}
	return n, err
}

// Retrieve streams the archive at a.DownloadURL into a uniquely named
// directory under the temp location. It returns (nil, nil) without touching
// the network when a.DownloadURL is empty.
//
// The file is synced and closed before Retrieve returns. On any error the
// partial download is removed; on success the caller owns the Download and
// must call Remove.
func (c *Client) Retrieve(ctx context.Context, a Addon) (_ *Download, err error) {
	if a.DownloadURL == "" {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(ctx, c.downloadTimeout)
	defer cancel()

	resp, err := c.doRequest(ctx, a.DownloadURL)
	if err != nil {
		return nil, &NetworkError{URL: a.DownloadURL, Err: err}
	}
	defer func() { _ = resp.Body.Close() }() // read-only response body

	if !isSuccess(resp.StatusCode) {
		return nil, &DownloadError{URL: a.DownloadURL, StatusCode: resp.StatusCode}
	}

	name := filenameFromDisposition(resp.Header.Get("Content-Disposition"))
	if name == "" {
		name = fallbackFilename(a.ID)
	}

	dir, err := os.MkdirTemp(c.tempDir, "openesoui-mm-*")
	if err != nil {
		return nil, fmt.Errorf("creating temp directory: %w", err)
	}
	dl := &Download{Filename: name, Path: filepath.Join(dir, name), dir: dir}
	defer func() {
		if err != nil {
			_ = dl.Remove() // best-effort removal of the partial download
		}
	}()

	c.logger.Debug("downloading archive", "addon", a.ID, "url", a.DownloadURL, "file", dl.Path)

	dl.Size, err = writeBody(dl.Path, resp.Body, a.DownloadURL)
	if err != nil {
		return nil, err
	}
	return dl, nil
}

// writeBody copies body into a new file at path and flushes it to disk before
// closing. Read failures surface as NetworkError, write failures as plain
// wrapped filesystem errors.
func writeBody(path string, body io.Reader, srcURL string) (n int64, err error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("creating %s: %w", path, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("closing %s: %w", path, closeErr)
		}
	}()

	rr := &recordingReader{r: body}
	n, err = io.Copy(f, rr)
	if err != nil {
		if rr.err != nil {
			return n, &NetworkError{URL: srcURL, Err: fmt.Errorf("reading body: %w", rr.err)}
		}
		return n, fmt.Errorf("writing %s: %w", path, err)
	}

	if err := f.Sync(); err != nil {
		return n, fmt.Errorf("syncing %s: %w", path, err)
	}
	return n, nil
}

// filenameFromDisposition returns the filename= parameter of a
// Content-Disposition header with surrounding quotes removed, reduced to its
// base name. It returns "" when the header carries no usable name.
func filenameFromDisposition(header string) string {
	for _, part := range strings.Split(header, ";") {
		part = strings.TrimSpace(part)
		value, ok := strings.CutPrefix(part, "filename=")
		if !ok {
			continue
		}
		name := strings.Trim(value, `"`)
		// A header must not be able to point outside the temp directory.
		name = filepath.Base(filepath.FromSlash(strings.ReplaceAll(name, `\`, "/")))
		if name == "." || name == ".." || name == string(filepath.Separator) {
			return ""
		}
		return name
	}
	return ""
}

func fallbackFilename(id AddonID) string {
	return fmt.Sprintf("file%d.zip", id)
}
