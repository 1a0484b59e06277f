// SPDX-License-Identifier: MPL-2.0

package unpack

import (
	"archive/zip"
	"io/fs"
	"runtime"
)

// Creator host values from the upper byte of the zip "version made by" field.
const (
	creatorUnix   = 3
	creatorMacOSX = 19
)

// supportsPOSIXModes is false on Windows, where chmod only toggles the
// read-only attribute.
var supportsPOSIXModes = runtime.GOOS != "windows"

// posixMode returns the permission bits recorded for f, if the archive was
// written on a Unix-like host and the platform can apply them.
func posixMode(f *zip.File) (fs.FileMode, bool) {
	if !supportsPOSIXModes {
		return 0, false
	}
	switch f.CreatorVersion >> 8 {
	case creatorUnix, creatorMacOSX:
	default:
		return 0, false
	}
	if f.ExternalAttrs>>16 == 0 {
		return 0, false
	}
	return f.Mode().Perm(), true
}
