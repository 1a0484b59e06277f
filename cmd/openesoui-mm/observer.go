// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"io"
	"io/fs"

	"github.com/DamianRyse/OpenEsoUI-MM/internal/esoui"
	"github.com/DamianRyse/OpenEsoUI-MM/internal/issue"
	"github.com/DamianRyse/OpenEsoUI-MM/internal/pipeline"
	"github.com/DamianRyse/OpenEsoUI-MM/internal/unpack"
)

// consoleObserver prints pipeline progress in the classic openesoui-mm layout.
type consoleObserver struct {
	out        io.Writer
	errOut     io.Writer
	verbose    bool
	guideStyle string
}

func (o *consoleObserver) AddonResolved(a esoui.Addon) {
	fmt.Fprintln(o.out, TitleStyle.Render(fmt.Sprintf("## %s (ID: %s)", a.DisplayName(), a.ID)))
	fmt.Fprintf(o.out, "AddOn version: %s\n", a.AddonVersion)
}

func (o *consoleObserver) ArchiveRetrieved(_ esoui.Addon, dl *esoui.Download) {
	fmt.Fprintf(o.out, "  - Downloading %s...\n", dl.Filename)
	fmt.Fprintln(o.out, "  - Extracting...")
}

func (o *consoleObserver) AddonFinished(r pipeline.Result) {
	switch r.Status {
	case pipeline.StatusNoDownload:
		fmt.Fprintln(o.out, "  No download URL found.")
	case pipeline.StatusFailed:
		o.printFailure(r)
	}
	fmt.Fprintln(o.out)
}

func (o *consoleObserver) printFailure(r pipeline.Result) {
	id, hint := classifyFailure(r.Err)

	ctx := issue.NewErrorContext().
		WithOperation("install addon " + r.Addon.ID.String()).
		WithResource(r.Addon.DownloadURL).
		Wrap(r.Err)
	if hint != "" {
		ctx = ctx.WithSuggestion(hint)
	}
	fmt.Fprintln(o.errOut, ErrorStyle.Render("  ✗ ")+ctx.Build().Format(o.verbose))

	if !o.verbose || id == 0 {
		return
	}
	guide, err := issue.Get(id).Render(o.guideStyle)
	if err != nil {
		return
	}
	fmt.Fprint(o.errOut, guide)
}

// classifyFailure maps a per-addon error to its troubleshooting guide and a
// one-line hint. It returns id 0 for errors without a guide.
func classifyFailure(err error) (issue.Id, string) {
	switch {
	case errors.Is(err, unpack.ErrPathEscape):
		return issue.PathEscapeId, "The archive was rejected and nothing was extracted; report it to the addon author"
	case errors.Is(err, unpack.ErrCorruptArchive):
		return issue.CorruptArchiveId, "Retry later; the download may have been cut off or replaced by an error page"
	case errors.Is(err, esoui.ErrDownload):
		return issue.DownloadFailedId, "Check that the addon still exists on esoui.com"
	case errors.Is(err, esoui.ErrNetwork):
		return issue.SiteUnreachableId, "Check your internet connection and retry"
	case errors.Is(err, fs.ErrPermission):
		return issue.PermissionDeniedId, "Make sure the AddOns directory is writable and the game is not running"
	default:
		return 0, ""
	}
}
