// SPDX-License-Identifier: MPL-2.0

package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/DamianRyse/OpenEsoUI-MM/internal/esoui"
	"github.com/DamianRyse/OpenEsoUI-MM/internal/unpack"
)

type (
	// Resolver fills addon metadata from the info and download pages. Both
	// calls degrade to returning their input unchanged.
	Resolver interface {
		ResolveInfo(ctx context.Context, a esoui.Addon) esoui.Addon
		ResolveDownload(ctx context.Context, a esoui.Addon) esoui.Addon
	}

	// Retriever downloads an addon archive. It returns (nil, nil) when the addon
	// has no download URL.
	Retriever interface {
		Retrieve(ctx context.Context, a esoui.Addon) (*esoui.Download, error)
	}

	// ExtractFunc materializes an archive under target and returns the number
	// of entries written.
	ExtractFunc func(archivePath, target string) (int, error)

	// Observer is notified as each addon moves through the pipeline. Calls are
	// made from the goroutine running Run.
	Observer interface {
		// AddonResolved is called once the info page has been processed.
		AddonResolved(a esoui.Addon)
		// ArchiveRetrieved is called after the archive is on disk and before
		// extraction starts.
		ArchiveRetrieved(a esoui.Addon, dl *esoui.Download)
		// AddonFinished is called exactly once per requested id.
		AddonFinished(r Result)
	}

	// Runner executes the pipeline. Construct with New.
	Runner struct {
		resolver  Resolver
		retriever Retriever
		extract   ExtractFunc
		observer  Observer
		logger    *log.Logger
	}

	// Option configures a Runner.
	Option func(*Runner)

	nopObserver struct{}
)

func (nopObserver) AddonResolved(esoui.Addon)                     {}
func (nopObserver) ArchiveRetrieved(esoui.Addon, *esoui.Download) {}
func (nopObserver) AddonFinished(Result)                          {}

// WithObserver sets the progress observer.
func WithObserver(o Observer) Option {
	return func(r *Runner) {
		if o != nil {
			r.observer = o
		}
	}
}

// WithExtractor replaces unpack.Extract.
func WithExtractor(fn ExtractFunc) Option {
	return func(r *Runner) {
		if fn != nil {
			r.extract = fn
		}
	}
}

// WithLogger sets the logger used for cleanup warnings and debug tracing.
func WithLogger(l *log.Logger) Option {
	return func(r *Runner) {
		if l != nil {
			r.logger = l
		}
	}
}

// New creates a Runner. A single *esoui.Client satisfies both resolver and
// retriever.
func New(resolver Resolver, retriever Retriever, opts ...Option) *Runner {
	r := &Runner{
		resolver:  resolver,
		retriever: retriever,
		extract:   unpack.Extract,
		observer:  nopObserver{},
		logger:    log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run processes ids in order and installs each archive under target, which is
// created (with ancestors) if missing. The returned error is non-nil only when
// target cannot be created; per-addon failures are recorded in the Report.
//
// If ctx is cancelled, the addon in progress fails with the context error and
// every remaining id is reported as failed without any request being made.
func (r *Runner) Run(ctx context.Context, ids []esoui.AddonID, target string) (Report, error) {
	if err := os.MkdirAll(target, 0o755); err != nil {
		return Report{}, fmt.Errorf("creating target directory %s: %w", target, err)
	}

	report := Report{Target: target, Results: make([]Result, 0, len(ids))}
	for _, id := range ids {
		var res Result
		if err := ctx.Err(); err != nil {
			res = Result{Addon: esoui.NewAddon(id), Status: StatusFailed, Err: err}
		} else {
			res = r.install(ctx, id, target)
		}
		r.observer.AddonFinished(res)
		report.Results = append(report.Results, res)
	}
	return report, nil
}

func (r *Runner) install(ctx context.Context, id esoui.AddonID, target string) Result {
	a := r.resolver.ResolveInfo(ctx, esoui.NewAddon(id))
	r.observer.AddonResolved(a)
	a = r.resolver.ResolveDownload(ctx, a)

	dl, err := r.retriever.Retrieve(ctx, a)
	if err != nil {
		return Result{Addon: a, Status: StatusFailed, Err: err}
	}
	if dl == nil {
		return Result{Addon: a, Status: StatusNoDownload}
	}
	defer func() {
		if rmErr := dl.Remove(); rmErr != nil {
			r.logger.Warn("temporary archive not removed", "addon", id, "path", dl.Path, "err", rmErr)
		}
	}()

	r.observer.ArchiveRetrieved(a, dl)
	r.logger.Debug("extracting", "addon", id, "archive", dl.Path, "target", target)

	n, err := r.extract(dl.Path, target)
	if err != nil {
		return Result{Addon: a, Status: StatusFailed, Entries: n, Err: err}
	}
	return Result{Addon: a, Status: StatusInstalled, Entries: n}
}
