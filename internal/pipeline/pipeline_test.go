// SPDX-License-Identifier: MPL-2.0

package pipeline

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/DamianRyse/OpenEsoUI-MM/internal/esoui"
	"github.com/DamianRyse/OpenEsoUI-MM/internal/unpack"
)

const infoPage = `<html><head><title>Simple Skyshards : Maps, Coords, Compasses : Elder Scrolls Online AddOns</title></head>
<body>
<div id="patch"><abbr title="Update 44 (10.2.5)">10.2.5</abbr></div>
<div id="version">Version: 2.1</div>
<div id="safe">Updated: 11/03/24 04:12 PM</div>
</body></html>`

const downloadPage = `<html><body><div>Problems with the download? <a href="/files/skyshards.zip">Click here</a>.</div></body></html>`

type (
	// recorder is an Observer that keeps every event in order.
	recorder struct {
		events   []string
		finished []Result
	}

	fakeResolver struct {
		calls int
		urls  map[esoui.AddonID]string
	}

	fakeRetriever struct {
		errs map[esoui.AddonID]error
	}
)

func (r *recorder) AddonResolved(a esoui.Addon) {
	r.events = append(r.events, fmt.Sprintf("resolved %d %s", a.ID, a.Name))
}

func (r *recorder) ArchiveRetrieved(a esoui.Addon, dl *esoui.Download) {
	r.events = append(r.events, fmt.Sprintf("retrieved %d %s", a.ID, dl.Filename))
}

func (r *recorder) AddonFinished(res Result) {
	r.events = append(r.events, fmt.Sprintf("finished %d %s", res.Addon.ID, res.Status))
	r.finished = append(r.finished, res)
}

func (f *fakeResolver) ResolveInfo(_ context.Context, a esoui.Addon) esoui.Addon {
	f.calls++
	a.Name = fmt.Sprintf("Addon%d", a.ID)
	return a
}

func (f *fakeResolver) ResolveDownload(_ context.Context, a esoui.Addon) esoui.Addon {
	f.calls++
	a.DownloadURL = f.urls[a.ID]
	return a
}

func (f *fakeRetriever) Retrieve(_ context.Context, a esoui.Addon) (*esoui.Download, error) {
	if a.DownloadURL == "" {
		return nil, nil
	}
	if err := f.errs[a.ID]; err != nil {
		return nil, err
	}
	return &esoui.Download{Filename: fmt.Sprintf("%d.zip", a.ID), Path: "/nonexistent/" + a.ID.String()}, nil
}

// buildZip returns an in-memory archive holding the given files.
func buildZip(t *testing.T, files map[string]string) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("zip create %s: %v", name, err)
		}
		if _, err := io.WriteString(w, files[name]); err != nil {
			t.Fatalf("zip write %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("zip close: %v", err)
	}
	return buf.Bytes()
}

// newSite serves the info page, the download page and archive for id 4063.
func newSite(t *testing.T, archive []byte) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/downloads/info4063", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, infoPage)
	})
	mux.HandleFunc("/downloads/download4063", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, downloadPage)
	})
	mux.HandleFunc("/files/skyshards.zip", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Disposition", `attachment; filename="SimpleSkyshards.zip"`)
		_, _ = w.Write(archive)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newSiteClient(srv *httptest.Server, tempDir string) *esoui.Client {
	return esoui.NewClient(
		esoui.WithBaseURL(srv.URL),
		esoui.WithHTTPClient(srv.Client()),
		esoui.WithTempDir(tempDir),
		esoui.WithLogger(log.New(io.Discard)),
	)
}

func TestRun_EndToEnd(t *testing.T) {
	srv := newSite(t, buildZip(t, map[string]string{"Skyshards/main.lua": "-- skyshards"}))
	tempDir := t.TempDir()
	target := filepath.Join(t.TempDir(), "live", "AddOns")
	client := newSiteClient(srv, tempDir)
	rec := &recorder{}

	report, err := New(client, client, WithObserver(rec)).Run(context.Background(), []esoui.AddonID{4063}, target)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if len(report.Results) != 1 {
		t.Fatalf("Run() results = %d, want 1", len(report.Results))
	}
	res := report.Results[0]
	if res.Status != StatusInstalled || res.Err != nil {
		t.Fatalf("result = %+v, want installed", res)
	}
	if res.Addon.Name != "Simple Skyshards" || res.Addon.AddonVersion != "2.1" {
		t.Errorf("addon = %+v", res.Addon)
	}
	if res.Addon.DownloadURL != srv.URL+"/files/skyshards.zip" {
		t.Errorf("DownloadURL = %q", res.Addon.DownloadURL)
	}
	if res.Entries != 1 {
		t.Errorf("Entries = %d, want 1", res.Entries)
	}

	data, err := os.ReadFile(filepath.Join(target, "Skyshards", "main.lua"))
	if err != nil {
		t.Fatalf("extracted file missing: %v", err)
	}
	if string(data) != "-- skyshards" {
		t.Errorf("content = %q", data)
	}

	if entries, _ := os.ReadDir(tempDir); len(entries) != 0 {
		t.Errorf("temporary archive not removed: %v", entries)
	}

	want := []string{
		"resolved 4063 Simple Skyshards",
		"retrieved 4063 SimpleSkyshards.zip",
		"finished 4063 installed",
	}
	if !slices.Equal(rec.events, want) {
		t.Errorf("events = %v, want %v", rec.events, want)
	}
	if report.Failed() != 0 || report.Installed() != 1 {
		t.Errorf("Failed() = %d, Installed() = %d", report.Failed(), report.Installed())
	}
}

func TestRun_CorruptArchiveStillRemovesTempFile(t *testing.T) {
	srv := newSite(t, []byte("<html>maintenance</html>"))
	tempDir := t.TempDir()
	client := newSiteClient(srv, tempDir)

	report, err := New(client, client).Run(context.Background(), []esoui.AddonID{4063}, t.TempDir())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	res := report.Results[0]
	if res.Status != StatusFailed || !errors.Is(res.Err, unpack.ErrCorruptArchive) {
		t.Errorf("result = %+v, want corrupt archive failure", res)
	}
	if entries, _ := os.ReadDir(tempDir); len(entries) != 0 {
		t.Errorf("temporary archive not removed: %v", entries)
	}
}

func TestRun_FailureDoesNotStopBatch(t *testing.T) {
	boom := errors.New("connection reset")
	resolver := &fakeResolver{urls: map[esoui.AddonID]string{
		1: "https://cdn.example/1.zip",
		2: "https://cdn.example/2.zip",
		4: "https://cdn.example/4.zip",
	}}
	retriever := &fakeRetriever{errs: map[esoui.AddonID]error{2: boom}}

	var extracted []string
	extract := func(archivePath, _ string) (int, error) {
		extracted = append(extracted, archivePath)
		if archivePath == "/nonexistent/4" {
			return 3, &unpack.PathEscapeError{Entry: "../x"}
		}
		return 7, nil
	}
	rec := &recorder{}

	report, err := New(resolver, retriever, WithExtractor(extract), WithObserver(rec)).
		Run(context.Background(), []esoui.AddonID{1, 2, 3, 4}, t.TempDir())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	var got []Status
	for _, r := range report.Results {
		got = append(got, r.Status)
	}
	want := []Status{StatusInstalled, StatusFailed, StatusNoDownload, StatusFailed}
	if !slices.Equal(got, want) {
		t.Fatalf("statuses = %v, want %v", got, want)
	}
	if !errors.Is(report.Results[1].Err, boom) {
		t.Errorf("addon 2 error = %v, want %v", report.Results[1].Err, boom)
	}
	if !errors.Is(report.Results[3].Err, unpack.ErrPathEscape) || report.Results[3].Entries != 3 {
		t.Errorf("addon 4 result = %+v", report.Results[3])
	}
	if report.Failed() != 2 || report.Installed() != 1 {
		t.Errorf("Failed() = %d, Installed() = %d", report.Failed(), report.Installed())
	}
	if !slices.Equal(extracted, []string{"/nonexistent/1", "/nonexistent/4"}) {
		t.Errorf("extracted = %v", extracted)
	}
	if len(rec.finished) != 4 {
		t.Errorf("AddonFinished called %d times, want 4", len(rec.finished))
	}
}

func TestRun_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	resolver := &fakeResolver{}
	report, err := New(resolver, &fakeRetriever{}).Run(ctx, []esoui.AddonID{1, 2}, t.TempDir())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if resolver.calls != 0 {
		t.Errorf("resolver called %d times after cancellation", resolver.calls)
	}
	for _, r := range report.Results {
		if r.Status != StatusFailed || !errors.Is(r.Err, context.Canceled) {
			t.Errorf("result = %+v, want cancelled failure", r)
		}
	}
	if report.Failed() != 2 {
		t.Errorf("Failed() = %d, want 2", report.Failed())
	}
}

func TestRun_TargetDirectory(t *testing.T) {
	t.Run("created with ancestors", func(t *testing.T) {
		target := filepath.Join(t.TempDir(), "a", "b", "AddOns")
		if _, err := New(&fakeResolver{}, &fakeRetriever{}).Run(context.Background(), nil, target); err != nil {
			t.Fatalf("Run() error = %v", err)
		}
		if fi, err := os.Stat(target); err != nil || !fi.IsDir() {
			t.Errorf("target not created: %v", err)
		}
	})

	t.Run("file in the way", func(t *testing.T) {
		target := filepath.Join(t.TempDir(), "AddOns")
		if err := os.WriteFile(target, []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
		resolver := &fakeResolver{}
		if _, err := New(resolver, &fakeRetriever{}).Run(context.Background(), []esoui.AddonID{1}, target); err == nil {
			t.Error("Run() should fail when the target cannot be created")
		}
		if resolver.calls != 0 {
			t.Error("no addon should be processed when the target cannot be created")
		}
	})
}

func TestStatus_String(t *testing.T) {
	for s, want := range map[Status]string{
		StatusInstalled:  "installed",
		StatusNoDownload: "no download",
		StatusFailed:     "failed",
		Status(0):        "unknown",
	} {
		if got := s.String(); got != want {
			t.Errorf("Status(%d).String() = %q, want %q", int(s), got, want)
		}
	}
}
