// SPDX-License-Identifier: MPL-2.0

package esoui

import (
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/charmbracelet/log"
)

const (
	infoPageFixture = `<!DOCTYPE html>
<html><head><title>Simple Skyshards : Maps, Coords, Compasses : Elder Scrolls Online AddOns</title></head>
<body>
<div id="patch"><abbr title="Update 44 (10.2.5)">10.2.5</abbr></div>
<div id="version">Version: 2.1</div>
<div id="safe">Updated: 11/03/24 04:12 PM</div>
</body></html>`

	downloadPageFixture = `<html><head><title>Downloading Simple Skyshards</title></head>
<body><p>Your download will begin shortly.</p>
<div class="manuallink">Problems with the download? <a href="%s">Click here</a>.</div>
</body></html>`
)

// newTestClient returns a Client pointed at srv with logging discarded.
func newTestClient(t *testing.T, srv *httptest.Server, opts ...ClientOption) *Client {
	t.Helper()

	base := []ClientOption{
		WithBaseURL(srv.URL),
		WithHTTPClient(srv.Client()),
		WithTempDir(t.TempDir()),
		WithLogger(log.New(io.Discard)),
	}
	return NewClient(append(base, opts...)...)
}

// routes serves fixed bodies per path and 404 for everything else. It counts
// requests so tests can assert that no request was made.
type routes struct {
	bodies map[string]string
	hits   atomic.Int32
}

func (r *routes) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.hits.Add(1)
	body, ok := r.bodies[req.URL.Path]
	if !ok {
		http.NotFound(w, req)
		return
	}
	_, _ = io.WriteString(w, body)
}
