// SPDX-License-Identifier: MPL-2.0

package esoui

import (
	"strings"
	"testing"
)

func TestNewField_RequiresOneCaptureGroup(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		wantErr bool
	}{
		{"one group", `<b>(.*?)</b>`, false},
		{"no group", `<b>.*?</b>`, true},
		{"two groups", `<b>(.*?)</b><i>(.*?)</i>`, true},
		{"non-capturing does not count", `(?:<b>)(.*?)</b>`, false},
		{"invalid syntax", `(unclosed`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewField("test", tt.pattern)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewField(%q) error = %v, wantErr %v", tt.pattern, err, tt.wantErr)
			}
		})
	}
}

func TestMustField_Panics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustField with two groups should panic")
		}
	}()
	MustField("bad", `(a)(b)`)
}

func TestExtract(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		field Field
		want  string
		found bool
	}{
		{
			name:  "game version",
			body:  `<div id="patch"><abbr title="Update 44 (10.2.5)">10.2.5</abbr></div>`,
			field: FieldGameVersion,
			want:  "10.2.5",
			found: true,
		},
		{
			name:  "addon version trimmed",
			body:  `<div id="version">Version:  2.1 </div>`,
			field: FieldAddonVersion,
			want:  "2.1",
			found: true,
		},
		{
			name:  "updated spans lines",
			body:  "<div id=\"safe\">Updated: 11/03/24\n04:12 PM</div><div id=\"other\">x</div>",
			field: FieldUpdated,
			want:  "11/03/24\n04:12 PM",
			found: true,
		},
		{
			name:  "lazy capture stops at first closing div",
			body:  `<div id="version">Version: 1.0</div><div>noise</div>`,
			field: FieldAddonVersion,
			want:  "1.0",
			found: true,
		},
		{
			name:  "name before first separator",
			body:  `<title>Simple Skyshards : Maps : ESOUI</title>`,
			field: FieldName,
			want:  "Simple Skyshards",
			found: true,
		},
		{
			name:  "entities decoded",
			body:  `<title>Dolgubon&#39;s Lazy Writ Crafter : Tradeskill : ESOUI</title>`,
			field: FieldName,
			want:  "Dolgubon's Lazy Writ Crafter",
			found: true,
		},
		{
			name:  "download link",
			body:  `Problems with the download? <a href="https://cdn.esoui.com/downloads/file4063/SimpleSkyshards.zip?1730">Click here</a>.`,
			field: FieldDownloadLink,
			want:  "https://cdn.esoui.com/downloads/file4063/SimpleSkyshards.zip?1730",
			found: true,
		},
		{
			name:  "marker missing",
			body:  `<div id="changelog">Version: 2.1</div>`,
			field: FieldAddonVersion,
			found: false,
		},
		{
			name:  "blank capture is absent",
			body:  `<div id="version">Version:   </div>`,
			field: FieldAddonVersion,
			found: false,
		},
		{
			name:  "zero-value field",
			body:  `anything`,
			field: Field{},
			found: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, found := Extract(tt.body, tt.field)
			if found != tt.found {
				t.Fatalf("Extract() found = %v, want %v", found, tt.found)
			}
			if got != tt.want {
				t.Errorf("Extract() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNormalizeHTML_CanonicalizesQuoting(t *testing.T) {
	// Unquoted and single-quoted attributes are rendered with double quotes,
	// which is what the patterns expect.
	raw := `<html><body><div id=version>Version: 3.0</div><div id='safe'>Updated: today</div></body></html>`

	body := NormalizeHTML([]byte(raw))

	if v, ok := Extract(body, FieldAddonVersion); !ok || v != "3.0" {
		t.Errorf("addon version = %q, %v; normalized body:\n%s", v, ok, body)
	}
	if v, ok := Extract(body, FieldUpdated); !ok || v != "today" {
		t.Errorf("updated = %q, %v", v, ok)
	}
}

func TestNormalizeHTML_KeepsFixtureExtractable(t *testing.T) {
	body := NormalizeHTML([]byte(infoPageFixture))

	for _, f := range []Field{FieldGameVersion, FieldAddonVersion, FieldUpdated, FieldName} {
		if _, ok := Extract(body, f); !ok {
			t.Errorf("field %q not found after normalization:\n%s", f.Name, body)
		}
	}
	if !strings.Contains(body, "<html>") {
		t.Errorf("expected rendered document, got:\n%s", body)
	}
}
