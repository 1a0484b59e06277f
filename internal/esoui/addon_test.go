// SPDX-License-Identifier: MPL-2.0

package esoui

import (
	"errors"
	"slices"
	"testing"
)

func TestParseAddonIDs(t *testing.T) {
	tests := []struct {
		input   string
		want    []AddonID
		wantErr bool
	}{
		{input: "4063", want: []AddonID{4063}},
		{input: "4063,3501", want: []AddonID{4063, 3501}},
		{input: " 3501 , 4063 ", want: []AddonID{3501, 4063}},
		{input: "", wantErr: true},
		{input: "4063,", wantErr: true},
		{input: "0", wantErr: true},
		{input: "-1", wantErr: true},
		{input: "65536", wantErr: true},
		{input: "abc", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseAddonIDs(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidAddonID) {
					t.Fatalf("ParseAddonIDs(%q) error = %v, want ErrInvalidAddonID", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseAddonIDs(%q) error = %v", tt.input, err)
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("ParseAddonIDs(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestAddon_DisplayName(t *testing.T) {
	if got := NewAddon(4063).DisplayName(); got != "Addon 4063" {
		t.Errorf("DisplayName() = %q", got)
	}
	a := Addon{ID: 4063, Name: "Simple Skyshards"}
	if got := a.DisplayName(); got != "Simple Skyshards" {
		t.Errorf("DisplayName() = %q", got)
	}
}

func TestClient_PageURLs(t *testing.T) {
	c := NewClient(WithBaseURL("https://example.test/"))
	if got := c.InfoURL(4063); got != "https://example.test/downloads/info4063" {
		t.Errorf("InfoURL() = %q", got)
	}
	if got := c.DownloadPageURL(4063); got != "https://example.test/downloads/download4063" {
		t.Errorf("DownloadPageURL() = %q", got)
	}
}
