// SPDX-License-Identifier: MPL-2.0

// Package esoui talks to the ESOUI addon site.
//
// The package is organized into four concerns:
//   - client.go: HTTP client and page fetching (non-2xx is data, not an error)
//   - extract.go: pattern-based field extraction from page markup
//   - resolve.go: info/download page resolution into an Addon snapshot
//   - retrieve.go: streaming the addon archive into a scoped temp directory
package esoui
