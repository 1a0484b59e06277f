// SPDX-License-Identifier: MPL-2.0

// Package unpack extracts addon archives into the AddOns directory.
//
// Extraction is two-phase. Every entry is first mapped to its output path and
// checked against the target root; a single entry that would land outside the
// root rejects the whole archive before anything is written. Only then are
// directories created and files copied.
package unpack
