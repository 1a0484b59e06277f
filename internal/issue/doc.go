// SPDX-License-Identifier: MPL-2.0

// Package issue provides actionable error handling with user-friendly messages.
//
// ActionableError carries the failed operation, the resource involved and a list
// of suggestions. The Markdown issue catalog adds longer remediation guidance for
// the failure classes a user can act on (unreachable site, broken archive,
// unwritable AddOns directory), rendered for the terminal with glamour.
package issue
