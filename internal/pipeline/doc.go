// SPDX-License-Identifier: MPL-2.0

// Package pipeline drives the per-addon update sequence: resolve metadata,
// resolve the download link, retrieve the archive, extract it, and remove the
// temporary file. Addons are processed one at a time in input order and a
// failure in one addon never stops the batch.
package pipeline
