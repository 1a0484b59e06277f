// SPDX-License-Identifier: MPL-2.0

package pipeline

import "github.com/DamianRyse/OpenEsoUI-MM/internal/esoui"

const (
	// StatusInstalled means the archive was downloaded and extracted.
	StatusInstalled Status = iota + 1
	// StatusNoDownload means the download page offered no link. It is not a
	// failure.
	StatusNoDownload
	// StatusFailed means retrieval or extraction failed; Result.Err says why.
	StatusFailed
)

type (
	// Status is the outcome of one addon.
	Status int

	// Result records what happened to one addon.
	Result struct {
		// Addon is the snapshot after both resolvers ran.
		Addon esoui.Addon
		// Status is the outcome.
		Status Status
		// Entries is the number of archive entries written, possibly partial
		// when extraction failed midway.
		Entries int
		// Err is set when Status is StatusFailed.
		Err error
	}

	// Report collects the results of one Run in input order.
	Report struct {
		Target  string
		Results []Result
	}
)

func (s Status) String() string {
	switch s {
	case StatusInstalled:
		return "installed"
	case StatusNoDownload:
		return "no download"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Failed returns the number of addons that failed.
func (r Report) Failed() int { return r.count(StatusFailed) }

// Installed returns the number of addons that were extracted.
func (r Report) Installed() int { return r.count(StatusInstalled) }

func (r Report) count(s Status) int {
	n := 0
	for _, res := range r.Results {
		if res.Status == s {
			n++
		}
	}
	return n
}
