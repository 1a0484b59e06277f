// SPDX-License-Identifier: MPL-2.0

package esoui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidAddonID is returned when an addon id is zero, negative or not a number.
var ErrInvalidAddonID = errors.New("invalid addon id")

type (
	// AddonID is the numeric ESOUI file id (the 4063 in /downloads/info4063).
	AddonID uint16

	// InvalidAddonIDError reports the offending input. It wraps ErrInvalidAddonID
	// for errors.Is() compatibility.
	InvalidAddonIDError struct {
		Value string
	}

	// Addon is a snapshot of what is known about one addon. Resolvers take an
	// Addon by value and return an updated copy; empty string fields mean
	// "not found on the page".
	Addon struct {
		ID           AddonID
		Name         string
		AddonVersion string
		GameVersion  string
		UpdatedAt    string
		// DownloadURL is empty when the download page offered no link.
		DownloadURL string
	}
)

func (e *InvalidAddonIDError) Error() string {
	return fmt.Sprintf("invalid addon id %q (must be a number between 1 and 65535)", e.Value)
}

// Unwrap returns ErrInvalidAddonID for errors.Is() compatibility.
func (e *InvalidAddonIDError) Unwrap() error { return ErrInvalidAddonID }

// NewAddon returns an Addon with only its id set.
func NewAddon(id AddonID) Addon {
	return Addon{ID: id}
}

func (id AddonID) String() string {
	return strconv.FormatUint(uint64(id), 10)
}

// IsValid reports whether id can address an addon page.
func (id AddonID) IsValid() bool {
	return id > 0
}

// DisplayName returns the addon name, or a placeholder built from the id when
// the info page did not yield one.
func (a Addon) DisplayName() string {
	if a.Name != "" {
		return a.Name
	}
	return "Addon " + a.ID.String()
}

// ParseAddonID parses a single decimal id.
func ParseAddonID(s string) (AddonID, error) {
	s = strings.TrimSpace(s)
	n, err := strconv.ParseUint(s, 10, 16)
	if err != nil || n == 0 {
		return 0, &InvalidAddonIDError{Value: s}
	}
	return AddonID(n), nil
}

// ParseAddonIDs parses a comma-separated id list such as "4063, 3501".
// The order of the input is preserved; an empty list is an error.
func ParseAddonIDs(s string) ([]AddonID, error) {
	parts := strings.Split(s, ",")
	ids := make([]AddonID, 0, len(parts))
	for _, p := range parts {
		id, err := ParseAddonID(p)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
