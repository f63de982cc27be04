// TasteMatch - Restaurant Discovery and Hybrid Recommendations
// Copyright 2026 TasteMatch contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tastematch/tastematch

package catalog

import (
	"errors"
	"fmt"
	"os"

	"github.com/goccy/go-json"
)

// Sentinel errors for catalog loading. These mirror the rating-source
// taxonomy: an absent feed and a malformed feed are distinct conditions that
// callers may want to treat differently.
var (
	// ErrFeedAbsent indicates the catalog feed file does not exist.
	ErrFeedAbsent = errors.New("catalog feed absent")

	// ErrFeedMalformed indicates the catalog feed exists but cannot be parsed.
	ErrFeedMalformed = errors.New("catalog feed malformed")
)

// Load reads the catalog feed from the given JSON file.
// The feed is a flat array of restaurant objects.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from trusted config
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrFeedAbsent, path)
		}
		return nil, fmt.Errorf("read catalog feed: %w", err)
	}

	var restaurants []Restaurant
	if err := json.Unmarshal(data, &restaurants); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFeedMalformed, err)
	}

	return New(restaurants), nil
}
