// TasteMatch - Restaurant Discovery and Hybrid Recommendations
// Copyright 2026 TasteMatch contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tastematch/tastematch

package ratings

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/goccy/go-json"
)

// Sentinel errors distinguishing the three ways a source load can go wrong.
// Absent and malformed sources are skipped by the store; only a total absence
// of data across all sources surfaces as ErrNoData.
var (
	// ErrSourceAbsent indicates the source file does not exist.
	ErrSourceAbsent = errors.New("rating source absent")

	// ErrSourceMalformed indicates the source exists but cannot be parsed.
	ErrSourceMalformed = errors.New("rating source malformed")

	// ErrNoData indicates no source yielded any events.
	ErrNoData = errors.New("no rating data available")
)

// Comment is a single user comment with a rating, as stored in the comments
// file (a map from restaurant ID to comment list, newest first).
type Comment struct {
	ID      int     `json:"id"`
	Rating  float64 `json:"rating"`
	Comment string  `json:"comment"`
	User    string  `json:"user"`
	Date    string  `json:"date,omitempty"`
}

// ImportedReview is a single entry of the bulk review import file
// (a flat array of review objects).
type ImportedReview struct {
	UserID       string  `json:"user_id"`
	RestaurantID int     `json:"res_id"`
	Rating       float64 `json:"rating"`
}

// LoadCommentEvents reads the per-restaurant comments file and converts each
// comment into an explicit rating event. Anonymous comments are attributed to
// a shared anonymous user so they still contribute to item popularity.
func LoadCommentEvents(path string) ([]Event, error) {
	data, err := readSource(path)
	if err != nil {
		return nil, err
	}

	var byRestaurant map[string][]Comment
	if err := json.Unmarshal(data, &byRestaurant); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrSourceMalformed, path, err)
	}

	var events []Event
	for resIDStr, comments := range byRestaurant {
		resID, err := strconv.Atoi(resIDStr)
		if err != nil {
			// One bad key poisons only itself, not the whole source.
			continue
		}
		for _, c := range comments {
			user := c.User
			if user == "" {
				user = "anonymous"
			}
			rating := c.Rating
			if rating == 0 {
				// Comments without a rating decode to zero; read them
				// as neutral rather than the harshest score.
				rating = neutralRating
			}
			events = append(events, Event{
				UserID:       "user_" + user,
				RestaurantID: resID,
				Rating:       ClampRating(rating),
				Source:       SourceExplicitComment,
			})
		}
	}

	return events, nil
}

// LoadReviewEvents reads the bulk review import file and converts each review
// into an imported rating event.
func LoadReviewEvents(path string) ([]Event, error) {
	data, err := readSource(path)
	if err != nil {
		return nil, err
	}

	var reviews []ImportedReview
	if err := json.Unmarshal(data, &reviews); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrSourceMalformed, path, err)
	}

	events := make([]Event, 0, len(reviews))
	for _, r := range reviews {
		user := r.UserID
		if user == "" {
			user = "anonymous"
		}
		events = append(events, Event{
			UserID:       user,
			RestaurantID: r.RestaurantID,
			Rating:       ClampRating(r.Rating),
			Source:       SourceImportedReview,
		})
	}

	return events, nil
}

func readSource(path string) ([]byte, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from trusted config
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrSourceAbsent, path)
		}
		return nil, fmt.Errorf("read rating source: %w", err)
	}
	return data, nil
}
