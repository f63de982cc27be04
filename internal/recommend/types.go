// TasteMatch - Restaurant Discovery and Hybrid Recommendations
// Copyright 2026 TasteMatch contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tastematch/tastematch

// Package recommend implements the hybrid recommendation engine.
//
// The engine combines two signal paths:
//
//   - Collaborative Filtering: item-based CF over a sparse user-item rating
//     matrix pooled from comments, imported reviews, and implicit
//     like/view events.
//   - Content-Based: cosine similarity over weighted one-hot feature vectors
//     encoded from restaurant metadata, plus preference-match and top-rated
//     candidate strategies.
//
// Hybrid ranking fuses both with configurable weights. Training is explicit
// and rebuilds the whole model; queries run against an immutable snapshot.
//
// # Thread Safety
//
// The Engine is safe for concurrent use. Training acquires an exclusive lock
// while queries use a shared lock.
package recommend

import "time"

// Recommendation source tags.
const (
	// TagCollaborative marks a recommendation produced only by the
	// collaborative path.
	TagCollaborative = "cf"

	// TagContent marks a recommendation produced only by the content path.
	TagContent = "cb"

	// TagHybrid marks a recommendation scored by both paths.
	TagHybrid = "hybrid"
)

// Recommendation is a single ranked suggestion.
type Recommendation struct {
	// RestaurantID identifies the recommended restaurant.
	RestaurantID int `json:"restaurant_id"`

	// Score is the fused ranking score. Scores are comparable within one
	// response, not across responses.
	Score float64 `json:"score"`

	// CFScore and CBScore are the weighted per-path contributions.
	CFScore float64 `json:"cf_score"`
	CBScore float64 `json:"cb_score"`

	// Tag is one of TagCollaborative, TagContent, TagHybrid.
	Tag string `json:"tag"`

	// Reason is a human-readable explanation of why this restaurant
	// was suggested.
	Reason string `json:"reason"`
}

// ScoredItem is an (item, score) pair produced by a single algorithm path.
type ScoredItem struct {
	RestaurantID int     `json:"restaurant_id"`
	Score        float64 `json:"score"`
}

// TrainingStatus reports the engine's model state.
type TrainingStatus struct {
	Trained       bool      `json:"trained"`
	Version       int       `json:"version"`
	LastTrainedAt time.Time `json:"last_trained_at,omitempty"`
	RatingEvents  int       `json:"rating_events"`
	Users         int       `json:"users"`
	Restaurants   int       `json:"restaurants"`
}
