// TasteMatch - Restaurant Discovery and Hybrid Recommendations
// Copyright 2026 TasteMatch contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tastematch/tastematch

// Package ratings aggregates rating events from multiple sources into the
// normalized user-item table the collaborative filter trains on.
//
// Sources are independent and absent-tolerant: a missing or malformed source
// is skipped and the remaining sources are pooled. Events are never updated
// in place; new events supersede old ones only through matrix aggregation.
package ratings

// Source tags where a rating event came from.
type Source string

const (
	// SourceExplicitComment is a rating attached to a user comment.
	SourceExplicitComment Source = "explicit-comment"

	// SourceImportedReview is a rating from the bulk review import.
	SourceImportedReview Source = "imported-review"

	// SourceImplicitLike is a synthetic rating derived from a like.
	SourceImplicitLike Source = "implicit-like"

	// SourceImplicitView is a synthetic rating derived from a page view.
	SourceImplicitView Source = "implicit-view"
)

// Implicit signal mapping. A like is a strong positive signal; a view is a
// moderate one. Only the most recent ViewWindow views per user are kept.
const (
	LikeRating = 9.0
	ViewRating = 6.0
	ViewWindow = 10
)

// Rating scale bounds. Every event is clamped into this range regardless of
// the source's native scale.
const (
	MinRating = 1.0
	MaxRating = 10.0
)

// neutralRating stands in for comments that carry no rating at all.
const neutralRating = 5.0

// Event is a single user-item rating observation.
type Event struct {
	// UserID identifies the rater. Imported reviews carry their own IDs;
	// local interactions use the session user ID.
	UserID string `json:"user_id"`

	// RestaurantID is the rated catalog entry.
	RestaurantID int `json:"restaurant_id"`

	// Rating is the normalized rating in [1, 10].
	Rating float64 `json:"rating"`

	// Source tags the origin of the event.
	Source Source `json:"source"`
}

// ClampRating forces a rating into the [1, 10] scale.
func ClampRating(r float64) float64 {
	if r < MinRating {
		return MinRating
	}
	if r > MaxRating {
		return MaxRating
	}
	return r
}

// PreferenceEvents derives implicit rating events from a user's preference
// snapshot. Likes map to LikeRating; the most recent ViewWindow views map to
// ViewRating. A view of an already-liked restaurant is dropped so the weaker
// signal never dilutes the stronger one.
func PreferenceEvents(userID string, liked, viewed []int) []Event {
	events := make([]Event, 0, len(liked)+ViewWindow)

	likedSet := make(map[int]struct{}, len(liked))
	for _, id := range liked {
		likedSet[id] = struct{}{}
		events = append(events, Event{
			UserID:       userID,
			RestaurantID: id,
			Rating:       LikeRating,
			Source:       SourceImplicitLike,
		})
	}

	recent := viewed
	if len(recent) > ViewWindow {
		recent = recent[len(recent)-ViewWindow:]
	}
	for _, id := range recent {
		if _, ok := likedSet[id]; ok {
			continue
		}
		events = append(events, Event{
			UserID:       userID,
			RestaurantID: id,
			Rating:       ViewRating,
			Source:       SourceImplicitView,
		})
	}

	return events
}
