// TasteMatch - Restaurant Discovery and Hybrid Recommendations
// Copyright 2026 TasteMatch contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tastematch/tastematch

package ratings

import (
	"math"
	"testing"
)

func TestBuildMatrixAggregatesDuplicates(t *testing.T) {
	m := BuildMatrix([]Event{
		{UserID: "u1", RestaurantID: 1, Rating: 6, Source: SourceImplicitView},
		{UserID: "u1", RestaurantID: 1, Rating: 10, Source: SourceExplicitComment},
		{UserID: "u1", RestaurantID: 2, Rating: 7, Source: SourceImportedReview},
		{UserID: "u2", RestaurantID: 1, Rating: 5, Source: SourceImportedReview},
	})

	// Two ratings for (u1, 1) collapse to their mean.
	if r, ok := m.Rating("u1", 1); !ok || r != 8 {
		t.Errorf("Rating(u1, 1) = %v, %v, want 8, true", r, ok)
	}
	if r, ok := m.Rating("u1", 2); !ok || r != 7 {
		t.Errorf("Rating(u1, 2) = %v, %v, want 7, true", r, ok)
	}
	if _, ok := m.Rating("u2", 2); ok {
		t.Error("Rating(u2, 2) = rated, want unrated")
	}
	if _, ok := m.Rating("ghost", 1); ok {
		t.Error("Rating(ghost, 1) = rated, want unrated")
	}
}

func TestMatrixOrderIsFirstSeen(t *testing.T) {
	m := BuildMatrix([]Event{
		{UserID: "b", RestaurantID: 20, Rating: 5},
		{UserID: "a", RestaurantID: 10, Rating: 5},
		{UserID: "b", RestaurantID: 10, Rating: 5},
	})

	users := m.Users()
	if len(users) != 2 || users[0] != "b" || users[1] != "a" {
		t.Errorf("Users() = %v, want [b a]", users)
	}
	items := m.Items()
	if len(items) != 2 || items[0] != 20 || items[1] != 10 {
		t.Errorf("Items() = %v, want [20 10]", items)
	}
}

func TestMatrixEmpty(t *testing.T) {
	if !BuildMatrix(nil).Empty() {
		t.Error("Empty() = false for no events, want true")
	}
	if BuildMatrix([]Event{{UserID: "u", RestaurantID: 1, Rating: 5}}).Empty() {
		t.Error("Empty() = true for one event, want false")
	}
}

func TestItemColumnsDenseView(t *testing.T) {
	m := BuildMatrix([]Event{
		{UserID: "u1", RestaurantID: 1, Rating: 8},
		{UserID: "u2", RestaurantID: 1, Rating: 6},
		{UserID: "u2", RestaurantID: 2, Rating: 9},
	})

	columns := m.ItemColumns()
	if len(columns) != 2 {
		t.Fatalf("len(columns) = %d, want 2", len(columns))
	}
	// Item 1 in user order [u1 u2].
	if columns[0][0] != 8 || columns[0][1] != 6 {
		t.Errorf("columns[0] = %v, want [8 6]", columns[0])
	}
	// Item 2: unrated cell is 0.
	if columns[1][0] != 0 || columns[1][1] != 9 {
		t.Errorf("columns[1] = %v, want [0 9]", columns[1])
	}
}

func TestMeanItemRatingCountsUnratedAsZero(t *testing.T) {
	m := BuildMatrix([]Event{
		{UserID: "u1", RestaurantID: 1, Rating: 8},
		{UserID: "u2", RestaurantID: 1, Rating: 6},
		{UserID: "u2", RestaurantID: 2, Rating: 9},
	})

	if got := m.MeanItemRating(1); got != 7 {
		t.Errorf("MeanItemRating(1) = %v, want 7", got)
	}
	if got := m.MeanItemRating(2); math.Abs(got-4.5) > 1e-9 {
		t.Errorf("MeanItemRating(2) = %v, want 4.5", got)
	}
	if got := m.MeanItemRating(99); got != 0 {
		t.Errorf("MeanItemRating(99) = %v, want 0", got)
	}
}

func TestItemVector(t *testing.T) {
	m := BuildMatrix([]Event{
		{UserID: "u1", RestaurantID: 1, Rating: 8},
		{UserID: "u2", RestaurantID: 2, Rating: 9},
	})

	col := m.ItemVector(1)
	if len(col) != 1 || col["u1"] != 8 {
		t.Errorf("ItemVector(1) = %v, want map[u1:8]", col)
	}
}
