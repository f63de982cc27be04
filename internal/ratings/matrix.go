// TasteMatch - Restaurant Discovery and Hybrid Recommendations
// Copyright 2026 TasteMatch contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tastematch/tastematch

package ratings

// Matrix is the normalized user-item rating table, rebuilt in full on every
// training run.
//
// The representation is sparse: absence of a (user, item) key means unrated,
// which keeps "unrated" distinct from a genuine low rating. Dense views used
// by the similarity computation substitute 0 for absent cells, matching the
// collaborative-filtering convention.
type Matrix struct {
	// ratings maps user ID -> restaurant ID -> aggregated rating.
	ratings map[string]map[int]float64

	// users and items preserve first-seen event order, which gives queries a
	// stable iteration order for tie-breaking.
	users []string
	items []int
}

// BuildMatrix aggregates pooled events into a user-item matrix. Multiple
// ratings for the same (user, item) pair collapse to their mean.
func BuildMatrix(events []Event) *Matrix {
	m := &Matrix{ratings: make(map[string]map[int]float64)}

	sums := make(map[string]map[int]float64)
	counts := make(map[string]map[int]int)
	seenItems := make(map[int]struct{})

	for _, e := range events {
		if sums[e.UserID] == nil {
			sums[e.UserID] = make(map[int]float64)
			counts[e.UserID] = make(map[int]int)
			m.users = append(m.users, e.UserID)
		}
		sums[e.UserID][e.RestaurantID] += e.Rating
		counts[e.UserID][e.RestaurantID]++

		if _, ok := seenItems[e.RestaurantID]; !ok {
			seenItems[e.RestaurantID] = struct{}{}
			m.items = append(m.items, e.RestaurantID)
		}
	}

	for user, itemSums := range sums {
		row := make(map[int]float64, len(itemSums))
		for item, sum := range itemSums {
			row[item] = sum / float64(counts[user][item])
		}
		m.ratings[user] = row
	}

	return m
}

// Empty reports whether the matrix holds no ratings.
func (m *Matrix) Empty() bool {
	return len(m.users) == 0 || len(m.items) == 0
}

// Users returns the distinct user IDs in first-seen order.
func (m *Matrix) Users() []string {
	return m.users
}

// Items returns the distinct restaurant IDs in first-seen order.
func (m *Matrix) Items() []int {
	return m.items
}

// HasUser reports whether the user has any rating in the matrix.
func (m *Matrix) HasUser(userID string) bool {
	_, ok := m.ratings[userID]
	return ok
}

// Rating returns the aggregated rating for a (user, item) pair.
// The second return is false when the pair is unrated.
func (m *Matrix) Rating(userID string, itemID int) (float64, bool) {
	row, ok := m.ratings[userID]
	if !ok {
		return 0, false
	}
	r, ok := row[itemID]
	return r, ok
}

// UserRatings returns the user's sparse rating row (item -> rating).
// Callers must not mutate the returned map.
func (m *Matrix) UserRatings(userID string) map[int]float64 {
	return m.ratings[userID]
}

// ItemVector returns an item's sparse rating column (user -> rating).
func (m *Matrix) ItemVector(itemID int) map[string]float64 {
	col := make(map[string]float64)
	for user, row := range m.ratings {
		if r, ok := row[itemID]; ok {
			col[user] = r
		}
	}
	return col
}

// ItemColumns returns dense rating columns for every item, in item order.
// Unrated cells are 0. Row i of the result corresponds to Items()[i] and has
// one entry per user in Users() order.
func (m *Matrix) ItemColumns() [][]float64 {
	columns := make([][]float64, len(m.items))
	for i, item := range m.items {
		col := make([]float64, len(m.users))
		for j, user := range m.users {
			if r, ok := m.ratings[user][item]; ok {
				col[j] = r
			}
		}
		columns[i] = col
	}
	return columns
}

// MeanItemRating returns the item's mean rating across all users with
// unrated cells counted as 0. This depresses items rated by few users; the
// popularity fallback accepts that trade-off for simplicity.
func (m *Matrix) MeanItemRating(itemID int) float64 {
	if len(m.users) == 0 {
		return 0
	}
	var sum float64
	for _, row := range m.ratings {
		if r, ok := row[itemID]; ok {
			sum += r
		}
	}
	return sum / float64(len(m.users))
}
