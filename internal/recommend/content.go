// TasteMatch - Restaurant Discovery and Hybrid Recommendations
// Copyright 2026 TasteMatch contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tastematch/tastematch

package recommend

import (
	"github.com/tastematch/tastematch/internal/catalog"
)

// ContentModel ranks restaurants by metadata similarity. The similarity
// matrix is precomputed over the whole catalog at build time; queries are
// row lookups.
type ContentModel struct {
	catalog *catalog.Catalog

	// ids holds restaurant IDs in similarity row order.
	ids []int

	// rowIndex maps restaurant ID to its similarity row.
	rowIndex map[int]int

	similarity [][]float64
}

// BuildContentModel encodes every restaurant and precomputes the pairwise
// similarity matrix.
func BuildContentModel(c *catalog.Catalog, encoder *Encoder) *ContentModel {
	restaurants := c.All()

	ids := make([]int, len(restaurants))
	rowIndex := make(map[int]int, len(restaurants))
	for i := range restaurants {
		ids[i] = restaurants[i].ID
		rowIndex[restaurants[i].ID] = i
	}

	return &ContentModel{
		catalog:    c,
		ids:        ids,
		rowIndex:   rowIndex,
		similarity: CosineMatrix(encoder.EncodeAll(restaurants)),
	}
}

// SimilarTo ranks every other restaurant by similarity to the given one and
// returns the top n. Zero-similarity entries are kept so the result fills n
// even in a sparse catalog. An unknown restaurant yields an empty result,
// not an error.
func (m *ContentModel) SimilarTo(restaurantID, n int) []ScoredItem {
	row, ok := m.rowIndex[restaurantID]
	if !ok || n <= 0 {
		return nil
	}

	scored := make([]ScoredItem, 0, len(m.ids)-1)
	for i, sim := range m.similarity[row] {
		if i == row {
			continue
		}
		scored = append(scored, ScoredItem{RestaurantID: m.ids[i], Score: sim})
	}

	sortScored(scored)
	if len(scored) > n {
		scored = scored[:n]
	}
	return scored
}

// MatchPreferences returns up to n restaurants whose food categories or
// districts intersect the given preferences, ranked by average rating.
// Empty preference lists match nothing.
func (m *ContentModel) MatchPreferences(categories, districts []string, n int) []ScoredItem {
	if n <= 0 {
		return nil
	}

	matched := m.catalog.FilterByTags(categories, districts)

	scored := make([]ScoredItem, 0, len(matched))
	for i := range matched {
		scored = append(scored, ScoredItem{
			RestaurantID: matched[i].ID,
			Score:        matched[i].AverageRating,
		})
	}

	sortScored(scored)
	if len(scored) > n {
		scored = scored[:n]
	}
	return scored
}

// TopRated returns the n highest-rated restaurants catalog-wide.
func (m *ContentModel) TopRated(n int) []ScoredItem {
	top := m.catalog.TopRated(n)

	scored := make([]ScoredItem, 0, len(top))
	for i := range top {
		scored = append(scored, ScoredItem{
			RestaurantID: top[i].ID,
			Score:        top[i].AverageRating,
		})
	}
	return scored
}

// MatchedCategories returns the restaurant's food categories that appear in
// the preference list, used for recommendation reasons.
func (m *ContentModel) MatchedCategories(restaurantID int, categories []string) []string {
	r, ok := m.catalog.Get(restaurantID)
	if !ok {
		return nil
	}

	prefSet := make(map[string]struct{}, len(categories))
	for _, c := range categories {
		prefSet[c] = struct{}{}
	}

	var matched []string
	for _, c := range r.FoodCategories {
		if _, ok := prefSet[c]; ok {
			matched = append(matched, c)
		}
	}
	return matched
}
