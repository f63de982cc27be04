// TasteMatch - Restaurant Discovery and Hybrid Recommendations
// Copyright 2026 TasteMatch contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tastematch/tastematch

package recommend

import (
	"context"
	"sort"

	"github.com/tastematch/tastematch/internal/ratings"
)

// ItemCF implements item-based collaborative filtering over the pooled
// user-item rating matrix.
//
// For a target user u and an unrated restaurant i:
//
//	predicted(u, i) = sum_j sim(i, j) * r(u, j) / sum_j sim(i, j)
//
// where j ranges over the restaurants u has rated and only positive
// similarities contribute. Unknown users fall back to popularity ranking.
type ItemCF struct {
	matrix *ratings.Matrix

	// itemIndex maps restaurant ID to its row in similarity.
	itemIndex map[int]int

	// similarity is the item-item cosine similarity matrix.
	similarity [][]float64
}

// NewItemCF creates an untrained item-based CF model.
func NewItemCF() *ItemCF {
	return &ItemCF{}
}

// Trained reports whether the model holds a non-empty matrix.
func (cf *ItemCF) Trained() bool {
	return cf.matrix != nil && !cf.matrix.Empty()
}

// Train builds the item-item similarity matrix from rating events. An empty
// event set leaves the model untrained without error; queries then return
// empty results.
func (cf *ItemCF) Train(ctx context.Context, events []ratings.Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	matrix := ratings.BuildMatrix(events)
	if matrix.Empty() {
		cf.matrix = nil
		cf.itemIndex = nil
		cf.similarity = nil
		return nil
	}

	items := matrix.Items()
	itemIndex := make(map[int]int, len(items))
	for i, id := range items {
		itemIndex[id] = i
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	cf.matrix = matrix
	cf.itemIndex = itemIndex
	cf.similarity = CosineMatrix(matrix.ItemColumns())
	return nil
}

// Recommend returns up to n predicted-rating-ranked restaurants the user has
// not rated. Unknown users receive the popularity fallback. An untrained
// model returns an empty slice.
func (cf *ItemCF) Recommend(userID string, n int) []ScoredItem {
	if !cf.Trained() || n <= 0 {
		return nil
	}

	if !cf.matrix.HasUser(userID) {
		return cf.Popular(n)
	}

	userRatings := cf.matrix.UserRatings(userID)
	if len(userRatings) == 0 {
		return cf.Popular(n)
	}

	var predictions []ScoredItem
	for _, itemID := range cf.matrix.Items() {
		if _, rated := userRatings[itemID]; rated {
			continue
		}

		row := cf.similarity[cf.itemIndex[itemID]]

		var weighted, simSum float64
		for ratedID, rating := range userRatings {
			sim := row[cf.itemIndex[ratedID]]
			if sim <= 0 {
				continue
			}
			weighted += sim * rating
			simSum += sim
		}
		if simSum > 0 {
			predictions = append(predictions, ScoredItem{
				RestaurantID: itemID,
				Score:        weighted / simSum,
			})
		}
	}

	sortScored(predictions)
	if len(predictions) > n {
		predictions = predictions[:n]
	}
	return predictions
}

// Popular ranks restaurants by mean rating across all users, counting
// unrated cells as zero. Used for cold-start users.
func (cf *ItemCF) Popular(n int) []ScoredItem {
	if !cf.Trained() || n <= 0 {
		return nil
	}

	items := cf.matrix.Items()
	scored := make([]ScoredItem, 0, len(items))
	for _, itemID := range items {
		scored = append(scored, ScoredItem{
			RestaurantID: itemID,
			Score:        cf.matrix.MeanItemRating(itemID),
		})
	}

	sortScored(scored)
	if len(scored) > n {
		scored = scored[:n]
	}
	return scored
}

// Stats returns matrix dimensions for status reporting.
func (cf *ItemCF) Stats() (users, items int) {
	if !cf.Trained() {
		return 0, 0
	}
	return len(cf.matrix.Users()), len(cf.matrix.Items())
}

// sortScored orders by score descending, restaurant ID ascending on ties,
// keeping results deterministic.
func sortScored(items []ScoredItem) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Score != items[j].Score {
			return items[i].Score > items[j].Score
		}
		return items[i].RestaurantID < items[j].RestaurantID
	})
}
