// TasteMatch - Restaurant Discovery and Hybrid Recommendations
// Copyright 2026 TasteMatch contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tastematch/tastematch

package recommend

import (
	"testing"

	"github.com/tastematch/tastematch/internal/catalog"
)

func testContentModel() *ContentModel {
	c := testCatalog()
	return BuildContentModel(c, NewEncoder(BuildVocabulary(c), DefaultFacetWeights()))
}

func TestSimilarToRanksSameCuisineFirst(t *testing.T) {
	m := testContentModel()

	got := m.SimilarTo(1, 5)
	if len(got) == 0 {
		t.Fatal("SimilarTo(1) returned no results")
	}
	if got[0].RestaurantID != 3 {
		t.Errorf("SimilarTo(1)[0].RestaurantID = %d, want 3 (the other pho place)", got[0].RestaurantID)
	}
	for _, s := range got {
		if s.RestaurantID == 1 {
			t.Error("SimilarTo(1) includes the restaurant itself")
		}
	}
}

func TestSimilarToUnknownRestaurant(t *testing.T) {
	m := testContentModel()

	if got := m.SimilarTo(999, 5); len(got) != 0 {
		t.Errorf("SimilarTo(999) = %v, want empty", got)
	}
}

func TestSimilarToKeepsZeroSimilarityEntries(t *testing.T) {
	// Two restaurants sharing no facet values at all. Numeric facets are
	// zeroed out so the one-hot blocks fully determine similarity. The
	// dissimilar restaurant still appears, ranked last with score 0, so the
	// result can fill n in a sparse catalog.
	c := catalog.New([]catalog.Restaurant{
		{ID: 1, Name: "Pho Corner", District: "District 1", FoodCategories: []string{"Pho"}, AverageRating: 8},
		{ID: 2, Name: "Sushi Bar", District: "District 2", FoodCategories: []string{"Sushi"}, AverageRating: 8},
	})
	weights := DefaultFacetWeights()
	weights.Price = 0
	weights.Rating = 0

	m := BuildContentModel(c, NewEncoder(BuildVocabulary(c), weights))

	got := m.SimilarTo(1, 5)
	if len(got) != 1 {
		t.Fatalf("len(SimilarTo(1)) = %d, want 1", len(got))
	}
	if got[0].RestaurantID != 2 || got[0].Score != 0 {
		t.Errorf("SimilarTo(1)[0] = %+v, want restaurant 2 with score 0", got[0])
	}
}

func TestMatchPreferences(t *testing.T) {
	m := testContentModel()

	got := m.MatchPreferences([]string{"Pho"}, nil, 10)
	if len(got) != 2 {
		t.Fatalf("len(MatchPreferences) = %d, want 2", len(got))
	}
	// Ranked by average rating: restaurant 1 (8.5) before restaurant 3 (7.8).
	if got[0].RestaurantID != 1 || got[1].RestaurantID != 3 {
		t.Errorf("MatchPreferences order = [%d, %d], want [1, 3]", got[0].RestaurantID, got[1].RestaurantID)
	}
}

func TestMatchPreferencesEmptyPrefs(t *testing.T) {
	m := testContentModel()

	if got := m.MatchPreferences(nil, nil, 10); len(got) != 0 {
		t.Errorf("MatchPreferences(nil, nil) = %v, want empty", got)
	}
}

func TestTopRated(t *testing.T) {
	m := testContentModel()

	got := m.TopRated(2)
	if len(got) != 2 {
		t.Fatalf("len(TopRated(2)) = %d, want 2", len(got))
	}
	if got[0].RestaurantID != 2 {
		t.Errorf("TopRated[0].RestaurantID = %d, want 2 (rating 9.2)", got[0].RestaurantID)
	}
}

func TestMatchedCategories(t *testing.T) {
	m := testContentModel()

	got := m.MatchedCategories(1, []string{"Pho", "Sushi"})
	if len(got) != 1 || got[0] != "Pho" {
		t.Errorf("MatchedCategories(1) = %v, want [Pho]", got)
	}
}
