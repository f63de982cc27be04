// TasteMatch - Restaurant Discovery and Hybrid Recommendations
// Copyright 2026 TasteMatch contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tastematch/tastematch

// Package catalog provides the restaurant data model and the static catalog
// feed loader.
//
// The catalog is loaded wholesale at startup and is read-only for the
// recommendation core. External enrichment jobs (geocoding) may rewrite the
// feed file between restarts; the core never mutates it.
package catalog

import "sort"

// Restaurant is a single catalog entry. JSON tags match the upstream feed
// produced by the crawler, including its historical misspelling of
// avarage_price_max.
type Restaurant struct {
	// ID is the unique, stable restaurant identifier.
	ID int `json:"id"`

	Name     string `json:"name"`
	Address  string `json:"address"`
	District string `json:"district"`
	City     string `json:"city"`

	// Category is the coarse venue category (restaurant, cafe, street food).
	Category string `json:"category"`

	// FoodCategories lists the dishes and cuisines served.
	FoodCategories []string `json:"food_categories"`

	// Style lists ambience tags (casual, fine dining, garden, ...).
	Style []string `json:"style"`

	// Appropriate lists "suitable for" tags (family, date, groups, ...).
	Appropriate []string `json:"appropriate"`

	// SuitableTime lists suitable visit times (breakfast, lunch, dinner, ...).
	SuitableTime []string `json:"suitable_time"`

	OpeningHour string `json:"main_opening_hour"`
	ClosingHour string `json:"main_closing_hour"`

	// PriceMin and PriceMax bound the average spend per person in VND.
	PriceMin float64 `json:"average_price_min"`
	PriceMax float64 `json:"avarage_price_max"`

	// Rating sub-scores on a 1-10 scale.
	QualityRating  float64 `json:"quality_rating"`
	ServiceRating  float64 `json:"service_rating"`
	PriceRating    float64 `json:"price_rating"`
	LocationRating float64 `json:"location_rating"`
	SpaceRating    float64 `json:"space_rating"`
	AverageRating  float64 `json:"average_rating"`

	// Comment counts by sentiment bucket, aggregated upstream.
	CommentQuantity  int `json:"comment_quantity"`
	MarvelousComment int `json:"marvelous_comment"`
	GoodComment      int `json:"good_comment"`
	OkComment        int `json:"ok_comment"`
	AwfulComment     int `json:"awful_comment"`

	// Latitude and Longitude are present only when the enrichment job has
	// resolved the address. Nil means unresolved.
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

// HasCoordinates reports whether the restaurant has a resolved geocoordinate.
func (r *Restaurant) HasCoordinates() bool {
	return r.Latitude != nil && r.Longitude != nil
}

// Catalog is an immutable, ID-indexed collection of restaurants.
type Catalog struct {
	restaurants []Restaurant
	byID        map[int]int // restaurant ID -> index in restaurants
}

// New builds a Catalog from a slice of restaurants. Input order is preserved;
// later duplicates of an ID shadow earlier ones in lookups.
func New(restaurants []Restaurant) *Catalog {
	byID := make(map[int]int, len(restaurants))
	for i := range restaurants {
		byID[restaurants[i].ID] = i
	}
	return &Catalog{restaurants: restaurants, byID: byID}
}

// Len returns the number of restaurants in the catalog.
func (c *Catalog) Len() int {
	return len(c.restaurants)
}

// All returns the restaurants in feed order. Callers must not mutate the
// returned slice.
func (c *Catalog) All() []Restaurant {
	return c.restaurants
}

// Get returns the restaurant with the given ID.
func (c *Catalog) Get(id int) (Restaurant, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Restaurant{}, false
	}
	return c.restaurants[i], true
}

// IDs returns all restaurant IDs in feed order.
func (c *Catalog) IDs() []int {
	ids := make([]int, len(c.restaurants))
	for i := range c.restaurants {
		ids[i] = c.restaurants[i].ID
	}
	return ids
}

// TopRated returns up to n restaurants ordered by average rating descending.
// Ties keep feed order.
func (c *Catalog) TopRated(n int) []Restaurant {
	if n <= 0 {
		return nil
	}

	sorted := make([]Restaurant, len(c.restaurants))
	copy(sorted, c.restaurants)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].AverageRating > sorted[j].AverageRating
	})

	if n > len(sorted) {
		n = len(sorted)
	}
	return sorted[:n]
}

// FilterByTags returns restaurants whose food categories intersect the given
// category set or whose district is in the given district set. Empty sets
// match nothing for that facet; if both sets are empty the result is empty.
func (c *Catalog) FilterByTags(categories, districts []string) []Restaurant {
	catSet := toSet(categories)
	distSet := toSet(districts)

	var matched []Restaurant
	for i := range c.restaurants {
		r := &c.restaurants[i]
		if intersects(catSet, r.FoodCategories) {
			matched = append(matched, *r)
			continue
		}
		if _, ok := distSet[r.District]; ok {
			matched = append(matched, *r)
		}
	}
	return matched
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}

func intersects(set map[string]struct{}, values []string) bool {
	if len(set) == 0 {
		return false
	}
	for _, v := range values {
		if _, ok := set[v]; ok {
			return true
		}
	}
	return false
}
