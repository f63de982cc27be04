// TasteMatch - Restaurant Discovery and Hybrid Recommendations
// Copyright 2026 TasteMatch contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tastematch/tastematch

package recommend

import (
	"sort"

	"github.com/tastematch/tastematch/internal/catalog"
)

// FacetWeights scale each feature block of the encoded restaurant vector.
// Larger weights make that facet dominate content similarity.
type FacetWeights struct {
	Food        float64 `koanf:"food" json:"food" validate:"gte=0"`
	Style       float64 `koanf:"style" json:"style" validate:"gte=0"`
	Appropriate float64 `koanf:"appropriate" json:"appropriate" validate:"gte=0"`
	Time        float64 `koanf:"time" json:"time" validate:"gte=0"`
	District    float64 `koanf:"district" json:"district" validate:"gte=0"`
	Price       float64 `koanf:"price" json:"price" validate:"gte=0"`
	Rating      float64 `koanf:"rating" json:"rating" validate:"gte=0"`
}

// DefaultFacetWeights returns the default facet weighting. Food categories
// dominate, ambience facets follow, numeric facets act as mild tie-breakers.
func DefaultFacetWeights() FacetWeights {
	return FacetWeights{
		Food:        3.0,
		Style:       2.0,
		Appropriate: 2.0,
		Time:        1.5,
		District:    1.5,
		Price:       1.0,
		Rating:      1.0,
	}
}

// Vocabulary fixes the dimension order of encoded vectors. It is derived once
// from the full catalog so every restaurant encodes to the same layout.
type Vocabulary struct {
	categories  []string
	styles      []string
	appropriate []string
	times       []string
	districts   []string

	categoryIndex    map[string]int
	styleIndex       map[string]int
	appropriateIndex map[string]int
	timeIndex        map[string]int
	districtIndex    map[string]int

	priceMin, priceMax   float64
	ratingMin, ratingMax float64
}

// BuildVocabulary derives the encoding vocabulary from the catalog.
func BuildVocabulary(c *catalog.Catalog) *Vocabulary {
	v := &Vocabulary{
		priceMin:  0,
		priceMax:  0,
		ratingMin: 0,
		ratingMax: 0,
	}

	catSet := make(map[string]struct{})
	styleSet := make(map[string]struct{})
	apprSet := make(map[string]struct{})
	timeSet := make(map[string]struct{})
	distSet := make(map[string]struct{})

	first := true
	for _, r := range c.All() {
		for _, s := range r.FoodCategories {
			catSet[s] = struct{}{}
		}
		for _, s := range r.Style {
			styleSet[s] = struct{}{}
		}
		for _, s := range r.Appropriate {
			apprSet[s] = struct{}{}
		}
		for _, s := range r.SuitableTime {
			timeSet[s] = struct{}{}
		}
		if r.District != "" {
			distSet[r.District] = struct{}{}
		}

		mid := priceMidpoint(r)
		if first {
			v.priceMin, v.priceMax = mid, mid
			v.ratingMin, v.ratingMax = r.AverageRating, r.AverageRating
			first = false
			continue
		}
		if mid < v.priceMin {
			v.priceMin = mid
		}
		if mid > v.priceMax {
			v.priceMax = mid
		}
		if r.AverageRating < v.ratingMin {
			v.ratingMin = r.AverageRating
		}
		if r.AverageRating > v.ratingMax {
			v.ratingMax = r.AverageRating
		}
	}

	v.categories, v.categoryIndex = sortedIndex(catSet)
	v.styles, v.styleIndex = sortedIndex(styleSet)
	v.appropriate, v.appropriateIndex = sortedIndex(apprSet)
	v.times, v.timeIndex = sortedIndex(timeSet)
	v.districts, v.districtIndex = sortedIndex(distSet)

	return v
}

// Dimensions returns the encoded vector length.
func (v *Vocabulary) Dimensions() int {
	return len(v.categories) + len(v.styles) + len(v.appropriate) +
		len(v.times) + len(v.districts) + 2
}

// Categories returns the known food categories in dimension order.
func (v *Vocabulary) Categories() []string {
	return append([]string(nil), v.categories...)
}

// Districts returns the known districts in dimension order.
func (v *Vocabulary) Districts() []string {
	return append([]string(nil), v.districts...)
}

// Encoder turns restaurants into fixed-length weighted feature vectors.
type Encoder struct {
	vocab   *Vocabulary
	weights FacetWeights
}

// NewEncoder creates an encoder over the given vocabulary.
func NewEncoder(vocab *Vocabulary, weights FacetWeights) *Encoder {
	return &Encoder{vocab: vocab, weights: weights}
}

// Encode produces the weighted one-hot feature vector for a restaurant.
// Unknown facet values (not in the vocabulary) are ignored.
func (e *Encoder) Encode(r catalog.Restaurant) []float64 {
	v := e.vocab
	vec := make([]float64, v.Dimensions())

	offset := 0
	offset = encodeBlock(vec, offset, len(v.categories), v.categoryIndex, r.FoodCategories, e.weights.Food)
	offset = encodeBlock(vec, offset, len(v.styles), v.styleIndex, r.Style, e.weights.Style)
	offset = encodeBlock(vec, offset, len(v.appropriate), v.appropriateIndex, r.Appropriate, e.weights.Appropriate)
	offset = encodeBlock(vec, offset, len(v.times), v.timeIndex, r.SuitableTime, e.weights.Time)

	if idx, ok := v.districtIndex[r.District]; ok {
		vec[offset+idx] = e.weights.District
	}
	offset += len(v.districts)

	vec[offset] = normalize(priceMidpoint(r), v.priceMin, v.priceMax) * e.weights.Price
	vec[offset+1] = normalize(r.AverageRating, v.ratingMin, v.ratingMax) * e.weights.Rating

	return vec
}

// EncodeAll encodes every restaurant in order.
func (e *Encoder) EncodeAll(restaurants []catalog.Restaurant) [][]float64 {
	vectors := make([][]float64, len(restaurants))
	for i := range restaurants {
		vectors[i] = e.Encode(restaurants[i])
	}
	return vectors
}

func encodeBlock(vec []float64, offset, size int, index map[string]int, values []string, weight float64) int {
	for _, s := range values {
		if idx, ok := index[s]; ok {
			vec[offset+idx] = weight
		}
	}
	return offset + size
}

// normalize min-max scales v into [0, 1]. A degenerate range yields 0.
func normalize(v, lo, hi float64) float64 {
	if hi <= lo {
		return 0
	}
	if v < lo {
		return 0
	}
	if v > hi {
		return 1
	}
	return (v - lo) / (hi - lo)
}

func priceMidpoint(r catalog.Restaurant) float64 {
	return (r.PriceMin + r.PriceMax) / 2
}

func sortedIndex(set map[string]struct{}) ([]string, map[string]int) {
	values := make([]string, 0, len(set))
	for s := range set {
		values = append(values, s)
	}
	sort.Strings(values)

	index := make(map[string]int, len(values))
	for i, s := range values {
		index[s] = i
	}
	return values, index
}
