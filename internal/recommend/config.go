// TasteMatch - Restaurant Discovery and Hybrid Recommendations
// Copyright 2026 TasteMatch contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tastematch/tastematch

package recommend

import (
	"fmt"
	"math"
)

// Config controls the hybrid ranker and the feature encoder.
type Config struct {
	// CFWeight and CBWeight blend the two paths. They must sum to 1.
	CFWeight float64 `koanf:"cf_weight" json:"cf_weight" validate:"gte=0,lte=1"`
	CBWeight float64 `koanf:"cb_weight" json:"cb_weight" validate:"gte=0,lte=1"`

	// Base scores for the content-based candidate strategies.
	LikedSimilarScore  float64 `koanf:"liked_similar_score" json:"liked_similar_score" validate:"gt=0,lte=1"`
	CategoryMatchScore float64 `koanf:"category_match_score" json:"category_match_score" validate:"gt=0,lte=1"`
	TopRatedScore      float64 `koanf:"top_rated_score" json:"top_rated_score" validate:"gt=0,lte=1"`

	// Facets weights the encoder's feature blocks.
	Facets FacetWeights `koanf:"facets" json:"facets"`
}

// DefaultConfig returns the default engine configuration: content-based
// signals slightly outweigh collaborative ones.
func DefaultConfig() Config {
	return Config{
		CFWeight:           0.4,
		CBWeight:           0.6,
		LikedSimilarScore:  0.95,
		CategoryMatchScore: 0.85,
		TopRatedScore:      0.75,
		Facets:             DefaultFacetWeights(),
	}
}

// Validate checks internal consistency beyond per-field bounds.
func (c Config) Validate() error {
	if math.Abs(c.CFWeight+c.CBWeight-1.0) > 1e-9 {
		return fmt.Errorf("cf_weight (%v) and cb_weight (%v) must sum to 1", c.CFWeight, c.CBWeight)
	}
	return nil
}
