// TasteMatch - Restaurant Discovery and Hybrid Recommendations
// Copyright 2026 TasteMatch contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tastematch/tastematch

package recommend

import (
	"fmt"
	"sort"
	"strings"

	"github.com/tastematch/tastematch/internal/catalog"
	"github.com/tastematch/tastematch/internal/prefs"
)

// Candidate pool sizes for the content-based strategies.
const (
	similarPerLiked   = 10
	categoryMatchPool = 15
	topRatedPool      = 15
	recentLikedWindow = 3
)

// fusedScore accumulates per-path contributions for one restaurant. The
// presence flags matter because a valid CF contribution can normalize to 0.
type fusedScore struct {
	cf       float64
	cb       float64
	hasCF    bool
	hasCB    bool
	reasonCF string
	reasonCB string
}

// HybridRanker fuses collaborative and content-based candidates into one
// ranked list. It is a pure function of the trained models and the caller's
// preference snapshot; it holds no per-user state of its own.
type HybridRanker struct {
	cfg Config
}

// NewHybridRanker creates a ranker with the given blend configuration.
func NewHybridRanker(cfg Config) *HybridRanker {
	return &HybridRanker{cfg: cfg}
}

// Rank produces up to n recommendations for the user described by the
// snapshot. Restaurants absent from the catalog are dropped; restaurants in
// the view history are never suggested by the content path.
func (h *HybridRanker) Rank(userID string, snapshot prefs.Snapshot, c *catalog.Catalog, cf *ItemCF, cb *ContentModel, n int) []Recommendation {
	if n <= 0 {
		return nil
	}

	scores := make(map[int]*fusedScore)

	h.addCollaborative(scores, userID, cf, n)
	h.addContentBased(scores, snapshot, cb)

	recs := make([]Recommendation, 0, len(scores))
	for id, s := range scores {
		if _, ok := c.Get(id); !ok {
			continue
		}
		recs = append(recs, fuse(id, s))
	}

	sortRecommendations(recs)
	if len(recs) > n {
		recs = recs[:n]
	}
	return recs
}

// addCollaborative pulls up to 2n CF candidates and min-max normalizes their
// predicted ratings into [0, 1]. When every candidate predicts the same
// rating the normalization carries no signal and the CF path contributes
// nothing.
func (h *HybridRanker) addCollaborative(scores map[int]*fusedScore, userID string, cf *ItemCF, n int) {
	if cf == nil || !cf.Trained() {
		return
	}

	candidates := cf.Recommend(userID, n*2)
	if len(candidates) == 0 {
		return
	}

	minScore, maxScore := candidates[0].Score, candidates[0].Score
	for _, c := range candidates[1:] {
		if c.Score < minScore {
			minScore = c.Score
		}
		if c.Score > maxScore {
			maxScore = c.Score
		}
	}
	if maxScore <= minScore {
		return
	}

	for _, c := range candidates {
		normalized := (c.Score - minScore) / (maxScore - minScore)
		scores[c.RestaurantID] = &fusedScore{
			cf:       normalized * h.cfg.CFWeight,
			hasCF:    true,
			reasonCF: "based on users with similar tastes",
		}
	}
}

// addContentBased collects candidates from the three content strategies in
// descending base-score order. A restaurant reached by several strategies
// keeps its strongest content score and reason.
func (h *HybridRanker) addContentBased(scores map[int]*fusedScore, snapshot prefs.Snapshot, cb *ContentModel) {
	if cb == nil {
		return
	}

	viewed := make(map[int]struct{}, len(snapshot.ViewedRestaurants))
	for _, id := range snapshot.ViewedRestaurants {
		viewed[id] = struct{}{}
	}

	type candidate struct {
		id     int
		score  float64
		reason string
	}
	var candidates []candidate

	// Strategy A: similar to recently liked restaurants.
	liked := snapshot.LikedRestaurants
	if len(liked) > recentLikedWindow {
		liked = liked[len(liked)-recentLikedWindow:]
	}
	for _, likedID := range liked {
		for _, s := range cb.SimilarTo(likedID, similarPerLiked) {
			// SimilarTo pads with zero-similarity entries in sparse
			// catalogs; those carry no liked signal.
			if s.Score <= 0 {
				continue
			}
			candidates = append(candidates, candidate{
				id:     s.RestaurantID,
				score:  h.cfg.LikedSimilarScore,
				reason: "similar to a restaurant you liked",
			})
		}
	}

	// Strategy B: favorite category match.
	if len(snapshot.FavoriteCategories) > 0 {
		for _, s := range cb.MatchPreferences(snapshot.FavoriteCategories, nil, categoryMatchPool) {
			matched := cb.MatchedCategories(s.RestaurantID, snapshot.FavoriteCategories)
			if len(matched) > 2 {
				matched = matched[:2]
			}
			candidates = append(candidates, candidate{
				id:     s.RestaurantID,
				score:  h.cfg.CategoryMatchScore,
				reason: fmt.Sprintf("matches your tastes: %s", strings.Join(matched, ", ")),
			})
		}
	}

	// Strategy C: top rated catalog-wide.
	for _, s := range cb.TopRated(topRatedPool) {
		candidates = append(candidates, candidate{
			id:     s.RestaurantID,
			score:  h.cfg.TopRatedScore,
			reason: fmt.Sprintf("highly rated (%.1f/10)", s.Score),
		})
	}

	for _, c := range candidates {
		if _, seen := viewed[c.id]; seen {
			continue
		}

		weighted := c.score * h.cfg.CBWeight
		if existing, ok := scores[c.id]; ok {
			if !existing.hasCB || weighted > existing.cb {
				existing.cb = weighted
				existing.reasonCB = c.reason
			}
			existing.hasCB = true
			continue
		}
		scores[c.id] = &fusedScore{cb: weighted, hasCB: true, reasonCB: c.reason}
	}
}

// fuse combines per-path contributions into a tagged recommendation.
func fuse(id int, s *fusedScore) Recommendation {
	rec := Recommendation{
		RestaurantID: id,
		Score:        s.cf + s.cb,
		CFScore:      s.cf,
		CBScore:      s.cb,
	}

	switch {
	case s.hasCF && s.hasCB:
		rec.Tag = TagHybrid
		rec.Reason = fmt.Sprintf("%s & %s", s.reasonCB, s.reasonCF)
	case s.hasCF:
		rec.Tag = TagCollaborative
		rec.Reason = s.reasonCF
	default:
		rec.Tag = TagContent
		rec.Reason = s.reasonCB
	}
	return rec
}

func sortRecommendations(recs []Recommendation) {
	sort.SliceStable(recs, func(i, j int) bool {
		if recs[i].Score != recs[j].Score {
			return recs[i].Score > recs[j].Score
		}
		return recs[i].RestaurantID < recs[j].RestaurantID
	})
}
