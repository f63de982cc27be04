// TasteMatch - Restaurant Discovery and Hybrid Recommendations
// Copyright 2026 TasteMatch contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tastematch/tastematch

package recommend

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/tastematch/tastematch/internal/catalog"
	"github.com/tastematch/tastematch/internal/prefs"
	"github.com/tastematch/tastematch/internal/ratings"
)

// EventSource supplies the pooled rating events for training. This is
// implemented by the ratings store; the interface keeps the engine decoupled
// from source file handling.
type EventSource interface {
	Load() ([]ratings.Event, error)
}

// Engine is the facade over the content model, the collaborative filter, and
// the hybrid ranker. Queries read an immutable snapshot; Train replaces the
// whole snapshot under an exclusive lock.
type Engine struct {
	cfg     Config
	catalog *catalog.Catalog
	events  EventSource
	ranker  *HybridRanker
	logger  zerolog.Logger

	mu      sync.RWMutex
	cf      *ItemCF
	content *ContentModel
	status  TrainingStatus
}

// NewEngine creates an untrained engine. Call Train before querying;
// untrained engines answer every query with empty results.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg Config, c *catalog.Catalog, events EventSource, logger zerolog.Logger) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Engine{
		cfg:     cfg,
		catalog: c,
		events:  events,
		ranker:  NewHybridRanker(cfg),
		logger:  logger.With().Str("component", "recommend").Logger(),
	}, nil
}

// Train rebuilds both models from current data. The content model is always
// rebuilt from the catalog; the collaborative model trains only when rating
// events exist. A source with no data is not an error: the engine degrades
// to content-only recommendations.
func (e *Engine) Train(ctx context.Context) error {
	start := time.Now()

	events, err := e.events.Load()
	if err != nil {
		e.logger.Warn().Err(err).Msg("no rating events available, training content model only")
		events = nil
	}

	encoder := NewEncoder(BuildVocabulary(e.catalog), e.cfg.Facets)
	content := BuildContentModel(e.catalog, encoder)

	cf := NewItemCF()
	if err := cf.Train(ctx, events); err != nil {
		return fmt.Errorf("train collaborative filter: %w", err)
	}

	users, items := cf.Stats()

	e.mu.Lock()
	e.cf = cf
	e.content = content
	e.status = TrainingStatus{
		Trained:       true,
		Version:       e.status.Version + 1,
		LastTrainedAt: time.Now(),
		RatingEvents:  len(events),
		Users:         users,
		Restaurants:   e.catalog.Len(),
	}
	e.mu.Unlock()

	e.logger.Info().
		Int("rating_events", len(events)).
		Int("matrix_users", users).
		Int("matrix_items", items).
		Int("restaurants", e.catalog.Len()).
		Dur("duration", time.Since(start)).
		Msg("training complete")

	return nil
}

// Recommend returns the hybrid-ranked suggestions for the user described by
// the preference snapshot.
func (e *Engine) Recommend(userID string, snapshot prefs.Snapshot, n int) []Recommendation {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if e.content == nil {
		return []Recommendation{}
	}
	recs := e.ranker.Rank(userID, snapshot, e.catalog, e.cf, e.content, n)
	if recs == nil {
		recs = []Recommendation{}
	}
	return recs
}

// SimilarTo returns restaurants similar to the given one by metadata.
func (e *Engine) SimilarTo(restaurantID, n int) []ScoredItem {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if e.content == nil {
		return []ScoredItem{}
	}
	items := e.content.SimilarTo(restaurantID, n)
	if items == nil {
		items = []ScoredItem{}
	}
	return items
}

// CollaborativeFor returns the pure collaborative ranking for a user,
// bypassing the hybrid blend. Unknown users get the popularity fallback.
func (e *Engine) CollaborativeFor(userID string, n int) []ScoredItem {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if e.cf == nil {
		return []ScoredItem{}
	}
	items := e.cf.Recommend(userID, n)
	if items == nil {
		items = []ScoredItem{}
	}
	return items
}

// Popular returns the popularity ranking from the rating matrix, or the
// catalog's top-rated restaurants when no ratings exist.
func (e *Engine) Popular(n int) []ScoredItem {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if e.cf != nil && e.cf.Trained() {
		return e.cf.Popular(n)
	}
	if e.content != nil {
		return e.content.TopRated(n)
	}
	return []ScoredItem{}
}

// Status reports the current training state.
func (e *Engine) Status() TrainingStatus {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.status
}
