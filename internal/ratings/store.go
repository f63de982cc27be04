// TasteMatch - Restaurant Discovery and Hybrid Recommendations
// Copyright 2026 TasteMatch contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tastematch/tastematch

package ratings

import (
	"github.com/rs/zerolog"
)

// StoreConfig points the store at its event sources. Empty paths disable the
// corresponding file sources.
type StoreConfig struct {
	// CommentsPath is the per-restaurant comments file.
	CommentsPath string

	// ReviewsPath is the bulk review import file.
	ReviewsPath string
}

// SnapshotProvider supplies the preference-derived implicit events.
// Implemented by the prefs store; nil disables the preference source.
type SnapshotProvider interface {
	// HistoryIDs returns the session user's liked and viewed restaurant IDs.
	HistoryIDs() (userID string, liked, viewed []int)
}

// Store pools rating events from all configured sources.
//
// The merge policy is deliberate: sources are pooled without deduplication,
// so a user may carry multiple ratings for one item from different sources.
// Duplicates collapse to their mean only when the matrix is built.
type Store struct {
	config   StoreConfig
	snapshot SnapshotProvider
	logger   zerolog.Logger
}

// NewStore creates a rating store over the configured sources.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewStore(cfg StoreConfig, snapshot SnapshotProvider, logger zerolog.Logger) *Store {
	return &Store{
		config:   cfg,
		snapshot: snapshot,
		logger:   logger.With().Str("component", "ratings").Logger(),
	}
}

// Load gathers events from every available source. A source that is absent
// or malformed is logged and skipped; the remaining sources proceed. If no
// source yields events, Load returns ErrNoData so callers can distinguish
// cold start from a successful load.
func (s *Store) Load() ([]Event, error) {
	var events []Event

	if s.config.CommentsPath != "" {
		events = s.appendSource(events, "comments", func() ([]Event, error) {
			return LoadCommentEvents(s.config.CommentsPath)
		})
	}

	if s.config.ReviewsPath != "" {
		events = s.appendSource(events, "reviews", func() ([]Event, error) {
			return LoadReviewEvents(s.config.ReviewsPath)
		})
	}

	if s.snapshot != nil {
		userID, liked, viewed := s.snapshot.HistoryIDs()
		prefEvents := PreferenceEvents(userID, liked, viewed)
		s.logger.Debug().
			Str("source", "preferences").
			Int("events", len(prefEvents)).
			Msg("source loaded")
		events = append(events, prefEvents...)
	}

	if len(events) == 0 {
		return nil, ErrNoData
	}

	s.logger.Info().Int("events", len(events)).Msg("rating sources pooled")
	return events, nil
}

func (s *Store) appendSource(events []Event, name string, load func() ([]Event, error)) []Event {
	loaded, err := load()
	if err != nil {
		s.logger.Warn().Str("source", name).Err(err).Msg("skipping rating source")
		return events
	}
	s.logger.Debug().Str("source", name).Int("events", len(loaded)).Msg("source loaded")
	return append(events, loaded...)
}
