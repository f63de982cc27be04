// TasteMatch - Restaurant Discovery and Hybrid Recommendations
// Copyright 2026 TasteMatch contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tastematch/tastematch

// Package prefs manages user preference snapshots.
//
// A snapshot is the explicit context object passed into recommendation
// queries; there is no process-wide session singleton. The in-memory snapshot
// is authoritative: durability to BadgerDB is best-effort and never blocks or
// fails an update.
package prefs

import (
	"sync"

	"github.com/rs/zerolog"
)

// History bounds.
const (
	// MaxViewed caps the viewed history; the oldest entries are evicted first.
	MaxViewed = 50
)

// Snapshot is an immutable view of one user's preferences.
type Snapshot struct {
	// FavoriteCategories are the user's preferred food categories.
	FavoriteCategories []string `json:"favorite_categories"`

	// FavoriteDistricts are the user's preferred districts.
	FavoriteDistricts []string `json:"favorite_districts"`

	// PriceMin and PriceMax bound the acceptable spend per person.
	PriceMin float64 `json:"price_min"`
	PriceMax float64 `json:"price_max"`

	// ViewedRestaurants is the ordered view history, oldest first,
	// capped at MaxViewed entries.
	ViewedRestaurants []int `json:"viewed_restaurants"`

	// LikedRestaurants is the ordered like history, append-only and
	// deduplicated.
	LikedRestaurants []int `json:"liked_restaurants"`
}

// Clone returns a deep copy of the snapshot.
func (s Snapshot) Clone() Snapshot {
	out := s
	out.FavoriteCategories = append([]string(nil), s.FavoriteCategories...)
	out.FavoriteDistricts = append([]string(nil), s.FavoriteDistricts...)
	out.ViewedRestaurants = append([]int(nil), s.ViewedRestaurants...)
	out.LikedRestaurants = append([]int(nil), s.LikedRestaurants...)
	return out
}

// DefaultSnapshot returns the snapshot used for a user with no stored
// preferences.
func DefaultSnapshot() Snapshot {
	return Snapshot{
		FavoriteCategories: []string{},
		FavoriteDistricts:  []string{},
		PriceMin:           0,
		PriceMax:           500000,
		ViewedRestaurants:  []int{},
		LikedRestaurants:   []int{},
	}
}

// Persister writes snapshots to a backing store. Nil disables persistence.
type Persister interface {
	Save(userID string, snapshot Snapshot) error
}

// Manager owns the live in-memory snapshot for the session user and applies
// history events to it. All methods are safe for concurrent use.
type Manager struct {
	mu        sync.RWMutex
	userID    string
	snapshot  Snapshot
	persister Persister
	logger    zerolog.Logger
}

// NewManager creates a preference manager for the given session user.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewManager(userID string, initial Snapshot, persister Persister, logger zerolog.Logger) *Manager {
	return &Manager{
		userID:    userID,
		snapshot:  initial.Clone(),
		persister: persister,
		logger:    logger.With().Str("component", "prefs").Logger(),
	}
}

// UserID returns the session user this manager tracks.
func (m *Manager) UserID() string {
	return m.userID
}

// Snapshot returns a copy of the current preference snapshot.
func (m *Manager) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snapshot.Clone()
}

// Update replaces the stated preferences (categories, districts, price range)
// while keeping the interaction history intact.
func (m *Manager) Update(categories, districts []string, priceMin, priceMax float64) Snapshot {
	m.mu.Lock()
	m.snapshot.FavoriteCategories = append([]string(nil), categories...)
	m.snapshot.FavoriteDistricts = append([]string(nil), districts...)
	m.snapshot.PriceMin = priceMin
	m.snapshot.PriceMax = priceMax
	out := m.snapshot.Clone()
	m.mu.Unlock()

	m.persist(out)
	return out
}

// MarkViewed appends a restaurant to the view history. Re-viewing an already
// listed restaurant is a no-op; when the history exceeds MaxViewed the oldest
// entries are evicted.
func (m *Manager) MarkViewed(restaurantID int) Snapshot {
	m.mu.Lock()
	if !contains(m.snapshot.ViewedRestaurants, restaurantID) {
		m.snapshot.ViewedRestaurants = append(m.snapshot.ViewedRestaurants, restaurantID)
		if n := len(m.snapshot.ViewedRestaurants); n > MaxViewed {
			m.snapshot.ViewedRestaurants = m.snapshot.ViewedRestaurants[n-MaxViewed:]
		}
	}
	out := m.snapshot.Clone()
	m.mu.Unlock()

	m.persist(out)
	return out
}

// MarkLiked appends a restaurant to the like history, once, and removes it
// from the view history if present: the like supersedes the weaker signal.
func (m *Manager) MarkLiked(restaurantID int) Snapshot {
	m.mu.Lock()
	if !contains(m.snapshot.LikedRestaurants, restaurantID) {
		m.snapshot.LikedRestaurants = append(m.snapshot.LikedRestaurants, restaurantID)
		m.snapshot.ViewedRestaurants = remove(m.snapshot.ViewedRestaurants, restaurantID)
	}
	out := m.snapshot.Clone()
	m.mu.Unlock()

	m.persist(out)
	return out
}

// HistoryIDs implements the rating store's SnapshotProvider.
func (m *Manager) HistoryIDs() (string, []int, []int) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.userID,
		append([]int(nil), m.snapshot.LikedRestaurants...),
		append([]int(nil), m.snapshot.ViewedRestaurants...)
}

// persist writes the snapshot to the backing store. Failures are logged and
// swallowed: the in-memory update has already succeeded.
func (m *Manager) persist(snapshot Snapshot) {
	if m.persister == nil {
		return
	}
	if err := m.persister.Save(m.userID, snapshot); err != nil {
		m.logger.Warn().Err(err).Msg("preference persistence failed")
	}
}

func contains(ids []int, id int) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func remove(ids []int, id int) []int {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
