// TasteMatch - Restaurant Discovery and Hybrid Recommendations
// Copyright 2026 TasteMatch contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tastematch/tastematch

package prefs

import (
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
)

// Key prefix for BadgerDB storage
const prefsKeyPrefix = "prefs:"

// ErrNotFound is returned when no snapshot is stored for a user.
var ErrNotFound = errors.New("prefs: snapshot not found")

// BadgerStore persists preference snapshots in BadgerDB, keyed by user ID.
// Snapshots survive restarts; callers treat persistence as best-effort.
type BadgerStore struct {
	db *badger.DB
}

// NewBadgerStore creates a BadgerDB-backed preference store.
func NewBadgerStore(db *badger.DB) *BadgerStore {
	return &BadgerStore{db: db}
}

// OpenBadgerStore opens a BadgerDB at the given path and wraps it in a store.
// The caller owns the returned database handle and must close it on shutdown.
func OpenBadgerStore(path string) (*BadgerStore, *badger.DB, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil // Suppress BadgerDB logs

	db, err := badger.Open(opts)
	if err != nil {
		return nil, nil, fmt.Errorf("open badger db for preferences: %w", err)
	}
	return NewBadgerStore(db), db, nil
}

// Save stores the snapshot for the given user, replacing any previous one.
func (s *BadgerStore) Save(userID string, snapshot Snapshot) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	return s.db.Update(func(txn *badger.Txn) error {
		key := []byte(prefsKeyPrefix + userID)
		if err := txn.Set(key, data); err != nil {
			return fmt.Errorf("set snapshot: %w", err)
		}
		return nil
	})
}

// Load retrieves the stored snapshot for the given user. It returns
// ErrNotFound when the user has never been persisted.
func (s *BadgerStore) Load(userID string) (Snapshot, error) {
	var snapshot Snapshot

	err := s.db.View(func(txn *badger.Txn) error {
		key := []byte(prefsKeyPrefix + userID)
		item, err := txn.Get(key)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("get snapshot: %w", err)
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &snapshot)
		})
	})
	if err != nil {
		return Snapshot{}, err
	}

	return snapshot, nil
}

// LoadOrDefault retrieves the stored snapshot, falling back to
// DefaultSnapshot when none exists.
func (s *BadgerStore) LoadOrDefault(userID string) (Snapshot, error) {
	snapshot, err := s.Load(userID)
	if errors.Is(err, ErrNotFound) {
		return DefaultSnapshot(), nil
	}
	if err != nil {
		return Snapshot{}, err
	}
	return snapshot, nil
}
