// TasteMatch - Restaurant Discovery and Hybrid Recommendations
// Copyright 2026 TasteMatch contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tastematch/tastematch

package ratings

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
)

// stubSnapshot implements SnapshotProvider.
type stubSnapshot struct {
	userID string
	liked  []int
	viewed []int
}

func (s *stubSnapshot) HistoryIDs() (string, []int, []int) {
	return s.userID, s.liked, s.viewed
}

func TestStorePoolsAllSources(t *testing.T) {
	comments := writeTempFile(t, "comments.json", `{
		"1": [{"id": 1, "rating": 8, "comment": "good", "user": "alice"}]
	}`)
	reviews := writeTempFile(t, "reviews.json", `[
		{"user_id": "u1", "res_id": 2, "rating": 7}
	]`)

	store := NewStore(StoreConfig{CommentsPath: comments, ReviewsPath: reviews},
		&stubSnapshot{userID: "cur", liked: []int{3}, viewed: []int{4}}, zerolog.Nop())

	events, err := store.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(events) != 4 {
		t.Fatalf("len(events) = %d, want 4", len(events))
	}

	bySource := make(map[Source]int)
	for _, e := range events {
		bySource[e.Source]++
	}
	for _, src := range []Source{SourceExplicitComment, SourceImportedReview, SourceImplicitLike, SourceImplicitView} {
		if bySource[src] != 1 {
			t.Errorf("events from %v = %d, want 1", src, bySource[src])
		}
	}
}

func TestStoreSkipsBrokenSources(t *testing.T) {
	bad := writeTempFile(t, "bad.json", "{broken")
	missing := filepath.Join(t.TempDir(), "missing.json")

	store := NewStore(StoreConfig{CommentsPath: bad, ReviewsPath: missing},
		&stubSnapshot{userID: "cur", liked: []int{1}}, zerolog.Nop())

	events, err := store.Load()
	if err != nil {
		t.Fatalf("Load() error = %v, want broken sources skipped", err)
	}
	if len(events) != 1 || events[0].Source != SourceImplicitLike {
		t.Errorf("events = %+v, want only the implicit like", events)
	}
}

func TestStoreNoData(t *testing.T) {
	store := NewStore(StoreConfig{}, nil, zerolog.Nop())

	if _, err := store.Load(); !errors.Is(err, ErrNoData) {
		t.Errorf("Load() error = %v, want ErrNoData", err)
	}
}
