// TasteMatch - Restaurant Discovery and Hybrid Recommendations
// Copyright 2026 TasteMatch contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tastematch/tastematch

package prefs

import (
	"errors"
	"reflect"
	"testing"

	"github.com/rs/zerolog"
)

func newTestManager(initial Snapshot, persister Persister) *Manager {
	return NewManager("user_test", initial, persister, zerolog.Nop())
}

func TestMarkViewedAppendsOnce(t *testing.T) {
	m := newTestManager(DefaultSnapshot(), nil)

	m.MarkViewed(1)
	m.MarkViewed(2)
	snap := m.MarkViewed(1)

	want := []int{1, 2}
	if !reflect.DeepEqual(snap.ViewedRestaurants, want) {
		t.Errorf("ViewedRestaurants = %v, want %v", snap.ViewedRestaurants, want)
	}
}

func TestMarkViewedEvictsOldest(t *testing.T) {
	m := newTestManager(DefaultSnapshot(), nil)

	var snap Snapshot
	for id := 1; id <= MaxViewed+3; id++ {
		snap = m.MarkViewed(id)
	}

	if got := len(snap.ViewedRestaurants); got != MaxViewed {
		t.Fatalf("len(ViewedRestaurants) = %d, want %d", got, MaxViewed)
	}
	if got := snap.ViewedRestaurants[0]; got != 4 {
		t.Errorf("oldest viewed = %d, want %d", got, 4)
	}
	if got := snap.ViewedRestaurants[MaxViewed-1]; got != MaxViewed+3 {
		t.Errorf("newest viewed = %d, want %d", got, MaxViewed+3)
	}
}

func TestMarkLikedRemovesFromViewed(t *testing.T) {
	m := newTestManager(DefaultSnapshot(), nil)

	m.MarkViewed(5)
	m.MarkViewed(6)
	snap := m.MarkLiked(5)

	if !reflect.DeepEqual(snap.LikedRestaurants, []int{5}) {
		t.Errorf("LikedRestaurants = %v, want %v", snap.LikedRestaurants, []int{5})
	}
	if !reflect.DeepEqual(snap.ViewedRestaurants, []int{6}) {
		t.Errorf("ViewedRestaurants = %v, want %v", snap.ViewedRestaurants, []int{6})
	}
}

func TestMarkLikedDeduplicates(t *testing.T) {
	m := newTestManager(DefaultSnapshot(), nil)

	m.MarkLiked(7)
	snap := m.MarkLiked(7)

	if !reflect.DeepEqual(snap.LikedRestaurants, []int{7}) {
		t.Errorf("LikedRestaurants = %v, want %v", snap.LikedRestaurants, []int{7})
	}
}

func TestUpdateKeepsHistory(t *testing.T) {
	m := newTestManager(DefaultSnapshot(), nil)
	m.MarkViewed(1)
	m.MarkLiked(2)

	snap := m.Update([]string{"Vietnamese"}, []string{"District 1"}, 10000, 90000)

	if !reflect.DeepEqual(snap.FavoriteCategories, []string{"Vietnamese"}) {
		t.Errorf("FavoriteCategories = %v, want %v", snap.FavoriteCategories, []string{"Vietnamese"})
	}
	if !reflect.DeepEqual(snap.ViewedRestaurants, []int{1}) {
		t.Errorf("ViewedRestaurants = %v, want %v", snap.ViewedRestaurants, []int{1})
	}
	if !reflect.DeepEqual(snap.LikedRestaurants, []int{2}) {
		t.Errorf("LikedRestaurants = %v, want %v", snap.LikedRestaurants, []int{2})
	}
}

func TestHistoryIDs(t *testing.T) {
	m := newTestManager(DefaultSnapshot(), nil)
	m.MarkViewed(1)
	m.MarkViewed(2)
	m.MarkLiked(2)

	userID, liked, viewed := m.HistoryIDs()

	if userID != "user_test" {
		t.Errorf("userID = %q, want %q", userID, "user_test")
	}
	if !reflect.DeepEqual(liked, []int{2}) {
		t.Errorf("liked = %v, want %v", liked, []int{2})
	}
	if !reflect.DeepEqual(viewed, []int{1}) {
		t.Errorf("viewed = %v, want %v", viewed, []int{1})
	}
}

type failingPersister struct {
	calls int
}

func (p *failingPersister) Save(string, Snapshot) error {
	p.calls++
	return errors.New("disk full")
}

func TestPersistFailureDoesNotBlockUpdate(t *testing.T) {
	persister := &failingPersister{}
	m := newTestManager(DefaultSnapshot(), persister)

	snap := m.MarkViewed(9)

	if persister.calls != 1 {
		t.Errorf("persister calls = %d, want 1", persister.calls)
	}
	if !reflect.DeepEqual(snap.ViewedRestaurants, []int{9}) {
		t.Errorf("ViewedRestaurants = %v, want %v", snap.ViewedRestaurants, []int{9})
	}
}

func TestSnapshotCloneIsIndependent(t *testing.T) {
	m := newTestManager(DefaultSnapshot(), nil)
	m.MarkViewed(3)

	snap := m.Snapshot()
	snap.ViewedRestaurants[0] = 99

	if got := m.Snapshot().ViewedRestaurants[0]; got != 3 {
		t.Errorf("ViewedRestaurants[0] = %d, want 3 after mutating a clone", got)
	}
}
