// TasteMatch - Restaurant Discovery and Hybrid Recommendations
// Copyright 2026 TasteMatch contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tastematch/tastematch

package ratings

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/goccy/go-json"
)

// commentDateFormat matches the format used by the existing comments file.
const commentDateFormat = "02/01/2006 15:04"

// CommentStore reads and appends user comments in the comments file. Writes
// serialize through a mutex; the file is small enough for read-modify-write.
type CommentStore struct {
	mu   sync.Mutex
	path string
}

// NewCommentStore creates a comment store over the given file path.
func NewCommentStore(path string) *CommentStore {
	return &CommentStore{path: path}
}

// List returns the comments for one restaurant, newest first. A missing file
// means no comments yet.
func (s *CommentStore) List(restaurantID int) ([]Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	byRestaurant, err := s.read()
	if err != nil {
		return nil, err
	}
	return byRestaurant[strconv.Itoa(restaurantID)], nil
}

// Add prepends a new comment for the restaurant and persists the file.
// The comment ID is one past the restaurant's current comment count.
func (s *CommentStore) Add(restaurantID int, rating float64, text, user string) (Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	byRestaurant, err := s.read()
	if err != nil {
		return Comment{}, err
	}
	if byRestaurant == nil {
		byRestaurant = make(map[string][]Comment)
	}

	key := strconv.Itoa(restaurantID)
	c := Comment{
		ID:      len(byRestaurant[key]) + 1,
		Rating:  ClampRating(rating),
		Comment: text,
		User:    user,
		Date:    time.Now().Format(commentDateFormat),
	}
	byRestaurant[key] = append([]Comment{c}, byRestaurant[key]...)

	if err := s.write(byRestaurant); err != nil {
		return Comment{}, err
	}
	return c, nil
}

func (s *CommentStore) read() (map[string][]Comment, error) {
	data, err := readSource(s.path)
	if errors.Is(err, ErrSourceAbsent) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var byRestaurant map[string][]Comment
	if err := json.Unmarshal(data, &byRestaurant); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrSourceMalformed, s.path, err)
	}
	return byRestaurant, nil
}

func (s *CommentStore) write(byRestaurant map[string][]Comment) error {
	data, err := json.MarshalIndent(byRestaurant, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal comments: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil { //nolint:gosec // shared data file
		return fmt.Errorf("write comments: %w", err)
	}
	return nil
}
