// TasteMatch - Restaurant Discovery and Hybrid Recommendations
// Copyright 2026 TasteMatch contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tastematch/tastematch

package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tastematch/tastematch/internal/catalog"
	"github.com/tastematch/tastematch/internal/config"
	"github.com/tastematch/tastematch/internal/models"
	"github.com/tastematch/tastematch/internal/prefs"
	"github.com/tastematch/tastematch/internal/ratings"
	"github.com/tastematch/tastematch/internal/recommend"
)

type stubEventSource struct {
	events []ratings.Event
}

func (s *stubEventSource) Load() ([]ratings.Event, error) {
	if len(s.events) == 0 {
		return nil, ratings.ErrNoData
	}
	return s.events, nil
}

func testCatalog() *catalog.Catalog {
	return catalog.New([]catalog.Restaurant{
		{ID: 1, Name: "Pho Thin", District: "District 1", FoodCategories: []string{"Pho"}, AverageRating: 8.0},
		{ID: 2, Name: "Banh Mi 37", District: "District 1", FoodCategories: []string{"Banh Mi"}, AverageRating: 7.0},
		{ID: 3, Name: "Pho Hoa", District: "District 3", FoodCategories: []string{"Pho"}, AverageRating: 8.5},
	})
}

type testServer struct {
	router  http.Handler
	engine  *recommend.Engine
	manager *prefs.Manager
}

func newTestServer(t *testing.T, events []ratings.Event, train bool) *testServer {
	t.Helper()

	c := testCatalog()
	engine, err := recommend.NewEngine(recommend.DefaultConfig(), c, &stubEventSource{events: events}, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	if train {
		if err := engine.Train(context.Background()); err != nil {
			t.Fatalf("Train() error = %v", err)
		}
	}

	manager := prefs.NewManager("current_user", prefs.DefaultSnapshot(), nil, zerolog.Nop())
	comments := ratings.NewCommentStore(filepath.Join(t.TempDir(), "comments.json"))

	cfg := config.APIConfig{
		DefaultLimit:    12,
		MaxLimit:        50,
		RateLimitReqs:   1000,
		RateLimitWindow: time.Minute,
		CORSOrigins:     []string{"*"},
	}

	handler := NewHandler(c, engine, manager, comments, cfg, "test")
	return &testServer{
		router:  NewRouter(handler, cfg).Setup(),
		engine:  engine,
		manager: manager,
	}
}

func (ts *testServer) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)
	return rec
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) models.APIResponse {
	t.Helper()

	var resp models.APIResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	return resp
}

func TestHealthEndpoint(t *testing.T) {
	ts := newTestServer(t, nil, true)

	rec := ts.do(t, http.MethodGet, "/api/v1/health", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	resp := decodeResponse(t, rec)
	if resp.Status != "success" {
		t.Errorf("Status = %q, want success", resp.Status)
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("X-Request-ID header missing")
	}
	if rec.Header().Get("ETag") == "" {
		t.Error("ETag header missing")
	}
}

func TestReadinessTracksTraining(t *testing.T) {
	ts := newTestServer(t, nil, false)

	if rec := ts.do(t, http.MethodGet, "/api/v1/health/ready", ""); rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status before training = %d, want %d", rec.Code, http.StatusServiceUnavailable)
	}

	if rec := ts.do(t, http.MethodPost, "/api/v1/admin/train", ""); rec.Code != http.StatusOK {
		t.Fatalf("train status = %d, want %d", rec.Code, http.StatusOK)
	}

	if rec := ts.do(t, http.MethodGet, "/api/v1/health/ready", ""); rec.Code != http.StatusOK {
		t.Errorf("status after training = %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestRecommendationsEndpoint(t *testing.T) {
	ts := newTestServer(t, nil, true)

	rec := ts.do(t, http.MethodGet, "/api/v1/recommendations?k=2", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	resp := decodeResponse(t, rec)
	data, ok := resp.Data.(map[string]interface{})
	if !ok {
		t.Fatalf("Data type = %T, want object", resp.Data)
	}
	count, _ := data["count"].(float64)
	if count < 1 || count > 2 {
		t.Errorf("count = %v, want 1..2", count)
	}
}

func TestRestaurantNotFound(t *testing.T) {
	ts := newTestServer(t, nil, true)

	rec := ts.do(t, http.MethodGet, "/api/v1/restaurants/999", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}

	resp := decodeResponse(t, rec)
	if resp.Error == nil || resp.Error.Code != "NOT_FOUND" {
		t.Errorf("Error = %+v, want NOT_FOUND", resp.Error)
	}
}

func TestRestaurantsFilter(t *testing.T) {
	ts := newTestServer(t, nil, true)

	rec := ts.do(t, http.MethodGet, "/api/v1/restaurants?category=Pho", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	resp := decodeResponse(t, rec)
	data := resp.Data.(map[string]interface{})
	if total, _ := data["total"].(float64); total != 2 {
		t.Errorf("total = %v, want 2", total)
	}
}

func TestSimilarEndpoint(t *testing.T) {
	ts := newTestServer(t, nil, true)

	rec := ts.do(t, http.MethodGet, "/api/v1/restaurants/1/similar", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	resp := decodeResponse(t, rec)
	data := resp.Data.(map[string]interface{})
	if count, _ := data["count"].(float64); count < 1 {
		t.Errorf("count = %v, want at least 1", count)
	}
}

func TestCommentsRoundTrip(t *testing.T) {
	ts := newTestServer(t, nil, true)

	body := `{"rating": 9, "comment": "great pho", "user": "alice"}`
	rec := ts.do(t, http.MethodPost, "/api/v1/restaurants/1/comments", body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d: %s", rec.Code, http.StatusCreated, rec.Body.String())
	}

	rec = ts.do(t, http.MethodGet, "/api/v1/restaurants/1/comments", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	resp := decodeResponse(t, rec)
	data := resp.Data.(map[string]interface{})
	if count, _ := data["count"].(float64); count != 1 {
		t.Errorf("count = %v, want 1", count)
	}
}

func TestAddCommentValidation(t *testing.T) {
	ts := newTestServer(t, nil, true)

	tests := []struct {
		name string
		body string
	}{
		{name: "rating above scale", body: `{"rating": 11, "comment": "x"}`},
		{name: "missing comment", body: `{"rating": 5}`},
		{name: "unknown field", body: `{"rating": 5, "comment": "x", "spam": true}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := ts.do(t, http.MethodPost, "/api/v1/restaurants/1/comments", tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
			}
		})
	}
}

func TestPreferencesRoundTrip(t *testing.T) {
	ts := newTestServer(t, nil, true)

	body := `{"favorite_categories": ["Pho"], "favorite_districts": ["District 1"], "price_min": 10000, "price_max": 90000}`
	rec := ts.do(t, http.MethodPut, "/api/v1/preferences", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d: %s", rec.Code, http.StatusOK, rec.Body.String())
	}

	rec = ts.do(t, http.MethodGet, "/api/v1/preferences", "")
	resp := decodeResponse(t, rec)
	data := resp.Data.(map[string]interface{})
	cats, _ := data["favorite_categories"].([]interface{})
	if len(cats) != 1 || cats[0] != "Pho" {
		t.Errorf("favorite_categories = %v, want [Pho]", cats)
	}
}

func TestPreferencesPriceRangeValidation(t *testing.T) {
	ts := newTestServer(t, nil, true)

	body := `{"price_min": 90000, "price_max": 10000}`
	if rec := ts.do(t, http.MethodPut, "/api/v1/preferences", body); rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestLikeRemovesFromViewedHistory(t *testing.T) {
	ts := newTestServer(t, nil, true)

	ts.do(t, http.MethodPost, "/api/v1/preferences/viewed/1", "")
	ts.do(t, http.MethodPost, "/api/v1/preferences/viewed/2", "")
	rec := ts.do(t, http.MethodPost, "/api/v1/preferences/liked/1", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	resp := decodeResponse(t, rec)
	data := resp.Data.(map[string]interface{})
	viewed, _ := data["viewed_restaurants"].([]interface{})
	liked, _ := data["liked_restaurants"].([]interface{})
	if len(viewed) != 1 || viewed[0].(float64) != 2 {
		t.Errorf("viewed_restaurants = %v, want [2]", viewed)
	}
	if len(liked) != 1 || liked[0].(float64) != 1 {
		t.Errorf("liked_restaurants = %v, want [1]", liked)
	}
}

func TestMarkViewedUnknownRestaurant(t *testing.T) {
	ts := newTestServer(t, nil, true)

	if rec := ts.do(t, http.MethodPost, "/api/v1/preferences/viewed/999", ""); rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestTrainStatusEndpoint(t *testing.T) {
	ts := newTestServer(t, nil, true)

	rec := ts.do(t, http.MethodGet, "/api/v1/admin/train/status", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	resp := decodeResponse(t, rec)
	data := resp.Data.(map[string]interface{})
	if trained, _ := data["trained"].(bool); !trained {
		t.Error("trained = false, want true")
	}
}
