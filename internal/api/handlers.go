// TasteMatch - Restaurant Discovery and Hybrid Recommendations
// Copyright 2026 TasteMatch contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tastematch/tastematch

// Package api provides the HTTP serving surface using the chi router.
package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/tastematch/tastematch/internal/catalog"
	"github.com/tastematch/tastematch/internal/config"
	"github.com/tastematch/tastematch/internal/logging"
	"github.com/tastematch/tastematch/internal/metrics"
	"github.com/tastematch/tastematch/internal/models"
	"github.com/tastematch/tastematch/internal/prefs"
	"github.com/tastematch/tastematch/internal/ratings"
	"github.com/tastematch/tastematch/internal/recommend"
)

// Handler holds the dependencies for all HTTP endpoints.
type Handler struct {
	catalog  *catalog.Catalog
	engine   *recommend.Engine
	prefs    *prefs.Manager
	comments *ratings.CommentStore
	cfg      config.APIConfig
	version  string
	validate *validator.Validate
}

// NewHandler creates the API handler.
func NewHandler(c *catalog.Catalog, engine *recommend.Engine, manager *prefs.Manager, comments *ratings.CommentStore, cfg config.APIConfig, version string) *Handler {
	return &Handler{
		catalog:  c,
		engine:   engine,
		prefs:    manager,
		comments: comments,
		cfg:      cfg,
		version:  version,
		validate: validator.New(),
	}
}

// recommendationItem is a recommendation joined with its restaurant.
type recommendationItem struct {
	Restaurant catalog.Restaurant `json:"restaurant"`
	Score      float64            `json:"score"`
	CFScore    float64            `json:"cf_score"`
	CBScore    float64            `json:"cb_score"`
	Tag        string             `json:"tag"`
	Reason     string             `json:"reason"`
}

// scoredRestaurant is a single-path score joined with its restaurant.
type scoredRestaurant struct {
	Restaurant catalog.Restaurant `json:"restaurant"`
	Score      float64            `json:"score"`
}

// Health reports overall service health.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	status := h.engine.Status()

	respondSuccess(w, r, models.HealthData{
		Status:      "ok",
		Version:     h.version,
		Trained:     status.Trained,
		Restaurants: h.catalog.Len(),
	}, start)
}

// HealthLive is the liveness probe.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondSuccess(w, r, map[string]string{"status": "alive"}, time.Now())
}

// HealthReady is the readiness probe: ready once the model has trained.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	if !h.engine.Status().Trained {
		respondError(w, http.StatusServiceUnavailable, "NOT_READY", "model not trained yet", nil)
		return
	}
	respondSuccess(w, r, map[string]string{"status": "ready"}, time.Now())
}

// Recommendations serves the hybrid recommendations for the session user.
func (h *Handler) Recommendations(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	n := clampLimit(getIntParam(r, "k", h.cfg.DefaultLimit), h.cfg.MaxLimit)

	snapshot := h.prefs.Snapshot()
	recs := h.engine.Recommend(h.prefs.UserID(), snapshot, n)

	items := make([]recommendationItem, 0, len(recs))
	for _, rec := range recs {
		restaurant, ok := h.catalog.Get(rec.RestaurantID)
		if !ok {
			continue
		}
		metrics.RecommendationsServed.WithLabelValues(rec.Tag).Inc()
		items = append(items, recommendationItem{
			Restaurant: restaurant,
			Score:      rec.Score,
			CFScore:    rec.CFScore,
			CBScore:    rec.CBScore,
			Tag:        rec.Tag,
			Reason:     rec.Reason,
		})
	}

	respondSuccess(w, r, models.RecommendationsData{
		Recommendations: items,
		Count:           len(items),
	}, start)
}

// RecommendationsCF serves the pure collaborative ranking for any user in
// the rating matrix.
func (h *Handler) RecommendationsCF(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	userID := chi.URLParam(r, "userID")
	n := clampLimit(getIntParam(r, "k", h.cfg.DefaultLimit), h.cfg.MaxLimit)

	items := h.scoredItems(h.engine.CollaborativeFor(userID, n))

	respondSuccess(w, r, models.RecommendationsData{
		Recommendations: items,
		Count:           len(items),
	}, start)
}

// RestaurantSimilar serves metadata-similar restaurants.
func (h *Handler) RestaurantSimilar(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	id, ok := h.restaurantID(w, r)
	if !ok {
		return
	}
	n := clampLimit(getIntParam(r, "k", h.cfg.DefaultLimit), h.cfg.MaxLimit)

	items := h.scoredItems(h.engine.SimilarTo(id, n))

	respondSuccess(w, r, models.RecommendationsData{
		Recommendations: items,
		Count:           len(items),
	}, start)
}

// Restaurants serves the catalog, optionally filtered by category and
// district.
func (h *Handler) Restaurants(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var matched []catalog.Restaurant
	category := r.URL.Query().Get("category")
	district := r.URL.Query().Get("district")
	if category != "" || district != "" {
		var categories, districts []string
		if category != "" {
			categories = []string{category}
		}
		if district != "" {
			districts = []string{district}
		}
		matched = h.catalog.FilterByTags(categories, districts)
	} else {
		matched = h.catalog.All()
	}

	limit := clampLimit(getIntParam(r, "limit", h.cfg.DefaultLimit), h.cfg.MaxLimit)
	offset := getIntParam(r, "offset", 0)
	if offset < 0 {
		offset = 0
	}

	total := len(matched)
	if offset > total {
		offset = total
	}
	end := offset + limit
	if end > total {
		end = total
	}

	respondSuccess(w, r, map[string]interface{}{
		"restaurants": matched[offset:end],
		"total":       total,
		"offset":      offset,
	}, start)
}

// RestaurantByID serves a single restaurant.
func (h *Handler) RestaurantByID(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	id, ok := h.restaurantID(w, r)
	if !ok {
		return
	}

	restaurant, _ := h.catalog.Get(id)
	respondSuccess(w, r, restaurant, start)
}

// RestaurantsTop serves the highest-rated restaurants.
func (h *Handler) RestaurantsTop(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	n := clampLimit(getIntParam(r, "k", h.cfg.DefaultLimit), h.cfg.MaxLimit)

	respondSuccess(w, r, map[string]interface{}{
		"restaurants": h.catalog.TopRated(n),
	}, start)
}

// CommentsList serves the comments for one restaurant, newest first.
func (h *Handler) CommentsList(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	id, ok := h.restaurantID(w, r)
	if !ok {
		return
	}

	comments, err := h.comments.List(id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to load comments", err)
		return
	}
	if comments == nil {
		comments = []ratings.Comment{}
	}

	respondSuccess(w, r, map[string]interface{}{
		"comments": comments,
		"count":    len(comments),
	}, start)
}

// commentRequest is the body of POST /restaurants/{id}/comments.
type commentRequest struct {
	Rating  float64 `json:"rating" validate:"required,gte=1,lte=10"`
	Comment string  `json:"comment" validate:"required,max=2000"`
	User    string  `json:"user" validate:"max=100"`
}

// AddComment records a rated comment. The rating becomes an explicit rating
// event at the next training run.
func (h *Handler) AddComment(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	id, ok := h.restaurantID(w, r)
	if !ok {
		return
	}

	var req commentRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid request body", err)
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
		return
	}
	if req.User == "" {
		req.User = "anonymous"
	}

	comment, err := h.comments.Add(id, req.Rating, req.Comment, req.User)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to save comment", err)
		return
	}

	respondJSON(w, http.StatusCreated, &models.APIResponse{
		Status: "success",
		Data:   comment,
		Metadata: models.Metadata{
			Timestamp:   time.Now(),
			QueryTimeMS: time.Since(start).Milliseconds(),
			RequestID:   logging.RequestIDFromContext(r.Context()),
		},
	})
}

// GetPreferences serves the current preference snapshot.
func (h *Handler) GetPreferences(w http.ResponseWriter, r *http.Request) {
	respondSuccess(w, r, h.prefs.Snapshot(), time.Now())
}

// preferencesRequest is the body of PUT /preferences.
type preferencesRequest struct {
	FavoriteCategories []string `json:"favorite_categories" validate:"max=50"`
	FavoriteDistricts  []string `json:"favorite_districts" validate:"max=50"`
	PriceMin           float64  `json:"price_min" validate:"gte=0"`
	PriceMax           float64  `json:"price_max" validate:"gte=0"`
}

// UpdatePreferences replaces the stated preferences, keeping history.
func (h *Handler) UpdatePreferences(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req preferencesRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid request body", err)
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
		return
	}
	if req.PriceMax < req.PriceMin {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "price_max must not be below price_min", nil)
		return
	}

	snapshot := h.prefs.Update(req.FavoriteCategories, req.FavoriteDistricts, req.PriceMin, req.PriceMax)
	metrics.PreferenceEvents.WithLabelValues("updated").Inc()

	respondSuccess(w, r, snapshot, start)
}

// MarkViewed records a view event for the session user.
func (h *Handler) MarkViewed(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	id, ok := h.restaurantID(w, r)
	if !ok {
		return
	}

	snapshot := h.prefs.MarkViewed(id)
	metrics.PreferenceEvents.WithLabelValues("viewed").Inc()

	respondSuccess(w, r, snapshot, start)
}

// MarkLiked records a like event for the session user.
func (h *Handler) MarkLiked(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	id, ok := h.restaurantID(w, r)
	if !ok {
		return
	}

	snapshot := h.prefs.MarkLiked(id)
	metrics.PreferenceEvents.WithLabelValues("liked").Inc()

	respondSuccess(w, r, snapshot, start)
}

// AdminTrain triggers a synchronous model rebuild.
func (h *Handler) AdminTrain(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	err := h.engine.Train(r.Context())
	status := h.engine.Status()
	metrics.RecordTraining(err, time.Since(start), status.RatingEvents)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "TRAINING_ERROR", "model training failed", err)
		return
	}

	respondSuccess(w, r, status, start)
}

// TrainStatus reports the current training state.
func (h *Handler) TrainStatus(w http.ResponseWriter, r *http.Request) {
	respondSuccess(w, r, h.engine.Status(), time.Now())
}

// restaurantID parses the id URL parameter and checks the restaurant exists.
func (h *Handler) restaurantID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid restaurant id", nil)
		return 0, false
	}
	if _, ok := h.catalog.Get(id); !ok {
		respondError(w, http.StatusNotFound, "NOT_FOUND", "restaurant not found", nil)
		return 0, false
	}
	return id, true
}

// scoredItems joins single-path scores with their restaurants, dropping IDs
// that have left the catalog.
func (h *Handler) scoredItems(scored []recommend.ScoredItem) []scoredRestaurant {
	items := make([]scoredRestaurant, 0, len(scored))
	for _, s := range scored {
		restaurant, ok := h.catalog.Get(s.RestaurantID)
		if !ok {
			continue
		}
		items = append(items, scoredRestaurant{Restaurant: restaurant, Score: s.Score})
	}
	return items
}
