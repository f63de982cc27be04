// TasteMatch - Restaurant Discovery and Hybrid Recommendations
// Copyright 2026 TasteMatch contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tastematch/tastematch

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/tastematch/tastematch/internal/metrics"
	"github.com/tastematch/tastematch/internal/recommend"
)

// TrainableEngine is the slice of the recommendation engine the training
// loop needs.
type TrainableEngine interface {
	Train(ctx context.Context) error
	Status() recommend.TrainingStatus
}

// TrainServiceConfig holds configuration for the training service.
type TrainServiceConfig struct {
	// TrainOnStartup triggers training when the service starts.
	TrainOnStartup bool

	// TrainInterval is how often to retrain models.
	TrainInterval time.Duration
}

// TrainService runs the recommendation model training lifecycle under
// supervision: an optional startup run plus a periodic retrain ticker.
type TrainService struct {
	engine TrainableEngine
	config TrainServiceConfig
	logger zerolog.Logger
	name   string
}

// NewTrainService creates a new training service.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewTrainService(engine TrainableEngine, cfg TrainServiceConfig, logger zerolog.Logger) *TrainService {
	return &TrainService{
		engine: engine,
		config: cfg,
		logger: logger.With().Str("service", "train").Logger(),
		name:   "train-service",
	}
}

// Serve implements the suture.Service interface.
func (s *TrainService) Serve(ctx context.Context) error {
	s.logger.Info().
		Bool("train_on_startup", s.config.TrainOnStartup).
		Dur("train_interval", s.config.TrainInterval).
		Msg("training service starting")

	if s.config.TrainOnStartup {
		if err := s.train(ctx); err != nil {
			s.logger.Warn().Err(err).Msg("initial training failed (will retry on schedule)")
		}
	}

	if s.config.TrainInterval <= 0 {
		s.config.TrainInterval = 24 * time.Hour
	}

	ticker := time.NewTicker(s.config.TrainInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("training service shutting down")
			return ctx.Err()

		case <-ticker.C:
			if err := s.train(ctx); err != nil {
				s.logger.Warn().Err(err).Msg("scheduled training failed")
			}
		}
	}
}

// train performs one training cycle with its own timeout.
func (s *TrainService) train(ctx context.Context) error {
	trainCtx, cancel := context.WithTimeout(ctx, 30*time.Minute)
	defer cancel()

	start := time.Now()
	err := s.engine.Train(trainCtx)
	metrics.RecordTraining(err, time.Since(start), s.engine.Status().RatingEvents)
	if err != nil {
		return err
	}

	s.logger.Info().
		Dur("duration", time.Since(start)).
		Msg("model training cycle complete")
	return nil
}

// String returns the service name for logging.
func (s *TrainService) String() string {
	return s.name
}
