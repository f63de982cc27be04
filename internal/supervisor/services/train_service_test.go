// TasteMatch - Restaurant Discovery and Hybrid Recommendations
// Copyright 2026 TasteMatch contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tastematch/tastematch

package services

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/thejerf/suture/v4"

	"github.com/tastematch/tastematch/internal/recommend"
)

// mockEngine is a test double for TrainableEngine.
type mockEngine struct {
	trainErr   error
	trainCount atomic.Int32
}

func (m *mockEngine) Train(ctx context.Context) error {
	m.trainCount.Add(1)
	return m.trainErr
}

func (m *mockEngine) Status() recommend.TrainingStatus {
	return recommend.TrainingStatus{Trained: m.trainCount.Load() > 0}
}

func TestTrainServiceInterface(t *testing.T) {
	var _ suture.Service = (*TrainService)(nil)
}

func TestTrainServiceTrainsOnStartup(t *testing.T) {
	engine := &mockEngine{}
	svc := NewTrainService(engine, TrainServiceConfig{
		TrainOnStartup: true,
		TrainInterval:  time.Hour,
	}, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Serve(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Errorf("Serve() error = %v, want context.Canceled", err)
	}
	if got := engine.trainCount.Load(); got != 1 {
		t.Errorf("train count = %d, want 1", got)
	}
}

func TestTrainServiceSkipsStartupTraining(t *testing.T) {
	engine := &mockEngine{}
	svc := NewTrainService(engine, TrainServiceConfig{
		TrainOnStartup: false,
		TrainInterval:  time.Hour,
	}, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Serve(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()
	<-done

	if got := engine.trainCount.Load(); got != 0 {
		t.Errorf("train count = %d, want 0", got)
	}
}

func TestTrainServiceRetrainsOnTicker(t *testing.T) {
	engine := &mockEngine{}
	svc := NewTrainService(engine, TrainServiceConfig{
		TrainOnStartup: false,
		TrainInterval:  20 * time.Millisecond,
	}, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Serve(ctx) }()

	time.Sleep(120 * time.Millisecond)
	cancel()
	<-done

	if got := engine.trainCount.Load(); got < 2 {
		t.Errorf("train count = %d, want at least 2", got)
	}
}

func TestTrainServiceSurvivesTrainingFailure(t *testing.T) {
	engine := &mockEngine{trainErr: errors.New("source unavailable")}
	svc := NewTrainService(engine, TrainServiceConfig{
		TrainOnStartup: true,
		TrainInterval:  time.Hour,
	}, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Serve(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	// A failing training run must not bring the service down.
	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Errorf("Serve() error = %v, want context.Canceled", err)
	}
}

func TestTrainServiceString(t *testing.T) {
	svc := NewTrainService(&mockEngine{}, TrainServiceConfig{}, zerolog.Nop())
	if got := svc.String(); got != "train-service" {
		t.Errorf("String() = %q, want %q", got, "train-service")
	}
}
