package usecase

import (
	"context"
	"log/slog"
	"time"

	"CounterPicker/internal/ports"
)

// Scheduler re-enriches a fixed set of catalogs on every tick of a driver.
type Scheduler struct {
	driver   ports.Scheduler
	pipeline *Pipeline
	catalogs []ports.CatalogSpec
	logger   *slog.Logger
}

// NewScheduler binds catalogs to a periodic driver.
func NewScheduler(driver ports.Scheduler, pipeline *Pipeline, catalogs []ports.CatalogSpec, logger *slog.Logger) *Scheduler {
	return &Scheduler{driver: driver, pipeline: pipeline, catalogs: catalogs, logger: logger}
}

// Start hands the tick job to the driver. A failing catalog is logged and
// does not stop the remaining catalogs of the same tick.
func (s *Scheduler) Start(ctx context.Context) error {
	if s.driver == nil || s.pipeline == nil {
		return nil
	}
	return s.driver.Start(ctx, func(trigger time.Time) {
		s.tick(ctx, trigger)
	})
}

func (s *Scheduler) tick(ctx context.Context, trigger time.Time) {
	failed := 0
	for _, spec := range s.catalogs {
		if ctx.Err() != nil {
			return
		}
		report, err := s.pipeline.Enrich(ctx, spec)
		if err != nil {
			failed++
			s.log(slog.LevelError, "scheduled enrichment failed", "catalog", spec.Name, "error", err)
			continue
		}
		s.log(slog.LevelInfo, "scheduled enrichment done", "catalog", spec.Name, "run", report.ID, "entities", report.Total())
	}
	s.log(slog.LevelDebug, "tick finished", "trigger", trigger, "catalogs", len(s.catalogs), "failed", failed)
}

// Stop halts the driver and waits for an in-progress tick.
func (s *Scheduler) Stop(ctx context.Context) error {
	if s.driver == nil {
		return nil
	}
	return s.driver.Stop(ctx)
}

func (s *Scheduler) log(level slog.Level, msg string, args ...interface{}) {
	if s.logger != nil {
		s.logger.Log(context.Background(), level, msg, args...)
	}
}
