package app

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// IdleSweeper хранилище сессий, умеющее удалять неактивные
type IdleSweeper interface {
	SweepIdle(maxIdle time.Duration) int
}

// Scheduler управляет фоновыми задачами
type Scheduler struct {
	sweeper  IdleSweeper
	interval time.Duration
	maxIdle  time.Duration
	logger   *zap.Logger
	stopChan chan struct{}
}

// NewScheduler создаёт новый планировщик
func NewScheduler(sweeper IdleSweeper, interval, maxIdle time.Duration, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		sweeper:  sweeper,
		interval: interval,
		maxIdle:  maxIdle,
		logger:   logger,
		stopChan: make(chan struct{}),
	}
}

// Start запускает фоновые задачи
func (s *Scheduler) Start(ctx context.Context) {
	s.logger.Info("Starting background scheduler",
		zap.Duration("interval", s.interval),
		zap.Duration("max_idle", s.maxIdle))

	go s.runSessionSweepTask(ctx)
}

// Stop останавливает фоновые задачи
func (s *Scheduler) Stop() {
	s.logger.Info("Stopping background scheduler")
	close(s.stopChan)
}

// runSessionSweepTask периодически удаляет брошенные сессии выбора слотов
func (s *Scheduler) runSessionSweepTask(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.sweepSessions()
		case <-s.stopChan:
			s.logger.Info("Session sweep task stopped")
			return
		case <-ctx.Done():
			s.logger.Info("Session sweep task cancelled")
			return
		}
	}
}

func (s *Scheduler) sweepSessions() {
	removed := s.sweeper.SweepIdle(s.maxIdle)
	if removed > 0 {
		s.logger.Info("Idle sessions removed", zap.Int("count", removed))
	}
}
