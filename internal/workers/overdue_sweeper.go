package workers

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/Mathvic456/real-estate-management/internal/config"
	"github.com/Mathvic456/real-estate-management/internal/services"
)

// OverdueSweeper periodically flips pending payment statuses to overdue once
// their due date has passed
type OverdueSweeper struct {
	properties *services.PropertyService
	config     config.WorkerConfig
	logger     *logrus.Logger
	cron       *cron.Cron
	mu         sync.Mutex
	running    bool
}

// NewOverdueSweeper creates a new overdue sweeper
func NewOverdueSweeper(properties *services.PropertyService, cfg config.WorkerConfig, logger *logrus.Logger) *OverdueSweeper {
	return &OverdueSweeper{
		properties: properties,
		config:     cfg,
		logger:     logger,
	}
}

// Start starts the sweeper
func (s *OverdueSweeper) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return nil
	}

	if !s.config.OverdueSweepEnabled {
		s.logger.Info("Overdue payment sweep is disabled")
		return nil
	}

	s.cron = cron.New(cron.WithSeconds())

	schedule := s.config.OverdueSweepSchedule
	if schedule == "" {
		schedule = "0 0 2 * * *" // Default: 2 AM daily (with seconds)
	}

	// Convert 5-field cron to 6-field (add seconds prefix)
	fields := strings.Fields(schedule)
	if len(fields) == 5 {
		schedule = "0 " + schedule
	}

	_, err := s.cron.AddFunc(schedule, s.runSweep)
	if err != nil {
		s.logger.WithError(err).Error("Failed to schedule overdue sweep job")
		return err
	}

	s.cron.Start()
	s.running = true

	s.logger.WithField("schedule", schedule).Info("Overdue payment sweeper started")
	return nil
}

// Stop stops the sweeper, waiting for a running sweep to finish
func (s *OverdueSweeper) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running || s.cron == nil {
		return
	}

	ctx := s.cron.Stop()
	<-ctx.Done()
	s.running = false
	s.logger.Info("Overdue payment sweeper stopped")
}

func (s *OverdueSweeper) runSweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	startTime := time.Now()
	affected, err := s.properties.SweepOverdue(ctx, startTime)
	if err != nil {
		s.logger.WithError(err).Error("Overdue payment sweep failed")
		return
	}

	s.logger.WithFields(logrus.Fields{
		"marked_overdue": affected,
		"duration":       time.Since(startTime).String(),
	}).Info("Overdue payment sweep completed")
}
