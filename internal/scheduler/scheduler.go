package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"org-site-backend/internal/config"
	"org-site-backend/internal/service"
)

// Scheduler periodically sweeps for scheduled newsletters whose send time
// has passed and dispatches them. This is the time-triggered half of the
// scheduled -> sent transition; the dispatcher still guards every send.
type Scheduler struct {
	cron       *cron.Cron
	entryID    cron.EntryID
	config     *config.SchedulerConfig
	dispatcher *service.Dispatcher
	ctx        context.Context
	cancel     context.CancelFunc
	wg         sync.WaitGroup
	isRunning  bool
	mu         sync.RWMutex
}

// New creates a scheduler around the dispatcher.
func New(cfg *config.SchedulerConfig, dispatcher *service.Dispatcher) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())

	return &Scheduler{
		cron:       cron.New(cron.WithSeconds()),
		config:     cfg,
		dispatcher: dispatcher,
		ctx:        ctx,
		cancel:     cancel,
	}
}

// Start starts the periodic sweep.
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("scheduler is already running")
	}

	if s.ctx.Err() != nil {
		s.ctx, s.cancel = context.WithCancel(context.Background())
	}

	schedule := fmt.Sprintf("0 */%d * * * *", s.config.IntervalMinutes)

	entryID, err := s.cron.AddFunc(schedule, s.sweep)
	if err != nil {
		return fmt.Errorf("failed to add cron job: %w", err)
	}

	s.entryID = entryID
	s.cron.Start()
	s.isRunning = true

	logrus.Infof("Newsletter scheduler started with interval: %d minutes", s.config.IntervalMinutes)
	return nil
}

// Stop stops the sweep and waits for an in-flight run to finish.
func (s *Scheduler) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return nil
	}

	s.cancel()
	ctx := s.cron.Stop()

	select {
	case <-ctx.Done():
		logrus.Info("Newsletter scheduler stopped gracefully")
	case <-time.After(30 * time.Second):
		logrus.Warn("Newsletter scheduler stop timeout, forcing shutdown")
	}

	s.cron.Remove(s.entryID)
	s.isRunning = false
	return nil
}

// IsRunning returns whether the scheduler is running
func (s *Scheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// sweep dispatches every due scheduled newsletter.
func (s *Scheduler) sweep() {
	s.wg.Add(1)
	defer s.wg.Done()

	s.mu.RLock()
	if !s.isRunning {
		s.mu.RUnlock()
		return
	}
	ctx := s.ctx
	s.mu.RUnlock()

	dispatched, err := s.dispatcher.DispatchDue(ctx)
	if err != nil {
		logrus.Errorf("Scheduled newsletter sweep failed: %v", err)
		return
	}
	if dispatched > 0 {
		logrus.Infof("Dispatched %d scheduled newsletter(s)", dispatched)
	}
}

// RunOnce runs the sweep once (for manual triggering)
func (s *Scheduler) RunOnce() {
	logrus.Info("Running scheduled newsletter sweep once")
	s.sweep()
}

// NextRun returns the time of the next scheduled sweep.
func (s *Scheduler) NextRun() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.isRunning {
		return time.Time{}
	}
	return s.cron.Entry(s.entryID).Next
}

// Wait waits for any in-flight sweep to complete.
func (s *Scheduler) Wait() {
	s.wg.Wait()
}
