package scheduler

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"org-site-backend/internal/config"
	"org-site-backend/internal/metrics"
	"org-site-backend/internal/service"
)

func newTestScheduler() *Scheduler {
	cfg := &config.SchedulerConfig{Enabled: true, IntervalMinutes: 60}
	m := metrics.NewWith(prometheus.NewRegistry())
	dispatcher := service.NewDispatcher(nil, nil, nil, m, &config.MailConfig{
		SendTimeout: time.Second,
		MaxWorkers:  1,
	})
	return New(cfg, dispatcher)
}

func TestSchedulerRestart(t *testing.T) {
	sched := newTestScheduler()

	if err := sched.Start(); err != nil {
		t.Fatalf("first start failed: %v", err)
	}
	if !sched.IsRunning() {
		t.Fatalf("scheduler should be running after Start")
	}
	if err := sched.Stop(); err != nil {
		t.Fatalf("stop failed: %v", err)
	}
	if sched.IsRunning() {
		t.Fatalf("scheduler should not be running after Stop")
	}
	if err := sched.Start(); err != nil {
		t.Fatalf("second start failed: %v", err)
	}
	if !sched.IsRunning() {
		t.Fatalf("scheduler should be running after second Start")
	}
	// context should be active
	if sched.ctx == nil || sched.ctx.Err() != nil {
		t.Fatalf("scheduler context should be active after restart")
	}
	sched.Stop()
}

func TestSchedulerDoubleStart(t *testing.T) {
	sched := newTestScheduler()

	if err := sched.Start(); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	defer sched.Stop()

	if err := sched.Start(); err == nil {
		t.Fatalf("second Start on a running scheduler should fail")
	}
}

func TestSchedulerNextRun(t *testing.T) {
	sched := newTestScheduler()

	if !sched.NextRun().IsZero() {
		t.Fatalf("NextRun should be zero while stopped")
	}

	if err := sched.Start(); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	defer sched.Stop()

	if sched.NextRun().IsZero() {
		t.Fatalf("NextRun should be set while running")
	}
}

func TestSchedulerStopIdempotent(t *testing.T) {
	sched := newTestScheduler()

	if err := sched.Stop(); err != nil {
		t.Fatalf("stopping a stopped scheduler should be a no-op: %v", err)
	}
}
