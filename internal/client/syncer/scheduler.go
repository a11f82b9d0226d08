package syncer

import (
	"context"
	"sync"
	"time"

	"github.com/ebalakin/cartsync/internal/client/transport"
	"github.com/ebalakin/cartsync/internal/logging"
)

// SchedulerConfig holds the two timers driving background sync.
type SchedulerConfig struct {
	SyncInterval  time.Duration // periodic cycle while online; the correctness backstop
	PingInterval  time.Duration // connectivity probe cadence
}

// DefaultSchedulerConfig returns the default timer settings.
func DefaultSchedulerConfig() *SchedulerConfig {
	return &SchedulerConfig{
		SyncInterval: 30 * time.Second,
		PingInterval: 5 * time.Second,
	}
}

// Scheduler runs the background goroutines around a Syncer: a periodic sync
// ticker, an online-status watcher, and an immediate-trigger channel fed by
// local mutations. Local triggers are a latency optimization only; the
// periodic timer guarantees eventual transmission.
type Scheduler struct {
	syncer *Syncer
	client transport.Client
	logger logging.Logger
	config *SchedulerConfig

	trigger chan struct{}
	stopCh  chan struct{}
	wg      sync.WaitGroup

	mu        sync.Mutex
	isRunning bool
}

// NewScheduler wires a Scheduler around the given Syncer.
func NewScheduler(s *Syncer, client transport.Client, logger logging.Logger, config *SchedulerConfig) *Scheduler {
	if config == nil {
		config = DefaultSchedulerConfig()
	}
	return &Scheduler{
		syncer:  s,
		client:  client,
		logger:  logger.With("component", "scheduler"),
		config:  config,
		trigger: make(chan struct{}, 1),
		stopCh:  make(chan struct{}),
	}
}

// Start launches the background goroutines. Calling Start twice is a no-op.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return
	}
	s.isRunning = true
	s.mu.Unlock()

	s.wg.Add(2)
	go s.syncLoop(ctx)
	go s.onlineWatcher(ctx)

	s.logger.Info(ctx, "background sync started")
}

// Stop shuts the goroutines down and waits for them.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return
	}
	s.isRunning = false
	s.mu.Unlock()

	close(s.stopCh)
	s.wg.Wait()
}

// Notify requests an immediate cycle after a local mutation. Non-blocking;
// while a trigger is already pending the extra one is dropped.
func (s *Scheduler) Notify() {
	select {
	case s.trigger <- struct{}{}:
	default:
	}
}

func (s *Scheduler) syncLoop(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.config.SyncInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.stopCh:
			return
		case <-ticker.C:
			s.syncer.TrySync(ctx)
		case <-s.trigger:
			s.syncer.TrySync(ctx)
		}
	}
}

// onlineWatcher probes the server and flips the syncer's online flag.
// Coming back online immediately triggers a cycle so edits made offline
// reach the server without waiting for the next tick.
func (s *Scheduler) onlineWatcher(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.config.PingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.stopCh:
			return
		case <-ticker.C:
			wasOnline := s.syncer.Online()
			err := s.client.Ping(ctx)
			nowOnline := err == nil
			s.syncer.SetOnline(nowOnline)
			if nowOnline && !wasOnline {
				s.logger.Info(ctx, "back online")
				s.Notify()
			}
			if !nowOnline && wasOnline {
				s.logger.Warn(ctx, "went offline")
			}
		}
	}
}
