package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/experience-kok/kok-api-admin-server-sub001/internal/admin/store"
	"github.com/experience-kok/kok-api-admin-server-sub001/pkg/revokex"
)

// HousekeepingService sweeps expired state in the background: dead
// revocation entries and notifications past their expiry. Sweeping is an
// optimisation only; reads stay correct between sweeps because lookups
// check entry expiry themselves.
type HousekeepingService struct {
	Revocations *revokex.Store
	Store       store.Store
	Logger      *slog.Logger
	Interval    time.Duration

	stopCh chan struct{}
	doneCh chan struct{}
}

// Start launches the sweep loop. Call Stop to terminate it.
func (s *HousekeepingService) Start() {
	s.stopCh = make(chan struct{})
	s.doneCh = make(chan struct{})
	go s.run()
}

// Stop signals the loop and blocks until the in-flight sweep finishes.
func (s *HousekeepingService) Stop() {
	if s.stopCh == nil {
		return
	}
	close(s.stopCh)
	<-s.doneCh
}

func (s *HousekeepingService) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	s.sweep()
	for {
		select {
		case <-ticker.C:
			s.sweep()
		case <-s.stopCh:
			return
		}
	}
}

func (s *HousekeepingService) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	now := time.Now().UTC()

	pruned := s.Revocations.Prune(now)
	if pruned > 0 {
		s.Logger.Debug("pruned revocation entries", slog.Int("count", pruned))
	}

	if err := s.Store.Notifications().DeleteExpiredNotifications(ctx, now); err != nil {
		s.Logger.Warn("expired notification sweep failed", slog.Any("error", err))
	}
}
