// Package heartbeat periodically reports that the relay is alive.
package heartbeat

import (
	"context"
	"log/slog"
	"time"
)

// OnHeartbeatFunc is called on every tick.
type OnHeartbeatFunc func(ctx context.Context) error

// Service runs OnHeartbeatFunc at a fixed interval.
type Service struct {
	onHeartbeat OnHeartbeatFunc
	interval    time.Duration
}

// NewService creates a heartbeat Service.
// interval defaults to 30 minutes if zero.
func NewService(onHeartbeat OnHeartbeatFunc, interval time.Duration) *Service {
	if interval <= 0 {
		interval = 30 * time.Minute
	}

	return &Service{
		onHeartbeat: onHeartbeat,
		interval:    interval,
	}
}

// Interval returns the tick interval.
func (s *Service) Interval() time.Duration { return s.interval }

// Start runs the heartbeat loop until ctx is cancelled.
func (s *Service) Start(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	slog.Info("heartbeat: started", "interval", s.interval)

	for {
		select {
		case <-ticker.C:
			s.beat(ctx)
		case <-ctx.Done():
			slog.Info("heartbeat: stopped")
			return ctx.Err()
		}
	}
}

func (s *Service) beat(ctx context.Context) {
	if s.onHeartbeat == nil {
		return
	}
	if err := s.onHeartbeat(ctx); err != nil {
		slog.Error("heartbeat: callback error", "err", err)
	}
}
