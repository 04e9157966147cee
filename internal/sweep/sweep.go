// Package sweep is the operational TTL layer on top of the engine: it
// forces sessions abandoned in AWAITING_ANSWER past their deadline into
// TERMINATED with a partial result. It lives outside the core transition
// logic and only drives the engine's Expire entry point.
package sweep

import (
	"context"
	"log"
	"time"

	"interview-service/internal/models"
)

type ExpiredLister interface {
	FindExpiredAwaiting(ctx context.Context, now time.Time) ([]string, error)
}

type Expirer interface {
	Expire(ctx context.Context, sessionID string) (*models.InterviewResult, error)
}

type Sweeper struct {
	Lister   ExpiredLister
	Engine   Expirer
	Interval time.Duration
}

func NewSweeper(lister ExpiredLister, engine Expirer, interval time.Duration) *Sweeper {
	return &Sweeper{Lister: lister, Engine: engine, Interval: interval}
}

// Run blocks until ctx is canceled, sweeping once per interval.
func (s *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.SweepOnce(ctx)
		}
	}
}

// SweepOnce expires every overdue session it can find. Losing a race to a
// late resume is fine: the conflict is logged and the session is left to
// whatever transition won.
func (s *Sweeper) SweepOnce(ctx context.Context) {
	expired, err := s.Lister.FindExpiredAwaiting(ctx, time.Now())
	if err != nil {
		log.Printf("expiry sweep: list failed: %v", err)
		return
	}
	for _, sessionID := range expired {
		if _, err := s.Engine.Expire(ctx, sessionID); err != nil {
			log.Printf("expiry sweep: session %s: %v", sessionID, err)
			continue
		}
		log.Printf("expiry sweep: session %s forced to terminal state", sessionID)
	}
}
