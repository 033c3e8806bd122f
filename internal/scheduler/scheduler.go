// Package scheduler drives routine spawning: it periodically scans for due
// routines, spawns their quest instances, and advances each routine's
// next-due timestamp. Each tick recomputes from storage; no state is carried
// between ticks, so multiple instances stay consistent and a crashed tick is
// simply retried by the next one.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/getaltair/altair-sub003/internal/engine"
)

const DefaultInterval = time.Minute

type Scheduler struct {
	svc      *engine.Service
	log      *slog.Logger
	interval time.Duration
}

func New(svc *engine.Service, log *slog.Logger, interval time.Duration) *Scheduler {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Scheduler{svc: svc, log: log, interval: interval}
}

// Run ticks until the context is cancelled.
func (s *Scheduler) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			if _, err := s.Tick(ctx, now.UTC()); err != nil {
				s.log.Error("routine tick failed", "error", err)
			}
		}
	}
}

// Tick processes every routine due at now: spawn the occurrence's quest,
// then advance next_due. Spawning is idempotent on (routine, occurrence), so
// a tick that dies between the two steps re-derives the same occurrence and
// does not duplicate the quest.
func (s *Scheduler) Tick(ctx context.Context, now time.Time) (int, error) {
	due, err := s.svc.DueRoutines(ctx, now)
	if err != nil {
		return 0, err
	}

	spawned := 0
	for _, rt := range due {
		q, err := s.svc.SpawnQuest(ctx, rt.ID)
		if err != nil {
			s.log.Error("spawn failed", "routine", rt.ID, "error", err)
			continue
		}
		spawned++

		after := rt.NextDue
		if now.After(after) {
			after = now
		}
		timeOfDay := ""
		if rt.TimeOfDay != nil {
			timeOfDay = *rt.TimeOfDay
		}
		next, err := engine.NextOccurrence(rt.Schedule, timeOfDay, after)
		if err != nil {
			s.log.Error("next occurrence failed", "routine", rt.ID, "error", err)
			continue
		}
		if err := s.svc.UpdateNextDue(ctx, rt.ID, next); err != nil {
			s.log.Error("advance next due failed", "routine", rt.ID, "error", err)
			continue
		}
		s.log.Info("routine spawned", "routine", rt.ID, "quest", q.ID, "next_due", next)
	}
	return spawned, nil
}
