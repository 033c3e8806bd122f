package engine

import (
	"context"
	"testing"
	"time"
)

func TestTodayViewComposition(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	active := mustCreateQuest(t, svc, "local", "in progress", 2)
	mustCreateQuest(t, svc, "local", "waiting", 1)
	done := mustCreateQuest(t, svc, "local", "finished", 3)

	if _, err := svc.StartQuest(ctx, "local", done.ID); err != nil {
		t.Fatalf("start done: %v", err)
	}
	if _, err := svc.CompleteQuest(ctx, "local", done.ID); err != nil {
		t.Fatalf("complete done: %v", err)
	}
	if _, err := svc.StartQuest(ctx, "local", active.ID); err != nil {
		t.Fatalf("start active: %v", err)
	}

	rt, err := svc.CreateRoutine(ctx, "local", CreateRoutineInput{Name: "inbox zero", Schedule: "daily", Energy: 1})
	if err != nil {
		t.Fatalf("create routine: %v", err)
	}
	// Pin the occurrence inside today regardless of wall clock.
	noon := time.Now().UTC().Truncate(24 * time.Hour).Add(12 * time.Hour)
	if err := svc.UpdateNextDue(ctx, rt.ID, noon); err != nil {
		t.Fatalf("pin next due: %v", err)
	}
	spawned, err := svc.SpawnQuest(ctx, rt.ID)
	if err != nil {
		t.Fatalf("spawn: %v", err)
	}

	view, err := svc.TodayView(ctx, "local", svc.Today())
	if err != nil {
		t.Fatalf("TodayView: %v", err)
	}

	if view.Active == nil || view.Active.ID != active.ID {
		t.Fatalf("active=%v, want %s", view.Active, active.ID)
	}
	if view.Budget == nil || view.Budget.Spent != 3 {
		t.Fatalf("budget=%v, want spent 3", view.Budget)
	}
	if len(view.CompletedToday) != 1 || view.CompletedToday[0].ID != done.ID {
		t.Fatalf("completed today=%v, want [%s]", view.CompletedToday, done.ID)
	}

	foundSpawned := false
	for _, q := range view.DueFromRoutines {
		if q.ID == spawned.ID {
			foundSpawned = true
		}
	}
	if !foundSpawned {
		t.Fatalf("spawned quest %s missing from due-from-routines", spawned.ID)
	}

	// Backlog includes the waiting quest and the spawned one (both backlog).
	if len(view.Backlog) != 2 {
		t.Fatalf("backlog has %d quests, want 2", len(view.Backlog))
	}
}
