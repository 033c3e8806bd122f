package engine

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestNormalizeSchedule(t *testing.T) {
	cases := []struct {
		schedule  string
		timeOfDay string
		want      string
	}{
		{"daily", "", "0 9 * * *"},
		{"daily", "07:30", "30 7 * * *"},
		{"weekly", "18:00", "0 18 * * 1"},
		{"weekly:mon", "18:00", "0 18 * * mon"},
		{"weekly:fri", "", "0 9 * * fri"},
		{"monthly", "", "0 9 1 * *"},
		{"monthly:15", "08:00", "0 8 15 * *"},
		{"*/15 * * * *", "", "*/15 * * * *"},
	}
	for _, tc := range cases {
		got, err := NormalizeSchedule(tc.schedule, tc.timeOfDay)
		if err != nil {
			t.Fatalf("NormalizeSchedule(%q, %q): %v", tc.schedule, tc.timeOfDay, err)
		}
		if got != tc.want {
			t.Fatalf("NormalizeSchedule(%q, %q)=%q, want %q", tc.schedule, tc.timeOfDay, got, tc.want)
		}
	}

	var verr ValidationError
	if _, err := NormalizeSchedule("sometimes", ""); !errors.As(err, &verr) {
		t.Fatalf("invalid schedule: got %v, want ValidationError", err)
	}
	if _, err := NormalizeSchedule("daily", "25:00"); !errors.As(err, &verr) {
		t.Fatalf("invalid time of day: got %v, want ValidationError", err)
	}
	if _, err := NormalizeSchedule("daily:5", ""); !errors.As(err, &verr) {
		t.Fatalf("daily with suffix: got %v, want ValidationError", err)
	}
	if _, err := NormalizeSchedule("weekly:funday", ""); !errors.As(err, &verr) {
		t.Fatalf("bad weekday suffix: got %v, want ValidationError", err)
	}
	if _, err := NormalizeSchedule("monthly:32", ""); !errors.As(err, &verr) {
		t.Fatalf("bad day-of-month suffix: got %v, want ValidationError", err)
	}
}

func TestCreateRoutineNameValidation(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	var verr ValidationError
	if _, err := svc.CreateRoutine(ctx, "local", CreateRoutineInput{Name: "  ", Schedule: "daily", Energy: 1}); !errors.As(err, &verr) {
		t.Fatalf("blank name: got %v, want ValidationError", err)
	}
	if verr.Field != "name" || verr.Reason != "is required" {
		t.Fatalf("blank name error=%v, want name is required", verr)
	}

	long := strings.Repeat("x", 201)
	if _, err := svc.CreateRoutine(ctx, "local", CreateRoutineInput{Name: long, Schedule: "daily", Energy: 1}); !errors.As(err, &verr) {
		t.Fatalf("long name: got %v, want ValidationError", err)
	}
	if verr.Field != "name" || !strings.Contains(verr.Reason, "200") {
		t.Fatalf("long name error=%v, want length reason on name", verr)
	}
}

func TestNextOccurrenceStrictlyAfter(t *testing.T) {
	after := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	next, err := NextOccurrence("daily", "09:00", after)
	if err != nil {
		t.Fatalf("NextOccurrence: %v", err)
	}
	want := time.Date(2026, 3, 11, 9, 0, 0, 0, time.UTC)
	if !next.Equal(want) {
		t.Fatalf("next=%v, want %v", next, want)
	}
}

func TestDueRoutinesFilteringAndOrder(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	early, err := svc.CreateRoutine(ctx, "local", CreateRoutineInput{Name: "early", Schedule: "daily", TimeOfDay: "06:00", Energy: 1})
	if err != nil {
		t.Fatalf("create early: %v", err)
	}
	late, err := svc.CreateRoutine(ctx, "local", CreateRoutineInput{Name: "late", Schedule: "daily", TimeOfDay: "22:00", Energy: 1})
	if err != nil {
		t.Fatalf("create late: %v", err)
	}
	paused, err := svc.CreateRoutine(ctx, "local", CreateRoutineInput{Name: "paused", Schedule: "daily", Energy: 1})
	if err != nil {
		t.Fatalf("create paused: %v", err)
	}
	if _, err := svc.SetRoutineActive(ctx, "local", paused.ID, false); err != nil {
		t.Fatalf("pause: %v", err)
	}

	// Pin next-due so ordering is deterministic regardless of wall clock.
	base := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	if err := svc.UpdateNextDue(ctx, early.ID, base.Add(6*time.Hour)); err != nil {
		t.Fatalf("pin early: %v", err)
	}
	if err := svc.UpdateNextDue(ctx, late.ID, base.Add(22*time.Hour)); err != nil {
		t.Fatalf("pin late: %v", err)
	}
	if err := svc.UpdateNextDue(ctx, paused.ID, base); err != nil {
		t.Fatalf("pin paused: %v", err)
	}

	due, err := svc.DueRoutines(ctx, base.Add(24*time.Hour))
	if err != nil {
		t.Fatalf("DueRoutines: %v", err)
	}
	if len(due) != 2 {
		t.Fatalf("%d due routines, want 2 (paused excluded)", len(due))
	}
	if due[0].ID != early.ID || due[1].ID != late.ID {
		t.Fatalf("due order [%s %s], want [%s %s]", due[0].Name, due[1].Name, "early", "late")
	}

	// Cutoff before either next-due yields nothing.
	none, err := svc.DueRoutines(ctx, base)
	if err != nil {
		t.Fatalf("DueRoutines early cutoff: %v", err)
	}
	if len(none) != 0 {
		t.Fatalf("%d due routines before cutoff, want 0", len(none))
	}
}

func TestSpawnQuestIdempotentPerOccurrence(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	rt, err := svc.CreateRoutine(ctx, "local", CreateRoutineInput{Name: "water plants", Schedule: "daily", Energy: 2})
	if err != nil {
		t.Fatalf("create routine: %v", err)
	}

	q1, err := svc.SpawnQuest(ctx, rt.ID)
	if err != nil {
		t.Fatalf("spawn: %v", err)
	}
	q2, err := svc.SpawnQuest(ctx, rt.ID)
	if err != nil {
		t.Fatalf("second spawn: %v", err)
	}
	if q1.ID != q2.ID {
		t.Fatalf("second spawn created a duplicate: %s vs %s", q1.ID, q2.ID)
	}
	if q1.Title != "water plants" || q1.Energy != 2 {
		t.Fatalf("spawned quest title=%q energy=%d", q1.Title, q1.Energy)
	}
	if q1.Status != string(StatusBacklog) {
		t.Fatalf("spawned quest status=%q, want backlog", q1.Status)
	}
	if q1.RoutineID == nil || *q1.RoutineID != rt.ID {
		t.Fatalf("spawned quest routine link=%v, want %s", q1.RoutineID, rt.ID)
	}

	// Advancing next-due makes the next spawn a new occurrence.
	if err := svc.UpdateNextDue(ctx, rt.ID, rt.NextDue.Add(24*time.Hour)); err != nil {
		t.Fatalf("advance next due: %v", err)
	}
	q3, err := svc.SpawnQuest(ctx, rt.ID)
	if err != nil {
		t.Fatalf("spawn next occurrence: %v", err)
	}
	if q3.ID == q1.ID {
		t.Fatalf("new occurrence reused the previous quest")
	}
}

func TestSpawnQuestInactiveRoutine(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	rt, err := svc.CreateRoutine(ctx, "local", CreateRoutineInput{Name: "stretch", Schedule: "daily", Energy: 1})
	if err != nil {
		t.Fatalf("create routine: %v", err)
	}
	if _, err := svc.SetRoutineActive(ctx, "local", rt.ID, false); err != nil {
		t.Fatalf("pause: %v", err)
	}

	var nf NotFoundError
	if _, err := svc.SpawnQuest(ctx, rt.ID); !errors.As(err, &nf) {
		t.Fatalf("spawn paused routine: got %v, want NotFoundError", err)
	}
}
