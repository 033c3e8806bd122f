package engine

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestGetBudgetDefaultsWithoutPersisting(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	day := svc.Today()
	b, err := svc.GetBudget(ctx, "local", day)
	if err != nil {
		t.Fatalf("GetBudget: %v", err)
	}
	if b.Budget != DefaultDailyBudget {
		t.Fatalf("budget=%d, want default %d", b.Budget, DefaultDailyBudget)
	}
	if b.Spent != 0 || b.Remaining != DefaultDailyBudget || b.OverBudget {
		t.Fatalf("fresh day: spent=%d remaining=%d over=%v", b.Spent, b.Remaining, b.OverBudget)
	}

	// The default read must not create a row.
	stored, err := svc.BudgetRepo().Get(ctx, "local", day)
	if err != nil {
		t.Fatalf("BudgetRepo.Get: %v", err)
	}
	if stored != nil {
		t.Fatalf("default read persisted a budget row")
	}
}

func TestSpentDerivedFromCompletedQuests(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	q1 := mustCreateQuest(t, svc, "local", "first", 2)
	q2 := mustCreateQuest(t, svc, "local", "second", 3)

	if _, err := svc.StartQuest(ctx, "local", q1.ID); err != nil {
		t.Fatalf("start q1: %v", err)
	}
	if _, err := svc.CompleteQuest(ctx, "local", q1.ID); err != nil {
		t.Fatalf("complete q1: %v", err)
	}
	if _, err := svc.StartQuest(ctx, "local", q2.ID); err != nil {
		t.Fatalf("start q2: %v", err)
	}
	if _, err := svc.CompleteQuest(ctx, "local", q2.ID); err != nil {
		t.Fatalf("complete q2: %v", err)
	}

	b, err := svc.GetBudget(ctx, "local", svc.Today())
	if err != nil {
		t.Fatalf("GetBudget: %v", err)
	}
	if b.Spent != 5 {
		t.Fatalf("spent=%d, want 5", b.Spent)
	}
	if b.Remaining != 0 {
		t.Fatalf("remaining=%d, want 0", b.Remaining)
	}
	if b.OverBudget {
		t.Fatalf("exactly at budget must not report over")
	}
}

func TestSpentExcludesOtherDays(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	q := mustCreateQuest(t, svc, "local", "yesterday's work", 4)
	yesterday := time.Now().UTC().AddDate(0, 0, -1)
	if err := svc.QuestRepo().MarkCompleted(ctx, q.ID, yesterday); err != nil {
		t.Fatalf("backdate completion: %v", err)
	}

	b, err := svc.GetBudget(ctx, "local", svc.Today())
	if err != nil {
		t.Fatalf("GetBudget: %v", err)
	}
	if b.Spent != 0 {
		t.Fatalf("today's spent=%d, want 0", b.Spent)
	}

	yb, err := svc.GetBudget(ctx, "local", yesterday.Format("2006-01-02"))
	if err != nil {
		t.Fatalf("GetBudget yesterday: %v", err)
	}
	if yb.Spent != 4 {
		t.Fatalf("yesterday's spent=%d, want 4", yb.Spent)
	}
}

func TestSpentUsesConfiguredZoneDayBoundaries(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}
	svc, cleanup := newTestServiceIn(t, loc)
	defer cleanup()
	ctx := context.Background()

	// 2026-01-02 03:00 UTC is still the evening of Jan 1 in New York.
	q := mustCreateQuest(t, svc, "local", "late night", 4)
	completed := time.Date(2026, 1, 2, 3, 0, 0, 0, time.UTC)
	if err := svc.QuestRepo().MarkCompleted(ctx, q.ID, completed); err != nil {
		t.Fatalf("backdate completion: %v", err)
	}

	jan1, err := svc.GetBudget(ctx, "local", "2026-01-01")
	if err != nil {
		t.Fatalf("GetBudget jan 1: %v", err)
	}
	if jan1.Spent != 4 {
		t.Fatalf("jan 1 spent=%d, want 4", jan1.Spent)
	}

	jan2, err := svc.GetBudget(ctx, "local", "2026-01-02")
	if err != nil {
		t.Fatalf("GetBudget jan 2: %v", err)
	}
	if jan2.Spent != 0 {
		t.Fatalf("jan 2 spent=%d, want 0", jan2.Spent)
	}
}

func TestSetBudgetBounds(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	day := svc.Today()
	var verr ValidationError
	if _, err := svc.SetBudget(ctx, "local", day, 0); !errors.As(err, &verr) {
		t.Fatalf("budget 0: got %v, want ValidationError", err)
	}
	if _, err := svc.SetBudget(ctx, "local", day, 11); !errors.As(err, &verr) {
		t.Fatalf("budget 11: got %v, want ValidationError", err)
	}
	if _, err := svc.SetBudget(ctx, "local", "not-a-date", 5); !errors.As(err, &verr) {
		t.Fatalf("bad date: got %v, want ValidationError", err)
	}

	b, err := svc.SetBudget(ctx, "local", day, 8)
	if err != nil {
		t.Fatalf("SetBudget: %v", err)
	}
	if b.Budget != 8 {
		t.Fatalf("budget=%d, want 8", b.Budget)
	}

	// Upsert, not insert-only.
	b, err = svc.SetBudget(ctx, "local", day, 3)
	if err != nil {
		t.Fatalf("SetBudget again: %v", err)
	}
	if b.Budget != 3 {
		t.Fatalf("budget=%d, want 3", b.Budget)
	}
}

func TestOverBudgetFlag(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	day := svc.Today()
	if _, err := svc.SetBudget(ctx, "local", day, 2); err != nil {
		t.Fatalf("SetBudget: %v", err)
	}

	q := mustCreateQuest(t, svc, "local", "big one", 5)
	if _, err := svc.StartQuest(ctx, "local", q.ID); err != nil {
		t.Fatalf("start: %v", err)
	}
	// Completing is never blocked by the budget.
	if _, err := svc.CompleteQuest(ctx, "local", q.ID); err != nil {
		t.Fatalf("complete: %v", err)
	}

	b, err := svc.GetBudget(ctx, "local", day)
	if err != nil {
		t.Fatalf("GetBudget: %v", err)
	}
	if !b.OverBudget {
		t.Fatalf("spent=%d budget=%d, want over-budget flag", b.Spent, b.Budget)
	}
	if b.Remaining != -3 {
		t.Fatalf("remaining=%d, want -3", b.Remaining)
	}
}
