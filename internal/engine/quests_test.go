package engine

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
)

func TestCreateQuestValidation(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	cases := []struct {
		name string
		in   CreateQuestInput
	}{
		{"empty title", CreateQuestInput{Title: "", Energy: 1}},
		{"whitespace title", CreateQuestInput{Title: "   ", Energy: 1}},
		{"title too long", CreateQuestInput{Title: strings.Repeat("x", 201), Energy: 1}},
		{"energy zero", CreateQuestInput{Title: "ok", Energy: 0}},
		{"energy too high", CreateQuestInput{Title: "ok", Energy: 6}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateQuest(ctx, "local", tc.in)
			var verr ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("CreateQuest: got %v, want ValidationError", err)
			}
		})
	}

	// Rejected creates leave nothing behind.
	backlog, err := svc.ListQuestsByStatus(ctx, "local", StatusBacklog)
	if err != nil {
		t.Fatalf("ListQuestsByStatus: %v", err)
	}
	if len(backlog) != 0 {
		t.Fatalf("backlog has %d quests after rejected creates, want 0", len(backlog))
	}
}

func TestCreateQuestTrimsTitle(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()

	q := mustCreateQuest(t, svc, "local", "  Write the report  ", 2)
	if q.Title != "Write the report" {
		t.Fatalf("title=%q, want trimmed", q.Title)
	}
	if q.Status != string(StatusBacklog) {
		t.Fatalf("status=%q, want backlog", q.Status)
	}
}

func TestStartQuestEnforcesWipLimit(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	q1 := mustCreateQuest(t, svc, "local", "first", 1)
	q2 := mustCreateQuest(t, svc, "local", "second", 1)

	if _, err := svc.StartQuest(ctx, "local", q1.ID); err != nil {
		t.Fatalf("start q1: %v", err)
	}

	_, err := svc.StartQuest(ctx, "local", q2.ID)
	var werr WipLimitError
	if !errors.As(err, &werr) {
		t.Fatalf("start q2: got %v, want WipLimitError", err)
	}
	if werr.Current != 1 || werr.Limit != WipLimit {
		t.Fatalf("WipLimitError{%d,%d}, want {1,%d}", werr.Current, werr.Limit, WipLimit)
	}

	// q2 is untouched.
	got, err := svc.GetQuest(ctx, "local", q2.ID)
	if err != nil {
		t.Fatalf("get q2: %v", err)
	}
	if got.Status != string(StatusBacklog) {
		t.Fatalf("q2 status=%q, want backlog", got.Status)
	}
}

func TestStartQuestConcurrentExactlyOneWins(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	const n = 8
	ids := make([]string, n)
	for i := 0; i < n; i++ {
		ids[i] = mustCreateQuest(t, svc, "local", "quest", 1).ID
	}

	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.StartQuest(ctx, "local", ids[i])
		}(i)
	}
	wg.Wait()

	started := 0
	for _, err := range errs {
		if err == nil {
			started++
			continue
		}
		var werr WipLimitError
		if !errors.As(err, &werr) {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if started != 1 {
		t.Fatalf("%d concurrent starts succeeded, want exactly 1", started)
	}

	active, err := svc.ListQuestsByStatus(ctx, "local", StatusActive)
	if err != nil {
		t.Fatalf("list active: %v", err)
	}
	if len(active) != 1 {
		t.Fatalf("%d active quests, want 1", len(active))
	}
}

func TestStartQuestOnlyFromBacklog(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	q := mustCreateQuest(t, svc, "local", "quest", 1)
	if _, err := svc.StartQuest(ctx, "local", q.ID); err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, err := svc.CompleteQuest(ctx, "local", q.ID); err != nil {
		t.Fatalf("complete: %v", err)
	}

	_, err := svc.StartQuest(ctx, "local", q.ID)
	var verr ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("start completed quest: got %v, want ValidationError", err)
	}
}

func TestParkFreesWipSlot(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	q1 := mustCreateQuest(t, svc, "local", "first", 1)
	q2 := mustCreateQuest(t, svc, "local", "second", 1)

	if _, err := svc.StartQuest(ctx, "local", q1.ID); err != nil {
		t.Fatalf("start q1: %v", err)
	}
	parked, err := svc.ParkQuest(ctx, "local", q1.ID)
	if err != nil {
		t.Fatalf("park q1: %v", err)
	}
	if parked.Status != string(StatusBacklog) {
		t.Fatalf("parked status=%q, want backlog", parked.Status)
	}

	if _, err := svc.StartQuest(ctx, "local", q2.ID); err != nil {
		t.Fatalf("start q2 after park: %v", err)
	}
}

func TestCompleteQuestRejectsTerminal(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	q := mustCreateQuest(t, svc, "local", "quest", 1)
	if _, err := svc.CompleteQuest(ctx, "local", q.ID); err != nil {
		t.Fatalf("complete: %v", err)
	}

	_, err := svc.CompleteQuest(ctx, "local", q.ID)
	var verr ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("re-complete: got %v, want ValidationError", err)
	}

	q2 := mustCreateQuest(t, svc, "local", "other", 1)
	if _, err := svc.AbandonQuest(ctx, "local", q2.ID); err != nil {
		t.Fatalf("abandon: %v", err)
	}
	_, err = svc.CompleteQuest(ctx, "local", q2.ID)
	if !errors.As(err, &verr) {
		t.Fatalf("complete abandoned: got %v, want ValidationError", err)
	}
}

func TestSoftDeleteAndRestore(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	q := mustCreateQuest(t, svc, "local", "quest", 1)
	if err := svc.DeleteQuest(ctx, "local", q.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	_, err := svc.GetQuest(ctx, "local", q.ID)
	var nf NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("get deleted: got %v, want NotFoundError", err)
	}

	restored, err := svc.RestoreQuest(ctx, "local", q.ID)
	if err != nil {
		t.Fatalf("restore: %v", err)
	}
	if restored.DeletedAt != nil {
		t.Fatalf("restored quest still has deleted_at")
	}
	if _, err := svc.GetQuest(ctx, "local", q.ID); err != nil {
		t.Fatalf("get restored: %v", err)
	}
}

func TestOwnerScoping(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	q := mustCreateQuest(t, svc, "alice", "quest", 1)

	_, err := svc.GetQuest(ctx, "bob", q.ID)
	var nf NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("cross-owner get: got %v, want NotFoundError", err)
	}

	// Each owner has an independent WIP slot.
	qa := mustCreateQuest(t, svc, "alice", "a", 1)
	qb := mustCreateQuest(t, svc, "bob", "b", 1)
	if _, err := svc.StartQuest(ctx, "alice", qa.ID); err != nil {
		t.Fatalf("start alice: %v", err)
	}
	if _, err := svc.StartQuest(ctx, "bob", qb.ID); err != nil {
		t.Fatalf("start bob: %v", err)
	}
}
