package engine

import (
	"context"
	"errors"
	"testing"
)

func TestCheckpointsOrderedBySortOrder(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	q := mustCreateQuest(t, svc, "local", "quest", 1)

	// Sparse, out-of-creation-order values.
	for _, cp := range []struct {
		title string
		order int
	}{
		{"third", 20},
		{"first", 0},
		{"second", 10},
	} {
		if _, err := svc.AddCheckpoint(ctx, "local", q.ID, AddCheckpointInput{Title: cp.title, SortOrder: cp.order}); err != nil {
			t.Fatalf("AddCheckpoint(%q): %v", cp.title, err)
		}
	}

	got, err := svc.ListCheckpoints(ctx, "local", q.ID)
	if err != nil {
		t.Fatalf("ListCheckpoints: %v", err)
	}
	want := []string{"first", "second", "third"}
	if len(got) != len(want) {
		t.Fatalf("%d checkpoints, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].Title != want[i] {
			t.Fatalf("checkpoint[%d]=%q, want %q", i, got[i].Title, want[i])
		}
	}
}

func TestCheckpointCompletionStampsTimestamp(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	q := mustCreateQuest(t, svc, "local", "quest", 1)
	cp, err := svc.AddCheckpoint(ctx, "local", q.ID, AddCheckpointInput{Title: "step"})
	if err != nil {
		t.Fatalf("AddCheckpoint: %v", err)
	}

	yes := true
	done, err := svc.UpdateCheckpoint(ctx, "local", cp.ID, UpdateCheckpointInput{Completed: &yes})
	if err != nil {
		t.Fatalf("complete checkpoint: %v", err)
	}
	if !done.Completed || done.CompletedAt == nil {
		t.Fatalf("completed=%v completedAt=%v, want true and non-nil", done.Completed, done.CompletedAt)
	}

	no := false
	undone, err := svc.UpdateCheckpoint(ctx, "local", cp.ID, UpdateCheckpointInput{Completed: &no})
	if err != nil {
		t.Fatalf("uncomplete checkpoint: %v", err)
	}
	if undone.Completed || undone.CompletedAt != nil {
		t.Fatalf("completed=%v completedAt=%v, want false and nil", undone.Completed, undone.CompletedAt)
	}
}

func TestReorderCheckpointsRewritesPositions(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	q := mustCreateQuest(t, svc, "local", "quest", 1)
	var ids []string
	for i, title := range []string{"a", "b", "c"} {
		cp, err := svc.AddCheckpoint(ctx, "local", q.ID, AddCheckpointInput{Title: title, SortOrder: i * 10})
		if err != nil {
			t.Fatalf("AddCheckpoint: %v", err)
		}
		ids = append(ids, cp.ID)
	}

	// c, a, b
	reordered, err := svc.ReorderCheckpoints(ctx, "local", q.ID, []string{ids[2], ids[0], ids[1]})
	if err != nil {
		t.Fatalf("ReorderCheckpoints: %v", err)
	}
	wantTitles := []string{"c", "a", "b"}
	for i := range wantTitles {
		if reordered[i].Title != wantTitles[i] {
			t.Fatalf("reordered[%d]=%q, want %q", i, reordered[i].Title, wantTitles[i])
		}
		if reordered[i].SortOrder != i {
			t.Fatalf("reordered[%d].SortOrder=%d, want %d", i, reordered[i].SortOrder, i)
		}
	}
}

func TestReorderCheckpointsRejectsPartialList(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	q := mustCreateQuest(t, svc, "local", "quest", 1)
	var ids []string
	for _, title := range []string{"a", "b", "c"} {
		cp, err := svc.AddCheckpoint(ctx, "local", q.ID, AddCheckpointInput{Title: title})
		if err != nil {
			t.Fatalf("AddCheckpoint: %v", err)
		}
		ids = append(ids, cp.ID)
	}

	var verr ValidationError

	// Missing one id.
	if _, err := svc.ReorderCheckpoints(ctx, "local", q.ID, ids[:2]); !errors.As(err, &verr) {
		t.Fatalf("partial reorder: got %v, want ValidationError", err)
	}

	// Duplicate id.
	if _, err := svc.ReorderCheckpoints(ctx, "local", q.ID, []string{ids[0], ids[0], ids[1]}); !errors.As(err, &verr) {
		t.Fatalf("duplicate reorder: got %v, want ValidationError", err)
	}

	// Unknown id.
	var nf NotFoundError
	if _, err := svc.ReorderCheckpoints(ctx, "local", q.ID, []string{ids[0], ids[1], "nope"}); !errors.As(err, &nf) {
		t.Fatalf("unknown id reorder: got %v, want NotFoundError", err)
	}

	// Order untouched after the rejected calls.
	got, err := svc.ListCheckpoints(ctx, "local", q.ID)
	if err != nil {
		t.Fatalf("ListCheckpoints: %v", err)
	}
	for i, title := range []string{"a", "b", "c"} {
		if got[i].Title != title {
			t.Fatalf("checkpoint[%d]=%q, want %q", i, got[i].Title, title)
		}
	}
}

func TestCheckpointScopedThroughParentQuest(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	q := mustCreateQuest(t, svc, "alice", "quest", 1)
	cp, err := svc.AddCheckpoint(ctx, "alice", q.ID, AddCheckpointInput{Title: "step"})
	if err != nil {
		t.Fatalf("AddCheckpoint: %v", err)
	}

	var nf NotFoundError
	if err := svc.DeleteCheckpoint(ctx, "bob", cp.ID); !errors.As(err, &nf) {
		t.Fatalf("cross-owner delete: got %v, want NotFoundError", err)
	}
}
