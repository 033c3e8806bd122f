package engine

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/getaltair/altair-sub003/internal/storage"
)

func newTestService(t *testing.T) (*Service, func()) {
	return newTestServiceIn(t, time.UTC)
}

func newTestServiceIn(t *testing.T, loc *time.Location) (*Service, func()) {
	t.Helper()
	ctx := context.Background()

	dir := t.TempDir()
	path := filepath.Join(dir, "test.db")
	db, err := storage.Open(ctx, path)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}

	svc := NewService(db, loc)
	cleanup := func() {
		_ = db.Close()
	}
	return svc, cleanup
}

func mustCreateQuest(t *testing.T, svc *Service, owner, title string, energy int) *storage.Quest {
	t.Helper()
	q, err := svc.CreateQuest(context.Background(), owner, CreateQuestInput{Title: title, Energy: energy})
	if err != nil {
		t.Fatalf("CreateQuest(%q): %v", title, err)
	}
	return q
}
