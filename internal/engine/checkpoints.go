package engine

import (
	"context"
	"database/sql"

	"github.com/getaltair/altair-sub003/internal/storage"
)

type AddCheckpointInput struct {
	Title string `validate:"required"`
	// SortOrder may be sparse (0, 10, 20) so inserting between two existing
	// checkpoints does not force a renumber.
	SortOrder int `validate:"gte=0"`
}

type UpdateCheckpointInput struct {
	Title     *string
	Completed *bool
	SortOrder *int
}

func (s *Service) ListCheckpoints(ctx context.Context, owner, questID string) ([]storage.Checkpoint, error) {
	if _, err := s.GetQuest(ctx, owner, questID); err != nil {
		return nil, err
	}
	out, err := s.points.ListByQuest(ctx, questID)
	if err != nil {
		return nil, storageErr("list checkpoints", err)
	}
	return out, nil
}

func (s *Service) AddCheckpoint(ctx context.Context, owner, questID string, in AddCheckpointInput) (*storage.Checkpoint, error) {
	title, err := normalizeTitle(in.Title)
	if err != nil {
		return nil, err
	}
	if err := validateInput(in); err != nil {
		return nil, err
	}
	if _, err := s.GetQuest(ctx, owner, questID); err != nil {
		return nil, err
	}

	now := s.now()
	id, err := s.points.Insert(ctx, storage.CheckpointInsert{
		QuestID:   questID,
		Title:     title,
		SortOrder: in.SortOrder,
		CreatedAt: now,
	})
	if err != nil {
		return nil, storageErr("add checkpoint", err)
	}
	cp, err := s.points.Get(ctx, id)
	if err != nil {
		return nil, storageErr("add checkpoint", err)
	}
	return cp, nil
}

func (s *Service) UpdateCheckpoint(ctx context.Context, owner, id string, in UpdateCheckpointInput) (*storage.Checkpoint, error) {
	cp, err := s.getOwnedCheckpoint(ctx, owner, id)
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		title, err := normalizeTitle(*in.Title)
		if err != nil {
			return nil, err
		}
		cp.Title = title
	}
	if in.SortOrder != nil {
		if *in.SortOrder < 0 {
			return nil, ValidationError{Field: "order", Reason: "must be >= 0"}
		}
		cp.SortOrder = *in.SortOrder
	}
	if in.Completed != nil && *in.Completed != cp.Completed {
		cp.Completed = *in.Completed
		if cp.Completed {
			now := s.now()
			cp.CompletedAt = &now
		} else {
			cp.CompletedAt = nil
		}
	}

	if err := s.points.Update(ctx, cp); err != nil {
		return nil, storageErr("update checkpoint", err)
	}
	return cp, nil
}

func (s *Service) DeleteCheckpoint(ctx context.Context, owner, id string) error {
	if _, err := s.getOwnedCheckpoint(ctx, owner, id); err != nil {
		return err
	}
	if err := s.points.Delete(ctx, id); err != nil {
		return storageErr("delete checkpoint", err)
	}
	return nil
}

// ReorderCheckpoints rewrites each checkpoint's order to its index in
// orderedIDs, inside one transaction. The list must enumerate every
// checkpoint of the quest: a partial list would silently leave stale order
// values behind, so it is rejected instead.
func (s *Service) ReorderCheckpoints(ctx context.Context, owner, questID string, orderedIDs []string) ([]storage.Checkpoint, error) {
	if _, err := s.GetQuest(ctx, owner, questID); err != nil {
		return nil, err
	}

	err := storage.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		points := storage.NewCheckpointRepo(tx)

		existing, err := points.ListByQuest(ctx, questID)
		if err != nil {
			return storageErr("reorder checkpoints", err)
		}
		byID := make(map[string]bool, len(existing))
		for _, cp := range existing {
			byID[cp.ID] = true
		}

		if len(orderedIDs) != len(existing) {
			return ValidationError{Field: "order", Reason: "must list every checkpoint of the quest exactly once"}
		}
		seen := make(map[string]bool, len(orderedIDs))
		for _, id := range orderedIDs {
			if !byID[id] {
				return NotFoundError{Kind: "checkpoint", ID: id}
			}
			if seen[id] {
				return ValidationError{Field: "order", Reason: "duplicate checkpoint id " + id}
			}
			seen[id] = true
		}

		for i, id := range orderedIDs {
			if err := points.SetOrder(ctx, id, i); err != nil {
				return storageErr("reorder checkpoints", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	out, err := s.points.ListByQuest(ctx, questID)
	if err != nil {
		return nil, storageErr("reorder checkpoints", err)
	}
	return out, nil
}

// getOwnedCheckpoint resolves a checkpoint and verifies its parent quest is
// in the caller's scope; checkpoints have no owner column of their own.
func (s *Service) getOwnedCheckpoint(ctx context.Context, owner, id string) (*storage.Checkpoint, error) {
	cp, err := s.points.Get(ctx, id)
	if err != nil {
		return nil, storageErr("get checkpoint", err)
	}
	if cp == nil {
		return nil, NotFoundError{Kind: "checkpoint", ID: id}
	}
	if _, err := s.GetQuest(ctx, owner, cp.QuestID); err != nil {
		return nil, NotFoundError{Kind: "checkpoint", ID: id}
	}
	return cp, nil
}
