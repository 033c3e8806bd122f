package engine

import (
	"context"

	"github.com/getaltair/altair-sub003/internal/storage"
)

type EpicStatus string

const (
	EpicActive    EpicStatus = "active"
	EpicCompleted EpicStatus = "completed"
	EpicArchived  EpicStatus = "archived"
)

type EpicInput struct {
	Title        string `validate:"required"`
	Description  string
	InitiativeID string
}

func (s *Service) CreateEpic(ctx context.Context, owner string, in EpicInput) (*storage.Epic, error) {
	title, err := normalizeTitle(in.Title)
	if err != nil {
		return nil, err
	}

	now := s.now()
	id, err := s.epics.Insert(ctx, storage.EpicInsert{
		OwnerID:      owner,
		Title:        title,
		Description:  optional(in.Description),
		InitiativeID: optional(in.InitiativeID),
		CreatedAt:    now,
	})
	if err != nil {
		return nil, storageErr("create epic", err)
	}
	return s.GetEpic(ctx, owner, id)
}

func (s *Service) GetEpic(ctx context.Context, owner, id string) (*storage.Epic, error) {
	e, err := s.epics.Get(ctx, owner, id)
	if err != nil {
		return nil, storageErr("get epic", err)
	}
	if e == nil {
		return nil, NotFoundError{Kind: "epic", ID: id}
	}
	return e, nil
}

func (s *Service) ListEpics(ctx context.Context, owner string) ([]storage.Epic, error) {
	out, err := s.epics.List(ctx, owner)
	if err != nil {
		return nil, storageErr("list epics", err)
	}
	return out, nil
}

func (s *Service) UpdateEpic(ctx context.Context, owner, id string, in EpicInput) (*storage.Epic, error) {
	e, err := s.GetEpic(ctx, owner, id)
	if err != nil {
		return nil, err
	}
	title, err := normalizeTitle(in.Title)
	if err != nil {
		return nil, err
	}

	e.Title = title
	e.Description = optional(in.Description)
	e.InitiativeID = optional(in.InitiativeID)
	e.UpdatedAt = s.now()
	if err := s.epics.Update(ctx, e); err != nil {
		return nil, storageErr("update epic", err)
	}
	return e, nil
}

func (s *Service) CompleteEpic(ctx context.Context, owner, id string) (*storage.Epic, error) {
	return s.setEpicStatus(ctx, owner, id, EpicCompleted)
}

func (s *Service) ArchiveEpic(ctx context.Context, owner, id string) (*storage.Epic, error) {
	return s.setEpicStatus(ctx, owner, id, EpicArchived)
}

// DeleteEpic soft-deletes the epic. Quests keep their epic_id pointing at the
// deleted record; they simply lose the grouping, never cascade.
func (s *Service) DeleteEpic(ctx context.Context, owner, id string) error {
	if _, err := s.GetEpic(ctx, owner, id); err != nil {
		return err
	}
	if err := s.epics.SoftDelete(ctx, owner, id, s.now()); err != nil {
		return storageErr("delete epic", err)
	}
	return nil
}

func (s *Service) setEpicStatus(ctx context.Context, owner, id string, to EpicStatus) (*storage.Epic, error) {
	e, err := s.GetEpic(ctx, owner, id)
	if err != nil {
		return nil, err
	}
	now := s.now()
	stamp := e.CompletedAt
	if to == EpicCompleted {
		stamp = &now
	}
	if err := s.epics.SetStatus(ctx, id, string(to), stamp, now); err != nil {
		return nil, storageErr("set epic status", err)
	}
	e.Status = string(to)
	e.CompletedAt = stamp
	e.UpdatedAt = now
	return e, nil
}
