package engine

import (
	"context"
	"database/sql"

	"github.com/getaltair/altair-sub003/internal/storage"
)

type QuestStatus string

const (
	StatusBacklog   QuestStatus = "backlog"
	StatusActive    QuestStatus = "active"
	StatusCompleted QuestStatus = "completed"
	StatusAbandoned QuestStatus = "abandoned"
)

func (q QuestStatus) IsValid() bool {
	switch q {
	case StatusBacklog, StatusActive, StatusCompleted, StatusAbandoned:
		return true
	default:
		return false
	}
}

// WipLimit is the number of quests an owner may have active at once.
const WipLimit = 1

type CreateQuestInput struct {
	Title       string `validate:"required"`
	Description string
	Energy      int    `validate:"gte=1,lte=5"`
	EpicID      string
}

type UpdateQuestInput struct {
	Title       *string
	Description *string
	Energy      *int
	EpicID      *string // empty string clears the epic link
}

func (s *Service) CreateQuest(ctx context.Context, owner string, in CreateQuestInput) (*storage.Quest, error) {
	title, err := normalizeTitle(in.Title)
	if err != nil {
		return nil, err
	}
	if err := validateInput(in); err != nil {
		return nil, err
	}

	now := s.now()
	id, err := s.quests.Insert(ctx, storage.QuestInsert{
		OwnerID:     owner,
		Title:       title,
		Description: optional(in.Description),
		Energy:      in.Energy,
		Status:      string(StatusBacklog),
		EpicID:      optional(in.EpicID),
		CreatedAt:   now,
	})
	if err != nil {
		return nil, storageErr("create quest", err)
	}
	return s.GetQuest(ctx, owner, id)
}

func (s *Service) GetQuest(ctx context.Context, owner, id string) (*storage.Quest, error) {
	q, err := s.quests.Get(ctx, owner, id)
	if err != nil {
		return nil, storageErr("get quest", err)
	}
	if q == nil {
		return nil, NotFoundError{Kind: "quest", ID: id}
	}
	return q, nil
}

// UpdateQuest edits non-status fields. Nil input fields are left untouched.
func (s *Service) UpdateQuest(ctx context.Context, owner, id string, in UpdateQuestInput) (*storage.Quest, error) {
	q, err := s.GetQuest(ctx, owner, id)
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		title, err := normalizeTitle(*in.Title)
		if err != nil {
			return nil, err
		}
		q.Title = title
	}
	if in.Description != nil {
		q.Description = optional(*in.Description)
	}
	if in.Energy != nil {
		if *in.Energy < 1 || *in.Energy > 5 {
			return nil, ValidationError{Field: "energy", Reason: "must be between 1 and 5"}
		}
		q.Energy = *in.Energy
	}
	if in.EpicID != nil {
		q.EpicID = optional(*in.EpicID)
	}

	q.UpdatedAt = s.now()
	if err := s.quests.Update(ctx, q); err != nil {
		return nil, storageErr("update quest", err)
	}
	return q, nil
}

func (s *Service) DeleteQuest(ctx context.Context, owner, id string) error {
	if _, err := s.GetQuest(ctx, owner, id); err != nil {
		return err
	}
	if err := s.quests.SoftDelete(ctx, owner, id, s.now()); err != nil {
		return storageErr("delete quest", err)
	}
	return nil
}

func (s *Service) RestoreQuest(ctx context.Context, owner, id string) (*storage.Quest, error) {
	q, err := s.quests.GetAny(ctx, owner, id)
	if err != nil {
		return nil, storageErr("restore quest", err)
	}
	if q == nil {
		return nil, NotFoundError{Kind: "quest", ID: id}
	}
	if q.DeletedAt == nil {
		return q, nil
	}
	if err := s.quests.Restore(ctx, owner, id, s.now()); err != nil {
		return nil, storageErr("restore quest", err)
	}
	return s.GetQuest(ctx, owner, id)
}

func (s *Service) ListQuestsByStatus(ctx context.Context, owner string, status QuestStatus) ([]storage.Quest, error) {
	if !status.IsValid() {
		return nil, ValidationError{Field: "status", Reason: "must be one of backlog, active, completed, abandoned"}
	}
	out, err := s.quests.ListByStatus(ctx, owner, string(status))
	if err != nil {
		return nil, storageErr("list quests", err)
	}
	return out, nil
}

// ActiveQuest returns the owner's single active quest, or nil when the WIP
// slot is free.
func (s *Service) ActiveQuest(ctx context.Context, owner string) (*storage.Quest, error) {
	q, err := s.quests.GetActive(ctx, owner)
	if err != nil {
		return nil, storageErr("active quest", err)
	}
	return q, nil
}

// StartQuest is the only operation with a cross-record invariant: at most one
// active quest per owner. The owner lock plus the re-read inside the
// transaction keep two concurrent starts from both observing an empty active
// set.
func (s *Service) StartQuest(ctx context.Context, owner, id string) (*storage.Quest, error) {
	mu := s.ownerLock(owner)
	mu.Lock()
	defer mu.Unlock()

	var out *storage.Quest
	err := storage.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		quests := storage.NewQuestRepo(tx)

		q, err := quests.Get(ctx, owner, id)
		if err != nil {
			return storageErr("start quest", err)
		}
		if q == nil {
			return NotFoundError{Kind: "quest", ID: id}
		}
		if q.Status != string(StatusBacklog) {
			return ValidationError{Field: "status", Reason: "only a backlog quest can be started"}
		}

		active, err := quests.CountActive(ctx, owner)
		if err != nil {
			return storageErr("start quest", err)
		}
		if active >= WipLimit {
			return WipLimitError{Current: active, Limit: WipLimit}
		}

		now := s.now()
		if err := quests.MarkStarted(ctx, id, now); err != nil {
			return storageErr("start quest", err)
		}
		q.Status = string(StatusActive)
		q.StartedAt = &now
		q.UpdatedAt = now
		out = q
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// CompleteQuest moves any non-terminal quest to completed and stamps
// completed_at. It writes nothing outside the quest row: the energy spent
// figure is derived at read time, so retries cannot double-count.
func (s *Service) CompleteQuest(ctx context.Context, owner, id string) (*storage.Quest, error) {
	q, err := s.GetQuest(ctx, owner, id)
	if err != nil {
		return nil, err
	}
	switch QuestStatus(q.Status) {
	case StatusCompleted, StatusAbandoned:
		return nil, ValidationError{Field: "status", Reason: "quest is already " + q.Status}
	}

	now := s.now()
	if err := s.quests.MarkCompleted(ctx, id, now); err != nil {
		return nil, storageErr("complete quest", err)
	}
	q.Status = string(StatusCompleted)
	q.CompletedAt = &now
	q.UpdatedAt = now
	return q, nil
}

func (s *Service) AbandonQuest(ctx context.Context, owner, id string) (*storage.Quest, error) {
	return s.transition(ctx, owner, id, StatusAbandoned)
}

// ParkQuest returns a quest to the backlog, freeing the WIP slot.
func (s *Service) ParkQuest(ctx context.Context, owner, id string) (*storage.Quest, error) {
	return s.transition(ctx, owner, id, StatusBacklog)
}

func (s *Service) transition(ctx context.Context, owner, id string, to QuestStatus) (*storage.Quest, error) {
	q, err := s.GetQuest(ctx, owner, id)
	if err != nil {
		return nil, err
	}
	now := s.now()
	if err := s.quests.SetStatus(ctx, id, string(to), now); err != nil {
		return nil, storageErr("transition quest", err)
	}
	q.Status = string(to)
	q.UpdatedAt = now
	return q, nil
}

// TodayQuests returns the quests relevant on the given calendar day: the
// active quest, routine-spawned instances due that day, and quests completed
// that day.
func (s *Service) TodayQuests(ctx context.Context, owner, date string) ([]storage.Quest, error) {
	from, to, err := s.dayBounds(date)
	if err != nil {
		return nil, err
	}

	seen := map[string]bool{}
	var out []storage.Quest

	if active, err := s.ActiveQuest(ctx, owner); err != nil {
		return nil, err
	} else if active != nil {
		seen[active.ID] = true
		out = append(out, *active)
	}

	spawned, err := s.quests.ListRoutineSpawnedBetween(ctx, owner, from, to)
	if err != nil {
		return nil, storageErr("today quests", err)
	}
	for _, q := range spawned {
		if !seen[q.ID] {
			seen[q.ID] = true
			out = append(out, q)
		}
	}

	completed, err := s.quests.ListCompletedBetween(ctx, owner, from, to)
	if err != nil {
		return nil, storageErr("today quests", err)
	}
	for _, q := range completed {
		if !seen[q.ID] {
			seen[q.ID] = true
			out = append(out, q)
		}
	}
	return out, nil
}
