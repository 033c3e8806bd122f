package engine

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/getaltair/altair-sub003/internal/storage"
)

// scheduleParser accepts standard 5-field cron expressions.
var scheduleParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// defaultTimeOfDay applies when a shorthand schedule has no time-of-day.
const defaultTimeOfDay = "09:00"

type CreateRoutineInput struct {
	Name         string `validate:"required"`
	Description  string
	Schedule     string `validate:"required"`
	TimeOfDay    string
	Energy       int `validate:"gte=1,lte=5"`
	InitiativeID string
}

// NormalizeSchedule turns a routine schedule into a cron expression. The
// shorthands daily, weekly and monthly expand using the optional HH:MM
// time-of-day; weekly takes an optional day-of-week suffix (weekly:mon,
// default Monday) and monthly an optional day-of-month suffix (monthly:15,
// default the 1st). Anything else must already be a valid 5-field cron
// expression.
func NormalizeSchedule(schedule, timeOfDay string) (string, error) {
	hour, minute, err := parseTimeOfDay(timeOfDay)
	if err != nil {
		return "", err
	}

	var expr string
	base, arg, _ := strings.Cut(strings.ToLower(strings.TrimSpace(schedule)), ":")
	switch base {
	case "daily":
		if arg != "" {
			return "", ValidationError{Field: "schedule", Reason: "invalid schedule " + schedule}
		}
		expr = fmt.Sprintf("%d %d * * *", minute, hour)
	case "weekly":
		if arg == "" {
			arg = "1"
		}
		expr = fmt.Sprintf("%d %d * * %s", minute, hour, arg)
	case "monthly":
		if arg == "" {
			arg = "1"
		}
		expr = fmt.Sprintf("%d %d %s * *", minute, hour, arg)
	default:
		expr = strings.TrimSpace(schedule)
	}

	if _, err := scheduleParser.Parse(expr); err != nil {
		return "", ValidationError{Field: "schedule", Reason: "invalid schedule " + schedule}
	}
	return expr, nil
}

// NextOccurrence computes the first occurrence of the schedule strictly after
// the given instant.
func NextOccurrence(schedule, timeOfDay string, after time.Time) (time.Time, error) {
	expr, err := NormalizeSchedule(schedule, timeOfDay)
	if err != nil {
		return time.Time{}, err
	}
	sched, err := scheduleParser.Parse(expr)
	if err != nil {
		return time.Time{}, ValidationError{Field: "schedule", Reason: "invalid schedule " + schedule}
	}
	return sched.Next(after), nil
}

func parseTimeOfDay(s string) (hour, minute int, err error) {
	s = strings.TrimSpace(s)
	if s == "" {
		s = defaultTimeOfDay
	}
	if _, perr := fmt.Sscanf(s, "%d:%d", &hour, &minute); perr != nil ||
		hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, 0, ValidationError{Field: "time_of_day", Reason: "must be HH:MM"}
	}
	return hour, minute, nil
}

func (s *Service) CreateRoutine(ctx context.Context, owner string, in CreateRoutineInput) (*storage.Routine, error) {
	name, err := normalizeTitle(in.Name)
	if err != nil {
		var verr ValidationError
		if errors.As(err, &verr) {
			verr.Field = "name"
			return nil, verr
		}
		return nil, err
	}
	if err := validateInput(in); err != nil {
		return nil, err
	}
	nextDue, err := NextOccurrence(in.Schedule, in.TimeOfDay, s.now())
	if err != nil {
		return nil, err
	}

	now := s.now()
	id, err := s.routines.Insert(ctx, storage.RoutineInsert{
		OwnerID:      owner,
		Name:         name,
		Description:  optional(in.Description),
		Schedule:     in.Schedule,
		TimeOfDay:    optional(in.TimeOfDay),
		Energy:       in.Energy,
		InitiativeID: optional(in.InitiativeID),
		NextDue:      nextDue,
		CreatedAt:    now,
	})
	if err != nil {
		return nil, storageErr("create routine", err)
	}
	return s.GetRoutine(ctx, owner, id)
}

func (s *Service) GetRoutine(ctx context.Context, owner, id string) (*storage.Routine, error) {
	rt, err := s.routines.GetOwned(ctx, owner, id)
	if err != nil {
		return nil, storageErr("get routine", err)
	}
	if rt == nil {
		return nil, NotFoundError{Kind: "routine", ID: id}
	}
	return rt, nil
}

func (s *Service) ListRoutines(ctx context.Context, owner string) ([]storage.Routine, error) {
	out, err := s.routines.List(ctx, owner)
	if err != nil {
		return nil, storageErr("list routines", err)
	}
	return out, nil
}

// DueRoutines returns active, non-deleted routines across all owners with
// next_due at or before the cutoff, soonest first. The scheduler driver
// recomputes this each tick; nothing is cached.
func (s *Service) DueRoutines(ctx context.Context, before time.Time) ([]storage.Routine, error) {
	out, err := s.routines.ListDue(ctx, before)
	if err != nil {
		return nil, storageErr("due routines", err)
	}
	return out, nil
}

func (s *Service) SetRoutineActive(ctx context.Context, owner, id string, active bool) (*storage.Routine, error) {
	rt, err := s.GetRoutine(ctx, owner, id)
	if err != nil {
		return nil, err
	}
	now := s.now()
	if err := s.routines.SetActive(ctx, owner, id, active, now); err != nil {
		return nil, storageErr("set routine active", err)
	}
	rt.Active = active
	rt.UpdatedAt = now
	return rt, nil
}

func (s *Service) DeleteRoutine(ctx context.Context, owner, id string) error {
	if _, err := s.GetRoutine(ctx, owner, id); err != nil {
		return err
	}
	if err := s.routines.SoftDelete(ctx, owner, id, s.now()); err != nil {
		return storageErr("delete routine", err)
	}
	return nil
}

// UpdateNextDue advances a routine's next-due timestamp. Called by the
// scheduler driver after a successful spawn.
func (s *Service) UpdateNextDue(ctx context.Context, id string, nextDue time.Time) error {
	rt, err := s.routines.Get(ctx, id)
	if err != nil {
		return storageErr("update next due", err)
	}
	if rt == nil {
		return NotFoundError{Kind: "routine", ID: id}
	}
	if err := s.routines.SetNextDue(ctx, id, nextDue.UTC(), s.now()); err != nil {
		return storageErr("update next due", err)
	}
	return nil
}

// SpawnQuest creates the backlog quest for a routine's current occurrence.
// Spawned quests are keyed by (routine, occurrence), so re-processing the
// same due routine before next_due advances returns the already-spawned
// quest instead of a duplicate.
func (s *Service) SpawnQuest(ctx context.Context, routineID string) (*storage.Quest, error) {
	var out *storage.Quest
	err := storage.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		routines := storage.NewRoutineRepo(tx)
		quests := storage.NewQuestRepo(tx)

		rt, err := routines.Get(ctx, routineID)
		if err != nil {
			return storageErr("spawn quest", err)
		}
		if rt == nil || !rt.Active {
			return NotFoundError{Kind: "routine", ID: routineID}
		}

		occurrence := rt.NextDue.UTC()
		existing, err := quests.GetByRoutineOccurrence(ctx, routineID, occurrence)
		if err != nil {
			return storageErr("spawn quest", err)
		}
		if existing != nil {
			out = existing
			return nil
		}

		var description *string
		if rt.Description != nil {
			d := *rt.Description
			description = &d
		}
		id, err := quests.Insert(ctx, storage.QuestInsert{
			OwnerID:           rt.OwnerID,
			Title:             rt.Name,
			Description:       description,
			Energy:            rt.Energy,
			Status:            string(StatusBacklog),
			RoutineID:         &rt.ID,
			RoutineOccurrence: &occurrence,
			CreatedAt:         s.now(),
		})
		if err != nil {
			return storageErr("spawn quest", err)
		}
		q, err := quests.Get(ctx, rt.OwnerID, id)
		if err != nil {
			return storageErr("spawn quest", err)
		}
		out = q
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
