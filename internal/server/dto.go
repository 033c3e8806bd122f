package server

import (
	"time"

	"github.com/getaltair/altair-sub003/internal/storage"
)

// Timestamps serialize as ISO-8601 (RFC 3339) via time.Time; identifiers are
// opaque ULID strings.

type questResponse struct {
	ID          string     `json:"id"`
	Owner       string     `json:"owner"`
	Title       string     `json:"title"`
	Description *string    `json:"description,omitempty"`
	Energy      int        `json:"energy"`
	Status      string     `json:"status"`
	EpicID      *string    `json:"epic_id,omitempty"`
	RoutineID   *string    `json:"routine_id,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	StartedAt   *time.Time `json:"started_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

func toQuest(q *storage.Quest) questResponse {
	return questResponse{
		ID:          q.ID,
		Owner:       q.OwnerID,
		Title:       q.Title,
		Description: q.Description,
		Energy:      q.Energy,
		Status:      q.Status,
		EpicID:      q.EpicID,
		RoutineID:   q.RoutineID,
		CreatedAt:   q.CreatedAt,
		UpdatedAt:   q.UpdatedAt,
		StartedAt:   q.StartedAt,
		CompletedAt: q.CompletedAt,
	}
}

func toQuests(qs []storage.Quest) []questResponse {
	out := make([]questResponse, 0, len(qs))
	for i := range qs {
		out = append(out, toQuest(&qs[i]))
	}
	return out
}

type checkpointResponse struct {
	ID          string     `json:"id"`
	QuestID     string     `json:"quest_id"`
	Title       string     `json:"title"`
	Completed   bool       `json:"completed"`
	Order       int        `json:"order"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

func toCheckpoint(cp *storage.Checkpoint) checkpointResponse {
	return checkpointResponse{
		ID:          cp.ID,
		QuestID:     cp.QuestID,
		Title:       cp.Title,
		Completed:   cp.Completed,
		Order:       cp.SortOrder,
		CompletedAt: cp.CompletedAt,
	}
}

func toCheckpoints(cps []storage.Checkpoint) []checkpointResponse {
	out := make([]checkpointResponse, 0, len(cps))
	for i := range cps {
		out = append(out, toCheckpoint(&cps[i]))
	}
	return out
}

type epicResponse struct {
	ID           string     `json:"id"`
	Owner        string     `json:"owner"`
	Title        string     `json:"title"`
	Description  *string    `json:"description,omitempty"`
	Status       string     `json:"status"`
	InitiativeID *string    `json:"initiative_id,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
}

func toEpic(e *storage.Epic) epicResponse {
	return epicResponse{
		ID:           e.ID,
		Owner:        e.OwnerID,
		Title:        e.Title,
		Description:  e.Description,
		Status:       e.Status,
		InitiativeID: e.InitiativeID,
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
		CompletedAt:  e.CompletedAt,
	}
}

type routineResponse struct {
	ID           string    `json:"id"`
	Owner        string    `json:"owner"`
	Name         string    `json:"name"`
	Description  *string   `json:"description,omitempty"`
	Schedule     string    `json:"schedule"`
	TimeOfDay    *string   `json:"time_of_day,omitempty"`
	Energy       int       `json:"energy"`
	InitiativeID *string   `json:"initiative_id,omitempty"`
	Active       bool      `json:"active"`
	NextDue      time.Time `json:"next_due"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func toRoutine(rt *storage.Routine) routineResponse {
	return routineResponse{
		ID:           rt.ID,
		Owner:        rt.OwnerID,
		Name:         rt.Name,
		Description:  rt.Description,
		Schedule:     rt.Schedule,
		TimeOfDay:    rt.TimeOfDay,
		Energy:       rt.Energy,
		InitiativeID: rt.InitiativeID,
		Active:       rt.Active,
		NextDue:      rt.NextDue,
		CreatedAt:    rt.CreatedAt,
		UpdatedAt:    rt.UpdatedAt,
	}
}

func toRoutines(rts []storage.Routine) []routineResponse {
	out := make([]routineResponse, 0, len(rts))
	for i := range rts {
		out = append(out, toRoutine(&rts[i]))
	}
	return out
}

type inboxResponse struct {
	ID          string    `json:"id"`
	Owner       string    `json:"owner"`
	Content     string    `json:"content"`
	Source      string    `json:"source"`
	Attachments []string  `json:"attachments,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func toInboxItem(it *storage.InboxItem) inboxResponse {
	return inboxResponse{
		ID:          it.ID,
		Owner:       it.OwnerID,
		Content:     it.Content,
		Source:      it.Source,
		Attachments: it.Attachments,
		CreatedAt:   it.CreatedAt,
	}
}
