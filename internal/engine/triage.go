package engine

import (
	"context"
	"database/sql"

	"github.com/getaltair/altair-sub003/internal/storage"
)

// TriageKind is the closed set of entities a capture can become.
type TriageKind string

const (
	TriageQuest          TriageKind = "quest"
	TriageNote           TriageKind = "note"
	TriageItem           TriageKind = "item"
	TriageSourceDocument TriageKind = "source_document"
)

func (k TriageKind) IsValid() bool {
	switch k {
	case TriageQuest, TriageNote, TriageItem, TriageSourceDocument:
		return true
	default:
		return false
	}
}

type NoteInput struct {
	Title string `validate:"required"`
	Body  string
}

type ItemInput struct {
	Name     string `validate:"required"`
	Quantity int    `validate:"gte=1"`
	Location string
}

type SourceDocumentInput struct {
	Title   string `validate:"required"`
	URL     string
	Content string
}

// TriageTarget is a tagged variant: exactly the payload matching Kind must be
// set.
type TriageTarget struct {
	Kind           TriageKind
	Quest          *CreateQuestInput
	Note           *NoteInput
	Item           *ItemInput
	SourceDocument *SourceDocumentInput
}

type CaptureInput struct {
	Content     string `validate:"required"`
	Source      string
	Attachments []string
}

func (s *Service) CaptureInbox(ctx context.Context, owner string, in CaptureInput) (*storage.InboxItem, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}

	id, err := s.inbox.Insert(ctx, storage.InboxInsert{
		OwnerID:     owner,
		Content:     in.Content,
		Source:      in.Source,
		Attachments: in.Attachments,
		CreatedAt:   s.now(),
	})
	if err != nil {
		return nil, storageErr("capture inbox", err)
	}
	it, err := s.inbox.Get(ctx, owner, id)
	if err != nil {
		return nil, storageErr("capture inbox", err)
	}
	return it, nil
}

func (s *Service) GetInboxItem(ctx context.Context, owner, id string) (*storage.InboxItem, error) {
	it, err := s.inbox.Get(ctx, owner, id)
	if err != nil {
		return nil, storageErr("get inbox item", err)
	}
	if it == nil {
		return nil, NotFoundError{Kind: "inbox item", ID: id}
	}
	return it, nil
}

func (s *Service) ListInbox(ctx context.Context, owner string) ([]storage.InboxItem, error) {
	out, err := s.inbox.List(ctx, owner)
	if err != nil {
		return nil, storageErr("list inbox", err)
	}
	return out, nil
}

// Triage converts a captured item into exactly one typed entity and retires
// the capture record, atomically: either the new entity exists and the inbox
// item is soft-deleted, or neither happened. Returns the new entity's id.
func (s *Service) Triage(ctx context.Context, owner, inboxItemID string, target TriageTarget) (string, error) {
	if err := validateTarget(target); err != nil {
		return "", err
	}

	var newID string
	err := storage.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		inbox := storage.NewInboxRepo(tx)

		item, err := inbox.Get(ctx, owner, inboxItemID)
		if err != nil {
			return storageErr("triage", err)
		}
		if item == nil {
			return NotFoundError{Kind: "inbox item", ID: inboxItemID}
		}

		now := s.now()
		switch target.Kind {
		case TriageQuest:
			quests := storage.NewQuestRepo(tx)
			title, err := normalizeTitle(target.Quest.Title)
			if err != nil {
				return err
			}
			newID, err = quests.Insert(ctx, storage.QuestInsert{
				OwnerID:     owner,
				Title:       title,
				Description: optional(target.Quest.Description),
				Energy:      target.Quest.Energy,
				Status:      string(StatusBacklog),
				EpicID:      optional(target.Quest.EpicID),
				CreatedAt:   now,
			})
			if err != nil {
				return storageErr("triage", err)
			}
		case TriageNote:
			captures := storage.NewCaptureRepo(tx)
			newID, err = captures.InsertNote(ctx, owner, target.Note.Title, target.Note.Body, now)
			if err != nil {
				return storageErr("triage", err)
			}
		case TriageItem:
			captures := storage.NewCaptureRepo(tx)
			newID, err = captures.InsertItem(ctx, owner, target.Item.Name, target.Item.Quantity, optional(target.Item.Location), now)
			if err != nil {
				return storageErr("triage", err)
			}
		case TriageSourceDocument:
			captures := storage.NewCaptureRepo(tx)
			newID, err = captures.InsertSourceDocument(ctx, owner, target.SourceDocument.Title, optional(target.SourceDocument.URL), target.SourceDocument.Content, now)
			if err != nil {
				return storageErr("triage", err)
			}
		}

		if err := inbox.SoftDelete(ctx, owner, inboxItemID, now); err != nil {
			return storageErr("triage", err)
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return newID, nil
}

// validateTarget enforces the tagged-variant shape before any storage call:
// a valid kind and exactly its payload, itself field-valid.
func validateTarget(target TriageTarget) error {
	if !target.Kind.IsValid() {
		return ValidationError{Field: "kind", Reason: "must be one of quest, note, item, source_document"}
	}

	set := 0
	if target.Quest != nil {
		set++
	}
	if target.Note != nil {
		set++
	}
	if target.Item != nil {
		set++
	}
	if target.SourceDocument != nil {
		set++
	}
	if set != 1 {
		return ValidationError{Field: "payload", Reason: "exactly one payload must be provided"}
	}

	switch target.Kind {
	case TriageQuest:
		if target.Quest == nil {
			return ValidationError{Field: "payload", Reason: "quest payload required for kind quest"}
		}
		if _, err := normalizeTitle(target.Quest.Title); err != nil {
			return err
		}
		return validateInput(*target.Quest)
	case TriageNote:
		if target.Note == nil {
			return ValidationError{Field: "payload", Reason: "note payload required for kind note"}
		}
		return validateInput(*target.Note)
	case TriageItem:
		if target.Item == nil {
			return ValidationError{Field: "payload", Reason: "item payload required for kind item"}
		}
		return validateInput(*target.Item)
	case TriageSourceDocument:
		if target.SourceDocument == nil {
			return ValidationError{Field: "payload", Reason: "source document payload required for kind source_document"}
		}
		return validateInput(*target.SourceDocument)
	}
	return nil
}
