package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/getaltair/altair-sub003/internal/assist"
	"github.com/getaltair/altair-sub003/internal/engine"
)

type captureRequest struct {
	Content     string   `json:"content"`
	Source      string   `json:"source"`
	Attachments []string `json:"attachments"`
}

func captureInbox(svc *engine.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req captureRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "invalid request body: "+err.Error())
			return
		}
		it, err := svc.CaptureInbox(c.Request.Context(), owner(c), engine.CaptureInput{
			Content:     req.Content,
			Source:      req.Source,
			Attachments: req.Attachments,
		})
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, toInboxItem(it))
	}
}

func listInbox(svc *engine.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := svc.ListInbox(c.Request.Context(), owner(c))
		if err != nil {
			writeError(c, err)
			return
		}
		out := make([]inboxResponse, 0, len(items))
		for i := range items {
			out = append(out, toInboxItem(&items[i]))
		}
		c.JSON(http.StatusOK, gin.H{"items": out})
	}
}

type triageRequest struct {
	Kind           string                  `json:"kind"`
	Quest          *triageQuestPayload     `json:"quest"`
	Note           *triageNotePayload      `json:"note"`
	Item           *triageItemPayload      `json:"item"`
	SourceDocument *triageSourceDocPayload `json:"source_document"`
}

type triageQuestPayload struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Energy      int    `json:"energy"`
	EpicID      string `json:"epic_id"`
}

type triageNotePayload struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

type triageItemPayload struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Location string `json:"location"`
}

type triageSourceDocPayload struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Content string `json:"content"`
}

func (r triageRequest) target() engine.TriageTarget {
	t := engine.TriageTarget{Kind: engine.TriageKind(r.Kind)}
	if r.Quest != nil {
		t.Quest = &engine.CreateQuestInput{
			Title:       r.Quest.Title,
			Description: r.Quest.Description,
			Energy:      r.Quest.Energy,
			EpicID:      r.Quest.EpicID,
		}
	}
	if r.Note != nil {
		t.Note = &engine.NoteInput{Title: r.Note.Title, Body: r.Note.Body}
	}
	if r.Item != nil {
		t.Item = &engine.ItemInput{
			Name:     r.Item.Name,
			Quantity: r.Item.Quantity,
			Location: r.Item.Location,
		}
	}
	if r.SourceDocument != nil {
		t.SourceDocument = &engine.SourceDocumentInput{
			Title:   r.SourceDocument.Title,
			URL:     r.SourceDocument.URL,
			Content: r.SourceDocument.Content,
		}
	}
	return t
}

// triageInbox converts a capture into the requested entity. With an empty
// body and a configured assist provider it performs no conversion and
// instead returns a suggested kind for the capture's content.
func triageInbox(svc *engine.Service, provider assist.Provider) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req triageRequest
		if c.Request.ContentLength > 0 {
			if err := c.ShouldBindJSON(&req); err != nil {
				badRequest(c, "invalid request body: "+err.Error())
				return
			}
		}

		if req.Kind == "" {
			if provider == nil {
				badRequest(c, "kind is required")
				return
			}
			it, err := svc.GetInboxItem(c.Request.Context(), owner(c), c.Param("id"))
			if err != nil {
				writeError(c, err)
				return
			}
			kind, err := provider.ClassifyCapture(c.Request.Context(), it.Content)
			if err != nil {
				writeError(c, err)
				return
			}
			c.JSON(http.StatusOK, gin.H{"suggested_kind": kind})
			return
		}

		newID, err := svc.Triage(c.Request.Context(), owner(c), c.Param("id"), req.target())
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"kind": req.Kind, "id": newID})
	}
}
