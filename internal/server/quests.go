package server

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/getaltair/altair-sub003/internal/engine"
	"github.com/getaltair/altair-sub003/internal/storage"
)

type createQuestRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Energy      int    `json:"energy"`
	EpicID      string `json:"epic_id"`
}

func createQuest(svc *engine.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req createQuestRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "invalid request body: "+err.Error())
			return
		}
		q, err := svc.CreateQuest(c.Request.Context(), owner(c), engine.CreateQuestInput{
			Title:       req.Title,
			Description: req.Description,
			Energy:      req.Energy,
			EpicID:      req.EpicID,
		})
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, toQuest(q))
	}
}

func listQuests(svc *engine.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := c.DefaultQuery("status", string(engine.StatusBacklog))
		qs, err := svc.ListQuestsByStatus(c.Request.Context(), owner(c), engine.QuestStatus(status))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"quests": toQuests(qs)})
	}
}

func activeQuest(svc *engine.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		q, err := svc.ActiveQuest(c.Request.Context(), owner(c))
		if err != nil {
			writeError(c, err)
			return
		}
		if q == nil {
			c.JSON(http.StatusOK, gin.H{"quest": nil})
			return
		}
		c.JSON(http.StatusOK, gin.H{"quest": toQuest(q)})
	}
}

func getQuest(svc *engine.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		q, err := svc.GetQuest(c.Request.Context(), owner(c), c.Param("id"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, toQuest(q))
	}
}

type updateQuestRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Energy      *int    `json:"energy"`
	EpicID      *string `json:"epic_id"`
}

func updateQuest(svc *engine.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req updateQuestRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "invalid request body: "+err.Error())
			return
		}
		q, err := svc.UpdateQuest(c.Request.Context(), owner(c), c.Param("id"), engine.UpdateQuestInput{
			Title:       req.Title,
			Description: req.Description,
			Energy:      req.Energy,
			EpicID:      req.EpicID,
		})
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, toQuest(q))
	}
}

func deleteQuest(svc *engine.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.DeleteQuest(c.Request.Context(), owner(c), c.Param("id")); err != nil {
			writeError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

func restoreQuest(svc *engine.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		q, err := svc.RestoreQuest(c.Request.Context(), owner(c), c.Param("id"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, toQuest(q))
	}
}

func startQuest(svc *engine.Service) gin.HandlerFunc {
	return transition(svc.StartQuest)
}

func completeQuest(svc *engine.Service) gin.HandlerFunc {
	return transition(svc.CompleteQuest)
}

func abandonQuest(svc *engine.Service) gin.HandlerFunc {
	return transition(svc.AbandonQuest)
}

func parkQuest(svc *engine.Service) gin.HandlerFunc {
	return transition(svc.ParkQuest)
}

// transition adapts the four status-change methods, which share a signature.
func transition(fn func(ctx context.Context, owner, id string) (*storage.Quest, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		q, err := fn(c.Request.Context(), owner(c), c.Param("id"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, toQuest(q))
	}
}
