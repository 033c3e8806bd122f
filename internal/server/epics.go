package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/getaltair/altair-sub003/internal/engine"
)

type epicRequest struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	InitiativeID string `json:"initiative_id"`
}

func (r epicRequest) input() engine.EpicInput {
	return engine.EpicInput{
		Title:        r.Title,
		Description:  r.Description,
		InitiativeID: r.InitiativeID,
	}
}

func createEpic(svc *engine.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req epicRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "invalid request body: "+err.Error())
			return
		}
		e, err := svc.CreateEpic(c.Request.Context(), owner(c), req.input())
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, toEpic(e))
	}
}

func listEpics(svc *engine.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		es, err := svc.ListEpics(c.Request.Context(), owner(c))
		if err != nil {
			writeError(c, err)
			return
		}
		out := make([]epicResponse, 0, len(es))
		for i := range es {
			out = append(out, toEpic(&es[i]))
		}
		c.JSON(http.StatusOK, gin.H{"epics": out})
	}
}

func getEpic(svc *engine.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		e, err := svc.GetEpic(c.Request.Context(), owner(c), c.Param("id"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, toEpic(e))
	}
}

func updateEpic(svc *engine.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req epicRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "invalid request body: "+err.Error())
			return
		}
		e, err := svc.UpdateEpic(c.Request.Context(), owner(c), c.Param("id"), req.input())
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, toEpic(e))
	}
}

func deleteEpic(svc *engine.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.DeleteEpic(c.Request.Context(), owner(c), c.Param("id")); err != nil {
			writeError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

func completeEpic(svc *engine.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		e, err := svc.CompleteEpic(c.Request.Context(), owner(c), c.Param("id"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, toEpic(e))
	}
}

func archiveEpic(svc *engine.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		e, err := svc.ArchiveEpic(c.Request.Context(), owner(c), c.Param("id"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, toEpic(e))
	}
}
