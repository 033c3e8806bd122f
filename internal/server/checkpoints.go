package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/getaltair/altair-sub003/internal/engine"
)

func listCheckpoints(svc *engine.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		cps, err := svc.ListCheckpoints(c.Request.Context(), owner(c), c.Param("id"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"checkpoints": toCheckpoints(cps)})
	}
}

type addCheckpointRequest struct {
	Title string `json:"title"`
	Order int    `json:"order"`
}

func addCheckpoint(svc *engine.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req addCheckpointRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "invalid request body: "+err.Error())
			return
		}
		cp, err := svc.AddCheckpoint(c.Request.Context(), owner(c), c.Param("id"), engine.AddCheckpointInput{
			Title:     req.Title,
			SortOrder: req.Order,
		})
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, toCheckpoint(cp))
	}
}

type updateCheckpointRequest struct {
	Title     *string `json:"title"`
	Completed *bool   `json:"completed"`
	Order     *int    `json:"order"`
}

func updateCheckpoint(svc *engine.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req updateCheckpointRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "invalid request body: "+err.Error())
			return
		}
		cp, err := svc.UpdateCheckpoint(c.Request.Context(), owner(c), c.Param("id"), engine.UpdateCheckpointInput{
			Title:     req.Title,
			Completed: req.Completed,
			SortOrder: req.Order,
		})
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, toCheckpoint(cp))
	}
}

func deleteCheckpoint(svc *engine.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.DeleteCheckpoint(c.Request.Context(), owner(c), c.Param("id")); err != nil {
			writeError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

type reorderRequest struct {
	OrderedIDs []string `json:"ordered_ids"`
}

func reorderCheckpoints(svc *engine.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req reorderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "invalid request body: "+err.Error())
			return
		}
		cps, err := svc.ReorderCheckpoints(c.Request.Context(), owner(c), c.Param("id"), req.OrderedIDs)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"checkpoints": toCheckpoints(cps)})
	}
}
