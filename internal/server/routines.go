package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/getaltair/altair-sub003/internal/engine"
)

type createRoutineRequest struct {
	Name         string `json:"name"`
	Description  string `json:"description"`
	Schedule     string `json:"schedule"`
	TimeOfDay    string `json:"time_of_day"`
	Energy       int    `json:"energy"`
	InitiativeID string `json:"initiative_id"`
}

func createRoutine(svc *engine.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req createRoutineRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "invalid request body: "+err.Error())
			return
		}
		rt, err := svc.CreateRoutine(c.Request.Context(), owner(c), engine.CreateRoutineInput{
			Name:         req.Name,
			Description:  req.Description,
			Schedule:     req.Schedule,
			TimeOfDay:    req.TimeOfDay,
			Energy:       req.Energy,
			InitiativeID: req.InitiativeID,
		})
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, toRoutine(rt))
	}
}

func listRoutines(svc *engine.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		rts, err := svc.ListRoutines(c.Request.Context(), owner(c))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"routines": toRoutines(rts)})
	}
}

func dueRoutines(svc *engine.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		before := time.Now().UTC()
		if v := c.Query("before"); v != "" {
			t, err := time.Parse(time.RFC3339, v)
			if err != nil {
				badRequest(c, "before must be RFC 3339")
				return
			}
			before = t
		}
		rts, err := svc.DueRoutines(c.Request.Context(), before)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"routines": toRoutines(rts)})
	}
}

func getRoutine(svc *engine.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		rt, err := svc.GetRoutine(c.Request.Context(), owner(c), c.Param("id"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, toRoutine(rt))
	}
}

func deleteRoutine(svc *engine.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.DeleteRoutine(c.Request.Context(), owner(c), c.Param("id")); err != nil {
			writeError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

type setActiveRequest struct {
	Active bool `json:"active"`
}

func setRoutineActive(svc *engine.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req setActiveRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "invalid request body: "+err.Error())
			return
		}
		rt, err := svc.SetRoutineActive(c.Request.Context(), owner(c), c.Param("id"), req.Active)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, toRoutine(rt))
	}
}

// spawnRoutine creates the quest for the routine's current occurrence. The
// scheduler does this automatically; the endpoint exists for manual runs.
func spawnRoutine(svc *engine.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, err := svc.GetRoutine(c.Request.Context(), owner(c), c.Param("id")); err != nil {
			writeError(c, err)
			return
		}
		q, err := svc.SpawnQuest(c.Request.Context(), c.Param("id"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, toQuest(q))
	}
}
