package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/getaltair/altair-sub003/internal/engine"
)

type todayResponse struct {
	Day             string          `json:"day"`
	Budget          budgetResponse  `json:"budget"`
	Active          *questResponse  `json:"active"`
	Backlog         []questResponse `json:"backlog"`
	DueFromRoutines []questResponse `json:"due_from_routines"`
	CompletedToday  []questResponse `json:"completed_today"`
}

func todayView(svc *engine.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		date := c.DefaultQuery("date", svc.Today())
		view, err := svc.TodayView(c.Request.Context(), owner(c), date)
		if err != nil {
			writeError(c, err)
			return
		}

		resp := todayResponse{
			Day:             view.Day,
			Budget:          toBudget(view.Budget),
			Backlog:         toQuests(view.Backlog),
			DueFromRoutines: toQuests(view.DueFromRoutines),
			CompletedToday:  toQuests(view.CompletedToday),
		}
		if view.Active != nil {
			q := toQuest(view.Active)
			resp.Active = &q
		}
		c.JSON(http.StatusOK, resp)
	}
}
