package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/getaltair/altair-sub003/internal/engine"
)

type budgetResponse struct {
	Day         string  `json:"day"`
	Budget      int     `json:"budget"`
	Spent       int     `json:"spent"`
	Remaining   int     `json:"remaining"`
	OverBudget  bool    `json:"over_budget"`
	PercentUsed float64 `json:"percent_used"`
}

func toBudget(b *engine.DayBudget) budgetResponse {
	return budgetResponse{
		Day:         b.Day,
		Budget:      b.Budget,
		Spent:       b.Spent,
		Remaining:   b.Remaining,
		OverBudget:  b.OverBudget,
		PercentUsed: b.PercentUsed,
	}
}

func getBudget(svc *engine.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		date := c.DefaultQuery("date", svc.Today())
		b, err := svc.GetBudget(c.Request.Context(), owner(c), date)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, toBudget(b))
	}
}

type setBudgetRequest struct {
	Date   string `json:"date"`
	Budget int    `json:"budget"`
}

func setBudget(svc *engine.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req setBudgetRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "invalid request body: "+err.Error())
			return
		}
		if req.Date == "" {
			req.Date = svc.Today()
		}
		b, err := svc.SetBudget(c.Request.Context(), owner(c), req.Date, req.Budget)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, toBudget(b))
	}
}
