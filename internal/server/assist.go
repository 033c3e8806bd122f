package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/getaltair/altair-sub003/internal/assist"
)

const maxBreakdownSteps = 7

type breakdownRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	MaxSteps    int    `json:"max_steps"`
}

func assistBreakdown(provider assist.Provider) gin.HandlerFunc {
	return func(c *gin.Context) {
		if provider == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"error": gin.H{"kind": "unavailable", "message": "assist is not configured"},
			})
			return
		}

		var req breakdownRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "invalid request body: "+err.Error())
			return
		}
		if req.Title == "" {
			badRequest(c, "title is required")
			return
		}
		if req.MaxSteps <= 0 || req.MaxSteps > maxBreakdownSteps {
			req.MaxSteps = maxBreakdownSteps
		}

		steps, err := provider.BreakdownQuest(c.Request.Context(), req.Title, req.Description, req.MaxSteps)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"steps": steps})
	}
}
