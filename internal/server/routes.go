package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/getaltair/altair-sub003/internal/assist"
	"github.com/getaltair/altair-sub003/internal/engine"
)

func SetupRoutes(router *gin.Engine, svc *engine.Service, assistProvider assist.Provider) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/v1")
	{
		quests := v1.Group("/quests")
		{
			quests.POST("", createQuest(svc))
			quests.GET("", listQuests(svc))
			quests.GET("/active", activeQuest(svc))
			quests.GET("/:id", getQuest(svc))
			quests.PATCH("/:id", updateQuest(svc))
			quests.DELETE("/:id", deleteQuest(svc))
			quests.POST("/:id/restore", restoreQuest(svc))
			quests.POST("/:id/start", startQuest(svc))
			quests.POST("/:id/complete", completeQuest(svc))
			quests.POST("/:id/abandon", abandonQuest(svc))
			quests.POST("/:id/park", parkQuest(svc))

			quests.GET("/:id/checkpoints", listCheckpoints(svc))
			quests.POST("/:id/checkpoints", addCheckpoint(svc))
			quests.PUT("/:id/checkpoints/order", reorderCheckpoints(svc))
		}

		checkpoints := v1.Group("/checkpoints")
		{
			checkpoints.PATCH("/:id", updateCheckpoint(svc))
			checkpoints.DELETE("/:id", deleteCheckpoint(svc))
		}

		epics := v1.Group("/epics")
		{
			epics.POST("", createEpic(svc))
			epics.GET("", listEpics(svc))
			epics.GET("/:id", getEpic(svc))
			epics.PUT("/:id", updateEpic(svc))
			epics.DELETE("/:id", deleteEpic(svc))
			epics.POST("/:id/complete", completeEpic(svc))
			epics.POST("/:id/archive", archiveEpic(svc))
		}

		energy := v1.Group("/energy")
		{
			energy.GET("", getBudget(svc))
			energy.PUT("", setBudget(svc))
		}

		routines := v1.Group("/routines")
		{
			routines.POST("", createRoutine(svc))
			routines.GET("", listRoutines(svc))
			routines.GET("/due", dueRoutines(svc))
			routines.GET("/:id", getRoutine(svc))
			routines.DELETE("/:id", deleteRoutine(svc))
			routines.POST("/:id/active", setRoutineActive(svc))
			routines.POST("/:id/spawn", spawnRoutine(svc))
		}

		inbox := v1.Group("/inbox")
		{
			inbox.POST("", captureInbox(svc))
			inbox.GET("", listInbox(svc))
			inbox.POST("/:id/triage", triageInbox(svc, assistProvider))
		}

		v1.GET("/today", todayView(svc))
		v1.POST("/assist/breakdown", assistBreakdown(assistProvider))
	}
}
