package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/getaltair/altair-sub003/internal/engine"
)

// errorBody is the cross-cutting failure shape: a kind the client can branch
// on plus a human message. WipLimitExceeded additionally carries the counts
// so clients can offer the "finish or park first" flow.
type errorBody struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
	Current *int   `json:"current,omitempty"`
	Limit   *int   `json:"limit,omitempty"`
}

func writeError(c *gin.Context, err error) {
	var (
		notFound   engine.NotFoundError
		validation engine.ValidationError
		wip        engine.WipLimitError
		storage    engine.StorageError
	)
	switch {
	case errors.As(err, &notFound):
		c.JSON(http.StatusNotFound, gin.H{"error": errorBody{Kind: "NotFound", Message: notFound.Error()}})
	case errors.As(err, &validation):
		c.JSON(http.StatusBadRequest, gin.H{"error": errorBody{Kind: "ValidationError", Message: validation.Error()}})
	case errors.As(err, &wip):
		c.JSON(http.StatusConflict, gin.H{"error": errorBody{
			Kind:    "WipLimitExceeded",
			Message: wip.Error(),
			Current: &wip.Current,
			Limit:   &wip.Limit,
		}})
	case errors.As(err, &storage):
		c.JSON(http.StatusInternalServerError, gin.H{"error": errorBody{Kind: "StorageError", Message: storage.Error()}})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": errorBody{Kind: "Internal", Message: err.Error()}})
	}
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": errorBody{Kind: "ValidationError", Message: msg}})
}
