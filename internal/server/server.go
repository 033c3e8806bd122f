// Package server exposes the guidance engine as a JSON-over-HTTP API.
package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/getaltair/altair-sub003/internal/assist"
	"github.com/getaltair/altair-sub003/internal/engine"
)

// OwnerHeader names the request header carrying the owner scope. The local
// single-user deployment omits it and falls back to DefaultOwner.
const (
	OwnerHeader  = "X-Altair-Owner"
	DefaultOwner = "local"
)

type Server struct {
	router *gin.Engine
}

// New wires the routes. assistProvider may be nil; the assist endpoints then
// answer 503.
func New(svc *engine.Service, assistProvider assist.Provider, log *slog.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(log), ownerScope())

	SetupRoutes(router, svc, assistProvider)
	return &Server{router: router}
}

func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) Run(addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return srv.ListenAndServe()
}

// ownerScope resolves the caller's owner id once per request.
func ownerScope() gin.HandlerFunc {
	return func(c *gin.Context) {
		o := c.GetHeader(OwnerHeader)
		if o == "" {
			o = DefaultOwner
		}
		c.Set("owner", o)
		c.Next()
	}
}

func owner(c *gin.Context) string {
	return c.GetString("owner")
}

func requestLogger(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}
