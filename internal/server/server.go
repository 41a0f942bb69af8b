// Package server exposes the learning map over HTTP for the web
// frontend.
package server

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Server wraps the gin engine.
type Server struct {
	Engine *gin.Engine
}

// New builds the router around the handler.
func New(h *Handler, origins []string, log *zap.SugaredLogger) *Server {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestLogger(log))
	r.Use(corsMiddleware(origins))

	r.GET("/healthcheck", h.Healthcheck)

	api := r.Group("/api")
	{
		api.GET("/mindmap", h.Mindmap)
		api.GET("/dashboard", h.Dashboard)
		api.GET("/topics", h.ListTopics)
		api.POST("/topics/:id/complete", h.CompleteTopic)
		api.DELETE("/topics/:id/complete", h.UncompleteTopic)
		api.POST("/topics/:id/review", h.ReviewTopic)
		api.POST("/explain", h.Explain)
	}

	return &Server{Engine: r}
}

// Run starts the HTTP listener on addr and blocks.
func (s *Server) Run(addr string) error {
	return s.Engine.Run(addr)
}
