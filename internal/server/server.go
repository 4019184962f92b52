// Package server exposes the query service over HTTP.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"legal-rag/internal/config"
	"legal-rag/internal/errs"
	"legal-rag/internal/models"
)

// Answerer is the server-facing subset of the query service.
type Answerer interface {
	Answer(ctx context.Context, question string) (*models.Answer, error)
}

// NewRouter wires the chat endpoint, health check, CORS, and optional
// bearer auth. Auth is enabled when a JWT secret is configured.
func NewRouter(svc Answerer, cfg *config.ServerConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger())

	corsCfg := cors.DefaultConfig()
	if len(cfg.CORSOrigins) > 0 {
		corsCfg.AllowOrigins = cfg.CORSOrigins
	} else {
		corsCfg.AllowAllOrigins = true
	}
	corsCfg.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	r.Use(cors.New(corsCfg))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	if cfg.JWTSecret != "" {
		api.Use(RequireAuth(cfg.JWTSecret))
	}
	api.POST("/chat", handleChat(svc))
	return r
}

type chatRequest struct {
	Message string `json:"message"`
}

func handleChat(svc Answerer) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req chatRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Message is required and must be a string"})
			return
		}

		answer, err := svc.Answer(c.Request.Context(), req.Message)
		if err != nil {
			if errors.Is(err, errs.ErrValidation) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Message is required and must be a string"})
				return
			}
			log.Error().Err(err).Msg("chat request failed")
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":   "Failed to process chat request",
				"details": err.Error(),
			})
			return
		}
		c.JSON(http.StatusOK, answer)
	}
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Msg("request")
	}
}
