package routes

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"mentionmates/config"
	"mentionmates/handlers"
	"mentionmates/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// SetupRouter wires the REST API, the /ws relay endpoint and, when a static
// directory is configured, the front end.
func SetupRouter(cfg config.Config, h *handlers.Handler, ws http.Handler) *gin.Engine {
	router := gin.Default()

	// Without configured origins only same-origin requests work.
	if len(cfg.AllowedOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Requested-With"},
			ExposeHeaders:    []string{"Content-Length", "Content-Type", "X-Match-Generation"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	router.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	api := router.Group("/api")
	if cfg.RateLimitPerMinute > 0 {
		api.Use(middleware.RateLimit(middleware.NewIPRateLimiter(cfg.RateLimitPerMinute, time.Minute)))
	}

	api.GET("/health", h.Health)

	// Creators
	api.POST("/creators", h.CreateCreator)
	api.GET("/creators", h.ListCreators)
	api.GET("/creators/:id", h.GetCreator)
	api.PATCH("/creators/:id", h.UpdateCreator)
	api.GET("/creators/:id/matches", h.GetMatches)
	api.GET("/creators/:id/suggestions", h.GetSuggestions)

	// Collaborations
	api.POST("/collaborations", h.CreateCollaboration)
	api.GET("/collaborations/creator/:id", h.ListCollaborations)
	api.PATCH("/collaborations/:id/status", h.UpdateCollaborationStatus)

	// Messages
	api.POST("/messages", h.SendMessage)
	api.GET("/messages/:creator1/:creator2", h.GetMessages)
	api.POST("/messages/:id/read", h.MarkMessageRead)

	router.GET("/ws", gin.WrapH(ws))

	router.NoRoute(notFound(cfg.StaticDir))

	return router
}

// notFound answers unknown /api paths with JSON and everything else with the
// single page app, if one is configured.
func notFound(staticDir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		p := c.Request.URL.Path
		if p == "/api" || strings.HasPrefix(p, "/api/") || staticDir == "" || c.Request.Method != http.MethodGet {
			c.JSON(http.StatusNotFound, gin.H{
				"message": "Endpoint not found",
				"path":    p,
			})
			return
		}

		file := filepath.Join(staticDir, filepath.FromSlash(path.Clean("/"+p)))
		if info, err := os.Stat(file); err == nil && !info.IsDir() {
			c.File(file)
			return
		}
		c.File(filepath.Join(staticDir, "index.html"))
	}
}
