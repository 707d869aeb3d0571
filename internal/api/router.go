package api

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/your-org/vibecheck/internal/api/handlers"
	"github.com/your-org/vibecheck/internal/api/ws"
	"github.com/your-org/vibecheck/internal/auth"
	"github.com/your-org/vibecheck/internal/config"
	"github.com/your-org/vibecheck/internal/history"
	"github.com/your-org/vibecheck/internal/queue"
	"github.com/your-org/vibecheck/internal/social"
	"github.com/your-org/vibecheck/internal/storage"
)

type RouterConfig struct {
	APIKey      string
	DB          *storage.PostgresStore
	MinIO       *storage.MinIOStore
	Producer    *queue.Producer
	Hub         *ws.Hub
	SocialGraph *social.Graph
	History     *history.Service
	HistoryCfg  config.HistoryConfig
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(LoggingMiddleware())
	r.Use(cors.Default())

	// System endpoints (no auth)
	systemH := handlers.NewSystemHandler(cfg.DB, cfg.MinIO, cfg.Producer)
	r.GET("/healthz", systemH.Healthz)
	r.GET("/readyz", systemH.Readyz)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API v1 (with auth)
	v1 := r.Group("/v1")
	v1.Use(auth.APIKeyMiddleware(cfg.APIKey))

	// WebSocket
	v1.GET("/ws", cfg.Hub.HandleWS)

	// Users
	userH := handlers.NewUserHandler(cfg.DB)
	v1.POST("/users", userH.Create)
	v1.GET("/users/:id", userH.Get)
	v1.PUT("/users/:id/opt-in", userH.SetOptIn)

	// Media upload and retrieval
	mediaH := handlers.NewMediaHandler(cfg.DB, cfg.MinIO, cfg.Producer)
	v1.POST("/media", mediaH.Create)
	v1.POST("/media/:id/complete", mediaH.Complete)
	v1.GET("/media/:id", mediaH.Get)
	v1.GET("/media/:id/download", mediaH.Download)
	v1.GET("/users/:id/media", mediaH.ListForUser)

	// Perception results
	perceptionH := handlers.NewPerceptionHandler(cfg.DB)
	v1.GET("/media/:id/profile", perceptionH.Profile)
	v1.GET("/media/:id/vibe", perceptionH.Vibe)
	v1.GET("/media/:id/similar", perceptionH.Similar)

	// Social ranking and history
	socialH := handlers.NewSocialHandler(cfg.SocialGraph)
	v1.GET("/users/:id/social-graph", socialH.Graph)

	historyH := handlers.NewHistoryHandler(cfg.History)
	v1.GET("/users/:id/history", historyH.Summary)

	// Public surfaces
	publicH := handlers.NewPublicHandler(cfg.DB, cfg.HistoryCfg)
	v1.GET("/feed", publicH.Feed)
	v1.GET("/leaderboard", publicH.Leaderboard)

	return r
}
