// Package api exposes the chat engine and session store over HTTP.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/therohitnagar15/Wellbeing-Chatbot/internal/api/middleware"
	"github.com/therohitnagar15/Wellbeing-Chatbot/internal/chat"
	"github.com/therohitnagar15/Wellbeing-Chatbot/internal/language"
	"github.com/therohitnagar15/Wellbeing-Chatbot/internal/metrics"
	"github.com/therohitnagar15/Wellbeing-Chatbot/internal/store"
	"github.com/therohitnagar15/Wellbeing-Chatbot/internal/ws"
)

// Pinger is implemented by stores that can check their backend.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Deps are the collaborators the HTTP surface needs.
type Deps struct {
	Engine    *chat.Engine
	Store     store.SessionStore
	Languages *language.Manager
	Metrics   *metrics.Metrics
	Logger    *zap.Logger
	// Limiter applies per-IP limits to /api routes; nil disables them.
	Limiter        *middleware.RateLimiter
	AllowedOrigins []string
	// WSMessagesPerMin bounds each websocket connection.
	WSMessagesPerMin int
}

// NewRouter wires every route onto a new gin engine.
func NewRouter(d Deps) *gin.Engine {
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	if d.Languages == nil {
		d.Languages = language.NewManager()
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(d.Logger))
	router.Use(middleware.CORS(d.AllowedOrigins...))
	router.Use(middleware.SecurityHeaders())

	router.GET("/health", healthHandler(d.Store))
	if d.Metrics != nil {
		router.GET("/metrics", gin.WrapH(d.Metrics.Handler()))
	}

	users := NewUserHandler(d.Store, d.Languages, d.Logger)
	chatHandler := NewChatHandler(d.Engine, d.Store, d.Logger)

	apiGroup := router.Group("/api")
	if d.Limiter != nil {
		apiGroup.Use(middleware.PerIP(d.Limiter))
	}
	{
		apiGroup.POST("/chat", chatHandler.Chat)
		apiGroup.GET("/history/:username", chatHandler.History)
		apiGroup.POST("/mood", users.LogMood)
		apiGroup.POST("/users", users.Register)
		apiGroup.GET("/users/:username", users.Get)
		apiGroup.GET("/languages", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"languages": d.Languages.GetSupportedLanguages()})
		})
	}

	wsHandler := ws.NewChatHandler(d.Engine, originChecker(d.AllowedOrigins), d.WSMessagesPerMin, d.Logger)
	router.GET("/ws/chat", wsHandler.HandleChat)

	return router
}

func healthHandler(st store.SessionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		status, code := "healthy", http.StatusOK
		if p, ok := st.(Pinger); ok {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := p.Ping(ctx); err != nil {
				status, code = "degraded", http.StatusServiceUnavailable
			}
		}
		c.JSON(code, gin.H{
			"status": status,
			"time":   time.Now().Unix(),
		})
	}
}

func originChecker(allowed []string) func(*http.Request) bool {
	if len(allowed) == 0 {
		return nil
	}
	set := make(map[string]bool, len(allowed))
	for _, o := range allowed {
		set[o] = true
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		return origin == "" || set[origin]
	}
}
