package http

import (
	"context"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/linkmeet/linkmeet/internal/adapters/signal"
	"github.com/linkmeet/linkmeet/internal/app"
	"github.com/linkmeet/linkmeet/internal/auth"
	"github.com/linkmeet/linkmeet/internal/config"
	"github.com/linkmeet/linkmeet/internal/store"
)

type Deps struct {
	Accounts *app.Accounts
	Rooms    *app.Rooms
	Messages *app.Messages
	Router   *app.Router
	Tokens   *auth.TokenManager
	Store    *store.Store
}

func SetupRouter(ctx context.Context, cfg *config.Config, deps Deps) *gin.Engine {
	if cfg.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	if cfg.Mode == "debug" {
		r.Use(gin.Logger())
	}
	r.Use(gin.Recovery())

	sessionStore := cookie.NewStore([]byte(cfg.SessionSecret))
	r.Use(sessions.Sessions("LinkmeetSessions", sessionStore))
	r.Use(ClientTokenMiddleware())

	log.Info().Str("module", "adapters.http").Msg("router setup")

	accounts := &accountHandlers{accounts: deps.Accounts}
	rooms := &roomHandlers{rooms: deps.Rooms}
	messages := &messageHandlers{messages: deps.Messages}
	ws := signal.NewController(deps.Router, cfg.ReadLimit, cfg.PingPeriod)
	protect := Protect(deps.Tokens)

	api := r.Group("/api")

	api.POST("/auth/register", accounts.register)
	api.POST("/auth/login", accounts.login)
	api.POST("/auth/logout", protect, accounts.logout)
	api.GET("/users/me", protect, accounts.profile)
	api.PUT("/users/me", protect, accounts.updateProfile)
	api.GET("/users", protect, accounts.listUsers)
	api.GET("/users/:id", protect, accounts.getUser)
	api.PUT("/users/:id/status", protect, accounts.updateStatus)

	api.GET("/rooms", protect, rooms.list)
	api.POST("/rooms", protect, rooms.create)
	api.GET("/rooms/:id", protect, rooms.get)
	api.PUT("/rooms/:id", protect, rooms.update)
	api.DELETE("/rooms/:id", protect, rooms.delete)
	api.POST("/rooms/:id/join", protect, rooms.join)
	api.POST("/rooms/:id/leave", protect, rooms.leave)
	api.GET("/rooms/:id/members", protect, rooms.members)
	api.PUT("/rooms/:id/members/:userId", protect, rooms.updateMemberRole)
	api.DELETE("/rooms/:id/members/:userId", protect, rooms.removeMember)

	api.GET("/rooms/:id/messages", protect, messages.list)
	api.POST("/rooms/:id/messages", protect, messages.send)
	api.DELETE("/messages/:id", protect, messages.delete)

	r.GET("/health", healthHandler(cfg.Mode, deps.Store))

	api.GET("/webrtc/config", iceConfigHandler(cfg.StunURLs))

	api.GET("/ws/signal", func(c *gin.Context) {
		ws.HandleSignal(ctx, c)
	})

	return r
}
