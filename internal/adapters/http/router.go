package http

import (
	"context"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/LearnerSumit/yt-video-watch-backend/internal/adapters/signal"
	"github.com/LearnerSumit/yt-video-watch-backend/internal/adapters/stream"
	"github.com/LearnerSumit/yt-video-watch-backend/internal/config"
	"github.com/LearnerSumit/yt-video-watch-backend/internal/domain"
)

// ClientTokenMiddleware guarantees every browser carries a stable client
// token. The websocket controller reuses it as the connection id, which is
// what makes rejoin-after-refresh idempotent.
func ClientTokenMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, _ := c.Cookie("ct")
		if token == "" {
			token = uuid.NewString()
			c.SetCookie("ct", token, 3600*24*7, "/", "", false, true)
		}
		c.Set("client_token", token)
		c.Next()
	}
}

func SetupRouter(ctx context.Context, cfg *config.Config, ctl *signal.Controller, streamer *stream.Handler) *gin.Engine {
	if cfg.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	if cfg.Mode == "debug" {
		r.Use(gin.Logger())
	}
	r.Use(gin.Recovery())

	store := cookie.NewStore([]byte(cfg.Secret))
	r.Use(sessions.Sessions("WatchSessions", store))
	r.Use(ClientTokenMiddleware())

	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Watch Party Server is running!")
	})

	api := r.Group("/api")

	// Rooms are minted here but only materialize in the coordinator on the
	// first join.
	api.POST("/rooms", func(c *gin.Context) {
		roomID := domain.NewRoomID()
		log.Info().Str("module", "adapters.http").Str("room", string(roomID)).Msg("room id minted")
		c.JSON(http.StatusCreated, gin.H{"roomId": roomID})
	})

	api.GET("/stream/drive/:fileId", streamer.Stream)

	api.GET("/ws", func(c *gin.Context) {
		log.Info().Str("module", "adapters.http").Str("conn", c.GetString("client_token")).Msg("ws endpoint hit")
		ctl.HandleWS(ctx, c)
	})

	return r
}
