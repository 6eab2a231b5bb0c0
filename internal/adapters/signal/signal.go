package signal

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/LearnerSumit/yt-video-watch-backend/internal/app"
	"github.com/LearnerSumit/yt-video-watch-backend/internal/config"
	"github.com/LearnerSumit/yt-video-watch-backend/internal/core"
	"github.com/LearnerSumit/yt-video-watch-backend/internal/domain"
)

var ErrBackpressure = errors.New("backpressure")

// Controller owns the websocket endpoint: it upgrades connections, assigns
// connection ids, pumps frames, and dispatches decoded events into the
// coordinator.
type Controller struct {
	Coord *app.Coordinator
	cfg   *config.Config
}

func NewController(coord *app.Coordinator, cfg *config.Config) *Controller {
	return &Controller{Coord: coord, cfg: cfg}
}

// wsConn wraps one websocket with a buffered outbound queue. TrySend never
// blocks; a full queue surfaces as ErrBackpressure and the frame is dropped
// for this recipient only.
type wsConn struct {
	conn    *websocket.Conn
	send    chan core.Frame
	limiter *rate.Limiter

	mu     sync.RWMutex
	closed bool
}

func (c *wsConn) TrySend(f core.Frame) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return errors.New("connection closed")
	}
	select {
	case c.send <- f:
	default:
		return ErrBackpressure
	}
	return nil
}

func (c *wsConn) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	close(c.send)
	_ = c.conn.Close()
	c.mu.Unlock()
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// HandleWS upgrades the request and starts the connection's pumps.
//
// The connection id is the stable client token from the session cookie when
// present, so a refresh rejoins with the same id and the store replaces the
// record in place instead of duplicating it.
func (ctl *Controller) HandleWS(ctx context.Context, c *gin.Context) {
	id := domain.ConnID(c.GetString("client_token"))
	if id == "" {
		id = domain.ConnID(uuid.NewString())
	}
	log.Info().Str("module", "signal").Str("conn", string(id)).Msg("new WS connection")

	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error().Err(err).Msg("ws upgrade")
		return
	}
	ws.SetReadLimit(ctl.cfg.ReadLimit)

	conn := &wsConn{
		conn:    ws,
		send:    make(chan core.Frame, 32),
		limiter: rate.NewLimiter(rate.Limit(ctl.cfg.EventsPerSec), ctl.cfg.EventsBurst),
	}

	ctx, cancel := context.WithCancel(ctx)
	go ctl.writePump(ctx, conn)
	go ctl.readPump(ctx, cancel, id, conn)
}
