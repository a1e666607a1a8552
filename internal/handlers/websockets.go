package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	writeWait        = 10 * time.Second
	pongWait         = 60 * time.Second
	pingPeriod       = (pongWait * 9) / 10
	maxMsgSize       = 1 << 12
	defaultInterval  = 1 * time.Second
	maxInterval      = 10 * time.Second
	maxIntervalMilli = 10_000
)

type wsEnvelope struct {
	Type  string      `json:"type"`
	Data  interface{} `json:"data,omitempty"`
	Error string      `json:"error,omitempty"`
}

// TODO: restrict origins once the front desk UI has a fixed host.
var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// @Summary      Live room status
// @Description  WebSocket stream of the room status every interval (?interval=2s or ?interval_ms=2000, at most 10s).
// @Tags         rooms
// @Param        room_id      query  int     true   "Room id"
// @Param        interval     query  string  false  "Push interval"
// @Param        interval_ms  query  int     false  "Push interval in milliseconds"
// @Failure      400  {object}  errorResponse
// @Router       /ws [get]
func (h *Handler) wsConnect(c *gin.Context) {
	roomID, err := strconv.Atoi(c.Query("room_id"))
	if err != nil || roomID <= 0 {
		h.logAndJSONError(c, http.StatusBadRequest, CodeInvalidInput, errRoomIDInvalid, "ws_bad_room_id", err, "room_id", c.Query("room_id"))
		return
	}
	interval := h.parseInterval(c)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		if h.log != nil {
			h.log.Errorw("ws_upgrade_failed", "err", err)
		}
		return
	}
	defer func() { _ = conn.Close() }()

	conn.SetReadLimit(maxMsgSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	done := make(chan struct{})
	go h.startReader(conn, done)

	ticker := time.NewTicker(interval)
	ping := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		ping.Stop()
	}()

	ctx := c.Request.Context()
	if err := h.sendStatus(ctx, conn, roomID); err != nil {
		if h.log != nil {
			h.log.Infow("ws_write_failed_initial", "err", err, "room_id", roomID)
		}
		return
	}

	for {
		select {
		case <-done:
			return
		case <-ctx.Done():
			return
		case <-ping.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				if h.log != nil {
					h.log.Infow("ws_ping_failed", "err", err)
				}
				return
			}
		case <-ticker.C:
			if err := h.sendStatus(ctx, conn, roomID); err != nil {
				if h.log != nil {
					h.log.Infow("ws_write_failed", "err", err, "room_id", roomID)
				}
				return
			}
		}
	}
}

// parseInterval reads ?interval=2s or ?interval_ms=2000 with bounds.
func (h *Handler) parseInterval(c *gin.Context) time.Duration {
	if s := c.Query("interval"); s != "" {
		if d, err := time.ParseDuration(s); err == nil && d > 0 && d <= maxInterval {
			return d
		}
	}
	if ms := c.Query("interval_ms"); ms != "" {
		if v, err := strconv.Atoi(ms); err == nil && v > 0 && v <= maxIntervalMilli {
			return time.Duration(v) * time.Millisecond
		}
	}
	return defaultInterval
}

// startReader drains incoming frames so control messages are handled and closure is noticed.
func (h *Handler) startReader(conn *websocket.Conn, done chan<- struct{}) {
	defer close(done)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if h.log != nil {
				h.log.Infow("ws_read_closed", "err", err)
			}
			return
		}
	}
}

// sendStatus writes the room status, or an error envelope when it cannot be read.
// The stream ends on write failures and on unknown rooms.
func (h *Handler) sendStatus(ctx context.Context, conn *websocket.Conn, roomID int) error {
	msg := wsEnvelope{Type: "status"}
	st, err := h.services.GetStatus(ctx, roomID)
	if err != nil {
		if h.log != nil {
			h.log.Infow("ws_get_status_failed", "err", err, "room_id", roomID)
		}
		msg = wsEnvelope{Type: "error", Error: err.Error()}
		if statusFor(err) >= http.StatusInternalServerError {
			msg.Error = errInternal
		}
	} else {
		msg.Data = st
	}
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	if werr := conn.WriteJSON(msg); werr != nil {
		return werr
	}
	if err != nil && statusFor(err) == http.StatusNotFound {
		return err
	}
	return nil
}
