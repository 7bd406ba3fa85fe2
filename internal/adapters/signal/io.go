package signal

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/linkmeet/linkmeet/internal/core"
)

func (ctl *Controller) writePump(ctx context.Context, c *WsConn) {
	ticker := time.NewTicker(ctl.PingPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := c.conn.SetWriteDeadline(time.Now().Add(5 * time.Second)); err != nil {
				return
			}
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				log.Info().Err(err).Str("module", "signal").Msg("writePump keepalive failed")
				return
			}
		case data, ok := <-c.send:
			if !ok {
				log.Warn().Str("module", "signal").Msg("writePump channel closed")
				return
			}
			if err := c.conn.SetWriteDeadline(time.Now().Add(5 * time.Second)); err != nil {
				log.Error().Err(err).Str("module", "signal").Msg("writePump set deadline")
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				log.Error().Err(err).Str("module", "signal").Msg("writePump write error")
				return
			}
		}
	}
}

// readPump owns the connection lifecycle: when the read loop ends for
// any reason, presence cleanup runs before the connection is discarded.
func (ctl *Controller) readPump(ctx context.Context, cancel context.CancelFunc, cid core.ConnID, c *WsConn) {
	defer func() {
		log.Info().Str("module", "signal").Str("conn", string(cid)).Msg("readPump closing")
		ctl.Router.Disconnect(cid)
		cancel()
		c.Close()
	}()

	for {
		select {
		case <-ctx.Done():
			return
		default:
			_, data, err := c.conn.ReadMessage()
			if err != nil {
				log.Info().Err(err).Str("module", "signal").Str("conn", string(cid)).Msg("readPump read end")
				return
			}
			ctl.handleEvent(ctx, cid, c, data)
		}
	}
}

func (ctl *Controller) handleEvent(ctx context.Context, cid core.ConnID, c *WsConn, data []byte) {
	var env struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &env); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad json")
		ctl.Router.NotifyError(cid, "bad_payload")
		return
	}

	switch env.Type {
	case "register-presence":
		ctl.handleRegisterPresence(cid, data)
	case "join-room":
		ctl.handleJoin(ctx, cid, data)
	case "leave-room":
		ctl.handleLeave(cid, data)
	case "chat-message":
		ctl.handleChat(cid, data)
	case "typing":
		ctl.handleTyping(cid, data)
	case "stop-typing":
		ctl.handleStopTyping(cid, data)
	case "offer", "answer", "ice-candidate":
		ctl.handleForward(cid, env.Type, data)
	case "ready":
		ctl.handleReady(cid, data)
	case "ping":
		ctl.handlePing(c)
	default:
		log.Warn().Str("module", "signal").Str("type", env.Type).Msg("unknown event")
		ctl.Router.NotifyError(cid, "unknown_event")
	}
}
