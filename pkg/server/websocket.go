package server

import (
	"context"
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/vango-dev/refstore/internal/errors"
	"github.com/vango-dev/refstore/pkg/vango"
)

// HandleWebSocket upgrades the connection, mounts a new session and runs its
// event loop until the client disconnects or the session closes.
func (s *Server) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	if max := s.config.MaxSessions; max > 0 && s.sessions.Count() >= max {
		err := errors.New("E114")
		s.logger.Warn("rejecting websocket", "error", err)
		http.Error(w, err.Message, http.StatusServiceUnavailable)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("websocket upgrade failed",
			"error", errors.New("E131").WithDetail(err.Error()),
			"request_id", chimw.GetReqID(r.Context()))
		return
	}
	defer conn.Close()

	sess, err := s.sessions.Create(s.root)
	if err != nil {
		s.logger.Error("session create failed", "error", err)
		_ = conn.WriteJSON(ServerMessage{Error: err.Error()})
		return
	}
	defer s.sessions.Close(sess.ID)
	defer vango.ReleaseGoroutine()

	html, err := sess.HTML()
	if err != nil {
		sess.Logger().Error("initial render failed", "error", err)
		return
	}
	if err := s.write(conn, ServerMessage{HTML: html}); err != nil {
		sess.Logger().Error("initial write failed", "error", err)
		return
	}

	s.readLoop(r.Context(), conn, sess)
}

func (s *Server) readLoop(ctx context.Context, conn *websocket.Conn, sess *Session) {
	cfg := s.config.SessionConfig
	conn.SetReadLimit(cfg.MaxMessageSize)

	for {
		_ = conn.SetReadDeadline(time.Now().Add(cfg.ReadTimeout))

		var msg ClientMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure,
				websocket.CloseNormalClosure) {
				sess.Logger().Error("read error", "error", err)
			}
			return
		}

		if msg.HID == "" || msg.Type == "" {
			err := errors.New("E130").WithDetail("hid and type are required")
			sess.Logger().Warn("invalid event", "error", err)
			if werr := s.write(conn, ServerMessage{Error: err.Error()}); werr != nil {
				return
			}
			continue
		}

		reply, err := sess.HandleEvent(ctx, &vango.Event{
			HID:   msg.HID,
			Type:  msg.Type,
			Value: msg.Value,
		})
		if err != nil {
			sess.Logger().Warn("event failed", "hid", msg.HID, "type", msg.Type, "error", err)
		}
		if werr := s.write(conn, *reply); werr != nil {
			sess.Logger().Error("write error", "error", werr)
			return
		}

		if errors.Code(err) == "E112" {
			return
		}
	}
}

func (s *Server) write(conn *websocket.Conn, msg ServerMessage) error {
	_ = conn.SetWriteDeadline(time.Now().Add(s.config.SessionConfig.WriteTimeout))
	return conn.WriteJSON(msg)
}
