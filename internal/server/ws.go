package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
)

// wsMessage is pushed to websocket clients on connect and after every
// committed change.
type wsMessage struct {
	Type     string          `json:"type"`
	Op       string          `json:"op"`
	Snapshot json.RawMessage `json:"snapshot"`
}

// handleWS streams snapshots to the client until it disconnects. Client
// messages are ignored.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: s.originPatterns(),
	})
	if err != nil {
		s.log.Warn("websocket accept failed", "id", requestIDFrom(r.Context()), "error", err)
		return
	}
	defer func() { _ = conn.CloseNow() }()

	updates, unsubscribe := s.sess.Subscribe()
	defer unsubscribe()

	ctx := conn.CloseRead(r.Context())

	data, err := s.sess.Snapshot()
	if err != nil {
		_ = conn.Close(websocket.StatusInternalError, "snapshot unavailable")
		return
	}
	if err := s.send(ctx, conn, wsMessage{Type: "snapshot", Op: "init", Snapshot: data}); err != nil {
		return
	}

	for {
		select {
		case <-ctx.Done():
			return
		case u, ok := <-updates:
			if !ok {
				return
			}
			if err := s.send(ctx, conn, wsMessage{Type: "snapshot", Op: u.Op, Snapshot: u.Snapshot}); err != nil {
				return
			}
		}
	}
}

func (s *Server) send(ctx context.Context, conn *websocket.Conn, msg wsMessage) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := wsjson.Write(ctx, conn, msg); err != nil {
		if websocket.CloseStatus(err) == -1 && ctx.Err() == nil {
			s.log.Debug("websocket write failed", "error", err)
		}
		return err
	}
	return nil
}
