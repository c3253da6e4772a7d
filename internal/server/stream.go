package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"slices"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	terrors "github.com/matzehuels/touchstone/pkg/errors"
	"github.com/matzehuels/touchstone/pkg/view"
)

const (
	streamReadLimit = 1 << 16
	streamIdle      = 2 * time.Minute
	streamWriteWait = 10 * time.Second
)

// streamMessage is written back for every event read from the socket.
// Exactly one of Snapshot and Error is set.
type streamMessage struct {
	Snapshot *view.Snapshot `json:"snapshot,omitempty"`
	Error    *errorResponse `json:"error,omitempty"`
}

// upgrader builds a websocket upgrader that admits the configured CORS
// origins. Requests without an Origin header are not from a browser and are
// always admitted.
func (s *Server) upgrader() websocket.Upgrader {
	origins := s.opts.CORSOrigins
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 4096,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			if origin == "" || len(origins) == 0 {
				return true
			}
			return slices.Contains(origins, "*") || slices.Contains(origins, origin)
		},
	}
}

// streamView upgrades to a websocket and applies each JSON event it reads
// to the view, answering with the new snapshot. Pointer hover traffic is far
// too chatty for one POST per event; this keeps a single connection open.
func (s *Server) streamView(w http.ResponseWriter, r *http.Request) {
	v, err := s.views.Get(chi.URLParam(r, "viewID"))
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	up := s.upgrader()
	conn, err := up.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the HTTP error.
		s.logger.Warn("websocket upgrade failed", "view", v.ID, "err", err)
		return
	}
	defer conn.Close()

	conn.SetReadLimit(streamReadLimit)
	s.logger.Debug("stream opened", "view", v.ID, "remote", r.RemoteAddr)

	for {
		_ = conn.SetReadDeadline(time.Now().Add(streamIdle))
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.logger.Debug("stream closed", "view", v.ID, "err", err)
			}
			return
		}

		var msg streamMessage
		var req EventRequest
		if err := json.Unmarshal(data, &req); err != nil {
			msg.Error = streamError(terrors.Wrap(terrors.ErrCodeInvalidInput, err, "decode event"))
			if err := s.writeStream(conn, msg); err != nil {
				return
			}
			continue
		}
		if _, err := s.views.Get(v.ID); err != nil {
			// The view expired or the graph was reloaded.
			msg.Error = streamError(err)
			_ = s.writeStream(conn, msg)
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "view closed"),
				time.Now().Add(time.Second))
			return
		}

		snap, err := handleEvent(r.Context(), v, req)
		if err != nil {
			msg.Error = streamError(err)
		} else {
			msg.Snapshot = &snap
		}
		if err := s.writeStream(conn, msg); err != nil {
			s.logger.Debug("stream write failed", "view", v.ID, "err", err)
			return
		}
	}
}

func (s *Server) writeStream(conn *websocket.Conn, msg streamMessage) error {
	_ = conn.SetWriteDeadline(time.Now().Add(streamWriteWait))
	return conn.WriteJSON(msg)
}

func streamError(err error) *errorResponse {
	var e *terrors.Error
	if !errors.As(err, &e) {
		err = terrors.Wrap(terrors.ErrCodeInternal, err, "apply event")
	}
	return &errorResponse{Error: terrors.UserMessage(err), Code: string(terrors.GetCode(err))}
}
