// Package ws streams compiled scene graphs to browser-based viewers over
// websockets. The server pushes every scene once on connect; the viewer only
// sends keepalive pings back.
package ws

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"roboscene/internal/scene"
)

// Server serves compiled scenes to viewer clients.
type Server struct {
	log      *zap.Logger
	upgrader websocket.Upgrader
	scenes   []SceneMessage

	clientsMu sync.Mutex
	clients   map[*SafeWriter]bool
}

// NewServer builds a server for the given scene graphs. The graphs are
// flattened to wire form once; they are immutable after compilation.
func NewServer(log *zap.Logger, graphs ...*scene.SceneGraph) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Server{
		log: log,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		clients: make(map[*SafeWriter]bool),
	}
	for _, g := range graphs {
		s.scenes = append(s.scenes, NewSceneMessage(g))
	}
	return s
}

// Handler returns the websocket endpoint handler.
func (s *Server) Handler() http.Handler {
	return http.HandlerFunc(s.handle)
}

func (s *Server) handle(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	client := NewSafeWriter(conn)
	s.register(client)
	defer func() {
		s.unregister(client)
		client.Close()
	}()

	for _, msg := range s.scenes {
		if err := client.WriteJSON(msg); err != nil {
			s.log.Warn("sending scene failed", zap.Error(err))
			return
		}
	}

	for {
		_, data, err := client.ReadMessage()
		if err != nil {
			return
		}
		s.dispatch(client, data)
	}
}

// dispatch handles one inbound viewer message.
func (s *Server) dispatch(client *SafeWriter, data []byte) {
	var base struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &base); err != nil {
		s.log.Debug("discarding malformed message", zap.Error(err))
		return
	}
	switch base.Type {
	case MessageTypePing:
		if err := client.WriteJSON(PongMessage{Type: MessageTypePong}); err != nil {
			s.log.Debug("pong failed", zap.Error(err))
		}
	default:
		if err := client.WriteJSON(ErrorMessage{
			Type:    MessageTypeError,
			Message: "unknown message type: " + base.Type,
		}); err != nil {
			s.log.Debug("error reply failed", zap.Error(err))
		}
	}
}

func (s *Server) register(client *SafeWriter) {
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()
	s.clients[client] = true
	s.log.Info("viewer connected", zap.Int("clients", len(s.clients)))
}

func (s *Server) unregister(client *SafeWriter) {
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()
	delete(s.clients, client)
	s.log.Info("viewer disconnected", zap.Int("clients", len(s.clients)))
}
