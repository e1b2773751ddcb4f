// Package gateway exposes the decision core over a websocket: the game
// client streams state snapshots in and receives one action per snapshot.
package gateway

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/openrune/botcore/internal/engine"
	"github.com/openrune/botcore/internal/entities"
	"github.com/openrune/botcore/internal/errors"
	"github.com/openrune/botcore/internal/pkg/idgen"
)

const (
	readTimeout  = 60 * time.Second
	writeTimeout = 5 * time.Second
)

// SnapshotMessage is one inbound frame: the tick's state plus executor
// feedback about the previous action.
type SnapshotMessage struct {
	State             *entities.GameState `json:"state"`
	LastActionInvalid bool                `json:"last_action_invalid,omitempty"`
}

// ActionMessage is the outbound frame answering a snapshot
type ActionMessage struct {
	Tick      uint64          `json:"tick"`
	Action    entities.Action `json:"action"`
	Source    string          `json:"source,omitempty"`
	Reasoning string          `json:"reasoning,omitempty"`
}

// Config holds the dependencies for the gateway
type Config struct {
	Engine     *engine.Engine
	ListenAddr string
	// IDGen names connections in logs; defaults to UUIDs when nil
	IDGen idgen.Generator
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Engine == nil {
		vb.RequiredField("Engine")
	}
	if c.ListenAddr == "" {
		vb.RequiredField("ListenAddr")
	}

	return vb.Build()
}

// Server accepts game-client connections and runs the tick loop per frame
type Server struct {
	engine   *engine.Engine
	addr     string
	idGen    idgen.Generator
	upgrader websocket.Upgrader
	httpSrv  *http.Server
}

// NewServer creates a gateway server
func NewServer(cfg *Config) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	idGen := cfg.IDGen
	if idGen == nil {
		idGen = idgen.NewUUID("session")
	}

	return &Server{
		engine: cfg.Engine,
		addr:   cfg.ListenAddr,
		idGen:  idGen,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  64 * 1024,
			WriteBufferSize: 64 * 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}, nil
}

// Handler returns the websocket upgrade handler
func (s *Server) Handler() http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		conn, err := s.upgrader.Upgrade(rw, r, nil)
		if err != nil {
			return
		}
		defer func() { _ = conn.Close() }()

		sessionID := s.idGen.Generate()
		slog.Info("game client connected", "session_id", sessionID, "remote", conn.RemoteAddr())
		s.serveConn(r.Context(), conn)
		slog.Info("game client disconnected", "session_id", sessionID)
	}
}

func (s *Server) serveConn(ctx context.Context, conn *websocket.Conn) {
	for {
		_ = conn.SetReadDeadline(time.Now().Add(readTimeout))
		_, msg, err := conn.ReadMessage()
		if err != nil {
			return
		}

		var snapshot SnapshotMessage
		if err := json.Unmarshal(msg, &snapshot); err != nil {
			slog.Warn("malformed snapshot frame, skipping", "error", err)
			continue
		}
		if snapshot.State == nil {
			slog.Warn("snapshot frame without state, skipping")
			continue
		}

		out, err := s.engine.Tick(ctx, &engine.TickInput{
			State:             snapshot.State,
			LastActionInvalid: snapshot.LastActionInvalid,
		})
		if err != nil {
			slog.Error("tick failed", "error", err)
			continue
		}

		reply, err := json.Marshal(ActionMessage{
			Tick:      snapshot.State.Tick,
			Action:    out.Action,
			Source:    out.Source,
			Reasoning: out.Reasoning,
		})
		if err != nil {
			slog.Error("failed to encode action frame", "error", err)
			continue
		}

		_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := conn.WriteMessage(websocket.TextMessage, reply); err != nil {
			return
		}
	}
}

// Start runs the HTTP listener until the context is canceled
func (s *Server) Start(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.Handler())

	s.httpSrv = &http.Server{
		Addr:    s.addr,
		Handler: mux,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("gateway listening", "addr", s.addr)
		if err := s.httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.httpSrv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return errors.Wrap(err, "gateway listener failed")
	}
}
