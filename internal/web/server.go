// Package web serves the HTTP API for running batches and watching
// games live over WebSocket.
package web

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/coder/websocket"

	"github.com/peterkuimelis/unosim/internal/bot"
	"github.com/peterkuimelis/unosim/internal/game"
	gamelog "github.com/peterkuimelis/unosim/internal/log"
	"github.com/peterkuimelis/unosim/internal/sim"
)

// Server is the unosim HTTP server.
type Server struct {
	mux *http.ServeMux
}

// NewServer creates a server with all routes registered.
func NewServer() *Server {
	s := &Server{mux: http.NewServeMux()}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.mux.HandleFunc("GET /api/strategies", s.handleStrategies)
	s.mux.HandleFunc("POST /api/simulate", s.handleSimulate)
	s.mux.HandleFunc("POST /api/tournament", s.handleTournament)
	s.mux.HandleFunc("GET /ws/watch", s.handleWatch)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// ListenAndServe starts the HTTP server on the given address.
func (s *Server) ListenAndServe(addr string) error {
	return http.ListenAndServe(addr, s.mux)
}

func (s *Server) handleStrategies(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, bot.Names())
}

// handleSimulate runs a batch described by the request body and responds
// with the stamped report.
func (s *Server) handleSimulate(w http.ResponseWriter, r *http.Request) {
	var spec sim.BatchSpec
	if err := json.NewDecoder(r.Body).Decode(&spec); err != nil {
		http.Error(w, "invalid batch spec: "+err.Error(), http.StatusBadRequest)
		return
	}
	stats, results, err := sim.RunBatch(r.Context(), &spec)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, sim.NewReport(&spec, stats, results))
}

func (s *Server) handleTournament(w http.ResponseWriter, r *http.Request) {
	var spec sim.TournamentSpec
	if err := json.NewDecoder(r.Body).Decode(&spec); err != nil {
		http.Error(w, "invalid tournament spec: "+err.Error(), http.StatusBadRequest)
		return
	}
	standings, err := sim.RunTournament(r.Context(), &spec)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, standings)
}

// watchRequest is the first message a watching client sends.
type watchRequest struct {
	Type    string           `json:"type"`
	Players []sim.PlayerSpec `json:"players"`
	Rules   sim.RuleSpec     `json:"rules"`
	Seed    int64            `json:"seed"`
}

// handleWatch plays one game and streams its event log to the browser as
// it unfolds, ending with the outcome.
func (s *Server) handleWatch(w http.ResponseWriter, r *http.Request) {
	wsConn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true, // Allow connections from any origin
	})
	if err != nil {
		log.Printf("WebSocket accept error: %v", err)
		return
	}
	defer wsConn.CloseNow()

	ctx := r.Context()

	_, data, err := wsConn.Read(ctx)
	if err != nil {
		log.Printf("WebSocket read watch request: %v", err)
		return
	}
	var req watchRequest
	if err := json.Unmarshal(data, &req); err != nil || req.Type != "watch" {
		wsConn.Close(websocket.StatusPolicyViolation, "expected watch message")
		return
	}

	spec := &sim.BatchSpec{Games: 1, Players: req.Players, Rules: req.Rules}
	if err := spec.Validate(); err != nil {
		writeWS(ctx, wsConn, map[string]string{"type": "error", "result": err.Error()})
		wsConn.Close(websocket.StatusNormalClosure, "invalid request")
		return
	}

	seats := make([]game.Seat, len(spec.Players))
	for i, p := range spec.Players {
		strategy, err := bot.New(p.Strategy, req.Seed+int64(i))
		if err != nil {
			writeWS(ctx, wsConn, map[string]string{"type": "error", "result": err.Error()})
			wsConn.Close(websocket.StatusNormalClosure, "invalid request")
			return
		}
		seats[i] = game.Seat{Name: p.Name, Strategy: strategy}
	}

	logger := newStreamLogger()
	cfg := game.Config{
		Stacking:         req.Rules.Stacking,
		UnoPenalty:       req.Rules.UnoPenalty,
		NoReverseSkip:    req.Rules.NoReverseSkip,
		StartingHandSize: req.Rules.StartingHandSize,
		MaxTurns:         req.Rules.MaxTurns,
		Seed:             req.Seed,
		Logger:           logger,
	}
	session, err := game.NewSession(cfg, seats)
	if err != nil {
		writeWS(ctx, wsConn, map[string]string{"type": "error", "result": err.Error()})
		wsConn.Close(websocket.StatusNormalClosure, "invalid request")
		return
	}

	type runResult struct {
		outcome *game.Outcome
		err     error
	}
	done := make(chan runResult, 1)
	go func() {
		outcome, err := session.Run(ctx)
		logger.close()
		done <- runResult{outcome, err}
	}()

	// Keep draining after a write failure so the session goroutine never
	// blocks on the event channel.
	streamBroken := false
	for event := range logger.events {
		if streamBroken {
			continue
		}
		if err := writeWS(ctx, wsConn, wsEvent{Type: "event", Event: event}); err != nil {
			streamBroken = true
		}
	}

	result := <-done
	if streamBroken {
		return
	}
	if result.err != nil {
		writeWS(ctx, wsConn, map[string]string{"type": "error", "result": result.err.Error()})
		wsConn.Close(websocket.StatusNormalClosure, "game abandoned")
		return
	}
	writeWS(ctx, wsConn, wsOutcome{Type: "outcome", Outcome: result.outcome})
	wsConn.Close(websocket.StatusNormalClosure, "game over")
}

type wsEvent struct {
	Type  string           `json:"type"`
	Event gamelog.GameEvent `json:"event"`
}

type wsOutcome struct {
	Type    string        `json:"type"`
	Outcome *game.Outcome `json:"outcome"`
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("write response: %v", err)
	}
}

func writeWS(ctx context.Context, conn *websocket.Conn, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return conn.Write(ctx, websocket.MessageText, data)
}
