package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/peterkuimelis/unosim/internal/bot"
	"github.com/peterkuimelis/unosim/internal/game"
	gamelog "github.com/peterkuimelis/unosim/internal/log"
)

// DecisionType identifies what kind of decision the game engine is waiting for.
type DecisionType string

const (
	DecisionChooseAction DecisionType = "choose_action"
	DecisionChooseColor  DecisionType = "choose_color"
	DecisionSayUno       DecisionType = "say_uno"
	DecisionGameOver     DecisionType = "game_over"
)

// StateView is the observable game state from the MCP player's seat.
type StateView struct {
	Seat        int      `json:"seat"`
	Turn        int      `json:"turn"`
	Top         string   `json:"top"`
	ActiveColor string   `json:"activeColor"`
	Direction   string   `json:"direction"`
	PendingDraw int      `json:"pendingDraw,omitempty"`
	Hand        []string `json:"hand"`
	HandSizes   []int    `json:"handSizes"`
}

// ActionView is one selectable action in a pending decision.
type ActionView struct {
	Index int    `json:"index"`
	Desc  string `json:"desc"`
}

// EventView is a game event as presented in tool responses.
type EventView struct {
	Turn    int    `json:"turn"`
	Player  int    `json:"player"`
	Type    string `json:"type"`
	Card    string `json:"card,omitempty"`
	Color   string `json:"color,omitempty"`
	Count   int    `json:"count,omitempty"`
	Details string `json:"details,omitempty"`
}

// PendingDecision represents a decision the game engine is waiting for.
type PendingDecision struct {
	Type    DecisionType `json:"type"`
	Seat    int          `json:"seat"`
	State   *StateView   `json:"state"`
	Actions []ActionView `json:"actions,omitempty"`
	Prompt  string       `json:"prompt,omitempty"`
}

// Response types sent back from MCP tools to the blocked strategy.

type ActionResponse struct {
	Index int
}

type ColorResponse struct {
	Color game.Color
}

type UnoResponse struct {
	Answer bool
}

// ToolResponse is the JSON envelope returned by all MCP tools.
type ToolResponse struct {
	Events     []EventView  `json:"events"`
	State      *StateView   `json:"state,omitempty"`
	Pending    *PendingView `json:"pending,omitempty"`
	GameOver   bool         `json:"game_over"`
	Winner     int          `json:"winner,omitempty"`
	WinnerName string       `json:"winner_name,omitempty"`
	Result     string       `json:"result,omitempty"`
}

// PendingView is the pending decision as presented in the tool response JSON.
type PendingView struct {
	Type    DecisionType `json:"type"`
	Actions []ActionView `json:"actions,omitempty"`
	Prompt  string       `json:"prompt,omitempty"`
}

// SessionOptions configures a new MCP game.
type SessionOptions struct {
	Opponents  []string // registered strategy names
	Seat       int      // the MCP player's seat
	Seed       int64
	Stacking   bool
	UnoPenalty bool
}

// GameSession holds the state of a single MCP game session: one seat
// driven through the MCP tools, the rest played by bots.
type GameSession struct {
	session  *game.Session
	strategy *MCPStrategy
	seat     int
	cancel   context.CancelFunc

	pendingCh      chan *PendingDecision
	currentPending *PendingDecision

	mu       sync.Mutex
	events   []EventView
	gameOver bool
	outcome  *game.Outcome
	result   string
}

// NewGameSession seats the MCP player among bot opponents and starts the
// game in the background. The first pending decision arrives once play
// reaches the MCP seat.
func NewGameSession(opts SessionOptions) (*GameSession, error) {
	if len(opts.Opponents) < 1 {
		return nil, fmt.Errorf("need at least 1 opponent")
	}
	players := len(opts.Opponents) + 1
	if opts.Seat < 0 || opts.Seat >= players {
		return nil, fmt.Errorf("seat must be 0-%d, got %d", players-1, opts.Seat)
	}

	sess := &GameSession{
		seat:      opts.Seat,
		pendingCh: make(chan *PendingDecision, 1),
	}
	sess.strategy = NewMCPStrategy(opts.Seat, sess)

	seats := make([]game.Seat, players)
	seats[opts.Seat] = game.Seat{Name: "claude", Strategy: sess.strategy}
	oi := 0
	for i := range seats {
		if i == opts.Seat {
			continue
		}
		name := opts.Opponents[oi]
		strategy, err := bot.New(name, opts.Seed+int64(i))
		if err != nil {
			return nil, err
		}
		seats[i] = game.Seat{Name: fmt.Sprintf("%s-%d", name, i), Strategy: strategy}
		oi++
	}

	cfg := game.Config{
		Stacking:   opts.Stacking,
		UnoPenalty: opts.UnoPenalty,
		Seed:       opts.Seed,
		Logger:     &sessionLog{session: sess},
	}
	g, err := game.NewSession(cfg, seats)
	if err != nil {
		return nil, err
	}
	sess.session = g

	ctx, cancel := context.WithCancel(context.Background())
	sess.cancel = cancel

	go func() {
		outcome, err := g.Run(ctx)

		sess.mu.Lock()
		sess.gameOver = true
		if err != nil {
			sess.result = fmt.Sprintf("error: %v", err)
		} else {
			sess.outcome = outcome
			sess.result = fmt.Sprintf("Game over. %s wins (%s) after %d turns.",
				outcome.WinnerName, outcome.Reason, outcome.Turns)
		}
		sess.mu.Unlock()

		sess.pendingCh <- &PendingDecision{Type: DecisionGameOver, Seat: -1}
	}()

	return sess, nil
}

// Close abandons a running game.
func (s *GameSession) Close() {
	s.cancel()
}

// sessionLog is the EventLogger wired into the game: it keeps the full
// log and mirrors each event into the session's drainable buffer.
type sessionLog struct {
	gamelog.MemoryLogger
	session *GameSession
}

func (l *sessionLog) Log(event gamelog.GameEvent) {
	l.MemoryLogger.Log(event)
	e := l.LastEvent()
	l.session.appendEvent(EventView{
		Turn:    e.Turn,
		Player:  e.Player,
		Type:    e.Kind,
		Card:    e.Card,
		Color:   e.Color,
		Count:   e.Count,
		Details: e.Details,
	})
}

// appendEvent adds an event to the session's event log. Thread-safe.
func (s *GameSession) appendEvent(ev EventView) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
}

// drainEvents returns all accumulated events and clears the buffer.
func (s *GameSession) drainEvents() []EventView {
	s.mu.Lock()
	defer s.mu.Unlock()
	events := s.events
	s.events = nil
	return events
}

// waitForPending blocks until the next decision arrives from the game
// engine, then builds a ToolResponse with accumulated events + the
// pending decision.
func (s *GameSession) waitForPending() *ToolResponse {
	pending := <-s.pendingCh
	s.currentPending = pending

	resp := &ToolResponse{Events: s.drainEvents()}
	if resp.Events == nil {
		resp.Events = []EventView{}
	}

	if pending.Type == DecisionGameOver {
		s.mu.Lock()
		resp.GameOver = true
		resp.Result = s.result
		if s.outcome != nil {
			resp.Winner = s.outcome.Winner
			resp.WinnerName = s.outcome.WinnerName
		}
		s.mu.Unlock()
		return resp
	}

	resp.State = pending.State
	resp.Pending = &PendingView{
		Type:    pending.Type,
		Actions: pending.Actions,
		Prompt:  pending.Prompt,
	}
	return resp
}

// buildStateView converts a TurnView into the tool-facing state JSON.
func buildStateView(view *game.TurnView) *StateView {
	hand := make([]string, len(view.Hand))
	for i, c := range view.Hand {
		hand[i] = c.String()
	}
	return &StateView{
		Seat:        view.Seat,
		Turn:        view.Turn,
		Top:         view.Top.String(),
		ActiveColor: view.ActiveColor().String(),
		Direction:   view.Direction.String(),
		PendingDraw: view.PendingDraw,
		Hand:        hand,
		HandSizes:   view.HandSizes,
	}
}

// respondJSON marshals a ToolResponse to a JSON string.
func respondJSON(resp *ToolResponse) string {
	data, err := json.Marshal(resp)
	if err != nil {
		return fmt.Sprintf(`{"error": "marshal error: %v"}`, err)
	}
	return string(data)
}
