package game

import (
	"context"
	"errors"
	"testing"
)

// ScriptedStrategy is a Strategy that follows a predefined script of
// decisions. Scripted entries are returned verbatim, legal or not, so
// tests can exercise the fault-correction paths. Once a script runs out
// the strategy falls back to a fixed default: play the first legal move,
// otherwise draw; pick red; call UNO.
type ScriptedStrategy struct {
	name string

	actions []Action
	pos     int

	colors   []Color
	colorPos int

	unoAnswers []bool
	unoPos     int
}

func NewScripted(name string) *ScriptedStrategy {
	return &ScriptedStrategy{name: name}
}

func (s *ScriptedStrategy) AddPlay(c Card) *ScriptedStrategy {
	s.actions = append(s.actions, PlayCard(c))
	return s
}

func (s *ScriptedStrategy) AddDraw() *ScriptedStrategy {
	s.actions = append(s.actions, DrawCard())
	return s
}

func (s *ScriptedStrategy) AddColor(c Color) *ScriptedStrategy {
	s.colors = append(s.colors, c)
	return s
}

func (s *ScriptedStrategy) AddUno(answer bool) *ScriptedStrategy {
	s.unoAnswers = append(s.unoAnswers, answer)
	return s
}

func (s *ScriptedStrategy) ChooseAction(ctx context.Context, view *TurnView) (Action, error) {
	if s.pos < len(s.actions) {
		a := s.actions[s.pos]
		s.pos++
		return a, nil
	}
	if len(view.LegalMoves) > 0 {
		return PlayCard(view.LegalMoves[0]), nil
	}
	return DrawCard(), nil
}

func (s *ScriptedStrategy) ChooseColor(ctx context.Context, view *TurnView, wild Card) (Color, error) {
	if s.colorPos < len(s.colors) {
		c := s.colors[s.colorPos]
		s.colorPos++
		return c, nil
	}
	return ColorRed, nil
}

func (s *ScriptedStrategy) SayUno(ctx context.Context, view *TurnView) (bool, error) {
	if s.unoPos < len(s.unoAnswers) {
		a := s.unoAnswers[s.unoPos]
		s.unoPos++
		return a, nil
	}
	return true, nil
}

// FailingStrategy errors on every decision, to exercise the correction
// paths.
type FailingStrategy struct{}

func (FailingStrategy) ChooseAction(context.Context, *TurnView) (Action, error) {
	return Action{}, errors.New("scripted failure")
}

func (FailingStrategy) ChooseColor(context.Context, *TurnView, Card) (Color, error) {
	return ColorWild, errors.New("scripted failure")
}

func (FailingStrategy) SayUno(context.Context, *TurnView) (bool, error) {
	return false, errors.New("scripted failure")
}

// --- Card and deck helpers ---

func num(color Color, face int) Card {
	return Card{Color: color, Kind: Kind(face)}
}

func card(color Color, k Kind) Card {
	return Card{Color: color, Kind: k}
}

// deckFromDrawOrder builds a scenario deck whose cards come off the pile
// in the given order (the pile pops from the end of the slice). Dealing
// draws hands first, player by player, and the starter flip follows.
func deckFromDrawOrder(cards ...Card) []Card {
	deck := make([]Card, len(cards))
	for i, c := range cards {
		deck[len(cards)-1-i] = c
	}
	return deck
}

// runSession runs a scenario game to completion and fails the test on
// any engine error.
func runSession(t *testing.T, cfg Config, seats ...Seat) (*Session, *Outcome) {
	t.Helper()
	s, err := NewSession(cfg, seats)
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	outcome, err := s.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	return s, outcome
}
