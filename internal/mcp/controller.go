package mcp

import (
	"context"
	"fmt"

	"github.com/peterkuimelis/unosim/internal/game"
)

// MCPStrategy implements game.Strategy by sending decisions to the MCP
// session's pending channel and blocking on a response channel.
type MCPStrategy struct {
	seat       int
	session    *GameSession
	responseCh chan any
}

// NewMCPStrategy creates a strategy for the given seat.
func NewMCPStrategy(seat int, session *GameSession) *MCPStrategy {
	return &MCPStrategy{
		seat:       seat,
		session:    session,
		responseCh: make(chan any),
	}
}

// ChooseAction implements game.Strategy. The action list presents every
// legal play followed by a final "Draw" entry.
func (c *MCPStrategy) ChooseAction(ctx context.Context, view *game.TurnView) (game.Action, error) {
	actions := make([]ActionView, 0, len(view.LegalMoves)+1)
	for i, m := range view.LegalMoves {
		actions = append(actions, ActionView{Index: i, Desc: fmt.Sprintf("Play %s", m)})
	}
	actions = append(actions, ActionView{Index: len(view.LegalMoves), Desc: "Draw"})

	resp, err := c.await(ctx, &PendingDecision{
		Type:    DecisionChooseAction,
		Seat:    c.seat,
		State:   buildStateView(view),
		Actions: actions,
	})
	if err != nil {
		return game.Action{}, err
	}

	ar := resp.(ActionResponse)
	if ar.Index < 0 || ar.Index >= len(view.LegalMoves) {
		return game.DrawCard(), nil
	}
	return game.PlayCard(view.LegalMoves[ar.Index]), nil
}

// ChooseColor implements game.Strategy.
func (c *MCPStrategy) ChooseColor(ctx context.Context, view *game.TurnView, wild game.Card) (game.Color, error) {
	resp, err := c.await(ctx, &PendingDecision{
		Type:   DecisionChooseColor,
		Seat:   c.seat,
		State:  buildStateView(view),
		Prompt: fmt.Sprintf("Choose a color for %s", wild),
	})
	if err != nil {
		return game.ColorWild, err
	}
	return resp.(ColorResponse).Color, nil
}

// SayUno implements game.Strategy.
func (c *MCPStrategy) SayUno(ctx context.Context, view *game.TurnView) (bool, error) {
	resp, err := c.await(ctx, &PendingDecision{
		Type:   DecisionSayUno,
		Seat:   c.seat,
		State:  buildStateView(view),
		Prompt: "You are down to one card. Call UNO?",
	})
	if err != nil {
		return false, err
	}
	return resp.(UnoResponse).Answer, nil
}

// await publishes the pending decision and blocks until a tool call
// responds or the game context ends.
func (c *MCPStrategy) await(ctx context.Context, pending *PendingDecision) (any, error) {
	c.session.pendingCh <- pending
	select {
	case resp := <-c.responseCh:
		return resp, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
