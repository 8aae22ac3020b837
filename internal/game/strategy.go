package game

import "context"

// Strategy is the decision contract every bot implements. Implementations
// see only the TurnView they are handed; other hands are structurally out
// of reach. Returning an error, an illegal card, or a bad color is a
// strategy fault: the session corrects it (forced draw, default color),
// logs it, and the game continues.
type Strategy interface {
	// ChooseAction picks a card to play or a draw. Called only when the
	// player has at least one legal move; the view's LegalMoves holds the
	// playable cards, and drawing is always allowed.
	ChooseAction(ctx context.Context, view *TurnView) (Action, error)

	// ChooseColor picks the color a just-played wild pins. Must return one
	// of the four concrete colors.
	ChooseColor(ctx context.Context, view *TurnView, wild Card) (Color, error)

	// SayUno is asked once when the player's action leaves them with
	// exactly one card. Declining (or faulting) arms the missed-call
	// penalty if the house rule is enabled.
	SayUno(ctx context.Context, view *TurnView) (bool, error)
}
