package game

// TurnView is the observable turn state handed to a strategy. It contains
// only what the seated player may legitimately see: their own hand, the
// public discard/turn context, and the other players' hand sizes. Hidden
// information (other hands, pile order) is absent by construction rather
// than guarded at runtime.
type TurnView struct {
	// Seat is the viewing player's seat index; Players is the seat count.
	Seat    int
	Players int

	// Hand is a copy of the player's cards.
	Hand []Card

	// LegalMoves is a copy of the playable cards this turn. Empty when the
	// strategy is being asked for a color or an UNO call rather than an
	// action.
	LegalMoves []Card

	// Top is the discard top; ForcedColor is the color pinned by a wild,
	// or ColorWild when none is in effect.
	Top         Card
	ForcedColor Color

	// Direction is the turn rotation; PendingDraw is the accumulated draw
	// obligation the player faces (0 outside stacking exchanges).
	Direction   Direction
	PendingDraw int

	// HandSizes holds every seat's hand size, indexed by seat.
	HandSizes []int

	// Turn is the 1-based turn counter.
	Turn int
}

// ActiveColor returns the color a non-wild play must match: the forced
// color when a wild pinned one, otherwise the top card's color.
func (v *TurnView) ActiveColor() Color {
	if v.ForcedColor != ColorWild {
		return v.ForcedColor
	}
	return v.Top.Color
}

// viewFor builds the restricted view for the given seat.
func (s *Session) viewFor(seat int, legal []Card) *TurnView {
	p := s.players[seat]
	v := &TurnView{
		Seat:        seat,
		Players:     len(s.players),
		Hand:        append([]Card(nil), p.Hand...),
		LegalMoves:  append([]Card(nil), legal...),
		Top:         s.pile.top(),
		ForcedColor: s.forcedColor,
		Direction:   s.direction,
		PendingDraw: s.pendingDraw,
		HandSizes:   make([]int, len(s.players)),
		Turn:        s.turn,
	}
	for i, pl := range s.players {
		v.HandSizes[i] = pl.Hand.Size()
	}
	return v
}
