package game

import "errors"

// MaxPlayers bounds the seat count; the 108-card deck cannot sustain more.
const MaxPlayers = 10

// ErrCardNotInHand indicates a removal of a card the hand does not hold.
// It is an engine bookkeeping bug, never a strategy fault, and aborts the
// session.
var ErrCardNotInHand = errors.New("card not in hand")

// Hand is one player's cards. Order carries no meaning; it is a multiset.
type Hand []Card

// Add appends cards to the hand.
func (h *Hand) Add(cards ...Card) {
	*h = append(*h, cards...)
}

// Remove deletes one copy of the card from the hand.
func (h *Hand) Remove(c Card) error {
	for i, held := range *h {
		if held == c {
			*h = append((*h)[:i], (*h)[i+1:]...)
			return nil
		}
	}
	return ErrCardNotInHand
}

// Contains reports whether at least one copy of the card is held.
func (h Hand) Contains(c Card) bool {
	for _, held := range h {
		if held == c {
			return true
		}
	}
	return false
}

// Size returns the number of cards held.
func (h Hand) Size() int {
	return len(h)
}

// HasLegalMove reports whether any held card matches the top card under
// the active color.
func (h Hand) HasLegalMove(top Card, forced Color) bool {
	for _, c := range h {
		if Matches(top, forced, c) {
			return true
		}
	}
	return false
}

// PointValue sums the point values of all held cards.
func (h Hand) PointValue() int {
	total := 0
	for _, c := range h {
		total += c.PointValue()
	}
	return total
}

// Player is one seat at the table. Its hand is mutated only by the
// session's deal, draw, and play steps.
type Player struct {
	Name string
	Seat int
	Hand Hand

	strategy Strategy

	// pendingUno is set when the player reached one card without calling
	// UNO. Cleared by the penalty at the start of their next turn.
	pendingUno bool
}

// Seat pairs a player identity with the strategy that plays it. The seat
// order given to NewSession is the turn order.
type Seat struct {
	Name     string
	Strategy Strategy
}
