package game

import (
	"errors"
	"math/rand"
)

// ErrDeckExhausted is returned when a draw is requested while both the
// draw pile and the reshufflable part of the discard pile are empty. The
// card conservation invariant makes this unreachable in a normal game;
// hitting it with high pending draw counts and many full hands ends the
// session by score instead of crashing the batch.
var ErrDeckExhausted = errors.New("draw and discard piles are both empty")

// pile owns the draw and discard stacks of one session. The top of each
// stack is the last element (pop from the end). The discard top stays in
// place across reshuffles so the active match target never changes
// mid-draw.
type pile struct {
	draw    []Card
	discard []Card
	rng     *rand.Rand

	// onReshuffle, when set, observes each discard reshuffle with the
	// number of cards moved back into the draw pile.
	onReshuffle func(moved int)
}

func newPile(deck []Card, rng *rand.Rand) *pile {
	p := &pile{
		draw: make([]Card, len(deck)),
		rng:  rng,
	}
	copy(p.draw, deck)
	return p
}

// shuffle randomizes the draw stack with the session RNG.
func (p *pile) shuffle() {
	p.rng.Shuffle(len(p.draw), func(i, j int) {
		p.draw[i], p.draw[j] = p.draw[j], p.draw[i]
	})
}

// drawOne pops the top card, reshuffling the discard pile (minus its top
// card) into the draw pile first if the draw pile is empty.
func (p *pile) drawOne() (Card, error) {
	if len(p.draw) == 0 {
		if err := p.reshuffleFromDiscard(); err != nil {
			return Card{}, err
		}
	}
	c := p.draw[len(p.draw)-1]
	p.draw = p.draw[:len(p.draw)-1]
	return c, nil
}

// drawN draws up to n cards, stopping early only on exhaustion. The cards
// drawn so far are returned alongside the error so the caller's hand
// bookkeeping stays consistent.
func (p *pile) drawN(n int) ([]Card, error) {
	cards := make([]Card, 0, n)
	for i := 0; i < n; i++ {
		c, err := p.drawOne()
		if err != nil {
			return cards, err
		}
		cards = append(cards, c)
	}
	return cards, nil
}

// reshuffleFromDiscard moves every discard card except the top back into
// the draw pile and shuffles it.
func (p *pile) reshuffleFromDiscard() error {
	if len(p.discard) <= 1 {
		return ErrDeckExhausted
	}
	top := p.discard[len(p.discard)-1]
	moved := len(p.discard) - 1
	p.draw = append(p.draw, p.discard[:moved]...)
	p.discard = p.discard[:0]
	p.discard = append(p.discard, top)
	p.shuffle()
	if p.onReshuffle != nil {
		p.onReshuffle(moved)
	}
	return nil
}

// putBottom returns a card to the bottom of the draw pile. Used by the
// starter flip when a wild or action card comes up.
func (p *pile) putBottom(c Card) {
	p.draw = append([]Card{c}, p.draw...)
}

// placeDiscard pushes a card onto the discard pile as the new top.
func (p *pile) placeDiscard(c Card) {
	p.discard = append(p.discard, c)
}

// top returns the current discard top. Only valid after the starter flip.
func (p *pile) top() Card {
	return p.discard[len(p.discard)-1]
}

// counts returns the sizes of both stacks, for invariant checks.
func (p *pile) counts() (draw, discard int) {
	return len(p.draw), len(p.discard)
}
