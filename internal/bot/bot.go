// Package bot provides the built-in strategies and the registry the
// simulation harness selects them from.
package bot

import (
	"context"
	"math/rand"

	"github.com/peterkuimelis/unosim/internal/game"
)

// mostCommonColor returns the concrete color the hand holds most of,
// defaulting to red for all-wild hands. Ties break in fixed color order
// so strategies stay deterministic.
func mostCommonColor(hand []game.Card) game.Color {
	counts := map[game.Color]int{}
	for _, c := range hand {
		if !c.IsWild() {
			counts[c.Color]++
		}
	}
	best := game.ColorRed
	for _, color := range game.Colors {
		if counts[color] > counts[best] {
			best = color
		}
	}
	return best
}

// --- Random ---

// Random plays a uniformly random legal card and picks the color it holds
// most of when it plays a wild.
type Random struct {
	rng *rand.Rand
}

func NewRandom(seed int64) *Random {
	return &Random{rng: rand.New(rand.NewSource(seed))}
}

func (b *Random) ChooseAction(_ context.Context, view *game.TurnView) (game.Action, error) {
	if len(view.LegalMoves) == 0 {
		return game.DrawCard(), nil
	}
	return game.PlayCard(view.LegalMoves[b.rng.Intn(len(view.LegalMoves))]), nil
}

func (b *Random) ChooseColor(_ context.Context, view *game.TurnView, _ game.Card) (game.Color, error) {
	return mostCommonColor(view.Hand), nil
}

func (b *Random) SayUno(context.Context, *game.TurnView) (bool, error) {
	return true, nil
}

// --- WildFirst ---

// WildFirst burns wild cards as soon as they are legal, falling back to
// the first other legal move.
type WildFirst struct{}

func NewWildFirst() *WildFirst { return &WildFirst{} }

func (b *WildFirst) ChooseAction(_ context.Context, view *game.TurnView) (game.Action, error) {
	if len(view.LegalMoves) == 0 {
		return game.DrawCard(), nil
	}
	for _, c := range view.LegalMoves {
		if c.IsWild() {
			return game.PlayCard(c), nil
		}
	}
	return game.PlayCard(view.LegalMoves[0]), nil
}

func (b *WildFirst) ChooseColor(_ context.Context, view *game.TurnView, _ game.Card) (game.Color, error) {
	return mostCommonColor(view.Hand), nil
}

func (b *WildFirst) SayUno(context.Context, *game.TurnView) (bool, error) {
	return true, nil
}

// --- WildLast ---

// WildLast hoards wild cards, playing one only when nothing else is
// legal.
type WildLast struct{}

func NewWildLast() *WildLast { return &WildLast{} }

func (b *WildLast) ChooseAction(_ context.Context, view *game.TurnView) (game.Action, error) {
	if len(view.LegalMoves) == 0 {
		return game.DrawCard(), nil
	}
	for _, c := range view.LegalMoves {
		if !c.IsWild() {
			return game.PlayCard(c), nil
		}
	}
	return game.PlayCard(view.LegalMoves[0]), nil
}

func (b *WildLast) ChooseColor(_ context.Context, view *game.TurnView, _ game.Card) (game.Color, error) {
	return mostCommonColor(view.Hand), nil
}

func (b *WildLast) SayUno(context.Context, *game.TurnView) (bool, error) {
	return true, nil
}

// --- ActionFirst ---

// ActionFirst throws punches early: draw effects before skips and
// reverses, those before plain wilds, numbers last (highest face first).
type ActionFirst struct{}

func NewActionFirst() *ActionFirst { return &ActionFirst{} }

func (b *ActionFirst) ChooseAction(_ context.Context, view *game.TurnView) (game.Action, error) {
	if len(view.LegalMoves) == 0 {
		return game.DrawCard(), nil
	}
	for _, c := range view.LegalMoves {
		if c.Kind.IsDrawEffect() {
			return game.PlayCard(c), nil
		}
	}
	for _, c := range view.LegalMoves {
		if c.Kind == game.KindSkip || c.Kind == game.KindReverse {
			return game.PlayCard(c), nil
		}
	}
	for _, c := range view.LegalMoves {
		if c.Kind == game.KindWild {
			return game.PlayCard(c), nil
		}
	}
	best := view.LegalMoves[0]
	for _, c := range view.LegalMoves[1:] {
		if c.Kind > best.Kind {
			best = c
		}
	}
	return game.PlayCard(best), nil
}

func (b *ActionFirst) ChooseColor(_ context.Context, view *game.TurnView, _ game.Card) (game.Color, error) {
	return mostCommonColor(view.Hand), nil
}

func (b *ActionFirst) SayUno(context.Context, *game.TurnView) (bool, error) {
	return true, nil
}

// --- Hoarder ---

// Hoarder sheds number cards of its dominant color first to keep the
// table on a color it is rich in, saving action and wild cards for when
// it runs dry.
type Hoarder struct{}

func NewHoarder() *Hoarder { return &Hoarder{} }

func (b *Hoarder) ChooseAction(_ context.Context, view *game.TurnView) (game.Action, error) {
	if len(view.LegalMoves) == 0 {
		return game.DrawCard(), nil
	}
	dominant := mostCommonColor(view.Hand)
	for _, c := range view.LegalMoves {
		if c.Kind.IsNumber() && c.Color == dominant {
			return game.PlayCard(c), nil
		}
	}
	for _, c := range view.LegalMoves {
		if c.Kind.IsNumber() {
			return game.PlayCard(c), nil
		}
	}
	for _, c := range view.LegalMoves {
		if !c.IsWild() {
			return game.PlayCard(c), nil
		}
	}
	return game.PlayCard(view.LegalMoves[0]), nil
}

func (b *Hoarder) ChooseColor(_ context.Context, view *game.TurnView, _ game.Card) (game.Color, error) {
	return mostCommonColor(view.Hand), nil
}

func (b *Hoarder) SayUno(context.Context, *game.TurnView) (bool, error) {
	return true, nil
}
