package game

import "fmt"

// --- Enums ---

// Color is a card color. ColorWild is the printed color of wild cards;
// the color a played wild pins lives in the session state, not on the card.
type Color int

const (
	ColorWild Color = iota
	ColorRed
	ColorYellow
	ColorGreen
	ColorBlue
)

func (c Color) String() string {
	switch c {
	case ColorRed:
		return "Red"
	case ColorYellow:
		return "Yellow"
	case ColorGreen:
		return "Green"
	case ColorBlue:
		return "Blue"
	case ColorWild:
		return "Wild"
	default:
		return "Unknown"
	}
}

// ParseColor converts a color name to a Color. Returns false for anything
// that is not one of the four concrete colors.
func ParseColor(s string) (Color, bool) {
	switch s {
	case "Red", "red":
		return ColorRed, true
	case "Yellow", "yellow":
		return ColorYellow, true
	case "Green", "green":
		return ColorGreen, true
	case "Blue", "blue":
		return ColorBlue, true
	default:
		return ColorWild, false
	}
}

// Colors lists the four concrete colors in a fixed order.
var Colors = [4]Color{ColorRed, ColorYellow, ColorGreen, ColorBlue}

// Kind is a card face. Values 0–9 are the number cards; the action and
// wild kinds follow.
type Kind int

const (
	KindSkip Kind = 10 + iota
	KindReverse
	KindDrawTwo
	KindWild
	KindWildDrawFour
)

func (k Kind) String() string {
	if k.IsNumber() {
		return fmt.Sprintf("%d", int(k))
	}
	switch k {
	case KindSkip:
		return "Skip"
	case KindReverse:
		return "Reverse"
	case KindDrawTwo:
		return "DrawTwo"
	case KindWild:
		return "Wild"
	case KindWildDrawFour:
		return "WildDrawFour"
	default:
		return "Unknown"
	}
}

// IsNumber reports whether the kind is a number card (0–9).
func (k Kind) IsNumber() bool {
	return k >= 0 && k <= 9
}

// IsAction reports whether the kind has a turn-altering effect.
func (k Kind) IsAction() bool {
	return k == KindSkip || k == KindReverse || k == KindDrawTwo || k == KindWildDrawFour
}

// IsDrawEffect reports whether playing the kind puts a draw obligation on
// the next player.
func (k Kind) IsDrawEffect() bool {
	return k == KindDrawTwo || k == KindWildDrawFour
}

// DrawAmount returns the number of cards the kind forces the next player
// to draw, or 0.
func (k Kind) DrawAmount() int {
	switch k {
	case KindDrawTwo:
		return 2
	case KindWildDrawFour:
		return 4
	default:
		return 0
	}
}

// --- Card ---

// Card is an immutable card value.
type Card struct {
	Color Color
	Kind  Kind
}

func (c Card) String() string {
	if c.IsWild() {
		return c.Kind.String()
	}
	return fmt.Sprintf("%s %s", c.Color, c.Kind)
}

// IsWild reports whether the card is a Wild or WildDrawFour.
func (c Card) IsWild() bool {
	return c.Kind == KindWild || c.Kind == KindWildDrawFour
}

// PointValue returns the card's score contribution when left in a losing
// hand: face value for numbers, 20 for action cards, 50 for wilds.
func (c Card) PointValue() int {
	switch {
	case c.Kind.IsNumber():
		return int(c.Kind)
	case c.IsWild():
		return 50
	default:
		return 20
	}
}

// DeckSize is the number of cards in a standard deck.
const DeckSize = 108

// NewStandardDeck builds the fixed 108-card composition in a deterministic
// order: per color one 0, two each of 1–9, two Skip, two Reverse, two
// DrawTwo; plus four Wild and four WildDrawFour.
func NewStandardDeck() []Card {
	deck := make([]Card, 0, DeckSize)
	for _, color := range Colors {
		deck = append(deck, Card{Color: color, Kind: 0})
		for n := Kind(1); n <= 9; n++ {
			deck = append(deck, Card{Color: color, Kind: n}, Card{Color: color, Kind: n})
		}
		for _, k := range [3]Kind{KindSkip, KindReverse, KindDrawTwo} {
			deck = append(deck, Card{Color: color, Kind: k}, Card{Color: color, Kind: k})
		}
	}
	for i := 0; i < 4; i++ {
		deck = append(deck, Card{Color: ColorWild, Kind: KindWild})
	}
	for i := 0; i < 4; i++ {
		deck = append(deck, Card{Color: ColorWild, Kind: KindWildDrawFour})
	}
	return deck
}

// Matches reports whether candidate may be played on top under the active
// color. The active color is the color pinned by a wild if one is in
// effect, otherwise the top card's own color. Wild candidates always
// match; otherwise a candidate matches on color or on kind (numbers
// compare by value, which kind equality already gives).
func Matches(top Card, forced Color, candidate Card) bool {
	if candidate.IsWild() {
		return true
	}
	active := top.Color
	if forced != ColorWild {
		active = forced
	}
	return candidate.Color == active || candidate.Kind == top.Kind
}

// --- Direction ---

// Direction is the turn rotation: +1 clockwise, -1 counter-clockwise.
type Direction int

const (
	Clockwise        Direction = 1
	CounterClockwise Direction = -1
)

func (d Direction) String() string {
	if d == Clockwise {
		return "clockwise"
	}
	return "counter-clockwise"
}

// Reversed returns the opposite direction.
func (d Direction) Reversed() Direction {
	return -d
}

// --- Actions ---

// ActionType discriminates the two decisions a strategy may return.
type ActionType int

const (
	ActionPlay ActionType = iota
	ActionDraw
)

func (a ActionType) String() string {
	if a == ActionPlay {
		return "Play"
	}
	return "Draw"
}

// Action is a strategy's chosen move for one turn. Card is meaningful only
// for ActionPlay.
type Action struct {
	Type ActionType
	Card Card
}

// PlayCard returns an Action playing the given card.
func PlayCard(c Card) Action {
	return Action{Type: ActionPlay, Card: c}
}

// DrawCard returns an Action drawing from the pile instead of playing.
func DrawCard() Action {
	return Action{Type: ActionDraw}
}

func (a Action) String() string {
	if a.Type == ActionDraw {
		return "Draw"
	}
	return fmt.Sprintf("Play %s", a.Card)
}
