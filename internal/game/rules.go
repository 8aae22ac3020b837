package game

// LegalMoves returns the held cards playable on top under the active
// color. Duplicate holdings appear once.
func LegalMoves(hand Hand, top Card, forced Color) []Card {
	var moves []Card
	seen := make(map[Card]bool, len(hand))
	for _, c := range hand {
		if seen[c] {
			continue
		}
		if Matches(top, forced, c) {
			moves = append(moves, c)
			seen[c] = true
		}
	}
	return moves
}

// StackableMoves returns the held cards that may answer a pending draw
// obligation when stacking is enabled: any DrawTwo or WildDrawFour.
func StackableMoves(hand Hand) []Card {
	var moves []Card
	seen := make(map[Card]bool, len(hand))
	for _, c := range hand {
		if seen[c] {
			continue
		}
		if c.Kind.IsDrawEffect() {
			moves = append(moves, c)
			seen[c] = true
		}
	}
	return moves
}

// effect is the turn-context delta produced by resolving a played card.
// The session applies it after the card reaches the discard pile.
type effect struct {
	skipNext    bool
	reverse     bool
	addPending  int
	needsColor  bool
	clearsColor bool
}

// resolveEffect maps a played kind to its context delta. Reverse acts as a
// skip in two-player games when the house rule is on, so the same player
// never takes two consecutive turns off one card. Pure: the session owns
// all mutation.
func resolveEffect(k Kind, players int, reverseAsSkip bool) effect {
	switch k {
	case KindSkip:
		return effect{skipNext: true, clearsColor: true}
	case KindReverse:
		if players == 2 && reverseAsSkip {
			return effect{skipNext: true, clearsColor: true}
		}
		return effect{reverse: true, clearsColor: true}
	case KindDrawTwo:
		return effect{addPending: 2, clearsColor: true}
	case KindWild:
		return effect{needsColor: true}
	case KindWildDrawFour:
		return effect{addPending: 4, needsColor: true}
	default: // number card
		return effect{clearsColor: true}
	}
}
