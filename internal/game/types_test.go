package game

import "testing"

func TestStandardDeckComposition(t *testing.T) {
	deck := NewStandardDeck()
	if len(deck) != DeckSize {
		t.Fatalf("deck size = %d, want %d", len(deck), DeckSize)
	}

	counts := map[Card]int{}
	for _, c := range deck {
		counts[c]++
	}

	for _, color := range Colors {
		if got := counts[num(color, 0)]; got != 1 {
			t.Errorf("%s 0 count = %d, want 1", color, got)
		}
		for face := 1; face <= 9; face++ {
			if got := counts[num(color, face)]; got != 2 {
				t.Errorf("%s %d count = %d, want 2", color, face, got)
			}
		}
		for _, k := range []Kind{KindSkip, KindReverse, KindDrawTwo} {
			if got := counts[card(color, k)]; got != 2 {
				t.Errorf("%s %s count = %d, want 2", color, k, got)
			}
		}
	}
	if got := counts[card(ColorWild, KindWild)]; got != 4 {
		t.Errorf("Wild count = %d, want 4", got)
	}
	if got := counts[card(ColorWild, KindWildDrawFour)]; got != 4 {
		t.Errorf("WildDrawFour count = %d, want 4", got)
	}
}

func TestPointValues(t *testing.T) {
	tests := []struct {
		card Card
		want int
	}{
		{num(ColorRed, 0), 0},
		{num(ColorBlue, 9), 9},
		{card(ColorGreen, KindSkip), 20},
		{card(ColorYellow, KindReverse), 20},
		{card(ColorRed, KindDrawTwo), 20},
		{card(ColorWild, KindWild), 50},
		{card(ColorWild, KindWildDrawFour), 50},
	}
	for _, tt := range tests {
		if got := tt.card.PointValue(); got != tt.want {
			t.Errorf("%s points = %d, want %d", tt.card, got, tt.want)
		}
	}
}

func TestHandPointValue(t *testing.T) {
	h := Hand{num(ColorRed, 5), card(ColorBlue, KindSkip), card(ColorWild, KindWild)}
	if got := h.PointValue(); got != 75 {
		t.Errorf("hand points = %d, want 75", got)
	}
}

func TestCardString(t *testing.T) {
	tests := []struct {
		card Card
		want string
	}{
		{num(ColorRed, 5), "Red 5"},
		{card(ColorGreen, KindDrawTwo), "Green DrawTwo"},
		{card(ColorWild, KindWild), "Wild"},
		{card(ColorWild, KindWildDrawFour), "WildDrawFour"},
	}
	for _, tt := range tests {
		if got := tt.card.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestParseColor(t *testing.T) {
	for _, color := range Colors {
		got, ok := ParseColor(color.String())
		if !ok || got != color {
			t.Errorf("ParseColor(%q) = %v, %v", color.String(), got, ok)
		}
	}
	if _, ok := ParseColor("Wild"); ok {
		t.Error("ParseColor accepted Wild")
	}
	if _, ok := ParseColor("mauve"); ok {
		t.Error("ParseColor accepted an unknown color")
	}
}

func TestHandRemove(t *testing.T) {
	h := Hand{num(ColorRed, 5), num(ColorRed, 5), num(ColorBlue, 9)}
	if err := h.Remove(num(ColorRed, 5)); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if h.Size() != 2 || !h.Contains(num(ColorRed, 5)) {
		t.Errorf("hand after removing one duplicate = %v", h)
	}
	if err := h.Remove(num(ColorGreen, 1)); err != ErrCardNotInHand {
		t.Errorf("Remove missing card = %v, want ErrCardNotInHand", err)
	}
}
