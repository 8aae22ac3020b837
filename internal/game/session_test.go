package game

import (
	"context"
	"testing"

	"github.com/peterkuimelis/unosim/internal/log"
)

func memLog(t *testing.T, s *Session) *log.MemoryLogger {
	t.Helper()
	mem, ok := s.Logger().(*log.MemoryLogger)
	if !ok {
		t.Fatalf("session logger is %T, want *log.MemoryLogger", s.Logger())
	}
	return mem
}

func TestSimpleWin(t *testing.T) {
	cfg := Config{
		StartingHandSize: 1,
		NoShuffle:        true,
		Seed:             1,
		Deck: deckFromDrawOrder(
			num(ColorRed, 5), // p0
			num(ColorRed, 7), // p1
			num(ColorRed, 3), // starter
		),
	}
	_, outcome := runSession(t, cfg,
		Seat{Name: "a", Strategy: NewScripted("a")},
		Seat{Name: "b", Strategy: NewScripted("b")},
	)

	if outcome.Winner != 0 {
		t.Errorf("winner = %d, want 0", outcome.Winner)
	}
	if outcome.Reason != "emptied hand" {
		t.Errorf("reason = %q, want %q", outcome.Reason, "emptied hand")
	}
	if outcome.Turns != 1 {
		t.Errorf("turns = %d, want 1", outcome.Turns)
	}
	if outcome.Scores[0] != 0 || outcome.Scores[1] != 7 {
		t.Errorf("scores = %v, want [0 7]", outcome.Scores)
	}
}

func TestForcedDrawWhenNoLegalMove(t *testing.T) {
	cfg := Config{
		StartingHandSize: 2,
		NoShuffle:        true,
		Seed:             1,
		MaxTurns:         1,
		Deck: deckFromDrawOrder(
			num(ColorRed, 5), num(ColorRed, 6), // p0
			num(ColorBlue, 1), num(ColorBlue, 2), // p1
			num(ColorGreen, 3), // starter
			num(ColorYellow, 9), // forced draw
		),
	}
	s, outcome := runSession(t, cfg,
		Seat{Name: "a", Strategy: NewScripted("a")},
		Seat{Name: "b", Strategy: NewScripted("b")},
	)

	forced := memLog(t, s).EventsOfType(log.EventForcedDraw)
	if len(forced) != 1 || forced[0].Player != 0 {
		t.Fatalf("forced draw events = %v, want one for player 0", forced)
	}
	if outcome.Reason != "turn limit reached" {
		t.Errorf("reason = %q, want %q", outcome.Reason, "turn limit reached")
	}
	if outcome.Winner != 1 {
		t.Errorf("winner = %d, want 1 (lowest hand points)", outcome.Winner)
	}
}

func TestDrawTwoObligation(t *testing.T) {
	cfg := Config{
		StartingHandSize: 2,
		NoShuffle:        true,
		Seed:             1,
		MaxTurns:         2,
		Deck: deckFromDrawOrder(
			card(ColorRed, KindDrawTwo), num(ColorRed, 1), // p0
			num(ColorBlue, 5), num(ColorBlue, 6), // p1
			num(ColorRed, 3), // starter
			num(ColorGreen, 1), num(ColorGreen, 2), // penalty draws
		),
	}
	s, outcome := runSession(t, cfg,
		Seat{Name: "a", Strategy: NewScripted("a").AddPlay(card(ColorRed, KindDrawTwo))},
		Seat{Name: "b", Strategy: NewScripted("b")},
	)

	penalties := memLog(t, s).EventsOfType(log.EventDrawPenalty)
	if len(penalties) != 1 {
		t.Fatalf("draw penalty events = %d, want 1", len(penalties))
	}
	if penalties[0].Player != 1 || penalties[0].Count != 2 {
		t.Errorf("penalty = player %d count %d, want player 1 count 2", penalties[0].Player, penalties[0].Count)
	}
	if outcome.Winner != 0 {
		t.Errorf("winner = %d, want 0", outcome.Winner)
	}
}

func TestStackingPassesObligation(t *testing.T) {
	cfg := Config{
		Stacking:         true,
		StartingHandSize: 2,
		NoShuffle:        true,
		Seed:             1,
		MaxTurns:         3,
		Deck: deckFromDrawOrder(
			card(ColorRed, KindDrawTwo), num(ColorRed, 1), // p0
			card(ColorBlue, KindDrawTwo), num(ColorBlue, 9), // p1
			num(ColorGreen, 2), num(ColorGreen, 4), // p2
			num(ColorRed, 3), // starter
			num(ColorYellow, 1), num(ColorYellow, 2), num(ColorYellow, 3), num(ColorYellow, 4),
		),
	}
	s, _ := runSession(t, cfg,
		Seat{Name: "a", Strategy: NewScripted("a").AddPlay(card(ColorRed, KindDrawTwo))},
		Seat{Name: "b", Strategy: NewScripted("b").AddPlay(card(ColorBlue, KindDrawTwo))},
		Seat{Name: "c", Strategy: NewScripted("c")},
	)

	penalties := memLog(t, s).EventsOfType(log.EventDrawPenalty)
	if len(penalties) != 1 {
		t.Fatalf("draw penalty events = %d, want 1", len(penalties))
	}
	if penalties[0].Player != 2 || penalties[0].Count != 4 {
		t.Errorf("penalty = player %d count %d, want player 2 count 4 (stacked)", penalties[0].Player, penalties[0].Count)
	}
}

func TestStackDeclinedDrawsFull(t *testing.T) {
	cfg := Config{
		Stacking:         true,
		StartingHandSize: 2,
		NoShuffle:        true,
		Seed:             1,
		MaxTurns:         2,
		Deck: deckFromDrawOrder(
			card(ColorRed, KindDrawTwo), num(ColorRed, 1), // p0
			card(ColorBlue, KindDrawTwo), num(ColorBlue, 5), // p1 holds an answer but declines
			num(ColorRed, 3), // starter
			num(ColorGreen, 1), num(ColorGreen, 2),
		),
	}
	s, _ := runSession(t, cfg,
		Seat{Name: "a", Strategy: NewScripted("a").AddPlay(card(ColorRed, KindDrawTwo))},
		Seat{Name: "b", Strategy: NewScripted("b").AddDraw()},
	)

	penalties := memLog(t, s).EventsOfType(log.EventDrawPenalty)
	if len(penalties) != 1 || penalties[0].Player != 1 || penalties[0].Count != 2 {
		t.Fatalf("penalty events = %v, want one for player 1 count 2", penalties)
	}
}

func TestReverseActsAsSkipTwoPlayer(t *testing.T) {
	cfg := Config{
		StartingHandSize: 2,
		NoShuffle:        true,
		Seed:             1,
		Deck: deckFromDrawOrder(
			card(ColorRed, KindReverse), num(ColorRed, 1), // p0
			num(ColorBlue, 5), num(ColorBlue, 6), // p1
			num(ColorRed, 3), // starter
		),
	}
	s, outcome := runSession(t, cfg,
		Seat{Name: "a", Strategy: NewScripted("a").AddPlay(card(ColorRed, KindReverse))},
		Seat{Name: "b", Strategy: NewScripted("b")},
	)

	if outcome.Winner != 0 || outcome.Turns != 2 {
		t.Errorf("winner %d in %d turns, want player 0 in 2", outcome.Winner, outcome.Turns)
	}
	starts := memLog(t, s).EventsOfType(log.EventTurnStart)
	if len(starts) != 2 || starts[0].Player != 0 || starts[1].Player != 0 {
		t.Errorf("turn starts = %v, want both for player 0", starts)
	}
}

func TestNoReverseSkipRotates(t *testing.T) {
	cfg := Config{
		StartingHandSize: 2,
		NoShuffle:        true,
		Seed:             1,
		MaxTurns:         2,
		NoReverseSkip:    true,
		Deck: deckFromDrawOrder(
			card(ColorRed, KindReverse), num(ColorRed, 1), // p0
			num(ColorBlue, 5), num(ColorBlue, 6), // p1
			num(ColorRed, 3), // starter
			num(ColorGreen, 9), // p1's forced draw
		),
	}
	s, _ := runSession(t, cfg,
		Seat{Name: "a", Strategy: NewScripted("a").AddPlay(card(ColorRed, KindReverse))},
		Seat{Name: "b", Strategy: NewScripted("b")},
	)

	starts := memLog(t, s).EventsOfType(log.EventTurnStart)
	if len(starts) != 2 || starts[0].Player != 0 || starts[1].Player != 1 {
		t.Errorf("turn starts = %v, want players 0 then 1", starts)
	}
}

func TestMissedUnoCallPenalized(t *testing.T) {
	cfg := Config{
		UnoPenalty:       true,
		StartingHandSize: 2,
		NoShuffle:        true,
		Seed:             1,
		MaxTurns:         3,
		Deck: deckFromDrawOrder(
			num(ColorRed, 5), num(ColorRed, 6), // p0
			num(ColorBlue, 1), num(ColorBlue, 2), // p1
			num(ColorRed, 3), // starter
			num(ColorGreen, 9), // p1's forced draw
			num(ColorYellow, 1), num(ColorYellow, 2), num(ColorYellow, 3), num(ColorYellow, 4),
		),
	}
	s, _ := runSession(t, cfg,
		Seat{Name: "a", Strategy: NewScripted("a").AddPlay(num(ColorRed, 5)).AddUno(false)},
		Seat{Name: "b", Strategy: NewScripted("b")},
	)

	penalties := memLog(t, s).EventsOfType(log.EventUnoPenalty)
	if len(penalties) != 1 {
		t.Fatalf("uno penalty events = %d, want 1", len(penalties))
	}
	if penalties[0].Player != 0 || penalties[0].Count != 4 || penalties[0].Turn != 3 {
		t.Errorf("penalty = player %d count %d turn %d, want player 0 count 4 turn 3",
			penalties[0].Player, penalties[0].Count, penalties[0].Turn)
	}
}

func TestUnoCallAvoidsPenalty(t *testing.T) {
	cfg := Config{
		UnoPenalty:       true,
		StartingHandSize: 2,
		NoShuffle:        true,
		Seed:             1,
		MaxTurns:         3,
		Deck: deckFromDrawOrder(
			num(ColorRed, 5), num(ColorRed, 6), // p0
			num(ColorBlue, 1), num(ColorBlue, 2), // p1
			num(ColorRed, 3), // starter
			num(ColorGreen, 9), // p1's forced draw
		),
	}
	s, outcome := runSession(t, cfg,
		Seat{Name: "a", Strategy: NewScripted("a").AddPlay(num(ColorRed, 5)).AddUno(true)},
		Seat{Name: "b", Strategy: NewScripted("b")},
	)

	mem := memLog(t, s)
	if got := mem.EventsOfType(log.EventUnoPenalty); len(got) != 0 {
		t.Errorf("uno penalty events = %v, want none", got)
	}
	if got := mem.EventsOfType(log.EventUnoCalled); len(got) != 1 || got[0].Player != 0 {
		t.Errorf("uno called events = %v, want one for player 0", got)
	}
	if outcome.Winner != 0 || outcome.Reason != "emptied hand" {
		t.Errorf("outcome = winner %d reason %q, want player 0 emptied hand", outcome.Winner, outcome.Reason)
	}
}

func TestIllegalPlayCorrectedToDraw(t *testing.T) {
	cfg := Config{
		StartingHandSize: 2,
		NoShuffle:        true,
		Seed:             1,
		MaxTurns:         1,
		Deck: deckFromDrawOrder(
			num(ColorRed, 5), num(ColorBlue, 9), // p0
			num(ColorBlue, 1), num(ColorBlue, 2), // p1
			num(ColorRed, 3), // starter
			num(ColorGreen, 1), // substitute draw
		),
	}
	s, outcome := runSession(t, cfg,
		Seat{Name: "a", Strategy: NewScripted("a").AddPlay(num(ColorBlue, 9))},
		Seat{Name: "b", Strategy: NewScripted("b")},
	)

	mem := memLog(t, s)
	if got := mem.EventsOfType(log.EventStrategyFault); len(got) != 1 || got[0].Player != 0 {
		t.Fatalf("fault events = %v, want one for player 0", got)
	}
	if got := mem.EventsOfType(log.EventDraw); len(got) != 1 || got[0].Player != 0 {
		t.Errorf("draw events = %v, want one for player 0", got)
	}
	if outcome.Faults != 1 {
		t.Errorf("faults = %d, want 1", outcome.Faults)
	}
}

func TestFailingStrategyCorrectedToDraw(t *testing.T) {
	cfg := Config{
		StartingHandSize: 2,
		NoShuffle:        true,
		Seed:             1,
		MaxTurns:         1,
		Deck: deckFromDrawOrder(
			num(ColorRed, 5), num(ColorRed, 6), // p0
			num(ColorBlue, 1), num(ColorBlue, 2), // p1
			num(ColorRed, 3), // starter
			num(ColorGreen, 1), // substitute draw
		),
	}
	s, outcome := runSession(t, cfg,
		Seat{Name: "a", Strategy: FailingStrategy{}},
		Seat{Name: "b", Strategy: NewScripted("b")},
	)

	if got := memLog(t, s).EventsOfType(log.EventDraw); len(got) != 1 || got[0].Player != 0 {
		t.Errorf("draw events = %v, want one for player 0", got)
	}
	if outcome.Faults != 1 {
		t.Errorf("faults = %d, want 1", outcome.Faults)
	}
}

func TestInvalidColorCorrectedToRed(t *testing.T) {
	cfg := Config{
		StartingHandSize: 2,
		NoShuffle:        true,
		Seed:             1,
		MaxTurns:         1,
		Deck: deckFromDrawOrder(
			card(ColorWild, KindWild), num(ColorRed, 1), // p0
			num(ColorBlue, 1), num(ColorBlue, 2), // p1
			num(ColorGreen, 3), // starter
		),
	}
	s, outcome := runSession(t, cfg,
		Seat{Name: "a", Strategy: NewScripted("a").AddPlay(card(ColorWild, KindWild)).AddColor(Color(99))},
		Seat{Name: "b", Strategy: NewScripted("b")},
	)

	chosen := memLog(t, s).EventsOfType(log.EventColorChosen)
	if len(chosen) != 1 || chosen[0].Color != "Red" {
		t.Fatalf("color chosen events = %v, want one with Red", chosen)
	}
	if outcome.Faults != 1 {
		t.Errorf("faults = %d, want 1", outcome.Faults)
	}
}

func TestWildColorLocksMatching(t *testing.T) {
	cfg := Config{
		StartingHandSize: 2,
		NoShuffle:        true,
		Seed:             1,
		MaxTurns:         2,
		Deck: deckFromDrawOrder(
			card(ColorWild, KindWild), num(ColorRed, 1), // p0
			num(ColorGreen, 5), num(ColorBlue, 2), // p1
			num(ColorGreen, 3), // starter
		),
	}
	s, _ := runSession(t, cfg,
		Seat{Name: "a", Strategy: NewScripted("a").AddPlay(card(ColorWild, KindWild)).AddColor(ColorBlue)},
		Seat{Name: "b", Strategy: NewScripted("b")},
	)

	plays := memLog(t, s).EventsOfType(log.EventPlay)
	if len(plays) != 2 {
		t.Fatalf("play events = %d, want 2", len(plays))
	}
	if plays[1].Player != 1 || plays[1].Card != "Blue 2" {
		t.Errorf("second play = player %d card %q, want player 1 playing Blue 2 under the pinned color",
			plays[1].Player, plays[1].Card)
	}
}

func TestDeckExhaustedEndsByScore(t *testing.T) {
	cfg := Config{
		StartingHandSize: 1,
		NoShuffle:        true,
		Seed:             1,
		Deck: deckFromDrawOrder(
			num(ColorGreen, 5), // p0
			num(ColorGreen, 7), // p1
			num(ColorRed, 3),   // starter; nothing left to draw
		),
	}
	_, outcome := runSession(t, cfg,
		Seat{Name: "a", Strategy: NewScripted("a")},
		Seat{Name: "b", Strategy: NewScripted("b")},
	)

	if outcome.Reason != "deck exhausted" {
		t.Fatalf("reason = %q, want %q", outcome.Reason, "deck exhausted")
	}
	if outcome.Winner != 0 {
		t.Errorf("winner = %d, want 0 (5 points beats 7)", outcome.Winner)
	}
	if outcome.Scores[0] != 5 || outcome.Scores[1] != 7 {
		t.Errorf("scores = %v, want [5 7]", outcome.Scores)
	}
}

func TestFlipStarterSkipsWildAndActionCards(t *testing.T) {
	cfg := Config{
		StartingHandSize: 1,
		NoShuffle:        true,
		Seed:             1,
		Deck: deckFromDrawOrder(
			num(ColorRed, 5),  // p0
			num(ColorBlue, 7), // p1
			card(ColorWild, KindWild), // rejected starter
			card(ColorRed, KindSkip),  // rejected starter
			num(ColorGreen, 3),        // accepted starter
		),
	}
	s, err := NewSession(cfg, []Seat{
		{Name: "a", Strategy: NewScripted("a")},
		{Name: "b", Strategy: NewScripted("b")},
	})
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	if err := s.deal(); err != nil {
		t.Fatalf("deal: %v", err)
	}
	if err := s.flipStarter(); err != nil {
		t.Fatalf("flipStarter: %v", err)
	}

	if got := s.pile.top(); got != num(ColorGreen, 3) {
		t.Errorf("starter = %s, want Green 3", got)
	}
	if got := s.cardCount(); got != len(cfg.Deck) {
		t.Errorf("card count after flip = %d, want %d", got, len(cfg.Deck))
	}
}

func TestFullGamesConserveCardsAndTerminate(t *testing.T) {
	for seed := int64(1); seed <= 10; seed++ {
		s, err := NewSession(Config{Seed: seed}, []Seat{
			{Name: "a", Strategy: NewScripted("a")},
			{Name: "b", Strategy: NewScripted("b")},
			{Name: "c", Strategy: NewScripted("c")},
			{Name: "d", Strategy: NewScripted("d")},
		})
		if err != nil {
			t.Fatalf("seed %d: NewSession: %v", seed, err)
		}
		outcome, err := s.Run(context.Background())
		if err != nil {
			t.Fatalf("seed %d: Run: %v", seed, err)
		}
		if outcome.Turns > 1000 {
			t.Errorf("seed %d: %d turns exceeds the cutoff", seed, outcome.Turns)
		}
		if outcome.Winner < 0 || outcome.Winner > 3 {
			t.Errorf("seed %d: winner = %d out of range", seed, outcome.Winner)
		}
		if got := s.cardCount(); got != DeckSize {
			t.Errorf("seed %d: card count = %d, want %d", seed, got, DeckSize)
		}
	}
}

func TestSameSeedSameGame(t *testing.T) {
	run := func() *Outcome {
		_, outcome := runSession(t, Config{Seed: 42},
			Seat{Name: "a", Strategy: NewScripted("a")},
			Seat{Name: "b", Strategy: NewScripted("b")},
			Seat{Name: "c", Strategy: NewScripted("c")},
		)
		return outcome
	}
	first, second := run(), run()

	if first.Winner != second.Winner || first.Turns != second.Turns {
		t.Fatalf("replay diverged: %d in %d turns vs %d in %d turns",
			first.Winner, first.Turns, second.Winner, second.Turns)
	}
	for i := range first.Scores {
		if first.Scores[i] != second.Scores[i] {
			t.Errorf("scores diverged at seat %d: %d vs %d", i, first.Scores[i], second.Scores[i])
		}
	}
	if log.FormatAll(first.Log) != log.FormatAll(second.Log) {
		t.Error("event logs diverged between identical seeds")
	}
}

func TestNewSessionValidation(t *testing.T) {
	one := []Seat{{Name: "a", Strategy: NewScripted("a")}}
	if _, err := NewSession(Config{}, one); err == nil {
		t.Error("one seat accepted, want error")
	}

	var crowd []Seat
	for i := 0; i <= MaxPlayers; i++ {
		crowd = append(crowd, Seat{Name: "p", Strategy: NewScripted("p")})
	}
	if _, err := NewSession(Config{}, crowd); err == nil {
		t.Errorf("%d seats accepted, want error", len(crowd))
	}

	if _, err := NewSession(Config{}, []Seat{{Name: "a", Strategy: NewScripted("a")}, {Name: "b"}}); err == nil {
		t.Error("nil strategy accepted, want error")
	}
}
