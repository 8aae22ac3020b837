package game

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/peterkuimelis/unosim/internal/log"
)

// Config holds the house rules and setup knobs for one session.
type Config struct {
	// Stacking lets a DrawTwo/WildDrawFour recipient answer with a draw
	// card of their own, passing the accumulated obligation onward.
	Stacking bool

	// UnoPenalty enables the missed-UNO-call house rule; UnoPenaltyDraw is
	// the number of penalty cards (default 4).
	UnoPenalty     bool
	UnoPenaltyDraw int

	// StartingHandSize is the deal size (default 7).
	StartingHandSize int

	// MaxTurns cuts the game off and scores the hands (default 1000).
	MaxTurns int

	// Seed drives all shuffling (0 for a time-based seed).
	Seed int64

	// NoReverseSkip disables the house rule that makes a Reverse act as a
	// Skip in two-player games.
	NoReverseSkip bool

	// Deck overrides the standard 108-card draw pile; top is the last
	// element. For scenario tests only.
	Deck []Card

	// NoShuffle skips the initial shuffle (deterministic tests).
	NoShuffle bool

	// Logger receives the turn log. Nil gets a MemoryLogger.
	Logger log.EventLogger
}

// Outcome is the terminal record of one session.
type Outcome struct {
	Winner     int    `json:"winner"` // winning seat, -1 when none
	WinnerName string `json:"winnerName"`
	Scores     []int  `json:"scores"` // per-seat hand points at game end
	Turns      int    `json:"turns"`
	Reason     string `json:"reason"`
	Faults     int    `json:"faults"` // corrected strategy faults
	Seed       int64  `json:"seed"`
	Log        []log.GameEvent `json:"-"`
}

// Session runs one game from deal to outcome. All state is owned by the
// session; nothing is shared across sessions, so independent games may
// run concurrently.
type Session struct {
	cfg     Config
	players []*Player
	pile    *pile
	logger  log.EventLogger
	ctx     context.Context

	current     int
	direction   Direction
	forcedColor Color
	pendingDraw int
	skipNext    bool
	turn        int
	faults      int

	over    bool
	outcome *Outcome
}

// NewSession seats the given players in turn order and prepares a game
// under the config. Seat 0 acts first.
func NewSession(cfg Config, seats []Seat) (*Session, error) {
	if len(seats) < 2 {
		return nil, fmt.Errorf("need at least 2 players, got %d", len(seats))
	}
	if len(seats) > MaxPlayers {
		return nil, fmt.Errorf("at most %d players, got %d", MaxPlayers, len(seats))
	}
	for i, seat := range seats {
		if seat.Strategy == nil {
			return nil, fmt.Errorf("seat %d (%s) has no strategy", i, seat.Name)
		}
	}

	if cfg.StartingHandSize == 0 {
		cfg.StartingHandSize = 7
	}
	if cfg.UnoPenaltyDraw == 0 {
		cfg.UnoPenaltyDraw = 4
	}
	if cfg.MaxTurns == 0 {
		cfg.MaxTurns = 1000
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewMemoryLogger()
	}

	deck := cfg.Deck
	if deck == nil {
		deck = NewStandardDeck()
	}
	if want := len(seats)*cfg.StartingHandSize + 1; len(deck) < want {
		return nil, fmt.Errorf("deck of %d cards cannot deal %d to %d players", len(deck), cfg.StartingHandSize, len(seats))
	}

	s := &Session{
		cfg:         cfg,
		logger:      logger,
		direction:   Clockwise,
		forcedColor: ColorWild,
	}
	s.pile = newPile(deck, rand.New(rand.NewSource(cfg.Seed)))
	s.pile.onReshuffle = func(moved int) {
		s.log(log.NewReshuffleEvent(s.turn, moved))
	}
	for i, seat := range seats {
		s.players = append(s.players, &Player{
			Name:     seat.Name,
			Seat:     i,
			strategy: seat.Strategy,
		})
	}
	return s, nil
}

// SeatNames returns the player names in seat order.
func (s *Session) SeatNames() []string {
	names := make([]string, len(s.players))
	for i, p := range s.players {
		names[i] = p.Name
	}
	return names
}

// Logger returns the session's event logger.
func (s *Session) Logger() log.EventLogger {
	return s.logger
}

// Run plays the game to completion: shuffle, deal, starter flip, then the
// turn loop until a hand empties or a cutoff ends the game by score. The
// context is checked at turn boundaries only; cancelling abandons the
// game without affecting any other session.
func (s *Session) Run(ctx context.Context) (*Outcome, error) {
	s.ctx = ctx

	if !s.cfg.NoShuffle {
		s.pile.shuffle()
	}
	s.log(log.NewGameStartEvent(s.SeatNames(), s.cfg.Seed))

	if err := s.deal(); err != nil {
		return nil, err
	}
	if err := s.flipStarter(); err != nil {
		return nil, err
	}

	for !s.over {
		if err := s.ctx.Err(); err != nil {
			return nil, err
		}
		if s.turn >= s.cfg.MaxTurns {
			s.endByScore("turn limit reached")
			break
		}
		if err := s.runTurn(); err != nil {
			return nil, err
		}
	}
	return s.outcome, nil
}

// deal gives each player their starting hand.
func (s *Session) deal() error {
	for _, p := range s.players {
		cards, err := s.pile.drawN(s.cfg.StartingHandSize)
		if err != nil {
			return fmt.Errorf("deal to %s: %w", p.Name, err)
		}
		p.Hand.Add(cards...)
	}
	return nil
}

// flipStarter turns up the first discard. Wild and action cards go back
// to the bottom of the pile (reshuffled unless NoShuffle) until a number
// card comes up, so the opening turn never resolves an effect.
func (s *Session) flipStarter() error {
	for tries := 0; tries < DeckSize; tries++ {
		c, err := s.pile.drawOne()
		if err != nil {
			return fmt.Errorf("flip starter: %w", err)
		}
		if c.Kind.IsNumber() {
			s.pile.placeDiscard(c)
			return nil
		}
		s.pile.putBottom(c)
		if !s.cfg.NoShuffle {
			s.pile.shuffle()
		}
	}
	return fmt.Errorf("flip starter: no number card in deck")
}

// runTurn executes one turn for the current player.
func (s *Session) runTurn() error {
	s.turn++
	p := s.players[s.current]
	s.log(log.NewTurnStartEvent(s.turn, p.Seat, p.Hand.Size()))

	// Missed UNO call from the previous round of turns.
	if s.cfg.UnoPenalty && p.pendingUno {
		p.pendingUno = false
		drawn := s.drawToHand(p, s.cfg.UnoPenaltyDraw)
		s.log(log.NewUnoPenaltyEvent(s.turn, p.Seat, drawn))
		if s.over {
			return nil
		}
	}

	// A draw obligation left by the previous player's DrawTwo/WildDrawFour.
	if s.pendingDraw > 0 {
		return s.resolveDrawObligation(p)
	}

	legal := LegalMoves(p.Hand, s.pile.top(), s.forcedColor)
	if len(legal) == 0 {
		s.drawToHand(p, 1)
		s.log(log.NewForcedDrawEvent(s.turn, p.Seat))
		if !s.over {
			s.advance()
		}
		return nil
	}

	action, err := p.strategy.ChooseAction(s.ctx, s.viewFor(p.Seat, legal))
	if err != nil {
		s.fault(p, fmt.Sprintf("choose action: %v", err))
		action = DrawCard()
	} else if action.Type == ActionPlay && !cardIn(legal, action.Card) {
		s.fault(p, fmt.Sprintf("illegal play of %s on %s", action.Card, s.pile.top()))
		action = DrawCard()
	}

	if action.Type == ActionDraw {
		drawn := s.drawToHand(p, 1)
		s.log(log.NewDrawEvent(s.turn, p.Seat, drawn))
		if !s.over {
			s.advance()
		}
		return nil
	}

	if err := s.playCard(p, action.Card); err != nil {
		return err
	}
	if !s.over {
		s.advance()
	}
	return nil
}

// resolveDrawObligation handles a turn that starts under a pending draw
// count. With stacking on and a stackable card in hand the player may
// pass the obligation onward; otherwise they draw it all and forfeit the
// turn.
func (s *Session) resolveDrawObligation(p *Player) error {
	if s.cfg.Stacking {
		if stack := StackableMoves(p.Hand); len(stack) > 0 {
			action, err := p.strategy.ChooseAction(s.ctx, s.viewFor(p.Seat, stack))
			if err != nil {
				s.fault(p, fmt.Sprintf("choose action: %v", err))
			} else if action.Type == ActionPlay {
				if !cardIn(stack, action.Card) {
					s.fault(p, fmt.Sprintf("cannot answer +%d with %s", s.pendingDraw, action.Card))
				} else {
					if err := s.playCard(p, action.Card); err != nil {
						return err
					}
					if !s.over {
						s.advance()
					}
					return nil
				}
			}
			// Declining the stack (or faulting) falls through to the draw.
		}
	}

	count := s.pendingDraw
	s.pendingDraw = 0
	drawn := s.drawToHand(p, count)
	s.log(log.NewDrawPenaltyEvent(s.turn, p.Seat, drawn))
	if !s.over {
		s.advance()
	}
	return nil
}

// playCard moves the card from hand to discard, resolves its effect, and
// runs the win / UNO checks. Card-not-in-hand here is an engine bug and
// aborts the session.
func (s *Session) playCard(p *Player, c Card) error {
	if err := p.Hand.Remove(c); err != nil {
		return fmt.Errorf("%s playing %s: %w", p.Name, c, err)
	}
	s.pile.placeDiscard(c)

	eff := resolveEffect(c.Kind, len(s.players), !s.cfg.NoReverseSkip)
	if eff.needsColor {
		s.forcedColor = s.chooseColor(p, c)
		s.log(log.NewColorChosenEvent(s.turn, p.Seat, s.forcedColor.String()))
	} else if eff.clearsColor {
		s.forcedColor = ColorWild
	}
	if eff.reverse {
		s.direction = s.direction.Reversed()
	}
	if eff.skipNext {
		s.skipNext = true
	}
	if eff.addPending > 0 {
		s.pendingDraw += eff.addPending
	}

	s.log(log.NewPlayEvent(s.turn, p.Seat, c.String(), s.contextSummary(p)))

	if p.Hand.Size() == 0 {
		s.finish(p.Seat, "emptied hand")
		return nil
	}
	if p.Hand.Size() == 1 {
		s.checkUnoCall(p)
	}
	return nil
}

// chooseColor asks the player for the wild color, correcting a faulty
// answer to red.
func (s *Session) chooseColor(p *Player, wild Card) Color {
	color, err := p.strategy.ChooseColor(s.ctx, s.viewFor(p.Seat, nil), wild)
	if err != nil {
		s.fault(p, fmt.Sprintf("choose color: %v", err))
		return ColorRed
	}
	if color == ColorWild || color < ColorWild || color > ColorBlue {
		s.fault(p, fmt.Sprintf("invalid color choice %d", int(color)))
		return ColorRed
	}
	return color
}

// checkUnoCall asks a player down to one card whether they call UNO. A
// missed call is penalized at the start of their next turn.
func (s *Session) checkUnoCall(p *Player) {
	said, err := p.strategy.SayUno(s.ctx, s.viewFor(p.Seat, nil))
	if err != nil {
		s.fault(p, fmt.Sprintf("say uno: %v", err))
		said = false
	}
	if said {
		s.log(log.NewUnoCalledEvent(s.turn, p.Seat))
		return
	}
	if s.cfg.UnoPenalty {
		p.pendingUno = true
	}
}

// drawToHand draws n cards into the player's hand and returns how many
// arrived. Exhaustion of both piles ends the game by score.
func (s *Session) drawToHand(p *Player, n int) int {
	cards, err := s.pile.drawN(n)
	p.Hand.Add(cards...)
	if err != nil {
		s.endByScore("deck exhausted")
	}
	return len(cards)
}

// advance moves to the next player in the current direction, stepping
// twice when a skip is armed.
func (s *Session) advance() {
	n := len(s.players)
	s.current = (s.current + int(s.direction) + n) % n
	if s.skipNext {
		s.skipNext = false
		s.current = (s.current + int(s.direction) + n) % n
	}
}

// finish records a win by emptied hand. Losers score their own hand
// points.
func (s *Session) finish(winner int, reason string) {
	scores := make([]int, len(s.players))
	for i, p := range s.players {
		scores[i] = p.Hand.PointValue()
	}
	s.conclude(winner, scores, reason)
}

// endByScore ends a cut-off game: lowest hand points wins, ties broken by
// fewer cards, then by lowest seat so outcomes stay deterministic.
func (s *Session) endByScore(reason string) {
	if s.over {
		return
	}
	scores := make([]int, len(s.players))
	winner := 0
	for i, p := range s.players {
		scores[i] = p.Hand.PointValue()
		better := scores[i] < scores[winner] ||
			(scores[i] == scores[winner] && p.Hand.Size() < s.players[winner].Hand.Size())
		if i > 0 && better {
			winner = i
		}
	}
	s.conclude(winner, scores, reason)
}

func (s *Session) conclude(winner int, scores []int, reason string) {
	s.over = true
	s.log(log.NewWinEvent(s.turn, winner, s.players[winner].Name, reason))
	s.outcome = &Outcome{
		Winner:     winner,
		WinnerName: s.players[winner].Name,
		Scores:     scores,
		Turns:      s.turn,
		Reason:     reason,
		Faults:     s.faults,
		Seed:       s.cfg.Seed,
		Log:        s.logger.Events(),
	}
}

// fault records a corrected strategy fault.
func (s *Session) fault(p *Player, reason string) {
	s.faults++
	s.log(log.NewStrategyFaultEvent(s.turn, p.Seat, reason))
}

// contextSummary renders the public turn context after a play, for the
// event log.
func (s *Session) contextSummary(p *Player) string {
	active := s.forcedColor
	if active == ColorWild {
		active = s.pile.top().Color
	}
	return fmt.Sprintf("top=%s color=%s dir=%s pending=%d hand=%d",
		s.pile.top(), active, s.direction, s.pendingDraw, p.Hand.Size())
}

func (s *Session) log(e log.GameEvent) {
	s.logger.Log(e)
}

// cardCount returns the total cards across both piles and all hands; the
// conservation invariant keeps it equal to the deck size for the life of
// the session.
func (s *Session) cardCount() int {
	draw, discard := s.pile.counts()
	total := draw + discard
	for _, p := range s.players {
		total += p.Hand.Size()
	}
	return total
}

func cardIn(cards []Card, c Card) bool {
	for _, held := range cards {
		if held == c {
			return true
		}
	}
	return false
}
