package log

import (
	"fmt"
	"io"
	"strings"
)

// EventLogger is the interface for logging game events.
type EventLogger interface {
	Log(event GameEvent)
	Events() []GameEvent
}

// --- MemoryLogger: stores events in memory for outcomes and tests ---

type MemoryLogger struct {
	events []GameEvent
	seq    int
}

func NewMemoryLogger() *MemoryLogger {
	return &MemoryLogger{}
}

func (l *MemoryLogger) Log(event GameEvent) {
	l.seq++
	event.Seq = l.seq
	event.Kind = event.Type.String()
	l.events = append(l.events, event)
}

func (l *MemoryLogger) Events() []GameEvent {
	return l.events
}

// EventsOfType returns all events matching the given type.
func (l *MemoryLogger) EventsOfType(t EventType) []GameEvent {
	var result []GameEvent
	for _, e := range l.events {
		if e.Type == t {
			result = append(result, e)
		}
	}
	return result
}

// LastEvent returns the most recent event, or a zero event if none.
func (l *MemoryLogger) LastEvent() GameEvent {
	if len(l.events) == 0 {
		return GameEvent{}
	}
	return l.events[len(l.events)-1]
}

// --- TextLogger: writes human-readable lines to an io.Writer ---

type TextLogger struct {
	MemoryLogger
	w io.Writer
}

func NewTextLogger(w io.Writer) *TextLogger {
	return &TextLogger{w: w}
}

func (l *TextLogger) Log(event GameEvent) {
	l.MemoryLogger.Log(event)
	fmt.Fprintln(l.w, FormatEvent(l.MemoryLogger.LastEvent()))
}

// --- Formatting ---

// playerName returns "P1", "P2", ... for display.
func playerName(p int) string {
	return fmt.Sprintf("P%d", p+1)
}

// FormatEvent formats a single event as a human-readable line.
func FormatEvent(e GameEvent) string {
	return fmt.Sprintf("T%-3d %-14s| %s", e.Turn, e.Type, e.Details)
}

// FormatAll formats all events as a multi-line string.
func FormatAll(events []GameEvent) string {
	var sb strings.Builder
	for _, e := range events {
		sb.WriteString(FormatEvent(e))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// --- Helper constructors for common events ---

func NewGameStartEvent(names []string, seed int64) GameEvent {
	return GameEvent{
		Player:  -1,
		Type:    EventGameStart,
		Details: fmt.Sprintf("game start: %s (seed %d)", strings.Join(names, ", "), seed),
	}
}

func NewTurnStartEvent(turn, player, handSize int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Player:  player,
		Type:    EventTurnStart,
		Count:   handSize,
		Details: fmt.Sprintf("=== Turn %d (%s, %d cards) ===", turn, playerName(player), handSize),
	}
}

func NewDrawEvent(turn, player, n int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Player:  player,
		Type:    EventDraw,
		Count:   n,
		Details: fmt.Sprintf("%s draws %d", playerName(player), n),
	}
}

func NewForcedDrawEvent(turn, player int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Player:  player,
		Type:    EventForcedDraw,
		Count:   1,
		Details: fmt.Sprintf("%s has no legal move and draws 1", playerName(player)),
	}
}

func NewPlayEvent(turn, player int, card, summary string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Player:  player,
		Type:    EventPlay,
		Card:    card,
		Details: fmt.Sprintf("%s plays %s [%s]", playerName(player), card, summary),
	}
}

func NewColorChosenEvent(turn, player int, color string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Player:  player,
		Type:    EventColorChosen,
		Color:   color,
		Details: fmt.Sprintf("%s chooses %s", playerName(player), color),
	}
}

func NewDrawPenaltyEvent(turn, player, n int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Player:  player,
		Type:    EventDrawPenalty,
		Count:   n,
		Details: fmt.Sprintf("%s draws %d and forfeits the turn", playerName(player), n),
	}
}

func NewUnoCalledEvent(turn, player int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Player:  player,
		Type:    EventUnoCalled,
		Details: fmt.Sprintf("%s calls UNO", playerName(player)),
	}
}

func NewUnoPenaltyEvent(turn, player, n int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Player:  player,
		Type:    EventUnoPenalty,
		Count:   n,
		Details: fmt.Sprintf("%s missed the UNO call and draws %d", playerName(player), n),
	}
}

func NewStrategyFaultEvent(turn, player int, reason string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Player:  player,
		Type:    EventStrategyFault,
		Details: fmt.Sprintf("%s strategy fault: %s", playerName(player), reason),
	}
}

func NewReshuffleEvent(turn, moved int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Player:  -1,
		Type:    EventReshuffle,
		Count:   moved,
		Details: fmt.Sprintf("draw pile empty: reshuffled %d discards", moved),
	}
}

func NewWinEvent(turn, winner int, name, reason string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Player:  winner,
		Type:    EventWin,
		Details: fmt.Sprintf("%s (%s) wins (%s)", playerName(winner), name, reason),
	}
}
