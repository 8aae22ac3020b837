package log

// EventType enumerates all observable game events.
type EventType int

const (
	EventGameStart EventType = iota
	EventTurnStart
	EventDraw
	EventForcedDraw
	EventPlay
	EventColorChosen
	EventDrawPenalty
	EventUnoCalled
	EventUnoPenalty
	EventStrategyFault
	EventReshuffle
	EventWin
)

func (e EventType) String() string {
	switch e {
	case EventGameStart:
		return "GameStart"
	case EventTurnStart:
		return "TurnStart"
	case EventDraw:
		return "Draw"
	case EventForcedDraw:
		return "ForcedDraw"
	case EventPlay:
		return "Play"
	case EventColorChosen:
		return "ColorChosen"
	case EventDrawPenalty:
		return "DrawPenalty"
	case EventUnoCalled:
		return "UnoCalled"
	case EventUnoPenalty:
		return "UnoPenalty"
	case EventStrategyFault:
		return "StrategyFault"
	case EventReshuffle:
		return "Reshuffle"
	case EventWin:
		return "Win"
	default:
		return "Unknown"
	}
}

// GameEvent is a single observable event in a game. The fields beyond
// Type are filled as applicable: Card for plays, Color for wild choices,
// Count for draw amounts. Details is the human-readable line; it ends
// with the resulting turn context for play events so the log alone
// reconstructs the public game state.
type GameEvent struct {
	Seq     int       `json:"seq"`            // monotonic sequence number
	Turn    int       `json:"turn"`           // 1-based turn counter
	Player  int       `json:"player"`         // acting seat, -1 when none
	Type    EventType `json:"-"`              // event type
	Kind    string    `json:"type"`           // event type name, for JSON consumers
	Card    string    `json:"card,omitempty"` // card involved, if any
	Color   string    `json:"color,omitempty"`
	Count   int       `json:"count,omitempty"`
	Details string    `json:"details"`
}
