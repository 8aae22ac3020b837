package web

import (
	gamelog "github.com/peterkuimelis/unosim/internal/log"
)

// streamLogger is an EventLogger that retains the full log and forwards
// each event to a channel for live streaming. Log is only called from
// the session goroutine, so the sequence numbering needs no locking.
type streamLogger struct {
	mem    *gamelog.MemoryLogger
	events chan gamelog.GameEvent
}

func newStreamLogger() *streamLogger {
	return &streamLogger{
		mem:    gamelog.NewMemoryLogger(),
		events: make(chan gamelog.GameEvent, 64),
	}
}

func (l *streamLogger) Log(event gamelog.GameEvent) {
	l.mem.Log(event)
	l.events <- l.mem.LastEvent()
}

func (l *streamLogger) Events() []gamelog.GameEvent {
	return l.mem.Events()
}

func (l *streamLogger) close() {
	close(l.events)
}
