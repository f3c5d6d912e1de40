// Package journal keeps a thread-safe record of navigation: a ring buffer
// of events plus per-body visit counts and dwell time.
package journal

import (
	"sort"
	"sync"
	"time"

	"github.com/litescript/ls-cosmos/internal/nav"
)

// EventType represents the kind of navigation change.
type EventType string

const (
	EventArrive  EventType = "ARRIVE"  // entered a new body
	EventAdvance EventType = "ADVANCE" // card changed within a body
	EventHome    EventType = "HOME"    // returned to the overview
)

// Event is one recorded transition.
type Event struct {
	Type      EventType  `json:"type"`
	Timestamp time.Time  `json:"timestamp"`
	Body      nav.BodyID `json:"body,omitempty"`
	Card      int        `json:"card"`
	Index     int        `json:"index"`
}

// BodyStats aggregates time spent on one body.
type BodyStats struct {
	Body   nav.BodyID
	Visits int
	Dwell  time.Duration
}

// Config holds configuration for the journal.
type Config struct {
	MaxEvents int
	Clock     func() time.Time
}

// DefaultConfig returns sensible default configuration.
func DefaultConfig() Config {
	return Config{
		MaxEvents: 50,
		Clock:     time.Now,
	}
}

// Journal records positions reported by a machine.
type Journal struct {
	mu sync.RWMutex

	clock func() time.Time

	current    nav.Position
	enteredAt  time.Time // when current body was entered
	lastChange time.Time

	events       []Event
	maxEvents    int
	eventWriteAt int

	stats map[nav.BodyID]*BodyStats
}

// New creates a journal positioned at Home.
func New(cfg Config) *Journal {
	maxEvents := cfg.MaxEvents
	if maxEvents <= 0 {
		maxEvents = 50
	}
	clock := cfg.Clock
	if clock == nil {
		clock = time.Now
	}
	return &Journal{
		clock:     clock,
		current:   nav.Home(),
		maxEvents: maxEvents,
		events:    make([]Event, 0, maxEvents),
		stats:     make(map[nav.BodyID]*BodyStats),
	}
}

// Attach subscribes the journal to m and returns the unsubscribe func.
func (j *Journal) Attach(m *nav.Machine) func() {
	return m.Subscribe(j.Record)
}

// Record logs a transition to pos.
func (j *Journal) Record(pos nav.Position) {
	j.mu.Lock()
	defer j.mu.Unlock()

	now := j.clock()
	prev, wasStop := j.current.Stop()
	stop, isStop := pos.Stop()

	switch {
	case !isStop:
		if wasStop {
			j.closeDwell(prev.Body, now)
		}
		j.addEvent(Event{Type: EventHome, Timestamp: now, Index: -1})
	case !wasStop || prev.Body != stop.Body:
		if wasStop {
			j.closeDwell(prev.Body, now)
		}
		st := j.statsFor(stop.Body)
		st.Visits++
		j.enteredAt = now
		j.addEvent(Event{Type: EventArrive, Timestamp: now, Body: stop.Body, Card: stop.Card, Index: stop.Index})
	default:
		j.addEvent(Event{Type: EventAdvance, Timestamp: now, Body: stop.Body, Card: stop.Card, Index: stop.Index})
	}

	j.current = pos
	j.lastChange = now
}

func (j *Journal) statsFor(body nav.BodyID) *BodyStats {
	st, ok := j.stats[body]
	if !ok {
		st = &BodyStats{Body: body}
		j.stats[body] = st
	}
	return st
}

func (j *Journal) closeDwell(body nav.BodyID, now time.Time) {
	if j.enteredAt.IsZero() {
		return
	}
	j.statsFor(body).Dwell += now.Sub(j.enteredAt)
	j.enteredAt = time.Time{}
}

// addEvent adds an event to the ring buffer.
func (j *Journal) addEvent(e Event) {
	if len(j.events) < j.maxEvents {
		j.events = append(j.events, e)
	} else {
		j.events[j.eventWriteAt] = e
		j.eventWriteAt = (j.eventWriteAt + 1) % j.maxEvents
	}
}

// Snapshot represents an immutable snapshot of the journal.
type Snapshot struct {
	Current    nav.Position
	LastChange time.Time
	Events     []Event
	Bodies     []BodyStats // most visited first
}

// Snapshot returns a consistent copy of the journal.
func (j *Journal) Snapshot() Snapshot {
	j.mu.RLock()
	defer j.mu.RUnlock()

	now := j.clock()
	bodies := make([]BodyStats, 0, len(j.stats))
	for _, st := range j.stats {
		s := *st
		// Include the open visit.
		if cur, ok := j.current.Stop(); ok && cur.Body == s.Body && !j.enteredAt.IsZero() {
			s.Dwell += now.Sub(j.enteredAt)
		}
		bodies = append(bodies, s)
	}
	sort.Slice(bodies, func(a, b int) bool {
		if bodies[a].Visits != bodies[b].Visits {
			return bodies[a].Visits > bodies[b].Visits
		}
		return bodies[a].Body < bodies[b].Body
	})

	return Snapshot{
		Current:    j.current,
		LastChange: j.lastChange,
		Events:     j.getEventsOrdered(),
		Bodies:     bodies,
	}
}

// getEventsOrdered returns events in chronological order.
func (j *Journal) getEventsOrdered() []Event {
	if len(j.events) == 0 {
		return nil
	}

	if len(j.events) < j.maxEvents {
		result := make([]Event, len(j.events))
		copy(result, j.events)
		return result
	}

	// Ring buffer is full, reorder from oldest to newest
	result := make([]Event, j.maxEvents)
	for i := 0; i < j.maxEvents; i++ {
		idx := (j.eventWriteAt + i) % j.maxEvents
		result[i] = j.events[idx]
	}
	return result
}

// Recent returns the last n events.
func (j *Journal) Recent(n int) []Event {
	j.mu.RLock()
	defer j.mu.RUnlock()

	all := j.getEventsOrdered()
	if n < 0 {
		n = 0
	}
	if len(all) <= n {
		return all
	}
	return all[len(all)-n:]
}

// Visits returns how many times body was entered.
func (j *Journal) Visits(body nav.BodyID) int {
	j.mu.RLock()
	defer j.mu.RUnlock()
	if st, ok := j.stats[body]; ok {
		return st.Visits
	}
	return 0
}
