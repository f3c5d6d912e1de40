// Package nav owns "where the user is": the stop sequence state machine,
// the scroll layout arithmetic, and the controller that turns transitions
// into commands for the renderer, the holocard and the scroll track.
package nav

import (
	"errors"
	"fmt"
)

// BodyID identifies a navigable body. Order in the machine's body list
// defines the sequence.
type BodyID string

// Stop is one resolved (body, card) pair in the sequence.
type Stop struct {
	Index     int
	BodyIndex int
	Body      BodyID
	Card      int // 0 = focus only, 1..C-1 = panels revealed
}

// Position is either Home or a Stop.
type Position struct {
	home bool
	stop Stop
}

// Home is the overview position that precedes every stop.
func Home() Position {
	return Position{home: true}
}

// At returns the position for a resolved stop.
func At(s Stop) Position {
	return Position{stop: s}
}

// IsHome reports whether the position is the overview.
func (p Position) IsHome() bool {
	return p.home
}

// Stop returns the resolved stop. ok is false at Home.
func (p Position) Stop() (Stop, bool) {
	if p.home {
		return Stop{}, false
	}
	return p.stop, true
}

// Index returns the sequence index, -1 at Home.
func (p Position) Index() int {
	if p.home {
		return -1
	}
	return p.stop.Index
}

// String returns "home" or "body/card".
func (p Position) String() string {
	if p.home {
		return "home"
	}
	return fmt.Sprintf("%s/%d", p.stop.Body, p.stop.Card)
}

// Outcome tells a caller whether a transition did anything.
type Outcome int

const (
	// NoOp means the request would not change the position.
	NoOp Outcome = iota
	// Moved means the position changed and subscribers were notified.
	Moved
)

// String returns the outcome name.
func (o Outcome) String() string {
	switch o {
	case NoOp:
		return "noop"
	case Moved:
		return "moved"
	default:
		return "unknown"
	}
}

// Result is returned by every mutating operation. Position always holds
// the machine's position after the call, so a retreat from index 0 is
// {Moved, Home} while a retreat at Home is {NoOp, Home}.
type Result struct {
	Outcome  Outcome
	Position Position
}

// Changed reports whether the operation moved the machine.
func (r Result) Changed() bool {
	return r.Outcome == Moved
}

// Machine errors.
var (
	ErrNoBodies      = errors.New("nav: at least one body is required")
	ErrCardsPerBody  = errors.New("nav: cards per body must be at least 1")
	ErrDuplicateBody = errors.New("nav: duplicate body")
	ErrEmptyBodyID   = errors.New("nav: empty body id")
)

// Machine is the single source of truth for the active stop. It has no
// knowledge of rendering or scrolling. Position is written only by the
// methods below.
//
// A Machine is not safe for concurrent use; drive it from one event loop.
type Machine struct {
	bodies       []BodyID
	bodyIndex    map[BodyID]int
	cardsPerBody int
	total        int

	index int // -1 = Home

	subscribers []subscriber
	nextSubID   int
}

type subscriber struct {
	id int
	fn func(Position)
}

// NewMachine builds a machine over the ordered body list. The machine
// starts at Home.
func NewMachine(bodies []BodyID, cardsPerBody int) (*Machine, error) {
	if len(bodies) == 0 {
		return nil, ErrNoBodies
	}
	if cardsPerBody < 1 {
		return nil, ErrCardsPerBody
	}

	idx := make(map[BodyID]int, len(bodies))
	for i, b := range bodies {
		if b == "" {
			return nil, fmt.Errorf("%w at position %d", ErrEmptyBodyID, i)
		}
		if _, dup := idx[b]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateBody, b)
		}
		idx[b] = i
	}

	list := make([]BodyID, len(bodies))
	copy(list, bodies)

	return &Machine{
		bodies:       list,
		bodyIndex:    idx,
		cardsPerBody: cardsPerBody,
		total:        len(bodies) * cardsPerBody,
		index:        -1,
	}, nil
}

// Total returns the number of stops (bodies x cards).
func (m *Machine) Total() int {
	return m.total
}

// CardsPerBody returns C.
func (m *Machine) CardsPerBody() int {
	return m.cardsPerBody
}

// Bodies returns a copy of the ordered body list.
func (m *Machine) Bodies() []BodyID {
	out := make([]BodyID, len(m.bodies))
	copy(out, m.bodies)
	return out
}

// HasBody reports whether id is a known body.
func (m *Machine) HasBody(id BodyID) bool {
	_, ok := m.bodyIndex[id]
	return ok
}

// BodyIndex returns the position of id in the body list.
func (m *Machine) BodyIndex(id BodyID) (int, bool) {
	i, ok := m.bodyIndex[id]
	return i, ok
}

// Current returns Home or the active stop.
func (m *Machine) Current() Position {
	if m.index < 0 {
		return Home()
	}
	return At(m.stop(m.index))
}

// StopAt resolves a clamped index to its stop without moving the machine.
func (m *Machine) StopAt(i int) Stop {
	return m.stop(m.clampIndex(i))
}

// Advance moves one stop forward. It is a no-op at Home (leaving Home is
// an explicit jump) and at the last stop.
func (m *Machine) Advance() Result {
	if m.index < 0 || m.index >= m.total-1 {
		return m.noop()
	}
	return m.set(m.index + 1)
}

// Retreat moves one stop back. From index 0 it moves to Home; at Home it
// is a no-op.
func (m *Machine) Retreat() Result {
	if m.index < 0 {
		return m.noop()
	}
	return m.set(m.index - 1)
}

// JumpToIndex moves to i clamped into [0, Total-1].
func (m *Machine) JumpToIndex(i int) Result {
	c := m.clampIndex(i)
	if c == m.index {
		return m.noop()
	}
	return m.set(c)
}

// JumpToBodyCard moves to the given body and card. ok is false, and
// nothing happens, when the body is unknown. The card is clamped into
// [0, C-1].
func (m *Machine) JumpToBodyCard(body BodyID, card int) (res Result, ok bool) {
	i, ok := m.IndexFor(body, card)
	if !ok {
		return m.noop(), false
	}
	return m.JumpToIndex(i), true
}

// IndexFor returns the sequence index for a body and clamped card.
func (m *Machine) IndexFor(body BodyID, card int) (int, bool) {
	bi, ok := m.bodyIndex[body]
	if !ok {
		return -1, false
	}
	return bi*m.cardsPerBody + m.clampCard(card), true
}

// Reset moves to Home. Subscribers are notified only on an actual change.
func (m *Machine) Reset() Result {
	if m.index < 0 {
		return m.noop()
	}
	return m.set(-1)
}

// Subscribe registers fn to receive every position change, in
// registration order. The returned func removes the subscription.
func (m *Machine) Subscribe(fn func(Position)) (unsubscribe func()) {
	m.nextSubID++
	id := m.nextSubID
	m.subscribers = append(m.subscribers, subscriber{id: id, fn: fn})
	return func() {
		for i, s := range m.subscribers {
			if s.id == id {
				m.subscribers = append(m.subscribers[:i:i], m.subscribers[i+1:]...)
				return
			}
		}
	}
}

func (m *Machine) set(i int) Result {
	m.index = i
	pos := m.Current()
	// Copy so a subscriber that unsubscribes mid-notify doesn't skip a peer.
	subs := make([]subscriber, len(m.subscribers))
	copy(subs, m.subscribers)
	for _, s := range subs {
		s.fn(pos)
	}
	return Result{Outcome: Moved, Position: pos}
}

func (m *Machine) noop() Result {
	return Result{Outcome: NoOp, Position: m.Current()}
}

func (m *Machine) stop(i int) Stop {
	bi := i / m.cardsPerBody
	return Stop{
		Index:     i,
		BodyIndex: bi,
		Body:      m.bodies[bi],
		Card:      i % m.cardsPerBody,
	}
}

func (m *Machine) clampIndex(i int) int {
	return clamp(i, 0, m.total-1)
}

func (m *Machine) clampCard(c int) int {
	return clamp(c, 0, m.cardsPerBody-1)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
