package journal

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/litescript/ls-cosmos/internal/nav"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newMachine(t *testing.T) *nav.Machine {
	t.Helper()
	m, err := nav.NewMachine([]nav.BodyID{"earth", "sun", "moon"}, 4)
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func TestNew(t *testing.T) {
	j := New(DefaultConfig())

	snap := j.Snapshot()
	if !snap.Current.IsHome() {
		t.Errorf("Current = %s, want home", snap.Current)
	}
	if len(snap.Events) != 0 {
		t.Errorf("Events = %v, want none", snap.Events)
	}
}

func TestRecordEventTypes(t *testing.T) {
	clock := &fakeClock{now: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)}
	j := New(Config{MaxEvents: 10, Clock: clock.Now})
	m := newMachine(t)
	j.Attach(m)

	m.JumpToIndex(0) // earth/0
	m.Advance()      // earth/1
	m.JumpToIndex(4) // sun/0
	m.Reset()

	want := []EventType{EventArrive, EventAdvance, EventArrive, EventHome}
	got := j.Recent(10)
	if len(got) != len(want) {
		t.Fatalf("events = %v, want %d", got, len(want))
	}
	for i, w := range want {
		if got[i].Type != w {
			t.Errorf("event %d = %s, want %s", i, got[i].Type, w)
		}
	}
	if got[2].Body != "sun" || got[2].Index != 4 {
		t.Errorf("arrive event = %+v", got[2])
	}
	if got[3].Index != -1 {
		t.Errorf("home event index = %d", got[3].Index)
	}
}

func TestVisitsAndDwell(t *testing.T) {
	clock := &fakeClock{now: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)}
	j := New(Config{Clock: clock.Now})
	m := newMachine(t)
	j.Attach(m)

	m.JumpToBodyCard("earth", 0)
	clock.Advance(10 * time.Second)
	m.Advance()
	clock.Advance(5 * time.Second)
	m.JumpToBodyCard("sun", 0)
	clock.Advance(3 * time.Second)
	m.JumpToBodyCard("earth", 2)
	clock.Advance(2 * time.Second)

	if got := j.Visits("earth"); got != 2 {
		t.Errorf("Visits(earth) = %d, want 2", got)
	}
	if got := j.Visits("moon"); got != 0 {
		t.Errorf("Visits(moon) = %d, want 0", got)
	}

	snap := j.Snapshot()
	if snap.Bodies[0].Body != "earth" {
		t.Fatalf("most visited = %s, want earth", snap.Bodies[0].Body)
	}
	// 15s closed + 2s open.
	if snap.Bodies[0].Dwell != 17*time.Second {
		t.Errorf("earth dwell = %v, want 17s", snap.Bodies[0].Dwell)
	}
	if snap.Bodies[1].Dwell != 3*time.Second {
		t.Errorf("sun dwell = %v, want 3s", snap.Bodies[1].Dwell)
	}
}

func TestRingBufferOrder(t *testing.T) {
	clock := &fakeClock{now: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)}
	j := New(Config{MaxEvents: 3, Clock: clock.Now})
	m := newMachine(t)
	j.Attach(m)

	for i := 0; i < 6; i++ {
		clock.Advance(time.Second)
		m.JumpToIndex(i)
	}

	got := j.Snapshot().Events
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	for i, e := range got {
		if e.Index != i+3 {
			t.Errorf("event %d index = %d, want %d", i, e.Index, i+3)
		}
		if i > 0 && !e.Timestamp.After(got[i-1].Timestamp) {
			t.Errorf("events out of order at %d", i)
		}
	}

	if r := j.Recent(1); len(r) != 1 || r[0].Index != 5 {
		t.Errorf("Recent(1) = %v", r)
	}
	if r := j.Recent(-1); len(r) != 0 {
		t.Errorf("Recent(-1) = %v", r)
	}
}

func TestConcurrentAccess(t *testing.T) {
	j := New(DefaultConfig())

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for k := 0; k < 100; k++ {
				body := nav.BodyID(fmt.Sprintf("b%d", k%3))
				j.Record(nav.At(nav.Stop{Index: k, Body: body, Card: k % 4}))
				_ = j.Snapshot()
				_ = j.Recent(5)
			}
		}(i)
	}
	wg.Wait()

	if n := len(j.Snapshot().Events); n != 50 {
		t.Errorf("events = %d, want 50", n)
	}
}
