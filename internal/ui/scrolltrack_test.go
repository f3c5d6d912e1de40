package ui

import (
	"strings"
	"testing"
	"time"

	"github.com/litescript/ls-cosmos/internal/nav"
)

func TestScrollTrackAnimateTo(t *testing.T) {
	s := NewScrollTrack(1000, 100*time.Millisecond)

	calls := 0
	s.AnimateTo(400, func() { calls++ })
	if !s.Animating() {
		t.Fatal("expected animation in flight")
	}

	s.Advance(50 * time.Millisecond)
	mid := s.Offset()
	if mid <= 0 || mid >= 400 {
		t.Errorf("mid-flight offset = %f, want between 0 and 400", mid)
	}
	// EaseOutQuad covers more than half the distance by the midpoint.
	if mid <= 200 {
		t.Errorf("mid-flight offset = %f, want > 200", mid)
	}
	if calls != 0 {
		t.Error("callback fired before landing")
	}

	s.Advance(50 * time.Millisecond)
	if s.Offset() != 400 {
		t.Errorf("offset = %f, want 400", s.Offset())
	}
	if calls != 1 {
		t.Errorf("callback fired %d times, want 1", calls)
	}

	s.Advance(50 * time.Millisecond)
	if calls != 1 {
		t.Errorf("callback fired again after landing")
	}
}

func TestScrollTrackSupersede(t *testing.T) {
	s := NewScrollTrack(5000, 100*time.Millisecond)

	var first, second int
	s.AnimateTo(2000, func() { first++ })
	s.Advance(40 * time.Millisecond)
	from := s.Offset()

	s.AnimateTo(500, func() { second++ })
	if s.Offset() != from {
		t.Errorf("supersede jumped offset: %f -> %f", from, s.Offset())
	}
	s.Advance(time.Second)

	if first != 0 {
		t.Error("superseded callback fired")
	}
	if second != 1 {
		t.Errorf("second callback fired %d times, want 1", second)
	}
	if s.Offset() != 500 {
		t.Errorf("offset = %f, want 500", s.Offset())
	}
}

func TestScrollTrackImmediate(t *testing.T) {
	tests := []struct {
		name     string
		duration time.Duration
		start    float64
		target   float64
		want     float64
	}{
		{"zero duration", 0, 0, 300, 300},
		{"already there", time.Second, 0, 0, 0},
		{"clamped high", 0, 0, 9999, 1000},
		{"clamped low", 0, 0, -50, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewScrollTrack(1000, tt.duration)
			done := false
			s.AnimateTo(tt.target, func() { done = true })
			if !done {
				t.Error("callback should fire synchronously")
			}
			if s.Animating() {
				t.Error("should not be animating")
			}
			if s.Offset() != tt.want {
				t.Errorf("offset = %f, want %f", s.Offset(), tt.want)
			}
		})
	}
}

func TestScrollTrackScrollBy(t *testing.T) {
	s := NewScrollTrack(1000, 100*time.Millisecond)

	if off, ok := s.ScrollBy(250); !ok || off != 250 {
		t.Errorf("ScrollBy(250) = %f, %v", off, ok)
	}
	if _, ok := s.ScrollBy(-500); !ok || s.Offset() != 0 {
		t.Errorf("ScrollBy should clamp at 0, got %f", s.Offset())
	}
	if _, ok := s.ScrollBy(-10); ok {
		t.Error("ScrollBy at the top should report no movement")
	}

	s.AnimateTo(800, nil)
	if _, ok := s.ScrollBy(100); ok {
		t.Error("ScrollBy should be ignored while animating")
	}
}

func TestScrollTrackView(t *testing.T) {
	s := NewScrollTrack(nav.DefaultLayout().TotalHeight(9), 0)
	s.AnimateTo(s.Max(), nil)

	got := s.View(80, nav.DefaultLayout(), 9)
	if !strings.Contains(got, "100%") {
		t.Errorf("View at end should show 100%%: %q", got)
	}
	if s.View(5, nav.DefaultLayout(), 9) != "" {
		t.Error("View should be empty when too narrow")
	}
}
