package ui

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-cosmos/internal/cosmos"
	"github.com/litescript/ls-cosmos/internal/nav"
)

// DefaultScrollTime is how long a programmatic scroll takes.
const DefaultScrollTime = 600 * time.Millisecond

// ScrollTrack is the terminal stand-in for the page's scroll position. It
// implements nav.Scroller: programmatic scrolls ease toward their target on
// animation ticks, while ScrollBy moves it directly for wheel input.
type ScrollTrack struct {
	offset   float64
	max      float64
	duration time.Duration

	from, to   float64
	elapsed    time.Duration
	animating  bool
	onComplete func()
}

// NewScrollTrack returns a track spanning [0, extent].
func NewScrollTrack(extent float64, duration time.Duration) *ScrollTrack {
	if duration < 0 {
		duration = 0
	}
	return &ScrollTrack{max: math.Max(0, extent), duration: duration}
}

// AnimateTo starts a scroll to offset. A scroll already in flight is
// superseded from the current offset and its callback is dropped.
func (s *ScrollTrack) AnimateTo(offset float64, onComplete func()) {
	s.from = s.offset
	s.to = s.clamp(offset)
	s.elapsed = 0
	s.onComplete = onComplete
	s.animating = true

	if s.duration == 0 || s.from == s.to {
		s.finish()
	}
}

// Advance moves an animation forward by dt, firing the completion
// callback when it lands.
func (s *ScrollTrack) Advance(dt time.Duration) {
	if !s.animating {
		return
	}
	s.elapsed += dt
	if s.elapsed >= s.duration {
		s.finish()
		return
	}
	t := cosmos.EaseOutQuad(float64(s.elapsed) / float64(s.duration))
	s.offset = s.from + (s.to-s.from)*t
}

func (s *ScrollTrack) finish() {
	s.offset = s.to
	s.animating = false
	cb := s.onComplete
	s.onComplete = nil
	if cb != nil {
		cb()
	}
}

// ScrollBy moves the track by delta the way a wheel notch would. It is
// ignored while a programmatic scroll is animating.
func (s *ScrollTrack) ScrollBy(delta float64) (float64, bool) {
	if s.animating {
		return s.offset, false
	}
	next := s.clamp(s.offset + delta)
	if next == s.offset {
		return s.offset, false
	}
	s.offset = next
	return s.offset, true
}

// Offset returns the current scroll offset.
func (s *ScrollTrack) Offset() float64 {
	return s.offset
}

// Max returns the largest reachable offset.
func (s *ScrollTrack) Max() float64 {
	return s.max
}

// Animating reports whether a programmatic scroll is in flight.
func (s *ScrollTrack) Animating() bool {
	return s.animating
}

func (s *ScrollTrack) clamp(v float64) float64 {
	return math.Max(0, math.Min(s.max, v))
}

// View renders the track as a one-line gauge with a tick at the start of
// every body's pinned region.
func (s *ScrollTrack) View(width int, layout nav.Layout, bodies int) string {
	if width < 10 {
		return ""
	}

	barWidth := width - 12
	filledStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#9D4EDD"))
	emptyStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	tickStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	pctStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("244"))

	ratio := 0.0
	if s.max > 0 {
		ratio = s.offset / s.max
	}
	filled := int(math.Round(ratio * float64(barWidth)))

	ticks := make(map[int]bool, bodies)
	if s.max > 0 {
		for i := 0; i < bodies; i++ {
			col := int(layout.OffsetFor(i, 0) / s.max * float64(barWidth))
			ticks[col] = true
		}
	}

	var b strings.Builder
	b.WriteString("  ")
	for i := 0; i < barWidth; i++ {
		switch {
		case i < filled:
			b.WriteString(filledStyle.Render("━"))
		case ticks[i]:
			b.WriteString(tickStyle.Render("┃"))
		default:
			b.WriteString(emptyStyle.Render("─"))
		}
	}
	b.WriteString(pctStyle.Render(fmt.Sprintf(" %4.0f%%", ratio*100)))
	return b.String()
}
