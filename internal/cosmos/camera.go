package cosmos

import (
	"math"
	"time"
)

// Camera flight durations.
const (
	FocusDuration    = 1000 * time.Millisecond
	OverviewDuration = 1500 * time.Millisecond
)

// FrameDuration is one animation frame at 60 fps. Per-frame rates in the
// body table and the tracking lerp are expressed against it.
const FrameDuration = time.Second / 60

// trackLerp is how far the camera target closes on a tracked body per
// frame.
const trackLerp = 0.05

// EaseOutQuad decelerates to the end: 1-(1-t)^2.
func EaseOutQuad(t float64) float64 {
	t = math.Max(0, math.Min(1, t))
	return 1 - (1-t)*(1-t)
}

// Tween interpolates a Vec3 over a fixed duration with EaseOutQuad.
type Tween struct {
	From     Vec3
	To       Vec3
	Duration time.Duration
	elapsed  time.Duration
}

// NewTween starts a tween from one point to another.
func NewTween(from, to Vec3, d time.Duration) *Tween {
	return &Tween{From: from, To: to, Duration: d}
}

// Advance moves the tween forward and returns the eased value.
func (t *Tween) Advance(dt time.Duration) Vec3 {
	t.elapsed += dt
	return t.Value()
}

// Value returns the eased value at the current elapsed time.
func (t *Tween) Value() Vec3 {
	if t.Done() {
		return t.To
	}
	p := float64(t.elapsed) / float64(t.Duration)
	return t.From.Lerp(t.To, EaseOutQuad(p))
}

// Done reports whether the tween has reached its end.
func (t *Tween) Done() bool {
	return t.elapsed >= t.Duration
}

// Camera is a position looking at a target. Starting a new flight
// supersedes the one in progress from wherever the camera currently is.
type Camera struct {
	Position Vec3
	Target   Vec3

	posTween    *Tween
	targetTween *Tween
	tracking    string
}

// NewCamera returns a camera framing the overview.
func NewCamera() *Camera {
	return &Camera{Position: OverviewPosition, Target: OverviewTarget}
}

// Focus flies to a body at bodyPos and starts tracking it. The offset's X
// and Z are relative to the body; Y is an absolute height.
func (c *Camera) Focus(id string, bodyPos, offset Vec3) {
	dest := Vec3{X: bodyPos.X + offset.X, Y: offset.Y, Z: bodyPos.Z + offset.Z}
	c.posTween = NewTween(c.Position, dest, FocusDuration)
	c.targetTween = nil
	c.tracking = id
}

// Overview flies back to the framing of the whole system and stops
// tracking.
func (c *Camera) Overview() {
	c.posTween = NewTween(c.Position, OverviewPosition, OverviewDuration)
	c.targetTween = NewTween(c.Target, OverviewTarget, OverviewDuration)
	c.tracking = ""
}

// Tracking returns the id of the tracked body, "" in the overview.
func (c *Camera) Tracking() string {
	return c.tracking
}

// Animating reports whether a flight is in progress.
func (c *Camera) Animating() bool {
	return c.posTween != nil || c.targetTween != nil
}

// Update advances flights by dt and pulls the target toward the tracked
// body's current position in sim.
func (c *Camera) Update(dt time.Duration, sim *Sim) {
	if c.posTween != nil {
		c.Position = c.posTween.Advance(dt)
		if c.posTween.Done() {
			c.posTween = nil
		}
	}
	if c.targetTween != nil {
		c.Target = c.targetTween.Advance(dt)
		if c.targetTween.Done() {
			c.targetTween = nil
		}
	}
	if c.tracking == "" || sim == nil {
		return
	}
	pos, ok := sim.WorldPosition(c.tracking)
	if !ok {
		return
	}
	frames := float64(dt) / float64(FrameDuration)
	k := 1 - math.Pow(1-trackLerp, frames)
	c.Target = c.Target.Lerp(pos, k)
}

// Distance is how far the camera sits from its target.
func (c *Camera) Distance() float64 {
	return c.Position.Sub(c.Target).Norm()
}
