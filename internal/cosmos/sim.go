package cosmos

import (
	"math"
)

// Default simulation speeds: the overview runs fast, a focused body slows
// the system down so the camera can track it.
const (
	DefaultSpeed      = 0.5
	DefaultFocusSpeed = 0.1
)

// bodyState is the mutable half of a body.
type bodyState struct {
	angle float64
	spin  float64
}

// BodyState is a body's configuration plus its current world position.
type BodyState struct {
	Config BodyConfig
	Pos    Vec3
	Spin   float64
}

// Sim advances orbits and spins over a read-only body table. Configuration
// is never written, so Reset always returns to the same arrangement.
//
// A Sim is not safe for concurrent use; the renderer owns it.
type Sim struct {
	configs []BodyConfig
	index   map[string]int
	states  []bodyState
	speed   float64
}

// NewSim builds a simulation over cfgs at DefaultSpeed.
func NewSim(cfgs []BodyConfig) *Sim {
	s := &Sim{
		configs: make([]BodyConfig, len(cfgs)),
		index:   make(map[string]int, len(cfgs)),
		states:  make([]bodyState, len(cfgs)),
		speed:   DefaultSpeed,
	}
	copy(s.configs, cfgs)
	for i, c := range s.configs {
		s.index[c.ID] = i
	}
	s.Reset()
	return s
}

// Reset restores every body to its initial angle and zero spin.
func (s *Sim) Reset() {
	for i, c := range s.configs {
		s.states[i] = bodyState{angle: c.InitialAngle}
	}
}

// SetSpeed sets the simulation multiplier. Negative values are treated as 0.
func (s *Sim) SetSpeed(v float64) {
	s.speed = math.Max(0, v)
}

// Speed returns the simulation multiplier.
func (s *Sim) Speed() float64 {
	return s.speed
}

// Step advances the simulation by frames animation frames.
func (s *Sim) Step(frames float64) {
	if frames <= 0 {
		return
	}
	k := frames * s.speed
	for i, c := range s.configs {
		st := &s.states[i]
		st.spin = math.Mod(st.spin+c.RotationSpeed*k, 2*math.Pi)
		if c.Orbits() {
			st.angle = math.Mod(st.angle+c.Speed*k, 2*math.Pi)
		}
	}
}

// Config returns the static configuration for id.
func (s *Sim) Config(id string) (BodyConfig, bool) {
	i, ok := s.index[id]
	if !ok {
		return BodyConfig{}, false
	}
	return s.configs[i], true
}

// Angle returns the current orbital angle of id.
func (s *Sim) Angle(id string) float64 {
	i, ok := s.index[id]
	if !ok {
		return 0
	}
	return s.states[i].angle
}

// WorldPosition returns id's position, following the parent chain so a
// moon moves with its planet.
func (s *Sim) WorldPosition(id string) (Vec3, bool) {
	return s.worldPosition(id, 0)
}

func (s *Sim) worldPosition(id string, depth int) (Vec3, bool) {
	i, ok := s.index[id]
	if !ok || depth > len(s.configs) {
		return Vec3{}, false
	}
	c := s.configs[i]
	local := Vec3{}
	if c.Orbits() {
		a := s.states[i].angle
		local = Vec3{X: math.Cos(a) * c.Distance, Z: math.Sin(a) * c.Distance}
	}
	if c.Parent == "" {
		return local, true
	}
	parent, ok := s.worldPosition(c.Parent, depth+1)
	if !ok {
		return local, true
	}
	return parent.Add(local), true
}

// Snapshot returns every body with its current world position, in table
// order.
func (s *Sim) Snapshot() []BodyState {
	out := make([]BodyState, len(s.configs))
	for i, c := range s.configs {
		pos, _ := s.WorldPosition(c.ID)
		out[i] = BodyState{Config: c, Pos: pos, Spin: s.states[i].spin}
	}
	return out
}
