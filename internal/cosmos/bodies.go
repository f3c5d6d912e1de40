package cosmos

import (
	"math"
	"math/rand"
)

// BodyKind categorizes bodies for rendering.
type BodyKind int

const (
	KindStar BodyKind = iota
	KindPlanet
	KindMoon
)

// String returns the body kind name.
func (k BodyKind) String() string {
	switch k {
	case KindStar:
		return "star"
	case KindPlanet:
		return "planet"
	case KindMoon:
		return "moon"
	default:
		return "unknown"
	}
}

// BodyConfig is the static description of one body. It is never mutated;
// orbital angle and spin live in Sim.
type BodyConfig struct {
	ID            string
	Name          string
	Kind          BodyKind
	Radius        float64 // scene units
	Distance      float64 // orbit radius around Parent (or the origin)
	InitialAngle  float64 // radians
	Speed         float64 // orbital radians per frame at speed 1
	RotationSpeed float64 // spin radians per frame at speed 1
	Color         string  // #RRGGBB
	Parent        string  // orbit center; "" = origin
	Ring          bool
}

// Orbits reports whether the body revolves.
func (c BodyConfig) Orbits() bool {
	return c.Distance > 0
}

// Initial orbital angles for bodies whose start angle is not fixed are
// drawn from this seed, so every run starts from the same arrangement.
const angleSeed = 1977

// DefaultBodies returns the scene's body table. Uranus is drawn but is not
// a navigation stop.
func DefaultBodies() []BodyConfig {
	rng := rand.New(rand.NewSource(angleSeed))
	random := func() float64 { return rng.Float64() * 2 * math.Pi }

	return []BodyConfig{
		{ID: "sun", Name: "Sun", Kind: KindStar, Radius: 12, Speed: 0.0002, RotationSpeed: 0.0005, Color: "#FFAA00"},
		{ID: "mercury", Name: "Mercury", Kind: KindPlanet, Radius: 1.2, Distance: 30, InitialAngle: random(), Speed: 0.004, RotationSpeed: 0.002, Color: "#8C7853"},
		{ID: "venus", Name: "Venus", Kind: KindPlanet, Radius: 2.5, Distance: 45, InitialAngle: random(), Speed: 0.003, RotationSpeed: 0.0015, Color: "#FFC649"},
		{ID: "earth", Name: "Earth", Kind: KindPlanet, Radius: 3, Distance: 65, InitialAngle: 0.5, Speed: 0.002, RotationSpeed: 0.002, Color: "#6B93D6"},
		{ID: "moon", Name: "Moon", Kind: KindMoon, Radius: 0.8, Distance: 8, Speed: 0.01, RotationSpeed: 0.005, Color: "#CCCCCC", Parent: "earth"},
		{ID: "mars", Name: "Mars", Kind: KindPlanet, Radius: 1.8, Distance: 85, InitialAngle: random(), Speed: 0.0018, RotationSpeed: 0.002, Color: "#C1440E"},
		{ID: "jupiter", Name: "Jupiter", Kind: KindPlanet, Radius: 9, Distance: 130, InitialAngle: random(), Speed: 0.0008, RotationSpeed: 0.004, Color: "#D8CA9D"},
		{ID: "saturn", Name: "Saturn", Kind: KindPlanet, Radius: 8, Distance: 180, InitialAngle: random(), Speed: 0.0006, RotationSpeed: 0.003, Color: "#FAD5A5", Ring: true},
		{ID: "uranus", Name: "Uranus", Kind: KindPlanet, Radius: 5, Distance: 230, InitialAngle: random(), Speed: 0.0004, RotationSpeed: 0.002, Color: "#AFDBF5"},
		{ID: "neptune", Name: "Neptune", Kind: KindPlanet, Radius: 4.8, Distance: 270, InitialAngle: random(), Speed: 0.0003, RotationSpeed: 0.002, Color: "#5B5DDF"},
	}
}

// CameraOffsets is how far the camera sits from each body when focused on
// it. Y is absolute height; X and Z are relative to the body.
func CameraOffsets() map[string]Vec3 {
	return map[string]Vec3{
		"earth":   {X: 12, Y: 4, Z: 12},
		"sun":     {X: 0, Y: 16, Z: 40},
		"moon":    {X: 4, Y: 2, Z: 4},
		"mars":    {X: 8, Y: 3, Z: 8},
		"mercury": {X: 5, Y: 2, Z: 5},
		"jupiter": {X: 18, Y: 6, Z: 18},
		"venus":   {X: 8, Y: 3, Z: 8},
		"saturn":  {X: 20, Y: 8, Z: 20},
		"neptune": {X: 15, Y: 5, Z: 15},
	}
}

// DefaultCameraOffset is used for bodies without an entry in CameraOffsets.
var DefaultCameraOffset = Vec3{X: 15, Y: 5, Z: 15}

// OverviewPosition and OverviewTarget frame the whole system.
var (
	OverviewPosition = Vec3{X: 0, Y: 120, Z: 200}
	OverviewTarget   = Vec3{}
)
