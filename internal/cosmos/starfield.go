package cosmos

import (
	"math"
	"math/rand"
)

// Star is a background point on the sky plane.
type Star struct {
	X, Z float64 // scene units
	Mag  float64 // 0 = brightest, 1 = faintest
}

// Starfield is a deterministic set of background stars spread over a
// square centered on the origin.
type Starfield struct {
	Stars  []Star
	Spread float64
}

// Defaults for the background.
const (
	DefaultStarCount  = 600
	DefaultStarSpread = 2000
	DefaultStarSeed   = 42
)

// NewStarfield scatters count stars over spread using seed. The same
// inputs always produce the same field.
func NewStarfield(count int, spread float64, seed int64) Starfield {
	if count < 0 {
		count = 0
	}
	rng := rand.New(rand.NewSource(seed))
	stars := make([]Star, count)
	for i := range stars {
		stars[i] = Star{
			X: (rng.Float64() - 0.5) * spread,
			Z: (rng.Float64() - 0.5) * spread,
			// Square the draw so faint stars dominate.
			Mag: 1 - math.Pow(rng.Float64(), 2),
		}
	}
	return Starfield{Stars: stars, Spread: spread}
}

// DefaultStarfield returns the standard background.
func DefaultStarfield() Starfield {
	return NewStarfield(DefaultStarCount, DefaultStarSpread, DefaultStarSeed)
}

// Glyph returns the character for a star of the given magnitude.
func (s Star) Glyph() rune {
	switch {
	case s.Mag < 0.1:
		return '*'
	case s.Mag < 0.35:
		return '+'
	case s.Mag < 0.7:
		return '·'
	default:
		return '.'
	}
}
