package nav

import "math"

// Layout holds the three constants the scroll arithmetic is built from.
// Offsets are a pure function of (body index, card, Layout); nothing here
// measures rendered geometry, because a pinned region's height is fixed by
// the animation rather than by its content.
type Layout struct {
	HeroHeight         float64 // scroll distance before the first body's region
	PinnedRegionHeight float64 // scroll distance reserved per body
	CardsPerBody       int
}

// DefaultLayout matches the reference page: an 800px hero and a pinned
// region of 3x a 800px viewport per body.
func DefaultLayout() Layout {
	return Layout{
		HeroHeight:         800,
		PinnedRegionHeight: 2400,
		CardsPerBody:       4,
	}
}

// Region is the result of locating a raw scroll offset.
type Region struct {
	Home      bool    // offset is inside the hero section
	BodyIndex int     // valid when !Home
	Progress  float64 // 0..1 progress through the body's pinned region
}

// OffsetFor returns HeroHeight + bodyIndex*P + (card/C)*P.
func (l Layout) OffsetFor(bodyIndex, card int) float64 {
	p := l.PinnedRegionHeight
	frac := 0.0
	if l.CardsPerBody > 0 {
		frac = float64(card) / float64(l.CardsPerBody)
	}
	return l.HeroHeight + float64(bodyIndex)*p + frac*p
}

// OffsetForStop is OffsetFor applied to a stop.
func (l Layout) OffsetForStop(s Stop) float64 {
	return l.OffsetFor(s.BodyIndex, s.Card)
}

// TotalHeight is the full scrollable extent for the given number of bodies.
func (l Layout) TotalHeight(bodies int) float64 {
	return l.HeroHeight + float64(bodies)*l.PinnedRegionHeight
}

// Locate maps a raw scroll offset back to the hero or a body region.
// Offsets past the last region clamp to the last body at full progress.
func (l Layout) Locate(offset float64, bodies int) Region {
	if offset < l.HeroHeight || bodies <= 0 || l.PinnedRegionHeight <= 0 {
		return Region{Home: true}
	}

	rel := (offset - l.HeroHeight) / l.PinnedRegionHeight
	bi := int(math.Floor(rel))
	if bi >= bodies {
		return Region{BodyIndex: bodies - 1, Progress: 1}
	}
	return Region{BodyIndex: bi, Progress: rel - float64(bi)}
}

// CardForProgress resolves progress within a pinned region to a card:
// floor(progress / (1/C)) clamped to [0, C-1]. Every card is assumed to
// own an equal share of the region.
func (l Layout) CardForProgress(progress float64) int {
	c := l.CardsPerBody
	if c <= 0 {
		return 0
	}
	if math.IsNaN(progress) || progress < 0 {
		return 0
	}
	card := int(math.Floor(progress / (1 / float64(c))))
	return clamp(card, 0, c-1)
}
