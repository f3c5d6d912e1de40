package cosmos

import (
	"math"
)

// CellAspect is the width/height ratio of a terminal cell. Columns are
// stretched by its inverse so circles stay round.
const CellAspect = 0.5

// viewSpan is how many camera distances fit in the grid's height.
const viewSpan = 2.4

// Projection maps scene coordinates onto a character grid, looking straight
// down the Y axis at the camera target. +X is right, +Z is down.
type Projection struct {
	Width, Height int
	Center        Vec3
	UnitsPerRow   float64
}

// NewProjection frames a width x height grid from the camera. Zoom follows
// the camera's distance from its target.
func NewProjection(cam *Camera, width, height int) Projection {
	dist := cam.Distance()
	if dist <= 0 {
		dist = 1
	}
	rows := math.Max(1, float64(height))
	return Projection{
		Width:       width,
		Height:      height,
		Center:      cam.Target,
		UnitsPerRow: dist * viewSpan / rows,
	}
}

// Project returns the grid cell for p. ok is false when the cell is off
// the grid.
func (pr Projection) Project(p Vec3) (col, row int, ok bool) {
	if pr.UnitsPerRow <= 0 {
		return 0, 0, false
	}
	dx := (p.X - pr.Center.X) / pr.UnitsPerRow / CellAspect
	dz := (p.Z - pr.Center.Z) / pr.UnitsPerRow
	col = int(math.Round(float64(pr.Width)/2 + dx))
	row = int(math.Round(float64(pr.Height)/2 + dz))
	ok = col >= 0 && col < pr.Width && row >= 0 && row < pr.Height
	return col, row, ok
}

// RadiusRows converts a scene radius to grid rows, never below zero.
func (pr Projection) RadiusRows(r float64) int {
	if pr.UnitsPerRow <= 0 {
		return 0
	}
	return int(math.Max(0, math.Floor(r/pr.UnitsPerRow)))
}

// Parallax places a star so it drifts by factor of the camera's movement.
// A factor below 1 keeps the background behind the bodies.
func (pr Projection) Parallax(s Star, factor float64) Vec3 {
	return Vec3{
		X: pr.Center.X + s.X - pr.Center.X*factor,
		Z: pr.Center.Z + s.Z - pr.Center.Z*factor,
	}
}
