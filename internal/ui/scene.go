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

// starParallax is how much of the camera's movement the background follows.
const starParallax = 0.2

// maxFrame caps a single animation step so a stalled tick doesn't jump
// the simulation.
const maxFrame = 250 * time.Millisecond

// SceneView renders a top-down view of the simulated system. It
// implements nav.Renderer: focus and overview requests start camera
// flights that progress on each Advance.
type SceneView struct {
	sim   *cosmos.Sim
	cam   *cosmos.Camera
	stars cosmos.Starfield

	speed      float64 // overview simulation speed
	focusSpeed float64 // speed while a body is focused

	width  int
	height int
}

// NewSceneView creates a scene over bodies framed on the overview.
func NewSceneView(bodies []cosmos.BodyConfig, speed, focusSpeed float64) *SceneView {
	sim := cosmos.NewSim(bodies)
	sim.SetSpeed(speed)
	return &SceneView{
		sim:        sim,
		cam:        cosmos.NewCamera(),
		stars:      cosmos.DefaultStarfield(),
		speed:      speed,
		focusSpeed: focusSpeed,
	}
}

// FocusOn flies the camera to body and slows the system down. Unknown
// bodies are ignored.
func (s *SceneView) FocusOn(body nav.BodyID, offset cosmos.Vec3) {
	pos, ok := s.sim.WorldPosition(string(body))
	if !ok {
		return
	}
	s.sim.SetSpeed(s.focusSpeed)
	s.cam.Focus(string(body), pos, offset)
}

// ReturnToOverview flies the camera back out and restores the overview
// speed.
func (s *SceneView) ReturnToOverview() {
	s.sim.SetSpeed(s.speed)
	s.cam.Overview()
}

// Advance steps the simulation and camera by dt.
func (s *SceneView) Advance(dt time.Duration) {
	if dt <= 0 {
		return
	}
	if dt > maxFrame {
		dt = maxFrame
	}
	s.sim.Step(float64(dt) / float64(cosmos.FrameDuration))
	s.cam.Update(dt, s.sim)
}

// SetSize updates the canvas size.
func (s *SceneView) SetSize(width, height int) {
	s.width = width
	s.height = height
}

// Sim returns the simulation.
func (s *SceneView) Sim() *cosmos.Sim {
	return s.sim
}

// Camera returns the camera.
func (s *SceneView) Camera() *cosmos.Camera {
	return s.cam
}

// cell is one character of the canvas with its foreground color.
type cell struct {
	ch    rune
	color string
	bold  bool
}

var blank = cell{ch: ' '}

// View renders the canvas followed by a one-line HUD.
func (s *SceneView) View() string {
	if s.width < 20 || s.height < 6 {
		return "Terminal too small for the scene"
	}
	canvasH := s.height - 1
	return s.buildCanvas(s.width, canvasH) + "\n" + s.renderHUD()
}

func (s *SceneView) buildCanvas(w, h int) string {
	grid := make([][]cell, h)
	for y := range grid {
		grid[y] = make([]cell, w)
		for x := range grid[y] {
			grid[y][x] = blank
		}
	}

	pr := cosmos.NewProjection(s.cam, w, h)
	s.drawStarfield(grid, pr)

	states := s.sim.Snapshot()
	positions := make(map[string]cosmos.Vec3, len(states))
	for _, st := range states {
		positions[st.Config.ID] = st.Pos
	}

	// Orbits first so bodies draw over them.
	for _, st := range states {
		if !st.Config.Orbits() {
			continue
		}
		center := cosmos.Vec3{}
		if st.Config.Parent != "" {
			center = positions[st.Config.Parent]
		}
		drawRing(grid, pr, center, st.Config.Distance, '·', "238")
	}

	tracked := s.cam.Tracking()
	for _, st := range states {
		s.drawBody(grid, pr, st, st.Config.ID == tracked)
	}

	// Labels last so they stay readable.
	for _, st := range states {
		if tracked != "" && st.Config.ID != tracked {
			continue
		}
		if st.Config.Kind == cosmos.KindMoon && tracked == "" {
			continue
		}
		col, row, ok := pr.Project(st.Pos)
		if !ok {
			continue
		}
		r := pr.RadiusRows(st.Config.Radius)
		label := st.Config.Name
		if st.Config.ID == tracked {
			label = "◄ " + label
		}
		drawLabel(grid, col+int(float64(r)/cosmos.CellAspect)+2, row, label, st.Config.ID == tracked)
	}

	return renderCells(grid)
}

func (s *SceneView) drawStarfield(grid [][]cell, pr cosmos.Projection) {
	for _, star := range s.stars.Stars {
		col, row, ok := pr.Project(pr.Parallax(star, starParallax))
		if !ok || grid[row][col] != blank {
			continue
		}
		color := "236"
		if star.Mag < 0.35 {
			color = "244"
		}
		grid[row][col] = cell{ch: star.Glyph(), color: color}
	}
}

func (s *SceneView) drawBody(grid [][]cell, pr cosmos.Projection, st cosmos.BodyState, focused bool) {
	col, row, ok := pr.Project(st.Pos)
	if !ok {
		// A large body can still overlap the canvas from just outside it.
		if pr.RadiusRows(st.Config.Radius) == 0 {
			return
		}
	}

	if st.Config.Ring {
		drawRing(grid, pr, st.Pos, st.Config.Radius*1.8, '═', st.Config.Color)
	}

	r := pr.RadiusRows(st.Config.Radius)
	if r == 0 {
		if ok {
			grid[row][col] = cell{ch: bodyGlyph(st.Config.Kind, focused), color: st.Config.Color, bold: focused}
		}
		return
	}

	// Filled disc; columns are stretched by the cell aspect.
	rc := float64(r) / cosmos.CellAspect
	for dy := -r; dy <= r; dy++ {
		span := rc * math.Sqrt(1-math.Pow(float64(dy)/float64(r+1), 2))
		for dx := -int(span); dx <= int(span); dx++ {
			x, y := col+dx, row+dy
			if y < 0 || y >= len(grid) || x < 0 || x >= len(grid[y]) {
				continue
			}
			ch := '█'
			// Shade the side facing away from the sun.
			if float64(dx)*st.Pos.X+float64(dy)*st.Pos.Z > 0 && st.Config.Kind != cosmos.KindStar {
				ch = '▓'
			}
			grid[y][x] = cell{ch: ch, color: st.Config.Color, bold: focused}
		}
	}
}

// drawRing traces a circle of radius r around center on the orbital plane.
func drawRing(grid [][]cell, pr cosmos.Projection, center cosmos.Vec3, r float64, ch rune, color string) {
	if pr.UnitsPerRow <= 0 || r <= 0 {
		return
	}
	circumference := 2 * math.Pi * r / pr.UnitsPerRow / cosmos.CellAspect
	if circumference < 3 {
		return
	}
	steps := int(circumference * 2)
	if steps < 8 {
		steps = 8
	}
	if steps > 1440 {
		steps = 1440
	}

	for i := 0; i < steps; i++ {
		theta := 2 * math.Pi * float64(i) / float64(steps)
		p := cosmos.Vec3{X: center.X + r*math.Cos(theta), Z: center.Z + r*math.Sin(theta)}
		col, row, ok := pr.Project(p)
		if !ok {
			continue
		}
		if c := grid[row][col]; c == blank || c.color == "236" || c.color == "244" {
			grid[row][col] = cell{ch: ch, color: color}
		}
	}
}

func drawLabel(grid [][]cell, x, y int, text string, focused bool) {
	if y < 0 || y >= len(grid) {
		return
	}
	color := "249"
	if focused {
		color = "229"
	}
	for i, ch := range []rune(text) {
		if x+i < 0 || x+i >= len(grid[y]) {
			continue
		}
		grid[y][x+i] = cell{ch: ch, color: color, bold: focused}
	}
}

func bodyGlyph(kind cosmos.BodyKind, focused bool) rune {
	if focused {
		return '◉'
	}
	switch kind {
	case cosmos.KindStar:
		return '☉'
	case cosmos.KindMoon:
		return '∘'
	default:
		return '●'
	}
}

// renderCells styles runs of same-colored cells together.
func renderCells(grid [][]cell) string {
	var b strings.Builder
	styles := make(map[cell]lipgloss.Style)

	for y, row := range grid {
		if y > 0 {
			b.WriteRune('\n')
		}
		var run strings.Builder
		var cur cell
		flush := func() {
			if run.Len() == 0 {
				return
			}
			if cur.color == "" {
				b.WriteString(run.String())
			} else {
				key := cell{color: cur.color, bold: cur.bold}
				st, ok := styles[key]
				if !ok {
					st = lipgloss.NewStyle().Foreground(lipgloss.Color(cur.color)).Bold(cur.bold)
					styles[key] = st
				}
				b.WriteString(st.Render(run.String()))
			}
			run.Reset()
		}
		for _, c := range row {
			if c.color != cur.color || c.bold != cur.bold {
				flush()
				cur = c
			}
			run.WriteRune(c.ch)
		}
		flush()
	}
	return b.String()
}

func (s *SceneView) renderHUD() string {
	headerStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	valueStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("252"))

	var b strings.Builder
	b.WriteString("  ")

	id := s.cam.Tracking()
	if cfg, ok := s.sim.Config(id); ok {
		b.WriteString(headerStyle.Render("◆ " + cfg.Name))
		b.WriteString("  ")
		b.WriteString(dimStyle.Render(cfg.Kind.String() + "  "))
		if pos, ok := s.sim.WorldPosition(id); ok && cfg.Orbits() {
			b.WriteString(dimStyle.Render("Sun dist:"))
			b.WriteString(valueStyle.Render(fmt.Sprintf("%.0f", pos.PlanarDistance())))
			b.WriteString("  ")
		}
	} else {
		b.WriteString(headerStyle.Render("☉ Overview"))
		b.WriteString("  ")
	}

	b.WriteString(dimStyle.Render("Sim:"))
	b.WriteString(valueStyle.Render(fmt.Sprintf("%.2gx", s.sim.Speed())))
	b.WriteString("  ")
	b.WriteString(dimStyle.Render("Cam:"))
	switch {
	case s.cam.Animating():
		b.WriteString(valueStyle.Render("in flight"))
	case id != "":
		b.WriteString(valueStyle.Render("tracking"))
	default:
		b.WriteString(valueStyle.Render("overview"))
	}

	return b.String()
}
