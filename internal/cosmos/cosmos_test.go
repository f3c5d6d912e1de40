package cosmos

import (
	"math"
	"testing"
	"time"
)

func approx(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestVec3(t *testing.T) {
	tests := []struct {
		name string
		got  float64
		want float64
	}{
		{"norm 3D", Vec3{1, 2, 2}.Norm(), 3},
		{"planar ignores Y", Vec3{3, 100, 4}.PlanarDistance(), 5},
		{"lerp half", Vec3{0, 0, 0}.Lerp(Vec3{10, 0, 0}, 0.5).X, 5},
		{"sub", Vec3{5, 0, 0}.Sub(Vec3{2, 0, 0}).X, 3},
		{"scale", Vec3{1, 1, 1}.Scale(4).Z, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !approx(tt.got, tt.want, 1e-10) {
				t.Errorf("got %v, want %v", tt.got, tt.want)
			}
		})
	}
}

func TestDefaultBodies(t *testing.T) {
	bodies := DefaultBodies()
	offsets := CameraOffsets()

	ids := map[string]BodyConfig{}
	for _, b := range bodies {
		ids[b.ID] = b
	}

	for _, id := range []string{"earth", "sun", "moon", "mars", "mercury", "jupiter", "venus", "saturn", "neptune"} {
		if _, ok := ids[id]; !ok {
			t.Errorf("missing body %s", id)
		}
		if _, ok := offsets[id]; !ok {
			t.Errorf("missing camera offset for %s", id)
		}
	}

	if ids["moon"].Parent != "earth" {
		t.Errorf("moon parent = %q, want earth", ids["moon"].Parent)
	}
	if !ids["saturn"].Ring {
		t.Error("saturn should have a ring")
	}
	if ids["sun"].Orbits() {
		t.Error("sun should not orbit")
	}

	// Start angles are seeded, not random per call.
	again := DefaultBodies()
	for i := range bodies {
		if bodies[i].InitialAngle != again[i].InitialAngle {
			t.Errorf("%s initial angle differs between calls", bodies[i].ID)
		}
	}
}

func TestSimResetIgnoresProgress(t *testing.T) {
	cfgs := DefaultBodies()
	sim := NewSim(cfgs)

	start, _ := sim.WorldPosition("mars")
	sim.Step(500)
	moved, _ := sim.WorldPosition("mars")
	if approx(start.X, moved.X, 1e-9) && approx(start.Z, moved.Z, 1e-9) {
		t.Fatal("mars did not move")
	}

	sim.Reset()
	back, _ := sim.WorldPosition("mars")
	if !approx(back.X, start.X, 1e-9) || !approx(back.Z, start.Z, 1e-9) {
		t.Errorf("after Reset mars = %v, want %v", back, start)
	}

	// Stepping never writes through to the configuration table.
	for i, c := range DefaultBodies() {
		if cfgs[i].InitialAngle != c.InitialAngle {
			t.Errorf("%s config angle changed", c.ID)
		}
	}
}

func TestSimOrbitRadius(t *testing.T) {
	sim := NewSim(DefaultBodies())
	sim.Step(1234)

	for _, id := range []string{"mercury", "earth", "neptune"} {
		cfg, _ := sim.Config(id)
		pos, _ := sim.WorldPosition(id)
		if !approx(pos.PlanarDistance(), cfg.Distance, 1e-9) {
			t.Errorf("%s distance = %v, want %v", id, pos.PlanarDistance(), cfg.Distance)
		}
	}

	sun, _ := sim.WorldPosition("sun")
	if sun != (Vec3{}) {
		t.Errorf("sun moved to %v", sun)
	}
}

func TestMoonFollowsEarth(t *testing.T) {
	sim := NewSim(DefaultBodies())

	for _, frames := range []float64{0, 100, 1000} {
		sim.Step(frames)
		earth, _ := sim.WorldPosition("earth")
		moon, _ := sim.WorldPosition("moon")
		if d := moon.Sub(earth).Norm(); !approx(d, 8, 1e-9) {
			t.Errorf("after %v frames moon-earth distance = %v, want 8", frames, d)
		}
	}
}

func TestSimSpeed(t *testing.T) {
	sim := NewSim(DefaultBodies())
	sim.SetSpeed(0)
	before := sim.Angle("earth")
	sim.Step(100)
	if sim.Angle("earth") != before {
		t.Error("speed 0 should freeze orbits")
	}

	sim.SetSpeed(-3)
	if sim.Speed() != 0 {
		t.Errorf("Speed() = %v, want 0 for negative input", sim.Speed())
	}

	sim.SetSpeed(1)
	sim.Step(10)
	if !approx(sim.Angle("earth"), before+0.02, 1e-9) {
		t.Errorf("earth angle = %v, want %v", sim.Angle("earth"), before+0.02)
	}

	if _, ok := sim.WorldPosition("pluto"); ok {
		t.Error("unknown body should not resolve")
	}
}

func TestSnapshotOrder(t *testing.T) {
	cfgs := DefaultBodies()
	snap := NewSim(cfgs).Snapshot()
	if len(snap) != len(cfgs) {
		t.Fatalf("len = %d, want %d", len(snap), len(cfgs))
	}
	for i := range cfgs {
		if snap[i].Config.ID != cfgs[i].ID {
			t.Errorf("snapshot[%d] = %s, want %s", i, snap[i].Config.ID, cfgs[i].ID)
		}
	}
}

func TestEaseOutQuad(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{-1, 0},
		{0, 0},
		{0.5, 0.75},
		{1, 1},
		{2, 1},
	}
	for _, tt := range tests {
		if got := EaseOutQuad(tt.in); !approx(got, tt.want, 1e-12) {
			t.Errorf("EaseOutQuad(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestTween(t *testing.T) {
	tw := NewTween(Vec3{}, Vec3{X: 100}, time.Second)

	if got := tw.Advance(500 * time.Millisecond); !approx(got.X, 75, 1e-9) {
		t.Errorf("half way X = %v, want 75", got.X)
	}
	if tw.Done() {
		t.Error("tween done too early")
	}
	if got := tw.Advance(time.Second); got.X != 100 || !tw.Done() {
		t.Errorf("end X = %v, done = %v", got.X, tw.Done())
	}
}

func TestCameraFocusSupersedes(t *testing.T) {
	sim := NewSim(DefaultBodies())
	sim.SetSpeed(0)
	cam := NewCamera()

	marsPos, _ := sim.WorldPosition("mars")
	cam.Focus("mars", marsPos, CameraOffsets()["mars"])
	cam.Update(300*time.Millisecond, sim)
	mid := cam.Position

	// A new flight starts from wherever the camera is now.
	jupPos, _ := sim.WorldPosition("jupiter")
	off := CameraOffsets()["jupiter"]
	cam.Focus("jupiter", jupPos, off)
	if cam.posTween.From != mid {
		t.Errorf("superseding tween starts at %v, want %v", cam.posTween.From, mid)
	}

	cam.Update(FocusDuration, sim)
	want := Vec3{X: jupPos.X + off.X, Y: off.Y, Z: jupPos.Z + off.Z}
	if cam.Position != want {
		t.Errorf("final position = %v, want %v", cam.Position, want)
	}
	if cam.Animating() {
		t.Error("camera still animating after full duration")
	}
	if cam.Tracking() != "jupiter" {
		t.Errorf("Tracking() = %q, want jupiter", cam.Tracking())
	}
}

func TestCameraTracksTarget(t *testing.T) {
	sim := NewSim(DefaultBodies())
	sim.SetSpeed(0)
	cam := NewCamera()

	earth, _ := sim.WorldPosition("earth")
	cam.Focus("earth", earth, CameraOffsets()["earth"])
	for i := 0; i < 600; i++ {
		cam.Update(FrameDuration, sim)
	}
	if d := cam.Target.Sub(earth).Norm(); d > 0.01 {
		t.Errorf("target %v still %v away from earth", cam.Target, d)
	}

	cam.Overview()
	cam.Update(OverviewDuration, sim)
	if cam.Position != OverviewPosition || cam.Target != OverviewTarget {
		t.Errorf("overview camera = %v -> %v", cam.Position, cam.Target)
	}
	if cam.Tracking() != "" {
		t.Errorf("Tracking() = %q after overview", cam.Tracking())
	}
}

func TestStarfieldDeterministic(t *testing.T) {
	a := NewStarfield(50, 100, 7)
	b := NewStarfield(50, 100, 7)
	for i := range a.Stars {
		if a.Stars[i] != b.Stars[i] {
			t.Fatalf("star %d differs: %v vs %v", i, a.Stars[i], b.Stars[i])
		}
		s := a.Stars[i]
		if math.Abs(s.X) > 50 || math.Abs(s.Z) > 50 {
			t.Errorf("star %d outside spread: %v", i, s)
		}
		if s.Mag < 0 || s.Mag > 1 {
			t.Errorf("star %d mag %v", i, s.Mag)
		}
	}
	if len(NewStarfield(-1, 10, 1).Stars) != 0 {
		t.Error("negative count should yield no stars")
	}
}

func TestProjection(t *testing.T) {
	cam := &Camera{Position: Vec3{Y: 10}, Target: Vec3{}}
	pr := NewProjection(cam, 80, 24)

	col, row, ok := pr.Project(Vec3{})
	if !ok || col != 40 || row != 12 {
		t.Errorf("origin -> (%d,%d,%v), want (40,12,true)", col, row, ok)
	}

	// One row of Z is UnitsPerRow; one column of X is half that.
	col, row, _ = pr.Project(Vec3{X: pr.UnitsPerRow, Z: pr.UnitsPerRow})
	if col != 42 || row != 13 {
		t.Errorf("offset -> (%d,%d), want (42,13)", col, row)
	}

	if _, _, ok := pr.Project(Vec3{X: 1e6}); ok {
		t.Error("far point should be off grid")
	}

	if got := pr.RadiusRows(pr.UnitsPerRow * 3.5); got != 3 {
		t.Errorf("RadiusRows = %d, want 3", got)
	}
}
