package nav

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/litescript/ls-cosmos/internal/content"
	"github.com/litescript/ls-cosmos/internal/cosmos"
	"github.com/litescript/ls-cosmos/internal/deeplink"
)

// recorder collects collaborator calls in order.
type recorder struct {
	calls []string
}

func (r *recorder) add(format string, args ...interface{}) {
	r.calls = append(r.calls, fmt.Sprintf(format, args...))
}

func (r *recorder) count(prefix string) int {
	n := 0
	for _, c := range r.calls {
		if strings.HasPrefix(c, prefix) {
			n++
		}
	}
	return n
}

func (r *recorder) reset() {
	r.calls = nil
}

type fakeRenderer struct{ rec *recorder }

func (f fakeRenderer) FocusOn(body BodyID, offset cosmos.Vec3) {
	f.rec.add("focus %s %v", body, offset)
}

func (f fakeRenderer) ReturnToOverview() { f.rec.add("overview") }

type fakePanels struct {
	rec      *recorder
	visible  int
	prepared string
}

func (f *fakePanels) Prepare(b content.Body) {
	f.prepared = b.ID
	f.rec.add("prepare %s", b.ID)
}

func (f *fakePanels) RevealNextPanel() bool {
	if f.visible >= content.PanelCount {
		return false
	}
	f.visible++
	f.rec.add("reveal")
	return true
}

func (f *fakePanels) HideLastPanel() bool {
	if f.visible == 0 {
		return false
	}
	f.visible--
	f.rec.add("hide")
	return true
}

func (f *fakePanels) HideAll() {
	f.visible = 0
	f.rec.add("hideall")
}

func (f *fakePanels) Visible() int { return f.visible }

// fakeScroller holds completion callbacks until the test releases them.
type fakeScroller struct {
	rec     *recorder
	targets []float64
	pending []func()
}

func (f *fakeScroller) AnimateTo(offset float64, onComplete func()) {
	f.targets = append(f.targets, offset)
	f.pending = append(f.pending, onComplete)
	f.rec.add("scroll %v", offset)
}

// settle fires every pending callback in issue order.
func (f *fakeScroller) settle() {
	p := f.pending
	f.pending = nil
	for _, fn := range p {
		fn()
	}
}

type fakeLocation struct {
	rec     *recorder
	current string
}

func (f *fakeLocation) Replace(l deeplink.Link) {
	f.current = l.Encode()
	f.rec.add("replace %s", f.current)
}

func (f *fakeLocation) Clear() {
	f.current = ""
	f.rec.add("clear")
}

type fixture struct {
	ctl      *Controller
	rec      *recorder
	panels   *fakePanels
	scroller *fakeScroller
	location *fakeLocation
	now      time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		rec: &recorder{},
		now: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	f.panels = &fakePanels{rec: f.rec}
	f.scroller = &fakeScroller{rec: f.rec}
	f.location = &fakeLocation{rec: f.rec}

	m := newReferenceMachine(t)
	f.ctl = NewController(m, DefaultLayout(), Deps{
		Renderer: fakeRenderer{rec: f.rec},
		Panels:   f.panels,
		Scroller: f.scroller,
		Location: f.location,
		Content:  content.Default(),
		Clock:    func() time.Time { return f.now },
	}, DefaultOptions())
	return f
}

func (f *fixture) advance(d time.Duration) {
	f.now = f.now.Add(d)
}

func TestGoNextFromHomeJumpsToFirstStop(t *testing.T) {
	f := newFixture(t)

	res := f.ctl.GoNext()
	stop, ok := res.Position.Stop()
	if !res.Changed() || !ok || stop.Index != 0 {
		t.Fatalf("GoNext from home = %+v", res)
	}
	if f.panels.prepared != "earth" {
		t.Errorf("prepared %q, want earth", f.panels.prepared)
	}
	if got := f.scroller.targets; len(got) != 1 || got[0] != 800 {
		t.Errorf("scroll targets = %v, want [800]", got)
	}
}

func TestCameraFocusOncePerBody(t *testing.T) {
	f := newFixture(t)

	f.ctl.GoTo("mars", 0)
	for i := 0; i < 3; i++ {
		f.advance(time.Second)
		f.ctl.GoNext()
	}
	if n := f.rec.count("focus mars"); n != 1 {
		t.Errorf("focus mars issued %d times, want 1", n)
	}

	f.advance(time.Second)
	f.ctl.GoNext()
	if n := f.rec.count("focus mercury"); n != 1 {
		t.Errorf("focus mercury issued %d times, want 1", n)
	}
	if n := f.rec.count("focus "); n != 2 {
		t.Errorf("total focus calls = %d, want 2", n)
	}
}

func TestFocusUsesBodyOffset(t *testing.T) {
	f := newFixture(t)
	f.ctl.GoTo("saturn", 0)

	want := fmt.Sprintf("focus saturn %v", cosmos.Vec3{X: 20, Y: 8, Z: 20})
	if f.rec.count(want) != 1 {
		t.Errorf("calls = %v, want %q", f.rec.calls, want)
	}
}

func TestPanelConvergenceIsSingleStep(t *testing.T) {
	f := newFixture(t)

	f.ctl.GoTo("venus", 3)
	if f.panels.Visible() != 3 {
		t.Fatalf("visible = %d, want 3", f.panels.Visible())
	}
	if n := f.rec.count("reveal"); n != 3 {
		t.Errorf("reveal calls = %d, want 3", n)
	}

	f.rec.reset()
	f.ctl.GoTo("venus", 1)
	if f.panels.Visible() != 1 {
		t.Errorf("visible = %d, want 1", f.panels.Visible())
	}
	if n := f.rec.count("hide"); n != 2 {
		t.Errorf("hide calls = %d, want 2 (calls %v)", n, f.rec.calls)
	}
	if f.rec.count("prepare") != 0 {
		t.Error("same body should not be prepared again")
	}
}

func TestBodyChangeResetsPanels(t *testing.T) {
	f := newFixture(t)

	f.ctl.GoTo("earth", 3)
	f.rec.reset()
	f.ctl.GoTo("sun", 1)

	want := []string{"hideall", "prepare sun", "focus sun"}
	for i, w := range want {
		if i >= len(f.rec.calls) || !strings.HasPrefix(f.rec.calls[i], w) {
			t.Fatalf("calls = %v, want prefix %v", f.rec.calls, want)
		}
	}
	if f.panels.Visible() != 1 {
		t.Errorf("visible = %d, want 1", f.panels.Visible())
	}
}

func TestHomeSequence(t *testing.T) {
	f := newFixture(t)

	f.ctl.GoTo("earth", 0)
	f.scroller.settle()
	f.rec.reset()

	res := f.ctl.GoPrev()
	if res.Outcome != Moved || !res.Position.IsHome() {
		t.Fatalf("GoPrev from 0 = %+v", res)
	}

	want := []string{"overview", "hideall", "clear", "scroll 0"}
	if strings.Join(f.rec.calls, "|") != strings.Join(want, "|") {
		t.Errorf("calls = %v, want %v", f.rec.calls, want)
	}

	// Leaving home again refocuses the camera.
	f.scroller.settle()
	f.ctl.GoTo("earth", 0)
	if f.rec.count("focus earth") != 1 {
		t.Errorf("calls = %v, want earth refocused", f.rec.calls)
	}
}

func TestGoPrevAtHomeIsNoOp(t *testing.T) {
	f := newFixture(t)

	res := f.ctl.GoPrev()
	if res.Changed() || len(f.rec.calls) != 0 {
		t.Errorf("GoPrev at home = %+v, calls %v", res, f.rec.calls)
	}
}

func TestNextCooldown(t *testing.T) {
	f := newFixture(t)

	f.ctl.GoNext()
	f.advance(100 * time.Millisecond)
	if res := f.ctl.GoNext(); res.Changed() {
		t.Error("GoNext inside cooldown should be dropped")
	}
	if got := f.ctl.Position().Index(); got != 0 {
		t.Errorf("index = %d, want 0", got)
	}

	f.advance(DefaultNextCooldown)
	if res := f.ctl.GoNext(); !res.Changed() {
		t.Error("GoNext after cooldown should move")
	}
	if got := f.ctl.Position().Index(); got != 1 {
		t.Errorf("index = %d, want 1", got)
	}
}

func TestLocationWrittenOnSettle(t *testing.T) {
	f := newFixture(t)

	f.ctl.GoTo("mars", 2)
	if f.location.current != "" {
		t.Errorf("location written before settle: %q", f.location.current)
	}
	if !f.ctl.Navigating() {
		t.Error("controller should be navigating until the scroll settles")
	}

	f.scroller.settle()
	if f.location.current != "?body=mars&card=2" {
		t.Errorf("location = %q", f.location.current)
	}
	if f.ctl.Navigating() {
		t.Error("lock should clear on settle")
	}
}

func TestStaleCompletionDoesNotUnlock(t *testing.T) {
	f := newFixture(t)

	f.ctl.GoTo("mars", 0)
	first := f.scroller.pending[0]
	f.ctl.GoTo("jupiter", 0)

	first()
	if !f.ctl.Navigating() {
		t.Error("superseded scroll completion released the lock")
	}
	if f.location.current != "" {
		t.Errorf("location = %q after stale completion", f.location.current)
	}

	f.scroller.pending[1]()
	if f.ctl.Navigating() || f.location.current != "?body=jupiter&card=0" {
		t.Errorf("navigating=%v location=%q", f.ctl.Navigating(), f.location.current)
	}
}

func TestLockSuppressesStrayCallbacks(t *testing.T) {
	f := newFixture(t)

	f.ctl.GoTo("mars", 1)
	f.rec.reset()

	if f.ctl.OverviewRequested() {
		t.Error("OverviewRequested should be suppressed while navigating")
	}
	if f.ctl.ScrollObserved(0) {
		t.Error("ScrollObserved should be suppressed while navigating")
	}
	if f.ctl.ResolveProgress(0.9) {
		t.Error("ResolveProgress should be suppressed while navigating")
	}
	if len(f.rec.calls) != 0 {
		t.Errorf("commands issued while locked: %v", f.rec.calls)
	}

	f.scroller.settle()
	if !f.ctl.OverviewRequested() {
		t.Error("OverviewRequested should act once settled")
	}
	if !f.ctl.Position().IsHome() {
		t.Errorf("position = %s, want home", f.ctl.Position())
	}
}

func TestScrollObserved(t *testing.T) {
	f := newFixture(t)
	l := DefaultLayout()

	// moon region, 60% through -> card 2
	offset := l.OffsetFor(2, 0) + 0.6*l.PinnedRegionHeight
	if !f.ctl.ScrollObserved(offset) {
		t.Fatal("ScrollObserved did not move")
	}
	stop, _ := f.ctl.Position().Stop()
	if stop.Body != "moon" || stop.Card != 2 {
		t.Errorf("stop = %+v, want moon/2", stop)
	}
	if len(f.scroller.targets) != 0 {
		t.Errorf("organic scroll issued scroll commands %v", f.scroller.targets)
	}
	if f.location.current != "?body=moon&card=2" {
		t.Errorf("location = %q, want immediate write", f.location.current)
	}
	if f.ctl.Navigating() {
		t.Error("organic scroll should not take the lock")
	}

	f.rec.reset()
	if f.ctl.ScrollObserved(offset + 10) {
		t.Error("same stop should not move")
	}
	if len(f.rec.calls) != 0 {
		t.Errorf("duplicate resolution issued %v", f.rec.calls)
	}

	if !f.ctl.ScrollObserved(100) {
		t.Error("scrolling into the hero should return home")
	}
	if !f.ctl.Position().IsHome() || f.rec.count("overview") != 1 || len(f.scroller.targets) != 0 {
		t.Errorf("position=%s calls=%v targets=%v", f.ctl.Position(), f.rec.calls, f.scroller.targets)
	}
}

func TestResolveProgress(t *testing.T) {
	f := newFixture(t)

	if f.ctl.ResolveProgress(0.5) {
		t.Error("ResolveProgress at home should do nothing")
	}

	f.ctl.GoTo("jupiter", 0)
	f.scroller.settle()

	if f.ctl.ResolveProgress(0.1) {
		t.Error("progress in card 0 should dedupe")
	}
	if !f.ctl.ResolveProgress(0.8) {
		t.Fatal("ResolveProgress(0.8) did not move")
	}
	stop, _ := f.ctl.Position().Stop()
	if stop.Body != "jupiter" || stop.Card != 3 {
		t.Errorf("stop = %+v, want jupiter/3", stop)
	}
}

func TestBoot(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		wantOK   bool
		wantStop string
	}{
		{"valid", "?body=mars&card=2", true, "mars/2"},
		{"full url", "cosmos://cv?body=saturn&card=1", true, "saturn/1"},
		{"card clamped", "body=venus&card=99", true, "venus/3"},
		{"missing card", "body=sun", true, "sun/0"},
		{"unknown body", "?body=pluto&card=1", false, "home"},
		{"empty", "", false, "home"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			delay, ok := f.ctl.Boot(tt.raw)
			if ok != tt.wantOK {
				t.Fatalf("Boot(%q) ok = %v, want %v", tt.raw, ok, tt.wantOK)
			}
			if ok && delay != DefaultSettleDelay {
				t.Errorf("delay = %v, want %v", delay, DefaultSettleDelay)
			}
			if !f.ctl.Position().IsHome() {
				t.Error("Boot should not move the machine")
			}

			f.ctl.FinishBoot()
			if got := f.ctl.Position().String(); got != tt.wantStop {
				t.Errorf("after FinishBoot position = %s, want %s", got, tt.wantStop)
			}
		})
	}
}

func TestFinishBootRunsOnce(t *testing.T) {
	f := newFixture(t)

	f.ctl.Boot("?body=mars&card=2")
	if _, ok := f.ctl.FinishBoot(); !ok {
		t.Fatal("first FinishBoot should run")
	}
	f.scroller.settle()
	f.ctl.GoPrev()

	if _, ok := f.ctl.FinishBoot(); ok {
		t.Error("second FinishBoot should do nothing")
	}
	if got := f.ctl.Position().String(); got != "mars/1" {
		t.Errorf("position = %s, want mars/1", got)
	}
}

func TestUnknownGoTo(t *testing.T) {
	f := newFixture(t)

	res, ok := f.ctl.GoTo("pluto", 1)
	if ok || res.Changed() || len(f.rec.calls) != 0 {
		t.Errorf("GoTo(pluto) = %+v, %v, calls %v", res, ok, f.rec.calls)
	}
}

func TestGoHomeFromStop(t *testing.T) {
	f := newFixture(t)
	f.ctl.GoTo("neptune", 3)
	f.scroller.settle()

	res := f.ctl.GoHome()
	if !res.Changed() || !res.Position.IsHome() {
		t.Errorf("GoHome = %+v", res)
	}
	if f.panels.Visible() != 0 {
		t.Errorf("visible = %d after home", f.panels.Visible())
	}
	f.scroller.settle()
	if f.location.current != "" {
		t.Errorf("location = %q after home", f.location.current)
	}
}

func TestSetContentRefreshesCurrentBody(t *testing.T) {
	f := newFixture(t)
	f.ctl.GoTo("earth", 2)

	cat, err := content.NewCatalog([]content.Body{{ID: "earth", Title: "Home World"}})
	if err != nil {
		t.Fatal(err)
	}
	f.rec.reset()
	f.ctl.SetContent(cat)

	if f.rec.count("prepare earth") != 1 {
		t.Errorf("calls = %v, want earth prepared again", f.rec.calls)
	}
	if f.panels.Visible() != 2 {
		t.Errorf("visible = %d, want 2 restored", f.panels.Visible())
	}
}

func TestCloseDetaches(t *testing.T) {
	f := newFixture(t)
	f.ctl.Close()

	f.ctl.Machine().JumpToIndex(4)
	if len(f.rec.calls) != 0 {
		t.Errorf("closed controller issued %v", f.rec.calls)
	}
}

func TestNilDepsAreSafe(t *testing.T) {
	m := newReferenceMachine(t)
	ctl := NewController(m, DefaultLayout(), Deps{}, Options{NextCooldown: time.Millisecond})

	ctl.GoTo("mars", 3)
	if ctl.Navigating() {
		t.Error("no-op scroller should settle immediately")
	}
	ctl.GoHome()
	if !ctl.Position().IsHome() {
		t.Errorf("position = %s", ctl.Position())
	}
}
