package nav

import (
	"time"

	"github.com/litescript/ls-cosmos/internal/content"
	"github.com/litescript/ls-cosmos/internal/cosmos"
	"github.com/litescript/ls-cosmos/internal/deeplink"
)

// Renderer moves the camera. Calls are asynchronous and a new call
// supersedes the one in flight.
type Renderer interface {
	FocusOn(body BodyID, offset cosmos.Vec3)
	ReturnToOverview()
}

// PanelPresenter shows a body's holocard one panel at a time.
type PanelPresenter interface {
	// Prepare loads a record without revealing any panel.
	Prepare(rec content.Body)
	RevealNextPanel() bool
	HideLastPanel() bool
	HideAll()
	Visible() int
}

// Scroller animates the scroll track. onComplete fires once the offset is
// reached; a superseded animation may never call it.
type Scroller interface {
	AnimateTo(offset float64, onComplete func())
}

// Location is the external "address bar".
type Location interface {
	Replace(link deeplink.Link)
	Clear()
}

// ContentSource resolves a body id to its holocard record.
type ContentSource interface {
	Lookup(id string) (content.Body, bool)
}

// Logger is the subset of the application logger the controller uses.
type Logger interface {
	Debug(format string, args ...interface{})
	Warn(format string, args ...interface{})
}

// Deps are the collaborators a Controller drives. Nil fields are replaced
// with no-op implementations.
type Deps struct {
	Renderer Renderer
	Panels   PanelPresenter
	Scroller Scroller
	Location Location
	Content  ContentSource
	Logger   Logger
	Clock    func() time.Time
}

// Options tunes controller timing and camera placement.
type Options struct {
	NextCooldown  time.Duration
	SettleDelay   time.Duration
	CameraOffsets map[BodyID]cosmos.Vec3
}

// Default timings.
const (
	DefaultNextCooldown = 300 * time.Millisecond
	DefaultSettleDelay  = 500 * time.Millisecond
)

// DefaultOptions returns the reference timings and per-body camera offsets.
func DefaultOptions() Options {
	offsets := make(map[BodyID]cosmos.Vec3)
	for id, v := range cosmos.CameraOffsets() {
		offsets[BodyID(id)] = v
	}
	return Options{
		NextCooldown:  DefaultNextCooldown,
		SettleDelay:   DefaultSettleDelay,
		CameraOffsets: offsets,
	}
}

// Controller is the only component that turns machine transitions into
// collaborator commands and the only one that writes the location.
//
// Like Machine, it is driven from a single event loop. Scroller callbacks
// must arrive on that loop too.
type Controller struct {
	machine *Machine
	layout  Layout
	deps    Deps
	opts    Options

	lastBody   BodyID // "" = overview
	navigating bool   // a programmatic scroll is in flight
	scrollGen  int
	organic    bool // the transition being applied came from scroll input
	lastNext   time.Time
	pending    *deeplink.Link

	unsubscribe func()
}

// NewController wires a controller to m. It subscribes to m for its
// lifetime; call Close to detach.
func NewController(m *Machine, layout Layout, deps Deps, opts Options) *Controller {
	if deps.Renderer == nil {
		deps.Renderer = nopRenderer{}
	}
	if deps.Panels == nil {
		deps.Panels = &nopPanels{}
	}
	if deps.Scroller == nil {
		deps.Scroller = nopScroller{}
	}
	if deps.Location == nil {
		deps.Location = nopLocation{}
	}
	if deps.Content == nil {
		deps.Content = content.Default()
	}
	if deps.Logger == nil {
		deps.Logger = nopLogger{}
	}
	if deps.Clock == nil {
		deps.Clock = time.Now
	}
	if opts.CameraOffsets == nil {
		opts.CameraOffsets = DefaultOptions().CameraOffsets
	}

	c := &Controller{
		machine: m,
		layout:  layout,
		deps:    deps,
		opts:    opts,
	}
	c.unsubscribe = m.Subscribe(c.onChange)
	return c
}

// Close detaches the controller from its machine.
func (c *Controller) Close() {
	if c.unsubscribe != nil {
		c.unsubscribe()
		c.unsubscribe = nil
	}
}

// Position returns the machine's current position.
func (c *Controller) Position() Position {
	return c.machine.Current()
}

// Machine returns the machine the controller drives.
func (c *Controller) Machine() *Machine {
	return c.machine
}

// Layout returns the scroll layout.
func (c *Controller) Layout() Layout {
	return c.layout
}

// Navigating reports whether a programmatic scroll has not yet settled.
func (c *Controller) Navigating() bool {
	return c.navigating
}

// GoNext advances one stop. From Home it jumps to the first stop. Calls
// inside the cooldown window after an accepted call are dropped.
func (c *Controller) GoNext() Result {
	now := c.deps.Clock()
	if !c.lastNext.IsZero() && now.Sub(c.lastNext) < c.opts.NextCooldown {
		c.deps.Logger.Debug("nav: next debounced")
		return c.machine.noop()
	}
	c.lastNext = now

	if c.machine.Current().IsHome() {
		return c.machine.JumpToIndex(0)
	}
	return c.machine.Advance()
}

// GoPrev retreats one stop; from the first stop it returns to Home.
func (c *Controller) GoPrev() Result {
	return c.machine.Retreat()
}

// GoTo jumps to a body and card. ok is false for an unknown body.
func (c *Controller) GoTo(body BodyID, card int) (Result, bool) {
	res, ok := c.machine.JumpToBodyCard(body, card)
	if !ok {
		c.deps.Logger.Debug("nav: ignoring unknown body %q", body)
	}
	return res, ok
}

// GoHome returns to the overview.
func (c *Controller) GoHome() Result {
	return c.machine.Reset()
}

// ScrollObserved resolves a raw scroll offset reported by organic input
// (wheel, drag) into a stop or Home. It reports whether the machine moved.
// Input is ignored while a programmatic scroll is in flight.
func (c *Controller) ScrollObserved(offset float64) bool {
	if c.navigating {
		return false
	}
	region := c.layout.Locate(offset, len(c.machine.bodies))
	if region.Home {
		return c.OverviewRequested()
	}
	body := c.machine.bodies[region.BodyIndex]
	card := c.layout.CardForProgress(region.Progress)
	return c.applyOrganic(func() Result {
		res, _ := c.machine.JumpToBodyCard(body, card)
		return res
	})
}

// ResolveProgress maps progress through the current body's pinned region
// to a card. It does nothing at Home or while navigating.
func (c *Controller) ResolveProgress(progress float64) bool {
	if c.navigating {
		return false
	}
	stop, ok := c.machine.Current().Stop()
	if !ok {
		return false
	}
	card := c.layout.CardForProgress(progress)
	if card == stop.Card {
		return false
	}
	return c.applyOrganic(func() Result {
		res, _ := c.machine.JumpToBodyCard(stop.Body, card)
		return res
	})
}

// OverviewRequested handles a collaborator asking for the overview, such
// as the scroll track re-entering the hero. It is suppressed while a
// programmatic navigation is in flight.
func (c *Controller) OverviewRequested() bool {
	if c.navigating {
		c.deps.Logger.Debug("nav: overview request suppressed during navigation")
		return false
	}
	return c.applyOrganic(c.machine.Reset)
}

// Boot validates a startup link. When it names a known body the target is
// held and the settle delay returned; the caller invokes FinishBoot once
// the delay has passed.
func (c *Controller) Boot(raw string) (time.Duration, bool) {
	link, ok := deeplink.Parse(raw, c.validBody, c.machine.CardsPerBody()-1)
	if !ok {
		if raw != "" {
			c.deps.Logger.Debug("nav: ignoring startup link %q", raw)
		}
		return 0, false
	}
	c.pending = &link
	return c.opts.SettleDelay, true
}

// FinishBoot performs the single jump held by Boot. Later calls do
// nothing.
func (c *Controller) FinishBoot() (Result, bool) {
	if c.pending == nil {
		return c.machine.noop(), false
	}
	link := *c.pending
	c.pending = nil
	return c.GoTo(BodyID(link.Body), link.Card)
}

// Refresh re-reads the current body's record, e.g. after a content
// reload, and restores the panel count.
func (c *Controller) Refresh() {
	stop, ok := c.machine.Current().Stop()
	if !ok {
		return
	}
	c.prepare(stop.Body)
	c.convergePanels(stop.Card)
}

// SetContent swaps the content source and refreshes the current body.
func (c *Controller) SetContent(src ContentSource) {
	if src == nil {
		return
	}
	c.deps.Content = src
	c.Refresh()
}

func (c *Controller) validBody(id string) bool {
	return c.machine.HasBody(BodyID(id))
}

// applyOrganic runs a transition that originated from scroll input: the
// track is already where the user put it, so no scroll command is issued.
func (c *Controller) applyOrganic(fn func() Result) bool {
	c.organic = true
	res := fn()
	c.organic = false
	return res.Changed()
}

func (c *Controller) onChange(pos Position) {
	c.deps.Logger.Debug("nav: -> %s", pos)

	stop, ok := pos.Stop()
	if !ok {
		c.enterOverview()
		return
	}

	if stop.Body != c.lastBody {
		c.prepare(stop.Body)
		c.deps.Renderer.FocusOn(stop.Body, c.cameraOffset(stop.Body))
		c.lastBody = stop.Body
	}
	c.convergePanels(stop.Card)

	if c.organic {
		c.deps.Location.Replace(linkFor(stop))
		return
	}
	c.scrollTo(c.layout.OffsetForStop(stop))
}

func (c *Controller) enterOverview() {
	c.deps.Renderer.ReturnToOverview()
	c.deps.Panels.HideAll()
	c.deps.Location.Clear()
	c.lastBody = ""
	if !c.organic {
		c.scrollTo(0)
	}
}

func (c *Controller) prepare(body BodyID) {
	c.deps.Panels.HideAll()
	rec, ok := c.deps.Content.Lookup(string(body))
	if !ok {
		c.deps.Logger.Warn("nav: no content for %s", body)
		rec = content.Body{ID: string(body), Title: string(body)}
	}
	c.deps.Panels.Prepare(rec)
}

// convergePanels steps the presenter one panel at a time until it shows
// card panels. A presenter that refuses a step ends the loop.
func (c *Controller) convergePanels(card int) {
	p := c.deps.Panels
	for p.Visible() < card {
		if !p.RevealNextPanel() {
			return
		}
	}
	for p.Visible() > card {
		if !p.HideLastPanel() {
			return
		}
	}
}

func (c *Controller) cameraOffset(body BodyID) cosmos.Vec3 {
	if v, ok := c.opts.CameraOffsets[body]; ok {
		return v
	}
	return cosmos.DefaultCameraOffset
}

// scrollTo issues a programmatic scroll and holds the navigation lock until
// the scroller reports completion. Only the latest scroll can release it.
func (c *Controller) scrollTo(offset float64) {
	c.scrollGen++
	gen := c.scrollGen
	c.navigating = true
	c.deps.Scroller.AnimateTo(offset, func() { c.settled(gen) })
}

func (c *Controller) settled(gen int) {
	if gen != c.scrollGen {
		return
	}
	c.navigating = false

	stop, ok := c.machine.Current().Stop()
	if !ok {
		c.deps.Location.Clear()
		return
	}
	c.deps.Location.Replace(linkFor(stop))
}

func linkFor(s Stop) deeplink.Link {
	return deeplink.Link{Body: string(s.Body), Card: s.Card}
}

type nopRenderer struct{}

func (nopRenderer) FocusOn(BodyID, cosmos.Vec3) {}
func (nopRenderer) ReturnToOverview()           {}

// nopPanels tracks a count so convergence terminates.
type nopPanels struct{ visible int }

func (p *nopPanels) Prepare(content.Body) {}
func (p *nopPanels) RevealNextPanel() bool {
	if p.visible >= content.PanelCount {
		return false
	}
	p.visible++
	return true
}
func (p *nopPanels) HideLastPanel() bool {
	if p.visible == 0 {
		return false
	}
	p.visible--
	return true
}
func (p *nopPanels) HideAll()     { p.visible = 0 }
func (p *nopPanels) Visible() int { return p.visible }

type nopScroller struct{}

func (nopScroller) AnimateTo(_ float64, onComplete func()) {
	if onComplete != nil {
		onComplete()
	}
}

type nopLocation struct{}

func (nopLocation) Replace(deeplink.Link) {}
func (nopLocation) Clear()                {}

type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Warn(string, ...interface{})  {}
