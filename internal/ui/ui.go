// Package ui provides the terminal user interface using Bubble Tea.
package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-cosmos/internal/content"
	"github.com/litescript/ls-cosmos/internal/cosmos"
	"github.com/litescript/ls-cosmos/internal/journal"
	"github.com/litescript/ls-cosmos/internal/logging"
	"github.com/litescript/ls-cosmos/internal/nav"
	"github.com/litescript/ls-cosmos/internal/version"
)

// Default animation settings.
const (
	DefaultAnimTick = 50 * time.Millisecond
	wheelStep       = 100.0 // offset per wheel notch
)

// Msg types for Bubble Tea
type (
	// AnimTickMsg advances the scene and the scroll track.
	AnimTickMsg time.Time

	// bootMsg fires once the startup settle delay has passed.
	bootMsg struct{}

	// ContentReloadMsg carries a freshly parsed catalog.
	ContentReloadMsg struct {
		Catalog *content.Catalog
	}

	// ContentErrorMsg reports a content file that failed to reload.
	ContentErrorMsg struct {
		Err error
	}
)

// Config wires the model to the navigation core and its sources.
type Config struct {
	Machine *nav.Machine
	Layout  nav.Layout
	Options nav.Options
	Catalog *content.Catalog
	// Location receives the deep link for every settled stop.
	Location nav.Location
	Journal  *journal.Journal
	Logger   *logging.Logger
	Bodies   []cosmos.BodyConfig

	Birth      time.Time
	AnimTick   time.Duration
	ScrollTime time.Duration
	SimSpeed   float64
	FocusSpeed float64

	// BootLink is the startup deep link; "" starts on the overview.
	BootLink string

	ContentUpdates <-chan *content.Catalog
	ContentErrors  <-chan error

	Clock func() time.Time
}

// Model is the root Bubble Tea model. The collaborators it hands to the
// controller are pointers so every copy of Model drives the same state.
type Model struct {
	cfg Config
	ctl *nav.Controller
	log *logging.Logger

	scene   *SceneView
	card    *Holocard
	track   *ScrollTrack
	journal *journal.Journal

	keys KeyMap
	help help.Model

	// UI state
	width       int
	height      int
	ready       bool
	animTick    int
	lastAnim    time.Time
	bootDelay   time.Duration
	booting     bool
	showJournal bool
	statusMsg   string
}

// New creates the root UI model. cfg.Machine is required.
func New(cfg Config) Model {
	if cfg.AnimTick <= 0 {
		cfg.AnimTick = DefaultAnimTick
	}
	if cfg.ScrollTime < 0 {
		cfg.ScrollTime = 0
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.Discard()
	}
	if cfg.Catalog == nil {
		cfg.Catalog = content.Default()
	}
	if cfg.Bodies == nil {
		cfg.Bodies = cosmos.DefaultBodies()
	}

	scene := NewSceneView(cfg.Bodies, cfg.SimSpeed, cfg.FocusSpeed)
	card := NewHolocard(cfg.Birth, cfg.Clock)
	track := NewScrollTrack(cfg.Layout.TotalHeight(len(cfg.Machine.Bodies())), cfg.ScrollTime)

	deps := nav.Deps{
		Renderer: scene,
		Panels:   card,
		Scroller: track,
		Location: cfg.Location,
		Content:  cfg.Catalog,
		Logger:   cfg.Logger.Named("nav"),
		Clock:    cfg.Clock,
	}
	ctl := nav.NewController(cfg.Machine, cfg.Layout, deps, cfg.Options)

	if cfg.Journal != nil {
		cfg.Journal.Attach(cfg.Machine)
	}

	m := Model{
		cfg:     cfg,
		ctl:     ctl,
		log:     cfg.Logger.Named("ui"),
		scene:   scene,
		card:    card,
		track:   track,
		journal: cfg.Journal,
		keys:    DefaultKeyMap(),
		help:    help.New(),
	}
	m.bootDelay, m.booting = ctl.Boot(cfg.BootLink)
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{animTickCmd(m.cfg.AnimTick)}
	if m.booting {
		cmds = append(cmds, bootCmd(m.bootDelay))
	}
	if cmd := waitForContent(m.cfg.ContentUpdates, m.cfg.ContentErrors); cmd != nil {
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if cmd := m.handleKey(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}

	case tea.MouseMsg:
		if msg.Action != tea.MouseActionPress {
			break
		}
		switch msg.Button {
		case tea.MouseButtonWheelDown:
			m.scrollBy(wheelStep)
		case tea.MouseButtonWheelUp:
			m.scrollBy(-wheelStep)
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.help.Width = msg.Width
		m.resize()

	case AnimTickMsg:
		cmds = append(cmds, animTickCmd(m.cfg.AnimTick))
		dt := m.frameDelta(time.Time(msg))
		m.lastAnim = time.Time(msg)
		m.animTick++
		m.scene.Advance(dt)
		m.track.Advance(dt)

	case bootMsg:
		m.booting = false
		if res, ok := m.ctl.FinishBoot(); ok {
			m.log.Info("resumed at %s", res.Position)
		}

	case ContentReloadMsg:
		cmds = append(cmds, waitForContent(m.cfg.ContentUpdates, m.cfg.ContentErrors))
		if msg.Catalog == nil {
			break
		}
		if err := msg.Catalog.Require(m.bodyIDs()); err != nil {
			m.log.Warn("content reload rejected: %v", err)
			m.statusMsg = "Content reload rejected: " + err.Error()
			break
		}
		m.cfg.Catalog = msg.Catalog
		m.ctl.SetContent(msg.Catalog)
		m.log.Info("content reloaded (%d bodies)", msg.Catalog.Len())
		m.statusMsg = fmt.Sprintf("Content reloaded (%d bodies)", msg.Catalog.Len())

	case ContentErrorMsg:
		cmds = append(cmds, waitForContent(m.cfg.ContentUpdates, m.cfg.ContentErrors))
		m.log.Warn("content reload failed: %v", msg.Err)
		m.statusMsg = "Content reload failed: " + msg.Err.Error()
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.ctl.Close()
		return tea.Quit
	case key.Matches(msg, m.keys.Next):
		m.ctl.GoNext()
	case key.Matches(msg, m.keys.Prev):
		m.ctl.GoPrev()
	case key.Matches(msg, m.keys.Home):
		m.ctl.GoHome()
	case key.Matches(msg, m.keys.Jump):
		bodies := m.cfg.Machine.Bodies()
		if i := jumpIndex(msg.String()); i >= 0 && i < len(bodies) {
			m.ctl.GoTo(bodies[i], 0)
		}
	case key.Matches(msg, m.keys.ScrollDown):
		m.scrollBy(m.cardStep())
	case key.Matches(msg, m.keys.ScrollUp):
		m.scrollBy(-m.cardStep())
	case key.Matches(msg, m.keys.Journal):
		m.showJournal = !m.showJournal
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return nil
}

// scrollBy is organic scrolling: the track moves first and the controller
// resolves where it landed.
func (m *Model) scrollBy(delta float64) {
	offset, moved := m.track.ScrollBy(delta)
	if !moved {
		return
	}
	m.ctl.ScrollObserved(offset)
}

func (m Model) cardStep() float64 {
	l := m.cfg.Layout
	if l.CardsPerBody <= 0 {
		return wheelStep
	}
	return l.PinnedRegionHeight / float64(l.CardsPerBody)
}

func (m Model) frameDelta(now time.Time) time.Duration {
	if m.lastAnim.IsZero() {
		return m.cfg.AnimTick
	}
	d := now.Sub(m.lastAnim)
	if d <= 0 || d > maxFrame {
		return m.cfg.AnimTick
	}
	return d
}

func (m Model) bodyIDs() []string {
	bodies := m.cfg.Machine.Bodies()
	ids := make([]string, len(bodies))
	for i, b := range bodies {
		ids[i] = string(b)
	}
	return ids
}

// resize splits the width between the scene and the side column.
func (m *Model) resize() {
	// Logo 8 lines, progress 1, footer 2.
	contentHeight := m.height - 11
	if contentHeight < 6 {
		contentHeight = 6
	}
	side := DefaultCardWidth
	if m.width < side*2 {
		side = m.width / 2
	}
	m.card.SetWidth(side)
	m.scene.SetSize(m.width-side, contentHeight)
}

// Controller returns the navigation controller.
func (m Model) Controller() *nav.Controller {
	return m.ctl
}

// Position returns the current navigation position.
func (m Model) Position() nav.Position {
	return m.ctl.Position()
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	side := m.card.View()
	if m.showJournal && m.journal != nil {
		side = RenderJournalPanel(m.journal.Snapshot(), m.cfg.Clock(), m.card.Width())
	}
	body := lipgloss.JoinHorizontal(lipgloss.Top, m.scene.View(), side)

	progress := m.track.View(m.width, m.cfg.Layout, len(m.cfg.Machine.Bodies()))
	return m.renderLogo() + body + "\n" + progress + "\n" + m.renderFooter()
}

var logoLetters = map[rune][6]string{
	'L': {"██╗     ", "██║     ", "██║     ", "██║     ", "███████╗", "╚══════╝"},
	'S': {"███████╗", "██╔════╝", "███████╗", "╚════██║", "███████║", "╚══════╝"},
	'-': {"      ", "      ", "█████╗", "╚════╝", "      ", "      "},
	'C': {" ██████╗", "██╔════╝", "██║     ", "██║     ", "╚██████╗", " ╚═════╝"},
	'O': {" ██████╗ ", "██╔═══██╗", "██║   ██║", "██║   ██║", "╚██████╔╝", " ╚═════╝ "},
	'M': {"███╗   ███╗", "████╗ ████║", "██╔████╔██║", "██║╚██╔╝██║", "██║ ╚═╝ ██║", "╚═╝     ╚═╝"},
}

func logoLines(word string) []string {
	lines := make([]string, 6)
	for i := range lines {
		var b strings.Builder
		b.WriteString("  ")
		for _, r := range word {
			b.WriteString(logoLetters[r][i])
		}
		lines[i] = b.String()
	}
	return lines
}

func (m Model) renderLogo() string {
	logo := logoLines("LS-COSMOS")

	var b strings.Builder
	b.WriteString("\n")

	// Render each line with a horizontal truecolor gradient
	for row, line := range logo {
		runes := []rune(line)
		lineLen := len(runes)
		for col, r := range runes {
			color := gradientColor(col, row, lineLen, len(logo))
			b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(string(r)))
		}
		b.WriteString("\n")
	}

	muted := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	b.WriteString(muted.Render(fmt.Sprintf("  A scroll through the solar system | v%s", version.Version)))
	b.WriteString("\n")

	return b.String()
}

// gradientColor returns a hex color for a position in the logo gradient:
// deep blue through violet to a warm solar orange.
func gradientColor(col, row, width, height int) string {
	xRatio := float64(col) / float64(width)
	yRatio := float64(row) / float64(height)

	// Blue (#3B82F6) -> Violet (#8B5CF6) -> Orange (#FFAA00)
	var r, g, b float64
	if xRatio < 0.5 {
		t := xRatio / 0.5
		r = 59 + t*(139-59)
		g = 130 + t*(92-130)
		b = 246
	} else {
		t := (xRatio - 0.5) / 0.5
		r = 139 + t*(255-139)
		g = 92 + t*(170-92)
		b = 246 + t*(0-246)
	}

	// Vertical fade: brighter at top, darker toward bottom
	k := 1.0 - (yRatio * 0.5)
	return fmt.Sprintf("#%02X%02X%02X", clampByte(r*k), clampByte(g*k), clampByte(b*k))
}

func clampByte(v float64) int {
	switch {
	case v < 0:
		return 0
	case v > 255:
		return 255
	default:
		return int(v)
	}
}

func (m Model) renderFooter() string {
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	accentStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#7B2CBF"))
	posStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#9D4EDD")).Bold(true)

	// Animated spinner frames
	spinnerFrames := []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

	var status string
	pos := m.ctl.Position()
	if stop, ok := pos.Stop(); ok {
		status = posStyle.Render(strings.ToUpper(string(stop.Body))) +
			dimStyle.Render(fmt.Sprintf(" card %d/%d · stop %d/%d",
				stop.Card+1, m.cfg.Machine.CardsPerBody(), stop.Index+1, m.cfg.Machine.Total()))
	} else {
		status = posStyle.Render("OVERVIEW")
	}
	if m.ctl.Navigating() || m.booting {
		status = accentStyle.Render(spinnerFrames[m.animTick%len(spinnerFrames)]) + " " + status
	}

	footer := "  " + status + "  " + dimStyle.Render("|") + "  " + m.help.View(m.keys)
	if m.statusMsg != "" {
		footer += "\n  " + dimStyle.Render(m.statusMsg)
	}
	return footer
}

func animTickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return AnimTickMsg(t)
	})
}

func bootCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return bootMsg{}
	})
}

// waitForContent blocks until the watcher delivers a catalog or an error.
// Update re-arms it after each message.
func waitForContent(updates <-chan *content.Catalog, errs <-chan error) tea.Cmd {
	if updates == nil && errs == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case c, ok := <-updates:
			if !ok {
				return nil
			}
			return ContentReloadMsg{Catalog: c}
		case err, ok := <-errs:
			if !ok {
				return nil
			}
			return ContentErrorMsg{Err: err}
		}
	}
}
