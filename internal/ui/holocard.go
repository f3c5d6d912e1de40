package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-cosmos/internal/content"
)

// DefaultCardWidth is the holocard column width including borders.
const DefaultCardWidth = 48

// Holocard shows a body's record as up to three stacked panels. It
// implements nav.PanelPresenter; panels appear in content.PanelOrder.
type Holocard struct {
	rec     content.Body
	visible int
	width   int

	birth time.Time
	now   func() time.Time
}

// NewHolocard creates an empty holocard. birth feeds the live stats; a
// zero value leaves them as written.
func NewHolocard(birth time.Time, now func() time.Time) *Holocard {
	if now == nil {
		now = time.Now
	}
	return &Holocard{width: DefaultCardWidth, birth: birth, now: now}
}

// Prepare loads rec without revealing anything.
func (h *Holocard) Prepare(rec content.Body) {
	h.rec = rec
	h.visible = 0
}

// RevealNextPanel shows one more panel. It returns false when all panels
// are already visible.
func (h *Holocard) RevealNextPanel() bool {
	if h.visible >= content.PanelCount {
		return false
	}
	h.visible++
	return true
}

// HideLastPanel hides the most recently revealed panel.
func (h *Holocard) HideLastPanel() bool {
	if h.visible == 0 {
		return false
	}
	h.visible--
	return true
}

// HideAll hides every panel.
func (h *Holocard) HideAll() {
	h.visible = 0
}

// Visible returns the number of panels shown.
func (h *Holocard) Visible() int {
	return h.visible
}

// Record returns the loaded record.
func (h *Holocard) Record() content.Body {
	return h.rec
}

// SetWidth sets the column width.
func (h *Holocard) SetWidth(w int) {
	if w < 20 {
		w = 20
	}
	h.width = w
}

// Width returns the column width.
func (h *Holocard) Width() int {
	return h.width
}

// View renders the visible panels, or "" when none are shown.
func (h *Holocard) View() string {
	if h.visible == 0 {
		return ""
	}

	rec := content.WithLiveStats(h.rec, h.birth, h.now())
	panels := make([]string, 0, h.visible)
	for _, kind := range content.PanelOrder[:h.visible] {
		panels = append(panels, h.renderPanel(kind, rec))
	}
	return lipgloss.JoinVertical(lipgloss.Left, panels...)
}

func (h *Holocard) renderPanel(kind content.PanelKind, rec content.Body) string {
	accent := lipgloss.Color(rec.Accent)
	if rec.Accent == "" {
		accent = lipgloss.Color("#9D4EDD")
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(accent).
		Padding(0, 1).
		Width(h.width - 2)
	headingStyle := lipgloss.NewStyle().Foreground(accent).Bold(true)

	inner := h.width - 4
	var body string
	switch kind {
	case content.PanelTelemetry:
		body = renderTelemetry(rec, inner)
	case content.PanelNarrative:
		body = renderNarrative(rec, accent, inner)
	case content.PanelRecord:
		body = renderRecord(rec, accent, inner)
	}

	return box.Render(headingStyle.Render("▍"+kind.String()) + "\n" + body)
}

func renderTelemetry(rec content.Body, width int) string {
	titleStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Bold(true)
	subtitleStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Italic(true)
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Width(18)
	valueStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("252"))

	var b strings.Builder
	b.WriteString(titleStyle.Render(strings.ToUpper(rec.Title)))
	b.WriteString("\n")
	if rec.Subtitle != "" {
		b.WriteString(subtitleStyle.Render(rec.Subtitle))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	for _, s := range rec.Stats {
		b.WriteString(labelStyle.Render(s.Label))
		b.WriteString(valueStyle.Render(truncate(s.Value, width-18)))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderNarrative(rec content.Body, accent lipgloss.Color, width int) string {
	relationStyle := lipgloss.NewStyle().Foreground(accent)
	nameStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Bold(true)
	textStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Width(width)
	quoteStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Italic(true).Width(width)

	var parts []string
	if p := rec.Personal; p.Name != "" {
		header := relationStyle.Render(strings.ToUpper(p.Relation)) + "  " + nameStyle.Render(p.Name)
		parts = append(parts, header)
		if p.Bio != "" {
			parts = append(parts, textStyle.Render(p.Bio))
		}
	}
	if rec.Narrative != "" {
		parts = append(parts, textStyle.Render(rec.Narrative))
	}
	if rec.Quote != "" {
		parts = append(parts, quoteStyle.Render("“"+rec.Quote+"”"))
	}
	return strings.Join(parts, "\n\n")
}

func renderRecord(rec content.Body, accent lipgloss.Color, width int) string {
	pro := rec.Professional

	titleStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Bold(true)
	sectionStyle := lipgloss.NewStyle().Foreground(accent)
	textStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Width(width)
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	valueStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("252"))

	var b strings.Builder
	if pro.Title != "" {
		b.WriteString(titleStyle.Render(pro.Title))
		b.WriteString("\n")
	}
	if pro.Summary != "" {
		b.WriteString(textStyle.Render(pro.Summary))
		b.WriteString("\n")
	}

	if len(pro.Skills) > 0 {
		b.WriteString("\n" + sectionStyle.Render("SKILLS") + "\n")
		b.WriteString(textStyle.Render(strings.Join(pro.Skills, " · ")))
		b.WriteString("\n")
	}

	if len(pro.Projects) > 0 {
		b.WriteString("\n" + sectionStyle.Render("PROJECTS") + "\n")
		for _, p := range pro.Projects {
			b.WriteString(valueStyle.Render("◆ " + p.Name))
			if p.Stack != "" {
				b.WriteString(dimStyle.Render("  " + p.Stack))
			}
			b.WriteString("\n")
			if p.Desc != "" {
				b.WriteString(dimStyle.Render("  " + truncate(p.Desc, width-2)))
				b.WriteString("\n")
			}
		}
	}

	if len(pro.History) > 0 {
		b.WriteString("\n" + sectionStyle.Render("HISTORY") + "\n")
		for _, r := range pro.History {
			line := r.Role
			if r.Company != "" {
				line = fmt.Sprintf("%s · %s", r.Role, r.Company)
			}
			b.WriteString(valueStyle.Render(truncate(line, width)))
			b.WriteString("\n")
			if r.Period != "" {
				b.WriteString(dimStyle.Render("  " + r.Period))
				b.WriteString("\n")
			}
		}
	}

	if len(pro.Podcasts) > 0 {
		b.WriteString("\n" + sectionStyle.Render("ON AIR") + "\n")
		for _, p := range pro.Podcasts {
			b.WriteString(valueStyle.Render("▸ " + truncate(p.Title, width-2)))
			b.WriteString("\n")
			if p.Context != "" {
				b.WriteString(dimStyle.Render("  " + truncate(p.Context, width-2)))
				b.WriteString("\n")
			}
		}
	}

	return strings.TrimRight(b.String(), "\n")
}

// truncate shortens s to maxLen runes with an ellipsis.
func truncate(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen == 1 {
		return "…"
	}
	return string(r[:maxLen-1]) + "…"
}
