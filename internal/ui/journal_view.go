package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-cosmos/internal/content"
	"github.com/litescript/ls-cosmos/internal/journal"
)

// Journal event colors
const (
	colorEventArrive  = "#7CFC00"
	colorEventAdvance = "#FFD700"
	colorEventHome    = "#9D4EDD"
)

// journalRecent is how many events the panel lists.
const journalRecent = 8

// RenderJournalPanel renders visit counts and the latest navigation
// events.
//
//	VISITS
//	mars      3   1m 20s
//	earth     1   12s
//
//	RECENT
//	ARRIVE   mars/0    2 minutes ago
func RenderJournalPanel(snap journal.Snapshot, now time.Time, width int) string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("60")).
		Padding(0, 1).
		Width(width - 2)
	headingStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("135")).Bold(true)
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))

	var lines []string
	lines = append(lines, headingStyle.Render("▍VISITS"))
	if len(snap.Bodies) == 0 {
		lines = append(lines, dimStyle.Render("No stops visited yet"))
	}
	for _, bs := range snap.Bodies {
		lines = append(lines, labelStyle.Render(fmt.Sprintf("%-9s %3d", bs.Body, bs.Visits))+
			dimStyle.Render("   "+bs.Dwell.Round(time.Second).String()))
	}

	lines = append(lines, "", headingStyle.Render("▍RECENT"))
	events := snap.Events
	if len(events) > journalRecent {
		events = events[len(events)-journalRecent:]
	}
	if len(events) == 0 {
		lines = append(lines, dimStyle.Render("Nothing yet"))
	}
	// Newest first.
	for i := len(events) - 1; i >= 0; i-- {
		e := events[i]
		where := "home"
		if e.Body != "" {
			where = fmt.Sprintf("%s/%d", e.Body, e.Card)
		}
		line := colorByEvent(e.Type, fmt.Sprintf("%-8s", e.Type)) +
			labelStyle.Render(fmt.Sprintf("%-11s", where)) +
			dimStyle.Render(content.Since(e.Timestamp, now))
		lines = append(lines, line)
	}

	return box.Render(strings.Join(lines, "\n"))
}

func colorByEvent(t journal.EventType, text string) string {
	var color string
	switch t {
	case journal.EventArrive:
		color = colorEventArrive
	case journal.EventAdvance:
		color = colorEventAdvance
	default:
		color = colorEventHome
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(text)
}
