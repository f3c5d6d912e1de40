package content

import (
	"time"

	"github.com/dustin/go-humanize"
)

// PanelKind identifies one of the holocard's three panels.
type PanelKind int

const (
	PanelTelemetry PanelKind = iota // stats
	PanelNarrative                  // header, narrative, quote
	PanelRecord                     // professional service record
)

// PanelCount is the number of panels on a holocard.
const PanelCount = 3

// PanelOrder is the fixed reveal order.
var PanelOrder = [PanelCount]PanelKind{PanelTelemetry, PanelNarrative, PanelRecord}

// String returns the panel heading.
func (k PanelKind) String() string {
	switch k {
	case PanelTelemetry:
		return "TELEMETRY"
	case PanelNarrative:
		return "TRANSMISSION"
	case PanelRecord:
		return "SERVICE RECORD"
	default:
		return "UNKNOWN"
	}
}

// TimeHereLabel is the stat whose value is computed from the birth date.
const TimeHereLabel = "Your Time Here"

// WithLiveStats returns b with computed stats filled in. A zero birth
// date leaves the stats untouched.
func WithLiveStats(b Body, birth, now time.Time) Body {
	if birth.IsZero() || now.Before(birth) {
		return b
	}
	stats := make([]Stat, len(b.Stats))
	copy(stats, b.Stats)
	for i := range stats {
		if stats[i].Label == TimeHereLabel {
			stats[i].Value = DaysHere(birth, now)
		}
	}
	b.Stats = stats
	return b
}

// DaysHere formats the whole days between birth and now, e.g.
// "15,342 days".
func DaysHere(birth, now time.Time) string {
	days := int64(now.Sub(birth).Hours() / 24)
	if days == 1 {
		return "1 day"
	}
	return humanize.Comma(days) + " days"
}

// Since renders a relative time ("3 minutes ago") for journal lines.
func Since(t, now time.Time) string {
	return humanize.RelTime(t, now, "ago", "from now")
}
