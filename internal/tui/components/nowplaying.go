package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/tessro/aiosctl/internal/aios"
	"github.com/tessro/aiosctl/internal/monitor"
	"github.com/tessro/aiosctl/internal/tui/styles"
)

// NowPlaying displays the current track and transport controls
type NowPlaying struct{}

// NewNowPlaying creates a new NowPlaying component
func NewNowPlaying() *NowPlaying {
	return &NowPlaying{}
}

// Render renders the now playing panel
func (n *NowPlaying) Render(snap monitor.Snapshot, width, height int, focused bool) string {
	title := styles.PanelTitle("Now Playing", focused)

	var content string
	switch {
	case snap.Power == aios.PowerOff:
		content = styles.Off.Render("Receiver is off")
	case !snap.Playback.HasTrack():
		content = styles.Muted.Render("No track playing")
	default:
		content = n.renderTrack(snap, width-4)
	}

	footer := ""
	if !snap.UpdatedAt.IsZero() {
		footer = styles.Dim.Render("updated " + humanize.Time(snap.UpdatedAt))
	}

	panel := styles.Panel(focused).
		Width(width).
		Height(height)

	return panel.Render(lipgloss.JoinVertical(lipgloss.Left,
		title,
		"",
		content,
		"",
		footer,
	))
}

func (n *NowPlaying) renderTrack(snap monitor.Snapshot, width int) string {
	pb := snap.Playback
	state := monitor.Display(snap)

	icon := styles.StateIcon(string(state))
	titleStyle := styles.Title.Width(max(width-4, 1))
	title := titleStyle.Render(pb.Title)

	artist := styles.Subtitle.Render(pb.Artist)

	art := ""
	if pb.AlbumArtURI != "" {
		art = styles.Dim.Render(truncate(pb.AlbumArtURI, width-2))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		icon+" "+title,
		"  "+artist,
		"  "+art,
		"",
		n.renderControls(pb.AvailableActions),
	)
}

// renderControls dims the controls the device does not currently offer.
func (n *NowPlaying) renderControls(actions aios.Actions) string {
	controls := []struct {
		action aios.Actions
		glyph  string
	}{
		{aios.ActionPrevious, "⏮"},
		{aios.ActionPlay, "▶"},
		{aios.ActionPause, "⏸"},
		{aios.ActionStop, "⏹"},
		{aios.ActionNext, "⏭"},
	}

	parts := make([]string, len(controls))
	for i, c := range controls {
		if actions.Has(c.action) {
			parts[i] = styles.Playing.Render(c.glyph)
		} else {
			parts[i] = styles.Dim.Render(c.glyph)
		}
	}
	return strings.Join(parts, " ")
}

func truncate(s string, maxLen int) string {
	r := []rune(s)
	if maxLen <= 0 || len(r) <= maxLen {
		return s
	}
	if maxLen <= 1 {
		return string(r[:maxLen])
	}
	return fmt.Sprintf("%s…", string(r[:maxLen-1]))
}
