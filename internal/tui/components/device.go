package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/tessro/aiosctl/internal/aios"
	"github.com/tessro/aiosctl/internal/monitor"
	"github.com/tessro/aiosctl/internal/tui/styles"
)

// DeviceInfo is what the device panel shows besides the snapshot.
type DeviceInfo struct {
	Host          string
	Identity      *aios.DeviceIdentity
	VolumeControl monitor.VolumeControl
}

// Device displays the receiver, its power and what it can do
type Device struct{}

// NewDevice creates a new Device component
func NewDevice() *Device {
	return &Device{}
}

// Render renders the device panel
func (d *Device) Render(info DeviceInfo, snap monitor.Snapshot, width, height int, focused bool) string {
	title := styles.PanelTitle("Receiver", focused)

	name := info.Host
	model := styles.Muted.Render("identity unavailable")
	if id := info.Identity; id != nil {
		name = id.FriendlyName
		model = styles.Muted.Render(fmt.Sprintf("%s %s", id.Manufacturer, id.ModelName))
	}

	status := styles.AvailabilityIcon(snap.Available) + " "
	if snap.Available {
		status += "connected"
	} else if snap.LastError != "" {
		status += styles.Failure.Render(truncate(snap.LastError, width-6))
	} else {
		status += "connecting…"
	}

	power := string(snap.Power)
	if power == "" {
		power = "?"
	}

	volume := "receiver"
	if info.VolumeControl == monitor.VolumeInternal {
		volume = "player"
	}
	mute := ""
	if snap.Muted && info.VolumeControl == monitor.VolumeExternal {
		mute = styles.Paused.Render(" (muted?)")
	}

	caps := monitor.Capabilities(snap, info.VolumeControl)

	lines := []string{
		title,
		"",
		styles.Title.Render(name),
		model,
		status,
		"",
		styles.Label.Render("Power   ") + power,
		styles.Label.Render("Volume  ") + volume + mute,
		styles.Label.Render("Host    ") + info.Host,
	}
	if info.Identity != nil {
		lines = append(lines, styles.Label.Render("Serial  ")+info.Identity.SerialNumber)
	}
	lines = append(lines, "", styles.Dim.Render(truncate(caps.String(), width-4)))

	panel := styles.Panel(focused).
		Width(width).
		Height(height)

	return panel.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}
