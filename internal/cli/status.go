package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/tessro/aiosctl/internal/aios"
	"github.com/tessro/aiosctl/internal/errors"
	"github.com/tessro/aiosctl/internal/monitor"
	"github.com/tessro/aiosctl/internal/tui/styles"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show receiver identity",
	Long:  `Read the receiver's device description and print its identity.`,
	Args:  cobra.NoArgs,
	RunE:  runInfo,
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show receiver and playback status",
	Long: `Show the receiver identity, power state and what is playing.

Whatever can be read is shown; failures are listed below the panel.`,
	Args: cobra.NoArgs,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(statusCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	out := newOutput(cmd)

	d, err := newDevice()
	if err != nil {
		return err
	}
	id, err := deviceIdentity(cmd.Context(), d)
	if err != nil {
		return fmt.Errorf("failed to read device description: %w", err)
	}

	if out.JSON {
		return out.EmitJSON(id)
	}

	t := NewTableWriter(cmd.OutOrStdout())
	t.Row("Name:", out.Bold(id.FriendlyName))
	t.Row("Model:", id.ModelName)
	t.Row("Manufacturer:", id.Manufacturer)
	t.Row("Serial:", id.SerialNumber)
	t.Row("Type:", id.DeviceType)
	t.Row("Host:", d.Host())
	t.Flush()
	return nil
}

// statusReport is everything status could read from the receiver.
type statusReport struct {
	Host         string               `json:"host"`
	Identity     *aios.DeviceIdentity `json:"identity,omitempty"`
	State        monitor.DisplayState `json:"state"`
	Snapshot     monitor.Snapshot     `json:"snapshot"`
	Capabilities []string             `json:"capabilities"`
}

func runStatus(cmd *cobra.Command, args []string) error {
	out := newOutput(cmd)

	d, err := newDevice()
	if err != nil {
		return err
	}

	result := collectStatus(cmd.Context(), d, volumeControl())

	// Nothing could be read at all
	if result.Data.Identity == nil && !result.Data.Snapshot.Available {
		return result.Errors[len(result.Errors)-1]
	}

	if out.JSON {
		payload := map[string]any{"status": result.Data}
		if result.HasErrors() {
			msgs := make([]string, len(result.Errors))
			for i, e := range result.Errors {
				msgs[i] = e.Error()
			}
			payload["errors"] = msgs
		}
		return out.EmitJSON(payload)
	}

	_, _ = fmt.Fprintln(cmd.OutOrStdout(), renderStatus(result.Data))
	if result.HasErrors() {
		out.Warn(strings.TrimRight(result.ErrorSummary(), "\n"))
	}
	return nil
}

// collectStatus reads identity, then power and playback through a cache so
// the same availability rules apply as in watch and ui.
func collectStatus(ctx context.Context, d *aios.Device, vc monitor.VolumeControl) *errors.PartialResult[statusReport] {
	result := &errors.PartialResult[statusReport]{
		Data: statusReport{Host: d.Host()},
	}

	if id, err := deviceIdentity(ctx, d); err != nil {
		result.AddError(fmt.Errorf("identity: %w", err))
	} else {
		result.Data.Identity = &id
	}

	cache := monitor.NewCache(d)
	if _, err := cache.Refresh(ctx); err != nil {
		result.AddError(fmt.Errorf("state: %w", err))
	}

	snap := cache.Snapshot()
	result.Data.Snapshot = snap
	result.Data.State = monitor.Display(snap)
	result.Data.Capabilities = monitor.Capabilities(snap, vc).List()
	return result
}

func renderStatus(r statusReport) string {
	var lines []string

	name := r.Host
	if r.Identity != nil {
		name = r.Identity.FriendlyName
		lines = append(lines, styles.Title.Render(name))
		lines = append(lines, styles.Subtitle.Render(fmt.Sprintf("%s %s · %s", r.Identity.Manufacturer, r.Identity.ModelName, r.Host)))
	} else {
		lines = append(lines, styles.Title.Render(name))
	}
	lines = append(lines, "")

	s := r.Snapshot
	lines = append(lines, fmt.Sprintf("%s %s", styles.StateIcon(string(r.State)), stateLabel(r.State)))
	if s.Power != "" {
		lines = append(lines, styles.Label.Render("Power  ")+string(s.Power))
	}
	if s.Playback.HasTrack() {
		lines = append(lines, styles.Label.Render("Track  ")+styles.Highlight.Render(TruncateString(s.Playback.Title, 48)))
		lines = append(lines, styles.Label.Render("Artist ")+TruncateString(s.Playback.Artist, 48))
	}
	if s.Playback.AvailableActions != 0 {
		lines = append(lines, styles.Label.Render("Ctrls  ")+s.Playback.AvailableActions.String())
	}
	if !s.UpdatedAt.IsZero() {
		lines = append(lines, styles.Dim.Render("updated "+humanize.Time(s.UpdatedAt)))
	}

	return styles.Panel(false).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func stateLabel(s monitor.DisplayState) string {
	switch s {
	case monitor.StatePlaying:
		return "Playing"
	case monitor.StatePaused:
		return "Paused"
	case monitor.StateIdle:
		return "Stopped"
	case monitor.StateOff:
		return "Off"
	default:
		return "Unknown"
	}
}
