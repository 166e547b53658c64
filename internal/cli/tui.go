package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/tessro/aiosctl/internal/tui"
)

var tuiRefresh int

var tuiCmd = &cobra.Command{
	Use:     "ui",
	Aliases: []string{"tui"},
	Short:   "Launch interactive dashboard",
	Long: `Launch the interactive terminal dashboard.

The dashboard shows the receiver, its power state and what is playing,
refreshed every poll.interval.

Keyboard shortcuts:
  q, Ctrl+C    Quit
  ?            Help
  Space        Play/Pause
  n            Next track
  p            Previous track
  +/-          Volume up/down
  m            Toggle mute
  o            Power on/off
  c            Copy album art URL
  r            Refresh now`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

func init() {
	tuiCmd.Flags().IntVar(&tuiRefresh, "refresh", 0, "refresh interval in milliseconds (default: poll.interval)")
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("the dashboard needs a terminal; use 'aiosctl watch' instead")
	}

	d, err := newDevice()
	if err != nil {
		return err
	}

	refresh := cfg.Poll.IntervalDuration()
	if tuiRefresh > 0 {
		refresh = time.Duration(tuiRefresh) * time.Millisecond
	}

	return tui.Run(cmd.Context(), tui.Options{
		Device:        d,
		VolumeControl: volumeControl(),
		Refresh:       refresh,
		Theme:         cfg.TUI.Theme,
	})
}
