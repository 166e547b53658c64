package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tessro/aiosctl/internal/aios"
)

var powerCmd = &cobra.Command{
	Use:   "power [on|off|toggle]",
	Short: "Show or switch receiver power",
	Long: `Show the receiver's power state, or switch it.

Examples:
  aiosctl power         # Show power state
  aiosctl power on
  aiosctl power toggle`,
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"on", "off", "toggle"},
	RunE:      runPower,
}

var volumeCmd = &cobra.Command{
	Use:   "volume <up|down>",
	Short: "Step the receiver volume",
	Long: `Step the receiver volume one notch up or down.

The receiver cannot report its volume level. This command is refused when
device.volume_control is "internal".`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"up", "down"},
	RunE:      runVolume,
}

var muteCmd = &cobra.Command{
	Use:   "mute",
	Short: "Toggle mute",
	Long:  `Toggle the receiver mute. Refused when device.volume_control is "internal".`,
	Args:  cobra.NoArgs,
	RunE:  runMute,
}

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start or resume playback",
	Args:  cobra.NoArgs,
	RunE: transportCommand("play", "▶ Playing", func(ctx context.Context, d *aios.Device) error {
		return d.Play(ctx)
	}),
}

var pauseCmd = &cobra.Command{
	Use:   "pause",
	Short: "Pause playback",
	Args:  cobra.NoArgs,
	RunE: transportCommand("pause", "⏸ Paused", func(ctx context.Context, d *aios.Device) error {
		return d.Pause(ctx)
	}),
}

var nextCmd = &cobra.Command{
	Use:   "next",
	Short: "Skip to next track",
	Args:  cobra.NoArgs,
	RunE: transportCommand("next", "⏭ Next track", func(ctx context.Context, d *aios.Device) error {
		return d.Next(ctx)
	}),
}

var prevCmd = &cobra.Command{
	Use:     "prev",
	Aliases: []string{"previous"},
	Short:   "Go to previous track",
	Args:    cobra.NoArgs,
	RunE: transportCommand("previous", "⏮ Previous track", func(ctx context.Context, d *aios.Device) error {
		return d.Previous(ctx)
	}),
}

func init() {
	rootCmd.AddCommand(powerCmd)
	rootCmd.AddCommand(volumeCmd)
	rootCmd.AddCommand(muteCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(pauseCmd)
	rootCmd.AddCommand(nextCmd)
	rootCmd.AddCommand(prevCmd)
}

func runPower(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	out := newOutput(cmd)

	d, err := newDevice()
	if err != nil {
		return err
	}

	if len(args) == 0 {
		state, err := d.GetPowerState(ctx)
		if err != nil {
			return fmt.Errorf("failed to get power state: %w", err)
		}
		if out.JSON {
			return out.EmitJSON(map[string]string{"power": string(state)})
		}
		out.Print(powerLine(out, state))
		return nil
	}

	target, err := resolvePower(ctx, d, args[0])
	if err != nil {
		return err
	}
	if err := d.SetPowerState(ctx, target); err != nil {
		return fmt.Errorf("failed to set power: %w", err)
	}
	return out.Result(powerLine(out, target), map[string]string{"power": string(target)})
}

// resolvePower turns a power argument into a target state. toggle reads the
// current state first.
func resolvePower(ctx context.Context, d *aios.Device, arg string) (aios.PowerState, error) {
	if !strings.EqualFold(arg, "toggle") {
		return aios.ParsePowerState(arg)
	}
	current, err := d.GetPowerState(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to get power state: %w", err)
	}
	if current == aios.PowerOn {
		return aios.PowerOff, nil
	}
	return aios.PowerOn, nil
}

func powerLine(out *Output, state aios.PowerState) string {
	if state == aios.PowerOn {
		return "⏻ Power: " + out.Green(string(state))
	}
	return "⏻ Power: " + out.Gray(string(state))
}

func runVolume(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	out := newOutput(cmd)

	dir, err := aios.ParseDirection(args[0])
	if err != nil {
		return err
	}
	if err := requireExternalVolume(volumeControl()); err != nil {
		return err
	}

	d, err := newDevice()
	if err != nil {
		return err
	}
	if err := d.ChangeVolume(ctx, dir); err != nil {
		return fmt.Errorf("failed to change volume: %w", err)
	}

	msg := "🔊 Volume up"
	if dir == aios.VolumeDown {
		msg = "🔉 Volume down"
	}
	return out.Result(msg, map[string]string{"volume": string(dir)})
}

func runMute(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	out := newOutput(cmd)

	if err := requireExternalVolume(volumeControl()); err != nil {
		return err
	}

	d, err := newDevice()
	if err != nil {
		return err
	}
	if err := d.ToggleMute(ctx); err != nil {
		return fmt.Errorf("failed to toggle mute: %w", err)
	}
	return out.Result("🔇 Mute toggled", map[string]string{"status": "mute_toggled"})
}

// transportCommand builds the RunE for a fire-and-forget AVTransport action.
func transportCommand(name, msg string, op func(context.Context, *aios.Device) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		d, err := newDevice()
		if err != nil {
			return err
		}
		if err := op(cmd.Context(), d); err != nil {
			return fmt.Errorf("failed to %s: %w", name, err)
		}
		return newOutput(cmd).Result(msg, map[string]string{"status": name})
	}
}
