package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/tessro/aiosctl/internal/monitor"
)

var (
	watchNoEmoji   bool
	watchTimestamp bool
	watchFormat    string
	watchInterval  time.Duration
)

var watchCmd = &cobra.Command{
	Use:     "watch",
	Aliases: []string{"tail"},
	Short:   "Follow receiver changes in real-time",
	Long: `Poll the receiver and print changes as they happen.

Events tracked:
  - Power on/off
  - Play/pause/stop
  - Track changes
  - Available controls
  - Receiver reachable/unreachable

Template fields for --format:
  {{.Type}} {{.Emoji}} {{.Time}} {{.State}} {{.Power}} {{.Transport}}
  {{.Actions}} {{.Title}} {{.Artist}} {{.AlbumArt}} {{.Available}}
  {{.Error}} {{.Updated}}`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().BoolVar(&watchNoEmoji, "no-emoji", false, "disable emoji output")
	watchCmd.Flags().BoolVarP(&watchTimestamp, "timestamp", "t", false, "show timestamps")
	watchCmd.Flags().StringVarP(&watchFormat, "format", "f", "", "custom format template")
	watchCmd.Flags().DurationVarP(&watchInterval, "interval", "i", 0, "poll interval (default: poll.interval)")

	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	d, err := newDevice()
	if err != nil {
		return err
	}

	tmpl, err := monitor.ParseTemplate(watchFormat)
	if err != nil {
		return err
	}
	formatter := monitor.NewFormatter(
		monitor.WithEmoji(!watchNoEmoji),
		monitor.WithTimestamp(watchTimestamp),
		monitor.WithTemplate(tmpl),
	)

	interval := watchInterval
	if interval <= 0 {
		interval = cfg.Poll.IntervalDuration()
	}

	cache := monitor.NewCache(d)
	watcher := monitor.NewWatcher(cache, interval)

	errCh := make(chan error, 1)
	go func() {
		errCh <- watcher.Start(cmd.Context())
	}()

	// Events is closed when Start returns
	w := cmd.OutOrStdout()
	for event := range watcher.Events() {
		_, _ = fmt.Fprintln(w, formatter.Format(event))
	}

	if err := <-errCh; err != nil && !stderrors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
