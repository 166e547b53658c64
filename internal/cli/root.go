package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/tessro/aiosctl/internal/config"
	"github.com/tessro/aiosctl/internal/errors"
	"github.com/tessro/aiosctl/internal/logging"
)

var (
	cfgFile string
	jsonOut bool
	verbose bool
	hostArg string
	noColor bool

	cfg       *config.Config
	logCloser io.Closer
)

var rootCmd = &cobra.Command{
	Use:   "aiosctl",
	Short: "Control Denon AIOS receivers from the command line",
	Long: `aiosctl talks to Denon AIOS receivers over their local UPnP/SOAP interface.

It switches power, nudges volume, controls playback and shows what the
receiver is playing.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if noColor {
			color.NoColor = true
		}
		return initConfig(cmd)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logCloser != nil {
			_ = logCloser.Close()
		}
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default: ~/.aiosrc)")
	rootCmd.PersistentFlags().BoolVarP(&jsonOut, "json", "j", false, "output as JSON")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&hostArg, "host", "", "receiver address (overrides device.host)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
}

func initConfig(cmd *cobra.Command) error {
	var err error
	if cfgFile != "" {
		cfg, err = config.LoadFrom(cfgFile)
	} else {
		cfg, err = config.Load()
	}
	switch {
	case stderrors.Is(err, fs.ErrNotExist) && cmd == configInitCmd:
		// config init creates the file
		cfg = config.Default()
	case stderrors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("%w: %s", errors.ErrConfigNotFound, cfgFile)
	case err != nil:
		return fmt.Errorf("failed to load config: %w", err)
	}

	if hostArg != "" {
		cfg.Device.Host = hostArg
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("%w: %w", errors.ErrInvalidConfig, err)
	}

	logCloser, err = logging.Setup(cfg.Log.Level, cfg.Log.File, verbose)
	return err
}

// Execute runs the root command.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		newOutputTo(os.Stdout, os.Stderr).Error(errors.Format(err))
		os.Exit(1)
	}
}

// Config returns the loaded configuration.
func Config() *config.Config {
	return cfg
}

// JSONOutput returns true if JSON output is requested.
func JSONOutput() bool {
	return jsonOut
}

// Verbose returns true if verbose output is requested.
func Verbose() bool {
	return verbose
}
