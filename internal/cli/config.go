package cli

import (
	"fmt"
	"os"
	"os/exec"
	"strconv"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/tessro/aiosctl/internal/config"
	"github.com/tessro/aiosctl/internal/errors"
)

var configInitDefaults bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long:  `Commands for viewing and editing aiosctl configuration.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Long:  `Display the effective configuration, after defaults and environment overrides.`,
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show configuration file path",
	Args:  cobra.NoArgs,
	RunE:  runConfigPath,
}

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit configuration file",
	Long:  `Open the configuration file in your default editor.`,
	Args:  cobra.NoArgs,
	RunE:  runConfigEdit,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration",
	Long: `Create a new configuration file.

On a terminal you are asked for the receiver address and volume mode.
Otherwise, or with --defaults, the file is written with default values.`,
	Args: cobra.NoArgs,
	RunE: runConfigInit,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value.

Supported keys:
  device.host            Receiver hostname or IP address
  device.port            Control port (default 60006)
  device.volume_control  external or internal
  device.timeout         HTTP timeout in seconds
  poll.interval          Poll interval in milliseconds
  tui.theme              auto, dark or light
  log.level              debug, info, warn or error
  log.file               Log file path (empty for stderr)

Examples:
  aiosctl config set device.host 192.168.1.41
  aiosctl config set device.volume_control internal`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

func init() {
	configInitCmd.Flags().BoolVar(&configInitDefaults, "defaults", false, "write defaults without prompting")

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configEditCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	out := newOutput(cmd)
	if out.JSON {
		return out.EmitJSON(cfg)
	}
	return config.Encode(cmd.OutOrStdout(), cfg)
}

func runConfigPath(cmd *cobra.Command, args []string) error {
	path := loadedConfigPath()
	out := newOutput(cmd)
	if out.JSON {
		_, err := os.Stat(path)
		return out.EmitJSON(map[string]any{"path": path, "exists": err == nil})
	}
	out.Print(path)
	return nil
}

func runConfigEdit(cmd *cobra.Command, args []string) error {
	configPath := loadedConfigPath()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return fmt.Errorf("%w at %s", errors.ErrConfigNotFound, configPath)
	}

	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = os.Getenv("VISUAL")
	}
	if editor == "" {
		for _, e := range []string{"nano", "vim", "vi", "notepad"} {
			if _, err := exec.LookPath(e); err == nil {
				editor = e
				break
			}
		}
	}
	if editor == "" {
		return fmt.Errorf("no editor found. Set EDITOR environment variable")
	}

	editorCmd := exec.Command(editor, configPath)
	editorCmd.Stdin = os.Stdin
	editorCmd.Stdout = os.Stdout
	editorCmd.Stderr = os.Stderr

	return editorCmd.Run()
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	configPath := initConfigPath()

	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("config file already exists at %s", configPath)
	}

	newCfg := config.Default()
	if hostArg != "" {
		newCfg.Device.Host = hostArg
	}

	if !configInitDefaults && term.IsTerminal(int(os.Stdin.Fd())) {
		if err := promptConfig(newCfg); err != nil {
			return fmt.Errorf("setup cancelled: %w", err)
		}
	}

	if err := newCfg.Validate(); err != nil {
		return fmt.Errorf("%w: %w", errors.ErrInvalidConfig, err)
	}
	if err := config.WriteFile(configPath, newCfg); err != nil {
		return err
	}

	out := newOutput(cmd)
	if out.JSON {
		return out.EmitJSON(map[string]string{
			"status": "created",
			"path":   configPath,
		})
	}

	out.Success(fmt.Sprintf("Created config file: %s", configPath))
	if newCfg.Device.Host == "" {
		out.Print("\nNext steps:")
		out.Print("  1. Set the receiver address: aiosctl config set device.host <ip>")
		out.Print("  2. Check the connection:     aiosctl info")
	}
	return nil
}

// promptConfig asks for the settings most users change.
func promptConfig(c *config.Config) error {
	port := strconv.Itoa(c.Device.Port)
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Receiver address").
				Description("Hostname or IP address of the Denon receiver").
				Placeholder("192.168.1.41").
				Value(&c.Device.Host).
				Validate(func(s string) error {
					probe := config.DeviceConfig{Host: s}
					return probe.Validate()
				}),
			huh.NewInput().
				Title("Control port").
				Value(&port).
				Validate(func(s string) error {
					_, err := strconv.Atoi(s)
					return err
				}),
			huh.NewSelect[string]().
				Title("Volume control").
				Description("external: the receiver's own volume. internal: the HEOS player handles volume").
				Options(
					huh.NewOption("External (receiver)", "external"),
					huh.NewOption("Internal (player)", "internal"),
				).
				Value(&c.Device.VolumeControl),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Dashboard theme").
				Options(
					huh.NewOption("Follow terminal", "auto"),
					huh.NewOption("Dark", "dark"),
					huh.NewOption("Light", "light"),
				).
				Value(&c.TUI.Theme),
		),
	)

	if err := form.Run(); err != nil {
		return err
	}

	p, err := strconv.Atoi(port)
	if err != nil {
		return err
	}
	c.Device.Port = p
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key := args[0]
	value := args[1]

	configPath := loadedConfigPath()
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return fmt.Errorf("%w at %s", errors.ErrConfigNotFound, configPath)
	}

	if err := config.Set(configPath, key, value); err != nil {
		return err
	}

	out := newOutput(cmd)
	return out.Result(fmt.Sprintf("Set %s = %s", key, value), map[string]string{
		"status": "updated",
		"key":    key,
		"value":  value,
	})
}

// loadedConfigPath is the file the current config came from, or where
// config init would create one.
func loadedConfigPath() string {
	if cfgFile != "" {
		return cfgFile
	}
	if p := config.FindConfigFile(); p != "" {
		return p
	}
	return config.DefaultPath()
}

func initConfigPath() string {
	if cfgFile != "" {
		return cfgFile
	}
	return config.DefaultPath()
}
