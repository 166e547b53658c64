package cli

import (
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"
)

var (
	// Set via ldflags at build time
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		version := resolvedVersion()
		out := newOutput(cmd)

		if out.JSON {
			return out.EmitJSON(map[string]string{
				"version":    version,
				"commit":     Commit,
				"build_date": BuildDate,
				"go_version": runtime.Version(),
				"os":         runtime.GOOS,
				"arch":       runtime.GOARCH,
			})
		}

		out.Print(fmt.Sprintf("aiosctl %s", version))
		if Verbose() {
			t := NewTableWriter(cmd.OutOrStdout())
			t.Row("  commit:", Commit)
			t.Row("  built:", BuildDate)
			t.Row("  go version:", runtime.Version())
			t.Row("  platform:", runtime.GOOS+"/"+runtime.GOARCH)
			t.Flush()
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

// resolvedVersion falls back to the module version for go install builds.
func resolvedVersion() string {
	if Version != "dev" {
		return Version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return Version
}
