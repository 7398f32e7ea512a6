package cmd

import (
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// versionCmd reports the same version string as root's --version flag, as
// its own subcommand for scripts that expect one.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the cerata version.",
	Run: func(cmd *cobra.Command, args []string) {
		if Version != "" {
			fmt.Println(Version)
			return
		}
		if info, ok := debug.ReadBuildInfo(); ok {
			fmt.Println(info.Main.Version)
			return
		}
		fmt.Println("(unknown version)")
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
