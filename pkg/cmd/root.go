// Package cmd wires the cobra CLI surface over pkg/mantle.Generate: thin
// per-subcommand wrappers that parse flags, build a Design, and hand it to
// pkg/vhdl and pkg/dot for emission. Grounded on go-corset's pkg/cmd
// (root.go, generate.go, compute.go) and spec.md/SPEC_FULL.md's
// "Configuration / CLI" ambient-stack section.
package cmd

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// Version is filled in at build time via -ldflags, the way go-corset's
// rootCmd.Version is.
var Version string

var rootCmd = &cobra.Command{
	Use:   "cerata",
	Short: "Builds Arrow-to-hardware accelerator IR graphs and emits VHDL/DOT.",
	Long:  "cerata builds an intermediate structural graph from an Arrow schema and a kernel, and emits it as VHDL and DOT.",
	Run: func(cmd *cobra.Command, args []string) {
		if GetFlag(cmd, "version") {
			fmt.Print("cerata ")
			if Version != "" {
				fmt.Printf("%s", Version)
			} else if info, ok := debug.ReadBuildInfo(); ok {
				fmt.Printf("%s", info.Main.Version)
			} else {
				fmt.Printf("(unknown version)")
			}
			fmt.Println()
			return
		}
		_ = cmd.Help()
	},
}

// Execute runs the root command. Called by cmd/cerata's main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().Bool("version", false, "report the version of this executable")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "increase logging verbosity")
}
