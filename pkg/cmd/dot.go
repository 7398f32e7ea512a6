package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/fletchgen/cerata/pkg/dot"
	"github.com/fletchgen/cerata/pkg/transform"
)

// dotCmd builds the same graph as generate but emits Graphviz DOT instead
// of VHDL, for inspecting a design without a VHDL toolchain.
var dotCmd = &cobra.Command{
	Use:   "dot [flags] schema_file...",
	Short: "Dump the accelerator graph as Graphviz DOT.",
	Long:  "dot parses one or more schema files, builds the same component graph generate does, and writes each top-level component as a .dot file (or to stdout if --output is unset).",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if GetFlag(cmd, "verbose") {
			log.SetLevel(log.DebugLevel)
		}

		design, err := buildDesign(cmd, args)
		if err != nil {
			return err
		}

		outputs := design.OutputComponents()
		for _, c := range outputs {
			transform.SignalizePorts(c)
		}

		style := dot.DefaultStyle()
		if GetFlag(cmd, "meta") {
			style.ShowMeta = true
		}

		outDir := GetString(cmd, "output")
		if outDir == "" {
			for _, c := range outputs {
				fmt.Println(dot.Dump(c, style))
			}
			return nil
		}

		if err := os.MkdirAll(outDir, 0755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
		for _, c := range outputs {
			path := filepath.Join(outDir, c.Name()+".dot")
			if err := os.WriteFile(path, []byte(dot.Dump(c, style)), 0644); err != nil {
				return fmt.Errorf("writing %q: %w", path, err)
			}
			log.Debugf("wrote %s", path)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(dotCmd)
	registerDesignFlags(dotCmd)
	dotCmd.Flags().StringP("output", "o", "", "output directory (prints to stdout if empty)")
	dotCmd.Flags().Bool("meta", false, "include node metadata in labels")
}
