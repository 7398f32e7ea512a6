package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/fletchgen/cerata/pkg/dot"
	"github.com/fletchgen/cerata/pkg/transform"
	"github.com/fletchgen/cerata/pkg/vhdl"
)

// generateCmd builds the accelerator graph for one or more schema files and
// writes one VHDL file per output component. Grounded on go-corset's
// pkg/cmd/generate.go (flag parsing, writing one file per produced artifact).
var generateCmd = &cobra.Command{
	Use:   "generate [flags] schema_file...",
	Short: "Generate VHDL for a kernel's accelerator graph.",
	Long:  "generate parses one or more schema files, builds the Mantle/Nucleus/Kernel/RecordBatch component graph for the given kernel name, and writes one VHDL file per top-level component under --output.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if GetFlag(cmd, "verbose") {
			log.SetLevel(log.DebugLevel)
		}

		design, err := buildDesign(cmd, args)
		if err != nil {
			return err
		}

		outDir := GetString(cmd, "output")
		if err := os.MkdirAll(outDir, 0755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}

		outputs := design.OutputComponents()
		for _, c := range outputs {
			transform.SignalizePorts(c)
		}

		for _, c := range outputs {
			path := filepath.Join(outDir, c.Name()+".vhd")
			if err := os.WriteFile(path, []byte(vhdl.Generate(c)), 0644); err != nil {
				return fmt.Errorf("writing %q: %w", path, err)
			}
			log.Debugf("wrote %s", path)
		}

		if GetFlag(cmd, "dot") {
			style := dot.DefaultStyle()
			for _, c := range outputs {
				path := filepath.Join(outDir, c.Name()+".dot")
				if err := os.WriteFile(path, []byte(dot.Dump(c, style)), 0644); err != nil {
					return fmt.Errorf("writing %q: %w", path, err)
				}
			}
		}

		fmt.Printf("generated %d component(s) in %s\n", len(outputs), outDir)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)
	registerDesignFlags(generateCmd)
	generateCmd.Flags().StringP("output", "o", ".", "output directory")
	generateCmd.Flags().Bool("dot", false, "also emit a .dot file per component")
}
