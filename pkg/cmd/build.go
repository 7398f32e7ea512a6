package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fletchgen/cerata/pkg/arrowschema"
	"github.com/fletchgen/cerata/pkg/domain"
	"github.com/fletchgen/cerata/pkg/ir"
	"github.com/fletchgen/cerata/pkg/mantle"
)

// loadSchemas reads and parses one RecordBatchDescription per path.
func loadSchemas(paths []string) ([]arrowschema.RecordBatchDescription, error) {
	descs := make([]arrowschema.RecordBatchDescription, 0, len(paths))
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("reading schema %q: %w", p, err)
		}
		desc, err := arrowschema.ParseSchema(data)
		if err != nil {
			return nil, fmt.Errorf("parsing schema %q: %w", p, err)
		}
		descs = append(descs, desc)
	}
	return descs, nil
}

// registerDesignFlags adds the flag set both generate and dot need to build a
// Design: schema-derived kernel name, custom registers and AXI bus widths.
func registerDesignFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("kernel", "k", "kernel", "kernel name")
	cmd.Flags().StringSlice("reg", nil, `custom MMIO register, "c:32:name" or "s:1:name"`)
	cmd.Flags().Uint("axi-addr-width", 32, "AXI4-Lite address bus width")
	cmd.Flags().Uint("axi-data-width", 32, "AXI4-Lite data bus width")
}

// buildDesign parses the schema files named by args and assembles the
// Mantle/Nucleus/Kernel/RecordBatch graph for them, the way every subcommand
// that touches the generated hardware needs to.
func buildDesign(cmd *cobra.Command, args []string) (*mantle.Design, error) {
	ir.ResetPools()

	descs, err := loadSchemas(args)
	if err != nil {
		return nil, err
	}

	axiSpec := domain.Axi4LiteSpec{
		AddrWidth: ir.NewIntLiteral(int64(GetUint(cmd, "axi-addr-width"))),
		DataWidth: ir.NewIntLiteral(int64(GetUint(cmd, "axi-data-width"))),
	}

	customRegs := domain.ParseCustomRegs(GetStringSlice(cmd, "reg"))

	return mantle.Generate(GetString(cmd, "kernel"), descs, customRegs, axiSpec)
}
