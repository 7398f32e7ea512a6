package cmd

import "github.com/spf13/cobra"

// GetFlag reads a bool flag, defaulting to false if absent. Grounded on
// go-corset's pkg/cmd call-site idiom (every subcommand reads flags this
// way), reconstructed locally since go-corset's own GetFlag/GetString
// definitions live in a file this retrieval didn't include.
func GetFlag(cmd *cobra.Command, name string) bool {
	v, _ := cmd.Flags().GetBool(name)
	return v
}

// GetString reads a string flag, defaulting to "" if absent.
func GetString(cmd *cobra.Command, name string) string {
	v, _ := cmd.Flags().GetString(name)
	return v
}

// GetStringSlice reads a repeated string flag, defaulting to nil if absent.
func GetStringSlice(cmd *cobra.Command, name string) []string {
	v, _ := cmd.Flags().GetStringSlice(name)
	return v
}

// GetUint reads a uint flag, defaulting to 0 if absent.
func GetUint(cmd *cobra.Command, name string) uint {
	v, _ := cmd.Flags().GetUint(name)
	return v
}
