// Command cerata builds an accelerator's structural graph from an Arrow
// schema and a kernel name, and emits it as VHDL or DOT.
package main

import "github.com/fletchgen/cerata/pkg/cmd"

func main() {
	cmd.Execute()
}
