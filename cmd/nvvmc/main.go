// Command nvvmc is a batch front-end over the nvvm library: it compiles
// or verifies NVVM IR files against an installed libNVVM and writes the
// resulting PTX or diagnostic log.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
