package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newVersionCommand(rootOpts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Report the loaded libNVVM version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, _, lib, err := rootOpts.setup()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "library:     %s\n", lib.Path())
			fmt.Fprintf(out, "libNVVM:     %s\n", lib.Version())
			fmt.Fprintf(out, "NVVM IR:     %s\n", lib.IRVersion())
			fmt.Fprintf(out, "debug info:  %s\n", lib.DebugVersion())
			fmt.Fprintf(out, "lazy add:    %v\n", lib.SupportsLazyModules())
			return nil
		},
	}
}
