package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wippyai/nvvm/bindings"
	"github.com/wippyai/nvvm/compiler"
)

// rootOptions holds global flags shared by all subcommands.
type rootOptions struct {
	Library string
	Config  string
	Verbose bool
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "nvvmc",
		Short: "Compile NVVM IR to PTX with libNVVM",
		Long: `nvvmc drives an installed libNVVM shared library to compile or verify
NVVM IR modules (textual or bitcode form) and retrieve the generated PTX
or the compiler's diagnostic log.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.Library, "library", "", "path to the libNVVM shared library")
	cmd.PersistentFlags().StringVar(&opts.Config, "config", "", "path to a yaml config file")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")

	cmd.AddCommand(newCompileCommand(opts))
	cmd.AddCommand(newVerifyCommand(opts))
	cmd.AddCommand(newVersionCommand(opts))

	return cmd
}

// setup loads the optional config file, wires logging, and opens the
// native library. Flag values override config-file values.
func (opts *rootOptions) setup() (*fileConfig, *compiler.Compiler, *bindings.Library, error) {
	cfg, err := loadConfig(opts.Config)
	if err != nil {
		return nil, nil, nil, err
	}

	if opts.Verbose {
		logger, err := zap.NewDevelopment()
		if err != nil {
			return nil, nil, nil, err
		}
		compiler.SetLogger(logger)
	}

	path := opts.Library
	if path == "" {
		path = cfg.Library
	}
	var bcfg *bindings.Config
	if path != "" {
		bcfg = &bindings.Config{Path: path}
	}

	lib, err := bindings.Open(bcfg)
	if err != nil {
		return nil, nil, nil, err
	}
	return cfg, compiler.New(lib), lib, nil
}
