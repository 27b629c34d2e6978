package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/wippyai/nvvm"
	"github.com/wippyai/nvvm/errors"
)

type compileOptions struct {
	*rootOptions
	Output string
	Flags  optionSet
}

func newCompileCommand(rootOpts *rootOptions) *cobra.Command {
	opts := &compileOptions{rootOptions: rootOpts}
	var optLevel int

	cmd := &cobra.Command{
		Use:   "compile <file.ll> [file2.ll ...]",
		Short: "Compile NVVM IR files to PTX",
		Long: `Compile one or more NVVM IR files (textual or bitcode) into a single
PTX module. Files are added eagerly in the order given; the module name
is the file's base name.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("opt") {
				opts.Flags.Opt = &optLevel
			}
			return runCompile(opts, args, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().IntVar(&optLevel, "opt", 3, "optimisation level (0-3)")
	cmd.Flags().StringVar(&opts.Flags.Arch, "arch", "", "target compute capability, e.g. 7.5")
	cmd.Flags().BoolVar(&opts.Flags.FTZ, "ftz", false, "flush denormals to zero")
	cmd.Flags().BoolVar(&opts.Flags.NoFMA, "no-fma", false, "disable fused multiply-add")
	cmd.Flags().BoolVar(&opts.Flags.FastSqrt, "fast-sqrt", false, "approximate square root")
	cmd.Flags().BoolVar(&opts.Flags.FastDiv, "fast-div", false, "approximate division")
	cmd.Flags().BoolVarP(&opts.Flags.Debug, "debug", "g", false, "generate debug info")

	return cmd
}

func runCompile(opts *compileOptions, files []string, cmd *cobra.Command) error {
	cfg, cc, _, err := opts.setup()
	if err != nil {
		return err
	}

	compileOpts, err := cfg.Options.merge(opts.Flags).toOptions()
	if err != nil {
		return err
	}

	modules, err := readModules(files)
	if err != nil {
		return err
	}

	res, err := cc.CompileModules(modules, compileOpts)
	if err != nil {
		return err
	}

	if log := errors.LogText(res.Log); log != "" {
		fmt.Fprintln(cmd.ErrOrStderr(), log)
	}

	ptx := trimSentinel(res.PTX)
	if opts.Output == "" {
		_, err = cmd.OutOrStdout().Write(ptx)
		return err
	}
	return os.WriteFile(opts.Output, ptx, 0o644)
}

func readModules(files []string) ([]nvvm.Module, error) {
	modules := make([]nvvm.Module, 0, len(files))
	for _, f := range files {
		data, err := os.ReadFile(f)
		if err != nil {
			return nil, fmt.Errorf("read module: %w", err)
		}
		modules = append(modules, nvvm.Module{Name: filepath.Base(f), IR: data})
	}
	return modules, nil
}

// trimSentinel drops the trailing NUL the native buffers carry.
func trimSentinel(b []byte) []byte {
	if n := len(b); n > 0 && b[n-1] == 0 {
		return b[:n-1]
	}
	return b
}
