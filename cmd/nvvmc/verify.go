package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wippyai/nvvm/errors"
)

type verifyOptions struct {
	*rootOptions
	Flags optionSet
}

func newVerifyCommand(rootOpts *rootOptions) *cobra.Command {
	opts := &verifyOptions{rootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "verify <file.ll> [file2.ll ...]",
		Short: "Verify NVVM IR files without generating code",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVerify(opts, args, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Flags.Arch, "arch", "", "target compute capability, e.g. 7.5")

	return cmd
}

func runVerify(opts *verifyOptions, files []string, cmd *cobra.Command) error {
	cfg, cc, _, err := opts.setup()
	if err != nil {
		return err
	}

	verifyOpts, err := cfg.Options.merge(opts.Flags).toOptions()
	if err != nil {
		return err
	}

	modules, err := readModules(files)
	if err != nil {
		return err
	}

	st, log, err := cc.VerifyModules(modules, verifyOpts)
	if err != nil {
		return err
	}

	if text := errors.LogText(log); text != "" {
		fmt.Fprintln(cmd.ErrOrStderr(), text)
	}
	if !st.OK() {
		return fmt.Errorf("verification failed: %s (%s)", st, st.Message())
	}
	fmt.Fprintln(cmd.OutOrStdout(), "ok")
	return nil
}
