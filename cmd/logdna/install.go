package main

import (
	"fmt"

	"github.com/logdna/logdna-cli/internal/install"
	"github.com/spf13/cobra"
)

func newInstallCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "install [target]",
		Short: "Instructions for collecting logs from staging/production hosts and systems",
		Args:  cobra.MaximumNArgs(1),
		RunE: a.withUpdateCheck(func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			text, ok, err := install.Instructions(queryArg(args), a.cfg.Key)
			if err != nil {
				return err
			}
			if ok {
				fmt.Fprintln(out, text)
				return nil
			}

			choices, err := install.Choices()
			if err != nil {
				return err
			}
			fmt.Fprintln(out, choices)
			return nil
		}),
	}
}
