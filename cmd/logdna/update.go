package main

import (
	"fmt"

	"github.com/logdna/logdna-cli/internal/version"
	"github.com/spf13/cobra"
)

func newUpdateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "update",
		Short: "Update CLI to latest version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.updater.Run(cmd.Context(), a.cfg, true, func() error {
				_, err := fmt.Fprintf(cmd.OutOrStdout(), "No update available. You have the latest version: %s\n", version.Version)
				return err
			})
		},
	}
}
