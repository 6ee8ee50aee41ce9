package main

import (
	"bytes"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
)

func newInfoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "info",
		Aliases: []string{"whoami"},
		Short:   "Show current logged in user info",
		Args:    cobra.NoArgs,
		RunE: a.withUpdateCheck(func(cmd *cobra.Command, args []string) error {
			client, err := a.client()
			if err != nil {
				return err
			}

			res, err := client.Info(cmd.Context(), a.cfg.Identity())
			if err != nil {
				return err
			}

			body := res.Text()
			if res.IsJSON() {
				var pretty bytes.Buffer
				if err := json.Indent(&pretty, res.Body, "", "  "); err == nil {
					body = pretty.String()
				}
			}

			fmt.Fprintln(cmd.OutOrStdout(), body)
			return nil
		}),
	}
}
