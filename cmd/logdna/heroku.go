package main

import (
	"fmt"

	"github.com/logdna/logdna-cli/internal/install"
	"github.com/logdna/logdna-cli/internal/logdnasdk"
	"github.com/spf13/cobra"
)

func newHerokuCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "heroku <heroku-app-name>",
		Short: "Generates a Heroku Drain URL for log shipping to LogDNA",
		Args:  cobra.ExactArgs(1),
		RunE: a.withUpdateCheck(func(cmd *cobra.Command, args []string) error {
			if !a.cfg.Identity().Authenticated() {
				return logdnasdk.ErrUnauthenticated
			}

			herokuApp := args[0]
			key := a.cfg.Key
			if key == "" {
				key = install.MissingKey
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Use the following Heroku CLI command to start log shipping:")
			fmt.Fprintf(out, "heroku drains:add https://%s:%s@heroku.logdna.com/heroku/logplex?app=%s --app %s\n",
				a.cfg.Account, key, herokuApp, herokuApp)
			fmt.Fprintln(out)
			fmt.Fprintf(out, "Once shipping begins, you can tail using 'logdna tail -h %s'\n", herokuApp)
			return nil
		}),
	}
}
