package main

import (
	"fmt"
	"time"

	"github.com/logdna/logdna-cli/internal/logdnasdk"
	"github.com/spf13/cobra"
)

func newSearchCmd(a *app) *cobra.Command {
	var opts logdnasdk.FilterOptions

	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Basic search with optional filtering. See 'logdna search --help'",
		Args:  cobra.MaximumNArgs(1),
		RunE: a.withUpdateCheck(func(cmd *cobra.Command, args []string) error {
			identity := a.cfg.Identity()
			if !identity.Authenticated() {
				return logdnasdk.ErrUnauthenticated
			}

			client, err := a.client()
			if err != nil {
				return err
			}

			query := queryArg(args)
			resp, err := client.Search(cmd.Context(), identity, logdnasdk.BuildFilter(query, opts))
			if err != nil {
				return err
			}

			var between string
			if r := resp.Range; r != nil && r.From != 0 && r.To != 0 {
				between = fmt.Sprintf(" between %s-%s",
					a.renderer.RenderTime(time.UnixMilli(r.From)),
					a.renderer.RenderTime(time.UnixMilli(r.To)))
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "search finished: %d line(s)%s. %s\n", len(resp.Lines), between, opts.Summary(query))
			for _, rec := range resp.Lines {
				fmt.Fprintln(out, a.renderer.Render(rec, a.color))
			}
			return nil
		}),
	}

	addFilterFlags(cmd, &opts)
	return cmd
}
