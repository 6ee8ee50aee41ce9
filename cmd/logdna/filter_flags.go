package main

import (
	"github.com/logdna/logdna-cli/internal/logdnasdk"
	"github.com/spf13/cobra"
)

// addFilterFlags binds the tail/search filter flags. -h is --hosts here,
// so help is registered without a shorthand before cobra claims -h for it.
func addFilterFlags(cmd *cobra.Command, opts *logdnasdk.FilterOptions) {
	cmd.Flags().SortFlags = false
	cmd.Flags().Bool("help", false, "help for "+cmd.Name())
	cmd.Flags().BoolVarP(&opts.IncludeDebug, "debug", "d", false, "Show debug level messages. Filtered by default")
	cmd.Flags().StringVarP(&opts.Hosts, "hosts", "h", "", "Filter on hosts (separate by comma)")
	cmd.Flags().StringVarP(&opts.Apps, "apps", "a", "", "Filter on apps (separate by comma)")
	cmd.Flags().StringVarP(&opts.Levels, "levels", "l", "", "Filter on levels (separate by comma)")
}

func queryArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
