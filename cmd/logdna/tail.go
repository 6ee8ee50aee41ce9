package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/logdna/logdna-cli/internal/logdnasdk"
	"github.com/logdna/logdna-cli/internal/render"
	"github.com/spf13/cobra"
)

func newTailCmd(a *app) *cobra.Command {
	var opts logdnasdk.FilterOptions

	cmd := &cobra.Command{
		Use:   "tail [query]",
		Short: "Live tail with optional filtering. See 'logdna tail --help'",
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
			printer := &tailPrinter{
				out:      cmd.OutOrStdout(),
				renderer: a.renderer,
				color:    a.color,
				summary:  opts.Summary(query),
			}

			session := client.Tail(identity, logdnasdk.BuildFilter(query, opts), printer, nil)
			err = session.Run(cmd.Context())
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		}),
	}

	addFilterFlags(cmd, &opts)
	return cmd
}

// tailPrinter writes session events to the terminal.
type tailPrinter struct {
	out      io.Writer
	renderer render.Renderer
	color    bool
	summary  string
}

func (p *tailPrinter) OnOpen() {
	fmt.Fprintf(p.out, "tail started. %s\n", p.summary)
}

func (p *tailPrinter) OnRecords(records []logdnasdk.LogRecord) {
	for _, rec := range records {
		fmt.Fprintln(p.out, p.renderer.Render(rec, p.color))
	}
}

func (p *tailPrinter) OnMalformed(frame []byte) {
	fmt.Fprintf(p.out, "Malformed line: %s\n", frame)
}

func (p *tailPrinter) OnReconnecting(attempt int) {
	fmt.Fprintf(p.out, "tail reconnect attempt #%d...\n", attempt)
}

func (p *tailPrinter) OnClose() {
	fmt.Fprintln(p.out, "tail lost connection")
}
