package main

import (
	"fmt"
	"log/slog"

	"github.com/logdna/logdna-cli/internal/config"
	"github.com/logdna/logdna-cli/internal/logdnasdk"
	"github.com/logdna/logdna-cli/internal/prompt"
	"github.com/logdna/logdna-cli/internal/render"
	"github.com/logdna/logdna-cli/internal/updater"
	"github.com/spf13/cobra"
)

// app carries what every command needs. It is filled in by the root
// command's pre-run; tests preset fields to swap collaborators.
type app struct {
	cfg      *config.Config
	updater  *updater.Manager
	renderer render.Renderer
	color    bool
	ask      func(fields []prompt.Field) ([]string, error)
}

func (a *app) load(cmd *cobra.Command) error {
	if a.cfg == nil {
		cfg, err := config.Load(resolveConfigPath(cmd))
		if err != nil {
			return err
		}
		a.cfg = cfg
	}

	if a.updater == nil {
		a.updater = updater.New(updater.Options{
			LockPath: config.DefaultLockPath,
			Out:      cmd.OutOrStdout(),
		})
	}

	if a.ask == nil {
		a.ask = prompt.Ask
	}

	return nil
}

func (a *app) client() (*logdnasdk.Client, error) {
	client, err := logdnasdk.New(&logdnasdk.Config{APIURL: a.cfg.APIURL()})
	if err != nil {
		return nil, fmt.Errorf("api client: %w", err)
	}
	slog.Debug("api client", "url", client.APIURL())
	return client, nil
}

// withUpdateCheck runs the command body as the continuation of the update
// check, so a fresh upgrade stops the command before it starts.
func (a *app) withUpdateCheck(run func(cmd *cobra.Command, args []string) error) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		return a.updater.Run(cmd.Context(), a.cfg, false, func() error {
			return run(cmd, args)
		})
	}
}
