package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/logdna/logdna-cli/internal/config"
	"github.com/logdna/logdna-cli/internal/logdnasdk"
	"github.com/logdna/logdna-cli/internal/prompt"
	"github.com/logdna/logdna-cli/internal/render"
	"github.com/logdna/logdna-cli/internal/version"
	"github.com/spf13/cobra"
)

const (
	msgLoginFirst   = "Please login first. Type 'logdna login' or 'logdna --help' for more info."
	msgTokenInvalid = "Access token invalid. If you created or changed your password recently, please 'logdna login' again. Type 'logdna --help' for more info."
)

const helpExamples = `  logdna register user@example.com
  logdna register user@example.com b7c0487cfa5fa7327c9a166c6418598d    # use this if you were assigned an Ingestion Key
  logdna tail '("timed out" OR "connection refused") -request'
  logdna tail -a access.log 500
  logdna tail -l error,warn`

func newRootCmd(a *app) *cobra.Command {
	var verbose bool

	rootCmd := &cobra.Command{
		Use:           "logdna",
		Short:         "This CLI duplicates useful functionality of the LogDNA web app.",
		Version:       version.Version,
		Example:       helpExamples,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if verbose {
				logLevel.Set(slog.LevelDebug)
			}
			slog.Debug("logdna", "version", version.Short(), "command", cmd.CommandPath())
			return a.load(cmd)
		},
	}

	rootCmd.SetVersionTemplate("{{.Version}}\n")
	rootCmd.PersistentFlags().StringP("config", "c", config.DefaultConfigPath, "logdna config file")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Print debug logs")

	rootCmd.AddCommand(
		newRegisterCmd(a),
		newLoginCmd(a),
		newTailCmd(a),
		newSearchCmd(a),
		newHerokuCmd(a),
		newInstallCmd(a),
		newInfoCmd(a),
		newUpdateCmd(a),
		newVersionCmd(),
	)

	return rootCmd
}

func main() {
	closeLogs := setupLogging(config.DefaultLogFile)

	// Setup root context with signal handling
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	a := &app{
		renderer: render.Renderer{},
		color:    render.ColorCapable(os.Getenv("TERM"), os.Stdout),
	}

	rootCmd := newRootCmd(a)
	rootCmd.SetArgs(normalizeArgs(os.Args[1:]))

	err := rootCmd.ExecuteContext(ctx)
	stop()
	closeLogs()

	if err != nil {
		if msg := errorMessage(err); msg != "" {
			fmt.Fprintln(os.Stderr, msg)
		}
		os.Exit(1)
	}
}

// normalizeArgs turns `tail -h` and `search -h` into help requests; on those
// commands -h otherwise means --hosts.
func normalizeArgs(args []string) []string {
	if len(args) == 2 && (args[0] == "tail" || args[0] == "search") && args[1] == "-h" {
		return []string{args[0], "--help"}
	}
	return args
}

// errorMessage is what the user sees for a failed command.
func errorMessage(err error) string {
	var apiErr *logdnasdk.APIError

	switch {
	case errors.Is(err, prompt.ErrCancelled):
		return ""
	case errors.Is(err, logdnasdk.ErrUnauthenticated):
		return msgLoginFirst
	case errors.Is(err, logdnasdk.ErrCredentialRejected):
		return msgTokenInvalid
	case errors.As(err, &apiErr):
		return apiErr.Error()
	default:
		return fmt.Sprintf("%s: %s", red.Render("ERROR"), err)
	}
}
