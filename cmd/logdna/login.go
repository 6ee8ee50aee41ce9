package main

import (
	"fmt"

	"github.com/logdna/logdna-cli/internal/prompt"
	"github.com/logdna/logdna-cli/internal/utils"
	"github.com/spf13/cobra"
)

func newLoginCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "login [email]",
		Short: "Login to a LogDNA user account",
		Args:  cobra.MaximumNArgs(1),
		RunE: a.withUpdateCheck(func(cmd *cobra.Command, args []string) error {
			var email string
			if len(args) > 0 {
				normalized, err := utils.NormalizeEmail(args[0])
				if err != nil {
					return errInvalidEmail
				}
				email = normalized
			}

			var fields []prompt.Field
			if len(args) == 0 {
				fields = append(fields, prompt.Field{Label: "Email:", Placeholder: "your@email.com", Required: true})
			}
			fields = append(fields, prompt.Field{Label: "Password:", Hidden: true})

			answers, err := a.ask(fields)
			if err != nil {
				return err
			}

			if len(args) == 0 {
				email, err = utils.NormalizeEmail(answers[0])
				if err != nil {
					return errInvalidEmail
				}
				answers = answers[1:]
			}
			password := answers[0]

			client, err := a.client()
			if err != nil {
				return err
			}

			resp, err := client.Login(cmd.Context(), email, password)
			if err != nil {
				return err
			}

			a.cfg.ApplyLogin(email, resp)
			if err := a.cfg.Save(); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Logged in successfully as: %s. Saving credentials to local config.\n", cyan.Render(email))
			return nil
		}),
	}
}
