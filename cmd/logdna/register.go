package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/logdna/logdna-cli/internal/logdnasdk"
	"github.com/logdna/logdna-cli/internal/prompt"
	"github.com/logdna/logdna-cli/internal/utils"
	"github.com/spf13/cobra"
)

var errInvalidEmail = errors.New("invalid email address")

func newRegisterCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "register [email] [key]",
		Short: "Register a new LogDNA account. [key] is optional and will autogenerate",
		Args:  cobra.MaximumNArgs(2),
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
			fields = append(fields,
				prompt.Field{Label: "First name:", Required: true},
				prompt.Field{Label: "Last name:", Required: true},
				prompt.Field{Label: "Company/Organization:", Required: true},
			)

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

			var key string
			if len(args) > 1 {
				key = strings.ToLower(args[1])
			}

			client, err := a.client()
			if err != nil {
				return err
			}

			resp, err := client.Register(cmd.Context(), &logdnasdk.RegisterRequest{
				Email:     email,
				Key:       key,
				FirstName: answers[0],
				LastName:  answers[1],
				Company:   answers[2],
			})
			if err != nil {
				return err
			}

			a.cfg.ApplyRegistration(email, resp)
			if err := a.cfg.Save(); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Thank you for signing up! Your Ingestion Key is: %s. Saving credentials to local config.\n\n", green.Render(resp.Key))
			fmt.Fprintln(out, "Next steps:")
			fmt.Fprintln(out, "===========")
			fmt.Fprintln(out, "1) We've sent you a welcome email to create your password. Once set, come back here and use 'logdna login'")
			fmt.Fprintln(out, "2) Type 'logdna install' for more info on collecting your logs via our agent, syslog, Heroku, API, etc.")
			fmt.Fprintln(out)
			return nil
		}),
	}
}
