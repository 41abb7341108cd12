package main

import (
	"github.com/spf13/cobra"
	"github.com/vango-dev/refstore/internal/errors"
	"github.com/vango-dev/refstore/internal/loginpage"
)

func validateCmd() *cobra.Command {
	var values loginpage.AppStore

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check login credentials against the login schema",
		Long: `Validate an email and password with the login validation schema.

Examples:
  refstore validate --email=user@example.com --password=secret`,
		RunE: func(cmd *cobra.Command, args []string) error {
			errs := loginpage.LoginValidationSchema.ValidateStruct(values)
			if err := errs.Err(); err != nil {
				errors.Fprint(cmd.ErrOrStderr(), err)
				return err
			}
			success(cmd.OutOrStdout(), "credentials are valid")
			return nil
		},
	}

	cmd.Flags().StringVarP(&values.Email, "email", "e", "", "Email address")
	cmd.Flags().StringVarP(&values.Password, "password", "p", "", "Password")

	return cmd
}
