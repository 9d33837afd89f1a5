package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"hotel_admin/internal/app"
)

var (
	identifier string
	password   string
	adminForm  app.AdminForm
)

// loginCmd exchanges credentials for a token
var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in with an email or mobile number",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := opContext()
		defer cancel()
		if err := console.Login(ctx, identifier, password); err != nil {
			return describe(err)
		}
		s := console.Session()
		fmt.Fprintf(cmd.OutOrStdout(), "logged in as %s\nexport HOTEL_API_TOKEN=%s\n", s.Email, s.Token)
		return nil
	},
}

// registerAdminCmd creates an operator account
var registerAdminCmd = &cobra.Command{
	Use:   "register-admin",
	Short: "Create an admin account",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := opContext()
		defer cancel()
		msg, err := console.RegisterAdmin(ctx, adminForm)
		if err != nil {
			return describe(err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), msg)
		return nil
	},
}

func init() {
	loginCmd.Flags().StringVarP(&identifier, "user", "u", "", "Email or 10-digit mobile number")
	loginCmd.Flags().StringVarP(&password, "password", "p", "", "Password")
	_ = loginCmd.MarkFlagRequired("user")

	registerAdminCmd.Flags().StringVar(&adminForm.Name, "name", "", "Admin name")
	registerAdminCmd.Flags().StringVar(&adminForm.Identifier, "user", "", "Email or 10-digit mobile number")
	registerAdminCmd.Flags().StringVar(&adminForm.Phone, "phone", "", "Mobile number")
	registerAdminCmd.Flags().StringVar(&adminForm.Password, "password", "", "Password")
	registerAdminCmd.Flags().StringVar(&adminForm.ConfirmPassword, "confirm-password", "", "Password again")
}
