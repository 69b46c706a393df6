package main

import (
	"fmt"

	"github.com/Fausto-Grilo/VulnWebApp/storefront"
	"github.com/spf13/cobra"
)

func (sh *shell) loginCmd() *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and remember the account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				p, err := sh.prompt("Password: ")
				if err != nil {
					return err
				}
				password = p
			}
			id, err := sh.app.Session.Login(cmd.Context(), email, password)
			if err != nil {
				return err
			}
			fmt.Fprintf(sh.out, "✅ Signed in as %s <%s>\n", id.Name, id.Email)
			if sh.app.Session.Resolve(storefront.ViewDashboard) == storefront.ViewDashboard {
				fmt.Fprintln(sh.out, "Admin commands are available under `shopctl admin`.")
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&email, "email", "e", "", "account email")
	cmd.Flags().StringVarP(&password, "password", "p", "", "account password (prompted when omitted)")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func (sh *shell) logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the signed-in account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sh.app.Session.Logout(cmd.Context())
			fmt.Fprintln(sh.out, "Signed out")
			return nil
		},
	}
}

func (sh *shell) registerCmd() *cobra.Command {
	var name, email, password, confirm string
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if password == "" {
				if password, err = sh.prompt("Password: "); err != nil {
					return err
				}
			}
			if confirm == "" {
				if confirm, err = sh.prompt("Confirm password: "); err != nil {
					return err
				}
			}
			msg, err := sh.app.Session.Register(cmd.Context(), name, email, password, confirm)
			if err != nil {
				return err
			}
			fmt.Fprintln(sh.out, "✅", msg)
			return nil
		},
	}
	cmd.Flags().StringVarP(&name, "name", "n", "", "display name")
	cmd.Flags().StringVarP(&email, "email", "e", "", "account email")
	cmd.Flags().StringVarP(&password, "password", "p", "", "password (prompted when omitted)")
	cmd.Flags().StringVar(&confirm, "confirm", "", "password confirmation (prompted when omitted)")
	return cmd
}

func (sh *shell) whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			id := sh.app.Session.Current()
			if id == nil {
				fmt.Fprintln(sh.out, "Not signed in")
				return nil
			}
			role := "customer"
			if id.IsAdmin {
				role = "admin"
			}
			fmt.Fprintf(sh.out, "%s <%s> (%s)\n", id.Name, id.Email, role)
			return nil
		},
	}
}
