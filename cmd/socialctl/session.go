// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/taibuivan/yomira-social/internal/client/remote"
	"github.com/taibuivan/yomira-social/internal/client/slices/ui"
)

// passwordEnv lets scripts avoid passing the password on the command line.
const passwordEnv = "SOCIAL_PASSWORD"

var (
	loginEmail    string
	loginPassword string
	registration  remote.Registration
)

func init() {
	loginCmd.Flags().StringVarP(&loginEmail, "email", "e", "", "account email")
	loginCmd.Flags().StringVarP(&loginPassword, "password", "p", "", "password (or "+passwordEnv+")")
	_ = loginCmd.MarkFlagRequired("email")

	registerCmd.Flags().StringVar(&registration.Username, "username", "", "handle, 3 to 30 letters, digits or underscores")
	registerCmd.Flags().StringVar(&registration.Email, "email", "", "account email")
	registerCmd.Flags().StringVar(&registration.Password, "password", "", "password (or "+passwordEnv+")")
	registerCmd.Flags().StringVar(&registration.FirstName, "first-name", "", "")
	registerCmd.Flags().StringVar(&registration.LastName, "last-name", "", "")

	rootCmd.AddCommand(loginCmd, registerCmd, logoutCmd, whoamiCmd, passwdCmd, themeCmd)
}

func password(flag string) (string, error) {
	if flag != "" {
		return flag, nil
	}
	if value := os.Getenv(passwordEnv); value != "" {
		return value, nil
	}
	return "", errors.New("password required: pass --password or set " + passwordEnv)
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in and keep the session",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		secret, err := password(loginPassword)
		if err != nil {
			return err
		}

		user, err := app.Auth.Login(cmd.Context(), loginEmail, secret)
		if err != nil {
			return err
		}

		fmt.Println(success("Signed in as ") + handle("@"+user.Username))
		return nil
	},
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account and sign in",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		secret, err := password(registration.Password)
		if err != nil {
			return err
		}
		registration.Password = secret

		user, err := app.Auth.Register(cmd.Context(), registration)
		if err != nil {
			return err
		}

		fmt.Println(success("Welcome, ") + handle("@"+user.Username))
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "End the session here and on the server",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := app.Auth.Logout(cmd.Context()); err != nil {
			return err
		}
		fmt.Println(faint("Signed out"))
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed in account",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		user, err := app.Remote.Me(cmd.Context())
		if err != nil {
			return err
		}

		printUser(user)
		return app.Auth.UpdateUser(cmd.Context(), user)
	},
}

var passwdCmd = &cobra.Command{
	Use:   "passwd <current> <new>",
	Short: "Change the password",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := app.Auth.ChangePassword(cmd.Context(), args[0], args[1]); err != nil {
			return err
		}
		fmt.Println(success("Password changed"))
		return nil
	},
}

var themeCmd = &cobra.Command{
	Use:       "theme [light|dark|toggle]",
	Short:     "Show or change the persisted theme",
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{string(ui.ThemeLight), string(ui.ThemeDark), "toggle"},
	RunE: func(cmd *cobra.Command, args []string) error {
		switch {
		case len(args) == 0:
		case args[0] == "toggle":
			if _, err := app.UI.ToggleTheme(cmd.Context()); err != nil {
				return err
			}
		default:
			if err := app.UI.SetTheme(cmd.Context(), ui.Theme(args[0])); err != nil {
				return err
			}
		}

		fmt.Println(app.UI.State().Theme)
		return nil
	},
}
