package auth

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"bookshelf/cmd/client/cmd/types"
	"bookshelf/internal/app/client"
)

var registerLogin string

var RegisterCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account",
	Long: `Create an account at the store's identity provider.

The password needs at least 8 characters with a lower and an upper case
letter, a digit and a special character.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.App(cmd)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()

		login := registerLogin
		if login == "" {
			if login, err = types.Prompt(cmd, "Login: "); err != nil {
				return err
			}
		}

		password, err := types.ReadPassword(cmd, "Password: ")
		if err != nil {
			return err
		}
		confirm, err := types.ReadPassword(cmd, "Repeat password: ")
		if err != nil {
			return err
		}
		if password != confirm {
			return errors.New("passwords do not match")
		}

		ctx, cancel := withTimeout(cmd)
		defer cancel()

		if err := app.Gate().Register(ctx, login, password); err != nil {
			if client.IsStatus(err, 409) {
				return fmt.Errorf("login %q is taken", login)
			}
			return fmt.Errorf("register: %w", err)
		}

		types.Success(out, "account %s created", login)
		fmt.Fprintln(out, "Sign in with: bookshelf auth login")
		return nil
	},
}

func init() {
	RegisterCmd.Flags().StringVarP(&registerLogin, "login", "l", "", "account login")
}
