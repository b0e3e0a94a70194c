package auth

import (
	"errors"

	"github.com/spf13/cobra"

	"bookshelf/cmd/client/cmd/types"
	"bookshelf/internal/app/client"
)

var loginName string

var LoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in with login and password",
	Long: `Sign in with an account of the store's identity provider.

The session is saved in the config directory and reused by later commands
until it expires or you run: bookshelf auth logout`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := signedOutApp(cmd)
		if err != nil {
			return err
		}

		login := loginName
		if login == "" {
			if login, err = types.Prompt(cmd, "Login: "); err != nil {
				return err
			}
		}
		password, err := types.ReadPassword(cmd, "Password: ")
		if err != nil {
			return err
		}

		ctx, cancel := withTimeout(cmd)
		defer cancel()

		u, err := app.Gate().LoginWithPassword(ctx, login, password)
		if err != nil {
			return signInFailed(cmd, err)
		}

		types.Success(cmd.OutOrStdout(), "signed in as %s", u.DisplayName)
		return nil
	},
}

var (
	signInToken    string
	signInProvider string
)

var SignInCmd = &cobra.Command{
	Use:   "signin",
	Short: "Sign in with an identity token",
	Long: `Exchange an identity token issued by a provider for a session.

Use it when the token comes from somewhere else than bookshelf auth login.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := signedOutApp(cmd)
		if err != nil {
			return err
		}
		if signInToken == "" {
			return errors.New("--token is required")
		}

		ctx, cancel := withTimeout(cmd)
		defer cancel()

		u, err := app.Gate().SignIn(ctx, signInProvider, signInToken)
		if err != nil {
			return signInFailed(cmd, err)
		}

		types.Success(cmd.OutOrStdout(), "signed in as %s", u.DisplayName)
		return nil
	},
}

// signInFailed shows the one-shot notice. Nothing is retried.
func signInFailed(cmd *cobra.Command, err error) error {
	types.Failure(cmd.ErrOrStderr(), "Sign-in failed")
	if client.IsStatus(err, 401) {
		return errors.New("invalid credentials")
	}
	return err
}

func init() {
	LoginCmd.Flags().StringVarP(&loginName, "login", "l", "", "account login")

	SignInCmd.Flags().StringVar(&signInToken, "token", "", "identity token")
	SignInCmd.Flags().StringVar(&signInProvider, "provider", client.ProviderPassword, "identity provider")
}
