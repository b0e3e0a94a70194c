package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"bookshelf/cmd/client/cmd/types"
	"bookshelf/internal/app/client"
)

const requestTimeout = 30 * time.Second

// AuthCmd groups account and session commands.
var AuthCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage the account and session",
	Long:  `Register an account, sign in, sign out and show the session.`,
}

// signedOutApp returns the App for commands that only make sense without a
// session.
func signedOutApp(cmd *cobra.Command) (*client.App, error) {
	app, err := types.App(cmd)
	if err != nil {
		return nil, err
	}
	if u, ok := app.Gate().User(); ok {
		return nil, fmt.Errorf("already signed in as %s, run: bookshelf auth logout", u.DisplayName)
	}
	return app, nil
}

func withTimeout(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), requestTimeout)
}
