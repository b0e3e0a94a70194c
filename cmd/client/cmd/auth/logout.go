package auth

import (
	"fmt"

	"github.com/spf13/cobra"

	"bookshelf/cmd/client/cmd/types"
	"bookshelf/internal/app/client"
)

var LogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and forget the session",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.App(cmd)
		if err != nil {
			return err
		}
		if !app.Gate().SignedIn() {
			return client.ErrNotSignedIn
		}

		ctx, cancel := withTimeout(cmd)
		defer cancel()

		if err := app.Gate().SignOut(ctx); err != nil {
			return err
		}
		types.Success(cmd.OutOrStdout(), "signed out")
		return nil
	},
}

var StatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the session and the store",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.App(cmd)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		cfg := app.Config()

		fmt.Fprintf(out, "Store:  %s\n", cfg.BaseURL())
		fmt.Fprintf(out, "Zone:   %s (%s, %s)\n", cfg.Zone.Name, cfg.Zone.Sync, cfg.Zone.Access)

		if u, ok := app.Gate().User(); ok {
			fmt.Fprintf(out, "User:   %s (id %d)\n", u.DisplayName, u.ID)
		} else {
			fmt.Fprintln(out, "User:   not signed in")
		}

		ctx, cancel := withTimeout(cmd)
		defer cancel()
		if err := app.CheckConnection(ctx); err != nil {
			types.Warn(out, "store is not reachable: %v", err)
		} else {
			types.Success(out, "store is reachable")
		}
		return nil
	},
}
