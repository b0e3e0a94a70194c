package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"bookshelf/cmd/client/cmd/auth"
	"bookshelf/cmd/client/cmd/book"
	"bookshelf/cmd/client/cmd/types"
)

var forceInit bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config file and check the store",
	Long: `init writes the current settings to config.yaml in the config
directory and checks that the store answers.

Edit the file afterwards to pick another zone or sync property.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.App(cmd)
		if err != nil {
			return err
		}
		cfg := app.Config()
		out := cmd.OutOrStdout()

		path := filepath.Join(cfg.ConfigDir, "config.yaml")
		if cfgFile != "" {
			path = cfgFile
		}
		if _, err := os.Stat(path); err == nil && !forceInit {
			types.Warn(out, "%s already exists, use --force to overwrite", path)
		} else {
			if err := cfg.WriteFile(path); err != nil {
				return err
			}
			types.Success(out, "config written to %s", path)
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
		defer cancel()
		if err := app.CheckConnection(ctx); err != nil {
			types.Warn(out, "store %s is not reachable: %v", cfg.ServerAddress, err)
		} else {
			types.Success(out, "store %s is reachable", cfg.ServerAddress)
		}

		fmt.Fprintln(out)
		fmt.Fprintln(out, "Next steps:")
		fmt.Fprintln(out, "  bookshelf auth register")
		fmt.Fprintln(out, "  bookshelf auth login")
		fmt.Fprintln(out, "  bookshelf book add --title \"Dune\"")
		return nil
	},
}

func init() {
	initCmd.Flags().BoolVar(&forceInit, "force", false, "overwrite an existing config file")

	rootCmd.AddCommand(initCmd)

	rootCmd.AddCommand(auth.AuthCmd)
	auth.AuthCmd.AddCommand(auth.RegisterCmd)
	auth.AuthCmd.AddCommand(auth.LoginCmd)
	auth.AuthCmd.AddCommand(auth.SignInCmd)
	auth.AuthCmd.AddCommand(auth.LogoutCmd)
	auth.AuthCmd.AddCommand(auth.StatusCmd)

	rootCmd.AddCommand(book.BookCmd)
	book.BookCmd.AddCommand(book.ListCmd)
	book.BookCmd.AddCommand(book.AddCmd)
	book.BookCmd.AddCommand(book.EditCmd)
	book.BookCmd.AddCommand(book.DeleteCmd)
	book.BookCmd.AddCommand(book.RefreshCmd)
	book.BookCmd.AddCommand(book.WatchCmd)
}
