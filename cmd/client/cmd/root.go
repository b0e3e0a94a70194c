package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/exp/slog"

	"bookshelf/cmd/client/cmd/types"
	"bookshelf/internal/app/client"
	"bookshelf/internal/app/client/config"
	"bookshelf/internal/utils/logger"
)

var (
	cfgFile   string
	serverURL string
	debug     bool

	app *client.App
)

var rootCmd = &cobra.Command{
	Use:   "bookshelf",
	Short: "Bookshelf keeps a shared list of books",
	Long: `Bookshelf is a client for a shared, cloud-synced list of books.

Books live in a zone on the store. Every signed-in user of a public zone
sees the same list; private zones belong to whoever opened them first.`,
	PersistentPreRunE: setupApp,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if app != nil {
		if cerr := app.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	if err != nil {
		_, _ = color.New(color.FgRed).Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func setupApp(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if serverURL != "" {
		cfg.ServerAddress = serverURL
	}

	log := logger.Console(os.Stderr, slog.LevelWarn)
	if debug {
		log = logger.New(cfg.Env)
	}

	app, err = client.New(cfg, log)
	if err != nil {
		return fmt.Errorf("init client: %w", err)
	}

	cmd.SetContext(context.WithValue(cmd.Context(), types.ClientAppKey, app))
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.bookshelf/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "store address as host:port")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "verbose logging")
}
