package book

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"bookshelf/cmd/client/cmd/types"
	"bookshelf/internal/app/client"
)

var RefreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Fetch the zone again and show it",
	RunE: func(cmd *cobra.Command, _ []string) error {
		s, err := start(cmd, client.PolicyCloudOnly)
		if err != nil {
			return err
		}
		defer s.close()

		if err := s.list.Refresh(cmd.Context()); err != nil {
			return err
		}
		types.Success(cmd.OutOrStdout(), "%d books, highest id %d", s.list.Len(), s.app.DB().CurrentMaxID())
		return s.list.Render(cmd.OutOrStdout())
	},
}

var watchInterval time.Duration

var WatchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Show the books and follow changes",
	Long:  `Poll the zone and print the list whenever it changes. Stop with Ctrl+C.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		s, err := start(cmd, client.PolicyCloudOnly)
		if err != nil {
			return err
		}
		defer s.close()

		out := cmd.OutOrStdout()
		for books := range s.app.DB().Listen(cmd.Context(), watchInterval) {
			s.list.OnStart(books)
			fmt.Fprintf(out, "\n%s\n", time.Now().Format(time.TimeOnly))
			if err := s.list.Render(out); err != nil {
				return err
			}
		}
		return nil
	},
}

func init() {
	WatchCmd.Flags().DurationVarP(&watchInterval, "interval", "i", 5*time.Second, "poll interval")
}
