package book

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"bookshelf/internal/app/client"
	"bookshelf/internal/app/client/ui"
)

var (
	listPolicy string
	listFormat string
)

var ListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the books",
	Long: `List the books of the zone.

--policy picks where they are read from:
  cloud  the store, refreshing the local cache (default)
  local  the local cache only
  prior  the store, or the cache when the store cannot be reached`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		policy, err := client.ParsePolicy(listPolicy)
		if err != nil {
			return err
		}

		s, err := start(cmd, policy)
		if err != nil {
			return err
		}
		defer s.close()

		return render(cmd, s.list, listFormat)
	},
}

func render(cmd *cobra.Command, list *ui.BookList, format string) error {
	out := cmd.OutOrStdout()
	switch format {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(list.Items())
	case "table", "":
		return list.Render(out)
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

func init() {
	ListCmd.Flags().StringVarP(&listPolicy, "policy", "p", "cloud", "read policy (cloud, local, prior)")
	ListCmd.Flags().StringVarP(&listFormat, "format", "f", "table", "output format (table, json)")
}
