package book

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"bookshelf/cmd/client/cmd/types"
	"bookshelf/internal/app/client"
	"bookshelf/internal/app/client/ui"
)

// BookCmd groups the commands that work on the configured zone.
var BookCmd = &cobra.Command{
	Use:   "book",
	Short: "Work with the books of the zone",
	Long: `List, add, edit and delete books of the configured zone.

Every command signs in with the saved session, registers the book type,
opens the zone and fetches it before doing its work.`,
}

// session is one started App with its book list.
type session struct {
	app  *client.App
	list *ui.BookList
}

func start(cmd *cobra.Command, policy client.Policy) (*session, error) {
	app, err := types.App(cmd)
	if err != nil {
		return nil, err
	}

	books, err := app.Start(cmd.Context(), policy)
	if err != nil {
		return nil, err
	}

	list := ui.NewBookList(app.DB(), app.Log())
	list.OnStart(books)
	return &session{app: app, list: list}, nil
}

func (s *session) close() {
	_ = s.app.DB().CloseZone()
}

func parseID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid book id %q", arg)
	}
	return id, nil
}
