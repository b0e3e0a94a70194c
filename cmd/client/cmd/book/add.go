package book

import (
	"fmt"

	"github.com/spf13/cobra"

	"bookshelf/cmd/client/cmd/types"
	"bookshelf/internal/app/client"
	"bookshelf/internal/app/client/ui"
)

var (
	addTitle       string
	addDescription string
)

var AddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a book",
	Long:  `Add a book under the next free id of the zone.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		s, err := start(cmd, client.PolicyCloudOnly)
		if err != nil {
			return err
		}
		defer s.close()

		b, err := s.list.Add(cmd.Context(), addTitle, addDescription)
		if err != nil {
			return err
		}

		types.Success(cmd.OutOrStdout(), "added book %d %q", b.ID, b.Title)
		return nil
	},
}

var (
	editTitle       string
	editDescription string
)

var EditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit a book",
	Long:  `Edit the title or description of a book. Unset flags keep the current value.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		s, err := start(cmd, client.PolicyCloudOnly)
		if err != nil {
			return err
		}
		defer s.close()

		current, ok := s.list.Find(id)
		if !ok {
			return fmt.Errorf("%w: %d", ui.ErrNotFound, id)
		}
		title, description := current.Title, current.Description
		if cmd.Flags().Changed("title") {
			title = editTitle
		}
		if cmd.Flags().Changed("description") {
			description = editDescription
		}

		b, err := s.list.Edit(cmd.Context(), id, title, description)
		if err != nil {
			return err
		}

		types.Success(cmd.OutOrStdout(), "updated book %d %q", b.ID, b.Title)
		return nil
	},
}

var DeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a book",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		s, err := start(cmd, client.PolicyCloudOnly)
		if err != nil {
			return err
		}
		defer s.close()

		if err := s.list.Delete(cmd.Context(), id); err != nil {
			return err
		}

		types.Success(cmd.OutOrStdout(), "deleted book %d", id)
		return nil
	},
}

func init() {
	AddCmd.Flags().StringVarP(&addTitle, "title", "t", "", "book title")
	AddCmd.Flags().StringVarP(&addDescription, "description", "d", "", "book description")
	_ = AddCmd.MarkFlagRequired("title")

	EditCmd.Flags().StringVarP(&editTitle, "title", "t", "", "new title")
	EditCmd.Flags().StringVarP(&editDescription, "description", "d", "", "new description")
}
