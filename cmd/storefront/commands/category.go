package commands

import (
	"strconv"

	"github.com/ToNga156/FinalProject/cmd/storefront/output"
	"github.com/spf13/cobra"
)

func newCategoryCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "category",
		Aliases: []string{"categories"},
		Short:   "Manage product categories",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List categories",
		RunE: func(cmd *cobra.Command, args []string) error {
			categories, err := a.store.ListCategories(cmd.Context())
			if err != nil {
				return err
			}
			if jsonOutput {
				return output.JSON(categories)
			}
			rows := make([][]string, 0, len(categories))
			for _, c := range categories {
				rows = append(rows, []string{strconv.Itoa(c.ID), c.Name})
			}
			return output.Table([]string{"ID", "NAME"}, rows)
		},
	}

	addCmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a category with the next free id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := a.store.AddCategory(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if jsonOutput {
				return output.JSON(map[string]int{"id": id})
			}
			output.Success("Added category %d %q", id, args[0])
			return nil
		},
	}

	renameCmd := &cobra.Command{
		Use:   "rename <id> <name>",
		Short: "Rename a category",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "category")
			if err != nil {
				return err
			}
			if err := a.store.RenameCategory(cmd.Context(), id, args[1]); err != nil {
				return err
			}
			output.Success("Renamed category %d to %q", id, args[1])
			return nil
		},
	}

	deleteCmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a category and every product in it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "category")
			if err != nil {
				return err
			}
			if err := a.store.DeleteCategory(cmd.Context(), id); err != nil {
				return err
			}
			output.Success("Deleted category %d and its products", id)
			return nil
		},
	}

	cmd.AddCommand(listCmd, addCmd, renameCmd, deleteCmd)
	return cmd
}
