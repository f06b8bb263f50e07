package commands

import (
	"strconv"

	"github.com/ToNga156/FinalProject/cmd/storefront/output"
	"github.com/ToNga156/FinalProject/internal/models"
	"github.com/ToNga156/FinalProject/internal/store"
	"github.com/spf13/cobra"
)

var (
	cartUser string
	cartQty  int
)

func newCartCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cart",
		Short: "Inspect and edit a user's cart",
	}
	cmd.PersistentFlags().StringVarP(&cartUser, "user", "u", "", "Cart owner's username")

	addCmd := &cobra.Command{
		Use:   "add <product-id>",
		Short: "Add units of a product, merging with an existing line",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			u, err := a.lookupUser(ctx, cartUser)
			if err != nil {
				return err
			}
			productID, err := parseID(args[0], "product")
			if err != nil {
				return err
			}
			if err := a.store.AddToCart(ctx, u.ID, productID, cartQty); err != nil {
				return err
			}
			output.Success("Added %d × product %d to %s's cart", cartQty, productID, u.Username)
			return nil
		},
	}
	addCmd.Flags().IntVarP(&cartQty, "qty", "q", 1, "Quantity to add")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "Show the cart with line subtotals",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			u, err := a.lookupUser(ctx, cartUser)
			if err != nil {
				return err
			}
			lines, err := a.store.GetCartItems(ctx, u.ID)
			if err != nil {
				return err
			}
			total := store.CartTotal(lines)

			if jsonOutput {
				if lines == nil {
					lines = []models.CartLine{}
				}
				return output.JSON(map[string]any{"lines": lines, "total": total})
			}
			if len(lines) == 0 {
				output.Muted("Cart is empty")
				return nil
			}
			rows := make([][]string, 0, len(lines))
			for _, l := range lines {
				price := "-"
				if l.Product != nil {
					price = money(l.Product.Price)
				}
				rows = append(rows, []string{strconv.Itoa(l.ID), strconv.Itoa(l.ProductID), productName(l.Product),
					strconv.Itoa(l.Quantity), price, money(l.Subtotal())})
			}
			if err := output.Table([]string{"LINE", "PRODUCT", "NAME", "QTY", "PRICE", "SUBTOTAL"}, rows); err != nil {
				return err
			}
			output.Info("Total: %s", money(total))
			return nil
		},
	}

	setCmd := &cobra.Command{
		Use:   "set <line-id> <quantity>",
		Short: "Set a line's quantity; zero removes it",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			lineID, err := parseID(args[0], "cart line")
			if err != nil {
				return err
			}
			qty, err := strconv.Atoi(args[1])
			if err != nil {
				return err
			}
			if err := a.store.UpdateQuantity(cmd.Context(), lineID, qty); err != nil {
				return err
			}
			output.Success("Cart line %d set to %d", lineID, max(qty, 0))
			return nil
		},
	}

	removeCmd := &cobra.Command{
		Use:   "remove <line-id>",
		Short: "Remove a cart line",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lineID, err := parseID(args[0], "cart line")
			if err != nil {
				return err
			}
			if err := a.store.RemoveItem(cmd.Context(), lineID); err != nil {
				return err
			}
			output.Success("Removed cart line %d", lineID)
			return nil
		},
	}

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Empty the cart",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			u, err := a.lookupUser(ctx, cartUser)
			if err != nil {
				return err
			}
			if err := a.store.ClearCart(ctx, u.ID); err != nil {
				return err
			}
			output.Success("Cleared %s's cart", u.Username)
			return nil
		},
	}

	cmd.AddCommand(addCmd, listCmd, setCmd, removeCmd, clearCmd)
	return cmd
}
