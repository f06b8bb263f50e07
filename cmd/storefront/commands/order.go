package commands

import (
	"fmt"
	"strconv"

	"github.com/ToNga156/FinalProject/cmd/storefront/output"
	"github.com/ToNga156/FinalProject/internal/models"
	"github.com/ToNga156/FinalProject/internal/shop"
	"github.com/spf13/cobra"
)

var orderFlags struct {
	user    string
	address string
	phone   string
	payment string
}

func printOrders(orders []models.Order, withUser bool) error {
	if jsonOutput {
		if orders == nil {
			orders = []models.Order{}
		}
		return output.JSON(orders)
	}
	if len(orders) == 0 {
		output.Muted("No orders")
		return nil
	}

	header := []string{"", "ID", "STATUS", "TOTAL", "PAYMENT", "CREATED", "SHIP TO"}
	if withUser {
		header = append(header, "USER")
	}
	rows := make([][]string, 0, len(orders))
	for _, o := range orders {
		r := []string{output.StatusIcon(string(o.Status)), strconv.Itoa(o.ID), string(o.Status), money(o.TotalAmount),
			string(o.PaymentMethod), o.CreatedAt.Format("2006-01-02 15:04"), o.ShippingAddress}
		if withUser {
			name := o.Username
			if name == "" {
				name = fmt.Sprintf("(deleted #%d)", o.UserID)
			}
			r = append(r, name)
		}
		rows = append(rows, r)
	}
	return output.Table(header, rows)
}

func newOrderCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "order",
		Aliases: []string{"orders"},
		Short:   "Place and manage orders",
	}

	checkoutCmd := &cobra.Command{
		Use:   "checkout",
		Short: "Turn a user's cart into an order",
		Long: `Place an order for everything in the user's cart. Prices are taken from
the catalog at this moment and the cart is emptied.

Examples:
  storefront order checkout --user lan --address "12 Tran Hung Dao, Hue" --phone 0912345678
  storefront order checkout --user lan --address "12 Tran Hung Dao, Hue" --phone 0912345678 --payment bank_transfer`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			u, err := a.lookupUser(ctx, orderFlags.user)
			if err != nil {
				return err
			}
			id, err := a.shop.Checkout(ctx, u.ID, shop.CheckoutRequest{
				ShippingAddress: orderFlags.address,
				Phone:           orderFlags.phone,
				PaymentMethod:   models.PaymentMethod(orderFlags.payment),
			})
			if err != nil {
				return err
			}
			o, err := a.store.GetOrder(ctx, id)
			if err != nil {
				return err
			}
			if jsonOutput {
				return output.JSON(o)
			}
			output.Success("Order %d placed, total %s", id, money(o.TotalAmount))
			return nil
		},
	}
	checkoutCmd.Flags().StringVarP(&orderFlags.user, "user", "u", "", "Buyer's username")
	checkoutCmd.Flags().StringVar(&orderFlags.address, "address", "", "Shipping address")
	checkoutCmd.Flags().StringVar(&orderFlags.phone, "phone", "", "Contact phone (10 or 11 digits)")
	checkoutCmd.Flags().StringVar(&orderFlags.payment, "payment", string(models.PaymentCash), "cash, bank_transfer or credit_card")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List a user's orders, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			u, err := a.lookupUser(ctx, orderFlags.user)
			if err != nil {
				return err
			}
			orders, err := a.store.GetOrders(ctx, u.ID)
			if err != nil {
				return err
			}
			return printOrders(orders, false)
		},
	}
	listCmd.Flags().StringVarP(&orderFlags.user, "user", "u", "", "Buyer's username")

	allCmd := &cobra.Command{
		Use:   "all",
		Short: "List every order, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			orders, err := a.store.GetAllOrders(cmd.Context())
			if err != nil {
				return err
			}
			return printOrders(orders, true)
		},
	}

	itemsCmd := &cobra.Command{
		Use:   "items <order-id>",
		Short: "Show an order's lines at their checkout prices",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "order")
			if err != nil {
				return err
			}
			lines, err := a.store.GetOrderItems(cmd.Context(), id)
			if err != nil {
				return err
			}
			if jsonOutput {
				if lines == nil {
					lines = []models.OrderLine{}
				}
				return output.JSON(lines)
			}
			if len(lines) == 0 {
				output.Muted("Order %d has no lines", id)
				return nil
			}
			rows := make([][]string, 0, len(lines))
			for _, l := range lines {
				rows = append(rows, []string{strconv.Itoa(l.ProductID), productName(l.Product),
					strconv.Itoa(l.Quantity), money(l.Price), money(l.Subtotal())})
			}
			return output.Table([]string{"PRODUCT", "NAME", "QTY", "PRICE", "SUBTOTAL"}, rows)
		},
	}

	statusCmd := &cobra.Command{
		Use:   "status <order-id> <status>",
		Short: "Set an order's status",
		Long: `Set an order's status to pending, confirmed, shipping, delivered or cancelled.

The usual flow is pending → confirmed → shipping → delivered, with cancelled
reachable until delivery. Other moves are allowed unless the store runs with
STRICT_STATUS_TRANSITIONS=true.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "order")
			if err != nil {
				return err
			}
			status := models.OrderStatus(args[1])
			if err := a.store.UpdateOrderStatus(cmd.Context(), id, status); err != nil {
				return err
			}
			output.Success("Order %d is now %s %s", id, output.StatusIcon(string(status)), status)
			if status.Terminal() {
				output.Muted("%s is final", status)
			} else if next := status.NextStatuses(); len(next) > 0 {
				output.Muted("Next: %v", next)
			}
			return nil
		},
	}

	cmd.AddCommand(checkoutCmd, listCmd, allCmd, itemsCmd, statusCmd)
	return cmd
}
