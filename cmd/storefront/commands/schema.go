package commands

import (
	"fmt"
	"strconv"

	"github.com/ToNga156/FinalProject/cmd/storefront/output"
	"github.com/spf13/cobra"
)

var resetForce bool

func newSchemaCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Create, upgrade or reset the database schema",
	}

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Create missing tables, apply migrations and seed reference data",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.store.Initialize(cmd.Context()); err != nil {
				output.Warning("Initialization finished with errors")
				return err
			}
			output.Success("Database ready")
			return nil
		},
	}

	resetCmd := &cobra.Command{
		Use:   "reset",
		Short: "Drop and reseed the catalog, carts and orders (users are kept)",
		Long: `Reset drops the categories, products, cart, orders and order_items tables,
recreates them and reseeds the reference catalog. User accounts survive.

Examples:
  storefront schema reset --force`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !resetForce {
				return fmt.Errorf("reset deletes every order and cart; rerun with --force")
			}
			if err := a.store.Reset(cmd.Context()); err != nil {
				return err
			}
			output.Success("Catalog, carts and orders reset")
			return nil
		},
	}
	resetCmd.Flags().BoolVar(&resetForce, "force", false, "Confirm the reset")

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show applied migrations and row counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			applied, err := a.store.AppliedMigrations(ctx)
			if err != nil {
				return err
			}
			stats, err := a.store.GetDashboardStats(ctx)
			if err != nil {
				return err
			}

			if jsonOutput {
				return output.JSON(map[string]any{
					"migrations": applied,
					"products":   stats.TotalProducts,
					"orders":     stats.TotalOrders,
					"users":      stats.TotalUsers,
				})
			}

			output.Section("Migrations")
			if len(applied) == 0 {
				output.Muted("No migrations recorded")
			}
			rows := make([][]string, 0, len(applied))
			for _, m := range applied {
				rows = append(rows, []string{output.StatusIcon("delivered"), m.Version, m.AppliedAt.Format("2006-01-02 15:04:05")})
			}
			if err := output.Table([]string{"", "VERSION", "APPLIED"}, rows); err != nil {
				return err
			}

			output.Section("Rows")
			return output.Table([]string{"TABLE", "COUNT"}, [][]string{
				{"products", strconv.Itoa(stats.TotalProducts)},
				{"orders", strconv.Itoa(stats.TotalOrders)},
				{"users", strconv.Itoa(stats.TotalUsers)},
			})
		},
	}

	cmd.AddCommand(initCmd, resetCmd, statusCmd)
	return cmd
}
