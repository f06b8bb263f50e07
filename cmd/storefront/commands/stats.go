package commands

import (
	"sort"
	"strconv"

	"github.com/ToNga156/FinalProject/cmd/storefront/output"
	"github.com/ToNga156/FinalProject/internal/models"
	"github.com/spf13/cobra"
)

var statsTop int

func newStatsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show catalog, order and revenue figures",
		RunE: func(cmd *cobra.Command, args []string) error {
			stats, err := a.store.GetDashboardStats(cmd.Context())
			if err != nil {
				return err
			}
			if statsTop > 0 && len(stats.ProductSales) > statsTop {
				stats.ProductSales = stats.ProductSales[:statsTop]
			}
			if jsonOutput {
				return output.JSON(stats)
			}

			output.Section("Overview")
			if err := output.Table([]string{"", ""}, [][]string{
				{"Products", strconv.Itoa(stats.TotalProducts)},
				{"Orders", strconv.Itoa(stats.TotalOrders)},
				{"Users", strconv.Itoa(stats.TotalUsers)},
				{"Revenue", money(stats.Revenue)},
			}); err != nil {
				return err
			}

			output.Section("Orders by status")
			statuses := make([]models.OrderStatus, 0, len(stats.OrdersByStatus))
			for s := range stats.OrdersByStatus {
				statuses = append(statuses, s)
			}
			sort.Slice(statuses, func(i, j int) bool { return statuses[i] < statuses[j] })
			rows := make([][]string, 0, len(statuses))
			for _, s := range statuses {
				rows = append(rows, []string{output.StatusIcon(string(s)), string(s), strconv.Itoa(stats.OrdersByStatus[s])})
			}
			if err := output.Table([]string{"", "STATUS", "ORDERS"}, rows); err != nil {
				return err
			}

			output.Section("Best sellers")
			rows = rows[:0]
			for _, ps := range stats.ProductSales {
				name := ps.Name
				if name == "" {
					name = "(removed)"
				}
				rows = append(rows, []string{strconv.Itoa(ps.ProductID), name, strconv.Itoa(ps.Units), money(ps.Revenue)})
			}
			return output.Table([]string{"PRODUCT", "NAME", "UNITS", "REVENUE"}, rows)
		},
	}
	cmd.Flags().IntVar(&statsTop, "top", 10, "Number of best sellers to show (0 for all)")
	return cmd
}
